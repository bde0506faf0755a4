package utils

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
)

// Recovery converts a panic of the wrapped handler into an ErrPanic error.
type Recovery struct{}

var _ trust.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx, next trust.Checker) (_ *trust.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx, next trust.Deliverer) (_ *trust.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
