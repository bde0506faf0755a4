package utils

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
)

// Savepoint runs the wrapped handler on a cache wrap of the store. The
// cache is written back only if the handler succeeds.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ trust.Decorator = Savepoint{}

// NewSavepoint returns a disabled savepoint. Use OnCheck and OnDeliver to
// select the calls it guards.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a copy of the savepoint that also guards Check calls.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a copy of the savepoint that also guards Deliver calls.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx, next trust.Checker) (*trust.CheckResult, error) {
	cdb, ok := db.(trust.CacheableKVStore)
	if !s.onCheck || !ok {
		return next.Check(ctx, db, tx)
	}

	cache := cdb.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write savepoint")
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx, next trust.Deliverer) (*trust.DeliverResult, error) {
	cdb, ok := db.(trust.CacheableKVStore)
	if !s.onDeliver || !ok {
		return next.Deliver(ctx, db, tx)
	}

	cache := cdb.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write savepoint")
	}
	return res, nil
}
