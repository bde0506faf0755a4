package utils

import (
	"time"

	"github.com/iov-one/trust"
)

// Logging reports every processed message. Failed deliveries are logged as
// errors, successful ones as info. Check results are logged at debug level.
type Logging struct{}

var _ trust.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx, next trust.Checker) (*trust.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var log string
	if err == nil {
		log = res.Log
	}
	logResult(ctx, tx, start, log, err, true)
	return res, err
}

func (Logging) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx, next trust.Deliverer) (*trust.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var log string
	if err == nil {
		log = res.Log
	}
	logResult(ctx, tx, start, log, err, false)
	return res, err
}

func logResult(ctx trust.Context, tx trust.Tx, start time.Time, msg string, err error, check bool) {
	logger := trust.GetLogger(ctx).With(
		"path", msgPath(tx),
		"duration", time.Since(start)/time.Microsecond)

	// An entry is written even for an empty message, the keys are
	// informative on their own.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}

func msgPath(tx trust.Tx) string {
	if tx == nil {
		return ""
	}
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return ""
	}
	return msg.Path()
}
