package app

import (
	"reflect"

	"github.com/iov-one/trust"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler.
type Decorators struct {
	chain []trust.Decorator
}

/*
ChainDecorators takes a chain of decorators, and upon adding a final
Handler (often a Router), returns a Handler that will execute this whole
stack. The first decorator is the outermost one.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    utils.NewSavepoint().OnCheck().OnDeliver(),
  ).WithHandler(
    app.NewRouter(),
  )
*/
func ChainDecorators(chain ...trust.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a copy of the decorators extended with given ones. Nil
// decorators are skipped.
func (d Decorators) Chain(chain ...trust.Decorator) Decorators {
	next := make([]trust.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if !isNil(dec) {
			next = append(next, dec)
		}
	}
	return Decorators{chain: next}
}

func isNil(d trust.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a Handler that passes through
// the chain of decorators before calling h.
func (d Decorators) WithHandler(h trust.Handler) trust.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step executes one decorator around the rest of the stack.
type step struct {
	d    trust.Decorator
	next trust.Handler
}

var _ trust.Handler = step{}

func (s step) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.CheckResult, error) {
	return s.d.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.DeliverResult, error) {
	return s.d.Deliver(ctx, db, tx, s.next)
}
