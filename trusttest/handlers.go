package trusttest

import "github.com/iov-one/trust"

// Handler is a mock implementation of the trust.Handler interface. Each
// method call is counted.
type Handler struct {
	checkCall   int
	CheckResult trust.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult trust.DeliverResult
	DeliverErr    error

	// Write if set is stored in the database before returning.
	Write *KeyValue
	// Panic if set is raised on every call.
	Panic interface{}
}

// KeyValue is a single database entry.
type KeyValue struct {
	Key, Value []byte
}

var _ trust.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.CheckResult, error) {
	h.checkCall++
	if err := h.act(db); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.DeliverResult, error) {
	h.deliverCall++
	if err := h.act(db); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) act(db trust.KVStore) error {
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.Write != nil {
		return db.Set(h.Write.Key, h.Write.Value)
	}
	return nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorator is a mock implementation of the trust.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ trust.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx, next trust.Checker) (*trust.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx, next trust.Deliverer) (*trust.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps the handler with one decorator and returns it as a single
// handler.
func Decorate(h trust.Handler, d trust.Decorator) trust.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn trust.Handler
	dc trust.Decorator
}

var _ trust.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
