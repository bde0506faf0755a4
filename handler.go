package trust

// Handler is a core engine that can process a few specific messages.
// This could represent "create a deal", or "vote on a deal".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication or logging to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult captures any non-error check result.
type CheckResult struct {
	// Data is a machine-parseable return value, like an id of a newly
	// created deal.
	Data []byte
	// Log is human-readable informational string.
	Log string
}

// DeliverResult captures any non-error delivery result.
type DeliverResult struct {
	// Data is a machine-parseable return value, like an id of a newly
	// created deal.
	Data []byte
	// Log is human-readable informational string.
	Log string
}
