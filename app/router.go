package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_]+(/[a-z0-9_]+)*$`).MatchString

// Router dispatches messages to the handler registered for the message
// path.
type Router struct {
	routes map[string]trust.Handler
}

var (
	_ trust.Registry = (*Router)(nil)
	_ trust.Handler  = (*Router)(nil)
)

func NewRouter() *Router {
	return &Router{routes: make(map[string]trust.Handler)}
}

// Handle registers a handler for given path. It panics if the path is
// malformed or already taken, both being coding errors.
func (r *Router) Handle(path string, h trust.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("path %q already registered", path))
	}
	r.routes[path] = h
}

func (r *Router) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

func (r *Router) handler(tx trust.Tx) (trust.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load message")
	}
	path := msg.Path()
	h, ok := r.routes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", path)
	}
	return h, nil
}
