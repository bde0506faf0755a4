package cash

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/errors"
	"github.com/iov-one/trust/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r trust.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ trust.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized.
func (h SendHandler) Check(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &trust.CheckResult{}, nil
}

// Deliver moves the tokens from source to destination if all
// preconditions are met.
func (h SendHandler) Deliver(ctx trust.Context, db trust.KVStore, tx trust.Tx) (*trust.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &trust.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx trust.Context, tx trust.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := trust.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
