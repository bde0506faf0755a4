package app

import (
	"context"

	"github.com/iov-one/trust"
	"github.com/iov-one/trust/x"
)

type contextKey int

const contextKeySigners contextKey = iota

// WithSigners returns a context carrying the conditions that signed the
// transaction. The host verifies the signatures before delivering it.
func WithSigners(ctx trust.Context, signers ...trust.Condition) trust.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// SignerAuth authenticates the conditions set with WithSigners. The first
// signer is the main signer.
type SignerAuth struct{}

var _ x.Authenticator = SignerAuth{}

func (SignerAuth) GetConditions(ctx trust.Context) []trust.Condition {
	signers, _ := ctx.Value(contextKeySigners).([]trust.Condition)
	return signers
}

func (a SignerAuth) HasAddress(ctx trust.Context, addr trust.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
