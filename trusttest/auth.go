package trusttest

import (
	"context"
	"fmt"

	"github.com/iov-one/trust"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers regardless of the attribute are
// considered, Signer being the first one.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer trust.Condition

	// Signers represents an authentication of multiple signers.
	Signers []trust.Condition
}

func (a *Auth) GetConditions(trust.Context) []trust.Condition {
	if a.Signer != nil {
		return append([]trust.Condition{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx trust.Context, addr trust.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve conditions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx trust.Context, conds ...trust.Condition) trust.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx trust.Context) []trust.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]trust.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []trust.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx trust.Context, addr trust.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
