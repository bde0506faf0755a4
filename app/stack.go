package app

import (
	"github.com/iov-one/trust"
	"github.com/iov-one/trust/gconf"
	"github.com/iov-one/trust/x"
	"github.com/iov-one/trust/x/cash"
	"github.com/iov-one/trust/x/escrow"
	"github.com/iov-one/trust/x/utils"
)

// Authenticator returns the authentication of the application: the
// signers verified by the host.
func Authenticator() x.Authenticator {
	return x.ChainAuth(SignerAuth{})
}

// Chain returns the decorators wrapping every handler. A failed
// transaction leaves no changes behind.
func Chain() Decorators {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
}

// Routes returns a router serving the cash and escrow messages.
func Routes(auth x.Authenticator) *Router {
	bank := cash.NewController(cash.NewBucket())
	r := NewRouter()
	cash.RegisterRoutes(r, auth, bank)
	escrow.RegisterRoutes(r, auth, bank)
	return r
}

// Stack wires the router with the standard decorator chain.
func Stack(auth x.Authenticator) trust.Handler {
	return Chain().WithHandler(Routes(auth))
}

// Initializers returns the genesis initializers of all extensions. Cash
// balances are loaded before deals, so that funded deals can be verified.
func Initializers() trust.Initializer {
	return trust.ChainInitializers(
		gconf.Initializer{Confs: map[string]gconf.Configuration{
			"escrow": &escrow.Configuration{},
		}},
		cash.Initializer{},
		&escrow.Initializer{Bank: cash.NewController(cash.NewBucket())},
	)
}

// NewTrustApplication returns an application running the full stack on
// given store.
func NewTrustApplication(kv trust.CommitKVStore, debug bool) (*Application, error) {
	return NewApplication("trust", kv, Stack(Authenticator()), Initializers(), debug)
}
