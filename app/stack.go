package app

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/x"
	"github.com/iov-one/bazaar/x/auction"
	"github.com/iov-one/bazaar/x/badge"
	"github.com/iov-one/bazaar/x/passport"
	"github.com/iov-one/bazaar/x/roles"
	"github.com/iov-one/bazaar/x/sale"
	"github.com/iov-one/bazaar/x/token"
	"github.com/iov-one/bazaar/x/utils"
)

// Authenticator returns the authentication used by all extensions. Signers
// are provided by the transaction, verified by the transport.
func Authenticator() x.Authenticator {
	return x.SignersAuth{}
}

// Controllers groups the controllers of all extensions, wired to each other.
type Controllers struct {
	Roles    roles.Controller
	Token    token.Controller
	Passport passport.Controller
	Badge    badge.Controller
	Auction  auction.Controller
	Sale     sale.Controller
}

// NewControllers wires the extensions together. The passport directory
// is the custody for both marketplaces, the token is their bank.
func NewControllers() Controllers {
	r := roles.NewController()
	bank := token.NewController()
	pass := passport.NewController(r)
	return Controllers{
		Roles:    r,
		Token:    bank,
		Passport: pass,
		Badge:    badge.NewController(r, bank),
		Auction:  auction.NewController(pass, bank),
		Sale:     sale.NewController(r, pass, bank),
	}
}

// Chain returns a chain of decorators, to handle signers, recovery,
// logging and atomic delivery.
func Chain() Decorators {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		x.NewSignersDecorator(),
		// a failed tx leaves neither the check nor the deliver state
		// modified
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
}

// Routes returns a router with all extension handlers registered.
func Routes(auth x.Authenticator, c Controllers) *Router {
	r := NewRouter()
	roles.RegisterRoutes(r, auth, c.Roles)
	token.RegisterRoutes(r, auth, c.Token)
	passport.RegisterRoutes(r, auth, c.Passport)
	badge.RegisterRoutes(r, auth, c.Badge)
	auction.RegisterRoutes(r, auth, c.Auction, c.Roles)
	sale.RegisterRoutes(r, auth, c.Sale)
	return r
}

// Stack wires up the router with the decorator chain.
func Stack(c Controllers) bazaar.Handler {
	auth := Authenticator()
	return Chain().WithHandler(Routes(auth, c))
}

// Initializers returns the genesis loaders of all extensions. Roles go
// first as the others may depend on them.
func Initializers() bazaar.Initializer {
	return bazaar.ChainInitializers(
		&roles.Initializer{},
		token.Initializer{},
		&passport.Initializer{},
		&badge.Initializer{},
		&auction.Initializer{},
		&sale.Initializer{},
	)
}

// NewMarketplace returns a ledger running all extensions over given store.
func NewMarketplace(store bazaar.CommitKVStore) (*Ledger, error) {
	return NewLedger(store, Stack(NewControllers()), Initializers())
}
