package auction

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

// Initializer loads the optional "conf.auction" configuration. Without it
// the house keeps a DefaultFeePercent fee.
type Initializer struct{}

var _ bazaar.Initializer = (*Initializer)(nil)

func (*Initializer) FromGenesis(opts bazaar.Options, db bazaar.KVStore) error {
	switch err := gconf.InitConfig(db, opts, packageName, &Configuration{}); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "init config")
	}
}
