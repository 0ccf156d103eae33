package roles

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

const optKey = "roles"

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ bazaar.Initializer = (*Initializer)(nil)

// FromGenesis stores the initial governance account and marketplaces.
//
//   "roles": {
//     "governance": "<address>",
//     "marketplaces": ["<address>", ...]
//   }
func (*Initializer) FromGenesis(opts bazaar.Options, db bazaar.KVStore) error {
	var conf struct {
		Governance   bazaar.Address   `json:"governance"`
		Marketplaces []bazaar.Address `json:"marketplaces"`
	}
	if err := opts.ReadOptions(optKey, &conf); err != nil {
		return errors.Wrap(err, "cannot load roles")
	}
	if err := conf.Governance.Validate(); err != nil {
		return errors.Wrap(err, "governance")
	}

	ctrl := NewController()
	if err := ctrl.setGovernance(db, conf.Governance); err != nil {
		return err
	}
	for i, m := range conf.Marketplaces {
		if err := ctrl.AddMarketplace(db, 0, conf.Governance, m); err != nil {
			return errors.Wrapf(err, "marketplace #%d", i)
		}
	}
	return nil
}
