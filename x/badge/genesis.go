package badge

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

// Initializer loads the catalog configuration from "conf.badge":
//
//   "badge": {
//     "owner": "<address>",
//     "signer": "<hex ed25519 public key>",
//     "revenue_address": "<address>",
//     "uri": "https://example.com/badges/{id}.json"
//   }
type Initializer struct{}

var _ bazaar.Initializer = (*Initializer)(nil)

func (*Initializer) FromGenesis(opts bazaar.Options, db bazaar.KVStore) error {
	if err := gconf.InitConfig(db, opts, packageName, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}
	return nil
}
