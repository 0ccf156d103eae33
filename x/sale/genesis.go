package sale

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

// Initializer loads the desk configuration from "conf.sale":
//
//   "sale": {
//     "native_ticker": "ETH",
//     "alt_ticker": "SPN",
//     "royalty_percent": 10,
//     "sale_start_date": "2021-06-01T00:00:00Z"
//   }
type Initializer struct{}

var _ bazaar.Initializer = (*Initializer)(nil)

func (*Initializer) FromGenesis(opts bazaar.Options, db bazaar.KVStore) error {
	if err := gconf.InitConfig(db, opts, packageName, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}
	return nil
}
