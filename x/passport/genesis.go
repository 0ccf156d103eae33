package passport

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

const optKey = "passport"

// Initializer fulfils the Initializer interface to load the directory
// configuration and initial policy from the genesis file.
type Initializer struct{}

var _ bazaar.Initializer = (*Initializer)(nil)

// FromGenesis reads the configuration from "conf.passport" and the
// optional policy from "passport":
//
//   "passport": {"ng_transferable": true}
func (*Initializer) FromGenesis(opts bazaar.Options, db bazaar.KVStore) error {
	if err := gconf.InitConfig(db, opts, packageName, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	if len(opts[optKey]) == 0 {
		return nil
	}
	var policy Policy
	if err := opts.ReadOptions(optKey, &policy); err != nil {
		return errors.Wrap(err, "cannot load passport policy")
	}
	if _, err := NewPolicyBucket().Put(db, policyKey, &policy); err != nil {
		return errors.Wrap(err, "save policy")
	}
	return nil
}
