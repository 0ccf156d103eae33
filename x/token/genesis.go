package token

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
)

const optKey = "token"

// GenesisWallet is used to parse the json from genesis file. Addresses are
// in hex, amounts in the "1.5 BZR" human format.
type GenesisWallet struct {
	Address bazaar.Address `json:"address"`
	Coins   []coin.Coin    `json:"coins"`
}

// GenesisAllowance is an allowance declared in the genesis file.
type GenesisAllowance struct {
	Owner   bazaar.Address `json:"owner"`
	Spender bazaar.Address `json:"spender"`
	Amount  coin.Coin      `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ bazaar.Initializer = Initializer{}

// FromGenesis will parse initial wallets and allowances from genesis
// and save them to the database.
func (Initializer) FromGenesis(opts bazaar.Options, db bazaar.KVStore) error {
	var conf struct {
		Wallets    []GenesisWallet    `json:"wallets"`
		Allowances []GenesisAllowance `json:"allowances"`
	}
	if err := opts.ReadOptions(optKey, &conf); err != nil {
		return errors.Wrap(err, "cannot load token")
	}

	ctrl := NewController()
	for i, w := range conf.Wallets {
		if err := w.Address.Validate(); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
		for _, c := range w.Coins {
			if !c.IsPositive() {
				return errors.Wrapf(ErrInvalidAmount, "wallet #%d: %s", i, c)
			}
			if err := ctrl.Issue(db, w.Address, c); err != nil {
				return errors.Wrapf(err, "wallet #%d", i)
			}
		}
	}
	for i, a := range conf.Allowances {
		if err := a.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "allowance #%d owner", i)
		}
		if err := a.Spender.Validate(); err != nil {
			return errors.Wrapf(err, "allowance #%d spender", i)
		}
		if err := ctrl.Approve(db, a.Owner, a.Spender, a.Amount); err != nil {
			return errors.Wrapf(err, "allowance #%d", i)
		}
	}
	return nil
}
