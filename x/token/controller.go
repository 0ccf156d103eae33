package token

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// Bank is the payment collaborator of the exchange extensions.
type Bank interface {
	// Balance returns the amount of given currency held by owner. A
	// missing wallet is an empty balance.
	Balance(db bazaar.ReadOnlyKVStore, owner bazaar.Address, ticker string) (coin.Coin, error)
	// Transfer moves amount from one account to another.
	Transfer(db bazaar.KVStore, from, to bazaar.Address, amount coin.Coin) error
	// TransferFrom moves amount out of the from account on behalf of
	// spender, consuming the allowance given by from to spender.
	TransferFrom(db bazaar.KVStore, spender, from, to bazaar.Address, amount coin.Coin) error
}

// Controller manages wallets and allowances.
type Controller struct {
	wallets    orm.ModelBucket
	allowances orm.ModelBucket
}

var _ Bank = Controller{}

// NewController returns a token controller.
func NewController() Controller {
	return Controller{
		wallets:    NewWalletBucket(),
		allowances: NewAllowanceBucket(),
	}
}

func (c Controller) Balance(db bazaar.ReadOnlyKVStore, owner bazaar.Address, ticker string) (coin.Coin, error) {
	var w Wallet
	switch err := c.wallets.One(db, walletKey(owner, ticker), &w); {
	case err == nil:
		return *w.Balance, nil
	case errors.ErrNotFound.Is(err):
		return coin.NewCoin(0, 0, ticker), nil
	default:
		return coin.Coin{}, errors.Wrap(err, "load wallet")
	}
}

// Wallets returns all wallets of given owner.
func (c Controller) Wallets(db bazaar.ReadOnlyKVStore, owner bazaar.Address) ([]*Wallet, error) {
	var wallets []*Wallet
	if _, err := c.wallets.ByIndex(db, "owner", owner, &wallets); err != nil {
		return nil, errors.Wrap(err, "wallets by owner")
	}
	return wallets, nil
}

func (c Controller) Transfer(db bazaar.KVStore, from, to bazaar.Address, amount coin.Coin) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := c.add(db, from, amount.Negative()); err != nil {
		return err
	}
	return c.add(db, to, amount)
}

func (c Controller) TransferFrom(db bazaar.KVStore, spender, from, to bazaar.Address, amount coin.Coin) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	// Owners spend their own funds without an allowance.
	if !spender.Equals(from) {
		allowed, err := c.Allowance(db, from, spender, amount.Ticker)
		if err != nil {
			return err
		}
		if !allowed.IsGTE(amount) {
			return errors.Wrapf(ErrInsufficientAllowance, "%s allowed, %s requested", allowed, amount)
		}
		left, err := allowed.Subtract(amount)
		if err != nil {
			return errors.Wrap(err, "allowance")
		}
		if err := c.setAllowance(db, from, spender, left); err != nil {
			return err
		}
	}
	return c.Transfer(db, from, to, amount)
}

// Approve sets the amount spender may move out of the owner's wallet,
// replacing any previous allowance of the same currency.
func (c Controller) Approve(db bazaar.KVStore, owner, spender bazaar.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsNonNegative() {
		return errors.Wrap(ErrInvalidAmount, "negative allowance")
	}
	return c.setAllowance(db, owner, spender, amount)
}

// Allowance returns the amount spender may still move out of the owner's
// wallet.
func (c Controller) Allowance(db bazaar.ReadOnlyKVStore, owner, spender bazaar.Address, ticker string) (coin.Coin, error) {
	var a Allowance
	switch err := c.allowances.One(db, allowanceKey(owner, spender, ticker), &a); {
	case err == nil:
		return *a.Amount, nil
	case errors.ErrNotFound.Is(err):
		return coin.NewCoin(0, 0, ticker), nil
	default:
		return coin.Coin{}, errors.Wrap(err, "load allowance")
	}
}

func (c Controller) setAllowance(db bazaar.KVStore, owner, spender bazaar.Address, amount coin.Coin) error {
	key := allowanceKey(owner, spender, amount.Ticker)
	if amount.IsZero() {
		if err := c.allowances.Has(db, key); err != nil {
			if errors.ErrNotFound.Is(err) {
				return nil
			}
			return err
		}
		return c.allowances.Delete(db, key)
	}
	a := &Allowance{Owner: owner, Spender: spender, Amount: &amount}
	if _, err := c.allowances.Put(db, key, a); err != nil {
		return errors.Wrap(err, "save allowance")
	}
	return nil
}

// Issue creates new funds in the destination wallet. This is used by the
// genesis and by tests. Negative amounts burn funds.
func (c Controller) Issue(db bazaar.KVStore, to bazaar.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	return c.add(db, to, amount)
}

// add changes the balance of owner by amount. The balance can never go
// below zero.
func (c Controller) add(db bazaar.KVStore, owner bazaar.Address, amount coin.Coin) error {
	balance, err := c.Balance(db, owner, amount.Ticker)
	if err != nil {
		return err
	}
	next, err := balance.Add(amount)
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	if !next.IsNonNegative() {
		return errors.Wrapf(ErrInsufficientFunds, "%s has %s", owner, balance)
	}
	w := &Wallet{Owner: owner, Balance: &next}
	if _, err := c.wallets.Put(db, walletKey(owner, amount.Ticker), w); err != nil {
		return errors.Wrap(err, "save wallet")
	}
	return nil
}

func validAmount(amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(ErrInvalidAmount, "non positive amount %s", amount)
	}
	return nil
}
