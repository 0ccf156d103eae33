package sale

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/orm"
	"github.com/iov-one/bazaar/x/passport"
	"github.com/iov-one/bazaar/x/roles"
	"github.com/iov-one/bazaar/x/token"
	"github.com/iov-one/bazaar/x/utils"
)

// DeskAddress collects payments before they are split between creator and
// seller. Buyers approve it to pull the price. It must be an approved
// marketplace of the passport directory.
var DeskAddress = bazaar.NewCondition("sale", "desk", nil).Address()

// Controller is the fixed price sale desk.
type Controller struct {
	roles         roles.RoleReader
	custody       passport.Custody
	bank          token.Bank
	listings      orm.ModelBucket
	purchaseGuard utils.Guard
}

func NewController(r roles.RoleReader, custody passport.Custody, bank token.Bank) Controller {
	return Controller{
		roles:         r,
		custody:       custody,
		bank:          bank,
		listings:      NewListingBucket(),
		purchaseGuard: utils.NewGuard("sale/purchase"),
	}
}

// Get returns the listing of a passport, open or closed.
func (c Controller) Get(db bazaar.ReadOnlyKVStore, id uint64) (*Listing, error) {
	var l Listing
	switch err := c.listings.One(db, idKey(id), &l); {
	case err == nil:
		return &l, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrPassportIDInvalid, "passport %d", id)
	default:
		return nil, err
	}
}

// BySeller returns all listings recorded for a seller.
func (c Controller) BySeller(db bazaar.ReadOnlyKVStore, seller bazaar.Address) ([]*Listing, error) {
	var listings []*Listing
	if _, err := c.listings.ByIndex(db, "seller", seller, &listings); err != nil {
		return nil, errors.Wrap(err, "listings by seller")
	}
	return listings, nil
}

// SetSaleStartDate sets the block time from which passports can be listed.
func (c Controller) SetSaleStartDate(db bazaar.KVStore, caller bazaar.Address, ts bazaar.UnixTime) error {
	if err := roles.RequireGovernance(db, c.roles, caller); err != nil {
		return err
	}
	if err := ts.Validate(); err != nil {
		return errors.Wrap(err, "sale start date")
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	conf.SaleStartDate = ts
	return gconf.Save(db, packageName, conf)
}

// OpenForSale lists a passport of the caller. A zero price disables the
// currency, at least one price must be set.
func (c Controller) OpenForSale(db bazaar.KVStore, now bazaar.UnixTime, caller bazaar.Address, id uint64, native, alt coin.Coin) (*Listing, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if now < conf.SaleStartDate {
		return nil, errors.Wrapf(ErrSaleNotStarted, "starts at %s", conf.SaleStartDate)
	}
	l, err := c.priced(db, conf, caller, id, native, alt)
	if err != nil {
		return nil, err
	}
	if l.PriceNative.IsZero() && l.PriceAlt.IsZero() {
		return nil, errors.Wrap(ErrPricesInvalid, "both prices are zero")
	}
	l.Open = true
	if _, err := c.listings.Put(db, idKey(id), l); err != nil {
		return nil, errors.Wrap(err, "save listing")
	}
	return l, nil
}

// SetPrice changes the prices of a listing without reopening it.
func (c Controller) SetPrice(db bazaar.KVStore, caller bazaar.Address, id uint64, native, alt coin.Coin) (*Listing, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	l, err := c.priced(db, conf, caller, id, native, alt)
	if err != nil {
		return nil, err
	}
	if l.Open && l.PriceNative.IsZero() && l.PriceAlt.IsZero() {
		return nil, errors.Wrap(ErrPricesInvalid, "both prices are zero")
	}
	if _, err := c.listings.Put(db, idKey(id), l); err != nil {
		return nil, errors.Wrap(err, "save listing")
	}
	return l, nil
}

// priced returns the listing of the passport, or a new closed one, with
// the caller as the seller and the given prices.
func (c Controller) priced(db bazaar.KVStore, conf *Configuration, caller bazaar.Address, id uint64, native, alt coin.Coin) (*Listing, error) {
	owner, err := c.custody.OwnerOf(db, id)
	if err != nil && !passport.ErrInvalidID.Is(err) {
		return nil, err
	}
	if caller.IsEmpty() || !caller.Equals(owner) {
		return nil, errors.Wrapf(ErrCallerNotOwnerOrIDInvalid, "passport %d", id)
	}
	signed, err := c.custody.IsSigned(db, id)
	if err != nil {
		return nil, err
	}
	if signed {
		return nil, errors.Wrapf(ErrSigned, "passport %d", id)
	}
	native, err = price(native, conf.NativeTicker)
	if err != nil {
		return nil, err
	}
	alt, err = price(alt, conf.AltTicker)
	if err != nil {
		return nil, err
	}

	l := &Listing{}
	switch err := c.listings.One(db, idKey(id), l); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return nil, err
	}
	l.Seller = caller
	l.PriceNative = &native
	l.PriceAlt = &alt
	return l, nil
}

// price normalizes a listing price. An empty coin is a zero price.
func price(c coin.Coin, ticker string) (coin.Coin, error) {
	if c.Ticker == "" && c.IsZero() {
		return coin.NewCoin(0, 0, ticker), nil
	}
	if c.Ticker != ticker {
		return coin.Coin{}, errors.Wrapf(ErrPricesInvalid, "price %s, want %s", c, ticker)
	}
	if err := c.Validate(); err != nil {
		return coin.Coin{}, errors.Wrap(ErrPricesInvalid, err.Error())
	}
	if !c.IsNonNegative() {
		return coin.Coin{}, errors.Wrapf(ErrPricesInvalid, "negative price %s", c)
	}
	return c, nil
}

// Receipt describes a completed purchase.
type Receipt struct {
	Seller  bazaar.Address
	Creator bazaar.Address
	Price   coin.Coin
	Royalty coin.Coin
}

// Purchase buys a listed passport in the selected currency. Either the
// whole purchase happens or nothing does.
func (c Controller) Purchase(db bazaar.KVStore, caller bazaar.Address, id uint64, cur Currency) (*Receipt, error) {
	var r *Receipt
	err := c.purchaseGuard.Run(db, func() error {
		return utils.Atomic(db, func(db bazaar.KVStore) error {
			var err error
			r, err = c.purchase(db, caller, id, cur)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (c Controller) purchase(db bazaar.KVStore, caller bazaar.Address, id uint64, cur Currency) (*Receipt, error) {
	l, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	if !l.Open {
		return nil, errors.Wrapf(ErrPassportIDInvalid, "passport %d is not open for sale", id)
	}
	owner, err := c.custody.OwnerOf(db, id)
	if err != nil {
		return nil, err
	}
	if caller.IsEmpty() {
		return nil, errors.Wrap(errors.ErrUnauthorized, "buyer")
	}
	if caller.Equals(owner) {
		return nil, errors.Wrapf(ErrNoSelfPurchase, "passport %d", id)
	}
	if !owner.Equals(l.Seller) {
		return nil, errors.Wrapf(ErrOwnershipChanged, "passport %d", id)
	}
	amount, err := l.Price(cur)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errors.Wrapf(ErrPriceInvalid, "no %s price", cur)
	}
	creator, err := c.custody.Creator(db, id)
	if err != nil {
		return nil, errors.Wrap(ErrCreatorUnknown, err.Error())
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	l.Open = false
	if _, err := c.listings.Put(db, idKey(id), l); err != nil {
		return nil, errors.Wrap(err, "close listing")
	}

	if err := c.bank.TransferFrom(db, DeskAddress, caller, DeskAddress, amount); err != nil {
		return nil, errors.Wrap(err, "payment")
	}
	royalty, rest, err := amount.Split(int64(conf.RoyaltyPercent))
	if err != nil {
		return nil, errors.Wrap(err, "royalty")
	}
	if royalty.IsPositive() {
		if err := c.bank.Transfer(db, DeskAddress, creator, royalty); err != nil {
			return nil, errors.Wrap(err, "pay royalty")
		}
	}
	if rest.IsPositive() {
		if err := c.bank.Transfer(db, DeskAddress, l.Seller, rest); err != nil {
			return nil, errors.Wrap(err, "pay seller")
		}
	}
	if err := c.custody.Transfer(db, DeskAddress, l.Seller, caller, id); err != nil {
		return nil, errors.Wrap(err, "deliver passport")
	}
	return &Receipt{
		Seller:  l.Seller,
		Creator: creator,
		Price:   amount,
		Royalty: royalty,
	}, nil
}

// Sweep moves the whole desk balance of a currency to an account.
func (c Controller) Sweep(db bazaar.KVStore, caller bazaar.Address, ticker string, to bazaar.Address) (coin.Coin, error) {
	if err := roles.RequireGovernance(db, c.roles, caller); err != nil {
		return coin.Coin{}, err
	}
	if err := to.Validate(); err != nil {
		return coin.Coin{}, errors.Wrap(err, "recipient")
	}
	balance, err := c.bank.Balance(db, DeskAddress, ticker)
	if err != nil {
		return coin.Coin{}, err
	}
	if !balance.IsPositive() {
		return balance, nil
	}
	if err := c.bank.Transfer(db, DeskAddress, to, balance); err != nil {
		return coin.Coin{}, err
	}
	return balance, nil
}
