package badge

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/orm"
	"github.com/iov-one/bazaar/x/roles"
	"github.com/iov-one/bazaar/x/token"
)

// CatalogAddress is the account buyers approve to pull payments for priced
// badges.
var CatalogAddress = bazaar.NewCondition("badge", "catalog", nil).Address()

// maxQuantity bounds a single quantity, so that price times quantity is a
// valid coin.
const maxQuantity = uint64(coin.MaxInt)

// Controller is the badge catalog.
type Controller struct {
	roles    roles.RoleReader
	bank     token.Bank
	badges   orm.ModelBucket
	balances orm.ModelBucket
}

// NewController returns a badge catalog that authorizes with given role
// registry and collects payments with bank.
func NewController(r roles.RoleReader, bank token.Bank) Controller {
	return Controller{
		roles:    r,
		bank:     bank,
		badges:   NewBadgeBucket(),
		balances: NewBalanceBucket(),
	}
}

// Get returns the badge with given id, or ErrTokenIDInvalid.
func (c Controller) Get(db bazaar.ReadOnlyKVStore, id uint64) (*Badge, error) {
	var b Badge
	switch err := c.badges.One(db, idKey(id), &b); {
	case err == nil:
		return &b, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrTokenIDInvalid, "badge %d", id)
	default:
		return nil, err
	}
}

func (c Controller) Exists(db bazaar.ReadOnlyKVStore, id uint64) (bool, error) {
	switch err := c.badges.Has(db, idKey(id)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// BalanceOf returns the quantity of a badge held by owner.
func (c Controller) BalanceOf(db bazaar.ReadOnlyKVStore, owner bazaar.Address, id uint64) (uint64, error) {
	var b Balance
	switch err := c.balances.One(db, balanceKey(owner, id), &b); {
	case err == nil:
		return b.Quantity, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// Balances returns all badges held by owner.
func (c Controller) Balances(db bazaar.ReadOnlyKVStore, owner bazaar.Address) ([]*Balance, error) {
	var balances []*Balance
	if _, err := c.balances.ByIndex(db, "owner", owner, &balances); err != nil {
		return nil, errors.Wrap(err, "balances by owner")
	}
	return balances, nil
}

// URI returns the metadata URI template of all badges.
func (c Controller) URI(db bazaar.ReadOnlyKVStore) (string, error) {
	conf, err := loadConf(db)
	if err != nil {
		return "", err
	}
	return conf.URI, nil
}

// CreateBadge creates a priced badge and mints one unit to its creator.
func (c Controller) CreateBadge(db bazaar.KVStore, caller, creator bazaar.Address, price coin.Coin) (uint64, error) {
	if err := c.notPaused(db); err != nil {
		return 0, err
	}
	if err := roles.RequireGovernance(db, c.roles, caller); err != nil {
		return 0, err
	}
	if !price.IsPositive() {
		return 0, errors.Wrapf(ErrInvalidPrice, "%s", price)
	}
	b := &Badge{
		Kind:    KindPriced,
		Price:   &price,
		Creator: creator,
	}
	key, err := c.badges.Put(db, nil, b)
	if err != nil {
		return 0, err
	}
	id := orm.DecodeSequence(key)
	if err := c.mint(db, id, creator, 1); err != nil {
		return 0, err
	}
	return id, nil
}

// PurchaseBadge buys quantity units of a priced badge.
func (c Controller) PurchaseBadge(db bazaar.KVStore, buyer bazaar.Address, id, quantity uint64) error {
	return c.PurchaseBadgeBatch(db, buyer, []uint64{id}, []uint64{quantity})
}

// PurchaseBadgeBatch buys several priced badges at once. The buyer pays the
// sum of price times quantity for every currency in one transfer to the
// revenue account.
func (c Controller) PurchaseBadgeBatch(db bazaar.KVStore, buyer bazaar.Address, ids, quantities []uint64) error {
	if err := c.notPaused(db); err != nil {
		return err
	}
	if len(ids) != len(quantities) {
		return errors.Wrapf(ErrArityMismatch, "%d ids, %d quantities", len(ids), len(quantities))
	}
	if len(ids) == 0 {
		return errors.Wrap(errors.ErrEmpty, "ids")
	}
	if err := buyer.Validate(); err != nil {
		return errors.Wrap(err, "buyer")
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}

	// Totals are kept in order of first appearance, so that transfers
	// happen in a deterministic order.
	var totals []coin.Coin
	for i, id := range ids {
		if err := validQuantity(quantities[i]); err != nil {
			return errors.Wrapf(err, "item #%d", i)
		}
		b, err := c.Get(db, id)
		if err != nil {
			return err
		}
		if b.Kind != KindPriced {
			return errors.Wrapf(ErrTokenIDInvalid, "badge %d is not for sale", id)
		}
		cost, err := b.Price.Multiply(int64(quantities[i]))
		if err != nil {
			return errors.Wrapf(err, "item #%d", i)
		}
		totals, err = addCost(totals, cost)
		if err != nil {
			return err
		}
	}

	for _, total := range totals {
		if err := c.bank.TransferFrom(db, CatalogAddress, buyer, conf.RevenueAddress, total); err != nil {
			return errors.Wrapf(err, "pay %s", total)
		}
	}
	for i, id := range ids {
		if err := c.mint(db, id, buyer, quantities[i]); err != nil {
			return err
		}
	}
	return nil
}

func addCost(totals []coin.Coin, cost coin.Coin) ([]coin.Coin, error) {
	for i, t := range totals {
		if t.SameType(cost) {
			sum, err := t.Add(cost)
			if err != nil {
				return nil, err
			}
			totals[i] = sum
			return totals, nil
		}
	}
	return append(totals, cost), nil
}

// GrantBadge mints units of a priced badge for free. Only the badge creator
// can grant it.
func (c Controller) GrantBadge(db bazaar.KVStore, caller, to bazaar.Address, id, quantity uint64) error {
	if err := c.notPaused(db); err != nil {
		return err
	}
	b, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if b.Kind != KindPriced {
		return errors.Wrapf(ErrTokenIDInvalid, "badge %d is gated", id)
	}
	if caller.IsEmpty() || !b.Creator.Equals(caller) {
		return errors.Wrapf(ErrNotCreator, "badge %d", id)
	}
	if err := validQuantity(quantity); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return c.mint(db, id, to, quantity)
}

// TransferBadge moves units of a priced badge between accounts. Gated
// badges cannot be transferred at all.
func (c Controller) TransferBadge(db bazaar.KVStore, caller, from, to bazaar.Address, id, quantity uint64) error {
	b, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if b.Kind == KindGated {
		return errors.Wrapf(ErrTransferDisabled, "badge %d", id)
	}
	if err := c.notPaused(db); err != nil {
		return err
	}
	if caller.IsEmpty() || !caller.Equals(from) {
		return errors.Wrap(errors.ErrUnauthorized, "only the holder can transfer")
	}
	if err := validQuantity(quantity); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := c.addBalance(db, from, id, quantity, false); err != nil {
		return err
	}
	return c.addBalance(db, to, id, quantity, true)
}

// SetBadgePrice changes the price of a priced badge. Only the badge creator
// can change it.
func (c Controller) SetBadgePrice(db bazaar.KVStore, caller bazaar.Address, id uint64, price coin.Coin) error {
	b, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if b.Kind != KindPriced {
		return errors.Wrapf(ErrTokenIDInvalid, "badge %d is gated", id)
	}
	if caller.IsEmpty() || !b.Creator.Equals(caller) {
		return errors.Wrapf(ErrNotCreator, "badge %d", id)
	}
	if !price.IsPositive() {
		return errors.Wrapf(ErrInvalidPrice, "%s", price)
	}
	b.Price = &price
	_, err = c.badges.Put(db, idKey(id), b)
	return err
}

// SetCreator replaces the creator of a badge.
func (c Controller) SetCreator(db bazaar.KVStore, caller bazaar.Address, id uint64, creator bazaar.Address) error {
	if err := roles.RequireGovernance(db, c.roles, caller); err != nil {
		return err
	}
	if creator.IsEmpty() {
		return errors.Wrap(ErrZeroAddress, "creator")
	}
	b, err := c.Get(db, id)
	if err != nil {
		return err
	}
	b.Creator = creator
	_, err = c.badges.Put(db, idKey(id), b)
	return err
}

// SetRevenueAddress sets the account receiving badge payments.
func (c Controller) SetRevenueAddress(db bazaar.KVStore, caller, revenue bazaar.Address) error {
	if err := roles.RequireGovernance(db, c.roles, caller); err != nil {
		return err
	}
	if revenue.IsEmpty() {
		return errors.Wrap(ErrZeroAddress, "revenue address")
	}
	return c.updateConf(db, func(conf *Configuration) error {
		conf.RevenueAddress = revenue
		return nil
	})
}

// CreateBatch creates a new gated badge and mints one unit to each
// recipient. The batch must be attested by the registered signer, which
// the catalog owner cannot use for itself.
func (c Controller) CreateBatch(db bazaar.KVStore, caller bazaar.Address, recipients []bazaar.Address, signature []byte) (uint64, error) {
	conf, err := c.activeConf(db)
	if err != nil {
		return 0, err
	}
	if caller.IsEmpty() {
		return 0, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	if conf.Owner.Equals(caller) {
		return 0, ErrMultisigNotAllowed
	}
	if len(recipients) == 0 {
		return 0, errors.Wrap(errors.ErrEmpty, "recipients")
	}
	seen := make(map[string]struct{}, len(recipients))
	for _, r := range recipients {
		if _, ok := seen[string(r)]; ok {
			return 0, errors.Wrapf(ErrTokenAlreadyOwned, "%s listed twice", r)
		}
		seen[string(r)] = struct{}{}
	}
	if !crypto.VerifyAttestation(conf.Signer, CreateBatchDigest(caller, recipients), signature) {
		return 0, errors.Wrap(ErrInvalidSignature, "create batch")
	}

	key, err := c.badges.Put(db, nil, &Badge{Kind: KindGated, Creator: caller})
	if err != nil {
		return 0, err
	}
	id := orm.DecodeSequence(key)
	for i, r := range recipients {
		if err := c.mintGated(db, id, r); err != nil {
			return 0, errors.Wrapf(err, "recipient #%d", i)
		}
	}
	return id, nil
}

// CreateGatedBadge allocates an empty gated badge for later MintBatch calls.
// Only the catalog owner can create it.
func (c Controller) CreateGatedBadge(db bazaar.KVStore, caller bazaar.Address) (uint64, error) {
	conf, err := c.activeConf(db)
	if err != nil {
		return 0, err
	}
	if err := requireOwner(conf, caller); err != nil {
		return 0, err
	}
	key, err := c.badges.Put(db, nil, &Badge{Kind: KindGated, Creator: caller})
	if err != nil {
		return 0, err
	}
	return orm.DecodeSequence(key), nil
}

// MintBatch mints one unit of ids[i] to recipients[i]. The catalog owner
// mints freely, anyone else needs an attestation of the registered signer.
func (c Controller) MintBatch(db bazaar.KVStore, caller bazaar.Address, recipients []bazaar.Address, ids []uint64, signature []byte) error {
	conf, err := c.activeConf(db)
	if err != nil {
		return err
	}
	if caller.IsEmpty() {
		return errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	if len(recipients) != len(ids) {
		return errors.Wrapf(ErrArityMismatch, "%d recipients, %d ids", len(recipients), len(ids))
	}
	if !conf.Owner.Equals(caller) {
		if !crypto.VerifyAttestation(conf.Signer, MintBatchDigest(caller, recipients, ids), signature) {
			return errors.Wrap(ErrInvalidSignature, "mint batch")
		}
	}
	for i, id := range ids {
		b, err := c.Get(db, id)
		if err != nil {
			return errors.Wrapf(err, "item #%d", i)
		}
		if b.Kind != KindGated {
			return errors.Wrapf(ErrTokenIDInvalid, "badge %d is not gated", id)
		}
		if err := c.mintGated(db, id, recipients[i]); err != nil {
			return errors.Wrapf(err, "item #%d", i)
		}
	}
	return nil
}

// BurnBatch destroys badges held by account. Only the catalog owner can
// burn.
func (c Controller) BurnBatch(db bazaar.KVStore, caller, account bazaar.Address, ids, quantities []uint64) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if err := requireOwner(conf, caller); err != nil {
		return err
	}
	if len(ids) != len(quantities) {
		return errors.Wrapf(ErrArityMismatch, "%d ids, %d quantities", len(ids), len(quantities))
	}
	for i, id := range ids {
		if err := validQuantity(quantities[i]); err != nil {
			return errors.Wrapf(err, "item #%d", i)
		}
		b, err := c.Get(db, id)
		if err != nil {
			return err
		}
		if err := c.addBalance(db, account, id, quantities[i], false); err != nil {
			return errors.Wrapf(err, "item #%d", i)
		}
		b.TotalSupply -= quantities[i]
		if _, err := c.badges.Put(db, idKey(id), b); err != nil {
			return err
		}
	}
	return nil
}

// SetSigner registers the public key attesting gated batches.
func (c Controller) SetSigner(db bazaar.KVStore, caller bazaar.Address, signer crypto.PublicKey) error {
	if err := roles.RequireGovernance(db, c.roles, caller); err != nil {
		return err
	}
	if len(signer) == 0 {
		return errors.Wrap(ErrZeroAddress, "signer")
	}
	if err := signer.Validate(); err != nil {
		return err
	}
	return c.updateConf(db, func(conf *Configuration) error {
		conf.Signer = signer
		return nil
	})
}

// SetURI changes the metadata URI template.
func (c Controller) SetURI(db bazaar.KVStore, caller bazaar.Address, uri string) error {
	return c.updateConf(db, func(conf *Configuration) error {
		if err := requireOwner(conf, caller); err != nil {
			return err
		}
		if uri == "" {
			return errors.Wrap(ErrEmptyString, "uri")
		}
		conf.URI = uri
		return nil
	})
}

// Pause blocks minting, purchases and transfers.
func (c Controller) Pause(db bazaar.KVStore, caller bazaar.Address) error {
	return c.setPaused(db, caller, true)
}

func (c Controller) Unpause(db bazaar.KVStore, caller bazaar.Address) error {
	return c.setPaused(db, caller, false)
}

func (c Controller) setPaused(db bazaar.KVStore, caller bazaar.Address, paused bool) error {
	return c.updateConf(db, func(conf *Configuration) error {
		if err := requireOwner(conf, caller); err != nil {
			return err
		}
		switch {
		case paused && conf.Paused:
			return ErrPaused
		case !paused && !conf.Paused:
			return ErrNotPaused
		}
		conf.Paused = paused
		return nil
	})
}

func (c Controller) updateConf(db bazaar.KVStore, fn func(*Configuration) error) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if err := fn(conf); err != nil {
		return err
	}
	return gconf.Save(db, packageName, conf)
}

func (c Controller) activeConf(db bazaar.ReadOnlyKVStore) (*Configuration, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if conf.Paused {
		return nil, ErrPaused
	}
	return conf, nil
}

func (c Controller) notPaused(db bazaar.ReadOnlyKVStore) error {
	_, err := c.activeConf(db)
	return err
}

func requireOwner(conf *Configuration, caller bazaar.Address) error {
	if caller.IsEmpty() || !conf.Owner.Equals(caller) {
		return errors.Wrapf(ErrNotOwner, "caller %s", caller)
	}
	return nil
}

// mintGated mints a single unit to an account that does not hold the badge
// yet.
func (c Controller) mintGated(db bazaar.KVStore, id uint64, to bazaar.Address) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	held, err := c.BalanceOf(db, to, id)
	if err != nil {
		return err
	}
	if held != 0 {
		return errors.Wrapf(ErrTokenAlreadyOwned, "badge %d", id)
	}
	return c.mint(db, id, to, 1)
}

// mint credits quantity units to an account and grows the total supply.
func (c Controller) mint(db bazaar.KVStore, id uint64, to bazaar.Address, quantity uint64) error {
	b, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if b.TotalSupply+quantity < b.TotalSupply {
		return errors.Wrapf(errors.ErrOverflow, "badge %d supply", id)
	}
	b.TotalSupply += quantity
	if _, err := c.badges.Put(db, idKey(id), b); err != nil {
		return err
	}
	return c.addBalance(db, to, id, quantity, true)
}

// addBalance credits or debits the balance of an account.
func (c Controller) addBalance(db bazaar.KVStore, owner bazaar.Address, id, quantity uint64, credit bool) error {
	held, err := c.BalanceOf(db, owner, id)
	if err != nil {
		return err
	}
	switch {
	case credit:
		if held+quantity < held {
			return errors.Wrapf(errors.ErrOverflow, "badge %d balance", id)
		}
		held += quantity
	case held < quantity:
		return errors.Wrapf(ErrInsufficientBalance, "badge %d: holds %d, needs %d", id, held, quantity)
	default:
		held -= quantity
	}

	key := balanceKey(owner, id)
	if held == 0 {
		return c.balances.Delete(db, key)
	}
	_, err = c.balances.Put(db, key, &Balance{Owner: owner, BadgeID: id, Quantity: held})
	return err
}

func validQuantity(q uint64) error {
	if q == 0 {
		return errors.Wrap(ErrInvalidAmount, "zero quantity")
	}
	if q > maxQuantity {
		return errors.Wrapf(ErrInvalidAmount, "quantity %d", q)
	}
	return nil
}
