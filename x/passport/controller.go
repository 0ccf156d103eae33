package passport

import (
	"strconv"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
	"github.com/iov-one/bazaar/x/roles"
)

// Custody is the view of the directory used by the exchange extensions.
type Custody interface {
	OwnerOf(db bazaar.ReadOnlyKVStore, id uint64) (bazaar.Address, error)
	IsSigned(db bazaar.ReadOnlyKVStore, id uint64) (bool, error)
	Creator(db bazaar.ReadOnlyKVStore, id uint64) (bazaar.Address, error)
	Transfer(db bazaar.KVStore, caller, from, to bazaar.Address, id uint64) error
}

// Controller is the passport directory.
type Controller struct {
	roles     roles.RoleReader
	passports orm.ModelBucket
	policy    orm.ModelBucket
	mints     orm.ModelBucket
}

var _ Custody = Controller{}

// NewController returns a passport directory that consults given role
// registry for authorization.
func NewController(r roles.RoleReader) Controller {
	return Controller{
		roles:     r,
		passports: NewPassportBucket(),
		policy:    NewPolicyBucket(),
		mints:     NewMintCountBucket(),
	}
}

// Get returns the passport with given id, or ErrInvalidID if it does not
// exist.
func (c Controller) Get(db bazaar.ReadOnlyKVStore, id uint64) (*Passport, error) {
	var p Passport
	switch err := c.passports.One(db, idKey(id), &p); {
	case err == nil:
		return &p, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrInvalidID, "passport %d", id)
	default:
		return nil, err
	}
}

// Exists returns true if a passport with given id was minted and not
// burned.
func (c Controller) Exists(db bazaar.ReadOnlyKVStore, id uint64) (bool, error) {
	switch err := c.passports.Has(db, idKey(id)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

func (c Controller) OwnerOf(db bazaar.ReadOnlyKVStore, id uint64) (bazaar.Address, error) {
	p, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	return p.Owner, nil
}

func (c Controller) IsSigned(db bazaar.ReadOnlyKVStore, id uint64) (bool, error) {
	p, err := c.Get(db, id)
	if err != nil {
		return false, err
	}
	return p.Signed, nil
}

func (c Controller) Creator(db bazaar.ReadOnlyKVStore, id uint64) (bazaar.Address, error) {
	p, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	return p.Creator, nil
}

// OwnedBy returns ids of all passports held by owner, in ascending order.
func (c Controller) OwnedBy(db bazaar.ReadOnlyKVStore, owner bazaar.Address) ([]uint64, error) {
	var passports []*Passport
	keys, err := c.passports.ByIndex(db, "owner", owner, &passports)
	if err != nil {
		return nil, errors.Wrap(err, "passports by owner")
	}
	ids := make([]uint64, len(keys))
	for i, k := range keys {
		ids[i] = orm.DecodeSequence(k)
	}
	return ids, nil
}

// LatestID returns the highest id ever allocated.
func (c Controller) LatestID(db bazaar.ReadOnlyKVStore) (uint64, error) {
	return c.passports.Sequence().Latest(db)
}

// TokenURI returns the configured base URI followed by the metadata
// reference of the passport, or by its id if it has no reference.
func (c Controller) TokenURI(db bazaar.ReadOnlyKVStore, id uint64) (string, error) {
	p, err := c.Get(db, id)
	if err != nil {
		return "", err
	}
	conf, err := loadConf(db)
	if err != nil {
		return "", err
	}
	if p.MetadataRef == "" {
		return conf.BaseURI + strconv.FormatUint(id, 10), nil
	}
	return conf.BaseURI + p.MetadataRef, nil
}

// Policy returns the current directory policy.
func (c Controller) Policy(db bazaar.ReadOnlyKVStore) (*Policy, error) {
	var p Policy
	switch err := c.policy.One(db, policyKey, &p); {
	case err == nil, errors.ErrNotFound.Is(err):
		return &p, nil
	default:
		return nil, errors.Wrap(err, "load policy")
	}
}

func (c Controller) notPaused(db bazaar.ReadOnlyKVStore) (*Policy, error) {
	p, err := c.Policy(db)
	if err != nil {
		return nil, err
	}
	if p.Paused {
		return nil, ErrPaused
	}
	return p, nil
}

// Mint allocates a new passport for every recipient. With a per account cap
// configured, recipients that already reached it are skipped and the batch
// continues. Returned are the ids of minted passports, in recipient order.
// An empty refs list mints passports without metadata references.
func (c Controller) Mint(db bazaar.KVStore, caller bazaar.Address, recipients []bazaar.Address, refs []string) ([]uint64, error) {
	if _, err := c.notPaused(db); err != nil {
		return nil, err
	}
	if err := roles.RequireGovernance(db, c.roles, caller); err != nil {
		return nil, err
	}
	if len(refs) != 0 && len(refs) != len(recipients) {
		return nil, errors.Wrapf(ErrArityMismatch, "%d recipients, %d refs", len(recipients), len(refs))
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	var ids []uint64
	for i, to := range recipients {
		if err := to.Validate(); err != nil {
			return nil, errors.Wrapf(err, "recipient #%d", i)
		}
		var count MintCount
		if err := c.mints.One(db, to, &count); err != nil && !errors.ErrNotFound.Is(err) {
			return nil, err
		}
		if conf.MaxPerAccount > 0 && count.Count >= conf.MaxPerAccount {
			continue
		}
		count.Count++
		if _, err := c.mints.Put(db, to, &count); err != nil {
			return nil, errors.Wrap(err, "save mint count")
		}

		p := &Passport{Owner: to, Creator: to}
		if len(refs) != 0 {
			p.MetadataRef = refs[i]
		}
		key, err := c.passports.Put(db, nil, p)
		if err != nil {
			return nil, errors.Wrapf(err, "recipient #%d", i)
		}
		ids = append(ids, orm.DecodeSequence(key))
	}
	return ids, nil
}

// Sign marks the passport as signed. Signing is terminal.
func (c Controller) Sign(db bazaar.KVStore, caller bazaar.Address, id uint64) error {
	if _, err := c.notPaused(db); err != nil {
		return err
	}
	if err := roles.RequireGovernance(db, c.roles, caller); err != nil {
		return err
	}
	p, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if p.Signed {
		return nil
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if conf.SingleSignedPerAccount {
		var owned []*Passport
		keys, err := c.passports.ByIndex(db, "owner", p.Owner, &owned)
		if err != nil {
			return errors.Wrap(err, "passports by owner")
		}
		for i, o := range owned {
			if o.Signed {
				return errors.Wrapf(ErrAlreadySigned, "passport %d", orm.DecodeSequence(keys[i]))
			}
		}
	}
	p.Signed = true
	_, err = c.passports.Put(db, idKey(id), p)
	return err
}

// SetTokenURI replaces the metadata reference of a passport.
func (c Controller) SetTokenURI(db bazaar.KVStore, caller bazaar.Address, id uint64, ref string) error {
	if err := roles.RequireGovernance(db, c.roles, caller); err != nil {
		return err
	}
	p, err := c.Get(db, id)
	if err != nil {
		return err
	}
	p.MetadataRef = ref
	_, err = c.passports.Put(db, idKey(id), p)
	return err
}

// SetNGTransferable sets whether non governance callers can transfer
// unsigned passports.
func (c Controller) SetNGTransferable(db bazaar.KVStore, caller bazaar.Address, transferable bool) error {
	if err := roles.RequireGovernance(db, c.roles, caller); err != nil {
		return err
	}
	p, err := c.Policy(db)
	if err != nil {
		return err
	}
	p.NGTransferable = transferable
	_, err = c.policy.Put(db, policyKey, p)
	return err
}

// Pause blocks mint, sign, transfer and burn.
func (c Controller) Pause(db bazaar.KVStore, caller bazaar.Address) error {
	return c.setPaused(db, caller, true)
}

func (c Controller) Unpause(db bazaar.KVStore, caller bazaar.Address) error {
	return c.setPaused(db, caller, false)
}

func (c Controller) setPaused(db bazaar.KVStore, caller bazaar.Address, paused bool) error {
	if err := roles.RequireGovernance(db, c.roles, caller); err != nil {
		return err
	}
	p, err := c.Policy(db)
	if err != nil {
		return err
	}
	switch {
	case paused && p.Paused:
		return ErrPaused
	case !paused && !p.Paused:
		return ErrNotPaused
	}
	p.Paused = paused
	_, err = c.policy.Put(db, policyKey, p)
	return err
}

// Transfer moves a passport from one account to another. Rules are
// applied in order:
//
//   1. governance can always transfer,
//   2. signed passports cannot be transferred,
//   3. unsigned passports cannot be transferred when the policy forbids it,
//      unless the caller is a marketplace.
//
// Apart from governance, the caller must be the owner or a marketplace.
func (c Controller) Transfer(db bazaar.KVStore, caller, from, to bazaar.Address, id uint64) error {
	policy, err := c.notPaused(db)
	if err != nil {
		return err
	}
	p, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if !p.Owner.Equals(from) {
		return errors.Wrapf(ErrNotOwner, "%s does not own passport %d", from, id)
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}

	isGov, err := roles.IsGovernance(db, c.roles, caller)
	if err != nil {
		return err
	}
	if !isGov {
		isMarket, err := c.roles.IsMarketplace(db, caller)
		if err != nil {
			return err
		}
		switch {
		case p.Signed:
			return errors.Wrapf(ErrSignedNotTransferable, "passport %d", id)
		case !policy.NGTransferable && !isMarket:
			return errors.Wrapf(ErrNotTransferableByPolicy, "passport %d", id)
		case !isMarket && (caller.IsEmpty() || !caller.Equals(p.Owner)):
			return errors.Wrapf(errors.ErrUnauthorized, "caller %s", caller)
		}
	}

	p.Owner = to
	if _, err := c.passports.Put(db, idKey(id), p); err != nil {
		return errors.Wrap(err, "save passport")
	}
	return nil
}

// Burn destroys an unsigned passport. Only the owner can burn it.
func (c Controller) Burn(db bazaar.KVStore, caller bazaar.Address, id uint64) error {
	if _, err := c.notPaused(db); err != nil {
		return err
	}
	p, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if caller.IsEmpty() || !p.Owner.Equals(caller) {
		return errors.Wrapf(ErrNotOwner, "passport %d", id)
	}
	if p.Signed {
		return errors.Wrapf(ErrSignedNotBurnable, "passport %d", id)
	}
	return c.passports.Delete(db, idKey(id))
}
