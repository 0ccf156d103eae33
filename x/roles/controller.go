package roles

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// RoleReader is the read only view of the role registry that other
// extensions depend on.
type RoleReader interface {
	// Governance returns the current governance account. The null
	// address is returned once the role was renounced.
	Governance(db bazaar.ReadOnlyKVStore) (bazaar.Address, error)
	// IsMarketplace returns true if given account is an approved
	// marketplace.
	IsMarketplace(db bazaar.ReadOnlyKVStore, a bazaar.Address) (bool, error)
}

// Controller is the role registry. It is the only writer of the governance
// and marketplace buckets.
type Controller struct {
	governance   orm.ModelBucket
	marketplaces orm.ModelBucket
}

var _ RoleReader = Controller{}

// NewController returns a role registry.
func NewController() Controller {
	return Controller{
		governance:   NewGovernanceBucket(),
		marketplaces: NewMarketplaceBucket(),
	}
}

func (c Controller) Governance(db bazaar.ReadOnlyKVStore) (bazaar.Address, error) {
	var g Governance
	switch err := c.governance.One(db, governanceKey, &g); {
	case err == nil:
		return g.Address, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "load governance")
	}
}

func (c Controller) IsMarketplace(db bazaar.ReadOnlyKVStore, a bazaar.Address) (bool, error) {
	if a.IsEmpty() {
		return false, nil
	}
	switch err := c.marketplaces.Has(db, a); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, errors.Wrap(err, "load marketplace")
	}
}

// TransferGovernance hands the governance role over to next. Use
// RenounceGovernance to give up the role.
func (c Controller) TransferGovernance(db bazaar.KVStore, caller, next bazaar.Address) error {
	if err := RequireGovernance(db, c, caller); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return errors.Wrap(err, "new governance")
	}
	return c.setGovernance(db, next)
}

// RenounceGovernance sets the governance slot to the null address. This
// cannot be undone.
func (c Controller) RenounceGovernance(db bazaar.KVStore, caller bazaar.Address) error {
	if err := RequireGovernance(db, c, caller); err != nil {
		return err
	}
	return c.setGovernance(db, nil)
}

func (c Controller) setGovernance(db bazaar.KVStore, a bazaar.Address) error {
	g := &Governance{Address: a, Renounced: a.IsEmpty()}
	if _, err := c.governance.Put(db, governanceKey, g); err != nil {
		return errors.Wrap(err, "save governance")
	}
	return nil
}

// AddMarketplace approves a marketplace. Approving an already approved
// marketplace is a no-op.
func (c Controller) AddMarketplace(db bazaar.KVStore, height int64, caller, a bazaar.Address) error {
	if err := RequireGovernance(db, c, caller); err != nil {
		return err
	}
	if ok, err := c.IsMarketplace(db, a); err != nil || ok {
		return err
	}
	m := &Marketplace{Address: a, Height: height}
	if _, err := c.marketplaces.Put(db, a, m); err != nil {
		return errors.Wrap(err, "save marketplace")
	}
	return nil
}

// RemoveMarketplace revokes a marketplace approval. Removing an unknown
// marketplace is a no-op.
func (c Controller) RemoveMarketplace(db bazaar.KVStore, caller, a bazaar.Address) error {
	if err := RequireGovernance(db, c, caller); err != nil {
		return err
	}
	if ok, err := c.IsMarketplace(db, a); err != nil || !ok {
		return err
	}
	return c.marketplaces.Delete(db, a)
}

// IsGovernance returns true if given account currently holds the
// governance role. The null account never does.
func IsGovernance(db bazaar.ReadOnlyKVStore, r RoleReader, a bazaar.Address) (bool, error) {
	if a.IsEmpty() {
		return false, nil
	}
	gov, err := r.Governance(db)
	if err != nil {
		return false, err
	}
	return gov.Equals(a), nil
}

// RequireGovernance returns ErrUnauthorized unless caller holds the
// governance role.
func RequireGovernance(db bazaar.ReadOnlyKVStore, r RoleReader, caller bazaar.Address) error {
	gov, err := r.Governance(db)
	if err != nil {
		return err
	}
	if gov.IsEmpty() {
		return errors.Wrap(ErrRenounced, "no governance")
	}
	if caller.IsEmpty() || !gov.Equals(caller) {
		return errors.Wrapf(ErrNotGovernance, "caller %s", caller)
	}
	return nil
}
