package roles

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

const (
	pathTransferGovernanceMsg = "roles/transfer_governance"
	pathRenounceGovernanceMsg = "roles/renounce_governance"
	pathAddMarketplaceMsg     = "roles/add_marketplace"
	pathRemoveMarketplaceMsg  = "roles/remove_marketplace"
)

// TransferGovernanceMsg hands the governance role over to another account.
type TransferGovernanceMsg struct {
	NewGovernance bazaar.Address `protobuf:"bytes,1,opt,name=new_governance,json=newGovernance,proto3,casttype=github.com/iov-one/bazaar.Address" json:"new_governance"`
}

var _ bazaar.Msg = (*TransferGovernanceMsg)(nil)

func (TransferGovernanceMsg) Path() string { return pathTransferGovernanceMsg }

func (m *TransferGovernanceMsg) Validate() error {
	return errors.Wrap(m.NewGovernance.Validate(), "new governance")
}

// RenounceGovernanceMsg gives up the governance role for good.
type RenounceGovernanceMsg struct{}

var _ bazaar.Msg = (*RenounceGovernanceMsg)(nil)

func (RenounceGovernanceMsg) Path() string     { return pathRenounceGovernanceMsg }
func (*RenounceGovernanceMsg) Validate() error { return nil }

// AddMarketplaceMsg approves a marketplace account.
type AddMarketplaceMsg struct {
	Marketplace bazaar.Address `protobuf:"bytes,1,opt,name=marketplace,proto3,casttype=github.com/iov-one/bazaar.Address" json:"marketplace"`
}

var _ bazaar.Msg = (*AddMarketplaceMsg)(nil)

func (AddMarketplaceMsg) Path() string { return pathAddMarketplaceMsg }

func (m *AddMarketplaceMsg) Validate() error {
	return errors.Wrap(m.Marketplace.Validate(), "marketplace")
}

// RemoveMarketplaceMsg revokes a marketplace approval.
type RemoveMarketplaceMsg struct {
	Marketplace bazaar.Address `protobuf:"bytes,1,opt,name=marketplace,proto3,casttype=github.com/iov-one/bazaar.Address" json:"marketplace"`
}

var _ bazaar.Msg = (*RemoveMarketplaceMsg)(nil)

func (RemoveMarketplaceMsg) Path() string { return pathRemoveMarketplaceMsg }

func (m *RemoveMarketplaceMsg) Validate() error {
	return errors.Wrap(m.Marketplace.Validate(), "marketplace")
}
