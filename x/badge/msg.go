package badge

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
)

const (
	pathCreateBadgeMsg        = "badge/create"
	pathPurchaseBadgeMsg      = "badge/purchase"
	pathPurchaseBadgeBatchMsg = "badge/purchase_batch"
	pathGrantBadgeMsg         = "badge/grant"
	pathTransferBadgeMsg      = "badge/transfer"
	pathSetBadgePriceMsg      = "badge/set_price"
	pathSetCreatorMsg         = "badge/set_creator"
	pathSetRevenueAddressMsg  = "badge/set_revenue_address"
	pathCreateBatchMsg        = "badge/create_batch"
	pathCreateGatedBadgeMsg   = "badge/create_gated"
	pathMintBatchMsg          = "badge/mint_batch"
	pathBurnBatchMsg          = "badge/burn_batch"
	pathSetSignerMsg          = "badge/set_signer"
	pathSetURIMsg             = "badge/set_uri"
	pathPauseMsg              = "badge/pause"
	pathUnpauseMsg            = "badge/unpause"

	maxBatch = 256
)

type CreateBadgeMsg struct {
	Creator bazaar.Address `protobuf:"bytes,1,opt,name=creator,proto3,casttype=github.com/iov-one/bazaar.Address" json:"creator"`
	Price   *coin.Coin     `protobuf:"bytes,2,opt,name=price,proto3" json:"price"`
}

func (CreateBadgeMsg) Path() string { return pathCreateBadgeMsg }

func (m *CreateBadgeMsg) Validate() error {
	if err := m.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	return validPrice(m.Price)
}

type PurchaseBadgeMsg struct {
	ID       uint64 `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Quantity uint64 `protobuf:"varint,2,opt,name=quantity,proto3" json:"quantity"`
}

func (PurchaseBadgeMsg) Path() string { return pathPurchaseBadgeMsg }

func (m *PurchaseBadgeMsg) Validate() error {
	if err := validID(m.ID); err != nil {
		return err
	}
	return validQuantity(m.Quantity)
}

type PurchaseBadgeBatchMsg struct {
	IDs        []uint64 `protobuf:"varint,1,rep,packed,name=ids,proto3" json:"ids"`
	Quantities []uint64 `protobuf:"varint,2,rep,packed,name=quantities,proto3" json:"quantities"`
}

func (PurchaseBadgeBatchMsg) Path() string { return pathPurchaseBadgeBatchMsg }

func (m *PurchaseBadgeBatchMsg) Validate() error {
	return validBatch(m.IDs, m.Quantities)
}

// GrantBadgeMsg is sent by a badge creator to give units away.
type GrantBadgeMsg struct {
	Recipient bazaar.Address `protobuf:"bytes,1,opt,name=recipient,proto3,casttype=github.com/iov-one/bazaar.Address" json:"recipient"`
	ID        uint64         `protobuf:"varint,2,opt,name=id,proto3" json:"id"`
	Quantity  uint64         `protobuf:"varint,3,opt,name=quantity,proto3" json:"quantity"`
}

func (GrantBadgeMsg) Path() string { return pathGrantBadgeMsg }

func (m *GrantBadgeMsg) Validate() error {
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := validID(m.ID); err != nil {
		return err
	}
	return validQuantity(m.Quantity)
}

type TransferBadgeMsg struct {
	From     bazaar.Address `protobuf:"bytes,1,opt,name=from,proto3,casttype=github.com/iov-one/bazaar.Address" json:"from"`
	To       bazaar.Address `protobuf:"bytes,2,opt,name=to,proto3,casttype=github.com/iov-one/bazaar.Address" json:"to"`
	ID       uint64         `protobuf:"varint,3,opt,name=id,proto3" json:"id"`
	Quantity uint64         `protobuf:"varint,4,opt,name=quantity,proto3" json:"quantity"`
}

func (TransferBadgeMsg) Path() string { return pathTransferBadgeMsg }

func (m *TransferBadgeMsg) Validate() error {
	if err := m.From.Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	if err := validID(m.ID); err != nil {
		return err
	}
	return validQuantity(m.Quantity)
}

type SetBadgePriceMsg struct {
	ID    uint64     `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Price *coin.Coin `protobuf:"bytes,2,opt,name=price,proto3" json:"price"`
}

func (SetBadgePriceMsg) Path() string { return pathSetBadgePriceMsg }

func (m *SetBadgePriceMsg) Validate() error {
	if err := validID(m.ID); err != nil {
		return err
	}
	return validPrice(m.Price)
}

type SetCreatorMsg struct {
	ID      uint64         `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Creator bazaar.Address `protobuf:"bytes,2,opt,name=creator,proto3,casttype=github.com/iov-one/bazaar.Address" json:"creator"`
}

func (SetCreatorMsg) Path() string { return pathSetCreatorMsg }

func (m *SetCreatorMsg) Validate() error {
	if m.Creator.IsEmpty() {
		return errors.Wrap(ErrZeroAddress, "creator")
	}
	if err := m.Creator.Validate(); err != nil {
		return err
	}
	return validID(m.ID)
}

type SetRevenueAddressMsg struct {
	Address bazaar.Address `protobuf:"bytes,1,opt,name=address,proto3,casttype=github.com/iov-one/bazaar.Address" json:"address"`
}

func (SetRevenueAddressMsg) Path() string { return pathSetRevenueAddressMsg }

func (m *SetRevenueAddressMsg) Validate() error {
	if m.Address.IsEmpty() {
		return errors.Wrap(ErrZeroAddress, "revenue address")
	}
	return m.Address.Validate()
}

// CreateBatchMsg creates a gated badge. Signature is the signer attestation
// of CreateBatchDigest.
type CreateBatchMsg struct {
	Recipients []bazaar.Address `protobuf:"bytes,1,rep,name=recipients,proto3,casttype=github.com/iov-one/bazaar.Address" json:"recipients"`
	Signature  []byte           `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature"`
}

func (CreateBatchMsg) Path() string { return pathCreateBatchMsg }

func (m *CreateBatchMsg) Validate() error {
	return validRecipients(m.Recipients)
}

type CreateGatedBadgeMsg struct{}

func (CreateGatedBadgeMsg) Path() string     { return pathCreateGatedBadgeMsg }
func (*CreateGatedBadgeMsg) Validate() error { return nil }

// MintBatchMsg mints gated badges. Signature is the signer attestation of
// MintBatchDigest and is ignored for the catalog owner.
type MintBatchMsg struct {
	Recipients []bazaar.Address `protobuf:"bytes,1,rep,name=recipients,proto3,casttype=github.com/iov-one/bazaar.Address" json:"recipients"`
	IDs        []uint64         `protobuf:"varint,2,rep,packed,name=ids,proto3" json:"ids"`
	Signature  []byte           `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
}

func (MintBatchMsg) Path() string { return pathMintBatchMsg }

func (m *MintBatchMsg) Validate() error {
	if len(m.Recipients) != len(m.IDs) {
		return errors.Wrapf(ErrArityMismatch, "%d recipients, %d ids", len(m.Recipients), len(m.IDs))
	}
	if err := validRecipients(m.Recipients); err != nil {
		return err
	}
	for i, id := range m.IDs {
		if err := validID(id); err != nil {
			return errors.Wrapf(err, "item #%d", i)
		}
	}
	return nil
}

type BurnBatchMsg struct {
	Account    bazaar.Address `protobuf:"bytes,1,opt,name=account,proto3,casttype=github.com/iov-one/bazaar.Address" json:"account"`
	IDs        []uint64       `protobuf:"varint,2,rep,packed,name=ids,proto3" json:"ids"`
	Quantities []uint64       `protobuf:"varint,3,rep,packed,name=quantities,proto3" json:"quantities"`
}

func (BurnBatchMsg) Path() string { return pathBurnBatchMsg }

func (m *BurnBatchMsg) Validate() error {
	if err := m.Account.Validate(); err != nil {
		return errors.Wrap(err, "account")
	}
	return validBatch(m.IDs, m.Quantities)
}

type SetSignerMsg struct {
	Signer crypto.PublicKey `protobuf:"bytes,1,opt,name=signer,proto3,casttype=github.com/iov-one/bazaar/crypto.PublicKey" json:"signer"`
}

func (SetSignerMsg) Path() string { return pathSetSignerMsg }

func (m *SetSignerMsg) Validate() error {
	if len(m.Signer) == 0 {
		return errors.Wrap(ErrZeroAddress, "signer")
	}
	return m.Signer.Validate()
}

type SetURIMsg struct {
	URI string `protobuf:"bytes,1,opt,name=uri,proto3" json:"uri"`
}

func (SetURIMsg) Path() string { return pathSetURIMsg }

func (m *SetURIMsg) Validate() error {
	if m.URI == "" {
		return errors.Wrap(ErrEmptyString, "uri")
	}
	return nil
}

type PauseMsg struct{}

func (PauseMsg) Path() string     { return pathPauseMsg }
func (*PauseMsg) Validate() error { return nil }

type UnpauseMsg struct{}

func (UnpauseMsg) Path() string     { return pathUnpauseMsg }
func (*UnpauseMsg) Validate() error { return nil }

func validID(id uint64) error {
	if id == 0 {
		return errors.Wrap(ErrTokenIDInvalid, "ids start at 1")
	}
	return nil
}

func validPrice(p *coin.Coin) error {
	if p == nil || !p.IsPositive() {
		return errors.Wrap(ErrInvalidPrice, "price must be positive")
	}
	return p.Validate()
}

func validBatch(ids, quantities []uint64) error {
	if len(ids) != len(quantities) {
		return errors.Wrapf(ErrArityMismatch, "%d ids, %d quantities", len(ids), len(quantities))
	}
	switch n := len(ids); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "ids")
	case n > maxBatch:
		return errors.Wrapf(errors.ErrInput, "more than %d items", maxBatch)
	}
	for i := range ids {
		if err := validID(ids[i]); err != nil {
			return errors.Wrapf(err, "item #%d", i)
		}
		if err := validQuantity(quantities[i]); err != nil {
			return errors.Wrapf(err, "item #%d", i)
		}
	}
	return nil
}

func validRecipients(recipients []bazaar.Address) error {
	switch n := len(recipients); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "recipients")
	case n > maxBatch:
		return errors.Wrapf(errors.ErrInput, "more than %d recipients", maxBatch)
	}
	for i, r := range recipients {
		if err := r.Validate(); err != nil {
			return errors.Wrapf(err, "recipient #%d", i)
		}
	}
	return nil
}
