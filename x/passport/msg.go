package passport

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

const (
	pathMintMsg                = "passport/mint"
	pathSignMsg                = "passport/sign"
	pathSetTokenURIMsg         = "passport/set_token_uri"
	pathSetNGTransferableMsg   = "passport/set_ng_transferable"
	pathPauseMsg               = "passport/pause"
	pathUnpauseMsg             = "passport/unpause"
	pathTransferMsg            = "passport/transfer"
	pathBurnMsg                = "passport/burn"
	pathUpdateConfigurationMsg = "passport/update_configuration"

	maxMintBatch = 256
)

// MintMsg mints a batch of passports. MetadataRefs is either empty or of
// the same length as Recipients.
type MintMsg struct {
	Recipients   []bazaar.Address `protobuf:"bytes,1,rep,name=recipients,proto3,casttype=github.com/iov-one/bazaar.Address" json:"recipients"`
	MetadataRefs []string         `protobuf:"bytes,2,rep,name=metadata_refs,json=metadataRefs,proto3" json:"metadata_refs,omitempty"`
}

func (MintMsg) Path() string { return pathMintMsg }

func (m *MintMsg) Validate() error {
	switch n := len(m.Recipients); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "recipients")
	case n > maxMintBatch:
		return errors.Wrapf(errors.ErrInput, "more than %d recipients", maxMintBatch)
	}
	if len(m.MetadataRefs) != 0 && len(m.MetadataRefs) != len(m.Recipients) {
		return errors.Wrapf(ErrArityMismatch, "%d recipients, %d refs", len(m.Recipients), len(m.MetadataRefs))
	}
	for i, r := range m.Recipients {
		if err := r.Validate(); err != nil {
			return errors.Wrapf(err, "recipient #%d", i)
		}
	}
	for i, ref := range m.MetadataRefs {
		if len(ref) > maxMetadataRefSize {
			return errors.Wrapf(errors.ErrInput, "metadata ref #%d too long", i)
		}
	}
	return nil
}

// SignMsg signs a passport.
type SignMsg struct {
	ID uint64 `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
}

func (SignMsg) Path() string { return pathSignMsg }

func (m *SignMsg) Validate() error { return validID(m.ID) }

// SetTokenURIMsg replaces the metadata reference of a passport.
type SetTokenURIMsg struct {
	ID          uint64 `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	MetadataRef string `protobuf:"bytes,2,opt,name=metadata_ref,json=metadataRef,proto3" json:"metadata_ref"`
}

func (SetTokenURIMsg) Path() string { return pathSetTokenURIMsg }

func (m *SetTokenURIMsg) Validate() error {
	if len(m.MetadataRef) > maxMetadataRefSize {
		return errors.Wrap(errors.ErrInput, "metadata ref too long")
	}
	return validID(m.ID)
}

// SetNGTransferableMsg changes the transfer policy of unsigned passports.
type SetNGTransferableMsg struct {
	Transferable bool `protobuf:"varint,1,opt,name=transferable,proto3" json:"transferable"`
}

func (SetNGTransferableMsg) Path() string     { return pathSetNGTransferableMsg }
func (*SetNGTransferableMsg) Validate() error { return nil }

// PauseMsg pauses the directory.
type PauseMsg struct{}

func (PauseMsg) Path() string     { return pathPauseMsg }
func (*PauseMsg) Validate() error { return nil }

// UnpauseMsg resumes the directory.
type UnpauseMsg struct{}

func (UnpauseMsg) Path() string     { return pathUnpauseMsg }
func (*UnpauseMsg) Validate() error { return nil }

// TransferMsg moves a passport. From must be the current owner.
type TransferMsg struct {
	From bazaar.Address `protobuf:"bytes,1,opt,name=from,proto3,casttype=github.com/iov-one/bazaar.Address" json:"from"`
	To   bazaar.Address `protobuf:"bytes,2,opt,name=to,proto3,casttype=github.com/iov-one/bazaar.Address" json:"to"`
	ID   uint64         `protobuf:"varint,3,opt,name=id,proto3" json:"id"`
}

func (TransferMsg) Path() string { return pathTransferMsg }

func (m *TransferMsg) Validate() error {
	if err := m.From.Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	return validID(m.ID)
}

// BurnMsg destroys a passport.
type BurnMsg struct {
	ID uint64 `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
}

func (BurnMsg) Path() string { return pathBurnMsg }

func (m *BurnMsg) Validate() error { return validID(m.ID) }

// UpdateConfigurationMsg patches the directory configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch"`
}

func (UpdateConfigurationMsg) Path() string { return pathUpdateConfigurationMsg }

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return m.Patch.Validate()
}

func validID(id uint64) error {
	if id == 0 {
		return errors.Wrap(ErrInvalidID, "ids start at 1")
	}
	return nil
}

var (
	_ bazaar.Msg = (*MintMsg)(nil)
	_ bazaar.Msg = (*SignMsg)(nil)
	_ bazaar.Msg = (*SetTokenURIMsg)(nil)
	_ bazaar.Msg = (*SetNGTransferableMsg)(nil)
	_ bazaar.Msg = (*PauseMsg)(nil)
	_ bazaar.Msg = (*UnpauseMsg)(nil)
	_ bazaar.Msg = (*TransferMsg)(nil)
	_ bazaar.Msg = (*BurnMsg)(nil)
	_ bazaar.Msg = (*UpdateConfigurationMsg)(nil)
)
