package passport

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// Passport is stored under its 8 byte big endian id.
type Passport struct {
	Owner bazaar.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/bazaar.Address" json:"owner,omitempty"`
	// Creator is the account the passport was minted to.
	Creator     bazaar.Address `protobuf:"bytes,2,opt,name=creator,proto3,casttype=github.com/iov-one/bazaar.Address" json:"creator,omitempty"`
	MetadataRef string         `protobuf:"bytes,3,opt,name=metadata_ref,json=metadataRef,proto3" json:"metadata_ref,omitempty"`
	Signed      bool           `protobuf:"varint,4,opt,name=signed,proto3" json:"signed,omitempty"`
}

func (m *Passport) Reset()         { *m = Passport{} }
func (m *Passport) String() string { return proto.CompactTextString(m) }
func (*Passport) ProtoMessage()    {}

var _ orm.Model = (*Passport)(nil)

const maxMetadataRefSize = 256

func (m *Passport) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if len(m.MetadataRef) > maxMetadataRefSize {
		return errors.Wrapf(errors.ErrInput, "metadata ref longer than %d", maxMetadataRefSize)
	}
	return nil
}

// Policy is the governance controlled state of the directory.
type Policy struct {
	NGTransferable bool `protobuf:"varint,1,opt,name=ng_transferable,json=ngTransferable,proto3" json:"ng_transferable,omitempty"`
	Paused         bool `protobuf:"varint,2,opt,name=paused,proto3" json:"paused,omitempty"`
}

func (m *Policy) Reset()         { *m = Policy{} }
func (m *Policy) String() string { return proto.CompactTextString(m) }
func (*Policy) ProtoMessage()    {}

var _ orm.Model = (*Policy)(nil)

func (*Policy) Validate() error { return nil }

// MintCount is the number of passports ever minted to an account. It never
// decreases, so transferring a passport away does not free capacity.
type MintCount struct {
	Count uint64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *MintCount) Reset()         { *m = MintCount{} }
func (m *MintCount) String() string { return proto.CompactTextString(m) }
func (*MintCount) ProtoMessage()    {}

var _ orm.Model = (*MintCount)(nil)

func (m *MintCount) Validate() error {
	if m.Count == 0 {
		return errors.Wrap(errors.ErrModel, "zero mint count")
	}
	return nil
}

var policyKey = []byte("policy")

// NewPassportBucket returns a bucket of passports indexed by their owner.
func NewPassportBucket() orm.ModelBucket {
	return orm.NewModelBucket("passport", &Passport{},
		orm.WithIndex("owner", ownerIndexer, false))
}

func ownerIndexer(m orm.Model) ([][]byte, error) {
	p, ok := m.(*Passport)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return [][]byte{p.Owner}, nil
}

// NewPolicyBucket returns a bucket holding the policy singleton.
func NewPolicyBucket() orm.ModelBucket {
	return orm.NewModelBucket("passport_policy", &Policy{})
}

// NewMintCountBucket returns a bucket of per account mint counters.
func NewMintCountBucket() orm.ModelBucket {
	return orm.NewModelBucket("passport_mints", &MintCount{})
}

// idKey returns the primary key of the passport with given id.
func idKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}
