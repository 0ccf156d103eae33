package roles

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// Governance is the singleton holding the current governance account.
type Governance struct {
	Address bazaar.Address `protobuf:"bytes,1,opt,name=address,proto3,casttype=github.com/iov-one/bazaar.Address" json:"address,omitempty"`
	// Renounced is set together with an empty address.
	Renounced bool `protobuf:"varint,2,opt,name=renounced,proto3" json:"renounced,omitempty"`
}

func (m *Governance) Reset()         { *m = Governance{} }
func (m *Governance) String() string { return proto.CompactTextString(m) }
func (*Governance) ProtoMessage()    {}

var _ orm.Model = (*Governance)(nil)

func (m *Governance) Validate() error {
	if m.Renounced {
		if !m.Address.IsEmpty() {
			return errors.Wrap(errors.ErrModel, "renounced governance with an address")
		}
		return nil
	}
	return errors.Wrap(m.Address.Validate(), "address")
}

// Marketplace is an approved marketplace account. It is stored under its own
// address.
type Marketplace struct {
	Address bazaar.Address `protobuf:"bytes,1,opt,name=address,proto3,casttype=github.com/iov-one/bazaar.Address" json:"address,omitempty"`
	// Height is the block height of the approval.
	Height int64 `protobuf:"varint,2,opt,name=height,proto3" json:"height,omitempty"`
}

func (m *Marketplace) Reset()         { *m = Marketplace{} }
func (m *Marketplace) String() string { return proto.CompactTextString(m) }
func (*Marketplace) ProtoMessage()    {}

var _ orm.Model = (*Marketplace)(nil)

func (m *Marketplace) Validate() error {
	if err := m.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if m.Height < 0 {
		return errors.Wrap(errors.ErrModel, "negative height")
	}
	return nil
}

var governanceKey = []byte("current")

// NewGovernanceBucket returns a bucket holding the governance singleton.
func NewGovernanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("governance", &Governance{})
}

// NewMarketplaceBucket returns a bucket of approved marketplaces.
func NewMarketplaceBucket() orm.ModelBucket {
	return orm.NewModelBucket("marketplace", &Marketplace{})
}
