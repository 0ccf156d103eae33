package badge

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// Kind tells how a badge is distributed.
type Kind int32

const (
	KindPriced Kind = 1
	KindGated  Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindPriced:
		return "priced"
	case KindGated:
		return "gated"
	default:
		return "unknown"
	}
}

// Badge is a badge type, stored under its 8 byte big endian id.
type Badge struct {
	Kind Kind `protobuf:"varint,1,opt,name=kind,proto3,enum=badge.Kind" json:"kind,omitempty"`
	// Price of a single unit. Only priced badges have one.
	Price       *coin.Coin     `protobuf:"bytes,2,opt,name=price,proto3" json:"price,omitempty"`
	Creator     bazaar.Address `protobuf:"bytes,3,opt,name=creator,proto3,casttype=github.com/iov-one/bazaar.Address" json:"creator,omitempty"`
	TotalSupply uint64         `protobuf:"varint,4,opt,name=total_supply,json=totalSupply,proto3" json:"total_supply,omitempty"`
}

func (m *Badge) Reset()         { *m = Badge{} }
func (m *Badge) String() string { return proto.CompactTextString(m) }
func (*Badge) ProtoMessage()    {}

var _ orm.Model = (*Badge)(nil)

func (m *Badge) Validate() error {
	if err := m.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	switch m.Kind {
	case KindPriced:
		if m.Price == nil || !m.Price.IsPositive() {
			return errors.Wrap(ErrInvalidPrice, "priced badge")
		}
		return m.Price.Validate()
	case KindGated:
		if m.Price != nil {
			return errors.Wrap(errors.ErrModel, "gated badge has no price")
		}
		return nil
	default:
		return errors.Wrapf(errors.ErrModel, "kind %d", m.Kind)
	}
}

// Balance is the quantity of a badge held by an account. Empty balances are
// not stored.
type Balance struct {
	Owner    bazaar.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/bazaar.Address" json:"owner,omitempty"`
	BadgeID  uint64         `protobuf:"varint,2,opt,name=badge_id,json=badgeId,proto3" json:"badge_id,omitempty"`
	Quantity uint64         `protobuf:"varint,3,opt,name=quantity,proto3" json:"quantity,omitempty"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

var _ orm.Model = (*Balance)(nil)

func (m *Balance) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if m.BadgeID == 0 {
		return errors.Wrap(ErrTokenIDInvalid, "zero id")
	}
	if m.Quantity == 0 {
		return errors.Wrap(errors.ErrModel, "empty balance")
	}
	return nil
}

// NewBadgeBucket returns a bucket of badges with a sequence allocating ids.
func NewBadgeBucket() orm.ModelBucket {
	return orm.NewModelBucket("badge", &Badge{})
}

// NewBalanceBucket returns a bucket of badge balances indexed by owner.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("badge_balance", &Balance{},
		orm.WithIndex("owner", balanceOwnerIndexer, false))
}

func balanceOwnerIndexer(m orm.Model) ([][]byte, error) {
	b, ok := m.(*Balance)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return [][]byte{b.Owner}, nil
}

func idKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}

func balanceKey(owner bazaar.Address, id uint64) []byte {
	return append(append([]byte{}, owner...), idKey(id)...)
}
