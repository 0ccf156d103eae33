package sale

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// Currency selects the price a buyer pays.
type Currency uint32

const (
	CurrencyNative Currency = 0
	CurrencyAlt    Currency = 1
)

func (c Currency) String() string {
	switch c {
	case CurrencyNative:
		return "native"
	case CurrencyAlt:
		return "alt"
	default:
		return "invalid"
	}
}

// Listing of a passport, stored under the passport id. A closed listing is
// kept so that the prices can be changed before reopening it.
type Listing struct {
	Seller      bazaar.Address `protobuf:"bytes,1,opt,name=seller,proto3,casttype=github.com/iov-one/bazaar.Address" json:"seller,omitempty"`
	PriceNative *coin.Coin     `protobuf:"bytes,2,opt,name=price_native,json=priceNative,proto3" json:"price_native,omitempty"`
	PriceAlt    *coin.Coin     `protobuf:"bytes,3,opt,name=price_alt,json=priceAlt,proto3" json:"price_alt,omitempty"`
	Open        bool           `protobuf:"varint,4,opt,name=open,proto3" json:"open,omitempty"`
}

func (m *Listing) Reset()         { *m = Listing{} }
func (m *Listing) String() string { return proto.CompactTextString(m) }
func (*Listing) ProtoMessage()    {}

var _ orm.Model = (*Listing)(nil)

func (m *Listing) Validate() error {
	if err := m.Seller.Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if m.PriceNative == nil || m.PriceAlt == nil {
		return errors.Wrap(errors.ErrModel, "missing price")
	}
	if !m.PriceNative.IsNonNegative() || !m.PriceAlt.IsNonNegative() {
		return errors.Wrap(ErrPricesInvalid, "negative price")
	}
	if m.Open && m.PriceNative.IsZero() && m.PriceAlt.IsZero() {
		return errors.Wrap(ErrPricesInvalid, "open listing without a price")
	}
	return nil
}

// Price returns the price in the selected currency.
func (m *Listing) Price(c Currency) (coin.Coin, error) {
	switch c {
	case CurrencyNative:
		return *m.PriceNative, nil
	case CurrencyAlt:
		return *m.PriceAlt, nil
	default:
		return coin.Coin{}, errors.Wrapf(ErrCurrencyFlagInvalid, "%d", c)
	}
}

func NewListingBucket() orm.ModelBucket {
	return orm.NewModelBucket("sale_listing", &Listing{},
		orm.WithIndex("seller", sellerIndexer, false))
}

func sellerIndexer(m orm.Model) ([][]byte, error) {
	l, ok := m.(*Listing)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return [][]byte{l.Seller}, nil
}

func idKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}
