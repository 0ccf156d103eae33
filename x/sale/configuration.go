package sale

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

const packageName = "sale"

// Configuration of the sale desk.
type Configuration struct {
	NativeTicker string `protobuf:"bytes,1,opt,name=native_ticker,json=nativeTicker,proto3" json:"native_ticker,omitempty"`
	AltTicker    string `protobuf:"bytes,2,opt,name=alt_ticker,json=altTicker,proto3" json:"alt_ticker,omitempty"`
	// RoyaltyPercent of every sale is paid to the passport creator.
	RoyaltyPercent uint32 `protobuf:"varint,3,opt,name=royalty_percent,json=royaltyPercent,proto3" json:"royalty_percent,omitempty"`
	// SaleStartDate is the block time from which passports can be listed.
	SaleStartDate bazaar.UnixTime `protobuf:"varint,4,opt,name=sale_start_date,json=saleStartDate,proto3,casttype=github.com/iov-one/bazaar.UnixTime" json:"sale_start_date,omitempty"`
}

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if !coin.IsCC(c.NativeTicker) {
		return errors.Wrapf(errors.ErrCurrency, "native ticker %q", c.NativeTicker)
	}
	if !coin.IsCC(c.AltTicker) {
		return errors.Wrapf(errors.ErrCurrency, "alt ticker %q", c.AltTicker)
	}
	if c.NativeTicker == c.AltTicker {
		return errors.Wrap(errors.ErrCurrency, "both currencies are the same")
	}
	if c.RoyaltyPercent > 100 {
		return errors.Wrapf(errors.ErrInput, "royalty percent %d", c.RoyaltyPercent)
	}
	return c.SaleStartDate.Validate()
}

func (c *Configuration) ticker(cur Currency) string {
	if cur == CurrencyAlt {
		return c.AltTicker
	}
	return c.NativeTicker
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
