package auction

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

const (
	packageName = "auction"

	// DefaultFeePercent is the house fee used when no configuration was
	// provided.
	DefaultFeePercent = 5
)

// Configuration of the auction house.
type Configuration struct {
	// FeePercent of every winning bid is kept by the house.
	FeePercent uint32 `protobuf:"varint,1,opt,name=fee_percent,json=feePercent,proto3" json:"fee_percent,omitempty"`
	// FeeCollector receives the fees. Without a collector fees stay in the
	// house account.
	FeeCollector bazaar.Address `protobuf:"bytes,2,opt,name=fee_collector,json=feeCollector,proto3,casttype=github.com/iov-one/bazaar.Address" json:"fee_collector,omitempty"`
}

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if c.FeePercent > 100 {
		return errors.Wrapf(errors.ErrInput, "fee percent %d", c.FeePercent)
	}
	if len(c.FeeCollector) != 0 {
		if err := c.FeeCollector.Validate(); err != nil {
			return errors.Wrap(err, "fee collector")
		}
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{FeePercent: DefaultFeePercent}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}
