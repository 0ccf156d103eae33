package badge

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

const packageName = "badge"

// Configuration is the catalog state kept with gconf. It is initialized
// from genesis and changed only by the catalog operations.
type Configuration struct {
	// Owner is the administrative account of gated badges.
	Owner bazaar.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/bazaar.Address" json:"owner,omitempty"`
	// Signer attests gated badge batches.
	Signer         crypto.PublicKey `protobuf:"bytes,2,opt,name=signer,proto3,casttype=github.com/iov-one/bazaar/crypto.PublicKey" json:"signer,omitempty"`
	RevenueAddress bazaar.Address   `protobuf:"bytes,3,opt,name=revenue_address,json=revenueAddress,proto3,casttype=github.com/iov-one/bazaar.Address" json:"revenue_address,omitempty"`
	URI            string           `protobuf:"bytes,4,opt,name=uri,proto3" json:"uri,omitempty"`
	Paused         bool             `protobuf:"varint,5,opt,name=paused,proto3" json:"paused,omitempty"`
}

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := c.RevenueAddress.Validate(); err != nil {
		return errors.Wrap(err, "revenue address")
	}
	if len(c.Signer) != 0 {
		if err := c.Signer.Validate(); err != nil {
			return errors.Wrap(err, "signer")
		}
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
