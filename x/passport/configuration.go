package passport

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

const packageName = "passport"

// Configuration of the passport directory, stored with gconf.
type Configuration struct {
	// MaxPerAccount is the number of passports an account may receive
	// from minting. Zero means no limit.
	MaxPerAccount uint64 `protobuf:"varint,1,opt,name=max_per_account,json=maxPerAccount,proto3" json:"max_per_account,omitempty"`
	// SingleSignedPerAccount forbids signing a passport of an owner that
	// already holds another signed passport.
	SingleSignedPerAccount bool   `protobuf:"varint,2,opt,name=single_signed_per_account,json=singleSignedPerAccount,proto3" json:"single_signed_per_account,omitempty"`
	BaseURI                string `protobuf:"bytes,3,opt,name=base_uri,json=baseUri,proto3" json:"base_uri,omitempty"`
}

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if len(c.BaseURI) > 256 {
		return errors.Wrap(errors.ErrInput, "base uri too long")
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
