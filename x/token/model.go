package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// Wallet is the balance of a single currency held by an account.
type Wallet struct {
	Owner   bazaar.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/bazaar.Address" json:"owner,omitempty"`
	Balance *coin.Coin     `protobuf:"bytes,2,opt,name=balance,proto3" json:"balance,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

var _ orm.Model = (*Wallet)(nil)

func (m *Wallet) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if m.Balance == nil {
		return errors.Wrap(errors.ErrEmpty, "balance")
	}
	if err := m.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	if !m.Balance.IsNonNegative() {
		return errors.Wrap(ErrInsufficientFunds, "negative balance")
	}
	return nil
}

// Allowance is the amount a spender may still move out of the owner's
// wallet.
type Allowance struct {
	Owner   bazaar.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/bazaar.Address" json:"owner,omitempty"`
	Spender bazaar.Address `protobuf:"bytes,2,opt,name=spender,proto3,casttype=github.com/iov-one/bazaar.Address" json:"spender,omitempty"`
	Amount  *coin.Coin     `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Allowance) Reset()         { *m = Allowance{} }
func (m *Allowance) String() string { return proto.CompactTextString(m) }
func (*Allowance) ProtoMessage()    {}

var _ orm.Model = (*Allowance)(nil)

func (m *Allowance) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	if m.Amount == nil {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsNonNegative() {
		return errors.Wrap(ErrInvalidAmount, "negative allowance")
	}
	return nil
}

// walletKey is <owner><ticker>. Addresses have a fixed length, so the key
// is unambiguous.
func walletKey(owner bazaar.Address, ticker string) []byte {
	return append(append([]byte{}, owner...), ticker...)
}

// allowanceKey is <owner><spender><ticker>.
func allowanceKey(owner, spender bazaar.Address, ticker string) []byte {
	k := append(append([]byte{}, owner...), spender...)
	return append(k, ticker...)
}

// NewWalletBucket returns a bucket of wallets with an index by owner.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("wallet", &Wallet{},
		orm.WithIndex("owner", walletOwnerIndexer, false))
}

func walletOwnerIndexer(m orm.Model) ([][]byte, error) {
	w, ok := m.(*Wallet)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return [][]byte{w.Owner}, nil
}

// NewAllowanceBucket returns a bucket of allowances.
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("allowance", &Allowance{})
}
