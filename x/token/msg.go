package token

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
)

const (
	pathSendMsg    = "token/send"
	pathApproveMsg = "token/approve"

	maxMemoSize = 128
)

// SendMsg moves funds from the signer to the destination.
type SendMsg struct {
	Destination bazaar.Address `protobuf:"bytes,1,opt,name=destination,proto3,casttype=github.com/iov-one/bazaar.Address" json:"destination"`
	Amount      *coin.Coin     `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount"`
	Memo        string         `protobuf:"bytes,3,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ bazaar.Msg = (*SendMsg)(nil)

func (SendMsg) Path() string { return pathSendMsg }

func (m *SendMsg) Validate() error {
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == nil {
		return errors.Wrap(ErrInvalidAmount, "amount required")
	}
	if err := validAmount(*m.Amount); err != nil {
		return err
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo longer than %d", maxMemoSize)
	}
	return nil
}

// ApproveMsg sets the allowance of a spender over the signer's wallet. A
// zero amount revokes the allowance.
type ApproveMsg struct {
	Spender bazaar.Address `protobuf:"bytes,1,opt,name=spender,proto3,casttype=github.com/iov-one/bazaar.Address" json:"spender"`
	Amount  *coin.Coin     `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount"`
}

var _ bazaar.Msg = (*ApproveMsg)(nil)

func (ApproveMsg) Path() string { return pathApproveMsg }

func (m *ApproveMsg) Validate() error {
	if err := m.Spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	if m.Amount == nil {
		return errors.Wrap(ErrInvalidAmount, "amount required")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsNonNegative() {
		return errors.Wrap(ErrInvalidAmount, "negative allowance")
	}
	return nil
}
