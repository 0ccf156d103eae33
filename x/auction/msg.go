package auction

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
)

const (
	pathCreateAuctionMsg       = "auction/create"
	pathPlaceBidMsg            = "auction/place_bid"
	pathCancelBidMsg           = "auction/cancel_bid"
	pathEndAuctionMsg          = "auction/end"
	pathCancelAuctionMsg       = "auction/cancel"
	pathUpdateConfigurationMsg = "auction/update_configuration"
)

// CreateAuctionMsg is sent by a passport owner to auction it.
type CreateAuctionMsg struct {
	PassportID uint64          `protobuf:"varint,1,opt,name=passport_id,json=passportId,proto3" json:"passport_id"`
	FloorPrice *coin.Coin      `protobuf:"bytes,2,opt,name=floor_price,json=floorPrice,proto3" json:"floor_price"`
	StartTime  bazaar.UnixTime `protobuf:"varint,3,opt,name=start_time,json=startTime,proto3,casttype=github.com/iov-one/bazaar.UnixTime" json:"start_time"`
	EndTime    bazaar.UnixTime `protobuf:"varint,4,opt,name=end_time,json=endTime,proto3,casttype=github.com/iov-one/bazaar.UnixTime" json:"end_time"`
}

func (CreateAuctionMsg) Path() string { return pathCreateAuctionMsg }

func (m *CreateAuctionMsg) Validate() error {
	if err := validID(m.PassportID); err != nil {
		return err
	}
	if err := validAmount(m.FloorPrice); err != nil {
		return errors.Wrap(err, "floor price")
	}
	if err := m.StartTime.Validate(); err != nil {
		return errors.Wrap(err, "start time")
	}
	if err := m.EndTime.Validate(); err != nil {
		return errors.Wrap(err, "end time")
	}
	if m.StartTime >= m.EndTime {
		return errors.Wrap(ErrInvalidTimes, "start must be before end")
	}
	return nil
}

type PlaceBidMsg struct {
	PassportID uint64     `protobuf:"varint,1,opt,name=passport_id,json=passportId,proto3" json:"passport_id"`
	Amount     *coin.Coin `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount"`
}

func (PlaceBidMsg) Path() string { return pathPlaceBidMsg }

func (m *PlaceBidMsg) Validate() error {
	if err := validID(m.PassportID); err != nil {
		return err
	}
	return validAmount(m.Amount)
}

type CancelBidMsg struct {
	PassportID uint64 `protobuf:"varint,1,opt,name=passport_id,json=passportId,proto3" json:"passport_id"`
}

func (CancelBidMsg) Path() string { return pathCancelBidMsg }

func (m *CancelBidMsg) Validate() error {
	return validID(m.PassportID)
}

// EndAuctionMsg is sent by the seller to accept the bid in WinningIndex.
type EndAuctionMsg struct {
	PassportID   uint64 `protobuf:"varint,1,opt,name=passport_id,json=passportId,proto3" json:"passport_id"`
	WinningIndex uint64 `protobuf:"varint,2,opt,name=winning_index,json=winningIndex,proto3" json:"winning_index"`
}

func (EndAuctionMsg) Path() string { return pathEndAuctionMsg }

func (m *EndAuctionMsg) Validate() error {
	if err := validID(m.PassportID); err != nil {
		return err
	}
	if m.WinningIndex == 0 {
		return errors.Wrap(ErrBidIndexInvalid, "slot 0 never holds a bid")
	}
	return nil
}

// CancelAuctionMsg is sent by the seller to withdraw an auction that has
// no open bids.
type CancelAuctionMsg struct {
	PassportID uint64 `protobuf:"varint,1,opt,name=passport_id,json=passportId,proto3" json:"passport_id"`
}

func (CancelAuctionMsg) Path() string { return pathCancelAuctionMsg }

func (m *CancelAuctionMsg) Validate() error {
	return validID(m.PassportID)
}

// UpdateConfigurationMsg patches the auction house configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch"`
}

func (UpdateConfigurationMsg) Path() string { return pathUpdateConfigurationMsg }

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return m.Patch.Validate()
}

func validID(id uint64) error {
	if id == 0 {
		return errors.Wrap(errors.ErrInput, "passport id")
	}
	return nil
}

func validAmount(c *coin.Coin) error {
	if c == nil {
		return errors.Wrap(ErrBidAmountInvalid, "missing")
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.IsPositive() {
		return errors.Wrapf(ErrBidAmountInvalid, "%s", c)
	}
	return nil
}
