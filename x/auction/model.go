package auction

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// Auction is stored under the id of the auctioned passport, so there is at
// most one open auction per passport.
type Auction struct {
	PassportID uint64          `protobuf:"varint,1,opt,name=passport_id,json=passportId,proto3" json:"passport_id,omitempty"`
	Seller     bazaar.Address  `protobuf:"bytes,2,opt,name=seller,proto3,casttype=github.com/iov-one/bazaar.Address" json:"seller,omitempty"`
	FloorPrice *coin.Coin      `protobuf:"bytes,3,opt,name=floor_price,json=floorPrice,proto3" json:"floor_price,omitempty"`
	StartTime  bazaar.UnixTime `protobuf:"varint,4,opt,name=start_time,json=startTime,proto3,casttype=github.com/iov-one/bazaar.UnixTime" json:"start_time,omitempty"`
	EndTime    bazaar.UnixTime `protobuf:"varint,5,opt,name=end_time,json=endTime,proto3,casttype=github.com/iov-one/bazaar.UnixTime" json:"end_time,omitempty"`
	// Bids are kept in stable slots. Slot 0 is always empty, a cancelled
	// bid leaves an empty slot behind that the next bidder reuses.
	Bids []*Bid `protobuf:"bytes,6,rep,name=bids,proto3" json:"bids,omitempty"`
}

func (m *Auction) Reset()         { *m = Auction{} }
func (m *Auction) String() string { return proto.CompactTextString(m) }
func (*Auction) ProtoMessage()    {}

var _ orm.Model = (*Auction)(nil)

func (m *Auction) Validate() error {
	if m.PassportID == 0 {
		return errors.Wrap(errors.ErrModel, "passport id")
	}
	if err := m.Seller.Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if m.FloorPrice == nil || !m.FloorPrice.IsPositive() {
		return errors.Wrap(ErrBidAmountInvalid, "floor price must be positive")
	}
	if err := m.FloorPrice.Validate(); err != nil {
		return errors.Wrap(err, "floor price")
	}
	if m.StartTime >= m.EndTime {
		return errors.Wrap(ErrInvalidTimes, "start must be before end")
	}
	if len(m.Bids) == 0 || !m.Bids[0].IsEmpty() {
		return errors.Wrap(errors.ErrModel, "missing sentinel bid")
	}
	for i, b := range m.Bids[1:] {
		if b == nil {
			return errors.Wrapf(errors.ErrModel, "nil bid #%d", i+1)
		}
		if b.IsEmpty() {
			continue
		}
		if err := b.Bidder.Validate(); err != nil {
			return errors.Wrapf(err, "bid #%d", i+1)
		}
		if b.Amount == nil || !b.Amount.SameType(*m.FloorPrice) || !b.Amount.IsGTE(*m.FloorPrice) {
			return errors.Wrapf(ErrBidAmountInvalid, "bid #%d", i+1)
		}
	}
	return nil
}

// slotOf returns the slot of bidder, or 0 if bidder has no open bid.
func (m *Auction) slotOf(bidder bazaar.Address) int {
	for i, b := range m.Bids {
		if i != 0 && bidder.Equals(b.Bidder) {
			return i
		}
	}
	return 0
}

// freeSlot returns the first empty slot, growing the list if none is free.
func (m *Auction) freeSlot() int {
	for i, b := range m.Bids {
		if i != 0 && b.IsEmpty() {
			return i
		}
	}
	m.Bids = append(m.Bids, &Bid{})
	return len(m.Bids) - 1
}

// BidCount returns the number of open bids.
func (m *Auction) BidCount() int {
	var n int
	for _, b := range m.Bids[1:] {
		if !b.IsEmpty() {
			n++
		}
	}
	return n
}

// Bid is an escrowed offer. An empty bid marks a free slot.
type Bid struct {
	Bidder bazaar.Address `protobuf:"bytes,1,opt,name=bidder,proto3,casttype=github.com/iov-one/bazaar.Address" json:"bidder,omitempty"`
	Amount *coin.Coin     `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Bid) Reset()         { *m = Bid{} }
func (m *Bid) String() string { return proto.CompactTextString(m) }
func (*Bid) ProtoMessage()    {}

func (m *Bid) IsEmpty() bool {
	return m == nil || len(m.Bidder) == 0
}

// NewAuctionBucket returns a bucket of auctions indexed by seller.
func NewAuctionBucket() orm.ModelBucket {
	return orm.NewModelBucket("auction", &Auction{},
		orm.WithIndex("seller", sellerIndexer, false))
}

func sellerIndexer(m orm.Model) ([][]byte, error) {
	a, ok := m.(*Auction)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return [][]byte{a.Seller}, nil
}

func idKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}
