package auction

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
	"github.com/iov-one/bazaar/x/passport"
	"github.com/iov-one/bazaar/x/token"
	"github.com/iov-one/bazaar/x/utils"
)

// HouseAddress holds auctioned passports and escrowed bids. Bidders approve
// it to pull their bids.
var HouseAddress = bazaar.NewCondition("auction", "house", nil).Address()

// Controller is the auction house.
type Controller struct {
	custody  passport.Custody
	bank     token.Bank
	auctions orm.ModelBucket
	bidGuard utils.Guard
	endGuard utils.Guard
}

// NewController returns an auction house that keeps passports in custody
// and bids in escrow using given extensions.
func NewController(custody passport.Custody, bank token.Bank) Controller {
	return Controller{
		custody:  custody,
		bank:     bank,
		auctions: NewAuctionBucket(),
		bidGuard: utils.NewGuard("auction/bid"),
		endGuard: utils.NewGuard("auction/end"),
	}
}

// Get returns the open auction of a passport, or ErrAuctionNotExist.
func (c Controller) Get(db bazaar.ReadOnlyKVStore, passportID uint64) (*Auction, error) {
	var a Auction
	switch err := c.auctions.One(db, idKey(passportID), &a); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrAuctionNotExist, "passport %d", passportID)
	default:
		return nil, err
	}
}

// BySeller returns all open auctions of a seller.
func (c Controller) BySeller(db bazaar.ReadOnlyKVStore, seller bazaar.Address) ([]*Auction, error) {
	var auctions []*Auction
	if _, err := c.auctions.ByIndex(db, "seller", seller, &auctions); err != nil {
		return nil, errors.Wrap(err, "auctions by seller")
	}
	return auctions, nil
}

// BidList returns all bid slots of an auction. The first slot and the
// slots of cancelled bids are empty.
func (c Controller) BidList(db bazaar.ReadOnlyKVStore, passportID uint64) ([]Bid, error) {
	a, err := c.Get(db, passportID)
	if err != nil {
		return nil, err
	}
	bids := make([]Bid, len(a.Bids))
	for i, b := range a.Bids {
		bids[i] = *b
	}
	return bids, nil
}

// BidSlot returns the slot of the open bid of a bidder, or ErrCallerNoBid.
func (c Controller) BidSlot(db bazaar.ReadOnlyKVStore, passportID uint64, bidder bazaar.Address) (uint64, error) {
	a, err := c.Get(db, passportID)
	if err != nil {
		return 0, err
	}
	slot := a.slotOf(bidder)
	if slot == 0 {
		return 0, errors.Wrapf(ErrCallerNoBid, "%s", bidder)
	}
	return uint64(slot), nil
}

// CreateAuction takes the passport into custody and opens an auction for
// it.
func (c Controller) CreateAuction(db bazaar.KVStore, caller bazaar.Address, passportID uint64, floor coin.Coin, start, end bazaar.UnixTime) error {
	if start >= end {
		return errors.Wrapf(ErrInvalidTimes, "start %s, end %s", start, end)
	}
	if !floor.IsPositive() {
		return errors.Wrapf(ErrBidAmountInvalid, "floor price %s", floor)
	}
	owner, err := c.custody.OwnerOf(db, passportID)
	if err != nil {
		return err
	}
	if caller.IsEmpty() || !owner.Equals(caller) {
		return errors.Wrapf(ErrCallerNotTokenOwner, "passport %d", passportID)
	}
	switch err := c.auctions.Has(db, idKey(passportID)); {
	case err == nil:
		return errors.Wrapf(ErrAuctionAlreadyCreated, "passport %d", passportID)
	case !errors.ErrNotFound.Is(err):
		return err
	}

	if err := c.custody.Transfer(db, HouseAddress, caller, HouseAddress, passportID); err != nil {
		return errors.Wrap(err, "custody")
	}
	a := &Auction{
		PassportID: passportID,
		Seller:     caller,
		FloorPrice: &floor,
		StartTime:  start,
		EndTime:    end,
		Bids:       []*Bid{{}},
	}
	if _, err := c.auctions.Put(db, idKey(passportID), a); err != nil {
		return errors.Wrap(err, "save auction")
	}
	return nil
}

// PlaceBid escrows amount from the caller and records it in the first free
// slot, which is returned.
func (c Controller) PlaceBid(db bazaar.KVStore, now bazaar.UnixTime, caller bazaar.Address, passportID uint64, amount coin.Coin) (uint64, error) {
	var slot int
	err := c.bidGuard.Run(db, func() error {
		a, err := c.Get(db, passportID)
		if err != nil {
			return err
		}
		switch {
		case now > a.EndTime:
			return errors.Wrapf(ErrAuctionEnded, "ended at %s", a.EndTime)
		case caller.IsEmpty():
			return errors.Wrap(errors.ErrUnauthorized, "bidder")
		case caller.Equals(a.Seller):
			return errors.Wrapf(ErrSelfBidNotAllowed, "passport %d", passportID)
		case a.slotOf(caller) != 0:
			return errors.Wrapf(ErrCallerAlreadyBid, "%s", caller)
		case !amount.SameType(*a.FloorPrice):
			return errors.Wrapf(ErrBidAmountInvalid, "bids are in %s", a.FloorPrice.Ticker)
		case !amount.IsGTE(*a.FloorPrice):
			return errors.Wrapf(ErrBidAmountInvalid, "%s is below floor price %s", amount, a.FloorPrice)
		}

		if err := c.bank.TransferFrom(db, HouseAddress, caller, HouseAddress, amount); err != nil {
			return errors.Wrap(err, "escrow bid")
		}
		slot = a.freeSlot()
		a.Bids[slot] = &Bid{Bidder: caller, Amount: &amount}
		if _, err := c.auctions.Put(db, idKey(passportID), a); err != nil {
			return errors.Wrap(err, "save auction")
		}
		return nil
	})
	return uint64(slot), err
}

// CancelBid frees the slot of the caller's bid and refunds it.
func (c Controller) CancelBid(db bazaar.KVStore, caller bazaar.Address, passportID uint64) (*Bid, error) {
	a, err := c.Get(db, passportID)
	if err != nil {
		return nil, err
	}
	slot := a.slotOf(caller)
	if caller.IsEmpty() || slot == 0 {
		return nil, errors.Wrapf(ErrCallerNoBid, "%s", caller)
	}
	bid := a.Bids[slot]
	a.Bids[slot] = &Bid{}
	if _, err := c.auctions.Put(db, idKey(passportID), a); err != nil {
		return nil, errors.Wrap(err, "save auction")
	}
	if err := c.bank.Transfer(db, HouseAddress, bid.Bidder, *bid.Amount); err != nil {
		return nil, errors.Wrap(err, "refund bid")
	}
	return bid, nil
}

// CancelAuction closes an auction without a winner and returns the
// passport to the seller. Only an auction without open bids can be
// cancelled.
func (c Controller) CancelAuction(db bazaar.KVStore, caller bazaar.Address, passportID uint64) (*Auction, error) {
	var a *Auction
	err := c.endGuard.Run(db, func() error {
		return utils.Atomic(db, func(db bazaar.KVStore) error {
			var err error
			a, err = c.Get(db, passportID)
			if err != nil {
				return err
			}
			if caller.IsEmpty() || !caller.Equals(a.Seller) {
				return errors.Wrapf(ErrNotSeller, "passport %d", passportID)
			}
			if n := a.BidCount(); n != 0 {
				return errors.Wrapf(ErrAuctionHasBids, "%d bids", n)
			}
			if err := c.auctions.Delete(db, idKey(passportID)); err != nil {
				return errors.Wrap(err, "delete auction")
			}
			if err := c.custody.Transfer(db, HouseAddress, HouseAddress, a.Seller, passportID); err != nil {
				return errors.Wrap(err, "return passport")
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Settlement describes how an auction was closed.
type Settlement struct {
	Winner   bazaar.Address
	Price    coin.Coin
	Fee      coin.Coin
	Proceeds coin.Coin
	Refunded int
}

// EndAuction closes an auction in favour of the bid in winningIndex. The
// passport goes to the winner, the seller receives the winning bid minus
// the house fee and all other bids are refunded. Either all of this
// happens or nothing does.
func (c Controller) EndAuction(db bazaar.KVStore, caller bazaar.Address, passportID, winningIndex uint64) (*Settlement, error) {
	var s *Settlement
	err := c.endGuard.Run(db, func() error {
		return utils.Atomic(db, func(db bazaar.KVStore) error {
			var err error
			s, err = c.settle(db, caller, passportID, winningIndex)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c Controller) settle(db bazaar.KVStore, caller bazaar.Address, passportID, winningIndex uint64) (*Settlement, error) {
	a, err := c.Get(db, passportID)
	if err != nil {
		return nil, err
	}
	if caller.IsEmpty() || !caller.Equals(a.Seller) {
		return nil, errors.Wrapf(ErrNotSeller, "passport %d", passportID)
	}
	if winningIndex == 0 || winningIndex >= uint64(len(a.Bids)) || a.Bids[winningIndex].IsEmpty() {
		return nil, errors.Wrapf(ErrBidIndexInvalid, "slot %d", winningIndex)
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	if err := c.auctions.Delete(db, idKey(passportID)); err != nil {
		return nil, errors.Wrap(err, "delete auction")
	}

	win := a.Bids[winningIndex]
	if err := c.custody.Transfer(db, HouseAddress, HouseAddress, win.Bidder, passportID); err != nil {
		return nil, errors.Wrap(err, "deliver passport")
	}
	fee, proceeds, err := win.Amount.Split(int64(conf.FeePercent))
	if err != nil {
		return nil, errors.Wrap(err, "fee")
	}
	if proceeds.IsPositive() {
		if err := c.bank.Transfer(db, HouseAddress, a.Seller, proceeds); err != nil {
			return nil, errors.Wrap(err, "pay seller")
		}
	}
	if fee.IsPositive() && len(conf.FeeCollector) != 0 {
		if err := c.bank.Transfer(db, HouseAddress, conf.FeeCollector, fee); err != nil {
			return nil, errors.Wrap(err, "collect fee")
		}
	}

	s := &Settlement{
		Winner:   win.Bidder,
		Price:    *win.Amount,
		Fee:      fee,
		Proceeds: proceeds,
	}
	for i, b := range a.Bids {
		if i == 0 || uint64(i) == winningIndex || b.IsEmpty() {
			continue
		}
		if err := c.bank.Transfer(db, HouseAddress, b.Bidder, *b.Amount); err != nil {
			return nil, errors.Wrapf(err, "refund slot %d", i)
		}
		s.Refunded++
	}
	return s, nil
}
