package auction

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/x"
	"github.com/iov-one/bazaar/x/roles"
)

// RegisterRoutes registers the auction house message handlers. The house
// configuration is administered by the governance account of r.
func RegisterRoutes(reg bazaar.Registry, auth x.Authenticator, ctrl Controller, r roles.RoleReader) {
	h := NewHandler(auth, ctrl)
	reg.Handle(pathCreateAuctionMsg, h)
	reg.Handle(pathPlaceBidMsg, h)
	reg.Handle(pathCancelBidMsg, h)
	reg.Handle(pathEndAuctionMsg, h)
	reg.Handle(pathCancelAuctionMsg, h)

	var conf Configuration
	reg.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(packageName, &conf, auth, r.Governance))
}

// Handler processes auction messages on behalf of the main signer.
type Handler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = Handler{}

func NewHandler(auth x.Authenticator, ctrl Controller) Handler {
	return Handler{auth: auth, ctrl: ctrl}
}

func (h Handler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := loadAuctionMsg(tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h Handler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := loadAuctionMsg(tx)
	if err != nil {
		return nil, err
	}
	caller := x.Caller(ctx, h.auth)

	var events []bazaar.Event
	switch msg := msg.(type) {
	case *CreateAuctionMsg:
		if err := h.ctrl.CreateAuction(db, caller, msg.PassportID, *msg.FloorPrice, msg.StartTime, msg.EndTime); err != nil {
			return nil, err
		}
		events = append(events, bazaar.NewEvent("auction-created").
			With("passport_id", msg.PassportID).
			With("seller", caller).
			With("floor_price", msg.FloorPrice).
			With("end_time", msg.EndTime))

	case *PlaceBidMsg:
		now, err := bazaar.BlockTime(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
		slot, err := h.ctrl.PlaceBid(db, bazaar.AsUnixTime(now), caller, msg.PassportID, *msg.Amount)
		if err != nil {
			return nil, err
		}
		events = append(events, bazaar.NewEvent("bid-placed").
			With("passport_id", msg.PassportID).
			With("bidder", caller).
			With("amount", msg.Amount).
			With("slot", slot))

	case *CancelBidMsg:
		bid, err := h.ctrl.CancelBid(db, caller, msg.PassportID)
		if err != nil {
			return nil, err
		}
		events = append(events, bazaar.NewEvent("bid-cancelled").
			With("passport_id", msg.PassportID).
			With("bidder", bid.Bidder).
			With("amount", bid.Amount))

	case *EndAuctionMsg:
		s, err := h.ctrl.EndAuction(db, caller, msg.PassportID, msg.WinningIndex)
		if err != nil {
			return nil, err
		}
		events = append(events, bazaar.NewEvent("auction-settled").
			With("passport_id", msg.PassportID).
			With("winner", s.Winner).
			With("price", s.Price).
			With("fee", s.Fee).
			With("refunded", s.Refunded))

	case *CancelAuctionMsg:
		a, err := h.ctrl.CancelAuction(db, caller, msg.PassportID)
		if err != nil {
			return nil, err
		}
		events = append(events, bazaar.NewEvent("auction-cancelled").
			With("passport_id", msg.PassportID).
			With("seller", a.Seller))
	}
	return &bazaar.DeliverResult{Events: events}, nil
}

func loadAuctionMsg(tx bazaar.Tx) (bazaar.Msg, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	switch msg.(type) {
	case *CreateAuctionMsg, *PlaceBidMsg, *CancelBidMsg, *EndAuctionMsg, *CancelAuctionMsg:
	default:
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}
