package sale

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/x"
)

// RegisterRoutes registers the sale desk message handlers.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, ctrl Controller) {
	h := Handler{auth: auth, ctrl: ctrl}
	r.Handle(pathSetSaleStartDateMsg, h)
	r.Handle(pathOpenForSaleMsg, h)
	r.Handle(pathSetPriceMsg, h)
	r.Handle(pathPurchaseMsg, h)
	r.Handle(pathSweepMsg, h)

	var conf Configuration
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(packageName, &conf, auth, ctrl.roles.Governance))
}

// Handler processes sale desk messages on behalf of the main signer.
type Handler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = Handler{}

func (h Handler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := loadSaleMsg(tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h Handler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := loadSaleMsg(tx)
	if err != nil {
		return nil, err
	}
	caller := x.Caller(ctx, h.auth)

	var ev bazaar.Event
	switch msg := msg.(type) {
	case *SetSaleStartDateMsg:
		if err := h.ctrl.SetSaleStartDate(db, caller, msg.StartDate); err != nil {
			return nil, err
		}
		ev = bazaar.NewEvent("sale-start-date-changed").With("start_date", msg.StartDate)

	case *OpenForSaleMsg:
		now, err := bazaar.BlockTime(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
		l, err := h.ctrl.OpenForSale(db, bazaar.AsUnixTime(now), caller, msg.PassportID, orZero(msg.PriceNative), orZero(msg.PriceAlt))
		if err != nil {
			return nil, err
		}
		ev = listed("sale-opened", msg.PassportID, l)

	case *SetPriceMsg:
		l, err := h.ctrl.SetPrice(db, caller, msg.PassportID, orZero(msg.PriceNative), orZero(msg.PriceAlt))
		if err != nil {
			return nil, err
		}
		ev = listed("sale-price-changed", msg.PassportID, l)

	case *PurchaseMsg:
		r, err := h.ctrl.Purchase(db, caller, msg.PassportID, msg.Currency)
		if err != nil {
			return nil, err
		}
		ev = bazaar.NewEvent("sale-purchased").
			With("passport_id", msg.PassportID).
			With("seller", r.Seller).
			With("buyer", caller).
			With("price", r.Price).
			With("royalty", r.Royalty)

	case *SweepMsg:
		moved, err := h.ctrl.Sweep(db, caller, msg.Ticker, msg.To)
		if err != nil {
			return nil, err
		}
		ev = bazaar.NewEvent("sale-swept").
			With("to", msg.To).
			With("amount", moved)
	}
	return &bazaar.DeliverResult{Events: []bazaar.Event{ev}}, nil
}

func listed(typ string, id uint64, l *Listing) bazaar.Event {
	return bazaar.NewEvent(typ).
		With("passport_id", id).
		With("seller", l.Seller).
		With("price_native", l.PriceNative).
		With("price_alt", l.PriceAlt)
}

func loadSaleMsg(tx bazaar.Tx) (bazaar.Msg, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	switch msg.(type) {
	case *SetSaleStartDateMsg, *OpenForSaleMsg, *SetPriceMsg, *PurchaseMsg, *SweepMsg:
	default:
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}
