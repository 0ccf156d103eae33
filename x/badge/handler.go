package badge

import (
	"encoding/hex"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

// RegisterRoutes registers all catalog message handlers.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, ctrl Controller) {
	h := NewHandler(auth, ctrl)
	for _, path := range []string{
		pathCreateBadgeMsg,
		pathPurchaseBadgeMsg,
		pathPurchaseBadgeBatchMsg,
		pathGrantBadgeMsg,
		pathTransferBadgeMsg,
		pathSetBadgePriceMsg,
		pathSetCreatorMsg,
		pathSetRevenueAddressMsg,
		pathCreateBatchMsg,
		pathCreateGatedBadgeMsg,
		pathMintBatchMsg,
		pathBurnBatchMsg,
		pathSetSignerMsg,
		pathSetURIMsg,
		pathPauseMsg,
		pathUnpauseMsg,
	} {
		r.Handle(path, h)
	}
}

// Handler processes all catalog messages. The main signer of a
// transaction is the caller of the catalog operation.
type Handler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = Handler{}

func NewHandler(auth x.Authenticator, ctrl Controller) Handler {
	return Handler{auth: auth, ctrl: ctrl}
}

// Check validates the message. Authorization and state dependent rules
// are checked on delivery.
func (h Handler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := loadCatalogMsg(tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h Handler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := loadCatalogMsg(tx)
	if err != nil {
		return nil, err
	}
	events, err := h.apply(db, x.Caller(ctx, h.auth), msg)
	if err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{Events: events}, nil
}

func (h Handler) apply(db bazaar.KVStore, caller bazaar.Address, msg bazaar.Msg) ([]bazaar.Event, error) {
	switch msg := msg.(type) {
	case *CreateBadgeMsg:
		id, err := h.ctrl.CreateBadge(db, caller, msg.Creator, *msg.Price)
		if err != nil {
			return nil, err
		}
		return one(bazaar.NewEvent("badge-created").
			With("id", id).
			With("kind", KindPriced).
			With("creator", msg.Creator).
			With("price", msg.Price)), nil

	case *PurchaseBadgeMsg:
		if err := h.ctrl.PurchaseBadge(db, caller, msg.ID, msg.Quantity); err != nil {
			return nil, err
		}
		return one(purchased(caller, msg.ID, msg.Quantity)), nil

	case *PurchaseBadgeBatchMsg:
		if err := h.ctrl.PurchaseBadgeBatch(db, caller, msg.IDs, msg.Quantities); err != nil {
			return nil, err
		}
		events := make([]bazaar.Event, len(msg.IDs))
		for i, id := range msg.IDs {
			events[i] = purchased(caller, id, msg.Quantities[i])
		}
		return events, nil

	case *GrantBadgeMsg:
		if err := h.ctrl.GrantBadge(db, caller, msg.Recipient, msg.ID, msg.Quantity); err != nil {
			return nil, err
		}
		return one(bazaar.NewEvent("badge-granted").
			With("recipient", msg.Recipient).
			With("id", msg.ID).
			With("quantity", msg.Quantity)), nil

	case *TransferBadgeMsg:
		if err := h.ctrl.TransferBadge(db, caller, msg.From, msg.To, msg.ID, msg.Quantity); err != nil {
			return nil, err
		}
		return one(bazaar.NewEvent("badge-transferred").
			With("from", msg.From).
			With("to", msg.To).
			With("id", msg.ID).
			With("quantity", msg.Quantity)), nil

	case *SetBadgePriceMsg:
		if err := h.ctrl.SetBadgePrice(db, caller, msg.ID, *msg.Price); err != nil {
			return nil, err
		}
		return one(bazaar.NewEvent("badge-price-changed").
			With("id", msg.ID).
			With("price", msg.Price)), nil

	case *SetCreatorMsg:
		if err := h.ctrl.SetCreator(db, caller, msg.ID, msg.Creator); err != nil {
			return nil, err
		}
		return one(bazaar.NewEvent("badge-creator-changed").
			With("id", msg.ID).
			With("creator", msg.Creator)), nil

	case *SetRevenueAddressMsg:
		if err := h.ctrl.SetRevenueAddress(db, caller, msg.Address); err != nil {
			return nil, err
		}
		return one(bazaar.NewEvent("revenue-address-changed").With("address", msg.Address)), nil

	case *CreateBatchMsg:
		id, err := h.ctrl.CreateBatch(db, caller, msg.Recipients, msg.Signature)
		if err != nil {
			return nil, err
		}
		return one(bazaar.NewEvent("badge-created").
			With("id", id).
			With("kind", KindGated).
			With("creator", caller).
			With("recipients", len(msg.Recipients))), nil

	case *CreateGatedBadgeMsg:
		id, err := h.ctrl.CreateGatedBadge(db, caller)
		if err != nil {
			return nil, err
		}
		return one(bazaar.NewEvent("badge-created").
			With("id", id).
			With("kind", KindGated).
			With("creator", caller)), nil

	case *MintBatchMsg:
		if err := h.ctrl.MintBatch(db, caller, msg.Recipients, msg.IDs, msg.Signature); err != nil {
			return nil, err
		}
		events := make([]bazaar.Event, len(msg.IDs))
		for i, id := range msg.IDs {
			events[i] = bazaar.NewEvent("badge-minted").
				With("recipient", msg.Recipients[i]).
				With("id", id)
		}
		return events, nil

	case *BurnBatchMsg:
		if err := h.ctrl.BurnBatch(db, caller, msg.Account, msg.IDs, msg.Quantities); err != nil {
			return nil, err
		}
		events := make([]bazaar.Event, len(msg.IDs))
		for i, id := range msg.IDs {
			events[i] = bazaar.NewEvent("badge-burned").
				With("account", msg.Account).
				With("id", id).
				With("quantity", msg.Quantities[i])
		}
		return events, nil

	case *SetSignerMsg:
		if err := h.ctrl.SetSigner(db, caller, msg.Signer); err != nil {
			return nil, err
		}
		return one(bazaar.NewEvent("signer-changed").
			With("signer", hex.EncodeToString(msg.Signer))), nil

	case *SetURIMsg:
		if err := h.ctrl.SetURI(db, caller, msg.URI); err != nil {
			return nil, err
		}
		return one(bazaar.NewEvent("badge-uri-changed").With("uri", msg.URI)), nil

	case *PauseMsg:
		if err := h.ctrl.Pause(db, caller); err != nil {
			return nil, err
		}
		return one(bazaar.NewEvent("badge-paused")), nil

	case *UnpauseMsg:
		if err := h.ctrl.Unpause(db, caller); err != nil {
			return nil, err
		}
		return one(bazaar.NewEvent("badge-unpaused")), nil
	}
	return nil, errors.WithType(errors.ErrMsg, msg)
}

func loadCatalogMsg(tx bazaar.Tx) (bazaar.Msg, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

func purchased(buyer bazaar.Address, id, quantity uint64) bazaar.Event {
	return bazaar.NewEvent("badge-purchased").
		With("buyer", buyer).
		With("id", id).
		With("quantity", quantity)
}

func one(e bazaar.Event) []bazaar.Event {
	return []bazaar.Event{e}
}
