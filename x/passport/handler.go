package passport

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/x"
	"github.com/iov-one/bazaar/x/roles"
)

// RegisterRoutes registers the passport directory message handlers.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathMintMsg, MintHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathSignMsg, SignHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathTransferMsg, TransferHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathBurnMsg, BurnHandler{auth: auth, ctrl: ctrl})

	admin := AdminHandler{auth: auth, ctrl: ctrl}
	r.Handle(pathSetTokenURIMsg, admin)
	r.Handle(pathSetNGTransferableMsg, admin)
	r.Handle(pathPauseMsg, admin)
	r.Handle(pathUnpauseMsg, admin)

	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth, ctrl.roles))
}

// NewConfigHandler returns a handler that lets the governance account
// patch the directory configuration.
func NewConfigHandler(auth x.Authenticator, r roles.RoleReader) bazaar.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(packageName, &conf, auth, r.Governance)
}

// MintHandler processes MintMsg.
type MintHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = MintHandler{}

func (h MintHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

// Deliver mints the batch. Recipients skipped because of the per account
// cap do not produce an event.
func (h MintHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ids, err := h.ctrl.Mint(db, caller, msg.Recipients, msg.MetadataRefs)
	if err != nil {
		return nil, err
	}
	events := make([]bazaar.Event, 0, len(ids))
	for _, id := range ids {
		owner, err := h.ctrl.OwnerOf(db, id)
		if err != nil {
			return nil, err
		}
		events = append(events, bazaar.NewEvent("passport-minted").
			With("id", id).
			With("owner", owner))
	}
	return &bazaar.DeliverResult{Events: events}, nil
}

func (h MintHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*MintMsg, bazaar.Address, error) {
	var msg MintMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.Caller(ctx, h.auth)
	if err := roles.RequireGovernance(db, h.ctrl.roles, caller); err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// SignHandler processes SignMsg.
type SignHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = SignHandler{}

func (h SignHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h SignHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Sign(db, caller, msg.ID); err != nil {
		return nil, err
	}
	owner, err := h.ctrl.OwnerOf(db, msg.ID)
	if err != nil {
		return nil, err
	}
	ev := bazaar.NewEvent("passport-signed").
		With("id", msg.ID).
		With("owner", owner)
	return &bazaar.DeliverResult{Events: []bazaar.Event{ev}}, nil
}

func (h SignHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*SignMsg, bazaar.Address, error) {
	var msg SignMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.Caller(ctx, h.auth)
	if err := roles.RequireGovernance(db, h.ctrl.roles, caller); err != nil {
		return nil, nil, err
	}
	if _, err := h.ctrl.Get(db, msg.ID); err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// TransferHandler processes TransferMsg. The main signer is the caller.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, caller, msg.From, msg.To, msg.ID); err != nil {
		return nil, err
	}
	ev := bazaar.NewEvent("passport-transferred").
		With("id", msg.ID).
		With("from", msg.From).
		With("to", msg.To)
	return &bazaar.DeliverResult{Events: []bazaar.Event{ev}}, nil
}

func (h TransferHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*TransferMsg, bazaar.Address, error) {
	var msg TransferMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.Caller(ctx, h.auth)
	if caller.IsEmpty() {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return &msg, caller, nil
}

// BurnHandler processes BurnMsg.
type BurnHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = BurnHandler{}

func (h BurnHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h BurnHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Burn(db, caller, msg.ID); err != nil {
		return nil, err
	}
	ev := bazaar.NewEvent("passport-burned").With("id", msg.ID)
	return &bazaar.DeliverResult{Events: []bazaar.Event{ev}}, nil
}

func (h BurnHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*BurnMsg, bazaar.Address, error) {
	var msg BurnMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.Caller(ctx, h.auth)
	if caller.IsEmpty() {
		return nil, nil, errors.Wrap(ErrNotOwner, "signature required")
	}
	return &msg, caller, nil
}

// AdminHandler processes the governance only policy messages:
// SetTokenURIMsg, SetNGTransferableMsg, PauseMsg and UnpauseMsg.
type AdminHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = AdminHandler{}

func (h AdminHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h AdminHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	var ev bazaar.Event
	switch msg := msg.(type) {
	case *SetTokenURIMsg:
		err = h.ctrl.SetTokenURI(db, caller, msg.ID, msg.MetadataRef)
		ev = bazaar.NewEvent("passport-uri-changed").With("id", msg.ID)
	case *SetNGTransferableMsg:
		err = h.ctrl.SetNGTransferable(db, caller, msg.Transferable)
		ev = bazaar.NewEvent("passport-policy-changed").With("ng_transferable", msg.Transferable)
	case *PauseMsg:
		err = h.ctrl.Pause(db, caller)
		ev = bazaar.NewEvent("passport-paused")
	case *UnpauseMsg:
		err = h.ctrl.Unpause(db, caller)
		ev = bazaar.NewEvent("passport-unpaused")
	default:
		err = errors.WithType(errors.ErrMsg, msg)
	}
	if err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{Events: []bazaar.Event{ev}}, nil
}

func (h AdminHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (bazaar.Msg, bazaar.Address, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	switch msg.(type) {
	case *SetTokenURIMsg, *SetNGTransferableMsg, *PauseMsg, *UnpauseMsg:
	default:
		return nil, nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, err
	}
	caller := x.Caller(ctx, h.auth)
	if err := roles.RequireGovernance(db, h.ctrl.roles, caller); err != nil {
		return nil, nil, err
	}
	return msg, caller, nil
}
