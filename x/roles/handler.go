package roles

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

// RegisterRoutes registers the role registry message handlers.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathTransferGovernanceMsg, TransferGovernanceHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathRenounceGovernanceMsg, RenounceGovernanceHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathAddMarketplaceMsg, AddMarketplaceHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathRemoveMarketplaceMsg, RemoveMarketplaceHandler{auth: auth, ctrl: ctrl})
}

// TransferGovernanceHandler processes TransferGovernanceMsg.
type TransferGovernanceHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = TransferGovernanceHandler{}

func (h TransferGovernanceHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h TransferGovernanceHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.TransferGovernance(db, caller, msg.NewGovernance); err != nil {
		return nil, err
	}
	ev := bazaar.NewEvent("governance-changed").
		With("previous", caller).
		With("governance", msg.NewGovernance)
	return &bazaar.DeliverResult{Events: []bazaar.Event{ev}}, nil
}

func (h TransferGovernanceHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*TransferGovernanceMsg, bazaar.Address, error) {
	var msg TransferGovernanceMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.Caller(ctx, h.auth)
	if err := RequireGovernance(db, h.ctrl, caller); err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// RenounceGovernanceHandler processes RenounceGovernanceMsg.
type RenounceGovernanceHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = RenounceGovernanceHandler{}

func (h RenounceGovernanceHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h RenounceGovernanceHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.RenounceGovernance(db, caller); err != nil {
		return nil, err
	}
	ev := bazaar.NewEvent("governance-changed").
		With("previous", caller).
		With("governance", bazaar.Address(nil))
	return &bazaar.DeliverResult{Events: []bazaar.Event{ev}}, nil
}

func (h RenounceGovernanceHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (bazaar.Address, error) {
	var msg RenounceGovernanceMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller := x.Caller(ctx, h.auth)
	if err := RequireGovernance(db, h.ctrl, caller); err != nil {
		return nil, err
	}
	return caller, nil
}

// AddMarketplaceHandler processes AddMarketplaceMsg.
type AddMarketplaceHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = AddMarketplaceHandler{}

func (h AddMarketplaceHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h AddMarketplaceHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	height, _ := bazaar.GetHeight(ctx)
	if err := h.ctrl.AddMarketplace(db, height, caller, msg.Marketplace); err != nil {
		return nil, err
	}
	ev := bazaar.NewEvent("marketplace-added").With("marketplace", msg.Marketplace)
	return &bazaar.DeliverResult{Events: []bazaar.Event{ev}}, nil
}

func (h AddMarketplaceHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*AddMarketplaceMsg, bazaar.Address, error) {
	var msg AddMarketplaceMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.Caller(ctx, h.auth)
	if err := RequireGovernance(db, h.ctrl, caller); err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// RemoveMarketplaceHandler processes RemoveMarketplaceMsg.
type RemoveMarketplaceHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = RemoveMarketplaceHandler{}

func (h RemoveMarketplaceHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h RemoveMarketplaceHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.RemoveMarketplace(db, caller, msg.Marketplace); err != nil {
		return nil, err
	}
	ev := bazaar.NewEvent("marketplace-removed").With("marketplace", msg.Marketplace)
	return &bazaar.DeliverResult{Events: []bazaar.Event{ev}}, nil
}

func (h RemoveMarketplaceHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*RemoveMarketplaceMsg, bazaar.Address, error) {
	var msg RemoveMarketplaceMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.Caller(ctx, h.auth)
	if err := RequireGovernance(db, h.ctrl, caller); err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}
