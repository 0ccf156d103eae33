package token

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, ctrl))
	r.Handle(pathApproveMsg, NewApproveHandler(auth, ctrl))
}

// SendHandler will handle sending funds.
type SendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, ctrl Controller) SendHandler {
	return SendHandler{auth: auth, ctrl: ctrl}
}

// Check just verifies it is properly formed.
func (h SendHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

// Deliver moves the funds from the signer to the destination.
func (h SendHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, source, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	ev := bazaar.NewEvent("token-transferred").
		With("from", source).
		With("to", msg.Destination).
		With("amount", msg.Amount)
	return &bazaar.DeliverResult{Events: []bazaar.Event{ev}}, nil
}

func (h SendHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*SendMsg, bazaar.Address, error) {
	var msg SendMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	source := x.Caller(ctx, h.auth)
	if source.IsEmpty() {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, source, nil
}

// ApproveHandler will handle allowance changes.
type ApproveHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = ApproveHandler{}

// NewApproveHandler creates a handler for ApproveMsg.
func NewApproveHandler(auth x.Authenticator, ctrl Controller) ApproveHandler {
	return ApproveHandler{auth: auth, ctrl: ctrl}
}

func (h ApproveHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Approve(db, owner, msg.Spender, *msg.Amount); err != nil {
		return nil, err
	}
	ev := bazaar.NewEvent("token-approved").
		With("owner", owner).
		With("spender", msg.Spender).
		With("amount", msg.Amount)
	return &bazaar.DeliverResult{Events: []bazaar.Event{ev}}, nil
}

func (h ApproveHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*ApproveMsg, bazaar.Address, error) {
	var msg ApproveMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner := x.Caller(ctx, h.auth)
	if owner.IsEmpty() {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, owner, nil
}
