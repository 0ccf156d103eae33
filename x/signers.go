package x

import (
	"context"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

type contextKey int

const contextKeySigners contextKey = iota

// SignedTx is implemented by transactions that carry the conditions of
// their signers. Signatures are verified by the transport before the
// transaction reaches the ledger.
type SignedTx interface {
	bazaar.Tx
	GetSigners() []bazaar.Condition
}

// SignersAuth authenticates the signers that SignersDecorator put into the
// context.
type SignersAuth struct{}

var _ Authenticator = SignersAuth{}

// GetConditions returns the signers of the current transaction.
func (SignersAuth) GetConditions(ctx bazaar.Context) []bazaar.Condition {
	conds, _ := ctx.Value(contextKeySigners).([]bazaar.Condition)
	return conds
}

// HasAddress returns true if the address belongs to one of the signers.
func (a SignersAuth) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// withSigners stores the signers in the context. It may only be set once.
func withSigners(ctx bazaar.Context, signers []bazaar.Condition) bazaar.Context {
	if ctx.Value(contextKeySigners) != nil {
		panic("signers already set")
	}
	return context.WithValue(ctx, contextKeySigners, signers)
}

// SignersDecorator extracts the signers of a SignedTx and exposes them via
// SignersAuth for the rest of the stack.
type SignersDecorator struct{}

var _ bazaar.Decorator = SignersDecorator{}

// NewSignersDecorator returns a decorator that authenticates signed
// transactions.
func NewSignersDecorator() SignersDecorator {
	return SignersDecorator{}
}

func (SignersDecorator) Check(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	ctx, err := signersContext(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

func (SignersDecorator) Deliver(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	ctx, err := signersContext(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func signersContext(ctx bazaar.Context, tx bazaar.Tx) (bazaar.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	signers := stx.GetSigners()
	for _, s := range signers {
		if err := s.Validate(); err != nil {
			return nil, errors.Wrap(err, "signer")
		}
	}
	return withSigners(ctx, signers), nil
}
