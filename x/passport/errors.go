package passport

import "github.com/iov-one/bazaar/errors"

// Errors are registered in the 1100 range.
var (
	ErrArityMismatch           = errors.ErrInput.Register(1100, "arity mismatch")
	ErrPaused                  = errors.ErrState.Register(1101, "paused")
	ErrNotPaused               = errors.ErrState.Register(1102, "not paused")
	ErrAlreadySigned           = errors.ErrState.Register(1103, "owner already holds a signed passport")
	ErrSignedNotTransferable   = errors.ErrState.Register(1104, "signed passport not transferable")
	ErrNotTransferableByPolicy = errors.ErrState.Register(1105, "passport not transferable by policy")
	ErrSignedNotBurnable       = errors.ErrState.Register(1106, "signed passport not burnable")
	ErrNotOwner                = errors.ErrUnauthorized.Register(1107, "not the passport owner")
	ErrInvalidID               = errors.ErrInput.Register(1108, "invalid passport id")
)
