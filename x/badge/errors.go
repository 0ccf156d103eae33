package badge

import "github.com/iov-one/bazaar/errors"

// Errors are registered in the 1200 range.
var (
	ErrInvalidPrice        = errors.ErrInput.Register(1200, "invalid price")
	ErrInvalidAmount       = errors.ErrInput.Register(1201, "invalid amount")
	ErrArityMismatch       = errors.ErrInput.Register(1202, "arity mismatch")
	ErrMultisigNotAllowed  = errors.ErrUnauthorized.Register(1203, "multisig not allowed")
	ErrInvalidSignature    = errors.ErrUnauthorized.Register(1204, "invalid signature")
	ErrTokenIDInvalid      = errors.ErrInput.Register(1205, "invalid badge id")
	ErrTokenAlreadyOwned   = errors.ErrState.Register(1206, "badge already owned")
	ErrTransferDisabled    = errors.ErrState.Register(1207, "transfer disabled")
	ErrZeroAddress         = errors.ErrInput.Register(1208, "zero address")
	ErrEmptyString         = errors.ErrInput.Register(1209, "empty string")
	ErrPaused              = errors.ErrState.Register(1210, "paused")
	ErrNotPaused           = errors.ErrState.Register(1211, "not paused")
	ErrNotCreator          = errors.ErrUnauthorized.Register(1212, "not the badge creator")
	ErrNotOwner            = errors.ErrUnauthorized.Register(1213, "not the catalog owner")
	ErrInsufficientBalance = errors.ErrInsufficientAmount.Register(1214, "insufficient badge balance")
)
