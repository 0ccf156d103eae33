package token

import "github.com/iov-one/bazaar/errors"

// Errors are registered in the 1500 range.
var (
	ErrInsufficientFunds     = errors.ErrInsufficientAmount.Register(1500, "insufficient funds")
	ErrInsufficientAllowance = errors.ErrInsufficientAmount.Register(1501, "insufficient allowance")
	ErrInvalidAmount         = errors.ErrInput.Register(1502, "invalid amount")
)
