package roles

import "github.com/iov-one/bazaar/errors"

// Errors are registered in the 1000 range.
var (
	ErrNotGovernance = errors.ErrUnauthorized.Register(1000, "governance only")
	ErrRenounced     = errors.ErrUnauthorized.Register(1001, "governance renounced")
)
