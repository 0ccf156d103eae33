package sale

import "github.com/iov-one/bazaar/errors"

// Errors are registered in the 1400 range.
var (
	ErrCallerNotOwnerOrIDInvalid = errors.ErrUnauthorized.Register(1400, "caller is not the owner or id is invalid")
	ErrSigned                    = errors.ErrState.Register(1401, "passport signed")
	ErrPricesInvalid             = errors.ErrInput.Register(1402, "invalid prices")
	ErrPassportIDInvalid         = errors.ErrState.Register(1403, "passport is not for sale")
	ErrNoSelfPurchase            = errors.ErrState.Register(1404, "self purchase not allowed")
	ErrOwnershipChanged          = errors.ErrState.Register(1405, "ownership changed")
	ErrCurrencyFlagInvalid       = errors.ErrInput.Register(1406, "invalid currency flag")
	ErrPriceInvalid              = errors.ErrInput.Register(1407, "invalid price")
	ErrSaleNotStarted            = errors.ErrState.Register(1408, "sale not started")
	ErrCreatorUnknown            = errors.ErrState.Register(1409, "passport creator unknown")
)
