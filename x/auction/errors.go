package auction

import "github.com/iov-one/bazaar/errors"

// Errors are registered in the 1300 range.
var (
	ErrCallerNotTokenOwner   = errors.ErrUnauthorized.Register(1300, "caller is not the passport owner")
	ErrAuctionAlreadyCreated = errors.ErrState.Register(1301, "auction already created")
	ErrAuctionNotExist       = errors.ErrState.Register(1302, "auction does not exist")
	ErrSelfBidNotAllowed     = errors.ErrState.Register(1303, "self bid not allowed")
	ErrCallerAlreadyBid      = errors.ErrState.Register(1304, "caller already bid")
	ErrBidAmountInvalid      = errors.ErrInput.Register(1305, "invalid bid amount")
	ErrCallerNoBid           = errors.ErrState.Register(1306, "caller has no bid")
	ErrInvalidTimes          = errors.ErrInput.Register(1307, "invalid auction times")
	ErrAuctionEnded          = errors.ErrState.Register(1308, "auction ended")
	ErrBidIndexInvalid       = errors.ErrInput.Register(1309, "invalid bid index")
	ErrNotSeller             = errors.ErrUnauthorized.Register(1310, "caller is not the seller")
	ErrAuctionHasBids        = errors.ErrState.Register(1311, "auction has open bids")
)
