package auction

import (
	"testing"

	"github.com/iov-one/bazaar/bazaartest"
)

func TestCodecSchema(t *testing.T) {
	bazaartest.AssertSchema(t, "codec.proto",
		&Auction{},
		&Bid{},
		&Configuration{},
		&CreateAuctionMsg{},
		&PlaceBidMsg{},
		&CancelBidMsg{},
		&EndAuctionMsg{},
		&CancelAuctionMsg{},
		&UpdateConfigurationMsg{},
	)
}
