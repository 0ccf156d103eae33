package coin

import (
	"testing"

	"github.com/iov-one/bazaar/bazaartest"
)

func TestCodecSchema(t *testing.T) {
	bazaartest.AssertSchema(t, "codec.proto",
		&Coin{},
	)
}
