package bazaartest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/bazaar"
)

var condSeq uint64

// NewCondition returns a new and unique condition. Every call returns a
// condition that was not returned before within this process.
func NewCondition() bazaar.Condition {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, atomic.AddUint64(&condSeq, 1))
	return bazaar.NewCondition("test", "seq", raw)
}

// NewAddress returns a new and unique address.
func NewAddress() bazaar.Address {
	return NewCondition().Address()
}

// SequenceID returns the 8 byte big endian form of given number, as used by
// ledger sequences for primary keys.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation.
func ParseAddress(t testing.TB, encodedAddress string) bazaar.Address {
	t.Helper()

	addr, err := bazaar.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
