package badge

import (
	"encoding/binary"

	"github.com/iov-one/bazaar"
	"github.com/tendermint/tendermint/crypto/tmhash"
)

// CreateBatchDigest returns the message the signer attests to let caller
// create a gated badge for recipients. The caller is part of the digest, so
// an attestation cannot be replayed by anyone else.
func CreateBatchDigest(caller bazaar.Address, recipients []bazaar.Address) []byte {
	h := tmhash.New()
	_, _ = h.Write([]byte("badge/create_batch\x00"))
	_, _ = h.Write(caller)
	for _, r := range recipients {
		_, _ = h.Write(r)
	}
	return h.Sum(nil)
}

// MintBatchDigest returns the message the signer attests to let caller mint
// existing gated badges to recipients.
func MintBatchDigest(caller bazaar.Address, recipients []bazaar.Address, ids []uint64) []byte {
	h := tmhash.New()
	_, _ = h.Write([]byte("badge/mint_batch\x00"))
	_, _ = h.Write(caller)
	for _, r := range recipients {
		_, _ = h.Write(r)
	}
	var raw [8]byte
	for _, id := range ids {
		binary.BigEndian.PutUint64(raw[:], id)
		_, _ = h.Write(raw[:])
	}
	return h.Sum(nil)
}
