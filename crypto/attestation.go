package crypto

import (
	"encoding/hex"

	"github.com/iov-one/bazaar/errors"
	"golang.org/x/crypto/ed25519"
)

// VerifyAttestation returns true if signature is a valid ed25519 signature
// of message made with the private key matching pubkey. It never panics, a
// malformed key or signature is not valid.
func VerifyAttestation(pubkey, message, signature []byte) bool {
	if len(pubkey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubkey), message, signature)
}

func decodeHex(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
	}
	return b, nil
}
