package crypto

import (
	"encoding/json"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for conditions derived from public keys.
const ExtensionName = "sigs"

// PublicKey is a raw ed25519 public key.
type PublicKey []byte

// PrivateKey is a raw ed25519 private key.
type PrivateKey []byte

// Validate returns an error if this is not a well formed public key.
func (p PublicKey) Validate() error {
	if len(p) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key length %d", len(p))
	}
	return nil
}

// Verify verifies the signature was created with this message and public key
func (p PublicKey) Verify(message, signature []byte) bool {
	return VerifyAttestation(p, message, signature)
}

// Condition encodes the public key into a ledger permission
func (p PublicKey) Condition() bazaar.Condition {
	return bazaar.NewCondition(ExtensionName, "ed25519", p)
}

// Address returns the account controlled by this key.
func (p PublicKey) Address() bazaar.Address {
	return p.Condition().Address()
}

// MarshalJSON encodes the key as hex, like addresses are.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	return bazaar.Address(p).MarshalJSON()
}

// UnmarshalJSON decodes a hex encoded key.
func (p *PublicKey) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	key, err := decodeHex(s)
	if err != nil {
		return err
	}
	*p = key
	return nil
}

// Sign returns a matching signature for this private key
func (p PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(p), message)
}

// PublicKey returns the corresponding PublicKey
func (p PrivateKey) PublicKey() PublicKey {
	pub := ed25519.PrivateKey(p).Public().(ed25519.PublicKey)
	return PublicKey(pub)
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return PrivateKey(priv)
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) PrivateKey {
	return PrivateKey(ed25519.NewKeyFromSeed(seed))
}
