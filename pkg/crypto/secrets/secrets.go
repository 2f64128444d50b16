package secrets

import (
	"encoding/hex"
	"math/big"

	"github.com/zeebo/blake3"
)

// FingerprintSize is the length in bytes of a secret fingerprint.
const FingerprintSize = 32

// Secret wraps a reconstructed secret value.
// It provides a mechanism to zero out the memory when no longer needed.
type Secret struct {
	value *big.Int
}

// WrapSecret takes ownership of v. The caller must not keep using v.
func WrapSecret(v *big.Int) *Secret {
	return &Secret{value: v}
}

// Int returns a copy of the secret value, or nil once destroyed.
func (s *Secret) Int() *big.Int {
	if s.value == nil {
		return nil
	}
	return new(big.Int).Set(s.value)
}

// String returns the base-10 form of the secret.
func (s *Secret) String() string {
	if s.value == nil {
		return "<destroyed>"
	}
	return s.value.String()
}

// Fingerprint returns the hex BLAKE3 digest of the sign byte followed by the
// big-endian magnitude, so two holders can compare secrets without revealing them.
func (s *Secret) Fingerprint() string {
	if s.value == nil {
		return ""
	}

	sign := byte(0)
	if s.value.Sign() < 0 {
		sign = 1
	}

	h := blake3.New()
	h.Write([]byte{sign})
	h.Write(s.value.Bytes())

	sum := make([]byte, FingerprintSize)
	h.Digest().Read(sum)
	return hex.EncodeToString(sum)
}

// Destroy overwrites the secret's words with zeros.
// It is idempotent.
func (s *Secret) Destroy() {
	if s.value != nil {
		words := s.value.Bits()
		for i := range words {
			words[i] = 0
		}
		s.value.SetInt64(0)
		s.value = nil
	}
}
