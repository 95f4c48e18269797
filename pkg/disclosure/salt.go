package disclosure

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// SaltFactory produces a fresh, cryptographically random salt for each
// disclosure. The redactor's only source of non-determinism (SPEC_FULL §4.5).
type SaltFactory func() string

// DefaultSaltFactory returns base64url-encoded 128-bit values drawn from
// uuid.New() (version 4, crypto/rand-backed); 122 of the 128 bits are
// random, the other 6 are the fixed version and variant bits. It is the
// same entropy source teacher's pkg/sdjwt/issuer.go newUUID already pulls
// in via
// github.com/google/uuid — reused here for its randomness rather than its
// identifier semantics.
func DefaultSaltFactory() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}
