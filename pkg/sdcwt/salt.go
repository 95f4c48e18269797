package sdcwt

import (
	"crypto/rand"

	"vc/pkg/disclosure"
)

// DefaultSaltFactory returns 16 raw random bytes carried in a Go string
// (disclosure.SaltFactory's return type) rather than base64url text —
// SD-CWT disclosures are CBOR byte strings, so unlike pkg/disclosure's
// SD-JWT-oriented DefaultSaltFactory there is no text encoding to strip at
// the boundary; []byte(triple.Salt) recovers the exact bytes generated
// here.
var DefaultSaltFactory disclosure.SaltFactory = func() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return string(buf)
}
