package sdcwt

import (
	"fmt"

	"github.com/multiformats/go-multibase"
)

// EncodeMultibase frames a COSE_Sign1 byte string as a self-describing
// multibase text value (the "u" base64url-no-pad prefix), the same
// encoding teacher's ecdsa-sd base-proof components use to carry CBOR
// bytes through text-only channels such as QR payloads or JSON fixtures.
func EncodeMultibase(coseSign1 []byte) (string, error) {
	encoded, err := multibase.Encode(multibase.Base64url, coseSign1)
	if err != nil {
		return "", fmt.Errorf("multibase encoding failed: %w", err)
	}
	return encoded, nil
}

// DecodeMultibase reverses EncodeMultibase, recovering the raw COSE_Sign1
// bytes regardless of which multibase encoding was used to frame them.
func DecodeMultibase(encoded string) ([]byte, error) {
	_, decoded, err := multibase.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("multibase decoding failed: %w", err)
	}
	return decoded, nil
}
