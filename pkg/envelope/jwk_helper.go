package envelope

import (
	"context"
	"crypto/ecdsa"
	"encoding/base64"

	"github.com/lestrrat-go/jwx/v3/jwk"
)

// PublicJWK renders an ECDSA public key as its JWK field map (kty, crv, x,
// y), the same shape teacher pkg/jose.JWK carries, adapted from jwx v1's
// jwk.New/AsMap to the v3 jwk.Key/jwk.Import surface already present in
// this module's dependency set.
//
// Only the conservative subset of the v3 API exercised by the teacher's
// own usage (constructing a Key from a raw key and reading its exported
// field map) is used here; the broader jwx v3 surface was not available to
// verify locally.
type PublicJWK struct {
	KTY string `json:"kty"`
	CRV string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

// FromECDSAPublicKey converts an ECDSA public key into its JWK field map.
func FromECDSAPublicKey(ctx context.Context, pub *ecdsa.PublicKey) (*PublicJWK, error) {
	key, err := jwk.Import(pub)
	if err != nil {
		return nil, err
	}

	out := &PublicJWK{}
	if err := key.Get(jwk.KeyTypeKey, &out.KTY); err != nil {
		return nil, err
	}

	var crv any
	if err := key.Get("crv", &crv); err == nil {
		if s, ok := crv.(interface{ String() string }); ok {
			out.CRV = s.String()
		}
	}

	var x, y []byte
	if err := key.Get(jwk.ECDSAXKey, &x); err == nil {
		out.X = base64.RawURLEncoding.EncodeToString(x)
	}
	if err := key.Get(jwk.ECDSAYKey, &y); err == nil {
		out.Y = base64.RawURLEncoding.EncodeToString(y)
	}

	return out, nil
}
