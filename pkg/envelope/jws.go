package envelope

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"vc/pkg/vcerr"
)

// JWSHeader is the protected header of a plain or SD-JWT envelope (C6/C11).
type JWSHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ,omitempty"`
	Kid string `json:"kid,omitempty"`
}

// SignJWS builds `base64url(header) || '.' || base64url(payload) || '.' ||
// base64url(signature)` (spec §4.6 SD-JWT signer contract). The signing
// algorithm is resolved from jwt.GetSigningMethod against header.Alg — the
// same registry teacher pkg/jose.MakeJWT draws SigningMethod instances
// from — so registering a custom alg (jwt.RegisterSigningMethod) is how a
// caller plugs in an algorithm this module never implements itself.
func SignJWS(header JWSHeader, payload []byte, key any) ([]byte, error) {
	method := jwt.GetSigningMethod(header.Alg)
	if method == nil {
		return nil, vcerr.ErrSignatureInvalid
	}

	headerBytes, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerBytes) + "." + base64.RawURLEncoding.EncodeToString(payload)

	sig, err := method.Sign(signingInput, key)
	if err != nil {
		return nil, err
	}

	return []byte(signingInput + "." + base64.RawURLEncoding.EncodeToString(sig)), nil
}

// VerifyJWS splits `header.payload.signature`, resolves the verification
// key via resolver against tag, and checks the signature over
// ASCII(header||'.'||payload) (spec §4.10 plain JWS verification). On
// success it returns the decoded header and payload bytes.
func VerifyJWS(token []byte, resolver Resolver, tag KeyTag) (JWSHeader, []byte, error) {
	var header JWSHeader

	parts := strings.Split(string(token), ".")
	if len(parts) != 3 {
		return header, nil, vcerr.ErrInvalidTokenStruct
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return header, nil, vcerr.ErrInvalidTokenStruct
	}
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return header, nil, vcerr.ErrInvalidTokenStruct
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return header, nil, vcerr.ErrInvalidTokenStruct
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return header, nil, vcerr.ErrInvalidTokenStruct
	}

	resolved, err := resolver.Resolve(tag, PurposeVerify)
	if err != nil {
		return header, payload, vcerr.ErrVerificationMethodMissing
	}

	method := jwt.GetSigningMethod(resolved.Algorithm)
	if method == nil {
		return header, payload, vcerr.ErrVerificationMethodMissing
	}

	signingInput := parts[0] + "." + parts[1]
	if err := method.Verify(signingInput, sig, resolved.Key); err != nil {
		return header, payload, vcerr.ErrSignatureInvalid
	}

	return header, payload, nil
}
