package sdjwt

import (
	"vc/pkg/config"
	"vc/pkg/envelope"
)

// DefaultMediaType is the recommended `typ` for SD-JWT VCs (spec §4.6),
// read from config.Current so a deployment can override it via
// VC_SDJWT_MEDIA_TYPE instead of this package hardcoding it.
func DefaultMediaType() string {
	return config.Current().SDJWTMediaType
}

// Sign implements the C6 contract for SD-JWT: build `{alg, typ, kid}` and
// produce `base64url(header).base64url(payload).base64url(signature)`
// (spec §4.6). It owns only the header shape; the actual signature
// mechanics live in pkg/envelope, which this plugin delegates to the same
// way the teacher's pkg/sdjwt/issuer.go delegates to pkg/jose.MakeJWT.
func Sign(redactedPayload []byte, alg, kid, mediaType string, key any) ([]byte, error) {
	if mediaType == "" {
		mediaType = DefaultMediaType()
	}
	header := envelope.JWSHeader{Alg: alg, Typ: mediaType, Kid: kid}
	return envelope.SignJWS(header, redactedPayload, key)
}
