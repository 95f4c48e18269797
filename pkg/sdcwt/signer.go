package sdcwt

import (
	"vc/pkg/config"
	"vc/pkg/envelope"
)

// DefaultMediaType is the recommended `typ` for SD-CWT (spec §4.6), read
// from config.Current so a deployment can override it via
// VC_SDCWT_MEDIA_TYPE instead of this package hardcoding it.
func DefaultMediaType() string {
	return config.Current().SDCWTMediaType
}

// Sign implements the C6 contract for SD-CWT: protected header
// `{alg, kid, typ, sd_alg}`, unprotected header carrying `sd_claims` (the
// CBOR array of canonically encoded disclosure arrays, spec §6), COSE_Sign1
// Sig_structure per RFC 8152 (spec §4.6). It delegates signature mechanics
// to pkg/envelope, the same separation the teacher keeps between
// ecdsa-sd's CBOR framing and its actual signature computation.
func Sign(registry *envelope.AlgRegistry, redactedPayload []byte, alg int64, kid []byte, mediaType string, sdAlg HashAlgorithm, encodedDisclosures [][]byte, key any) ([]byte, error) {
	if mediaType == "" {
		mediaType = DefaultMediaType()
	}

	header := envelope.COSEHeader{Alg: alg, Kid: kid, Typ: mediaType, SDAlg: string(sdAlg)}

	sdClaims := make([]any, len(encodedDisclosures))
	for i, d := range encodedDisclosures {
		sdClaims[i] = d
	}
	unprotected := map[any]any{"sd_claims": sdClaims}

	return envelope.SignCOSE(registry, header, unprotected, redactedPayload, key)
}
