package sdcwt

import (
	"github.com/fxamacker/cbor/v2"

	"vc/pkg/disclosure"
	"vc/pkg/model"
	"vc/pkg/vcerr"
)

// Token is the parsed form of an SD-CWT presentation: the signed
// COSE_Sign1 bytes plus the disclosure list carried in its unprotected
// `sd_claims` header (spec §6).
type Token struct {
	COSESign1   []byte
	Disclosures []disclosure.Triple
}

// EncodeDisclosuresForSigning renders each disclosure to its canonical
// CBOR array form, ready to be embedded as `sd_claims` byte-string elements.
func EncodeDisclosuresForSigning(triples []disclosure.Triple) ([][]byte, error) {
	out := make([][]byte, len(triples))
	for i, t := range triples {
		encoded, err := EncodeDisclosure([]byte(t.Salt), t.HasName, t.ClaimName, t.Value)
		if err != nil {
			return nil, err
		}
		out[i] = encoded
	}
	return out, nil
}

// decodeDisclosures parses the `sd_claims` unprotected-header array back
// into disclosure triples.
func decodeDisclosures(sdClaims []any) ([]disclosure.Triple, error) {
	out := make([]disclosure.Triple, 0, len(sdClaims))
	for _, raw := range sdClaims {
		var encoded []byte
		switch v := raw.(type) {
		case []byte:
			encoded = v
		case cbor.RawMessage:
			encoded = v
		default:
			return nil, vcerr.ErrMalformedDisclosure
		}

		var arr []any
		if err := cbor.Unmarshal(encoded, &arr); err != nil {
			return nil, vcerr.ErrMalformedDisclosure
		}

		switch len(arr) {
		case 2:
			salt, ok := arr[0].([]byte)
			if !ok {
				return nil, vcerr.ErrMalformedDisclosure
			}
			value, err := model.FromAny(arr[1])
			if err != nil {
				return nil, err
			}
			out = append(out, disclosure.NewArrayElement(string(salt), value))
		case 3:
			salt, ok := arr[0].([]byte)
			if !ok {
				return nil, vcerr.ErrMalformedDisclosure
			}
			name, ok := arr[1].(string)
			if !ok {
				return nil, vcerr.ErrMalformedDisclosure
			}
			value, err := model.FromAny(arr[2])
			if err != nil {
				return nil, err
			}
			out = append(out, disclosure.NewProperty(string(salt), name, value))
		default:
			return nil, vcerr.ErrMalformedDisclosure
		}
	}
	return out, nil
}
