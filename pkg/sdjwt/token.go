package sdjwt

import (
	"strings"

	"vc/pkg/disclosure"
	"vc/pkg/envelope"
	"vc/pkg/model"
	"vc/pkg/vcerr"
)

// Token is the parsed form of a compact SD-JWT presentation:
// `<issuer-signed-jws>~<disclosure>~...~[<kb-jwt>]` (spec §6).
type Token struct {
	IssuerSignedJWS []byte
	Disclosures     []disclosure.Triple
	KeyBinding      *envelope.KeyBindingJWT
}

// Serialize renders a Token back to its compact wire form (spec §6,
// testable property P8 round-trip).
func (t Token) Serialize() (string, error) {
	var b strings.Builder
	b.Write(t.IssuerSignedJWS)
	b.WriteByte('~')
	for _, d := range t.Disclosures {
		encoded, err := EncodeDisclosure(d.Salt, d.HasName, d.ClaimName, d.Value)
		if err != nil {
			return "", err
		}
		b.WriteString(CompactDisclosure(encoded))
		b.WriteByte('~')
	}
	out := b.String()
	if t.KeyBinding != nil {
		out = envelope.AttachKeyBinding(out, t.KeyBinding)
	}
	return out, nil
}

// ParseToken parses a compact SD-JWT presentation into a Token (spec §6,
// testable property P8 round-trip: Parse(Serialize(t)) == t).
func ParseToken(compact string) (Token, error) {
	kb, rest, hasKB := envelope.ParseKeyBinding(compact)

	segments := strings.Split(rest, "~")
	if len(segments) < 1 {
		return Token{}, vcerr.ErrInvalidTokenStruct
	}

	jws := segments[0]
	disclosureSegments := segments[1:]
	// A trailing '~' produces one empty segment; drop it.
	if len(disclosureSegments) > 0 && disclosureSegments[len(disclosureSegments)-1] == "" {
		disclosureSegments = disclosureSegments[:len(disclosureSegments)-1]
	}

	triples := make([]disclosure.Triple, 0, len(disclosureSegments))
	for _, seg := range disclosureSegments {
		triple, err := decodeDisclosure(seg)
		if err != nil {
			return Token{}, err
		}
		triples = append(triples, triple)
	}

	token := Token{IssuerSignedJWS: []byte(jws), Disclosures: triples}
	if hasKB {
		token.KeyBinding = kb
	}
	return token, nil
}

func decodeDisclosure(compact string) (disclosure.Triple, error) {
	raw, err := rawURLBase64Decode(compact)
	if err != nil {
		return disclosure.Triple{}, vcerr.ErrMalformedDisclosure
	}

	var arr []any
	if err := unmarshalJSONArray(raw, &arr); err != nil {
		return disclosure.Triple{}, vcerr.ErrMalformedDisclosure
	}

	switch len(arr) {
	case 2:
		salt, ok := arr[0].(string)
		if !ok {
			return disclosure.Triple{}, vcerr.ErrMalformedDisclosure
		}
		value, err := model.FromAny(arr[1])
		if err != nil {
			return disclosure.Triple{}, err
		}
		return disclosure.NewArrayElement(salt, value), nil
	case 3:
		salt, ok := arr[0].(string)
		if !ok {
			return disclosure.Triple{}, vcerr.ErrMalformedDisclosure
		}
		name, ok := arr[1].(string)
		if !ok {
			return disclosure.Triple{}, vcerr.ErrMalformedDisclosure
		}
		value, err := model.FromAny(arr[2])
		if err != nil {
			return disclosure.Triple{}, err
		}
		return disclosure.NewProperty(salt, name, value), nil
	default:
		return disclosure.Triple{}, vcerr.ErrMalformedDisclosure
	}
}
