package envelope

import (
	"github.com/fxamacker/cbor/v2"

	"vc/pkg/vcerr"
)

// COSE header label constants (RFC 8152 §3.1) plus the application-specific
// sd_alg label the SD-CWT envelope carries in its protected header (spec
// §4.6/§6). There is no IANA-registered label for sd_alg at the time this
// was written, so a private-use negative integer is chosen, the same
// convention RFC 8152 §1.2 reserves negative values for.
const (
	HeaderLabelAlg   = 1
	HeaderLabelKid   = 4
	HeaderLabelTyp   = 16
	HeaderLabelSDAlg = -65537
)

// COSEHeader is the protected (or unprotected) header map of a COSE_Sign1
// envelope, keyed by the integer labels above, mirroring the teacher's
// integer-keyed CBOR structs in pkg/vc20/crypto/ecdsa-sd.
type COSEHeader struct {
	Alg   int64  `cbor:"1,keyasint,omitempty"`
	Kid   []byte `cbor:"4,keyasint,omitempty"`
	Typ   string `cbor:"16,keyasint,omitempty"`
	SDAlg string `cbor:"-65537,keyasint,omitempty"`
}

// coseSign1Tag is the RFC 8152 §2 COSE_Sign1_Tagged tag number: a
// COSE_Sign1 structure is always wrapped in this CBOR tag on the wire
// (spec §6 "output is the CBOR-encoded tagged COSE_Sign1").
const coseSign1Tag = 18

var canonicalEncMode = func() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// SigStructure builds the RFC 8152 §4.4 Sig_structure bytes for a
// COSE_Sign1 with an empty external_aad, the form this module always
// signs: ["Signature1", protected_bstr, external_aad, payload].
func SigStructure(protected, payload []byte) ([]byte, error) {
	arr := []any{"Signature1", protected, []byte{}, payload}
	return canonicalEncMode.Marshal(arr)
}

// AlgFunc is a registered COSE signing function: given the Sig_structure
// bytes and opaque key material, produce a signature. Registered per
// algorithm identifier the same way golang-jwt/jwt/v5 registers JWS
// SigningMethods — there is no equivalent COSE registry in this module's
// dependency set, so a minimal one is defined here rather than reaching
// outside the corpus for a full COSE library.
type AlgFunc func(sigStructure []byte, key any) ([]byte, error)

// VerifyFunc is the verification counterpart of AlgFunc.
type VerifyFunc func(sigStructure, signature []byte, key any) error

// AlgRegistry is a process-wide (but injectable — never a hidden
// singleton) table of COSE signing/verification functions keyed by the
// numeric `alg` header value (RFC 8152 §8, e.g. -7 for ES256).
type AlgRegistry struct {
	signers   map[int64]AlgFunc
	verifiers map[int64]VerifyFunc
}

// NewAlgRegistry builds an empty registry; callers register the
// algorithms their deployment actually supports.
func NewAlgRegistry() *AlgRegistry {
	return &AlgRegistry{signers: map[int64]AlgFunc{}, verifiers: map[int64]VerifyFunc{}}
}

// RegisterSigner adds a signing function for alg.
func (r *AlgRegistry) RegisterSigner(alg int64, fn AlgFunc) { r.signers[alg] = fn }

// RegisterVerifier adds a verification function for alg.
func (r *AlgRegistry) RegisterVerifier(alg int64, fn VerifyFunc) { r.verifiers[alg] = fn }

// SignCOSE builds a CBOR-encoded, tag-18-wrapped COSE_Sign1 with the given
// protected header and payload (spec §4.6 SD-CWT signer contract, §6
// "CBOR-encoded tagged COSE_Sign1"), signing via the registered AlgFunc for
// header.Alg. Grounded on the teacher's mdoc.COSESign1.MarshalCBOR /
// tokenstatuslist.GenerateCWT, both of which wrap the 4-element
// [protected, unprotected, payload, signature] array in cbor.Tag{Number: 18}.
func SignCOSE(registry *AlgRegistry, header COSEHeader, unprotected map[any]any, payload []byte, key any) ([]byte, error) {
	fn, ok := registry.signers[header.Alg]
	if !ok {
		return nil, vcerr.ErrSignatureInvalid
	}

	protectedBytes, err := canonicalEncMode.Marshal(header)
	if err != nil {
		return nil, err
	}

	toSign, err := SigStructure(protectedBytes, payload)
	if err != nil {
		return nil, err
	}

	sig, err := fn(toSign, key)
	if err != nil {
		return nil, err
	}

	arr := []any{protectedBytes, unprotected, payload, sig}
	return canonicalEncMode.Marshal(cbor.Tag{Number: coseSign1Tag, Content: arr})
}

// VerifyCOSE parses a tag-18 COSE_Sign1 envelope, resolves the
// verification key via resolver against tag, and checks the signature
// over the recomputed Sig_structure (spec §4.10 plain COSE_Sign1
// verification). On success it returns the decoded header, the
// unprotected map, and the payload bytes. Fails with InvalidTokenStruct
// if the outer CBOR item isn't tag 18 or doesn't unwrap to the expected
// 4-element array, the same tag check as the teacher's
// mdoc.COSESign1.UnmarshalCBOR.
func VerifyCOSE(token []byte, resolver Resolver, tag KeyTag, registry *AlgRegistry) (COSEHeader, map[any]any, []byte, error) {
	var header COSEHeader

	var wrapper cbor.Tag
	if err := cbor.Unmarshal(token, &wrapper); err != nil {
		return header, nil, nil, vcerr.ErrInvalidTokenStruct
	}
	if wrapper.Number != coseSign1Tag {
		return header, nil, nil, vcerr.ErrInvalidTokenStruct
	}

	arr, ok := wrapper.Content.([]any)
	if !ok || len(arr) != 4 {
		return header, nil, nil, vcerr.ErrInvalidTokenStruct
	}
	protectedBytes, ok := arr[0].([]byte)
	if !ok {
		return header, nil, nil, vcerr.ErrInvalidTokenStruct
	}
	unprotected, _ := arr[1].(map[any]any)
	payload, _ := arr[2].([]byte)
	signature, ok := arr[3].([]byte)
	if !ok {
		return header, nil, nil, vcerr.ErrInvalidTokenStruct
	}

	if err := cbor.Unmarshal(protectedBytes, &header); err != nil {
		return header, nil, nil, vcerr.ErrInvalidTokenStruct
	}

	resolved, err := resolver.Resolve(tag, PurposeVerify)
	if err != nil {
		return header, nil, nil, vcerr.ErrVerificationMethodMissing
	}

	verify, ok := registry.verifiers[header.Alg]
	if !ok {
		return header, nil, nil, vcerr.ErrVerificationMethodMissing
	}

	toVerify, err := SigStructure(protectedBytes, payload)
	if err != nil {
		return header, nil, nil, err
	}

	if err := verify(toVerify, signature, resolved.Key); err != nil {
		return header, nil, nil, vcerr.ErrSignatureInvalid
	}

	return header, unprotected, payload, nil
}
