package envelope

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"math/big"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc/pkg/vcerr"
)

const algES256 int64 = -7

// fixedWidth pads b to n bytes (big-endian), the JOSE/COSE convention for
// encoding an ECDSA r or s component at a curve's coordinate size.
func fixedWidth(b []byte, n int) []byte {
	if len(b) >= n {
		return b[len(b)-n:]
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}

func ecdsaAlgFuncs() (AlgFunc, VerifyFunc) {
	sign := func(sigStructure []byte, key any) ([]byte, error) {
		priv := key.(*ecdsa.PrivateKey)
		digest := sha256.Sum256(sigStructure)
		r, s, err := ecdsa.Sign(rand.Reader, priv, digest[:])
		if err != nil {
			return nil, err
		}
		return append(fixedWidth(r.Bytes(), 32), fixedWidth(s.Bytes(), 32)...), nil
	}
	verify := func(sigStructure, signature []byte, key any) error {
		pub := key.(*ecdsa.PublicKey)
		if len(signature) != 64 {
			return errors.New("malformed signature length")
		}
		digest := sha256.Sum256(sigStructure)
		r := new(big.Int).SetBytes(signature[:32])
		s := new(big.Int).SetBytes(signature[32:])
		if !ecdsa.Verify(pub, digest[:], r, s) {
			return errors.New("signature mismatch")
		}
		return nil
	}
	return sign, verify
}

func TestSignCOSE_VerifyCOSE_RoundTrip(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	registry := NewAlgRegistry()
	sign, verify := ecdsaAlgFuncs()
	registry.RegisterSigner(algES256, sign)
	registry.RegisterVerifier(algES256, verify)

	header := COSEHeader{Alg: algES256, Kid: []byte("key-1"), Typ: "application/vc+cose", SDAlg: "sha-256"}
	payload := []byte(`{"1":"https://issuer.example"}`)

	token, err := SignCOSE(registry, header, map[any]any{"sd_claims": []any{}}, payload, priv)
	require.NoError(t, err)

	var wrapper cbor.Tag
	require.NoError(t, cbor.Unmarshal(token, &wrapper))
	assert.EqualValues(t, 18, wrapper.Number, "SignCOSE output must be wrapped in the COSE_Sign1_Tagged tag (RFC 8152 §2)")

	resolver := ResolverFunc(func(tag KeyTag, purpose Purpose) (ResolvedKey, error) {
		assert.Equal(t, PurposeVerify, purpose)
		return ResolvedKey{Key: &priv.PublicKey}, nil
	})

	gotHeader, unprotected, gotPayload, err := VerifyCOSE(token, resolver, "key-1", registry)
	require.NoError(t, err)
	assert.Equal(t, header, gotHeader)
	assert.Equal(t, payload, gotPayload)
	assert.Contains(t, unprotected, "sd_claims")
}

func TestSignCOSE_UnregisteredAlgorithmFails(t *testing.T) {
	registry := NewAlgRegistry()
	_, err := SignCOSE(registry, COSEHeader{Alg: algES256}, nil, []byte("{}"), nil)
	assert.Error(t, err)
}

func TestVerifyCOSE_RejectsUntaggedStructure(t *testing.T) {
	registry := NewAlgRegistry()
	untagged, err := cbor.Marshal([]any{[]byte("protected"), map[any]any{}, []byte("payload"), []byte("sig")})
	require.NoError(t, err)

	resolver := ResolverFunc(func(tag KeyTag, purpose Purpose) (ResolvedKey, error) {
		return ResolvedKey{}, nil
	})

	_, _, _, err = VerifyCOSE(untagged, resolver, "key-1", registry)
	assert.ErrorIs(t, err, vcerr.ErrInvalidTokenStruct)
}
