package sdjwt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc/pkg/envelope"
	"vc/pkg/path"
	"vc/pkg/verification"
)

func generateKeyAndResolver(t *testing.T) (*ecdsa.PrivateKey, envelope.Resolver) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	resolver := envelope.ResolverFunc(func(tag envelope.KeyTag, purpose envelope.Purpose) (envelope.ResolvedKey, error) {
		if purpose == envelope.PurposeSign {
			return envelope.ResolvedKey{Algorithm: "ES256", Key: key}, nil
		}
		return envelope.ResolvedKey{Algorithm: "ES256", Key: &key.PublicKey}, nil
	})
	return key, resolver
}

func TestIssueAndVerify_EndToEnd(t *testing.T) {
	key, resolver := generateKeyAndResolver(t)

	payload := []byte(`{"iss":"did:ex:issuer","iat":1,"credentialSubject":{"id":"did:ex:123","degree":"BSc"}}`)

	redacted, triples, err := Redact(payload, nil, counterSaltFactory(), SHA256)
	require.NoError(t, err)
	assert.Empty(t, triples)

	signed, err := Sign(redacted, "ES256", "k1", "", key)
	require.NoError(t, err)

	tok := Token{IssuerSignedJWS: signed}
	compact, err := tok.Serialize()
	require.NoError(t, err)

	result, err := Verify(compact, resolver, "k1", verification.Options{})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "did:ex:issuer", result.DisclosedTree["iss"].String)
}

func TestIssueAndVerify_ArrayElementDisclosure(t *testing.T) {
	key, resolver := generateKeyAndResolver(t)

	payload := []byte(`{"iss":"did:ex:issuer","credentialSubject":{"nationalities":["SE","DE"]}}`)
	disclosable := []path.Path{path.MustParse("/credentialSubject/nationalities/1")}

	redacted, triples, err := Redact(payload, disclosable, counterSaltFactory(), SHA256)
	require.NoError(t, err)
	require.Len(t, triples, 1)

	signed, err := Sign(redacted, "ES256", "k1", "", key)
	require.NoError(t, err)

	tok := Token{IssuerSignedJWS: signed, Disclosures: triples}
	compact, err := tok.Serialize()
	require.NoError(t, err)

	result, err := Verify(compact, resolver, "k1", verification.Options{})
	require.NoError(t, err)
	require.True(t, result.Valid)

	nats := result.DisclosedTree["credentialSubject"].Map["nationalities"].Array
	require.Len(t, nats, 2)
	assert.Equal(t, "SE", nats[0].String)
	assert.Equal(t, "DE", nats[1].String)
}
