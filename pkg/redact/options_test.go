package redact

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactionOptions_Validate(t *testing.T) {
	assert.NoError(t, RedactionOptions{HashAlgorithm: "sha-256"}.Validate())

	err := RedactionOptions{HashAlgorithm: "md5"}.Validate()
	require.Error(t, err)
	ve, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	require.Len(t, ve, 1)
	assert.Equal(t, "hash_algorithm", ve[0].Field())
}

func TestRedactionOptions_Validate_MissingRequired(t *testing.T) {
	err := RedactionOptions{}.Validate()
	require.Error(t, err)
}

func TestSigningOptions_Validate(t *testing.T) {
	assert.NoError(t, SigningOptions{Algorithm: "ES256", KeyID: "k1", MediaType: "vc+sd-jwt"}.Validate())

	err := SigningOptions{Algorithm: "ES256"}.Validate()
	require.Error(t, err)
	ve, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	assert.Len(t, ve, 2)
}
