package vcerr

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type redactionOptionsFixture struct {
	HashAlgorithm string `json:"hash_algorithm" validate:"required,oneof=sha-256 sha-384 sha-512"`
}

func TestProblemFromValidation(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(redactionOptionsFixture{HashAlgorithm: "sha-1"})
	require.Error(t, err)

	ve, ok := err.(validator.ValidationErrors)
	require.True(t, ok)

	p := ProblemFromValidation(ve)
	assert.Equal(t, 422, p.Status)
	assert.Equal(t, "validation_error", p.Title)
	assert.Contains(t, p.Detail, "oneof")
}

func TestProblemFromVerification(t *testing.T) {
	p := ProblemFromVerification(ErrSignatureInvalid)
	assert.Equal(t, 401, p.Status)
	assert.Equal(t, "verification_failed", p.Title)
	assert.Contains(t, p.Detail, "signature")
}

func TestProblemFromClaims(t *testing.T) {
	errs := []*ClaimError{
		NewClaimError("/credentialSubject/degree", ErrDigestMismatch),
		NewClaimError("/credentialSubject/id", ErrMandatoryClaimsMissing),
	}
	p := ProblemFromClaims(errs)
	assert.Equal(t, 422, p.Status)
	assert.Contains(t, p.Detail, "degree")
	assert.Contains(t, p.Detail, "id")
}

func TestClaimError_UnwrapAndMessage(t *testing.T) {
	ce := NewClaimError("/credentialSubject/degree", ErrDigestMismatch)
	assert.ErrorIs(t, ce, ErrDigestMismatch)
	assert.Contains(t, ce.Error(), "/credentialSubject/degree")
}
