package redact

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

// newValidator builds a validator.Validate configured the way teacher
// pkg/helpers.NewValidator does: struct-required validation enabled, field
// names in error messages taken from the json tag instead of the Go field
// name.
func newValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// RedactionOptions are the caller-supplied knobs C5 redactors validate
// before touching a claim tree (SPEC_FULL §2 validation wiring).
type RedactionOptions struct {
	HashAlgorithm string `json:"hash_algorithm" validate:"required,oneof=sha-256 sha-384 sha-512"`
}

// Validate returns a validator.ValidationErrors value when the options are
// structurally invalid, renderable via vcerr.ProblemFromValidation.
func (o RedactionOptions) Validate() error {
	return newValidator().Struct(o)
}

// SigningOptions are the caller-supplied knobs C6 signers validate before
// building an envelope header.
type SigningOptions struct {
	Algorithm string `json:"alg" validate:"required"`
	KeyID     string `json:"kid" validate:"required"`
	MediaType string `json:"media_type" validate:"required"`
}

// Validate reports a validation error the same way RedactionOptions.Validate does.
func (o SigningOptions) Validate() error {
	return newValidator().Struct(o)
}
