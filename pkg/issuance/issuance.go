// Package issuance implements the C7 orchestrator: it owns only the glue
// between a format-plugged SD redactor (C5) and signer (C6), defaulting
// hash_algorithm and media_type, while all parsing, sensitive material,
// and signing stay inside the plugged delegates (spec §4.6). Grounded on
// the teacher's pkg/sdjwt/issuer.go top-level Sign entry point, which
// plays the same orchestrator role over its own instruction-tree redactor.
package issuance

import (
	"github.com/go-logr/logr"

	"vc/pkg/config"
	"vc/pkg/disclosure"
	"vc/pkg/path"
	"vc/pkg/redact"
)

// HashAlgorithm names a spec §6 IANA hash-algorithm identifier.
type HashAlgorithm string

// DefaultHashAlgorithm is the orchestrator's default when a caller doesn't
// specify one (spec §4.6), read from config.Current so a deployment can
// override it via VC_HASH_ALGORITHM instead of this package hardcoding it.
func DefaultHashAlgorithm() HashAlgorithm {
	return HashAlgorithm(config.Current().HashAlgorithm)
}

// Redactor is the C5 contract every format plugin implements.
type Redactor func(payload []byte, disclosablePaths []path.Path, saltFactory disclosure.SaltFactory, hashAlgorithm HashAlgorithm) ([]byte, []disclosure.Triple, error)

// Signer is the C6 contract every format plugin implements.
type Signer func(redactedPayload []byte, hashAlgorithm HashAlgorithm, mediaType string, key any, keyID string) ([]byte, error)

// Format names a pluggable SD wire format and its recommended media type
// (spec §4.6 "media_type to the format's recommended value"). Algorithm is
// the signing algorithm identifier the format was constructed with, used
// only to fill out SigningOptions before Sign runs.
type Format struct {
	Name             string
	Algorithm        string
	DefaultMediaType string
	Redact           Redactor
	Sign             Signer
}

// Options configures one Issue call. Zero values fall back to the
// orchestrator's defaults.
type Options struct {
	HashAlgorithm HashAlgorithm
	MediaType     string
	SaltFactory   disclosure.SaltFactory

	// Logger is an optional diagnostic sink (zero value = logr.Discard()).
	Logger logr.Logger
}

// Output is what Issue hands back: the signed envelope bytes and the
// disclosures a holder will later select from.
type Output struct {
	SignedToken []byte
	Disclosures []disclosure.Triple
}

// Issue runs the C5 → C6 pipeline for one format plugin: redact the
// payload down to disclosable paths, then sign the result (spec §4.6).
func Issue(format Format, payload []byte, disclosablePaths []path.Path, key any, keyID string, opts Options) (Output, error) {
	log := opts.Logger
	hashAlg := opts.HashAlgorithm
	if hashAlg == "" {
		hashAlg = DefaultHashAlgorithm()
	}
	mediaType := opts.MediaType
	if mediaType == "" {
		mediaType = format.DefaultMediaType
	}
	saltFactory := opts.SaltFactory
	if saltFactory == nil {
		saltFactory = disclosure.DefaultSaltFactory
	}

	if err := (redact.RedactionOptions{HashAlgorithm: string(hashAlg)}).Validate(); err != nil {
		return Output{}, err
	}
	if err := (redact.SigningOptions{Algorithm: format.Algorithm, KeyID: keyID, MediaType: mediaType}).Validate(); err != nil {
		return Output{}, err
	}

	log.V(1).Info("issuing credential", "format", format.Name, "disclosablePaths", len(disclosablePaths))

	redacted, disclosures, err := format.Redact(payload, disclosablePaths, saltFactory, hashAlg)
	if err != nil {
		log.V(0).Info("redaction failed", "format", format.Name, "error", err.Error())
		return Output{}, err
	}

	signed, err := format.Sign(redacted, hashAlg, mediaType, key, keyID)
	if err != nil {
		log.V(0).Info("signing failed", "format", format.Name, "error", err.Error())
		return Output{}, err
	}

	log.V(1).Info("issuance complete", "format", format.Name, "disclosureCount", len(disclosures))
	return Output{SignedToken: signed, Disclosures: disclosures}, nil
}
