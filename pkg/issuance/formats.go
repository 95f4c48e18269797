package issuance

import (
	"strconv"

	"vc/pkg/disclosure"
	"vc/pkg/envelope"
	"vc/pkg/path"
	"vc/pkg/redact"
	"vc/pkg/sdcwt"
	"vc/pkg/sdjwt"
)

// SDJWTFormat adapts pkg/sdjwt's Redact/Sign functions to the Format
// contract. alg and kid are fixed per issuer configuration (the signer
// itself is stateless beyond them).
func SDJWTFormat(alg, kid string) Format {
	return Format{
		Name:             "sd-jwt",
		Algorithm:        alg,
		DefaultMediaType: sdjwt.DefaultMediaType(),
		Redact: func(payload []byte, disclosablePaths []path.Path, saltFactory disclosure.SaltFactory, hashAlgorithm HashAlgorithm) ([]byte, []disclosure.Triple, error) {
			return sdjwt.Redact(payload, disclosablePaths, saltFactory, sdjwt.HashAlgorithm(hashAlgorithm))
		},
		Sign: func(redactedPayload []byte, _ HashAlgorithm, mediaType string, key any, _ string) ([]byte, error) {
			return sdjwt.Sign(redactedPayload, alg, kid, mediaType, key)
		},
	}
}

// IssueSDCWT runs the C5 -> C6 pipeline for SD-CWT directly rather than
// through the generic Format contract: its signer needs the encoded
// disclosure bytes for its sd_claims header, one more piece of state than
// the format-neutral Signer contract carries.
func IssueSDCWT(registry *envelope.AlgRegistry, coseAlg int64, kid []byte, payload []byte, disclosablePaths []path.Path, key any, opts Options) (Output, error) {
	log := opts.Logger
	hashAlg := opts.HashAlgorithm
	if hashAlg == "" {
		hashAlg = DefaultHashAlgorithm()
	}
	mediaType := opts.MediaType
	if mediaType == "" {
		mediaType = sdcwt.DefaultMediaType()
	}
	saltFactory := opts.SaltFactory
	if saltFactory == nil {
		saltFactory = sdcwt.DefaultSaltFactory
	}

	signingOpts := redact.SigningOptions{Algorithm: strconv.FormatInt(coseAlg, 10), KeyID: string(kid), MediaType: mediaType}
	if err := signingOpts.Validate(); err != nil {
		return Output{}, err
	}

	redacted, disclosures, err := sdcwt.Redact(payload, disclosablePaths, saltFactory, sdcwt.HashAlgorithm(hashAlg))
	if err != nil {
		log.V(0).Info("SD-CWT redaction failed", "error", err.Error())
		return Output{}, err
	}

	encoded, err := sdcwt.EncodeDisclosuresForSigning(disclosures)
	if err != nil {
		return Output{}, err
	}

	signed, err := sdcwt.Sign(registry, redacted, coseAlg, kid, mediaType, sdcwt.HashAlgorithm(hashAlg), encoded, key)
	if err != nil {
		log.V(0).Info("SD-CWT signing failed", "error", err.Error())
		return Output{}, err
	}

	log.V(1).Info("SD-CWT issuance complete", "disclosureCount", len(disclosures))
	return Output{SignedToken: signed, Disclosures: disclosures}, nil
}
