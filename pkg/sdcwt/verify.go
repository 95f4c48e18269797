package sdcwt

import (
	"vc/pkg/disclosure"
	"vc/pkg/envelope"
	"vc/pkg/verification"
)

// Verify implements the SD-CWT half of spec §4.10: verify the COSE_Sign1
// envelope (C11), recover the disclosure list from `sd_claims`, then run
// claim-level digest matching and splicing (C12) over the decoded payload.
func Verify(token []byte, resolver envelope.Resolver, tag envelope.KeyTag, registry *envelope.AlgRegistry, opts verification.Options) (verification.Result, error) {
	log := opts.Logger
	header, unprotected, payload, err := envelope.VerifyCOSE(token, resolver, tag, registry)
	if err != nil {
		log.V(0).Info("COSE envelope verification failed", "error", err.Error())
		return verification.Result{}, err
	}

	var triples []disclosure.Triple
	if raw, ok := unprotected["sd_claims"]; ok {
		if arr, ok := raw.([]any); ok {
			triples, err = decodeDisclosures(arr)
			if err != nil {
				return verification.Result{}, err
			}
		}
	}

	tree, err := ParseClaims(payload)
	if err != nil {
		return verification.Result{}, err
	}

	alg := HashAlgorithm(header.SDAlg)
	if alg == "" {
		alg = SHA256
	}

	result, err := verification.VerifySDClaims(tree, triples, sdTreeKey,
		func(d disclosure.Triple) ([]byte, error) {
			return EncodeDisclosure([]byte(d.Salt), d.HasName, d.ClaimName, d.Value)
		},
		func(encoded []byte) (string, error) {
			digest, err := alg.sum(encoded)
			if err != nil {
				return "", err
			}
			return string(digest), nil
		},
	)
	if err != nil {
		return verification.Result{}, err
	}

	if err := verification.CheckMandatory(result.DisclosedTree, opts.MandatoryPaths); err != nil {
		log.V(0).Info("mandatory claims missing after splice", "error", err.Error())
		if !opts.PartialResults {
			return verification.Result{}, err
		}
		result.Valid = false
	}

	if p := result.Problem(); p != nil {
		log.V(0).Info("SD-CWT claim verification failed", "problem", p.Detail)
	}
	log.V(1).Info("SD-CWT verification complete", "valid", result.Valid, "claimErrors", len(result.ClaimErrors))
	return result, nil
}
