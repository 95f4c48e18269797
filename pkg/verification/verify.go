// Package verification implements the SD claim verification pass shared by
// every selective-disclosure format (C12): re-encode each disclosure, hash
// it, locate the digest in the claim tree, splice the disclosed value back
// in, and check that issuer-declared mandatory claims survived. Grounded
// on the teacher's pkg/sdjwt/verifier.go digest-matching loop, generalized
// to walk a model.Value tree instead of a flat jwt.MapClaims map so the
// same splice logic serves both the SD-JWT "_sd" array and the SD-CWT
// simple(59) sentinel key.
package verification

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/moogar0880/problems"

	"vc/pkg/disclosure"
	"vc/pkg/model"
	"vc/pkg/vcerr"
)

// EncodeFunc renders a disclosure to its format-canonical bytes before
// hashing (spec §4.7 encode_fn / §4.5 step 2).
type EncodeFunc func(disclosure.Triple) ([]byte, error)

// HashFunc hashes encoded bytes into the digest form the claim tree
// stores (a base64url string for SD-JWT, raw bytes for SD-CWT — callers
// return the same string form digestKey renders from the tree's digests).
type HashFunc func([]byte) (string, error)

// ArrayMarkerKey is the field name SD-JWT uses on a single-key object to
// flag an array element as selectively disclosed (`{"...": digest}`,
// GLOSSARY "Disclosure"); SD-CWT has no array-element marker in scope here.
const ArrayMarkerKey = "..."

// Options configures a verification pass.
type Options struct {
	// PartialResults, when true, makes missing mandatory claims (and, for
	// SD-JWT, an envelope signature or key-resolution failure) return a
	// Result with Valid=false and the claim tree instead of an error.
	// Claim-level failures are always accumulated in Result.ClaimErrors
	// alongside the spliced tree, whatever this flag says.
	PartialResults bool

	// MandatoryPaths lists the claim names that must be present as
	// top-level keys of the fully-disclosed tree (spec §4.10 step 5).
	MandatoryPaths []string

	// Logger is an optional diagnostic sink (zero value = logr.Discard(),
	// no logging), the same shape every core entry point accepts
	// (SPEC_FULL §2).
	Logger logr.Logger
}

// Result is the outcome of a claim-level verification pass.
type Result struct {
	DisclosedTree map[string]model.Value
	ClaimErrors   []*vcerr.ClaimError
	Valid         bool
}

// Problem renders the accumulated ClaimErrors as an RFC 7807 document for a
// caller that sits behind HTTP (spec §7), via vcerr.ProblemFromClaims. It
// returns nil when Valid is true or there were no claim-level failures to
// report (an envelope-level or structural failure carries no ClaimErrors,
// so it renders nil here — those are rendered with
// vcerr.ProblemFromVerification instead).
func (r Result) Problem() *problems.Problem {
	if r.Valid || len(r.ClaimErrors) == 0 {
		return nil
	}
	return vcerr.ProblemFromClaims(r.ClaimErrors)
}

// VerifySDClaims implements spec §4.10 steps 3-4: digest-match every
// disclosure into tree under sdKey and splice the disclosed values back at
// their parents. It does not check mandatory claims; callers run
// CheckMandatory on the result's DisclosedTree. Envelope-level verification
// (C11) must already have succeeded before this is called — a failure
// there is fatal and never reaches this function (spec §7).
func VerifySDClaims(tree map[string]model.Value, disclosures []disclosure.Triple, sdKey string, encode EncodeFunc, hash HashFunc) (Result, error) {
	remaining := make(map[string]disclosure.Triple, len(disclosures))
	seen := make(map[string]bool, len(disclosures))
	var claimErrs []*vcerr.ClaimError

	for _, d := range disclosures {
		encoded, err := encode(d)
		if err != nil {
			return Result{}, err
		}
		digest, err := hash(encoded)
		if err != nil {
			return Result{}, err
		}
		if seen[digest] {
			claimErrs = append(claimErrs, vcerr.NewClaimError(label(d), vcerr.ErrDigestMismatch))
			continue
		}
		seen[digest] = true
		remaining[digest] = d
	}

	usedInTree := make(map[string]bool)
	spliceErrs := spliceTree(tree, sdKey, remaining, usedInTree)
	claimErrs = append(claimErrs, spliceErrs...)

	for digest, d := range remaining {
		if !usedInTree[digest] {
			claimErrs = append(claimErrs, vcerr.NewClaimError(label(d), vcerr.ErrDigestMismatch))
		}
	}

	valid := len(claimErrs) == 0

	return Result{DisclosedTree: tree, ClaimErrors: claimErrs, Valid: valid}, nil
}

// CheckMandatory verifies that every mandatory path names a present
// top-level claim, failing with MandatoryClaimsMissing otherwise (spec
// §4.10 step 5).
func CheckMandatory(tree map[string]model.Value, mandatoryPaths []string) error {
	for _, p := range mandatoryPaths {
		if _, ok := tree[p]; !ok {
			return fmt.Errorf("%s: %w", p, vcerr.ErrMandatoryClaimsMissing)
		}
	}
	return nil
}

// digestKey renders a digest value (SD-JWT's base64url string or SD-CWT's
// raw byte string) into the map key form HashFunc implementations use.
func digestKey(v model.Value) string {
	if v.Kind == model.KindBytes {
		return string(v.Bytes)
	}
	return v.String
}

func label(d disclosure.Triple) string {
	if d.HasName {
		return d.ClaimName
	}
	return "[array element]"
}

// spliceTree walks tree recursively, replacing every digest found under
// sdKey (a property disclosure) or under an array-element marker (an
// array-element disclosure) with its disclosed value, marking each digest
// consumed used[digest] = true. Digests that appear more than once across
// the tree fail the second and later occurrences as DigestMismatch (spec
// §4.10 step 3).
func spliceTree(tree map[string]model.Value, sdKey string, remaining map[string]disclosure.Triple, used map[string]bool) []*vcerr.ClaimError {
	var errs []*vcerr.ClaimError

	for k, v := range tree {
		if v.Kind == model.KindMap {
			errs = append(errs, spliceTree(v.Map, sdKey, remaining, used)...)
		}
		if v.Kind == model.KindArray {
			errs = append(errs, spliceArray(v.Array, sdKey, remaining, used)...)
		}
		tree[k] = v
	}

	if sd, ok := tree[sdKey]; ok && sd.Kind == model.KindArray {
		for _, digestVal := range sd.Array {
			digest := digestKey(digestVal)
			errs = append(errs, consumeDigest(tree, digest, remaining, used, false, "")...)
		}
		delete(tree, sdKey)
	}

	return errs
}

func spliceArray(arr []model.Value, sdKey string, remaining map[string]disclosure.Triple, used map[string]bool) []*vcerr.ClaimError {
	var errs []*vcerr.ClaimError
	for i, elem := range arr {
		if elem.Kind == model.KindMap {
			if marker, ok := elem.Map[ArrayMarkerKey]; ok && len(elem.Map) == 1 && marker.Kind == model.KindString {
				if d, ok := remaining[marker.String]; ok && !used[marker.String] {
					used[marker.String] = true
					arr[i] = d.Value
				} else {
					errs = append(errs, vcerr.NewClaimError("[array element]", vcerr.ErrDigestMismatch))
				}
				continue
			}
			errs = append(errs, spliceTree(elem.Map, sdKey, remaining, used)...)
		}
	}
	return errs
}

func consumeDigest(tree map[string]model.Value, digest string, remaining map[string]disclosure.Triple, used map[string]bool, _ bool, _ string) []*vcerr.ClaimError {
	d, ok := remaining[digest]
	if !ok {
		return []*vcerr.ClaimError{vcerr.NewClaimError("[unresolved digest]", vcerr.ErrDigestMismatch)}
	}
	if used[digest] {
		return []*vcerr.ClaimError{vcerr.NewClaimError(label(d), vcerr.ErrDigestMismatch)}
	}
	used[digest] = true
	if d.HasName {
		tree[d.ClaimName] = d.Value
	}
	return nil
}
