// Package vcerr collects the error kinds the selective-disclosure core
// raises (SPEC_FULL §7), following the same plain sentinel-error style as
// the teacher's pkg/vc20/credential/errors.go.
package vcerr

import "errors"

// Structural / parse failures.
var (
	ErrMalformedPointer    = errors.New("malformed JSON pointer")
	ErrMalformedDisclosure = errors.New("malformed disclosure")
	ErrInvalidTokenStruct  = errors.New("invalid token structure")
)

// CredentialPath (C1) failures.
var (
	ErrNotAJSONPath = errors.New("append is only valid on JSON-Pointer paths")
)

// Path grouping / digest placement (C4) failures.
var (
	ErrCannotRedactRoot  = errors.New("cannot redact the root path")
	ErrNonPropertyLeaf   = errors.New("leaf segment cannot be interpreted as a property name in this format")
	ErrPathNotResolvable = errors.New("path does not resolve inside the claim tree")
)

// Lattice (C2) construction failures.
var (
	ErrMandatoryNotSubset = errors.New("mandatory (bottom) set is not a subset of the available (top) set")
)

// Policy pipeline (C9/C10) contract violations.
var (
	ErrPolicyWidenedDisclosure = errors.New("policy assessor widened the disclosure set")
)

// Verification (C11/C12) failures.
var (
	ErrDigestMismatch            = errors.New("disclosure digest not found in claim tree")
	ErrMandatoryClaimsMissing    = errors.New("mandatory claims missing from disclosed credential")
	ErrSignatureInvalid          = errors.New("envelope signature invalid")
	ErrVerificationMethodMissing = errors.New("verification method not found")
	ErrMalformedBaseProof        = errors.New("malformed base proof")
	ErrMalformedDerivedProof     = errors.New("malformed derived proof")
)

// Cooperative cancellation.
var (
	ErrCancelled = errors.New("computation cancelled")
)

// ClaimError wraps a per-claim verification failure (§7: "claim-level
// failures are non-fatal and reported per claim"). It never short-circuits
// the overall verification result; callers accumulate these.
type ClaimError struct {
	// Path identifies the claim: a path string, or, from pkg/verification,
	// the disclosure's claim name or a bracketed label such as
	// "[array element]".
	Path string
	Err  error
}

func (e *ClaimError) Error() string {
	return "claim " + e.Path + ": " + e.Err.Error()
}

func (e *ClaimError) Unwrap() error { return e.Err }

// NewClaimError builds a ClaimError for the given path.
func NewClaimError(path string, err error) *ClaimError {
	return &ClaimError{Path: path, Err: err}
}
