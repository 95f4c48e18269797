package vcerr

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/moogar0880/problems"
)

// ProblemFromValidation renders go-playground/validator field errors as an
// RFC 7807 problem-details document, the same shape teacher's
// helpers.NewErrorFromError produces for validator.ValidationErrors, minus
// the storage-layer branches (mongo, jsonschema) that don't apply to a
// pure library.
func ProblemFromValidation(err validator.ValidationErrors) *problems.Problem {
	p := problems.NewStatusProblem(422)
	p.Title = "validation_error"

	fields := make([]string, 0, len(err))
	for _, fe := range err {
		namespace := fe.Namespace()
		if idx := strings.IndexByte(namespace, '.'); idx >= 0 {
			namespace = namespace[idx+1:]
		}
		fields = append(fields, namespace+":"+fe.Tag())
	}
	p.Detail = strings.Join(fields, ", ")
	return p
}

// ProblemFromVerification renders an envelope-level verification failure
// (§7: fatal, short-circuits) as a problem-details document.
func ProblemFromVerification(err error) *problems.Problem {
	p := problems.NewStatusProblem(401)
	p.Title = "verification_failed"
	p.Detail = err.Error()
	return p
}

// ProblemFromClaims renders the accumulated per-claim failures of a
// partial-result SD verification (§7: "claim-level failures are
// accumulated per claim").
func ProblemFromClaims(errs []*ClaimError) *problems.Problem {
	p := problems.NewStatusProblem(422)
	p.Title = "claim_verification_failed"

	details := make([]string, 0, len(errs))
	for _, e := range errs {
		details = append(details, e.Error())
	}
	p.Detail = strings.Join(details, "; ")
	return p
}
