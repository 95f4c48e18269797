// Package policy implements the assessor pipeline (C10): a strictly
// sequential chain of asynchronous narrowing checks that DisclosureComputation
// (C9) threads a proposed disclosure set through. Grounded on the
// teacher's sequential middleware-style pipelines (pkg/grpchelpers,
// pkg/httphelpers chain interceptors in the service layer) generalized
// into a narrowing-only contract with no concurrency between steps (spec
// §4.9).
package policy

import (
	"context"

	"vc/pkg/lattice"
	"vc/pkg/path"
	"vc/pkg/vcerr"
)

// AssessmentContext is everything an assessor receives for one credential
// within one match (spec §4.8 step 5): "(credential, requirement_id,
// proposed_paths, lattice, satisfies, conflicts, format)".
type AssessmentContext[C any] struct {
	Credential    C
	RequirementID string
	ProposedPaths []path.Path
	Lattice       lattice.Lattice[path.Path]
	Satisfies     bool
	Conflicts     []path.Path
	Format        string
}

// Outcome is what an assessor returns. ApprovedPaths is nil for "approved
// without narrowing" (SPEC_FULL/spec §9 Open Questions: nil means no
// narrowing; a non-nil, possibly-empty slice means "narrow to exactly
// this set").
type Outcome struct {
	Approved      bool
	ApprovedPaths *[]path.Path
	AssessorName  string
	Reason        string
}

// Assessor is one pipeline stage: a rule engine, a SAT/ILP solver, an ML
// scorer, or an interactive consent mediator (spec §4.9) — the core
// doesn't care which, as long as it only narrows.
type Assessor[C any] func(ctx context.Context, assessment AssessmentContext[C]) (Outcome, error)

// Record captures one assessor's execution for the decision trace (spec
// §4.8 step 6, §5 ordering guarantees: "policy records appear in per-
// credential execution order across all credentials").
type Record struct {
	AssessorName string
	Approved     bool
	RemovedPaths []path.Path
	Reason       string
}

// Result is the pipeline's final state for one credential: the narrowed
// proposed set, whether the credential was dropped entirely, and the
// per-assessor trace.
type Result struct {
	Dropped      bool
	CurrentPaths []path.Path
	Satisfies    bool
	Records      []Record
}

// Run executes assessors sequentially against one credential's proposed
// disclosure set (spec §4.8 step 5). If an assessor returns
// approved=false, the credential is dropped and Run returns immediately
// with Result.Dropped=true. If an assessor's approved_paths contains any
// path outside the current set, that is a contract violation and Run
// fails with vcerr.ErrPolicyWidenedDisclosure (spec §4.8 step 5, §7).
func Run[C any](ctx context.Context, assessors []Assessor[C], assessment AssessmentContext[C], required []path.Path) (Result, error) {
	current := append([]path.Path(nil), assessment.ProposedPaths...)
	satisfies := assessment.Satisfies
	var records []Record

	for _, assessor := range assessors {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		assessment.ProposedPaths = current
		assessment.Satisfies = satisfies
		outcome, err := assessor(ctx, assessment)
		if err != nil {
			return Result{}, err
		}

		if !outcome.Approved {
			records = append(records, Record{AssessorName: outcome.AssessorName, Approved: false, Reason: outcome.Reason})
			return Result{Dropped: true, Records: records}, nil
		}

		if outcome.ApprovedPaths != nil {
			if !isSubset(*outcome.ApprovedPaths, current) {
				return Result{}, vcerr.ErrPolicyWidenedDisclosure
			}
			removed := setDiff(current, *outcome.ApprovedPaths)
			current = *outcome.ApprovedPaths
			satisfies = isSubset(required, current)
			records = append(records, Record{AssessorName: outcome.AssessorName, Approved: true, RemovedPaths: removed, Reason: outcome.Reason})
			continue
		}

		records = append(records, Record{AssessorName: outcome.AssessorName, Approved: true, Reason: outcome.Reason})
	}

	return Result{Dropped: false, CurrentPaths: current, Satisfies: satisfies, Records: records}, nil
}

func isSubset(subset, superset []path.Path) bool {
	set := make(map[path.Path]struct{}, len(superset))
	for _, p := range superset {
		set[p] = struct{}{}
	}
	for _, p := range subset {
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}

func setDiff(a, b []path.Path) []path.Path {
	inB := make(map[path.Path]struct{}, len(b))
	for _, p := range b {
		inB[p] = struct{}{}
	}
	var out []path.Path
	for _, p := range a {
		if _, ok := inB[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}
