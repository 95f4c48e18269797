// Package computation implements DisclosureComputation (SPEC_FULL §4.8 /
// C9): the single entry point that turns a list of query matches into a
// DisclosurePlan, threading each candidate credential through lattice
// construction (C2), optimal-disclosure computation (C3), and the policy
// assessor pipeline (C10), while recording a full decision trace.
//
// Grounded on the teacher's orchestration style in pkg/vcclient and
// pkg/openid4vp, which build up a single aggregate result object across a
// sequential loop of per-candidate steps and surface trace-context the same
// way this package does, via pkg/trace.
package computation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/trace"

	"vc/pkg/disclosure"
	"vc/pkg/lattice"
	"vc/pkg/path"
	"vc/pkg/policy"
	vctrace "vc/pkg/trace"
	"vc/pkg/vcerr"
)

// Options configures one Compute call with the ambient-stack dependencies a
// library entry point accepts optionally (SPEC_FULL §2): a logr.Logger
// (zero value = logr.Discard(), no logging) and a trace.Tracer to wrap the
// call in a span (nil = vctrace.NewDefault(); the trace-context
// correlators stay empty when no TracerProvider is installed).
type Options struct {
	Logger logr.Logger
	Tracer *vctrace.Tracer
}

// Match is DisclosureMatch<C> (spec §3): one candidate credential against
// one verifier requirement, with the four path sets the lattice is built
// from. Invariants (caller-enforced, not checked here): Required ⊆ Matched
// ⊆ AllAvailable; Mandatory ⊆ AllAvailable.
type Match[C any] struct {
	Credential    C
	RequirementID string
	Required      []path.Path
	Matched       []path.Path
	AllAvailable  []path.Path
	Mandatory     []path.Path
	Format        string
}

// EvaluationRecord marks the start of processing for one match (spec §4.8
// step 1).
type EvaluationRecord struct {
	RequirementID string
	MatchIndex    int
}

// LatticeRecord snapshots the minimum/maximum sets, conflicts, and the
// initial optimal selection computed for one match (spec §4.8 step 4),
// before the policy pipeline narrows it further.
type LatticeRecord struct {
	RequirementID   string
	Minimum         []path.Path
	Maximum         []path.Path
	Conflicts       []path.Path
	InitialSelected []path.Path
}

// CredentialDisclosureDecision is the per-credential output of one match's
// processing (spec §3).
type CredentialDisclosureDecision[C any] struct {
	Credential            C
	RequirementID         string
	SelectedPaths         []path.Path
	SatisfiesRequirements bool
	Conflicts             []path.Path
	Unavailable           []path.Path
	Format                string
	Lattice               lattice.Lattice[path.Path]
}

// DecisionRecord is the full trace of one Compute call (spec §3).
type DecisionRecord struct {
	StartTime      time.Time
	Duration       time.Duration
	CandidateCount int
	Evaluations    []EvaluationRecord
	Lattices       []LatticeRecord
	PolicyRecords  []policy.Record
	TraceID        string
	SpanID         string
}

// DisclosurePlan is the result of Compute (spec §3).
type DisclosurePlan[C any] struct {
	Satisfied                 bool
	Decisions                 []CredentialDisclosureDecision[C]
	UnsatisfiedRequirementIDs []string
	Record                    DecisionRecord
}

// Compute is the single entry point (spec §4.8): process matches in input
// order, building a lattice and optimal disclosure per match, narrowing it
// through the assessor pipeline, and emitting a decision. Cancellation is
// honored between matches (and between assessors, inside policy.Run); on
// cancellation or on a policy contract violation, Compute returns
// immediately with an error and no partial plan.
func Compute[C any](ctx context.Context, matches []Match[C], userExclusions map[string][]path.Path, assessors []policy.Assessor[C], opts Options) (DisclosurePlan[C], error) {
	log := opts.Logger
	tracer := opts.Tracer
	if tracer == nil {
		tracer = vctrace.NewDefault()
	}
	var span trace.Span
	ctx, span = tracer.Start(ctx, "computation.Compute")
	span.SetAttributes(vctrace.SafeAttr("candidateCount", len(matches)))
	defer span.End()

	start := time.Now()
	record := DecisionRecord{
		StartTime:      start,
		CandidateCount: len(matches),
	}
	record.TraceID, record.SpanID = vctrace.CorrelatorsFromContext(ctx)

	log.V(1).Info("starting disclosure computation", "candidateCount", len(matches))

	var decisions []CredentialDisclosureDecision[C]
	satisfied := make(map[string]bool)
	var seenOrder []string
	seen := make(map[string]bool)

	for i, match := range matches {
		select {
		case <-ctx.Done():
			return DisclosurePlan[C]{}, fmt.Errorf("%w: %v", vcerr.ErrCancelled, ctx.Err())
		default:
		}

		if !seen[match.RequirementID] {
			seen[match.RequirementID] = true
			seenOrder = append(seenOrder, match.RequirementID)
		}

		record.Evaluations = append(record.Evaluations, EvaluationRecord{
			RequirementID: match.RequirementID,
			MatchIndex:    i,
		})

		l, err := lattice.New(match.AllAvailable, match.Mandatory)
		if err != nil {
			return DisclosurePlan[C]{}, err
		}

		exclusions := userExclusions[match.RequirementID]
		opt := disclosure.ComputeOptimalDisclosure(l, match.Required, exclusions, nil, nil)
		minimum := disclosure.ComputeMinimumDisclosure(l, match.Required)
		maximum := disclosure.ComputeMaximumDisclosure(l, exclusions)

		record.Lattices = append(record.Lattices, LatticeRecord{
			RequirementID:   match.RequirementID,
			Minimum:         minimum.SelectedPaths,
			Maximum:         maximum,
			Conflicts:       opt.Conflicts,
			InitialSelected: opt.SelectedPaths,
		})

		assessment := policy.AssessmentContext[C]{
			Credential:    match.Credential,
			RequirementID: match.RequirementID,
			ProposedPaths: opt.SelectedPaths,
			Lattice:       l,
			Satisfies:     opt.Satisfies,
			Conflicts:     opt.Conflicts,
			Format:        match.Format,
		}

		result, err := policy.Run(ctx, assessors, assessment, match.Required)
		record.PolicyRecords = append(record.PolicyRecords, result.Records...)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return DisclosurePlan[C]{}, fmt.Errorf("%w: %v", vcerr.ErrCancelled, err)
			}
			return DisclosurePlan[C]{}, err
		}

		if result.Dropped {
			log.V(1).Info("credential dropped by policy pipeline", "requirementID", match.RequirementID)
			continue
		}

		decisions = append(decisions, CredentialDisclosureDecision[C]{
			Credential:            match.Credential,
			RequirementID:         match.RequirementID,
			SelectedPaths:         result.CurrentPaths,
			SatisfiesRequirements: result.Satisfies,
			Conflicts:             opt.Conflicts,
			Unavailable:           opt.Unavailable,
			Format:                match.Format,
			Lattice:               l,
		})

		if result.Satisfies {
			satisfied[match.RequirementID] = true
		}
	}

	var unsatisfied []string
	for _, id := range seenOrder {
		if !satisfied[id] {
			unsatisfied = append(unsatisfied, id)
		}
	}

	record.Duration = time.Since(start)

	return DisclosurePlan[C]{
		Satisfied:                 len(unsatisfied) == 0,
		Decisions:                 decisions,
		UnsatisfiedRequirementIDs: unsatisfied,
		Record:                    record,
	}, nil
}
