package disclosure

import (
	"vc/pkg/lattice"
	"vc/pkg/path"
)

// MinimumResult is the output of ComputeMinimumDisclosure.
type MinimumResult struct {
	SelectedPaths []path.Path
	Unavailable   []path.Path
}

// ComputeMinimumDisclosure is the join of Bottom with every requester's
// selectable/mandatory hits, plus the aggregated unavailable set. Input
// order is irrelevant since union is commutative (SPEC_FULL §4.3).
func ComputeMinimumDisclosure(l lattice.Lattice[path.Path], requests ...[]path.Path) MinimumResult {
	sets := [][]path.Path{l.Bottom()}
	unavailable := make([]path.Path, 0)
	for _, req := range requests {
		n := l.Normalize(req)
		sets = append(sets, n.MandatoryHit, n.SelectableHit)
		unavailable = append(unavailable, n.Unavailable...)
	}
	return MinimumResult{
		SelectedPaths: lattice.Join(sets...),
		Unavailable:   lattice.Join(unavailable), // dedupe
	}
}

// ComputeMaximumDisclosure is Top \ (exclusions ∩ Selectable). Exclusions
// naming Bottom elements are silently dropped — the mandatory set can
// never be excluded.
func ComputeMaximumDisclosure(l lattice.Lattice[path.Path], exclusions []path.Path) []path.Path {
	excludableOnly := lattice.Meet(exclusions, l.Selectable())
	return lattice.Diff(l.Top(), excludableOnly)
}

// OptimalResult is the output of ComputeOptimalDisclosure.
type OptimalResult struct {
	SelectedPaths []path.Path
	Satisfies     bool
	Conflicts     []path.Path
	Unavailable   []path.Path
}

// ComputeOptimalDisclosure reconciles the minimum (verifier + regulatory +
// structural requirements) and maximum (holder exclusions honored) sets.
// If Minimum ⊆ Maximum the minimum set satisfies the verifier outright;
// otherwise the best-effort set is (Minimum ∩ Maximum) ∪ Bottom with the
// conflicting paths (Minimum \ Maximum) reported and satisfies=false.
func ComputeOptimalDisclosure(l lattice.Lattice[path.Path], verifier []path.Path, exclusions []path.Path, regulatory, structural []path.Path) OptimalResult {
	minimum := ComputeMinimumDisclosure(l, verifier, regulatory, structural)
	maximum := ComputeMaximumDisclosure(l, exclusions)

	maxSet := make(map[path.Path]struct{}, len(maximum))
	for _, p := range maximum {
		maxSet[p] = struct{}{}
	}

	allInMax := true
	for _, p := range minimum.SelectedPaths {
		if _, ok := maxSet[p]; !ok {
			allInMax = false
			break
		}
	}

	if allInMax {
		return OptimalResult{
			SelectedPaths: minimum.SelectedPaths,
			Satisfies:     len(minimum.Unavailable) == 0,
			Unavailable:   minimum.Unavailable,
		}
	}

	selected := lattice.Join(lattice.Meet(minimum.SelectedPaths, maximum), l.Bottom())
	conflicts := lattice.Diff(minimum.SelectedPaths, maximum)
	return OptimalResult{
		SelectedPaths: selected,
		Satisfies:     false,
		Conflicts:     conflicts,
		Unavailable:   minimum.Unavailable,
	}
}

// ValidateDisclosure reports whether s is a valid disclosure selection for
// requirements over l: lattice-bounded and covering every selectable-hit
// and mandatory-hit path the requirements normalize to.
func ValidateDisclosure(l lattice.Lattice[path.Path], requirements []path.Path, s []path.Path) bool {
	if !l.IsValid(s) {
		return false
	}
	n := l.Normalize(requirements)
	need := lattice.Join(n.SelectableHit, n.MandatoryHit)
	sSet := make(map[path.Path]struct{}, len(s))
	for _, p := range s {
		sSet[p] = struct{}{}
	}
	for _, p := range need {
		if _, ok := sSet[p]; !ok {
			return false
		}
	}
	return true
}

// Credential is the opaque per-credential input to the multi-credential
// greedy selector: its identity, the lattice it offers, and the optimal
// disclosure computed against a (sub)set of the overall requirement.
type Credential[C any] struct {
	Value   C
	Lattice lattice.Lattice[path.Path]
}

// SelectionStep records one iteration of SelectCredentials for auditability
// (SPEC_FULL §4 "Supplemented features").
type SelectionStep[C any] struct {
	CredentialIndex int
	Covered         []path.Path
	RemainingAfter  []path.Path
}

// SelectionResult is the output of the multi-credential greedy selector.
type SelectionResult[C any] struct {
	Chosen    []Credential[C]
	Steps     []SelectionStep[C]
	Satisfied bool
}

// SelectCredentials greedily covers requirement with the fewest
// credentials: at each step it picks the unused credential whose optimal
// disclosure (computed with no exclusions) covers the largest still-
// unsatisfied subset of requirement, tie-breaking by the stable input
// order. It terminates when requirement is fully covered or no candidate
// makes progress. This is a heuristic — minimality is not guaranteed — but
// selection is deterministic for a fixed input order (SPEC_FULL §4.3).
func SelectCredentials[C any](credentials []Credential[C], requirement []path.Path) SelectionResult[C] {
	remaining := make(map[path.Path]struct{}, len(requirement))
	for _, p := range requirement {
		remaining[p] = struct{}{}
	}
	used := make([]bool, len(credentials))

	result := SelectionResult[C]{}
	for len(remaining) > 0 {
		remainingList := make([]path.Path, 0, len(remaining))
		for p := range remaining {
			remainingList = append(remainingList, p)
		}

		bestIdx := -1
		var bestCovered []path.Path
		for i, cred := range credentials {
			if used[i] {
				continue
			}
			opt := ComputeOptimalDisclosure(cred.Lattice, remainingList, nil, nil, nil)
			covered := lattice.Meet(opt.SelectedPaths, remainingList)
			if bestIdx == -1 || len(covered) > len(bestCovered) {
				bestIdx = i
				bestCovered = covered
			}
		}

		if bestIdx == -1 || len(bestCovered) == 0 {
			break // no candidate makes progress
		}

		used[bestIdx] = true
		result.Chosen = append(result.Chosen, credentials[bestIdx])
		for _, p := range bestCovered {
			delete(remaining, p)
		}

		stillRemaining := make([]path.Path, 0, len(remaining))
		for p := range remaining {
			stillRemaining = append(stillRemaining, p)
		}
		path.Sort(stillRemaining)
		result.Steps = append(result.Steps, SelectionStep[C]{
			CredentialIndex: bestIdx,
			Covered:         bestCovered,
			RemainingAfter:  stillRemaining,
		})
	}

	result.Satisfied = len(remaining) == 0
	return result
}
