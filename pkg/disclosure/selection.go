package disclosure

import (
	"strconv"

	"vc/pkg/lattice"
	"vc/pkg/path"
)

// PathOf maps a disclosure to its lattice path: "/"+escape(claimName) for
// property disclosures, or a synthetic "/[index]" segment for an
// array-element disclosure at position index in the disclosures list
// (SPEC_FULL §4.7).
func PathOf(d Triple, index int) path.Path {
	if d.HasName {
		return path.MustParse("/" + escapeSegment(d.ClaimName))
	}
	return path.MustParse("/[" + strconv.Itoa(index) + "]")
}

func escapeSegment(seg string) string {
	// Mirror path.escape without exporting it: '~' -> "~0", '/' -> "~1".
	out := make([]byte, 0, len(seg))
	for i := 0; i < len(seg); i++ {
		switch seg[i] {
		case '~':
			out = append(out, '~', '0')
		case '/':
			out = append(out, '~', '1')
		default:
			out = append(out, seg[i])
		}
	}
	return string(out)
}

// CreateLattice builds the lattice whose Top is the path-of every
// disclosure and whose Bottom is mandatoryPaths (C8 create_lattice).
func CreateLattice(disclosures []Triple, mandatoryPaths []path.Path) (lattice.Lattice[path.Path], []path.Path) {
	top := make([]path.Path, len(disclosures))
	for i, d := range disclosures {
		top[i] = PathOf(d, i)
	}
	l, err := lattice.New(top, mandatoryPaths)
	if err != nil {
		// Mandatory paths the caller asserts are disclosable but that
		// aren't among the available disclosures: still return a usable
		// lattice with an empty bottom rather than erroring the whole
		// selection flow — normalize() downstream reports them unavailable.
		l, _ = lattice.New(top, nil)
	}
	return l, top
}

// Select filters disclosures down to those whose path is in selectedPaths
// (C8 select) — the subset to include when assembling a presentation.
func Select(disclosures []Triple, selectedPaths []path.Path) []Triple {
	selected := make(map[path.Path]struct{}, len(selectedPaths))
	for _, p := range selectedPaths {
		selected[p] = struct{}{}
	}
	out := make([]Triple, 0, len(disclosures))
	for i, d := range disclosures {
		if _, ok := selected[PathOf(d, i)]; ok {
			out = append(out, d)
		}
	}
	return out
}

// ValidateDigests verifies that each encoded disclosure hashes (via hashFn
// over encodeFn's canonical bytes) to a digest present in expectedDigests
// (C8 validate_digests). Returns the subset of disclosures whose digest
// was NOT found — an empty result means every disclosure is accounted for.
func ValidateDigests(disclosures []Triple, expectedDigests map[string]struct{}, encodeFn func(Triple) []byte, hashFn func([]byte) string) []Triple {
	missing := make([]Triple, 0)
	for _, d := range disclosures {
		digest := hashFn(encodeFn(d))
		if _, ok := expectedDigests[digest]; !ok {
			missing = append(missing, d)
		}
	}
	return missing
}

// SelectOptimalResult is the output of SelectOptimal.
type SelectOptimalResult struct {
	Filtered  []Triple
	Satisfies bool
	Conflicts []path.Path
}

// SelectOptimal delegates to C3's ComputeOptimalDisclosure over the
// disclosure-derived lattice, then filters disclosures down to the
// resulting path set (C8 select_optimal).
func SelectOptimal(allDisclosures []Triple, verifierRequested, userExcluded, mandatory []path.Path) SelectOptimalResult {
	l, _ := CreateLattice(allDisclosures, mandatory)
	opt := ComputeOptimalDisclosure(l, verifierRequested, userExcluded, nil, nil)
	return SelectOptimalResult{
		Filtered:  Select(allDisclosures, opt.SelectedPaths),
		Satisfies: opt.Satisfies,
		Conflicts: opt.Conflicts,
	}
}
