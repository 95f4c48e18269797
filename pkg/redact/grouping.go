// Package redact implements path grouping and digest placement (SPEC_FULL
// §4.4 / C4): the format-neutral half of the SD redaction pipeline that
// sits between the selective-disclosure algorithms (C3) and the
// format-plugged redactors (C5, in pkg/sdjwt and pkg/sdcwt).
//
// Grounded on the teacher's pkg/sdjwt/issuerv2.go instruction-tree walk
// (makeSDV2, which groups children under their parent's "_sd" array) and
// pkg/vc20/crypto/ecdsa-sd/selection.go's JSON-Pointer navigation,
// generalized to operate over any disclosable-path set rather than a
// hand-built instruction tree.
package redact

import (
	"sort"
	"strconv"

	"vc/pkg/model"
	"vc/pkg/path"
	"vc/pkg/vcerr"
)

// ParentGroups maps each disclosable path's parent to the list of leaf
// segment names disclosable directly under that parent, in the order the
// input paths were given.
type ParentGroups map[path.Path][]string

// LeafValidator checks whether a leaf segment is a valid property name in
// the target format (e.g. SD-CWT requires integer-like keys). A nil
// validator accepts every segment.
type LeafValidator func(segment string) error

// GroupByParent groups disclosable JSON-Pointer paths by parent, recording
// each path's last segment. N-Quad paths are ignored — they belong to a
// different (RDF-dataset) redaction pipeline. Fails with
// vcerr.ErrCannotRedactRoot if any disclosable path is Root, and with
// whatever validateLeaf returns (typically vcerr.ErrNonPropertyLeaf) when a
// leaf segment isn't valid in the target format.
func GroupByParent(paths []path.Path, validateLeaf LeafValidator) (ParentGroups, error) {
	groups := make(ParentGroups)
	for _, p := range paths {
		if p.Kind() != path.KindJSONPointer {
			continue
		}
		segments := p.Segments()
		if len(segments) == 0 {
			return nil, vcerr.ErrCannotRedactRoot
		}
		leaf := segments[len(segments)-1]
		if validateLeaf != nil {
			if err := validateLeaf(leaf); err != nil {
				return nil, err
			}
		}
		parent, _ := p.Parent()
		groups[parent] = append(groups[parent], leaf)
	}
	return groups, nil
}

// SortedParents returns the group's parent paths in the CredentialPath
// total order, for callers that need deterministic iteration (e.g. when
// building a decision trace).
func (g ParentGroups) SortedParents() []path.Path {
	parents := make([]path.Path, 0, len(g))
	for p := range g {
		parents = append(parents, p)
	}
	path.Sort(parents)
	return parents
}

// navigate walks tree segment-by-segment to the map denoted by parent,
// failing with vcerr.ErrPathNotResolvable if a segment is missing or
// resolves to a non-map.
func navigate(tree map[string]model.Value, parent path.Path) (map[string]model.Value, error) {
	current := tree
	for _, seg := range parent.Segments() {
		v, ok := current[seg]
		if !ok {
			return nil, vcerr.ErrPathNotResolvable
		}
		if v.Kind != model.KindMap {
			return nil, vcerr.ErrPathNotResolvable
		}
		current = v.Map
	}
	return current, nil
}

// NavigateToParent exposes navigate for format plugins (C5) that need to
// remove a disclosed leaf from the tree before placing its digest.
func NavigateToParent(tree map[string]model.Value, parent path.Path) (map[string]model.Value, error) {
	return navigate(tree, parent)
}

// NavigateToContainer resolves parent to the model.Value living at that
// path, walking map keys and array indices alike. Unlike NavigateToParent
// (which insists the parent is a JSON object), this lets a C5 redactor
// discover that a disclosable path's parent is an array — the case the
// spec's "array-element disclosure" triple (no claim_name) comes from —
// and branch accordingly: object parents group digests under a key (C4's
// "_sd"/sentinel placement); array parents redact each element in place.
//
// The returned pointer lets the caller mutate the container: for a Map
// container its Map field is a Go map (shared by reference), and for an
// Array container its Array field is a slice sharing the tree's backing
// array, so element assignment/deletion through the pointer is visible in
// tree without any further write-back step.
func NavigateToContainer(tree map[string]model.Value, parent path.Path) (*model.Value, error) {
	current := model.Value{Kind: model.KindMap, Map: tree}
	for _, seg := range parent.Segments() {
		switch current.Kind {
		case model.KindMap:
			next, ok := current.Map[seg]
			if !ok {
				return nil, vcerr.ErrPathNotResolvable
			}
			current = next
		case model.KindArray:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(current.Array) {
				return nil, vcerr.ErrPathNotResolvable
			}
			current = current.Array[idx]
		default:
			return nil, vcerr.ErrPathNotResolvable
		}
	}
	return &current, nil
}

// PlaceDigests mutates tree, writing each parent's sorted digest list
// under key (e.g. "_sd" for SD-JWT, the CBOR simple(59) sentinel key for
// SD-CWT). less defines the deterministic sort order for the digest
// values at emission time (Unicode code-point order for SD-JWT strings,
// lexicographic byte order for SD-CWT byte-strings).
func PlaceDigests(tree map[string]model.Value, digestsByParent map[path.Path][]model.Value, key string, less func(a, b model.Value) bool) error {
	for parent, digests := range digestsByParent {
		target, err := navigate(tree, parent)
		if err != nil {
			return err
		}
		sorted := append([]model.Value(nil), digests...)
		sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

		existing := target[key]
		if existing.Kind == model.KindArray {
			sorted = append(existing.Array, sorted...)
			sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
		}
		target[key] = model.Value{Kind: model.KindArray, Array: sorted}
	}
	return nil
}

// LessString orders SD-JWT string digests by Unicode code point.
func LessString(a, b model.Value) bool { return a.String < b.String }

// LessBytes orders SD-CWT byte-string digests lexicographically.
func LessBytes(a, b model.Value) bool {
	n := len(a.Bytes)
	if len(b.Bytes) < n {
		n = len(b.Bytes)
	}
	for i := 0; i < n; i++ {
		if a.Bytes[i] != b.Bytes[i] {
			return a.Bytes[i] < b.Bytes[i]
		}
	}
	return len(a.Bytes) < len(b.Bytes)
}
