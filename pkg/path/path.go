// Package path implements CredentialPath (SPEC_FULL §4.1 / C1): an
// immutable path into a credential's claim tree, either a JSON-Pointer
// (RFC 6901) segment sequence or an N-Quad statement index.
//
// Grounded on the JSON-Pointer handling in the teacher's
// pkg/vc20/crypto/ecdsa-sd/selection.go (ApplyJSONPointer / escape /
// unescape), generalized into a standalone immutable value type with
// total ordering and closure operations, since the teacher only ever
// applies pointers ad hoc rather than modeling them as values.
package path

import (
	"strconv"
	"strings"

	"vc/pkg/vcerr"
)

// Kind tags which variant a Path carries.
type Kind int

const (
	// KindJSONPointer is an RFC 6901 pointer: an ordered sequence of segments.
	KindJSONPointer Kind = iota
	// KindNQuadIndex is a non-negative integer index into an N-Quad dataset.
	KindNQuadIndex
)

// Path is an immutable credential path. The zero value is the JSON-Pointer
// root. Internally it stores only comparable scalar fields so Path itself
// is comparable and usable as a map key (needed by pkg/lattice's generic
// Lattice[T comparable]); segments are derived from the canonical string
// on demand rather than held as a slice field.
type Path struct {
	kind  Kind
	canon string // canonical RFC 6901 form for KindJSONPointer, e.g. "/a/b"; "" at root
	index int    // N-Quad index for KindNQuadIndex
}

// Root is the empty JSON-Pointer, the whole document.
var Root = Path{kind: KindJSONPointer}

// NQuad constructs an N-Quad index path.
func NQuad(index int) Path {
	return Path{kind: KindNQuadIndex, index: index}
}

// Parse parses an RFC 6901 JSON-Pointer string into a Path.
// Fails with vcerr.ErrMalformedPointer when the string isn't a valid pointer.
func Parse(pointer string) (Path, error) {
	if pointer == "" {
		return Root, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return Path{}, vcerr.ErrMalformedPointer
	}
	// Validate escape sequences are well-formed (only ~0 and ~1).
	for i := 0; i < len(pointer); i++ {
		if pointer[i] == '~' {
			if i+1 >= len(pointer) || (pointer[i+1] != '0' && pointer[i+1] != '1') {
				return Path{}, vcerr.ErrMalformedPointer
			}
		}
	}
	return Path{kind: KindJSONPointer, canon: pointer}, nil
}

// MustParse parses a pointer, panicking on malformed input. Intended for
// constants and tests, not for handling external input.
func MustParse(pointer string) Path {
	p, err := Parse(pointer)
	if err != nil {
		panic(err)
	}
	return p
}

func unescape(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}

func escape(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	tok = strings.ReplaceAll(tok, "/", "~1")
	return tok
}

// Kind reports whether p is a JSON-Pointer or an N-Quad index path.
func (p Path) Kind() Kind { return p.kind }

// Index returns the N-Quad index. Only meaningful when Kind() == KindNQuadIndex.
func (p Path) Index() int { return p.index }

// Segments returns the JSON-Pointer segments, root-first, unescaped.
func (p Path) Segments() []string {
	if p.kind == KindNQuadIndex || p.canon == "" {
		return nil
	}
	raw := strings.Split(p.canon[1:], "/")
	segments := make([]string, len(raw))
	for i, tok := range raw {
		segments[i] = unescape(tok)
	}
	return segments
}

// Depth is the number of segments for a JSON-Pointer path, fixed at 1 for
// an N-Quad path.
func (p Path) Depth() int {
	if p.kind == KindNQuadIndex {
		return 1
	}
	return len(p.Segments())
}

func fromSegments(segments []string) Path {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(escape(seg))
	}
	return Path{kind: KindJSONPointer, canon: b.String()}
}

// Append extends a JSON-Pointer path with a string property segment.
// Fails with vcerr.ErrNotAJSONPath on the N-Quad variant.
func (p Path) Append(segment string) (Path, error) {
	if p.kind == KindNQuadIndex {
		return Path{}, vcerr.ErrNotAJSONPath
	}
	return fromSegments(append(p.Segments(), segment)), nil
}

// AppendIndex extends a JSON-Pointer path with an array-index segment.
func (p Path) AppendIndex(index int) (Path, error) {
	return p.Append(strconv.Itoa(index))
}

// Parent returns p's parent path, or ok=false at the root and for the
// N-Quad variant (neither has a parent).
func (p Path) Parent() (Path, bool) {
	segments := p.Segments()
	if p.kind == KindNQuadIndex || len(segments) == 0 {
		return Path{}, false
	}
	return fromSegments(segments[:len(segments)-1]), true
}

// Ancestors returns p's ancestors, root-first, not including p itself.
func (p Path) Ancestors() []Path {
	segments := p.Segments()
	if p.kind == KindNQuadIndex || len(segments) == 0 {
		return nil
	}
	out := make([]Path, 0, len(segments))
	for i := 0; i < len(segments); i++ {
		out = append(out, fromSegments(segments[:i]))
	}
	return out
}

// SelfAndAncestors returns p's ancestors followed by p itself, root-first.
func (p Path) SelfAndAncestors() []Path {
	return append(p.Ancestors(), p)
}

// IsAncestorOf reports whether p is a strict, full-segment-boundary
// ancestor of other. Per P9, "/foo" must not match "/foobar" — the check
// compares whole segments, never string prefixes.
func (p Path) IsAncestorOf(other Path) bool {
	if p.kind != KindJSONPointer || other.kind != KindJSONPointer {
		return false
	}
	ps, os := p.Segments(), other.Segments()
	if len(ps) >= len(os) {
		return false
	}
	for i, seg := range ps {
		if os[i] != seg {
			return false
		}
	}
	return true
}

// Equal reports whether p and o denote the same path.
func (p Path) Equal(o Path) bool {
	return p == o
}

// String renders the canonical form: RFC 6901 for JSON-Pointer paths,
// "/_nquad:{index}" for N-Quad paths.
func (p Path) String() string {
	if p.kind == KindNQuadIndex {
		return "/_nquad:" + strconv.Itoa(p.index)
	}
	return p.canon
}

// Less implements the total order: JSON-Pointer paths sort before N-Quad
// paths; within JSON-Pointer, segments compare lexicographically as
// Unicode code points, ties broken by length.
func (p Path) Less(o Path) bool {
	if p.kind != o.kind {
		return p.kind == KindJSONPointer
	}
	if p.kind == KindNQuadIndex {
		return p.index < o.index
	}
	ps, os := p.Segments(), o.Segments()
	n := len(ps)
	if len(os) < n {
		n = len(os)
	}
	for i := 0; i < n; i++ {
		if ps[i] != os[i] {
			return ps[i] < os[i]
		}
	}
	return len(ps) < len(os)
}

// Sort sorts paths in place according to the total order.
func Sort(paths []Path) {
	// insertion sort: path sets here are small (per-credential claim
	// counts), and this keeps the package allocation-free and dependency-free.
	for i := 1; i < len(paths); i++ {
		for j := i; j > 0 && paths[j].Less(paths[j-1]); j-- {
			paths[j], paths[j-1] = paths[j-1], paths[j]
		}
	}
}
