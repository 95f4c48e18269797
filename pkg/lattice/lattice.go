// Package lattice implements BoundedDisclosureLattice (SPEC_FULL §4.2 / C2):
// a pair (Top, Bottom) of path sets with Bottom ⊆ Top, and the pure
// set-algebra operations over it.
//
// This is new code — the teacher repo never models a bounded lattice
// explicitly, but its ecdsa-sd SelectionOptions{MandatoryPointers,
// SelectivePointers} (pkg/vc20/crypto/ecdsa-sd/selection.go) is exactly the
// (Bottom, Selectable) split this package formalizes and generalizes to
// any comparable element, not just JSON Pointers.
package lattice

import "vc/pkg/vcerr"

// Lattice is a bounded set lattice over T: Bottom ⊆ Top, Selectable = Top \ Bottom.
// T must be usable as a map key (comparable).
type Lattice[T comparable] struct {
	top    map[T]struct{}
	bottom map[T]struct{}
}

// New builds a Lattice from explicit top/bottom sets. Fails with
// vcerr.ErrMandatoryNotSubset when bottom is not a subset of top.
func New[T comparable](top, bottom []T) (Lattice[T], error) {
	topSet := toSet(top)
	bottomSet := toSet(bottom)
	for b := range bottomSet {
		if _, ok := topSet[b]; !ok {
			return Lattice[T]{}, vcerr.ErrMandatoryNotSubset
		}
	}
	return Lattice[T]{top: topSet, bottom: bottomSet}, nil
}

func toSet[T comparable](items []T) map[T]struct{} {
	s := make(map[T]struct{}, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func fromSet[T comparable](s map[T]struct{}) []T {
	out := make([]T, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

// Top returns the full available set.
func (l Lattice[T]) Top() []T { return fromSet(l.top) }

// Bottom returns the mandatory set.
func (l Lattice[T]) Bottom() []T { return fromSet(l.bottom) }

// Selectable returns Top \ Bottom: the holder's discretionary paths.
func (l Lattice[T]) Selectable() []T {
	out := make([]T, 0, len(l.top))
	for k := range l.top {
		if _, inBottom := l.bottom[k]; !inBottom {
			out = append(out, k)
		}
	}
	return out
}

func (l Lattice[T]) inTop(t T) bool {
	_, ok := l.top[t]
	return ok
}

func (l Lattice[T]) inBottom(t T) bool {
	_, ok := l.bottom[t]
	return ok
}

// IsValid reports whether Bottom ⊆ s ⊆ Top.
func (l Lattice[T]) IsValid(s []T) bool {
	set := toSet(s)
	for b := range l.bottom {
		if _, ok := set[b]; !ok {
			return false
		}
	}
	for e := range set {
		if !l.inTop(e) {
			return false
		}
	}
	return true
}

// Join is set union, commutative and associative: the irreducible
// operation multi-source disclosure computation (C3) builds on.
func Join[T comparable](sets ...[]T) []T {
	seen := make(map[T]struct{})
	out := make([]T, 0)
	for _, s := range sets {
		for _, e := range s {
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				out = append(out, e)
			}
		}
	}
	return out
}

// Meet is set intersection of a and b.
func Meet[T comparable](a, b []T) []T {
	bSet := toSet(b)
	out := make([]T, 0)
	for _, e := range a {
		if _, ok := bSet[e]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Diff returns a \ b.
func Diff[T comparable](a, b []T) []T {
	bSet := toSet(b)
	out := make([]T, 0)
	for _, e := range a {
		if _, ok := bSet[e]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// Normalization is the result of partitioning a requested set against a lattice.
type Normalization[T comparable] struct {
	MandatoryHit []T // requested ∩ Bottom
	SelectableHit []T // requested ∩ Selectable
	Unavailable  []T // requested \ Top
}

// Normalize partitions requested into (mandatory-hit, selectable-hit,
// unavailable) in O(|requested|) using Top/Bottom membership. A nil
// requested set returns three empty sets.
func (l Lattice[T]) Normalize(requested []T) Normalization[T] {
	n := Normalization[T]{
		MandatoryHit:  make([]T, 0),
		SelectableHit: make([]T, 0),
		Unavailable:   make([]T, 0),
	}
	for _, r := range requested {
		switch {
		case l.inBottom(r):
			n.MandatoryHit = append(n.MandatoryHit, r)
		case l.inTop(r):
			n.SelectableHit = append(n.SelectableHit, r)
		default:
			n.Unavailable = append(n.Unavailable, r)
		}
	}
	return n
}
