// Package ordered provides the insertion-ordered, deduplicated-by-identity
// set algebra that every other grammar-analysis component builds on:
// symbol sets, item sets, and state collections all need "add once, keep
// discovery order, cheap containment check" semantics.
//
// The interface shape (Add/Has/Len/Elements/Union/Equal/Copy) follows the
// teacher repository's internal/util.ISet/VSet contracts, but the backing
// store is swapped out: the teacher's own SVSet is a bare Go map, which
// does not preserve insertion order, while this algebra's callers (closure,
// GOTO, the canonical state sweep) depend on stable iteration order for
// reproducible table construction. github.com/emirpasic/gods's
// linkedhashset (carried over from the npillmayer-gorgo example in the same
// pack) is an ordered hash set and is the better grounding fit here.
package ordered

import "github.com/emirpasic/gods/sets/linkedhashset"

// Set is a generic, insertion-ordered, deduplicated collection of
// comparable elements.
type Set[T comparable] struct {
	inner *linkedhashset.Set
}

// NewSet creates a Set containing the given elements, added in order.
func NewSet[T comparable](elems ...T) *Set[T] {
	s := &Set[T]{inner: linkedhashset.New()}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// Add inserts element into the set. It has no effect if already present.
func (s *Set[T]) Add(element T) {
	s.inner.Add(element)
}

// AddAll inserts every element of o into s, in o's iteration order.
func (s *Set[T]) AddAll(o *Set[T]) {
	for _, e := range o.Elements() {
		s.Add(e)
	}
}

// Has returns whether element is a member of the set.
func (s *Set[T]) Has(element T) bool {
	return s.inner.Contains(element)
}

// Remove deletes element from the set, if present.
func (s *Set[T]) Remove(element T) {
	s.inner.Remove(element)
}

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int {
	return s.inner.Size()
}

// Empty returns whether the set has zero elements.
func (s *Set[T]) Empty() bool {
	return s.inner.Empty()
}

// Elements returns the set's members in insertion order. The returned
// slice is a fresh copy safe for the caller to hold onto.
func (s *Set[T]) Elements() []T {
	vals := s.inner.Values()
	out := make([]T, len(vals))
	for i, v := range vals {
		out[i] = v.(T)
	}
	return out
}

// Copy returns a new Set with the same elements and order.
func (s *Set[T]) Copy() *Set[T] {
	return NewSet(s.Elements()...)
}

// Union returns a new set containing every element of s followed by every
// element of o not already present.
func (s *Set[T]) Union(o *Set[T]) *Set[T] {
	u := s.Copy()
	u.AddAll(o)
	return u
}

// Equal reports whether s and o contain the same elements, irrespective of
// insertion order. Per the grammar-analysis invariant that state identity
// is by set contents, this is the equality used to deduplicate states.
func (s *Set[T]) Equal(o *Set[T]) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Len() != o.Len() {
		return false
	}
	for _, e := range s.Elements() {
		if !o.Has(e) {
			return false
		}
	}
	return true
}

// Any reports whether any element of s satisfies predicate.
func (s *Set[T]) Any(predicate func(T) bool) bool {
	for _, e := range s.Elements() {
		if predicate(e) {
			return true
		}
	}
	return false
}
