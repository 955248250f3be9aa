// Package bitset provides a small dense bitset used to represent tile
// possibility sets and adjacency masks. Values are dense integer indices
// (a tile's position in a RuleSet's stable ordering), not arbitrary keys.
package bitset

import "math/bits"

const wordBits = 64

// Set is a fixed-size, mutable dense bitset over indices [0, n).
// The zero value is not usable; construct with New.
type Set struct {
	words []uint64
	n     int
}

// New returns an empty Set capable of holding indices [0, n).
func New(n int) Set {
	return Set{words: make([]uint64, wordCount(n)), n: n}
}

// Singleton returns a Set over [0, n) containing only index i.
func Singleton(n, i int) Set {
	s := New(n)
	s.Set(i)
	return s
}

// Full returns a Set with all n indices present.
func Full(n int) Set {
	s := New(n)
	for i := range s.words {
		s.words[i] = ^uint64(0)
	}
	s.clearTail()
	return s
}

func wordCount(n int) int {
	return (n + wordBits - 1) / wordBits
}

func (s *Set) clearTail() {
	if s.n%wordBits == 0 {
		return
	}
	last := len(s.words) - 1
	if last < 0 {
		return
	}
	valid := uint(s.n % wordBits)
	s.words[last] &= (uint64(1) << valid) - 1
}

// Len returns the index capacity n this set was constructed with.
func (s Set) Len() int { return s.n }

// Set marks index i as present.
func (s *Set) Set(i int) {
	s.words[i/wordBits] |= 1 << uint(i%wordBits)
}

// Clear marks index i as absent.
func (s *Set) Clear(i int) {
	s.words[i/wordBits] &^= 1 << uint(i%wordBits)
}

// Test reports whether index i is present.
func (s Set) Test(i int) bool {
	return s.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

// Count returns the number of present indices.
func (s Set) Count() int {
	total := 0
	for _, w := range s.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// IsEmpty reports whether no index is present.
func (s Set) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether s and o hold the same indices.
func (s Set) Equal(o Set) bool {
	if len(s.words) != len(o.words) {
		return false
	}
	for i := range s.words {
		if s.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return Set{words: words, n: s.n}
}

// IntersectInPlace reduces s to the intersection of s and o, returning
// whether any bit was cleared.
func (s *Set) IntersectInPlace(o Set) (changed bool) {
	for i := range s.words {
		nw := s.words[i] & o.words[i]
		if nw != s.words[i] {
			changed = true
		}
		s.words[i] = nw
	}
	return changed
}

// UnionInPlace grows s to the union of s and o.
func (s *Set) UnionInPlace(o Set) {
	for i := range s.words {
		s.words[i] |= o.words[i]
	}
}

// Only returns the lowest present index, which is the single present
// index when the set is a singleton. Returns -1 if the set is empty.
func (s Set) Only() int {
	for wi, w := range s.words {
		if w != 0 {
			return wi*wordBits + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// AndNot returns a new set containing indices present in s but absent
// from o (s &^ o). Used to find which indices a Intersect just removed.
func (s Set) AndNot(o Set) Set {
	words := make([]uint64, len(s.words))
	for i := range words {
		words[i] = s.words[i] &^ o.words[i]
	}
	return Set{words: words, n: s.n}
}

// Each calls f for every present index in ascending order.
func (s Set) Each(f func(i int)) {
	for wi, w := range s.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			f(wi*wordBits + tz)
			w &= w - 1
		}
	}
}
