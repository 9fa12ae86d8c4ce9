package bitset

import (
	"iter"
	"math/bits"
)

const wordBits = 64

// Dense implements Set on a flat word array.
//
// Memory is capacity/8 bytes regardless of population, and every operation is
// a straight pass over the words. With rule counts in the thousands the whole
// set fits in a few cache lines, which makes the intersection loop branch-free
// and predictable.
type Dense struct {
	words    []uint64
	capacity uint32
}

// NewDense creates an empty dense set.
func NewDense(capacity uint32) *Dense {
	return &Dense{
		words:    make([]uint64, (int(capacity)+wordBits-1)/wordBits),
		capacity: capacity,
	}
}

// DenseFactory returns Dense sets.
func DenseFactory(capacity uint32) Set { return NewDense(capacity) }

// Add inserts an identity.
func (s *Dense) Add(id uint32) error {
	if id >= s.capacity {
		return &ErrOutOfRange{ID: id, Capacity: s.capacity}
	}
	s.words[id/wordBits] |= 1 << (id % wordBits)
	return nil
}

// Contains checks if an identity is in the set.
func (s *Dense) Contains(id uint32) bool {
	if id >= s.capacity {
		return false
	}
	return s.words[id/wordBits]&(1<<(id%wordBits)) != 0
}

// IsEmpty returns true if the set is empty.
func (s *Dense) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Cardinality returns the number of identities in the set.
func (s *Dense) Cardinality() uint64 {
	var n uint64
	for _, w := range s.words {
		n += uint64(bits.OnesCount64(w))
	}
	return n
}

// First returns the lowest identity in the set.
func (s *Dense) First() (uint32, bool) {
	for i, w := range s.words {
		if w != 0 {
			return uint32(i*wordBits + bits.TrailingZeros64(w)), true
		}
	}
	return 0, false
}

// Clone returns a deep copy of the set.
func (s *Dense) Clone() Set {
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return &Dense{words: words, capacity: s.capacity}
}

// And intersects the receiver with other in place.
func (s *Dense) And(other Set) {
	if o, ok := other.(*Dense); ok {
		n := min(len(s.words), len(o.words))
		for i := 0; i < n; i++ {
			s.words[i] &= o.words[i]
		}
		for i := n; i < len(s.words); i++ {
			s.words[i] = 0
		}
		return
	}
	for i := range s.words {
		w := s.words[i]
		for w != 0 {
			b := uint32(i*wordBits + bits.TrailingZeros64(w))
			if !other.Contains(b) {
				s.words[i] &^= 1 << (b % wordBits)
			}
			w &= w - 1
		}
	}
}

// Or unions other into the receiver in place.
func (s *Dense) Or(other Set) {
	if o, ok := other.(*Dense); ok {
		n := min(len(s.words), len(o.words))
		for i := 0; i < n; i++ {
			s.words[i] |= o.words[i]
		}
		return
	}
	for id := range other.Iterator() {
		if id < s.capacity {
			s.words[id/wordBits] |= 1 << (id % wordBits)
		}
	}
}

// Iterator returns an iterator over the identities in ascending order.
func (s *Dense) Iterator() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i, w := range s.words {
			for w != 0 {
				id := uint32(i*wordBits + bits.TrailingZeros64(w))
				if !yield(id) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Capacity returns the exclusive upper bound for identities.
func (s *Dense) Capacity() uint32 { return s.capacity }
