package bitset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Roaring implements Set on a compressed Roaring Bitmap.
//
// This is the default representation: memory stays proportional to the
// populated ranges, and And/Or run on compressed containers. Prefer Dense only
// when rule counts are small and lookups must avoid container dispatch.
type Roaring struct {
	rb       *roaring.Bitmap
	capacity uint32
}

// NewRoaring creates an empty roaring-backed set.
func NewRoaring(capacity uint32) *Roaring {
	return &Roaring{
		rb:       roaring.New(),
		capacity: capacity,
	}
}

// RoaringFactory returns Roaring sets.
func RoaringFactory(capacity uint32) Set { return NewRoaring(capacity) }

// Add inserts an identity.
func (s *Roaring) Add(id uint32) error {
	if id >= s.capacity {
		return &ErrOutOfRange{ID: id, Capacity: s.capacity}
	}
	s.rb.Add(id)
	return nil
}

// Contains checks if an identity is in the set.
func (s *Roaring) Contains(id uint32) bool {
	return s.rb.Contains(id)
}

// IsEmpty returns true if the set is empty.
func (s *Roaring) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of identities in the set.
func (s *Roaring) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// First returns the lowest identity in the set.
func (s *Roaring) First() (uint32, bool) {
	if s.rb.IsEmpty() {
		return 0, false
	}
	return s.rb.Minimum(), true
}

// Clone returns a deep copy of the set.
func (s *Roaring) Clone() Set {
	return &Roaring{
		rb:       s.rb.Clone(),
		capacity: s.capacity,
	}
}

// And intersects the receiver with other in place.
func (s *Roaring) And(other Set) {
	if o, ok := other.(*Roaring); ok {
		s.rb.And(o.rb)
		return
	}
	// Mixed representations: drop identities missing from other.
	var stale []uint32
	it := s.rb.Iterator()
	for it.HasNext() {
		id := it.Next()
		if !other.Contains(id) {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		s.rb.Remove(id)
	}
}

// Or unions other into the receiver in place.
func (s *Roaring) Or(other Set) {
	if o, ok := other.(*Roaring); ok {
		s.rb.Or(o.rb)
		return
	}
	for id := range other.Iterator() {
		s.rb.Add(id)
	}
}

// Iterator returns an iterator over the identities in ascending order.
func (s *Roaring) Iterator() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Capacity returns the exclusive upper bound for identities.
func (s *Roaring) Capacity() uint32 { return s.capacity }

// GetSizeInBytes returns the size of the underlying bitmap in bytes.
func (s *Roaring) GetSizeInBytes() uint64 {
	return s.rb.GetSizeInBytes()
}
