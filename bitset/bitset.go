package bitset

import (
	"fmt"
	"iter"
)

// Set is an ordered set of rule identities in [0, Capacity).
//
// The classifier stores one Set per posting-list entry and never mutates a
// frozen Set at query time: query-side work happens on clones. And/Or mutate
// the receiver only, so frozen sets stay safely shareable across concurrent
// readers.
type Set interface {
	// Add inserts an identity. Identities at or beyond the capacity fail
	// with *ErrOutOfRange.
	Add(id uint32) error

	// Contains reports whether the identity is in the set.
	Contains(id uint32) bool

	// IsEmpty returns true if the set contains no identities.
	IsEmpty() bool

	// Cardinality returns the number of identities in the set.
	Cardinality() uint64

	// First returns the lowest identity in the set. This is the priority
	// resolution primitive: lower identity means higher priority.
	First() (uint32, bool)

	// Clone returns a deep copy of the set.
	Clone() Set

	// And intersects the receiver with other in place.
	And(other Set)

	// Or unions other into the receiver in place.
	Or(other Set)

	// Iterator returns an iterator over the identities in ascending order.
	Iterator() iter.Seq[uint32]

	// Capacity returns the exclusive upper bound for identities.
	Capacity() uint32
}

// Factory constructs an empty Set with the given capacity.
//
// A single compiled classifier uses one factory for all of its sets, so the
// set operations stay on their fast same-representation paths.
type Factory func(capacity uint32) Set

// ErrOutOfRange is returned when an identity exceeds the declared capacity.
//
// This indicates a bug in the caller (the builder assigns dense identities
// below the capacity), not a data error.
type ErrOutOfRange struct {
	ID       uint32
	Capacity uint32
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("identity %d out of range [0, %d)", e.ID, e.Capacity)
}
