package index

import (
	"github.com/hupe1980/matchgo/bitset"
	"github.com/hupe1980/matchgo/rule"
)

// EqualityBuilder accumulates discrete (equality / membership) postings for
// one attribute while rules are being compiled.
type EqualityBuilder struct {
	factory  bitset.Factory
	capacity uint32
	postings map[string]bitset.Set
	wild     bitset.Set
}

// NewEqualityBuilder creates an empty builder for the given identity capacity.
func NewEqualityBuilder(capacity uint32, factory bitset.Factory) *EqualityBuilder {
	return &EqualityBuilder{
		factory:  factory,
		capacity: capacity,
		postings: make(map[string]bitset.Set),
		wild:     factory(capacity),
	}
}

// AddPosting records that rule id is satisfied when the attribute equals v.
// Membership ("in") constraints call this once per member value.
func (b *EqualityBuilder) AddPosting(v rule.Value, id uint32) error {
	key := v.Key()
	s, ok := b.postings[key]
	if !ok {
		s = b.factory(b.capacity)
		b.postings[key] = s
	}
	return s.Add(id)
}

// AddWildcard records that rule id places no discrete constraint on the
// attribute.
func (b *EqualityBuilder) AddWildcard(id uint32) error {
	return b.wild.Add(id)
}

// Freeze consumes the builder and returns the immutable index. The builder
// must not be used afterwards.
func (b *EqualityBuilder) Freeze() *Equality {
	ix := &Equality{postings: b.postings, wild: b.wild}
	b.postings = nil
	b.wild = nil
	return ix
}

// Equality is the frozen discrete index for one attribute: a posting map from
// literal value to the identities of rules requiring that value, plus the
// wildcard set of rules with no discrete constraint on the attribute.
//
// Immutable after Freeze; safe for concurrent lookups.
type Equality struct {
	postings map[string]bitset.Set
	wild     bitset.Set
}

// Lookup returns a fresh set of the rules compatible with value v: the
// posting for v unioned with the wildcard, or the wildcard alone when v has
// no posting.
func (ix *Equality) Lookup(v rule.Value) bitset.Set {
	out := ix.wild.Clone()
	if s, ok := ix.postings[v.Key()]; ok {
		out.Or(s)
	}
	return out
}

// Wildcard returns the wildcard set. The caller must treat it as read-only.
func (ix *Equality) Wildcard() bitset.Set { return ix.wild }

// Len returns the number of distinct posting values.
func (ix *Equality) Len() int { return len(ix.postings) }
