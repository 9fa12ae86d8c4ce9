package index

import (
	"fmt"
	"sort"

	"github.com/hupe1980/matchgo/bitset"
	"github.com/hupe1980/matchgo/rule"
)

// RangeBuilder accumulates threshold postings for one attribute under one
// comparison direction (lt, lte, gt or gte).
//
// Duplicate thresholds are merged at insertion time: every rule sharing a
// threshold lands in the same bucket, so the freeze pass only has to perform
// the cumulative dominance union.
type RangeBuilder struct {
	op       rule.Operator
	factory  bitset.Factory
	capacity uint32
	buckets  map[float64]bitset.Set
	wild     bitset.Set
}

// NewRangeBuilder creates an empty builder for one comparison direction.
func NewRangeBuilder(op rule.Operator, capacity uint32, factory bitset.Factory) (*RangeBuilder, error) {
	if !op.Ordered() {
		return nil, fmt.Errorf("operator %q is not a range operator", op)
	}
	return &RangeBuilder{
		op:       op,
		factory:  factory,
		capacity: capacity,
		buckets:  make(map[float64]bitset.Set),
		wild:     factory(capacity),
	}, nil
}

// AddThreshold records that rule id requires `value OP threshold`.
func (b *RangeBuilder) AddThreshold(threshold float64, id uint32) error {
	s, ok := b.buckets[threshold]
	if !ok {
		s = b.factory(b.capacity)
		b.buckets[threshold] = s
	}
	return s.Add(id)
}

// AddWildcard records that rule id places no constraint on the attribute
// under this direction.
func (b *RangeBuilder) AddWildcard(id uint32) error {
	return b.wild.Add(id)
}

// Freeze consumes the builder and returns the immutable index.
//
// For each threshold the frozen set is the union of the raw buckets of every
// threshold it dominates: a value satisfying `v < t` also satisfies `v < t'`
// for all t' > t, so the lt/lte pass accumulates right to left and a query
// answers with the single bucket of its tightest surviving threshold. The
// gt/gte pass accumulates left to right for the mirrored reason. This turns
// the query-time scan-and-union into one binary search plus one set read.
func (b *RangeBuilder) Freeze() *Range {
	thresholds := make([]float64, 0, len(b.buckets))
	for t := range b.buckets {
		thresholds = append(thresholds, t)
	}
	sort.Float64s(thresholds)

	sets := make([]bitset.Set, len(thresholds))
	for i, t := range thresholds {
		sets[i] = b.buckets[t]
	}

	switch b.op {
	case rule.OpLessThan, rule.OpLessEqual:
		for i := len(sets) - 2; i >= 0; i-- {
			sets[i].Or(sets[i+1])
		}
	case rule.OpGreaterThan, rule.OpGreaterEqual:
		for i := 1; i < len(sets); i++ {
			sets[i].Or(sets[i-1])
		}
	}

	ix := &Range{op: b.op, thresholds: thresholds, sets: sets, wild: b.wild}
	b.buckets = nil
	b.wild = nil
	return ix
}

// Range is the frozen ordered index for one attribute and comparison
// direction: sorted thresholds, each mapped to the precomputed dominance
// union of rule identities.
//
// Immutable after Freeze; safe for concurrent lookups.
type Range struct {
	op         rule.Operator
	thresholds []float64
	sets       []bitset.Set
	wild       bitset.Set
}

// Lookup returns a fresh set of the rules compatible with value v: the
// dominance union at v's tightest threshold, unioned with the wildcard. A
// value outside every threshold matches the wildcard alone.
func (ix *Range) Lookup(v float64) bitset.Set {
	out := ix.wild.Clone()
	if s := ix.match(v); s != nil {
		out.Or(s)
	}
	return out
}

// match returns the frozen set for v's tightest satisfied threshold, or nil.
func (ix *Range) match(v float64) bitset.Set {
	n := len(ix.thresholds)
	if n == 0 || v != v {
		// NaN satisfies no comparison; binary search would otherwise place
		// it past every threshold and hand gt/gte the largest dominance set.
		return nil
	}

	var i int
	switch ix.op {
	case rule.OpLessThan:
		// Smallest threshold t with v < t.
		i = sort.SearchFloat64s(ix.thresholds, v)
		for i < n && ix.thresholds[i] <= v {
			i++
		}
	case rule.OpLessEqual:
		// Smallest threshold t with v <= t.
		i = sort.SearchFloat64s(ix.thresholds, v)
	case rule.OpGreaterThan:
		// Largest threshold t with t < v.
		i = sort.SearchFloat64s(ix.thresholds, v) - 1
	case rule.OpGreaterEqual:
		// Largest threshold t with t <= v.
		i = sort.SearchFloat64s(ix.thresholds, v)
		if i == n || ix.thresholds[i] > v {
			i--
		}
	default:
		return nil
	}

	if i < 0 || i >= n {
		return nil
	}
	return ix.sets[i]
}

// Wildcard returns the wildcard set. The caller must treat it as read-only.
func (ix *Range) Wildcard() bitset.Set { return ix.wild }

// Len returns the number of distinct thresholds.
func (ix *Range) Len() int { return len(ix.thresholds) }

// Operator returns the comparison direction of the index.
func (ix *Range) Operator() rule.Operator { return ix.op }
