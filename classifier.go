package matchgo

import (
	"context"
	"time"

	"github.com/hupe1980/matchgo/bitset"
	"github.com/hupe1980/matchgo/index"
	"github.com/hupe1980/matchgo/rule"
)

// Classifier matches input records against a compiled rule set and returns
// the highest-priority matching classification.
//
// A Classifier is immutable after Build and safe for unlimited concurrent
// Classify calls without locking: the expensive freeze pass happens once at
// build time, and the hot path only reads frozen sets, working on a
// per-call candidate clone.
type Classifier[T any] struct {
	schema          rule.Schema
	attrs           []*compiledAttr
	all             bitset.Set
	guard           bitset.Set // nil when no default classification is set
	classifications []T
	ruleCount       int
	logger          *Logger
	metrics         MetricsCollector
}

// compiledAttr bundles the frozen indexes of one attribute. An attribute no
// rule constrains has no compiledAttr and is never read at query time.
type compiledAttr struct {
	name   string
	attr   rule.Attribute
	eq     *index.Equality
	ranges []*index.Range
}

// minWildcard is the selectivity key for attribute ordering.
func (ca *compiledAttr) minWildcard() uint64 {
	best := uint64(1<<63 - 1)
	if ca.eq != nil {
		best = ca.eq.Wildcard().Cardinality()
	}
	for _, r := range ca.ranges {
		if c := r.Wildcard().Cardinality(); c < best {
			best = c
		}
	}
	return best
}

func (c *Classifier[T]) findOrAddAttr(name string, attr rule.Attribute) *compiledAttr {
	for _, ca := range c.attrs {
		if ca.name == name {
			return ca
		}
	}
	ca := &compiledAttr{name: name, attr: attr}
	c.attrs = append(c.attrs, ca)
	return ca
}

// Result is a successful classification.
type Result[T any] struct {
	// Classification of the winning rule.
	Classification T
	// Rule is the winning rule's identity: its index in the input rule
	// list, or len(rules) for the default classification.
	Rule int
}

// Classify matches a record against the rule set.
//
// rec is either a rule.Record document or any type the schema's accessors
// understand. The second return is false when neither a rule nor the default
// matched. The only error condition is a record missing a required
// attribute; absence is deliberately not treated as a wildcard there, so
// data-quality bugs surface instead of silently matching loose rules.
func (c *Classifier[T]) Classify(rec any) (Result[T], bool, error) {
	start := time.Now()

	result, matched, err := c.classify(rec)

	c.metrics.RecordClassify(time.Since(start), matched, err)
	c.logger.LogClassify(context.Background(), matched, result.Rule, err)

	return result, matched, err
}

func (c *Classifier[T]) classify(rec any) (Result[T], bool, error) {
	candidates := c.all.Clone()

	for _, ca := range c.attrs {
		v, ok := ca.attr.Lookup(ca.name, rec)
		if !ok {
			if !ca.attr.Optional {
				return Result[T]{Rule: -1}, false, &ErrMissingAttribute{Attribute: ca.name}
			}
			// Absent optional attribute: only wildcard rules survive.
			if ca.eq != nil {
				candidates.And(ca.eq.Wildcard())
			}
			for _, r := range ca.ranges {
				candidates.And(r.Wildcard())
			}
		} else {
			// A value of the wrong kind has no posting and no numeric
			// form, so it degrades to wildcard-only naturally.
			nv, err := ca.attr.Type.Normalize(v)
			if err != nil {
				nv = v
			}
			if ca.eq != nil {
				candidates.And(ca.eq.Lookup(nv))
			}
			if len(ca.ranges) > 0 {
				if num, numeric := nv.AsNumber(); numeric {
					for _, r := range ca.ranges {
						candidates.And(r.Lookup(num))
					}
				} else {
					for _, r := range ca.ranges {
						candidates.And(r.Wildcard())
					}
				}
			}
		}

		// Intersection only shrinks; once empty, no further attribute can
		// revive a candidate.
		if candidates.IsEmpty() {
			break
		}
	}

	if c.guard != nil {
		candidates.Or(c.guard)
	}

	first, ok := candidates.First()
	if !ok {
		return Result[T]{Rule: -1}, false, nil
	}
	return Result[T]{Classification: c.classifications[first], Rule: int(first)}, true, nil
}

// Len returns the number of rule definitions, excluding the default.
func (c *Classifier[T]) Len() int { return c.ruleCount }

// Schema returns the schema the classifier was compiled against.
func (c *Classifier[T]) Schema() rule.Schema { return c.schema }
