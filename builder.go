package matchgo

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/hupe1980/matchgo/index"
	"github.com/hupe1980/matchgo/rule"
)

// Build compiles a rule set into an immutable Classifier.
//
// Identities are assigned strictly in input order (rule 0 = highest
// priority); callers rely on this ordering to express precedence. The input
// rule set is not mutated. Build fails fast: on any error no classifier is
// returned and nothing partially built escapes.
func Build[T any](rs RuleSet[T], opts ...Option) (*Classifier[T], error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	start := time.Now()
	c, err := compile(rs, o)
	duration := time.Since(start)

	o.metrics.RecordBuild(len(rs.Rules), duration, err)
	o.logger.LogBuild(context.Background(), len(rs.Rules), duration, err)

	return c, err
}

// rulePlan is the validated, normalized form of one rule, staged before any
// posting is written so that a bad constraint aborts the build without
// leaving partial state behind.
type rulePlan struct {
	// allowed holds the intersection of the rule's equality/membership
	// constraints per attribute. A nil map entry never occurs; attributes
	// without a discrete constraint are simply absent.
	allowed map[string][]rule.Value
	// thresholds holds the tightest threshold per attribute and direction.
	thresholds map[string]map[rule.Operator]float64
	// unsatisfiable marks rules whose discrete constraints contradict each
	// other. They keep their identity but can never match.
	unsatisfiable bool
}

func compile[T any](rs RuleSet[T], o options) (*Classifier[T], error) {
	if len(rs.Rules) == 0 && rs.Default == nil {
		return nil, ErrEmptyRuleSet
	}
	if err := rs.Schema.Validate(); err != nil {
		return nil, err
	}

	n := len(rs.Rules)
	if rs.Default != nil {
		n++
	}
	capacity := uint32(n)

	plans := make([]rulePlan, len(rs.Rules))
	for id, def := range rs.Rules {
		plan, err := planRule(rs.Schema, id, def.Constraints)
		if err != nil {
			return nil, err
		}
		plans[id] = plan
	}

	// One equality builder and up to four direction builders per attribute,
	// created on first use. constrained tracks, per builder, which rules
	// carry a constraint there; everything else lands in that builder's
	// wildcard.
	eqBuilders := make(map[string]*index.EqualityBuilder)
	eqConstrained := make(map[string]map[uint32]struct{})
	rangeBuilders := make(map[string]map[rule.Operator]*index.RangeBuilder)
	rangeConstrained := make(map[string]map[rule.Operator]map[uint32]struct{})

	for id, plan := range plans {
		if plan.unsatisfiable {
			continue
		}
		rid := uint32(id)

		for attr, values := range plan.allowed {
			b, ok := eqBuilders[attr]
			if !ok {
				b = index.NewEqualityBuilder(capacity, o.factory)
				eqBuilders[attr] = b
				eqConstrained[attr] = make(map[uint32]struct{})
			}
			for _, v := range values {
				if err := b.AddPosting(v, rid); err != nil {
					return nil, err
				}
			}
			eqConstrained[attr][rid] = struct{}{}
		}

		for attr, byOp := range plan.thresholds {
			for op, threshold := range byOp {
				ops, ok := rangeBuilders[attr]
				if !ok {
					ops = make(map[rule.Operator]*index.RangeBuilder)
					rangeBuilders[attr] = ops
					rangeConstrained[attr] = make(map[rule.Operator]map[uint32]struct{})
				}
				b, ok := ops[op]
				if !ok {
					var err error
					b, err = index.NewRangeBuilder(op, capacity, o.factory)
					if err != nil {
						return nil, err
					}
					ops[op] = b
					rangeConstrained[attr][op] = make(map[uint32]struct{})
				}
				if err := b.AddThreshold(threshold, rid); err != nil {
					return nil, err
				}
				rangeConstrained[attr][op][rid] = struct{}{}
			}
		}
	}

	// Wildcards: every live rule that does not constrain a builder's
	// attribute under its operator family. Unsatisfiable rules are excluded
	// everywhere so they can never match; the guard rule (if any) is
	// constrained nowhere and therefore lands in every wildcard.
	live := func(id uint32) bool {
		return int(id) >= len(plans) || !plans[id].unsatisfiable
	}
	for attr, b := range eqBuilders {
		constrained := eqConstrained[attr]
		for id := uint32(0); id < capacity; id++ {
			if _, ok := constrained[id]; ok || !live(id) {
				continue
			}
			if err := b.AddWildcard(id); err != nil {
				return nil, err
			}
		}
	}
	for attr, ops := range rangeBuilders {
		for op, b := range ops {
			constrained := rangeConstrained[attr][op]
			for id := uint32(0); id < capacity; id++ {
				if _, ok := constrained[id]; ok || !live(id) {
					continue
				}
				if err := b.AddWildcard(id); err != nil {
					return nil, err
				}
			}
		}
	}

	c := &Classifier[T]{
		schema:          rs.Schema,
		ruleCount:       len(rs.Rules),
		classifications: make([]T, n),
		all:             o.factory(capacity),
		logger:          o.logger,
		metrics:         o.metrics,
	}

	for id, def := range rs.Rules {
		c.classifications[id] = def.Classification
		if live(uint32(id)) {
			if err := c.all.Add(uint32(id)); err != nil {
				return nil, err
			}
		}
	}
	if rs.Default != nil {
		guardID := capacity - 1
		c.classifications[guardID] = *rs.Default
		if err := c.all.Add(guardID); err != nil {
			return nil, err
		}
		c.guard = o.factory(capacity)
		if err := c.guard.Add(guardID); err != nil {
			return nil, err
		}
	}

	// Freeze and order attributes by selectivity: the smaller an index's
	// wildcard, the more rules the attribute constrains and the harder its
	// intersection shrinks the candidate set. Order affects speed only,
	// never the outcome.
	for attr := range eqBuilders {
		ca := c.findOrAddAttr(attr, rs.Schema[attr])
		ca.eq = eqBuilders[attr].Freeze()
	}
	for attr, ops := range rangeBuilders {
		ca := c.findOrAddAttr(attr, rs.Schema[attr])
		dirs := make([]rule.Operator, 0, len(ops))
		for op := range ops {
			dirs = append(dirs, op)
		}
		sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })
		for _, op := range dirs {
			ca.ranges = append(ca.ranges, ops[op].Freeze())
		}
	}
	sort.SliceStable(c.attrs, func(i, j int) bool {
		wi, wj := c.attrs[i].minWildcard(), c.attrs[j].minWildcard()
		if wi != wj {
			return wi < wj
		}
		return c.attrs[i].name < c.attrs[j].name
	})

	return c, nil
}

// planRule validates and normalizes one rule's constraints.
func planRule(schema rule.Schema, id int, constraints []rule.Constraint) (rulePlan, error) {
	plan := rulePlan{
		allowed:    make(map[string][]rule.Value),
		thresholds: make(map[string]map[rule.Operator]float64),
	}

	for _, con := range constraints {
		attr, ok := schema[con.Attribute]
		if !ok {
			return plan, &ErrUnknownAttribute{Attribute: con.Attribute, Rule: id}
		}
		if !con.Operator.Valid() {
			return plan, &ErrInvalidConstraint{
				Attribute: con.Attribute,
				Operator:  con.Operator,
				Rule:      id,
				cause:     errors.New("unknown operator"),
			}
		}

		if con.Operator.Ordered() {
			if !attr.Type.Ordered() {
				return plan, &ErrInvalidOperatorForType{
					Attribute: con.Attribute,
					Operator:  con.Operator,
					Type:      attr.Type,
				}
			}
			threshold, ok := con.Value.AsNumber()
			if !ok {
				return plan, &ErrInvalidConstraint{
					Attribute: con.Attribute,
					Operator:  con.Operator,
					Rule:      id,
					cause:     errors.New("range threshold must be numeric"),
				}
			}
			byOp, ok := plan.thresholds[con.Attribute]
			if !ok {
				byOp = make(map[rule.Operator]float64)
				plan.thresholds[con.Attribute] = byOp
			}
			// Repeated constraints in the same direction collapse to the
			// tightest one.
			existing, has := byOp[con.Operator]
			switch con.Operator {
			case rule.OpLessThan, rule.OpLessEqual:
				if !has || threshold < existing {
					byOp[con.Operator] = threshold
				}
			case rule.OpGreaterThan, rule.OpGreaterEqual:
				if !has || threshold > existing {
					byOp[con.Operator] = threshold
				}
			}
			continue
		}

		values, err := discreteValues(attr.Type, con)
		if err != nil {
			return plan, &ErrInvalidConstraint{
				Attribute: con.Attribute,
				Operator:  con.Operator,
				Rule:      id,
				cause:     err,
			}
		}
		if existing, has := plan.allowed[con.Attribute]; has {
			// A second discrete constraint on the same attribute narrows
			// the allowed set; an empty intersection makes the rule
			// unsatisfiable rather than an error.
			plan.allowed[con.Attribute] = intersectValues(existing, values)
		} else {
			plan.allowed[con.Attribute] = values
		}
		if len(plan.allowed[con.Attribute]) == 0 {
			plan.unsatisfiable = true
		}
	}

	return plan, nil
}

// discreteValues normalizes an eq/in constraint into its allowed value set.
func discreteValues(t rule.FieldType, con rule.Constraint) ([]rule.Value, error) {
	switch con.Operator {
	case rule.OpEqual:
		v, err := t.Normalize(con.Value)
		if err != nil {
			return nil, err
		}
		return []rule.Value{v}, nil
	case rule.OpIn:
		items, ok := con.Value.AsArray()
		if !ok {
			return nil, errors.New(`"in" requires an array value`)
		}
		seen := make(map[string]struct{}, len(items))
		values := make([]rule.Value, 0, len(items))
		for _, item := range items {
			v, err := t.Normalize(item)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[v.Key()]; dup {
				continue
			}
			seen[v.Key()] = struct{}{}
			values = append(values, v)
		}
		return values, nil
	default:
		return nil, errors.New("not a discrete operator")
	}
}

func intersectValues(a, b []rule.Value) []rule.Value {
	keys := make(map[string]struct{}, len(b))
	for _, v := range b {
		keys[v.Key()] = struct{}{}
	}
	out := a[:0:0]
	for _, v := range a {
		if _, ok := keys[v.Key()]; ok {
			out = append(out, v)
		}
	}
	return out
}
