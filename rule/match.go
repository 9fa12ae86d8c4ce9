package rule

// Matches evaluates the constraint against a value.
//
// This is the literal, per-constraint semantics the compiled indexes must
// reproduce; the classifier never calls it on the hot path, but tests use it
// as the reference evaluation.
func (c Constraint) Matches(v Value) bool {
	switch c.Operator {
	case OpEqual:
		return v.Equal(c.Value)
	case OpIn:
		items, ok := c.Value.AsArray()
		if !ok {
			return false
		}
		for _, item := range items {
			if v.Equal(item) {
				return true
			}
		}
		return false
	case OpLessThan:
		return compareLess(v, c.Value)
	case OpLessEqual:
		return compareLess(v, c.Value) || v.Equal(c.Value)
	case OpGreaterThan:
		return compareGreater(v, c.Value)
	case OpGreaterEqual:
		return compareGreater(v, c.Value) || v.Equal(c.Value)
	default:
		return false
	}
}

// Matches reports whether every constraint of the definition holds for the
// record. Attributes absent from the record fail the constraint.
func (d Definition[T]) Matches(rec Record) bool {
	for _, c := range d.Constraints {
		v, ok := rec[c.Attribute]
		if !ok {
			return false
		}
		if !c.Matches(v) {
			return false
		}
	}
	return true
}

func compareGreater(a, b Value) bool {
	av, aok := a.AsNumber()
	bv, bok := b.AsNumber()
	return aok && bok && av > bv
}

func compareLess(a, b Value) bool {
	av, aok := a.AsNumber()
	bv, bok := b.AsNumber()
	return aok && bok && av < bv
}
