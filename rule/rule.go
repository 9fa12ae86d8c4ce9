package rule

import "slices"

// Operator represents a comparison operator for constraints.
type Operator string

const (
	// OpEqual represents the equality operator.
	OpEqual Operator = "eq"
	// OpIn represents set membership over an array of values.
	OpIn Operator = "in"
	// OpLessThan represents the less than operator.
	OpLessThan Operator = "lt"
	// OpLessEqual represents the less than or equal operator.
	OpLessEqual Operator = "lte"
	// OpGreaterThan represents the greater than operator.
	OpGreaterThan Operator = "gt"
	// OpGreaterEqual represents the greater than or equal operator.
	OpGreaterEqual Operator = "gte"
)

// Ordered reports whether the operator compares against an ordered domain.
func (op Operator) Ordered() bool {
	switch op {
	case OpLessThan, OpLessEqual, OpGreaterThan, OpGreaterEqual:
		return true
	default:
		return false
	}
}

// Valid reports whether the operator is one the compiler understands.
func (op Operator) Valid() bool {
	switch op {
	case OpEqual, OpIn, OpLessThan, OpLessEqual, OpGreaterThan, OpGreaterEqual:
		return true
	default:
		return false
	}
}

// Constraint is one conjunct of a rule: attribute OP value.
type Constraint struct {
	Attribute string   `json:"attribute"`
	Operator  Operator `json:"operator"`
	Value     Value    `json:"value"`
}

// Definition is a conjunctive rule: all constraints must hold for the
// classification to apply. Priority is positional: the definition's index in
// the rule list is its priority, lower index winning.
type Definition[T any] struct {
	Constraints    []Constraint `json:"constraints,omitempty"`
	Classification T            `json:"classification"`
}

// New starts a rule definition for the given classification.
//
// The fluent methods return updated copies, so partially built definitions
// can be shared safely:
//
//	r := rule.New("class1").
//	    Eq("productType", rule.String("electronics")).
//	    Gt("qty", rule.Int(10)).
//	    Lt("price", rule.Float(200))
func New[T any](classification T) Definition[T] {
	return Definition[T]{Classification: classification}
}

func (d Definition[T]) with(c Constraint) Definition[T] {
	d.Constraints = append(slices.Clone(d.Constraints), c)
	return d
}

// Eq constrains the attribute to equal v.
func (d Definition[T]) Eq(attribute string, v Value) Definition[T] {
	return d.with(Constraint{Attribute: attribute, Operator: OpEqual, Value: v})
}

// In constrains the attribute to be a member of the array value v.
func (d Definition[T]) In(attribute string, v Value) Definition[T] {
	return d.with(Constraint{Attribute: attribute, Operator: OpIn, Value: v})
}

// Lt constrains the attribute to be less than v.
func (d Definition[T]) Lt(attribute string, v Value) Definition[T] {
	return d.with(Constraint{Attribute: attribute, Operator: OpLessThan, Value: v})
}

// Lte constrains the attribute to be less than or equal to v.
func (d Definition[T]) Lte(attribute string, v Value) Definition[T] {
	return d.with(Constraint{Attribute: attribute, Operator: OpLessEqual, Value: v})
}

// Gt constrains the attribute to be greater than v.
func (d Definition[T]) Gt(attribute string, v Value) Definition[T] {
	return d.with(Constraint{Attribute: attribute, Operator: OpGreaterThan, Value: v})
}

// Gte constrains the attribute to be greater than or equal to v.
func (d Definition[T]) Gte(attribute string, v Value) Definition[T] {
	return d.with(Constraint{Attribute: attribute, Operator: OpGreaterEqual, Value: v})
}
