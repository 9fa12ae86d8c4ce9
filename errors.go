package matchgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/matchgo/rule"
)

var (
	// ErrEmptyRuleSet is returned when a rule set has neither rules nor a
	// default classification.
	ErrEmptyRuleSet = errors.New("rule set is empty")
)

// ErrInvalidOperatorForType indicates a range operator applied to an
// attribute whose declared type is not ordered. Raised at build time and
// fatal to that build: no partial classifier is returned.
type ErrInvalidOperatorForType struct {
	Attribute string
	Operator  rule.Operator
	Type      rule.FieldType
}

func (e *ErrInvalidOperatorForType) Error() string {
	return fmt.Sprintf("operator %q requires an ordered type, attribute %q is %s", e.Operator, e.Attribute, e.Type)
}

// ErrUnknownAttribute indicates a rule constrains an attribute the schema
// does not declare. Raised at build time.
type ErrUnknownAttribute struct {
	Attribute string
	Rule      int
}

func (e *ErrUnknownAttribute) Error() string {
	return fmt.Sprintf("rule %d constrains undeclared attribute %q", e.Rule, e.Attribute)
}

// ErrInvalidConstraint indicates a constraint whose operator or literal value
// the compiler cannot index: an unknown operator, a non-array "in" value, a
// non-numeric range threshold, or a value kind incompatible with the
// attribute type. Raised at build time.
//
// The underlying cause (if any) can be accessed via errors.Unwrap.
type ErrInvalidConstraint struct {
	Attribute string
	Operator  rule.Operator
	Rule      int
	cause     error
}

func (e *ErrInvalidConstraint) Error() string {
	msg := fmt.Sprintf("rule %d has an invalid %q constraint on attribute %q", e.Rule, e.Operator, e.Attribute)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *ErrInvalidConstraint) Unwrap() error { return e.cause }

// ErrMissingAttribute indicates a record carried no value for a required
// attribute during classification. Returned from Classify as a recoverable,
// typed failure; mark the attribute Optional in the schema to treat absence
// as wildcard-only instead.
type ErrMissingAttribute struct {
	Attribute string
}

func (e *ErrMissingAttribute) Error() string {
	return fmt.Sprintf("record is missing required attribute %q", e.Attribute)
}
