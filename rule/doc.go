// Package rule defines the typed rule model: literal values, operators,
// constraints, rule definitions and the attribute schema.
//
// # Values
//
// Constraint literals and record attributes are Values, a closed tagged union:
//
//   - String: rule.String("electronics")
//   - Int: rule.Int(10)
//   - Float: rule.Float(199.99)
//   - Bool: rule.Bool(true)
//   - Array: rule.Array(...) / rule.Strings(...), used by the "in" operator
//
// # Definitions
//
// A rule is a conjunction of constraints plus a classification:
//
//	r := rule.New("class1").
//	    Eq("productType", rule.String("electronics")).
//	    Gt("qty", rule.Int(10)).
//	    Lt("price", rule.Float(200))
//
// Disjunction is not supported natively; express OR as multiple rules sharing
// a classification. Rule order is priority order: earlier rules win.
//
// # Schema
//
// The Schema declares each attribute's type, whether it may be absent, and
// optionally how to read it from an opaque record type. Range operators are
// only valid on Int and Float attributes.
package rule
