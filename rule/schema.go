package rule

import "fmt"

// FieldType defines the declared type of an attribute.
type FieldType uint8

const (
	FieldTypeInvalid FieldType = iota
	FieldTypeInt
	FieldTypeFloat
	FieldTypeString
	FieldTypeBool
)

// String returns the string representation of the FieldType.
func (t FieldType) String() string {
	switch t {
	case FieldTypeInt:
		return "Int"
	case FieldTypeFloat:
		return "Float"
	case FieldTypeString:
		return "String"
	case FieldTypeBool:
		return "Bool"
	default:
		return "Unknown"
	}
}

// Ordered reports whether the type supports range operators.
func (t FieldType) Ordered() bool {
	return t == FieldTypeInt || t == FieldTypeFloat
}

// Accessor extracts an attribute value from an opaque record.
// The second return is false when the record carries no value for the
// attribute.
type Accessor func(rec any) (Value, bool)

// Attribute declares one attribute of the rule schema.
type Attribute struct {
	// Type is the declared value type. Range operators require an ordered
	// type (Int or Float).
	Type FieldType `json:"type"`

	// Optional marks the attribute as allowed to be absent from records.
	// Absence then matches only wildcard rules; for required attributes
	// absence is a classification error.
	Optional bool `json:"optional,omitempty"`

	// Get overrides value extraction for opaque record types. When nil,
	// records are expected to be rule.Record documents.
	Get Accessor `json:"-"`
}

// Schema declares the attributes rules may constrain.
type Schema map[string]Attribute

// Validate checks the schema for declaration errors.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("schema declares no attributes")
	}
	for name, attr := range s {
		if name == "" {
			return fmt.Errorf("schema contains an unnamed attribute")
		}
		if attr.Type == FieldTypeInvalid || attr.Type > FieldTypeBool {
			return fmt.Errorf("attribute %q has invalid type", name)
		}
	}
	return nil
}

// Normalize coerces a value to the attribute type.
//
// Int upgrades to Float for Float attributes so posting keys stay stable no
// matter which numeric kind the caller used. Any other mismatch is an error.
func (t FieldType) Normalize(v Value) (Value, error) {
	switch t {
	case FieldTypeInt:
		if v.Kind == KindInt {
			return v, nil
		}
	case FieldTypeFloat:
		switch v.Kind {
		case KindFloat:
			return v, nil
		case KindInt:
			return Float(float64(v.I64)), nil
		}
	case FieldTypeString:
		if v.Kind == KindString {
			return v, nil
		}
	case FieldTypeBool:
		if v.Kind == KindBool {
			return v, nil
		}
	}
	return Value{}, fmt.Errorf("value kind %d is not a %s", v.Kind, t)
}

// Lookup returns the value of the named attribute in rec, using the
// attribute's accessor when one is bound and a Record document lookup
// otherwise.
func (a Attribute) Lookup(name string, rec any) (Value, bool) {
	if a.Get != nil {
		return a.Get(rec)
	}
	doc, ok := rec.(Record)
	if !ok {
		return Value{}, false
	}
	v, ok := doc[name]
	return v, ok
}
