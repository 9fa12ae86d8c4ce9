package rule

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unique"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
	// KindArray represents an array value, used by the "in" operator.
	KindArray
)

// Value is a small typed literal used for constraints and input records.
//
// The representation is a closed tagged union so the hot path never touches
// reflection or fmt-based stringification. Strings are interned, which makes
// equality a handle comparison.
//
// NOTE: This is also used for persisted rule sets; keep it stable.
type Value struct {
	Kind Kind                  `json:"k"`
	I64  int64                 `json:"i,omitempty"`
	F64  float64               `json:"f,omitempty"`
	s    unique.Handle[string] `json:"-"` // Private interned string
	B    bool                  `json:"b,omitempty"`
	A    []Value               `json:"a,omitempty"`
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, s: unique.Make(v)} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Array returns an array Value.
func Array(v ...Value) Value { return Value{Kind: KindArray, A: v} }

// Strings returns an array Value of strings, a convenience for "in" lists.
func Strings(vs ...string) Value {
	a := make([]Value, len(vs))
	for i, s := range vs {
		a[i] = String(s)
	}
	return Array(a...)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	type Alias Value
	aux := &struct {
		S string `json:"s,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(&v),
	}
	if v.Kind == KindString {
		aux.S = v.s.Value()
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	type Alias Value
	aux := &struct {
		S string `json:"s,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(v),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if v.Kind == KindString {
		v.s = unique.Make(aux.S)
	}
	return nil
}

// Key returns a stable string representation for use as a posting-map key.
//
// It must remain stable across versions: persisted rule sets are re-indexed
// under these keys on load.
func (v Value) Key() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return "i:" + strconv.FormatInt(v.I64, 10)
	case KindFloat:
		f := v.F64
		if f == 0 {
			// Negative zero compares equal to zero; it must key equal too.
			f = 0
		}
		return "f:" + strconv.FormatUint(math.Float64bits(f), 16)
	case KindString:
		return "s:" + v.s.Value()
	case KindBool:
		if v.B {
			return "b:1"
		}
		return "b:0"
	case KindArray:
		if len(v.A) == 0 {
			return "a:"
		}
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].Key()
		}
		return "a:" + strings.Join(parts, "\x1f")
	default:
		return "invalid"
	}
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.F64, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.s.Value(), true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// AsArray returns the array value if Kind is KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.A, true
}

// AsNumber returns the value as float64 if it is numeric.
//
// Ordered (range) indexes share one float64 threshold domain across int and
// float constraints.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.I64), true
	case KindFloat:
		return v.F64, true
	default:
		return 0, false
	}
}

// Equal compares two values, treating numerically equal int/float as equal.
func (v Value) Equal(other Value) bool {
	if v.Kind == KindNull && other.Kind == KindNull {
		return true
	}
	if v.Kind == KindNull || other.Kind == KindNull {
		return false
	}

	if a, aok := v.AsNumber(); aok {
		if b, bok := other.AsNumber(); bok {
			if v.Kind == KindInt && other.Kind == KindInt {
				return v.I64 == other.I64
			}
			return a == b
		}
		return false
	}

	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case KindString:
		return v.s == other.s
	case KindBool:
		return v.B == other.B
	case KindArray:
		if len(v.A) != len(other.A) {
			return false
		}
		for i := range v.A {
			if !v.A[i].Equal(other.A[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Record is the default query input: a typed attribute-value document.
//
// Callers with an opaque record type bind it through Accessor functions on the
// schema instead.
type Record map[string]Value
