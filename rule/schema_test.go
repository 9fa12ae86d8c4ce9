package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s := Schema{
			"productType": {Type: FieldTypeString},
			"qty":         {Type: FieldTypeInt},
			"price":       {Type: FieldTypeFloat},
			"onSale":      {Type: FieldTypeBool, Optional: true},
		}
		assert.NoError(t, s.Validate())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Error(t, Schema{}.Validate())
	})

	t.Run("UnnamedAttribute", func(t *testing.T) {
		s := Schema{"": {Type: FieldTypeInt}}
		assert.Error(t, s.Validate())
	})

	t.Run("InvalidType", func(t *testing.T) {
		s := Schema{"x": {}}
		assert.Error(t, s.Validate())
	})
}

func TestFieldTypeOrdered(t *testing.T) {
	assert.True(t, FieldTypeInt.Ordered())
	assert.True(t, FieldTypeFloat.Ordered())
	assert.False(t, FieldTypeString.Ordered())
	assert.False(t, FieldTypeBool.Ordered())
}

func TestNormalize(t *testing.T) {
	t.Run("Exact", func(t *testing.T) {
		v, err := FieldTypeInt.Normalize(Int(5))
		require.NoError(t, err)
		assert.Equal(t, Int(5), v)

		v, err = FieldTypeString.Normalize(String("a"))
		require.NoError(t, err)
		assert.Equal(t, String("a"), v)

		v, err = FieldTypeBool.Normalize(Bool(true))
		require.NoError(t, err)
		assert.Equal(t, Bool(true), v)
	})

	t.Run("IntUpgradesToFloat", func(t *testing.T) {
		v, err := FieldTypeFloat.Normalize(Int(3))
		require.NoError(t, err)
		assert.Equal(t, KindFloat, v.Kind)
		assert.Equal(t, 3.0, v.F64)
		// Key identical to a float literal: postings meet under one key.
		assert.Equal(t, Float(3.0).Key(), v.Key())
	})

	t.Run("NoFloatDowngrade", func(t *testing.T) {
		_, err := FieldTypeInt.Normalize(Float(3.0))
		assert.Error(t, err)
	})

	t.Run("KindMismatch", func(t *testing.T) {
		_, err := FieldTypeString.Normalize(Int(1))
		assert.Error(t, err)
		_, err = FieldTypeBool.Normalize(String("true"))
		assert.Error(t, err)
	})
}

func TestAttributeLookup(t *testing.T) {
	t.Run("RecordDocument", func(t *testing.T) {
		attr := Attribute{Type: FieldTypeInt}
		rec := Record{"qty": Int(12)}

		v, ok := attr.Lookup("qty", rec)
		require.True(t, ok)
		assert.Equal(t, Int(12), v)

		_, ok = attr.Lookup("missing", rec)
		assert.False(t, ok)
	})

	t.Run("Accessor", func(t *testing.T) {
		type order struct{ Qty int64 }

		attr := Attribute{
			Type: FieldTypeInt,
			Get: func(rec any) (Value, bool) {
				o, ok := rec.(order)
				if !ok {
					return Value{}, false
				}
				return Int(o.Qty), true
			},
		}

		v, ok := attr.Lookup("qty", order{Qty: 4})
		require.True(t, ok)
		assert.Equal(t, Int(4), v)

		_, ok = attr.Lookup("qty", "not an order")
		assert.False(t, ok)
	})

	t.Run("NonRecordWithoutAccessor", func(t *testing.T) {
		attr := Attribute{Type: FieldTypeInt}
		_, ok := attr.Lookup("qty", struct{}{})
		assert.False(t, ok)
	})
}
