package index

import (
	"testing"

	"github.com/hupe1980/matchgo/bitset"
	"github.com/hupe1980/matchgo/rule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualityLookup(t *testing.T) {
	b := NewEqualityBuilder(8, bitset.RoaringFactory)
	require.NoError(t, b.AddPosting(rule.String("electronics"), 0))
	require.NoError(t, b.AddPosting(rule.String("electronics"), 2))
	require.NoError(t, b.AddPosting(rule.String("books"), 1))
	require.NoError(t, b.AddWildcard(3))

	ix := b.Freeze()
	assert.Equal(t, 2, ix.Len())

	t.Run("PostingPlusWildcard", func(t *testing.T) {
		got := collect(ix.Lookup(rule.String("electronics")))
		assert.Equal(t, []uint32{0, 2, 3}, got)
	})

	t.Run("OtherPosting", func(t *testing.T) {
		got := collect(ix.Lookup(rule.String("books")))
		assert.Equal(t, []uint32{1, 3}, got)
	})

	t.Run("UnknownValueWildcardOnly", func(t *testing.T) {
		got := collect(ix.Lookup(rule.String("toys")))
		assert.Equal(t, []uint32{3}, got)
	})

	t.Run("LookupReturnsFreshSet", func(t *testing.T) {
		s := ix.Lookup(rule.String("books"))
		require.NoError(t, s.Add(7))
		assert.Equal(t, []uint32{1, 3}, collect(ix.Lookup(rule.String("books"))))
		assert.Equal(t, []uint32{3}, collect(ix.Wildcard()))
	})
}

func TestEqualityNumericKeys(t *testing.T) {
	// Callers normalize before posting and before lookup, so an int-typed
	// attribute must be indexed and queried under the same kind.
	b := NewEqualityBuilder(4, bitset.RoaringFactory)
	require.NoError(t, b.AddPosting(rule.Int(5), 0))
	require.NoError(t, b.AddPosting(rule.Float(5), 1))

	ix := b.Freeze()
	assert.Equal(t, []uint32{0}, collect(ix.Lookup(rule.Int(5))))
	assert.Equal(t, []uint32{1}, collect(ix.Lookup(rule.Float(5))))
}

func TestEqualityEmpty(t *testing.T) {
	ix := NewEqualityBuilder(4, bitset.RoaringFactory).Freeze()
	assert.Equal(t, 0, ix.Len())
	assert.True(t, ix.Lookup(rule.String("x")).IsEmpty())
}

func collect(s bitset.Set) []uint32 {
	var out []uint32
	for id := range s.Iterator() {
		out = append(out, id)
	}
	return out
}
