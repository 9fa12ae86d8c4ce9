package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factories() map[string]Factory {
	return map[string]Factory{
		"Roaring": RoaringFactory,
		"Dense":   DenseFactory,
	}
}

func TestSetContract(t *testing.T) {
	for name, factory := range factories() {
		t.Run(name, func(t *testing.T) {
			t.Run("Empty", func(t *testing.T) {
				s := factory(64)
				assert.True(t, s.IsEmpty())
				assert.Equal(t, uint64(0), s.Cardinality())

				_, ok := s.First()
				assert.False(t, ok)
			})

			t.Run("AddContains", func(t *testing.T) {
				s := factory(64)
				require.NoError(t, s.Add(3))
				require.NoError(t, s.Add(17))
				require.NoError(t, s.Add(63))

				assert.True(t, s.Contains(3))
				assert.True(t, s.Contains(17))
				assert.True(t, s.Contains(63))
				assert.False(t, s.Contains(4))
				assert.Equal(t, uint64(3), s.Cardinality())
			})

			t.Run("AddIdempotent", func(t *testing.T) {
				s := factory(8)
				require.NoError(t, s.Add(5))
				require.NoError(t, s.Add(5))
				assert.Equal(t, uint64(1), s.Cardinality())
			})

			t.Run("OutOfRange", func(t *testing.T) {
				s := factory(8)
				err := s.Add(8)

				var oor *ErrOutOfRange
				require.ErrorAs(t, err, &oor)
				assert.Equal(t, uint32(8), oor.ID)
				assert.Equal(t, uint32(8), oor.Capacity)
			})

			t.Run("First", func(t *testing.T) {
				s := factory(128)
				require.NoError(t, s.Add(90))
				require.NoError(t, s.Add(12))
				require.NoError(t, s.Add(44))

				first, ok := s.First()
				require.True(t, ok)
				assert.Equal(t, uint32(12), first)
			})

			t.Run("And", func(t *testing.T) {
				a := factory(32)
				b := factory(32)
				for _, id := range []uint32{1, 5, 9, 20} {
					require.NoError(t, a.Add(id))
				}
				for _, id := range []uint32{5, 20, 31} {
					require.NoError(t, b.Add(id))
				}

				a.And(b)
				assert.Equal(t, []uint32{5, 20}, collect(a))
				// b untouched
				assert.Equal(t, []uint32{5, 20, 31}, collect(b))
			})

			t.Run("Or", func(t *testing.T) {
				a := factory(32)
				b := factory(32)
				require.NoError(t, a.Add(2))
				require.NoError(t, b.Add(7))
				require.NoError(t, b.Add(2))

				a.Or(b)
				assert.Equal(t, []uint32{2, 7}, collect(a))
			})

			t.Run("Clone", func(t *testing.T) {
				s := factory(16)
				require.NoError(t, s.Add(4))

				c := s.Clone()
				require.NoError(t, c.Add(9))

				assert.True(t, c.Contains(9))
				assert.False(t, s.Contains(9))
				assert.Equal(t, s.Capacity(), c.Capacity())
			})

			t.Run("IteratorAscending", func(t *testing.T) {
				s := factory(100)
				for _, id := range []uint32{99, 0, 42, 7} {
					require.NoError(t, s.Add(id))
				}
				assert.Equal(t, []uint32{0, 7, 42, 99}, collect(s))
			})
		})
	}
}

func TestMixedRepresentation(t *testing.T) {
	// And/Or must work across implementations through the iterator fallback.
	r := RoaringFactory(64)
	d := DenseFactory(64)
	for _, id := range []uint32{1, 2, 3} {
		require.NoError(t, r.Add(id))
	}
	for _, id := range []uint32{2, 3, 4} {
		require.NoError(t, d.Add(id))
	}

	t.Run("RoaringAndDense", func(t *testing.T) {
		a := r.Clone()
		a.And(d)
		assert.Equal(t, []uint32{2, 3}, collect(a))
	})

	t.Run("DenseOrRoaring", func(t *testing.T) {
		a := d.Clone()
		a.Or(r)
		assert.Equal(t, []uint32{1, 2, 3, 4}, collect(a))
	})
}

func collect(s Set) []uint32 {
	var out []uint32
	for id := range s.Iterator() {
		out = append(out, id)
	}
	return out
}
