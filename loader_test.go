package matchgo

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/matchgo/rule"
	"github.com/hupe1980/matchgo/rulestore"
	"github.com/hupe1980/matchgo/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader(t *testing.T) {
	ctx := context.Background()
	store := rulestore.NewMemoryStore()

	loader := NewLoader[string](store, "rules/current",
		WithSnapshotOptions[string](&snapshot.Options{Compression: snapshot.CompressionZSTD}),
	)

	t.Run("CurrentBeforeLoad", func(t *testing.T) {
		assert.Nil(t, loader.Current())
	})

	t.Run("LoadMissing", func(t *testing.T) {
		assert.ErrorIs(t, loader.Load(ctx), rulestore.ErrNotFound)
		assert.Nil(t, loader.Current())
	})

	t.Run("SaveThenLoad", func(t *testing.T) {
		require.NoError(t, loader.Save(ctx, RuleSet[string]{
			Schema: productSchema(),
			Rules:  productRules(),
		}))
		require.NoError(t, loader.Load(ctx))

		c := loader.Current()
		require.NotNil(t, c)
		assert.Equal(t, 3, c.Len())

		res, ok, err := c.Classify(rule.Record{
			"productType": rule.String("electronics"),
			"qty":         rule.Int(20),
			"price":       rule.Float(150),
		})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "class1", res.Classification)
	})

	t.Run("ReloadSwaps", func(t *testing.T) {
		previous := loader.Current()

		require.NoError(t, loader.Save(ctx, RuleSet[string]{
			Schema: productSchema(),
			Rules:  productRules()[:1],
		}))
		require.NoError(t, loader.Load(ctx))

		current := loader.Current()
		require.NotNil(t, current)
		assert.NotSame(t, previous, current)
		assert.Equal(t, 1, current.Len())
	})

	t.Run("BadDocumentKeepsCurrent", func(t *testing.T) {
		previous := loader.Current()

		require.NoError(t, store.Put(ctx, "rules/current", []byte("not a snapshot")))
		assert.Error(t, loader.Load(ctx))
		assert.Same(t, previous, loader.Current())
	})
}

func TestLoaderOnSwap(t *testing.T) {
	ctx := context.Background()
	store := rulestore.NewMemoryStore()

	var swapped []*Classifier[string]
	loader := NewLoader(store, "rules/current",
		WithOnSwap(func(c *Classifier[string]) {
			swapped = append(swapped, c)
		}),
	)

	require.NoError(t, loader.Save(ctx, RuleSet[string]{
		Schema: productSchema(),
		Rules:  productRules(),
	}))
	require.NoError(t, loader.Load(ctx))
	require.NoError(t, loader.Load(ctx))

	require.Len(t, swapped, 2)
	assert.Same(t, loader.Current(), swapped[1])
}

func TestLoaderRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := rulestore.NewMemoryStore()

	swaps := make(chan struct{}, 16)
	loader := NewLoader(store, "rules/current",
		WithReloadInterval[string](time.Millisecond),
		WithOnSwap(func(*Classifier[string]) { swaps <- struct{}{} }),
	)

	require.NoError(t, loader.Save(ctx, RuleSet[string]{
		Schema: productSchema(),
		Rules:  productRules(),
	}))

	done := make(chan error, 1)
	go func() { done <- loader.Run(ctx) }()

	select {
	case <-swaps:
	case <-time.After(5 * time.Second):
		t.Fatal("no swap observed")
	}
	require.NotNil(t, loader.Current())

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
