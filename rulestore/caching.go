package rulestore

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// CachingStore wraps a Store and adds read-through caching.
//
// Loader polling hits the same document name over and over; the cache keeps
// the last seen payload per name and singleflight collapses concurrent
// fetches of a cold name into one backend call. Writes through this store
// invalidate the cached entry so the next Get observes them.
//
// Writes performed behind the wrapped store's back are only observed after
// Invalidate is called for the name (or the whole cache).
type CachingStore struct {
	inner Store

	mu    sync.RWMutex
	cache map[string][]byte

	group singleflight.Group
}

// NewCachingStore creates a new CachingStore.
func NewCachingStore(inner Store) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: make(map[string][]byte),
	}
}

// Get reads a document, serving repeated reads from the cache.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		// Return a copy to prevent external mutation
		copied := make([]byte, len(data))
		copy(copied, data)
		return copied, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		data, err := s.inner.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[name] = data
		s.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	data = v.([]byte)
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

// Put writes a document and invalidates its cached entry.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

// Delete removes a document and invalidates its cached entry.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

// List lists documents; listings are not cached.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Invalidate drops the cached entry for name, or every entry when name is
// empty.
func (s *CachingStore) Invalidate(name string) {
	if name == "" {
		s.mu.Lock()
		s.cache = make(map[string][]byte)
		s.mu.Unlock()
		return
	}
	s.invalidate(name)
}

func (s *CachingStore) invalidate(name string) {
	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
}

// Prefetch warms the cache for the named documents concurrently.
//
// Missing documents are skipped; any other backend error aborts the warmup.
func (s *CachingStore) Prefetch(ctx context.Context, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, name := range names {
		g.Go(func() error {
			_, err := s.Get(ctx, name)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		})
	}
	return g.Wait()
}
