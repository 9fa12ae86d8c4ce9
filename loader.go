package matchgo

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hupe1980/matchgo/rulestore"
	"github.com/hupe1980/matchgo/snapshot"
	"golang.org/x/time/rate"
)

// LoaderOption configures a Loader.
type LoaderOption[T any] func(*Loader[T])

// WithReloadInterval sets the minimum interval between reload attempts
// made by Run. The default is one minute.
func WithReloadInterval[T any](d time.Duration) LoaderOption[T] {
	return func(l *Loader[T]) {
		if d > 0 {
			l.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// WithSnapshotOptions sets the snapshot encoding options used when the
// stored document is read or written through the loader.
func WithSnapshotOptions[T any](opts *snapshot.Options) LoaderOption[T] {
	return func(l *Loader[T]) {
		l.snapOpts = opts
	}
}

// WithClassifierOptions sets the build options applied to every
// classifier the loader compiles.
func WithClassifierOptions[T any](opts ...Option) LoaderOption[T] {
	return func(l *Loader[T]) {
		l.buildOpts = opts
	}
}

// WithOnSwap registers a callback invoked after each successful swap of
// the active classifier.
func WithOnSwap[T any](fn func(*Classifier[T])) LoaderOption[T] {
	return func(l *Loader[T]) {
		l.onSwap = fn
	}
}

// Loader keeps a classifier in sync with a rule set document stored in a
// rulestore.Store. Load fetches and compiles the document once; Run polls
// for changes and hot-swaps the active classifier without blocking
// concurrent Classify calls.
type Loader[T any] struct {
	store     rulestore.Store
	name      string
	limiter   *rate.Limiter
	snapOpts  *snapshot.Options
	buildOpts []Option
	logger    *Logger
	onSwap    func(*Classifier[T])

	current atomic.Pointer[Classifier[T]]
}

// NewLoader creates a loader for the snapshot stored under name.
func NewLoader[T any](store rulestore.Store, name string, opts ...LoaderOption[T]) *Loader[T] {
	l := &Loader[T]{
		store:   store,
		name:    name,
		limiter: rate.NewLimiter(rate.Every(time.Minute), 1),
		logger:  NoopLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}

	o := defaultOptions()
	for _, opt := range l.buildOpts {
		opt(&o)
	}
	l.logger = o.logger

	return l
}

// Current returns the active classifier, or nil before the first
// successful Load.
func (l *Loader[T]) Current() *Classifier[T] {
	return l.current.Load()
}

// Load fetches the stored document, compiles it and swaps it in as the
// active classifier.
func (l *Loader[T]) Load(ctx context.Context) error {
	var rs RuleSet[T]
	if err := snapshot.Load(ctx, l.store, l.name, &rs); err != nil {
		return err
	}

	c, err := Build(rs, l.buildOpts...)
	if err != nil {
		return err
	}

	l.current.Store(c)
	l.logger.LogSwap(ctx, l.name, c.Len())

	if l.onSwap != nil {
		l.onSwap(c)
	}
	return nil
}

// Save encodes rs as a snapshot and stores it under the loader's name.
// It does not swap the active classifier; the next Load or Run cycle
// picks the document up.
func (l *Loader[T]) Save(ctx context.Context, rs RuleSet[T]) error {
	return snapshot.Save(ctx, l.store, l.name, rs, l.snapOpts)
}

// Run reloads the document at the configured interval until ctx is
// canceled. A document that is temporarily missing or fails to compile
// is logged and retried on the next cycle; the previously active
// classifier stays in place.
func (l *Loader[T]) Run(ctx context.Context) error {
	for {
		if err := l.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := l.Load(ctx); err != nil {
			l.logger.ErrorContext(ctx, "reload failed", "snapshot", l.name, "error", err)
		}
	}
}
