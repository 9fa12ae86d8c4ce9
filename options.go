package matchgo

import "github.com/hupe1980/matchgo/bitset"

type options struct {
	logger  *Logger
	metrics MetricsCollector
	factory bitset.Factory
}

func defaultOptions() options {
	return options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
		factory: bitset.RoaringFactory,
	}
}

// Option configures Build and Loader behavior.
type Option func(*options)

// WithLogger configures structured logging.
//
// If nil is passed, logging stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics configures a metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithBitsetFactory selects the bitset representation used by the compiled
// classifier. The default is bitset.RoaringFactory; bitset.DenseFactory
// trades memory for flat-array intersection when rule counts are modest.
func WithBitsetFactory(f bitset.Factory) Option {
	return func(o *options) {
		if f == nil {
			f = bitset.RoaringFactory
		}
		o.factory = f
	}
}
