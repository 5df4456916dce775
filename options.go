package annrecall

import "log/slog"

// DefaultEpsilon is the default slack added to the per-query distance
// threshold to tolerate floating-point/metric noise at the k-th boundary.
const DefaultEpsilon = 1e-3

type options struct {
	epsilon            float32
	renormalizeResults bool
	metricsCollector   MetricsCollector
	logger             *Logger
}

// Option configures Evaluator behavior.
type Option func(*options)

// WithEpsilon overrides the threshold slack added to the k-th ground-truth
// distance. Values <= 0 disable the slack entirely, making the threshold
// exactly the k-th distance.
func WithEpsilon(epsilon float32) Option {
	return func(o *options) {
		o.epsilon = epsilon
	}
}

// WithShortResultRenormalization divides per-query recall by the number of
// returned identifiers instead of k when the approximate system returns fewer
// than k results.
//
// By default short result lists are not rewarded: each missing slot counts as
// a miss and recall stays count/k.
func WithShortResultRenormalization() Option {
	return func(o *options) {
		o.renormalizeResults = true
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// evaluation runs. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		epsilon:          DefaultEpsilon,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
