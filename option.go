package bptree

// Options configures tree behavior.
type Options struct {
	logger Logger
	name   string // Label attached to log lines and exported metrics.
}

// DefaultOptions returns the default configuration: no logging and the
// name "default".
//
//goland:noinspection GoUnusedExportedFunction
func DefaultOptions() Options {
	return Options{
		logger: DiscardLogger{},
		name:   "default",
	}
}

// Option configures tree options using the functional options pattern.
type Option func(*Options)

// WithLogger sets the logger used for structural events such as root
// growth and root collapse. A nil logger restores the no-op default.
//
//goland:noinspection GoUnusedExportedFunction
func WithLogger(l Logger) Option {
	return func(opts *Options) {
		if l == nil {
			l = DiscardLogger{}
		}
		opts.logger = l
	}
}

// WithName labels the tree in logs and metrics.
//
//goland:noinspection GoUnusedExportedFunction
func WithName(name string) Option {
	return func(opts *Options) {
		opts.name = name
	}
}
