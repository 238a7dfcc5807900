package application

import "log/slog"

// Option tunes a listing or order service.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger for non-fatal failures such as order index
// writes. Services default to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func collectOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
