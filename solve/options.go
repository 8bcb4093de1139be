package solve

import "github.com/rs/zerolog"

// Options configures an Enumerator. Logger defaults to a no-op logger,
// matching every other configurable constructor in this module
// (scalar.NewFactory, smt.NewDriver, translate.New).
type Options struct {
	Logger zerolog.Logger
}

// Option mutates an Options during construction.
type Option func(*Options)

// WithLogger overrides the Enumerator's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{Logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
