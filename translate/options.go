package translate

import "github.com/rs/zerolog"

// Options configures a Translator at construction time.
//
//   - CapacityLimit: largest universe^arity a single relation-expression
//     node may materialize before translation fails with CapacityExceeded
//     (spec §4.4). Zero means unbounded.
//   - Logger: destination for cache hit/miss trace events.
type Options struct {
	CapacityLimit int
	Logger        zerolog.Logger
}

// Option configures an Options instance.
type Option func(*Options)

// WithCapacityLimit bounds the largest relation a translation may build.
func WithCapacityLimit(limit int) Option {
	return func(o *Options) { o.CapacityLimit = limit }
}

// WithLogger overrides the destination for trace events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// NewOptions builds Options with defaults (CapacityLimit=0 (unbounded),
// Logger=zerolog.Nop()) then applies opts left to right.
func NewOptions(opts ...Option) Options {
	o := Options{
		CapacityLimit: 0,
		Logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
