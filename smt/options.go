package smt

import (
	"time"

	"github.com/rs/zerolog"
)

// DriverOptions configures a Driver at construction time (spec §6 Options
// "solver, binaryPath?, incremental?", §5 "deadline-based cancellation").
type DriverOptions struct {
	Solver      Kind
	BinaryPath  string // overrides env-var/PATH resolution when non-empty
	Incremental bool
	Timeout     time.Duration // zero means no deadline
	Logger      zerolog.Logger
}

// Option configures a DriverOptions instance.
type Option func(*DriverOptions)

// WithSolver selects the back end.
func WithSolver(k Kind) Option {
	return func(o *DriverOptions) { o.Solver = k }
}

// WithBinaryPath pins the solver executable path, taking precedence over
// the <SOLVER>_DIR environment variable and PATH lookup (spec §4.5 "Binary
// location resolves from user option, then <SOLVER>_DIR env var, then
// ./<solver>").
func WithBinaryPath(path string) Option {
	return func(o *DriverOptions) { o.BinaryPath = path }
}

// WithIncremental requests incremental dispatch when the solver supports it.
func WithIncremental(on bool) Option {
	return func(o *DriverOptions) { o.Incremental = on }
}

// WithTimeout bounds a single solve's wall-clock time before the driver
// kills the subprocess.
func WithTimeout(d time.Duration) Option {
	return func(o *DriverOptions) { o.Timeout = d }
}

// WithLogger overrides the destination for solver round-trip logs.
func WithLogger(l zerolog.Logger) Option {
	return func(o *DriverOptions) { o.Logger = l }
}

// NewDriverOptions builds DriverOptions with defaults (Solver=Z3,
// Incremental=false, Timeout=0 (unbounded), Logger=zerolog.Nop()) then
// applies opts left to right.
func NewDriverOptions(opts ...Option) DriverOptions {
	o := DriverOptions{
		Solver: Z3,
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
