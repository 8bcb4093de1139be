package scalar

// FactoryOptions configures a Factory at construction time.
//
//   - Domain:    INTEGER or FUZZY (selects the semiring family).
//   - TNorm:     which fuzzy t-norm/t-conorm pair to use (ignored for Integer).
//   - MaxWeight: optional upper bound for numeric primary variables in the
//     integer domain (spec §6 Options.maxWeight); zero means unbounded.
//   - DecimalPlaces: rounding precision for fuzzy constant canonicalization
//     (spec §4.1 "16 decimal places, half-up").
//
// Use NewFactoryOptions to build one with sensible defaults and overrides,
// mirroring the teacher's own MatrixOptions/Option convention.
type FactoryOptions struct {
	Domain        Domain
	TNorm         TNorm
	MaxWeight     int64
	DecimalPlaces int32
}

// Option configures a FactoryOptions instance.
type Option func(*FactoryOptions)

// WithDomain sets the semiring domain.
func WithDomain(d Domain) Option {
	return func(o *FactoryOptions) { o.Domain = d }
}

// WithTNorm selects the fuzzy t-norm/t-conorm family.
func WithTNorm(t TNorm) Option {
	return func(o *FactoryOptions) { o.TNorm = t }
}

// WithMaxWeight bounds numeric primary variables in the integer domain.
func WithMaxWeight(max int64) Option {
	return func(o *FactoryOptions) { o.MaxWeight = max }
}

// WithDecimalPlaces overrides the fuzzy constant rounding precision.
func WithDecimalPlaces(places int32) Option {
	return func(o *FactoryOptions) { o.DecimalPlaces = places }
}

// NewFactoryOptions builds FactoryOptions with defaults (Domain=Integer,
// TNorm=Godel, MaxWeight=0 (unbounded), DecimalPlaces=16) then applies opts
// left to right.
func NewFactoryOptions(opts ...Option) FactoryOptions {
	fo := FactoryOptions{
		Domain:        Integer,
		TNorm:         Godel,
		MaxWeight:     0,
		DecimalPlaces: 16,
	}
	for _, opt := range opts {
		opt(&fo)
	}

	return fo
}
