package bounds

import "errors"

// Sentinel errors for the bounds package.
var (
	// ErrUnknownRelation is returned when Interpret is called with a
	// relation id not present in the Bounds the Interpreter was built from.
	ErrUnknownRelation = errors.New("bounds: unknown relation")

	// ErrLowerExceedsUpper is returned at construction time when a
	// relation's lower bound contains an index absent from its upper bound.
	ErrLowerExceedsUpper = errors.New("bounds: lower bound index not covered by upper bound")

	// ErrBadArity is returned when a relation's bound index does not fit
	// the universe raised to the relation's declared arity.
	ErrBadArity = errors.New("bounds: bound index out of range for declared arity")

	// ErrEmptyUniverse is returned when Bounds names a universe of size 0.
	ErrEmptyUniverse = errors.New("bounds: universe must be non-empty")
)
