package matrix

import "errors"

// Sentinel errors for the matrix package. Algorithms return these directly
// (or wrapped with fmt.Errorf's %w); callers match with errors.Is, never by
// string comparison, following the teacher's matrix/errors.go discipline.
var (
	// ErrNilMatrix is returned when an operation receives a nil *Matrix
	// operand where one is required.
	ErrNilMatrix = errors.New("matrix: nil matrix operand")

	// ErrDimensionMismatch is returned when two operands' dims are
	// incompatible for the requested operation.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrFactoryMismatch is returned when two operands were built from
	// different scalar factories.
	ErrFactoryMismatch = errors.New("matrix: operands belong to different factories")

	// ErrBadShape is returned when requested dimensions are invalid (any
	// dimension <= 0).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange is returned when a flat or per-axis index is outside
	// the matrix's declared capacity.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNotBinary is returned when a BinaryMatrix constructor is given
	// cells that are not provably {0,1}-valued.
	ErrNotBinary = errors.New("matrix: cell is not {0,1}-valued")

	// ErrNotSquare is returned by operations (Closure, ReflexiveClosure,
	// KhatriRao) that require a square last two dimensions, and by
	// Transpose on a matrix of rank below two.
	ErrNotSquare = errors.New("matrix: matrix is not square")

	// ErrBadColumns is returned by Project when a requested
	// column list is invalid for the operand's rank.
	ErrBadColumns = errors.New("matrix: invalid column selection")
)
