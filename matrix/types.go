package matrix

import (
	"fmt"

	"github.com/relfind/wmf/scalar"
)

// Dims is the shape of a Matrix: one size per dimension (spec §3's
// "dims"), flattened row-major. A relation of arity k over a universe of
// size n has Dims = [n, n, ..., n] (k times); Dims of length 1 represents a
// unary relation/column vector.
type Dims []int

// Capacity returns the product of all dimension sizes (spec §3
// "dims.capacity = Π dims[i]").
func (d Dims) Capacity() int {
	c := 1
	for _, s := range d {
		c *= s
	}
	return c
}

// Equal reports whether d and other describe the same shape.
func (d Dims) Equal(other Dims) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if d[i] != other[i] {
			return false
		}
	}
	return true
}

func (d Dims) valid() bool {
	if len(d) == 0 {
		return false
	}
	for _, s := range d {
		if s <= 0 {
			return false
		}
	}
	return true
}

// FlatIndex converts per-axis coordinates into dims' row-major flat index.
func FlatIndex(dims Dims, coords []int) (int, error) {
	if len(coords) != len(dims) {
		return 0, fmt.Errorf("matrix: FlatIndex: %d coords for %d dims: %w", len(coords), len(dims), ErrDimensionMismatch)
	}
	flat := 0
	for i, c := range coords {
		if c < 0 || c >= dims[i] {
			return 0, fmt.Errorf("matrix: FlatIndex: coord %d=%d out of range [0,%d): %w", i, c, dims[i], ErrOutOfRange)
		}
		flat = flat*dims[i] + c
	}
	return flat, nil
}

// Coords converts a row-major flat index back into per-axis coordinates.
func Coords(dims Dims, flat int) []int {
	coords := make([]int, len(dims))
	for i := len(dims) - 1; i >= 0; i-- {
		coords[i] = flat % dims[i]
		flat /= dims[i]
	}
	return coords
}

// Matrix is a sparse multidimensional tensor of scalar.Scalar cells. Every
// cell belongs to one factory; an absent index reads as that factory's
// ZERO. Matrix values are produced by the constructors and operations in
// this package; the zero value of Matrix is not valid (use New or
// FromCells).
type Matrix struct {
	dims    Dims
	factory *scalar.Factory
	back    backing
}

// New allocates an empty matrix (every cell ZERO) of the given dims, backed
// by a tree representation (the common case: translator leaves and
// comprehension results start sparse and grow incrementally).
func New(dims Dims, f *scalar.Factory) (*Matrix, error) {
	if !dims.valid() {
		return nil, ErrBadShape
	}
	return &Matrix{dims: dims, factory: f, back: newTreeBacking()}, nil
}

// NewHomogeneous allocates a matrix every cell of which equals value (e.g.
// the canonical UNIV constant, or a cardinality broadcast).
func NewHomogeneous(dims Dims, f *scalar.Factory, value *scalar.Scalar) (*Matrix, error) {
	if !dims.valid() {
		return nil, ErrBadShape
	}
	return &Matrix{dims: dims, factory: f, back: &homogeneousBacking{capacity: dims.Capacity(), value: value}}, nil
}

// FromCells allocates a matrix from an explicit sparse cell map (flat index
// -> scalar), choosing a dense or tree backing heuristically based on how
// much of the capacity the map actually fills. Supplying zero-valued cells
// is harmless but wasteful; callers should omit cells at ZERO.
func FromCells(dims Dims, f *scalar.Factory, cells map[int]*scalar.Scalar) (*Matrix, error) {
	if !dims.valid() {
		return nil, ErrBadShape
	}
	cap := dims.Capacity()
	if cap > 0 && float64(len(cells))/float64(cap) >= denseFillThreshold {
		d := newDenseBacking(cap)
		for idx, v := range cells {
			if idx < 0 || idx >= cap {
				return nil, fmt.Errorf("matrix: FromCells: index %d out of range: %w", idx, ErrOutOfRange)
			}
			d.set(idx, v)
		}
		return &Matrix{dims: dims, factory: f, back: d}, nil
	}
	t := newTreeBacking()
	for idx, v := range cells {
		if idx < 0 || idx >= cap {
			return nil, fmt.Errorf("matrix: FromCells: index %d out of range: %w", idx, ErrOutOfRange)
		}
		t.set(idx, v)
	}
	return &Matrix{dims: dims, factory: f, back: t}, nil
}

// Dims returns the matrix's shape.
func (m *Matrix) Dims() Dims { return m.dims }

// Capacity returns Dims().Capacity().
func (m *Matrix) Capacity() int { return m.dims.Capacity() }

// Factory returns the scalar.Factory that owns this matrix's cells.
func (m *Matrix) Factory() *scalar.Factory { return m.factory }

// At reads the cell at flat index idx, returning the factory's ZERO if the
// index is absent.
func (m *Matrix) At(idx int) (*scalar.Scalar, error) {
	if idx < 0 || idx >= m.Capacity() {
		return nil, ErrOutOfRange
	}
	if v := m.back.get(idx); v != nil {
		return v, nil
	}
	return m.factory.Zero(), nil
}

// AtCoords reads the cell at the given per-axis coordinates.
func (m *Matrix) AtCoords(coords []int) (*scalar.Scalar, error) {
	idx, err := FlatIndex(m.dims, coords)
	if err != nil {
		return nil, err
	}
	return m.At(idx)
}

// Set writes v at flat index idx. Writing the factory's ZERO clears the
// cell back to "absent" (the two are observably identical, but clearing
// keeps the sparse representation compact).
func (m *Matrix) Set(idx int, v *scalar.Scalar) error {
	if idx < 0 || idx >= m.Capacity() {
		return ErrOutOfRange
	}
	if _, ok := m.back.(*homogeneousBacking); ok {
		m.back = m.widenToTree()
	}
	if isZeroScalar(v) {
		m.back.set(idx, nil)
		return nil
	}
	m.back.set(idx, v)
	return nil
}

// SetCoords writes v at the given per-axis coordinates.
func (m *Matrix) SetCoords(coords []int, v *scalar.Scalar) error {
	idx, err := FlatIndex(m.dims, coords)
	if err != nil {
		return err
	}
	return m.Set(idx, v)
}

func (m *Matrix) widenToTree() backing {
	t := newTreeBacking()
	m.back.forEach(func(idx int, v *scalar.Scalar) bool {
		t.set(idx, v)
		return true
	})
	return t
}

// ForEach iterates every non-absent cell in an unspecified but stable (for
// a given backing) order. yield returning false stops iteration early.
func (m *Matrix) ForEach(yield func(idx int, v *scalar.Scalar) bool) {
	m.back.forEach(yield)
}

// Clone returns a deep copy sharing no mutable state with m (scalar cells
// themselves are immutable and safely shared).
func (m *Matrix) Clone() *Matrix {
	return &Matrix{dims: append(Dims(nil), m.dims...), factory: m.factory, back: m.back.clone()}
}

// NonZeroCount returns the number of cells not equal to ZERO.
func (m *Matrix) NonZeroCount() int { return m.back.nonZeroCount() }

func isZeroScalar(v *scalar.Scalar) bool {
	if v == nil {
		return true
	}
	if c, ok := v.IsNumConst(); ok {
		return c.IsZero()
	}
	if b, ok := v.IsBoolConst(); ok {
		return !b
	}
	return false
}

func sameFactory(a, b *Matrix) error {
	if a.factory != b.factory {
		return ErrFactoryMismatch
	}
	return nil
}

func requireNonNil(ms ...*Matrix) error {
	for _, m := range ms {
		if m == nil {
			return ErrNilMatrix
		}
	}
	return nil
}
