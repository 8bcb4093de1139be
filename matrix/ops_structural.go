package matrix

import (
	"github.com/relfind/wmf/scalar"
	"github.com/shopspring/decimal"
)

// Cross computes the Kronecker product A⊗B (spec §4.2): the result's dims
// are A's dims followed by B's dims, its cell at the concatenated
// coordinate (i,j) is tnorm(A[i],B[j]) in the fuzzy domain or the ordinary
// product A[i]*B[j] elsewhere. Row-major flattening of the concatenated
// dims already gives the flat index i·capacity(B)+j the spec names.
func Cross(a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	if err := sameFactory(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	dims := append(append(Dims(nil), a.dims...), b.dims...)
	out, err := New(dims, f)
	if err != nil {
		return nil, err
	}
	capB := b.Capacity()
	var opErr error
	a.ForEach(func(i int, av *scalar.Scalar) bool {
		b.ForEach(func(j int, bv *scalar.Scalar) bool {
			var cell *scalar.Scalar
			var cErr error
			if f.Domain() == scalar.Fuzzy {
				cell, cErr = f.TNormOp(av, bv)
			} else {
				cell, cErr = f.Times(av, bv)
			}
			if cErr != nil {
				opErr = cErr
				return false
			}
			if err := out.Set(i*capB+j, cell); err != nil {
				opErr = err
				return false
			}
			return true
		})
		return opErr == nil
	})
	if opErr != nil {
		return nil, opErr
	}
	return out, nil
}

// Transpose permutes the last two dimensions of a, leaving any leading axes
// untouched (spec §4.2: "by index permutation of the last two dimensions").
// For an ordinary binary relation (arity 2) this is the classic transpose.
func Transpose(a *Matrix) (*Matrix, error) {
	if err := requireNonNil(a); err != nil {
		return nil, err
	}
	if len(a.dims) < 2 {
		return nil, ErrNotSquare
	}
	n := len(a.dims)
	dims := append(Dims(nil), a.dims...)
	dims[n-2], dims[n-1] = dims[n-1], dims[n-2]
	out, err := New(dims, a.factory)
	if err != nil {
		return nil, err
	}
	var opErr error
	a.ForEach(func(idx int, v *scalar.Scalar) bool {
		coords := Coords(a.dims, idx)
		coords[n-2], coords[n-1] = coords[n-1], coords[n-2]
		newIdx, err := FlatIndex(dims, coords)
		if err != nil {
			opErr = err
			return false
		}
		if err := out.Set(newIdx, v); err != nil {
			opErr = err
			return false
		}
		return true
	})
	if opErr != nil {
		return nil, opErr
	}
	return out, nil
}

// Domain restricts a to the rows whose first-axis coordinate i has v[i] !=
// 0 (v is a unary vector over the same universe as a's first axis); spec
// §4.2 "domain(A,v): restrict to rows... whose last-dim index i has v[i] ≠
// 0" read against the first axis of A.
func Domain(a, v *Matrix) (*Matrix, error) {
	return restrictAxis(a, v, 0)
}

// Range restricts a to the columns whose last-axis coordinate i has v[i] !=
// 0 (spec §4.2).
func Range(a, v *Matrix) (*Matrix, error) {
	return restrictAxis(a, v, len(a.dims)-1)
}

func restrictAxis(a, v *Matrix, axis int) (*Matrix, error) {
	if err := requireNonNil(a, v); err != nil {
		return nil, err
	}
	if err := sameFactory(a, v); err != nil {
		return nil, err
	}
	if axis < 0 || axis >= len(a.dims) {
		return nil, ErrDimensionMismatch
	}
	out, err := New(a.dims, a.factory)
	if err != nil {
		return nil, err
	}
	var opErr error
	a.ForEach(func(idx int, av *scalar.Scalar) bool {
		coords := Coords(a.dims, idx)
		vv, err := v.At(coords[axis])
		if err != nil {
			opErr = err
			return false
		}
		neq, err := a.factory.Neq(vv, a.factory.Zero())
		if err != nil {
			opErr = err
			return false
		}
		if bv, ok := neq.IsBoolConst(); ok {
			if bv {
				opErr = out.Set(idx, av)
			}
			return opErr == nil
		}
		guarded, err := a.factory.IteNum(neq, av, a.factory.Zero())
		if err != nil {
			opErr = err
			return false
		}
		opErr = out.Set(idx, guarded)
		return opErr == nil
	})
	if opErr != nil {
		return nil, opErr
	}
	return out, nil
}

// Project selects and reorders axes of a according to columns (one entry
// per result axis, each an index into a's current axes). Result cells that
// collapse from more than one source tuple (because columns repeats or
// drops an axis) are combined with the factory's tconorm (join), matching
// the "non-constant columns iterate... with a guard formula" accumulation
// spec §4.2 describes at the AST level.
func Project(a *Matrix, columns []int) (*Matrix, error) {
	if err := requireNonNil(a); err != nil {
		return nil, err
	}
	dims := make(Dims, len(columns))
	for i, col := range columns {
		if col < 0 || col >= len(a.dims) {
			return nil, ErrBadColumns
		}
		dims[i] = a.dims[col]
	}
	f := a.factory
	out, err := New(dims, f)
	if err != nil {
		return nil, err
	}
	var opErr error
	a.ForEach(func(idx int, av *scalar.Scalar) bool {
		coords := Coords(a.dims, idx)
		newCoords := make([]int, len(columns))
		for i, col := range columns {
			newCoords[i] = coords[col]
		}
		newIdx, err := FlatIndex(dims, newCoords)
		if err != nil {
			opErr = err
			return false
		}
		existing, err := out.At(newIdx)
		if err != nil {
			opErr = err
			return false
		}
		combined, err := f.TConormOp(existing, av)
		if err != nil {
			opErr = err
			return false
		}
		if err := out.Set(newIdx, combined); err != nil {
			opErr = err
			return false
		}
		return true
	})
	if opErr != nil {
		return nil, opErr
	}
	return out, nil
}

// KhatriRao computes the column-wise Kronecker product of two square n×n
// matrices (spec §4.2): result is an (n*n)×n matrix whose cell at
// (i*n+k, j) is tnorm(A[i,j], B[k,j]) in the fuzzy domain, A[i,j]*B[k,j]
// otherwise.
func KhatriRao(a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	if err := sameFactory(a, b); err != nil {
		return nil, err
	}
	if len(a.dims) != 2 || len(b.dims) != 2 || a.dims[0] != a.dims[1] || b.dims[0] != b.dims[1] {
		return nil, ErrNotSquare
	}
	if a.dims[1] != b.dims[1] {
		return nil, ErrDimensionMismatch
	}
	n := a.dims[0]
	f := a.factory
	out, err := New(Dims{n * n, n}, f)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				av, err := a.AtCoords([]int{i, j})
				if err != nil {
					return nil, err
				}
				bv, err := b.AtCoords([]int{k, j})
				if err != nil {
					return nil, err
				}
				var cell *scalar.Scalar
				if f.Domain() == scalar.Fuzzy {
					cell, err = f.TNormOp(av, bv)
				} else {
					cell, err = f.Times(av, bv)
				}
				if err != nil {
					return nil, err
				}
				if err := out.SetCoords([]int{i*n + k, j}, cell); err != nil {
					return nil, err
				}
			}
		}
	}
	return out, nil
}

// Choice computes cellwise ite(c, A[i], B[i]) for a single shared boolean
// condition c (spec §4.2).
func Choice(c *scalar.Scalar, a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	return cellwise(a, b, func(av, bv *scalar.Scalar) (*scalar.Scalar, error) { return f.IteNum(c, av, bv) })
}

// AlphaCut returns {i | A[i] >= alpha} as a BinaryMatrix (spec §4.2).
func AlphaCut(a *Matrix, alpha decimal.Decimal) (*BinaryMatrix, error) {
	if err := requireNonNil(a); err != nil {
		return nil, err
	}
	f := a.factory
	alphaScalar := f.NumConstant(alpha)
	out, err := New(a.dims, f)
	if err != nil {
		return nil, err
	}
	var opErr error
	a.ForEach(func(idx int, v *scalar.Scalar) bool {
		geq, err := f.Geq(v, alphaScalar)
		if err != nil {
			opErr = err
			return false
		}
		bv, err := f.BinaryValueFromBool(geq)
		if err != nil {
			opErr = err
			return false
		}
		opErr = out.Set(idx, bv)
		return opErr == nil
	})
	if opErr != nil {
		return nil, opErr
	}
	return &BinaryMatrix{Matrix: out}, nil
}
