package matrix

import "github.com/relfind/wmf/scalar"

// Intersection computes cellwise tnorm(A[i],B[i]) (spec §4.2).
func Intersection(a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	return cellwise(a, b, func(av, bv *scalar.Scalar) (*scalar.Scalar, error) { return f.TNormOp(av, bv) })
}

// Union computes cellwise tconorm(A[i],B[i]) (spec §4.2).
func Union(a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	return cellwise(a, b, func(av, bv *scalar.Scalar) (*scalar.Scalar, error) { return f.TConormOp(av, bv) })
}

// LeftIntersection is Intersection gated on the non-zero support of A only:
// where A[i]=0 the result is 0 regardless of B[i] (spec §4.2).
func LeftIntersection(a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	return cellwise(a, b, func(av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		t, err := f.TNormOp(av, bv)
		if err != nil {
			return nil, err
		}
		guard, err := f.Neq(av, f.Zero())
		if err != nil {
			return nil, err
		}
		return f.IteNum(guard, t, f.Zero())
	})
}

// RightIntersection is Intersection gated on the non-zero support of B only
// (dual of LeftIntersection).
func RightIntersection(a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	return cellwise(a, b, func(av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		t, err := f.TNormOp(av, bv)
		if err != nil {
			return nil, err
		}
		guard, err := f.Neq(bv, f.Zero())
		if err != nil {
			return nil, err
		}
		return f.IteNum(guard, t, f.Zero())
	})
}

// Difference computes, per spec §4.2: "A[i] ≠ 0 ⇒ A[i] − tnorm(A[i],B[i])";
// where A[i]=0 the result is 0.
func Difference(a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	return cellwise(a, b, func(av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		t, err := f.TNormOp(av, bv)
		if err != nil {
			return nil, err
		}
		sub, err := f.Minus(av, t)
		if err != nil {
			return nil, err
		}
		guard, err := f.Neq(av, f.Zero())
		if err != nil {
			return nil, err
		}
		return f.IteNum(guard, sub, f.Zero())
	})
}

// Override implements spec §4.2/§9's resolved open question: "for each
// row, if B's row is entirely zero, keep A's row; else take B's row", where
// "row" means every cell sharing the first axis coordinate and
// "entirely zero" means every one of B's cells in that row equals ZERO.
// Under that reading Override reduces to a cellwise choice gated on the
// row-zero predicate, computed once per row and reused across its columns.
func Override(a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	if !a.dims.Equal(b.dims) {
		return nil, ErrDimensionMismatch
	}
	if err := sameFactory(a, b); err != nil {
		return nil, err
	}
	if len(a.dims) == 0 {
		return nil, ErrBadShape
	}
	f := a.factory
	rows := a.dims[0]
	rowCap := a.Capacity() / rows
	// Determine, for each row, whether every one of B's cells in that row
	// is the ZERO constant (a purely structural check: only literal ZERO
	// constants count as "the row is zero", matching absent cells).
	rowIsZero := make([]bool, rows)
	for r := 0; r < rows; r++ {
		rowIsZero[r] = true
	}
	b.ForEach(func(idx int, v *scalar.Scalar) bool {
		if isZeroScalar(v) {
			return true
		}
		row := idx / rowCap
		rowIsZero[row] = false
		return true
	})

	out, err := New(a.dims, f)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	var opErr error
	visit := func(idx int) bool {
		if seen[idx] {
			return true
		}
		seen[idx] = true
		row := idx / rowCap
		av, _ := a.At(idx)
		bv, _ := b.At(idx)
		var rv *scalar.Scalar
		if rowIsZero[row] {
			rv = av
		} else {
			rv = bv
		}
		if err := out.Set(idx, rv); err != nil {
			opErr = err
			return false
		}
		return true
	}
	a.ForEach(func(idx int, v *scalar.Scalar) bool { return visit(idx) })
	if opErr == nil {
		b.ForEach(func(idx int, v *scalar.Scalar) bool { return visit(idx) })
	}
	if opErr != nil {
		return nil, opErr
	}
	return out, nil
}
