package matrix

import (
	"github.com/shopspring/decimal"

	"github.com/relfind/wmf/scalar"
)

// cellwise applies op to every index present in either a or b (absent
// reads as ZERO), building a result matrix of the same dims. Both operands
// must share dims and factory.
func cellwise(a, b *Matrix, op func(av, bv *scalar.Scalar) (*scalar.Scalar, error)) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	if !a.dims.Equal(b.dims) {
		return nil, ErrDimensionMismatch
	}
	if err := sameFactory(a, b); err != nil {
		return nil, err
	}
	out, err := New(a.dims, a.factory)
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
		av, _ := a.At(idx)
		bv, _ := b.At(idx)
		rv, err := op(av, bv)
		if err != nil {
			opErr = err
			return false
		}
		if err := out.Set(idx, rv); err != nil {
			opErr = err
			return false
		}
		return true
	}
	a.ForEach(func(idx int, v *scalar.Scalar) bool { return visit(idx) })
	if opErr != nil {
		return nil, opErr
	}
	b.ForEach(func(idx int, v *scalar.Scalar) bool { return visit(idx) })
	if opErr != nil {
		return nil, opErr
	}
	return out, nil
}

// Plus computes cellwise A+B: saturating add in the integer domain (capped
// at the factory's MaxWeight; no cap when MaxWeight is 0),
// min(A[i]+B[i], 1) in the fuzzy domain (spec §4.2).
func Plus(a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	return cellwise(a, b, func(av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		sum, err := f.Plus(av, bv)
		if err != nil {
			return nil, err
		}
		if f.Domain() == scalar.Fuzzy {
			return f.Min(sum, f.One())
		}
		if w := f.MaxWeight(); w > 0 {
			return f.Min(sum, f.NumConstant(decimal.NewFromInt(w)))
		}
		return sum, nil
	})
}

// Minus computes cellwise max(0, A[i]-B[i]) (spec §4.2).
func Minus(a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	return cellwise(a, b, func(av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		diff, err := f.Minus(av, bv)
		if err != nil {
			return nil, err
		}
		return f.Max(diff, f.Zero())
	})
}

// Product computes the Hadamard (cellwise) product A⊙B (spec §4.2):
// boolean×boolean uses And; mixed numeric/boolean uses "if b then n else
// 0"; numeric×numeric uses ordinary multiplication.
func Product(a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	return cellwise(a, b, func(av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		if av.IsBoolean() && bv.IsBoolean() {
			abool, err := boolSide(f, av)
			if err != nil {
				return nil, err
			}
			bbool, err := boolSide(f, bv)
			if err != nil {
				return nil, err
			}
			and, err := f.And(abool, bbool)
			if err != nil {
				return nil, err
			}
			return f.BinaryValueFromBool(and)
		}
		if av.IsBoolean() != bv.IsBoolean() {
			boolArm, numArm := av, bv
			if bv.IsBoolean() {
				boolArm, numArm = bv, av
			}
			bb, err := boolSide(f, boolArm)
			if err != nil {
				return nil, err
			}
			return f.IteNum(bb, numArm, f.Zero())
		}
		return f.Times(av, bv)
	})
}

// boolSide returns the boolean-valued facet of a scalar that may be a
// plain boolean gate, a BinaryValue, or (when used loosely) a {0,1}
// numeric scalar.
func boolSide(f *scalar.Factory, v *scalar.Scalar) (*scalar.Scalar, error) {
	if v.Kind() == scalar.KindBinaryValue {
		return v.BoolPart(), nil
	}
	if v.IsBoolean() {
		return v, nil
	}
	return f.Neq(v, f.Zero())
}

// Divide computes cellwise A[i]/B[i], with domain-dependent division by
// zero handling: constant division by zero is rejected at scalar
// construction time (scalar.ErrArithmetic); a variable denominator defers
// to the whole-circuit zero-guard built by package smt. Fuzzy results are
// clamped to [0,1].
func Divide(a, b *Matrix) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	return cellwise(a, b, func(av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		q, err := f.Divide(av, bv)
		if err != nil {
			return nil, err
		}
		if f.Domain() == scalar.Fuzzy {
			return f.ClampToUnit(q)
		}
		return q, nil
	})
}

// Scale multiplies every cell of a by the constant alpha.
func Scale(a *Matrix, alpha *scalar.Scalar) (*Matrix, error) {
	if err := requireNonNil(a); err != nil {
		return nil, err
	}
	f := a.factory
	out, err := New(a.dims, f)
	if err != nil {
		return nil, err
	}
	var opErr error
	a.ForEach(func(idx int, v *scalar.Scalar) bool {
		p, err := f.Times(v, alpha)
		if err != nil {
			opErr = err
			return false
		}
		opErr = out.Set(idx, p)
		return opErr == nil
	})
	if opErr != nil {
		return nil, opErr
	}
	return out, nil
}
