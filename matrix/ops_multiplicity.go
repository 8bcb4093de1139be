package matrix

import "github.com/relfind/wmf/scalar"

// presentIndicators returns, for every cell a stores explicitly (any cell
// that could be non-zero; literal-zero cells are never stored, see
// Matrix.Set), the boolean scalar asserting that cell is non-zero.
func presentIndicators(a *Matrix) ([]*scalar.Scalar, error) {
	f := a.factory
	indicators := make([]*scalar.Scalar, 0)
	var opErr error
	a.ForEach(func(_ int, v *scalar.Scalar) bool {
		ind, err := f.Neq(v, f.Zero())
		if err != nil {
			opErr = err
			return false
		}
		indicators = append(indicators, ind)
		return true
	})
	if opErr != nil {
		return nil, opErr
	}
	return indicators, nil
}

// Some builds the boolean scalar asserting some cell of a is non-zero: ∃ i.
// A[i] ≠ 0 (spec §4.2).
func Some(a *Matrix) (*scalar.Scalar, error) {
	if err := requireNonNil(a); err != nil {
		return nil, err
	}
	f := a.factory
	indicators, err := presentIndicators(a)
	if err != nil {
		return nil, err
	}
	return f.Or(indicators...)
}

// No builds the boolean scalar asserting every cell of a is zero: ∀ i. A[i]
// = 0 (spec §4.2).
func No(a *Matrix) (*scalar.Scalar, error) {
	some, err := Some(a)
	if err != nil {
		return nil, err
	}
	return a.factory.Not(some)
}

// atMostOne builds the boolean scalar asserting at most one of indicators
// holds, via pairwise mutual exclusion.
func atMostOne(f *scalar.Factory, indicators []*scalar.Scalar) (*scalar.Scalar, error) {
	if len(indicators) <= 1 {
		return f.BoolConstant(true), nil
	}
	terms := make([]*scalar.Scalar, 0, len(indicators)*(len(indicators)-1)/2)
	for i := 0; i < len(indicators); i++ {
		for j := i + 1; j < len(indicators); j++ {
			both, err := f.And(indicators[i], indicators[j])
			if err != nil {
				return nil, err
			}
			notBoth, err := f.Not(both)
			if err != nil {
				return nil, err
			}
			terms = append(terms, notBoth)
		}
	}
	return f.And(terms...)
}

// One builds the boolean scalar asserting |support(drop A)| = 1: exactly
// one cell of a is non-zero (spec §4.2).
func One(a *Matrix) (*scalar.Scalar, error) {
	if err := requireNonNil(a); err != nil {
		return nil, err
	}
	f := a.factory
	indicators, err := presentIndicators(a)
	if err != nil {
		return nil, err
	}
	some, err := f.Or(indicators...)
	if err != nil {
		return nil, err
	}
	atMost, err := atMostOne(f, indicators)
	if err != nil {
		return nil, err
	}
	return f.And(some, atMost)
}

// Lone builds the boolean scalar asserting |support(drop A)| ≤ 1 (spec
// §4.2).
func Lone(a *Matrix) (*scalar.Scalar, error) {
	if err := requireNonNil(a); err != nil {
		return nil, err
	}
	f := a.factory
	indicators, err := presentIndicators(a)
	if err != nil {
		return nil, err
	}
	return atMostOne(f, indicators)
}

// Sum accumulates the factory's +/accumulate over every cell of a, giving
// the fuzzy-sum cardinality reading (spec §4.2/§8 "#R=0.7 in fuzzy sum
// mode").
func Sum(a *Matrix) (*scalar.Scalar, error) {
	if err := requireNonNil(a); err != nil {
		return nil, err
	}
	f := a.factory
	terms := make([]*scalar.Scalar, 0)
	a.ForEach(func(_ int, v *scalar.Scalar) bool {
		terms = append(terms, v)
		return true
	})
	if len(terms) == 0 {
		return f.Zero(), nil
	}
	return f.Plus(terms...)
}

// Count accumulates the number of non-zero cells of a, regardless of
// domain, giving the integer-count cardinality reading (spec §4.2/§8 "#R=2
// in integer count mode").
func Count(a *Matrix) (*scalar.Scalar, error) {
	if err := requireNonNil(a); err != nil {
		return nil, err
	}
	f := a.factory
	indicators, err := presentIndicators(a)
	if err != nil {
		return nil, err
	}
	if len(indicators) == 0 {
		return f.Zero(), nil
	}
	terms := make([]*scalar.Scalar, 0, len(indicators))
	for _, ind := range indicators {
		bv, err := f.BinaryValueFromBool(ind)
		if err != nil {
			return nil, err
		}
		terms = append(terms, bv.NumPart())
	}
	return f.Plus(terms...)
}

// Broadcast builds a constant matrix of the given dims whose every cell
// equals value (spec §4.2/§3 "scalar broadcast to a constant matrix whose
// cells all equal the accumulated sum").
func Broadcast(dims Dims, f *scalar.Factory, value *scalar.Scalar) (*Matrix, error) {
	return NewHomogeneous(dims, f, value)
}
