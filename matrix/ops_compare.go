package matrix

import "github.com/relfind/wmf/scalar"

// unionIndices returns the set of flat indices present in either a or b.
func unionIndices(a, b *Matrix) []int {
	seen := make(map[int]bool)
	var idxs []int
	collect := func(idx int, _ *scalar.Scalar) bool {
		if !seen[idx] {
			seen[idx] = true
			idxs = append(idxs, idx)
		}
		return true
	}
	a.ForEach(collect)
	b.ForEach(collect)
	return idxs
}

// Eq builds the boolean scalar asserting A and B are cellwise equal (spec
// §4.2/§8 round-trip properties rely on this for model-equivalence tests).
func Eq(a, b *Matrix) (*scalar.Scalar, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	if !a.dims.Equal(b.dims) {
		return nil, ErrDimensionMismatch
	}
	if err := sameFactory(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	terms := make([]*scalar.Scalar, 0)
	for _, idx := range unionIndices(a, b) {
		av, _ := a.At(idx)
		bv, _ := b.At(idx)
		eq, err := f.Eq(av, bv)
		if err != nil {
			return nil, err
		}
		terms = append(terms, eq)
	}
	return f.And(terms...)
}

// Subset builds the boolean scalar asserting A ⊆ B: cellwise, A[i]≠0 ⇒
// (B[i]≠0 ∧ A[i]≤B[i]) (spec §4.2).
func Subset(a, b *Matrix) (*scalar.Scalar, error) {
	return cmpAggregate(a, b, func(f *scalar.Factory, av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		aNeq, err := f.Neq(av, f.Zero())
		if err != nil {
			return nil, err
		}
		bNeq, err := f.Neq(bv, f.Zero())
		if err != nil {
			return nil, err
		}
		leq, err := f.Leq(av, bv)
		if err != nil {
			return nil, err
		}
		rhs, err := f.And(bNeq, leq)
		if err != nil {
			return nil, err
		}
		notA, err := f.Not(aNeq)
		if err != nil {
			return nil, err
		}
		return f.Or(notA, rhs)
	})
}

// Leq builds the boolean scalar asserting A ≤ B cellwise (spec §4.2).
func Leq(a, b *Matrix) (*scalar.Scalar, error) {
	return cmpAggregate(a, b, func(f *scalar.Factory, av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		return f.Leq(av, bv)
	})
}

// Geq builds the boolean scalar asserting A ≥ B cellwise.
func Geq(a, b *Matrix) (*scalar.Scalar, error) {
	return cmpAggregate(a, b, func(f *scalar.Factory, av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		return f.Geq(av, bv)
	})
}

// Lt builds A < B: the weak Leq ordering plus at least one strictly-less
// cell (spec §4.2).
func Lt(a, b *Matrix) (*scalar.Scalar, error) {
	return strictOrder(a, b, func(f *scalar.Factory, av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		return f.Leq(av, bv)
	}, func(f *scalar.Factory, av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		return f.Lt(av, bv)
	})
}

// Gt builds A > B: the weak Geq ordering plus at least one strictly-greater
// cell (spec §4.2).
func Gt(a, b *Matrix) (*scalar.Scalar, error) {
	return strictOrder(a, b, func(f *scalar.Factory, av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		return f.Geq(av, bv)
	}, func(f *scalar.Factory, av, bv *scalar.Scalar) (*scalar.Scalar, error) {
		return f.Gt(av, bv)
	})
}

func cmpAggregate(a, b *Matrix, cell func(f *scalar.Factory, av, bv *scalar.Scalar) (*scalar.Scalar, error)) (*scalar.Scalar, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	if !a.dims.Equal(b.dims) {
		return nil, ErrDimensionMismatch
	}
	if err := sameFactory(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	terms := make([]*scalar.Scalar, 0)
	for _, idx := range unionIndices(a, b) {
		av, _ := a.At(idx)
		bv, _ := b.At(idx)
		t, err := cell(f, av, bv)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return f.And(terms...)
}

func strictOrder(a, b *Matrix,
	weak func(f *scalar.Factory, av, bv *scalar.Scalar) (*scalar.Scalar, error),
	strict func(f *scalar.Factory, av, bv *scalar.Scalar) (*scalar.Scalar, error),
) (*scalar.Scalar, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	if !a.dims.Equal(b.dims) {
		return nil, ErrDimensionMismatch
	}
	if err := sameFactory(a, b); err != nil {
		return nil, err
	}
	f := a.factory
	weakTerms := make([]*scalar.Scalar, 0)
	strictTerms := make([]*scalar.Scalar, 0)
	for _, idx := range unionIndices(a, b) {
		av, _ := a.At(idx)
		bv, _ := b.At(idx)
		w, err := weak(f, av, bv)
		if err != nil {
			return nil, err
		}
		s, err := strict(f, av, bv)
		if err != nil {
			return nil, err
		}
		weakTerms = append(weakTerms, w)
		strictTerms = append(strictTerms, s)
	}
	weakAll, err := f.And(weakTerms...)
	if err != nil {
		return nil, err
	}
	someStrict, err := f.Or(strictTerms...)
	if err != nil {
		return nil, err
	}
	return f.And(weakAll, someStrict)
}
