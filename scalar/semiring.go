package scalar

import "github.com/shopspring/decimal"

// TNormOp applies the Factory's configured tnorm (fuzzy conjunction) to two
// already-built numeric scalars a and b, building the corresponding gate
// (or folding it to a constant). In the Integer domain this is a
// zero-guarded minimum: if either side is the constant zero, the result is
// ZERO without building a MIN gate.
//
// TNormOp is "meet" in matrix-product terms (spec §4.2 dot/closure use it
// as the inner, row·column combining operator).
func (f *Factory) TNormOp(a, b *Scalar) (*Scalar, error) {
	if err := f.checkOwn(a, b); err != nil {
		return nil, err
	}
	if isZero(a) || isZero(b) {
		return f.Zero(), nil
	}
	switch f.opts.Domain {
	case Integer:
		return f.Min(a, b)
	case Fuzzy:
		return f.fuzzyTNorm(a, b)
	}
	return f.Min(a, b)
}

// TConormOp applies the Factory's configured tconorm (fuzzy disjunction).
// In the Integer domain this is a zero-guarded maximum: if either side is
// ZERO, the result is the other side.
//
// TConormOp is "join" in matrix-product terms (spec §4.2 dot/closure use it
// as the outer, row-accumulating operator).
func (f *Factory) TConormOp(a, b *Scalar) (*Scalar, error) {
	if err := f.checkOwn(a, b); err != nil {
		return nil, err
	}
	if isZero(a) {
		return b, nil
	}
	if isZero(b) {
		return a, nil
	}
	switch f.opts.Domain {
	case Integer:
		return f.Max(a, b)
	case Fuzzy:
		return f.fuzzyTConorm(a, b)
	}
	return f.Max(a, b)
}

// Meet is an alias for TNormOp, named for matrix-product call sites (spec
// §4.2's "meet(a,b) (inner op of matrix product)").
func (f *Factory) Meet(a, b *Scalar) (*Scalar, error) { return f.TNormOp(a, b) }

// Join is an alias for TConormOp, named for matrix-product call sites (spec
// §4.2's "join(a,b) (outer op)").
func (f *Factory) Join(a, b *Scalar) (*Scalar, error) { return f.TConormOp(a, b) }

func isZero(s *Scalar) bool {
	v, ok := s.IsNumConst()
	return ok && v.IsZero()
}

func isOne(s *Scalar) bool {
	v, ok := s.IsNumConst()
	return ok && v.Equal(decimal.NewFromInt(1))
}

func (f *Factory) fuzzyTNorm(a, b *Scalar) (*Scalar, error) {
	switch f.opts.TNorm {
	case Godel, AddMin:
		return f.Min(a, b)
	case Lukasiewicz:
		// max(0, a+b-1)
		sum, err := f.Plus(a, b)
		if err != nil {
			return nil, err
		}
		sum, err = f.Minus(sum, f.One())
		if err != nil {
			return nil, err
		}
		return f.Max(sum, f.Zero())
	case Product, MaxProduct:
		return f.Times(a, b)
	case Drastic:
		// if b=1 then a elif a=1 then b else 0
		if isOne(b) {
			return a, nil
		}
		if isOne(a) {
			return b, nil
		}
		aIsOne, err := f.Eq(a, f.One())
		if err != nil {
			return nil, err
		}
		bIsOne, err := f.Eq(b, f.One())
		if err != nil {
			return nil, err
		}
		inner, err := f.IteNum(aIsOne, b, f.Zero())
		if err != nil {
			return nil, err
		}
		return f.IteNum(bIsOne, a, inner)
	case Einstein:
		// (a*b) / (1 + (1-a)*(1-b))
		num, err := f.Times(a, b)
		if err != nil {
			return nil, err
		}
		oneMinusA, err := f.Minus(f.One(), a)
		if err != nil {
			return nil, err
		}
		oneMinusB, err := f.Minus(f.One(), b)
		if err != nil {
			return nil, err
		}
		prod, err := f.Times(oneMinusA, oneMinusB)
		if err != nil {
			return nil, err
		}
		denom, err := f.Plus(f.One(), prod)
		if err != nil {
			return nil, err
		}
		return f.Divide(num, denom)
	default:
		return f.Min(a, b)
	}
}

func (f *Factory) fuzzyTConorm(a, b *Scalar) (*Scalar, error) {
	switch f.opts.TNorm {
	case Godel, MaxProduct:
		return f.Max(a, b)
	case Lukasiewicz, AddMin:
		// min(a+b, 1)
		sum, err := f.Plus(a, b)
		if err != nil {
			return nil, err
		}
		return f.Min(sum, f.One())
	case Product:
		// a+b-a*b
		sum, err := f.Plus(a, b)
		if err != nil {
			return nil, err
		}
		prod, err := f.Times(a, b)
		if err != nil {
			return nil, err
		}
		return f.Minus(sum, prod)
	case Drastic:
		// dual of drastic tnorm: if b=0 then a elif a=0 then b else 1
		if isZero(b) {
			return a, nil
		}
		if isZero(a) {
			return b, nil
		}
		aIsZero, err := f.Eq(a, f.Zero())
		if err != nil {
			return nil, err
		}
		bIsZero, err := f.Eq(b, f.Zero())
		if err != nil {
			return nil, err
		}
		inner, err := f.IteNum(aIsZero, b, f.One())
		if err != nil {
			return nil, err
		}
		return f.IteNum(bIsZero, a, inner)
	case Einstein:
		// (a+b) / (1+a*b)
		num, err := f.Plus(a, b)
		if err != nil {
			return nil, err
		}
		prod, err := f.Times(a, b)
		if err != nil {
			return nil, err
		}
		denom, err := f.Plus(f.One(), prod)
		if err != nil {
			return nil, err
		}
		return f.Divide(num, denom)
	default:
		return f.Max(a, b)
	}
}

// ClampToUnit post-clamps a fuzzy-division result to [0,1] per spec §4.1
// ("divide(a,b) is post-clamped to min(·,1) when it lives inside a fuzzy
// relation context"). Callers of Divide that know the result feeds a fuzzy
// relation cell invoke this explicitly; Divide itself never clamps, since
// division is also used for plain numeric expressions outside a relation.
func (f *Factory) ClampToUnit(v *Scalar) (*Scalar, error) {
	if f.opts.Domain != Fuzzy {
		return v, nil
	}
	clamped, err := f.Min(v, f.One())
	if err != nil {
		return nil, err
	}
	return f.Max(clamped, f.Zero())
}
