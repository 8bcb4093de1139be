package scalar

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// And builds an n-ary conjunction, folding constants and collapsing
// identities: a false arm short-circuits to false; true arms are dropped;
// zero remaining arms yields true; one remaining arm is returned unwrapped.
func (f *Factory) And(inputs ...*Scalar) (*Scalar, error) {
	if err := f.checkOwn(inputs...); err != nil {
		return nil, err
	}
	kept := make([]*Scalar, 0, len(inputs))
	for _, in := range inputs {
		if v, ok := in.IsBoolConst(); ok {
			if !v {
				return f.BoolConstant(false), nil
			}
			continue // drop `true` arms
		}
		kept = append(kept, in)
	}
	switch len(kept) {
	case 0:
		return f.BoolConstant(true), nil
	case 1:
		return kept[0], nil
	}
	key := gateKey(KindBoolGate, int(AND), kept, 0)
	return f.internGate(key, func() *Scalar {
		return &Scalar{label: f.freshLabel(), kind: KindBoolGate, factory: f, boolOp: AND, inputs: kept}
	}), nil
}

// Or builds an n-ary disjunction; dual of And.
func (f *Factory) Or(inputs ...*Scalar) (*Scalar, error) {
	if err := f.checkOwn(inputs...); err != nil {
		return nil, err
	}
	kept := make([]*Scalar, 0, len(inputs))
	for _, in := range inputs {
		if v, ok := in.IsBoolConst(); ok {
			if v {
				return f.BoolConstant(true), nil
			}
			continue
		}
		kept = append(kept, in)
	}
	switch len(kept) {
	case 0:
		return f.BoolConstant(false), nil
	case 1:
		return kept[0], nil
	}
	key := gateKey(KindBoolGate, int(OR), kept, 0)
	return f.internGate(key, func() *Scalar {
		return &Scalar{label: f.freshLabel(), kind: KindBoolGate, factory: f, boolOp: OR, inputs: kept}
	}), nil
}

// Not builds a negation, folding constants and fusing not(not x) = x.
func (f *Factory) Not(a *Scalar) (*Scalar, error) {
	if err := f.checkOwn(a); err != nil {
		return nil, err
	}
	if v, ok := a.IsBoolConst(); ok {
		return f.BoolConstant(!v), nil
	}
	if a.kind == KindBoolGate && a.boolOp == NOT {
		return a.inputs[0], nil
	}
	key := gateKey(KindBoolGate, int(NOT), []*Scalar{a}, 0)
	return f.internGate(key, func() *Scalar {
		return &Scalar{label: f.freshLabel(), kind: KindBoolGate, factory: f, boolOp: NOT, inputs: []*Scalar{a}}
	}), nil
}

// IteBool builds a boolean if-then-else, folding cond constants and the
// ite(c,a,a)=a identity.
func (f *Factory) IteBool(cond, a, b *Scalar) (*Scalar, error) {
	if err := f.checkOwn(cond, a, b); err != nil {
		return nil, err
	}
	if v, ok := cond.IsBoolConst(); ok {
		if v {
			return a, nil
		}
		return b, nil
	}
	if a == b {
		return a, nil
	}
	key := gateKey(KindBoolGate, int(ITEBool), []*Scalar{cond, a, b}, 0)
	return f.internGate(key, func() *Scalar {
		return &Scalar{label: f.freshLabel(), kind: KindBoolGate, factory: f, boolOp: ITEBool, inputs: []*Scalar{cond, a, b}}
	}), nil
}

// Plus builds an n-ary numeric sum, folding constant arms together and
// eliminating `+0` arms.
func (f *Factory) Plus(inputs ...*Scalar) (*Scalar, error) {
	if err := f.checkOwn(inputs...); err != nil {
		return nil, err
	}
	sum := decimal.Zero
	haveConst := false
	kept := make([]*Scalar, 0, len(inputs))
	for _, in := range inputs {
		if v, ok := in.IsNumConst(); ok {
			sum = sum.Add(v)
			haveConst = true
			continue
		}
		kept = append(kept, in)
	}
	if haveConst && !sum.IsZero() {
		kept = append(kept, f.NumConstant(sum))
	}
	switch len(kept) {
	case 0:
		return f.Zero(), nil
	case 1:
		return kept[0], nil
	}
	key := gateKey(KindNumAritGate, int(PLUS), kept, 0)
	return f.internGate(key, func() *Scalar {
		return &Scalar{label: f.freshLabel(), kind: KindNumAritGate, factory: f, aritOp: PLUS, inputs: kept}
	}), nil
}

// Minus builds a binary subtraction a-b, folding constants and eliminating
// `-0`.
func (f *Factory) Minus(a, b *Scalar) (*Scalar, error) {
	if err := f.checkOwn(a, b); err != nil {
		return nil, err
	}
	if va, ok := a.IsNumConst(); ok {
		if vb, ok2 := b.IsNumConst(); ok2 {
			return f.NumConstant(va.Sub(vb)), nil
		}
	}
	if vb, ok := b.IsNumConst(); ok && vb.IsZero() {
		return a, nil
	}
	key := gateKey(KindNumAritGate, int(MINUS), []*Scalar{a, b}, 0)
	return f.internGate(key, func() *Scalar {
		return &Scalar{label: f.freshLabel(), kind: KindNumAritGate, factory: f, aritOp: MINUS, inputs: []*Scalar{a, b}}
	}), nil
}

// Times builds an n-ary numeric product, folding constants, eliminating
// `*1` arms and short-circuiting to ZERO if any arm is the constant zero.
func (f *Factory) Times(inputs ...*Scalar) (*Scalar, error) {
	if err := f.checkOwn(inputs...); err != nil {
		return nil, err
	}
	prod := decimal.NewFromInt(1)
	haveConst := false
	kept := make([]*Scalar, 0, len(inputs))
	for _, in := range inputs {
		if v, ok := in.IsNumConst(); ok {
			if v.IsZero() {
				return f.Zero(), nil
			}
			prod = prod.Mul(v)
			haveConst = true
			continue
		}
		kept = append(kept, in)
	}
	if haveConst && !prod.Equal(decimal.NewFromInt(1)) {
		kept = append(kept, f.NumConstant(prod))
	}
	switch len(kept) {
	case 0:
		return f.One(), nil
	case 1:
		return kept[0], nil
	}
	key := gateKey(KindNumAritGate, int(TIMES), kept, 0)
	return f.internGate(key, func() *Scalar {
		return &Scalar{label: f.freshLabel(), kind: KindNumAritGate, factory: f, aritOp: TIMES, inputs: kept}
	}), nil
}

// Divide builds a/b. Constant division by the constant zero fails with
// ErrArithmetic (spec §4.1); division by a variable denominator is left as
// a gate, and the whole-circuit division-by-zero guard (spec §4.1/§4.5) is
// the caller's responsibility (see package smt).
func (f *Factory) Divide(a, b *Scalar) (*Scalar, error) {
	if err := f.checkOwn(a, b); err != nil {
		return nil, err
	}
	if vb, ok := b.IsNumConst(); ok {
		if vb.IsZero() {
			return nil, fmt.Errorf("scalar: constant division by zero: %w", ErrArithmetic)
		}
		if va, ok2 := a.IsNumConst(); ok2 {
			return f.NumConstant(va.DivRound(vb, f.opts.DecimalPlaces)), nil
		}
		if vb.Equal(decimal.NewFromInt(1)) {
			return a, nil
		}
	}
	key := gateKey(KindNumAritGate, int(DIV), []*Scalar{a, b}, 0)
	return f.internGate(key, func() *Scalar {
		return &Scalar{label: f.freshLabel(), kind: KindNumAritGate, factory: f, aritOp: DIV, inputs: []*Scalar{a, b}}
	}), nil
}

// Mod builds a%b. A constant zero modulus is rejected outright per spec
// §4.2 ("mod by zero is rejected as TranslationFault::Arithmetic").
func (f *Factory) Mod(a, b *Scalar) (*Scalar, error) {
	if err := f.checkOwn(a, b); err != nil {
		return nil, err
	}
	if vb, ok := b.IsNumConst(); ok {
		if vb.IsZero() {
			return nil, fmt.Errorf("scalar: modulo by zero: %w", ErrArithmetic)
		}
		if va, ok2 := a.IsNumConst(); ok2 {
			_, rem := va.QuoRem(vb, 0)
			return f.NumConstant(rem), nil
		}
	}
	key := gateKey(KindNumAritGate, int(MOD), []*Scalar{a, b}, 0)
	return f.internGate(key, func() *Scalar {
		return &Scalar{label: f.freshLabel(), kind: KindNumAritGate, factory: f, aritOp: MOD, inputs: []*Scalar{a, b}}
	}), nil
}

// Min builds min(a,b), folding constants and collapsing min(a,a)=a.
func (f *Factory) Min(a, b *Scalar) (*Scalar, error) { return f.choice(MIN, a, b, nil) }

// Max builds max(a,b), folding constants and collapsing max(a,a)=a.
func (f *Factory) Max(a, b *Scalar) (*Scalar, error) { return f.choice(MAX, a, b, nil) }

// IteNum builds a numeric if-then-else, folding cond constants and the
// ite(c,a,a)=a identity.
func (f *Factory) IteNum(cond, a, b *Scalar) (*Scalar, error) {
	if err := f.checkOwn(cond); err != nil {
		return nil, err
	}
	if v, ok := cond.IsBoolConst(); ok {
		if v {
			return a, nil
		}
		return b, nil
	}
	if a == b {
		return a, nil
	}
	return f.choice(ITENum, a, b, cond)
}

func (f *Factory) choice(op ChoiceOp, a, b, cond *Scalar) (*Scalar, error) {
	if err := f.checkOwn(a, b, cond); err != nil {
		return nil, err
	}
	if op != ITENum {
		if a == b {
			return a, nil
		}
		if va, ok := a.IsNumConst(); ok {
			if vb, ok2 := b.IsNumConst(); ok2 {
				if op == MIN {
					if va.LessThan(vb) {
						return a, nil
					}
					return b, nil
				}
				if va.GreaterThan(vb) {
					return a, nil
				}
				return b, nil
			}
		}
	}
	ins := []*Scalar{a, b}
	extra := int64(-1)
	if cond != nil {
		extra = cond.label
	}
	key := gateKey(KindNumChoiceGate, int(op), ins, extra)
	return f.internGate(key, func() *Scalar {
		return &Scalar{label: f.freshLabel(), kind: KindNumChoiceGate, factory: f, choiceOp: op, inputs: ins, cond: cond}
	}), nil
}

// Neg builds -a, fusing neg(neg x) = x and folding constants.
func (f *Factory) Neg(a *Scalar) (*Scalar, error) { return f.unary(NEG, a) }

// Abs builds |a|, fusing abs(abs x) = abs x and folding constants.
func (f *Factory) Abs(a *Scalar) (*Scalar, error) { return f.unary(ABS, a) }

// Sgn builds sgn(a) in {-1,0,1}, fusing sgn(sgn x) = sgn x and folding
// constants.
func (f *Factory) Sgn(a *Scalar) (*Scalar, error) { return f.unary(SGN, a) }

func (f *Factory) unary(op UnaryOp, a *Scalar) (*Scalar, error) {
	if err := f.checkOwn(a); err != nil {
		return nil, err
	}
	if v, ok := a.IsNumConst(); ok {
		switch op {
		case NEG:
			return f.NumConstant(v.Neg()), nil
		case ABS:
			return f.NumConstant(v.Abs()), nil
		case SGN:
			switch v.Sign() {
			case 0:
				return f.Zero(), nil
			case 1:
				return f.One(), nil
			default:
				return f.NumConstant(decimal.NewFromInt(-1)), nil
			}
		}
	}
	if a.kind == KindNumUnaryGate && a.unaryOp == op && (op == NEG || op == ABS || op == SGN) {
		if op == NEG {
			return a.inputs[0], nil // neg(neg x) = x
		}
		return a, nil // abs(abs x)=abs x ; sgn(sgn x)=sgn x
	}
	key := gateKey(KindNumUnaryGate, int(op), []*Scalar{a}, 0)
	return f.internGate(key, func() *Scalar {
		return &Scalar{label: f.freshLabel(), kind: KindNumUnaryGate, factory: f, unaryOp: op, inputs: []*Scalar{a}}
	}), nil
}

// Eq, Neq, Lt, Leq, Gt, Geq build boolean-valued comparisons of two
// scalars, folding constant/constant comparisons directly to a boolean
// constant.
func (f *Factory) Eq(a, b *Scalar) (*Scalar, error)  { return f.cmp(EQ, a, b) }
func (f *Factory) Neq(a, b *Scalar) (*Scalar, error) { return f.cmp(NEQ, a, b) }
func (f *Factory) Lt(a, b *Scalar) (*Scalar, error)  { return f.cmp(LT, a, b) }
func (f *Factory) Leq(a, b *Scalar) (*Scalar, error) { return f.cmp(LEQ, a, b) }
func (f *Factory) Gt(a, b *Scalar) (*Scalar, error)  { return f.cmp(GT, a, b) }
func (f *Factory) Geq(a, b *Scalar) (*Scalar, error) { return f.cmp(GEQ, a, b) }

func (f *Factory) cmp(op CmpOp, a, b *Scalar) (*Scalar, error) {
	if err := f.checkOwn(a, b); err != nil {
		return nil, err
	}
	if a == b {
		switch op {
		case EQ, LEQ, GEQ:
			return f.BoolConstant(true), nil
		case NEQ, LT, GT:
			return f.BoolConstant(false), nil
		}
	}
	if va, ok := a.IsNumConst(); ok {
		if vb, ok2 := b.IsNumConst(); ok2 {
			var res bool
			switch op {
			case EQ:
				res = va.Equal(vb)
			case NEQ:
				res = !va.Equal(vb)
			case LT:
				res = va.LessThan(vb)
			case LEQ:
				res = va.LessThanOrEqual(vb)
			case GT:
				res = va.GreaterThan(vb)
			case GEQ:
				res = va.GreaterThanOrEqual(vb)
			}
			return f.BoolConstant(res), nil
		}
	}
	key := gateKey(KindCmpGate, int(op), []*Scalar{a, b}, 0)
	return f.internGate(key, func() *Scalar {
		return &Scalar{label: f.freshLabel(), kind: KindCmpGate, factory: f, cmpOp: op, inputs: []*Scalar{a, b}}
	}), nil
}

// BinaryValueFromBool builds a BinaryValue pairing boolScalar with a
// numeric side equal to ite(boolScalar, 1, 0), preserving the spec §3
// invariant `num = if bool then 1 else 0`.
func (f *Factory) BinaryValueFromBool(boolScalar *Scalar) (*Scalar, error) {
	if err := f.checkOwn(boolScalar); err != nil {
		return nil, err
	}
	num, err := f.IteNum(boolScalar, f.One(), f.Zero())
	if err != nil {
		return nil, err
	}
	return &Scalar{label: f.freshLabel(), kind: KindBinaryValue, factory: f, numPart: num, boolPart: boolScalar}, nil
}

// BinaryValueFromNum builds a BinaryValue pairing a {0,1}-valued numeric
// scalar with its boolean side num != 0.
func (f *Factory) BinaryValueFromNum(numScalar *Scalar) (*Scalar, error) {
	if err := f.checkOwn(numScalar); err != nil {
		return nil, err
	}
	b, err := f.Neq(numScalar, f.Zero())
	if err != nil {
		return nil, err
	}
	return &Scalar{label: f.freshLabel(), kind: KindBinaryValue, factory: f, numPart: numScalar, boolPart: b}, nil
}
