package scalar

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// labelSentinel anchors the fixed ZERO/ONE labels described in spec §3:
// "ZERO and ONE have the fixed labels −MAX+0 and −MAX+1". The boolean
// constants false and true take the next two fixed labels, −MAX+2 and
// −MAX+3. Primary variable labels are assigned upward from 0, so they never
// collide with these.
const labelSentinel = math.MaxInt64

// Factory is the single allocator of Scalar nodes for one translation. It
// hash-conses gates and constants so that two semantically identical
// constructions return the same *Scalar, and it owns the pluggable
// tnorm/tconorm/meet/join semiring used by package matrix.
//
// A Factory is not safe for concurrent use; per spec §5 the whole pipeline
// is single-threaded cooperative within one solve.
type Factory struct {
	opts FactoryOptions

	zero *Scalar
	one  *Scalar

	nextVarLabel int64

	boolConstTrue  *Scalar
	boolConstFalse *Scalar
	numConstIntern map[string]*Scalar
	gateIntern     map[string]*Scalar
}

// NewFactory constructs a Factory configured by opts.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		opts:           NewFactoryOptions(opts...),
		numConstIntern: make(map[string]*Scalar),
		gateIntern:     make(map[string]*Scalar),
	}
	f.boolConstFalse = &Scalar{label: -labelSentinel + 2, kind: KindBoolConst, factory: f, boolConst: false}
	f.boolConstTrue = &Scalar{label: -labelSentinel + 3, kind: KindBoolConst, factory: f, boolConst: true}
	f.zero = &Scalar{label: -labelSentinel + 0, kind: KindNumConst, factory: f, numConst: decimal.Zero}
	f.one = &Scalar{label: -labelSentinel + 1, kind: KindNumConst, factory: f, numConst: decimal.NewFromInt(1)}
	f.numConstIntern[f.zero.numConst.String()] = f.zero
	f.numConstIntern[f.one.numConst.String()] = f.one

	return f
}

// Domain reports the semiring domain this Factory computes over.
func (f *Factory) Domain() Domain { return f.opts.Domain }

// TNorm reports the fuzzy t-norm family this Factory computes over.
func (f *Factory) TNorm() TNorm { return f.opts.TNorm }

// MaxWeight reports the configured integer-domain upper bound, or 0 if
// unbounded.
func (f *Factory) MaxWeight() int64 { return f.opts.MaxWeight }

// Zero returns the canonical ZERO constant.
func (f *Factory) Zero() *Scalar { return f.zero }

// One returns the canonical ONE constant.
func (f *Factory) One() *Scalar { return f.one }

func (f *Factory) freshLabel() int64 {
	l := f.nextVarLabel
	f.nextVarLabel++
	return l
}

// PeekNextLabel returns the label the next freshLabel call will assign,
// without consuming it. Package bounds uses this to record the contiguous
// label range a relation's primary-variable allocation spans (spec §4.3
// "the per-relation range is recorded in vars").
func (f *Factory) PeekNextLabel() int64 { return f.nextVarLabel }

// checkOwn returns ErrDomainMismatch if any of ss was allocated by a
// different Factory.
func (f *Factory) checkOwn(ss ...*Scalar) error {
	for _, s := range ss {
		if s == nil {
			continue
		}
		if s.factory != f {
			return fmt.Errorf("scalar: factory %p does not own node %d: %w", f, s.label, ErrDomainMismatch)
		}
	}
	return nil
}

// roundFuzzy canonicalizes a decimal to the factory's configured decimal
// places using half-up rounding, per spec §4.1.
func (f *Factory) roundFuzzy(v decimal.Decimal) decimal.Decimal {
	if f.opts.Domain != Fuzzy {
		return v
	}
	return v.RoundHalfUp(f.opts.DecimalPlaces)
}

// BoolConstant returns the canonical boolean constant for b (interned).
func (f *Factory) BoolConstant(b bool) *Scalar {
	if b {
		return f.boolConstTrue
	}
	return f.boolConstFalse
}

// NumConstant returns the canonical numeric constant for v, rounded per the
// factory's decimal policy in the fuzzy domain and interned so repeated
// calls with an equal value share one node.
func (f *Factory) NumConstant(v decimal.Decimal) *Scalar {
	v = f.roundFuzzy(v)
	key := v.String()
	if s, ok := f.numConstIntern[key]; ok {
		return s
	}
	s := &Scalar{label: f.freshLabel(), kind: KindNumConst, factory: f, numConst: v}
	f.numConstIntern[key] = s
	return s
}

// NewBoolVar allocates a fresh boolean primary variable.
func (f *Factory) NewBoolVar() *Scalar {
	return &Scalar{label: f.freshLabel(), kind: KindBoolVar, factory: f, varID: f.nextVarLabel - 1}
}

// NewNumVar allocates a fresh numeric primary variable under the given
// constraint, optional per-variable maximum, and optional enumerated domain
// of allowed values (nil for either means "no extra restriction").
func (f *Factory) NewNumVar(constraint VarConstraint, maxValue *decimal.Decimal, allowed []decimal.Decimal) *Scalar {
	return &Scalar{
		label:         f.freshLabel(),
		kind:          KindNumVar,
		factory:       f,
		varID:         f.nextVarLabel - 1,
		constraint:    constraint,
		maxValue:      maxValue,
		allowedValues: allowed,
	}
}

func (f *Factory) internGate(key string, build func() *Scalar) *Scalar {
	if s, ok := f.gateIntern[key]; ok {
		return s
	}
	s := build()
	f.gateIntern[key] = s
	return s
}

func gateKey(kind Kind, op int, inputs []*Scalar, extra int64) string {
	s := fmt.Sprintf("%d/%d/%d:", kind, op, extra)
	for _, in := range inputs {
		s += fmt.Sprintf("%d,", in.label)
	}
	return s
}
