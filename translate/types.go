package translate

import (
	"github.com/relfind/wmf/matrix"
	"github.com/relfind/wmf/scalar"
)

// ValueKind tags which field of a Value is meaningful, mirroring the
// tagged-struct pattern package scalar and package relast already use.
type ValueKind int

const (
	// RelationValue holds a relation expression or a numeric expression
	// represented as a matrix (spec §4.4 "a numeric expression
	// (represented as a matrix)").
	RelationValue ValueKind = iota
	// FormulaValue holds a boolean-kind scalar, the result of a formula
	// node.
	FormulaValue
)

// Value is the result of translating one relast.Node.
type Value struct {
	Kind ValueKind
	Mat  *matrix.Matrix
	Bool *scalar.Scalar
}

func relValue(m *matrix.Matrix) Value { return Value{Kind: RelationValue, Mat: m} }
func boolValue(s *scalar.Scalar) Value { return Value{Kind: FormulaValue, Bool: s} }

// Polarity records which quantifier accumulator a formula is being
// translated under (spec §3 "Environment (C4)"). It starts ALL and flips
// on entry to a negation.
type Polarity int

const (
	PolarityAll Polarity = iota
	PolaritySome
)

// Flip returns the opposite polarity.
func (p Polarity) Flip() Polarity {
	if p == PolarityAll {
		return PolaritySome
	}
	return PolarityAll
}

// frame is one stack level of the environment: the declaration bindings
// visible at this nesting depth, and the polarity in effect.
type frame struct {
	bindings map[string]*matrix.Matrix
	polarity Polarity
}

// Env is the stack of frames translate.Translator consults for variable
// lookups and quantifier polarity (spec §3 "Env = stack of frames; frame =
// map Variable → Matrix ∪ {polarity}").
type Env struct {
	frames []*frame
}

// NewEnv returns an Env with a single empty ALL-polarity frame, the state
// a translation starts from.
func NewEnv() *Env {
	return &Env{frames: []*frame{{bindings: map[string]*matrix.Matrix{}, polarity: PolarityAll}}}
}

// Polarity reports the polarity of the innermost frame.
func (e *Env) Polarity() Polarity {
	return e.frames[len(e.frames)-1].polarity
}

// Lookup searches frames from innermost to outermost for name.
func (e *Env) Lookup(name string) (*matrix.Matrix, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if m, ok := e.frames[i].bindings[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// PushBindings pushes a new frame binding the given declarations, carrying
// forward the current polarity. Pair with PopFrame.
func (e *Env) PushBindings(bindings map[string]*matrix.Matrix) {
	e.frames = append(e.frames, &frame{bindings: bindings, polarity: e.Polarity()})
}

// PushFlippedPolarity pushes a frame with no new bindings and the opposite
// polarity of the current frame (spec §4.4 "on entry to NOT, the
// environment flips polarity on its top frame... restored on exit").
func (e *Env) PushFlippedPolarity() {
	e.frames = append(e.frames, &frame{bindings: map[string]*matrix.Matrix{}, polarity: e.Polarity().Flip()})
}

// PopFrame removes the innermost frame.
func (e *Env) PopFrame() {
	e.frames = e.frames[:len(e.frames)-1]
}

// freeVarBindings returns the currently bound values for the given variable
// names, in the same order, used to build a cache key for a node whose free
// variables are names.
func (e *Env) freeVarBindings(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		if m, ok := e.Lookup(n); ok {
			out[i] = n + "=" + matrixIdentity(m)
		} else {
			out[i] = n + "=?"
		}
	}
	return out
}

// matrixIdentity returns a stable identity string for a matrix value
// suitable for cache-key composition. Matrices produced by translate are
// never mutated after being bound, so the pointer identity is sufficient.
func matrixIdentity(m *matrix.Matrix) string {
	return ptrString(m)
}
