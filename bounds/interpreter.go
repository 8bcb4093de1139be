package bounds

import (
	"github.com/google/uuid"

	"github.com/relfind/wmf/matrix"
	"github.com/relfind/wmf/scalar"
)

// VarRange records the contiguous span of scalar labels consumed while
// allocating one relation's primary variables (spec §4.3 "the per-relation
// range is recorded in vars"; spec §3 "VarMap R → range of primary-variable
// labels").
type VarRange struct {
	Start int64 // inclusive
	End   int64 // exclusive
}

// Interpreter is the leaf interpreter (spec component C3): given Bounds and
// a Factory, it allocates every relation's primary variables once at
// construction and answers Interpret/InterpretConst thereafter without
// further mutation.
type Interpreter struct {
	sessionID uuid.UUID
	bounds    Bounds
	factory   *scalar.Factory
	vars      map[RelationID]VarRange
	rel       map[RelationID]*matrix.Matrix
	universe *matrix.Matrix // UNIV: unary relation holding every atom
	identity *matrix.Matrix // IDEN: binary identity relation
	none     *matrix.Matrix // NONE: empty relation (arity fixed at 2, spec's canonical NONE)
	ints     *matrix.Matrix // INTS: unary relation holding the integer atoms
}

// New builds an Interpreter for b, allocating one fresh primary variable
// per upper-bound tuple index of every relation, except the lower-bound
// tuples of a non-quantitative relation, which hold the constant ONE and
// get no variable (spec §4.3). Allocation
// order is deterministic: relations in sorted RelationID order, tuples in
// ascending flat-index order within each relation, matching the
// label-assignment ordering spec §5 requires.
func New(b Bounds, f *scalar.Factory) (*Interpreter, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	in := &Interpreter{
		sessionID: uuid.New(),
		bounds:    b,
		factory:   f,
		vars:      make(map[RelationID]VarRange, len(b.Relations)),
		rel:       make(map[RelationID]*matrix.Matrix, len(b.Relations)),
	}
	for _, id := range b.SortedRelationIDs() {
		m, vr, err := in.interpretRelation(b.Relations[id])
		if err != nil {
			return nil, err
		}
		in.rel[id] = m
		in.vars[id] = vr
	}
	var err error
	in.universe, err = canonicalUniverse(b.UniverseSize, f)
	if err != nil {
		return nil, err
	}
	in.identity, err = canonicalIdentity(b.UniverseSize, f)
	if err != nil {
		return nil, err
	}
	in.none, err = matrix.New(matrix.Dims{b.UniverseSize, b.UniverseSize}, f)
	if err != nil {
		return nil, err
	}
	in.ints, err = canonicalInts(b.UniverseSize, b.IntAtoms, f)
	if err != nil {
		return nil, err
	}
	return in, nil
}

func (in *Interpreter) interpretRelation(rb RelationBounds) (*matrix.Matrix, VarRange, error) {
	f := in.factory
	dims := make(matrix.Dims, rb.Arity)
	for i := range dims {
		dims[i] = in.bounds.UniverseSize
	}
	m, err := matrix.New(dims, f)
	if err != nil {
		return nil, VarRange{}, err
	}

	start := f.PeekNextLabel()
	for _, idx := range rb.Upper.Sorted() {
		var cell *scalar.Scalar
		switch {
		case rb.Lower.Contains(idx) && !rb.Quantitative:
			cell = f.One()
		case rb.Lower.Contains(idx) && rb.Quantitative:
			cell = f.NewNumVar(scalar.NonZeroVar, nil, nil)
		case rb.Quantitative:
			cell = f.NewNumVar(scalar.FreeVar, nil, nil)
		default:
			cell, err = f.BinaryValueFromBool(f.NewBoolVar())
			if err != nil {
				return nil, VarRange{}, err
			}
		}
		if err := m.Set(idx, cell); err != nil {
			return nil, VarRange{}, err
		}
	}
	end := f.PeekNextLabel()
	return m, VarRange{Start: start, End: end}, nil
}

func canonicalUniverse(n int, f *scalar.Factory) (*matrix.Matrix, error) {
	return matrix.NewHomogeneous(matrix.Dims{n}, f, f.One())
}

func canonicalIdentity(n int, f *scalar.Factory) (*matrix.Matrix, error) {
	m, err := matrix.New(matrix.Dims{n, n}, f)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := m.SetCoords([]int{i, i}, f.One()); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func canonicalInts(n int, intAtoms IndexSet, f *scalar.Factory) (*matrix.Matrix, error) {
	m, err := matrix.New(matrix.Dims{n}, f)
	if err != nil {
		return nil, err
	}
	for idx := range intAtoms {
		if err := m.Set(idx, f.One()); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Interpret returns the matrix realizing relation id (spec §4.3
// "interpret(R) returns a matrix ... populated per §3").
func (in *Interpreter) Interpret(id RelationID) (*matrix.Matrix, error) {
	m, ok := in.rel[id]
	if !ok {
		return nil, ErrUnknownRelation
	}
	return m, nil
}

// InterpretUniv returns the canonical UNIV constant: the unary relation
// holding every atom of the universe (spec §4.3).
func (in *Interpreter) InterpretUniv() *matrix.Matrix { return in.universe }

// InterpretIden returns the canonical IDEN constant: the identity relation
// over the universe (spec §4.3).
func (in *Interpreter) InterpretIden() *matrix.Matrix { return in.identity }

// InterpretNone returns the canonical NONE constant: the empty binary
// relation (spec §4.3).
func (in *Interpreter) InterpretNone() *matrix.Matrix { return in.none }

// InterpretInts returns the canonical INTS constant: the unary relation
// holding the universe's integer atoms (spec §4.3).
func (in *Interpreter) InterpretInts() *matrix.Matrix { return in.ints }

// InterpretConstInt returns a matrix of the given dims broadcasting the
// constant c over every cell (spec §4.3 "interpret(ConstInt c) returns a
// constant matrix of value c broadcast over the full universe").
func (in *Interpreter) InterpretConstInt(dims matrix.Dims, c *scalar.Scalar) (*matrix.Matrix, error) {
	return matrix.NewHomogeneous(dims, in.factory, c)
}

// VarRange returns the label range allocated to relation id's primary
// variables (spec §3 VarMap).
func (in *Interpreter) VarRange(id RelationID) (VarRange, error) {
	vr, ok := in.vars[id]
	if !ok {
		return VarRange{}, ErrUnknownRelation
	}
	return vr, nil
}

// Bounds returns the Bounds this Interpreter was built from.
func (in *Interpreter) Bounds() Bounds { return in.bounds }

// Factory returns the scalar.Factory this Interpreter allocates into.
func (in *Interpreter) Factory() *scalar.Factory { return in.factory }

// SessionID identifies this Interpreter's owning translation for log
// correlation and LastSolve bookkeeping (spec §5 "process-wide 'last
// solved' handle").
func (in *Interpreter) SessionID() uuid.UUID { return in.sessionID }
