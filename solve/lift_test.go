package solve_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/relfind/wmf/bounds"
	"github.com/relfind/wmf/scalar"
	"github.com/relfind/wmf/smt"
	"github.com/relfind/wmf/solve"
)

func newTestInterpreter(t *testing.T, b bounds.Bounds, f *scalar.Factory) *bounds.Interpreter {
	t.Helper()
	in, err := bounds.New(b, f)
	require.NoError(t, err)
	return in
}

func TestLift_BooleanRelationWithFixedAndFreeCells(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	b := bounds.Bounds{
		UniverseSize: 2,
		Relations: map[bounds.RelationID]bounds.RelationBounds{
			"R": {
				Arity:        1,
				Quantitative: false,
				Lower:        bounds.NewIndexSet(0),
				Upper:        bounds.NewIndexSet(0, 1),
			},
		},
	}
	in := newTestInterpreter(t, b, f)

	mat, err := in.Interpret("R")
	require.NoError(t, err)
	cell1, err := mat.At(1)
	require.NoError(t, err)
	label := cell1.BoolPart().Label()

	m := &smt.Model{BoolValues: map[int64]bool{label: true}}
	inst, err := solve.Lift(in, m)
	require.NoError(t, err)

	w0, ok := inst.Weight("R", 0)
	require.True(t, ok)
	require.True(t, w0.Equal(decimal.NewFromInt(1)))

	w1, ok := inst.Weight("R", 1)
	require.True(t, ok)
	require.True(t, w1.Equal(decimal.NewFromInt(1)))
}

func TestLift_BooleanRelationFalseCellIsAbsent(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	b := bounds.Bounds{
		UniverseSize: 1,
		Relations: map[bounds.RelationID]bounds.RelationBounds{
			"R": {Arity: 1, Quantitative: false, Lower: bounds.NewIndexSet(), Upper: bounds.NewIndexSet(0)},
		},
	}
	in := newTestInterpreter(t, b, f)
	mat, err := in.Interpret("R")
	require.NoError(t, err)
	cell, err := mat.At(0)
	require.NoError(t, err)
	label := cell.BoolPart().Label()

	m := &smt.Model{BoolValues: map[int64]bool{label: false}}
	inst, err := solve.Lift(in, m)
	require.NoError(t, err)
	_, ok := inst.Weight("R", 0)
	require.False(t, ok)
}

func TestLift_QuantitativeRelationReadsNumericWeight(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	b := bounds.Bounds{
		UniverseSize: 1,
		Relations: map[bounds.RelationID]bounds.RelationBounds{
			"W": {Arity: 1, Quantitative: true, Lower: bounds.NewIndexSet(), Upper: bounds.NewIndexSet(0)},
		},
	}
	in := newTestInterpreter(t, b, f)
	mat, err := in.Interpret("W")
	require.NoError(t, err)
	cell, err := mat.At(0)
	require.NoError(t, err)
	label := cell.Label()

	m := &smt.Model{NumValues: map[int64]decimal.Decimal{label: decimal.NewFromInt(7)}}
	inst, err := solve.Lift(in, m)
	require.NoError(t, err)
	w, ok := inst.Weight("W", 0)
	require.True(t, ok)
	require.True(t, w.Equal(decimal.NewFromInt(7)))
}

func TestLift_MissingVariableFailsWithLiftFault(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	b := bounds.Bounds{
		UniverseSize: 1,
		Relations: map[bounds.RelationID]bounds.RelationBounds{
			"R": {Arity: 1, Quantitative: false, Lower: bounds.NewIndexSet(), Upper: bounds.NewIndexSet(0)},
		},
	}
	in := newTestInterpreter(t, b, f)

	_, err := solve.Lift(in, &smt.Model{})
	require.Error(t, err)
	var lf *solve.LiftFault
	require.ErrorAs(t, err, &lf)
	require.Equal(t, solve.MissingVariable, lf.Kind)
}

func TestBoundsIsTrivial(t *testing.T) {
	t.Parallel()
	trivial := bounds.Bounds{
		Relations: map[bounds.RelationID]bounds.RelationBounds{
			"R": {Arity: 1, Lower: bounds.NewIndexSet(0, 1), Upper: bounds.NewIndexSet(0, 1)},
		},
	}
	require.True(t, trivial.IsTrivial())

	notTrivial := bounds.Bounds{
		Relations: map[bounds.RelationID]bounds.RelationBounds{
			"R": {Arity: 1, Lower: bounds.NewIndexSet(0), Upper: bounds.NewIndexSet(0, 1)},
		},
	}
	require.False(t, notTrivial.IsTrivial())
}
