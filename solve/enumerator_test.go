package solve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relfind/wmf/bounds"
	"github.com/relfind/wmf/scalar"
	"github.com/relfind/wmf/smt"
	"github.com/relfind/wmf/solve"
)

func TestNewEnumerator_DetectsTrivialBounds(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	b := bounds.Bounds{
		UniverseSize: 1,
		Relations: map[bounds.RelationID]bounds.RelationBounds{
			"R": {Arity: 1, Lower: bounds.NewIndexSet(0), Upper: bounds.NewIndexSet(0)},
		},
	}
	in, err := bounds.New(b, f)
	require.NoError(t, err)

	e := solve.NewEnumerator(smt.NewDriver(), in)
	require.True(t, e.IsTrivial())
	require.Nil(t, e.LastInstance())
}

func TestNewEnumerator_NonTrivialBounds(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	b := bounds.Bounds{
		UniverseSize: 2,
		Relations: map[bounds.RelationID]bounds.RelationBounds{
			"R": {Arity: 1, Lower: bounds.NewIndexSet(0), Upper: bounds.NewIndexSet(0, 1)},
		},
	}
	in, err := bounds.New(b, f)
	require.NoError(t, err)

	e := solve.NewEnumerator(smt.NewDriver(), in)
	require.False(t, e.IsTrivial())
}
