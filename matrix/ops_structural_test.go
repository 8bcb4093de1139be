package matrix_test

import (
	"testing"

	"github.com/relfind/wmf/matrix"
	"github.com/relfind/wmf/scalar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTranspose_SwapsLastTwoAxes(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a, err := matrix.New(matrix.Dims{2, 2}, f)
	require.NoError(t, err)
	require.NoError(t, a.SetCoords([]int{0, 1}, f.NumConstant(decimal.NewFromInt(7))))

	out, err := matrix.Transpose(a)
	require.NoError(t, err)
	v, err := out.AtCoords([]int{1, 0})
	require.NoError(t, err)
	d, ok := v.IsNumConst()
	require.True(t, ok)
	require.True(t, d.Equal(decimal.NewFromInt(7)))
}

func TestDomain_RestrictsToRowsWithNonZeroVectorEntry(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a, err := matrix.New(matrix.Dims{2, 2}, f)
	require.NoError(t, err)
	require.NoError(t, a.SetCoords([]int{0, 0}, f.One()))
	require.NoError(t, a.SetCoords([]int{1, 1}, f.One()))

	v, err := matrix.New(matrix.Dims{2}, f)
	require.NoError(t, err)
	require.NoError(t, v.Set(0, f.One()))

	out, err := matrix.Domain(a, v)
	require.NoError(t, err)
	cell, err := out.AtCoords([]int{0, 0})
	require.NoError(t, err)
	require.Same(t, f.One(), cell)

	cell, err = out.AtCoords([]int{1, 1})
	require.NoError(t, err)
	require.Same(t, f.Zero(), cell)
}

func TestProject_JoinsCellsOfDroppedAxis(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	a, err := matrix.New(matrix.Dims{2, 2}, f)
	require.NoError(t, err)
	require.NoError(t, a.SetCoords([]int{0, 0}, f.NumConstant(decimal.NewFromFloat(0.3))))
	require.NoError(t, a.SetCoords([]int{0, 1}, f.NumConstant(decimal.NewFromFloat(0.8))))

	out, err := matrix.Project(a, []int{0})
	require.NoError(t, err)
	require.True(t, numAt(t, out, 0).Equal(decimal.NewFromFloat(0.8)))
}

func TestCross_KroneckerDims(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a, err := matrix.New(matrix.Dims{2}, f)
	require.NoError(t, err)
	b, err := matrix.New(matrix.Dims{3}, f)
	require.NoError(t, err)

	out, err := matrix.Cross(a, b)
	require.NoError(t, err)
	require.Equal(t, matrix.Dims{2, 3}, out.Dims())
}

func TestAlphaCut_ThresholdsToBinary(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	a := buildVec(t, f, decimal.NewFromFloat(0.4), decimal.NewFromFloat(0.8))

	out, err := matrix.AlphaCut(a, decimal.NewFromFloat(0.5))
	require.NoError(t, err)

	v0, err := out.At(0)
	require.NoError(t, err)
	bp := v0.BoolPart()
	bv, ok := bp.IsBoolConst()
	require.True(t, ok)
	require.False(t, bv)

	v1, err := out.At(1)
	require.NoError(t, err)
	bv, ok = v1.BoolPart().IsBoolConst()
	require.True(t, ok)
	require.True(t, bv)
}

func TestChoice_SelectsArmByCondition(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a := buildVec(t, f, decimal.NewFromInt(1))
	b := buildVec(t, f, decimal.NewFromInt(2))

	out, err := matrix.Choice(f.BoolConstant(true), a, b)
	require.NoError(t, err)
	require.True(t, numAt(t, out, 0).Equal(decimal.NewFromInt(1)))
}
