package matrix_test

import (
	"testing"

	"github.com/relfind/wmf/matrix"
	"github.com/relfind/wmf/scalar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSome_TrueWhenAnyCellNonZero(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a := buildVec(t, f, decimal.Zero, decimal.NewFromInt(1))
	out, err := matrix.Some(a)
	require.NoError(t, err)
	v, ok := out.IsBoolConst()
	require.True(t, ok)
	require.True(t, v)
}

func TestNo_TrueWhenMatrixIsEmpty(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a, err := matrix.New(matrix.Dims{3}, f)
	require.NoError(t, err)
	out, err := matrix.No(a)
	require.NoError(t, err)
	v, ok := out.IsBoolConst()
	require.True(t, ok)
	require.True(t, v)
}

func TestOne_TrueForSingleNonZeroCell(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a := buildVec(t, f, decimal.NewFromInt(1), decimal.Zero)
	out, err := matrix.One(a)
	require.NoError(t, err)
	v, ok := out.IsBoolConst()
	require.True(t, ok)
	require.True(t, v)
}

func TestOne_FalseForTwoNonZeroCells(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a := buildVec(t, f, decimal.NewFromInt(1), decimal.NewFromInt(1))
	out, err := matrix.One(a)
	require.NoError(t, err)
	v, ok := out.IsBoolConst()
	require.True(t, ok)
	require.False(t, v)
}

func TestLone_TrueForEmptyMatrix(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	empty, err := matrix.New(matrix.Dims{2}, f)
	require.NoError(t, err)
	out, err := matrix.Lone(empty)
	require.NoError(t, err)
	v, ok := out.IsBoolConst()
	require.True(t, ok)
	require.True(t, v)
}

func TestSum_AccumulatesFuzzyWeights(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	a := buildVec(t, f, decimal.NewFromFloat(0.5), decimal.NewFromFloat(0.2))
	out, err := matrix.Sum(a)
	require.NoError(t, err)
	v, ok := out.IsNumConst()
	require.True(t, ok)
	require.True(t, v.Equal(decimal.NewFromFloat(0.7)))
}

func TestCount_CountsNonZeroCellsRegardlessOfDomain(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	a := buildVec(t, f, decimal.NewFromFloat(0.5), decimal.NewFromFloat(0.2))
	out, err := matrix.Count(a)
	require.NoError(t, err)
	v, ok := out.IsNumConst()
	require.True(t, ok)
	require.True(t, v.Equal(decimal.NewFromInt(2)))
}

func TestBroadcast_FillsEveryCellWithValue(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	out, err := matrix.Broadcast(matrix.Dims{2, 2}, f, f.NumConstant(decimal.NewFromInt(7)))
	require.NoError(t, err)
	require.Equal(t, 4, out.NonZeroCount())
	require.True(t, numAt(t, out, 3).Equal(decimal.NewFromInt(7)))
}
