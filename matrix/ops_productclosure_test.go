package matrix_test

import (
	"testing"

	"github.com/relfind/wmf/matrix"
	"github.com/relfind/wmf/scalar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func buildSquare(t *testing.T, f *scalar.Factory, n int, cells map[[2]int]decimal.Decimal) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(matrix.Dims{n, n}, f)
	require.NoError(t, err)
	for coord, v := range cells {
		require.NoError(t, m.SetCoords([]int{coord[0], coord[1]}, f.NumConstant(v)))
	}
	return m
}

func TestDot_MinMaxProduct(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	a := buildSquare(t, f, 2, map[[2]int]decimal.Decimal{
		{0, 0}: decimal.NewFromFloat(0.8),
		{0, 1}: decimal.NewFromFloat(0.3),
	})
	b := buildSquare(t, f, 2, map[[2]int]decimal.Decimal{
		{0, 0}: decimal.NewFromFloat(0.4),
		{1, 0}: decimal.NewFromFloat(0.9),
	})

	out, err := matrix.Dot(a, b)
	require.NoError(t, err)
	// (AB)[0,0] = max(min(0.8,0.4), min(0.3,0.9)) = max(0.4,0.3) = 0.4
	v, err := out.AtCoords([]int{0, 0})
	require.NoError(t, err)
	d, ok := v.IsNumConst()
	require.True(t, ok)
	require.True(t, d.Equal(decimal.NewFromFloat(0.4)))
}

func TestMultiDot_StandardProduct(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a := buildSquare(t, f, 2, map[[2]int]decimal.Decimal{
		{0, 0}: decimal.NewFromInt(1),
		{0, 1}: decimal.NewFromInt(2),
	})
	b := buildSquare(t, f, 2, map[[2]int]decimal.Decimal{
		{0, 0}: decimal.NewFromInt(3),
		{1, 0}: decimal.NewFromInt(4),
	})

	out, err := matrix.MultiDot(a, b)
	require.NoError(t, err)
	v, err := out.AtCoords([]int{0, 0})
	require.NoError(t, err)
	d, ok := v.IsNumConst()
	require.True(t, ok)
	require.True(t, d.Equal(decimal.NewFromInt(11))) // 1*3 + 2*4
}

func TestClosure_TransitiveOverChain(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	a := buildSquare(t, f, 3, map[[2]int]decimal.Decimal{
		{0, 1}: decimal.NewFromFloat(0.7),
		{1, 2}: decimal.NewFromFloat(0.5),
	})

	out, err := matrix.Closure(a)
	require.NoError(t, err)
	v, err := out.AtCoords([]int{0, 2})
	require.NoError(t, err)
	d, ok := v.IsNumConst()
	require.True(t, ok)
	require.True(t, d.Equal(decimal.NewFromFloat(0.5))) // min(0.7,0.5) reaches 0->2
}

func TestReflexiveClosure_EmitsOneEquationPerCell(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a := buildSquare(t, f, 2, map[[2]int]decimal.Decimal{{0, 1}: decimal.NewFromInt(1)})

	x, equations, err := matrix.ReflexiveClosure(a)
	require.NoError(t, err)
	require.Equal(t, matrix.Dims{2, 2}, x.Dims())
	require.Len(t, equations, 4)
	for _, eq := range equations {
		require.Equal(t, scalar.KindCmpGate, eq.Kind())
	}
}

func TestDot_RejectsNonMatchingInnerDims(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a, err := matrix.New(matrix.Dims{2, 3}, f)
	require.NoError(t, err)
	b, err := matrix.New(matrix.Dims{2, 2}, f)
	require.NoError(t, err)
	_, err = matrix.Dot(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
