package matrix_test

import (
	"testing"

	"github.com/relfind/wmf/matrix"
	"github.com/relfind/wmf/scalar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func buildVec(t *testing.T, f *scalar.Factory, vals ...decimal.Decimal) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(matrix.Dims{len(vals)}, f)
	require.NoError(t, err)
	for i, v := range vals {
		if v.IsZero() {
			continue
		}
		require.NoError(t, m.Set(i, f.NumConstant(v)))
	}
	return m
}

func TestIntersection_IsFuzzyMin(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	a := buildVec(t, f, decimal.NewFromFloat(0.3), decimal.NewFromFloat(0.9))
	b := buildVec(t, f, decimal.NewFromFloat(0.6), decimal.NewFromFloat(0.2))

	out, err := matrix.Intersection(a, b)
	require.NoError(t, err)
	require.True(t, numAt(t, out, 0).Equal(decimal.NewFromFloat(0.3)))
	require.True(t, numAt(t, out, 1).Equal(decimal.NewFromFloat(0.2)))
}

func TestUnion_IsFuzzyMax(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	a := buildVec(t, f, decimal.NewFromFloat(0.3), decimal.NewFromFloat(0.9))
	b := buildVec(t, f, decimal.NewFromFloat(0.6), decimal.NewFromFloat(0.2))

	out, err := matrix.Union(a, b)
	require.NoError(t, err)
	require.True(t, numAt(t, out, 0).Equal(decimal.NewFromFloat(0.6)))
	require.True(t, numAt(t, out, 1).Equal(decimal.NewFromFloat(0.9)))
}

func TestLeftIntersection_ZeroWhereLeftIsZero(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	a := buildVec(t, f, decimal.Zero, decimal.NewFromFloat(0.9))
	b := buildVec(t, f, decimal.NewFromFloat(0.6), decimal.NewFromFloat(0.2))

	out, err := matrix.LeftIntersection(a, b)
	require.NoError(t, err)
	require.True(t, numAt(t, out, 0).IsZero())
	require.True(t, numAt(t, out, 1).Equal(decimal.NewFromFloat(0.2)))
}

func TestDifference_SubtractsOverlap(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	a := buildVec(t, f, decimal.NewFromFloat(0.8))
	b := buildVec(t, f, decimal.NewFromFloat(0.3))

	out, err := matrix.Difference(a, b)
	require.NoError(t, err)
	require.True(t, numAt(t, out, 0).Equal(decimal.NewFromFloat(0.5)))
}

func TestOverride_KeepsRowWhenOtherRowIsLiterallyZero(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a, err := matrix.New(matrix.Dims{2, 2}, f)
	require.NoError(t, err)
	require.NoError(t, a.SetCoords([]int{0, 0}, f.One()))
	require.NoError(t, a.SetCoords([]int{1, 0}, f.One()))
	require.NoError(t, a.SetCoords([]int{1, 1}, f.One()))

	b, err := matrix.New(matrix.Dims{2, 2}, f)
	require.NoError(t, err)
	require.NoError(t, b.SetCoords([]int{1, 1}, f.NumConstant(decimal.NewFromInt(9))))

	out, err := matrix.Override(a, b)
	require.NoError(t, err)

	v, err := out.AtCoords([]int{0, 0})
	require.NoError(t, err)
	require.Same(t, f.One(), v)

	v, err = out.AtCoords([]int{1, 1})
	require.NoError(t, err)
	d, ok := v.IsNumConst()
	require.True(t, ok)
	require.True(t, d.Equal(decimal.NewFromInt(9)))

	v, err = out.AtCoords([]int{1, 0})
	require.NoError(t, err)
	require.Same(t, f.Zero(), v)
}
