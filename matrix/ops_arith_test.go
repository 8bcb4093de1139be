package matrix_test

import (
	"testing"

	"github.com/relfind/wmf/matrix"
	"github.com/relfind/wmf/scalar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPlus_SaturatesInFuzzyDomain(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	a, err := matrix.New(matrix.Dims{1, 1}, f)
	require.NoError(t, err)
	b, err := matrix.New(matrix.Dims{1, 1}, f)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, f.NumConstant(decimal.NewFromFloat(0.7))))
	require.NoError(t, b.Set(0, f.NumConstant(decimal.NewFromFloat(0.7))))

	sum, err := matrix.Plus(a, b)
	require.NoError(t, err)
	require.True(t, numAt(t, sum, 0).Equal(decimal.NewFromInt(1)))
}

func TestMinus_FloorsAtZero(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a, err := matrix.New(matrix.Dims{1, 1}, f)
	require.NoError(t, err)
	b, err := matrix.New(matrix.Dims{1, 1}, f)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, f.NumConstant(decimal.NewFromInt(2))))
	require.NoError(t, b.Set(0, f.NumConstant(decimal.NewFromInt(5))))

	diff, err := matrix.Minus(a, b)
	require.NoError(t, err)
	require.True(t, numAt(t, diff, 0).IsZero())
}

func TestProduct_NumericTimesNumeric(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a, err := matrix.New(matrix.Dims{1, 1}, f)
	require.NoError(t, err)
	b, err := matrix.New(matrix.Dims{1, 1}, f)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, f.NumConstant(decimal.NewFromInt(3))))
	require.NoError(t, b.Set(0, f.NumConstant(decimal.NewFromInt(4))))

	p, err := matrix.Product(a, b)
	require.NoError(t, err)
	require.True(t, numAt(t, p, 0).Equal(decimal.NewFromInt(12)))
}

func TestScale_MultipliesEveryCell(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a, err := matrix.New(matrix.Dims{1, 2}, f)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, f.NumConstant(decimal.NewFromInt(2))))
	require.NoError(t, a.Set(1, f.NumConstant(decimal.NewFromInt(3))))

	out, err := matrix.Scale(a, f.NumConstant(decimal.NewFromInt(10)))
	require.NoError(t, err)
	require.True(t, numAt(t, out, 0).Equal(decimal.NewFromInt(20)))
	require.True(t, numAt(t, out, 1).Equal(decimal.NewFromInt(30)))
}

func TestDivide_FuzzyClampsResult(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	a, err := matrix.New(matrix.Dims{1, 1}, f)
	require.NoError(t, err)
	b, err := matrix.New(matrix.Dims{1, 1}, f)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, f.NumConstant(decimal.NewFromFloat(0.9))))
	require.NoError(t, b.Set(0, f.NumConstant(decimal.NewFromFloat(0.3))))

	q, err := matrix.Divide(a, b)
	require.NoError(t, err)
	require.True(t, numAt(t, q, 0).Equal(decimal.NewFromInt(1)))
}
