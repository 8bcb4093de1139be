package scalar_test

import (
	"testing"

	"github.com/relfind/wmf/scalar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFactory_ZeroOneInterned(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	require.Same(t, f.Zero(), f.Zero())
	require.Same(t, f.One(), f.One())
	z, ok := f.Zero().IsNumConst()
	require.True(t, ok)
	require.True(t, z.IsZero())
}

func TestFactory_NumConstantInterning(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	a := f.NumConstant(decimal.NewFromFloat(0.5))
	b := f.NumConstant(decimal.NewFromFloat(0.5))
	require.Same(t, a, b)
}

func TestFactory_CheckOwnRejectsForeignScalar(t *testing.T) {
	t.Parallel()
	f1 := scalar.NewFactory()
	f2 := scalar.NewFactory()
	x := f1.NewBoolVar()
	_, err := f2.And(x)
	require.ErrorIs(t, err, scalar.ErrDomainMismatch)
}

func TestFactory_FuzzyRoundsConstants(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy), scalar.WithDecimalPlaces(2))
	c := f.NumConstant(decimal.NewFromFloat(0.126))
	v, ok := c.IsNumConst()
	require.True(t, ok)
	require.True(t, v.Equal(decimal.NewFromFloat(0.13)))
}

func TestFactory_DivideByConstantZeroFails(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	one := f.One()
	_, err := f.Divide(one, f.Zero())
	require.ErrorIs(t, err, scalar.ErrArithmetic)
}

func TestFactory_ModByConstantZeroFails(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	one := f.One()
	_, err := f.Mod(one, f.Zero())
	require.ErrorIs(t, err, scalar.ErrArithmetic)
}
