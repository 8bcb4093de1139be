package scalar_test

import (
	"testing"

	"github.com/relfind/wmf/scalar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTNormOp_IntegerIsZeroGuardedMin(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	x := f.NewNumVar(scalar.FreeVar, nil, nil)
	out, err := f.TNormOp(f.Zero(), x)
	require.NoError(t, err)
	require.Same(t, f.Zero(), out)
}

func TestTConormOp_IntegerIsZeroGuardedMax(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	x := f.NewNumVar(scalar.FreeVar, nil, nil)
	out, err := f.TConormOp(f.Zero(), x)
	require.NoError(t, err)
	require.Same(t, x, out)
}

func TestFuzzyTNorm_GodelIsMin(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy), scalar.WithTNorm(scalar.Godel))
	a := f.NumConstant(decimal.NewFromFloat(0.3))
	b := f.NumConstant(decimal.NewFromFloat(0.7))
	out, err := f.TNormOp(a, b)
	require.NoError(t, err)
	v, ok := out.IsNumConst()
	require.True(t, ok)
	require.True(t, v.Equal(decimal.NewFromFloat(0.3)))
}

func TestFuzzyTNorm_LukasiewiczIsBoundedDifference(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy), scalar.WithTNorm(scalar.Lukasiewicz))
	a := f.NumConstant(decimal.NewFromFloat(0.3))
	b := f.NumConstant(decimal.NewFromFloat(0.6))
	out, err := f.TNormOp(a, b)
	require.NoError(t, err)
	v, ok := out.IsNumConst()
	require.True(t, ok)
	require.True(t, v.IsZero()) // max(0, 0.3+0.6-1) = 0
}

func TestFuzzyTConorm_ProductIsProbabilisticSum(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy), scalar.WithTNorm(scalar.Product))
	a := f.NumConstant(decimal.NewFromFloat(0.5))
	b := f.NumConstant(decimal.NewFromFloat(0.5))
	out, err := f.TConormOp(a, b)
	require.NoError(t, err)
	v, ok := out.IsNumConst()
	require.True(t, ok)
	require.True(t, v.Equal(decimal.NewFromFloat(0.75))) // 0.5+0.5-0.25
}

func TestFuzzyTNorm_DrasticIdentityArms(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy), scalar.WithTNorm(scalar.Drastic))
	a := f.NumConstant(decimal.NewFromFloat(0.4))
	out, err := f.TNormOp(f.One(), a)
	require.NoError(t, err)
	v, ok := out.IsNumConst()
	require.True(t, ok)
	require.True(t, v.Equal(decimal.NewFromFloat(0.4)))
}

func TestClampToUnit_NoopOutsideFuzzy(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	big := f.NumConstant(decimal.NewFromInt(5))
	out, err := f.ClampToUnit(big)
	require.NoError(t, err)
	require.Same(t, big, out)
}

func TestClampToUnit_ClampsFuzzyOverflow(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	over := f.NumConstant(decimal.NewFromFloat(1.5))
	out, err := f.ClampToUnit(over)
	require.NoError(t, err)
	v, ok := out.IsNumConst()
	require.True(t, ok)
	require.True(t, v.Equal(decimal.NewFromInt(1)))
}
