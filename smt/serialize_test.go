package smt_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/relfind/wmf/scalar"
	"github.com/relfind/wmf/smt"
)

func TestEmit_IntegerDomain_DeclaresBoolAndAssertsFormula(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	v := f.NewBoolVar()
	tr := smt.NewProblemTranslation(f, v, nil)

	p, err := smt.Emit(tr, 0)
	require.NoError(t, err)
	require.Contains(t, p.Text, "(set-logic QF_UFLIA)")
	require.Contains(t, p.Text, "(declare-fun pv0 () Bool)")
	require.Contains(t, p.Text, "(assert pv0)")
	require.Len(t, p.Declarations, 1)
}

func TestEmit_FuzzyDomain_EmitsUnitRangeForNumVar(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Fuzzy))
	nv := f.NewNumVar(scalar.FreeVar, nil, nil)
	eq, err := f.Eq(nv, f.NumConstant(decimal.NewFromFloat(0.5)))
	require.NoError(t, err)
	tr := smt.NewProblemTranslation(f, f.BoolConstant(true), []*scalar.Scalar{eq})

	p, err := smt.Emit(tr, 0)
	require.NoError(t, err)
	require.Contains(t, p.Text, "(set-logic QF_UFLRA)")
	require.Regexp(t, `\(declare-fun pv\d+ \(\) Real\)`, p.Text)
	require.Regexp(t, `\(assert \(and \(>= pv\d+ 0`, p.Text)
	require.Regexp(t, `<= pv\d+ 1`, p.Text)
}

func TestEmit_IntegerDomain_MaxWeightBoundsNumVar(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	nv := f.NewNumVar(scalar.FreeVar, nil, nil)
	eq, err := f.Eq(nv, f.NumConstant(decimal.NewFromInt(3)))
	require.NoError(t, err)
	tr := smt.NewProblemTranslation(f, f.BoolConstant(true), []*scalar.Scalar{eq})

	p, err := smt.Emit(tr, 10)
	require.NoError(t, err)
	require.Contains(t, p.Text, "<= pv")
	require.Contains(t, p.Text, "10")
}

func TestEmit_HoistsSharedGateIntoDefineFun(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	a, b, c := f.NewBoolVar(), f.NewBoolVar(), f.NewBoolVar()
	shared, err := f.And(a, b)
	require.NoError(t, err)
	notShared, err := f.Not(shared)
	require.NoError(t, err)
	orShared, err := f.Or(shared, c)
	require.NoError(t, err)
	formula, err := f.And(notShared, orShared)
	require.NoError(t, err)
	tr := smt.NewProblemTranslation(f, formula, nil)

	p, err := smt.Emit(tr, 0)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(p.Text, "(and pv"), "shared AND gate should be rendered exactly once, as its own define-fun")
	require.Regexp(t, `\(define-fun g\d+ \(\) Bool \(and pv`, p.Text)
}

func TestEmit_DivisionByZeroGuard_ExcludesZeroDenominator(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	denom := f.NewNumVar(scalar.FreeVar, nil, nil)
	div, err := f.Divide(f.NumConstant(decimal.NewFromInt(5)), denom)
	require.NoError(t, err)
	eq, err := f.Eq(div, f.One())
	require.NoError(t, err)
	tr := smt.NewProblemTranslation(f, eq, nil)

	p, err := smt.Emit(tr, 0)
	require.NoError(t, err)
	require.Regexp(t, `\(assert \(not \(= pv\d+ 0\)\)\)`, p.Text)
}

func TestEmit_NoReachableDivGate_OmitsGuard(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory(scalar.WithDomain(scalar.Integer))
	v := f.NewBoolVar()
	tr := smt.NewProblemTranslation(f, v, nil)

	p, err := smt.Emit(tr, 0)
	require.NoError(t, err)
	require.NotContains(t, p.Text, "not (=")
}
