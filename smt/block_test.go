package smt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/relfind/wmf/scalar"
	"github.com/relfind/wmf/smt"
)

func TestElimSolution_PrefersFractionOverDecimal(t *testing.T) {
	t.Parallel()
	m := &smt.Model{
		BoolValues:   map[int64]bool{3: true},
		NumValues:    map[int64]decimal.Decimal{5: decimal.NewFromFloat(0.3)},
		NumFractions: map[int64]string{5: "(/ 3.0 10.0)"},
	}
	clause := smt.ElimSolution(scalar.Fuzzy, m, []int64{3, 5})
	require.Contains(t, clause, "(= pv3 true)")
	require.Contains(t, clause, "(= pv5 (/ 3.0 10.0))")
	require.Contains(t, clause, "(assert (not (and")
}

func TestElimSolution_FallsBackToDecimalLiteral(t *testing.T) {
	t.Parallel()
	m := &smt.Model{
		NumValues: map[int64]decimal.Decimal{7: decimal.NewFromInt(4)},
	}
	clause := smt.ElimSolution(scalar.Integer, m, []int64{7})
	require.Contains(t, clause, "(= pv7 4)")
}

func TestElimSolution_SkipsLabelsWithNoRecordedValue(t *testing.T) {
	t.Parallel()
	m := &smt.Model{
		BoolValues: map[int64]bool{3: true},
	}
	clause := smt.ElimSolution(scalar.Integer, m, []int64{3, 99})
	require.Contains(t, clause, "pv3")
	require.NotContains(t, clause, "pv99")
}

func TestElimSolution_EmptyWhenNoLabelsHaveValues(t *testing.T) {
	t.Parallel()
	m := &smt.Model{}
	clause := smt.ElimSolution(scalar.Integer, m, []int64{1, 2})
	require.Empty(t, clause)
}
