package fuzzyinfer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relfind/wmf/fuzzyinfer"
)

func tipVars() map[string]fuzzyinfer.Variable {
	return map[string]fuzzyinfer.Variable{
		"Service": {
			Name: "Service",
			Terms: []fuzzyinfer.Term{
				{Name: "poor", MF: fuzzyinfer.Triangular(0, 0, 5)},
				{Name: "good", MF: fuzzyinfer.Triangular(0, 5, 10)},
				{Name: "excellent", MF: fuzzyinfer.Triangular(5, 10, 10)},
			},
		},
		"Food": {
			Name: "Food",
			Terms: []fuzzyinfer.Term{
				{Name: "rancid", MF: fuzzyinfer.Triangular(0, 0, 10)},
				{Name: "delicious", MF: fuzzyinfer.Triangular(0, 10, 10)},
			},
		},
	}
}

func TestSugenoWeightedAverage_TipScenario(t *testing.T) {
	t.Parallel()
	rules := []fuzzyinfer.SugenoRule{
		{
			Antecedents: []fuzzyinfer.Antecedent{{Variable: "Service", Term: "poor"}},
			Coeffs:      map[string]float64{},
			Offset:      5,
		},
		{
			Antecedents: []fuzzyinfer.Antecedent{{Variable: "Service", Term: "good"}, {Variable: "Food", Term: "delicious"}},
			Coeffs:      map[string]float64{},
			Offset:      15,
		},
		{
			Antecedents: []fuzzyinfer.Antecedent{{Variable: "Service", Term: "excellent"}},
			Coeffs:      map[string]float64{},
			Offset:      20,
		},
	}

	inputs := map[string]float64{"Service": 3, "Food": 8}
	tip, err := fuzzyinfer.SugenoWeightedAverage(inputs, tipVars(), rules, fuzzyinfer.Godel)
	require.NoError(t, err)

	poor := fuzzyinfer.Triangular(0, 0, 5)(3)
	good := fuzzyinfer.Triangular(0, 5, 10)(3)
	delicious := fuzzyinfer.Triangular(0, 10, 10)(8)
	w1, w2 := poor, fuzzyinfer.Godel(good, delicious)
	want := (w1*5 + w2*15) / (w1 + w2)
	require.InDelta(t, want, tip, 1e-9)
}

func TestSugenoWeightedAverage_NoRulesFiredFails(t *testing.T) {
	t.Parallel()
	rules := []fuzzyinfer.SugenoRule{
		{Antecedents: []fuzzyinfer.Antecedent{{Variable: "Service", Term: "excellent"}}, Offset: 20},
	}
	_, err := fuzzyinfer.SugenoWeightedAverage(map[string]float64{"Service": 0, "Food": 0}, tipVars(), rules, fuzzyinfer.Godel)
	require.ErrorIs(t, err, fuzzyinfer.ErrNoRulesFired)
}
