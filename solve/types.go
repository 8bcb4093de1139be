package solve

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/relfind/wmf/bounds"
)

// Instance is a solved weighted relational result (spec §3 "Weighted
// Instance (lift-back)": "Instance(universe, map R → { tupleIndex →
// weight })"). A relation absent from Relations has no tuples in this
// instance.
type Instance struct {
	Universe  int
	Relations map[bounds.RelationID]map[int]decimal.Decimal
}

// Weight returns the weight of tuple idx in relation id, and whether the
// tuple is present at all.
func (inst *Instance) Weight(id bounds.RelationID, idx int) (decimal.Decimal, bool) {
	rel, ok := inst.Relations[id]
	if !ok {
		return decimal.Zero, false
	}
	w, ok := rel[idx]
	return w, ok
}

// Tuples returns relation id's populated flat tuple indices in ascending
// order.
func (inst *Instance) Tuples(id bounds.RelationID) []int {
	rel := inst.Relations[id]
	out := make([]int, 0, len(rel))
	for idx := range rel {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
