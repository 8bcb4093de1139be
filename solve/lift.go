package solve

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/relfind/wmf/bounds"
	"github.com/relfind/wmf/scalar"
	"github.com/relfind/wmf/smt"
)

// Lift reads a solved model back into a weighted Instance (spec §4.6
// "Lift"). For each relation, every upper-bound tuple's cell is read from
// the interpreter's matrix (rather than re-deriving a label range) so the
// exact scalar that was declared to the solver drives the lookup: a
// constant cell (a sure lower-bound tuple of a boolean relation) always
// carries weight 1; a variable cell's weight comes from m.
func Lift(in *bounds.Interpreter, m *smt.Model) (*Instance, error) {
	b := in.Bounds()
	inst := &Instance{Universe: b.UniverseSize, Relations: make(map[bounds.RelationID]map[int]decimal.Decimal, len(b.Relations))}

	for _, id := range b.SortedRelationIDs() {
		rb := b.Relations[id]
		mat, err := in.Interpret(id)
		if err != nil {
			return nil, err
		}
		weights := make(map[int]decimal.Decimal)
		for _, idx := range rb.Upper.Sorted() {
			cell, err := mat.At(idx)
			if err != nil {
				return nil, err
			}
			w, present, err := cellWeight(id, cell, m)
			if err != nil {
				return nil, err
			}
			if !present {
				continue
			}
			if !rb.Quantitative && !w.Equal(decimal.NewFromInt(1)) {
				return nil, faultBooleanWithWeights(id)
			}
			weights[idx] = w
		}
		if len(weights) > 0 {
			inst.Relations[id] = weights
		}
	}
	return inst, nil
}

// cellWeight reads the weight a single matrix cell contributes: present is
// false when the cell is absent from the lifted instance (weight 0).
func cellWeight(id bounds.RelationID, cell *scalar.Scalar, m *smt.Model) (weight decimal.Decimal, present bool, err error) {
	if v, ok := cell.IsNumConst(); ok {
		if v.IsZero() {
			return decimal.Zero, false, nil
		}
		return v, true, nil
	}
	if bv, ok := cell.IsBoolConst(); ok {
		if !bv {
			return decimal.Zero, false, nil
		}
		return decimal.NewFromInt(1), true, nil
	}

	switch cell.Kind() {
	case scalar.KindNumVar:
		label := cell.Label()
		v, ok := m.NumValues[label]
		if !ok {
			return decimal.Decimal{}, false, faultMissingVariable(id, label)
		}
		if v.IsZero() {
			return decimal.Zero, false, nil
		}
		return v, true, nil

	case scalar.KindBinaryValue:
		boolPart := cell.BoolPart()
		label := boolPart.Label()
		bv, ok := m.BoolValues[label]
		if !ok {
			return decimal.Decimal{}, false, faultMissingVariable(id, label)
		}
		if !bv {
			return decimal.Zero, false, nil
		}
		return decimal.NewFromInt(1), true, nil

	default:
		return decimal.Decimal{}, false, fmt.Errorf("solve: Lift: relation %s: unexpected cell kind %d", id, cell.Kind())
	}
}
