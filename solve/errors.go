package solve

import (
	"errors"
	"fmt"

	"github.com/relfind/wmf/bounds"
)

// LiftFaultKind enumerates the ways Lift can fail (spec §7 "LiftFault:
// BooleanWithWeights, MissingVariable").
type LiftFaultKind int

const (
	BooleanWithWeights LiftFaultKind = iota
	MissingVariable
)

func (k LiftFaultKind) String() string {
	switch k {
	case BooleanWithWeights:
		return "BooleanWithWeights"
	case MissingVariable:
		return "MissingVariable"
	default:
		return "UnknownLiftFaultKind"
	}
}

var errLiftFault = errors.New("solve: lift fault")

// LiftFault is the typed error Lift returns when a solved model cannot be
// reconciled with the relation bounds it was translated from.
type LiftFault struct {
	Kind     LiftFaultKind
	Relation bounds.RelationID
	Label    int64
	err      error
}

func (f *LiftFault) Error() string {
	switch f.Kind {
	case BooleanWithWeights:
		return fmt.Sprintf("solve: %s: relation %s has a non-unit weight", f.Kind, f.Relation)
	case MissingVariable:
		return fmt.Sprintf("solve: %s: relation %s: no value recorded for primary variable %d", f.Kind, f.Relation, f.Label)
	default:
		return fmt.Sprintf("solve: %s", f.Kind)
	}
}

func (f *LiftFault) Unwrap() error { return f.err }

func faultBooleanWithWeights(id bounds.RelationID) error {
	return &LiftFault{Kind: BooleanWithWeights, Relation: id, err: errLiftFault}
}

func faultMissingVariable(id bounds.RelationID, label int64) error {
	return &LiftFault{Kind: MissingVariable, Relation: id, Label: label, err: errLiftFault}
}
