package smt

import (
	"github.com/google/uuid"

	"github.com/relfind/wmf/scalar"
)

// Logic names the SMT-LIB logic this translation's assertions require (spec
// §4.5 "Prepend (set-logic L) where L ∈ {QF_UFLIA, QF_UFLRA}").
type Logic int

const (
	LogicUFLIA Logic = iota
	LogicUFLRA
)

func (l Logic) String() string {
	switch l {
	case LogicUFLIA:
		return "QF_UFLIA"
	case LogicUFLRA:
		return "QF_UFLRA"
	default:
		return "UNKNOWN_LOGIC"
	}
}

// LogicFor selects the logic matching a Factory's domain: integer weights
// use linear integer arithmetic, fuzzy weights use linear real arithmetic.
func LogicFor(d scalar.Domain) Logic {
	if d == scalar.Fuzzy {
		return LogicUFLRA
	}
	return LogicUFLIA
}

// Kind names one of the four supported solver back ends (spec §4.5).
type Kind int

const (
	Z3 Kind = iota
	MathSAT
	CVC4
	Yices
)

func (k Kind) String() string {
	switch k {
	case Z3:
		return "z3"
	case MathSAT:
		return "mathsat"
	case CVC4:
		return "cvc4"
	case Yices:
		return "yices-smt2"
	default:
		return "unknown-solver"
	}
}

// ProblemTranslation is the input to Emit and Driver.Solve: a translated
// circuit's root formula, its reflexive-closure side obligations, and the
// factory that owns every scalar reachable from them (spec §3 "Problem
// Translation").
type ProblemTranslation struct {
	ID        uuid.UUID
	Factory   *scalar.Factory
	Formula   *scalar.Scalar
	Equations []*scalar.Scalar
}

// NewProblemTranslation bundles a translated formula and its side
// obligations, stamping the bundle with a session id for log correlation
// (spec §6 "Persisted state").
func NewProblemTranslation(f *scalar.Factory, formula *scalar.Scalar, equations []*scalar.Scalar) *ProblemTranslation {
	return &ProblemTranslation{
		ID:        uuid.New(),
		Factory:   f,
		Formula:   formula,
		Equations: equations,
	}
}

// roots returns every top-level assertion scalar: the formula followed by
// the side equations, in that order (spec §4.5 "assertions for the root
// formula, for reflexive-closure fixed points... in the order described").
func (tr *ProblemTranslation) roots() []*scalar.Scalar {
	out := make([]*scalar.Scalar, 0, 1+len(tr.Equations))
	out = append(out, tr.Formula)
	out = append(out, tr.Equations...)
	return out
}

// Verdict is the satisfiability outcome of a solve (spec §6 "Satisfiability
// verdict ∈ {sat, unsat, unknown}").
type Verdict int

const (
	Unsat Verdict = iota
	Sat
	Unknown
)

func (v Verdict) String() string {
	switch v {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	case Unknown:
		return "unknown"
	default:
		return "unknown-verdict"
	}
}

// Stats reports the timing and size counters spec §6 asks the driver to
// surface alongside a verdict.
type Stats struct {
	TranslationMillis int64
	SolvingMillis     int64
	NumVars           int
	NumAssertions     int
}
