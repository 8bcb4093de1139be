package smt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/relfind/wmf/scalar"
)

// Program is a rendered SMT-LIB v2.6 declarations+assertions script (spec
// §4.5 "Serialization" steps 1-4). It excludes "(check-sat)"/"(get-model)":
// Driver appends those per round-trip, since an incremental session issues
// them repeatedly against the same declarations without re-sending them.
type Program struct {
	Text          string
	Logic         Logic
	Declarations  []int64 // primary-variable labels, in emission order
	NumAssertions int
}

// varSymbol names the SMT-LIB function symbol for a primary variable.
// Model parsing strips non-digits back off this to recover the label (spec
// §4.5 "id strips non-digits to recover the primary-variable label").
func varSymbol(label int64) string {
	return fmt.Sprintf("pv%d", label)
}

// letSymbol names a hoisted shared subterm's 0-ary helper function.
func letSymbol(label int64) string {
	return fmt.Sprintf("g%d", label)
}

// emitter renders a ProblemTranslation's scalar graph to SMT-LIB text. It
// hoists any gate node referenced more than once into a global define-fun so
// structural sharing in the hash-consed circuit survives serialization
// instead of being inlined exponentially (spec §4.2's hash-consing is only
// useful downstream if the serializer preserves it).
type emitter struct {
	domain    scalar.Domain
	maxWeight int64
	refCount  map[*scalar.Scalar]int
	hoisted   map[*scalar.Scalar]string
	declared  map[int64]bool
	decls     []int64
	defs      []string
}

// Emit renders tr to a complete SMT-LIB v2.6 script (spec §4.5 steps 1-5).
func Emit(tr *ProblemTranslation, maxWeight int64) (*Program, error) {
	f := tr.Factory
	roots := tr.roots()

	e := &emitter{
		domain:    f.Domain(),
		maxWeight: maxWeight,
		refCount:  countRefs(roots),
		hoisted:   make(map[*scalar.Scalar]string),
		declared:  make(map[int64]bool),
	}

	hoistCandidates := make([]*scalar.Scalar, 0)
	for s, n := range e.refCount {
		if n > 1 && isGate(s.Kind()) {
			hoistCandidates = append(hoistCandidates, s)
		}
	}
	sort.Slice(hoistCandidates, func(i, j int) bool {
		return hoistCandidates[i].Label() < hoistCandidates[j].Label()
	})
	for _, s := range hoistCandidates {
		e.hoisted[s] = letSymbol(s.Label())
	}

	byLabel := make(map[int64]*scalar.Scalar, len(e.refCount))
	for s := range e.refCount {
		byLabel[s.Label()] = s
	}

	collectDeclarations(roots, e.declared, &e.decls)
	sort.Slice(e.decls, func(i, j int) bool { return e.decls[i] < e.decls[j] })

	var b strings.Builder
	logic := LogicFor(e.domain)
	fmt.Fprintf(&b, "(set-logic %s)\n", logic)
	fmt.Fprintln(&b, "(set-option :produce-models true)")

	for _, label := range e.decls {
		b.WriteString(e.declareFun(byLabel[label], label))
	}

	for _, s := range hoistCandidates {
		b.WriteString(e.defineHoisted(s))
	}

	numAssertions := 0
	for _, root := range roots {
		fmt.Fprintf(&b, "(assert %s)\n", e.boolTerm(root))
		numAssertions++
	}
	if guard := e.divByZeroGuard(roots); guard != "" {
		fmt.Fprintf(&b, "(assert %s)\n", guard)
		numAssertions++
	}
	for _, label := range e.decls {
		s := byLabel[label]
		if s.Kind() != scalar.KindNumVar {
			continue
		}
		if rng := e.rangeAssertion(label); rng != "" {
			fmt.Fprintf(&b, "(assert %s)\n", rng)
			numAssertions++
		}
	}
	return &Program{
		Text:          b.String(),
		Logic:         logic,
		Declarations:  e.decls,
		NumAssertions: numAssertions,
	}, nil
}

func isGate(k scalar.Kind) bool {
	switch k {
	case scalar.KindBoolGate, scalar.KindNumAritGate, scalar.KindNumChoiceGate,
		scalar.KindNumUnaryGate, scalar.KindCmpGate:
		return true
	default:
		return false
	}
}

// countRefs tallies pointer occurrences over the scalar DAG reachable from
// roots, the hoisting-candidate signal (more than one reference means the
// node is shared and worth a define-fun), mirroring package translate's
// own free-variable/refcount pre-pass shape.
func countRefs(roots []*scalar.Scalar) map[*scalar.Scalar]int {
	counts := make(map[*scalar.Scalar]int)
	visited := make(map[*scalar.Scalar]bool)
	var walk func(s *scalar.Scalar)
	walk = func(s *scalar.Scalar) {
		if s == nil {
			return
		}
		counts[s]++
		if visited[s] {
			return
		}
		visited[s] = true
		switch s.Kind() {
		case scalar.KindBoolVar, scalar.KindNumVar, scalar.KindBoolConst, scalar.KindNumConst:
		case scalar.KindBinaryValue:
			walk(s.NumPart())
			walk(s.BoolPart())
		default:
			walk(s.Cond())
			for _, in := range s.Inputs() {
				walk(in)
			}
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return counts
}

// collectDeclarations records every BoolVar/NumVar label reachable from
// roots into decls, deduplicated via declared.
func collectDeclarations(roots []*scalar.Scalar, declared map[int64]bool, decls *[]int64) {
	visited := make(map[*scalar.Scalar]bool)
	var walk func(s *scalar.Scalar)
	walk = func(s *scalar.Scalar) {
		if s == nil || visited[s] {
			return
		}
		visited[s] = true
		switch s.Kind() {
		case scalar.KindBoolVar, scalar.KindNumVar:
			if !declared[s.Label()] {
				declared[s.Label()] = true
				*decls = append(*decls, s.Label())
			}
		case scalar.KindBoolConst, scalar.KindNumConst:
		case scalar.KindBinaryValue:
			walk(s.NumPart())
			walk(s.BoolPart())
		default:
			walk(s.Cond())
			for _, in := range s.Inputs() {
				walk(in)
			}
		}
	}
	for _, r := range roots {
		walk(r)
	}
}

func (e *emitter) numSort() string {
	if e.domain == scalar.Fuzzy {
		return "Real"
	}
	return "Int"
}

func (e *emitter) declareFun(s *scalar.Scalar, label int64) string {
	sort := "Bool"
	if s.Kind() == scalar.KindNumVar {
		sort = e.numSort()
	}
	return fmt.Sprintf("(declare-fun %s () %s)\n", varSymbol(label), sort)
}

func (e *emitter) defineHoisted(s *scalar.Scalar) string {
	name := e.hoisted[s]
	sort := "Bool"
	if isNumericGate(s.Kind()) {
		sort = e.numSort()
	}
	return fmt.Sprintf("(define-fun %s () %s %s)\n", name, sort, e.build(s))
}

func isNumericGate(k scalar.Kind) bool {
	switch k {
	case scalar.KindNumAritGate, scalar.KindNumChoiceGate, scalar.KindNumUnaryGate:
		return true
	default:
		return false
	}
}

// term renders s, substituting its hoisted helper-function name when s was
// promoted to a define-fun.
func (e *emitter) term(s *scalar.Scalar) string {
	if name, ok := e.hoisted[s]; ok {
		return name
	}
	return e.build(s)
}

// boolTerm renders s in boolean position, unwrapping a BinaryValue to its
// boolean half.
func (e *emitter) boolTerm(s *scalar.Scalar) string {
	if s.Kind() == scalar.KindBinaryValue {
		return e.boolTerm(s.BoolPart())
	}
	return e.term(s)
}

// numTerm renders s in numeric position, unwrapping a BinaryValue to its
// numeric half.
func (e *emitter) numTerm(s *scalar.Scalar) string {
	if s.Kind() == scalar.KindBinaryValue {
		return e.numTerm(s.NumPart())
	}
	return e.term(s)
}

func (e *emitter) build(s *scalar.Scalar) string {
	switch s.Kind() {
	case scalar.KindBoolConst:
		v, _ := s.IsBoolConst()
		if v {
			return "true"
		}
		return "false"
	case scalar.KindNumConst:
		v, _ := s.IsNumConst()
		return e.numLiteral(v)
	case scalar.KindBoolVar, scalar.KindNumVar:
		return varSymbol(s.Label())
	case scalar.KindBoolGate:
		return e.buildBoolGate(s)
	case scalar.KindNumAritGate:
		return e.buildArit(s)
	case scalar.KindNumChoiceGate:
		return e.buildChoice(s)
	case scalar.KindNumUnaryGate:
		return e.buildUnary(s)
	case scalar.KindCmpGate:
		return e.buildCmp(s)
	case scalar.KindBinaryValue:
		return e.boolTerm(s.BoolPart())
	default:
		return ""
	}
}

func (e *emitter) buildBoolGate(s *scalar.Scalar) string {
	ins := s.Inputs()
	switch s.BoolOp() {
	case scalar.AND:
		return "(and " + e.joinBool(ins) + ")"
	case scalar.OR:
		return "(or " + e.joinBool(ins) + ")"
	case scalar.NOT:
		return "(not " + e.boolTerm(ins[0]) + ")"
	case scalar.ITEBool:
		return fmt.Sprintf("(ite %s %s %s)", e.boolTerm(ins[0]), e.boolTerm(ins[1]), e.boolTerm(ins[2]))
	default:
		return ""
	}
}

func (e *emitter) joinBool(ins []*scalar.Scalar) string {
	parts := make([]string, len(ins))
	for i, in := range ins {
		parts[i] = e.boolTerm(in)
	}
	return strings.Join(parts, " ")
}

func (e *emitter) joinNum(ins []*scalar.Scalar) string {
	parts := make([]string, len(ins))
	for i, in := range ins {
		parts[i] = e.numTerm(in)
	}
	return strings.Join(parts, " ")
}

func (e *emitter) buildArit(s *scalar.Scalar) string {
	ins := s.Inputs()
	switch s.AritOp() {
	case scalar.PLUS:
		return "(+ " + e.joinNum(ins) + ")"
	case scalar.MINUS:
		return fmt.Sprintf("(- %s %s)", e.numTerm(ins[0]), e.numTerm(ins[1]))
	case scalar.TIMES:
		return "(* " + e.joinNum(ins) + ")"
	case scalar.DIV:
		op := "div"
		if e.domain == scalar.Fuzzy {
			op = "/"
		}
		return fmt.Sprintf("(%s %s %s)", op, e.numTerm(ins[0]), e.numTerm(ins[1]))
	case scalar.MOD:
		return fmt.Sprintf("(mod %s %s)", e.numTerm(ins[0]), e.numTerm(ins[1]))
	default:
		return ""
	}
}

func (e *emitter) buildChoice(s *scalar.Scalar) string {
	ins := s.Inputs()
	a, b := e.numTerm(ins[0]), e.numTerm(ins[1])
	switch s.ChoiceOp() {
	case scalar.MIN:
		return fmt.Sprintf("(ite (<= %s %s) %s %s)", a, b, a, b)
	case scalar.MAX:
		return fmt.Sprintf("(ite (>= %s %s) %s %s)", a, b, a, b)
	case scalar.ITENum:
		return fmt.Sprintf("(ite %s %s %s)", e.boolTerm(s.Cond()), a, b)
	default:
		return ""
	}
}

func (e *emitter) buildUnary(s *scalar.Scalar) string {
	ins := s.Inputs()
	a := e.numTerm(ins[0])
	switch s.UnaryOp() {
	case scalar.NEG:
		return fmt.Sprintf("(- %s)", a)
	case scalar.ABS:
		if e.domain == scalar.Fuzzy {
			return fmt.Sprintf("(ite (>= %s 0.0) %s (- %s))", a, a, a)
		}
		return fmt.Sprintf("(abs %s)", a)
	case scalar.SGN:
		zero, one, negOne := e.numLiteral(decimal.Zero), e.numLiteral(decimal.NewFromInt(1)), e.numLiteral(decimal.NewFromInt(-1))
		return fmt.Sprintf("(ite (= %s %s) %s (ite (> %s %s) %s %s))", a, zero, zero, a, zero, one, negOne)
	default:
		return ""
	}
}

func (e *emitter) buildCmp(s *scalar.Scalar) string {
	ins := s.Inputs()
	a, b := e.numTerm(ins[0]), e.numTerm(ins[1])
	switch s.CmpOp() {
	case scalar.EQ:
		return fmt.Sprintf("(= %s %s)", a, b)
	case scalar.NEQ:
		return fmt.Sprintf("(not (= %s %s))", a, b)
	case scalar.LT:
		return fmt.Sprintf("(< %s %s)", a, b)
	case scalar.LEQ:
		return fmt.Sprintf("(<= %s %s)", a, b)
	case scalar.GT:
		return fmt.Sprintf("(> %s %s)", a, b)
	case scalar.GEQ:
		return fmt.Sprintf("(>= %s %s)", a, b)
	default:
		return ""
	}
}

// numLiteral renders a decimal constant as an SMT-LIB numeral/decimal,
// wrapping negatives in unary minus since "-5" is not a valid SMT-LIB
// numeral token.
func (e *emitter) numLiteral(v decimal.Decimal) string {
	abs := v.Abs()
	var s string
	if e.domain == scalar.Fuzzy {
		s = abs.StringFixed(16)
	} else {
		s = abs.String()
	}
	if v.Sign() < 0 {
		return fmt.Sprintf("(- %s)", s)
	}
	return s
}

// rangeAssertion emits the per-variable bound spec §4.5 step 2 requires:
// 0 ≤ v ≤ 1 in fuzzy, 0 ≤ v ≤ maxWeight in integer when maxWeight is set.
func (e *emitter) rangeAssertion(label int64) string {
	sym := varSymbol(label)
	lower := fmt.Sprintf("(>= %s %s)", sym, e.numLiteral(decimal.Zero))
	var upper string
	if e.domain == scalar.Fuzzy {
		upper = fmt.Sprintf("(<= %s %s)", sym, e.numLiteral(decimal.NewFromInt(1)))
	} else if e.maxWeight > 0 {
		upper = fmt.Sprintf("(<= %s %s)", sym, e.numLiteral(decimal.NewFromInt(e.maxWeight)))
	} else {
		return lower
	}
	return fmt.Sprintf("(and %s %s)", lower, upper)
}

// divByZeroGuard scans every DIV gate reachable from roots and returns a
// single conjunctive guard excluding every model where a denominator is
// zero (spec §4.1/§4.5 "a single division-by-zero guard assertion produced
// by a scan over DIV gates"). Returns "" if no DIV gate is reachable.
func (e *emitter) divByZeroGuard(roots []*scalar.Scalar) string {
	visited := make(map[*scalar.Scalar]bool)
	seenDenoms := make(map[*scalar.Scalar]bool)
	var denoms []string
	var walk func(s *scalar.Scalar)
	walk = func(s *scalar.Scalar) {
		if s == nil || visited[s] {
			return
		}
		visited[s] = true
		switch s.Kind() {
		case scalar.KindBoolVar, scalar.KindNumVar, scalar.KindBoolConst, scalar.KindNumConst:
			return
		case scalar.KindBinaryValue:
			walk(s.NumPart())
			walk(s.BoolPart())
			return
		case scalar.KindNumAritGate:
			if s.AritOp() == scalar.DIV || s.AritOp() == scalar.MOD {
				denom := s.Inputs()[1]
				if !seenDenoms[denom] {
					seenDenoms[denom] = true
					denoms = append(denoms, e.numTerm(denom))
				}
			}
		}
		walk(s.Cond())
		for _, in := range s.Inputs() {
			walk(in)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	if len(denoms) == 0 {
		return ""
	}
	zero := e.numLiteral(decimal.Zero)
	clauses := make([]string, len(denoms))
	for i, d := range denoms {
		clauses[i] = fmt.Sprintf("(not (= %s %s))", d, zero)
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return "(and " + strings.Join(clauses, " ") + ")"
}
