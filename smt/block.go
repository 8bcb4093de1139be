package smt

import (
	"fmt"
	"strings"

	"github.com/relfind/wmf/scalar"
)

// ElimSolution renders the blocking clause that excludes model m's values
// for the given primary-variable labels: "(assert (not (and (= v_i
// value_i) ...)))" (spec §4.5 "Blocking"). When m carries an exact
// fraction string for a label, that text is reused verbatim instead of m's
// rounded decimal, avoiding reparsing drift (spec §4.5 "the exact
// fractional representation is reused"). domain selects how a fallback
// decimal literal (when no fraction string was retained) is formatted.
func ElimSolution(domain scalar.Domain, m *Model, labels []int64) string {
	clauses := make([]string, 0, len(labels))
	e := &emitter{domain: domain}
	for _, label := range labels {
		sym := varSymbol(label)
		if bv, ok := m.BoolValues[label]; ok {
			lit := "false"
			if bv {
				lit = "true"
			}
			clauses = append(clauses, fmt.Sprintf("(= %s %s)", sym, lit))
			continue
		}
		if frac, ok := m.NumFractions[label]; ok {
			clauses = append(clauses, fmt.Sprintf("(= %s %s)", sym, frac))
			continue
		}
		if v, ok := m.NumValues[label]; ok {
			clauses = append(clauses, fmt.Sprintf("(= %s %s)", sym, e.numLiteral(v)))
		}
	}
	if len(clauses) == 0 {
		return ""
	}
	return fmt.Sprintf("(assert (not (and %s)))\n", strings.Join(clauses, " "))
}
