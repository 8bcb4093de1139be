package smt

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Model is a parsed SMT-LIB model response: one entry per primary variable
// (spec §4.5 "Model parsing"). BoolValues and NumValues are keyed by the
// primary-variable label recovered from the symbol name. NumFractions
// retains the original "(/ num denom)" text for a Real value so blocking
// can reuse exact syntax instead of reparsing a rounded decimal (spec §4.5
// "stored both as their decimal value and as their original fraction
// string").
type Model struct {
	BoolValues   map[int64]bool
	NumValues    map[int64]decimal.Decimal
	NumFractions map[int64]string
}

func newModel() *Model {
	return &Model{
		BoolValues:   make(map[int64]bool),
		NumValues:    make(map[int64]decimal.Decimal),
		NumFractions: make(map[int64]string),
	}
}

// ParseModel parses a solver's "(model (define-fun id () T v)...)" response
// (or a bare sequence of define-fun forms without the wrapping, which some
// solvers omit) into a Model. Returns a *SolverFailure{Kind: FailureProtocol}
// if no define-fun form parses cleanly.
func ParseModel(text string) (*Model, error) {
	m := newModel()
	found := false
	rest := text
	for {
		idx := strings.Index(rest, "(define-fun")
		if idx < 0 {
			break
		}
		form, tail, err := takeBalanced(rest[idx:])
		if err != nil {
			return nil, failProtocol("unbalanced define-fun form", text)
		}
		if err := m.parseDefineFun(form); err != nil {
			return nil, err
		}
		found = true
		rest = tail
	}
	if !found {
		if strings.Contains(text, "unknown") {
			return m, nil
		}
		return nil, failProtocol("no define-fun forms found", text)
	}
	return m, nil
}

// takeBalanced returns the parenthesized form starting at s[0] (which must
// be '(') and the remainder of s after it.
func takeBalanced(s string) (form, rest string, err error) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[:i+1], s[i+1:], nil
			}
		}
	}
	return "", "", errProtocolUnbalanced
}

var errProtocolUnbalanced = failProtocol("unbalanced parentheses", "")

// parseDefineFun parses one "(define-fun id () T v)" form. id's
// non-digit characters are stripped to recover the primary-variable label
// (spec §4.5).
func (m *Model) parseDefineFun(form string) error {
	fields := tokenizeTop(strings.TrimSuffix(strings.TrimPrefix(form, "(define-fun"), ")"))
	if len(fields) < 3 {
		return failProtocol("malformed define-fun: "+form, form)
	}
	id := fields[0]
	sortTok := fields[1]
	valueTok := strings.Join(fields[2:], " ")

	label, err := labelFromSymbol(id)
	if err != nil {
		return failProtocol("unparsable variable symbol: "+id, form)
	}

	switch sortTok {
	case "Bool":
		m.BoolValues[label] = strings.TrimSpace(valueTok) == "true"
	case "Int", "Real":
		v, fraction, err := parseNumericValue(valueTok)
		if err != nil {
			return failProtocol("unparsable numeric value: "+valueTok, form)
		}
		m.NumValues[label] = v
		if fraction != "" {
			m.NumFractions[label] = fraction
		}
	default:
		return failProtocol("unknown sort in model: "+sortTok, form)
	}
	return nil
}

// tokenizeTop splits s on top-level whitespace, treating the "()" empty
// argument list as a single skippable token and leaving the final value
// expression (which may itself be parenthesized) as one joined token.
func tokenizeTop(s string) []string {
	s = strings.TrimSpace(s)
	var out []string
	depth := 0
	start := -1
	flushValue := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(':
			if depth == 0 {
				if s[i:min(i+2, len(s))] == "()" {
					i++ // skip the empty arg-list token entirely
					continue
				}
				start = i
				flushValue = true
			}
			depth++
		case c == ')':
			depth--
			if depth == 0 && flushValue {
				out = append(out, s[start:i+1])
				flushValue = false
			}
		case c == ' ' || c == '\t' || c == '\n':
			if depth == 0 && start >= 0 && !flushValue {
				out = append(out, s[start:i])
				start = -1
			}
		default:
			if depth == 0 && start < 0 {
				start = i
			}
		}
	}
	if start >= 0 && !flushValue {
		out = append(out, s[start:])
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func labelFromSymbol(id string) (int64, error) {
	var digits strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, errProtocolUnbalanced
	}
	return strconv.ParseInt(digits.String(), 10, 64)
}

// parseNumericValue parses an SMT-LIB numeral/decimal, a unary-minus
// wrapped negative ("(- 3)"), or a fraction ("(/ 3.0 10.0)"), returning its
// decimal value and (for a fraction) the original fraction text.
func parseNumericValue(tok string) (decimal.Decimal, string, error) {
	tok = strings.TrimSpace(tok)
	if strings.HasPrefix(tok, "(/") {
		inner := strings.TrimSuffix(strings.TrimPrefix(tok, "(/"), ")")
		parts := tokenizeTop(strings.TrimSpace(inner))
		if len(parts) != 2 {
			return decimal.Decimal{}, "", errProtocolUnbalanced
		}
		num, _, err := parseNumericValue(parts[0])
		if err != nil {
			return decimal.Decimal{}, "", err
		}
		den, _, err := parseNumericValue(parts[1])
		if err != nil {
			return decimal.Decimal{}, "", err
		}
		if den.IsZero() {
			return decimal.Decimal{}, "", errProtocolUnbalanced
		}
		return num.DivRound(den, 16), tok, nil
	}
	if strings.HasPrefix(tok, "(-") {
		inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(tok, "(-"), ")"))
		v, _, err := parseNumericValue(inner)
		if err != nil {
			return decimal.Decimal{}, "", err
		}
		return v.Neg(), "", nil
	}
	v, err := decimal.NewFromString(tok)
	if err != nil {
		return decimal.Decimal{}, "", err
	}
	return v, "", nil
}
