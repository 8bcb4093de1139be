package translate

import "errors"

// FaultKind tags the category of a TranslationFault (spec §7
// "TranslationFault: UnboundLeaf, HigherOrder, Arithmetic, DomainMismatch,
// CapacityExceeded, InvalidBounds").
type FaultKind int

const (
	UnboundLeaf FaultKind = iota
	HigherOrder
	Arithmetic
	DomainMismatch
	CapacityExceeded
	InvalidBounds
)

func (k FaultKind) String() string {
	switch k {
	case UnboundLeaf:
		return "UnboundLeaf"
	case HigherOrder:
		return "HigherOrder"
	case Arithmetic:
		return "Arithmetic"
	case DomainMismatch:
		return "DomainMismatch"
	case CapacityExceeded:
		return "CapacityExceeded"
	case InvalidBounds:
		return "InvalidBounds"
	default:
		return "UnknownFault"
	}
}

// errUnboundLeaf etc. are sentinels matched with errors.Is; TranslationFault
// wraps one of these with node-specific context.
var (
	errUnboundLeaf      = errors.New("translate: unbound variable")
	errHigherOrder      = errors.New("translate: declaration multiplicity is not ONE")
	errArithmetic       = errors.New("translate: arithmetic fault")
	errDomainMismatch   = errors.New("translate: mismatched factories or dimensions")
	errCapacityExceeded = errors.New("translate: universe^arity exceeds implementation limits")
	errInvalidBounds    = errors.New("translate: node references bounds the interpreter does not have")
)

// TranslationFault is the error type every public Translate call returns on
// failure. Kind selects the sentinel to match with errors.Is; Detail names
// the offending symbol or node for diagnostics.
type TranslationFault struct {
	Kind   FaultKind
	Detail string
	err    error
}

func newFault(kind FaultKind, sentinel error, detail string) *TranslationFault {
	return &TranslationFault{Kind: kind, Detail: detail, err: sentinel}
}

func (f *TranslationFault) Error() string {
	if f.Detail == "" {
		return "translate: " + f.Kind.String()
	}
	return "translate: " + f.Kind.String() + ": " + f.Detail
}

func (f *TranslationFault) Unwrap() error { return f.err }

func faultUnboundLeaf(name string) error {
	return newFault(UnboundLeaf, errUnboundLeaf, name)
}

func faultHigherOrder(varName string) error {
	return newFault(HigherOrder, errHigherOrder, varName)
}

func faultArithmetic(detail string) error {
	return newFault(Arithmetic, errArithmetic, detail)
}

func faultDomainMismatch(detail string) error {
	return newFault(DomainMismatch, errDomainMismatch, detail)
}

func faultCapacityExceeded(detail string) error {
	return newFault(CapacityExceeded, errCapacityExceeded, detail)
}

func faultInvalidBounds(detail string) error {
	return newFault(InvalidBounds, errInvalidBounds, detail)
}
