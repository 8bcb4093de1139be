package scalar

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Sentinel errors for the scalar package. Every public constructor that can
// fail returns one of these (optionally wrapped with fmt.Errorf's %w),
// never a bare string error, so callers can use errors.Is.
var (
	// ErrDomainMismatch is returned when a Scalar from a different Factory
	// is passed to a constructor method of this Factory.
	ErrDomainMismatch = errors.New("scalar: mixing scalars from different factories")

	// ErrArithmetic is returned on a constant arithmetic fault, such as a
	// constant division or modulo by the constant zero.
	ErrArithmetic = errors.New("scalar: arithmetic fault")

	// ErrBadArity names a number of inputs inconsistent with an operator
	// (e.g. NOT with other than one input, ITE with other than three). No
	// constructor in this package returns it.
	ErrBadArity = errors.New("scalar: wrong number of inputs for operator")
)

// Domain selects the semiring family a Factory computes over.
type Domain int

const (
	// Integer selects plain integer arithmetic with a zero-guarded min/max
	// pair standing in for tnorm/tconorm. Factory.Plus does not saturate;
	// matrix.Plus caps its sums at the factory's MaxWeight when one is set.
	Integer Domain = iota
	// Fuzzy selects one of the [0,1]-valued t-norm/t-conorm families.
	Fuzzy
)

func (d Domain) String() string {
	switch d {
	case Integer:
		return "INTEGER"
	case Fuzzy:
		return "FUZZY"
	default:
		return "UNKNOWN_DOMAIN"
	}
}

// TNorm names one of the fuzzy conjunction/disjunction families a Factory
// may be parameterized with. Meaningless (ignored) when Domain is Integer.
type TNorm int

const (
	Godel TNorm = iota
	Lukasiewicz
	Product
	Drastic
	Einstein
	AddMin
	MaxProduct
)

func (t TNorm) String() string {
	switch t {
	case Godel:
		return "Godel"
	case Lukasiewicz:
		return "Lukasiewicz"
	case Product:
		return "Product"
	case Drastic:
		return "Drastic"
	case Einstein:
		return "Einstein"
	case AddMin:
		return "Add_Min"
	case MaxProduct:
		return "Max_Product"
	default:
		return "UNKNOWN_TNORM"
	}
}

// Kind tags the variant a Scalar node holds. Scalar is a single tagged
// struct rather than a deep interface hierarchy: the translator and the
// serializer both switch on Kind, so a flat representation keeps pattern
// matching exhaustive and easy to extend in one place.
type Kind int

const (
	KindBoolConst Kind = iota
	KindBoolVar
	KindBoolGate
	KindNumConst
	KindNumVar
	KindNumAritGate
	KindNumChoiceGate
	KindNumUnaryGate
	KindCmpGate
	KindBinaryValue
)

// BoolOp enumerates boolean gate operators.
type BoolOp int

const (
	AND BoolOp = iota
	OR
	NOT
	ITEBool
)

// AritOp enumerates binary/n-ary numeric arithmetic operators.
type AritOp int

const (
	PLUS AritOp = iota
	MINUS
	TIMES
	DIV
	MOD
)

// ChoiceOp enumerates MIN/MAX/ITE choice operators over two numeric arms.
type ChoiceOp int

const (
	MIN ChoiceOp = iota
	MAX
	ITENum
)

// UnaryOp enumerates unary numeric operators.
type UnaryOp int

const (
	NEG UnaryOp = iota
	ABS
	SGN
)

// CmpOp enumerates comparison operators, all boolean-valued.
type CmpOp int

const (
	EQ CmpOp = iota
	NEQ
	LT
	LEQ
	GT
	GEQ
)

// VarConstraint restricts the value a NumVar may take, per spec §3.
type VarConstraint int

const (
	// FreeVar places no constraint beyond the Factory's declared range.
	FreeVar VarConstraint = iota
	// NonZeroVar requires the variable's solved value to be non-zero;
	// used for lower-bound tuples of a quantitative relation.
	NonZeroVar
	// ZeroVar pins the variable to zero (used rarely, e.g. disabled cells).
	ZeroVar
)

// Scalar is an immutable node of the circuit IR. Exactly one Kind-specific
// group of fields is meaningful for any given node; see the Kind constants
// above for which.
//
// Scalar values are allocated exclusively by Factory methods (never with a
// composite literal from outside the package) so that constant folding,
// identity elimination, and hash-consing are never bypassed.
type Scalar struct {
	label   int64
	kind    Kind
	factory *Factory

	// KindBoolConst / KindNumConst
	boolConst bool
	numConst  decimal.Decimal

	// KindBoolVar / KindNumVar
	varID         int64
	constraint    VarConstraint // NumVar only
	maxValue      *decimal.Decimal
	allowedValues []decimal.Decimal

	// KindBoolGate / KindNumAritGate / KindNumChoiceGate / KindNumUnaryGate / KindCmpGate
	boolOp   BoolOp
	aritOp   AritOp
	choiceOp ChoiceOp
	unaryOp  UnaryOp
	cmpOp    CmpOp
	inputs   []*Scalar // gate operands, in declaration order
	cond     *Scalar   // ITE condition, only for NumChoiceGate/ITENum

	// KindBinaryValue
	numPart  *Scalar
	boolPart *Scalar
}

// Label returns this Scalar's unique integer label. ZERO and ONE carry the
// fixed labels documented in spec §3; primary variables are assigned in
// increasing order starting above those reserved values.
func (s *Scalar) Label() int64 { return s.label }

// Kind reports which variant this Scalar is.
func (s *Scalar) Kind() Kind { return s.kind }

// Factory returns the Factory that allocated this Scalar.
func (s *Scalar) Factory() *Factory { return s.factory }

// IsBoolConst reports whether this is a boolean constant, and its value.
func (s *Scalar) IsBoolConst() (value, ok bool) {
	if s.kind != KindBoolConst {
		return false, false
	}
	return s.boolConst, true
}

// IsNumConst reports whether this is a numeric constant, and its value.
func (s *Scalar) IsNumConst() (value decimal.Decimal, ok bool) {
	if s.kind != KindNumConst {
		return decimal.Zero, false
	}
	return s.numConst, true
}

// VarID returns the identifier of a BoolVar or NumVar node (the "primary
// variable label" used to correlate SMT model entries back to relations).
func (s *Scalar) VarID() int64 { return s.varID }

// Constraint returns the NumVar constraint (meaningless for other kinds).
func (s *Scalar) Constraint() VarConstraint { return s.constraint }

// Inputs returns the gate operands of a gate-kind Scalar (nil otherwise).
func (s *Scalar) Inputs() []*Scalar { return s.inputs }

// Cond returns the ITE condition of a NumChoiceGate/ITENum node (nil
// otherwise).
func (s *Scalar) Cond() *Scalar { return s.cond }

// BoolOp returns the boolean gate operator of a KindBoolGate node
// (meaningless for other kinds). Exposed so the SMT serializer (package
// smt) can render a gate without reaching into package-private fields.
func (s *Scalar) BoolOp() BoolOp { return s.boolOp }

// AritOp returns the arithmetic operator of a KindNumAritGate node.
func (s *Scalar) AritOp() AritOp { return s.aritOp }

// ChoiceOp returns the choice operator of a KindNumChoiceGate node.
func (s *Scalar) ChoiceOp() ChoiceOp { return s.choiceOp }

// UnaryOp returns the unary operator of a KindNumUnaryGate node.
func (s *Scalar) UnaryOp() UnaryOp { return s.unaryOp }

// CmpOp returns the comparison operator of a KindCmpGate node.
func (s *Scalar) CmpOp() CmpOp { return s.cmpOp }

// NumPart / BoolPart decompose a BinaryValue node.
func (s *Scalar) NumPart() *Scalar  { return s.numPart }
func (s *Scalar) BoolPart() *Scalar { return s.boolPart }

// IsBoolean reports whether this Scalar evaluates in the boolean domain
// (as opposed to the numeric domain). BinaryValue is boolean-addressable
// via BoolPart but numeric-addressable via NumPart, so it reports true here
// since most call sites that ask "is this a condition" want the bool side.
func (s *Scalar) IsBoolean() bool {
	switch s.kind {
	case KindBoolConst, KindBoolVar, KindBoolGate, KindCmpGate:
		return true
	case KindBinaryValue:
		return true
	default:
		return false
	}
}
