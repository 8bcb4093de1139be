package relast

import (
	"github.com/relfind/wmf/bounds"
	"github.com/shopspring/decimal"
)

// Kind tags the variant a Node holds.
type Kind int

const (
	// Relation-expression leaves and constants.
	KindRelVar Kind = iota
	KindVarRef // reference to a declaration-bound variable inside a comprehension/quantifier body
	KindConstUniv
	KindConstIden
	KindConstNone
	KindConstInts
	KindConstInt

	// Relation-expression combinators (spec §4.2).
	KindUnion
	KindIntersection
	KindDifference
	KindOverride
	KindProduct // cross (Kronecker)
	KindJoin    // dot (min-max product)
	KindTranspose
	KindClosure
	KindReflexiveClosure
	KindDomain
	KindRange
	KindProject
	KindKhatriRao

	// Comprehensions (spec §4.4).
	KindCompr      // { decls | φ }
	KindQuantCompr // { decls | numeric expr }

	// Boolean formulas.
	KindBoolConst
	KindNot
	KindAnd
	KindOr
	KindAll  // all decls | φ
	KindSome // some decls | φ
	KindCompare
	KindMultSome
	KindMultNo
	KindMultOne
	KindMultLone

	// Numeric (integer/quantitative) expressions.
	KindIntConst // bound numeric literal reference (distinct from KindConstInt, the relation-shaped broadcast)
	KindArith
	KindChoiceNum
	KindUnaryNum
	KindSum         // sum decls | ie
	KindCardinality // #R
)

// CompareOp enumerates the relation-level comparison operators (spec §4.2
// "Comparisons between matrices").
type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpSubset
	CmpLt
	CmpLeq
	CmpGt
	CmpGeq
)

// ArithOp enumerates numeric-expression arithmetic operators (spec §3
// NumAritGate).
type ArithOp int

const (
	ArithPlus ArithOp = iota
	ArithMinus
	ArithTimes
	ArithDivide
	ArithMod
)

// ChoiceOp enumerates the numeric choice operators of KindChoiceNum (spec
// §3 NumChoiceGate): MIN, MAX, and ITE, whose condition is the node's Cond
// field.
type ChoiceOp int

const (
	ChoiceMin ChoiceOp = iota
	ChoiceMax
	ChoiceIte
)

// UnaryOp enumerates unary numeric operators (spec §3 NumUnaryGate).
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryAbs
	UnarySgn
)

// Multiplicity constrains how many tuples a declaration's bound may
// contribute (spec §4.4 "TranslationFault::HigherOrder when a
// declaration's multiplicity is not ONE").
type Multiplicity int

const (
	MultOne Multiplicity = iota
	MultLone
	MultSome
	MultSet
)

// Decl is one declaration inside a comprehension or quantifier: a bound
// variable name ranging over Bound's tuples, restricted to Mult tuples at
// a time.
type Decl struct {
	Var   string
	Bound *Node
	Mult  Multiplicity
}

// Node is a single node of the relational AST (spec §3/§4.4). Exactly one
// Kind-specific group of fields is meaningful for a given node.
type Node struct {
	Kind Kind

	// KindRelVar
	Relation bounds.RelationID

	// KindVarRef
	VarName string

	// KindConstInt / KindIntConst
	IntValue decimal.Decimal

	// Binary relation combinators: KindUnion, KindIntersection,
	// KindDifference, KindOverride, KindProduct, KindJoin, KindDomain,
	// KindRange, KindKhatriRao
	Left  *Node
	Right *Node

	// Unary relation combinators: KindTranspose, KindClosure,
	// KindReflexiveClosure, KindNot
	Operand *Node

	// KindProject
	Columns []int

	// KindCompr, KindQuantCompr, KindAll, KindSome, KindSum
	Decls []Decl
	Body  *Node

	// KindBoolConst
	BoolValue bool

	// KindAnd / KindOr: every arm, however many there are
	Inputs []*Node

	// KindCompare
	CompareOp CompareOp

	// KindMultSome / KindMultNo / KindMultOne / KindMultLone
	// (Operand holds the relation expression)

	// KindArith
	ArithOp ArithOp

	// KindChoiceNum
	ChoiceOp ChoiceOp
	Cond     *Node

	// KindUnaryNum
	UnaryOp UnaryOp
}
