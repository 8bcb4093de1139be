package relast

import (
	"github.com/relfind/wmf/bounds"
	"github.com/shopspring/decimal"
)

// RelVar builds a reference to a declared relation symbol.
func RelVar(id bounds.RelationID) *Node {
	return &Node{Kind: KindRelVar, Relation: id}
}

// VarRef builds a reference to a declaration-bound variable visible inside
// a comprehension or quantifier body.
func VarRef(name string) *Node {
	return &Node{Kind: KindVarRef, VarName: name}
}

// ConstUniv builds the canonical UNIV constant reference.
func ConstUniv() *Node { return &Node{Kind: KindConstUniv} }

// ConstIden builds the canonical IDEN constant reference.
func ConstIden() *Node { return &Node{Kind: KindConstIden} }

// ConstNone builds the canonical NONE constant reference.
func ConstNone() *Node { return &Node{Kind: KindConstNone} }

// ConstInts builds the canonical INTS constant reference.
func ConstInts() *Node { return &Node{Kind: KindConstInts} }

// ConstInt builds a relation-shaped broadcast of the integer literal v.
func ConstInt(v decimal.Decimal) *Node {
	return &Node{Kind: KindConstInt, IntValue: v}
}

func binary(kind Kind, a, b *Node) (*Node, error) {
	if a == nil || b == nil {
		return nil, ErrNilOperand
	}
	return &Node{Kind: kind, Left: a, Right: b}, nil
}

func unary(kind Kind, a *Node) (*Node, error) {
	if a == nil {
		return nil, ErrNilOperand
	}
	return &Node{Kind: kind, Operand: a}, nil
}

// Union builds a ∪ b.
func Union(a, b *Node) (*Node, error) { return binary(KindUnion, a, b) }

// Intersection builds a ∩ b.
func Intersection(a, b *Node) (*Node, error) { return binary(KindIntersection, a, b) }

// Difference builds a \ b.
func Difference(a, b *Node) (*Node, error) { return binary(KindDifference, a, b) }

// Override builds a ++ b.
func Override(a, b *Node) (*Node, error) { return binary(KindOverride, a, b) }

// Product builds the Kronecker cross product a -> b.
func Product(a, b *Node) (*Node, error) { return binary(KindProduct, a, b) }

// Join builds the relational dot-join a.b.
func Join(a, b *Node) (*Node, error) { return binary(KindJoin, a, b) }

// Domain builds a <: b (restriction of b's domain to a).
func Domain(a, b *Node) (*Node, error) { return binary(KindDomain, a, b) }

// Range builds a :> b (restriction of a's range to b).
func Range(a, b *Node) (*Node, error) { return binary(KindRange, a, b) }

// KhatriRao builds the column-wise Khatri-Rao product a * b.
func KhatriRao(a, b *Node) (*Node, error) { return binary(KindKhatriRao, a, b) }

// Transpose builds a~.
func Transpose(a *Node) (*Node, error) { return unary(KindTranspose, a) }

// Closure builds a^ (transitive closure).
func Closure(a *Node) (*Node, error) { return unary(KindClosure, a) }

// ReflexiveClosure builds a* (reflexive-transitive closure).
func ReflexiveClosure(a *Node) (*Node, error) { return unary(KindReflexiveClosure, a) }

// Project builds a node keeping a's axes listed in cols, in that order;
// cells of the dropped axes that land on one result cell are combined via
// join (see matrix.Project).
func Project(a *Node, cols ...int) (*Node, error) {
	if a == nil {
		return nil, ErrNilOperand
	}
	if len(cols) == 0 {
		return nil, ErrEmptyColumns
	}
	return &Node{Kind: KindProject, Operand: a, Columns: cols}, nil
}

// BoolConst builds a literal boolean formula.
func BoolConst(v bool) *Node { return &Node{Kind: KindBoolConst, BoolValue: v} }

// Not builds ¬a.
func Not(a *Node) (*Node, error) { return unary(KindNot, a) }

func nary(kind Kind, arms []*Node) (*Node, error) {
	if len(arms) == 0 {
		return nil, ErrEmptyInputs
	}
	for _, a := range arms {
		if a == nil {
			return nil, ErrNilOperand
		}
	}
	return &Node{Kind: kind, Inputs: arms}, nil
}

// And builds the conjunction of the given formulas.
func And(arms ...*Node) (*Node, error) { return nary(KindAnd, arms) }

// Or builds the disjunction of the given formulas.
func Or(arms ...*Node) (*Node, error) { return nary(KindOr, arms) }

func validDecls(decls []Decl) error {
	if len(decls) == 0 {
		return ErrEmptyInputs
	}
	for _, d := range decls {
		if d.Var == "" {
			return ErrMissingVar
		}
		if d.Bound == nil {
			return ErrNilOperand
		}
	}
	return nil
}

// All builds a universally quantified formula: all decls | body.
func All(decls []Decl, body *Node) (*Node, error) {
	if err := validDecls(decls); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, ErrNilOperand
	}
	return &Node{Kind: KindAll, Decls: decls, Body: body}, nil
}

// Some builds an existentially quantified formula: some decls | body.
func Some(decls []Decl, body *Node) (*Node, error) {
	if err := validDecls(decls); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, ErrNilOperand
	}
	return &Node{Kind: KindSome, Decls: decls, Body: body}, nil
}

// Compare builds a relation-level comparison a op b.
func Compare(op CompareOp, a, b *Node) (*Node, error) {
	n, err := binary(KindCompare, a, b)
	if err != nil {
		return nil, err
	}
	n.CompareOp = op
	return n, nil
}

func multAssert(kind Kind, a *Node) (*Node, error) { return unary(kind, a) }

// MultSome builds the assertion that a is non-empty.
func MultSome(a *Node) (*Node, error) { return multAssert(KindMultSome, a) }

// MultNo builds the assertion that a is empty.
func MultNo(a *Node) (*Node, error) { return multAssert(KindMultNo, a) }

// MultOne builds the assertion that a contains exactly one tuple.
func MultOne(a *Node) (*Node, error) { return multAssert(KindMultOne, a) }

// MultLone builds the assertion that a contains at most one tuple.
func MultLone(a *Node) (*Node, error) { return multAssert(KindMultLone, a) }

// IntConst builds a bare numeric literal expression.
func IntConst(v decimal.Decimal) *Node { return &Node{Kind: KindIntConst, IntValue: v} }

// Arith builds a numeric arithmetic expression a op b.
func Arith(op ArithOp, a, b *Node) (*Node, error) {
	n, err := binary(KindArith, a, b)
	if err != nil {
		return nil, err
	}
	n.ArithOp = op
	return n, nil
}

// Min builds the numeric expression min(a, b).
func Min(a, b *Node) (*Node, error) {
	n, err := binary(KindChoiceNum, a, b)
	if err != nil {
		return nil, err
	}
	n.ChoiceOp = ChoiceMin
	return n, nil
}

// Max builds the numeric expression max(a, b).
func Max(a, b *Node) (*Node, error) {
	n, err := binary(KindChoiceNum, a, b)
	if err != nil {
		return nil, err
	}
	n.ChoiceOp = ChoiceMax
	return n, nil
}

// Ite builds the numeric if-then-else expression: cond ? a : b.
func Ite(cond, a, b *Node) (*Node, error) {
	if cond == nil {
		return nil, ErrNilOperand
	}
	n, err := binary(KindChoiceNum, a, b)
	if err != nil {
		return nil, err
	}
	n.ChoiceOp = ChoiceIte
	n.Cond = cond
	return n, nil
}

// UnaryNum builds a unary numeric expression over a.
func UnaryNum(op UnaryOp, a *Node) (*Node, error) {
	n, err := unary(KindUnaryNum, a)
	if err != nil {
		return nil, err
	}
	n.UnaryOp = op
	return n, nil
}

// Sum builds a quantitative sum comprehension: sum decls | ie.
func Sum(decls []Decl, ie *Node) (*Node, error) {
	if err := validDecls(decls); err != nil {
		return nil, err
	}
	if ie == nil {
		return nil, ErrNilOperand
	}
	return &Node{Kind: KindSum, Decls: decls, Body: ie}, nil
}

// Cardinality builds #a, the count of a's present tuples.
func Cardinality(a *Node) (*Node, error) { return unary(KindCardinality, a) }

// Compr builds a boolean relational comprehension: { decls | body }.
func Compr(decls []Decl, body *Node) (*Node, error) {
	if err := validDecls(decls); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, ErrNilOperand
	}
	return &Node{Kind: KindCompr, Decls: decls, Body: body}, nil
}

// QuantCompr builds a quantitative relational comprehension: { decls | ie }.
func QuantCompr(decls []Decl, ie *Node) (*Node, error) {
	if err := validDecls(decls); err != nil {
		return nil, err
	}
	if ie == nil {
		return nil, ErrNilOperand
	}
	return &Node{Kind: KindQuantCompr, Decls: decls, Body: ie}, nil
}
