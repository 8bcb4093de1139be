package translate

import (
	"errors"

	"github.com/relfind/wmf/bounds"
	"github.com/relfind/wmf/matrix"
	"github.com/relfind/wmf/relast"
	"github.com/relfind/wmf/scalar"
)

// Translator walks one relast.Node tree into the scalar/matrix IR (spec
// component C4). A Translator is built for a single Translate call: its
// Cache and accumulated equations are reset each time Translate is invoked
// on a new root, mirroring how Factory/Interpreter/Translator are all
// scoped to one solve (spec §3 "Lifecycle").
type Translator struct {
	in   *bounds.Interpreter
	f    *scalar.Factory
	opts Options

	cache     *Cache
	equations []*scalar.Scalar
}

// New builds a Translator over in's relations and factory.
func New(in *bounds.Interpreter, opts ...Option) *Translator {
	return &Translator{in: in, f: in.Factory(), opts: NewOptions(opts...)}
}

// Translate lowers root to a Value: a *matrix.Matrix for relation and
// numeric-expression nodes, a boolean *scalar.Scalar for formula nodes
// (spec §4.4 "Contract").
func (t *Translator) Translate(root *relast.Node) (Value, error) {
	t.cache = NewCache(root)
	t.equations = nil
	return t.eval(root, NewEnv())
}

// Equations returns the side obligations accumulated from reflexive-closure
// nodes translated during the last Translate call (spec §4.4 "for
// reflexive closure, collect the emitted fixed-point equations into the
// translation's side obligations").
func (t *Translator) Equations() []*scalar.Scalar { return t.equations }

func (t *Translator) eval(n *relast.Node, env *Env) (Value, error) {
	if n == nil {
		return Value{}, faultInvalidBounds("nil AST node")
	}
	if v, ok := t.cache.Get(n, env); ok {
		t.opts.Logger.Trace().Int("kind", int(n.Kind)).Msg("translate cache hit")
		return v, nil
	}
	t.opts.Logger.Trace().Int("kind", int(n.Kind)).Msg("translate cache miss")
	v, err := t.evalUncached(n, env)
	if err != nil {
		return Value{}, err
	}
	t.cache.Put(n, env, v)
	return v, nil
}

func (t *Translator) evalUncached(n *relast.Node, env *Env) (Value, error) {
	switch n.Kind {
	case relast.KindRelVar:
		m, err := t.in.Interpret(n.Relation)
		if err != nil {
			if errors.Is(err, bounds.ErrUnknownRelation) {
				return Value{}, faultUnboundLeaf(string(n.Relation))
			}
			return Value{}, err
		}
		return relValue(m), nil

	case relast.KindVarRef:
		m, ok := env.Lookup(n.VarName)
		if !ok {
			return Value{}, faultUnboundLeaf(n.VarName)
		}
		return relValue(m), nil

	case relast.KindConstUniv:
		return relValue(t.in.InterpretUniv()), nil
	case relast.KindConstIden:
		return relValue(t.in.InterpretIden()), nil
	case relast.KindConstNone:
		return relValue(t.in.InterpretNone()), nil
	case relast.KindConstInts:
		return relValue(t.in.InterpretInts()), nil

	case relast.KindConstInt:
		dims := matrix.Dims{t.in.Bounds().UniverseSize}
		m, err := t.in.InterpretConstInt(dims, t.f.NumConstant(n.IntValue))
		if err != nil {
			return Value{}, err
		}
		return relValue(m), nil

	case relast.KindUnion, relast.KindIntersection, relast.KindDifference, relast.KindOverride,
		relast.KindProduct, relast.KindJoin, relast.KindDomain, relast.KindRange, relast.KindKhatriRao:
		return t.evalRelBinary(n, env)

	case relast.KindTranspose, relast.KindClosure, relast.KindReflexiveClosure:
		return t.evalRelUnary(n, env)

	case relast.KindProject:
		av, err := t.eval(n.Operand, env)
		if err != nil {
			return Value{}, err
		}
		if av.Kind != RelationValue {
			return Value{}, faultDomainMismatch("project operand must be a relation")
		}
		m, err := matrix.Project(av.Mat, n.Columns)
		if err != nil {
			return Value{}, err
		}
		return relValue(m), nil

	case relast.KindCompr:
		return t.evalComprehension(n, env, false)
	case relast.KindQuantCompr:
		return t.evalComprehension(n, env, true)

	case relast.KindBoolConst:
		return boolValue(t.f.BoolConstant(n.BoolValue)), nil

	case relast.KindNot:
		env.PushFlippedPolarity()
		av, err := t.eval(n.Operand, env)
		env.PopFrame()
		if err != nil {
			return Value{}, err
		}
		bs, err := asScalar(av)
		if err != nil {
			return Value{}, err
		}
		result, err := t.f.Not(bs)
		if err != nil {
			return Value{}, err
		}
		return boolValue(result), nil

	case relast.KindAnd, relast.KindOr:
		return t.evalBoolNary(n, env)

	case relast.KindAll:
		return t.evalQuantifier(n, env, true)
	case relast.KindSome:
		return t.evalQuantifier(n, env, false)

	case relast.KindCompare:
		return t.evalCompare(n, env)

	case relast.KindMultSome, relast.KindMultNo, relast.KindMultOne, relast.KindMultLone:
		return t.evalMultiplicity(n, env)

	case relast.KindIntConst:
		return numScalarValue(t.f, t.f.NumConstant(n.IntValue))

	case relast.KindArith:
		return t.evalArith(n, env)
	case relast.KindChoiceNum:
		return t.evalChoiceNum(n, env)
	case relast.KindUnaryNum:
		return t.evalUnaryNum(n, env)

	case relast.KindSum:
		return t.evalSum(n, env)
	case relast.KindCardinality:
		av, err := t.eval(n.Operand, env)
		if err != nil {
			return Value{}, err
		}
		if av.Kind != RelationValue {
			return Value{}, faultDomainMismatch("cardinality operand must be a relation")
		}
		c, err := matrix.Count(av.Mat)
		if err != nil {
			return Value{}, err
		}
		return numScalarValue(t.f, c)

	default:
		return Value{}, faultInvalidBounds("unrecognized node kind")
	}
}

func (t *Translator) evalRelBinary(n *relast.Node, env *Env) (Value, error) {
	av, err := t.eval(n.Left, env)
	if err != nil {
		return Value{}, err
	}
	bv, err := t.eval(n.Right, env)
	if err != nil {
		return Value{}, err
	}
	if av.Kind != RelationValue || bv.Kind != RelationValue {
		return Value{}, faultDomainMismatch("binary relation operator requires two relations")
	}
	var m *matrix.Matrix
	switch n.Kind {
	case relast.KindUnion:
		m, err = matrix.Union(av.Mat, bv.Mat)
	case relast.KindIntersection:
		m, err = matrix.Intersection(av.Mat, bv.Mat)
	case relast.KindDifference:
		m, err = matrix.Difference(av.Mat, bv.Mat)
	case relast.KindOverride:
		m, err = matrix.Override(av.Mat, bv.Mat)
	case relast.KindProduct:
		m, err = matrix.Cross(av.Mat, bv.Mat)
	case relast.KindJoin:
		m, err = matrix.Dot(av.Mat, bv.Mat)
	case relast.KindDomain:
		m, err = matrix.Domain(av.Mat, bv.Mat)
	case relast.KindRange:
		m, err = matrix.Range(av.Mat, bv.Mat)
	case relast.KindKhatriRao:
		m, err = matrix.KhatriRao(av.Mat, bv.Mat)
	}
	if err != nil {
		return Value{}, err
	}
	return relValue(m), nil
}

func (t *Translator) evalRelUnary(n *relast.Node, env *Env) (Value, error) {
	av, err := t.eval(n.Operand, env)
	if err != nil {
		return Value{}, err
	}
	if av.Kind != RelationValue {
		return Value{}, faultDomainMismatch("unary relation operator requires a relation")
	}
	var m *matrix.Matrix
	switch n.Kind {
	case relast.KindTranspose:
		m, err = matrix.Transpose(av.Mat)
	case relast.KindClosure:
		m, err = matrix.Closure(av.Mat)
	case relast.KindReflexiveClosure:
		var eqs []*scalar.Scalar
		m, eqs, err = matrix.ReflexiveClosure(av.Mat)
		if err == nil {
			t.equations = append(t.equations, eqs...)
		}
	}
	if err != nil {
		return Value{}, err
	}
	return relValue(m), nil
}

func (t *Translator) evalBoolNary(n *relast.Node, env *Env) (Value, error) {
	terms := make([]*scalar.Scalar, 0, len(n.Inputs))
	for _, arm := range n.Inputs {
		v, err := t.eval(arm, env)
		if err != nil {
			return Value{}, err
		}
		s, err := asScalar(v)
		if err != nil {
			return Value{}, err
		}
		terms = append(terms, s)
	}
	var result *scalar.Scalar
	var err error
	if n.Kind == relast.KindAnd {
		result, err = t.f.And(terms...)
	} else {
		result, err = t.f.Or(terms...)
	}
	if err != nil {
		return Value{}, err
	}
	return boolValue(result), nil
}

func (t *Translator) evalCompare(n *relast.Node, env *Env) (Value, error) {
	av, err := t.eval(n.Left, env)
	if err != nil {
		return Value{}, err
	}
	bv, err := t.eval(n.Right, env)
	if err != nil {
		return Value{}, err
	}
	if av.Kind != RelationValue || bv.Kind != RelationValue {
		return Value{}, faultDomainMismatch("comparison requires two relations")
	}
	var result *scalar.Scalar
	switch n.CompareOp {
	case relast.CmpEq:
		result, err = matrix.Eq(av.Mat, bv.Mat)
	case relast.CmpSubset:
		result, err = matrix.Subset(av.Mat, bv.Mat)
	case relast.CmpLt:
		result, err = matrix.Lt(av.Mat, bv.Mat)
	case relast.CmpLeq:
		result, err = matrix.Leq(av.Mat, bv.Mat)
	case relast.CmpGt:
		result, err = matrix.Gt(av.Mat, bv.Mat)
	case relast.CmpGeq:
		result, err = matrix.Geq(av.Mat, bv.Mat)
	}
	if err != nil {
		return Value{}, err
	}
	return boolValue(result), nil
}

func (t *Translator) evalMultiplicity(n *relast.Node, env *Env) (Value, error) {
	av, err := t.eval(n.Operand, env)
	if err != nil {
		return Value{}, err
	}
	if av.Kind != RelationValue {
		return Value{}, faultDomainMismatch("multiplicity assertion requires a relation")
	}
	var result *scalar.Scalar
	switch n.Kind {
	case relast.KindMultSome:
		result, err = matrix.Some(av.Mat)
	case relast.KindMultNo:
		result, err = matrix.No(av.Mat)
	case relast.KindMultOne:
		result, err = matrix.One(av.Mat)
	case relast.KindMultLone:
		result, err = matrix.Lone(av.Mat)
	}
	if err != nil {
		return Value{}, err
	}
	return boolValue(result), nil
}

func (t *Translator) evalArith(n *relast.Node, env *Env) (Value, error) {
	a, err := t.evalScalar(n.Left, env)
	if err != nil {
		return Value{}, err
	}
	b, err := t.evalScalar(n.Right, env)
	if err != nil {
		return Value{}, err
	}
	var result *scalar.Scalar
	switch n.ArithOp {
	case relast.ArithPlus:
		result, err = t.f.Plus(a, b)
	case relast.ArithMinus:
		result, err = t.f.Minus(a, b)
	case relast.ArithTimes:
		result, err = t.f.Times(a, b)
	case relast.ArithDivide:
		result, err = t.f.Divide(a, b)
	case relast.ArithMod:
		result, err = t.f.Mod(a, b)
	}
	if err != nil {
		if errors.Is(err, scalar.ErrArithmetic) {
			return Value{}, faultArithmetic(err.Error())
		}
		return Value{}, err
	}
	return numScalarValue(t.f, result)
}

func (t *Translator) evalChoiceNum(n *relast.Node, env *Env) (Value, error) {
	a, err := t.evalScalar(n.Left, env)
	if err != nil {
		return Value{}, err
	}
	b, err := t.evalScalar(n.Right, env)
	if err != nil {
		return Value{}, err
	}
	var result *scalar.Scalar
	switch n.ChoiceOp {
	case relast.ChoiceMin:
		result, err = t.f.Min(a, b)
	case relast.ChoiceMax:
		result, err = t.f.Max(a, b)
	case relast.ChoiceIte:
		condVal, cerr := t.eval(n.Cond, env)
		if cerr != nil {
			return Value{}, cerr
		}
		cond, cerr := asScalar(condVal)
		if cerr != nil {
			return Value{}, cerr
		}
		result, err = t.f.IteNum(cond, a, b)
	}
	if err != nil {
		return Value{}, err
	}
	return numScalarValue(t.f, result)
}

func (t *Translator) evalUnaryNum(n *relast.Node, env *Env) (Value, error) {
	a, err := t.evalScalar(n.Operand, env)
	if err != nil {
		return Value{}, err
	}
	var result *scalar.Scalar
	switch n.UnaryOp {
	case relast.UnaryNeg:
		result, err = t.f.Neg(a)
	case relast.UnaryAbs:
		result, err = t.f.Abs(a)
	case relast.UnarySgn:
		result, err = t.f.Sgn(a)
	}
	if err != nil {
		return Value{}, err
	}
	return numScalarValue(t.f, result)
}

// evalScalar translates n and extracts its bare scalar value (for numeric
// sub-expressions, which are wrapped as single-cell matrices).
func (t *Translator) evalScalar(n *relast.Node, env *Env) (*scalar.Scalar, error) {
	v, err := t.eval(n, env)
	if err != nil {
		return nil, err
	}
	return asScalar(v)
}

func asScalar(v Value) (*scalar.Scalar, error) {
	switch v.Kind {
	case FormulaValue:
		return v.Bool, nil
	case RelationValue:
		if v.Mat.Capacity() != 1 {
			return nil, faultDomainMismatch("expected a scalar-shaped value")
		}
		return v.Mat.At(0)
	default:
		return nil, faultDomainMismatch("unrecognized value kind")
	}
}

func numScalarValue(f *scalar.Factory, s *scalar.Scalar) (Value, error) {
	m, err := matrix.NewHomogeneous(matrix.Dims{1}, f, s)
	if err != nil {
		return Value{}, err
	}
	return relValue(m), nil
}

// atomMatrix builds the arity-1 singleton relation representing one bound
// atom, the value a declaration variable is bound to during enumeration.
func atomMatrix(universeSize, atom int, f *scalar.Factory) (*matrix.Matrix, error) {
	m, err := matrix.New(matrix.Dims{universeSize}, f)
	if err != nil {
		return nil, err
	}
	if err := m.Set(atom, f.One()); err != nil {
		return nil, err
	}
	return m, nil
}

// declBounds translates every Decl's Bound expression, rejecting any
// declaration whose multiplicity is not ONE (spec §4.4 "HigherOrder when a
// declaration's multiplicity is not ONE").
func (t *Translator) declBounds(decls []relast.Decl, env *Env) ([]*matrix.Matrix, error) {
	out := make([]*matrix.Matrix, len(decls))
	for i, d := range decls {
		if d.Mult != relast.MultOne {
			return nil, faultHigherOrder(d.Var)
		}
		v, err := t.eval(d.Bound, env)
		if err != nil {
			return nil, err
		}
		if v.Kind != RelationValue {
			return nil, faultDomainMismatch("declaration bound must be a relation")
		}
		out[i] = v.Mat
	}
	return out, nil
}

func (t *Translator) membershipGuard(boundsMats []*matrix.Matrix, coords []int) (*scalar.Scalar, error) {
	terms := make([]*scalar.Scalar, len(boundsMats))
	for i, bm := range boundsMats {
		cell, err := bm.At(coords[i])
		if err != nil {
			return nil, err
		}
		neq, err := t.f.Neq(cell, t.f.Zero())
		if err != nil {
			return nil, err
		}
		terms[i] = neq
	}
	return t.f.And(terms...)
}

func (t *Translator) bindDecls(decls []relast.Decl, coords []int, universeSize int) (map[string]*matrix.Matrix, error) {
	bindings := make(map[string]*matrix.Matrix, len(decls))
	for i, d := range decls {
		am, err := atomMatrix(universeSize, coords[i], t.f)
		if err != nil {
			return nil, err
		}
		bindings[d.Var] = am
	}
	return bindings, nil
}

// evalComprehension handles both boolean `{ decls | φ }` and quantitative
// `{ decls | e }` comprehensions (spec §4.4).
func (t *Translator) evalComprehension(n *relast.Node, env *Env, numeric bool) (Value, error) {
	universeSize := t.in.Bounds().UniverseSize
	k := len(n.Decls)
	dims := make(matrix.Dims, k)
	for i := range dims {
		dims[i] = universeSize
	}
	if t.opts.CapacityLimit > 0 && dims.Capacity() > t.opts.CapacityLimit {
		return Value{}, faultCapacityExceeded("comprehension result too large")
	}

	boundsMats, err := t.declBounds(n.Decls, env)
	if err != nil {
		return Value{}, err
	}
	for _, bm := range boundsMats {
		if bm.NonZeroCount() == 0 {
			out, err := matrix.New(dims, t.f)
			if err != nil {
				return Value{}, err
			}
			return relValue(out), nil
		}
	}

	out, err := matrix.New(dims, t.f)
	if err != nil {
		return Value{}, err
	}
	coords := make([]int, k)
	var recurse func(depth int) error
	recurse = func(depth int) error {
		if depth == k {
			bindings, err := t.bindDecls(n.Decls, coords, universeSize)
			if err != nil {
				return err
			}
			env.PushBindings(bindings)
			bodyVal, err := t.eval(n.Body, env)
			env.PopFrame()
			if err != nil {
				return err
			}
			bodyScalar, err := asScalar(bodyVal)
			if err != nil {
				return err
			}
			guard, err := t.membershipGuard(boundsMats, coords)
			if err != nil {
				return err
			}
			var cell *scalar.Scalar
			if numeric {
				cell, err = t.f.IteNum(guard, bodyScalar, t.f.Zero())
			} else {
				cell, err = t.f.And(guard, bodyScalar)
			}
			if err != nil {
				return err
			}
			idx, err := matrix.FlatIndex(dims, coords)
			if err != nil {
				return err
			}
			return out.Set(idx, cell)
		}
		for i := 0; i < universeSize; i++ {
			coords[depth] = i
			if err := recurse(depth + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := recurse(0); err != nil {
		return Value{}, err
	}
	return relValue(out), nil
}

// evalQuantifier handles `all decls | φ` (universal=true) and
// `some decls | φ` (universal=false) (spec §4.4).
func (t *Translator) evalQuantifier(n *relast.Node, env *Env, universal bool) (Value, error) {
	universeSize := t.in.Bounds().UniverseSize
	k := len(n.Decls)
	boundsMats, err := t.declBounds(n.Decls, env)
	if err != nil {
		return Value{}, err
	}
	terms := make([]*scalar.Scalar, 0, 1)
	coords := make([]int, k)
	var recurse func(depth int) error
	recurse = func(depth int) error {
		if depth == k {
			bindings, err := t.bindDecls(n.Decls, coords, universeSize)
			if err != nil {
				return err
			}
			env.PushBindings(bindings)
			bodyVal, err := t.eval(n.Body, env)
			env.PopFrame()
			if err != nil {
				return err
			}
			bodyScalar, err := asScalar(bodyVal)
			if err != nil {
				return err
			}
			member, err := t.membershipGuard(boundsMats, coords)
			if err != nil {
				return err
			}
			var term *scalar.Scalar
			if universal {
				notMember, err := t.f.Not(member)
				if err != nil {
					return err
				}
				term, err = t.f.Or(notMember, bodyScalar)
				if err != nil {
					return err
				}
			} else {
				term, err = t.f.And(member, bodyScalar)
				if err != nil {
					return err
				}
			}
			terms = append(terms, term)
			return nil
		}
		for i := 0; i < universeSize; i++ {
			coords[depth] = i
			if err := recurse(depth + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := recurse(0); err != nil {
		return Value{}, err
	}
	var result *scalar.Scalar
	if universal {
		result, err = t.f.And(terms...)
	} else {
		result, err = t.f.Or(terms...)
	}
	if err != nil {
		return Value{}, err
	}
	return boolValue(result), nil
}

// evalSum handles `sum decls | ie` (spec §4.4 "accumulate over tuples,
// guarding each summand by the declarations").
func (t *Translator) evalSum(n *relast.Node, env *Env) (Value, error) {
	universeSize := t.in.Bounds().UniverseSize
	k := len(n.Decls)
	boundsMats, err := t.declBounds(n.Decls, env)
	if err != nil {
		return Value{}, err
	}
	terms := make([]*scalar.Scalar, 0, 1)
	coords := make([]int, k)
	var recurse func(depth int) error
	recurse = func(depth int) error {
		if depth == k {
			bindings, err := t.bindDecls(n.Decls, coords, universeSize)
			if err != nil {
				return err
			}
			env.PushBindings(bindings)
			bodyScalar, err := t.evalScalar(n.Body, env)
			env.PopFrame()
			if err != nil {
				return err
			}
			guard, err := t.membershipGuard(boundsMats, coords)
			if err != nil {
				return err
			}
			guarded, err := t.f.IteNum(guard, bodyScalar, t.f.Zero())
			if err != nil {
				return err
			}
			terms = append(terms, guarded)
			return nil
		}
		for i := 0; i < universeSize; i++ {
			coords[depth] = i
			if err := recurse(depth + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := recurse(0); err != nil {
		return Value{}, err
	}
	sum, err := t.f.Plus(terms...)
	if err != nil {
		return Value{}, err
	}
	return numScalarValue(t.f, sum)
}
