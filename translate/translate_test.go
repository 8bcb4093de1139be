package translate_test

import (
	"testing"

	"github.com/relfind/wmf/bounds"
	"github.com/relfind/wmf/relast"
	"github.com/relfind/wmf/scalar"
	"github.com/relfind/wmf/translate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func fixtureInterpreter(t *testing.T) (*bounds.Interpreter, *scalar.Factory) {
	t.Helper()
	f := scalar.NewFactory()
	b := bounds.Bounds{
		UniverseSize: 2,
		Relations: map[bounds.RelationID]bounds.RelationBounds{
			"R": {
				Arity:        1,
				Quantitative: false,
				Lower:        bounds.NewIndexSet(0),
				Upper:        bounds.NewIndexSet(0, 1),
			},
		},
		IntAtoms: bounds.NewIndexSet(1),
	}
	in, err := bounds.New(b, f)
	require.NoError(t, err)
	return in, f
}

func TestTranslate_RelVarLookup(t *testing.T) {
	t.Parallel()
	in, f := fixtureInterpreter(t)
	tr := translate.New(in)
	v, err := tr.Translate(relast.RelVar("R"))
	require.NoError(t, err)
	require.Equal(t, translate.RelationValue, v.Kind)

	cell0, err := v.Mat.At(0)
	require.NoError(t, err)
	require.Same(t, f.One(), cell0)

	cell1, err := v.Mat.At(1)
	require.NoError(t, err)
	require.Equal(t, scalar.KindBinaryValue, cell1.Kind())
}

func TestTranslate_UnboundRelVar_FailsWithUnboundLeaf(t *testing.T) {
	t.Parallel()
	in, _ := fixtureInterpreter(t)
	tr := translate.New(in)
	_, err := tr.Translate(relast.RelVar("nope"))
	require.Error(t, err)
	var fault *translate.TranslationFault
	require.ErrorAs(t, err, &fault)
	require.Equal(t, translate.UnboundLeaf, fault.Kind)
}

func TestTranslate_UnboundVarRef_FailsWithUnboundLeaf(t *testing.T) {
	t.Parallel()
	in, _ := fixtureInterpreter(t)
	tr := translate.New(in)
	_, err := tr.Translate(relast.VarRef("x"))
	require.Error(t, err)
	var fault *translate.TranslationFault
	require.ErrorAs(t, err, &fault)
	require.Equal(t, translate.UnboundLeaf, fault.Kind)
}

func TestTranslate_Union_WithNone_IsIdentity(t *testing.T) {
	t.Parallel()
	in, _ := fixtureInterpreter(t)
	tr := translate.New(in)
	node, err := relast.Union(relast.RelVar("R"), relast.ConstNone())
	require.NoError(t, err)
	unioned, err := tr.Translate(node)
	require.NoError(t, err)
	plain, err := tr.Translate(relast.RelVar("R"))
	require.NoError(t, err)

	c0, err := unioned.Mat.At(0)
	require.NoError(t, err)
	p0, err := plain.Mat.At(0)
	require.NoError(t, err)
	require.Same(t, p0, c0)
}

func TestTranslate_Subset_IsBooleanValued(t *testing.T) {
	t.Parallel()
	in, _ := fixtureInterpreter(t)
	tr := translate.New(in)
	node, err := relast.Compare(relast.CmpSubset, relast.RelVar("R"), relast.ConstUniv())
	require.NoError(t, err)
	v, err := tr.Translate(node)
	require.NoError(t, err)
	require.Equal(t, translate.FormulaValue, v.Kind)
	require.True(t, v.Bool.IsBoolean())
}

func TestTranslate_MultSome_OnUniv_IsConstantTrue(t *testing.T) {
	t.Parallel()
	in, _ := fixtureInterpreter(t)
	tr := translate.New(in)
	node, err := relast.MultSome(relast.ConstUniv())
	require.NoError(t, err)
	v, err := tr.Translate(node)
	require.NoError(t, err)
	b, ok := v.Bool.IsBoolConst()
	require.True(t, ok)
	require.True(t, b)
}

func TestTranslate_All_QuantifierOverUniv_IsConstantTrue(t *testing.T) {
	t.Parallel()
	in, _ := fixtureInterpreter(t)
	tr := translate.New(in)
	decls := []relast.Decl{{Var: "x", Bound: relast.ConstUniv(), Mult: relast.MultOne}}
	body, err := relast.MultSome(relast.VarRef("x"))
	require.NoError(t, err)
	node, err := relast.All(decls, body)
	require.NoError(t, err)

	v, err := tr.Translate(node)
	require.NoError(t, err)
	b, ok := v.Bool.IsBoolConst()
	require.True(t, ok)
	require.True(t, b)
}

func TestTranslate_HigherOrderDecl_Fails(t *testing.T) {
	t.Parallel()
	in, _ := fixtureInterpreter(t)
	tr := translate.New(in)
	decls := []relast.Decl{{Var: "x", Bound: relast.ConstUniv(), Mult: relast.MultSome}}
	node, err := relast.All(decls, relast.BoolConst(true))
	require.NoError(t, err)

	_, err = tr.Translate(node)
	require.Error(t, err)
	var fault *translate.TranslationFault
	require.ErrorAs(t, err, &fault)
	require.Equal(t, translate.HigherOrder, fault.Kind)
}

func TestTranslate_Sum_CountsIntAtoms(t *testing.T) {
	t.Parallel()
	in, _ := fixtureInterpreter(t)
	tr := translate.New(in)
	decls := []relast.Decl{{Var: "x", Bound: relast.ConstInts(), Mult: relast.MultOne}}
	node, err := relast.Sum(decls, relast.IntConst(decimal.NewFromInt(1)))
	require.NoError(t, err)

	v, err := tr.Translate(node)
	require.NoError(t, err)
	cell, err := v.Mat.At(0)
	require.NoError(t, err)
	val, ok := cell.IsNumConst()
	require.True(t, ok)
	require.True(t, val.Equal(decimal.NewFromInt(1)))
}

func TestTranslate_Comprehension_ClosedOverUniverse(t *testing.T) {
	t.Parallel()
	in, _ := fixtureInterpreter(t)
	tr := translate.New(in)
	decls := []relast.Decl{{Var: "x", Bound: relast.ConstUniv(), Mult: relast.MultOne}}
	node, err := relast.Compr(decls, relast.BoolConst(true))
	require.NoError(t, err)

	v, err := tr.Translate(node)
	require.NoError(t, err)
	require.Equal(t, 2, v.Mat.Capacity())

	cell0, err := v.Mat.At(0)
	require.NoError(t, err)
	b, ok := cell0.IsBoolConst()
	require.True(t, ok)
	require.True(t, b)
}

func TestTranslate_Comprehension_EmptySupportYieldsEmptyMatrix(t *testing.T) {
	t.Parallel()
	in, _ := fixtureInterpreter(t)
	tr := translate.New(in)
	emptyUnary, err := relast.Difference(relast.ConstUniv(), relast.ConstUniv())
	require.NoError(t, err)
	decls := []relast.Decl{{Var: "x", Bound: emptyUnary, Mult: relast.MultOne}}
	node, err := relast.Compr(decls, relast.BoolConst(true))
	require.NoError(t, err)

	v, err := tr.Translate(node)
	require.NoError(t, err)
	require.Equal(t, 0, v.Mat.NonZeroCount())
}
