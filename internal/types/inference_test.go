package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlhm-lang/mlhm/internal/ast"
)

func constInt(n int) *ast.EConst {
	return &ast.EConst{Value: &ast.Const{Kind: ast.CInt, Ival: n}}
}

func constBool(b bool) *ast.EConst {
	return &ast.EConst{Value: &ast.Const{Kind: ast.CBool, Bval: b}}
}

func evar(name string) *ast.EVar { return &ast.EVar{Name: name} }

func pvar(name string) *ast.PVar { return &ast.PVar{Name: name} }

// TestInferConst checks every literal kind infers to its base type (§4.5).
func TestInferConst(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expr
		want Type
	}{
		{"int", constInt(42), TInt},
		{"bool", constBool(true), TBool},
		{"string", &ast.EConst{Value: &ast.Const{Kind: ast.CString, Sval: "hi"}}, TString},
		{"unit", &ast.EConst{Value: &ast.Const{Kind: ast.CUnit}}, TUnit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCounter()
			_, ty, err := InferExp(c, NewTypeEnv(), tc.expr)
			require.NoError(t, err)
			assert.True(t, ty.Equals(tc.want), "got %s, want %s", ty, tc.want)
		})
	}
}

// TestInferVarUnbound checks that an unbound reference reports No-variable.
func TestInferVarUnbound(t *testing.T) {
	c := NewCounter()
	_, _, err := InferExp(c, NewTypeEnv(), evar("x"))
	require.Error(t, err)
	var nv *NoVariableError
	require.ErrorAs(t, err, &nv)
	assert.Equal(t, "x", nv.Name)
}

// TestInferIdentityFunction checks `fun x -> x` infers to a polymorphic
// `'a -> 'a` and that let-generalization lets it be applied at two
// different types (the classic let-polymorphism example of §GLOSSARY).
func TestInferIdentityFunction(t *testing.T) {
	c := NewCounter()
	env := NewTypeEnv()

	idFun := &ast.EFun{Param: pvar("x"), Body: evar("x")}
	s1, identityType, err := InferExp(c, env, idFun)
	require.NoError(t, err)
	arrow, ok := Apply(s1, identityType).(*TArrow)
	require.True(t, ok)
	assert.True(t, arrow.From.Equals(arrow.To))

	// let id = fun x -> x in (id 1, id true)
	letExpr := &ast.ELet{
		Pat: pvar("id"),
		Val: idFun,
		Body: &ast.ETuple{Elems: []ast.Expr{
			&ast.EApply{Fn: evar("id"), Arg: constInt(1)},
			&ast.EApply{Fn: evar("id"), Arg: constBool(true)},
		}},
	}
	_, letTy, err := InferExp(c, env, letExpr)
	require.NoError(t, err)
	tup, ok := letTy.(*TTuple)
	require.True(t, ok)
	require.Len(t, tup.Elems, 2)
	assert.True(t, tup.Elems[0].Equals(TInt))
	assert.True(t, tup.Elems[1].Equals(TBool))
}

// TestInferLetRecFactorial checks a recursive factorial-style binding
// infers to int -> int.
func TestInferLetRecFactorial(t *testing.T) {
	c := NewCounter()
	intOp := &TArrow{From: TInt, To: &TArrow{From: TInt, To: TInt}}
	env := NewTypeEnv().
		Extend("<=", S(nil, &TArrow{From: TInt, To: &TArrow{From: TInt, To: TBool}})).
		Extend("*", S(nil, intOp)).
		Extend("-", S(nil, intOp))
	app2 := func(op string, a, b ast.Expr) ast.Expr {
		return &ast.EApply{Fn: &ast.EApply{Fn: evar(op), Arg: a}, Arg: b}
	}

	// let rec fact = fun n -> if n <= 1 then 1 else n * fact (n - 1) in fact
	factBody := &ast.EIf{
		Cond: app2("<=", evar("n"), constInt(1)),
		Then: constInt(1),
		Else: app2("*", evar("n"), &ast.EApply{Fn: evar("fact"), Arg: app2("-", evar("n"), constInt(1))}),
	}
	letRec := &ast.ELet{
		Rec:  true,
		Pat:  pvar("fact"),
		Val:  &ast.EFun{Param: pvar("n"), Body: factBody},
		Body: evar("fact"),
	}
	_, ty, err := InferExp(c, env, letRec)
	require.NoError(t, err)
	arrow, ok := ty.(*TArrow)
	require.True(t, ok)
	assert.True(t, arrow.From.Equals(TInt))
	assert.True(t, arrow.To.Equals(TInt))
}

// TestInferLetRecNonVarPattern checks that a recursive binding whose
// pattern is not a plain variable reports Not-implemented (§4.5, §7).
func TestInferLetRecNonVarPattern(t *testing.T) {
	c := NewCounter()
	letRec := &ast.ELet{
		Rec:  true,
		Pat:  &ast.PTuple{Elems: []ast.Pattern{pvar("a"), pvar("b")}},
		Val:  constInt(1),
		Body: constInt(1),
	}
	_, _, err := InferExp(c, NewTypeEnv(), letRec)
	require.Error(t, err)
	var ni *NotImplementedError
	require.ErrorAs(t, err, &ni)
}

// TestInferEmptyLetTop checks an SValue with zero bindings reports
// Empty-let (§7).
func TestInferEmptyLetTop(t *testing.T) {
	c := NewCounter()
	item := &ast.SValue{Bindings: nil}
	_, err := InferStrItem(c, NewTypeEnv(), item)
	require.Error(t, err)
	var el *EmptyLetError
	require.ErrorAs(t, err, &el)
}

// TestInferConsPattern checks a cons pattern in a match binds head/tail at
// the list's element type.
func TestInferConsPattern(t *testing.T) {
	c := NewCounter()
	env := NewTypeEnv()

	// match (1 :: []) with h :: t -> h
	scrut := &ast.ECons{Head: constInt(1), Tail: &ast.EConst{Value: &ast.Const{Kind: ast.CNil}}}
	matchExpr := &ast.EMatch{
		Scrutinee: scrut,
		Cases: []ast.Case{
			{Pat: &ast.PCons{Head: pvar("h"), Tail: pvar("t")}, Body: evar("h")},
		},
	}
	_, ty, err := InferExp(c, env, matchExpr)
	require.NoError(t, err)
	assert.True(t, ty.Equals(TInt))
}

// TestInferTupleMismatch checks unifying tuples of different arity fails.
func TestInferTupleMismatch(t *testing.T) {
	_, err := Unify(
		&TTuple{Elems: []Type{TInt, TInt}},
		&TTuple{Elems: []Type{TInt, TInt, TInt}},
	)
	require.Error(t, err)
	var ue *UnificationError
	require.ErrorAs(t, err, &ue)
}

// TestOccursCheck checks that unifying 'a with a list of 'a fails rather
// than construct an infinite type.
func TestOccursCheck(t *testing.T) {
	c := NewCounter()
	alpha := c.Fresh()
	_, err := Unify(alpha, &TList{Elem: alpha})
	require.Error(t, err)
	var oe *OccursCheckError
	require.ErrorAs(t, err, &oe)
}

// TestPrettySchemeLettersDeterministic checks free type variables are
// lettered in first-appearance order, independent of the underlying
// counter-assigned IDs (§6).
func TestPrettySchemeLettersDeterministic(t *testing.T) {
	c := NewCounter()
	b := c.Fresh()
	a := c.Fresh()
	scheme := Generalize(nil, &TArrow{From: b, To: a})
	got := PrettyScheme(scheme)
	want := "forall a b. a -> b"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PrettyScheme mismatch (-want +got):\n%s", diff)
	}
}

// TestInferStructureAccumulatesBindings checks a two-item structure builds
// a val environment with both bindings visible (§2, §6).
func TestInferStructureAccumulatesBindings(t *testing.T) {
	structure := &ast.Structure{
		Items: []ast.StrItem{
			&ast.SValue{Bindings: []ast.Binding{{Pat: pvar("one"), Expr: constInt(1)}}},
			&ast.SValue{Bindings: []ast.Binding{{Pat: pvar("two"), Expr: constInt(2)}}},
		},
	}
	env, err := InferStructure(NewTypeEnv(), structure)
	require.NoError(t, err)

	oneScheme, err := env.Lookup("one")
	require.NoError(t, err)
	assert.True(t, oneScheme.Type.Equals(TInt))

	twoScheme, err := env.Lookup("two")
	require.NoError(t, err)
	assert.True(t, twoScheme.Type.Equals(TInt))
}
