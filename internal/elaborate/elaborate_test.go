package elaborate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlhm-lang/mlhm/internal/ast"
	"github.com/mlhm-lang/mlhm/internal/core"
)

func pvar(name string) *ast.PVar { return &ast.PVar{Name: name} }
func evar(name string) *ast.EVar { return &ast.EVar{Name: name} }

// TestPeFunTuplePattern checks that eliminating `fun (a, b) -> a + b`
// produces a one-parameter function whose body projects both tuple
// components before using them.
func TestPeFunTuplePattern(t *testing.T) {
	c := NewCounter("a")
	fn := &ast.EFun{
		Param: &ast.PTuple{Elems: []ast.Pattern{pvar("a"), pvar("b")}},
		Body: &ast.EApply{
			Fn:  &ast.EApply{Fn: evar("+"), Arg: evar("a")},
			Arg: evar("b"),
		},
	}
	lowered, err := PeExpr(c, fn)
	require.NoError(t, err)

	coreFn, ok := lowered.(*core.Fun)
	require.True(t, ok)
	require.Len(t, coreFn.Params, 1)
	assert.Equal(t, "a0", coreFn.Params[0])

	// A tuple of plain-variable subpatterns has no guard checks, so
	// createCase emits the projection lets directly with no surrounding If.
	letA, ok := coreFn.Body.(*core.Let)
	require.True(t, ok)
	assert.Equal(t, "a", letA.Bindings[0].Name)
	proj0, ok := letA.Bindings[0].Expr.(*core.GetElement)
	require.True(t, ok)
	assert.Equal(t, core.ProjTuple, proj0.Kind)
	assert.Equal(t, 0, proj0.Index)

	letB, ok := letA.Body.(*core.Let)
	require.True(t, ok)
	assert.Equal(t, "b", letB.Bindings[0].Name)
	proj1, ok := letB.Bindings[0].Expr.(*core.GetElement)
	require.True(t, ok)
	assert.Equal(t, core.ProjTuple, proj1.Kind)
	assert.Equal(t, 1, proj1.Index)
}

// TestPeMatchConsList checks eliminating
// `match xs with | [] -> 0 | h :: t -> 1` compiles cases top-to-bottom: the
// nil case is checked first (an equality guard), falling through to the
// cons case's length guard, and finally to fail_match. This is the literal
// nested-conditional form the per-case elimination rules produce -- see
// DESIGN.md for why that differs from a hand-collapsed single comparison.
func TestPeMatchConsList(t *testing.T) {
	c := NewCounter("a")
	matchExpr := &ast.EMatch{
		Scrutinee: evar("xs"),
		Cases: []ast.Case{
			{Pat: &ast.PConst{Value: &ast.Const{Kind: ast.CNil}}, Body: &ast.EConst{Value: &ast.Const{Kind: ast.CInt, Ival: 0}}},
			{Pat: &ast.PCons{Head: pvar("h"), Tail: pvar("t")}, Body: &ast.EConst{Value: &ast.Const{Kind: ast.CInt, Ival: 1}}},
		},
	}
	lowered, err := PeExpr(c, matchExpr)
	require.NoError(t, err)

	outer, ok := lowered.(*core.If)
	require.True(t, ok)
	// nil case checks scrut = []
	apply, ok := outer.Cond.(*core.Apply)
	require.True(t, ok)
	_ = apply

	inner, ok := outer.Else.(*core.If)
	require.True(t, ok)
	_ = inner
	// the inner guard compares list_len(xs) against the minimum length
	innerApply, ok := inner.Cond.(*core.Apply)
	require.True(t, ok)
	_ = innerApply

	// the innermost else is the terminal fail_match call
	failCall, ok := inner.Else.(*core.Apply)
	require.True(t, ok)
	fn, ok := failCall.Fn.(*core.Var)
	require.True(t, ok)
	assert.Equal(t, "fail_match", fn.Name)
}

// TestPeLetNonrecDestructure checks a non-variable let pattern binds to a
// fresh name and exposes its components as nested projections.
func TestPeLetNonrecDestructure(t *testing.T) {
	c := NewCounter("a")
	letExpr := &ast.ELet{
		Pat:  &ast.PTuple{Elems: []ast.Pattern{pvar("x"), pvar("y")}},
		Val:  &ast.ETuple{Elems: []ast.Expr{&ast.EConst{Value: &ast.Const{Kind: ast.CInt, Ival: 1}}, &ast.EConst{Value: &ast.Const{Kind: ast.CInt, Ival: 2}}}},
		Body: evar("x"),
	}
	lowered, err := PeExpr(c, letExpr)
	require.NoError(t, err)

	outerLet, ok := lowered.(*core.Let)
	require.True(t, ok)
	assert.Equal(t, "a0", outerLet.Bindings[0].Name)

	innerLet, ok := outerLet.Body.(*core.Let)
	require.True(t, ok)
	assert.Equal(t, "x", innerLet.Bindings[0].Name)
}

// TestPeDeclRecNonVarPattern checks a recursive binding over a non-variable
// pattern fails Not-implemented.
func TestPeDeclRecNonVarPattern(t *testing.T) {
	c := NewCounter("a")
	_, err := PeDecl(c, &ast.PTuple{Elems: []ast.Pattern{pvar("a"), pvar("b")}}, evar("x"))
	require.Error(t, err)
}

// TestPeStructureSharesCounterAcrossItems checks fresh names are not reused
// between top-level items.
func TestPeStructureSharesCounterAcrossItems(t *testing.T) {
	structure := &ast.Structure{
		Items: []ast.StrItem{
			&ast.SValue{Bindings: []ast.Binding{{
				Pat:  &ast.PTuple{Elems: []ast.Pattern{pvar("a"), pvar("b")}},
				Expr: &ast.ETuple{Elems: []ast.Expr{&ast.EConst{Value: &ast.Const{Kind: ast.CInt, Ival: 1}}, &ast.EConst{Value: &ast.Const{Kind: ast.CInt, Ival: 2}}}},
			}}},
			&ast.SValue{Bindings: []ast.Binding{{
				Pat:  &ast.PTuple{Elems: []ast.Pattern{pvar("c"), pvar("d")}},
				Expr: &ast.ETuple{Elems: []ast.Expr{&ast.EConst{Value: &ast.Const{Kind: ast.CInt, Ival: 3}}, &ast.EConst{Value: &ast.Const{Kind: ast.CInt, Ival: 4}}}},
			}}},
		},
	}
	prog, err := PeStructure(structure, "a")
	require.NoError(t, err)
	// Each tuple destructure lowers to three top-level items: the fresh
	// scrutinee binding plus one projection per bound name.
	require.Len(t, prog.Items, 6)

	first := prog.Items[0].(*core.ValueItem)
	second := prog.Items[3].(*core.ValueItem)
	assert.Equal(t, "a0", first.Bindings[0].Name)
	assert.Equal(t, "a1", second.Bindings[0].Name)
}
