package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlhm-lang/mlhm/internal/ast"
)

func TestNodeAccessors(t *testing.T) {
	n := Node{NodeID: 42, OrigSpan: ast.Pos{Line: 1, Column: 1, File: "test.ail"}}
	assert.Equal(t, uint64(42), n.ID())
	assert.Equal(t, ast.Pos{Line: 1, Column: 1, File: "test.ail"}, n.OriginalSpan())
}

func TestVarString(t *testing.T) {
	v := &Var{Name: "x"}
	assert.Equal(t, "x", v.String())
}

func TestFunString(t *testing.T) {
	f := &Fun{Params: []string{"a0", "a1"}, Body: &Var{Name: "a0"}}
	assert.Equal(t, "(fun a0 a1 -> a0)", f.String())
}

func TestGetElementString(t *testing.T) {
	base := &Var{Name: "a0"}
	head := &GetElement{Kind: ProjConsHead, Of: base}
	tail := &GetElement{Kind: ProjConsTail, Of: base}
	proj := &GetElement{Kind: ProjTuple, Index: 1, Of: base}

	assert.Equal(t, "(head a0)", head.String())
	assert.Equal(t, "(tail a0)", tail.String())
	assert.Equal(t, "(#1 a0)", proj.String())
}

func TestLetString(t *testing.T) {
	let := &Let{
		Rec:      true,
		Bindings: []Binding{{Name: "fact", Expr: &Var{Name: "f"}}},
		Body:     &Var{Name: "fact"},
	}
	require.Equal(t, "(let rec fact = f in fact)", let.String())
}

func TestProgramString(t *testing.T) {
	prog := &Program{
		Items: []Item{
			&ValueItem{Bindings: []Binding{{Name: "one", Expr: &Const{Value: &ast.Const{Kind: ast.CInt, Ival: 1}}}}},
			&EvalItem{Expr: &Var{Name: "one"}},
		},
	}
	assert.Equal(t, "let one = 1\none", prog.String())
}
