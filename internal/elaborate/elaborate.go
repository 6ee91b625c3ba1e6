// Package elaborate implements pattern elimination: it lowers a surface
// structure (internal/ast) into the post-elimination expression form
// (internal/core) where every binder is a plain name and every destructure
// has become an explicit projection. The pass assumes its input already
// type-checked under internal/types and has no failure modes of its own
// beyond the one documented limitation on non-variable recursive bindings.
package elaborate

import (
	"fmt"

	"github.com/mlhm-lang/mlhm/internal/ast"
	"github.com/mlhm-lang/mlhm/internal/core"
	"github.com/mlhm-lang/mlhm/internal/types"
)

// Counter hands out fresh names under a caller-chosen prefix (by default
// "a", giving a0, a1, ...), independent of the inference pass's
// type-variable counter. Names are only guaranteed fresh within this
// counter's own domain, not globally unique against user identifiers --
// callers that need a hard guarantee should pick a prefix the surface
// lexer cannot itself produce, or reject/rename colliding user identifiers
// before elaborating.
type Counter struct {
	prefix string
	n      int
}

// NewCounter starts a fresh name counter at zero under the given prefix.
func NewCounter(prefix string) *Counter { return &Counter{prefix: prefix} }

// Fresh returns the next name in the <prefix>0, <prefix>1, <prefix>2, ...
// sequence.
func (c *Counter) Fresh() string {
	name := fmt.Sprintf("%s%d", c.prefix, c.n)
	c.n++
	return name
}

var nextNodeID uint64

func freshNode(pos ast.Pos) core.Node {
	nextNodeID++
	return core.Node{NodeID: nextNodeID, OrigSpan: pos}
}

// apply1 builds a one-argument application of a named runtime primitive.
func apply1(name string, arg core.Expr, pos ast.Pos) core.Expr {
	return &core.Apply{Node: freshNode(pos), Fn: &core.Var{Node: freshNode(pos), Name: name}, Arg: arg}
}

// apply2 builds a two-argument (curried) application of a named runtime
// primitive: `(name a) b`.
func apply2(name string, a, b core.Expr, pos ast.Pos) core.Expr {
	return apply1Expr(apply1(name, a, pos), b, pos)
}

func apply1Expr(fn core.Expr, arg core.Expr, pos ast.Pos) core.Expr {
	return &core.Apply{Node: freshNode(pos), Fn: fn, Arg: arg}
}

// and2 left-folds a non-empty list of boolean PEE checks under "&&".
func and2(checks []core.Expr, pos ast.Pos) core.Expr {
	acc := checks[0]
	for _, c := range checks[1:] {
		acc = apply2("&&", acc, c, pos)
	}
	return acc
}

// failMatch is the terminal "no clause matched" expression every compiled
// match (and guard-checked top-level binding) falls through to.
func failMatch(pos ast.Pos) core.Expr {
	return apply1("fail_match", &core.Const{Node: freshNode(pos), Value: &ast.Const{Kind: ast.CUnit, Pos: pos}}, pos)
}

func intConst(n int, pos ast.Pos) core.Expr {
	return &core.Const{Node: freshNode(pos), Value: &ast.Const{Kind: ast.CInt, Ival: n, Pos: pos}}
}

// InitialEnv returns the type environment the inferencer must start from:
// comparisons at a polymorphic `forall a. a -> a -> bool` and arithmetic at
// `int -> int -> int`.
func InitialEnv() *types.TypeEnv {
	env := types.NewTypeEnv()
	c := types.NewCounter()
	alpha := c.Fresh()
	cmpScheme := types.S([]int{alpha.ID}, &types.TArrow{
		From: alpha,
		To:   &types.TArrow{From: alpha, To: types.TBool},
	})
	for _, name := range []string{"=", "<>", "<", ">", "<=", ">="} {
		env = env.Extend(name, cmpScheme)
	}
	arithScheme := types.S(nil, &types.TArrow{
		From: types.TInt,
		To:   &types.TArrow{From: types.TInt, To: types.TInt},
	})
	for _, name := range []string{"+", "-", "*", "/"} {
		env = env.Extend(name, arithScheme)
	}
	boolScheme := types.S(nil, &types.TArrow{
		From: types.TBool,
		To:   &types.TArrow{From: types.TBool, To: types.TBool},
	})
	env = env.Extend("&&", boolScheme)
	return env
}
