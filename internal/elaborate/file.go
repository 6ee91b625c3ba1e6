package elaborate

import (
	"github.com/mlhm-lang/mlhm/internal/ast"
	"github.com/mlhm-lang/mlhm/internal/core"
	"github.com/mlhm-lang/mlhm/internal/types"
)

// PeDecl lowers one (pattern, expression) binding into a core.Binding,
// delegating recursive non-variable patterns to the same Not-implemented
// limitation the inferencer enforces.
func PeDecl(c *Counter, pat ast.Pattern, expr ast.Expr) (core.Binding, error) {
	val, err := PeExpr(c, expr)
	if err != nil {
		return core.Binding{}, err
	}
	if v, ok := pat.(*ast.PVar); ok {
		return core.Binding{Name: v.Name, Expr: val}, nil
	}
	// A non-variable recursive binding has no single name to recurse
	// through; this is a known limitation, and fails with Not-implemented
	// to match the inferencer's own rule for ELet(Rec, ...).
	return core.Binding{}, &types.NotImplementedError{Where: "recursive binding with a non-variable pattern"}
}

// PeStrItem lowers one top-level structure item.
func PeStrItem(c *Counter, item ast.StrItem) ([]core.Item, error) {
	switch it := item.(type) {
	case *ast.SValue:
		return peValueItem(c, it)

	case *ast.SEval:
		expr, err := PeExpr(c, it.Expr)
		if err != nil {
			return nil, err
		}
		return []core.Item{&core.EvalItem{Node: freshNode(it.Pos), Expr: expr}}, nil

	default:
		return nil, &unsupportedExprError{}
	}
}

func peValueItem(c *Counter, it *ast.SValue) ([]core.Item, error) {
	if it.Rec {
		bindings := make([]core.Binding, len(it.Bindings))
		for i, b := range it.Bindings {
			binding, err := PeDecl(c, b.Pat, b.Expr)
			if err != nil {
				return nil, err
			}
			bindings[i] = binding
		}
		return []core.Item{&core.ValueItem{Node: freshNode(it.Pos), Rec: true, Bindings: bindings}}, nil
	}

	// Non-recursive: the surface grammar restricts SValue to a single
	// binding.
	b := it.Bindings[0]
	val, err := PeExpr(c, b.Expr)
	if err != nil {
		return nil, err
	}

	switch p := b.Pat.(type) {
	case *ast.PVar:
		return []core.Item{&core.ValueItem{Node: freshNode(it.Pos), Bindings: []core.Binding{{Name: p.Name, Expr: val}}}}, nil

	case *ast.PConst:
		if p.Value.Kind == ast.CUnit {
			return []core.Item{&core.ValueItem{Node: freshNode(it.Pos), Bindings: []core.Binding{{Name: "()", Expr: val}}}}, nil
		}
	}

	// Any other pattern: bind the value to a fresh name, emit a guard
	// check (if all-checks then () else fail_match) when the pattern has
	// any checks, followed by each variable's projection as its own
	// top-level non-rec binding.
	fresh := c.Fresh()
	scrut := &core.Var{Node: freshNode(it.Pos), Name: fresh}
	out := []core.Item{&core.ValueItem{Node: freshNode(it.Pos), Bindings: []core.Binding{{Name: fresh, Expr: val}}}}

	checks := checkPat(scrut, b.Pat)
	if len(checks) > 0 {
		guard := &core.If{
			Node: freshNode(it.Pos),
			Cond: and2(checks, it.Pos),
			Then: &core.Const{Node: freshNode(it.Pos), Value: &ast.Const{Kind: ast.CUnit, Pos: it.Pos}},
			Else: failMatch(it.Pos),
		}
		out = append(out, &core.ValueItem{Node: freshNode(it.Pos), Bindings: []core.Binding{{Name: "()", Expr: guard}}})
	}

	for _, decl := range patDecls(scrut, b.Pat) {
		out = append(out, &core.ValueItem{Node: freshNode(it.Pos), Bindings: []core.Binding{decl}})
	}
	return out, nil
}

// PeStructure lowers an entire structure, producing the program the
// printer or a downstream evaluator consumes. Each top-level item is
// lowered with the same shared fresh-name counter, so generated names never
// collide with one another across items. prefix selects the fresh-name
// prefix the counter hands out (ordinarily config.Config.FreshNamePrefix).
func PeStructure(structure *ast.Structure, prefix string) (*core.Program, error) {
	c := NewCounter(prefix)
	var items []core.Item
	for _, item := range structure.Items {
		lowered, err := PeStrItem(c, item)
		if err != nil {
			return nil, err
		}
		items = append(items, lowered...)
	}
	return &core.Program{Items: items}, nil
}
