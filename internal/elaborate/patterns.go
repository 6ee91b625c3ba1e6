package elaborate

import (
	"github.com/mlhm-lang/mlhm/internal/ast"
	"github.com/mlhm-lang/mlhm/internal/core"
)

// checkPat produces the list of boolean guard expressions that must all
// hold for pat to match scrut (§4.6). An empty result means the pattern
// matches unconditionally.
func checkPat(scrut core.Expr, pat ast.Pattern) []core.Expr {
	switch p := pat.(type) {
	case *ast.PConstraint:
		return checkPat(scrut, p.Pat)

	case *ast.PConst:
		if p.Value.Kind == ast.CUnit {
			return nil
		}
		return []core.Expr{apply2("=", scrut, constExpr(p.Value), p.Pos)}

	case *ast.PTuple:
		var checks []core.Expr
		for i, sub := range p.Elems {
			proj := &core.GetElement{Node: freshNode(p.Pos), Kind: core.ProjTuple, Index: i, Of: scrut}
			checks = append(checks, checkPat(proj, sub)...)
		}
		return checks

	case *ast.PCons:
		minLen := consSpineLength(p)
		checks := []core.Expr{apply2(">", apply1("list_len", scrut, p.Pos), intConst(minLen-1, p.Pos), p.Pos)}
		head := &core.GetElement{Node: freshNode(p.Pos), Kind: core.ProjConsHead, Of: scrut}
		tail := &core.GetElement{Node: freshNode(p.Pos), Kind: core.ProjConsTail, Of: scrut}
		checks = append(checks, checkPat(head, p.Head)...)
		// The tail's own length check is suppressed (add_list = false) since
		// the minimum-length check above already accounts for it.
		checks = append(checks, checkPatSuppressLength(tail, p.Tail)...)
		return checks

	case *ast.PVar, *ast.PAny:
		return nil

	default:
		return nil
	}
}

// checkPatSuppressLength behaves like checkPat but, when pat is itself a
// cons, omits its own minimum-length check -- that length is already
// implied by the enclosing cons's check (the `add_list` flag of §4.6).
func checkPatSuppressLength(scrut core.Expr, pat ast.Pattern) []core.Expr {
	if p, ok := pat.(*ast.PCons); ok {
		head := &core.GetElement{Node: freshNode(p.Pos), Kind: core.ProjConsHead, Of: scrut}
		tail := &core.GetElement{Node: freshNode(p.Pos), Kind: core.ProjConsTail, Of: scrut}
		var checks []core.Expr
		checks = append(checks, checkPat(head, p.Head)...)
		checks = append(checks, checkPatSuppressLength(tail, p.Tail)...)
		return checks
	}
	if p, ok := pat.(*ast.PConstraint); ok {
		return checkPatSuppressLength(scrut, p.Pat)
	}
	return checkPat(scrut, pat)
}

// consSpineLength counts the minimum number of cons cells required for pat
// to possibly match: 1 plus however many further PCons nest in the tail.
func consSpineLength(pat *ast.PCons) int {
	n := 1
	tail := pat.Tail
	for {
		if pc, ok := tail.(*ast.PCons); ok {
			n++
			tail = pc.Tail
			continue
		}
		if pcon, ok := tail.(*ast.PConstraint); ok {
			tail = pcon.Pat
			continue
		}
		break
	}
	return n
}

func constExpr(c *ast.Const) core.Expr {
	return &core.Const{Node: freshNode(c.Pos), Value: c}
}

// patDecls produces one let-binding per variable bound by pat, each mapped
// to the chain of projections reaching it from scrut (§4.6).
func patDecls(scrut core.Expr, pat ast.Pattern) []core.Binding {
	var out []core.Binding
	collectPatDecls(scrut, pat, &out)
	return out
}

func collectPatDecls(scrut core.Expr, pat ast.Pattern, out *[]core.Binding) {
	switch p := pat.(type) {
	case *ast.PVar:
		*out = append(*out, core.Binding{Name: p.Name, Expr: scrut})

	case *ast.PConstraint:
		collectPatDecls(scrut, p.Pat, out)

	case *ast.PCons:
		head := &core.GetElement{Node: freshNode(p.Pos), Kind: core.ProjConsHead, Of: scrut}
		tail := &core.GetElement{Node: freshNode(p.Pos), Kind: core.ProjConsTail, Of: scrut}
		collectPatDecls(head, p.Head, out)
		collectPatDecls(tail, p.Tail, out)

	case *ast.PTuple:
		for i, sub := range p.Elems {
			if len(ast.Vars(sub)) == 0 {
				continue
			}
			proj := &core.GetElement{Node: freshNode(p.Pos), Kind: core.ProjTuple, Index: i, Of: scrut}
			collectPatDecls(proj, sub, out)
		}

	case *ast.PAny, *ast.PConst:
		// no bindings
	}
}

// createCase builds the guarded expansion of one match arm: thenExpr
// wrapped with pat's variable bindings, guarded by pat's checks against
// scrut, falling through to elseExpr (§4.6).
func createCase(scrut core.Expr, pat ast.Pattern, thenExpr, elseExpr core.Expr, pos ast.Pos) core.Expr {
	wrapped := wrapWithDecls(scrut, pat, thenExpr)
	checks := checkPat(scrut, pat)
	if len(checks) == 0 {
		return wrapped
	}
	return &core.If{Node: freshNode(pos), Cond: and2(checks, pos), Then: wrapped, Else: elseExpr}
}

func wrapWithDecls(scrut core.Expr, pat ast.Pattern, body core.Expr) core.Expr {
	decls := patDecls(scrut, pat)
	for i := len(decls) - 1; i >= 0; i-- {
		body = &core.Let{
			Node:     freshNode(pat.Position()),
			Bindings: []core.Binding{decls[i]},
			Body:     body,
		}
	}
	return body
}
