package elaborate

import (
	"github.com/mlhm-lang/mlhm/internal/ast"
	"github.com/mlhm-lang/mlhm/internal/core"
)

// PeExpr lowers a surface expression into PEE form (§4.6). c is the
// elimination pass's own fresh-name counter, independent of inference's
// type-variable counter.
func PeExpr(c *Counter, expr ast.Expr) (core.Expr, error) {
	switch e := expr.(type) {
	case *ast.EConst:
		return &core.Const{Node: freshNode(e.Pos), Value: e.Value}, nil

	case *ast.EVar:
		return &core.Var{Node: freshNode(e.Pos), Name: e.Name}, nil

	case *ast.EApply:
		fn, err := PeExpr(c, e.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := PeExpr(c, e.Arg)
		if err != nil {
			return nil, err
		}
		return &core.Apply{Node: freshNode(e.Pos), Fn: fn, Arg: arg}, nil

	case *ast.EIf:
		cond, err := PeExpr(c, e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := PeExpr(c, e.Then)
		if err != nil {
			return nil, err
		}
		els, err := PeExpr(c, e.Else)
		if err != nil {
			return nil, err
		}
		return &core.If{Node: freshNode(e.Pos), Cond: cond, Then: then, Else: els}, nil

	case *ast.ETuple:
		elems := make([]core.Expr, len(e.Elems))
		for i, el := range e.Elems {
			pe, err := PeExpr(c, el)
			if err != nil {
				return nil, err
			}
			elems[i] = pe
		}
		return &core.Tuple{Node: freshNode(e.Pos), Elems: elems}, nil

	case *ast.ECons:
		head, err := PeExpr(c, e.Head)
		if err != nil {
			return nil, err
		}
		tail, err := PeExpr(c, e.Tail)
		if err != nil {
			return nil, err
		}
		return &core.Cons{Node: freshNode(e.Pos), Head: head, Tail: tail}, nil

	case *ast.EConstraint:
		return PeExpr(c, e.Expr)

	case *ast.EFun:
		return peFun(c, e)

	case *ast.EMatch:
		return peMatchExpr(c, e)

	case *ast.ELet:
		return peLet(c, e)

	default:
		return nil, &unsupportedExprError{expr}
	}
}

type unsupportedExprError struct{ expr ast.Expr }

func (e *unsupportedExprError) Error() string {
	return "elaborate: unsupported expression form"
}

// peFun collects the contiguous prefix of curried EFun bindings into a
// single PEE Fun with one parameter per surface EFun, the way a curried
// `fun a -> fun b -> body` surface function collapses to one call frame
// (§4.6). Trivial (PVar or unit) parameters pass through as plain names;
// non-trivial parameters are replaced by a fresh name and guarded by
// createCase around the function body.
func peFun(c *Counter, outer *ast.EFun) (core.Expr, error) {
	var pats []ast.Pattern
	var body ast.Expr = outer
	for {
		f, ok := body.(*ast.EFun)
		if !ok {
			break
		}
		pats = append(pats, f.Param)
		body = f.Body
	}

	peBody, err := PeExpr(c, body)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(pats))
	var nonTrivial []int
	for i, p := range pats {
		if ast.IsTrivial(p) {
			names[i] = trivialName(p)
		} else {
			names[i] = c.Fresh()
			nonTrivial = append(nonTrivial, i)
		}
	}

	if len(nonTrivial) == 0 {
		return &core.Fun{Node: freshNode(outer.Pos), Params: names, Body: peBody}, nil
	}

	if len(nonTrivial) == 1 {
		i := nonTrivial[0]
		scrut := &core.Var{Node: freshNode(outer.Pos), Name: names[i]}
		guarded := createCase(scrut, pats[i], peBody, failMatch(outer.Pos), outer.Pos)
		return &core.Fun{Node: freshNode(outer.Pos), Params: names, Body: guarded}, nil
	}

	// More than one non-trivial parameter: tuple the offending scrutinees,
	// bind them to a fresh name, and run a single case against PTuple pats.
	tupleElems := make([]ast.Pattern, len(nonTrivial))
	scrutElems := make([]core.Expr, len(nonTrivial))
	for j, i := range nonTrivial {
		tupleElems[j] = pats[i]
		scrutElems[j] = &core.Var{Node: freshNode(outer.Pos), Name: names[i]}
	}
	fresh := c.Fresh()
	scrutTuple := &core.Var{Node: freshNode(outer.Pos), Name: fresh}
	tuplePat := &ast.PTuple{Elems: tupleElems}
	guarded := createCase(scrutTuple, tuplePat, peBody, failMatch(outer.Pos), outer.Pos)
	guarded = &core.Let{
		Node:     freshNode(outer.Pos),
		Bindings: []core.Binding{{Name: fresh, Expr: &core.Tuple{Node: freshNode(outer.Pos), Elems: scrutElems}}},
		Body:     guarded,
	}
	return &core.Fun{Node: freshNode(outer.Pos), Params: names, Body: guarded}, nil
}

func trivialName(p ast.Pattern) string {
	if cp, ok := p.(*ast.PConstraint); ok {
		return trivialName(cp.Pat)
	}
	if _, ok := p.(*ast.PConst); ok {
		return "()"
	}
	return p.(*ast.PVar).Name
}

// peMatchExpr lowers EMatch. If the scrutinee is already a variable or
// constant, it is passed directly into PeMatch; otherwise it is bound to a
// fresh name first, so the case guards never re-evaluate it (§4.6).
func peMatchExpr(c *Counter, e *ast.EMatch) (core.Expr, error) {
	switch e.Scrutinee.(type) {
	case *ast.EVar, *ast.EConst:
		scrutPEE, err := PeExpr(c, e.Scrutinee)
		if err != nil {
			return nil, err
		}
		return PeMatch(c, scrutPEE, e.Cases, e.Pos)
	}

	scrutPEE, err := PeExpr(c, e.Scrutinee)
	if err != nil {
		return nil, err
	}
	fresh := c.Fresh()
	scrutVar := &core.Var{Node: freshNode(e.Pos), Name: fresh}
	body, err := PeMatch(c, scrutVar, e.Cases, e.Pos)
	if err != nil {
		return nil, err
	}
	return &core.Let{
		Node:     freshNode(e.Pos),
		Bindings: []core.Binding{{Name: fresh, Expr: scrutPEE}},
		Body:     body,
	}, nil
}

// PeMatch compiles an ordered list of cases against a scrutinee expression
// that is already a variable or constant (§4.6). Cases are tried top to
// bottom; the first case whose checks are empty terminates compilation --
// any cases after it are unreachable and dropped. The terminal fallback is
// fail_match.
func PeMatch(c *Counter, scrut core.Expr, cases []ast.Case, pos ast.Pos) (core.Expr, error) {
	if len(cases) == 0 {
		return failMatch(pos), nil
	}
	first := cases[0]
	body, err := PeExpr(c, first.Body)
	if err != nil {
		return nil, err
	}
	checks := checkPat(scrut, first.Pat)
	if len(checks) == 0 {
		return wrapWithDecls(scrut, first.Pat, body), nil
	}
	rest, err := PeMatch(c, scrut, cases[1:], pos)
	if err != nil {
		return nil, err
	}
	return createCase(scrut, first.Pat, body, rest, first.Pos), nil
}

// peLet lowers ELet, delegating the recursive case to PeDecl.
func peLet(c *Counter, e *ast.ELet) (core.Expr, error) {
	body, err := PeExpr(c, e.Body)
	if err != nil {
		return nil, err
	}

	if e.Rec {
		binding, err := PeDecl(c, e.Pat, e.Val)
		if err != nil {
			return nil, err
		}
		return &core.Let{Node: freshNode(e.Pos), Rec: true, Bindings: []core.Binding{binding}, Body: body}, nil
	}

	val, err := PeExpr(c, e.Val)
	if err != nil {
		return nil, err
	}

	switch p := e.Pat.(type) {
	case *ast.PVar:
		return &core.Let{Node: freshNode(e.Pos), Bindings: []core.Binding{{Name: p.Name, Expr: val}}, Body: body}, nil

	case *ast.PConst:
		if p.Value.Kind == ast.CUnit {
			return &core.Let{Node: freshNode(e.Pos), Bindings: []core.Binding{{Name: "()", Expr: val}}, Body: body}, nil
		}
	}

	// Any other (destructuring) pattern: bind to a fresh name, then
	// wrap the body with the pattern's projections as nested lets.
	fresh := c.Fresh()
	wrapped := wrapWithDecls(&core.Var{Node: freshNode(e.Pos), Name: fresh}, e.Pat, body)
	return &core.Let{Node: freshNode(e.Pos), Bindings: []core.Binding{{Name: fresh, Expr: val}}, Body: wrapped}, nil
}
