package types

import (
	"fmt"

	"github.com/mlhm-lang/mlhm/internal/ast"
)

// NotImplementedError reports a construct the inferencer deliberately does
// not support (§7's Not-implemented(where)): currently, a recursive binding
// whose pattern is not a plain variable.
type NotImplementedError struct {
	Where string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Where)
}

// EmptyLetError reports a `let` with zero bindings (§7).
type EmptyLetError struct{}

func (e *EmptyLetError) Error() string { return "let with no bindings" }

// InferPat infers a pattern's type, returning the environment extended with
// any variables the pattern binds and the pattern's type (§4.4).
func InferPat(c *Counter, env *TypeEnv, pat ast.Pattern) (*TypeEnv, Type, error) {
	switch p := pat.(type) {
	case *ast.PAny:
		return env, c.Fresh(), nil

	case *ast.PConst:
		switch p.Value.Kind {
		case ast.CInt:
			return env, TInt, nil
		case ast.CBool:
			return env, TBool, nil
		case ast.CString:
			return env, TString, nil
		case ast.CUnit:
			return env, TUnit, nil
		case ast.CNil:
			return env, &TList{Elem: c.Fresh()}, nil
		default:
			return env, nil, fmt.Errorf("unknown constant kind in pattern")
		}

	case *ast.PVar:
		alpha := c.Fresh()
		return env.Extend(p.Name, S(nil, alpha)), alpha, nil

	case *ast.PCons:
		env1, th, err := InferPat(c, env, p.Head)
		if err != nil {
			return nil, nil, err
		}
		env2, tt, err := InferPat(c, env1, p.Tail)
		if err != nil {
			return nil, nil, err
		}
		s, err := Unify(&TList{Elem: th}, tt)
		if err != nil {
			return nil, nil, err
		}
		return env2.Apply(s), Apply(s, tt), nil

	case *ast.PTuple:
		curEnv := env
		types := make([]Type, 0, len(p.Elems))
		for _, sub := range p.Elems {
			nextEnv, t, err := InferPat(c, curEnv, sub)
			if err != nil {
				return nil, nil, err
			}
			curEnv = nextEnv
			types = append(types, t)
		}
		return curEnv, &TTuple{Elems: types}, nil

	case *ast.PConstraint:
		env1, t, err := InferPat(c, env, p.Pat)
		if err != nil {
			return nil, nil, err
		}
		s, err := Unify(t, AnnotToType(p.Ann))
		if err != nil {
			return nil, nil, err
		}
		return env1.Apply(s), Apply(s, t), nil

	default:
		return nil, nil, fmt.Errorf("unknown pattern form %T", pat)
	}
}

// InferExp infers an expression's type, returning the substitution produced
// and the resulting type (§4.5). Every composition below is performed
// left-to-right, applying the accumulated substitution before the next
// step, matching the source's explicit threading discipline.
func InferExp(c *Counter, env *TypeEnv, expr ast.Expr) (Substitution, Type, error) {
	switch e := expr.(type) {
	case *ast.EConst:
		switch e.Value.Kind {
		case ast.CInt:
			return Empty(), TInt, nil
		case ast.CBool:
			return Empty(), TBool, nil
		case ast.CString:
			return Empty(), TString, nil
		case ast.CUnit:
			return Empty(), TUnit, nil
		case ast.CNil:
			return Empty(), &TList{Elem: c.Fresh()}, nil
		default:
			return nil, nil, fmt.Errorf("unknown constant kind")
		}

	case *ast.EVar:
		scheme, err := env.Lookup(e.Name)
		if err != nil {
			return nil, nil, err
		}
		return Empty(), Instantiate(c, scheme), nil

	case *ast.EIf:
		s1, tc, err := InferExp(c, env, e.Cond)
		if err != nil {
			return nil, nil, err
		}
		sCond, err := Unify(tc, TBool)
		if err != nil {
			return nil, nil, err
		}
		sEnv, err := Compose(s1, sCond)
		if err != nil {
			return nil, nil, err
		}
		env1 := env.Apply(sEnv)
		s2, tt, err := InferExp(c, env1, e.Then)
		if err != nil {
			return nil, nil, err
		}
		env2 := env1.Apply(s2)
		s3, te, err := InferExp(c, env2, e.Else)
		if err != nil {
			return nil, nil, err
		}
		sBranch, err := Unify(Apply(s3, tt), te)
		if err != nil {
			return nil, nil, err
		}
		s, err := ComposeAll(s1, sCond, s2, s3, sBranch)
		if err != nil {
			return nil, nil, err
		}
		return s, Apply(s, te), nil

	case *ast.EApply:
		beta := c.Fresh()
		s1, tf, err := InferExp(c, env, e.Fn)
		if err != nil {
			return nil, nil, err
		}
		s2, tx, err := InferExp(c, env.Apply(s1), e.Arg)
		if err != nil {
			return nil, nil, err
		}
		s3, err := Unify(&TArrow{From: tx, To: beta}, Apply(s2, tf))
		if err != nil {
			return nil, nil, err
		}
		s, err := ComposeAll(s1, s2, s3)
		if err != nil {
			return nil, nil, err
		}
		return s, Apply(s, beta), nil

	case *ast.EFun:
		env1, tp, err := InferPat(c, env, e.Param)
		if err != nil {
			return nil, nil, err
		}
		s, tb, err := InferExp(c, env1, e.Body)
		if err != nil {
			return nil, nil, err
		}
		return s, Apply(s, &TArrow{From: tp, To: tb}), nil

	case *ast.ETuple:
		acc := Empty()
		curEnv := env
		types := make([]Type, len(e.Elems))
		for i, el := range e.Elems {
			s, t, err := InferExp(c, curEnv, el)
			if err != nil {
				return nil, nil, err
			}
			var cerr error
			acc, cerr = Compose(acc, s)
			if cerr != nil {
				return nil, nil, cerr
			}
			curEnv = curEnv.Apply(acc)
			types[i] = Apply(acc, t)
		}
		for i := range types {
			types[i] = Apply(acc, types[i])
		}
		return acc, &TTuple{Elems: types}, nil

	case *ast.ECons:
		s1, th, err := InferExp(c, env, e.Head)
		if err != nil {
			return nil, nil, err
		}
		s2, tt, err := InferExp(c, env, e.Tail)
		if err != nil {
			return nil, nil, err
		}
		s3, err := Unify(&TList{Elem: Apply(s2, th)}, tt)
		if err != nil {
			return nil, nil, err
		}
		s, err := ComposeAll(s1, s2, s3)
		if err != nil {
			return nil, nil, err
		}
		return s, Apply(s, tt), nil

	case *ast.EMatch:
		sScrut, tscrut, err := InferExp(c, env, e.Scrutinee)
		if err != nil {
			return nil, nil, err
		}
		beta := c.Fresh()
		acc := sScrut
		answer := Type(beta)
		curEnv := env.Apply(sScrut)
		curScrut := Apply(sScrut, tscrut)
		for _, cs := range e.Cases {
			envp, tp, err := InferPat(c, curEnv, cs.Pat)
			if err != nil {
				return nil, nil, err
			}
			sUnifyScrut, err := Unify(curScrut, tp)
			if err != nil {
				return nil, nil, err
			}
			envp = envp.Apply(sUnifyScrut)
			sBody, tbody, err := InferExp(c, envp, cs.Body)
			if err != nil {
				return nil, nil, err
			}
			sAnswer, err := Unify(Apply(sBody, answer), tbody)
			if err != nil {
				return nil, nil, err
			}
			acc, err = ComposeAll(acc, sUnifyScrut, sBody, sAnswer)
			if err != nil {
				return nil, nil, err
			}
			curEnv = curEnv.Apply(acc)
			curScrut = Apply(acc, curScrut)
			answer = Apply(acc, answer)
		}
		return acc, answer, nil

	case *ast.ELet:
		if e.Rec {
			return inferLetRec(c, env, e)
		}
		return inferLetNonrec(c, env, e)

	case *ast.EConstraint:
		// Resolved through annotation at parse time; the elimination pass
		// erases this node entirely. If it is ever inferred, infer the
		// underlying expression (this is the "muni" behavior of §9: discard
		// the annotation, keep the expression).
		return InferExp(c, env, e.Expr)

	default:
		return nil, nil, fmt.Errorf("unknown expression form %T", expr)
	}
}

// inferLetNonrec implements ELet(Nonrec, ...) including the let-generalization
// rule of §4.5: quantify over free(t1) \ free(env after s1).
func inferLetNonrec(c *Counter, env *TypeEnv, e *ast.ELet) (Substitution, Type, error) {
	s1, t1, err := InferExp(c, env, e.Val)
	if err != nil {
		return nil, nil, err
	}
	envAfterS1 := env.Apply(s1)
	scheme := Generalize(envAfterS1.FreeVars(), t1)

	env1, t2, err := InferPat(c, envAfterS1, e.Pat)
	if err != nil {
		return nil, nil, err
	}
	env2 := ExtByPat(scheme, env1, e.Pat)

	sUnify, err := Unify(t1, t2)
	if err != nil {
		return nil, nil, err
	}
	sSoFar, err := Compose(s1, sUnify)
	if err != nil {
		return nil, nil, err
	}
	env3 := env2.Apply(sSoFar)

	sBody, tBody, err := InferExp(c, env3, e.Body)
	if err != nil {
		return nil, nil, err
	}
	s, err := Compose(sSoFar, sBody)
	if err != nil {
		return nil, nil, err
	}
	return s, tBody, nil
}

// inferLetRec implements ELet(Rec, [(PVar x, e1)], e2). Any other recursive
// binding pattern fails Not-implemented, matching §4.5.
func inferLetRec(c *Counter, env *TypeEnv, e *ast.ELet) (Substitution, Type, error) {
	xPat, ok := e.Pat.(*ast.PVar)
	if !ok {
		return nil, nil, &NotImplementedError{Where: "recursive let binding with a non-variable pattern"}
	}
	alpha := c.Fresh()
	envRec := env.Extend(xPat.Name, S(nil, alpha))

	s1, t1, err := InferExp(c, envRec, e.Val)
	if err != nil {
		return nil, nil, err
	}
	sUnify, err := Unify(Apply(s1, alpha), t1)
	if err != nil {
		return nil, nil, err
	}
	s2, err := Compose(s1, sUnify)
	if err != nil {
		return nil, nil, err
	}
	envAfter := env.Apply(s2)

	// Recursive generalization: quantify under the environment with x
	// itself removed, so x's own (monomorphic, during its own definition)
	// binding does not leak into the free-variable computation.
	withoutX := &TypeEnv{bindings: map[string]*Scheme{}, parent: envAfter}
	scheme := Generalize(withoutX.FreeVars(), Apply(s2, t1))

	env2 := env.Apply(s2).Extend(xPat.Name, scheme)
	sBody, tBody, err := InferExp(c, env2, e.Body)
	if err != nil {
		return nil, nil, err
	}
	s, err := Compose(s2, sBody)
	if err != nil {
		return nil, nil, err
	}
	return s, tBody, nil
}

// InferStrItem infers one top-level structure item, returning the
// environment extended with any new bindings.
func InferStrItem(c *Counter, env *TypeEnv, item ast.StrItem) (*TypeEnv, error) {
	switch it := item.(type) {
	case *ast.SValue:
		if len(it.Bindings) == 0 {
			return nil, &EmptyLetError{}
		}
		// The surface grammar restricts SValue to a single binding
		// (§3: "a single (pattern, expression) binding"); multiple bindings
		// would require a full mutually-recursive group, which the source
		// does not support either.
		b := it.Bindings[0]
		fakeLet := &ast.ELet{
			Rec:  it.Rec,
			Pat:  b.Pat,
			Val:  b.Expr,
			Body: &ast.EConst{Value: &ast.Const{Kind: ast.CUnit}},
			Pos:  it.Pos,
		}
		var (
			newEnv *TypeEnv
			err    error
		)
		if it.Rec {
			newEnv, err = extendRecTop(c, env, fakeLet)
		} else {
			newEnv, err = extendNonrecTop(c, env, fakeLet)
		}
		return newEnv, err

	case *ast.SEval:
		_, _, err := InferExp(c, env, it.Expr)
		if err != nil {
			return nil, err
		}
		return env, nil

	default:
		return nil, fmt.Errorf("unknown structure item %T", item)
	}
}

// extendNonrecTop mirrors inferLetNonrec but returns the extended
// environment (with generalization) instead of threading into a body,
// since top-level bindings have no enclosing body expression.
func extendNonrecTop(c *Counter, env *TypeEnv, e *ast.ELet) (*TypeEnv, error) {
	s1, t1, err := InferExp(c, env, e.Val)
	if err != nil {
		return nil, err
	}
	envAfterS1 := env.Apply(s1)
	scheme := Generalize(envAfterS1.FreeVars(), t1)

	env1, t2, err := InferPat(c, envAfterS1, e.Pat)
	if err != nil {
		return nil, err
	}
	sUnify, err := Unify(t1, t2)
	if err != nil {
		return nil, err
	}
	env2 := ExtByPat(scheme, env1, e.Pat)
	s, err := Compose(s1, sUnify)
	if err != nil {
		return nil, err
	}
	return env2.Apply(s), nil
}

func extendRecTop(c *Counter, env *TypeEnv, e *ast.ELet) (*TypeEnv, error) {
	xPat, ok := e.Pat.(*ast.PVar)
	if !ok {
		return nil, &NotImplementedError{Where: "recursive let binding with a non-variable pattern"}
	}
	alpha := c.Fresh()
	envRec := env.Extend(xPat.Name, S(nil, alpha))

	s1, t1, err := InferExp(c, envRec, e.Val)
	if err != nil {
		return nil, err
	}
	sUnify, err := Unify(Apply(s1, alpha), t1)
	if err != nil {
		return nil, err
	}
	s2, err := Compose(s1, sUnify)
	if err != nil {
		return nil, err
	}
	envAfter := env.Apply(s2)
	withoutX := &TypeEnv{bindings: map[string]*Scheme{}, parent: envAfter}
	scheme := Generalize(withoutX.FreeVars(), Apply(s2, t1))

	return env.Apply(s2).Extend(xPat.Name, scheme), nil
}

// InferStructure is the top-level driver: it folds structure items,
// threading the environment left-to-right, and returns the final
// environment summarizing the module (§2, §6).
func InferStructure(env *TypeEnv, structure *ast.Structure) (*TypeEnv, error) {
	c := NewCounter()
	cur := env
	var err error
	for _, item := range structure.Items {
		cur, err = InferStrItem(c, cur, item)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

