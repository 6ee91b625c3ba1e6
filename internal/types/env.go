package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mlhm-lang/mlhm/internal/ast"
)

// TypeEnv is a finite mapping from identifier to type scheme (§3, §4.2). It
// is immutable: Extend returns a new environment sharing the old one's
// storage via a parent link, in the same style as a lexical scope chain.
type TypeEnv struct {
	bindings map[string]*Scheme
	parent   *TypeEnv
}

// NewTypeEnv creates an empty environment.
func NewTypeEnv() *TypeEnv {
	return &TypeEnv{bindings: map[string]*Scheme{}}
}

// Extend returns a new environment binding id to scheme, shadowing any
// existing binding of the same name.
func (env *TypeEnv) Extend(id string, scheme *Scheme) *TypeEnv {
	return &TypeEnv{
		bindings: map[string]*Scheme{id: scheme},
		parent:   env,
	}
}

// Lookup finds the scheme bound to name, walking outward through enclosing
// scopes. Reports No-variable(name) if nothing binds it, as required for
// infer_exp's variable case.
func (env *TypeEnv) Lookup(name string) (*Scheme, error) {
	for e := env; e != nil; e = e.parent {
		if s, ok := e.bindings[name]; ok {
			return s, nil
		}
	}
	return nil, &NoVariableError{Name: name}
}

// Apply maps Scheme.apply(s, .) over every binding, preserving the scope
// chain.
func (env *TypeEnv) Apply(s Substitution) *TypeEnv {
	if env == nil {
		return nil
	}
	out := &TypeEnv{bindings: make(map[string]*Scheme, len(env.bindings))}
	for name, scheme := range env.bindings {
		out.bindings[name] = ApplyScheme(s, scheme)
	}
	out.parent = env.parent.Apply(s)
	return out
}

// ApplyScheme applies a substitution to a scheme: first remove each
// quantifier from s, then apply the restricted substitution to t. This is
// what makes substitution into a scheme capture-avoiding (§4.3).
func ApplyScheme(s Substitution, scheme *Scheme) *Scheme {
	restricted := s
	for _, v := range scheme.Vars {
		if _, ok := restricted[v]; ok {
			restricted = restricted.Remove(v)
		}
	}
	return S(scheme.Vars, Apply(restricted, scheme.Type))
}

// FreeVars unions free_vars(scheme) over every scheme reachable from env
// (§4.2).
func (env *TypeEnv) FreeVars() map[int]bool {
	free := map[int]bool{}
	for e := env; e != nil; e = e.parent {
		for _, scheme := range e.bindings {
			for v := range scheme.FreeVars() {
				free[v] = true
			}
		}
	}
	return free
}

// NoVariableError reports a reference to an identifier with no binding in
// scope (§7's No-variable(name)).
type NoVariableError struct {
	Name string
}

func (e *NoVariableError) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Name)
}

// ExtByPat extends env for every name bound by pat, assigning each name a
// scheme whose quantifiers are scheme.Vars and whose type is the
// corresponding sub-type of scheme.Type (§4.2). A structural mismatch
// between pat and t (e.g. a tuple-length mismatch) leaves env unchanged --
// inference has already unified the shapes by the time this runs, so such a
// mismatch is not an error here.
func ExtByPat(scheme *Scheme, env *TypeEnv, pat ast.Pattern) *TypeEnv {
	switch p := pat.(type) {
	case *ast.PVar:
		return env.Extend(p.Name, scheme)

	case *ast.PCons:
		lst, ok := scheme.Type.(*TList)
		if !ok {
			return env
		}
		env = ExtByPat(S(scheme.Vars, lst.Elem), env, p.Head)
		env = ExtByPat(S(scheme.Vars, lst), env, p.Tail)
		return env

	case *ast.PTuple:
		tup, ok := scheme.Type.(*TTuple)
		if !ok || len(tup.Elems) != len(p.Elems) {
			return env
		}
		for i, sub := range p.Elems {
			env = ExtByPat(S(scheme.Vars, tup.Elems[i]), env, sub)
		}
		return env

	case *ast.PConstraint:
		return ExtByPat(scheme, env, p.Pat)

	default:
		// PAny, PConst: no bindings.
		return env
	}
}

// PrettyEnv renders every binding as `val name : type`, sorted by name, the
// human-readable form required by §6.
func PrettyEnv(env *TypeEnv) string {
	names := make([]string, 0)
	seen := map[string]bool{}
	for e := env; e != nil; e = e.parent {
		for name := range e.bindings {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		scheme, _ := env.Lookup(name)
		lines = append(lines, fmt.Sprintf("val %s : %s", name, scheme.String()))
	}
	return strings.Join(lines, "\n")
}
