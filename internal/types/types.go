// Package types implements the Hindley-Milner type system used by the
// inference pass: types, type schemes, substitutions, and the type
// environment. Everything here is immutable; inference threads substitutions
// explicitly rather than mutating shared state.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is any member of the small type language of §3: type variables, type
// constructors, function types, lists, and tuples.
type Type interface {
	String() string
	Equals(Type) bool
}

// TVar is a type variable identified by an integer, per §3.
type TVar struct {
	ID int
}

func (t *TVar) String() string { return fmt.Sprintf("t%d", t.ID) }
func (t *TVar) Equals(other Type) bool {
	o, ok := other.(*TVar)
	return ok && o.ID == t.ID
}

// TPrim is one of the base type constructors: int, bool, string, unit.
type TPrim struct {
	Name string
}

func (t *TPrim) String() string { return t.Name }
func (t *TPrim) Equals(other Type) bool {
	o, ok := other.(*TPrim)
	return ok && o.Name == t.Name
}

// TArrow is a function type a -> b.
type TArrow struct {
	From Type
	To   Type
}

func (t *TArrow) String() string {
	return fmt.Sprintf("(%s -> %s)", t.From, t.To)
}
func (t *TArrow) Equals(other Type) bool {
	o, ok := other.(*TArrow)
	return ok && t.From.Equals(o.From) && t.To.Equals(o.To)
}

// TList is a homogeneous list type.
type TList struct {
	Elem Type
}

func (t *TList) String() string { return fmt.Sprintf("(%s list)", t.Elem) }
func (t *TList) Equals(other Type) bool {
	o, ok := other.(*TList)
	return ok && t.Elem.Equals(o.Elem)
}

// TTuple is an ordered product of at least two types.
type TTuple struct {
	Elems []Type
}

func (t *TTuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " * ") + ")"
}
func (t *TTuple) Equals(other Type) bool {
	o, ok := other.(*TTuple)
	if !ok || len(o.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equals(o.Elems[i]) {
			return false
		}
	}
	return true
}

// Predefined primitive types.
var (
	TInt    = &TPrim{Name: "int"}
	TBool   = &TPrim{Name: "bool"}
	TString = &TPrim{Name: "string"}
	TUnit   = &TPrim{Name: "unit"}
)

// Scheme is a type scheme ∀vars. t (§3). Vars holds the quantified type
// variable identifiers; a variable not in Vars is free.
type Scheme struct {
	Vars []int
	Type Type
}

// S builds a scheme, matching the source's `S(vars, t)` constructor.
func S(vars []int, t Type) *Scheme {
	return &Scheme{Vars: vars, Type: t}
}

func (s *Scheme) String() string {
	if len(s.Vars) == 0 {
		return PrettyType(s.Type)
	}
	return PrettyScheme(s)
}

// quantifierSet returns s.Vars as a set for fast membership tests.
func (s *Scheme) quantifierSet() map[int]bool {
	set := make(map[int]bool, len(s.Vars))
	for _, v := range s.Vars {
		set[v] = true
	}
	return set
}

// FreeVars returns the free type-variable identifiers of a scheme:
// free(t) \ vars.
func (s *Scheme) FreeVars() map[int]bool {
	free := FreeTypeVars(s.Type)
	quant := s.quantifierSet()
	for v := range quant {
		delete(free, v)
	}
	return free
}

// FreeTypeVars collects every TVar identifier occurring in t.
func FreeTypeVars(t Type) map[int]bool {
	free := make(map[int]bool)
	collectFreeVars(t, free)
	return free
}

func collectFreeVars(t Type, out map[int]bool) {
	switch t := t.(type) {
	case *TVar:
		out[t.ID] = true
	case *TPrim:
		// no variables
	case *TArrow:
		collectFreeVars(t.From, out)
		collectFreeVars(t.To, out)
	case *TList:
		collectFreeVars(t.Elem, out)
	case *TTuple:
		for _, e := range t.Elems {
			collectFreeVars(e, out)
		}
	}
}

// ---------------------------------------------------------------------------
// Fresh type-variable counter (§2, §4.4)
//
// A single monotonically increasing counter is threaded through inference.
// Each call to infer_pat/infer_exp shares the same *Counter instance for the
// whole pass; the elimination pass below uses its own, independent counter.
// ---------------------------------------------------------------------------

// Counter hands out fresh, strictly increasing type-variable identifiers.
type Counter struct {
	n int
}

// NewCounter starts a fresh counter at zero.
func NewCounter() *Counter { return &Counter{} }

// Fresh returns a brand-new type variable.
func (c *Counter) Fresh() *TVar {
	c.n++
	return &TVar{ID: c.n}
}

// ---------------------------------------------------------------------------
// Deterministic rendering (§6)
//
// Arrows print right-associative, tuples join with " * ", lists suffix with
// " list", and free type variables are lettered a, b, ..., z, a1, b1, ...
// in order of first appearance.
// ---------------------------------------------------------------------------

// PrettyType renders a monomorphic type using raw tN variable names. Used
// when no scheme context (and hence no stable lettering) is available.
func PrettyType(t Type) string {
	return prettyArrow(t, nil)
}

// PrettyScheme renders a scheme as `forall a b. t` using a deterministic
// letter assignment for its quantified (and any other free) variables.
func PrettyScheme(s *Scheme) string {
	letters := letterAssignment(s.Type)
	body := prettyArrow(s.Type, letters)
	if len(s.Vars) == 0 {
		return body
	}
	names := make([]string, 0, len(s.Vars))
	sorted := append([]int(nil), s.Vars...)
	sort.Ints(sorted)
	for _, v := range sorted {
		if name, ok := letters[v]; ok {
			names = append(names, name)
		}
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(names, " "), body)
}

// letterAssignment walks t in a fixed left-to-right order and assigns each
// distinct TVar a letter a, b, c, ..., z, a1, b1, ... on first sighting.
func letterAssignment(t Type) map[int]string {
	order := []int{}
	seen := map[int]bool{}
	var walk func(Type)
	walk = func(t Type) {
		switch t := t.(type) {
		case *TVar:
			if !seen[t.ID] {
				seen[t.ID] = true
				order = append(order, t.ID)
			}
		case *TArrow:
			walk(t.From)
			walk(t.To)
		case *TList:
			walk(t.Elem)
		case *TTuple:
			for _, e := range t.Elems {
				walk(e)
			}
		}
	}
	walk(t)

	out := make(map[int]string, len(order))
	for i, id := range order {
		letter := rune('a' + i%26)
		suffix := i / 26
		name := string(letter)
		if suffix > 0 {
			name = fmt.Sprintf("%s%d", name, suffix)
		}
		out[id] = name
	}
	return out
}

func prettyArrow(t Type, letters map[int]string) string {
	switch t := t.(type) {
	case *TVar:
		if letters != nil {
			if name, ok := letters[t.ID]; ok {
				return name
			}
		}
		return t.String()
	case *TPrim:
		return t.Name
	case *TArrow:
		// Right-associative: a -> (b -> c) prints as "a -> b -> c".
		from := prettyAtomArrowOperand(t.From, letters)
		to := prettyArrow(t.To, letters)
		return fmt.Sprintf("%s -> %s", from, to)
	case *TList:
		return fmt.Sprintf("%s list", prettyAtomListOperand(t.Elem, letters))
	case *TTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = prettyAtomTupleOperand(e, letters)
		}
		return strings.Join(parts, " * ")
	default:
		return "?"
	}
}

func prettyAtomArrowOperand(t Type, letters map[int]string) string {
	if _, ok := t.(*TArrow); ok {
		return "(" + prettyArrow(t, letters) + ")"
	}
	return prettyArrow(t, letters)
}

func prettyAtomListOperand(t Type, letters map[int]string) string {
	switch t.(type) {
	case *TArrow, *TTuple:
		return "(" + prettyArrow(t, letters) + ")"
	default:
		return prettyArrow(t, letters)
	}
}

func prettyAtomTupleOperand(t Type, letters map[int]string) string {
	switch t.(type) {
	case *TArrow:
		return "(" + prettyArrow(t, letters) + ")"
	default:
		return prettyArrow(t, letters)
	}
}

// Generalize quantifies every type variable free in t but not free in the
// environment, implementing the let-generalization rule of §4.5.
func Generalize(envFree map[int]bool, t Type) *Scheme {
	free := FreeTypeVars(t)
	vars := make([]int, 0, len(free))
	for v := range free {
		if !envFree[v] {
			vars = append(vars, v)
		}
	}
	sort.Ints(vars)
	return S(vars, t)
}

// Instantiate replaces every quantified variable of s with a fresh type
// variable, enabling let-polymorphism at each use site (§GLOSSARY).
func Instantiate(c *Counter, s *Scheme) Type {
	if len(s.Vars) == 0 {
		return s.Type
	}
	sub := make(Substitution, len(s.Vars))
	for _, v := range s.Vars {
		sub[v] = c.Fresh()
	}
	return Apply(sub, s.Type)
}
