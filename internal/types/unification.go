package types

import "fmt"

// Substitution is a finite mapping from type-variable identifier to type
// (§3, §4.1). The zero value is not usable; construct with Empty() or
// Singleton().
type Substitution map[int]Type

// Empty returns a substitution with no mappings.
func Empty() Substitution { return Substitution{} }

// Singleton builds the one-element substitution {k -> t}, performing the
// occurs-check first: if k occurs structurally in t, singleton fails rather
// than silently construct an infinite type.
func Singleton(k int, t Type) (Substitution, error) {
	if occurs(k, t) {
		return nil, &OccursCheckError{Var: k, In: t}
	}
	return Substitution{k: t}, nil
}

// Find looks up k, mirroring the source's plain map lookup.
func (s Substitution) Find(k int) (Type, bool) {
	t, ok := s[k]
	return t, ok
}

// Remove returns a copy of s without k.
func (s Substitution) Remove(k int) Substitution {
	out := make(Substitution, len(s))
	for k2, v := range s {
		if k2 != k {
			out[k2] = v
		}
	}
	return out
}

// occurs performs the structural occurs-check used by Singleton.
func occurs(k int, t Type) bool {
	switch t := t.(type) {
	case *TVar:
		return t.ID == k
	case *TPrim:
		return false
	case *TArrow:
		return occurs(k, t.From) || occurs(k, t.To)
	case *TList:
		return occurs(k, t.Elem)
	case *TTuple:
		for _, e := range t.Elems {
			if occurs(k, e) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Apply substitutes s through t by structural recursion; on TVar(n) it
// replaces by s[n] if present, leaving the variable alone otherwise. Apply is
// not idempotent if s is not idempotent itself -- callers rely on Compose to
// normalize before relying on repeated application.
func Apply(s Substitution, t Type) Type {
	if len(s) == 0 {
		return t
	}
	switch t := t.(type) {
	case *TVar:
		if rep, ok := s[t.ID]; ok {
			return rep
		}
		return t
	case *TPrim:
		return t
	case *TArrow:
		return &TArrow{From: Apply(s, t.From), To: Apply(s, t.To)}
	case *TList:
		return &TList{Elem: Apply(s, t.Elem)}
	case *TTuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = Apply(s, e)
		}
		return &TTuple{Elems: elems}
	default:
		return t
	}
}

// Unify computes a most general unifier for l and r, by cases (§4.1).
func Unify(l, r Type) (Substitution, error) {
	switch lt := l.(type) {
	case *TPrim:
		if rt, ok := r.(*TPrim); ok && rt.Name == lt.Name {
			return Empty(), nil
		}
		if rv, ok := r.(*TVar); ok {
			return Singleton(rv.ID, l)
		}
		return nil, &UnificationError{L: l, R: r}

	case *TVar:
		if rt, ok := r.(*TVar); ok && rt.ID == lt.ID {
			return Empty(), nil
		}
		return Singleton(lt.ID, r)

	case *TArrow:
		rt, ok := r.(*TArrow)
		if !ok {
			if rv, ok := r.(*TVar); ok {
				return Singleton(rv.ID, l)
			}
			return nil, &UnificationError{L: l, R: r}
		}
		s1, err := Unify(lt.From, rt.From)
		if err != nil {
			return nil, err
		}
		s2, err := Unify(Apply(s1, lt.To), Apply(s1, rt.To))
		if err != nil {
			return nil, err
		}
		return Compose(s1, s2)

	case *TList:
		rt, ok := r.(*TList)
		if !ok {
			if rv, ok := r.(*TVar); ok {
				return Singleton(rv.ID, l)
			}
			return nil, &UnificationError{L: l, R: r}
		}
		return Unify(lt.Elem, rt.Elem)

	case *TTuple:
		rt, ok := r.(*TTuple)
		if !ok {
			if rv, ok := r.(*TVar); ok {
				return Singleton(rv.ID, l)
			}
			return nil, &UnificationError{L: l, R: r}
		}
		if len(lt.Elems) != len(rt.Elems) {
			return nil, &UnificationError{L: l, R: r}
		}
		acc := Empty()
		for i := range lt.Elems {
			s, err := Unify(Apply(acc, lt.Elems[i]), Apply(acc, rt.Elems[i]))
			if err != nil {
				return nil, err
			}
			acc, err = Compose(acc, s)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil

	default:
		if rv, ok := r.(*TVar); ok {
			return Singleton(rv.ID, l)
		}
		return nil, &UnificationError{L: l, R: r}
	}
}

// extend inserts (k, v) into acc, re-applying acc's existing substitution to
// v first. If k is already bound to v', the two bindings are unified and
// composed instead of one silently overwriting the other -- this is what
// makes Compose confluent.
func extend(k int, v Type, acc Substitution) (Substitution, error) {
	v = Apply(acc, v)
	if existing, ok := acc[k]; ok {
		s, err := Unify(v, existing)
		if err != nil {
			return nil, err
		}
		return Compose(acc, s)
	}
	out := make(Substitution, len(acc)+1)
	for k2, v2 := range acc {
		out[k2] = v2
	}
	out[k] = v
	return out, nil
}

// Compose composes s1 and s2 so that applying the result to t is equivalent
// to applying s1 to the result of applying s2 to t:
// apply(compose(s1, s2), t) = apply(s1, apply(s2, t)).
// Every binding of s2 is folded into s1 via extend; a key bound in both is
// resolved by unifying the two bindings rather than one silently
// overwriting the other, which is what makes composition confluent.
func Compose(s1, s2 Substitution) (Substitution, error) {
	acc := s1
	for k, v := range s2 {
		next, err := extend(k, v, acc)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

// ComposeAll left-folds Compose over Empty, matching the source's
// compose_all.
func ComposeAll(ss ...Substitution) (Substitution, error) {
	acc := Empty()
	for _, s := range ss {
		next, err := Compose(acc, s)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

// OccursCheckError reports an attempt to bind a type variable to a type that
// contains it, which would construct an infinite type.
type OccursCheckError struct {
	Var int
	In  Type
}

func (e *OccursCheckError) Error() string {
	return fmt.Sprintf("occurs check failed: t%d occurs in %s", e.Var, e.In)
}

// UnificationError reports two types that cannot be unified, including
// tuple-length mismatches.
type UnificationError struct {
	L, R Type
}

func (e *UnificationError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s", e.L, e.R)
}
