package ast

// Vars returns the identifiers bound by a pattern, in left-to-right order of
// occurrence. Used by the elimination pass's pat_decls to skip tuple
// components that bind nothing.
func Vars(pat Pattern) []string {
	var out []string
	collectVars(pat, &out)
	return out
}

func collectVars(pat Pattern, out *[]string) {
	switch p := pat.(type) {
	case *PAny, *PConst:
		// no bindings
	case *PVar:
		*out = append(*out, p.Name)
	case *PCons:
		collectVars(p.Head, out)
		collectVars(p.Tail, out)
	case *PTuple:
		for _, e := range p.Elems {
			collectVars(e, out)
		}
	case *PConstraint:
		collectVars(p.Pat, out)
	}
}

// IsTrivial reports whether a pattern is already a plain binder: a variable
// or the unit constant. Pattern elimination leaves these untouched.
func IsTrivial(pat Pattern) bool {
	switch p := pat.(type) {
	case *PVar:
		return true
	case *PConst:
		return p.Value.Kind == CUnit
	case *PConstraint:
		return IsTrivial(p.Pat)
	default:
		return false
	}
}
