package types

import (
	"hash/fnv"

	"github.com/mlhm-lang/mlhm/internal/ast"
)

// AnnotToType maps a surface type annotation to a Type (§4.4's annot_to_ty).
// Annotation variables are hashed to a stable integer identifier via
// varNameID so that two occurrences of the same name ('a, say) refer to the
// same TVar within one inference run, without needing a separate lookup
// table threaded through every call site.
func AnnotToType(ann ast.TypeAnnot) Type {
	switch a := ann.(type) {
	case *ast.AInt:
		return TInt
	case *ast.ABool:
		return TBool
	case *ast.AString:
		return TString
	case *ast.AUnit:
		return TUnit
	case *ast.AVar:
		return &TVar{ID: varNameID(a.Name)}
	case *ast.AList:
		return &TList{Elem: AnnotToType(a.Elem)}
	case *ast.ATuple:
		elems := make([]Type, len(a.Elems))
		for i, e := range a.Elems {
			elems[i] = AnnotToType(e)
		}
		return &TTuple{Elems: elems}
	case *ast.AArrow:
		return &TArrow{From: AnnotToType(a.From), To: AnnotToType(a.To)}
	default:
		return TUnit
	}
}

// varNameID hashes an annotation variable name to a stable negative
// identifier. Negative so that hashed identifiers can never collide with
// identifiers handed out by a fresh Counter, which only ever produces
// positive IDs starting at 1.
func varNameID(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return -int(h.Sum32()&0x7fffffff) - 1
}
