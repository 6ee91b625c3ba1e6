// Package core defines the post-elimination expression (PEE) form produced
// by internal/elaborate: every binder is a plain name, and every surface
// destructure has been rewritten into explicit projection. Nodes carry a
// stable NodeID assigned by the elaborator, in the same style the surface
// elaborator used for its Core IR, so later passes and diagnostics can refer
// to a node without holding a pointer to it.
package core

import (
	"fmt"
	"strings"

	"github.com/mlhm-lang/mlhm/internal/ast"
)

// Node is the base embedded in every PEE node: a stable ID plus the
// original surface position, carried through for diagnostics.
type Node struct {
	NodeID   uint64
	OrigSpan ast.Pos
}

func (n Node) ID() uint64        { return n.NodeID }
func (n Node) OriginalSpan() ast.Pos { return n.OrigSpan }

// Expr is the base interface for post-elimination expressions (§3).
type Expr interface {
	ID() uint64
	OriginalSpan() ast.Pos
	String() string
	coreExpr()
}

// Const mirrors ast.Const: literal values survive elimination unchanged.
type Const struct {
	Node
	Value *ast.Const
}

func (c *Const) String() string { return c.Value.String() }
func (c *Const) coreExpr()      {}

// Var is a reference to a plain bound name.
type Var struct {
	Node
	Name string
}

func (v *Var) String() string { return v.Name }
func (v *Var) coreExpr()      {}

// Apply is function application.
type Apply struct {
	Node
	Fn  Expr
	Arg Expr
}

func (a *Apply) String() string { return fmt.Sprintf("(%s %s)", a.Fn, a.Arg) }
func (a *Apply) coreExpr()      {}

// If is a conditional.
type If struct {
	Node
	Cond Expr
	Then Expr
	Else Expr
}

func (i *If) String() string {
	return fmt.Sprintf("(if %s then %s else %s)", i.Cond, i.Then, i.Else)
}
func (i *If) coreExpr() {}

// Fun is a function literal over plain names, after a surface curried
// `fun p1 -> fun p2 -> ... -> body` (or a single-parameter EFun) has had
// every parameter pattern collapsed to a name via pat_decls (§4.6).
type Fun struct {
	Node
	Params []string
	Body   Expr
}

func (f *Fun) String() string {
	return fmt.Sprintf("(fun %s -> %s)", strings.Join(f.Params, " "), f.Body)
}
func (f *Fun) coreExpr() {}

// Tuple is a tuple literal.
type Tuple struct {
	Node
	Elems []Expr
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) coreExpr() {}

// Cons is list cons.
type Cons struct {
	Node
	Head Expr
	Tail Expr
}

func (c *Cons) String() string { return fmt.Sprintf("(%s :: %s)", c.Head, c.Tail) }
func (c *Cons) coreExpr()      {}

// ProjKind enumerates the projections a destructured pattern can compile to
// (§4.6's get_element): the head or tail of a cons cell, or the i'th
// component of a tuple.
type ProjKind int

const (
	ProjConsHead ProjKind = iota
	ProjConsTail
	ProjTuple
)

// GetElement is a projection expression: it extracts one component of a
// compound value, replacing what was a nested pattern destructure on the
// surface.
type GetElement struct {
	Node
	Kind  ProjKind
	Index int // meaningful only when Kind == ProjTuple
	Of    Expr
}

func (g *GetElement) String() string {
	switch g.Kind {
	case ProjConsHead:
		return fmt.Sprintf("(head %s)", g.Of)
	case ProjConsTail:
		return fmt.Sprintf("(tail %s)", g.Of)
	case ProjTuple:
		return fmt.Sprintf("(#%d %s)", g.Index, g.Of)
	default:
		return "<get_element>"
	}
}
func (g *GetElement) coreExpr() {}

// Binding is one name/expression pair of a Let or ValueItem. A `let rec`
// group is kept as the Bindings slice of a single node with Rec set, so the
// elaborator need not re-derive the recursion structure downstream.
type Binding struct {
	Name string
	Expr Expr
}

// Let is a (possibly recursive) binding followed by a body. Surface pattern
// bindings have already been rewritten, by the time this node exists, into
// a trivial name binding plus a sequence of GetElement projections wrapping
// the body -- so each Bindings[i].Name is a plain identifier or "()", never
// a pattern.
type Let struct {
	Node
	Rec      bool
	Bindings []Binding
	Body     Expr
}

func (l *Let) String() string {
	rec := ""
	if l.Rec {
		rec = "rec "
	}
	parts := make([]string, len(l.Bindings))
	for i, b := range l.Bindings {
		parts[i] = fmt.Sprintf("%s = %s", b.Name, b.Expr)
	}
	return fmt.Sprintf("(let %s%s in %s)", rec, strings.Join(parts, " and "), l.Body)
}
func (l *Let) coreExpr() {}

// ---------------------------------------------------------------------------
// Top level
// ---------------------------------------------------------------------------

// Item is one lowered top-level structure item.
type Item interface {
	ID() uint64
	String() string
	coreItem()
}

// ValueItem is a lowered SValue binding plain names only, since pat_decls
// has already flattened whatever surface pattern appeared. A non-recursive
// item holds a single binding; a recursive item holds one binding per
// surface binding of its group.
type ValueItem struct {
	Node
	Rec      bool
	Bindings []Binding
}

func (v *ValueItem) String() string {
	rec := ""
	if v.Rec {
		rec = "rec "
	}
	parts := make([]string, len(v.Bindings))
	for i, b := range v.Bindings {
		parts[i] = fmt.Sprintf("%s = %s", b.Name, b.Expr)
	}
	return fmt.Sprintf("let %s%s", rec, strings.Join(parts, " and "))
}
func (v *ValueItem) coreItem() {}

// EvalItem is a lowered SEval.
type EvalItem struct {
	Node
	Expr Expr
}

func (e *EvalItem) String() string { return e.Expr.String() }
func (e *EvalItem) coreItem()      {}

// Program is the ordered sequence of lowered top-level items.
type Program struct {
	Items []Item
}

func (p *Program) String() string {
	parts := make([]string, len(p.Items))
	for i, it := range p.Items {
		parts[i] = it.String()
	}
	return strings.Join(parts, "\n")
}
