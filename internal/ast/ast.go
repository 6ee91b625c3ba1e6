// Package ast defines the surface syntax tree consumed by the type inference
// and pattern elimination passes. Nodes are immutable once constructed; the
// parser (out of scope for this module) is responsible for building them.
package ast

import (
	"fmt"
	"strings"
)

// Pos identifies a source location. The lexer/parser populate it; the core
// passes only thread it through for diagnostics.
type Pos struct {
	Line   int
	Column int
	File   string
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is the base interface implemented by every AST node.
type Node interface {
	String() string
	Position() Pos
}

// ConstKind enumerates the constant forms of §3.
type ConstKind int

const (
	CInt ConstKind = iota
	CBool
	CString
	CUnit
	CNil // the empty list marker
)

// Const is a literal value: integer, boolean, string, unit, or nil.
type Const struct {
	Kind ConstKind
	Ival int
	Bval bool
	Sval string
	Pos  Pos
}

func (c *Const) Position() Pos { return c.Pos }
func (c *Const) String() string {
	switch c.Kind {
	case CInt:
		return fmt.Sprintf("%d", c.Ival)
	case CBool:
		return fmt.Sprintf("%t", c.Bval)
	case CString:
		return fmt.Sprintf("%q", c.Sval)
	case CUnit:
		return "()"
	case CNil:
		return "[]"
	default:
		return "<const>"
	}
}

// ---------------------------------------------------------------------------
// Type annotations (surface syntax for §4.4's annot_to_ty)
// ---------------------------------------------------------------------------

// TypeAnnot is a surface type expression attached to a pattern or expression
// via PConstraint / EConstraint.
type TypeAnnot interface {
	Node
	typeAnnotNode()
}

// AInt, ABool, AString, AUnit are the base type annotations.
type AInt struct{ Pos Pos }
type ABool struct{ Pos Pos }
type AString struct{ Pos Pos }
type AUnit struct{ Pos Pos }

func (a *AInt) Position() Pos     { return a.Pos }
func (a *AInt) String() string    { return "int" }
func (a *AInt) typeAnnotNode()    {}
func (a *ABool) Position() Pos    { return a.Pos }
func (a *ABool) String() string   { return "bool" }
func (a *ABool) typeAnnotNode()   {}
func (a *AString) Position() Pos  { return a.Pos }
func (a *AString) String() string { return "string" }
func (a *AString) typeAnnotNode() {}
func (a *AUnit) Position() Pos    { return a.Pos }
func (a *AUnit) String() string   { return "unit" }
func (a *AUnit) typeAnnotNode()   {}

// AVar is a type-annotation variable, e.g. 'a in `(x : 'a)`.
type AVar struct {
	Name string
	Pos  Pos
}

func (a *AVar) Position() Pos  { return a.Pos }
func (a *AVar) String() string { return "'" + a.Name }
func (a *AVar) typeAnnotNode() {}

// AList is `T list`.
type AList struct {
	Elem TypeAnnot
	Pos  Pos
}

func (a *AList) Position() Pos  { return a.Pos }
func (a *AList) String() string { return fmt.Sprintf("%s list", a.Elem) }
func (a *AList) typeAnnotNode() {}

// ATuple is `T1 * T2 * ... * Tn`.
type ATuple struct {
	Elems []TypeAnnot
	Pos   Pos
}

func (a *ATuple) Position() Pos { return a.Pos }
func (a *ATuple) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = e.String()
	}
	return strings.Join(parts, " * ")
}
func (a *ATuple) typeAnnotNode() {}

// AArrow is `T1 -> T2`.
type AArrow struct {
	From TypeAnnot
	To   TypeAnnot
	Pos  Pos
}

func (a *AArrow) Position() Pos  { return a.Pos }
func (a *AArrow) String() string { return fmt.Sprintf("(%s -> %s)", a.From, a.To) }
func (a *AArrow) typeAnnotNode() {}

// ---------------------------------------------------------------------------
// Patterns (§3)
// ---------------------------------------------------------------------------

// Pattern is the base interface for surface patterns.
type Pattern interface {
	Node
	patternNode()
}

// PAny is the wildcard pattern `_`.
type PAny struct{ Pos Pos }

func (p *PAny) Position() Pos  { return p.Pos }
func (p *PAny) String() string { return "_" }
func (p *PAny) patternNode()   {}

// PConst matches a literal constant.
type PConst struct {
	Value *Const
	Pos   Pos
}

func (p *PConst) Position() Pos  { return p.Pos }
func (p *PConst) String() string { return p.Value.String() }
func (p *PConst) patternNode()   {}

// PVar binds an identifier.
type PVar struct {
	Name string
	Pos  Pos
}

func (p *PVar) Position() Pos  { return p.Pos }
func (p *PVar) String() string { return p.Name }
func (p *PVar) patternNode()   {}

// PCons matches a non-empty list: head-pattern :: tail-pattern.
type PCons struct {
	Head Pattern
	Tail Pattern
	Pos  Pos
}

func (p *PCons) Position() Pos { return p.Pos }
func (p *PCons) String() string {
	return fmt.Sprintf("(%s :: %s)", p.Head, p.Tail)
}
func (p *PCons) patternNode() {}

// PTuple matches an ordered tuple of patterns, length >= 2.
type PTuple struct {
	Elems []Pattern
	Pos   Pos
}

func (p *PTuple) Position() Pos { return p.Pos }
func (p *PTuple) String() string {
	parts := make([]string, len(p.Elems))
	for i, e := range p.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (p *PTuple) patternNode() {}

// PConstraint is a pattern annotated with a surface type.
type PConstraint struct {
	Pat Pattern
	Ann TypeAnnot
	Pos Pos
}

func (p *PConstraint) Position() Pos { return p.Pos }
func (p *PConstraint) String() string {
	return fmt.Sprintf("(%s : %s)", p.Pat, p.Ann)
}
func (p *PConstraint) patternNode() {}

// ---------------------------------------------------------------------------
// Expressions (§3)
// ---------------------------------------------------------------------------

// Expr is the base interface for surface expressions.
type Expr interface {
	Node
	exprNode()
}

// EConst is a literal constant expression.
type EConst struct {
	Value *Const
	Pos   Pos
}

func (e *EConst) Position() Pos  { return e.Pos }
func (e *EConst) String() string { return e.Value.String() }
func (e *EConst) exprNode()      {}

// EVar is a variable reference.
type EVar struct {
	Name string
	Pos  Pos
}

func (e *EVar) Position() Pos  { return e.Pos }
func (e *EVar) String() string { return e.Name }
func (e *EVar) exprNode()      {}

// EApply is function application: Fn Arg.
type EApply struct {
	Fn  Expr
	Arg Expr
	Pos Pos
}

func (e *EApply) Position() Pos  { return e.Pos }
func (e *EApply) String() string { return fmt.Sprintf("(%s %s)", e.Fn, e.Arg) }
func (e *EApply) exprNode()      {}

// EIf is a conditional expression.
type EIf struct {
	Cond Expr
	Then Expr
	Else Expr
	Pos  Pos
}

func (e *EIf) Position() Pos { return e.Pos }
func (e *EIf) String() string {
	return fmt.Sprintf("(if %s then %s else %s)", e.Cond, e.Then, e.Else)
}
func (e *EIf) exprNode() {}

// EFun is a single-argument function literal `fun pat -> body`. Curried
// functions are surface sugar for nested EFun nodes.
type EFun struct {
	Param Pattern
	Body  Expr
	Pos   Pos
}

func (e *EFun) Position() Pos  { return e.Pos }
func (e *EFun) String() string { return fmt.Sprintf("(fun %s -> %s)", e.Param, e.Body) }
func (e *EFun) exprNode()      {}

// ELet is a let-binding, recursive or not, binding a single pattern to a
// single expression before evaluating the body.
type ELet struct {
	Rec  bool
	Pat  Pattern
	Val  Expr
	Body Expr
	Pos  Pos
}

func (e *ELet) Position() Pos { return e.Pos }
func (e *ELet) String() string {
	rec := ""
	if e.Rec {
		rec = "rec "
	}
	return fmt.Sprintf("(let %s%s = %s in %s)", rec, e.Pat, e.Val, e.Body)
}
func (e *ELet) exprNode() {}

// Case is one arm of a match expression.
type Case struct {
	Pat  Pattern
	Body Expr
	Pos  Pos
}

// EMatch is pattern matching over a scrutinee with an ordered list of cases.
type EMatch struct {
	Scrutinee Expr
	Cases     []Case
	Pos       Pos
}

func (e *EMatch) Position() Pos { return e.Pos }
func (e *EMatch) String() string {
	parts := make([]string, len(e.Cases))
	for i, c := range e.Cases {
		parts[i] = fmt.Sprintf("| %s -> %s", c.Pat, c.Body)
	}
	return fmt.Sprintf("(match %s with %s)", e.Scrutinee, strings.Join(parts, " "))
}
func (e *EMatch) exprNode() {}

// ETuple is a tuple literal.
type ETuple struct {
	Elems []Expr
	Pos   Pos
}

func (e *ETuple) Position() Pos { return e.Pos }
func (e *ETuple) String() string {
	parts := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (e *ETuple) exprNode() {}

// ECons is list cons: Head :: Tail.
type ECons struct {
	Head Expr
	Tail Expr
	Pos  Pos
}

func (e *ECons) Position() Pos  { return e.Pos }
func (e *ECons) String() string { return fmt.Sprintf("(%s :: %s)", e.Head, e.Tail) }
func (e *ECons) exprNode()      {}

// EConstraint is an expression annotated with a surface type.
type EConstraint struct {
	Expr Expr
	Ann  TypeAnnot
	Pos  Pos
}

func (e *EConstraint) Position() Pos { return e.Pos }
func (e *EConstraint) String() string {
	return fmt.Sprintf("(%s : %s)", e.Expr, e.Ann)
}
func (e *EConstraint) exprNode() {}

// ---------------------------------------------------------------------------
// Structure (§3)
// ---------------------------------------------------------------------------

// Binding is one (pattern, expression) pair inside an SValue item.
type Binding struct {
	Pat  Pattern
	Expr Expr
}

// StrItem is one top-level structure item.
type StrItem interface {
	Node
	strItemNode()
}

// SValue is a top-level (possibly recursive) set of bindings.
type SValue struct {
	Rec      bool
	Bindings []Binding
	Pos      Pos
}

func (s *SValue) Position() Pos { return s.Pos }
func (s *SValue) String() string {
	rec := ""
	if s.Rec {
		rec = "rec "
	}
	parts := make([]string, len(s.Bindings))
	for i, b := range s.Bindings {
		parts[i] = fmt.Sprintf("%s = %s", b.Pat, b.Expr)
	}
	return fmt.Sprintf("let %s%s", rec, strings.Join(parts, " and "))
}
func (s *SValue) strItemNode() {}

// SEval is a top-level expression evaluated for effect.
type SEval struct {
	Expr Expr
	Pos  Pos
}

func (s *SEval) Position() Pos  { return s.Pos }
func (s *SEval) String() string { return s.Expr.String() }
func (s *SEval) strItemNode()   {}

// Structure is the ordered sequence of top-level items the parser hands to
// both the inference pass and the pattern elimination pass.
type Structure struct {
	Items []StrItem
}

func (s *Structure) String() string {
	parts := make([]string, len(s.Items))
	for i, it := range s.Items {
		parts[i] = it.String()
	}
	return strings.Join(parts, "\n")
}
