package main

import (
	"sort"

	"github.com/mlhm-lang/mlhm/internal/ast"
)

type namedExample struct {
	name      string
	structure *ast.Structure
}

func pv(name string) *ast.PVar { return &ast.PVar{Name: name} }
func ev(name string) *ast.EVar { return &ast.EVar{Name: name} }
func ci(n int) *ast.EConst     { return &ast.EConst{Value: &ast.Const{Kind: ast.CInt, Ival: n}} }

func apply2(fn string, a, b ast.Expr) ast.Expr {
	return &ast.EApply{Fn: &ast.EApply{Fn: ev(fn), Arg: a}, Arg: b}
}

var examples = map[string]*namedExample{
	"factorial": {
		name: "factorial",
		structure: &ast.Structure{Items: []ast.StrItem{
			&ast.SValue{Rec: true, Bindings: []ast.Binding{{
				Pat: pv("fact"),
				Expr: &ast.EFun{Param: pv("n"), Body: &ast.EIf{
					Cond: apply2("<=", ev("n"), ci(1)),
					Then: ci(1),
					Else: apply2("*", ev("n"), &ast.EApply{
						Fn:  ev("fact"),
						Arg: apply2("-", ev("n"), ci(1)),
					}),
				}},
			}}},
		}},
	},
	"let-polymorphism": {
		name: "let-polymorphism",
		structure: &ast.Structure{Items: []ast.StrItem{
			&ast.SValue{Bindings: []ast.Binding{{
				Pat:  pv("id"),
				Expr: &ast.EFun{Param: pv("x"), Body: ev("x")},
			}}},
			&ast.SValue{Bindings: []ast.Binding{{
				Pat: pv("temp"),
				Expr: &ast.ETuple{Elems: []ast.Expr{
					&ast.EApply{Fn: ev("id"), Arg: ci(1)},
					&ast.EApply{Fn: ev("id"), Arg: &ast.EConst{Value: &ast.Const{Kind: ast.CBool, Bval: true}}},
				}},
			}}},
		}},
	},
	"tuple-destructure": {
		name: "tuple-destructure",
		structure: &ast.Structure{Items: []ast.StrItem{
			&ast.SValue{Bindings: []ast.Binding{{
				Pat: pv("addPair"),
				Expr: &ast.EFun{
					Param: &ast.PTuple{Elems: []ast.Pattern{pv("a"), pv("b")}},
					Body:  apply2("+", ev("a"), ev("b")),
				},
			}}},
		}},
	},
}

func exampleNames() []string {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
