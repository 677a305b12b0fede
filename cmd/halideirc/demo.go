package main

import (
	"fmt"

	"github.com/halide-lang/halide-ir/pkg/halideir"
)

// demoExpr returns one of a small set of named fixture expressions, since
// this driver has no parser front end (spec.md §1 excludes the DSL parser
// from scope) — the simplify/bounds subcommands exercise the library
// against expressions built directly with the pkg/halideir constructors,
// mirroring how cmd/example builds its fixtures inline rather than parsing
// them from text.
func demoExpr(name string) (halideir.Expr, bool) {
	x := halideir.NewVariable("x", halideir.Int32)
	switch name {
	case "add-fold":
		// (x + 3) + 4 -> x + 7
		return halideir.Add(halideir.Add(x, halideir.NewIntImm(3)), halideir.NewIntImm(4)), true
	case "div-floor":
		// -23 / 4 -> -6
		return halideir.Div(halideir.NewIntImm(-23), halideir.NewIntImm(4)), true
	case "mod-floor":
		// -23 % 4 -> 1
		return halideir.Mod(halideir.NewIntImm(-23), halideir.NewIntImm(4)), true
	case "min-clamp":
		// min(x, x) -> x
		return halideir.MinE(x, x), true
	case "x-plus-4":
		return halideir.Add(x, halideir.NewIntImm(4)), true
	default:
		return nil, false
	}
}

// domainScenario packages the three inputs domain_inference needs: the
// pure argument names (dimension order), the body expression, and a
// CalleeLookup resolving the single callee each worked scenario refers to.
type domainScenario struct {
	args   []string
	body   halideir.Expr
	lookup halideir.CalleeLookup
}

// demoScenario returns one of spec.md §8's worked domain-inference
// scenarios.
func demoScenario(name string) (domainScenario, bool) {
	switch name {
	case "in-x-y":
		// f(x, y) = in(x, y), where in is a 20x40 Image: Valid and
		// Computable domains both equal the image bounds.
		x := halideir.NewVariable("x", halideir.Int32)
		y := halideir.NewVariable("y", halideir.Int32)
		im := &halideir.Image{
			Name: "in",
			T:    halideir.Int32,
			Bounds: []halideir.Range{
				{Min: 0, Extent: 20},
				{Min: 0, Extent: 40},
			},
		}
		call := &halideir.Call{
			T:        halideir.Int32,
			Name:     "in",
			Args:     []halideir.Expr{x, y},
			CallKind: halideir.CallImage,
			Image:    im.Ref(),
		}
		lookup := halideir.CalleeLookup{Images: map[string]*halideir.Image{"in": im}}
		return domainScenario{args: []string{"x", "y"}, body: call, lookup: lookup}, true
	case "shift-y":
		// f(x, y) = in(x, y - 1): Valid domain's y dimension shifts by +1
		// relative to the callee's declared bounds.
		x := halideir.NewVariable("x", halideir.Int32)
		y := halideir.NewVariable("y", halideir.Int32)
		im := &halideir.Image{
			Name: "in",
			T:    halideir.Int32,
			Bounds: []halideir.Range{
				{Min: 0, Extent: 20},
				{Min: 0, Extent: 40},
			},
		}
		call := &halideir.Call{
			T:    halideir.Int32,
			Name: "in",
			Args: []halideir.Expr{
				x,
				halideir.Sub(y, halideir.NewIntImm(1)),
			},
			CallKind: halideir.CallImage,
			Image:    im.Ref(),
		}
		lookup := halideir.CalleeLookup{Images: map[string]*halideir.Image{"in": im}}
		return domainScenario{args: []string{"x", "y"}, body: call, lookup: lookup}, true
	default:
		return domainScenario{}, false
	}
}

// exprString renders e as parenthesised infix with node-kind names (e.g.
// "(x Add 4)"), without pulling in a full pretty-printer: enough to make
// --expr fixtures legible on a terminal.
func exprString(e halideir.Expr) string {
	switch n := e.(type) {
	case *halideir.IntImm:
		return fmt.Sprintf("%d", n.Value)
	case *halideir.FloatImm:
		return fmt.Sprintf("%g", n.Value)
	case *halideir.Variable:
		return n.Name
	case *halideir.Cast:
		return fmt.Sprintf("cast(%s, %s)", n.T, exprString(n.Value))
	case *halideir.Not:
		return fmt.Sprintf("!%s", exprString(n.Value))
	case *halideir.BinOp:
		return fmt.Sprintf("(%s %s %s)", exprString(n.A), n.Kind(), exprString(n.B))
	case *halideir.CmpOp:
		return fmt.Sprintf("(%s %s %s)", exprString(n.A), n.Kind(), exprString(n.B))
	case *halideir.BoolOp:
		return fmt.Sprintf("(%s %s %s)", exprString(n.A), n.Kind(), exprString(n.B))
	case *halideir.Select:
		return fmt.Sprintf("select(%s, %s, %s)", exprString(n.Cond), exprString(n.T), exprString(n.F))
	case *halideir.Call:
		args := ""
		for i, a := range n.Args {
			if i > 0 {
				args += ", "
			}
			args += exprString(a)
		}
		return fmt.Sprintf("%s(%s)", n.Name, args)
	case *halideir.Let:
		return fmt.Sprintf("(let %s = %s in %s)", n.Name, exprString(n.Value), exprString(n.Body))
	case *halideir.Clamp:
		return fmt.Sprintf("clamp_%s(%s, %s, %s)", n.ClampKind, exprString(n.A), exprString(n.Min), exprString(n.Max))
	default:
		return fmt.Sprintf("<%s>", e.Kind())
	}
}
