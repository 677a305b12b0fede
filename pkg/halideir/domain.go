package halideir

import "github.com/samber/lo"

// Pre-solver rewrite (§4.7.1), extraction (§4.7.4), and the kernel special
// case (§4.7.5): the parts of C7 that wrap spec.md §4.7.2's rewrite engine
// (solver.go) into the public "domain_inference" entry point. Grounded on
// original_source/cpp/src/DomainInference.cpp's top-level driver function.

// CalleeDomains answers "what is g's per-dimension domain interval" for
// the pre-solver rewrite: it abstracts over both a Function (inferred
// domain) and an Image (declared bounds) callee.
type CalleeDomains interface {
	DimCount() int
	DomainInterval(dim int, d DomainType) DomInterval
}

// funcCallee adapts *Function to CalleeDomains.
type funcCallee struct{ f *Function }

func (c funcCallee) DimCount() int { return len(c.f.Args) }
func (c funcCallee) DomainInterval(dim int, d DomainType) DomInterval {
	return c.f.Domain(d).Dims[dim]
}

// imageCallee adapts *Image to CalleeDomains.
type imageCallee struct{ im *Image }

func (c imageCallee) DimCount() int { return len(c.im.Bounds) }
func (c imageCallee) DomainInterval(dim int, d DomainType) DomInterval {
	if d == DomainValid {
		return c.im.ValidDomain().Dims[dim]
	}
	return c.im.ComputableDomain().Dims[dim]
}

// CalleeLookup resolves a Call node to the CalleeDomains it should consult,
// or nil if the call's target isn't known to this compilation (e.g. an
// Extern call, which carries no domain).
type CalleeLookup struct {
	Funcs  *FunctionArena
	Images map[string]*Image
}

func (l CalleeLookup) resolve(c *Call) CalleeDomains {
	switch c.CallKind {
	case CallHalide:
		if !c.HasFunc || l.Funcs == nil {
			return nil
		}
		return funcCallee{f: l.Funcs.Get(c.Func)}
	case CallImage:
		if l.Images == nil {
			return nil
		}
		if im, ok := l.Images[c.Name]; ok {
			return imageCallee{im: im}
		}
		return nil
	default:
		return nil
	}
}

// PreSolveRewrite implements spec.md §4.7.1: every Call argument becomes
// Solve(arg, callee_domain_intervals(j)), and the whole expression is
// wrapped in one TargetVar per name in pureArgs. PreSolveRewrite does not
// inline Let expressions. The only Let inlining on this path is the
// simplifier's (simplify.go), which DomainSolve runs: it substitutes a Let
// bound to a Variable or a constant and leaves any other Let in place.
func PreSolveRewrite(e Expr, pureArgs []string, lookup CalleeLookup) Expr {
	wrapped := (calleeRewriter{lookup: lookup}).MutateExpr(e)
	for _, name := range pureArgs {
		wrapped = &TargetVar{Name: name, Body: wrapped, Source: nil}
	}
	return wrapped
}

type calleeRewriter struct {
	lookup CalleeLookup
}

func (r calleeRewriter) MutateExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	call, ok := e.(*Call)
	if !ok {
		return MutateChildren(e, r)
	}
	callee := r.lookup.resolve(call)
	args := make([]Expr, len(call.Args))
	changed := false
	for i, a := range call.Args {
		rewrittenArg := r.MutateExpr(a)
		if callee != nil && i < callee.DimCount() {
			var ivs [MaxDomains]InfInterval
			for d := 0; d < MaxDomains; d++ {
				ivs[d] = callee.DomainInterval(i, DomainType(d))
			}
			rewrittenArg = &Solve{Body: rewrittenArg, Intervals: ivs}
		}
		if !SameAs(rewrittenArg, a) {
			changed = true
		}
		args[i] = rewrittenArg
	}
	if !changed {
		return call
	}
	return &Call{T: call.T, Name: call.Name, Args: args, CallKind: call.CallKind, Func: call.Func, HasFunc: call.HasFunc, Image: call.Image, Param: call.Param}
}

func (r calleeRewriter) MutateStmt(s Stmt) Stmt { return MutateStmtChildren(s, r) }

// ExtractSolutions implements spec.md §4.7.4: after DomainSolve reaches a
// fixed point, walk the tree and collect, for every variable name in
// names, the intersection of every Solve(Variable(v), ...) contribution,
// plus an inexact full-range contribution for any variable left exposed
// inside a Solve whose body never reduced to a bare Variable.
func ExtractSolutions(names []string, solved Expr, t Type) map[string][MaxDomains]InfInterval {
	contrib := map[string][MaxDomains]InfInterval{}
	wanted := map[string]bool{}
	for _, n := range names {
		wanted[n] = true
		var seed [MaxDomains]InfInterval
		for i := range seed {
			seed[i] = FullInfInterval(t)
		}
		contrib[n] = seed
	}
	WalkExpr(solved, exprVisitorFunc{
		visitExpr: func(x Expr) bool {
			sv, ok := x.(*Solve)
			if !ok {
				return true
			}
			if v, ok := sv.Body.(*Variable); ok && wanted[v.Name] {
				cur := contrib[v.Name]
				for i := range cur {
					cur[i] = IntersectInterval(cur[i], sv.Intervals[i])
				}
				contrib[v.Name] = cur
				return false
			}
			for _, name := range freeTargetNames(sv.Body, wanted) {
				cur := contrib[name]
				for i := range cur {
					cur[i] = IntersectInterval(cur[i], InfInterval{Min: NegInfBound, Max: PosInfBound, T: t, Exact: false})
				}
				contrib[name] = cur
			}
			return true
		},
		visitStmt: func(Stmt) bool { return true },
	})
	return contrib
}

// freeTargetNames returns the distinct wanted variable names occurring
// anywhere in e.
func freeTargetNames(e Expr, wanted map[string]bool) []string {
	seen := map[string]bool{}
	var names []string
	WalkExpr(e, exprVisitorFunc{
		visitExpr: func(x Expr) bool {
			if v, ok := x.(*Variable); ok && wanted[v.Name] && !seen[v.Name] {
				seen[v.Name] = true
				names = append(names, v.Name)
			}
			return true
		},
		visitStmt: func(Stmt) bool { return true },
	})
	return names
}

// countCallOccurrences counts how many Variable nodes named name occur
// anywhere in e, used by the kernel special case.
func countCallOccurrences(e Expr, name string) int {
	count := 0
	WalkExpr(e, exprVisitorFunc{
		visitExpr: func(x Expr) bool {
			if v, ok := x.(*Variable); ok && v.Name == name {
				count++
			}
			return true
		},
		visitStmt: func(Stmt) bool { return true },
	})
	return count
}

// DomainInference is the §6 entry point "domain_inference(variable_names,
// Expr) → [Domain; MaxDomains]". pureArgs gives the dimension order.
func DomainInference(pureArgs []string, e Expr, lookup CalleeLookup) [MaxDomains]Domain {
	pre := PreSolveRewrite(e, pureArgs, lookup)
	solved := DomainSolve(pre)
	contrib := ExtractSolutions(pureArgs, solved, Int32)
	applyKernelSpecialCase(e, pureArgs, lookup, contrib)

	var out [MaxDomains]Domain
	for d := 0; d < MaxDomains; d++ {
		dims := lo.Map(pureArgs, func(name string, _ int) DomInterval {
			return contrib[name][d]
		})
		out[d] = Domain{Dims: dims}
	}
	return out
}

// applyKernelSpecialCase implements spec.md §4.7.5: if the expression
// contains exactly one implicit argument (the sole argument of the single
// Call it appears under) appearing exactly once anywhere in e, that
// variable's Valid interval is copied from the callee and intersected with
// whatever Computable interval was inferred for it.
func applyKernelSpecialCase(e Expr, pureArgs []string, lookup CalleeLookup, contrib map[string][MaxDomains]InfInterval) {
	var singleCall *Call
	calls := 0
	WalkExpr(e, exprVisitorFunc{
		visitExpr: func(x Expr) bool {
			if c, ok := x.(*Call); ok {
				calls++
				singleCall = c
			}
			return true
		},
		visitStmt: func(Stmt) bool { return true },
	})
	if calls != 1 || singleCall == nil || len(singleCall.Args) != 1 {
		return
	}
	arg, ok := singleCall.Args[0].(*Variable)
	if !ok || !contains(pureArgs, arg.Name) {
		return
	}
	if countCallOccurrences(e, arg.Name) != 1 {
		return
	}
	callee := lookup.resolve(singleCall)
	if callee == nil || callee.DimCount() != 1 {
		return
	}
	calleeValid := callee.DomainInterval(0, DomainValid)
	cur := contrib[arg.Name]
	cur[DomainValid] = IntersectInterval(calleeValid, cur[DomainComputable])
	contrib[arg.Name] = cur
}

func contains(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}
