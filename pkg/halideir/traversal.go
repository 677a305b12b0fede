package halideir

// This file provides the three base traversal disciplines of spec.md §4.3.
// Per spec.md §9's re-architecture guidance, none of them use a virtual
// accept()/CRTP visitor: dispatch is an explicit Go type switch
// (exprChildren/MutateChildren/ProcessChildren below), and the "defaulted"
// flag the C++ Visitor exposes becomes an ordinary bool a caller's own
// ExprVisitor implementation can track for itself (there is nothing for the
// framework to compute on the caller's behalf once dispatch is a type
// switch rather than virtual method resolution).
//
// Grounded on the teacher's propagation.go (per-constraint-kind dispatch
// loop) and search.go (explicit, non-recursive tree walk) for the Go
// idiom of a dispatcher function taking a small callback interface, with
// exact recursion structure taken from original_source's IRVisitor.cpp /
// IRMutator.cpp / IRProcess.cpp.

// ExprVisitor is the Visitor discipline (spec.md §4.3 item 1): VisitExpr is
// called once per node; if it returns true, the default behaviour (recurse
// into children) runs.
type ExprVisitor interface {
	VisitExpr(e Expr) (recurse bool)
	VisitStmt(s Stmt) (recurse bool)
}

// WalkExpr drives an ExprVisitor over e and (if the visitor asks for it)
// its children.
func WalkExpr(e Expr, v ExprVisitor) {
	if e == nil {
		return
	}
	if !v.VisitExpr(e) {
		return
	}
	for _, c := range exprChildren(e) {
		WalkExpr(c, v)
	}
	for _, s := range exprStmtChildren(e) {
		WalkStmt(s, v)
	}
}

// WalkStmt drives an ExprVisitor over s.
func WalkStmt(s Stmt, v ExprVisitor) {
	if s == nil {
		return
	}
	if !v.VisitStmt(s) {
		return
	}
	for _, c := range stmtExprChildren(s) {
		WalkExpr(c, v)
	}
	for _, c := range stmtChildren(s) {
		WalkStmt(c, v)
	}
}

// exprChildren returns e's direct Expr children, in evaluation order.
func exprChildren(e Expr) []Expr {
	switch n := e.(type) {
	case *Cast:
		return []Expr{n.Value}
	case *Not:
		return []Expr{n.Value}
	case *Broadcast:
		return []Expr{n.Value}
	case *Ramp:
		return []Expr{n.Base, n.Stride}
	case *BinOp:
		return []Expr{n.A, n.B}
	case *CmpOp:
		return []Expr{n.A, n.B}
	case *BoolOp:
		return []Expr{n.A, n.B}
	case *Select:
		return []Expr{n.Cond, n.T, n.F}
	case *Load:
		return []Expr{n.Index}
	case *Call:
		return n.Args
	case *Let:
		return []Expr{n.Value, n.Body}
	case *Clamp:
		if n.P1 != nil {
			return []Expr{n.A, n.Min, n.Max, n.P1}
		}
		return []Expr{n.A, n.Min, n.Max}
	case *Solve:
		return []Expr{n.Body}
	case *TargetVar:
		if n.Source != nil {
			return []Expr{n.Body, n.Source}
		}
		return []Expr{n.Body}
	default:
		return nil
	}
}

// exprStmtChildren returns any Stmt children reachable from an Expr. No
// current Expr kind embeds a Stmt, but the hook exists so traversal stays
// total if one is added.
func exprStmtChildren(Expr) []Stmt { return nil }

// stmtExprChildren returns s's direct Expr children.
func stmtExprChildren(s Stmt) []Expr {
	switch n := s.(type) {
	case *LetStmt:
		return []Expr{n.Value}
	case *AssertStmt:
		return []Expr{n.Condition}
	case *PrintStmt:
		return n.Values
	case *For:
		return []Expr{n.Min, n.Extent}
	case *Store:
		return []Expr{n.Value, n.Index}
	case *Provide:
		args := make([]Expr, 0, len(n.Args)+1)
		args = append(args, n.Value)
		args = append(args, n.Args...)
		return args
	case *Allocate:
		return []Expr{n.Size}
	case *StmtTargetVar:
		if n.Source != nil {
			return []Expr{n.Source}
		}
		return nil
	default:
		return nil
	}
}

// stmtChildren returns s's direct Stmt children.
func stmtChildren(s Stmt) []Stmt {
	switch n := s.(type) {
	case *LetStmt:
		return []Stmt{n.Body}
	case *Pipeline:
		if n.Update != nil {
			return []Stmt{n.Produce, n.Update, n.Consume}
		}
		return []Stmt{n.Produce, n.Consume}
	case *For:
		return []Stmt{n.Body}
	case *Allocate:
		return []Stmt{n.Body}
	case *Realize:
		return []Stmt{n.Body}
	case *Block:
		if n.Rest != nil {
			return []Stmt{n.First, n.Rest}
		}
		return []Stmt{n.First}
	case *StmtTargetVar:
		return []Stmt{n.Body}
	default:
		return nil
	}
}

// ExprMutator is the Mutator discipline (spec.md §4.3 item 2): MutateExpr
// returns a rewritten node. Implementations should call MutateChildren to
// get automatic structural sharing: if no child actually changed, the
// original node is returned unchanged (same pointer), so unaffected
// subtrees of a large tree are never reallocated.
type ExprMutator interface {
	MutateExpr(e Expr) Expr
	MutateStmt(s Stmt) Stmt
}

// MutateChildren rebuilds e with each child replaced by m.MutateExpr(child)
// (or m.MutateStmt for statement children), reusing e itself if every
// child came back SameAs the original — the "Mutator ... share sub-trees
// by pointer identity when no change occurred" rule of spec.md §4.3.
func MutateChildren(e Expr, m ExprMutator) Expr {
	switch n := e.(type) {
	case *IntImm, *FloatImm, *Variable, *Infinity:
		return e
	case *Cast:
		v := m.MutateExpr(n.Value)
		if SameAs(v, n.Value) {
			return e
		}
		return &Cast{T: n.T, Value: v}
	case *Not:
		v := m.MutateExpr(n.Value)
		if SameAs(v, n.Value) {
			return e
		}
		return &Not{Value: v}
	case *Broadcast:
		v := m.MutateExpr(n.Value)
		if SameAs(v, n.Value) {
			return e
		}
		return &Broadcast{Value: v, Width: n.Width}
	case *Ramp:
		base := m.MutateExpr(n.Base)
		stride := m.MutateExpr(n.Stride)
		if SameAs(base, n.Base) && SameAs(stride, n.Stride) {
			return e
		}
		return &Ramp{Base: base, Stride: stride, Width: n.Width}
	case *BinOp:
		a, b := m.MutateExpr(n.A), m.MutateExpr(n.B)
		if SameAs(a, n.A) && SameAs(b, n.B) {
			return e
		}
		return &BinOp{A: a, B: b, kind: n.kind}
	case *CmpOp:
		a, b := m.MutateExpr(n.A), m.MutateExpr(n.B)
		if SameAs(a, n.A) && SameAs(b, n.B) {
			return e
		}
		return &CmpOp{A: a, B: b, kind: n.kind}
	case *BoolOp:
		a, b := m.MutateExpr(n.A), m.MutateExpr(n.B)
		if SameAs(a, n.A) && SameAs(b, n.B) {
			return e
		}
		return &BoolOp{A: a, B: b, kind: n.kind}
	case *Select:
		c, t, f := m.MutateExpr(n.Cond), m.MutateExpr(n.T), m.MutateExpr(n.F)
		if SameAs(c, n.Cond) && SameAs(t, n.T) && SameAs(f, n.F) {
			return e
		}
		return &Select{Cond: c, T: t, F: f}
	case *Load:
		idx := m.MutateExpr(n.Index)
		if SameAs(idx, n.Index) {
			return e
		}
		return &Load{T: n.T, Name: n.Name, Index: idx, Image: n.Image, Param: n.Param}
	case *Call:
		changed := false
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = m.MutateExpr(a)
			if !SameAs(args[i], a) {
				changed = true
			}
		}
		if !changed {
			return e
		}
		return &Call{T: n.T, Name: n.Name, Args: args, CallKind: n.CallKind, Func: n.Func, HasFunc: n.HasFunc, Image: n.Image, Param: n.Param}
	case *Let:
		v, body := m.MutateExpr(n.Value), m.MutateExpr(n.Body)
		if SameAs(v, n.Value) && SameAs(body, n.Body) {
			return e
		}
		return &Let{Name: n.Name, Value: v, Body: body}
	case *Clamp:
		a, lo, hi := m.MutateExpr(n.A), m.MutateExpr(n.Min), m.MutateExpr(n.Max)
		var p1 Expr
		if n.P1 != nil {
			p1 = m.MutateExpr(n.P1)
		}
		if SameAs(a, n.A) && SameAs(lo, n.Min) && SameAs(hi, n.Max) && SameAs(p1, n.P1) {
			return e
		}
		return &Clamp{ClampKind: n.ClampKind, A: a, Min: lo, Max: hi, P1: p1}
	case *Solve:
		body := m.MutateExpr(n.Body)
		if SameAs(body, n.Body) {
			return e
		}
		return &Solve{Body: body, Intervals: n.Intervals}
	case *TargetVar:
		body := m.MutateExpr(n.Body)
		if SameAs(body, n.Body) {
			return e
		}
		return &TargetVar{Name: n.Name, Body: body, Source: n.Source}
	default:
		return e
	}
}

// MutateStmtChildren is MutateChildren for statements.
func MutateStmtChildren(s Stmt, m ExprMutator) Stmt {
	switch n := s.(type) {
	case *LetStmt:
		v, body := m.MutateExpr(n.Value), m.MutateStmt(n.Body)
		if SameAs(v, n.Value) && StmtSameAs(body, n.Body) {
			return s
		}
		return &LetStmt{Name: n.Name, Value: v, Body: body}
	case *AssertStmt:
		c := m.MutateExpr(n.Condition)
		if SameAs(c, n.Condition) {
			return s
		}
		return &AssertStmt{Condition: c, Message: n.Message}
	case *PrintStmt:
		changed := false
		vals := make([]Expr, len(n.Values))
		for i, v := range n.Values {
			vals[i] = m.MutateExpr(v)
			if !SameAs(vals[i], v) {
				changed = true
			}
		}
		if !changed {
			return s
		}
		return &PrintStmt{Values: vals}
	case *Pipeline:
		produce := m.MutateStmt(n.Produce)
		var update Stmt
		if n.Update != nil {
			update = m.MutateStmt(n.Update)
		}
		consume := m.MutateStmt(n.Consume)
		if StmtSameAs(produce, n.Produce) && StmtSameAs(update, n.Update) && StmtSameAs(consume, n.Consume) {
			return s
		}
		return &Pipeline{Name: n.Name, Produce: produce, Update: update, Consume: consume}
	case *For:
		min, extent, body := m.MutateExpr(n.Min), m.MutateExpr(n.Extent), m.MutateStmt(n.Body)
		if SameAs(min, n.Min) && SameAs(extent, n.Extent) && StmtSameAs(body, n.Body) {
			return s
		}
		return &For{Name: n.Name, Min: min, Extent: extent, ForType: n.ForType, Partition: n.Partition, Body: body}
	case *Store:
		v, idx := m.MutateExpr(n.Value), m.MutateExpr(n.Index)
		if SameAs(v, n.Value) && SameAs(idx, n.Index) {
			return s
		}
		return &Store{Name: n.Name, Value: v, Index: idx}
	case *Provide:
		v := m.MutateExpr(n.Value)
		changed := !SameAs(v, n.Value)
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = m.MutateExpr(a)
			if !SameAs(args[i], a) {
				changed = true
			}
		}
		if !changed {
			return s
		}
		return &Provide{Name: n.Name, Value: v, Args: args}
	case *Allocate:
		size, body := m.MutateExpr(n.Size), m.MutateStmt(n.Body)
		if SameAs(size, n.Size) && StmtSameAs(body, n.Body) {
			return s
		}
		return &Allocate{Name: n.Name, T: n.T, Size: size, Body: body}
	case *Free:
		return s
	case *Realize:
		body := m.MutateStmt(n.Body)
		if StmtSameAs(body, n.Body) {
			return s
		}
		return &Realize{Name: n.Name, T: n.T, Bounds: n.Bounds, Body: body}
	case *Block:
		first := m.MutateStmt(n.First)
		var rest Stmt
		if n.Rest != nil {
			rest = m.MutateStmt(n.Rest)
		}
		if StmtSameAs(first, n.First) && StmtSameAs(rest, n.Rest) {
			return s
		}
		return &Block{First: first, Rest: rest}
	case *StmtTargetVar:
		body := m.MutateStmt(n.Body)
		if StmtSameAs(body, n.Body) {
			return s
		}
		return &StmtTargetVar{Name: n.Name, Body: body, Source: n.Source}
	default:
		return s
	}
}

// ExprProcessor is the Process discipline (spec.md §4.3 item 3): unlike
// Visitor, recursion is expressed by the processor calling ProcessExpr
// itself on each child from inside its own ProcessExpr method, so a
// scope-tracking layer (bounds.go's Bounds type, wrapping the context
// manager) can push/pop around that single recursive entry point instead
// of the framework doing it implicitly.
type ExprProcessor interface {
	ProcessExpr(e Expr)
	ProcessStmt(s Stmt)
}

// ProcessChildren calls p.ProcessExpr/ProcessStmt on every direct child of
// e — the default recursion a Process implementation calls into once it
// has done its own pre/post work for e itself.
func ProcessChildren(e Expr, p ExprProcessor) {
	for _, c := range exprChildren(e) {
		p.ProcessExpr(c)
	}
}

// ProcessStmtChildren is ProcessChildren for statements.
func ProcessStmtChildren(s Stmt, p ExprProcessor) {
	for _, c := range stmtExprChildren(s) {
		p.ProcessExpr(c)
	}
	for _, c := range stmtChildren(s) {
		p.ProcessStmt(c)
	}
}

// IRCacheMutator memoizes Mutate(e) by node pointer identity within a
// single pass (spec.md §4.3's "cache layer around Mutator"), guaranteeing
// each distinct node is visited once even if shared by many parents.
type IRCacheMutator struct {
	Inner     ExprMutator
	exprCache map[Expr]Expr
	stmtCache map[Stmt]Stmt
}

// NewIRCacheMutator wraps inner with a fresh per-pass memoization cache.
func NewIRCacheMutator(inner ExprMutator) *IRCacheMutator {
	return &IRCacheMutator{Inner: inner, exprCache: map[Expr]Expr{}, stmtCache: map[Stmt]Stmt{}}
}

func (c *IRCacheMutator) MutateExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	if v, ok := c.exprCache[e]; ok {
		return v
	}
	v := c.Inner.MutateExpr(e)
	c.exprCache[e] = v
	return v
}

func (c *IRCacheMutator) MutateStmt(s Stmt) Stmt {
	if s == nil {
		return nil
	}
	if v, ok := c.stmtCache[s]; ok {
		return v
	}
	v := c.Inner.MutateStmt(s)
	c.stmtCache[s] = v
	return v
}
