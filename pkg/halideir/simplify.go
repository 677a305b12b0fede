package halideir

// Simplify is the algebraic simplifier of spec.md §4.6, grounded on
// original_source/cpp/src/Simplify.cpp for rule selection and on the
// teacher's propagation.go (a mutating constraint-store walk applying one
// local rewrite rule at a time until no more fire) for the Go idiom: rather
// than one arm-of-a-giant-switch per Halide IRMutator::visit override, each
// node kind gets its own small simplifyXxx method that first recurses via
// MutateChildren/MutateStmtChildren (traversal.go) and then tries its rules
// against the already-simplified children.
//
// A Simplify instance is single-use per compilation: it carries the
// variable-substitution scope (vars) built up as Let/LetStmt/For/TargetVar
// bindings are entered, and the ContextManager (context.go) those bindings
// are registered against, so the same physical Variable node can simplify
// differently depending on which binder it's reached through.
type Simplify struct {
	Options Options
	ctx     *ContextManager
	vars    map[string]Expr
	mods    map[string]ModulusRemainder
	// bounds is nil for a plain Simplify. When set (via NewBoundsSimplify),
	// simplifyBinOpIdentities's Min/Max cases and simplifyClamp consult it
	// to discharge a clamp/min/max whose operand bounds alone prove it
	// redundant, not just when every operand is already a literal.
	bounds *Bounds
}

// NewSimplify returns a simplifier using opts and (optionally nil)
// ContextManager cm. If cm is nil, a fresh one is created.
func NewSimplify(opts Options, cm *ContextManager) *Simplify {
	if cm == nil {
		cm = NewContextManager()
	}
	return &Simplify{Options: opts, ctx: cm, vars: map[string]Expr{}, mods: map[string]ModulusRemainder{}}
}

// NewBoundsSimplify is NewSimplify plus a Bounds analysis sharing cm, so
// clamp/min/max rules can be discharged by a proven interval fact rather
// than only by literal operands (spec.md §8's "bounds_simplify" scenario).
// funcs may be nil (Load/Call then over-approximate by result type).
func NewBoundsSimplify(opts Options, cm *ContextManager, funcs *FunctionArena) *Simplify {
	if cm == nil {
		cm = NewContextManager()
	}
	s := NewSimplify(opts, cm)
	s.bounds = NewBounds(cm, funcs)
	return s
}

// SimplifyExpr runs the default simplifier over e once.
func SimplifyExpr(e Expr) Expr {
	return NewSimplify(DefaultOptions(), nil).MutateExpr(e)
}

// SimplifyStmt runs the default simplifier over s once.
func SimplifyStmt(s Stmt) Stmt {
	return NewSimplify(DefaultOptions(), nil).MutateStmt(s)
}

// BoundsSimplifyExpr runs a bounds-aware simplifier pass over e once: a
// clamp/min/max collapses when an operand's proven interval alone makes it
// redundant, even when neither operand is a literal constant.
func BoundsSimplifyExpr(e Expr) Expr {
	return NewBoundsSimplify(DefaultOptions(), nil, nil).MutateExpr(e)
}

// proved's three-valued result.
type provedResult int

const (
	unknown provedResult = iota
	isTrue
	isFalse
)

// Proved reports whether e — a boolean expression — provably simplifies to
// the constant true. It is the positive half of spec.md §4.6's
// "proved(e)/disproved(e)" pair.
func Proved(e Expr) bool {
	return provedStatus(e) == isTrue
}

// Disproved reports whether e provably simplifies to the constant false.
func Disproved(e Expr) bool {
	return provedStatus(e) == isFalse
}

func provedStatus(e Expr) provedResult {
	simplified := SimplifyExpr(e)
	imm, ok := simplified.(*IntImm)
	if !ok {
		return unknown
	}
	if imm.Value != 0 {
		return isTrue
	}
	return isFalse
}

// MutateExpr implements ExprMutator.
func (s *Simplify) MutateExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *IntImm, *FloatImm, *Infinity:
		return e
	case *Variable:
		if v, ok := s.vars[n.Name]; ok {
			return v
		}
		return e
	case *Cast:
		return s.simplifyCast(n)
	case *Not:
		return s.simplifyNot(n)
	case *Broadcast:
		return s.simplifyBroadcast(n)
	case *Ramp:
		return s.simplifyRamp(n)
	case *BinOp:
		return s.simplifyBinOp(n)
	case *CmpOp:
		return s.simplifyCmpOp(n)
	case *BoolOp:
		return s.simplifyBoolOp(n)
	case *Select:
		return s.simplifySelect(n)
	case *Load:
		return MutateChildren(e, s)
	case *Call:
		return MutateChildren(e, s)
	case *Let:
		return s.simplifyLet(n)
	case *Clamp:
		return s.simplifyClamp(n)
	case *Solve:
		return MutateChildren(e, s)
	case *TargetVar:
		return s.simplifyTargetVar(n)
	default:
		return e
	}
}

// MutateStmt implements ExprMutator.
func (s *Simplify) MutateStmt(st Stmt) Stmt {
	if st == nil {
		return nil
	}
	switch n := st.(type) {
	case *LetStmt:
		return s.simplifyLetStmt(n)
	case *AssertStmt:
		return s.simplifyAssertStmt(n)
	case *For:
		return s.simplifyFor(n)
	case *Block:
		return s.simplifyBlock(n)
	default:
		return MutateStmtChildren(st, s)
	}
}

func (s *Simplify) simplifyCast(n *Cast) Expr {
	v := s.MutateExpr(n.Value)
	if imm, ok := v.(*IntImm); ok {
		return NewIntImmT(n.T, IntCastConstant(n.T, imm.Value))
	}
	if imm, ok := v.(*FloatImm); ok && n.T.IsFloat() {
		return NewFloatImmT(n.T, imm.Value)
	}
	// cast(T, cast(T, x)) = cast(T, x): spec.md §8's idempotent-cast law.
	if inner, ok := v.(*Cast); ok && inner.T == n.T {
		return inner
	}
	if SameAs(v, n.Value) {
		return n
	}
	return &Cast{T: n.T, Value: v}
}

func (s *Simplify) simplifyNot(n *Not) Expr {
	v := s.MutateExpr(n.Value)
	if imm, ok := v.(*IntImm); ok {
		if imm.Value != 0 {
			return NewIntImmT(imm.T, 0)
		}
		return NewIntImmT(imm.T, 1)
	}
	if inner, ok := v.(*Not); ok {
		return inner.Value
	}
	if cmp, ok := v.(*CmpOp); ok {
		if negated, ok := negateCmp(cmp.kind); ok {
			return &CmpOp{A: cmp.A, B: cmp.B, kind: negated}
		}
	}
	if SameAs(v, n.Value) {
		return n
	}
	return &Not{Value: v}
}

func negateCmp(k NodeKind) (NodeKind, bool) {
	switch k {
	case KindEQ:
		return KindNE, true
	case KindNE:
		return KindEQ, true
	case KindLT:
		return KindGE, true
	case KindLE:
		return KindGT, true
	case KindGT:
		return KindLE, true
	case KindGE:
		return KindLT, true
	default:
		return 0, false
	}
}

func (s *Simplify) simplifyBroadcast(n *Broadcast) Expr {
	v := s.MutateExpr(n.Value)
	if n.Width == 1 {
		return v
	}
	if SameAs(v, n.Value) {
		return n
	}
	return &Broadcast{Value: v, Width: n.Width}
}

func (s *Simplify) simplifyRamp(n *Ramp) Expr {
	base := s.MutateExpr(n.Base)
	stride := s.MutateExpr(n.Stride)
	if imm, ok := stride.(*IntImm); ok && imm.Value == 0 {
		return &Broadcast{Value: base, Width: n.Width}
	}
	if SameAs(base, n.Base) && SameAs(stride, n.Stride) {
		return n
	}
	return &Ramp{Base: base, Stride: stride, Width: n.Width}
}

func (s *Simplify) simplifySelect(n *Select) Expr {
	cond := s.MutateExpr(n.Cond)
	if imm, ok := cond.(*IntImm); ok {
		if imm.Value != 0 {
			return s.MutateExpr(n.T)
		}
		return s.MutateExpr(n.F)
	}
	t, f := s.MutateExpr(n.T), s.MutateExpr(n.F)
	if Equal(t, f) {
		return t
	}
	if SameAs(cond, n.Cond) && SameAs(t, n.T) && SameAs(f, n.F) {
		return n
	}
	return &Select{Cond: cond, T: t, F: f}
}

func (s *Simplify) simplifyLet(n *Let) Expr {
	value := s.MutateExpr(n.Value)
	ctxID := s.ctx.Enter(n, n.Name)
	defer s.ctx.Leave()
	// Substituting a constant or a bare variable reference is always a
	// shrink (spec.md §4.6's "Let-scope substitution"); anything else is
	// left as a binding so large shared subexpressions aren't duplicated.
	substitutable := isConstantExpr(value) || isVariableRef(value)
	var previous Expr
	hadPrevious := false
	if substitutable {
		previous, hadPrevious = s.vars[n.Name]
		s.vars[n.Name] = value
	}
	if value.Type().IsInt() {
		prevMod, hadMod := s.mods[n.Name]
		s.mods[n.Name] = modulusOf(value, s.mods)
		defer func() {
			if hadMod {
				s.mods[n.Name] = prevMod
			} else {
				delete(s.mods, n.Name)
			}
		}()
	}
	body := s.MutateExpr(n.Body)
	if substitutable {
		if hadPrevious {
			s.vars[n.Name] = previous
		} else {
			delete(s.vars, n.Name)
		}
		return body
	}
	_ = ctxID
	if !isVariableUsed(body, n.Name) {
		return body
	}
	if SameAs(value, n.Value) && SameAs(body, n.Body) {
		return n
	}
	return &Let{Name: n.Name, Value: value, Body: body}
}

func (s *Simplify) simplifyTargetVar(n *TargetVar) Expr {
	s.ctx.Enter(n, n.Name)
	defer s.ctx.Leave()
	return MutateChildren(n, s)
}

func (s *Simplify) simplifyLetStmt(n *LetStmt) Stmt {
	value := s.MutateExpr(n.Value)
	s.ctx.Enter(n, n.Name)
	defer s.ctx.Leave()
	substitutable := isConstantExpr(value) || isVariableRef(value)
	var previous Expr
	hadPrevious := false
	if substitutable {
		previous, hadPrevious = s.vars[n.Name]
		s.vars[n.Name] = value
	}
	body := s.MutateStmt(n.Body)
	if substitutable {
		if hadPrevious {
			s.vars[n.Name] = previous
		} else {
			delete(s.vars, n.Name)
		}
		return body
	}
	if SameAs(value, n.Value) && StmtSameAs(body, n.Body) {
		return n
	}
	return &LetStmt{Name: n.Name, Value: value, Body: body}
}

func (s *Simplify) simplifyAssertStmt(n *AssertStmt) Stmt {
	cond := s.MutateExpr(n.Condition)
	if Proved(cond) {
		return nil
	}
	if SameAs(cond, n.Condition) {
		return n
	}
	return &AssertStmt{Condition: cond, Message: n.Message}
}

func (s *Simplify) simplifyFor(n *For) Stmt {
	min, extent := s.MutateExpr(n.Min), s.MutateExpr(n.Extent)
	if imm, ok := extent.(*IntImm); ok && imm.Value == 0 {
		return nil
	}
	s.ctx.Enter(n, n.Name)
	defer s.ctx.Leave()
	body := s.MutateStmt(n.Body)
	if body == nil {
		return nil
	}
	if SameAs(min, n.Min) && SameAs(extent, n.Extent) && StmtSameAs(body, n.Body) {
		return n
	}
	return &For{Name: n.Name, Min: min, Extent: extent, ForType: n.ForType, Partition: n.Partition, Body: body}
}

func (s *Simplify) simplifyBlock(n *Block) Stmt {
	first := s.MutateStmt(n.First)
	var rest Stmt
	if n.Rest != nil {
		rest = s.MutateStmt(n.Rest)
	}
	if first == nil {
		return rest
	}
	if rest == nil {
		return first
	}
	if StmtSameAs(first, n.First) && StmtSameAs(rest, n.Rest) {
		return n
	}
	return &Block{First: first, Rest: rest}
}

// isConstantExpr reports whether e is a leaf constant; used by the Let and
// LetStmt substitution rules above.
func isConstantExpr(e Expr) bool {
	switch e.(type) {
	case *IntImm, *FloatImm:
		return true
	default:
		return false
	}
}

func isVariableRef(e Expr) bool {
	_, ok := e.(*Variable)
	return ok
}

// isVariableUsed reports whether name occurs free in e — used to drop a Let
// whose binding is now unreferenced after simplification collapsed its
// uses away.
func isVariableUsed(e Expr, name string) bool {
	found := false
	WalkExpr(e, exprVisitorFunc{
		visitExpr: func(x Expr) bool {
			if found {
				return false
			}
			if v, ok := x.(*Variable); ok && v.Name == name {
				found = true
				return false
			}
			return true
		},
		visitStmt: func(Stmt) bool { return !found },
	})
	return found
}

// exprVisitorFunc adapts two closures to the ExprVisitor interface.
type exprVisitorFunc struct {
	visitExpr func(Expr) bool
	visitStmt func(Stmt) bool
}

func (f exprVisitorFunc) VisitExpr(e Expr) bool { return f.visitExpr(e) }
func (f exprVisitorFunc) VisitStmt(s Stmt) bool { return f.visitStmt(s) }
