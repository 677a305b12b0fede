package halideir

// Bounds is the Process-discipline traversal of spec.md §4.6: it computes,
// for a node, the InfInterval its value is guaranteed to lie within given
// the current context's bindings. Grounded on
// original_source/cpp/src/Bounds.cpp (a single recursive bounds() function
// keyed by context) and, for the Go shape of a Process-discipline walker
// that owns a mutable field threaded through recursive calls rather than
// an accumulator parameter, the teacher's propagation.go worklist loop.
//
// Unlike Simplify (an ExprMutator), Bounds implements ExprProcessor: it
// never rewrites the tree, only annotates it with an interval, so sharing
// one Bounds per compilation and memoizing by (context, node) is safe even
// across many separate bounds() calls over overlapping subtrees.
type Bounds struct {
	ctx     *ContextManager
	Funcs   *FunctionArena
	cache   map[NodeKey]InfInterval
	current InfInterval
}

// NewBounds returns a Bounds analysis sharing cm (so it sees the same
// context ids the simplifier/solver assigned) and funcs (checked for the
// callee's presence on a Call; Load and Call bounds are always the result
// type's range).
func NewBounds(cm *ContextManager, funcs *FunctionArena) *Bounds {
	return &Bounds{ctx: cm, Funcs: funcs, cache: map[NodeKey]InfInterval{}}
}

// BoundsOf is the §6 entry point "bounds(Expr) → InfInterval", using a
// fresh context manager and no function arena (so Load/Call fall back to
// their result type's representable range).
func BoundsOf(e Expr) InfInterval {
	return NewBounds(NewContextManager(), NewFunctionArena()).Of(e)
}

// Of computes e's interval under the analysis's current context,
// memoizing by (context, node) per spec.md §4.6.
func (b *Bounds) Of(e Expr) InfInterval {
	key := b.ctx.Push(e)
	if iv, ok := b.cache[key]; ok {
		return iv
	}
	iv := b.compute(e)
	b.cache[key] = iv
	return iv
}

// ProcessExpr satisfies ExprProcessor by recording e's interval into
// current, the field a caller reads after driving a walk with
// ProcessChildren.
func (b *Bounds) ProcessExpr(e Expr) { b.current = b.Of(e) }

// ProcessStmt is a no-op: statements carry no value and so no interval;
// present only so Bounds satisfies ExprProcessor for traversal.go's
// ProcessStmtChildren.
func (b *Bounds) ProcessStmt(Stmt) {}

func (b *Bounds) compute(e Expr) InfInterval {
	switch n := e.(type) {
	case *IntImm:
		return SinglePoint(n.T, n.Value)
	case *FloatImm:
		return FullInfInterval(n.T) // float constants aren't tracked exactly
	case *Infinity:
		panic("halideir: bounds analysis recursed into an Infinity node")
	case *Variable:
		return b.boundsOfVariable(n)
	case *Cast:
		return b.boundsOfCast(n)
	case *Not:
		return FullInfInterval(n.Type())
	case *Broadcast:
		return b.Of(n.Value)
	case *Ramp:
		return b.boundsOfRamp(n)
	case *BinOp:
		return b.boundsOfBinOp(n)
	case *CmpOp, *BoolOp:
		return FullInfInterval(e.Type())
	case *Select:
		t, f := b.Of(n.T), b.Of(n.F)
		return UnionInterval(t, f)
	case *Load:
		return b.boundsOfLoad(n)
	case *Call:
		return b.boundsOfCall(n)
	case *Let:
		return b.boundsOfLet(n)
	case *Clamp:
		return b.boundsOfClamp(n)
	case *Solve:
		return b.Of(n.Body)
	case *TargetVar:
		return b.boundsOfTargetVar(n)
	default:
		return FullInfInterval(e.Type())
	}
}

func (b *Bounds) boundsOfVariable(n *Variable) InfInterval {
	ctx, ok := b.ctx.FindVariable(b.ctx.CurrentContext(), n.Name)
	if !ok {
		return FullInfInterval(n.T)
	}
	restore := b.ctx.Go(b.ctx.Parent(ctx))
	defer restore()
	switch def := b.ctx.frames[ctx].defining.(type) {
	case *Let:
		return b.Of(def.Value)
	case *LetStmt:
		return b.Of(def.Value)
	case *For:
		min := b.Of(def.Min)
		extent := b.Of(def.Extent)
		if !min.IsFinite() || !extent.IsFinite() {
			return FullInfInterval(n.T)
		}
		return NewInfInterval(n.T, min.Imin(), min.Imin()+extent.Imax()-1)
	case *TargetVar:
		return n.targetVarInterval(def)
	default:
		return FullInfInterval(n.T)
	}
}

// targetVarInterval reports the widest recorded Solve interval for this
// TargetVar binding, if the solver has annotated one onto the body;
// otherwise the variable's declared type range.
func (n *Variable) targetVarInterval(def *TargetVar) InfInterval {
	if solve, ok := def.Body.(*Solve); ok {
		return solve.Intervals[DomainValid]
	}
	return FullInfInterval(n.T)
}

func (b *Bounds) boundsOfCast(n *Cast) InfInterval {
	inner := b.Of(n.Value)
	if !inner.IsFinite() {
		return FullInfInterval(n.T)
	}
	lo := IntCastConstant(n.T, inner.Imin())
	hi := IntCastConstant(n.T, inner.Imax())
	if lo > hi {
		// Truncation wrapped the range past the type's extrema: no longer
		// sound to report a tight bound.
		return FullInfInterval(n.T)
	}
	return NewInfInterval(n.T, lo, hi)
}

func (b *Bounds) boundsOfRamp(n *Ramp) InfInterval {
	base := b.Of(n.Base)
	stride := b.Of(n.Stride)
	if !stride.IsFinite() || stride.Min.Val != stride.Max.Val {
		return FullInfInterval(n.Type())
	}
	k := stride.Min.Val
	hi := base.AddK(k * int64(n.Width-1))
	if k >= 0 {
		return InfInterval{Min: base.Min, Max: hi.Max, T: n.Type(), Exact: base.Exact}
	}
	return InfInterval{Min: hi.Min, Max: base.Max, T: n.Type(), Exact: base.Exact}
}

func (b *Bounds) boundsOfBinOp(n *BinOp) InfInterval {
	a, bb := b.Of(n.A), b.Of(n.B)
	switch n.kind {
	case KindAdd:
		return AddInterval(a, bb)
	case KindSub:
		return SubInterval(a, bb)
	case KindMul:
		return MulInterval(a, bb)
	case KindDiv:
		return DivInterval(a, bb)
	case KindMod:
		return ModInterval(a, bb)
	case KindMin:
		return MinInterval(a, bb)
	case KindMax:
		return MaxInterval(a, bb)
	default:
		return FullInfInterval(n.Type())
	}
}

// boundsOfLoad returns the result type's representable range: §4.6's
// "Load and Call return the bound of their result type... unless upstream
// per-function analysis has published a tighter interval" — Load has no
// such upstream analysis (it addresses a raw buffer, not a Function), so
// it always takes the type-range over-approximation.
func (b *Bounds) boundsOfLoad(n *Load) InfInterval {
	return typeRangeBound(n.T)
}

// boundsOfCall always over-approximates by result type. It does not
// consult the callee Function's Valid or Computable domain, even when the
// callee is present in Funcs.
func (b *Bounds) boundsOfCall(n *Call) InfInterval {
	if n.CallKind != CallHalide || !n.HasFunc || b.Funcs == nil {
		return typeRangeBound(n.T)
	}
	_ = b.Funcs.Get(n.Func) // presence check; result type is still the bound
	return typeRangeBound(n.T)
}

// typeRangeBound is the "bound of the result type" fallback: finite for
// bounded integer kinds, unbounded for float/handle and for UInt(32)/
// UInt(64), whose true maximum does not fit in this package's int64-based
// Bound representation (see types.go's Max() note; this is the documented
// approximation from SPEC_FULL.md's Open Questions).
func typeRangeBound(t Type) InfInterval {
	lo, hasMin := t.Min()
	hi, hasMax := t.Max()
	if !hasMin || !hasMax || (t.IsUInt() && t.Bits >= 32) {
		return FullInfInterval(t)
	}
	return NewInfInterval(t, lo, hi)
}

func (b *Bounds) boundsOfLet(n *Let) InfInterval {
	b.ctx.Enter(n, n.Name)
	defer b.ctx.Leave()
	return b.Of(n.Body)
}

func (b *Bounds) boundsOfTargetVar(n *TargetVar) InfInterval {
	b.ctx.Enter(n, n.Name)
	defer b.ctx.Leave()
	return b.Of(n.Body)
}

// boundsOfClamp computes the bound of a border-handled clamp directly from
// its operands; the solver's inverse rules (solver.go) are a separate,
// backwards analysis and do not reuse this forward bound.
func (b *Bounds) boundsOfClamp(n *Clamp) InfInterval {
	a := b.Of(n.A)
	lo := b.Of(n.Min)
	hi := b.Of(n.Max)
	switch n.ClampKind {
	case ClampReplicate, ClampNone:
		return IntersectInterval(a, InfInterval{Min: lo.Min, Max: hi.Max, T: n.Type(), Exact: lo.Exact && hi.Exact})
	default:
		// Wrap/Reflect/Reflect101/Tile always land inside [lo,hi] by
		// construction, regardless of a's own range.
		if lo.IsFinite() && hi.IsFinite() {
			return InfInterval{Min: lo.Min, Max: hi.Max, T: n.Type(), Exact: lo.Exact && hi.Exact}
		}
		return FullInfInterval(n.Type())
	}
}
