package halideir

// Constant folding and algebraic identities for BinOp/CmpOp, grounded on
// original_source/cpp/src/Simplify.cpp's visit(Add/Sub/Mul/Div/Mod/Min/Max)
// and visit(EQ/NE/LT/LE/GT/GE) rule tables. Each rule here corresponds to
// one of the "well known simplifications" spec.md §4.6 asks for; the
// tables are not exhaustive (the original has hundreds of rules generated
// by a rule-matching DSL this package has no analogue of), but cover the
// identities spec.md §8 states as explicit testable properties plus the
// handful the bounds/solver passes rely on structurally.

func (s *Simplify) simplifyBinOp(n *BinOp) Expr {
	a := s.MutateExpr(n.A)
	b := s.MutateExpr(n.B)

	if ai, aok := a.(*IntImm); aok {
		if bi, bok := b.(*IntImm); bok {
			if v, ok := foldIntBinOp(n.kind, ai.Value, bi.Value); ok {
				return NewIntImmT(ai.T, IntCastConstant(ai.T, v))
			}
		}
	}
	if af, aok := a.(*FloatImm); aok {
		if bf, bok := b.(*FloatImm); bok {
			if v, ok := foldFloatBinOp(n.kind, af.Value, bf.Value); ok {
				return NewFloatImmT(af.T, v)
			}
		}
	}

	if e, ok := s.simplifyBinOpIdentities(n.kind, a, b); ok {
		return e
	}

	if e, ok := s.simplifyVectorBinOp(n.kind, a, b); ok {
		return e
	}

	// Fold x % k to a literal remainder when the modulus scope already
	// proves x's residue class mod k (spec.md §4.5's ModulusRemainder scope).
	if n.kind == KindMod {
		if k, ok := b.(*IntImm); ok && k.Value > 0 {
			mr := modulusOf(a, s.mods)
			if mr.Modulus != 0 && mr.Modulus%k.Value == 0 {
				return NewIntImmT(a.Type(), FloorMod(mr.Remainder, k.Value))
			}
		}
	}

	// (x + k1) + k2 = x + (k1 + k2): spec.md §8's associativity law, also
	// needed so the solver's push-through rules see a single additive
	// constant rather than a chain.
	if n.kind == KindAdd || n.kind == KindSub {
		if folded, ok := foldConstantChain(n.kind, a, b); ok {
			return folded
		}
	}

	if SameAs(a, n.A) && SameAs(b, n.B) {
		return n
	}
	return &BinOp{A: a, B: b, kind: n.kind}
}

func foldIntBinOp(kind NodeKind, a, b int64) (int64, bool) {
	switch kind {
	case KindAdd:
		return a + b, true
	case KindSub:
		return a - b, true
	case KindMul:
		return a * b, true
	case KindDiv:
		if b == 0 {
			return 0, false
		}
		return FloorDiv(a, b), true
	case KindMod:
		if b == 0 {
			return 0, false
		}
		return FloorMod(a, b), true
	case KindMin:
		if a < b {
			return a, true
		}
		return b, true
	case KindMax:
		if a > b {
			return a, true
		}
		return b, true
	default:
		return 0, false
	}
}

func foldFloatBinOp(kind NodeKind, a, b float64) (float64, bool) {
	switch kind {
	case KindAdd:
		return a + b, true
	case KindSub:
		return a - b, true
	case KindMul:
		return a * b, true
	case KindDiv:
		if b == 0 {
			return 0, false
		}
		return a / b, true
	case KindMin:
		if a < b {
			return a, true
		}
		return b, true
	case KindMax:
		if a > b {
			return a, true
		}
		return b, true
	default:
		return 0, false
	}
}

// simplifyBinOpIdentities covers the zero/one/self identities: x+0, x-0,
// x*1, x*0, x/1, min(x,x), max(x,x), and the type-extremum absorption laws
// of spec.md §8 ("min(x, type.max()) = x").
func (s *Simplify) simplifyBinOpIdentities(kind NodeKind, a, b Expr) (Expr, bool) {
	bi, bIsInt := b.(*IntImm)
	ai, aIsInt := a.(*IntImm)
	switch kind {
	case KindAdd:
		if bIsInt && bi.Value == 0 {
			return a, true
		}
		if aIsInt && ai.Value == 0 {
			return b, true
		}
	case KindSub:
		if bIsInt && bi.Value == 0 {
			return a, true
		}
		if Equal(a, b) {
			return NewIntImmT(a.Type(), 0), true
		}
	case KindMul:
		if bIsInt && bi.Value == 1 {
			return a, true
		}
		if aIsInt && ai.Value == 1 {
			return b, true
		}
		if (bIsInt && bi.Value == 0) || (aIsInt && ai.Value == 0) {
			return NewIntImmT(a.Type(), 0), true
		}
	case KindDiv:
		if bIsInt && bi.Value == 1 {
			return a, true
		}
		if Equal(a, b) {
			return NewIntImmT(a.Type(), 1), true
		}
	case KindMod:
		if bIsInt && bi.Value == 1 {
			return NewIntImmT(a.Type(), 0), true
		}
	case KindMin:
		if Equal(a, b) {
			return a, true
		}
		if max, ok := a.Type().Max(); ok && bIsInt && bi.Value == max {
			return a, true
		}
		if max, ok := b.Type().Max(); ok && aIsInt && ai.Value == max {
			return b, true
		}
		// bounds_simplify(min(x, 10)) where x in [0,10] returns x: when one
		// operand's proven interval already lies at or below the other, the
		// min is redundant (spec.md §8's bounds-driven clamp elision).
		if s.bounds != nil {
			if bIsInt {
				if ia := s.bounds.Of(a); ia.IsFinite() && ia.Imax() <= bi.Value {
					return a, true
				}
			}
			if aIsInt {
				if ib := s.bounds.Of(b); ib.IsFinite() && ib.Imax() <= ai.Value {
					return b, true
				}
			}
		}
	case KindMax:
		if Equal(a, b) {
			return a, true
		}
		if min, ok := a.Type().Min(); ok && bIsInt && bi.Value == min {
			return a, true
		}
		if min, ok := b.Type().Min(); ok && aIsInt && ai.Value == min {
			return b, true
		}
		if s.bounds != nil {
			if bIsInt {
				if ia := s.bounds.Of(a); ia.IsFinite() && ia.Imin() >= bi.Value {
					return a, true
				}
			}
			if aIsInt {
				if ib := s.bounds.Of(b); ib.IsFinite() && ib.Imin() >= ai.Value {
					return b, true
				}
			}
		}
	}
	return nil, false
}

// foldConstantChain collapses (x OP k1) OP k2 into x OP (k1 OP' k2) when
// the inner node is the same Add/Sub family and k1 is a constant, per
// spec.md §8's "(x+k1)+k2 = x+(k1+k2)".
func foldConstantChain(kind NodeKind, a, b Expr) (Expr, bool) {
	bi, ok := b.(*IntImm)
	if !ok {
		return nil, false
	}
	inner, ok := a.(*BinOp)
	if !ok || (inner.kind != KindAdd && inner.kind != KindSub) {
		return nil, false
	}
	innerConst, ok := inner.B.(*IntImm)
	if !ok {
		return nil, false
	}
	k1 := innerConst.Value
	if inner.kind == KindSub {
		k1 = -k1
	}
	k2 := bi.Value
	if kind == KindSub {
		k2 = -k2
	}
	total := IntCastConstant(bi.T, k1+k2)
	if total == 0 {
		return inner.A, true
	}
	if total > 0 {
		return Add(inner.A, NewIntImmT(bi.T, total)), true
	}
	return Sub(inner.A, NewIntImmT(bi.T, -total)), true
}

// simplifyVectorBinOp combines two Ramp/Broadcast operands of a BinOp into
// a single Ramp/Broadcast instead of leaving a lane-wise node pair, per
// spec.md §4.5's "Ramp/Broadcast interaction" bullet. Grounded on
// original_source/cpp/src/Simplify.cpp's visit(Add/Sub/Mul/Div/Mod)
// Ramp/Broadcast rule families (~lines 215-650): a and b are already known
// to be same-typed (so same width) by the time a BinOp reaches here.
func (s *Simplify) simplifyVectorBinOp(kind NodeKind, a, b Expr) (Expr, bool) {
	ra, aIsRamp := a.(*Ramp)
	rb, bIsRamp := b.(*Ramp)
	ca, aIsBcast := a.(*Broadcast)
	cb, bIsBcast := b.(*Broadcast)

	switch {
	case aIsRamp && bIsRamp:
		switch kind {
		case KindAdd:
			return &Ramp{Base: s.MutateExpr(Add(ra.Base, rb.Base)), Stride: s.MutateExpr(Add(ra.Stride, rb.Stride)), Width: ra.Width}, true
		case KindSub:
			return &Ramp{Base: s.MutateExpr(Sub(ra.Base, rb.Base)), Stride: s.MutateExpr(Sub(ra.Stride, rb.Stride)), Width: ra.Width}, true
		}
	case aIsBcast && bIsBcast:
		switch kind {
		case KindAdd, KindSub, KindMul, KindDiv, KindMod, KindMin, KindMax:
			return &Broadcast{Value: s.MutateExpr(newBinOp(kind, ca.Value, cb.Value)), Width: ca.Width}, true
		}
	case aIsRamp && bIsBcast:
		switch kind {
		case KindAdd:
			return &Ramp{Base: s.MutateExpr(Add(ra.Base, cb.Value)), Stride: ra.Stride, Width: ra.Width}, true
		case KindSub:
			return &Ramp{Base: s.MutateExpr(Sub(ra.Base, cb.Value)), Stride: ra.Stride, Width: ra.Width}, true
		case KindMul:
			return &Ramp{Base: s.MutateExpr(Mul(ra.Base, cb.Value)), Stride: s.MutateExpr(Mul(ra.Stride, cb.Value)), Width: ra.Width}, true
		case KindDiv:
			if k, ok := cb.Value.(*IntImm); ok && k.Value != 0 {
				if stride, ok := ra.Stride.(*IntImm); ok && stride.Value%k.Value == 0 {
					return &Ramp{Base: s.MutateExpr(Div(ra.Base, cb.Value)), Stride: NewIntImmT(stride.T, stride.Value/k.Value), Width: ra.Width}, true
				}
			}
		case KindMod:
			if k, ok := cb.Value.(*IntImm); ok && k.Value != 0 {
				if stride, ok := ra.Stride.(*IntImm); ok && stride.Value%k.Value == 0 {
					return &Broadcast{Value: s.MutateExpr(Mod(ra.Base, cb.Value)), Width: ra.Width}, true
				}
			}
		}
	case aIsBcast && bIsRamp:
		switch kind {
		case KindAdd:
			return &Ramp{Base: s.MutateExpr(Add(ca.Value, rb.Base)), Stride: rb.Stride, Width: rb.Width}, true
		case KindSub:
			negStride := s.MutateExpr(Sub(NewIntImmT(rb.Stride.Type(), 0), rb.Stride))
			return &Ramp{Base: s.MutateExpr(Sub(ca.Value, rb.Base)), Stride: negStride, Width: rb.Width}, true
		case KindMul:
			return &Ramp{Base: s.MutateExpr(Mul(ca.Value, rb.Base)), Stride: s.MutateExpr(Mul(ca.Value, rb.Stride)), Width: rb.Width}, true
		}
	}
	return nil, false
}

// linearSplit decomposes e into (core, k) such that e is equivalent to
// core + k, unwrapping a chain of Add/Sub by a literal constant. Used by
// simplifyCmpOp's comparison-cancellation rule so two sides of a comparison
// can be compared by their non-constant core rather than needing an
// already-folded literal on one side.
func linearSplit(e Expr) (Expr, int64) {
	n, ok := e.(*BinOp)
	if !ok {
		return e, 0
	}
	switch n.kind {
	case KindAdd:
		if k, ok := n.B.(*IntImm); ok {
			core, base := linearSplit(n.A)
			return core, base + k.Value
		}
		if k, ok := n.A.(*IntImm); ok {
			core, base := linearSplit(n.B)
			return core, base + k.Value
		}
	case KindSub:
		if k, ok := n.B.(*IntImm); ok {
			core, base := linearSplit(n.A)
			return core, base - k.Value
		}
	}
	return e, 0
}

func (s *Simplify) simplifyCmpOp(n *CmpOp) Expr {
	a := s.MutateExpr(n.A)
	b := s.MutateExpr(n.B)

	if ai, aok := a.(*IntImm); aok {
		if bi, bok := b.(*IntImm); bok {
			return boolImm(n.A.Type(), evalIntCmp(n.kind, ai.Value, bi.Value))
		}
	}
	if af, aok := a.(*FloatImm); aok {
		if bf, bok := b.(*FloatImm); bok {
			return boolImm(n.A.Type(), evalFloatCmp(n.kind, af.Value, bf.Value))
		}
	}
	if Equal(a, b) {
		switch n.kind {
		case KindEQ, KindLE, KindGE:
			return boolImm(a.Type(), true)
		case KindNE, KindLT, KindGT:
			return boolImm(a.Type(), false)
		}
	}
	// Comparison cancellation: rewrite "a cmp b" as "delta cmp 0" by
	// peeling off each side's additive constant and comparing what's left,
	// catching cases like (x+5) < (x+3) that constant folding alone misses
	// because neither side is a bare literal. Grounded on
	// original_source/cpp/src/Simplify.cpp's "Expr delta = mutate(a - b)"
	// pattern (~lines 1000-1110); linearSplit plays the role mutate(a - b)
	// plays there, without needing this package's smaller rule set to also
	// distribute Sub over two Add nodes.
	if (a.Type().IsInt() || a.Type().IsUInt()) && !a.Type().IsBool() {
		coreA, ka := linearSplit(a)
		coreB, kb := linearSplit(b)
		if Equal(coreA, coreB) {
			return boolImm(a.Type(), evalIntCmp(n.kind, ka-kb, 0))
		}
	}
	// x < type.min() = false; x > type.max() = false; spec.md §8.
	if bi, ok := b.(*IntImm); ok {
		if min, hasMin := a.Type().Min(); hasMin && n.kind == KindLT && bi.Value == min {
			return boolImm(a.Type(), false)
		}
		if max, hasMax := a.Type().Max(); hasMax && n.kind == KindGT && bi.Value == max {
			return boolImm(a.Type(), false)
		}
	}
	if SameAs(a, n.A) && SameAs(b, n.B) {
		return n
	}
	return &CmpOp{A: a, B: b, kind: n.kind}
}

func boolImm(t Type, v bool) Expr {
	if v {
		return NewIntImmT(t.Bool(), 1)
	}
	return NewIntImmT(t.Bool(), 0)
}

func evalIntCmp(kind NodeKind, a, b int64) bool {
	switch kind {
	case KindEQ:
		return a == b
	case KindNE:
		return a != b
	case KindLT:
		return a < b
	case KindLE:
		return a <= b
	case KindGT:
		return a > b
	case KindGE:
		return a >= b
	default:
		return false
	}
}

func evalFloatCmp(kind NodeKind, a, b float64) bool {
	switch kind {
	case KindEQ:
		return a == b
	case KindNE:
		return a != b
	case KindLT:
		return a < b
	case KindLE:
		return a <= b
	case KindGT:
		return a > b
	case KindGE:
		return a >= b
	default:
		return false
	}
}
