package halideir

// Clamp simplification: constant folding when every operand is known, and
// nested-clamp collapse when an outer Replicate clamp is provably redundant
// given an inner one, grounded on original_source/cpp/src/Simplify.cpp's
// visit(Clamp) and gated by Options.SimplifyNestedClamp (spec.md §4.6,
// §5's "simplify_nested_clamp option").

func (s *Simplify) simplifyClamp(n *Clamp) Expr {
	a := s.MutateExpr(n.A)
	lo := s.MutateExpr(n.Min)
	hi := s.MutateExpr(n.Max)
	var p1 Expr
	if n.P1 != nil {
		p1 = s.MutateExpr(n.P1)
	}

	if loImm, ok := lo.(*IntImm); ok {
		if hiImm, ok := hi.(*IntImm); ok {
			if aImm, ok := a.(*IntImm); ok {
				if v, ok := foldClampConstant(n.ClampKind, aImm.Value, loImm.Value, hiImm.Value, p1); ok {
					return NewIntImmT(aImm.T, v)
				}
			}
			// bounds_simplify(clamp(x, lo, hi)) where x's proven interval
			// already lies inside [lo,hi]: the clamp can never change a's
			// value, so it's redundant regardless of what a is (spec.md
			// §8's bounds-driven clamp elision).
			if s.bounds != nil && n.ClampKind == ClampReplicate {
				if ia := s.bounds.Of(a); ia.IsFinite() && ia.Imin() >= loImm.Value && ia.Imax() <= hiImm.Value {
					return a
				}
			}
		}
	}

	if s.Options.SimplifyNestedClamp && n.ClampKind == ClampReplicate {
		if inner, ok := a.(*Clamp); ok && inner.ClampKind == ClampReplicate {
			if loImm, loOK := lo.(*IntImm); loOK {
				if hiImm, hiOK := hi.(*IntImm); hiOK {
					if innerLo, ok := inner.Min.(*IntImm); ok {
						if innerHi, ok := inner.Max.(*IntImm); ok {
							if loImm.Value <= innerLo.Value && hiImm.Value >= innerHi.Value {
								return inner
							}
						}
					}
				}
			}
		}
	}

	if SameAs(a, n.A) && SameAs(lo, n.Min) && SameAs(hi, n.Max) && SameAs(p1, n.P1) {
		return n
	}
	return &Clamp{ClampKind: n.ClampKind, A: a, Min: lo, Max: hi, P1: p1}
}

// foldClampConstant evaluates a border-handling clamp directly when value,
// lo, hi (and, for Tile, the period p1) are all known integer constants.
func foldClampConstant(kind ClampKind, value, lo, hi int64, p1 Expr) (int64, bool) {
	if hi < lo {
		return 0, false
	}
	extent := hi - lo + 1
	switch kind {
	case ClampNone:
		return value, true
	case ClampReplicate:
		if value < lo {
			return lo, true
		}
		if value > hi {
			return hi, true
		}
		return value, true
	case ClampWrap:
		return lo + FloorMod(value-lo, extent), true
	case ClampReflect:
		// Period 2*extent, folding back at the edges (each edge value
		// appears twice in a row, e.g. 0,1,2,2,1,0 for extent 3).
		period := 2 * extent
		m := FloorMod(value-lo, period)
		if m >= extent {
			m = period - 1 - m
		}
		return lo + m, true
	case ClampReflect101:
		if extent == 1 {
			return lo, true
		}
		period := 2 * (extent - 1)
		m := FloorMod(value-lo, period)
		if m >= extent {
			m = period - m
		}
		return lo + m, true
	case ClampTile:
		p1Imm, ok := p1.(*IntImm)
		if !ok {
			return 0, false
		}
		period := p1Imm.Value
		if period <= 0 {
			return 0, false
		}
		return lo + FloorMod(value-lo, period), true
	default:
		return 0, false
	}
}
