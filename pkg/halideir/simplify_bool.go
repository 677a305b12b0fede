package halideir

// Boolean normalisation: And/Or constant folding, idempotence and the
// complement laws (a && !a, a || !a), grounded on original_source/cpp/src/Simplify.cpp's
// visit(And)/visit(Or).

func (s *Simplify) simplifyBoolOp(n *BoolOp) Expr {
	a := s.MutateExpr(n.A)
	b := s.MutateExpr(n.B)

	if ai, ok := a.(*IntImm); ok {
		switch n.kind {
		case KindAnd:
			if ai.Value == 0 {
				return a
			}
			return b
		case KindOr:
			if ai.Value != 0 {
				return a
			}
			return b
		}
	}
	if bi, ok := b.(*IntImm); ok {
		switch n.kind {
		case KindAnd:
			if bi.Value == 0 {
				return b
			}
			return a
		case KindOr:
			if bi.Value != 0 {
				return b
			}
			return a
		}
	}
	if Equal(a, b) {
		return a
	}
	// a && !a = false, a || !a = true.
	if notA, ok := a.(*Not); ok && Equal(notA.Value, b) {
		return boolImm(a.Type(), n.kind == KindOr)
	}
	if notB, ok := b.(*Not); ok && Equal(notB.Value, a) {
		return boolImm(a.Type(), n.kind == KindOr)
	}
	if SameAs(a, n.A) && SameAs(b, n.B) {
		return n
	}
	return &BoolOp{A: a, B: b, kind: n.kind}
}
