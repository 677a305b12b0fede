package halideir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDomainSolveAddPushThrough exercises spec.md §4.7.2's additive rule
// the way DomainSolve actually sees it: the Solve marker sits deep inside
// a Call argument, with the TargetVar wrapping the whole tree from
// outside it, not as a descendant of the arithmetic being solved.
func TestDomainSolveAddPushThrough(t *testing.T) {
	x := NewVariable("x", Int32)
	arg := Add(x, NewIntImm(5)) // the call argument expression
	solve := &Solve{Body: arg, Intervals: [MaxDomains]InfInterval{
		NewInfInterval(Int32, 0, 19),
		NewInfInterval(Int32, 0, 19),
	}}
	wrapped := &TargetVar{Name: "x", Body: solve, Source: arg}

	solved := DomainSolve(wrapped)

	// Unwrap TargetVar to find the innermost Solve(Variable("x"), ...).
	tv, ok := solved.(*TargetVar)
	if !assert.True(t, ok, "expected a TargetVar at the root, got %T", solved) {
		return
	}
	inner := findSolveOfVariable(t, tv.Body, "x")
	if inner == nil {
		return
	}
	// x + 5 in [0,19] => x in [-5, 14].
	assert.Equal(t, int64(-5), inner.Intervals[DomainValid].Imin())
	assert.Equal(t, int64(14), inner.Intervals[DomainValid].Imax())
}

// TestDomainSolveDivPushThrough is spec.md §8's worked "(2x+5)/2" scenario:
// the backwards solver zooms through the division and decimates through
// the multiplication.
func TestDomainSolveDivPushThrough(t *testing.T) {
	x := NewVariable("x", Int32)
	arg := Div(Add(Mul(NewIntImm(2), x), NewIntImm(5)), NewIntImm(2))
	I := [MaxDomains]InfInterval{
		NewInfInterval(Int32, 0, 19),
		NewInfInterval(Int32, 0, 19),
	}
	solve := &Solve{Body: arg, Intervals: I}
	wrapped := &TargetVar{Name: "x", Body: solve, Source: arg}

	solved := DomainSolve(wrapped)

	tv, ok := solved.(*TargetVar)
	if !assert.True(t, ok, "expected a TargetVar at the root, got %T", solved) {
		return
	}
	inner := findSolveOfVariable(t, tv.Body, "x")
	if inner == nil {
		return
	}
	// Soundness check rather than an exact-literal check: every x inside
	// the recovered interval must actually satisfy the original membership
	// test, i.e. (2x+5)/2 must land inside I for every x the solver claims.
	valid := inner.Intervals[DomainValid]
	assert.True(t, valid.IsFinite(), "expected a finite recovered interval")
	for xv := valid.Imin(); xv <= valid.Imax(); xv++ {
		got := FloorDiv(2*xv+5, 2)
		assert.True(t, got >= I[DomainValid].Imin() && got <= I[DomainValid].Imax(),
			"x=%d: (2x+5)/2=%d escapes the target interval", xv, got)
	}
}

// TestDomainSolveModIsConservative checks that pushing through a Mod node
// never claims a tighter interval than "unconstrained" — modulus inversion
// is one-to-many, so the solver must not guess.
func TestDomainSolveModIsConservative(t *testing.T) {
	x := NewVariable("x", Int32)
	arg := Mod(x, NewIntImm(4))
	I := [MaxDomains]InfInterval{
		NewInfInterval(Int32, 0, 3),
		NewInfInterval(Int32, 0, 3),
	}
	solve := &Solve{Body: arg, Intervals: I}
	wrapped := &TargetVar{Name: "x", Body: solve, Source: arg}

	solved := DomainSolve(wrapped)
	tv, ok := solved.(*TargetVar)
	if !assert.True(t, ok) {
		return
	}
	inner := findSolveOfVariable(t, tv.Body, "x")
	if inner == nil {
		return
	}
	assert.False(t, inner.Intervals[DomainValid].Exact)
	assert.True(t, inner.Intervals[DomainValid].Min.IsNegInf())
	assert.True(t, inner.Intervals[DomainValid].Max.IsPosInf())
}

// findSolveOfVariable walks e looking for a Solve node whose body is
// exactly Variable(name), failing the test if none is found.
func findSolveOfVariable(t *testing.T, e Expr, name string) *Solve {
	t.Helper()
	var found *Solve
	WalkExpr(e, exprVisitorFunc{
		visitExpr: func(x Expr) bool {
			if found != nil {
				return false
			}
			if sv, ok := x.(*Solve); ok {
				if v, ok := sv.Body.(*Variable); ok && v.Name == name {
					found = sv
					return false
				}
			}
			return true
		},
		visitStmt: func(Stmt) bool { return found == nil },
	})
	if found == nil {
		t.Fatalf("no Solve(Variable(%q), ...) found in solved tree", name)
	}
	return found
}
