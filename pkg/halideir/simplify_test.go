package halideir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplifyAssociativeConstantFold(t *testing.T) {
	x := NewVariable("x", Int32)
	// (x + 3) + 4 = x + 7
	e := Add(Add(x, NewIntImm(3)), NewIntImm(4))
	got := SimplifyExpr(e)
	want := Add(x, NewIntImm(7))
	assert.True(t, Equal(want, got), "got %v", got)
}

func TestSimplifyMinMaxTypeExtremum(t *testing.T) {
	x := NewVariable("x", Int32)
	max, _ := Int32.Max()
	e := MinE(x, NewIntImmT(Int32, max))
	got := SimplifyExpr(e)
	assert.True(t, SameAs(x, got))
}

func TestSimplifyComparisonAgainstTypeExtremum(t *testing.T) {
	x := NewVariable("x", Int32)
	min, _ := Int32.Min()
	e := LT(x, NewIntImmT(Int32, min))
	got := SimplifyExpr(e)
	assert.True(t, Disproved(e) || Equal(got, NewIntImmT(Int32.Bool(), 0)))
}

func TestSimplifyCastIdempotent(t *testing.T) {
	u8 := Type{Kind: UInt, Bits: 8, Width: 1}
	x := NewVariable("x", Int32)
	inner := &Cast{T: u8, Value: x}
	outer := &Cast{T: u8, Value: inner}
	got := SimplifyExpr(outer)
	want := SimplifyExpr(inner)
	assert.True(t, Equal(want, got))
}

func TestSimplifyFloorDivModLiterals(t *testing.T) {
	e := Div(NewIntImm(-23), NewIntImm(4))
	assert.True(t, Equal(NewIntImm(-6), SimplifyExpr(e)))

	m := Mod(NewIntImm(-23), NewIntImm(4))
	assert.True(t, Equal(NewIntImm(1), SimplifyExpr(m)))
}

func TestSimplifyClampConstant(t *testing.T) {
	c := &Clamp{ClampKind: ClampReplicate, A: NewIntImm(12), Min: NewIntImm(0), Max: NewIntImm(9)}
	got := SimplifyExpr(c)
	assert.True(t, Equal(NewIntImm(9), got))
}

func TestSimplifyMinSelf(t *testing.T) {
	x := NewVariable("x", Int32)
	assert.True(t, SameAs(x, SimplifyExpr(MinE(x, x))))
	assert.True(t, SameAs(x, SimplifyExpr(MaxE(x, x))))
}

func TestSimplifyLetSubstitutesConstant(t *testing.T) {
	x := NewVariable("x", Int32)
	letE := &Let{Name: "x", Value: NewIntImm(5), Body: Add(x, NewIntImm(1))}
	got := SimplifyExpr(letE)
	assert.True(t, Equal(NewIntImm(6), got))
}

func TestProvedDisprovedOnTautology(t *testing.T) {
	x := NewVariable("x", Int32)
	assert.True(t, Proved(EQ(x, x)))
	assert.True(t, Disproved(NE(x, x)))
}

func TestSimplifyRampPlusRampCombinesBaseAndStride(t *testing.T) {
	x := NewVariable("x", Int32)
	y := NewVariable("y", Int32)
	r1 := NewRamp(x, NewIntImm(2), 4)
	r2 := NewRamp(y, NewIntImm(3), 4)
	got := SimplifyExpr(Add(r1, r2))
	want := NewRamp(Add(x, y), NewIntImm(5), 4)
	assert.True(t, Equal(want, got), "got %v", got)
}

func TestSimplifyBroadcastPlusRampStaysARamp(t *testing.T) {
	x := NewVariable("x", Int32)
	bc := NewBroadcast(x, 4)
	r := NewRamp(NewIntImm(1), NewIntImm(2), 4)
	got := SimplifyExpr(Add(bc, r))
	want := NewRamp(Add(x, NewIntImm(1)), NewIntImm(2), 4)
	assert.True(t, Equal(want, got), "got %v", got)
}

func TestSimplifyBroadcastTimesBroadcast(t *testing.T) {
	x := NewVariable("x", Int32)
	a := NewBroadcast(x, 4)
	b := NewBroadcast(NewIntImm(3), 4)
	got := SimplifyExpr(Mul(a, b))
	want := NewBroadcast(Mul(x, NewIntImm(3)), 4)
	assert.True(t, Equal(want, got), "got %v", got)
}

func TestSimplifyRampDividedByBroadcastWhenStrideDivides(t *testing.T) {
	r := NewRamp(NewIntImm(4), NewIntImm(6), 4)
	k := NewBroadcast(NewIntImm(2), 4)
	got := SimplifyExpr(Div(r, k))
	want := NewRamp(NewIntImm(2), NewIntImm(3), 4)
	assert.True(t, Equal(want, got), "got %v", got)
}

func TestSimplifyComparisonCancellation(t *testing.T) {
	x := NewVariable("x", Int32)
	// (x+5) < (x+3) is always false, even though neither side is a literal.
	e := LT(Add(x, NewIntImm(5)), Add(x, NewIntImm(3)))
	got := SimplifyExpr(e)
	assert.True(t, Equal(NewIntImmT(Int32.Bool(), 0), got), "got %v", got)
}

func TestBoundsSimplifyElidesRedundantMin(t *testing.T) {
	// bounds_simplify(min(x, 10)) where x is known to lie in [0,10] returns
	// bare x (spec.md §8's named bounds-driven clamp elision scenario).
	cm := NewContextManager()
	s := NewBoundsSimplify(DefaultOptions(), cm, nil)
	x := NewVariable("x", Int32)
	forStmt := &For{Name: "x", Min: NewIntImm(0), Extent: NewIntImm(11)}
	cm.Enter(forStmt, "x")
	defer cm.Leave()

	got := s.MutateExpr(MinE(x, NewIntImm(10)))
	assert.True(t, SameAs(x, got), "got %v", got)
}

func TestBoundsSimplifyElidesRedundantClamp(t *testing.T) {
	cm := NewContextManager()
	s := NewBoundsSimplify(DefaultOptions(), cm, nil)
	x := NewVariable("x", Int32)
	forStmt := &For{Name: "x", Min: NewIntImm(2), Extent: NewIntImm(7)} // x in [2,8]
	cm.Enter(forStmt, "x")
	defer cm.Leave()

	outer := NewClamp(ClampReplicate, x, NewIntImm(0), NewIntImm(10), nil)
	got := s.MutateExpr(outer)
	assert.True(t, SameAs(x, got), "got %v", got)
}

func TestSubstitutionInvariant(t *testing.T) {
	// Substitution invariant (spec.md §8): simplifying a subexpression and
	// re-embedding it must agree with simplifying the whole expression,
	// for a context-free rewrite like constant folding.
	x := NewVariable("x", Int32)
	sub := Add(NewIntImm(2), NewIntImm(3))
	whole := Mul(x, sub)

	simplifiedSub := SimplifyExpr(sub)
	reEmbedded := SimplifyExpr(Mul(x, simplifiedSub))
	direct := SimplifyExpr(whole)
	assert.True(t, Equal(direct, reEmbedded))
}
