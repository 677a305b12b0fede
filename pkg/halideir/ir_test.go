package halideir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntImmInterning(t *testing.T) {
	a := NewIntImm(3)
	b := NewIntImm(3)
	assert.True(t, SameAs(a, b), "small IntImm values must be interned")

	c := NewIntImm(1000)
	d := NewIntImm(1000)
	assert.False(t, SameAs(c, d), "out-of-range IntImm values are not interned")
	assert.True(t, Equal(c, d), "structurally equal even when not interned")
}

func TestEqualStructural(t *testing.T) {
	x1 := NewVariable("x", Int32)
	x2 := NewVariable("x", Int32)
	e1 := Add(x1, NewIntImm(1))
	e2 := Add(x2, NewIntImm(1))
	assert.False(t, SameAs(e1, e2))
	assert.True(t, Equal(e1, e2))

	e3 := Add(x1, NewIntImm(2))
	assert.False(t, Equal(e1, e3))
}

func TestConstructorPanicsOnTypeMismatch(t *testing.T) {
	a := NewVariable("x", Int32)
	b := NewVariable("y", Int64)
	assert.Panics(t, func() { Add(a, b) })
}

func TestConstructorPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { Add(nil, NewIntImm(1)) })
}

// Infinity is legal only in InfInterval/DomInterval and inside the solver
// (spec.md §3.3); it must never reach the simplifier's bounds analysis as
// an ordinary subexpression. These tests exercise both halves of that
// discipline directly: the node itself (construction, sign, structural
// equality) and the assertion that fires if it ever leaks into a normal
// expression tree (spec.md §7's "invariant violation during traversal").
func TestInfinityConstructorsAndSign(t *testing.T) {
	assert.Panics(t, func() { NewInfinity(Int32, 0) })

	pos := PosInf(Int32)
	neg := NegInf(Int32)
	inf, ok := IsInfinity(pos)
	assert.True(t, ok)
	assert.True(t, inf.Positive())

	inf, ok = IsInfinity(neg)
	assert.True(t, ok)
	assert.False(t, inf.Positive())

	_, ok = IsInfinity(NewIntImm(1))
	assert.False(t, ok)
}

func TestInfinityStructuralEquality(t *testing.T) {
	assert.True(t, Equal(PosInf(Int32), NewInfinity(Int32, 3)), "sign, not magnitude, is all Equal compares")
	assert.False(t, Equal(PosInf(Int32), NegInf(Int32)))
}

func TestBoundsAssertsIfInfinityLeaksIntoNormalExpression(t *testing.T) {
	assert.Panics(t, func() { BoundsOf(PosInf(Int32)) })
}
