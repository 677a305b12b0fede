package halideir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsOfUnboundVariablePlusConstant(t *testing.T) {
	// bounds(x + 4) for a free x with no enclosing binder: spec.md §8's
	// worked example widens to the full representable range of x's type,
	// shifted by 4 — which, since both endpoints are already infinite,
	// stays the type's full range.
	x := NewVariable("x", Int32)
	e := Add(x, NewIntImm(4))
	iv := BoundsOf(e)
	full := FullInfInterval(Int32)
	assert.Equal(t, full.Min, iv.Min)
	assert.Equal(t, full.Max, iv.Max)
}

func TestBoundsOfForBoundVariable(t *testing.T) {
	cm := NewContextManager()
	b := NewBounds(cm, NewFunctionArena())

	x := &Variable{Name: "x", T: Int32}
	forStmt := &For{Name: "x", Min: NewIntImm(0), Extent: NewIntImm(10)}
	cm.Enter(forStmt, "x")
	defer cm.Leave()

	iv := b.Of(x)
	assert.Equal(t, int64(0), iv.Imin())
	assert.Equal(t, int64(9), iv.Imax())
}

// TestBoundsSupersetProperty checks spec.md §8's soundness property:
// bounds(e) must contain every value e can actually take for any binding of
// its free variables within a declared range — here, x+4 for x in [0,9]
// must land inside bounds(x+4) computed under that same For binding.
func TestBoundsSupersetProperty(t *testing.T) {
	cm := NewContextManager()
	b := NewBounds(cm, NewFunctionArena())

	x := &Variable{Name: "x", T: Int32}
	e := Add(x, NewIntImm(4))
	forStmt := &For{Name: "x", Min: NewIntImm(0), Extent: NewIntImm(10)}
	cm.Enter(forStmt, "x")
	defer cm.Leave()

	iv := b.Of(e)
	for v := int64(0); v < 10; v++ {
		assert.True(t, iv.Contains(v+4), "bounds must contain actual value %d", v+4)
	}
}

func TestBoundsOfMinMax(t *testing.T) {
	x := NewVariable("x", Int32)
	e := MinE(Add(x, NewIntImm(1)), NewIntImm(5))
	iv := BoundsOf(e)
	assert.True(t, iv.Imax() <= 5)
}
