package halideir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDomainInferenceImageCall is spec.md §8's "f(x, y) = in(x, y)" scenario
// for a 20x40 Image: both Valid and Computable domains equal the image's
// declared bounds exactly.
func TestDomainInferenceImageCall(t *testing.T) {
	x := NewVariable("x", Int32)
	y := NewVariable("y", Int32)
	im := &Image{
		Name: "in",
		T:    Int32,
		Bounds: []Range{
			NewRange(0, 20),
			NewRange(0, 40),
		},
	}
	call := &Call{
		T:        Int32,
		Name:     "in",
		Args:     []Expr{x, y},
		CallKind: CallImage,
		Image:    im.Ref(),
	}
	lookup := CalleeLookup{Images: map[string]*Image{"in": im}}

	domains := DomainInference([]string{"x", "y"}, call, lookup)

	for _, d := range []DomainType{DomainValid, DomainComputable} {
		assert.Equal(t, int64(0), domains[d].Dims[0].Imin())
		assert.Equal(t, int64(19), domains[d].Dims[0].Imax())
		assert.Equal(t, int64(0), domains[d].Dims[1].Imin())
		assert.Equal(t, int64(39), domains[d].Dims[1].Imax())
	}
}

// TestDomainInferenceShiftedArg is spec.md §8's "f(x, y) = in(x, y - 1)"
// scenario: the Valid domain's y dimension shifts by +1 relative to the
// callee's declared bounds, since f needs y-1 to land inside [0,39].
func TestDomainInferenceShiftedArg(t *testing.T) {
	x := NewVariable("x", Int32)
	y := NewVariable("y", Int32)
	im := &Image{
		Name: "in",
		T:    Int32,
		Bounds: []Range{
			NewRange(0, 20),
			NewRange(0, 40),
		},
	}
	call := &Call{
		T:    Int32,
		Name: "in",
		Args: []Expr{
			x,
			Sub(y, NewIntImm(1)),
		},
		CallKind: CallImage,
		Image:    im.Ref(),
	}
	lookup := CalleeLookup{Images: map[string]*Image{"in": im}}

	domains := DomainInference([]string{"x", "y"}, call, lookup)

	assert.Equal(t, int64(0), domains[DomainValid].Dims[0].Imin())
	assert.Equal(t, int64(19), domains[DomainValid].Dims[0].Imax())
	assert.Equal(t, int64(1), domains[DomainValid].Dims[1].Imin())
	assert.Equal(t, int64(40), domains[DomainValid].Dims[1].Imax())
}

func TestFunctionDomainLocksAfterRead(t *testing.T) {
	f := NewFunction("g", []string{"x"}, NewVariable("x", Int32))
	_ = f.Domain(DomainValid)
	assert.Panics(t, func() {
		f.SetDomain(DomainValid, NewDomain(NewInfInterval(Int32, 0, 9)))
	})
}

func TestFunctionArenaRoundTrip(t *testing.T) {
	arena := NewFunctionArena()
	f := NewFunction("g", []string{"x"}, NewVariable("x", Int32))
	idx := arena.Add(f)
	got := arena.Get(idx)
	assert.Same(t, f, got)

	foundIdx, ok := arena.Find("g")
	assert.True(t, ok)
	assert.Equal(t, idx, foundIdx)
}
