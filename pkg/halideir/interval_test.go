package halideir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestZoomUnzoomSubsetIdentity(t *testing.T) {
	// zoom(unzoom(A, k), k) is a subset of A (spec.md §8): unzooming then
	// re-expanding never produces a point A did not have.
	a := NewInfInterval(Int32, 3, 11)
	k := int64(4)
	roundTrip := Zoom(Unzoom(a, k), k)
	assert.True(t, roundTrip.Imin() >= a.Imin())
	assert.True(t, roundTrip.Imax() <= a.Imax())
}

func TestDecimateTimesKSubsetOfOriginal(t *testing.T) {
	// decimate(A, k) * k subset-of A (spec.md §8): every representative
	// decimate picks, scaled back up by k, must still land inside A.
	a := NewInfInterval(Int32, 0, 19)
	k := int64(4)
	d := Decimate(a, k)
	scaled := d.MulK(k)
	assert.True(t, scaled.Imin() >= a.Imin())
	assert.True(t, scaled.Imax() <= a.Imax())
}

func TestInverseAddSubRoundTrip(t *testing.T) {
	v := NewInfInterval(Int32, 10, 20)
	b := int64(5)
	// InverseAdd(v, b) is the set of x such that x + b lands in v.
	inv := InverseAdd(v, b)
	assert.Equal(t, v.Imin()-b, inv.Imin())
	assert.Equal(t, v.Imax()-b, inv.Imax())

	// And it really is an inverse: AddK re-derives v.
	assert.Equal(t, v.Imin(), inv.AddK(b).Imin())
	assert.Equal(t, v.Imax(), inv.AddK(b).Imax())

	inv2 := InverseSub(v, b)
	assert.Equal(t, v.Imin()+b, inv2.Imin())
	assert.Equal(t, v.Imax()+b, inv2.Imax())
}

func TestRangeToInfIntervalRoundTrip(t *testing.T) {
	r := NewRange(2, 5)
	iv := r.ToInfInterval(Int32)
	assert.Equal(t, r.Min, iv.Imin())
	assert.Equal(t, r.Min+r.Extent-1, iv.Imax())
}

func TestIntersectIntervalIdentity(t *testing.T) {
	full := FullInfInterval(Int32)
	v := NewInfInterval(Int32, 1, 9)
	got := IntersectInterval(full, v)
	// The endpoints are v's; Exact is the AND of both operands, and
	// FullInfInterval is inexact by construction.
	assert.Equal(t, v.Imin(), got.Imin())
	assert.Equal(t, v.Imax(), got.Imax())
	assert.False(t, got.Exact)
}

func TestBoundArithmeticConflictPanics(t *testing.T) {
	assert.Panics(t, func() { PosInfBound.Add(NegInfBound) })
}

// TestInverseAddThenAddKIsExactRoundTrip checks the whole InfInterval value
// (endpoints, type, exactness) comes back unchanged, not just the numeric
// endpoints — a plain field-by-field diff catches a regression that, say,
// flips Exact or drops the type that Imin()/Imax() alone wouldn't notice.
func TestInverseAddThenAddKIsExactRoundTrip(t *testing.T) {
	v := NewInfInterval(Int32, 10, 20)
	roundTripped := InverseAdd(v, 5).AddK(5)
	if diff := cmp.Diff(v, roundTripped); diff != "" {
		t.Errorf("round trip changed the interval (-want +got):\n%s", diff)
	}
}
