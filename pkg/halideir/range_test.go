package halideir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeMaxAndEqual(t *testing.T) {
	r := NewRange(5, 10)
	assert.Equal(t, int64(14), r.Max())
	assert.True(t, r.Equal(NewRange(5, 10)))
	assert.False(t, r.Equal(NewRange(5, 11)))
}

func TestNewRangePanicsOnNegativeExtent(t *testing.T) {
	assert.Panics(t, func() { NewRange(0, -1) })
}

func TestRangeFromInfIntervalFailsOnInfiniteEndpoint(t *testing.T) {
	_, ok := RangeFromInfInterval(FullInfInterval(Int32))
	assert.False(t, ok)

	r, ok := RangeFromInfInterval(NewInfInterval(Int32, 2, 5))
	assert.True(t, ok)
	assert.Equal(t, Range{Min: 2, Extent: 4}, r)
}

func TestIntervalUndefinedHasNoBounds(t *testing.T) {
	iv := Undefined()
	assert.False(t, iv.HasMin())
	assert.False(t, iv.HasMax())
}

func TestIntervalToInfIntervalWidensUndefinedToInfinity(t *testing.T) {
	iv := Interval{Min: NewIntImmT(Int32, 3), Max: nil}
	got := iv.ToInfInterval(Int32)
	assert.Equal(t, int64(3), got.Imin())
	assert.True(t, got.Max.IsPosInf())
	assert.True(t, got.Exact)
}

func TestIntervalToInfIntervalAcceptsExplicitInfinityBound(t *testing.T) {
	// Interval never holds Infinity by construction, but ToInfInterval
	// still recognizes one defensively if a caller builds an Interval by
	// hand rather than through this package's normal passes.
	iv := Interval{Min: PosInf(Int32), Max: nil}
	got := iv.ToInfInterval(Int32)
	assert.True(t, got.Min.IsPosInf())
	assert.True(t, got.Exact)
}

func TestInfIntervalToIntervalRoundTrip(t *testing.T) {
	finite := NewInfInterval(Int32, 1, 9)
	back := InfIntervalToInterval(finite)
	assert.True(t, back.HasMin())
	assert.True(t, back.HasMax())

	full := FullInfInterval(Int32)
	undef := InfIntervalToInterval(full)
	assert.False(t, undef.HasMin())
	assert.False(t, undef.HasMax())
}
