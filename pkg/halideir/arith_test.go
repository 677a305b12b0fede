package halideir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDiv(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{-23, 4, -6},
		{23, 4, 5},
		{-23, -4, 5},
		{0, 4, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FloorDiv(c.a, c.b))
	}
}

func TestFloorMod(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{-23, 4, 1},
		{23, 4, 3},
		{-23, -4, -3},
		{0, 4, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FloorMod(c.a, c.b))
	}
}

func TestIntCastConstant(t *testing.T) {
	uint16T := Type{Kind: UInt, Bits: 16, Width: 1}
	int8T := Type{Kind: Int, Bits: 8, Width: 1}
	assert.Equal(t, int64(65535), IntCastConstant(uint16T, -1))
	assert.Equal(t, int64(-1), IntCastConstant(int8T, 255))
	assert.Equal(t, int64(1), IntCastConstant(Bool1, 42))
	assert.Equal(t, int64(0), IntCastConstant(Bool1, 0))
	assert.Equal(t, int64(127), IntCastConstant(int8T, 127))
	assert.Equal(t, int64(-128), IntCastConstant(int8T, 128))
}
