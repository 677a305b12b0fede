package halideir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModulusOfConstant(t *testing.T) {
	mr := modulusOf(NewIntImm(7), nil)
	assert.Equal(t, int64(0), mr.Modulus)
	assert.Equal(t, int64(7), mr.Remainder)
}

func TestModulusOfScopedVariable(t *testing.T) {
	x := NewVariable("x", Int32)
	scope := map[string]ModulusRemainder{"x": {Modulus: 4, Remainder: 0}}
	mr := modulusOf(x, scope)
	assert.Equal(t, int64(4), mr.Modulus)
	assert.Equal(t, int64(0), mr.Remainder)
}

func TestModulusOfUnscopedVariableIsUnconstrained(t *testing.T) {
	x := NewVariable("x", Int32)
	mr := modulusOf(x, nil)
	assert.Equal(t, unconstrainedModulus, mr)
}

func TestModulusOfAddCombinesOnGCD(t *testing.T) {
	x := NewVariable("x", Int32)
	y := NewVariable("y", Int32)
	scope := map[string]ModulusRemainder{
		"x": {Modulus: 4, Remainder: 1},
		"y": {Modulus: 6, Remainder: 2},
	}
	mr := modulusOf(Add(x, y), scope)
	assert.Equal(t, int64(2), mr.Modulus) // gcd(4,6) == 2
	assert.Equal(t, int64(1), mr.Remainder)
}

func TestModulusOfAddConstantShiftsRemainder(t *testing.T) {
	x := NewVariable("x", Int32)
	scope := map[string]ModulusRemainder{"x": {Modulus: 4, Remainder: 1}}
	mr := modulusOf(Add(x, NewIntImm(10)), scope)
	assert.Equal(t, int64(4), mr.Modulus)
	assert.Equal(t, int64(3), mr.Remainder) // (1+10) mod 4 == 3
}

func TestModulusOfMulByConstantScalesModulus(t *testing.T) {
	x := NewVariable("x", Int32)
	scope := map[string]ModulusRemainder{"x": {Modulus: 4, Remainder: 1}}
	mr := modulusOf(Mul(x, NewIntImm(3)), scope)
	assert.Equal(t, int64(12), mr.Modulus)
	assert.Equal(t, int64(3), mr.Remainder)
}

func TestModulusOfMulTwoSymbolicFactsIsUnconstrained(t *testing.T) {
	x := NewVariable("x", Int32)
	y := NewVariable("y", Int32)
	scope := map[string]ModulusRemainder{
		"x": {Modulus: 4, Remainder: 1},
		"y": {Modulus: 6, Remainder: 2},
	}
	mr := modulusOf(Mul(x, y), scope)
	assert.Equal(t, unconstrainedModulus, mr)
}

func TestGCD(t *testing.T) {
	assert.Equal(t, int64(4), gcd(8, 12))
	assert.Equal(t, int64(1), gcd(7, 13))
	assert.Equal(t, int64(1), gcd(0, 0))
}
