package halideir

// Range and Interval are the other two flavours of spec.md §3.3's unified
// interval table. Range is used by Realize/Allocate to describe a concrete
// buffer region (extent primary, no undefined or infinite bounds). Interval
// is the symbolic flavour used where a bound may not yet be known (an
// undefined Expr), but can never be infinite — this is what a caller
// building up a bound incrementally (e.g. before any inference has run)
// starts from, and what this package converts to/from InfInterval at its
// external boundary (spec.md §6).

// Range is [Min, Min+Extent-1], both finite integers, Extent >= 0.
type Range struct {
	Min    int64
	Extent int64
}

// NewRange constructs a Range; panics if Extent is negative (spec.md §7:
// construction error).
func NewRange(min, extent int64) Range {
	if extent < 0 {
		panic("halideir: Range extent must be >= 0")
	}
	return Range{Min: min, Extent: extent}
}

// Max returns the inclusive upper bound.
func (r Range) Max() int64 { return r.Min + r.Extent - 1 }

func (r Range) Equal(o Range) bool { return r.Min == o.Min && r.Extent == o.Extent }

// ToInfInterval widens a Range to the exact InfInterval view.
func (r Range) ToInfInterval(t Type) InfInterval {
	return NewInfInterval(t, r.Min, r.Max())
}

// RangeFromInfInterval narrows an InfInterval to a Range. ok is false if
// either endpoint is infinite — the "total but lossy" conversion spec.md
// §3.3 describes; the caller decides what to do with a failed narrowing
// (this package never silently drops the infinity).
func RangeFromInfInterval(iv InfInterval) (r Range, ok bool) {
	if !iv.IsFinite() {
		return Range{}, false
	}
	return Range{Min: iv.Min.Val, Extent: iv.Max.Val - iv.Min.Val + 1}, true
}

// Interval is a symbolic bound pair: Min/Max may be nil (undefined, i.e.
// "not yet known") but never an Infinity node (spec.md §3.3's "Interval:
// undefined bounds allowed, infinities forbidden").
type Interval struct {
	Min, Max Expr
}

// Undefined returns the fully-unknown interval (both bounds nil).
func Undefined() Interval { return Interval{} }

func (i Interval) HasMin() bool { return i.Min != nil }
func (i Interval) HasMax() bool { return i.Max != nil }

// ToInfInterval converts a symbolic Interval to an InfInterval. An
// undefined bound becomes the corresponding infinity. A defined bound that
// isn't a constant integer literal is lossy: conversion succeeds but the
// result is marked inexact, per spec.md §3.3's "total but lossy".
func (i Interval) ToInfInterval(t Type) InfInterval {
	lo, loExact := exprToBound(i.Min, NegInfBound)
	hi, hiExact := exprToBound(i.Max, PosInfBound)
	return InfInterval{Min: lo, Max: hi, T: t, Exact: loExact && hiExact}
}

func exprToBound(e Expr, whenUndefined Bound) (Bound, bool) {
	if e == nil {
		return whenUndefined, true
	}
	if imm, ok := e.(*IntImm); ok {
		return FiniteBound(imm.Value), true
	}
	if inf, ok := e.(*Infinity); ok {
		if inf.Positive() {
			return PosInfBound, true
		}
		return NegInfBound, true
	}
	// A non-constant symbolic bound: we have no evaluator for it here, so
	// conservatively report it as unknown (lossy conversion).
	return whenUndefined, false
}

// InfIntervalToInterval converts back to the symbolic flavour: a finite
// endpoint becomes an IntImm, an infinite endpoint becomes nil (undefined),
// per spec.md §3.3's round-trip requirement ("InfInterval with finite
// endpoints round-trips to either").
func InfIntervalToInterval(iv InfInterval) Interval {
	var lo, hi Expr
	if iv.Min.IsFinite() {
		lo = NewIntImmT(iv.T, iv.Min.Val)
	}
	if iv.Max.IsFinite() {
		hi = NewIntImmT(iv.T, iv.Max.Val)
	}
	return Interval{Min: lo, Max: hi}
}
