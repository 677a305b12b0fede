package halideir

import "fmt"

// This file implements the three unified interval views of spec.md §3.3 and
// the arithmetic/zoom/decimate/unzoom algebra of spec.md §4.2. Grounded on
// original_source/cpp/src/InfInterval.h/.cpp and IntRange.h for exact
// endpoint formulas, and on the teacher's interval_arithmetic.go /
// domain.go for the Go-idiomatic shape (a value-type interval struct with
// a method set for arithmetic, rather than free functions over pointers).
//
// Per spec.md §9's re-architecture guidance, an unbounded endpoint is
// represented as an Option-like tri-state (Bound.Inf), not a sentinel IR
// node. The Infinity IR node (ir.go) is a separate, expression-level form;
// neither the interval algebra nor the solver (solver.go) constructs one.

// Bound is one endpoint of an interval: either a finite integer value or a
// signed infinity.
type Bound struct {
	Inf int8  // 0 = finite, +1 = +∞, -1 = -∞
	Val int64 // meaningful iff Inf == 0
}

// FiniteBound constructs a finite endpoint.
func FiniteBound(v int64) Bound { return Bound{Inf: 0, Val: v} }

// PosInfBound and NegInfBound are the canonical infinite endpoints.
var PosInfBound = Bound{Inf: 1}
var NegInfBound = Bound{Inf: -1}

func (b Bound) IsFinite() bool { return b.Inf == 0 }
func (b Bound) IsPosInf() bool { return b.Inf > 0 }
func (b Bound) IsNegInf() bool { return b.Inf < 0 }

func (b Bound) String() string {
	switch {
	case b.IsPosInf():
		return "+inf"
	case b.IsNegInf():
		return "-inf"
	default:
		return fmt.Sprintf("%d", b.Val)
	}
}

// Neg negates a bound.
func (b Bound) Neg() Bound {
	switch {
	case b.IsPosInf():
		return NegInfBound
	case b.IsNegInf():
		return PosInfBound
	default:
		return FiniteBound(-b.Val)
	}
}

// boundArithmeticConflict signals spec.md §7's "arithmetic conflict" error:
// +∞ + (−∞), +∞ − (+∞), or an infinite modulus. These are bugs in the
// calling analysis (an interval that should never have become this
// degenerate), so this package aborts exactly as the spec's error taxonomy
// requires.
func boundArithmeticConflict(op string, a, b Bound) {
	panic(fmt.Sprintf("halideir: arithmetic conflict in %s(%s, %s)", op, a, b))
}

// Add implements the 3×3 infinity discipline table of spec.md §4.5 for
// addition: a finite value absorbs into whichever infinity it's added to;
// two opposite infinities is an error.
func (b Bound) Add(o Bound) Bound {
	switch {
	case b.IsFinite() && o.IsFinite():
		return FiniteBound(b.Val + o.Val)
	case b.IsPosInf():
		if o.IsNegInf() {
			boundArithmeticConflict("+", b, o)
		}
		return PosInfBound
	case b.IsNegInf():
		if o.IsPosInf() {
			boundArithmeticConflict("+", b, o)
		}
		return NegInfBound
	case o.IsPosInf():
		return PosInfBound
	default: // o.IsNegInf()
		return NegInfBound
	}
}

// Sub is Add(b, o.Neg()), so +∞ − (+∞) reduces to the same conflict check.
func (b Bound) Sub(o Bound) Bound { return b.Add(o.Neg()) }

// MulConst multiplies a bound by a finite constant k, flipping direction
// when k is negative and collapsing to 0 when k is 0 (an infinite extent
// scaled to nothing is finite zero, not an error: the interval degenerates
// on purpose, e.g. "the zero'th ramp of any base").
func (b Bound) MulConst(k int64) Bound {
	if b.IsFinite() {
		return FiniteBound(b.Val * k)
	}
	if k == 0 {
		return FiniteBound(0)
	}
	if k > 0 {
		return b
	}
	return b.Neg()
}

// Less reports b < o among extended integers.
func (b Bound) Less(o Bound) bool {
	if b.IsNegInf() {
		return !o.IsNegInf()
	}
	if b.IsPosInf() {
		return false
	}
	if o.IsNegInf() {
		return false
	}
	if o.IsPosInf() {
		return true
	}
	return b.Val < o.Val
}

// Min and Max order two bounds, extended-integer style.
func MinBound(a, b Bound) Bound {
	if a.Less(b) {
		return a
	}
	return b
}
func MaxBound(a, b Bound) Bound {
	if a.Less(b) {
		return b
	}
	return a
}

// InfInterval is [Min, Max] inclusive, endpoints possibly infinite,
// never undefined (spec.md §3.3). Exact is true only when this interval
// was certified by sound inference; any step that falls back to a
// conservative over-approximation must widen to [-∞,+∞] and clear Exact
// (spec.md §3.3). DomInterval is the identical representation used by
// domain inference (spec.md §3.5); the two names alias the same type
// because the spec draws no structural distinction between them.
type InfInterval struct {
	Min, Max Bound
	T        Type
	Exact    bool
}

// DomInterval is spec.md §3.5's per-dimension domain interval: structurally
// identical to InfInterval.
type DomInterval = InfInterval

// FullInfInterval is the maximally conservative interval (-∞, +∞),
// inexact by construction — this is the "approximation was introduced"
// widened state spec.md §3.3 describes.
func FullInfInterval(t Type) InfInterval {
	return InfInterval{Min: NegInfBound, Max: PosInfBound, T: t, Exact: false}
}

// NewInfInterval constructs an exact finite interval [lo, hi].
func NewInfInterval(t Type, lo, hi int64) InfInterval {
	return InfInterval{Min: FiniteBound(lo), Max: FiniteBound(hi), T: t, Exact: true}
}

// SinglePoint constructs the exact interval [v, v].
func SinglePoint(t Type, v int64) InfInterval {
	return NewInfInterval(t, v, v)
}

// IsFinite reports whether both endpoints are finite.
func (iv InfInterval) IsFinite() bool { return iv.Min.IsFinite() && iv.Max.IsFinite() }

// Imin and Imax return the finite endpoint values, panicking if the
// respective endpoint is infinite — the Go counterpart of InfInterval's
// imin()/imax() accessors (original_source/cpp/src/InfInterval.h), for
// callers that have already established finiteness.
func (iv InfInterval) Imin() int64 {
	if !iv.Min.IsFinite() {
		panic("halideir: Imin called on an interval with an infinite minimum")
	}
	return iv.Min.Val
}
func (iv InfInterval) Imax() int64 {
	if !iv.Max.IsFinite() {
		panic("halideir: Imax called on an interval with an infinite maximum")
	}
	return iv.Max.Val
}

func (iv InfInterval) Equal(o InfInterval) bool {
	return iv.Min == o.Min && iv.Max == o.Max && iv.Exact == o.Exact
}

func (iv InfInterval) String() string {
	exact := ""
	if !iv.Exact {
		exact = "~"
	}
	return fmt.Sprintf("%s[%s,%s]", exact, iv.Min, iv.Max)
}

// Contains reports whether value lies within the interval (§8's bounds
// soundness property is stated in terms of this predicate).
func (iv InfInterval) Contains(value int64) bool {
	return !iv.Max.Less(FiniteBound(value)) && !FiniteBound(value).Less(iv.Min)
}

// AddInterval, SubInterval, implement interval+interval and
// interval-interval per spec.md §4.2.
func AddInterval(u, v InfInterval) InfInterval {
	return InfInterval{Min: u.Min.Add(v.Min), Max: u.Max.Add(v.Max), T: u.T, Exact: u.Exact && v.Exact}
}
func SubInterval(u, v InfInterval) InfInterval {
	return InfInterval{Min: u.Min.Sub(v.Max), Max: u.Max.Sub(v.Min), T: u.T, Exact: u.Exact && v.Exact}
}
func NegInterval(u InfInterval) InfInterval {
	return InfInterval{Min: u.Max.Neg(), Max: u.Min.Neg(), T: u.T, Exact: u.Exact}
}

// mulEndpoints scales both endpoints by the constant k and returns them in
// ascending order (a negative k swaps them); used by MulK.
func mulEndpoints(aMin, aMax Bound, k int64) (Bound, Bound) {
	p1, p2 := aMin.MulConst(k), aMax.MulConst(k)
	return MinBound(p1, p2), MaxBound(p1, p2)
}

// AddK, SubK, MulK, DivK apply a constant k to every value of A (spec.md
// §4.2's "A + k, A − k, A * k, A / k: apply to endpoints").
func (iv InfInterval) AddK(k int64) InfInterval {
	return InfInterval{Min: iv.Min.Add(FiniteBound(k)), Max: iv.Max.Add(FiniteBound(k)), T: iv.T, Exact: iv.Exact}
}
func (iv InfInterval) SubK(k int64) InfInterval {
	return InfInterval{Min: iv.Min.Sub(FiniteBound(k)), Max: iv.Max.Sub(FiniteBound(k)), T: iv.T, Exact: iv.Exact}
}
func (iv InfInterval) MulK(k int64) InfInterval {
	lo, hi := mulEndpoints(iv.Min, iv.Max, k)
	return InfInterval{Min: lo, Max: hi, T: iv.T, Exact: iv.Exact}
}

// DivK is Halide's floor integer division of an interval by a nonzero
// constant k.
func (iv InfInterval) DivK(k int64) InfInterval {
	if k == 0 {
		panic("halideir: division by zero constant")
	}
	lo := divBound(iv.Min, k)
	hi := divBound(iv.Max, k)
	if k < 0 {
		lo, hi = hi, lo
	}
	return InfInterval{Min: lo, Max: hi, T: iv.T, Exact: iv.Exact}
}

func divBound(b Bound, k int64) Bound {
	if !b.IsFinite() {
		if k < 0 {
			return b.Neg()
		}
		return b
	}
	return FiniteBound(FloorDiv(b.Val, k))
}

// MulInterval and DivInterval implement interval*interval, interval/interval
// per spec.md §4.2: enumerate the four endpoint products/quotients and take
// min/max; a divisor spanning zero collapses the result to unbounded.
func MulInterval(u, v InfInterval) InfInterval {
	if u.IsFinite() && v.IsFinite() {
		cands := []int64{u.Min.Val * v.Min.Val, u.Min.Val * v.Max.Val, u.Max.Val * v.Min.Val, u.Max.Val * v.Max.Val}
		lo, hi := cands[0], cands[0]
		for _, c := range cands[1:] {
			if c < lo {
				lo = c
			}
			if c > hi {
				hi = c
			}
		}
		return InfInterval{Min: FiniteBound(lo), Max: FiniteBound(hi), T: u.T, Exact: u.Exact && v.Exact}
	}
	// One side unbounded: fall back to the constant-k rule if the other side
	// is a single point (min == max), else widen.
	if v.IsFinite() && v.Min.Val == v.Max.Val {
		return u.MulK(v.Min.Val)
	}
	if u.IsFinite() && u.Min.Val == u.Max.Val {
		return v.MulK(u.Min.Val)
	}
	return FullInfInterval(u.T)
}

func DivInterval(u, v InfInterval) InfInterval {
	if v.IsFinite() && v.Min.Val == v.Max.Val && v.Min.Val != 0 {
		return u.DivK(v.Min.Val)
	}
	// Divisor interval spans (or may span) zero: unbounded, per spec.md §4.2.
	if !v.IsFinite() || (v.Min.Val <= 0 && v.Max.Val >= 0) {
		return FullInfInterval(u.T)
	}
	if u.IsFinite() {
		cands := []int64{
			FloorDiv(u.Min.Val, v.Min.Val), FloorDiv(u.Min.Val, v.Max.Val),
			FloorDiv(u.Max.Val, v.Min.Val), FloorDiv(u.Max.Val, v.Max.Val),
		}
		lo, hi := cands[0], cands[0]
		for _, c := range cands[1:] {
			if c < lo {
				lo = c
			}
			if c > hi {
				hi = c
			}
		}
		return InfInterval{Min: FiniteBound(lo), Max: FiniteBound(hi), T: u.T, Exact: u.Exact && v.Exact}
	}
	return FullInfInterval(u.T)
}

// ModInterval implements spec.md §4.2's "A % B": if A already lies
// entirely within the valid-remainder range for B, mod is the identity;
// otherwise the result is the full [0, max(B)-1] (integer) range.
func ModInterval(u, v InfInterval) InfInterval {
	if !v.IsFinite() || v.Max.Val <= 0 {
		return FullInfInterval(u.T)
	}
	modMax := v.Max.Val
	if u.IsFinite() {
		if u.Min.Val >= 0 && u.Max.Val <= modMax-1 {
			return u
		}
	}
	if u.T.IsFloat() {
		return InfInterval{Min: FiniteBound(0), Max: FiniteBound(modMax), T: u.T, Exact: false}
	}
	return InfInterval{Min: FiniteBound(0), Max: FiniteBound(modMax - 1), T: u.T, Exact: false}
}

// MinInterval, MaxInterval, IntersectInterval, UnionInterval combine two
// intervals endpoint-wise, as expected (spec.md §4.2).
func MinInterval(u, v InfInterval) InfInterval {
	return InfInterval{Min: MinBound(u.Min, v.Min), Max: MinBound(u.Max, v.Max), T: u.T, Exact: u.Exact && v.Exact}
}
func MaxInterval(u, v InfInterval) InfInterval {
	return InfInterval{Min: MaxBound(u.Min, v.Min), Max: MaxBound(u.Max, v.Max), T: u.T, Exact: u.Exact && v.Exact}
}
func IntersectInterval(u, v InfInterval) InfInterval {
	return InfInterval{Min: MaxBound(u.Min, v.Min), Max: MinBound(u.Max, v.Max), T: u.T, Exact: u.Exact && v.Exact}
}
func UnionInterval(u, v InfInterval) InfInterval {
	return InfInterval{Min: MinBound(u.Min, v.Min), Max: MaxBound(u.Max, v.Max), T: u.T, Exact: u.Exact && v.Exact}
}

// IsEmpty reports whether the interval is inconsistent (min > max), which
// intersection can produce when two call-site constraints are incompatible.
func (iv InfInterval) IsEmpty() bool {
	return iv.Max.Less(iv.Min)
}

// --- Zoom / decimate / unzoom (spec.md §4.2) ---

// Zoom computes the largest interval B such that B / k == A, for nonzero
// integer k. This is the inverse of integer division used to push a Solve
// marker through "a / k" (spec.md §4.2, §4.7.2).
func Zoom(a InfInterval, k int64) InfInterval {
	if k == 0 {
		panic("halideir: zoom by zero")
	}
	if k > 0 {
		lo := a.Min.MulConst(k)
		hi := shiftFinite(a.Max.MulConst(k), k-1)
		return InfInterval{Min: lo, Max: hi, T: a.T, Exact: a.Exact}
	}
	// Negative k: the range flips, per the original source's negated-range
	// handling for zoom with a negative scale factor.
	lo := shiftFinite(a.Max.MulConst(k), k+1)
	hi := a.Min.MulConst(k)
	return InfInterval{Min: lo, Max: hi, T: a.T, Exact: a.Exact}
}

func shiftFinite(b Bound, delta int64) Bound {
	if !b.IsFinite() {
		return b
	}
	return FiniteBound(b.Val + delta)
}

// Decimate computes the largest interval B such that B*k ⊆ A, for nonzero
// integer k: every multiple of k that lands inside A.
func Decimate(a InfInterval, k int64) InfInterval {
	if k == 0 {
		panic("halideir: decimate by zero")
	}
	if k > 0 {
		return InfInterval{Min: ceilDivBound(a.Min, k), Max: floorDivBound(a.Max, k), T: a.T, Exact: a.Exact}
	}
	return InfInterval{Min: ceilDivBound(a.Max, k), Max: floorDivBound(a.Min, k), T: a.T, Exact: a.Exact}
}

// Unzoom computes the largest interval B such that Zoom(B, k) ⊆ A: the
// conjugate operation used when a loop partition is reduced because the
// partition itself will subsequently be zoomed (e.g. after a split).
func Unzoom(a InfInterval, k int64) InfInterval {
	if k == 0 {
		panic("halideir: unzoom by zero")
	}
	if k > 0 {
		lo := ceilDivBound(a.Min, k)
		hi := boundSubOne(floorDivBound(shiftFinite(a.Max, 1), k))
		return InfInterval{Min: lo, Max: hi, T: a.T, Exact: a.Exact}
	}
	lo := boundSubOne(floorDivBound(shiftFinite(a.Min, -1), k))
	hi := ceilDivBound(a.Max, k)
	return InfInterval{Min: hi, Max: lo, T: a.T, Exact: a.Exact}
}

func floorDivBound(b Bound, k int64) Bound {
	if !b.IsFinite() {
		if k < 0 {
			return b.Neg()
		}
		return b
	}
	return FiniteBound(FloorDiv(b.Val, k))
}

func ceilDivBound(b Bound, k int64) Bound {
	if !b.IsFinite() {
		if k < 0 {
			return b.Neg()
		}
		return b
	}
	// ceil(a/k) = -floor(-a/k)
	return FiniteBound(-FloorDiv(-b.Val, k))
}

func boundSubOne(b Bound) Bound {
	if !b.IsFinite() {
		return b
	}
	return FiniteBound(b.Val - 1)
}

// --- Inverse operators (spec.md §4.2, used by the solver in §4.7.2) ---

// InverseAdd returns r such that r + b == v: r = v − b.
func InverseAdd(v InfInterval, b int64) InfInterval { return v.SubK(b) }

// InverseSub returns r such that r − b == v: r = v + b.
func InverseSub(v InfInterval, b int64) InfInterval { return v.AddK(b) }

// InverseMul returns the largest r such that r*b does not exceed v: this is
// Decimate.
func InverseMul(v InfInterval, b int64) InfInterval { return Decimate(v, b) }

// InverseDiv is Zoom: the largest r such that r/b lands inside v.
func InverseDiv(v InfInterval, b int64) InfInterval { return Zoom(v, b) }

// InverseMin implements spec.md §4.7.2's "inverseMin(I, k) = [I.min,
// select(I.max >= k, +inf, I.max)]": once the clamp value k is reachable,
// the pre-image is unconstrained above, because any larger input also
// clamps down to (at most) k.
func InverseMin(i InfInterval, k int64) InfInterval {
	hi := i.Max
	if !i.Max.Less(FiniteBound(k)) {
		hi = PosInfBound
	}
	return InfInterval{Min: i.Min, Max: hi, T: i.T, Exact: i.Exact}
}

// InverseMax is the dual of InverseMin: once k is reachable from below,
// the pre-image is unconstrained below.
func InverseMax(i InfInterval, k int64) InfInterval {
	lo := i.Min
	if !FiniteBound(k).Less(i.Min) {
		lo = NegInfBound
	}
	return InfInterval{Min: lo, Max: i.Max, T: i.T, Exact: i.Exact}
}
