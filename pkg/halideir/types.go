// Package halideir implements the symbolic reasoning core of a Halide-family
// image-pipeline compiler: the expression/statement IR, an algebraic
// simplifier with constant folding, a bounds/interval analysis driven by a
// context/scope manager, and a backwards interval solver used for domain
// inference.
package halideir

import "fmt"

// Kind enumerates the representable value classes of a Type.
type Kind int

const (
	// Int is a signed two's-complement integer.
	Int Kind = iota
	// UInt is an unsigned integer.
	UInt
	// Float is an IEEE floating-point number.
	Float
	// Handle is an opaque pointer-sized value (e.g. an external resource).
	Handle
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Float:
		return "float"
	case Handle:
		return "handle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is (kind, bits, width). width > 1 denotes a SIMD vector of that many
// lanes, each of the scalar type (kind, bits).
type Type struct {
	Kind  Kind
	Bits  int
	Width int
}

// Int32, Int64, UInt32, UInt64, Float32, Float64, Bool1 are the scalar types used
// pervasively by the simplifier and bounds analysis.
var (
	Int32   = Type{Kind: Int, Bits: 32, Width: 1}
	Int64   = Type{Kind: Int, Bits: 64, Width: 1}
	UInt32  = Type{Kind: UInt, Bits: 32, Width: 1}
	UInt64  = Type{Kind: UInt, Bits: 64, Width: 1}
	Float32 = Type{Kind: Float, Bits: 32, Width: 1}
	Float64 = Type{Kind: Float, Bits: 64, Width: 1}
	Bool1   = Type{Kind: UInt, Bits: 1, Width: 1}
)

// IsScalar reports whether the type has a single lane.
func (t Type) IsScalar() bool { return t.Width == 1 }

// IsVector reports whether the type has more than one lane.
func (t Type) IsVector() bool { return t.Width > 1 }

// IsBool reports whether t is the boolean encoding UInt(1, width).
func (t Type) IsBool() bool { return t.Kind == UInt && t.Bits == 1 }

// IsInt reports whether t is a signed integer type.
func (t Type) IsInt() bool { return t.Kind == Int }

// IsUInt reports whether t is an unsigned integer type (including bool).
func (t Type) IsUInt() bool { return t.Kind == UInt }

// IsFloat reports whether t is a floating-point type.
func (t Type) IsFloat() bool { return t.Kind == Float }

// WithWidth returns t with its lane count replaced.
func (t Type) WithWidth(width int) Type {
	t.Width = width
	return t
}

// WithScalar returns the scalar (width-1) version of t.
func (t Type) WithScalar() Type { return t.WithWidth(1) }

// Bool returns the boolean encoding with the same width as t: a Halide
// comparison between two operands of type t produces UInt(1, t.Width).
func (t Type) Bool() Type { return Type{Kind: UInt, Bits: 1, Width: t.Width} }

// Equal reports whether two types are identical in kind, bits and width.
func (t Type) Equal(o Type) bool { return t == o }

// Min returns the type's representable minimum, used as the saturation
// reference during integer constant folding and clamp elision. Returns
// (0, false) for Float and Handle kinds, which have no fixed-width extremum
// used by this package.
func (t Type) Min() (int64, bool) {
	switch t.Kind {
	case Int:
		if t.Bits >= 64 {
			return minInt64, true
		}
		return -(int64(1) << uint(t.Bits-1)), true
	case UInt:
		return 0, true
	default:
		return 0, false
	}
}

// Max returns the type's representable maximum, analogous to Min.
func (t Type) Max() (int64, bool) {
	switch t.Kind {
	case Int:
		if t.Bits >= 64 {
			return maxInt64, true
		}
		return (int64(1) << uint(t.Bits-1)) - 1, true
	case UInt:
		if t.Bits >= 64 {
			// 64-bit unsigned doesn't fit in int64; treated as unbounded by
			// callers (see bounds.go's UInt(32)/UInt(64) approximation note).
			return maxInt64, true
		}
		return (int64(1) << uint(t.Bits)) - 1, true
	default:
		return 0, false
	}
}

const (
	minInt64 = -1 << 63
	maxInt64 = 1<<63 - 1
)

func (t Type) String() string {
	base := fmt.Sprintf("%s%d", t.Kind, t.Bits)
	if t.Width > 1 {
		return fmt.Sprintf("%sx%d", base, t.Width)
	}
	return base
}
