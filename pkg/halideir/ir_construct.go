package halideir

import "fmt"

// smallIntCache interns IntImm nodes for values -8..8 (spec.md §3.2), so
// that two separately-requested small constants are SameAs each other —
// this is what lets the simplifier's pointer-identity fast paths fire on
// trivial constants without a structural comparison.
var smallIntCache [17]*IntImm

func init() {
	for i := range smallIntCache {
		v := int64(i - 8)
		smallIntCache[i] = &IntImm{Value: v, T: Int32}
	}
}

// NewIntImm constructs a 32-bit signed integer constant, reusing the
// interned small-constant cache for values in [-8, 8].
func NewIntImm(value int64) Expr {
	if value >= -8 && value <= 8 {
		return smallIntCache[value+8]
	}
	return &IntImm{Value: value, T: Int32}
}

// NewIntImmT constructs an integer constant of an explicit integer type,
// narrowing value per the type's width (see IntCastConstant).
func NewIntImmT(t Type, value int64) Expr {
	return &IntImm{Value: IntCastConstant(t, value), T: t}
}

// NewFloatImm constructs a 32-bit float constant.
func NewFloatImm(value float64) Expr {
	return &FloatImm{Value: value, T: Float32}
}

// NewFloatImmT constructs a float constant of an explicit float type.
func NewFloatImmT(t Type, value float64) Expr {
	if !t.IsFloat() {
		panic(fmt.Sprintf("NewFloatImmT: %s is not a float type", t))
	}
	return &FloatImm{Value: value, T: t}
}

// NewVariable constructs a reference to name, to be resolved against an
// enclosing binder by the context manager (spec.md §3.4).
func NewVariable(name string, t Type) Expr {
	return &Variable{Name: name, T: t}
}

// NewParamVariable constructs a reference to an external parameter, with no
// enclosing binder to resolve against.
func NewParamVariable(name string, t Type, param *Parameter) Expr {
	return &Variable{Name: name, T: t, Param: param}
}

// NewInfinity constructs +∞ (count > 0) or -∞ (count < 0) of type t. count
// must be nonzero. The magnitude is stored as given; only its sign
// (direction) is consulted anywhere in this package.
func NewInfinity(t Type, count int) Expr {
	if count == 0 {
		panic("Infinity: count must be nonzero")
	}
	return &Infinity{T: t, Count: count}
}

// PosInf and NegInf are the canonical ±∞ markers at a given type.
func PosInf(t Type) Expr { return &Infinity{T: t, Count: 1} }
func NegInf(t Type) Expr { return &Infinity{T: t, Count: -1} }

// IsInfinity reports whether e is an Infinity node, returning it if so.
func IsInfinity(e Expr) (*Infinity, bool) {
	inf, ok := e.(*Infinity)
	return inf, ok
}

// NewCast constructs a type-conversion node.
func NewCast(t Type, value Expr) Expr {
	assertDefined("Cast", value)
	return &Cast{T: t, Value: value}
}

// NewNot constructs boolean negation; value must be boolean.
func NewNot(value Expr) Expr {
	assertDefined("Not", value)
	if !value.Type().IsBool() {
		panic("Not requires a boolean operand")
	}
	return &Not{Value: value}
}

// NewBroadcast replicates value (which must be scalar) across width lanes.
func NewBroadcast(value Expr, width int) Expr {
	assertDefined("Broadcast", value)
	if width < 1 {
		panic("Broadcast: width must be >= 1")
	}
	if value.Type().IsVector() {
		panic("Broadcast: value must be scalar")
	}
	return &Broadcast{Value: value, Width: width}
}

// NewRamp constructs base, base+stride, ..., base+(width-1)*stride as a
// single vector value. base and stride must be scalar and of the same type.
func NewRamp(base, stride Expr, width int) Expr {
	assertDefinedSameType("Ramp", base, stride)
	if width < 1 {
		panic("Ramp: width must be >= 1")
	}
	if base.Type().IsVector() {
		panic("Ramp: base/stride must be scalar")
	}
	return &Ramp{Base: base, Stride: stride, Width: width}
}

// NewLoad reads from buffer name at index, producing type t.
func NewLoad(t Type, name string, index Expr) Expr {
	assertDefined("Load", index)
	return &Load{T: t, Name: name, Index: index}
}

// NewLoadRef is NewLoad with an explicit Image/Param back-reference.
func NewLoadRef(t Type, name string, index Expr, image *ImageRef, param *Parameter) Expr {
	assertDefined("Load", index)
	return &Load{T: t, Name: name, Index: index, Image: image, Param: param}
}

// NewCall constructs a call to name of the given kind with the given
// arguments, producing type t.
func NewCall(t Type, name string, args []Expr, kind CallKind) Expr {
	assertDefined("Call", args...)
	return &Call{T: t, Name: name, Args: args, CallKind: kind}
}

// NewHalideCall constructs a call to a Halide function identified by its
// arena index in a FunctionArena (see func.go).
func NewHalideCall(t Type, name string, args []Expr, funcIndex int) Expr {
	assertDefined("Call", args...)
	return &Call{T: t, Name: name, Args: args, CallKind: CallHalide, Func: funcIndex, HasFunc: true}
}

// NewLet binds name to value within body.
func NewLet(name string, value, body Expr) Expr {
	assertDefined("Let", value, body)
	return &Let{Name: name, Value: value, Body: body}
}

// NewClamp constructs a border-handler node. min and max must be of the
// same type as a; p1 may be nil unless kind is ClampTile, which requires it.
func NewClamp(kind ClampKind, a, min, max, p1 Expr) Expr {
	assertDefined("Clamp", a, min, max)
	assertSameType("Clamp", a, min)
	assertSameType("Clamp", a, max)
	if kind == ClampTile && p1 == nil {
		panic("Clamp: ClampTile requires p1 (tile period)")
	}
	return &Clamp{ClampKind: kind, A: a, Min: min, Max: max, P1: p1}
}

// NewSolve wraps body in a solver marker with the given per-DomainType
// intervals (spec.md §4.7).
func NewSolve(body Expr, intervals [MaxDomains]InfInterval) Expr {
	assertDefined("Solve", body)
	return &Solve{Body: body, Intervals: intervals}
}

// NewTargetVar marks name as a solve target within body; source records the
// pre-solve expression this node replaced.
func NewTargetVar(name string, body, source Expr) Expr {
	assertDefined("TargetVar", body)
	return &TargetVar{Name: name, Body: body, Source: source}
}

// --- Statement constructors ---

func NewLetStmt(name string, value Expr, body Stmt) Stmt {
	assertDefined("LetStmt", value)
	if body == nil {
		panic("LetStmt: undefined body")
	}
	return &LetStmt{Name: name, Value: value, Body: body}
}

func NewAssertStmt(condition Expr, message string) Stmt {
	assertDefined("AssertStmt", condition)
	if !condition.Type().IsBool() {
		panic("AssertStmt: condition must be boolean")
	}
	return &AssertStmt{Condition: condition, Message: message}
}

func NewPrintStmt(values []Expr) Stmt {
	assertDefined("PrintStmt", values...)
	return &PrintStmt{Values: values}
}

func NewPipeline(name string, produce, update, consume Stmt) Stmt {
	if produce == nil || consume == nil {
		panic("Pipeline: produce and consume must be defined")
	}
	return &Pipeline{Name: name, Produce: produce, Update: update, Consume: consume}
}

func NewFor(name string, min, extent Expr, forType ForType, partition bool, body Stmt) Stmt {
	assertDefinedSameType("For", min, extent)
	if body == nil {
		panic("For: undefined body")
	}
	return &For{Name: name, Min: min, Extent: extent, ForType: forType, Partition: partition, Body: body}
}

func NewStore(name string, value, index Expr) Stmt {
	assertDefined("Store", value, index)
	return &Store{Name: name, Value: value, Index: index}
}

func NewProvide(name string, value Expr, args []Expr) Stmt {
	assertDefined("Provide", value)
	assertDefined("Provide", args...)
	return &Provide{Name: name, Value: value, Args: args}
}

func NewAllocate(name string, t Type, size Expr, body Stmt) Stmt {
	assertDefined("Allocate", size)
	if body == nil {
		panic("Allocate: undefined body")
	}
	return &Allocate{Name: name, T: t, Size: size, Body: body}
}

func NewFree(name string) Stmt {
	return &Free{Name: name}
}

func NewRealize(name string, t Type, bounds []Range, body Stmt) Stmt {
	if body == nil {
		panic("Realize: undefined body")
	}
	return &Realize{Name: name, T: t, Bounds: bounds, Body: body}
}

func NewBlock(first, rest Stmt) Stmt {
	if first == nil {
		panic("Block: undefined first statement")
	}
	return &Block{First: first, Rest: rest}
}

func NewStmtTargetVar(name string, body Stmt, source Expr) Stmt {
	if body == nil {
		panic("StmtTargetVar: undefined body")
	}
	return &StmtTargetVar{Name: name, Body: body, Source: source}
}
