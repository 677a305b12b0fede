package halideir

// This file lays out the closed taxonomy of expression and statement node
// kinds (spec.md §3.2). Nodes are immutable after construction and shared
// by plain Go pointers: Go's garbage collector plays the role the Halide
// C++ source gives to intrusive reference counting (spec.md §9), so no
// refcount bookkeeping appears anywhere in this package. The one place the
// original source needs explicit cycle-breaking — a reduction step whose
// body calls its own function — is instead handled by routing every Call
// through a stable arena index (see func.go's FunctionArena), which never
// forms a reference cycle for the collector to need help with.
//
// Dispatch over the closed node set is a Go type switch (spec.md §9): no
// virtual accept() method, no RTTI, no curiously-recurring-template
// machinery. A NodeKind tag is kept alongside for cases (debug printing,
// node-kind-keyed maps) where a type switch would be awkward, mirroring
// Halide's IRNodeType pointer-identity trick but using a plain enum since
// Go has no equivalent static-storage-per-template-instantiation idiom.

import "fmt"

// NodeKind tags every concrete node type for debugging, printing, and the
// rare map keyed by kind rather than by (context, node).
type NodeKind int

const (
	KindIntImm NodeKind = iota
	KindFloatImm
	KindVariable
	KindInfinity
	KindCast
	KindNot
	KindBroadcast
	KindRamp
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindMod
	KindMin
	KindMax
	KindEQ
	KindNE
	KindLT
	KindLE
	KindGT
	KindGE
	KindAnd
	KindOr
	KindSelect
	KindLoad
	KindCall
	KindLet
	KindClamp
	KindSolve
	KindTargetVar

	KindLetStmt
	KindAssertStmt
	KindPrintStmt
	KindPipeline
	KindFor
	KindStore
	KindProvide
	KindAllocate
	KindFree
	KindRealize
	KindBlock
	KindStmtTargetVar
)

var nodeKindNames = map[NodeKind]string{
	KindIntImm: "IntImm", KindFloatImm: "FloatImm", KindVariable: "Variable",
	KindInfinity: "Infinity", KindCast: "Cast", KindNot: "Not",
	KindBroadcast: "Broadcast", KindRamp: "Ramp", KindAdd: "Add", KindSub: "Sub",
	KindMul: "Mul", KindDiv: "Div", KindMod: "Mod", KindMin: "Min", KindMax: "Max",
	KindEQ: "EQ", KindNE: "NE", KindLT: "LT", KindLE: "LE", KindGT: "GT", KindGE: "GE",
	KindAnd: "And", KindOr: "Or", KindSelect: "Select", KindLoad: "Load",
	KindCall: "Call", KindLet: "Let", KindClamp: "Clamp", KindSolve: "Solve",
	KindTargetVar: "TargetVar", KindLetStmt: "LetStmt", KindAssertStmt: "AssertStmt",
	KindPrintStmt: "PrintStmt", KindPipeline: "Pipeline", KindFor: "For",
	KindStore: "Store", KindProvide: "Provide", KindAllocate: "Allocate",
	KindFree: "Free", KindRealize: "Realize", KindBlock: "Block",
	KindStmtTargetVar: "StmtTargetVar",
}

func (k NodeKind) String() string {
	if s, ok := nodeKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Expr is an immutable, typed IR expression node. Every concrete expression
// type below implements Expr with a pointer receiver; node identity is
// plain Go pointer identity (SameAs).
type Expr interface {
	// Kind returns this node's tag for type-switch-free dispatch.
	Kind() NodeKind
	// Type returns the expression's Halide type.
	Type() Type
	exprNode()
}

// Stmt is an immutable statement node. Statements carry no type.
type Stmt interface {
	Kind() NodeKind
	stmtNode()
}

// SameAs reports pointer identity between two expressions — the fast path
// every equality check in this package takes before falling back to
// structural comparison. Every concrete Expr is a pointer type, so this is
// exactly Go interface equality.
func SameAs(a, b Expr) bool {
	return a == b
}

// StmtSameAs is SameAs for statements.
func StmtSameAs(a, b Stmt) bool {
	return a == b
}

// --- Leaves ---

// IntImm is an integer constant. Values in [-8, 8] are interned so that
// SameAs is true for separately-constructed small constants, matching
// spec.md §3.2's interning invariant.
type IntImm struct {
	Value int64
	T     Type
}

func (n *IntImm) Kind() NodeKind { return KindIntImm }
func (n *IntImm) Type() Type     { return n.T }
func (*IntImm) exprNode()        {}

// FloatImm is a floating-point constant.
type FloatImm struct {
	Value float64
	T     Type
}

func (n *FloatImm) Kind() NodeKind { return KindFloatImm }
func (n *FloatImm) Type() Type     { return n.T }
func (*FloatImm) exprNode()        {}

// Parameter is an opaque reference to an externally-bound scalar (e.g. an
// ImageParam's runtime value). Out of scope per spec.md §1; only a stand-in
// identity is kept so Variable/Load/Call can carry an optional reference.
type Parameter struct {
	Name string
	T    Type
}

// ReductionDomain is an opaque reference to an out-of-scope RDom. Only a
// name is kept, since the RDom front end itself is excluded (spec.md §1).
type ReductionDomain struct {
	Name string
}

// Variable is a reference to a name bound somewhere in an enclosing Let,
// LetStmt, For, TargetVar or StmtTargetVar — or, if Param is set, to an
// external parameter with no enclosing binder.
type Variable struct {
	Name      string
	T         Type
	Param     *Parameter
	Reduction *ReductionDomain
}

func (n *Variable) Kind() NodeKind { return KindVariable }
func (n *Variable) Type() Type     { return n.T }
func (*Variable) exprNode()        {}

// Infinity represents +∞ or -∞ (sign of Count) at a given type. It is only
// ever legal inside an InfInterval/DomInterval or inside the solver;
// spec.md §3.2 forbids it from appearing inside an ordinary expression
// tree that bounds analysis recurses into, and this package's bounds pass
// asserts that invariant (see bounds.go).
type Infinity struct {
	T     Type
	Count int // sign(Count) is the direction; |Count| > 0.
}

func (n *Infinity) Kind() NodeKind { return KindInfinity }
func (n *Infinity) Type() Type     { return n.T }
func (*Infinity) exprNode()        {}

// Positive reports whether this is +∞.
func (n *Infinity) Positive() bool { return n.Count > 0 }

// --- Unary / arity-changing ---

// Cast changes an expression's type, e.g. narrowing or widening, or
// switching between int/uint/float encodings.
type Cast struct {
	T     Type
	Value Expr
}

func (n *Cast) Kind() NodeKind { return KindCast }
func (n *Cast) Type() Type     { return n.T }
func (*Cast) exprNode()        {}

// Not is boolean negation.
type Not struct {
	Value Expr
}

func (n *Not) Kind() NodeKind { return KindNot }
func (n *Not) Type() Type     { return n.Value.Type() }
func (*Not) exprNode()        {}

// Broadcast replicates a scalar across Width vector lanes.
type Broadcast struct {
	Value Expr
	Width int
}

func (n *Broadcast) Kind() NodeKind { return KindBroadcast }
func (n *Broadcast) Type() Type     { return n.Value.Type().WithWidth(n.Width) }
func (*Broadcast) exprNode()        {}

// Ramp represents Width consecutive values base, base+stride, ...,
// base+(Width-1)*stride, packed into one vector lane group.
type Ramp struct {
	Base   Expr
	Stride Expr
	Width  int
}

func (n *Ramp) Kind() NodeKind { return KindRamp }
func (n *Ramp) Type() Type     { return n.Base.Type().WithWidth(n.Width) }
func (*Ramp) exprNode()        {}

// --- Binary arithmetic ---

// BinOp is the common shape of Add/Sub/Mul/Div/Mod/Min/Max: two operands of
// the same type, result of that same type.
type BinOp struct {
	A, B Expr
	kind NodeKind
}

func (n *BinOp) Kind() NodeKind { return n.kind }
func (n *BinOp) Type() Type     { return n.A.Type() }
func (*BinOp) exprNode()        {}

func newBinOp(kind NodeKind, a, b Expr) *BinOp {
	assertDefinedSameType(kind.String(), a, b)
	return &BinOp{A: a, B: b, kind: kind}
}

// Add, Sub, Mul, Div, Mod, Min, Max construct the corresponding binary
// arithmetic node. a and b must be defined and of identical type.
func Add(a, b Expr) Expr { return newBinOp(KindAdd, a, b) }
func Sub(a, b Expr) Expr { return newBinOp(KindSub, a, b) }
func Mul(a, b Expr) Expr { return newBinOp(KindMul, a, b) }
func Div(a, b Expr) Expr { return newBinOp(KindDiv, a, b) }
func Mod(a, b Expr) Expr { return newBinOp(KindMod, a, b) }
func MinE(a, b Expr) Expr { return newBinOp(KindMin, a, b) }
func MaxE(a, b Expr) Expr { return newBinOp(KindMax, a, b) }

// --- Comparisons ---

// CmpOp is the common shape of EQ/NE/LT/LE/GT/GE: two same-typed operands,
// result type Bool(a.Width).
type CmpOp struct {
	A, B Expr
	kind NodeKind
}

func (n *CmpOp) Kind() NodeKind { return n.kind }
func (n *CmpOp) Type() Type     { return n.A.Type().Bool() }
func (*CmpOp) exprNode()        {}

func newCmpOp(kind NodeKind, a, b Expr) *CmpOp {
	assertDefinedSameType(kind.String(), a, b)
	return &CmpOp{A: a, B: b, kind: kind}
}

func EQ(a, b Expr) Expr { return newCmpOp(KindEQ, a, b) }
func NE(a, b Expr) Expr { return newCmpOp(KindNE, a, b) }
func LT(a, b Expr) Expr { return newCmpOp(KindLT, a, b) }
func LE(a, b Expr) Expr { return newCmpOp(KindLE, a, b) }
func GT(a, b Expr) Expr { return newCmpOp(KindGT, a, b) }
func GE(a, b Expr) Expr { return newCmpOp(KindGE, a, b) }

// --- Boolean ---

// BoolOp is the common shape of And/Or: two boolean operands.
type BoolOp struct {
	A, B Expr
	kind NodeKind
}

func (n *BoolOp) Kind() NodeKind { return n.kind }
func (n *BoolOp) Type() Type     { return n.A.Type() }
func (*BoolOp) exprNode()        {}

func newBoolOp(kind NodeKind, a, b Expr) *BoolOp {
	assertDefinedSameType(kind.String(), a, b)
	if !a.Type().IsBool() {
		panic(fmt.Sprintf("%s requires boolean operands, got %s", kind, a.Type()))
	}
	return &BoolOp{A: a, B: b, kind: kind}
}

func And(a, b Expr) Expr { return newBoolOp(KindAnd, a, b) }
func Or(a, b Expr) Expr  { return newBoolOp(KindOr, a, b) }

// Select chooses between T and F lane-wise according to Cond, which must be
// boolean and either scalar or matching width.
type Select struct {
	Cond, T, F Expr
}

func (n *Select) Kind() NodeKind { return KindSelect }
func (n *Select) Type() Type     { return n.T.Type() }
func (*Select) exprNode()        {}

func NewSelect(cond, t, f Expr) Expr {
	assertDefined("Select", cond, t, f)
	if !cond.Type().IsBool() {
		panic("Select condition must be boolean")
	}
	if cond.Type().Width != 1 && cond.Type().Width != t.Type().Width {
		panic("Select condition width must be scalar or match operand width")
	}
	assertSameType("Select", t, f)
	return &Select{Cond: cond, T: t, F: f}
}

// CallKind distinguishes the external collaborator a Call refers to.
type CallKind int

const (
	CallImage CallKind = iota
	CallExtern
	CallHalide
)

func (k CallKind) String() string {
	switch k {
	case CallImage:
		return "Image"
	case CallExtern:
		return "Extern"
	case CallHalide:
		return "Halide"
	default:
		return fmt.Sprintf("CallKind(%d)", int(k))
	}
}

// ImageRef is an opaque reference to an out-of-scope Image/ImageParam
// (spec.md §1, §6): only the surface this package consumes (name, type,
// and per-dimension domain) is modelled; see func.go.
type ImageRef struct {
	Name string
	T    Type
}

// Load reads from a named buffer at a (possibly vector) index.
type Load struct {
	T     Type
	Name  string
	Index Expr
	Image *ImageRef
	Param *Parameter
}

func (n *Load) Kind() NodeKind { return KindLoad }
func (n *Load) Type() Type     { return n.T }
func (*Load) exprNode()        {}

// Call invokes an Image, Extern, or Halide function with index/argument
// expressions. Func, if CallKind is CallHalide, is the arena index (in a
// FunctionArena, see func.go) of the callee — used instead of a pointer so
// that a reduction step's self-call never forms a Go-level reference cycle.
type Call struct {
	T        Type
	Name     string
	Args     []Expr
	CallKind CallKind
	Func     int // valid iff CallKind == CallHalide; index into a FunctionArena
	HasFunc  bool
	Image    *ImageRef
	Param    *Parameter
}

func (n *Call) Kind() NodeKind { return KindCall }
func (n *Call) Type() Type     { return n.T }
func (*Call) exprNode()        {}

// Let introduces a scalar binding visible in Body.
type Let struct {
	Name  string
	Value Expr
	Body  Expr
}

func (n *Let) Kind() NodeKind { return KindLet }
func (n *Let) Type() Type     { return n.Body.Type() }
func (*Let) exprNode()        {}

// ClampKind is the border-handling discipline of a Clamp node (spec.md
// §4.7.3).
type ClampKind int

const (
	ClampNone ClampKind = iota
	ClampReplicate
	ClampWrap
	ClampReflect
	ClampReflect101
	ClampTile
)

func (k ClampKind) String() string {
	switch k {
	case ClampNone:
		return "None"
	case ClampReplicate:
		return "Replicate"
	case ClampWrap:
		return "Wrap"
	case ClampReflect:
		return "Reflect"
	case ClampReflect101:
		return "Reflect101"
	case ClampTile:
		return "Tile"
	default:
		return fmt.Sprintf("ClampKind(%d)", int(k))
	}
}

// Clamp is a border handler: it maps A into [Min,Max] according to Kind.
// P1 is an optional extra parameter used by Tile (tile period).
type Clamp struct {
	ClampKind  ClampKind
	A, Min, Max Expr
	P1         Expr // nil if unused
}

func (n *Clamp) Kind() NodeKind { return KindClamp }
func (n *Clamp) Type() Type     { return n.A.Type() }
func (*Clamp) exprNode()        {}

// MaxDomains is the number of DomainType values (spec.md §3.5).
const MaxDomains = 2

// Solve is a solver marker (spec.md §4.7): it records a sub-expression that
// should end up with its target variable isolated, plus per-DomainType
// intervals carried through the solve.
type Solve struct {
	Body      Expr
	Intervals [MaxDomains]InfInterval
}

func (n *Solve) Kind() NodeKind { return KindSolve }
func (n *Solve) Type() Type     { return n.Body.Type() }
func (*Solve) exprNode()        {}

// TargetVar marks Name as a target of the current solve pass within Body.
// Source records the original (pre-solve) expression the TargetVar replaced,
// for diagnostics and for StmtTargetVar's statement-level counterpart.
type TargetVar struct {
	Name   string
	Body   Expr
	Source Expr
}

func (n *TargetVar) Kind() NodeKind { return KindTargetVar }
func (n *TargetVar) Type() Type     { return n.Body.Type() }
func (*TargetVar) exprNode()        {}

// --- invariant-checking helpers (spec.md §7: construction error ⇒ panic) ---

func assertDefined(opname string, es ...Expr) {
	for _, e := range es {
		if e == nil {
			panic(fmt.Sprintf("%s: undefined operand", opname))
		}
	}
}

func assertSameType(opname string, a, b Expr) {
	if a.Type() != b.Type() {
		panic(fmt.Sprintf("%s: operand type mismatch %s vs %s", opname, a.Type(), b.Type()))
	}
}

func assertDefinedSameType(opname string, a, b Expr) {
	assertDefined(opname, a, b)
	assertSameType(opname, a, b)
}
