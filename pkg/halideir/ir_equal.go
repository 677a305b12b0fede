package halideir

// Equal performs structural equality on two expressions: same kind, then
// same children, recursively. SameAs (pointer identity) is tried first as
// a fast path, matching spec.md §4.1's "structural equality equal(a,b)
// compares kind then children; pointer identity is a fast-path."
func Equal(a, b Expr) bool {
	if SameAs(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if a.Type() != b.Type() {
		return false
	}
	switch x := a.(type) {
	case *IntImm:
		return x.Value == b.(*IntImm).Value
	case *FloatImm:
		return x.Value == b.(*FloatImm).Value
	case *Variable:
		y := b.(*Variable)
		return x.Name == y.Name && x.Param == y.Param && x.Reduction == y.Reduction
	case *Infinity:
		y := b.(*Infinity)
		return x.Positive() == y.Positive()
	case *Cast:
		y := b.(*Cast)
		return Equal(x.Value, y.Value)
	case *Not:
		y := b.(*Not)
		return Equal(x.Value, y.Value)
	case *Broadcast:
		y := b.(*Broadcast)
		return x.Width == y.Width && Equal(x.Value, y.Value)
	case *Ramp:
		y := b.(*Ramp)
		return x.Width == y.Width && Equal(x.Base, y.Base) && Equal(x.Stride, y.Stride)
	case *BinOp:
		y := b.(*BinOp)
		return Equal(x.A, y.A) && Equal(x.B, y.B)
	case *CmpOp:
		y := b.(*CmpOp)
		return Equal(x.A, y.A) && Equal(x.B, y.B)
	case *BoolOp:
		y := b.(*BoolOp)
		return Equal(x.A, y.A) && Equal(x.B, y.B)
	case *Select:
		y := b.(*Select)
		return Equal(x.Cond, y.Cond) && Equal(x.T, y.T) && Equal(x.F, y.F)
	case *Load:
		y := b.(*Load)
		return x.Name == y.Name && Equal(x.Index, y.Index)
	case *Call:
		y := b.(*Call)
		if x.Name != y.Name || x.CallKind != y.CallKind || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Let:
		y := b.(*Let)
		return x.Name == y.Name && Equal(x.Value, y.Value) && Equal(x.Body, y.Body)
	case *Clamp:
		y := b.(*Clamp)
		if x.ClampKind != y.ClampKind || !Equal(x.A, y.A) || !Equal(x.Min, y.Min) || !Equal(x.Max, y.Max) {
			return false
		}
		if (x.P1 == nil) != (y.P1 == nil) {
			return false
		}
		if x.P1 != nil && !Equal(x.P1, y.P1) {
			return false
		}
		return true
	case *Solve:
		y := b.(*Solve)
		if !Equal(x.Body, y.Body) {
			return false
		}
		for i := range x.Intervals {
			if !x.Intervals[i].Equal(y.Intervals[i]) {
				return false
			}
		}
		return true
	case *TargetVar:
		y := b.(*TargetVar)
		return x.Name == y.Name && Equal(x.Body, y.Body)
	default:
		return false
	}
}

// EqualStmt is Equal for statements.
func EqualStmt(a, b Stmt) bool {
	if StmtSameAs(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *LetStmt:
		y := b.(*LetStmt)
		return x.Name == y.Name && Equal(x.Value, y.Value) && EqualStmt(x.Body, y.Body)
	case *AssertStmt:
		y := b.(*AssertStmt)
		return x.Message == y.Message && Equal(x.Condition, y.Condition)
	case *PrintStmt:
		y := b.(*PrintStmt)
		if len(x.Values) != len(y.Values) {
			return false
		}
		for i := range x.Values {
			if !Equal(x.Values[i], y.Values[i]) {
				return false
			}
		}
		return true
	case *Pipeline:
		y := b.(*Pipeline)
		return x.Name == y.Name && EqualStmt(x.Produce, y.Produce) &&
			EqualStmt(x.Update, y.Update) && EqualStmt(x.Consume, y.Consume)
	case *For:
		y := b.(*For)
		return x.Name == y.Name && x.ForType == y.ForType && x.Partition == y.Partition &&
			Equal(x.Min, y.Min) && Equal(x.Extent, y.Extent) && EqualStmt(x.Body, y.Body)
	case *Store:
		y := b.(*Store)
		return x.Name == y.Name && Equal(x.Value, y.Value) && Equal(x.Index, y.Index)
	case *Provide:
		y := b.(*Provide)
		if x.Name != y.Name || !Equal(x.Value, y.Value) || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Allocate:
		y := b.(*Allocate)
		return x.Name == y.Name && x.T == y.T && Equal(x.Size, y.Size) && EqualStmt(x.Body, y.Body)
	case *Free:
		y := b.(*Free)
		return x.Name == y.Name
	case *Realize:
		y := b.(*Realize)
		if x.Name != y.Name || x.T != y.T || len(x.Bounds) != len(y.Bounds) {
			return false
		}
		for i := range x.Bounds {
			if !x.Bounds[i].Equal(y.Bounds[i]) {
				return false
			}
		}
		return EqualStmt(x.Body, y.Body)
	case *Block:
		y := b.(*Block)
		return EqualStmt(x.First, y.First) && EqualStmt(x.Rest, y.Rest)
	case *StmtTargetVar:
		y := b.(*StmtTargetVar)
		return x.Name == y.Name && EqualStmt(x.Body, y.Body)
	default:
		return false
	}
}
