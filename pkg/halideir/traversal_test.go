package halideir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// countingVisitor counts how many Expr/Stmt nodes WalkExpr visits.
type countingVisitor struct {
	exprs int
	stmts int
}

func (v *countingVisitor) VisitExpr(Expr) bool { v.exprs++; return true }
func (v *countingVisitor) VisitStmt(Stmt) bool { v.stmts++; return true }

func TestWalkExprVisitsEveryNode(t *testing.T) {
	x := NewVariable("x", Int32)
	e := Add(Mul(x, NewIntImm(2)), NewIntImm(3))

	v := &countingVisitor{}
	WalkExpr(e, v)

	// e itself, Mul(x,2), x, 2, 3 = 5 nodes.
	assert.Equal(t, 5, v.exprs)
}

func TestWalkExprStopsRecursionWhenVisitorDeclines(t *testing.T) {
	x := NewVariable("x", Int32)
	e := Add(x, NewIntImm(1))

	v := &countingVisitor{}
	declining := exprVisitorFunc{
		visitExpr: func(n Expr) bool {
			v.exprs++
			_, isBinOp := n.(*BinOp)
			return !isBinOp // recurse into everything except the BinOp's children
		},
		visitStmt: func(Stmt) bool { return true },
	}
	WalkExpr(e, declining)

	assert.Equal(t, 1, v.exprs)
}

// identityMutator rebuilds every node through MutateChildren without
// changing anything, exercising the structural-sharing guarantee.
type identityMutator struct{}

func (identityMutator) MutateExpr(e Expr) Expr { return MutateChildren(e, identityMutator{}) }
func (identityMutator) MutateStmt(s Stmt) Stmt { return MutateStmtChildren(s, identityMutator{}) }

func TestMutateChildrenPreservesIdentityWhenNothingChanges(t *testing.T) {
	x := NewVariable("x", Int32)
	e := Add(Mul(x, NewIntImm(2)), NewIntImm(3))

	got := identityMutator{}.MutateExpr(e)

	assert.Same(t, e, got)
}

// renameMutator replaces every Variable named from with a Variable named to,
// otherwise behaving like identityMutator.
type renameMutator struct {
	from, to string
}

func (r renameMutator) MutateExpr(e Expr) Expr {
	if v, ok := e.(*Variable); ok && v.Name == r.from {
		return &Variable{Name: r.to, T: v.T}
	}
	return MutateChildren(e, r)
}
func (r renameMutator) MutateStmt(s Stmt) Stmt { return MutateStmtChildren(s, r) }

func TestMutateChildrenRebuildsOnlyChangedAncestors(t *testing.T) {
	x := NewVariable("x", Int32)
	y := NewVariable("y", Int32)
	leftUnchanged := LT(y, NewIntImm(1))
	rightChanged := GT(x, NewIntImm(2))
	e := And(leftUnchanged, rightChanged)

	got := renameMutator{from: "x", to: "z"}.MutateExpr(e)

	rebuilt, ok := got.(*BoolOp)
	if !assert.True(t, ok) {
		return
	}
	assert.Same(t, leftUnchanged, rebuilt.A)
	assert.NotSame(t, rightChanged, rebuilt.B)
}

// countingMutator recurses back through its owning cache (set after
// construction, since the cache needs the mutator to build) and counts how
// many times a particular node pointer is actually handed to MutateExpr.
type countingMutator struct {
	cache  *IRCacheMutator
	target Expr
	calls  int
}

func (c *countingMutator) MutateExpr(e Expr) Expr {
	if e == c.target {
		c.calls++
	}
	return MutateChildren(e, c.cache)
}
func (c *countingMutator) MutateStmt(s Stmt) Stmt {
	return MutateStmtChildren(s, c.cache)
}

func TestIRCacheMutatorVisitsSharedNodeOnce(t *testing.T) {
	shared := NewVariable("x", Int32)
	e := Add(shared, shared)

	counting := &countingMutator{target: shared}
	cache := NewIRCacheMutator(counting)
	counting.cache = cache

	cache.MutateExpr(e)

	assert.Equal(t, 1, counting.calls)
}
