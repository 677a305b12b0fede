package halideir

import "fmt"

// This file is the context/scope manager of spec.md §4.4, grounded on
// original_source's Context.h/Context.cpp. The original assigns a context
// id to every (enclosing context, binding node) pair so that the same
// physical subtree can carry different bounds/simplifications depending on
// which Let/For/TargetVar it is reached through. The teacher's own scoping
// idiom — internal/parallel's worker-local state keyed by an integer id,
// pushed and popped around a unit of work — is the model for ContextManager
// below: an explicit push/pop stack rather than a recursive-descent
// implicit Go call-stack scope, because the simplifier and bounds pass need
// to look a context up again later (e.g. memoization keys) after the
// traversal that created it has returned.

// DefiningNode is the (possibly-nil) binder that introduced a context: a
// *Let, *LetStmt, *For, *TargetVar, or *StmtTargetVar. The root context has
// a nil DefiningNode.
type DefiningNode interface{}

// NodeKey uniquely identifies a point in the tree for caching purposes: the
// context it was reached under, plus the node itself. Two structurally
// identical subtrees reached through different bindings get different
// NodeKeys, matching spec.md §4.4's "a node may need different bounds under
// different enclosing contexts."
type NodeKey struct {
	Context int
	Node    Expr
}

// StmtNodeKey is NodeKey for statements.
type StmtNodeKey struct {
	Context int
	Node    Stmt
}

type contextFrame struct {
	id           int
	parent       int // -1 for the root
	defining     DefiningNode
	name         string // bound name, if DefiningNode introduces one
	users        int    // reference count: raised by Enter and AddUser, lowered by RemoveUser
}

// ContextManager hands out and tracks context ids. The zero value is not
// usable; use NewContextManager.
type ContextManager struct {
	frames []contextFrame
	stack  []int // the current context path, stack[len-1] is "current"
	byKey  map[contextKey]int
}

type contextKey struct {
	parent   int
	defining DefiningNode
}

// NewContextManager returns a manager with only the root context (id 0,
// parent -1, no defining node).
func NewContextManager() *ContextManager {
	cm := &ContextManager{
		byKey: map[contextKey]int{},
	}
	cm.frames = append(cm.frames, contextFrame{id: 0, parent: -1})
	cm.stack = []int{0}
	return cm
}

// CurrentContext returns the id of the context on top of the stack.
func (cm *ContextManager) CurrentContext() int {
	return cm.stack[len(cm.stack)-1]
}

// Parent returns ctx's enclosing context id, or -1 if ctx is the root.
func (cm *ContextManager) Parent(ctx int) int {
	return cm.frames[ctx].parent
}

// Enter pushes a new context nested under the current one, defined by
// node (typically the binder whose Body/Update the caller is about to
// recurse into) and binding name. Contexts are interned: entering the same
// (parent, node) pair twice returns the same id, per spec.md §4.4's
// "context identity depends on the binder, not on when it was visited."
func (cm *ContextManager) Enter(node DefiningNode, name string) int {
	parent := cm.CurrentContext()
	key := contextKey{parent: parent, defining: node}
	if id, ok := cm.byKey[key]; ok {
		cm.frames[id].users++
		cm.stack = append(cm.stack, id)
		return id
	}
	id := len(cm.frames)
	cm.frames = append(cm.frames, contextFrame{id: id, parent: parent, defining: node, name: name, users: 1})
	cm.byKey[key] = id
	cm.stack = append(cm.stack, id)
	return id
}

// Leave pops the current context. It panics if called without a matching
// Enter (spec.md §7: scope-discipline violation is a programmer error).
func (cm *ContextManager) Leave() {
	if len(cm.stack) <= 1 {
		panic("halideir: ContextManager.Leave called without a matching Enter")
	}
	cm.stack = cm.stack[:len(cm.stack)-1]
}

// Push records a NodeKey for e under the current context and returns it.
// This is the "push(Expr)" operation of spec.md §4.4.
func (cm *ContextManager) Push(e Expr) NodeKey {
	return NodeKey{Context: cm.CurrentContext(), Node: e}
}

// PushStmt is Push for statements.
func (cm *ContextManager) PushStmt(s Stmt) StmtNodeKey {
	return StmtNodeKey{Context: cm.CurrentContext(), Node: s}
}

// Go re-enters a previously recorded context by id without requiring the
// caller to walk back through Enter/Leave pairs — used when a cached
// bounds/simplify result needs to be interpreted in the context it was
// computed under, not the context the current traversal happens to be in.
func (cm *ContextManager) Go(ctx int) (restore func()) {
	saved := append([]int(nil), cm.stack...)
	cm.stack = []int{0}
	path := cm.pathTo(ctx)
	cm.stack = append(cm.stack, path...)
	return func() { cm.stack = saved }
}

func (cm *ContextManager) pathTo(ctx int) []int {
	if ctx == 0 {
		return nil
	}
	var path []int
	for c := ctx; c != 0; c = cm.frames[c].parent {
		path = append([]int{c}, path...)
	}
	return path
}

// FindVariable walks from ctx outward looking for a context whose defining
// node bound name. It returns the context id that defines name and true,
// or (0, false) if name is unbound all the way to the root — matching
// spec.md §4.4's "find_variable walks enclosing contexts looking for a
// binder of a given name."
func (cm *ContextManager) FindVariable(ctx int, name string) (int, bool) {
	for c := ctx; c != -1; c = cm.frames[c].parent {
		if cm.frames[c].name == name {
			return c, true
		}
	}
	return 0, false
}

// IsTarget reports whether ctx was entered for a TargetVar/StmtTargetVar
// binding of name — used by the solver to recognise when recursion has
// reached the variable it is trying to isolate.
func (cm *ContextManager) IsTarget(ctx int, name string) bool {
	if cm.frames[ctx].name != name {
		return false
	}
	switch cm.frames[ctx].defining.(type) {
	case *TargetVar, *StmtTargetVar:
		return true
	default:
		return false
	}
}

// AddUser increments ctx's reference count, e.g. when a second NodeKey is
// created pointing into an already-live context.
func (cm *ContextManager) AddUser(ctx int) {
	cm.frames[ctx].users++
}

// RemoveUser decrements ctx's reference count. It panics on underflow,
// which indicates a push/pop mismatch somewhere upstream.
func (cm *ContextManager) RemoveUser(ctx int) {
	if cm.frames[ctx].users <= 0 {
		panic(fmt.Sprintf("halideir: RemoveUser underflow on context %d", ctx))
	}
	cm.frames[ctx].users--
}

// Clear drops every context with zero users except the root, and clears
// the interning table entries that pointed at them — the
// "ContextManager.clear()" operation from original_source, used between
// independent compilations sharing one manager so memoization caches from
// an earlier pipeline don't leak context ids into a new one. This package's
// CompilerContext instead creates a fresh ContextManager per compilation
// (see options.go), so Clear exists for callers that want to reuse one.
func (cm *ContextManager) Clear() {
	keep := map[int]bool{0: true}
	for id := len(cm.frames) - 1; id >= 1; id-- {
		if cm.frames[id].users > 0 {
			keep[id] = true
			keep[cm.frames[id].parent] = true
		}
	}
	for key, id := range cm.byKey {
		if !keep[id] {
			delete(cm.byKey, key)
		}
	}
}
