package halideir

// Options is the process-wide configuration threaded through a single
// compilation (spec.md §5/§6): a small value-type config struct passed
// around explicitly rather than a package of global vars, covering the
// same on/off passes original_source exposes as command-line toggles.
type Options struct {
	// LiftLet is carried in the configuration but no pass reads it: this
	// package's simplifier never re-introduces a Let binding around a shared
	// subexpression, whatever its value. Off by default.
	LiftLet bool
	// SimplifyNestedClamp enables the nested-Replicate-clamp collapse rule
	// in simplify_clamp.go.
	SimplifyNestedClamp bool
}

// DefaultOptions returns the simplifier configuration used when a caller
// doesn't need anything unusual.
func DefaultOptions() Options {
	return Options{LiftLet: false, SimplifyNestedClamp: true}
}

// CompilerContext bundles one compilation's configuration, context
// manager, and simplifier instance so callers don't have to wire the three
// together by hand every time (spec.md §6's "a single compilation's worth
// of state"). It is not safe for concurrent use: each compilation (or
// each worker in a parallel pipeline) should construct its own.
type CompilerContext struct {
	Options  Options
	Contexts *ContextManager
	Simplify *Simplify
	Funcs    *FunctionArena
}

// NewCompilerContext wires a fresh ContextManager, Simplify instance, and
// FunctionArena together under opts.
func NewCompilerContext(opts Options) *CompilerContext {
	cm := NewContextManager()
	return &CompilerContext{
		Options:  opts,
		Contexts: cm,
		Simplify: NewSimplify(opts, cm),
		Funcs:    NewFunctionArena(),
	}
}
