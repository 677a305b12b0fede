package halideir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.False(t, opts.LiftLet)
	assert.True(t, opts.SimplifyNestedClamp)
}

func TestNewCompilerContextWiresCollaborators(t *testing.T) {
	cc := NewCompilerContext(DefaultOptions())
	assert.NotNil(t, cc.Contexts)
	assert.NotNil(t, cc.Simplify)
	assert.NotNil(t, cc.Funcs)
	assert.Equal(t, 0, cc.Contexts.CurrentContext())
}

func TestCompilerContextIsIndependentPerCompilation(t *testing.T) {
	a := NewCompilerContext(DefaultOptions())
	b := NewCompilerContext(DefaultOptions())
	assert.NotSame(t, a.Contexts, b.Contexts)
	assert.NotSame(t, a.Funcs, b.Funcs)
}
