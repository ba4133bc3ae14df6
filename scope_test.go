package acornima

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerVarHoistsPastBlock(t *testing.T) {
	tr := NewTracker([]byte("src"), false)
	tr.Push(ScopeBlock)
	err := tr.Declare("x", BindVar, 0)
	require.Nil(t, err)
	tr.Pop()
	assert.True(t, tr.Current().varNames["x"], "var declared in a nested block must hoist to the enclosing var scope")
}

func TestTrackerLexicalDoesNotCrossBlock(t *testing.T) {
	tr := NewTracker([]byte("src"), false)
	tr.Push(ScopeBlock)
	err := tr.Declare("x", BindLexical, 0)
	require.Nil(t, err)
	tr.Pop()
	assert.False(t, tr.Current().lexical["x"], "a block-scoped let must not leak to the enclosing scope")
}

func TestTrackerDuplicateLexicalIsError(t *testing.T) {
	tr := NewTracker([]byte("let x; let x;"), false)
	require.Nil(t, tr.Declare("x", BindLexical, 4))
	err := tr.Declare("x", BindLexical, 11)
	require.NotNil(t, err)
	assert.Equal(t, ErrDuplicateBinding, err.Code)
}

func TestTrackerVarVarIsNotADuplicate(t *testing.T) {
	tr := NewTracker([]byte("var x; var x;"), false)
	require.Nil(t, tr.Declare("x", BindVar, 4))
	assert.Nil(t, tr.Declare("x", BindVar, 11))
}

func TestTrackerVarCollidesWithInterveningLexical(t *testing.T) {
	tr := NewTracker([]byte("src"), false)
	tr.Push(ScopeBlock)
	require.Nil(t, tr.Declare("x", BindLexical, 0))
	err := tr.Declare("x", BindVar, 5)
	require.NotNil(t, err)
	assert.Equal(t, ErrDuplicateBinding, err.Code)
}

func TestTrackerSimpleCatchAllowsShadowingVar(t *testing.T) {
	tr := NewTracker([]byte("src"), false)
	tr.Push(ScopeCatch)
	err := tr.Declare("e", BindSimpleCatch, 0)
	require.Nil(t, err)
	// Annex B: `var e` inside the catch body does not conflict with the
	// simple catch parameter of the same name.
	err = tr.Declare("e", BindVar, 5)
	assert.Nil(t, err)
}

func TestTrackerLabelLookupStopsAtFunctionBoundary(t *testing.T) {
	tr := NewTracker([]byte("src"), false)
	tr.PushLabel("outer", false)
	tr.Push(ScopeFunction)
	_, ok := tr.HasLabel("outer")
	assert.False(t, ok, "labels must not be visible across a function boundary")
}

func TestTrackerLabelLookupWithinSameFunction(t *testing.T) {
	tr := NewTracker([]byte("src"), false)
	tr.PushLabel("outer", true)
	tr.Push(ScopeBlock)
	label, ok := tr.HasLabel("outer")
	require.True(t, ok)
	assert.True(t, label.IsLoop)
}

func TestIsReservedWord(t *testing.T) {
	assert.True(t, isReservedWord("class", false, false))
	assert.False(t, isReservedWord("let", false, false), "let is only reserved in strict mode")
	assert.True(t, isReservedWord("let", true, false))
	assert.False(t, isReservedWord("await", false, false))
	assert.True(t, isReservedWord("await", false, true), "await is reserved in module mode")
}
