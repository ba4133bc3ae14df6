package acornima

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkVisitsEveryIdentifier(t *testing.T) {
	prog, err := ParseScript([]byte("function f(a, b) { return a + b; }"), DefaultOptions())
	require.NoError(t, err)

	var names []string
	Walk(prog, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			names = append(names, id.Name)
		}
		return true
	})
	assert.Equal(t, []string{"f", "a", "b", "a", "b"}, names)
}

func TestWalkSkipsSubtreeWhenVisitorReturnsFalse(t *testing.T) {
	prog, err := ParseScript([]byte("a(b(c))"), DefaultOptions())
	require.NoError(t, err)

	var visited []string
	Walk(prog, func(n Node) bool {
		switch x := n.(type) {
		case *Identifier:
			visited = append(visited, x.Name)
		case *CallExpression:
			if id, ok := x.Callee.(*Identifier); ok && id.Name == "b" {
				return false
			}
		}
		return true
	})
	assert.Equal(t, []string{"a"}, visited, "descending into the call b(c), its callee and arguments, must be skipped")
}

func TestWalkHandlesNilOptionalFields(t *testing.T) {
	prog, err := ParseScript([]byte("if (a) { b(); }"), DefaultOptions())
	require.NoError(t, err)

	ifStmt := prog.Body[0].(*IfStatement)
	require.Nil(t, ifStmt.Alternate)

	assert.NotPanics(t, func() {
		Walk(prog, func(Node) bool { return true })
	})
}

func TestNodeBasePositions(t *testing.T) {
	prog, err := ParseScript([]byte("x"), DefaultOptions())
	require.NoError(t, err)
	expr := prog.Body[0].(*ExpressionStatement)
	assert.Equal(t, Range{Start: 0, End: 1}, expr.Pos())
	assert.Equal(t, 1, expr.Location().Start.Line)
}

func TestProgramAndFunctionBodyDirectives(t *testing.T) {
	prog, err := ParseScript([]byte(`"use strict"; "custom directive"; f();`), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"use strict", "custom directive"}, prog.Directives)
	assert.True(t, prog.Strict)

	prog, err = ParseScript([]byte(`function f() { "only directive"; return 1; }`), DefaultOptions())
	require.NoError(t, err)
	fn := prog.Body[0].(*FunctionDeclaration)
	assert.Equal(t, []string{"only directive"}, fn.Body.Directives)
}

func TestProgramSourceTypeTag(t *testing.T) {
	prog, err := ParseScript([]byte("1;"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, SourceTypeScript, prog.SourceType)

	mod, err := ParseModule([]byte("export const x = 1;"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, SourceTypeModule, mod.SourceType)
	assert.True(t, mod.Strict, "modules are implicitly strict")
}
