package acornima

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ignoreNodePositions drops Range/Loc from the comparison so fixture
// expectations only encode shape, not offsets.
var ignoreNodePositions = cmp.FilterPath(func(p cmp.Path) bool {
	switch p.Last().String() {
	case ".Range", ".Loc", ".NodeBase":
		return true
	}
	return false
}, cmp.Ignore())

func TestParseOptionalChaining(t *testing.T) {
	prog, err := ParseScript([]byte("a?.b?.[c]?.()"), DefaultOptions())
	require.NoError(t, err)
	stmt := prog.Body[0].(*ExpressionStatement)
	chain, ok := stmt.Expression.(*ChainExpression)
	require.True(t, ok, "a fully optional chain must be wrapped in ChainExpression")
	call, ok := chain.Expression.(*CallExpression)
	require.True(t, ok)
	assert.True(t, call.Optional)
}

func TestParseNullishCoalescing(t *testing.T) {
	prog, err := ParseScript([]byte("a ?? b"), DefaultOptions())
	require.NoError(t, err)
	stmt := prog.Body[0].(*ExpressionStatement)
	logical, ok := stmt.Expression.(*LogicalExpression)
	require.True(t, ok)
	assert.Equal(t, "??", logical.Operator)
}

func TestParseNullishCannotMixWithAndOr(t *testing.T) {
	_, err := ParseScript([]byte("a ?? b || c"), DefaultOptions())
	require.Error(t, err)
}

func TestParseLogicalAssignment(t *testing.T) {
	for _, src := range []string{"a &&= b", "a ||= b", "a ??= b"} {
		_, err := ParseScript([]byte(src), DefaultOptions())
		assert.NoError(t, err, src)
	}
}

func TestParseNumericSeparatorsAndBigInt(t *testing.T) {
	prog, err := ParseScript([]byte("const x = 1_000_000n;"), DefaultOptions())
	require.NoError(t, err)
	decl := prog.Body[0].(*VariableDeclaration)
	lit := decl.Declarations[0].Init.(*Literal)
	assert.Equal(t, LiteralBigInt, lit.Kind)
}

func TestParseClassWithPrivateFieldsAndStaticBlock(t *testing.T) {
	src := `
class Counter {
	#count = 0;
	static #instances = 0;
	static {
		Counter.#instances = 0;
	}
	increment() {
		return ++this.#count;
	}
}`
	prog, err := ParseScript([]byte(src), DefaultOptions())
	require.NoError(t, err)
	cls := prog.Body[0].(*ClassDeclaration)

	var kinds []string
	for _, m := range cls.Body.Body {
		switch v := m.(type) {
		case *PropertyDefinition:
			kinds = append(kinds, "property:"+privateOrPublicName(v.Key))
		case *MethodDefinition:
			kinds = append(kinds, "method:"+privateOrPublicName(v.Key))
		case *StaticBlock:
			kinds = append(kinds, "staticblock")
		}
	}
	assert.Equal(t, []string{"property:count", "property:instances", "staticblock", "method:increment"}, kinds)
}

func privateOrPublicName(key Expr) string {
	switch v := key.(type) {
	case *PrivateIdentifier:
		return v.Name
	case *Identifier:
		return v.Name
	}
	return "?"
}

func TestParseDestructuringWithDefaultsAndRest(t *testing.T) {
	prog, err := ParseScript([]byte("const { a = 1, ...rest } = obj;"), DefaultOptions())
	require.NoError(t, err)
	decl := prog.Body[0].(*VariableDeclaration)
	pat := decl.Declarations[0].ID.(*ObjectPattern)
	require.Len(t, pat.Properties, 1)
	require.NotNil(t, pat.Rest)

	assign, ok := pat.Properties[0].Value.(*AssignmentPattern)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Left.(*Identifier).Name)
}

func TestParseArrayDestructuringWithHoles(t *testing.T) {
	prog, err := ParseScript([]byte("const [, a, , b] = arr;"), DefaultOptions())
	require.NoError(t, err)
	decl := prog.Body[0].(*VariableDeclaration)
	pat := decl.Declarations[0].ID.(*ArrayPattern)
	require.Len(t, pat.Elements, 4)
	assert.Nil(t, pat.Elements[0])
	assert.Equal(t, "a", pat.Elements[1].(*Identifier).Name)
}

func TestParseArrowFunctionsAndCoverGrammar(t *testing.T) {
	cases := []string{
		"const f = a => a;",
		"const f = (a, b) => a + b;",
		"const f = (a, ...rest) => rest;",
		"const f = ({ a, b }) => a + b;",
		"const f = async a => a;",
		"const f = async (a) => { return a; };",
	}
	for _, src := range cases {
		_, err := ParseScript([]byte(src), DefaultOptions())
		assert.NoError(t, err, src)
	}
}

func TestParseAsyncGeneratorAndAwait(t *testing.T) {
	src := `
async function* gen() {
	for await (const x of source) {
		yield x;
	}
}`
	prog, err := ParseScript([]byte(src), DefaultOptions())
	require.NoError(t, err)
	fn := prog.Body[0].(*FunctionDeclaration)
	assert.True(t, fn.Async)
	assert.True(t, fn.Generator)
	forOf := fn.Body.Body[0].(*ForOfStatement)
	assert.True(t, forOf.Await)
}

func TestParseTemplateLiteralAndTaggedTemplate(t *testing.T) {
	prog, err := ParseScript([]byte("tag`a${1 + 1}b`;"), DefaultOptions())
	require.NoError(t, err)
	stmt := prog.Body[0].(*ExpressionStatement)
	tagged, ok := stmt.Expression.(*TaggedTemplateExpression)
	require.True(t, ok)
	require.Len(t, tagged.Quasi.Quasis, 2)
	assert.Equal(t, "a", tagged.Quasi.Quasis[0].Cooked)
	assert.Equal(t, "b", tagged.Quasi.Quasis[1].Cooked)
}

func TestParseImportExportForms(t *testing.T) {
	src := `
import def, { named as local } from "mod";
import * as ns from "mod2";
export { local as renamed };
export default function foo() {}
export * from "mod3";
`
	prog, err := ParseModule([]byte(src), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, prog.Body, 5)

	imp := prog.Body[0].(*ImportDeclaration)
	require.Len(t, imp.Specifiers, 2)
	assert.Equal(t, ImportSpecifierDefault, imp.Specifiers[0].Kind)
	assert.Equal(t, ImportSpecifierNamed, imp.Specifiers[1].Kind)

	ns := prog.Body[1].(*ImportDeclaration)
	assert.Equal(t, ImportSpecifierNamespace, ns.Specifiers[0].Kind)

	_, ok := prog.Body[2].(*ExportNamedDeclaration)
	assert.True(t, ok)
	_, ok = prog.Body[3].(*ExportDefaultDeclaration)
	assert.True(t, ok)
	_, ok = prog.Body[4].(*ExportAllDeclaration)
	assert.True(t, ok)
}

func TestParseImportAttributes(t *testing.T) {
	_, err := ParseModule([]byte(`import data from "./data.json" with { type: "json" };`), DefaultOptions())
	assert.NoError(t, err)
}

func TestParseTopLevelAwait(t *testing.T) {
	_, err := ParseModule([]byte("const x = await fetchThing();"), DefaultOptions())
	assert.NoError(t, err)
}

func TestParseDynamicImportAndImportMeta(t *testing.T) {
	prog, err := ParseModule([]byte("import(url); const u = import.meta.url;"), DefaultOptions())
	require.NoError(t, err)
	first := prog.Body[0].(*ExpressionStatement)
	_, ok := first.Expression.(*ImportExpression)
	assert.True(t, ok)
}

func TestParseExactTreeWithGoCmp(t *testing.T) {
	prog, err := ParseExpression([]byte("1 + 2"), DefaultOptions())
	require.NoError(t, err)

	want := &BinaryExpression{
		Operator: "+",
		Left:     &Literal{Kind: LiteralNumber, Raw: "1", Value: float64(1)},
		Right:    &Literal{Kind: LiteralNumber, Raw: "2", Value: float64(2)},
	}
	if diff := cmp.Diff(want, prog, ignoreNodePositions); diff != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestParseUseStrictDirectiveDetection(t *testing.T) {
	prog, err := ParseScript([]byte(`"use strict"; with (x) {}`), DefaultOptions())
	require.Error(t, err)
	_ = prog
}

func TestParseDuplicateLexicalBindingIsError(t *testing.T) {
	_, err := ParseScript([]byte("let x; let x;"), DefaultOptions())
	require.Error(t, err)
}

func TestParseForInOfDeclarationInitializerIsError(t *testing.T) {
	cases := []string{
		"for (let x = 1 in o) {}",
		"for (const x = 1 of o) {}",
		"for (let x = 1 of o) {}",
	}
	for _, src := range cases {
		_, err := ParseScript([]byte(src), DefaultOptions())
		assert.Error(t, err, src)
	}

	// var-in-for-in is the one legacy sloppy-script exception.
	_, err := ParseScript([]byte("for (var x = 1 in o) {}"), DefaultOptions())
	assert.NoError(t, err)

	// ...but not in strict mode, and not for for-of at all.
	_, err = ParseScript([]byte(`"use strict"; for (var x = 1 in o) {}`), DefaultOptions())
	assert.Error(t, err)
	_, err = ParseScript([]byte("for (var x = 1 of o) {}"), DefaultOptions())
	assert.Error(t, err)
}

func TestParseCheckPrivateFieldsRejectsUndeclaredReference(t *testing.T) {
	opts := DefaultOptions()
	opts.CheckPrivateFields = true
	_, err := ParseScript([]byte("class C { #x; foo() { return this.#y; } }"), opts)
	require.Error(t, err)

	// off by default: the same source parses cleanly without the option.
	_, err = ParseScript([]byte("class C { #x; foo() { return this.#y; } }"), DefaultOptions())
	assert.NoError(t, err)
}

func TestParseCheckPrivateFieldsAllowsDeclaredReference(t *testing.T) {
	opts := DefaultOptions()
	opts.CheckPrivateFields = true
	_, err := ParseScript([]byte("class C { #x; foo() { return this.#x; } }"), opts)
	assert.NoError(t, err)
}

func TestParseCheckPrivateFieldsResolvesThroughEnclosingClass(t *testing.T) {
	opts := DefaultOptions()
	opts.CheckPrivateFields = true
	src := `
class Outer {
	#x;
	method() {
		class Inner {
			useOuter(o) { return o.#x; }
		}
		return Inner;
	}
}`
	_, err := ParseScript([]byte(src), opts)
	assert.NoError(t, err)
}

func TestParseDuplicateParameterNameIsError(t *testing.T) {
	assert.NoError(t, parseErrOnly(t, "function f(a, b) {}"))
	assert.NoError(t, parseErrOnly(t, "function f(a, a) {}"))
	assert.Error(t, parseErrOnly(t, `"use strict"; function f(a, a) {}`))
	assert.Error(t, parseErrOnly(t, "const f = (a, a) => a;"))
	assert.Error(t, parseErrOnly(t, "function* g(a, a) {}"))
	assert.Error(t, parseErrOnly(t, "async function f(a, a) {}"))
	assert.Error(t, parseErrOnly(t, "function f(a, [a]) {}"))
}

func parseErrOnly(t *testing.T, src string) error {
	t.Helper()
	_, err := ParseScript([]byte(src), DefaultOptions())
	return err
}

func TestParseNewTargetOutsideFunctionIsError(t *testing.T) {
	_, err := ParseScript([]byte("new.target;"), DefaultOptions())
	require.Error(t, err)
	_, err = ParseScript([]byte("function f() { return new.target; }"), DefaultOptions())
	assert.NoError(t, err)
}

func TestParseYieldAwaitAsIdentifierInOwnContextIsError(t *testing.T) {
	_, err := ParseScript([]byte("function* g() { let yield = 1; }"), DefaultOptions())
	assert.Error(t, err)
	_, err = ParseScript([]byte("async function f() { let await = 1; }"), DefaultOptions())
	assert.Error(t, err)
	// yield/await remain ordinary identifiers outside their own context.
	_, err = ParseScript([]byte("let yield = 1;"), DefaultOptions())
	assert.NoError(t, err)
}

func TestParseYieldExpressionInGenerator(t *testing.T) {
	prog, err := ParseScript([]byte("function* g() { yield 1; }"), DefaultOptions())
	require.NoError(t, err)
	fn := prog.Body[0].(*FunctionDeclaration)
	exprStmt := fn.Body.Body[0].(*ExpressionStatement)
	_, ok := exprStmt.Expression.(*YieldExpression)
	assert.True(t, ok)
}

func TestParseDuplicateProtoInObjectLiteralIsError(t *testing.T) {
	_, err := ParseScript([]byte("const o = { __proto__: a, __proto__: b };"), DefaultOptions())
	require.Error(t, err)
	_, err = ParseScript([]byte(`const o = { __proto__: a, "__proto__": b };`), DefaultOptions())
	require.Error(t, err)

	// computed, method, and shorthand forms are exempt from the restriction.
	_, err = ParseScript([]byte("const o = { ['__proto__']: a, __proto__: b };"), DefaultOptions())
	assert.NoError(t, err)
	_, err = ParseScript([]byte("const o = { __proto__() {}, __proto__: b };"), DefaultOptions())
	assert.NoError(t, err)
	_, err = ParseScript([]byte("const __proto__ = 1; const o = { __proto__, __proto__: b };"), DefaultOptions())
	assert.NoError(t, err)
}

func TestParseInvalidRegExpFlagsIsError(t *testing.T) {
	_, err := ParseScript([]byte("/abc/gimsuy;"), DefaultOptions())
	assert.NoError(t, err)
	_, err = ParseScript([]byte("/abc/gg;"), DefaultOptions())
	assert.Error(t, err)
	_, err = ParseScript([]byte("/abc/z;"), DefaultOptions())
	assert.Error(t, err)
	_, err = ParseScript([]byte("/abc/uv;"), DefaultOptions())
	assert.Error(t, err)
}

func TestParseLegacyOctalInStrictIsError(t *testing.T) {
	_, err := ParseScript([]byte("0755;"), DefaultOptions())
	assert.NoError(t, err)
	_, err = ParseScript([]byte(`"use strict"; 0755;`), DefaultOptions())
	assert.Error(t, err)
	_, err = ParseScript([]byte(`"use strict"; 089;`), DefaultOptions())
	assert.Error(t, err)
	_, err = ParseScript([]byte(`"use strict"; 0;`), DefaultOptions())
	assert.NoError(t, err)
	_, err = ParseScript([]byte(`"use strict"; 0x1F;`), DefaultOptions())
	assert.NoError(t, err)
}

func TestParseStrictModeEvalArgumentsAssignmentIsError(t *testing.T) {
	cases := []string{
		`"use strict"; eval = 1;`,
		`"use strict"; arguments += 1;`,
		`"use strict"; eval++;`,
		`"use strict"; ({ eval } = x);`,
	}
	for _, src := range cases {
		_, err := ParseScript([]byte(src), DefaultOptions())
		assert.Error(t, err, src)
	}
	// sloppy mode still allows it.
	_, err := ParseScript([]byte("eval = 1;"), DefaultOptions())
	assert.NoError(t, err)
}

func TestParseTolerantModeAccumulatesErrors(t *testing.T) {
	opts := DefaultOptions()
	opts.Tolerant = true
	prog, err := ParseScript([]byte("let x; let x; let y;"), opts)
	require.NotNil(t, prog, "tolerant mode must still return a usable AST")
	errs, ok := err.(ErrorList)
	require.True(t, ok)
	assert.Len(t, errs, 1)
}

func TestFixtures(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("testdata", "*.js"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	for _, path := range matches {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			require.NoError(t, err)
			opts := DefaultOptions()
			if filepath.Ext(path) == ".js" && filepath.Base(path)[0:6] == "module" {
				_, err = ParseModule(src, opts)
			} else {
				_, err = ParseScript(src, opts)
			}
			assert.NoError(t, err, "fixture %s must parse cleanly", path)
		})
	}
}
