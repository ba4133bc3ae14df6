package acornima

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertTokens(t *testing.T, src string, types ...TokenType) {
	l := NewLexer(NewSource([]byte(src)), DefaultOptions())
	i := 0
	for {
		tok := l.Next()
		if tok.Type == EOFToken {
			assert.Equal(t, len(types), i, "token count mismatch for %q", src)
			break
		}
		assert.False(t, i >= len(types), "more tokens than expected for %q", src)
		if i < len(types) {
			assert.Equal(t, types[i], tok.Type, "token %d mismatch for %q", i, src)
		}
		i++
	}
}

func TestLexPunctuators(t *testing.T) {
	assertTokens(t, "{ } ( ) [ ] . ... ; , ? : => #",
		OpenBraceToken, CloseBraceToken, OpenParenToken, CloseParenToken,
		OpenBracketToken, CloseBracketToken, DotToken, EllipsisToken,
		SemicolonToken, CommaToken, QuestionToken, ColonToken, ArrowToken, HashToken)
}

func TestLexOptionalChainAndNullish(t *testing.T) {
	assertTokens(t, "a?.b", IdentifierToken, OptionalChainToken, IdentifierToken)
	assertTokens(t, "a ?? b", IdentifierToken, NullishToken, IdentifierToken)
	assertTokens(t, "a ??= b", IdentifierToken, NullishAssignToken, IdentifierToken)
	// `?.` followed by a digit is Question + the numeric literal `.3`, since
	// `a?.3:b` is a ternary, not optional chaining.
	assertTokens(t, "a?.3:b", IdentifierToken, QuestionToken, NumericToken, ColonToken, IdentifierToken)
}

func TestLexLogicalAssignment(t *testing.T) {
	assertTokens(t, "a &&= b", IdentifierToken, AndEqToken, IdentifierToken)
	assertTokens(t, "a ||= b", IdentifierToken, OrEqToken, IdentifierToken)
}

func TestLexExponentOperator(t *testing.T) {
	assertTokens(t, "a ** b **= c", IdentifierToken, ExpToken, IdentifierToken, ExpEqToken, IdentifierToken)
}

func TestLexNumericLiterals(t *testing.T) {
	assertTokens(t, "0 5.2 .04 0x1F 0o17 0b101 1_000_000 10n", NumericToken, NumericToken,
		NumericToken, NumericToken, NumericToken, NumericToken, NumericToken, BigIntToken)
}

func TestLexStringLiteral(t *testing.T) {
	l := NewLexer(NewSource([]byte(`"hello\nworld"`)), DefaultOptions())
	tok := l.Next()
	assert.Equal(t, StringToken, tok.Type)
	assert.Nil(t, l.Err())
}

func TestLexUnterminatedString(t *testing.T) {
	l := NewLexer(NewSource([]byte(`"oops`)), DefaultOptions())
	l.Next()
	assert.NotNil(t, l.Err())
	assert.Equal(t, ErrUnterminatedString, l.Err().Code)
}

func TestLexTemplateLiteralParts(t *testing.T) {
	l := NewLexer(NewSource([]byte("`a${b}c`")), DefaultOptions())
	head := l.Next()
	assert.Equal(t, TemplateHeadToken, head.Type)
	assert.Equal(t, "a", string(head.Value))
	ident := l.Next()
	assert.Equal(t, IdentifierToken, ident.Type)
	closeBrace := l.NextTemplatePart()
	assert.Equal(t, TemplateTailToken, closeBrace.Type)
	assert.Equal(t, "c", string(closeBrace.Value))
}

func TestLexPrivateIdentifier(t *testing.T) {
	assertTokens(t, "this.#x", ThisToken, DotToken, PrivateIdentifierToken)
}

func TestLexKeywordsVsIdentifiers(t *testing.T) {
	assertTokens(t, "class Foo extends Bar", ClassToken, IdentifierToken, ExtendsToken, IdentifierToken)
	// `let` and `yield` are never emitted as keyword tokens by the lexer;
	// the parser reclassifies them contextually (spec.md §4.2).
	assertTokens(t, "let yield", IdentifierToken, IdentifierToken)
}

func TestLexDivisionVsRegExp(t *testing.T) {
	l := NewLexer(NewSource([]byte("a / b")), DefaultOptions())
	idA := l.Next()
	assert.Equal(t, IdentifierToken, idA.Type)
	div := l.Next()
	assert.Equal(t, DivToken, div.Type, "lexer alone always treats / as division")
}

func TestLexRegExpRescan(t *testing.T) {
	src := []byte("/ab+c/gi")
	l := NewLexer(NewSource(src), DefaultOptions())
	tok := l.NextRegExp(0)
	assert.Equal(t, RegExpToken, tok.Type)
	assert.Equal(t, "/ab+c/gi", string(tok.Value))
}

func TestLexCommentsSkippedAndCollected(t *testing.T) {
	var comments []Comment
	opts := DefaultOptions()
	opts.Comments = &comments
	l := NewLexer(NewSource([]byte("/* block */ a // line\nb")), opts)
	tok := l.Next()
	assert.Equal(t, IdentifierToken, tok.Type)
	assert.Equal(t, "a", string(tok.Value))
	tok = l.Next()
	assert.Equal(t, IdentifierToken, tok.Type)
	assert.True(t, tok.PrecededByLineTerminator)
	assert.Len(t, comments, 2)
	assert.True(t, comments[0].Block)
	assert.False(t, comments[1].Block)
}

func TestLexAutomaticSemicolonFlag(t *testing.T) {
	l := NewLexer(NewSource([]byte("a\nb")), DefaultOptions())
	first := l.Next()
	assert.False(t, first.PrecededByLineTerminator)
	second := l.Next()
	assert.True(t, second.PrecededByLineTerminator)
}
