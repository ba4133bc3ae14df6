package acornima

import "strconv"

// TokenType identifies the lexical class of a Token. The bit-tagged ranges
// mirror the dispatch groups used by tdewolff/parse/v2/js's lexer
// (IsPunctuator/IsOperator/IsIdentifier helpers switch on the high bits
// rather than maintaining a second classification table).
type TokenType uint32

const (
	ErrorToken TokenType = iota
	EOFToken
	CommentToken
	IdentifierToken
	PrivateIdentifierToken
	NumericToken
	BigIntToken
	StringToken
	RegExpToken
	TemplateHeadToken
	TemplateMiddleToken
	TemplateTailToken
	NoSubstitutionTemplateToken
)

const (
	PunctuatorToken TokenType = 0x1000 + iota
	OpenBraceToken
	CloseBraceToken
	OpenParenToken
	CloseParenToken
	OpenBracketToken
	CloseBracketToken
	DotToken
	EllipsisToken
	SemicolonToken
	CommaToken
	QuestionToken
	OptionalChainToken // ?.
	NullishToken       // ??
	NullishAssignToken // ??=
	ColonToken
	ArrowToken // =>
	HashToken
)

const (
	OperatorToken TokenType = 0x2000 + iota
	EqToken
	EqEqToken
	EqEqEqToken
	NotToken
	NotEqToken
	NotEqEqToken
	LtToken
	LtEqToken
	LtLtToken
	LtLtEqToken
	GtToken
	GtEqToken
	GtGtToken
	GtGtEqToken
	GtGtGtToken
	GtGtGtEqToken
	AddToken
	AddEqToken
	IncrToken
	SubToken
	SubEqToken
	DecrToken
	MulToken
	MulEqToken
	ExpToken
	ExpEqToken
	DivToken
	DivEqToken
	ModToken
	ModEqToken
	BitAndToken
	BitOrToken
	BitXorToken
	BitNotToken
	BitAndEqToken
	BitOrEqToken
	BitXorEqToken
	AndToken
	OrToken
	AndEqToken // &&=
	OrEqToken  // ||=
)

// IsPunctuator reports whether tt is one of the fixed structural punctuators.
func IsPunctuator(tt TokenType) bool { return tt&0x1000 != 0 }

// IsOperator reports whether tt is a unary/binary/assignment operator.
func IsOperator(tt TokenType) bool { return tt&0x2000 != 0 }

// IsKeyword reports whether tt is a reserved-word token (0x4000 block).
func IsKeyword(tt TokenType) bool { return tt&0x4000 != 0 }

const (
	// keyword tokens, dispatched by the hash-classifier in hash.go.
	AwaitToken TokenType = 0x4000 + iota
	AsyncToken
	BreakToken
	CaseToken
	CatchToken
	ClassToken
	ConstToken
	ContinueToken
	DebuggerToken
	DefaultToken
	DeleteToken
	DoToken
	ElseToken
	EnumToken
	ExportToken
	ExtendsToken
	FalseToken
	FinallyToken
	ForToken
	FunctionToken
	IfToken
	ImportToken
	InToken
	InstanceofToken
	LetToken
	NewToken
	NullToken
	ReturnToken
	StaticToken
	SuperToken
	SwitchToken
	ThisToken
	ThrowToken
	TrueToken
	TryToken
	TypeofToken
	VarToken
	VoidToken
	WhileToken
	WithToken
	YieldToken
)

// contextual keywords: identifiers in most positions, reserved words in
// others. Never emitted directly by the lexer — the parser reinterprets
// IdentifierToken by comparing data against these names.
const (
	OfToken TokenType = 0x8000 + iota
	GetToken
	SetToken
	AsToken
	FromToken
	TargetToken
	MetaToken
)

var tokenNames = map[TokenType]string{
	ErrorToken: "<error>", EOFToken: "<eof>", CommentToken: "<comment>",
	IdentifierToken: "identifier", PrivateIdentifierToken: "private identifier",
	NumericToken: "number", BigIntToken: "bigint", StringToken: "string",
	RegExpToken: "regexp", TemplateHeadToken: "template head",
	TemplateMiddleToken: "template middle", TemplateTailToken: "template tail",
	NoSubstitutionTemplateToken: "template",

	OpenBraceToken: "{", CloseBraceToken: "}", OpenParenToken: "(", CloseParenToken: ")",
	OpenBracketToken: "[", CloseBracketToken: "]", DotToken: ".", EllipsisToken: "...",
	SemicolonToken: ";", CommaToken: ",", QuestionToken: "?", OptionalChainToken: "?.",
	NullishToken: "??", NullishAssignToken: "??=", ColonToken: ":", ArrowToken: "=>",
	HashToken: "#",

	EqToken: "=", EqEqToken: "==", EqEqEqToken: "===", NotToken: "!", NotEqToken: "!=",
	NotEqEqToken: "!==", LtToken: "<", LtEqToken: "<=", LtLtToken: "<<", LtLtEqToken: "<<=",
	GtToken: ">", GtEqToken: ">=", GtGtToken: ">>", GtGtEqToken: ">>=", GtGtGtToken: ">>>",
	GtGtGtEqToken: ">>>=", AddToken: "+", AddEqToken: "+=", IncrToken: "++", SubToken: "-",
	SubEqToken: "-=", DecrToken: "--", MulToken: "*", MulEqToken: "*=", ExpToken: "**",
	ExpEqToken: "**=", DivToken: "/", DivEqToken: "/=", ModToken: "%", ModEqToken: "%=",
	BitAndToken: "&", BitOrToken: "|", BitXorToken: "^", BitNotToken: "~",
	BitAndEqToken: "&=", BitOrEqToken: "|=", BitXorEqToken: "^=", AndToken: "&&",
	OrToken: "||", AndEqToken: "&&=", OrEqToken: "||=",

	AwaitToken: "await", AsyncToken: "async", BreakToken: "break", CaseToken: "case",
	CatchToken: "catch", ClassToken: "class", ConstToken: "const", ContinueToken: "continue",
	DebuggerToken: "debugger", DefaultToken: "default", DeleteToken: "delete", DoToken: "do",
	ElseToken: "else", EnumToken: "enum", ExportToken: "export", ExtendsToken: "extends",
	FalseToken: "false", FinallyToken: "finally", ForToken: "for", FunctionToken: "function",
	IfToken: "if", ImportToken: "import", InToken: "in", InstanceofToken: "instanceof",
	LetToken: "let", NewToken: "new", NullToken: "null", ReturnToken: "return",
	StaticToken: "static", SuperToken: "super", SwitchToken: "switch", ThisToken: "this",
	ThrowToken: "throw", TrueToken: "true", TryToken: "try", TypeofToken: "typeof",
	VarToken: "var", VoidToken: "void", WhileToken: "while", WithToken: "with",
	YieldToken: "yield",

	OfToken: "of", GetToken: "get", SetToken: "set", AsToken: "as", FromToken: "from",
	TargetToken: "target", MetaToken: "meta",
}

// String returns the textual representation used in diagnostics.
func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return "invalid(" + strconv.Itoa(int(tt)) + ")"
}

// Range is a half-open [Start, End) byte-offset span into the source buffer.
type Range struct {
	Start int
	End   int
}

// Loc is a 1-based line, 0-based column source position, per spec.md §6.
type Loc struct {
	Line   int
	Column int
}

// SourceLocation bundles the start/end positions of a node or token, the
// shape ESTree serializes as `loc: {start, end}`.
type SourceLocation struct {
	Start Loc
	End   Loc
}

// Token is a single lexical unit with its decoded value and side channel
// flags, per spec.md §3 (Token).
type Token struct {
	Type                     TokenType
	Range                    Range
	Loc                      SourceLocation
	Value                    []byte // raw/cooked payload; numeric literals keep their text form here too
	PrecededByLineTerminator bool
	ContainsEscape           bool
}
