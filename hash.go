package acornima

// keywords classifies the fixed ECMAScript reserved words. Dispatch is by
// map lookup keyed on the decoded identifier text, the same fallback path
// tdewolff/parse/v2/js's lexer takes in consumeIdentifierToken: "if
// keyword, ok := keywords[string(l.r.Lexeme())]; ok { return keyword }".
// The corpus's generated perfect-hash table (js/hash.go, built by
// github.com/tdewolff/hasher) buys throughput over this map for a fixed
// keyword set; we keep the map for auditability — see DESIGN.md.
var keywords = map[string]TokenType{
	"break": BreakToken, "case": CaseToken,
	"catch": CatchToken, "class": ClassToken, "const": ConstToken,
	"continue": ContinueToken, "debugger": DebuggerToken, "default": DefaultToken,
	"delete": DeleteToken, "do": DoToken, "else": ElseToken, "enum": EnumToken,
	"export": ExportToken, "extends": ExtendsToken, "false": FalseToken,
	"finally": FinallyToken, "for": ForToken, "function": FunctionToken,
	"if": IfToken, "import": ImportToken, "in": InToken, "instanceof": InstanceofToken,
	"new": NewToken, "null": NullToken, "return": ReturnToken, "super": SuperToken,
	"switch": SwitchToken, "this": ThisToken, "throw": ThrowToken, "true": TrueToken,
	"try": TryToken, "typeof": TypeofToken, "var": VarToken, "void": VoidToken,
	"while": WhileToken, "with": WithToken,
}

// strictReservedWords are identifiers that are only reserved in strict
// mode (spec.md §4.2: "strict-only").
var strictReservedWords = map[string]bool{
	"implements": true, "interface": true, "let": true, "package": true,
	"private": true, "protected": true, "public": true, "static": true,
	"yield": true,
}

// moduleOnlyReservedWords are reserved when sourceType is module even in
// sloppy-equivalent contexts (spec.md §4.2: "optional-only-in-module").
var moduleOnlyReservedWords = map[string]bool{
	"await": true,
}

// strictBindReservedNames may be referenced but never bound in strict mode
// (spec.md §4.2: "strict-bind").
var strictBindReservedNames = map[string]bool{
	"eval": true, "arguments": true,
}

// contextualKeywords are never produced as distinct token types by the
// lexer; the parser recognizes them by comparing IdentifierToken text.
var contextualKeywords = map[string]bool{
	"let": true, "static": true, "yield": true, "async": true, "await": true,
	"of": true, "get": true, "set": true, "as": true, "from": true,
	"target": true, "meta": true,
}

// keywordTokenType returns the fixed keyword token for name, or
// IdentifierToken if name is not a fixed (always-reserved) keyword.
// `let`, `yield`, and `await` are deliberately excluded: they stay
// IdentifierToken at the lexer layer and are reclassified contextually
// by the parser (spec.md §4.2), since their reservedness depends on
// strict mode, generator/async context, or module mode.
func keywordTokenType(name string) TokenType {
	if tt, ok := keywords[name]; ok {
		return tt
	}
	return IdentifierToken
}

// isReservedWord reports whether name is a syntax error as a BindingIdentifier
// in the given mode, per spec.md §4.2's classifier contract: a single
// function returning a category, callers interpreting it by context.
func isReservedWord(name string, strict, module bool) bool {
	if _, ok := keywords[name]; ok {
		return true
	}
	if strict && strictReservedWords[name] {
		return true
	}
	if module && moduleOnlyReservedWords[name] {
		return true
	}
	return false
}
