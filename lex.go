package acornima


// Lexer is the Tokenizer component (spec.md §2.1, §4.1): a byte-buffer
// scanner producing Tokens on demand. It does not try to disambiguate
// `/` (division vs regex) or template continuations on its own — the
// parser, which knows its own grammatical position, calls NextRegExp or
// NextTemplatePart instead of Next at the points where that knowledge is
// required, the same re-scan split tdewolff/parse/v2/js's Lexer uses
// between Next and NextRegExp/NextTemplateToken.
type Lexer struct {
	src  *Source
	opts Options
	err  *Error
}

// NewLexer wraps src for scanning under opts.
func NewLexer(src *Source, opts Options) *Lexer {
	return &Lexer{src: src, opts: opts}
}

// Err returns the first fatal scanning error encountered, if any.
func (l *Lexer) Err() *Error { return l.err }

func (l *Lexer) fail(code ErrorCode, format string, args ...interface{}) {
	if l.err == nil {
		l.err = NewError(l.src.Bytes(), l.src.Pos(), code, format, args...)
	}
}

// Next scans and returns the next token, skipping whitespace and comments
// first. On `/` or `/=` it always produces a division operator; callers
// that expect a regex in this grammatical position must call NextRegExp
// instead once they observe a DivToken/DivEqToken they didn't want.
func (l *Lexer) Next() Token {
	precededByNL := l.skipWhitespaceAndComments()
	start := l.src.Pos()
	startLoc := l.src.Loc()

	tok := l.scanOne()
	tok.Range = Range{Start: start, End: l.src.Pos()}
	tok.Loc = SourceLocation{Start: startLoc, End: l.src.Loc()}
	tok.PrecededByLineTerminator = precededByNL
	return tok
}

func (l *Lexer) scanOne() Token {
	if l.src.Pos() >= l.src.Len() {
		return Token{Type: EOFToken}
	}
	c := l.src.Peek(0)
	switch {
	case c == '"' || c == '\'':
		return l.scanString(c)
	case c == '`':
		return l.scanTemplate(true)
	case c >= '0' && c <= '9':
		return l.scanNumber()
	case c == '.' && l.src.Peek(1) >= '0' && l.src.Peek(1) <= '9':
		return l.scanNumber()
	case c == '#':
		return l.scanPrivateIdentifier()
	case isASCIIIDStart(c):
		return l.scanIdentifierOrKeyword()
	case c >= 0x80:
		return l.scanUnicodeLeadToken()
	default:
		return l.scanPunctuator()
	}
}

func isASCIIIDStart(c byte) bool {
	return c == '$' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// scanUnicodeLeadToken handles identifiers whose first character is a
// non-ASCII ID_Start codepoint.
func (l *Lexer) scanUnicodeLeadToken() Token {
	r, n := l.src.PeekRune(0)
	if IsIDStart(r) {
		return l.scanIdentifierOrKeyword()
	}
	if IsLineTerminator(r) {
		l.src.MoveRune(r, n)
		return Token{Type: ErrorToken}
	}
	l.fail(ErrUnexpectedToken, "Unexpected character %q", r)
	l.src.MoveRune(r, n)
	return Token{Type: ErrorToken}
}

////////////////////////////////////////////////////////////////
// Whitespace and comments

// skipWhitespaceAndComments advances past whitespace, line terminators,
// and comments, collecting the latter into l.opts.Comments when set, and
// reports whether a line terminator was crossed (the ASI side-channel
// flag, spec.md §4.1/§4.6).
func (l *Lexer) skipWhitespaceAndComments() bool {
	sawNL := false
	for {
		if l.src.Pos() >= l.src.Len() {
			return sawNL
		}
		c := l.src.Peek(0)
		switch c {
		case ' ', '\t', '\v', '\f':
			l.src.Move(1)
			continue
		case '\n':
			sawNL = true
			l.src.Move(1)
			continue
		case '\r':
			sawNL = true
			l.src.Move(1)
			if l.src.Peek(0) == '\n' {
				l.src.Move(1)
			}
			continue
		case '/':
			if l.src.Peek(1) == '/' {
				l.scanLineComment()
				continue
			}
			if l.src.Peek(1) == '*' {
				if l.scanBlockComment() {
					sawNL = true
				}
				continue
			}
			return sawNL
		}
		r, n := l.src.PeekRune(0)
		if n > 1 {
			if IsLineTerminator(r) {
				sawNL = true
				l.src.MoveRune(r, n)
				continue
			}
			if IsWhitespace(r) {
				l.src.MoveRune(r, n)
				continue
			}
		}
		return sawNL
	}
}

func (l *Lexer) scanLineComment() {
	start := l.src.Pos()
	startLoc := l.src.Loc()
	l.src.Move(2)
	for l.src.Pos() < l.src.Len() {
		r, n := l.src.PeekRune(0)
		if IsLineTerminator(r) {
			break
		}
		l.src.MoveRune(r, n)
	}
	l.recordComment(false, start, startLoc)
}

// scanBlockComment consumes a /* ... */ comment and reports whether it
// spanned a line terminator (relevant to ASI, spec.md §4.6).
func (l *Lexer) scanBlockComment() bool {
	start := l.src.Pos()
	startLoc := l.src.Loc()
	l.src.Move(2)
	hadNL := false
	for l.src.Pos() < l.src.Len() {
		if l.src.Peek(0) == '*' && l.src.Peek(1) == '/' {
			l.src.Move(2)
			l.recordComment(true, start, startLoc)
			return hadNL
		}
		r, n := l.src.PeekRune(0)
		if IsLineTerminator(r) {
			hadNL = true
		}
		l.src.MoveRune(r, n)
	}
	l.fail(ErrUnterminatedComment, "Unterminated comment")
	l.recordComment(true, start, startLoc)
	return hadNL
}

func (l *Lexer) recordComment(block bool, start int, startLoc Loc) {
	if l.opts.Comments == nil {
		return
	}
	text := string(l.src.Slice(start, l.src.Pos()))
	*l.opts.Comments = append(*l.opts.Comments, Comment{
		Block: block,
		Text:  text,
		Range: Range{Start: start, End: l.src.Pos()},
		Loc:   SourceLocation{Start: startLoc, End: l.src.Loc()},
	})
}

////////////////////////////////////////////////////////////////
// Identifiers, keywords, private names

func (l *Lexer) scanIdentifierOrKeyword() Token {
	start := l.src.Pos()
	containsEscape := false
	for {
		if l.src.Peek(0) == '\\' && l.src.Peek(1) == 'u' {
			containsEscape = true
			l.src.Move(2)
			l.scanUnicodeEscapeDigits()
			continue
		}
		r, n := l.src.PeekRune(0)
		if n == 0 || !IsIDContinue(r) {
			break
		}
		l.src.MoveRune(r, n)
	}
	raw := l.src.Slice(start, l.src.Pos())
	name := decodeIdentifierEscapes(raw)
	tt := IdentifierToken
	if !containsEscape {
		tt = keywordTokenType(name)
	}
	return Token{Type: tt, Value: []byte(name), ContainsEscape: containsEscape}
}

func (l *Lexer) scanPrivateIdentifier() Token {
	l.src.Move(1) // '#'
	if !isASCIIIDStart(l.src.Peek(0)) {
		r, n := l.src.PeekRune(0)
		if n == 0 || !IsIDStart(r) {
			l.fail(ErrInvalidPrivateName, "Unexpected token")
			return Token{Type: HashToken}
		}
	}
	start := l.src.Pos()
	for {
		r, n := l.src.PeekRune(0)
		if n == 0 || !IsIDContinue(r) {
			break
		}
		l.src.MoveRune(r, n)
	}
	name := l.src.Slice(start, l.src.Pos())
	return Token{Type: PrivateIdentifierToken, Value: name}
}

// scanUnicodeEscapeDigits consumes the hex digits of a \uXXXX or
// \u{XXXXX} escape, having already consumed "\u".
func (l *Lexer) scanUnicodeEscapeDigits() {
	if l.src.Peek(0) == '{' {
		l.src.Move(1)
		for l.src.Peek(0) != '}' && l.src.Pos() < l.src.Len() {
			l.src.Move(1)
		}
		if l.src.Peek(0) == '}' {
			l.src.Move(1)
		}
		return
	}
	for i := 0; i < 4; i++ {
		l.src.Move(1)
	}
}

// decodeIdentifierEscapes rewrites \uXXXX / \u{X...} escapes embedded in
// an identifier's raw source text into their literal characters, per
// spec.md §4.2's note that identifiers may contain Unicode escapes.
func decodeIdentifierEscapes(raw []byte) string {
	if indexByte(raw, '\\') < 0 {
		return string(raw)
	}
	out := make([]rune, 0, len(raw))
	for i := 0; i < len(raw); {
		if raw[i] == '\\' && i+1 < len(raw) && raw[i+1] == 'u' {
			i += 2
			if i < len(raw) && raw[i] == '{' {
				j := i + 1
				for j < len(raw) && raw[j] != '}' {
					j++
				}
				out = append(out, rune(hexValue(raw[i+1:j])))
				i = j + 1
				continue
			}
			if i+4 <= len(raw) {
				out = append(out, rune(hexValue(raw[i:i+4])))
				i += 4
				continue
			}
		}
		r, n := runeFromUTF8(raw[i:])
		out = append(out, r)
		i += n
	}
	return string(out)
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

func hexValue(b []byte) int {
	v := 0
	for _, c := range b {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= int(c - '0')
		case c >= 'a' && c <= 'f':
			v |= int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= int(c-'A') + 10
		}
	}
	return v
}

////////////////////////////////////////////////////////////////
// Numeric literals

func (l *Lexer) scanNumber() Token {
	start := l.src.Pos()
	isBigInt := false

	if l.src.Peek(0) == '0' && (l.src.Peek(1) == 'x' || l.src.Peek(1) == 'X') {
		l.src.Move(2)
		l.scanDigitsWithSeparators(isHexDigit)
	} else if l.src.Peek(0) == '0' && (l.src.Peek(1) == 'o' || l.src.Peek(1) == 'O') {
		l.src.Move(2)
		l.scanDigitsWithSeparators(isOctalDigit)
	} else if l.src.Peek(0) == '0' && (l.src.Peek(1) == 'b' || l.src.Peek(1) == 'B') {
		l.src.Move(2)
		l.scanDigitsWithSeparators(isBinaryDigit)
	} else if l.src.Peek(0) == '0' && isOctalDigit(l.src.Peek(1)) {
		// legacy octal literal: 0-prefixed, no separators, no BigInt suffix.
		l.src.Move(1)
		for isOctalDigit(l.src.Peek(0)) {
			l.src.Move(1)
		}
	} else {
		l.scanDigitsWithSeparators(isDecDigit)
		if l.src.Peek(0) == '.' {
			l.src.Move(1)
			l.scanDigitsWithSeparators(isDecDigit)
		}
		if l.src.Peek(0) == 'e' || l.src.Peek(0) == 'E' {
			l.src.Move(1)
			if l.src.Peek(0) == '+' || l.src.Peek(0) == '-' {
				l.src.Move(1)
			}
			if isDecDigit(l.src.Peek(0)) {
				l.scanDigitsWithSeparators(isDecDigit)
			} else {
				l.fail(ErrInvalidNumericLiteral, "Invalid or unexpected token")
			}
		}
	}

	if l.src.Peek(0) == 'n' {
		isBigInt = true
		l.src.Move(1)
	}

	raw := l.src.Slice(start, l.src.Pos())
	tt := NumericToken
	if isBigInt {
		tt = BigIntToken
	}
	if isIDContinueByte(l.src.Peek(0)) {
		l.fail(ErrInvalidNumericLiteral, "Identifier directly after number")
	}
	return Token{Type: tt, Value: raw}
}

func isIDContinueByte(c byte) bool {
	if c == 0 {
		return false
	}
	return isASCIIIDStart(c) || (c >= '0' && c <= '9')
}

func (l *Lexer) scanDigitsWithSeparators(is func(byte) bool) {
	for is(l.src.Peek(0)) || l.src.Peek(0) == '_' {
		l.src.Move(1)
	}
}

func isDecDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool {
	return isDecDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
func isOctalDigit(c byte) bool  { return c >= '0' && c <= '7' }
func isBinaryDigit(c byte) bool { return c == '0' || c == '1' }

////////////////////////////////////////////////////////////////
// String literals

func (l *Lexer) scanString(quote byte) Token {
	start := l.src.Pos()
	l.src.Move(1)
	for {
		if l.src.Pos() >= l.src.Len() {
			l.fail(ErrUnterminatedString, "Unterminated string constant")
			break
		}
		c := l.src.Peek(0)
		if c == quote {
			l.src.Move(1)
			break
		}
		if c == '\\' {
			l.scanEscapeSequence()
			continue
		}
		r, n := l.src.PeekRune(0)
		if r == '\n' || r == '\r' {
			l.fail(ErrUnterminatedString, "Unterminated string constant")
			break
		}
		l.src.MoveRune(r, n)
	}
	raw := l.src.Slice(start, l.src.Pos())
	return Token{Type: StringToken, Value: raw}
}

// scanEscapeSequence consumes one backslash escape (already positioned on
// the backslash), including line-continuation escapes.
func (l *Lexer) scanEscapeSequence() {
	l.src.Move(1) // backslash
	if l.src.Pos() >= l.src.Len() {
		return
	}
	c := l.src.Peek(0)
	switch c {
	case 'x':
		l.src.Move(1)
		for i := 0; i < 2 && isHexDigit(l.src.Peek(0)); i++ {
			l.src.Move(1)
		}
	case 'u':
		l.src.Move(1)
		l.scanUnicodeEscapeDigits()
	case '\r':
		l.src.Move(1)
		if l.src.Peek(0) == '\n' {
			l.src.Move(1)
		}
	case '\n':
		l.src.Move(1)
	default:
		if c >= 0x80 {
			r, n := l.src.PeekRune(0)
			l.src.MoveRune(r, n)
			return
		}
		l.src.Move(1)
	}
}

////////////////////////////////////////////////////////////////
// Template literals

// scanTemplate scans a template chunk. head is true when called at the
// opening backtick; the parser calls NextTemplatePart (head=false) to
// rescan a `}` as the start of a TemplateMiddle/TemplateTail chunk.
func (l *Lexer) scanTemplate(head bool) Token {
	start := l.src.Pos()
	l.src.Move(1) // consumes '`' or '}'
	contentStart := l.src.Pos()
	cookedValid := true
	for {
		if l.src.Pos() >= l.src.Len() {
			l.fail(ErrUnterminatedTemplate, "Unterminated template")
			break
		}
		c := l.src.Peek(0)
		if c == '`' {
			raw := l.src.Slice(contentStart, l.src.Pos())
			l.src.Move(1)
			tt := NoSubstitutionTemplateToken
			if !head {
				tt = TemplateTailToken
			}
			return l.makeTemplateToken(tt, start, raw, cookedValid)
		}
		if c == '$' && l.src.Peek(1) == '{' {
			raw := l.src.Slice(contentStart, l.src.Pos())
			l.src.Move(2)
			tt := TemplateHeadToken
			if !head {
				tt = TemplateMiddleToken
			}
			return l.makeTemplateToken(tt, start, raw, cookedValid)
		}
		if c == '\\' {
			if !l.scanTemplateEscape() {
				cookedValid = false
			}
			continue
		}
		// CR and CRLF normalize to \n in the cooked value; the parser
		// applies that normalization when it cooks the token's Value,
		// so no special-casing is needed here beyond advancing past it.
		r, n := l.src.PeekRune(0)
		l.src.MoveRune(r, n)
	}
	raw := l.src.Slice(contentStart, l.src.Pos())
	tt := NoSubstitutionTemplateToken
	if !head {
		tt = TemplateTailToken
	}
	return l.makeTemplateToken(tt, start, raw, cookedValid)
}

func (l *Lexer) makeTemplateToken(tt TokenType, start int, raw []byte, cookedValid bool) Token {
	tok := Token{Type: tt, Value: raw}
	if !cookedValid {
		tok.ContainsEscape = true // reused here to flag "cooked value invalid" for the parser
	}
	return tok
}

// scanTemplateEscape consumes one escape inside a template literal and
// reports whether it decoded to a valid cooked value (invalid octal-style
// escapes are permitted in raw text but poison Cooked in tagged templates,
// spec.md §4.1).
func (l *Lexer) scanTemplateEscape() bool {
	l.src.Move(1)
	c := l.src.Peek(0)
	switch {
	case c == 'x':
		l.src.Move(1)
		valid := true
		for i := 0; i < 2; i++ {
			if !isHexDigit(l.src.Peek(0)) {
				valid = false
				break
			}
			l.src.Move(1)
		}
		return valid
	case c == 'u':
		l.src.Move(1)
		l.scanUnicodeEscapeDigits()
		return true
	case c >= '0' && c <= '9':
		// legacy octal-style escapes are always invalid-cooked in templates.
		l.src.Move(1)
		return false
	case c == '\r':
		l.src.Move(1)
		if l.src.Peek(0) == '\n' {
			l.src.Move(1)
		}
		return true
	case c == '\n':
		l.src.Move(1)
		return true
	default:
		if c >= 0x80 {
			r, n := l.src.PeekRune(0)
			l.src.MoveRune(r, n)
		} else {
			l.src.Move(1)
		}
		return true
	}
}

// NextTemplatePart re-scans starting at a `}` that closes a template
// substitution, producing TemplateMiddleToken or TemplateTailToken. The
// parser calls this instead of Next immediately after parsing a `${...}`
// substitution expression.
func (l *Lexer) NextTemplatePart() Token {
	start := l.src.Pos()
	startLoc := l.src.Loc()
	tok := l.scanTemplate(false)
	tok.Range = Range{Start: start, End: l.src.Pos()}
	tok.Loc = SourceLocation{Start: startLoc, End: l.src.Loc()}
	return tok
}

////////////////////////////////////////////////////////////////
// Regular expression literals

// NextRegExp re-scans from tokenStart (the offset of a token previously
// returned as DivToken/DivEqToken by Next) as a regex literal. The parser
// calls this once grammatical context establishes that a regex, not a
// division operator, was expected at tokenStart.
func (l *Lexer) NextRegExp(tokenStart int) Token {
	l.src.pos = tokenStart
	startLoc := l.src.Loc()
	l.src.Move(1) // '/'
	inClass := false
	for {
		if l.src.Pos() >= l.src.Len() {
			l.fail(ErrUnterminatedRegExp, "Unterminated regular expression")
			break
		}
		c := l.src.Peek(0)
		if c == '\\' {
			l.src.Move(1)
			if l.src.Pos() < l.src.Len() {
				r, n := l.src.PeekRune(0)
				l.src.MoveRune(r, n)
			}
			continue
		}
		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			l.src.Move(1)
			break
		} else {
			r, n := l.src.PeekRune(0)
			if IsLineTerminator(r) {
				l.fail(ErrUnterminatedRegExp, "Unterminated regular expression")
				break
			}
			l.src.MoveRune(r, n)
			continue
		}
		l.src.Move(1)
	}
	for {
		r, n := l.src.PeekRune(0)
		if n == 0 || !IsIDContinue(r) {
			break
		}
		l.src.MoveRune(r, n)
	}
	raw := l.src.Slice(tokenStart, l.src.Pos())
	return Token{
		Type:  RegExpToken,
		Value: raw,
		Loc:   SourceLocation{Start: startLoc, End: l.src.Loc()},
		Range: Range{Start: tokenStart, End: l.src.Pos()},
	}
}

////////////////////////////////////////////////////////////////
// Punctuators and operators

func (l *Lexer) scanPunctuator() Token {
	c := l.src.Peek(0)
	c1 := l.src.Peek(1)
	c2 := l.src.Peek(2)
	c3 := l.src.Peek(3)

	switch c {
	case '{':
		l.src.Move(1)
		return Token{Type: OpenBraceToken}
	case '}':
		l.src.Move(1)
		return Token{Type: CloseBraceToken}
	case '(':
		l.src.Move(1)
		return Token{Type: OpenParenToken}
	case ')':
		l.src.Move(1)
		return Token{Type: CloseParenToken}
	case '[':
		l.src.Move(1)
		return Token{Type: OpenBracketToken}
	case ']':
		l.src.Move(1)
		return Token{Type: CloseBracketToken}
	case ';':
		l.src.Move(1)
		return Token{Type: SemicolonToken}
	case ',':
		l.src.Move(1)
		return Token{Type: CommaToken}
	case ':':
		l.src.Move(1)
		return Token{Type: ColonToken}
	case '~':
		l.src.Move(1)
		return Token{Type: BitNotToken}
	case '.':
		if c1 == '.' && c2 == '.' {
			l.src.Move(3)
			return Token{Type: EllipsisToken}
		}
		l.src.Move(1)
		return Token{Type: DotToken}
	case '?':
		if c1 == '.' && !(c2 >= '0' && c2 <= '9') {
			l.src.Move(2)
			return Token{Type: OptionalChainToken}
		}
		if c1 == '?' {
			if c2 == '=' {
				l.src.Move(3)
				return Token{Type: NullishAssignToken}
			}
			l.src.Move(2)
			return Token{Type: NullishToken}
		}
		l.src.Move(1)
		return Token{Type: QuestionToken}
	case '=':
		if c1 == '=' && c2 == '=' {
			l.src.Move(3)
			return Token{Type: EqEqEqToken}
		}
		if c1 == '=' {
			l.src.Move(2)
			return Token{Type: EqEqToken}
		}
		if c1 == '>' {
			l.src.Move(2)
			return Token{Type: ArrowToken}
		}
		l.src.Move(1)
		return Token{Type: EqToken}
	case '!':
		if c1 == '=' && c2 == '=' {
			l.src.Move(3)
			return Token{Type: NotEqEqToken}
		}
		if c1 == '=' {
			l.src.Move(2)
			return Token{Type: NotEqToken}
		}
		l.src.Move(1)
		return Token{Type: NotToken}
	case '<':
		if c1 == '<' && c2 == '=' {
			l.src.Move(3)
			return Token{Type: LtLtEqToken}
		}
		if c1 == '<' {
			l.src.Move(2)
			return Token{Type: LtLtToken}
		}
		if c1 == '=' {
			l.src.Move(2)
			return Token{Type: LtEqToken}
		}
		l.src.Move(1)
		return Token{Type: LtToken}
	case '>':
		if c1 == '>' && c2 == '>' && c3 == '=' {
			l.src.Move(4)
			return Token{Type: GtGtGtEqToken}
		}
		if c1 == '>' && c2 == '>' {
			l.src.Move(3)
			return Token{Type: GtGtGtToken}
		}
		if c1 == '>' && c2 == '=' {
			l.src.Move(3)
			return Token{Type: GtGtEqToken}
		}
		if c1 == '>' {
			l.src.Move(2)
			return Token{Type: GtGtToken}
		}
		if c1 == '=' {
			l.src.Move(2)
			return Token{Type: GtEqToken}
		}
		l.src.Move(1)
		return Token{Type: GtToken}
	case '+':
		if c1 == '+' {
			l.src.Move(2)
			return Token{Type: IncrToken}
		}
		if c1 == '=' {
			l.src.Move(2)
			return Token{Type: AddEqToken}
		}
		l.src.Move(1)
		return Token{Type: AddToken}
	case '-':
		if c1 == '-' {
			l.src.Move(2)
			return Token{Type: DecrToken}
		}
		if c1 == '=' {
			l.src.Move(2)
			return Token{Type: SubEqToken}
		}
		l.src.Move(1)
		return Token{Type: SubToken}
	case '*':
		if c1 == '*' && c2 == '=' {
			l.src.Move(3)
			return Token{Type: ExpEqToken}
		}
		if c1 == '*' {
			l.src.Move(2)
			return Token{Type: ExpToken}
		}
		if c1 == '=' {
			l.src.Move(2)
			return Token{Type: MulEqToken}
		}
		l.src.Move(1)
		return Token{Type: MulToken}
	case '/':
		if c1 == '=' {
			l.src.Move(2)
			return Token{Type: DivEqToken}
		}
		l.src.Move(1)
		return Token{Type: DivToken}
	case '%':
		if c1 == '=' {
			l.src.Move(2)
			return Token{Type: ModEqToken}
		}
		l.src.Move(1)
		return Token{Type: ModToken}
	case '&':
		if c1 == '&' && c2 == '=' {
			l.src.Move(3)
			return Token{Type: AndEqToken}
		}
		if c1 == '&' {
			l.src.Move(2)
			return Token{Type: AndToken}
		}
		if c1 == '=' {
			l.src.Move(2)
			return Token{Type: BitAndEqToken}
		}
		l.src.Move(1)
		return Token{Type: BitAndToken}
	case '|':
		if c1 == '|' && c2 == '=' {
			l.src.Move(3)
			return Token{Type: OrEqToken}
		}
		if c1 == '|' {
			l.src.Move(2)
			return Token{Type: OrToken}
		}
		if c1 == '=' {
			l.src.Move(2)
			return Token{Type: BitOrEqToken}
		}
		l.src.Move(1)
		return Token{Type: BitOrToken}
	case '^':
		if c1 == '=' {
			l.src.Move(2)
			return Token{Type: BitXorEqToken}
		}
		l.src.Move(1)
		return Token{Type: BitXorToken}
	}

	r, n := l.src.PeekRune(0)
	l.fail(ErrUnexpectedToken, "Unexpected character %q", r)
	if n == 0 {
		n = 1
	}
	l.src.Move(n)
	return Token{Type: ErrorToken}
}
