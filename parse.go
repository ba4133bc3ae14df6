package acornima

// Parser drives the Tokenizer and Scope/Declaration Tracker across a
// single source buffer, producing an AST, per spec.md §2 (Parser Core).
// The struct groups one mutable cursor (tok/prevEnd) with the ambient
// mode flags that gate context-sensitive grammar (strict, async,
// generator, in-function, in-loop, in-switch) — the same shape
// tdewolff/parse/v2/js's Parser uses for its own `in`-flags.
type Parser struct {
	src  *Source
	lex  *Lexer
	opts Options

	tok     Token
	prevEnd int

	tracker *Tracker
	errors  ErrorList

	strict bool

	inFunction  bool
	inGenerator bool
	inAsync     bool
	inLoop      bool
	inSwitch    bool
	inClassBody bool
	inStaticBlock bool

	// inParams is true while parsing a parameter list. No check reads it:
	// parameter names are checked against the inGenerator/inAsync flags
	// already in effect, like any other binding.
	inParams bool

	moduleMode bool

	// privateScopes is a stack of per-class-body private-name
	// declaration/reference sets, populated only when
	// opts.CheckPrivateFields is set (see stmt.go's privateScope).
	privateScopes []*privateScope

	// noIn suppresses `in` as a binary operator while parsing a for-head's
	// init expression, the grammar's [~In] parameter (spec.md §4.3).
	noIn bool

	potentialArrowAt int // start offset of a parenthesized expr that might be rewritten to an arrow's params
}

// NewParser constructs a Parser over src under opts. It does not scan
// the first token; call any Parse* entry point to begin.
func NewParser(src []byte, opts Options) *Parser {
	s := NewSource(src)
	p := &Parser{
		src:        s,
		lex:        NewLexer(s, opts),
		opts:       opts,
		moduleMode: opts.SourceType == ModuleSource,
	}
	p.tracker = NewTracker(src, p.moduleMode)
	if p.moduleMode {
		p.strict = true
	}
	// Top-level `await` is valid at module scope (ES2022) and, when the
	// caller opts in, at script scope too; both are modeled as the
	// top-level body behaving like an async function for await purposes.
	if p.moduleMode || opts.AllowAwaitOutsideFunction {
		p.inAsync = true
	}
	return p
}

////////////////////////////////////////////////////////////////
// Token cursor

func (p *Parser) next() {
	p.prevEnd = p.tok.Range.End
	p.tok = p.lex.Next()
	if err := p.lex.Err(); err != nil {
		p.errors.Add(err)
		p.lex.err = nil
	}
}

func (p *Parser) at(tt TokenType) bool { return p.tok.Type == tt }

// atContextual reports whether the current token is an IdentifierToken
// whose text matches name (spec.md §4.2's contextual-keyword dispatch).
func (p *Parser) atContextual(name string) bool {
	return p.tok.Type == IdentifierToken && string(p.tok.Value) == name
}

func (p *Parser) consume(tt TokenType) bool {
	if p.at(tt) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) consumeContextual(name string) bool {
	if p.atContextual(name) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(tt TokenType) Range {
	r := p.tok.Range
	if !p.at(tt) {
		p.fail(ErrUnexpectedToken, "Unexpected token, expected %s but got %s", tt, p.tok.Type)
		return r
	}
	p.next()
	return r
}

func (p *Parser) fail(code ErrorCode, format string, args ...interface{}) *Error {
	err := NewError(p.src.Bytes(), p.tok.Range.Start, code, format, args...)
	if p.opts.Tolerant {
		p.errors.Add(err)
		return err
	}
	panic(parseAbort{err})
}

func (p *Parser) failAt(offset int, code ErrorCode, format string, args ...interface{}) *Error {
	err := NewError(p.src.Bytes(), offset, code, format, args...)
	if p.opts.Tolerant {
		p.errors.Add(err)
		return err
	}
	panic(parseAbort{err})
}

// parseAbort unwinds a non-tolerant parse on the first fatal error;
// recovered at the top-level entry points (spec.md §7: "Tolerant mode:
// ... default mode stops at first error").
type parseAbort struct{ err *Error }

// canInsertSemicolon implements the three ASI conditions of spec.md §4.6:
// a line terminator (or comment spanning one) preceded the current
// token, the current token is '}', or the current token is EOF.
func (p *Parser) canInsertSemicolon() bool {
	return p.tok.PrecededByLineTerminator || p.at(CloseBraceToken) || p.at(EOFToken)
}

// semicolon consumes a statement terminator per ASI: an explicit ';', or
// nothing if one of the three insertion conditions holds, else an error.
func (p *Parser) semicolon() {
	if p.consume(SemicolonToken) {
		return
	}
	if p.canInsertSemicolon() {
		return
	}
	p.fail(ErrMissingSemicolon, "Unexpected token, expected \";\"")
}

// loc returns the Loc for a byte offset via position.go's locAt, which
// walks the buffer from its start on every call.
func (p *Parser) loc(offset int) Loc { return locAt(p.src.Bytes(), offset) }

func (p *Parser) startNode() NodeBase {
	return NodeBase{Range: Range{Start: p.tok.Range.Start}, Loc: SourceLocation{Start: p.tok.Loc.Start}}
}

func (p *Parser) finishNode(base NodeBase) NodeBase {
	base.Range.End = p.prevEnd
	base.Loc.End = p.loc(p.prevEnd)
	return base
}

////////////////////////////////////////////////////////////////
// Entry points (spec.md §8: "External Interfaces")

// ParseScript parses src as a classic (non-module) script.
func ParseScript(src []byte, opts Options) (*Program, error) {
	opts.SourceType = ScriptSource
	return parseProgram(src, opts)
}

// ParseModule parses src as an ECMAScript module.
func ParseModule(src []byte, opts Options) (*Program, error) {
	opts.SourceType = ModuleSource
	return parseProgram(src, opts)
}

func parseProgram(src []byte, opts Options) (prog *Program, err error) {
	p := NewParser(src, opts)
	defer func() {
		if r := recover(); r != nil {
			abort, ok := r.(parseAbort)
			if !ok {
				panic(r)
			}
			err = abort.err
		}
	}()
	prog = p.parseTopLevel()
	if len(p.errors) > 0 {
		if prog != nil {
			return prog, p.errors
		}
		return nil, p.errors
	}
	return prog, nil
}

// ParseExpression parses src as a single standalone expression, per
// spec.md §8's `parseExpression(src, options?)` entrypoint.
func ParseExpression(src []byte, opts Options) (expr Expr, err error) {
	p := NewParser(src, opts)
	defer func() {
		if r := recover(); r != nil {
			abort, ok := r.(parseAbort)
			if !ok {
				panic(r)
			}
			err = abort.err
		}
	}()
	p.next()
	expr = p.parseExpression()
	if !p.at(EOFToken) {
		p.fail(ErrUnexpectedToken, "Unexpected token")
	}
	if len(p.errors) > 0 {
		return expr, p.errors
	}
	return expr, nil
}

// Tokenize scans src fully and returns its token stream without parsing,
// per spec.md §8's `tokenize(src, options?)` convenience entrypoint.
func Tokenize(src []byte, opts Options) ([]Token, error) {
	s := NewSource(src)
	lex := NewLexer(s, opts)
	var toks []Token
	for {
		tok := lex.Next()
		if err := lex.Err(); err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Type == EOFToken {
			break
		}
	}
	return toks, nil
}

func (p *Parser) parseTopLevel() *Program {
	base := NodeBase{Range: Range{Start: 0}, Loc: SourceLocation{Start: Loc{Line: 1, Column: 0}}}
	prog := &Program{NodeBase: base, Filename: p.opts.Filename}
	if p.moduleMode {
		prog.SourceType = SourceTypeModule
	} else {
		prog.SourceType = SourceTypeScript
	}

	if p.opts.AllowHashBang && len(p.src.Bytes()) >= 2 && p.src.Bytes()[0] == '#' && p.src.Bytes()[1] == '!' {
		for p.src.Pos() < p.src.Len() {
			r, n := p.src.PeekRune(0)
			if IsLineTerminator(r) {
				break
			}
			p.src.MoveRune(r, n)
		}
	}

	p.next()
	directives, strict := p.collectDirectivePrologue()
	prog.Directives = directives
	p.strict = p.strict || strict

	for !p.at(EOFToken) {
		stmt := p.parseStatementListItem(true)
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
	}
	prog.Strict = p.strict
	if p.opts.Comments != nil {
		prog.Comments = *p.opts.Comments
	}
	prog.Range.End = p.tok.Range.End
	prog.Loc.End = p.tok.Loc.End
	return prog
}

// collectDirectivePrologue peeks the directive prologue starting at the
// current token without consuming any tokens from the primary cursor,
// per spec.md §4.4's "Directive Prologue detection: strings before any
// other statement". It returns the raw text between the quotes (escape
// sequences not decoded) of every leading string-literal directive
// (SPEC_FULL.md §6's directive-extraction
// supplement) plus whether "use strict" appeared among them; callers
// use the latter to decide the initial strict flag before the grammar
// proper re-parses the same directives as ordinary ExpressionStatements
// (spec.md §4.3). It operates on a throwaway lexer clone over the same
// backing buffer rather than the primary cursor.
func (p *Parser) collectDirectivePrologue() ([]string, bool) {
	var directives []string
	strict := false
	scan := NewLexer(NewSource(p.src.Bytes()), Options{ECMAVersion: p.opts.ECMAVersion})
	scan.src.pos = p.tok.Range.Start
	for {
		tok := scan.Next()
		if tok.Type != StringToken {
			return directives, strict
		}
		raw := string(tok.Value)
		var inner string
		if len(raw) >= 2 {
			inner = raw[1 : len(raw)-1]
		}
		next := scan.Next()
		terminated := next.Type == SemicolonToken ||
			next.PrecededByLineTerminator || next.Type == CloseBraceToken || next.Type == EOFToken
		if !terminated {
			return directives, strict
		}
		directives = append(directives, inner)
		if inner == "use strict" {
			strict = true
		}
		if next.Type != SemicolonToken {
			return directives, strict
		}
	}
}
