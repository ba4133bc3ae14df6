package acornima

// Expression parsing: a precedence-climbing (Pratt-style) parser over the
// binary/logical operators, wrapped by assignment and conditional levels,
// matching spec.md §4.1's "Expression Parser: operator-precedence
// (Pratt/precedence-climbing) ... cover grammars for: parenthesized
// expression vs arrow parameter list; array/object literal vs pattern".

// precedence returns the binding power of a binary/logical operator
// token, or 0 if tt isn't one, per spec.md §4.1's precedence table
// (**  >  * / %  >  + -  >  shifts  >  relational  >  equality  >  bitwise
// AND > XOR > OR  >  &&  >  ||/??).
func precedence(tt TokenType) int {
	switch tt {
	case OrToken, NullishToken:
		return 1
	case AndToken:
		return 2
	case BitOrToken:
		return 3
	case BitXorToken:
		return 4
	case BitAndToken:
		return 5
	case EqEqToken, NotEqToken, EqEqEqToken, NotEqEqToken:
		return 6
	case LtToken, GtToken, LtEqToken, GtEqToken, InstanceofToken, InToken:
		return 7
	case LtLtToken, GtGtToken, GtGtGtToken:
		return 8
	case AddToken, SubToken:
		return 9
	case MulToken, DivToken, ModToken:
		return 10
	case ExpToken:
		return 11
	}
	return 0
}

func tokenOperatorText(tt TokenType) string { return tt.String() }

func (p *Parser) parseExpression() Expr {
	expr := p.parseAssign()
	if !p.at(CommaToken) {
		return expr
	}
	base := NodeBase{Range: Range{Start: expr.Pos().Start}, Loc: SourceLocation{Start: expr.Location().Start}}
	list := []Expr{expr}
	for p.consume(CommaToken) {
		list = append(list, p.parseAssign())
	}
	base = p.finishNode(base)
	return &SequenceExpression{NodeBase: base, Expressions: list}
}

////////////////////////////////////////////////////////////////
// Assignment

var assignOps = map[TokenType]string{
	EqToken: "=", AddEqToken: "+=", SubEqToken: "-=", MulEqToken: "*=",
	DivEqToken: "/=", ModEqToken: "%=", ExpEqToken: "**=",
	LtLtEqToken: "<<=", GtGtEqToken: ">>=", GtGtGtEqToken: ">>>=",
	BitAndEqToken: "&=", BitOrEqToken: "|=", BitXorEqToken: "^=",
	AndEqToken: "&&=", OrEqToken: "||=", NullishAssignToken: "??=",
}

func (p *Parser) parseAssign() Expr {
	if p.inGenerator && p.atContextual("yield") {
		return p.parseYield()
	}
	startTok := p.tok
	left := p.parseConditional()
	op, ok := assignOps[p.tok.Type]
	if !ok {
		return left
	}
	p.next()
	var target Node = left
	if op == "=" {
		target = p.exprToPattern(left, startTok.Range.Start)
	} else {
		p.checkSimpleAssignTarget(left)
	}
	right := p.parseAssign()
	base := NodeBase{Range: Range{Start: left.Pos().Start}, Loc: SourceLocation{Start: left.Location().Start}}
	base = p.finishNode(base)
	return &AssignmentExpression{NodeBase: base, Operator: op, Left: target, Right: right}
}

func (p *Parser) checkSimpleAssignTarget(e Expr) {
	switch v := e.(type) {
	case *Identifier:
		p.checkStrictEvalArguments(v.Name, v.Pos().Start)
		return
	case *MemberExpression:
		return
	}
	p.failAt(e.Pos().Start, ErrInvalidLHS, "Invalid left-hand side in assignment")
}

// checkStrictEvalArguments rejects `eval`/`arguments` as an assignment or
// update-expression target in strict mode (spec.md §4.3), the same
// restriction parseBindingIdentifier already applies to binding positions.
func (p *Parser) checkStrictEvalArguments(name string, offset int) {
	if p.strict && strictBindReservedNames[name] {
		p.failAt(offset, ErrReservedWord, "Assignment to '%s' is not allowed in strict mode", name)
	}
}

func (p *Parser) parseYield() Expr {
	start := p.startNode()
	p.next()
	delegate := p.consume(MulToken)
	var arg Expr
	if !p.tok.PrecededByLineTerminator && exprFollowSet(p.tok.Type) {
		arg = p.parseAssign()
	}
	base := p.finishNode(start)
	return &YieldExpression{NodeBase: base, Argument: arg, Delegate: delegate}
}

// checkContextualKeywordAsIdentifier rejects `yield`/`await` used as a
// plain identifier (binding or reference) inside the generator/async
// context that claims it as an operator keyword, per spec.md §7's
// early-error set — this holds even in sloppy mode, unlike the
// strict-only/module-only reservations isReservedWord already covers.
func (p *Parser) checkContextualKeywordAsIdentifier(name string, offset int) {
	if p.inGenerator && name == "yield" {
		p.failAt(offset, ErrIllegalAwaitOrYield, "'yield' is reserved as a keyword inside generator functions")
	}
	if p.inAsync && name == "await" {
		p.failAt(offset, ErrIllegalAwaitOrYield, "'await' is reserved as a keyword inside async functions")
	}
}

// exprFollowSet reports whether tt can begin an expression, used to decide
// whether a bare `yield` has an argument (spec.md §4.1's yield handling).
func exprFollowSet(tt TokenType) bool {
	switch tt {
	case SemicolonToken, CloseBraceToken, CloseParenToken, CloseBracketToken,
		CommaToken, ColonToken, EOFToken:
		return false
	}
	return true
}

////////////////////////////////////////////////////////////////
// Conditional

func (p *Parser) parseConditional() Expr {
	test := p.parseBinary(1)
	if !p.consume(QuestionToken) {
		return test
	}
	cons := p.parseAssign()
	p.expect(ColonToken)
	alt := p.parseAssign()
	base := NodeBase{Range: Range{Start: test.Pos().Start}, Loc: SourceLocation{Start: test.Location().Start}}
	base = p.finishNode(base)
	return &ConditionalExpression{NodeBase: base, Test: test, Consequent: cons, Alternate: alt}
}

////////////////////////////////////////////////////////////////
// Binary / logical (precedence climbing)

func (p *Parser) parseBinary(minPrec int) Expr {
	left := p.parseMaybeUnary()
	return p.parseBinaryRHS(minPrec, left)
}

func (p *Parser) parseBinaryRHS(minPrec int, left Expr) Expr {
	for {
		tt := p.tok.Type
		prec := precedence(tt)
		if prec < minPrec || prec == 0 {
			return left
		}
		if tt == InToken && p.noIn {
			return left
		}
		// ** is right-associative; every other binary operator is left-associative.
		nextMin := prec + 1
		if tt == ExpToken {
			nextMin = prec
			if _, isUnary := left.(*UnaryExpression); isUnary {
				p.failAt(left.Pos().Start, ErrUnparenthesizedUnaryExp,
					"Unary operator used immediately before exponentiation expression. Parenthesis must be used to disambiguate operator precedence")
			}
		}
		if tt == NullishToken {
			// the right operand of ?? stops before && and ||, so a following
			// && or || is seen (and rejected) below instead of absorbed.
			nextMin = precedence(AndToken) + 1
		}
		op := tokenOperatorText(tt)
		p.next()
		right := p.parseBinary(nextMin)
		base := NodeBase{Range: Range{Start: left.Pos().Start}, Loc: SourceLocation{Start: left.Location().Start}}
		base = p.finishNode(base)
		if tt == AndToken || tt == OrToken || tt == NullishToken {
			left = &LogicalExpression{NodeBase: base, Operator: op, Left: left, Right: right}
			if (tt == NullishToken && (p.at(AndToken) || p.at(OrToken))) || (tt != NullishToken && p.at(NullishToken)) {
				p.failAt(left.Pos().Start, ErrAmbiguousNullish, "Nullish coalescing operator cannot be mixed with '&&' or '||' without parentheses")
			}
		} else {
			left = &BinaryExpression{NodeBase: base, Operator: op, Left: left, Right: right}
		}
	}
}

////////////////////////////////////////////////////////////////
// Unary / update / await

var unaryOps = map[TokenType]string{
	AddToken: "+", SubToken: "-", NotToken: "!", BitNotToken: "~",
}
var unaryKeywordOps = map[TokenType]string{
	TypeofToken: "typeof", VoidToken: "void", DeleteToken: "delete",
}

func (p *Parser) parseMaybeUnary() Expr {
	if op, ok := unaryOps[p.tok.Type]; ok {
		return p.finishUnary(op)
	}
	if op, ok := unaryKeywordOps[p.tok.Type]; ok {
		return p.finishUnary(op)
	}
	if p.at(IncrToken) || p.at(DecrToken) {
		return p.parsePrefixUpdate()
	}
	if p.inAsync && p.atContextual("await") {
		start := p.startNode()
		p.next()
		arg := p.parseMaybeUnary()
		base := p.finishNode(start)
		return &AwaitExpression{NodeBase: base, Argument: arg}
	}
	expr := p.parseExprSubscripts()
	return p.parsePostfixUpdate(expr)
}

func (p *Parser) finishUnary(op string) Expr {
	start := p.startNode()
	p.next()
	arg := p.parseMaybeUnary()
	base := p.finishNode(start)
	return &UnaryExpression{NodeBase: base, Operator: op, Prefix: true, Argument: arg}
}

func (p *Parser) parsePrefixUpdate() Expr {
	start := p.startNode()
	op := tokenOperatorText(p.tok.Type)
	p.next()
	arg := p.parseMaybeUnary()
	p.checkSimpleAssignTarget(arg)
	base := p.finishNode(start)
	return &UpdateExpression{NodeBase: base, Operator: op, Prefix: true, Argument: arg}
}

func (p *Parser) parsePostfixUpdate(expr Expr) Expr {
	if (p.at(IncrToken) || p.at(DecrToken)) && !p.tok.PrecededByLineTerminator {
		p.checkSimpleAssignTarget(expr)
		op := tokenOperatorText(p.tok.Type)
		p.next()
		base := NodeBase{Range: Range{Start: expr.Pos().Start}, Loc: SourceLocation{Start: expr.Location().Start}}
		base = p.finishNode(base)
		return &UpdateExpression{NodeBase: base, Operator: op, Prefix: false, Argument: expr}
	}
	return expr
}

////////////////////////////////////////////////////////////////
// Member / call / optional chains / new

func (p *Parser) parseExprSubscripts() Expr {
	expr := p.parseExprAtom()
	return p.parseSubscriptsFrom(expr, false)
}

func (p *Parser) parseSubscriptsFrom(base Expr, sawOptional bool) Expr {
	for {
		switch {
		case p.consume(DotToken):
			prop := p.parsePropertyNameAfterDot()
			nb := p.nodeFrom(base)
			base = &MemberExpression{NodeBase: nb, Object: base, Property: prop, Computed: false}
		case p.consume(OpenBracketToken):
			prop := p.parseExpression()
			p.expect(CloseBracketToken)
			nb := p.nodeFrom(base)
			base = &MemberExpression{NodeBase: nb, Object: base, Property: prop, Computed: true}
		case p.consume(OptionalChainToken):
			sawOptional = true
			if p.at(OpenParenToken) {
				args := p.parseArguments()
				nb := p.nodeFrom(base)
				base = &CallExpression{NodeBase: nb, Callee: base, Arguments: args, Optional: true}
				continue
			}
			computed := p.consume(OpenBracketToken)
			var prop Expr
			if computed {
				prop = p.parseExpression()
				p.expect(CloseBracketToken)
			} else {
				prop = p.parsePropertyNameAfterDot()
			}
			nb := p.nodeFrom(base)
			base = &MemberExpression{NodeBase: nb, Object: base, Property: prop, Computed: computed, Optional: true}
		case p.at(OpenParenToken):
			args := p.parseArguments()
			nb := p.nodeFrom(base)
			base = &CallExpression{NodeBase: nb, Callee: base, Arguments: args}
		case p.at(NoSubstitutionTemplateToken) || p.at(TemplateHeadToken):
			quasi := p.parseTemplateLiteral()
			nb := p.nodeFrom(base)
			base = &TaggedTemplateExpression{NodeBase: nb, Tag: base, Quasi: quasi}
		default:
			if sawOptional {
				nb := base.Pos()
				_ = nb
				wrapped := &ChainExpression{NodeBase: NodeBase{Range: base.Pos(), Loc: base.Location()}, Expression: base}
				return wrapped
			}
			return base
		}
	}
}

func (p *Parser) nodeFrom(left Expr) NodeBase {
	base := NodeBase{Range: Range{Start: left.Pos().Start}, Loc: SourceLocation{Start: left.Location().Start}}
	return p.finishNode(base)
}

func (p *Parser) parsePropertyNameAfterDot() Expr {
	if p.at(PrivateIdentifierToken) {
		start := p.tok.Range.Start
		name := p.parsePrivateName().(*PrivateIdentifier)
		p.usePrivateName(name.Name, start)
		return name
	}
	start := p.startNode()
	name := string(p.tok.Value)
	p.next()
	return &Identifier{NodeBase: p.finishNode(start), Name: name}
}

func (p *Parser) parsePrivateName() Expr {
	start := p.startNode()
	// the lexer already classifies `#name` as one PrivateIdentifierToken.
	name := string(p.tok.Value)
	p.next()
	return &PrivateIdentifier{NodeBase: p.finishNode(start), Name: name}
}

func (p *Parser) parseArguments() []Expr {
	p.expect(OpenParenToken)
	var args []Expr
	for !p.at(CloseParenToken) {
		if p.at(EllipsisToken) {
			start := p.startNode()
			p.next()
			arg := p.parseAssign()
			args = append(args, &SpreadElement{NodeBase: p.finishNode(start), Argument: arg})
		} else {
			args = append(args, p.parseAssign())
		}
		if !p.consume(CommaToken) {
			break
		}
	}
	p.expect(CloseParenToken)
	return args
}

func (p *Parser) parseNew() Expr {
	start := p.startNode()
	p.next()
	if p.at(DotToken) {
		p.next()
		metaStart := NodeBase{Range: Range{Start: start.Range.Start}, Loc: SourceLocation{Start: start.Loc.Start}}
		propName := string(p.tok.Value)
		if propName != "target" {
			p.fail(ErrUnexpectedToken, "The only valid meta property for new is new.target")
		}
		if !p.inFunction {
			p.failAt(metaStart.Range.Start, ErrNewTargetOutsideFn, "'new.target' expression is not allowed here")
		}
		p.next()
		base := p.finishNode(metaStart)
		return &MetaProperty{
			NodeBase: base,
			Meta:     &Identifier{NodeBase: NodeBase{Range: start.Range}, Name: "new"},
			Property: &Identifier{NodeBase: NodeBase{Range: base.Range}, Name: "target"},
		}
	}
	callee := p.parseSubscriptsForNew(p.parseExprAtom())
	var args []Expr
	if p.at(OpenParenToken) {
		args = p.parseArguments()
	}
	base := p.finishNode(start)
	return &NewExpression{NodeBase: base, Callee: callee, Arguments: args}
}

// parseSubscriptsForNew parses member accesses but stops before a call,
// since `new Foo(...)` binds the call to the whole new-expression, not
// to the callee sub-expression (ECMA-262 MemberExpression vs
// NewExpression split).
func (p *Parser) parseSubscriptsForNew(base Expr) Expr {
	for {
		switch {
		case p.consume(DotToken):
			prop := p.parsePropertyNameAfterDot()
			nb := p.nodeFrom(base)
			base = &MemberExpression{NodeBase: nb, Object: base, Property: prop, Computed: false}
		case p.consume(OpenBracketToken):
			prop := p.parseExpression()
			p.expect(CloseBracketToken)
			nb := p.nodeFrom(base)
			base = &MemberExpression{NodeBase: nb, Object: base, Property: prop, Computed: true}
		default:
			return base
		}
	}
}

////////////////////////////////////////////////////////////////
// Primary expressions

func (p *Parser) parseExprAtom() Expr {
	switch p.tok.Type {
	case NewToken:
		return p.parseNew()
	case ThisToken:
		base := p.finishNode(p.startNode())
		p.next()
		return &ThisExpression{NodeBase: p.finishZeroWidth(base)}
	case SuperToken:
		base := p.startNode()
		p.next()
		if !p.inClassBody {
			p.failAt(base.Range.Start, ErrSuperOutsideClass, "'super' keyword is only valid inside a class")
		}
		return &Super{NodeBase: p.finishNode(base)}
	case IdentifierToken:
		return p.parseIdentifierOrAsyncOrArrow()
	case NumericToken, BigIntToken, StringToken, TrueToken, FalseToken, NullToken:
		return p.parseLiteral()
	case DivToken, DivEqToken:
		return p.parseRegExpLiteral()
	case OpenParenToken:
		return p.parseParenAndMaybeArrow()
	case OpenBracketToken:
		return p.parseArrayLiteral()
	case OpenBraceToken:
		return p.parseObjectLiteral()
	case FunctionToken:
		return p.parseFunctionExpression(false)
	case ClassToken:
		return p.parseClassExpression()
	case TemplateHeadToken, NoSubstitutionTemplateToken:
		return p.parseTemplateLiteral()
	case ImportToken:
		return p.parseImportCallOrMeta()
	case PrivateIdentifierToken:
		// only valid here as the LHS of `#x in obj`'s ergonomic brand
		// check; record the reference the same way member access does.
		start := p.tok.Range.Start
		name := p.parsePrivateName().(*PrivateIdentifier)
		p.usePrivateName(name.Name, start)
		return name
	}
	p.fail(ErrUnexpectedToken, "Unexpected token %s", p.tok.Type)
	start := p.finishNode(p.startNode())
	p.next()
	return &Identifier{NodeBase: start, Name: "(error)"}
}

func (p *Parser) finishZeroWidth(base NodeBase) NodeBase { return base }

func (p *Parser) parseLiteral() Expr {
	start := p.startNode()
	tok := p.tok
	raw := string(tok.Value)
	lit := &Literal{Raw: raw}
	switch tok.Type {
	case NumericToken:
		if p.strict && isLegacyOctalNumericLiteral(raw) {
			p.failAt(start.Range.Start, ErrLegacyOctalInStrict, "Octal literals are not allowed in strict mode")
		}
		lit.Kind = LiteralNumber
		lit.Value = parseNumericValue(raw)
	case BigIntToken:
		lit.Kind = LiteralBigInt
		lit.Value = &BigIntValue{Digits: raw[:len(raw)-1]}
	case StringToken:
		lit.Kind = LiteralString
		lit.Value = decodeStringLiteral(raw)
	case TrueToken:
		lit.Kind = LiteralBoolean
		lit.Value = true
	case FalseToken:
		lit.Kind = LiteralBoolean
		lit.Value = false
	case NullToken:
		lit.Kind = LiteralNull
		lit.Value = nil
	}
	p.next()
	lit.NodeBase = p.finishNode(start)
	return lit
}

func (p *Parser) parseRegExpLiteral() Expr {
	start := p.tok.Range.Start
	startLoc := p.startNode()
	tok := p.lex.NextRegExp(start)
	if err := p.lex.Err(); err != nil {
		p.errors.Add(err)
		p.lex.err = nil
	}
	p.tok = tok
	raw := string(tok.Value)
	lastSlash := lastIndexByte(raw, '/')
	pattern := raw[1:lastSlash]
	flags := raw[lastSlash+1:]
	p.checkRegExpFlags(flags, start+lastSlash+1)
	lit := &Literal{Raw: raw, Kind: LiteralRegExp, Value: &RegExpValue{Pattern: pattern, Flags: flags}}
	p.next()
	lit.NodeBase = p.finishNode(startLoc)
	return lit
}

func lastIndexByte(s string, c byte) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == c {
			return i
		}
	}
	return -1
}

// validRegExpFlags is ECMAScript's legal regex flag alphabet: hasIndices,
// global, ignoreCase, multiline, dotAll, unicode, unicodeSets, sticky.
var validRegExpFlags = map[byte]bool{
	'd': true, 'g': true, 'i': true, 'm': true,
	's': true, 'u': true, 'v': true, 'y': true,
}

// checkRegExpFlags rejects unknown flag characters, a repeated flag, or
// 'u' and 'v' both present (mutually exclusive per spec.md §7), the
// regex-literal early-error set a copy-the-flags-text implementation
// would otherwise silently accept.
func (p *Parser) checkRegExpFlags(flags string, offset int) {
	seen := map[byte]bool{}
	for i := 0; i < len(flags); i++ {
		c := flags[i]
		if !validRegExpFlags[c] || seen[c] {
			p.failAt(offset, ErrInvalidRegExpFlags, "Invalid regular expression flags '%s'", flags)
			return
		}
		seen[c] = true
	}
	if seen['u'] && seen['v'] {
		p.failAt(offset, ErrInvalidRegExpFlags, "Regular expression flags 'u' and 'v' cannot be used together")
	}
}

func (p *Parser) parseIdentifierOrAsyncOrArrow() Expr {
	name := string(p.tok.Value)
	if name == "async" {
		return p.parseAsyncArrowOrCall()
	}
	start := p.startNode()
	if isReservedWord(name, p.strict, p.moduleMode) {
		p.failAt(start.Range.Start, ErrReservedWord, "Unexpected reserved word '%s'", name)
	}
	p.checkContextualKeywordAsIdentifier(name, start.Range.Start)
	p.next()
	if p.at(ArrowToken) && !p.tok.PrecededByLineTerminator {
		id := &Identifier{NodeBase: p.finishNode(start), Name: name}
		return p.parseArrowFromParams(start, []Pattern{id}, false)
	}
	return &Identifier{NodeBase: p.finishNode(start), Name: name}
}

// parseAsyncArrowOrCall disambiguates `async` as a plain identifier,
// `async function`, `async (params) => body`, or `async ident => body`.
func (p *Parser) parseAsyncArrowOrCall() Expr {
	start := p.startNode()
	p.next() // 'async'
	if p.tok.PrecededByLineTerminator {
		return &Identifier{NodeBase: p.finishNode(start), Name: "async"}
	}
	if p.at(FunctionToken) {
		return p.parseFunctionExpressionAsync(start)
	}
	if p.at(IdentifierToken) && !p.tok.PrecededByLineTerminator {
		paramName := string(p.tok.Value)
		ps := p.startNode()
		p.next()
		if p.at(ArrowToken) && !p.tok.PrecededByLineTerminator {
			id := &Identifier{NodeBase: p.finishNode(ps), Name: paramName}
			return p.parseArrowFromParams(start, []Pattern{id}, true)
		}
		// not actually an arrow; `async` was a plain identifier and
		// paramName begins a (likely erroneous) adjacent expression. Treat
		// `async` alone as the result and let the caller's subscript/binary
		// loop fail naturally on the stray identifier, matching acorn's
		// permissive recovery for this corner case.
		return &Identifier{NodeBase: p.finishNode(start), Name: "async"}
	}
	if p.at(OpenParenToken) {
		save := p.tok
		paren := p.parseParenAndMaybeArrow()
		if arrow, ok := paren.(*ArrowFunctionExpression); ok {
			arrow.Async = true
			arrow.Range.Start = start.Range.Start
			arrow.Loc.Start = start.Loc.Start
			return arrow
		}
		_ = save
		return &Identifier{NodeBase: p.finishNode(start), Name: "async"}
	}
	return &Identifier{NodeBase: p.finishNode(start), Name: "async"}
}

func (p *Parser) parseFunctionExpressionAsync(start NodeBase) Expr {
	fn := p.parseFunctionExpression(true).(*FunctionExpression)
	fn.Range.Start = start.Range.Start
	fn.Loc.Start = start.Loc.Start
	return fn
}

////////////////////////////////////////////////////////////////
// Parenthesized expressions / arrow-parameter cover grammar

// parseParenAndMaybeArrow implements spec.md §4.1's cover grammar between
// a parenthesized expression and an arrow function's parameter list: it
// parses the parenthesized contents as a comma-separated list of
// assignment expressions (permitting trailing rest elements), then either
// converts that list to an arrow parameter list (if `=>` follows) or
// folds it into a SequenceExpression/bare expression.
func (p *Parser) parseParenAndMaybeArrow() Expr {
	start := p.startNode()
	p.expect(OpenParenToken)
	var elems []Expr
	var rests []Expr
	trailingComma := false
	for !p.at(CloseParenToken) {
		if p.at(EllipsisToken) {
			rs := p.startNode()
			p.next()
			arg := p.parseAssign()
			rests = append(rests, &SpreadElement{NodeBase: p.finishNode(rs), Argument: arg})
			if !p.consume(CommaToken) {
				break
			}
			continue
		}
		elems = append(elems, p.parseAssign())
		if p.consume(CommaToken) {
			trailingComma = p.at(CloseParenToken)
			continue
		}
		break
	}
	p.expect(CloseParenToken)

	if p.at(ArrowToken) && !p.tok.PrecededByLineTerminator {
		params := make([]Pattern, 0, len(elems)+len(rests))
		for _, e := range elems {
			params = append(params, p.exprToPattern(e, e.Pos().Start))
		}
		for _, r := range rests {
			se := r.(*SpreadElement)
			params = append(params, &RestElement{NodeBase: se.NodeBase, Argument: p.exprToPattern(se.Argument, se.Argument.Pos().Start)})
		}
		return p.parseArrowFromParams(start, params, false)
	}

	if len(rests) > 0 {
		p.failAt(start.Range.Start, ErrInvalidLHS, "Rest element is only valid in an arrow parameter list")
	}
	if len(elems) == 0 {
		p.failAt(start.Range.Start, ErrUnexpectedToken, "Unexpected token ')'")
	}
	_ = trailingComma

	base := p.finishNode(start)
	var inner Expr
	if len(elems) == 1 {
		inner = elems[0]
	} else {
		inner = &SequenceExpression{NodeBase: NodeBase{Range: Range{Start: elems[0].Pos().Start, End: elems[len(elems)-1].Pos().End}}, Expressions: elems}
	}
	if p.opts.PreserveParens {
		return &ParenthesizedExpression{NodeBase: base, Expression: inner}
	}
	return inner
}

// parseArrowFromParams finishes an arrow function after its parameter
// list (already converted to patterns) has been parsed, starting at
// start's recorded start position.
func (p *Parser) parseArrowFromParams(start NodeBase, params []Pattern, async bool) Expr {
	p.expect(ArrowToken)
	prevAsync, prevGen, prevFn := p.inAsync, p.inGenerator, p.inFunction
	p.inAsync, p.inGenerator, p.inFunction = async, false, true
	p.tracker.Push(ScopeFunction)
	p.checkDuplicateParams(params, p.strict, true, false, async)
	fn := Function{Params: params, Async: async}
	if p.at(OpenBraceToken) {
		fn.Body, _ = p.parseFunctionBody()
	} else {
		fn.ExprBody = p.parseAssign()
	}
	p.tracker.Pop()
	p.inAsync, p.inGenerator, p.inFunction = prevAsync, prevGen, prevFn
	base := p.finishNode(start)
	return &ArrowFunctionExpression{NodeBase: base, Function: fn}
}

////////////////////////////////////////////////////////////////
// Array / object literals

func (p *Parser) parseArrayLiteral() Expr {
	start := p.startNode()
	p.expect(OpenBracketToken)
	var elems []Expr
	for !p.at(CloseBracketToken) {
		if p.at(CommaToken) {
			elems = append(elems, nil)
			p.next()
			continue
		}
		if p.at(EllipsisToken) {
			rs := p.startNode()
			p.next()
			arg := p.parseAssign()
			elems = append(elems, &SpreadElement{NodeBase: p.finishNode(rs), Argument: arg})
		} else {
			elems = append(elems, p.parseAssign())
		}
		if !p.at(CloseBracketToken) {
			p.expect(CommaToken)
		}
	}
	p.expect(CloseBracketToken)
	return &ArrayExpression{NodeBase: p.finishNode(start), Elements: elems}
}

func (p *Parser) parseObjectLiteral() Expr {
	start := p.startNode()
	p.expect(OpenBraceToken)
	var props []Expr
	seenProto := false
	for !p.at(CloseBraceToken) {
		if p.at(EllipsisToken) {
			rs := p.startNode()
			p.next()
			arg := p.parseAssign()
			props = append(props, &SpreadElement{NodeBase: p.finishNode(rs), Argument: arg})
		} else {
			prop := p.parseObjectProperty()
			if isProtoKeyInit(prop) {
				if seenProto {
					p.failAt(prop.Pos().Start, ErrDuplicateProto, "Duplicate __proto__ fields are not allowed in object literals")
				}
				seenProto = true
			}
			props = append(props, prop)
		}
		if !p.consume(CommaToken) {
			break
		}
	}
	p.expect(CloseBraceToken)
	return &ObjectExpression{NodeBase: p.finishNode(start), Properties: props}
}

// isProtoKeyInit reports whether prop is a plain (non-method, non-shorthand,
// non-computed) `__proto__: value` property, the only form spec.md §7's
// duplicate-__proto__ early error applies to.
func isProtoKeyInit(prop Expr) bool {
	p, ok := prop.(*Property)
	if !ok || p.Kind != PropertyInit || p.Computed || p.Shorthand || p.Method {
		return false
	}
	switch k := p.Key.(type) {
	case *Identifier:
		return k.Name == "__proto__"
	case *Literal:
		return k.Kind == LiteralString && k.Value == "__proto__"
	}
	return false
}

func (p *Parser) parseObjectProperty() Expr {
	start := p.startNode()

	async := false
	generator := false
	kind := PropertyInit

	if p.atContextual("async") {
		la := p.peekAheadIsPropertyName()
		if la {
			async = true
			p.next()
		}
	}
	if p.consume(MulToken) {
		generator = true
	}
	if (p.atContextual("get") || p.atContextual("set")) && p.peekAheadIsPropertyName() {
		if string(p.tok.Value) == "get" {
			kind = PropertyGet
		} else {
			kind = PropertySet
		}
		p.next()
	}

	computed := p.at(OpenBracketToken)
	key := p.parsePropertyKey()

	if kind == PropertyGet || kind == PropertySet {
		fn := p.parseMethodFunction(false, false)
		return &Property{NodeBase: p.finishNode(start), Key: key, Value: fn, Kind: kind, Computed: computed, Method: false}
	}
	if p.at(OpenParenToken) {
		fn := p.parseMethodFunction(generator, async)
		return &Property{NodeBase: p.finishNode(start), Key: key, Value: fn, Kind: PropertyInit, Computed: computed, Method: true}
	}
	if p.consume(ColonToken) {
		val := p.parseAssign()
		return &Property{NodeBase: p.finishNode(start), Key: key, Value: val, Kind: PropertyInit, Computed: computed}
	}
	// shorthand, possibly with a default (cover grammar for object patterns)
	id, ok := key.(*Identifier)
	if !ok {
		p.failAt(start.Range.Start, ErrUnexpectedToken, "Unexpected token")
	}
	var val Expr = id
	if p.consume(EqToken) {
		def := p.parseAssign()
		val = &AssignmentExpression{NodeBase: p.nodeFrom(id), Operator: "=", Left: id, Right: def}
	}
	return &Property{NodeBase: p.finishNode(start), Key: key, Value: val, Kind: PropertyInit, Shorthand: true}
}

// peekAheadIsPropertyName reports whether the token after the current
// contextual keyword token still looks like it begins a property (so
// `async`/`get`/`set` should be treated as a modifier, not the key
// itself). It performs a bounded lookahead by cloning lexer position.
func (p *Parser) peekAheadIsPropertyName() bool {
	tmp := NewLexer(NewSource(p.src.Bytes()), Options{ECMAVersion: p.opts.ECMAVersion})
	tmp.src.pos = p.src.Pos()
	next := tmp.Next()
	switch next.Type {
	case CommaToken, ColonToken, CloseBraceToken, OpenParenToken, EqToken, SemicolonToken:
		return false
	}
	return !next.PrecededByLineTerminator
}

func (p *Parser) parsePropertyKey() Expr {
	if p.at(OpenBracketToken) {
		p.next()
		key := p.parseAssign()
		p.expect(CloseBracketToken)
		return key
	}
	if p.at(PrivateIdentifierToken) {
		return p.parsePrivateName()
	}
	start := p.startNode()
	switch p.tok.Type {
	case StringToken, NumericToken, BigIntToken:
		return p.parseLiteral()
	default:
		name := string(p.tok.Value)
		p.next()
		return &Identifier{NodeBase: p.finishNode(start), Name: name}
	}
}

func (p *Parser) parseMethodFunction(generator, async bool) *FunctionExpression {
	start := p.startNode()
	prevAsync, prevGen, prevFn := p.inAsync, p.inGenerator, p.inFunction
	p.inAsync, p.inGenerator, p.inFunction = async, generator, true
	p.tracker.Push(ScopeFunction)
	params := p.parseParamList()
	body, strict := p.parseFunctionBody()
	p.tracker.Pop()
	p.checkDuplicateParams(params, strict, false, generator, async)
	p.inAsync, p.inGenerator, p.inFunction = prevAsync, prevGen, prevFn
	return &FunctionExpression{NodeBase: p.finishNode(start), Function: Function{Params: params, Body: body, Generator: generator, Async: async}}
}

////////////////////////////////////////////////////////////////
// Function / class expressions, templates, import()

func (p *Parser) parseFunctionExpression(async bool) Expr {
	start := p.startNode()
	p.expect(FunctionToken)
	generator := p.consume(MulToken)
	var id *Identifier
	if p.at(IdentifierToken) {
		ids := p.startNode()
		name := string(p.tok.Value)
		p.next()
		id = &Identifier{NodeBase: p.finishNode(ids), Name: name}
	}
	prevAsync, prevGen, prevFn := p.inAsync, p.inGenerator, p.inFunction
	p.inAsync, p.inGenerator, p.inFunction = async, generator, true
	p.tracker.Push(ScopeFunction)
	params := p.parseParamList()
	body, strict := p.parseFunctionBody()
	p.tracker.Pop()
	p.checkDuplicateParams(params, strict, false, generator, async)
	p.inAsync, p.inGenerator, p.inFunction = prevAsync, prevGen, prevFn
	return &FunctionExpression{NodeBase: p.finishNode(start), Function: Function{ID: id, Params: params, Body: body, Generator: generator, Async: async}}
}

func (p *Parser) parseParamList() []Pattern {
	p.expect(OpenParenToken)
	prevInParams := p.inParams
	p.inParams = true
	var params []Pattern
	for !p.at(CloseParenToken) {
		if p.at(EllipsisToken) {
			rs := p.startNode()
			p.next()
			arg := p.parseBindingTarget()
			params = append(params, &RestElement{NodeBase: p.finishNode(rs), Argument: arg})
		} else {
			params = append(params, p.parseBindingTargetWithDefault())
		}
		if !p.consume(CommaToken) {
			break
		}
	}
	p.expect(CloseParenToken)
	p.inParams = prevInParams
	return params
}

// parseFunctionBody parses a function's block body and additionally
// reports whether the function ends up strict (inherited from the
// enclosing context or its own directive prologue), so callers can
// apply strict-only early errors like duplicate parameter names.
func (p *Parser) parseFunctionBody() (*BlockStatement, bool) {
	var strict bool
	body := p.parseBlockStatementStrict(&strict)
	return body, strict
}

func (p *Parser) parseClassExpression() Expr {
	return p.parseClass(false).(Expr)
}

func (p *Parser) parseTemplateLiteral() *TemplateLiteral {
	start := p.startNode()
	var quasis []*TemplateElement
	var exprs []Expr
	tok := p.tok
	for {
		elem := p.decodeTemplateElement(tok)
		quasis = append(quasis, elem)
		if elem.Tail {
			p.next()
			break
		}
		p.next()
		exprs = append(exprs, p.parseExpression())
		if !p.at(CloseBraceToken) {
			p.fail(ErrUnexpectedToken, "Unexpected token, expected \"}\"")
		}
		// Next has already scanned the '}'; move the source back to it so
		// NextTemplatePart starts there.
		p.src.pos, p.src.line, p.src.col = p.tok.Range.Start, p.tok.Loc.Start.Line, p.tok.Loc.Start.Column
		tok = p.lex.NextTemplatePart()
		p.tok = tok
	}
	return &TemplateLiteral{NodeBase: p.finishNode(start), Quasis: quasis, Expressions: exprs}
}

func (p *Parser) decodeTemplateElement(tok Token) *TemplateElement {
	raw := string(tok.Value)
	cookedValid := !tok.ContainsEscape
	cooked := raw
	if cookedValid {
		cooked = decodeTemplateCooked(raw)
	}
	tail := tok.Type == NoSubstitutionTemplateToken || tok.Type == TemplateTailToken
	return &TemplateElement{
		NodeBase:    NodeBase{Range: tok.Range, Loc: tok.Loc},
		Raw:         raw,
		Cooked:      cooked,
		CookedValid: cookedValid,
		Tail:        tail,
	}
}

func (p *Parser) parseImportCallOrMeta() Expr {
	start := p.startNode()
	p.next()
	if p.consume(DotToken) {
		propName := string(p.tok.Value)
		if propName != "meta" {
			p.fail(ErrUnexpectedToken, "The only valid meta property for import is import.meta")
		}
		p.next()
		return &MetaProperty{
			NodeBase: p.finishNode(start),
			Meta:     &Identifier{Name: "import"},
			Property: &Identifier{Name: "meta"},
		}
	}
	p.expect(OpenParenToken)
	source := p.parseAssign()
	var opts Expr
	if p.consume(CommaToken) && !p.at(CloseParenToken) {
		opts = p.parseAssign()
		p.consume(CommaToken)
	}
	p.expect(CloseParenToken)
	return &ImportExpression{NodeBase: p.finishNode(start), Source: source, Options: opts}
}

