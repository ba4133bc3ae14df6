package acornima

// Statement parsing: one production per spec.md §4.3's statement list,
// plus the declaration forms (var/let/const/function/class) and the
// module statements (import/export), grounded the way tdewolff/parse/v2/js's
// Parser.parseStmt dispatches on leading token.

// parseStatementListItem parses one StatementListItem: a Statement, or
// (only where allowed) a Declaration. topLevel additionally allows
// import/export syntax per spec.md §4.3's "module syntax only at the top
// level of a module".
func (p *Parser) parseStatementListItem(topLevel bool) Stmt {
	switch p.tok.Type {
	case FunctionToken:
		return p.parseFunctionDeclaration(false)
	case ClassToken:
		return p.parseClassDeclaration()
	case VarToken, ConstToken:
		return p.parseVariableStatement()
	case ImportToken:
		if p.peekIsImportCallOrMeta() {
			break
		}
		if (!p.moduleMode || !topLevel) && !p.opts.AllowImportExportEverywhere {
			p.fail(ErrModuleSyntaxInScript, "'import' and 'export' may only appear at the top level of a module")
		}
		return p.parseImportDeclaration()
	case ExportToken:
		if (!p.moduleMode || !topLevel) && !p.opts.AllowImportExportEverywhere {
			p.fail(ErrModuleSyntaxInScript, "'import' and 'export' may only appear at the top level of a module")
		}
		return p.parseExportDeclaration()
	}
	if p.atContextual("let") && p.letStartsDeclaration() {
		return p.parseVariableStatement()
	}
	if p.atContextual("async") {
		if ok, fn := p.tryParseAsyncFunctionDeclaration(); ok {
			return fn
		}
	}
	return p.parseStatement()
}

// peekIsImportCallOrMeta distinguishes the `import` keyword used as a
// statement from `import(...)`/`import.meta` used as an expression,
// without backtracking: both only ever appear with '(' or '.' right
// after the keyword.
func (p *Parser) peekIsImportCallOrMeta() bool {
	start := p.src.Pos()
	tmp := NewLexer(NewSource(p.src.Bytes()), Options{ECMAVersion: p.opts.ECMAVersion})
	tmp.src.pos = start
	tok := tmp.Next()
	return tok.Type == OpenParenToken || tok.Type == DotToken
}

// letStartsDeclaration disambiguates `let` as a BindingIdentifier (sloppy
// mode only) from `let` starting a LexicalDeclaration, by checking what
// follows (spec.md §4.2's contextual reclassification).
func (p *Parser) letStartsDeclaration() bool {
	start := p.src.Pos()
	tmp := NewLexer(NewSource(p.src.Bytes()), Options{ECMAVersion: p.opts.ECMAVersion})
	tmp.src.pos = start
	tok := tmp.Next()
	switch tok.Type {
	case IdentifierToken, OpenBracketToken, OpenBraceToken:
		return true
	}
	return tok.Type == YieldToken
}

func (p *Parser) tryParseAsyncFunctionDeclaration() (bool, Stmt) {
	start := p.src.Pos()
	tmp := NewLexer(NewSource(p.src.Bytes()), Options{ECMAVersion: p.opts.ECMAVersion})
	tmp.src.pos = start
	tok := tmp.Next()
	if tok.Type != FunctionToken || tok.PrecededByLineTerminator {
		return false, nil
	}
	asyncStart := p.startNode()
	p.next() // 'async'
	fn := p.parseFunctionDeclaration(true).(*FunctionDeclaration)
	fn.Range.Start = asyncStart.Range.Start
	fn.Loc.Start = asyncStart.Loc.Start
	return true, fn
}

func (p *Parser) parseStatement() Stmt {
	switch p.tok.Type {
	case OpenBraceToken:
		return p.parseBlockStatement()
	case SemicolonToken:
		start := p.startNode()
		p.next()
		return &EmptyStatement{NodeBase: p.finishNode(start)}
	case IfToken:
		return p.parseIfStatement()
	case DoToken:
		return p.parseDoWhileStatement()
	case WhileToken:
		return p.parseWhileStatement()
	case ForToken:
		return p.parseForStatement()
	case ContinueToken:
		return p.parseContinueStatement()
	case BreakToken:
		return p.parseBreakStatement()
	case ReturnToken:
		return p.parseReturnStatement()
	case WithToken:
		return p.parseWithStatement()
	case SwitchToken:
		return p.parseSwitchStatement()
	case ThrowToken:
		return p.parseThrowStatement()
	case TryToken:
		return p.parseTryStatement()
	case DebuggerToken:
		return p.parseDebuggerStatement()
	case VarToken:
		return p.parseVariableStatement()
	}
	if p.at(IdentifierToken) && !(p.inGenerator && p.atContextual("yield")) && !(p.inAsync && p.atContextual("await")) {
		return p.parseLabeledOrExpressionStatement()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseBlockStatement() *BlockStatement {
	var strict bool
	return p.parseBlockStatementStrict(&strict)
}

// parseBlockStatementStrict parses `{ StatementList }`, detecting a
// leading "use strict" directive when *strictFlag isn't already set and
// propagating it for the duration of the block (spec.md §4.4).
func (p *Parser) parseBlockStatementStrict(strictFlag *bool) *BlockStatement {
	start := p.startNode()
	p.expect(OpenBraceToken)
	prevStrict := p.strict
	var directives []string
	if !p.strict {
		var strict bool
		directives, strict = p.collectDirectivePrologue()
		p.strict = strict
	}
	*strictFlag = p.strict
	var body []Stmt
	for !p.at(CloseBraceToken) && !p.at(EOFToken) {
		body = append(body, p.parseStatementListItem(false))
	}
	p.expect(CloseBraceToken)
	p.strict = prevStrict
	return &BlockStatement{NodeBase: p.finishNode(start), Body: body, Directives: directives}
}

func (p *Parser) parseExpressionStatement() Stmt {
	start := p.startNode()
	expr := p.parseExpression()
	p.semicolon()
	return &ExpressionStatement{NodeBase: p.finishNode(start), Expression: expr}
}

func (p *Parser) parseLabeledOrExpressionStatement() Stmt {
	start := p.startNode()
	name := string(p.tok.Value)
	savedTok := p.tok
	idStart := p.startNode()
	p.next()
	if p.at(ColonToken) {
		p.next()
		id := &Identifier{NodeBase: p.finishNode(idStart), Name: name}
		if _, exists := p.tracker.HasLabel(name); exists {
			p.failAt(savedTok.Range.Start, ErrDuplicateLabel, "Label '%s' has already been declared", name)
		}
		isLoop := p.tok.Type == ForToken || p.tok.Type == WhileToken || p.tok.Type == DoToken
		p.tracker.PushLabel(name, isLoop)
		body := p.parseStatement()
		cur := p.tracker.Current()
		cur.labels = cur.labels[:len(cur.labels)-1]
		return &LabeledStatement{NodeBase: p.finishNode(start), Label: id, Body: body}
	}
	// not a label: re-synthesize the identifier expression already consumed
	// and continue parsing it as the start of an expression statement.
	idExpr := Expr(&Identifier{NodeBase: p.finishNode(idStart), Name: name})
	idExpr = p.parseSubscriptsFrom(idExpr, false)
	idExpr = p.parsePostfixUpdate(idExpr)
	idExpr = p.parseBinaryRHS(1, idExpr)
	if p.consume(QuestionToken) {
		cons := p.parseAssign()
		p.expect(ColonToken)
		alt := p.parseAssign()
		idExpr = &ConditionalExpression{NodeBase: p.nodeFrom(idExpr), Test: idExpr, Consequent: cons, Alternate: alt}
	}
	if op, ok := assignOps[p.tok.Type]; ok {
		p.next()
		var target Node = idExpr
		if op == "=" {
			target = p.exprToPattern(idExpr, idExpr.Pos().Start)
		} else {
			p.checkSimpleAssignTarget(idExpr)
		}
		right := p.parseAssign()
		idExpr = &AssignmentExpression{NodeBase: p.nodeFrom(idExpr), Operator: op, Left: target, Right: right}
	}
	if p.at(CommaToken) {
		list := []Expr{idExpr}
		for p.consume(CommaToken) {
			list = append(list, p.parseAssign())
		}
		idExpr = &SequenceExpression{NodeBase: p.nodeFrom(idExpr), Expressions: list}
	}
	p.semicolon()
	return &ExpressionStatement{NodeBase: p.finishNode(start), Expression: idExpr}
}

func (p *Parser) parseIfStatement() Stmt {
	start := p.startNode()
	p.next()
	p.expect(OpenParenToken)
	test := p.parseExpression()
	p.expect(CloseParenToken)
	cons := p.parseStatement()
	var alt Stmt
	if p.consume(ElseToken) {
		alt = p.parseStatement()
	}
	return &IfStatement{NodeBase: p.finishNode(start), Test: test, Consequent: cons, Alternate: alt}
}

func (p *Parser) parseDoWhileStatement() Stmt {
	start := p.startNode()
	p.next()
	prevLoop := p.inLoop
	p.inLoop = true
	body := p.parseStatement()
	p.inLoop = prevLoop
	p.expect(WhileToken)
	p.expect(OpenParenToken)
	test := p.parseExpression()
	p.expect(CloseParenToken)
	p.consume(SemicolonToken)
	return &DoWhileStatement{NodeBase: p.finishNode(start), Body: body, Test: test}
}

func (p *Parser) parseWhileStatement() Stmt {
	start := p.startNode()
	p.next()
	p.expect(OpenParenToken)
	test := p.parseExpression()
	p.expect(CloseParenToken)
	prevLoop := p.inLoop
	p.inLoop = true
	body := p.parseStatement()
	p.inLoop = prevLoop
	return &WhileStatement{NodeBase: p.finishNode(start), Test: test, Body: body}
}

func (p *Parser) parseWithStatement() Stmt {
	start := p.startNode()
	p.next()
	if p.strict {
		p.failAt(start.Range.Start, ErrUnexpectedToken, "'with' statements are not allowed in strict mode")
	}
	p.expect(OpenParenToken)
	obj := p.parseExpression()
	p.expect(CloseParenToken)
	body := p.parseStatement()
	return &WithStatement{NodeBase: p.finishNode(start), Object: obj, Body: body}
}

func (p *Parser) parseForStatement() Stmt {
	start := p.startNode()
	p.next()
	await := p.inAsync && p.consumeContextual("await")
	p.expect(OpenParenToken)

	var init Node
	if p.at(SemicolonToken) {
		// no init
	} else if p.at(VarToken) || p.at(ConstToken) || (p.atContextual("let") && p.letStartsDeclaration()) {
		decl := p.parseVariableDeclarationHead(true)
		init = decl
	} else {
		prevNoIn := p.noIn
		p.noIn = true
		init = p.parseExpression()
		p.noIn = prevNoIn
	}

	if p.atContextual("of") || p.at(InToken) {
		isOf := p.atContextual("of")
		p.next()
		var left Node
		if decl, ok := init.(*VariableDeclaration); ok {
			p.checkForHeadDeclaration(decl, isOf)
			left = decl
		} else {
			left = p.exprToPattern(init.(Expr), init.(Expr).Pos().Start)
		}
		right := p.parseAssign()
		if isOf {
			right = p.parseAssignNoComma(right)
		}
		p.expect(CloseParenToken)
		prevLoop := p.inLoop
		p.inLoop = true
		body := p.parseStatement()
		p.inLoop = prevLoop
		if isOf {
			return &ForOfStatement{NodeBase: p.finishNode(start), Await: await, Left: left, Right: right, Body: body}
		}
		return &ForInStatement{NodeBase: p.finishNode(start), Left: left, Right: right, Body: body}
	}

	p.expect(SemicolonToken)
	var test Expr
	if !p.at(SemicolonToken) {
		test = p.parseExpression()
	}
	p.expect(SemicolonToken)
	var update Expr
	if !p.at(CloseParenToken) {
		update = p.parseExpression()
	}
	p.expect(CloseParenToken)
	prevLoop := p.inLoop
	p.inLoop = true
	body := p.parseStatement()
	p.inLoop = prevLoop
	return &ForStatement{NodeBase: p.finishNode(start), Init: init, Test: test, Update: update, Body: body}
}

// checkForHeadDeclaration rejects an initializer on a for-in/for-of head's
// declaration, the early error spec.md §4.3/§8 both call out: every case
// is forbidden except the legacy sloppy-script `for (var x = 1 in o)`
// form, which browsers still accept for compatibility.
func (p *Parser) checkForHeadDeclaration(decl *VariableDeclaration, isOf bool) {
	legacyVarIn := !isOf && decl.Kind == VarKindVar && !p.strict
	if legacyVarIn {
		return
	}
	for _, d := range decl.Declarations {
		if d.Init != nil {
			p.failAt(d.Range.Start, ErrUnexpectedToken, "for-%s loop variable declaration may not have an initializer", forHeadKind(isOf))
		}
	}
}

func forHeadKind(isOf bool) string {
	if isOf {
		return "of"
	}
	return "in"
}

// parseAssignNoComma re-threads a single already-parsed assignment
// expression as the right-hand side of `for (... of expr)`, where a
// top-level comma is not an expression operator but a syntax error
// (distinct from a parenthesized comma expression, which is still valid).
func (p *Parser) parseAssignNoComma(e Expr) Expr { return e }

func (p *Parser) parseContinueStatement() Stmt {
	start := p.startNode()
	p.next()
	if !p.inLoop {
		p.failAt(start.Range.Start, ErrIllegalContinue, "Illegal continue statement: no surrounding iteration statement")
	}
	var label *Identifier
	if p.at(IdentifierToken) && !p.tok.PrecededByLineTerminator {
		ls := p.startNode()
		name := string(p.tok.Value)
		if l, ok := p.tracker.HasLabel(name); !ok || !l.IsLoop {
			p.fail(ErrUnknownLabel, "Undefined label '%s'", name)
		}
		p.next()
		label = &Identifier{NodeBase: p.finishNode(ls), Name: name}
	}
	p.semicolon()
	return &ContinueStatement{NodeBase: p.finishNode(start), Label: label}
}

func (p *Parser) parseBreakStatement() Stmt {
	start := p.startNode()
	p.next()
	var label *Identifier
	if p.at(IdentifierToken) && !p.tok.PrecededByLineTerminator {
		ls := p.startNode()
		name := string(p.tok.Value)
		if _, ok := p.tracker.HasLabel(name); !ok {
			p.fail(ErrUnknownLabel, "Undefined label '%s'", name)
		}
		p.next()
		label = &Identifier{NodeBase: p.finishNode(ls), Name: name}
	} else if !p.inLoop && !p.inSwitch {
		p.failAt(start.Range.Start, ErrIllegalBreak, "Illegal break statement")
	}
	p.semicolon()
	return &BreakStatement{NodeBase: p.finishNode(start), Label: label}
}

func (p *Parser) parseReturnStatement() Stmt {
	start := p.startNode()
	p.next()
	if !p.inFunction && !p.opts.AllowReturnOutsideFunction {
		p.failAt(start.Range.Start, ErrReturnOutsideFunction, "'return' outside of function")
	}
	var arg Expr
	if !p.canInsertSemicolon() && !p.at(SemicolonToken) {
		arg = p.parseExpression()
	}
	p.semicolon()
	return &ReturnStatement{NodeBase: p.finishNode(start), Argument: arg}
}

func (p *Parser) parseSwitchStatement() Stmt {
	start := p.startNode()
	p.next()
	p.expect(OpenParenToken)
	disc := p.parseExpression()
	p.expect(CloseParenToken)
	p.expect(OpenBraceToken)
	p.tracker.Push(ScopeBlock)
	prevSwitch := p.inSwitch
	p.inSwitch = true
	var cases []*SwitchCase
	seenDefault := false
	for !p.at(CloseBraceToken) && !p.at(EOFToken) {
		cs := p.startNode()
		var test Expr
		if p.consume(CaseToken) {
			test = p.parseExpression()
		} else {
			p.expect(DefaultToken)
			if seenDefault {
				p.failAt(cs.Range.Start, ErrUnexpectedToken, "Multiple default clauses")
			}
			seenDefault = true
		}
		p.expect(ColonToken)
		var body []Stmt
		for !p.at(CaseToken) && !p.at(DefaultToken) && !p.at(CloseBraceToken) && !p.at(EOFToken) {
			body = append(body, p.parseStatementListItem(false))
		}
		cases = append(cases, &SwitchCase{NodeBase: p.finishNode(cs), Test: test, Consequent: body})
	}
	p.inSwitch = prevSwitch
	p.tracker.Pop()
	p.expect(CloseBraceToken)
	return &SwitchStatement{NodeBase: p.finishNode(start), Discriminant: disc, Cases: cases}
}

func (p *Parser) parseThrowStatement() Stmt {
	start := p.startNode()
	p.next()
	if p.tok.PrecededByLineTerminator {
		p.failAt(start.Range.Start, ErrUnexpectedToken, "Illegal newline after throw")
	}
	arg := p.parseExpression()
	p.semicolon()
	return &ThrowStatement{NodeBase: p.finishNode(start), Argument: arg}
}

func (p *Parser) parseTryStatement() Stmt {
	start := p.startNode()
	p.next()
	block := p.parseBlockStatement()
	var handler *CatchClause
	if p.consume(CatchToken) {
		cs := p.startNode()
		var param Pattern
		if p.consume(OpenParenToken) {
			param = p.parseBindingTarget()
			p.expect(CloseParenToken)
		}
		p.tracker.Push(ScopeCatch)
		if param != nil {
			p.declareCatchParam(param)
		}
		body := p.parseBlockStatement()
		p.tracker.Pop()
		handler = &CatchClause{NodeBase: p.finishNode(cs), Param: param, Body: body}
	}
	var finalizer *BlockStatement
	if p.consume(FinallyToken) {
		finalizer = p.parseBlockStatement()
	}
	if handler == nil && finalizer == nil {
		p.failAt(start.Range.Start, ErrUnexpectedToken, "Missing catch or finally after try")
	}
	return &TryStatement{NodeBase: p.finishNode(start), Block: block, Handler: handler, Finalizer: finalizer}
}

// declareCatchParam records a catch parameter's bound names, using the
// simple-catch binding kind for a single identifier (Annex B permits a
// var of the same name) and lexical binding for destructured parameters,
// per spec.md §4.4.
func (p *Parser) declareCatchParam(param Pattern) {
	if id, ok := param.(*Identifier); ok {
		p.tracker.Declare(id.Name, BindSimpleCatch, id.Pos().Start)
		return
	}
	for _, name := range patternBoundNames(param) {
		p.tracker.Declare(name.name, BindLexical, name.offset)
	}
}

func (p *Parser) parseDebuggerStatement() Stmt {
	start := p.startNode()
	p.next()
	p.semicolon()
	return &DebuggerStatement{NodeBase: p.finishNode(start)}
}

////////////////////////////////////////////////////////////////
// Declarations

func (p *Parser) parseVariableStatement() Stmt {
	start := p.startNode()
	decl := p.parseVariableDeclarationHead(false)
	decl.Range = p.finishNode(start).Range
	decl.Loc = p.finishNode(start).Loc
	p.semicolon()
	return decl
}

// parseVariableDeclarationHead parses `var|let|const Declarator (, Declarator)*`
// without consuming the trailing semicolon, so for-head callers can stop
// before `in`/`of`/`;`.
func (p *Parser) parseVariableDeclarationHead(noIn bool) *VariableDeclaration {
	start := p.startNode()
	var kind VarKind
	switch {
	case p.at(VarToken):
		kind = VarKindVar
		p.next()
	case p.at(ConstToken):
		kind = VarKindConst
		p.next()
	default:
		kind = VarKindLet
		p.next() // consumes the "let" contextual identifier token
	}
	var decls []*VariableDeclarator
	for {
		ds := p.startNode()
		id := p.parseBindingTarget()
		p.declareBinding(id, kind)
		var init Expr
		if p.consume(EqToken) {
			prevNoIn := p.noIn
			p.noIn = noIn
			init = p.parseAssign()
			p.noIn = prevNoIn
		} else if kind == VarKindConst && !(noIn && (p.atContextual("of") || p.at(InToken))) {
			if _, isID := id.(*Identifier); isID {
				p.failAt(ds.Range.Start, ErrUnexpectedToken, "Missing initializer in const declaration")
			}
		}
		decls = append(decls, &VariableDeclarator{NodeBase: p.finishNode(ds), ID: id, Init: init})
		if !p.consume(CommaToken) {
			break
		}
	}
	return &VariableDeclaration{NodeBase: p.finishNode(start), Kind: kind, Declarations: decls}
}

type boundName struct {
	name   string
	offset int
}

// patternBoundNames flattens every BindingIdentifier in a pattern tree,
// for declaration, since var/let/const declarators may destructure.
func patternBoundNames(pat Pattern) []boundName {
	switch v := pat.(type) {
	case *Identifier:
		return []boundName{{v.Name, v.Pos().Start}}
	case *ArrayPattern:
		var out []boundName
		for _, e := range v.Elements {
			if e != nil {
				out = append(out, patternBoundNames(e)...)
			}
		}
		return out
	case *ObjectPattern:
		var out []boundName
		for _, pr := range v.Properties {
			out = append(out, patternBoundNames(pr.Value)...)
		}
		if v.Rest != nil {
			out = append(out, patternBoundNames(v.Rest.Argument)...)
		}
		return out
	case *AssignmentPattern:
		return patternBoundNames(v.Left)
	case *RestElement:
		return patternBoundNames(v.Argument)
	}
	return nil
}

func (p *Parser) declareBinding(pat Pattern, kind VarKind) {
	bkind := BindLexical
	if kind == VarKindVar {
		bkind = BindVar
	}
	for _, n := range patternBoundNames(pat) {
		if err := p.tracker.Declare(n.name, bkind, n.offset); err != nil {
			if p.opts.Tolerant {
				p.errors.Add(err)
			} else {
				panic(parseAbort{err})
			}
		}
	}
}

// checkDuplicateParams rejects repeated parameter names where the
// grammar requires UniqueFormalParameters (spec.md §4.3/§7): arrow
// functions, generators, async functions, and strict-mode functions all
// forbid duplicates unconditionally; an ordinary sloppy function
// permits them only when every parameter is a bare identifier (no
// default, rest, or destructuring).
func (p *Parser) checkDuplicateParams(params []Pattern, strict, arrow, generator, async bool) {
	simple := true
	for _, param := range params {
		if _, ok := param.(*Identifier); !ok {
			simple = false
			break
		}
	}
	if simple && !strict && !arrow && !generator && !async {
		return
	}
	seen := map[string]bool{}
	for _, param := range params {
		for _, n := range patternBoundNames(param) {
			if seen[n.name] {
				p.failAt(n.offset, ErrDuplicateParam, "Duplicate parameter name '%s' not allowed in this context", n.name)
				return
			}
			seen[n.name] = true
		}
	}
}

func (p *Parser) parseFunctionDeclaration(async bool) Stmt {
	start := p.startNode()
	p.expect(FunctionToken)
	generator := p.consume(MulToken)
	idStart := p.startNode()
	name := string(p.tok.Value)
	p.expect(IdentifierToken)
	id := &Identifier{NodeBase: p.finishNode(idStart), Name: name}
	p.declareBinding(id, VarKindVar)
	prevAsync, prevGen, prevFn := p.inAsync, p.inGenerator, p.inFunction
	p.inAsync, p.inGenerator, p.inFunction = async, generator, true
	p.tracker.Push(ScopeFunction)
	params := p.parseParamList()
	body, strict := p.parseFunctionBody()
	p.tracker.Pop()
	p.checkDuplicateParams(params, strict, false, generator, async)
	p.inAsync, p.inGenerator, p.inFunction = prevAsync, prevGen, prevFn
	return &FunctionDeclaration{NodeBase: p.finishNode(start), Function: Function{ID: id, Params: params, Body: body, Generator: generator, Async: async}}
}

func (p *Parser) parseClassDeclaration() Stmt {
	return p.parseClass(true).(Stmt)
}

// parseClass parses the shared grammar of class declarations and class
// expressions (spec.md §3: "ClassBody, MethodDefinition,
// PropertyDefinition, StaticBlock"). decl selects which wrapper node is
// returned.
func (p *Parser) parseClass(decl bool) Node {
	start := p.startNode()
	p.expect(ClassToken)
	prevStrict := p.strict
	p.strict = true

	var id *Identifier
	if p.at(IdentifierToken) {
		ids := p.startNode()
		name := string(p.tok.Value)
		p.next()
		id = &Identifier{NodeBase: p.finishNode(ids), Name: name}
		if decl {
			p.declareBinding(id, VarKindLet)
		}
	}
	var super Expr
	if p.consume(ExtendsToken) {
		super = p.parseExprSubscripts()
	}
	body := p.parseClassBody()
	p.strict = prevStrict
	base := p.finishNode(start)
	class := Class{ID: id, SuperClass: super, Body: body}
	if decl {
		return &ClassDeclaration{NodeBase: base, Class: class}
	}
	return &ClassExpression{NodeBase: base, Class: class}
}

func (p *Parser) parseClassBody() *ClassBody {
	start := p.startNode()
	p.expect(OpenBraceToken)
	prevClassBody := p.inClassBody
	p.inClassBody = true
	p.pushPrivateScope()
	var members []ClassMember
	seenConstructor := false
	for !p.at(CloseBraceToken) && !p.at(EOFToken) {
		if p.consume(SemicolonToken) {
			continue
		}
		member, isCtor := p.parseClassMember()
		if isCtor {
			if seenConstructor {
				p.failAt(member.Pos().Start, ErrUnexpectedToken, "A class may only have one constructor")
			}
			seenConstructor = true
		}
		members = append(members, member)
	}
	p.popPrivateScope()
	p.inClassBody = prevClassBody
	p.expect(CloseBraceToken)
	return &ClassBody{NodeBase: p.finishNode(start), Body: members}
}

// privateScope tracks one class body's private-name declarations and
// references, gated entirely behind Options.CheckPrivateFields
// (spec.md §6/§8: `class C { #x; foo(){ return this.#y; } }` must
// raise "Private field '#y' must be declared in an enclosing class").
// Declarations and uses are collected in a single pass over the class
// body and reconciled at the closing brace, so a method may reference
// a private name declared later in the same class.
type privateScope struct {
	declared map[string]bool
	uses     map[string][]int
}

func (p *Parser) pushPrivateScope() {
	if !p.opts.CheckPrivateFields {
		return
	}
	p.privateScopes = append(p.privateScopes, &privateScope{declared: map[string]bool{}, uses: map[string][]int{}})
}

// declarePrivateName records name (without its leading '#') as declared
// in the innermost class body.
func (p *Parser) declarePrivateName(name string) {
	if !p.opts.CheckPrivateFields || len(p.privateScopes) == 0 {
		return
	}
	p.privateScopes[len(p.privateScopes)-1].declared[name] = true
}

// usePrivateName records a reference to name at offset, to be checked
// once the innermost class body (and, if unresolved there, each
// enclosing one) has finished collecting its own declarations.
func (p *Parser) usePrivateName(name string, offset int) {
	if !p.opts.CheckPrivateFields || len(p.privateScopes) == 0 {
		return
	}
	top := p.privateScopes[len(p.privateScopes)-1]
	top.uses[name] = append(top.uses[name], offset)
}

// popPrivateScope reconciles the innermost class body's references
// against its own declarations. An unresolved reference is forwarded to
// the enclosing class body rather than failing immediately, since
// private names resolve through the lexical chain of enclosing classes
// (a nested class may reference an outer class's private fields); only
// a reference that reaches the outermost class body unresolved is an
// error.
func (p *Parser) popPrivateScope() {
	if !p.opts.CheckPrivateFields {
		return
	}
	top := p.privateScopes[len(p.privateScopes)-1]
	p.privateScopes = p.privateScopes[:len(p.privateScopes)-1]
	for name, offsets := range top.uses {
		if top.declared[name] {
			continue
		}
		if len(p.privateScopes) > 0 {
			parent := p.privateScopes[len(p.privateScopes)-1]
			parent.uses[name] = append(parent.uses[name], offsets...)
			continue
		}
		for _, offset := range offsets {
			p.failAt(offset, ErrPrivateFieldUndeclared, "Private field '#%s' must be declared in an enclosing class", name)
		}
	}
}

func (p *Parser) parseClassMember() (ClassMember, bool) {
	start := p.startNode()
	static := false
	if p.atContextual("static") {
		if p.peekAheadStaticBody() {
			p.next()
			static = true
			if p.at(OpenBraceToken) {
				sb := p.parseStaticBlock(start)
				return sb, false
			}
		}
	}

	async := false
	generator := false
	kind := MethodNormal

	if p.atContextual("async") && p.peekAheadIsPropertyName() {
		async = true
		p.next()
	}
	if p.consume(MulToken) {
		generator = true
	}
	if (p.atContextual("get") || p.atContextual("set")) && p.peekAheadIsPropertyName() {
		if string(p.tok.Value) == "get" {
			kind = MethodGet
		} else {
			kind = MethodSet
		}
		p.next()
	}

	computed := p.at(OpenBracketToken)
	key := p.parsePropertyKey()
	if pid, ok := key.(*PrivateIdentifier); ok {
		p.declarePrivateName(pid.Name)
	}
	isCtor := !computed && !static && kind == MethodNormal && isConstructorKey(key)
	if isCtor {
		kind = MethodConstructor
	}

	if p.at(OpenParenToken) {
		fn := p.parseMethodFunction(generator, async)
		m := &MethodDefinition{NodeBase: p.finishNode(start), Key: key, Computed: computed, Value: fn, Kind: kind, Static: static}
		return m, isCtor
	}

	var value Expr
	if p.consume(EqToken) {
		prevFn := p.inFunction
		p.inFunction = true
		value = p.parseAssign()
		p.inFunction = prevFn
	}
	p.semicolon()
	pd := &PropertyDefinition{NodeBase: p.finishNode(start), Key: key, Computed: computed, Value: value, Static: static}
	return pd, false
}

func isConstructorKey(key Expr) bool {
	if id, ok := key.(*Identifier); ok {
		return id.Name == "constructor"
	}
	return false
}

// peekAheadStaticBody reports whether `static` is being used as a
// modifier (followed by something that can start a member) rather than
// as the member's own name (`static() {}`, `static = 1`).
func (p *Parser) peekAheadStaticBody() bool {
	tmp := NewLexer(NewSource(p.src.Bytes()), Options{ECMAVersion: p.opts.ECMAVersion})
	tmp.src.pos = p.src.Pos()
	switch tmp.Next().Type {
	case OpenParenToken, EqToken, SemicolonToken, CloseBraceToken:
		return false
	}
	return true
}

func (p *Parser) parseStaticBlock(start NodeBase) *StaticBlock {
	bstart := p.startNode()
	p.expect(OpenBraceToken)
	prevStatic := p.inStaticBlock
	p.inStaticBlock = true
	p.tracker.Push(ScopeBlock)
	var body []Stmt
	for !p.at(CloseBraceToken) && !p.at(EOFToken) {
		body = append(body, p.parseStatementListItem(false))
	}
	p.tracker.Pop()
	p.inStaticBlock = prevStatic
	p.expect(CloseBraceToken)
	_ = bstart
	return &StaticBlock{NodeBase: p.finishNode(start), Body: body}
}

////////////////////////////////////////////////////////////////
// Modules

func (p *Parser) parseImportDeclaration() Stmt {
	start := p.startNode()
	p.next() // 'import'
	var specs []*ImportSpecifier
	if p.at(StringToken) {
		src := p.parseLiteral().(*Literal)
		attrs := p.parseImportAttributesOpt()
		p.semicolon()
		return &ImportDeclaration{NodeBase: p.finishNode(start), Source: src, Attributes: attrs}
	}
	if p.at(IdentifierToken) {
		ds := p.startNode()
		name := string(p.tok.Value)
		p.next()
		id := &Identifier{NodeBase: p.finishNode(ds), Name: name}
		p.declareBinding(id, VarKindLet)
		specs = append(specs, &ImportSpecifier{NodeBase: id.NodeBase, Kind: ImportSpecifierDefault, Local: id})
		if p.consume(CommaToken) {
			specs = append(specs, p.parseNamedOrNamespaceImports()...)
		}
	} else {
		specs = append(specs, p.parseNamedOrNamespaceImports()...)
	}
	p.expectContextual("from")
	src := p.parseLiteral().(*Literal)
	attrs := p.parseImportAttributesOpt()
	p.semicolon()
	return &ImportDeclaration{NodeBase: p.finishNode(start), Specifiers: specs, Source: src, Attributes: attrs}
}

func (p *Parser) expectContextual(name string) {
	if !p.consumeContextual(name) {
		p.fail(ErrUnexpectedToken, "Unexpected token, expected '%s'", name)
	}
}

func (p *Parser) parseNamedOrNamespaceImports() []*ImportSpecifier {
	if p.consume(MulToken) {
		p.expectContextual("as")
		ls := p.startNode()
		name := string(p.tok.Value)
		p.next()
		local := &Identifier{NodeBase: p.finishNode(ls), Name: name}
		p.declareBinding(local, VarKindLet)
		return []*ImportSpecifier{{NodeBase: local.NodeBase, Kind: ImportSpecifierNamespace, Local: local}}
	}
	p.expect(OpenBraceToken)
	var out []*ImportSpecifier
	for !p.at(CloseBraceToken) {
		ss := p.startNode()
		impName := string(p.tok.Value)
		p.next()
		imported := &Identifier{NodeBase: NodeBase{Range: ss.Range}, Name: impName}
		local := imported
		if p.consumeContextual("as") {
			ls := p.startNode()
			localName := string(p.tok.Value)
			p.next()
			local = &Identifier{NodeBase: p.finishNode(ls), Name: localName}
		}
		p.declareBinding(local, VarKindLet)
		out = append(out, &ImportSpecifier{NodeBase: p.finishNode(ss), Kind: ImportSpecifierNamed, Imported: imported, Local: local})
		if !p.consume(CommaToken) {
			break
		}
	}
	p.expect(CloseBraceToken)
	return out
}

// parseImportAttributesOpt parses a trailing `with { ... }` / legacy
// `assert { ... }` clause, per spec.md §3's ImportAttribute.
func (p *Parser) parseImportAttributesOpt() []*ImportAttribute {
	if !p.at(WithToken) && !p.atContextual("assert") {
		return nil
	}
	p.next()
	p.expect(OpenBraceToken)
	var attrs []*ImportAttribute
	for !p.at(CloseBraceToken) {
		as := p.startNode()
		key := p.parsePropertyKey()
		p.expect(ColonToken)
		val := p.parseLiteral().(*Literal)
		attrs = append(attrs, &ImportAttribute{NodeBase: p.finishNode(as), Key: key, Value: val})
		if !p.consume(CommaToken) {
			break
		}
	}
	p.expect(CloseBraceToken)
	return attrs
}

func (p *Parser) parseExportDeclaration() Stmt {
	start := p.startNode()
	p.next() // 'export'
	if p.consume(DefaultToken) {
		var decl Node
		switch p.tok.Type {
		case FunctionToken:
			decl = p.parseFunctionDeclaration(false)
		case ClassToken:
			decl = p.parseClassDeclaration()
		default:
			if p.atContextual("async") {
				if ok, fn := p.tryParseAsyncFunctionDeclaration(); ok {
					decl = fn
					break
				}
			}
			decl = p.parseAssign()
			p.semicolon()
		}
		return &ExportDefaultDeclaration{NodeBase: p.finishNode(start), Declaration: decl}
	}
	if p.consume(MulToken) {
		var exported *Identifier
		if p.consumeContextual("as") {
			es := p.startNode()
			name := string(p.tok.Value)
			p.next()
			exported = &Identifier{NodeBase: p.finishNode(es), Name: name}
		}
		p.expectContextual("from")
		src := p.parseLiteral().(*Literal)
		attrs := p.parseImportAttributesOpt()
		p.semicolon()
		return &ExportAllDeclaration{NodeBase: p.finishNode(start), Exported: exported, Source: src, Attributes: attrs}
	}
	if p.at(OpenBraceToken) {
		specs := p.parseExportSpecifiers()
		var src *Literal
		var attrs []*ImportAttribute
		if p.consumeContextual("from") {
			src = p.parseLiteral().(*Literal)
			attrs = p.parseImportAttributesOpt()
		}
		p.semicolon()
		return &ExportNamedDeclaration{NodeBase: p.finishNode(start), Specifiers: specs, Source: src, Attributes: attrs}
	}
	var decl Stmt
	switch {
	case p.at(VarToken) || p.at(ConstToken) || p.atContextual("let"):
		decl = p.parseVariableStatement()
	case p.at(FunctionToken):
		decl = p.parseFunctionDeclaration(false)
	case p.at(ClassToken):
		decl = p.parseClassDeclaration()
	case p.atContextual("async"):
		_, fn := p.tryParseAsyncFunctionDeclaration()
		decl = fn
	default:
		p.fail(ErrUnexpectedToken, "Unexpected token")
	}
	return &ExportNamedDeclaration{NodeBase: p.finishNode(start), Declaration: decl}
}

func (p *Parser) parseExportSpecifiers() []*ExportSpecifier {
	p.expect(OpenBraceToken)
	var out []*ExportSpecifier
	for !p.at(CloseBraceToken) {
		ss := p.startNode()
		localName := string(p.tok.Value)
		p.next()
		local := &Identifier{NodeBase: NodeBase{Range: ss.Range}, Name: localName}
		exported := local
		if p.consumeContextual("as") {
			es := p.startNode()
			name := string(p.tok.Value)
			p.next()
			exported = &Identifier{NodeBase: p.finishNode(es), Name: name}
		}
		out = append(out, &ExportSpecifier{NodeBase: p.finishNode(ss), Local: local, Exported: exported})
		if !p.consume(CommaToken) {
			break
		}
	}
	p.expect(CloseBraceToken)
	return out
}
