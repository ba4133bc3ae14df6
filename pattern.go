package acornima

// exprToPattern reinterprets an already-parsed expression tree as a
// binding/assignment pattern, the second half of spec.md §4.1's
// array/object literal-vs-pattern cover grammar: array and object
// literals parse identically to patterns until the surrounding
// production (assignment LHS, arrow parameter, destructuring
// declarator) reveals which one was intended.
func (p *Parser) exprToPattern(e Expr, offset int) Pattern {
	switch v := e.(type) {
	case *Identifier:
		p.checkStrictEvalArguments(v.Name, v.Pos().Start)
		return v
	case *MemberExpression:
		return v
	case *ArrayExpression:
		elems := make([]Pattern, len(v.Elements))
		for i, el := range v.Elements {
			if el == nil {
				continue
			}
			elems[i] = p.exprToPattern(el, el.Pos().Start)
		}
		return &ArrayPattern{NodeBase: v.NodeBase, Elements: elems}
	case *ObjectExpression:
		return p.objectExprToPattern(v)
	case *AssignmentExpression:
		if v.Operator != "=" {
			p.failAt(offset, ErrInvalidLHS, "Invalid left-hand side in assignment")
		}
		left, ok := v.Left.(Pattern)
		if !ok {
			left = p.exprToPattern(v.Left.(Expr), offset)
		}
		return &AssignmentPattern{NodeBase: v.NodeBase, Left: left, Right: v.Right}
	case *SpreadElement:
		return &RestElement{NodeBase: v.NodeBase, Argument: p.exprToPattern(v.Argument, v.Argument.Pos().Start)}
	case Pattern:
		return v
	default:
		p.failAt(offset, ErrInvalidLHS, "Invalid destructuring assignment target")
		return &Identifier{NodeBase: NodeBase{Range: Range{Start: offset, End: offset}}, Name: "(error)"}
	}
}

func (p *Parser) objectExprToPattern(obj *ObjectExpression) Pattern {
	out := &ObjectPattern{NodeBase: obj.NodeBase}
	for i, prop := range obj.Properties {
		if se, ok := prop.(*SpreadElement); ok {
			if i != len(obj.Properties)-1 {
				p.failAt(se.Pos().Start, ErrInvalidLHS, "Rest element must be last element")
			}
			out.Rest = &RestElement{NodeBase: se.NodeBase, Argument: p.exprToPattern(se.Argument, se.Argument.Pos().Start)}
			continue
		}
		pr := prop.(*Property)
		val := p.exprToPattern(pr.Value, pr.Value.Pos().Start)
		out.Properties = append(out.Properties, &ObjectPatternProperty{
			NodeBase:  pr.NodeBase,
			Key:       pr.Key,
			Value:     val,
			Computed:  pr.Computed,
			Shorthand: pr.Shorthand,
		})
	}
	return out
}

// parseBindingTarget parses a BindingIdentifier or a destructuring
// BindingPattern (ArrayPattern/ObjectPattern built directly, not via
// exprToPattern, since a declaration context never needs the cover
// grammar's expression detour).
func (p *Parser) parseBindingTarget() Pattern {
	switch p.tok.Type {
	case OpenBracketToken:
		return p.parseArrayBindingPattern()
	case OpenBraceToken:
		return p.parseObjectBindingPattern()
	default:
		return p.parseBindingIdentifier()
	}
}

func (p *Parser) parseBindingIdentifier() *Identifier {
	start := p.startNode()
	name := string(p.tok.Value)
	if isReservedWord(name, p.strict, p.moduleMode) {
		p.failAt(start.Range.Start, ErrReservedWord, "Unexpected reserved word '%s'", name)
	}
	if p.strict && strictBindReservedNames[name] {
		p.failAt(start.Range.Start, ErrReservedWord, "Binding '%s' in strict mode", name)
	}
	p.checkContextualKeywordAsIdentifier(name, start.Range.Start)
	p.expect(IdentifierToken)
	return &Identifier{NodeBase: p.finishNode(start), Name: name}
}

func (p *Parser) parseBindingTargetWithDefault() Pattern {
	target := p.parseBindingTarget()
	if !p.consume(EqToken) {
		return target
	}
	def := p.parseAssign()
	return &AssignmentPattern{NodeBase: p.nodeFromPattern(target), Left: target, Right: def}
}

func (p *Parser) nodeFromPattern(pat Pattern) NodeBase {
	base := NodeBase{Range: Range{Start: pat.Pos().Start}, Loc: SourceLocation{Start: pat.Location().Start}}
	return p.finishNode(base)
}

func (p *Parser) parseArrayBindingPattern() Pattern {
	start := p.startNode()
	p.expect(OpenBracketToken)
	var elems []Pattern
	for !p.at(CloseBracketToken) {
		if p.at(CommaToken) {
			elems = append(elems, nil)
			p.next()
			continue
		}
		if p.at(EllipsisToken) {
			rs := p.startNode()
			p.next()
			arg := p.parseBindingTarget()
			elems = append(elems, &RestElement{NodeBase: p.finishNode(rs), Argument: arg})
		} else {
			elems = append(elems, p.parseBindingTargetWithDefault())
		}
		if !p.at(CloseBracketToken) {
			p.expect(CommaToken)
		}
	}
	p.expect(CloseBracketToken)
	return &ArrayPattern{NodeBase: p.finishNode(start), Elements: elems}
}

func (p *Parser) parseObjectBindingPattern() Pattern {
	start := p.startNode()
	p.expect(OpenBraceToken)
	out := &ObjectPattern{}
	for !p.at(CloseBraceToken) {
		if p.at(EllipsisToken) {
			rs := p.startNode()
			p.next()
			arg := p.parseBindingIdentifier()
			out.Rest = &RestElement{NodeBase: p.finishNode(rs), Argument: arg}
			break
		}
		pstart := p.startNode()
		computed := p.at(OpenBracketToken)
		key := p.parsePropertyKey()
		var value Pattern
		shorthand := false
		if p.consume(ColonToken) {
			value = p.parseBindingTargetWithDefault()
		} else {
			id, ok := key.(*Identifier)
			if !ok {
				p.failAt(pstart.Range.Start, ErrUnexpectedToken, "Unexpected token")
			}
			shorthand = true
			if p.consume(EqToken) {
				def := p.parseAssign()
				value = &AssignmentPattern{NodeBase: p.nodeFromPattern(id), Left: id, Right: def}
			} else {
				value = id
			}
		}
		out.Properties = append(out.Properties, &ObjectPatternProperty{
			NodeBase: p.finishNode(pstart), Key: key, Value: value, Computed: computed, Shorthand: shorthand,
		})
		if !p.consume(CommaToken) {
			break
		}
	}
	p.expect(CloseBraceToken)
	out.NodeBase = p.finishNode(start)
	return out
}
