package acornima

import "reflect"

// Visitor is called once per node Walk descends into. Returning false
// skips that node's children (spec.md §9: "visitor dispatch is a switch
// on the tag"; generating typed visitor boilerplate from it is out of
// scope, per spec.md §1's Non-goals).
type Visitor func(n Node) bool

// Walk performs a depth-first traversal of n, calling v on every node
// reachable from it. The dispatch is a single switch over the closed
// node family rather than a reflection-based walk, the shape spec.md §9
// calls for.
func Walk(n Node, v Visitor) {
	if n == nil || isNilNode(n) || !v(n) {
		return
	}
	switch t := n.(type) {
	case *Program:
		for _, s := range t.Body {
			Walk(s, v)
		}
	case *ExpressionStatement:
		Walk(t.Expression, v)
	case *BlockStatement:
		for _, s := range t.Body {
			Walk(s, v)
		}
	case *EmptyStatement, *DebuggerStatement, *ThisExpression, *Super, *Identifier, *PrivateIdentifier, *Literal:
		// leaves
	case *WithStatement:
		Walk(t.Object, v)
		Walk(t.Body, v)
	case *ReturnStatement:
		Walk(t.Argument, v)
	case *LabeledStatement:
		Walk(t.Label, v)
		Walk(t.Body, v)
	case *BreakStatement:
		Walk(t.Label, v)
	case *ContinueStatement:
		Walk(t.Label, v)
	case *IfStatement:
		Walk(t.Test, v)
		Walk(t.Consequent, v)
		Walk(t.Alternate, v)
	case *SwitchStatement:
		Walk(t.Discriminant, v)
		for _, c := range t.Cases {
			Walk(c, v)
		}
	case *SwitchCase:
		Walk(t.Test, v)
		for _, s := range t.Consequent {
			Walk(s, v)
		}
	case *ThrowStatement:
		Walk(t.Argument, v)
	case *TryStatement:
		Walk(t.Block, v)
		Walk(t.Handler, v)
		Walk(t.Finalizer, v)
	case *CatchClause:
		Walk(t.Param, v)
		Walk(t.Body, v)
	case *WhileStatement:
		Walk(t.Test, v)
		Walk(t.Body, v)
	case *DoWhileStatement:
		Walk(t.Body, v)
		Walk(t.Test, v)
	case *ForStatement:
		Walk(t.Init, v)
		Walk(t.Test, v)
		Walk(t.Update, v)
		Walk(t.Body, v)
	case *ForInStatement:
		Walk(t.Left, v)
		Walk(t.Right, v)
		Walk(t.Body, v)
	case *ForOfStatement:
		Walk(t.Left, v)
		Walk(t.Right, v)
		Walk(t.Body, v)
	case *VariableDeclaration:
		for _, d := range t.Declarations {
			Walk(d, v)
		}
	case *VariableDeclarator:
		Walk(t.ID, v)
		Walk(t.Init, v)
	case *FunctionDeclaration:
		walkFunction(&t.Function, v)
	case *FunctionExpression:
		walkFunction(&t.Function, v)
	case *ArrowFunctionExpression:
		walkFunction(&t.Function, v)
	case *ClassDeclaration:
		walkClass(&t.Class, v)
	case *ClassExpression:
		walkClass(&t.Class, v)
	case *ClassBody:
		for _, m := range t.Body {
			Walk(m, v)
		}
	case *MethodDefinition:
		Walk(t.Key, v)
		Walk(t.Value, v)
	case *PropertyDefinition:
		Walk(t.Key, v)
		Walk(t.Value, v)
	case *StaticBlock:
		for _, s := range t.Body {
			Walk(s, v)
		}
	case *RestElement:
		Walk(t.Argument, v)
	case *AssignmentPattern:
		Walk(t.Left, v)
		Walk(t.Right, v)
	case *ArrayPattern:
		for _, e := range t.Elements {
			Walk(e, v)
		}
	case *ObjectPattern:
		for _, pr := range t.Properties {
			Walk(pr, v)
		}
		Walk(t.Rest, v)
	case *ObjectPatternProperty:
		Walk(t.Key, v)
		Walk(t.Value, v)
	case *SpreadElement:
		Walk(t.Argument, v)
	case *ArrayExpression:
		for _, e := range t.Elements {
			Walk(e, v)
		}
	case *Property:
		Walk(t.Key, v)
		Walk(t.Value, v)
	case *ObjectExpression:
		for _, pr := range t.Properties {
			Walk(pr, v)
		}
	case *SequenceExpression:
		for _, e := range t.Expressions {
			Walk(e, v)
		}
	case *UnaryExpression:
		Walk(t.Argument, v)
	case *UpdateExpression:
		Walk(t.Argument, v)
	case *BinaryExpression:
		Walk(t.Left, v)
		Walk(t.Right, v)
	case *LogicalExpression:
		Walk(t.Left, v)
		Walk(t.Right, v)
	case *AssignmentExpression:
		Walk(t.Left, v)
		Walk(t.Right, v)
	case *ConditionalExpression:
		Walk(t.Test, v)
		Walk(t.Consequent, v)
		Walk(t.Alternate, v)
	case *MemberExpression:
		Walk(t.Object, v)
		Walk(t.Property, v)
	case *CallExpression:
		Walk(t.Callee, v)
		for _, a := range t.Arguments {
			Walk(a, v)
		}
	case *NewExpression:
		Walk(t.Callee, v)
		for _, a := range t.Arguments {
			Walk(a, v)
		}
	case *ChainExpression:
		Walk(t.Expression, v)
	case *MetaProperty:
		Walk(t.Meta, v)
		Walk(t.Property, v)
	case *ImportExpression:
		Walk(t.Source, v)
		Walk(t.Options, v)
	case *YieldExpression:
		Walk(t.Argument, v)
	case *AwaitExpression:
		Walk(t.Argument, v)
	case *ParenthesizedExpression:
		Walk(t.Expression, v)
	case *TemplateElement:
		// leaf
	case *TemplateLiteral:
		for _, q := range t.Quasis {
			Walk(q, v)
		}
		for _, e := range t.Expressions {
			Walk(e, v)
		}
	case *TaggedTemplateExpression:
		Walk(t.Tag, v)
		Walk(t.Quasi, v)
	case *ImportDeclaration:
		for _, s := range t.Specifiers {
			Walk(s, v)
		}
		Walk(t.Source, v)
		for _, a := range t.Attributes {
			Walk(a, v)
		}
	case *ImportSpecifier:
		Walk(t.Imported, v)
		Walk(t.Local, v)
	case *ImportAttribute:
		Walk(t.Key, v)
		Walk(t.Value, v)
	case *ExportNamedDeclaration:
		Walk(t.Declaration, v)
		for _, s := range t.Specifiers {
			Walk(s, v)
		}
		Walk(t.Source, v)
		for _, a := range t.Attributes {
			Walk(a, v)
		}
	case *ExportSpecifier:
		Walk(t.Local, v)
		Walk(t.Exported, v)
	case *ExportDefaultDeclaration:
		Walk(t.Declaration, v)
	case *ExportAllDeclaration:
		Walk(t.Exported, v)
		Walk(t.Source, v)
		for _, a := range t.Attributes {
			Walk(a, v)
		}
	}
}

// isNilNode reports whether n wraps a typed nil pointer — the classic Go
// gotcha where an interface holding a nil *T is itself a non-nil
// interface value. Optional AST fields (Alternate, Handler, Init, ...)
// are concrete pointer types, so a plain `n == nil` check after boxing
// into the Node interface would miss them.
func isNilNode(n Node) bool {
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	}
	return false
}

func walkFunction(fn *Function, v Visitor) {
	Walk(fn.ID, v)
	for _, p := range fn.Params {
		Walk(p, v)
	}
	Walk(fn.Body, v)
	Walk(fn.ExprBody, v)
}

func walkClass(c *Class, v Visitor) {
	Walk(c.ID, v)
	Walk(c.SuperClass, v)
	Walk(c.Body, v)
}
