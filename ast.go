package acornima

// Package-level AST: a closed family of ESTree-shaped node variants,
// implemented as a tagged union of Go structs rather than an inheritance
// hierarchy (spec.md §9: "Implement as a tagged union rather than an
// inheritance hierarchy; visitor dispatch is a switch on the tag"). Shared
// positional fields live in NodeBase, embedded by every variant, per
// spec.md §3 ("Every node carries type, range, loc").

// Node is satisfied by every AST variant.
type Node interface {
	Type() string
	Pos() Range
	Location() SourceLocation
}

// NodeBase carries the positional header every node shares.
type NodeBase struct {
	Range Range
	Loc   SourceLocation
}

// Pos returns the node's source range.
func (n NodeBase) Pos() Range { return n.Range }

// Location returns the node's line/column span.
func (n NodeBase) Location() SourceLocation { return n.Loc }

// Stmt is implemented by every statement-position node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression-position node.
type Expr interface {
	Node
	exprNode()
}

// Pattern is implemented by every binding-pattern node (ArrayPattern,
// ObjectPattern, AssignmentPattern, RestElement, and Identifier/MemberExpression
// when used as an assignment target — ESTree reuses expression node types
// as patterns rather than duplicating them).
type Pattern interface {
	Node
	patternNode()
}

// ModuleDeclaration is implemented by the import/export statement variants.
type ModuleDeclaration interface {
	Stmt
	moduleDeclNode()
}

////////////////////////////////////////////////////////////////
// Program

// SourceTypeTag is the ESTree `sourceType` discriminant on Program.
type SourceTypeTag string

const (
	SourceTypeScript SourceTypeTag = "script"
	SourceTypeModule SourceTypeTag = "module"
)

// Program is the AST root, spec.md §3: "Program (with source_type ∈
// {script, module})".
type Program struct {
	NodeBase
	SourceType SourceTypeTag
	Body       []Stmt
	Strict     bool
	Filename   string
	Comments   []Comment
	// Directives holds the raw text between the quotes (escape sequences
	// not decoded) of every leading string-literal directive (not just
	// "use strict"), in source order.
	Directives []string
}

func (n *Program) Type() string { return "Program" }

////////////////////////////////////////////////////////////////
// Identifiers and literals

// Identifier is a BindingIdentifier / IdentifierReference node.
type Identifier struct {
	NodeBase
	Name string
}

func (n *Identifier) Type() string   { return "Identifier" }
func (n *Identifier) exprNode()      {}
func (n *Identifier) patternNode()   {}

// PrivateIdentifier is a `#name` class-member reference, spec.md §3.
type PrivateIdentifier struct {
	NodeBase
	Name string // without the leading '#'
}

func (n *PrivateIdentifier) Type() string { return "PrivateIdentifier" }
func (n *PrivateIdentifier) exprNode()    {}

// LiteralKind discriminates the payload carried by a Literal node.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBigInt
	LiteralBoolean
	LiteralNull
	LiteralRegExp
)

// Literal covers string/number/bigint/regex/null/boolean literals, per
// spec.md §3 ("Literal (string/number/bigint/regex/null/boolean)").
type Literal struct {
	NodeBase
	Kind    LiteralKind
	Raw     string
	Value   interface{} // string, float64, bool, nil, or *RegExpValue/*BigIntValue
}

func (n *Literal) Type() string { return "Literal" }
func (n *Literal) exprNode()    {}

// RegExpValue is the decoded payload of a regex Literal.
type RegExpValue struct {
	Pattern string
	Flags   string
}

// BigIntValue is the payload of a BigInt Literal: the literal's source
// text without its trailing `n`, kept as written (radix prefix and
// numeric separators included); this parser does not evaluate it to a
// machine integer since evaluation is out of scope per spec.md §1.
type BigIntValue struct {
	Digits string
}

////////////////////////////////////////////////////////////////
// Template literals

// TemplateElement is one static chunk of a TemplateLiteral.
type TemplateElement struct {
	NodeBase
	Raw    string
	Cooked string
	// CookedValid is false when an invalid escape sequence appears in a
	// tagged template, per spec.md §4.1 ("may be null if an invalid
	// escape appears in a tagged template").
	CookedValid bool
	Tail        bool
}

func (n *TemplateElement) Type() string { return "TemplateElement" }

// TemplateLiteral interleaves TemplateElement chunks with substitution
// expressions.
type TemplateLiteral struct {
	NodeBase
	Quasis      []*TemplateElement
	Expressions []Expr
}

func (n *TemplateLiteral) Type() string { return "TemplateLiteral" }
func (n *TemplateLiteral) exprNode()    {}

// TaggedTemplateExpression is `tag\`...\``.
type TaggedTemplateExpression struct {
	NodeBase
	Tag   Expr
	Quasi *TemplateLiteral
}

func (n *TaggedTemplateExpression) Type() string { return "TaggedTemplateExpression" }
func (n *TaggedTemplateExpression) exprNode()    {}

////////////////////////////////////////////////////////////////
// Statements

type ExpressionStatement struct {
	NodeBase
	Expression Expr
}

func (n *ExpressionStatement) Type() string { return "ExpressionStatement" }
func (n *ExpressionStatement) stmtNode()    {}

type BlockStatement struct {
	NodeBase
	Body []Stmt
	// Directives holds the raw text between the quotes (escape sequences
	// not decoded) of every leading string-literal directive in this block's statement list, in source order. Only
	// populated when the block's enclosing strict-mode flag wasn't
	// already set on entry (mirrors the existing directive-prologue
	// strict-mode detection, which runs for any block for simplicity
	// rather than being restricted to function bodies).
	Directives []string
}

func (n *BlockStatement) Type() string { return "BlockStatement" }
func (n *BlockStatement) stmtNode()    {}

type EmptyStatement struct{ NodeBase }

func (n *EmptyStatement) Type() string { return "EmptyStatement" }
func (n *EmptyStatement) stmtNode()    {}

type DebuggerStatement struct{ NodeBase }

func (n *DebuggerStatement) Type() string { return "DebuggerStatement" }
func (n *DebuggerStatement) stmtNode()    {}

type WithStatement struct {
	NodeBase
	Object Expr
	Body   Stmt
}

func (n *WithStatement) Type() string { return "WithStatement" }
func (n *WithStatement) stmtNode()    {}

type ReturnStatement struct {
	NodeBase
	Argument Expr // nil if bare `return;`
}

func (n *ReturnStatement) Type() string { return "ReturnStatement" }
func (n *ReturnStatement) stmtNode()    {}

type LabeledStatement struct {
	NodeBase
	Label *Identifier
	Body  Stmt
}

func (n *LabeledStatement) Type() string { return "LabeledStatement" }
func (n *LabeledStatement) stmtNode()    {}

type BreakStatement struct {
	NodeBase
	Label *Identifier // nil if unlabeled
}

func (n *BreakStatement) Type() string { return "BreakStatement" }
func (n *BreakStatement) stmtNode()    {}

type ContinueStatement struct {
	NodeBase
	Label *Identifier // nil if unlabeled
}

func (n *ContinueStatement) Type() string { return "ContinueStatement" }
func (n *ContinueStatement) stmtNode()    {}

type IfStatement struct {
	NodeBase
	Test       Expr
	Consequent Stmt
	Alternate  Stmt // nil if no else branch
}

func (n *IfStatement) Type() string { return "IfStatement" }
func (n *IfStatement) stmtNode()    {}

type SwitchCase struct {
	NodeBase
	Test       Expr // nil for `default:`
	Consequent []Stmt
}

func (n *SwitchCase) Type() string { return "SwitchCase" }

type SwitchStatement struct {
	NodeBase
	Discriminant Expr
	Cases        []*SwitchCase
}

func (n *SwitchStatement) Type() string { return "SwitchStatement" }
func (n *SwitchStatement) stmtNode()    {}

type ThrowStatement struct {
	NodeBase
	Argument Expr
}

func (n *ThrowStatement) Type() string { return "ThrowStatement" }
func (n *ThrowStatement) stmtNode()    {}

type CatchClause struct {
	NodeBase
	Param Pattern // nil if `catch {}` with no binding
	Body  *BlockStatement
}

func (n *CatchClause) Type() string { return "CatchClause" }

type TryStatement struct {
	NodeBase
	Block     *BlockStatement
	Handler   *CatchClause // nil if no catch
	Finalizer *BlockStatement // nil if no finally
}

func (n *TryStatement) Type() string { return "TryStatement" }
func (n *TryStatement) stmtNode()    {}

type WhileStatement struct {
	NodeBase
	Test Expr
	Body Stmt
}

func (n *WhileStatement) Type() string { return "WhileStatement" }
func (n *WhileStatement) stmtNode()    {}

type DoWhileStatement struct {
	NodeBase
	Body Stmt
	Test Expr
}

func (n *DoWhileStatement) Type() string { return "DoWhileStatement" }
func (n *DoWhileStatement) stmtNode()    {}

// ForStatement's Init may be a VariableDeclaration or an expression, or nil.
type ForStatement struct {
	NodeBase
	Init   Node // *VariableDeclaration, Expr, or nil
	Test   Expr // nil
	Update Expr // nil
	Body   Stmt
}

func (n *ForStatement) Type() string { return "ForStatement" }
func (n *ForStatement) stmtNode()    {}

type ForInStatement struct {
	NodeBase
	Left  Node // *VariableDeclaration or Pattern/Expr assignment target
	Right Expr
	Body  Stmt
}

func (n *ForInStatement) Type() string { return "ForInStatement" }
func (n *ForInStatement) stmtNode()    {}

type ForOfStatement struct {
	NodeBase
	Await bool
	Left  Node
	Right Expr
	Body  Stmt
}

func (n *ForOfStatement) Type() string { return "ForOfStatement" }
func (n *ForOfStatement) stmtNode()    {}

////////////////////////////////////////////////////////////////
// Declarations

type VarKind string

const (
	VarKindVar   VarKind = "var"
	VarKindLet   VarKind = "let"
	VarKindConst VarKind = "const"
)

type VariableDeclarator struct {
	NodeBase
	ID   Pattern
	Init Expr // nil if no initializer
}

func (n *VariableDeclarator) Type() string { return "VariableDeclarator" }

type VariableDeclaration struct {
	NodeBase
	Kind         VarKind
	Declarations []*VariableDeclarator
}

func (n *VariableDeclaration) Type() string { return "VariableDeclaration" }
func (n *VariableDeclaration) stmtNode()    {}
func (n *VariableDeclaration) exprNode()    {} // for-head convenience; never a real expression position

// Params is an ordered parameter list; the final element may be a
// RestElement.
type Function struct {
	NodeBase
	ID        *Identifier // nil for anonymous function expressions
	Params    []Pattern
	Body      *BlockStatement // nil for concise-body arrows (use ExprBody)
	ExprBody  Expr            // set instead of Body for `=> expr` arrows
	Generator bool
	Async     bool
}

type FunctionDeclaration struct {
	NodeBase
	Function
}

func (n *FunctionDeclaration) Type() string { return "FunctionDeclaration" }
func (n *FunctionDeclaration) stmtNode()    {}

type FunctionExpression struct {
	NodeBase
	Function
}

func (n *FunctionExpression) Type() string { return "FunctionExpression" }
func (n *FunctionExpression) exprNode()    {}

type ArrowFunctionExpression struct {
	NodeBase
	Function
}

func (n *ArrowFunctionExpression) Type() string { return "ArrowFunctionExpression" }
func (n *ArrowFunctionExpression) exprNode()    {}

////////////////////////////////////////////////////////////////
// Classes

type PropertyKind string

const (
	PropertyInit   PropertyKind = "init"
	PropertyGet    PropertyKind = "get"
	PropertySet    PropertyKind = "set"
)

type MethodKind string

const (
	MethodNormal      MethodKind = "method"
	MethodConstructor MethodKind = "constructor"
	MethodGet         MethodKind = "get"
	MethodSet         MethodKind = "set"
)

type MethodDefinition struct {
	NodeBase
	Key       Expr // Identifier, PrivateIdentifier, Literal, or computed Expr
	Computed  bool
	Value     *FunctionExpression
	Kind      MethodKind
	Static    bool
}

func (n *MethodDefinition) Type() string { return "MethodDefinition" }

type PropertyDefinition struct {
	NodeBase
	Key      Expr // Identifier, PrivateIdentifier, Literal, or computed Expr
	Computed bool
	Value    Expr // nil if no initializer
	Static   bool
}

func (n *PropertyDefinition) Type() string { return "PropertyDefinition" }

type StaticBlock struct {
	NodeBase
	Body []Stmt
}

func (n *StaticBlock) Type() string { return "StaticBlock" }

// ClassMember is satisfied by MethodDefinition, PropertyDefinition, and
// StaticBlock, the three ClassBody member shapes spec.md §3 names.
type ClassMember interface {
	Node
}

type ClassBody struct {
	NodeBase
	Body []ClassMember
}

func (n *ClassBody) Type() string { return "ClassBody" }

type Class struct {
	NodeBase
	ID         *Identifier // nil for anonymous class expressions
	SuperClass Expr        // nil if no `extends`
	Body       *ClassBody
}

type ClassDeclaration struct {
	NodeBase
	Class
}

func (n *ClassDeclaration) Type() string { return "ClassDeclaration" }
func (n *ClassDeclaration) stmtNode()    {}

type ClassExpression struct {
	NodeBase
	Class
}

func (n *ClassExpression) Type() string { return "ClassExpression" }
func (n *ClassExpression) exprNode()    {}

////////////////////////////////////////////////////////////////
// Patterns

type RestElement struct {
	NodeBase
	Argument Pattern
}

func (n *RestElement) Type() string { return "RestElement" }
func (n *RestElement) patternNode() {}
func (n *RestElement) exprNode()    {} // appears in call-argument spread-like positions pre-resolution

type AssignmentPattern struct {
	NodeBase
	Left  Pattern
	Right Expr
}

func (n *AssignmentPattern) Type() string { return "AssignmentPattern" }
func (n *AssignmentPattern) patternNode() {}
func (n *AssignmentPattern) exprNode()    {}

type ArrayPattern struct {
	NodeBase
	// Elements may contain nil entries for elisions (`[, x]`).
	Elements []Pattern
}

func (n *ArrayPattern) Type() string { return "ArrayPattern" }
func (n *ArrayPattern) patternNode() {}
func (n *ArrayPattern) exprNode()    {}

type ObjectPatternProperty struct {
	NodeBase
	Key      Expr
	Value    Pattern
	Computed bool
	Shorthand bool
}

func (n *ObjectPatternProperty) Type() string { return "Property" }

type ObjectPattern struct {
	NodeBase
	Properties []*ObjectPatternProperty
	Rest       *RestElement // nil if no `...rest`
}

func (n *ObjectPattern) Type() string { return "ObjectPattern" }
func (n *ObjectPattern) patternNode() {}
func (n *ObjectPattern) exprNode()    {}

////////////////////////////////////////////////////////////////
// Expressions

type ThisExpression struct{ NodeBase }

func (n *ThisExpression) Type() string { return "ThisExpression" }
func (n *ThisExpression) exprNode()    {}

type Super struct{ NodeBase }

func (n *Super) Type() string { return "Super" }
func (n *Super) exprNode()    {}

type SpreadElement struct {
	NodeBase
	Argument Expr
}

func (n *SpreadElement) Type() string { return "SpreadElement" }
func (n *SpreadElement) exprNode()    {}

type ArrayExpression struct {
	NodeBase
	// Elements may contain nil entries for elisions.
	Elements []Expr
}

func (n *ArrayExpression) Type() string { return "ArrayExpression" }
func (n *ArrayExpression) exprNode()    {}

type Property struct {
	NodeBase
	Key       Expr
	Value     Expr
	Kind      PropertyKind
	Computed  bool
	Shorthand bool
	Method    bool
}

func (n *Property) Type() string { return "Property" }
func (n *Property) exprNode()    {}

type ObjectExpression struct {
	NodeBase
	Properties []Expr // *Property or *SpreadElement
}

func (n *ObjectExpression) Type() string { return "ObjectExpression" }
func (n *ObjectExpression) exprNode()    {}

type SequenceExpression struct {
	NodeBase
	Expressions []Expr
}

func (n *SequenceExpression) Type() string { return "SequenceExpression" }
func (n *SequenceExpression) exprNode()    {}

type UnaryExpression struct {
	NodeBase
	Operator string
	Prefix   bool
	Argument Expr
}

func (n *UnaryExpression) Type() string { return "UnaryExpression" }
func (n *UnaryExpression) exprNode()    {}

type UpdateExpression struct {
	NodeBase
	Operator string
	Prefix   bool
	Argument Expr
}

func (n *UpdateExpression) Type() string { return "UpdateExpression" }
func (n *UpdateExpression) exprNode()    {}

type BinaryExpression struct {
	NodeBase
	Operator string
	Left     Expr
	Right    Expr
}

func (n *BinaryExpression) Type() string { return "BinaryExpression" }
func (n *BinaryExpression) exprNode()    {}

type LogicalExpression struct {
	NodeBase
	Operator string // "&&", "||", "??"
	Left     Expr
	Right    Expr
}

func (n *LogicalExpression) Type() string { return "LogicalExpression" }
func (n *LogicalExpression) exprNode()    {}

type AssignmentExpression struct {
	NodeBase
	Operator string
	Left     Node // Pattern for destructuring forms, Expr otherwise
	Right    Expr
}

func (n *AssignmentExpression) Type() string { return "AssignmentExpression" }
func (n *AssignmentExpression) exprNode()    {}

type ConditionalExpression struct {
	NodeBase
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

func (n *ConditionalExpression) Type() string { return "ConditionalExpression" }
func (n *ConditionalExpression) exprNode()    {}

// MemberExpression covers both `.identifier` and `[expression]` access,
// discriminated by Computed, and optional-chain links via Optional.
type MemberExpression struct {
	NodeBase
	Object   Expr
	Property Expr // Identifier/PrivateIdentifier when !Computed, any Expr when Computed
	Computed bool
	Optional bool
}

func (n *MemberExpression) Type() string { return "MemberExpression" }
func (n *MemberExpression) exprNode()    {}
func (n *MemberExpression) patternNode() {} // valid as an assignment target

type CallExpression struct {
	NodeBase
	Callee    Expr
	Arguments []Expr // elements may be *SpreadElement
	Optional  bool
}

func (n *CallExpression) Type() string { return "CallExpression" }
func (n *CallExpression) exprNode()    {}

type NewExpression struct {
	NodeBase
	Callee    Expr
	Arguments []Expr
}

func (n *NewExpression) Type() string { return "NewExpression" }
func (n *NewExpression) exprNode()    {}

// ChainExpression wraps an optional-chain member/call tree so that a
// single `?.` anywhere in the chain short-circuits the whole expression,
// per spec.md §3 and the worked example in spec.md §8.
type ChainExpression struct {
	NodeBase
	Expression Expr // *MemberExpression or *CallExpression
}

func (n *ChainExpression) Type() string { return "ChainExpression" }
func (n *ChainExpression) exprNode()    {}

// MetaProperty covers `new.target` and `import.meta`.
type MetaProperty struct {
	NodeBase
	Meta     *Identifier
	Property *Identifier
}

func (n *MetaProperty) Type() string { return "MetaProperty" }
func (n *MetaProperty) exprNode()    {}

// ImportExpression is the dynamic `import(...)` call form.
type ImportExpression struct {
	NodeBase
	Source  Expr
	Options Expr // nil if no second argument
}

func (n *ImportExpression) Type() string { return "ImportExpression" }
func (n *ImportExpression) exprNode()    {}

type YieldExpression struct {
	NodeBase
	Argument Expr // nil for bare `yield`
	Delegate bool // true for `yield*`
}

func (n *YieldExpression) Type() string { return "YieldExpression" }
func (n *YieldExpression) exprNode()    {}

type AwaitExpression struct {
	NodeBase
	Argument Expr
}

func (n *AwaitExpression) Type() string { return "AwaitExpression" }
func (n *AwaitExpression) exprNode()    {}

// ParenthesizedExpression is only produced when Options.PreserveParens is
// set, per spec.md §6.
type ParenthesizedExpression struct {
	NodeBase
	Expression Expr
}

func (n *ParenthesizedExpression) Type() string { return "ParenthesizedExpression" }
func (n *ParenthesizedExpression) exprNode()    {}

////////////////////////////////////////////////////////////////
// Modules

type ImportAttribute struct {
	NodeBase
	Key   Expr // Identifier or string Literal
	Value *Literal
}

func (n *ImportAttribute) Type() string { return "ImportAttribute" }

type ImportSpecifierKind int

const (
	ImportSpecifierNamed ImportSpecifierKind = iota
	ImportSpecifierDefault
	ImportSpecifierNamespace
)

// ImportSpecifier unifies ESTree's ImportSpecifier / ImportDefaultSpecifier
// / ImportNamespaceSpecifier variants behind Kind, since all three share
// the same two fields; callers switch on Kind instead of on three structs.
type ImportSpecifier struct {
	NodeBase
	Kind     ImportSpecifierKind
	Imported *Identifier // nil for Default/Namespace
	Local    *Identifier
}

func (n *ImportSpecifier) Type() string {
	switch n.Kind {
	case ImportSpecifierDefault:
		return "ImportDefaultSpecifier"
	case ImportSpecifierNamespace:
		return "ImportNamespaceSpecifier"
	default:
		return "ImportSpecifier"
	}
}

type ImportDeclaration struct {
	NodeBase
	Specifiers []*ImportSpecifier
	Source     *Literal
	Attributes []*ImportAttribute
}

func (n *ImportDeclaration) Type() string      { return "ImportDeclaration" }
func (n *ImportDeclaration) stmtNode()         {}
func (n *ImportDeclaration) moduleDeclNode()   {}

type ExportSpecifier struct {
	NodeBase
	Local    *Identifier
	Exported *Identifier
}

func (n *ExportSpecifier) Type() string { return "ExportSpecifier" }

type ExportNamedDeclaration struct {
	NodeBase
	Declaration Stmt // nil when exporting a specifier list instead
	Specifiers  []*ExportSpecifier
	Source      *Literal // non-nil for `export {...} from "..."`
	Attributes  []*ImportAttribute
}

func (n *ExportNamedDeclaration) Type() string    { return "ExportNamedDeclaration" }
func (n *ExportNamedDeclaration) stmtNode()       {}
func (n *ExportNamedDeclaration) moduleDeclNode() {}

type ExportDefaultDeclaration struct {
	NodeBase
	Declaration Node // Stmt (Function/Class declaration) or Expr
}

func (n *ExportDefaultDeclaration) Type() string    { return "ExportDefaultDeclaration" }
func (n *ExportDefaultDeclaration) stmtNode()       {}
func (n *ExportDefaultDeclaration) moduleDeclNode() {}

type ExportAllDeclaration struct {
	NodeBase
	Exported   *Identifier // nil for `export * from "..."`, set for `export * as ns from "..."`
	Source     *Literal
	Attributes []*ImportAttribute
}

func (n *ExportAllDeclaration) Type() string    { return "ExportAllDeclaration" }
func (n *ExportAllDeclaration) stmtNode()       {}
func (n *ExportAllDeclaration) moduleDeclNode() {}
