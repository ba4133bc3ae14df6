package acornima

import "fmt"

// Error is a structured parse diagnostic, matching spec.md §7's taxonomy:
// every error carries a message, a position, and (via Code) a stable key.
// Shape and constructor are grounded directly on tdewolff/parse.Error /
// parse.NewError.
type Error struct {
	Message string
	Code     ErrorCode
	Range    Range
	Line     int
	Column   int
	Context  string
}

// ErrorCode is the stable message key referenced in spec.md §7 ("a stable
// error code key"), so tooling can switch on error kind without parsing
// Message strings.
type ErrorCode string

const (
	ErrUnexpectedToken       ErrorCode = "unexpected-token"
	ErrUnterminatedString    ErrorCode = "unterminated-string"
	ErrUnterminatedTemplate  ErrorCode = "unterminated-template"
	ErrUnterminatedRegExp    ErrorCode = "unterminated-regexp"
	ErrUnterminatedComment   ErrorCode = "unterminated-comment"
	ErrInvalidEscape         ErrorCode = "invalid-escape"
	ErrInvalidNumericLiteral ErrorCode = "invalid-numeric-literal"
	ErrInvalidPrivateName    ErrorCode = "invalid-private-name"
	ErrMissingSemicolon      ErrorCode = "missing-semicolon"
	ErrInvalidLHS            ErrorCode = "invalid-left-hand-side"
	ErrAmbiguousNullish      ErrorCode = "ambiguous-nullish-logical"
	ErrUnparenthesizedUnaryExp ErrorCode = "unparenthesized-unary-exponent"
	ErrDuplicateBinding      ErrorCode = "duplicate-binding"
	ErrReservedWord          ErrorCode = "reserved-word"
	ErrDuplicateParam        ErrorCode = "duplicate-parameter"
	ErrSuperOutsideClass     ErrorCode = "super-outside-class"
	ErrNewTargetOutsideFn    ErrorCode = "new-target-outside-function"
	ErrIllegalAwaitOrYield   ErrorCode = "illegal-await-or-yield"
	ErrDuplicateProto        ErrorCode = "duplicate-proto"
	ErrInvalidRegExpFlags    ErrorCode = "invalid-regexp-flags"
	ErrLegacyOctalInStrict   ErrorCode = "legacy-octal-in-strict"
	ErrModuleSyntaxInScript  ErrorCode = "module-syntax-in-script"
	ErrReturnOutsideFunction ErrorCode = "return-outside-function"
	ErrUnknownLabel          ErrorCode = "unknown-label"
	ErrIllegalBreak          ErrorCode = "illegal-break"
	ErrIllegalContinue       ErrorCode = "illegal-continue"
	ErrDuplicateLabel        ErrorCode = "duplicate-label"
	ErrPrivateFieldUndeclared ErrorCode = "private-field-undeclared"
)

// NewError builds an *Error at offset within src, rendering the line,
// column, and source-excerpt context the way parse.NewError does.
func NewError(src []byte, offset int, code ErrorCode, format string, args ...interface{}) *Error {
	line, column, context := Position(src, offset)
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Code:    code,
		Range:   Range{Start: offset, End: offset},
		Line:    line,
		Column:  column,
		Context: context,
	}
}

// Position returns the line, column, and rendered context of the error.
func (e *Error) Position() (int, int, string) { return e.Line, e.Column, e.Context }

// Error implements the error interface, rendering in the same shape as
// tdewolff/parse.Error.Error().
func (e *Error) Error() string {
	return fmt.Sprintf("%s on line %d and column %d\n%s", e.Message, e.Line, e.Column, e.Context)
}

// ErrorList accumulates diagnostics in tolerant mode (spec.md §7: "errors
// are accumulated into the result"). It implements error so a non-empty
// list can itself be returned/wrapped where a single error is expected.
type ErrorList []*Error

func (l ErrorList) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	if len(l) == 1 {
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more error(s))", l[0].Error(), len(l)-1)
}

// Add appends err, ignoring a nil error.
func (l *ErrorList) Add(err *Error) {
	if err != nil {
		*l = append(*l, err)
	}
}
