package acornima

import (
	"fmt"
	"strings"
)

// Position recomputes the (line, column, context) triple for a byte offset
// into src, for use in diagnostics constructed without an active Source
// (e.g. from a pre-computed range after parsing finished). It walks from
// the start of the buffer exactly as tdewolff/parse.Position does, since
// offsets aren't retained as running (line, column) pairs once parsing is
// done.
func Position(src []byte, offset int) (line, column int, context string) {
	line = 1
	lineStart := 0
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	if offset > len(src) {
		offset = len(src)
	}
	column = offset - lineStart

	lineEnd := len(src)
	for i := lineStart; i < len(src); i++ {
		if src[i] == '\n' {
			lineEnd = i
			break
		}
	}
	text := string(src[lineStart:lineEnd])
	text = strings.TrimSuffix(text, "\r")
	context = fmt.Sprintf("%5d: %s\n%s^", line, text, strings.Repeat(" ", column+7))
	return
}

// locAt returns the Loc for a byte offset, without a rendered context line.
func locAt(src []byte, offset int) Loc {
	line, column, _ := Position(src, offset)
	return Loc{Line: line, Column: column}
}
