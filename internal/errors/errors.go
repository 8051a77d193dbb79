// Package errors formats lexer and parser diagnostics with source
// context: line/column header, the offending line, and a caret pointing
// at the column (spec §7 classes 1-2).
package errors

import (
	"fmt"
	"strings"

	"github.com/nilbranch/pathfinder/internal/lexer"
)

// CompilerError is a single lex/parse failure tied to a source position.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// NewCompilerError builds a CompilerError for pos in source/file.
func NewCompilerError(pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with its single source line and a caret under
// the column. color adds ANSI codes for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder
	sb.WriteString(e.header())

	line := e.getSourceLine(e.Pos.Line)
	if line == "" {
		return sb.String()
	}

	prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
	writeColored(&sb, color, "\033[1;31m", "^")
	sb.WriteString("\n")
	writeColored(&sb, color, "\033[1m", e.Message)
	return sb.String()
}

// FormatWithContext is like Format but shows contextLines of surrounding
// source above and below the offending line.
func (e *CompilerError) FormatWithContext(contextLines int, color bool) string {
	ctx := e.getSourceContext(e.Pos.Line, contextLines, contextLines)
	if len(ctx) == 0 {
		return e.Format(color)
	}

	var sb strings.Builder
	sb.WriteString(e.header())

	start := e.Pos.Line - contextLines
	if start < 1 {
		start = 1
	}
	for i, line := range ctx {
		n := start + i
		prefix := fmt.Sprintf("%4d | ", n)
		if n == e.Pos.Line {
			writeColored(&sb, color, "\033[1m", prefix+line)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
			writeColored(&sb, color, "\033[1;31m", "^")
			sb.WriteString("\n")
		} else {
			writeColored(&sb, color, "\033[2m", prefix+line)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	writeColored(&sb, color, "\033[1m", e.Message)
	return sb.String()
}

func (e *CompilerError) header() string {
	if e.File != "" {
		return fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
}

func writeColored(sb *strings.Builder, color bool, code, text string) {
	if color {
		sb.WriteString(code)
	}
	sb.WriteString(text)
	if color {
		sb.WriteString("\033[0m")
	}
}

// getSourceLine returns source's 1-indexed line lineNum, or "" if out of range.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// getSourceContext returns the lines from lineNum-contextBefore through
// lineNum+contextAfter, clamped to the source's bounds.
func (e *CompilerError) getSourceContext(lineNum, contextBefore, contextAfter int) []string {
	if e.Source == "" {
		return nil
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return nil
	}
	start := lineNum - contextBefore
	if start < 1 {
		start = 1
	}
	end := lineNum + contextAfter
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start-1 : end]
}

// FormatErrors renders every error in errs, numbered when there is more
// than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("analysis failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
