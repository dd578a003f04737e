package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/impral/lang/lexer"
	"github.com/ardnew/impral/lang/parser"
)

// Predefined errors (sentinel values).
var (
	ErrReadInput        = NewError("failed to read input")
	ErrLex              = NewError("lexical error")
	ErrGroup            = NewError("unbalanced delimiters")
	ErrParse            = NewError("parse error")
	ErrMaxDepthExceeded = NewError("maximum nesting depth exceeded")
	ErrFormat           = NewError("failed to format result")
	ErrInvalidFormat    = NewError("invalid output format")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from through
// [Error.Wrap] or [Error.With].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.err == nil && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// SourceError locates a lexer or parser failure in the source text.
// Line and Column are 1-based.
type SourceError struct {
	Err    error
	Source string
	Offset int
	Line   int
	Column int
}

func newSourceError(err error, source string, offset int) *SourceError {
	line, col := lexer.Position(source, offset)

	return &SourceError{
		Err:    err,
		Source: source,
		Offset: offset,
		Line:   line + 1,
		Column: col + 1,
	}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(e.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Column))
	buf.WriteString(": ")
	buf.WriteString(e.Err.Error())

	if snippet := e.Snippet(); snippet != "" {
		buf.WriteRune('\n')
		buf.WriteString(snippet)
	}

	return buf.String()
}

// Snippet renders the offending line with a caret under the failing column.
func (e *SourceError) Snippet() string {
	lines := strings.Split(e.Source, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return ""
	}

	var src strings.Builder

	src.WriteString("  ")
	src.WriteString(strconv.Itoa(e.Line))
	src.WriteString(" | ")
	src.WriteString(lines[e.Line-1])
	src.WriteRune('\n')

	// 2 leading spaces and " | " precede the line text.
	lineNumWidth := len(strconv.Itoa(e.Line))
	padding := strings.Repeat(" ", lineNumWidth+5)

	if e.Column > 0 {
		padding += strings.Repeat(" ", e.Column-1)
	}

	src.WriteString(padding + "^")

	return src.String()
}

// Unwrap returns the underlying lexer or parser error.
func (e *SourceError) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *SourceError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
		slog.Int("offset", e.Offset),
		slog.Any("cause", e.Err),
	)
}

// wrapFailure classifies a lexer or parser error under its sentinel and
// locates it in source.
func wrapFailure(err error, source string) error {
	var (
		lerr *lexer.Error
		perr *parser.Error
	)

	switch {
	case errors.As(err, &lerr):
		sentinel := ErrLex
		if lerr.Kind == lexer.Unmatched {
			sentinel = ErrGroup
		}

		return sentinel.Wrap(newSourceError(lerr, source, lerr.Offset())).
			With(slog.String("kind", lerr.Kind.String()))

	case errors.As(err, &perr):
		sentinel := ErrParse
		if perr.Kind == parser.DepthExceeded {
			sentinel = ErrMaxDepthExceeded
		}

		return sentinel.Wrap(newSourceError(perr, source, perr.Offset())).
			With(slog.String("kind", perr.Kind.String()))

	default:
		return ErrParse.Wrap(err)
	}
}
