package parser

import (
	"log/slog"
	"strconv"
)

// ErrorKind classifies a parse failure.
type ErrorKind uint8

const (
	// Empty is an item expected from an exhausted token stream.
	Empty ErrorKind = iota + 1
	// Unrecognized is a remainder token left by the lexer.
	Unrecognized
	// ExpectButEnd is a token stream that ended where more was required.
	ExpectButEnd
	// Unexpected is a token that cannot appear where it was found.
	Unexpected
	// ExpectButGot is a token of the wrong kind.
	ExpectButGot
	// PosArgAfterNomArg is a positional argument following a named one.
	PosArgAfterNomArg
	// NestedRange is a range used as either bound of another range.
	NestedRange
	// DanglingDot is a '.' not followed by a field, index or method call.
	DanglingDot
	// DepthExceeded is nesting deeper than the configured maximum.
	DepthExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Unrecognized:
		return "unrecognized input"
	case ExpectButEnd:
		return "unexpected end"
	case Unexpected:
		return "unexpected token"
	case ExpectButGot:
		return "wrong token"
	case PosArgAfterNomArg:
		return "positional argument after named argument"
	case NestedRange:
		return "nested range"
	case DanglingDot:
		return "dangling dot"
	case DepthExceeded:
		return "depth exceeded"
	default:
		return "parse error"
	}
}

// Error is a parse failure at byte offset Pos.
//
// Expected and Got describe the mismatch for [ExpectButEnd], [ExpectButGot]
// and [Unexpected]. Text carries the raw input of an [Unrecognized] token.
type Error struct {
	Kind     ErrorKind
	Pos      int
	Expected string
	Got      string
	Text     string
}

func (e *Error) Error() string {
	at := " at offset " + strconv.Itoa(e.Pos)

	switch e.Kind {
	case Empty:
		return "expected an expression" + at + ", but found nothing"
	case Unrecognized:
		return "unrecognized input" + at + ": " + strconv.Quote(e.Text)
	case ExpectButEnd:
		return "expected " + e.Expected + at + ", but reached the end of input"
	case Unexpected:
		return "unexpected " + e.Got + at
	case ExpectButGot:
		return "expected " + e.Expected + at + ", but got " + e.Got
	case DepthExceeded:
		return "maximum nesting depth exceeded" + at
	default:
		return e.Kind.String() + at
	}
}

// Offset returns the byte offset of the failure.
func (e *Error) Offset() int { return e.Pos }

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.Int("pos", e.Pos),
	}

	if e.Expected != "" {
		attrs = append(attrs, slog.String("expected", e.Expected))
	}

	if e.Got != "" {
		attrs = append(attrs, slog.String("got", e.Got))
	}

	if e.Text != "" {
		attrs = append(attrs, slog.String("text", e.Text))
	}

	return slog.GroupValue(attrs...)
}

func errorAt(kind ErrorKind, pos int) *Error {
	return &Error{Kind: kind, Pos: pos}
}

func expectButEnd(expected string, pos int) *Error {
	return &Error{Kind: ExpectButEnd, Pos: pos, Expected: expected}
}

func expectButGot(expected, got string, pos int) *Error {
	return &Error{Kind: ExpectButGot, Pos: pos, Expected: expected, Got: got}
}

func unexpected(got string, pos int) *Error {
	return &Error{Kind: Unexpected, Pos: pos, Got: got}
}
