package lexer

import (
	"log/slog"
	"strconv"
)

// ErrorKind classifies a lexical or grouping failure.
type ErrorKind uint8

const (
	// BadNumber is a digit run that does not form a valid number, or whose
	// value does not fit in a 64-bit integer.
	BadNumber ErrorKind = iota + 1
	// UnterminatedArray is a numeric array missing its closing bracket.
	UnterminatedArray
	// BadArrayElement is a numeric array element that is not an integer.
	BadArrayElement
	// Unmatched is an opening delimiter with no closing delimiter before the
	// end of the token stream.
	Unmatched
)

func (k ErrorKind) String() string {
	switch k {
	case BadNumber:
		return "bad number"
	case UnterminatedArray:
		return "unterminated array"
	case BadArrayElement:
		return "bad array element"
	case Unmatched:
		return "unmatched delimiter"
	default:
		return "lexical error"
	}
}

// Error is a lexical or grouping failure at byte offset Pos.
type Error struct {
	Kind ErrorKind
	Pos  int
	Text string // offending input, or the expected delimiter for Unmatched
}

func (e *Error) Error() string {
	msg := e.Kind.String() + " at offset " + strconv.Itoa(e.Pos)

	switch {
	case e.Text == "":
		return msg
	case e.Kind == Unmatched:
		return msg + ": expected '" + e.Text + "'"
	default:
		return msg + ": " + strconv.Quote(e.Text)
	}
}

// Offset returns the byte offset of the failure.
func (e *Error) Offset() int { return e.Pos }

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", e.Kind.String()),
		slog.Int("pos", e.Pos),
		slog.String("text", e.Text),
	)
}
