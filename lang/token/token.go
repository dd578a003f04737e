package token

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"strconv"
	"strings"
)

// Kind identifies the content held by a [Token].
type Kind uint8

const (
	SymbolToken    Kind = iota // symbol
	LiteralToken               // literal
	GroupToken                 // group
	RemainderToken             // remainder
)

// Token is a lexical unit spanning the bytes [Start, End) of its source.
//
// A GroupToken carries its opening bracket in Symbol and the bracketed tokens
// in Tokens. A RemainderToken carries the unrecognized rest of the input in
// Text.
type Token struct {
	Start   int
	End     int
	Kind    Kind
	Symbol  Symbol
	Literal Literal
	Tokens  []Token
	Text    string
}

// NewSymbol returns a symbol token.
func NewSymbol(start, end int, s Symbol) Token {
	return Token{Start: start, End: end, Kind: SymbolToken, Symbol: s}
}

// NewLiteral returns a literal token.
func NewLiteral(start, end int, l Literal) Token {
	return Token{Start: start, End: end, Kind: LiteralToken, Literal: l}
}

// NewGroup returns a group token opened by s and wrapping inner.
func NewGroup(start, end int, s Symbol, inner []Token) Token {
	return Token{Start: start, End: end, Kind: GroupToken, Symbol: s, Tokens: inner}
}

// NewRemainder returns a remainder token carrying unrecognized input.
func NewRemainder(start, end int, text string) Token {
	return Token{Start: start, End: end, Kind: RemainderToken, Text: text}
}

// Is reports whether t is the bare symbol s.
func (t Token) Is(s Symbol) bool { return t.Kind == SymbolToken && t.Symbol == s }

// IsGroup reports whether t is a group opened by s.
func (t Token) IsGroup(s Symbol) bool { return t.Kind == GroupToken && t.Symbol == s }

// Str returns the text of a string literal token.
func (t Token) Str() (string, bool) {
	if t.Kind != LiteralToken {
		return "", false
	}

	return t.Literal.AsStr()
}

// CommandName converts t into the name of a command.
// Operator symbols convert to their text and string literals to their value.
// Nothing else is a valid command name.
func (t Token) CommandName() (string, bool) {
	switch t.Kind {
	case SymbolToken:
		if t.Symbol.IsOperator() {
			return t.Symbol.String(), true
		}
	case LiteralToken:
		return t.Literal.AsStr()
	}

	return "", false
}

// Describe returns a short human-readable description of t, used in
// expected-but-got diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case SymbolToken:
		return "a '" + t.Symbol.String() + "'"
	case LiteralToken:
		return "a " + t.Literal.Type()
	case GroupToken:
		return "a group"
	case RemainderToken:
		return "unrecognized input"
	default:
		return "nothing"
	}
}

// String returns a debug rendering of the token and its position.
func (t Token) String() string {
	var sb strings.Builder

	t.write(&sb)
	sb.WriteString(" at ")
	sb.WriteString(strconv.Itoa(t.Start))

	return sb.String()
}

func (t Token) write(sb *strings.Builder) {
	switch t.Kind {
	case SymbolToken:
		sb.WriteString(t.Symbol.String())
	case LiteralToken:
		sb.WriteString(t.Literal.String())
	case GroupToken:
		sb.WriteString(t.Symbol.String())

		for i, inner := range t.Tokens {
			if i > 0 {
				sb.WriteByte(' ')
			}

			inner.write(sb)
		}

		if c, ok := t.Symbol.Delimiter(); ok {
			sb.WriteString(c.String())
		}
	case RemainderToken:
		sb.WriteString(strconv.Quote(t.Text))
	}
}

// Flatten appends the flat token sequence represented by toks to dst.
// Groups are unwrapped to their opening symbol followed by their inner tokens.
// Closing delimiters are consumed by grouping and are not reproduced.
func Flatten(dst []Token, toks ...Token) []Token {
	for _, t := range toks {
		if t.Kind != GroupToken {
			dst = append(dst, t)

			continue
		}

		dst = append(dst, NewSymbol(t.Start, t.Start+len(t.Symbol.String()), t.Symbol))
		dst = Flatten(dst, t.Tokens...)
	}

	return dst
}

// Depth returns the maximum group nesting depth of toks.
func Depth(toks ...Token) int {
	depth := 0

	for _, t := range toks {
		if t.Kind == GroupToken {
			depth = max(depth, 1+Depth(t.Tokens...))
		}
	}

	return depth
}
