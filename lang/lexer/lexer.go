// Package lexer turns command text into positioned tokens and nests bracketed
// token runs into groups.
package lexer

import (
	"io"
	"iter"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ardnew/impral/lang/token"
)

// uuidLen is the length of the hyphenated textual form of a UUID.
const uuidLen = 36

// Lexer produces tokens from a [Source] one at a time.
//
// A Lexer is single-pass. Once it returns a remainder token or an error, every
// later call to Next returns io.EOF.
type Lexer struct {
	src  *Source
	done bool
}

// New returns a Lexer over text.
func New(text string) *Lexer {
	return &Lexer{src: NewSource(text)}
}

// Source returns the positioned source the lexer reads from.
func (l *Lexer) Source() *Source { return l.src }

// Next returns the next token, or io.EOF when the input is exhausted.
func (l *Lexer) Next() (token.Token, error) {
	if l.done {
		return token.Token{}, io.EOF
	}

	tok, err := l.next()
	if err != nil || tok.Kind == token.RemainderToken {
		l.done = true
	}

	return tok, err
}

// Tokenize returns an iterator over the tokens of text. Iteration stops after
// the first error, which is yielded with a zero token.
func Tokenize(text string) iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		l := New(text)

		for {
			tok, err := l.Next()
			if err == io.EOF {
				return
			}

			if err != nil {
				yield(token.Token{}, err)

				return
			}

			if !yield(tok, nil) {
				return
			}
		}
	}
}

// All returns every token of text in order.
func All(text string) ([]token.Token, error) {
	var toks []token.Token

	for tok, err := range Tokenize(text) {
		if err != nil {
			return toks, err
		}

		toks = append(toks, tok)
	}

	return toks, nil
}

func (l *Lexer) next() (token.Token, error) {
	c, ok := l.skipSpace()
	if !ok {
		return token.Token{}, io.EOF
	}

	switch c.R {
	case '$':
		return l.lexDollar(), nil
	case '@':
		return l.lexAt()
	}

	if s, ok := token.ParsePair(c.R, l.src.PeekRune(1)); ok {
		l.src.Skip(2)

		return token.NewSymbol(c.Offset, l.src.Offset(), s), nil
	}

	if s, ok := token.ParseSymbol(c.R); ok {
		signed := (s == token.Plus || s == token.Dash) && isDigit(l.src.PeekRune(1))
		if !signed {
			l.src.Skip(1)

			return token.NewSymbol(c.Offset, c.End(), s), nil
		}
	}

	switch {
	case c.R == 'U':
		if id, ok := l.peekUUID(1); ok && !token.IsBarewordContinue(l.src.PeekRune(1+uuidLen)) {
			l.src.Skip(1 + uuidLen)

			return token.NewLiteral(c.Offset, l.src.Offset(), token.Uid(id)), nil
		}

		return l.lexBareword(), nil

	case token.IsBarewordStart(c.R):
		return l.lexBareword(), nil

	case c.R == '"' || c.R == '\'':
		l.src.Skip(1)

		text := l.quoted(c.R)

		return token.NewLiteral(c.Offset, l.src.Offset(), token.Str(text)), nil

	case isDigit(c.R) || c.R == '+' || c.R == '-':
		return l.lexNumber()
	}

	return l.remainder(), nil
}

func (l *Lexer) skipSpace() (Char, bool) {
	for {
		c, ok := l.src.Peek(0)
		if !ok {
			return Char{}, false
		}

		if !unicode.IsSpace(c.R) {
			return c, true
		}

		l.src.Skip(1)
	}
}

func (l *Lexer) remainder() token.Token {
	start := l.src.Offset()
	rest := l.src.Rest()

	l.src.Drain()

	return token.NewRemainder(start, start+len(rest), rest)
}

// lexBareword reads a bareword and resolves it against the constant table.
func (l *Lexer) lexBareword() token.Token {
	start := l.src.Offset()
	word := l.word()

	if lit, ok := token.Constants[word]; ok {
		return token.NewLiteral(start, l.src.Offset(), lit)
	}

	return token.NewLiteral(start, l.src.Offset(), token.Str(word))
}

// word consumes a run of bareword characters.
func (l *Lexer) word() string {
	var sb strings.Builder

	for {
		c, ok := l.src.Peek(0)
		if !ok || !token.IsBarewordContinue(c.R) {
			return sb.String()
		}

		sb.WriteRune(c.R)
		l.src.Skip(1)
	}
}

// quoted consumes the body of a string opened by quote, plus the closing
// quote. A backslash directly before the quote keeps the string open.
// Escapes are not decoded. An unterminated string runs to the end of input.
func (l *Lexer) quoted(quote rune) string {
	var (
		sb   strings.Builder
		last rune
	)

	for {
		c, ok := l.src.Next()
		if !ok {
			return sb.String()
		}

		if c.R == quote && last != '\\' {
			return sb.String()
		}

		sb.WriteRune(c.R)
		last = c.R
	}
}

// lexDollar reads a local reference: `$$`, `$NAME`, `$N`, or a bare `$`.
func (l *Lexer) lexDollar() token.Token {
	start := l.src.Offset()
	l.src.Skip(1)

	switch r := l.src.PeekRune(0); {
	case r == '$':
		l.src.Skip(1)

		return token.NewLiteral(start, l.src.Offset(), token.RefCtx())
	case token.IsBarewordStart(r):
		name := l.word()

		return token.NewLiteral(start, l.src.Offset(), token.RefVar(name))
	case isDigit(r):
		digits := l.digits(10)

		return token.NewLiteral(start, l.src.Offset(), token.RefVar(digits))
	}

	return token.NewLiteral(start, l.src.Offset(), token.RefRes())
}

// lexAt reads an object reference: `@UUID`, `@N`, `@NAME` or a quoted key.
// A lone `@` is the At symbol.
func (l *Lexer) lexAt() (token.Token, error) {
	start := l.src.Offset()

	if id, ok := l.peekUUID(1); ok {
		l.src.Skip(1 + uuidLen)

		return token.NewLiteral(start, l.src.Offset(), token.ObjUid(id)), nil
	}

	l.src.Skip(1)

	switch r := l.src.PeekRune(0); {
	case isDigit(r):
		pos := l.src.Offset()
		digits := l.digits(10)

		n, err := parseUint(digits, 10)
		if err != nil {
			return token.Token{}, &Error{Kind: BadNumber, Pos: pos, Text: digits}
		}

		return token.NewLiteral(start, l.src.Offset(), token.ObjIdx(n)), nil
	case token.IsBarewordStart(r):
		key := l.word()

		return token.NewLiteral(start, l.src.Offset(), token.ObjKey(key)), nil
	case r == '"' || r == '\'':
		l.src.Skip(1)

		key := l.quoted(r)

		return token.NewLiteral(start, l.src.Offset(), token.ObjKey(key)), nil
	}

	return token.NewSymbol(start, l.src.Offset(), token.At), nil
}

// peekUUID reports whether the uuidLen characters starting n positions ahead
// form a hyphenated UUID.
func (l *Lexer) peekUUID(n int) (uuid.UUID, bool) {
	var buf [uuidLen]byte

	for i := range buf {
		r := l.src.PeekRune(n + i)
		if r < 0 || r > unicode.MaxASCII {
			return uuid.UUID{}, false
		}

		buf[i] = byte(r)
	}

	if buf[8] != '-' || buf[13] != '-' || buf[18] != '-' || buf[23] != '-' {
		return uuid.UUID{}, false
	}

	id, err := uuid.Parse(string(buf[:]))
	if err != nil {
		return uuid.UUID{}, false
	}

	return id, true
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }
