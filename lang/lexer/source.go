package lexer

import "unicode/utf8"

// Char is a single decoded character with its position in the source text.
// Line and Col are 0-based. Offset is the byte index of the first byte of R.
type Char struct {
	R      rune
	Offset int
	Line   int
	Col    int
}

// End returns the byte offset just past c.
func (c Char) End() int { return c.Offset + utf8.RuneLen(c.R) }

// Source yields the characters of a text along with their positions.
//
// Characters are decoded lazily. Peek decodes ahead into a small buffer
// without advancing the read position.
type Source struct {
	text string
	pos  int // byte offset of the next undecoded character
	line int
	col  int
	buf  []Char
}

// NewSource returns a Source reading text from the beginning.
func NewSource(text string) *Source {
	return &Source{text: text}
}

// Text returns the complete source text.
func (s *Source) Text() string { return s.text }

// Offset returns the byte offset of the next character to be read, or the
// length of the text once it is exhausted.
func (s *Source) Offset() int {
	if len(s.buf) > 0 {
		return s.buf[0].Offset
	}

	return s.pos
}

// Rest returns the unread suffix of the text.
func (s *Source) Rest() string { return s.text[s.Offset():] }

// Next reads and returns the next character.
// It returns false when the text is exhausted.
func (s *Source) Next() (Char, bool) {
	if len(s.buf) > 0 {
		c := s.buf[0]
		s.buf = s.buf[1:]

		return c, true
	}

	return s.decode()
}

// Peek returns the character n positions ahead of the read position without
// consuming anything. Peek(0) is the character Next would return.
func (s *Source) Peek(n int) (Char, bool) {
	for len(s.buf) <= n {
		c, ok := s.decode()
		if !ok {
			return Char{}, false
		}

		s.buf = append(s.buf, c)
	}

	return s.buf[n], true
}

// PeekRune is like Peek but returns only the rune, or -1 past the end.
func (s *Source) PeekRune(n int) rune {
	if c, ok := s.Peek(n); ok {
		return c.R
	}

	return -1
}

// Skip discards the next n characters.
func (s *Source) Skip(n int) {
	for range n {
		if _, ok := s.Next(); !ok {
			return
		}
	}
}

// Drain discards every remaining character.
func (s *Source) Drain() {
	s.buf = s.buf[:0]
	s.pos = len(s.text)
}

func (s *Source) decode() (Char, bool) {
	if s.pos >= len(s.text) {
		return Char{}, false
	}

	r, size := utf8.DecodeRuneInString(s.text[s.pos:])
	c := Char{R: r, Offset: s.pos, Line: s.line, Col: s.col}

	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}

	return c, true
}

// Position returns the 0-based line and column of the byte offset off in
// text. Offsets past the end resolve to the position just after the last
// character.
func Position(text string, off int) (line, col int) {
	off = min(max(off, 0), len(text))

	for _, r := range text[:off] {
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}

	return line, col
}
