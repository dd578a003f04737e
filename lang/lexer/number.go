package lexer

import (
	"errors"
	"math"
	"math/bits"
	"strconv"
	"strings"
	"unicode"

	"github.com/ardnew/impral/lang/token"
)

// lexNumber reads a signed number, optionally with a radix prefix, fraction
// and exponent, or a numeric array introduced by a radix prefix.
func (l *Lexer) lexNumber() (token.Token, error) {
	start := l.src.Offset()
	neg := false

	switch l.src.PeekRune(0) {
	case '-':
		neg = true

		l.src.Skip(1)
	case '+':
		l.src.Skip(1)
	}

	radix, prefixed := l.radix(!neg && start == l.src.Offset())
	if prefixed && l.src.PeekRune(0) == '[' {
		return l.lexArray(start, radix)
	}

	digitsPos := l.src.Offset()
	whole := l.digits(radix)

	if radix != 10 {
		n, err := parseUint(whole, radix)
		if err != nil {
			return token.Token{}, &Error{Kind: BadNumber, Pos: digitsPos, Text: whole}
		}

		v, ok := signed(n, neg)
		if !ok {
			return token.Token{}, &Error{Kind: BadNumber, Pos: start, Text: l.src.Text()[start:l.src.Offset()]}
		}

		return token.NewLiteral(start, l.src.Offset(), token.Int(v)), nil
	}

	var frac string
	if l.src.PeekRune(0) == '.' && isDigit(l.src.PeekRune(1)) {
		l.src.Skip(1)
		frac = l.digits(10)
	}

	exp, hasExp := l.exponent()

	text := l.src.Text()[start:l.src.Offset()]

	if frac == "" && exp >= 0 {
		if v, ok := scaleInt(whole, exp, neg); ok {
			return token.NewLiteral(start, l.src.Offset(), token.Int(v)), nil
		}

		return token.Token{}, &Error{Kind: BadNumber, Pos: start, Text: text}
	}

	var sb strings.Builder

	if neg {
		sb.WriteByte('-')
	}

	sb.WriteString(whole)

	if frac != "" {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}

	if hasExp {
		sb.WriteByte('e')
		sb.WriteString(strconv.Itoa(exp))
	}

	v, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return token.Token{}, &Error{Kind: BadNumber, Pos: start, Text: text}
	}

	return token.NewLiteral(start, l.src.Offset(), token.Dec(v)), nil
}

// radix consumes a radix prefix after a leading zero. The prefix is only
// taken when a digit of that radix follows it, or when array is set and an
// opening bracket follows it.
func (l *Lexer) radix(array bool) (int, bool) {
	if l.src.PeekRune(0) != '0' {
		return 10, false
	}

	var radix int

	switch l.src.PeekRune(1) {
	case 'x':
		radix = 16
	case 'd':
		radix = 10
	case 'o':
		radix = 8
	case 'b':
		radix = 2
	default:
		return 10, false
	}

	next := l.src.PeekRune(2)
	if !isRadixDigit(next, radix) && !(array && next == '[') {
		return 10, false
	}

	l.src.Skip(2)

	return radix, true
}

// exponent consumes an exponent part, which is only taken when at least one
// digit follows the marker and optional sign.
func (l *Lexer) exponent() (int, bool) {
	if r := l.src.PeekRune(0); r != 'e' && r != 'E' {
		return 0, false
	}

	n := 1
	neg := false

	switch l.src.PeekRune(1) {
	case '-':
		neg = true
		n++
	case '+':
		n++
	}

	if !isDigit(l.src.PeekRune(n)) {
		return 0, false
	}

	l.src.Skip(n)

	digits := l.digits(10)

	exp, err := strconv.Atoi(digits)
	if err != nil {
		// Absurd exponents saturate and let the float conversion overflow.
		exp = math.MaxInt32
	}

	if neg {
		exp = -exp
	}

	return exp, true
}

// lexArray reads the elements of a numeric array after its radix prefix.
// The elements become integer tokens inside a bracket group.
func (l *Lexer) lexArray(start, radix int) (token.Token, error) {
	open, _ := l.src.Next()

	var elems []token.Token

	for {
		c, ok := l.src.Peek(0)

		switch {
		case !ok:
			return token.Token{}, &Error{Kind: UnterminatedArray, Pos: open.Offset, Text: "]"}
		case unicode.IsSpace(c.R):
			l.src.Skip(1)
		case c.R == ']':
			l.src.Skip(1)

			return token.NewGroup(start, c.End(), token.BraketLeft, elems), nil
		default:
			elem, err := l.arrayElement(radix)
			if err != nil {
				return token.Token{}, err
			}

			elems = append(elems, elem)
		}
	}
}

func (l *Lexer) arrayElement(radix int) (token.Token, error) {
	start := l.src.Offset()
	neg := false

	switch l.src.PeekRune(0) {
	case '-':
		neg = true

		l.src.Skip(1)
	case '+':
		l.src.Skip(1)
	}

	digits := l.digits(radix)
	if digits == "" {
		bad := l.src.PeekRune(0)
		if bad < 0 {
			return token.Token{}, &Error{Kind: UnterminatedArray, Pos: start, Text: "]"}
		}

		return token.Token{}, &Error{Kind: BadArrayElement, Pos: l.src.Offset(), Text: string(bad)}
	}

	if r := l.src.PeekRune(0); r >= 0 && r != ']' && !unicode.IsSpace(r) {
		return token.Token{}, &Error{Kind: BadArrayElement, Pos: l.src.Offset(), Text: string(r)}
	}

	n, err := parseUint(digits, radix)
	if err != nil {
		return token.Token{}, &Error{Kind: BadNumber, Pos: start, Text: digits}
	}

	v, ok := signed(n, neg)
	if !ok {
		return token.Token{}, &Error{Kind: BadNumber, Pos: start, Text: l.src.Text()[start:l.src.Offset()]}
	}

	return token.NewLiteral(start, l.src.Offset(), token.Int(v)), nil
}

// digits consumes a run of digits valid in radix.
func (l *Lexer) digits(radix int) string {
	start := l.src.Offset()

	for isRadixDigit(l.src.PeekRune(0), radix) {
		l.src.Skip(1)
	}

	return l.src.Text()[start:l.src.Offset()]
}

func isRadixDigit(r rune, radix int) bool {
	switch radix {
	case 2:
		return r == '0' || r == '1'
	case 8:
		return '0' <= r && r <= '7'
	case 16:
		return isDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
	default:
		return isDigit(r)
	}
}

func parseUint(digits string, radix int) (uint64, error) {
	return strconv.ParseUint(digits, radix, 64)
}

// signed applies the sign to a magnitude, reporting whether the result fits
// in an int64.
func signed(n uint64, neg bool) (int64, bool) {
	if neg {
		if n > 1<<63 {
			return 0, false
		}

		return int64(-n), true
	}

	if n > math.MaxInt64 {
		return 0, false
	}

	return int64(n), true
}

// scaleInt computes ±whole·10^exp exactly, reporting overflow.
func scaleInt(whole string, exp int, neg bool) (int64, bool) {
	n, err := parseUint(whole, 10)
	if err != nil {
		return 0, false
	}

	for ; exp > 0 && n != 0; exp-- {
		hi, lo := bits.Mul64(n, 10)
		if hi != 0 {
			return 0, false
		}

		n = lo
	}

	return signed(n, neg)
}
