package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/ardnew/impral/lang"
	"github.com/ardnew/impral/lang/token"
)

// symbolAt returns the symbol that ends at byte offset cursor of input.
// Two-character symbols take precedence over the single character before the
// cursor.
func symbolAt(input string, cursor int) (token.Symbol, bool) {
	cursor = min(max(cursor, 0), len(input))

	b, n := utf8.DecodeLastRuneInString(input[:cursor])
	if n == 0 {
		return token.SymbolInvalid, false
	}

	if a, m := utf8.DecodeLastRuneInString(input[:cursor-n]); m > 0 {
		if s, ok := token.ParsePair(a, b); ok {
			return s, true
		}
	}

	return token.ParseSymbol(b)
}

// symbolHint describes the symbol just before the cursor, or returns an
// empty string when there is none.
func symbolHint(input string, cursor int) string {
	s, ok := symbolAt(input, cursor)
	if !ok {
		return ""
	}

	var b strings.Builder

	b.WriteString(s.String())
	b.WriteByte(' ')
	b.WriteString(s.Name())

	if role := lang.SymbolRole(s); role != "" {
		b.WriteString(": ")
		b.WriteString(role)
	}

	return b.String()
}
