package lexer

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ardnew/impral/lang/token"
)

func TestGroup(t *testing.T) {
	toks, err := GroupText("f (a [b] c) ()")
	if err != nil {
		t.Fatalf("GroupText() error: %v", err)
	}

	if len(toks) != 3 {
		t.Fatalf("GroupText() returned %d tokens, want 3: %v", len(toks), toks)
	}

	outer := toks[1]
	if !outer.IsGroup(token.ParenLeft) || len(outer.Tokens) != 3 {
		t.Fatalf("outer group = %v", outer)
	}

	if outer.Start != 2 || outer.End != 10 {
		t.Errorf("outer group spans [%d,%d), want [2,10)", outer.Start, outer.End)
	}

	inner := outer.Tokens[1]
	if !inner.IsGroup(token.BraketLeft) || len(inner.Tokens) != 1 {
		t.Fatalf("inner group = %v", inner)
	}

	if inner.Start != 5 || inner.End != 7 {
		t.Errorf("inner group spans [%d,%d), want [5,7)", inner.Start, inner.End)
	}

	empty := toks[2]
	if !empty.IsGroup(token.ParenLeft) || len(empty.Tokens) != 0 {
		t.Fatalf("empty group = %v", empty)
	}

	if empty.Start != 12 || empty.End != 14 {
		t.Errorf("empty group spans [%d,%d), want [12,14)", empty.Start, empty.End)
	}
}

func TestGroupPassThrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"stray closer", "a ) b", "a ) b"},
		{"mismatched closer inside group", "(a ] b)", "(a ] b)"},
		{"angles are not brackets", "< a >", "< a >"},
		{"numeric array", "0x[1 2]", "[1 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := GroupText(tt.input)
			if err != nil {
				t.Fatalf("GroupText(%q) error: %v", tt.input, err)
			}

			if got := render(toks); got != tt.want {
				t.Errorf("GroupText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGroupUnmatched(t *testing.T) {
	tests := []struct {
		input string
		pos   int
		close string
	}{
		{"(a b", 0, ")"},
		{"[a (b)", 0, "]"},
		{"x {a (b}", 5, ")"},
		{"(]", 0, ")"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := GroupText(tt.input)

			var lerr *Error
			if !errors.As(err, &lerr) {
				t.Fatalf("GroupText(%q) error = %v, want *Error", tt.input, err)
			}

			if lerr.Kind != Unmatched || lerr.Pos != tt.pos || lerr.Text != tt.close {
				t.Errorf("error = %+v, want Unmatched at %d expecting %q", lerr, tt.pos, tt.close)
			}
		})
	}
}

func TestGroupPropagatesLexError(t *testing.T) {
	_, err := GroupText("(a 0x[1 z])")

	var lerr *Error
	if !errors.As(err, &lerr) || lerr.Kind != BadArrayElement {
		t.Fatalf("GroupText() error = %v, want BadArrayElement", err)
	}
}

func TestGroupRemainder(t *testing.T) {
	tests := []struct {
		input string
		depth int
	}{
		{"f €", 0},
		{"f [1 €]", 1},
		{"f (g [€ x])", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := GroupText(tt.input)
			if err != nil {
				t.Fatalf("GroupText(%q) error = %v, want nil", tt.input, err)
			}

			if got := token.Depth(toks...); got != tt.depth {
				t.Errorf("depth = %d, want %d", got, tt.depth)
			}

			flat := token.Flatten(nil, toks...)

			last := flat[len(flat)-1]
			if last.Kind != token.RemainderToken {
				t.Fatalf("last token = %v, want remainder", last)
			}

			if last.Start != strings.Index(tt.input, "€") {
				t.Errorf("remainder starts at %d, want %d", last.Start, strings.Index(tt.input, "€"))
			}
		})
	}
}

func render(toks []token.Token) string {
	parts := make([]string, len(toks))

	for i, tok := range toks {
		parts[i] = strings.TrimSuffix(tok.String(), " at "+strconv.Itoa(tok.Start))
	}

	return strings.Join(parts, " ")
}

// bracketDepth returns the maximum nesting of paired brackets in toks.
func bracketDepth(toks []token.Token) int {
	depth, deepest := 0, 0

	for _, tok := range toks {
		switch {
		case tok.Kind == token.SymbolToken && tok.Symbol.IsStartDelimiter():
			depth++
			deepest = max(deepest, depth)
		case tok.Kind == token.SymbolToken && tok.Symbol.IsEndDelimiter():
			depth--
		}
	}

	return deepest
}

func FuzzGroup(f *testing.F) {
	for _, s := range []string{
		"(a [b] c)", "((()))", "{k = [1 2]}", "a ) b", "(a ] b)", "[1, (2, {3})]",
	} {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		flat, err := All(input)
		if err != nil {
			return
		}

		for _, tok := range flat {
			if tok.Kind == token.GroupToken {
				t.Skip("numeric arrays are pre-grouped by the lexer")
			}
		}

		tree, err := Group(FromSlice(flat))
		if err != nil {
			var lerr *Error
			if !errors.As(err, &lerr) || lerr.Kind != Unmatched {
				t.Fatalf("unexpected group error: %v", err)
			}

			return
		}

		// Drop the closers consumed by grouping, then compare with the
		// flattened tree.
		var open []token.Symbol

		want := make([]token.Token, 0, len(flat))

		for _, tok := range flat {
			if tok.Kind == token.SymbolToken {
				if c, ok := tok.Symbol.Delimiter(); ok {
					open = append(open, c)
				} else if n := len(open); n > 0 && tok.Symbol == open[n-1] {
					open = open[:n-1]

					continue
				}
			}

			want = append(want, tok)
		}

		got := token.Flatten(nil, tree...)
		if len(got) != len(want) {
			t.Fatalf("flattened %d tokens, want %d", len(got), len(want))
		}

		for i := range got {
			if !sameToken(got[i], want[i]) || got[i].Start != want[i].Start {
				t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
			}
		}

		balanced := true
		depth := 0

		for _, tok := range flat {
			if tok.Kind != token.SymbolToken {
				continue
			}

			if tok.Symbol.IsStartDelimiter() {
				depth++
			} else if tok.Symbol.IsEndDelimiter() {
				depth--
			}

			if depth < 0 {
				balanced = false
			}
		}

		if balanced && depth == 0 && token.Depth(tree...) != bracketDepth(flat) {
			t.Fatalf("group depth %d, bracket depth %d", token.Depth(tree...), bracketDepth(flat))
		}
	})
}
