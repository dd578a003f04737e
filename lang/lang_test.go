package lang

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/impral/lang/lexer"
	"github.com/ardnew/impral/lang/parser"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"test 1 2 3 a=4", "(test 1 2 3 a=4)"},
		{"= 1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"f 1 -> $x", "(set $x (f 1))"},
		{"a | b | c", "((a) | b | c)"},
		{"[1, 2, 3]", "[1 2 3]"},
		{"50%", "(into_percent 50)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := Parse(context.Background(), tt.input, WithCache(false))
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}

			if got := res.String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}

			if res.Source != tt.input {
				t.Errorf("Source = %q, want %q", res.Source, tt.input)
			}

			if len(res.Tokens) == 0 {
				t.Error("expected grouped tokens")
			}
		})
	}
}

func TestParseSentinels(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
		other    error
	}{
		{"lexical", "99999999999999999999", ErrLex, ErrParse},
		{"grouping", "f (a", ErrGroup, ErrLex},
		{"parse", "test 1 a=2 3", ErrParse, ErrGroup},
		{"empty", "", ErrParse, ErrLex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(context.Background(), tt.input, WithCache(false))
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.input)
			}

			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.sentinel)
			}

			if errors.Is(err, tt.other) {
				t.Errorf("errors.Is(%v, %v) = true", err, tt.other)
			}

			if res == nil || res.Block == nil {
				t.Fatal("expected a non-nil result with a block")
			}

			if _, ok := res.Root(); ok {
				t.Error("failed parse must not have an entry")
			}

			if res.String() != "" {
				t.Errorf("String() = %q, want empty", res.String())
			}
		})
	}
}

func TestParseErrorDetails(t *testing.T) {
	_, err := Parse(context.Background(), "test 1 a=2 3", WithCache(false))

	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("errors.As(*parser.Error) failed for %v", err)
	}

	if perr.Kind != parser.PosArgAfterNomArg || perr.Pos != 11 {
		t.Errorf("error = %+v, want %v at 11", perr, parser.PosArgAfterNomArg)
	}

	var serr *SourceError
	if !errors.As(err, &serr) {
		t.Fatalf("errors.As(*SourceError) failed for %v", err)
	}

	if serr.Line != 1 || serr.Column != 12 || serr.Offset != 11 {
		t.Errorf("location = %d:%d (offset %d), want 1:12 (offset 11)",
			serr.Line, serr.Column, serr.Offset)
	}

	want := "  1 | test 1 a=2 3\n" + strings.Repeat(" ", 17) + "^"
	if got := serr.Snippet(); got != want {
		t.Errorf("Snippet() =\n%s\nwant\n%s", got, want)
	}

	if !strings.HasPrefix(err.Error(), "parse error: parse error at line 1, column 12: ") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestParseLexErrorLocation(t *testing.T) {
	_, err := Parse(context.Background(), "f 1\n  99999999999999999999", WithCache(false))

	var lerr *lexer.Error
	if !errors.As(err, &lerr) {
		t.Fatalf("errors.As(*lexer.Error) failed for %v", err)
	}

	if lerr.Kind != lexer.BadNumber {
		t.Errorf("kind = %v, want %v", lerr.Kind, lexer.BadNumber)
	}

	var serr *SourceError
	if !errors.As(err, &serr) {
		t.Fatalf("errors.As(*SourceError) failed for %v", err)
	}

	if serr.Line != 2 || serr.Column != 3 {
		t.Errorf("location = %d:%d, want 2:3", serr.Line, serr.Column)
	}

	if !strings.HasPrefix(serr.Snippet(), "  2 |   9999") {
		t.Errorf("Snippet() = %q", serr.Snippet())
	}
}

func TestParsePartialBlock(t *testing.T) {
	res, err := Parse(context.Background(), "test 1 a=2 3", WithCache(false))
	if err == nil {
		t.Fatal("expected error")
	}

	if res.Block.Len() == 0 {
		t.Error("expected the nodes built before the failure")
	}

	if err := res.Block.Validate(); err != nil {
		t.Errorf("partial block is invalid: %v", err)
	}
}

func TestParseMaxDepth(t *testing.T) {
	input := strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20)

	_, err := Parse(context.Background(), input, WithMaxDepth(10), WithCache(false))
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("error = %v, want %v", err, ErrMaxDepthExceeded)
	}

	res, err := Parse(context.Background(), input, WithMaxDepth(30), WithCache(false))
	if err != nil {
		t.Fatalf("Parse with larger depth failed: %v", err)
	}

	if res.String() != "1" {
		t.Errorf("String() = %s, want 1", res.String())
	}
}

func TestParseReader(t *testing.T) {
	res, err := ParseReader(context.Background(), strings.NewReader("f [1 2]"), WithCache(false))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if got := res.String(); got != "(f [1 2])" {
		t.Errorf("ParseReader = %s, want (f [1 2])", got)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParseReaderError(t *testing.T) {
	_, err := ParseReader(context.Background(), failingReader{})
	if !errors.Is(err, ErrReadInput) {
		t.Fatalf("error = %v, want %v", err, ErrReadInput)
	}
}

func TestParseBytes(t *testing.T) {
	res, err := ParseBytes(context.Background(), []byte("$x.y"), WithCache(false))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	if got := res.String(); got != "$x.y" {
		t.Errorf("ParseBytes = %s, want $x.y", got)
	}
}

func TestErrorWith(t *testing.T) {
	err := ErrInvalidFormat.With()

	if !errors.Is(err, ErrInvalidFormat) {
		t.Error("derived error must match its sentinel")
	}

	if errors.Is(err, ErrFormat) {
		t.Error("derived error must not match another sentinel")
	}

	if WrapError(err) != err {
		t.Error("WrapError must return an existing *Error unchanged")
	}
}

func TestNilResult(t *testing.T) {
	var res *Result

	if _, ok := res.Root(); ok {
		t.Error("nil result must not have a root")
	}

	m := res.ToMap()
	if m["entry"] != nil {
		t.Errorf("entry = %v, want nil", m["entry"])
	}
}
