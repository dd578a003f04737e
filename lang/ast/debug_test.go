package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardnew/impral/lang/token"
)

// builder is a test helper for assembling blocks by hand.
type builder struct{ *Block }

func (b builder) val(l token.Literal) BlockRef { return b.Emplace(&Value{l}, Span{}) }
func (b builder) str(s string) BlockRef        { return b.val(token.Str(s)) }
func (b builder) num(n int64) BlockRef         { return b.val(token.Int(n)) }
func (b builder) node(e Expression) BlockRef   { return b.Emplace(e, Span{}) }

func TestDebug(t *testing.T) {
	tests := []struct {
		name  string
		build func(b builder) BlockRef
		want  string
	}{
		{"empty", func(b builder) BlockRef { return b.node(&Empty{}) }, "_"},
		{"value", func(b builder) BlockRef { return b.val(token.Nil()) }, "null"},
		{"call", func(b builder) BlockRef {
			c := Call("test", b.num(1), b.num(2))
			c.SetArg("a", b.num(4))

			return b.node(c)
		}, "(test 1 2 a=4)"},
		{"zero-arg call", func(b builder) BlockRef { return b.node(Call("now")) }, "(now)"},
		{"operator call", func(b builder) BlockRef {
			return b.node(Call("+", b.num(1), b.num(2)))
		}, "(+ 1 2)"},
		{"quoted call name", func(b builder) BlockRef {
			return b.node(Call("two words", b.num(1)))
		}, `("two words" 1)`},
		{"list", func(b builder) BlockRef {
			return b.node(Call(ListName, b.num(1), b.str("x")))
		}, "[1 x]"},
		{"dict", func(b builder) BlockRef {
			c := Call(DictName)
			c.SetArg("k", b.num(1))
			c.SetArg("two words", b.val(token.Bool(true)))

			return b.node(c)
		}, `{k=1 "two words"=true}`},
		{"field", func(b builder) BlockRef {
			return b.node(&Field{Target: b.str("a"), Name: "b"})
		}, "a.b"},
		{"index", func(b builder) BlockRef {
			return b.node(&Index{Target: b.str("a"), Key: b.num(0)})
		}, "a.[0]"},
		{"method", func(b builder) BlockRef {
			return b.node(&Method{Target: b.str("a"), Call: b.node(Call("f", b.str("x")))})
		}, "a.(f x)"},
		{"range", func(b builder) BlockRef {
			return b.node(&Range{Start: b.num(1), End: b.num(5)})
		}, "1..5"},
		{"inclusive range", func(b builder) BlockRef {
			return b.node(&Range{Start: b.num(1), End: b.num(5), Inclusive: true})
		}, "1..=5"},
		{"try", func(b builder) BlockRef {
			return b.node(&Try{Target: b.str("a")})
		}, "a?"},
		{"try abort", func(b builder) BlockRef {
			return b.node(&Try{Target: b.str("a"), Aborts: true})
		}, "a?!"},
		{"pipe", func(b builder) BlockRef {
			src := b.node(Call("a"))

			return b.node(&Pipe{Source: src, Stages: []PipeSeg{
				Mapping{b.node(Call("m", b.num(1)))},
				Exclude{b.node(Call("p"))},
				Finding{b.node(Call("q"))},
				Collect{},
				Folding{b.num(0), b.node(Call("+"))},
			}})
		}, "((a) | m 1 |? p |?! q |! |! 0 +)"},
		{"missing reference", func(b builder) BlockRef {
			return b.node(&Try{Target: 9})
		}, "<#9?>?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder{NewBlock()}
			ref := tt.build(b)

			assert.Equal(t, tt.want, b.Debug(ref))

			var sb strings.Builder

			assert.NoError(t, b.WriteDebug(&sb, ref))
			assert.Equal(t, tt.want, sb.String())
		})
	}
}

func TestBlockString(t *testing.T) {
	assert.Equal(t, "Block{empty}", NewBlock().String())

	b := builder{NewBlock()}
	one := b.num(1)
	call := b.node(Call("f", one, one))

	assert.Equal(t, "Block{vcount: 1, ecount: 1, entry: none, tree: `(f 1 1)`}", b.String())

	b.SetEntry(call)

	assert.Equal(t, "Block{vcount: 1, ecount: 1, entry: 1, tree: `(f 1 1)`}", b.String())
}

func TestCallName(t *testing.T) {
	tests := map[string]string{
		"+":       "+",
		"==":      "==",
		"if-then": "if-then",
		"true":    `"true"`,
		",":       `","`,
		"":        `""`,
	}

	for in, want := range tests {
		assert.Equal(t, want, CallName(in), "CallName(%q)", in)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "empty", KindEmpty.String())
	assert.Equal(t, "method", KindMethod.String())
	assert.Equal(t, "pipe", KindPipe.String())
	assert.Equal(t, "NodeKind(9)", (KindPipe + 1).String())

	assert.Equal(t, "collect", StageCollect.String())
	assert.Equal(t, "finding", StageFinding.String())
	assert.Equal(t, "StageKind(5)", (StageFinding + 1).String())
}
