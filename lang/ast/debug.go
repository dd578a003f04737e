package ast

import (
	"io"
	"strconv"
	"strings"

	"github.com/ardnew/impral/lang/token"
)

// Names of the commands the parser synthesizes for bracketed literals.
const (
	ListName = "list"
	DictName = "dict"
)

// Debug renders the tree rooted at r in the textual debug form.
//
// Calls render as `(name arg key=val)`, with lists as `[a b]` and dicts as
// `{k=v}`. For constants, numbers, strings, lists, dicts and commands the
// output parses back to an equal tree.
func (b *Block) Debug(r BlockRef) string {
	var sb strings.Builder

	b.debug(&sb, r, false)

	return sb.String()
}

// WriteDebug writes the debug form of the tree rooted at r to w.
func (b *Block) WriteDebug(w io.Writer, r BlockRef) error {
	_, err := io.WriteString(w, b.Debug(r))

	return err
}

// String summarizes the block and renders the tree of its root.
func (b *Block) String() string {
	var sb strings.Builder

	sb.WriteString("Block{")

	root, ok := b.Root()
	if !ok {
		sb.WriteString("empty}")

		return sb.String()
	}

	vcount, ecount := b.Counts()

	sb.WriteString("vcount: ")
	sb.WriteString(strconv.Itoa(vcount))
	sb.WriteString(", ecount: ")
	sb.WriteString(strconv.Itoa(ecount))
	sb.WriteString(", entry: ")

	if e, ok := b.Entry(); ok {
		sb.WriteString(strconv.FormatUint(uint64(e), 10))
	} else {
		sb.WriteString("none")
	}

	sb.WriteString(", tree: `")
	b.debug(&sb, root, false)
	sb.WriteString("`}")

	return sb.String()
}

// debug writes the node at r. With bare set, a call is written without its
// surrounding parentheses.
func (b *Block) debug(sb *strings.Builder, r BlockRef, bare bool) {
	switch n := b.Get(r).(type) {
	case nil:
		sb.WriteString("<#")
		sb.WriteString(strconv.FormatUint(uint64(r), 10))
		sb.WriteString("?>")

	case *Empty:
		sb.WriteByte('_')

	case *Value:
		sb.WriteString(n.Literal.String())

	case *FnCall:
		b.debugCall(sb, n, bare)

	case *Field:
		b.debug(sb, n.Target, false)
		sb.WriteByte('.')
		sb.WriteString(token.Bareword(n.Name))

	case *Index:
		b.debug(sb, n.Target, false)
		sb.WriteString(".[")
		b.debug(sb, n.Key, false)
		sb.WriteByte(']')

	case *Method:
		b.debug(sb, n.Target, false)
		sb.WriteString(".(")
		b.debug(sb, n.Call, true)
		sb.WriteByte(')')

	case *Range:
		b.debug(sb, n.Start, false)
		sb.WriteString("..")

		if n.Inclusive {
			sb.WriteByte('=')
		}

		b.debug(sb, n.End, false)

	case *Try:
		b.debug(sb, n.Target, false)
		sb.WriteByte('?')

		if n.Aborts {
			sb.WriteByte('!')
		}

	case *Pipe:
		sb.WriteByte('(')
		b.debug(sb, n.Source, false)

		for _, s := range n.Stages {
			b.debugStage(sb, s)
		}

		sb.WriteByte(')')
	}
}

func (b *Block) debugCall(sb *strings.Builder, n *FnCall, bare bool) {
	switch {
	case bare:
	case n.Name == ListName && len(n.Named) == 0:
		sb.WriteByte('[')
		b.debugArgs(sb, n, "")
		sb.WriteByte(']')

		return

	case n.Name == DictName && len(n.Pos) == 0:
		sb.WriteByte('{')
		b.debugArgs(sb, n, "")
		sb.WriteByte('}')

		return
	}

	if bare {
		sb.WriteString(CallName(n.Name))
		b.debugArgs(sb, n, " ")

		return
	}

	sb.WriteByte('(')
	sb.WriteString(CallName(n.Name))
	b.debugArgs(sb, n, " ")
	sb.WriteByte(')')
}

func (b *Block) debugArgs(sb *strings.Builder, n *FnCall, sep string) {
	for _, arg := range n.Pos {
		sb.WriteString(sep)
		b.debug(sb, arg, false)
		sep = " "
	}

	for _, arg := range n.Named {
		sb.WriteString(sep)
		sb.WriteString(token.Bareword(arg.Name))
		sb.WriteByte('=')
		b.debug(sb, arg.Value, false)
		sep = " "
	}
}

func (b *Block) debugStage(sb *strings.Builder, s PipeSeg) {
	switch s := s.(type) {
	case Collect:
		sb.WriteString(" |!")
	case Mapping:
		sb.WriteString(" | ")
		b.debug(sb, s.Mapper, true)
	case Folding:
		sb.WriteString(" |! ")
		b.debug(sb, s.Initial, false)
		sb.WriteByte(' ')
		b.debug(sb, s.Reducer, true)
	case Exclude:
		sb.WriteString(" |? ")
		b.debug(sb, s.Predicate, true)
	case Finding:
		sb.WriteString(" |?! ")
		b.debug(sb, s.Predicate, true)
	}
}

// CallName renders a command name so that it lexes back as the same name.
// Operator names are written as-is, anything else as a bareword or quoted
// string.
func CallName(name string) string {
	r := []rune(name)

	switch len(r) {
	case 1:
		if s, ok := token.ParseSymbol(r[0]); ok && s.IsOperator() {
			return name
		}
	case 2:
		if s, ok := token.ParsePair(r[0], r[1]); ok && s.IsOperator() {
			return name
		}
	}

	return token.Bareword(name)
}
