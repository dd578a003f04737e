package ast

import (
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/ardnew/impral/lang/token"
)

// HTML renders the tree rooted at r as nested span elements whose classes
// name the role of each node.
func (b *Block) HTML(r BlockRef) string {
	var sb strings.Builder

	sb.WriteString("<span class=expression>")
	b.html(&sb, r, true)
	sb.WriteString("</span>")

	return sb.String()
}

// WriteHTML writes the HTML form of the tree rooted at r to w.
func (b *Block) WriteHTML(w io.Writer, r BlockRef) error {
	_, err := io.WriteString(w, b.HTML(r))

	return err
}

type htmlWriter struct {
	*strings.Builder
}

func (w htmlWriter) open(class string) {
	w.WriteString("<span class=")

	if strings.ContainsRune(class, ' ') {
		w.WriteString("'" + class + "'")
	} else {
		w.WriteString(class)
	}

	w.WriteString(">")
}

func (w htmlWriter) close() { w.WriteString("</span>") }

func (w htmlWriter) text(class, text string) {
	w.open(class)
	w.WriteString(html.EscapeString(text))
	w.close()
}

// html writes the node at r. With inPlace set, a call is written without
// separator parentheses.
func (b *Block) html(sb *strings.Builder, r BlockRef, inPlace bool) {
	w := htmlWriter{sb}

	w.WriteString("<span class=expression title='#")
	w.WriteString(strconv.FormatUint(uint64(r), 10))
	w.WriteString("'>")

	switch n := b.Get(r).(type) {
	case nil:
		w.text("missing", "#"+strconv.FormatUint(uint64(r), 10))

	case *Empty:
		w.text("empty", "_")

	case *Value:
		w.text("literal "+literalClass(n.Literal), n.Literal.String())

	case *Range:
		w.open("range")
		w.open("start")
		b.html(sb, n.Start, false)
		w.close()

		if n.Inclusive {
			w.text("operator", "..=")
		} else {
			w.text("operator", "..")
		}

		w.open("end")
		b.html(sb, n.End, false)
		w.close()
		w.close()

	case *Try:
		w.open("try")
		w.open("target")
		b.html(sb, n.Target, false)
		w.close()
		w.text("operator", "?")

		if n.Aborts {
			w.text("operator", "!")
		}

		w.close()

	case *Field:
		w.open("field")
		w.open("target")
		b.html(sb, n.Target, false)
		w.close()
		w.text("operator", ".")
		w.text("member", token.Bareword(n.Name))
		w.close()

	case *Index:
		w.open("index")
		w.open("target")
		b.html(sb, n.Target, false)
		w.close()
		w.text("operator", ".")
		w.text("separator", "[")
		w.open("member")
		b.html(sb, n.Key, false)
		w.close()
		w.text("separator", "]")
		w.close()

	case *Method:
		w.open("method")
		w.open("target")
		b.html(sb, n.Target, false)
		w.close()
		w.text("operator", ".")
		w.text("separator", "(")
		w.open("invoke")
		b.html(sb, n.Call, true)
		w.close()
		w.text("separator", ")")
		w.close()

	case *FnCall:
		b.htmlCall(w, n, inPlace)

	case *Pipe:
		w.open("pipe")
		w.open("source")
		b.html(sb, n.Source, true)
		w.close()

		for _, s := range n.Stages {
			w.WriteString(" ")
			w.text("separator", "|")
			b.htmlStage(w, s)
		}

		w.close()
	}

	w.close()
}

func (b *Block) htmlCall(w htmlWriter, n *FnCall, inPlace bool) {
	w.open("invoke")

	if !inPlace {
		w.text("separator", "(")
	}

	w.text("name", CallName(n.Name))

	for _, arg := range n.Pos {
		w.WriteString(" ")
		w.open("val")
		b.html(w.Builder, arg, false)
		w.close()
	}

	for _, arg := range n.Named {
		w.WriteString(" ")
		w.open("key-val")
		w.text("key", token.Bareword(arg.Name))
		w.text("separator", "=")
		w.open("val")
		b.html(w.Builder, arg.Value, false)
		w.close()
		w.close()
	}

	if !inPlace {
		w.text("separator", ")")
	}

	w.close()
}

func (b *Block) htmlStage(w htmlWriter, s PipeSeg) {
	w.open("segment " + s.Kind().String())

	switch s := s.(type) {
	case Collect:
		w.text("operator", "!")
	case Mapping:
		w.WriteString(" ")
		b.html(w.Builder, s.Mapper, true)
	case Folding:
		w.text("operator", "!")
		w.WriteString(" ")
		b.html(w.Builder, s.Initial, false)
		w.WriteString("&nbsp;")
		b.html(w.Builder, s.Reducer, true)
	case Exclude:
		w.text("operator", "?")
		w.WriteString(" ")
		b.html(w.Builder, s.Predicate, true)
	case Finding:
		w.text("operator", "?!")
		w.WriteString(" ")
		b.html(w.Builder, s.Predicate, true)
	}

	w.close()
}

func literalClass(l token.Literal) string {
	switch l.Kind() {
	case token.KindNil:
		return "null"
	case token.KindBool:
		return "bool"
	case token.KindInt:
		return "int"
	case token.KindDec:
		return "dec"
	case token.KindUid:
		return "uid"
	case token.KindStr:
		return "str"
	case token.KindByt:
		return "byt"
	default:
		return l.Type()
	}
}
