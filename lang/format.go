package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/impral/lang/token"
)

// Format selects an output representation of a [Result].
type Format int

const (
	FormatDebug Format = iota
	FormatHTML
	FormatJSON
	FormatYAML
	FormatTokens
)

var formatNames = [...]string{
	FormatDebug:  "debug",
	FormatHTML:   "html",
	FormatJSON:   "json",
	FormatYAML:   "yaml",
	FormatTokens: "tokens",
}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}

	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// Formats returns an iterator over the names of all output formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range formatNames {
			if !yield(name) {
				return
			}
		}
	}
}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(f), nil
		}
	}

	return 0, ErrInvalidFormat.With(slog.String("format", s))
}

// Format writes the result to w in format f.
// Indent applies to JSON and YAML: zero selects the compact form.
func (r *Result) Format(ctx context.Context, w io.Writer, f Format, indent int) error {
	var err error

	switch f {
	case FormatDebug:
		err = r.FormatDebug(w)
	case FormatHTML:
		err = r.FormatHTML(w, false)
	case FormatJSON:
		err = r.FormatJSON(ctx, w, indent)
	case FormatYAML:
		err = r.FormatYAML(ctx, w, indent)
	case FormatTokens:
		err = r.FormatTokens(w)
	default:
		return ErrInvalidFormat.With(slog.String("format", f.String()))
	}

	if err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", f.String()))
	}

	return nil
}

// FormatDebug writes the debug form of the entry node, followed by a
// newline.
func (r *Result) FormatDebug(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.String())

	return err
}

// FormatHTML writes the entry node as nested HTML spans. With page set, the
// fragment is embedded in a standalone document that also lists the symbol
// table of the language.
func (r *Result) FormatHTML(w io.Writer, page bool) error {
	var fragment string
	if root, ok := r.Root(); ok {
		fragment = r.Block.HTML(root)
	}

	if !page {
		_, err := fmt.Fprintln(w, fragment)

		return err
	}

	return WritePage(w, r)
}

// WritePage writes one standalone HTML document holding the source and
// expression tree of every result, followed by the symbol table.
func WritePage(w io.Writer, results ...*Result) error {
	title := "impral"
	if len(results) == 1 && results[0] != nil {
		title = results[0].Source
	}

	var buf strings.Builder

	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=utf-8>\n")
	buf.WriteString("<title>")
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title>\n<style>\n")
	buf.WriteString(pageStyle)
	buf.WriteString("</style>\n</head>\n<body>\n")

	for _, r := range results {
		if r == nil {
			continue
		}

		buf.WriteString("<pre class=source>")
		buf.WriteString(html.EscapeString(r.Source))
		buf.WriteString("</pre>\n<p>")

		if root, ok := r.Root(); ok {
			buf.WriteString(r.Block.HTML(root))
		}

		buf.WriteString("</p>\n")
	}

	writeSymbolTable(&buf)
	buf.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, buf.String())

	return err
}

const pageStyle = `.expression { display: inline; }
.literal { color: #005cc5; }
.name, .key { color: #6f42c1; }
.operator, .separator { color: #d73a49; }
.missing { color: #b31d28; text-decoration: underline wavy; }
table.symbols { border-collapse: collapse; margin-top: 2em; }
table.symbols td, table.symbols th { border: 1px solid #ccc; padding: 0 .5em; }
`

// writeSymbolTable writes every symbol with its name and roles.
func writeSymbolTable(buf *strings.Builder) {
	buf.WriteString("<table class=symbols>\n")
	buf.WriteString("<tr><th>symbol</th><th>name</th><th>role</th><th>precedence</th></tr>\n")

	for s := range token.Symbols() {
		buf.WriteString("<tr><td><code>")
		buf.WriteString(html.EscapeString(s.String()))
		buf.WriteString("</code></td><td>")
		buf.WriteString(s.Name())
		buf.WriteString("</td><td>")
		buf.WriteString(html.EscapeString(SymbolRole(s)))
		buf.WriteString("</td><td>")

		if p := s.Precedence(); p != token.PrecedenceNone {
			buf.WriteString(strconv.Itoa(int(p)))
		}

		buf.WriteString("</td></tr>\n")
	}

	buf.WriteString("</table>\n")
}

// SymbolRole describes how the parser treats s, e.g. "operator, infix".
func SymbolRole(s token.Symbol) string {
	var roles []string

	switch {
	case s.IsStartDelimiter():
		roles = append(roles, "opens")
	case s.IsEndDelimiter():
		roles = append(roles, "closes")
	}

	if s.IsOperator() {
		roles = append(roles, "operator")
	}

	if s.IsInfixOperator() {
		roles = append(roles, "infix")
	}

	if name, ok := s.PostopName(); ok {
		roles = append(roles, "postfix "+name)
	}

	if s.IsArrow() {
		roles = append(roles, "arrow")
	}

	return strings.Join(roles, ", ")
}

// FormatJSON writes the arena of the result as JSON to the writer.
func (r *Result) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(r, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(r)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the arena of the result as YAML to the writer.
func (r *Result) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, r.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatTokens writes one grouped token per line, indented by nesting
// depth.
func (r *Result) FormatTokens(w io.Writer) error {
	var buf strings.Builder

	writeTokens(&buf, r.Tokens, 0)

	_, err := io.WriteString(w, buf.String())

	return err
}

func writeTokens(buf *strings.Builder, toks []token.Token, depth int) {
	for _, tok := range toks {
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteString(strconv.Itoa(tok.Start))
		buf.WriteString("..")
		buf.WriteString(strconv.Itoa(tok.End))
		buf.WriteByte(' ')

		switch tok.Kind {
		case token.SymbolToken:
			buf.WriteString(tok.Symbol.Name())
			buf.WriteByte(' ')
			buf.WriteString(tok.Symbol.String())
		case token.LiteralToken:
			buf.WriteString(tok.Literal.Type())
			buf.WriteByte(' ')
			buf.WriteString(tok.Literal.String())
		case token.GroupToken:
			buf.WriteString("group ")
			buf.WriteString(tok.Symbol.String())
		case token.RemainderToken:
			buf.WriteString("remainder ")
			buf.WriteString(strconv.Quote(tok.Text))
		}

		buf.WriteByte('\n')

		if tok.Kind == token.GroupToken {
			writeTokens(buf, tok.Tokens, depth+1)
		}
	}
}
