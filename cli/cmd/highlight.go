package cmd

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ardnew/impral/lang/lexer"
	"github.com/ardnew/impral/lang/token"
)

// Color modes accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// renderer returns a lipgloss renderer for w. The auto mode colors only
// terminals.
func renderer(w io.Writer, mode string) (*lipgloss.Renderer, error) {
	r := lipgloss.NewRenderer(w)

	switch mode {
	case colorAuto, "":
	case colorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case colorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		return nil, ErrColorMode.With(slog.String("mode", mode))
	}

	return r, nil
}

// palette styles the tokens of rendered expressions.
type palette struct {
	delims   []lipgloss.Style
	operator lipgloss.Style
	str      lipgloss.Style
	number   lipgloss.Style
	ref      lipgloss.Style
	constant lipgloss.Style
	key      lipgloss.Style
	plain    lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) palette {
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		delims:   []lipgloss.Style{color("4"), color("5"), color("6"), color("3")},
		operator: color("1").Bold(true),
		str:      color("2"),
		number:   color("3"),
		ref:      color("6"),
		constant: color("5"),
		key:      color("4"),
		plain:    r.NewStyle(),
	}
}

// highlight styles every token of text, coloring brackets by nesting depth.
// Text that does not lex is left unstyled from the point of failure.
func (p palette) highlight(text string) string {
	var b strings.Builder

	pos, depth := 0, 0

	for tok, err := range lexer.Tokenize(text) {
		if err != nil {
			break
		}

		b.WriteString(text[pos:tok.Start])
		lexeme := text[tok.Start:tok.End]
		b.WriteString(p.style(tok, lexeme, &depth).Render(lexeme))
		pos = tok.End
	}

	b.WriteString(text[pos:])

	return b.String()
}

func (p palette) style(tok token.Token, lexeme string, depth *int) lipgloss.Style {
	switch tok.Kind {
	case token.SymbolToken:
		switch {
		case tok.Symbol.IsStartDelimiter():
			s := p.delims[*depth%len(p.delims)]
			*depth++

			return s

		case tok.Symbol.IsEndDelimiter():
			*depth = max(*depth-1, 0)

			return p.delims[*depth%len(p.delims)]

		default:
			return p.operator
		}

	case token.LiteralToken:
		switch tok.Literal.Kind() {
		case token.KindStr:
			if token.IsBareword(lexeme) {
				return p.key
			}

			return p.str
		case token.KindByt:
			return p.str
		case token.KindInt, token.KindDec, token.KindUid:
			return p.number
		case token.KindRefRes, token.KindRefCtx, token.KindRefVar:
			return p.ref
		case token.KindNil, token.KindBool:
			return p.constant
		default:
			return p.key
		}
	}

	return p.plain
}
