package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of the pretty handler. The renderer detects the
// color support of the output writer, so output to a file or buffer carries
// no escape sequences.
type palette struct {
	key, str, num, boolTrue, boolFalse, time, null lipgloss.Style
	levels                                         map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)

	return &palette{
		key:       r.NewStyle().Foreground(lipgloss.Color("8")),
		str:       r.NewStyle().Foreground(lipgloss.Color("6")),
		num:       r.NewStyle().Foreground(lipgloss.Color("3")),
		boolTrue:  r.NewStyle().Foreground(lipgloss.Color("2")),
		boolFalse: r.NewStyle().Foreground(lipgloss.Color("1")),
		time:      r.NewStyle().Foreground(lipgloss.Color("4")),
		null:      r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		levels: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): r.NewStyle().Foreground(lipgloss.Color("5")),
			slog.LevelDebug:        r.NewStyle().Foreground(lipgloss.Color("4")),
			slog.LevelInfo:         r.NewStyle().Foreground(lipgloss.Color("2")),
			slog.LevelWarn:         r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
			slog.LevelError:        r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

func (p *palette) level(l slog.Level) string {
	style := p.levels[slog.LevelError]

	switch {
	case l < slog.LevelDebug:
		style = p.levels[slog.Level(LevelTrace)]
	case l < slog.LevelInfo:
		style = p.levels[slog.LevelDebug]
	case l < slog.LevelWarn:
		style = p.levels[slog.LevelInfo]
	case l < slog.LevelError:
		style = p.levels[slog.LevelWarn]
	}

	return style.Render(strings.ToUpper(Level(l).String()))
}

// prettyHandler writes records for people rather than machines. In text
// format each record is one line of key=value pairs. In JSON format each
// record is an indented object with unquoted values.
type prettyHandler struct {
	opts       slog.HandlerOptions
	format     Format
	formatTime FormatTime
	style      *palette
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	groups     []string
}

func newPrettyHandler(
	w io.Writer,
	format Format,
	formatTime FormatTime,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		format:     format,
		formatTime: formatTime,
		style:      newPalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			fields = append(fields, field{slog.TimeKey, h.style.time.Render(ts)})
		}
	}

	fields = append(fields, field{slog.LevelKey, h.style.level(r.Level)})

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			loc := src.File + ":" + strconv.Itoa(src.Line)
			fields = append(fields, field{slog.SourceKey, h.style.str.Render(loc)})
		}
	}

	fields = append(fields, field{slog.MessageKey, h.style.str.Render(r.Message)})

	prefix := h.prefix()

	for _, a := range h.attrs {
		fields = h.appendAttr(fields, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		fields = h.appendAttr(fields, prefix, a)

		return true
	})

	var buf bytes.Buffer

	if h.format == FormatJSON {
		h.writeJSON(&buf, fields)
	} else {
		h.writeText(&buf, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h

	prefix := h.prefix()
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + a.Key
		}

		c.attrs = append(c.attrs[:len(c.attrs):len(c.attrs)], a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(c.groups[:len(c.groups):len(c.groups)], name)

	return &c
}

func (h *prettyHandler) prefix() string {
	if len(h.groups) == 0 {
		return ""
	}

	return strings.Join(h.groups, ".") + "."
}

type field struct {
	key, val string
}

// appendAttr flattens a into fields, joining group keys with dots.
func (h *prettyHandler) appendAttr(fields []field, prefix string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			fields = h.appendAttr(fields, prefix, g)
		}

		return fields
	}

	return append(fields, field{prefix + a.Key, h.value(a.Value)})
}

func (h *prettyHandler) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64:
		return h.style.num.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return h.style.num.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return h.style.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return h.style.boolTrue.Render("true")
		}

		return h.style.boolFalse.Render("false")
	case slog.KindDuration:
		return h.style.num.Render(v.Duration().String())
	case slog.KindTime:
		return h.style.time.Render(h.formatTime(v.Time()))
	case slog.KindAny:
		if v.Any() == nil {
			return h.style.null.Render("null")
		}

		if err, ok := v.Any().(error); ok {
			return h.style.boolFalse.Render(err.Error())
		}
	}

	return h.style.str.Render(v.String())
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, fields []field) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(f.key))
		buf.WriteByte('=')
		buf.WriteString(f.val)
	}

	buf.WriteByte('\n')
}

func (h *prettyHandler) writeJSON(buf *bytes.Buffer, fields []field) {
	buf.WriteString("{\n")

	for i, f := range fields {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.style.key.Render(f.key))
		buf.WriteString(": ")
		buf.WriteString(f.val)
	}

	buf.WriteString("\n}\n")
}
