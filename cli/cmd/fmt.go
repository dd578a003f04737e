package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/impral/lang"
)

// Fmt writes each command in the chosen output format.
type Fmt struct {
	Debug  Debug  `cmd:"" default:"withargs" help:"Format as debug expressions (default)."`
	HTML   HTML   `cmd:""                    help:"Format as nested HTML spans."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	Tokens Tokens `cmd:""                    help:"Format as the grouped token stream."`
}

// format writes every command of in to the command's output stream.
func format(ctx context.Context, in *Input, f lang.Format, indent int) error {
	stdout, _ := stdio(ctx)

	return in.each(ctx, func(line Line, res *lang.Result) error {
		if err := res.Format(ctx, stdout, f, indent); err != nil {
			return ErrWrite.Wrap(err).With(
				slog.String("source", line.Source),
				slog.Int("line", line.Number),
			)
		}

		return nil
	})
}

// Debug formats commands as parenthesized debug expressions.
type Debug struct {
	Input `embed:""`
}

// Run executes the debug command.
func (d *Debug) Run(ctx context.Context) error {
	return format(ctx, &d.Input, lang.FormatDebug, 0)
}

// HTML formats commands as nested HTML spans.
type HTML struct {
	Input `embed:""`

	Page bool `help:"Write one standalone HTML document for all commands."`
}

// Run executes the html command.
func (h *HTML) Run(ctx context.Context) error {
	if !h.Page {
		return format(ctx, &h.Input, lang.FormatHTML, 0)
	}

	var results []*lang.Result

	err := h.each(ctx, func(_ Line, res *lang.Result) error {
		results = append(results, res)

		return nil
	})

	// Commands that parsed are still written when others failed.
	if len(results) > 0 {
		stdout, _ := stdio(ctx)
		if werr := lang.WritePage(stdout, results...); werr != nil {
			return ErrWrite.Wrap(werr)
		}
	}

	return err
}

// JSON formats commands as JSON.
type JSON struct {
	Input `embed:""`

	Indent int `default:"2" help:"Indent width for JSON output, 0 for compact." short:"i"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	return format(ctx, &j.Input, lang.FormatJSON, j.Indent)
}

// YAML formats commands as YAML.
type YAML struct {
	Input `embed:""`

	Indent int `default:"2" help:"Indent width for YAML output." short:"i"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return format(ctx, &y.Input, lang.FormatYAML, y.Indent)
}

// Tokens prints the grouped token stream of each command.
type Tokens struct {
	Input `embed:""`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) error {
	return format(ctx, &t.Input, lang.FormatTokens, 0)
}
