package cmd

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/ardnew/impral/lang"
	"github.com/ardnew/impral/log"
)

// argSource names commands given on the command line.
const argSource = "arg"

// Input selects the commands a subcommand parses and how they are parsed.
type Input struct {
	Command  []string `arg:"" help:"Command text, one command per argument. Reads --source files or stdin when omitted." optional:""`
	MaxDepth int      `default:"${maxDepth}" env:"IMPRAL_MAX_DEPTH" help:"Maximum expression nesting depth."`
	NoCache  bool     `env:"IMPRAL_NO_CACHE" help:"Disable the parse cache."`
}

func (in *Input) options() []lang.Option {
	return []lang.Option{
		lang.WithMaxDepth(in.MaxDepth),
		lang.WithCache(!in.NoCache),
		lang.WithLogger(log.Default().Component("lang")),
	}
}

// lines yields the selected commands: the arguments if any were given, then
// the --source files, then stdin.
func (in *Input) lines(ctx context.Context) iter.Seq2[Line, error] {
	if len(in.Command) > 0 {
		return func(yield func(Line, error) bool) {
			for i, text := range in.Command {
				if skip(text) {
					continue
				}

				if !yield(Line{Source: argSource, Number: i + 1, Text: text}, nil) {
					return
				}
			}
		}
	}

	if src := sourceFilesFrom(ctx); src != nil {
		return src.Lines(stdinFrom(ctx))
	}

	return Lines(stdinSource, stdinFrom(ctx))
}

// each parses every selected command and calls fn with each successful
// result. Parse failures are reported on the command's error stream and do
// not stop iteration; each returns [ErrParseFailed] if there were any.
func (in *Input) each(ctx context.Context, fn func(Line, *lang.Result) error) error {
	_, stderr := stdio(ctx)
	opts := in.options()
	failed := 0

	for line, err := range in.lines(ctx) {
		if err != nil {
			return ErrReadSource.Wrap(err).With(slog.String("source", line.Source))
		}

		res, err := lang.Parse(ctx, line.Text, opts...)
		if err != nil {
			failed++

			log.DebugContext(ctx, "parse failed",
				slog.String("source", line.Source),
				slog.Int("line", line.Number),
				slog.Any("error", err),
			)
			reportError(stderr, line, err)

			continue
		}

		if err := fn(line, res); err != nil {
			return err
		}
	}

	if failed > 0 {
		return ErrParseFailed.With(slog.Int("count", failed))
	}

	return nil
}

func reportError(w io.Writer, line Line, err error) {
	fmt.Fprintf(w, "%s:%d: %v\n", line.Source, line.Number, err)
}
