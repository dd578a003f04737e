package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/impral/lang"
)

// Parse prints the debug form of each command, with syntax highlighting on
// color terminals.
type Parse struct {
	Input `embed:""`

	Color string `default:"auto" enum:"auto,always,never" help:"Highlight output: ${enum}."`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	stdout, _ := stdio(ctx)

	r, err := renderer(stdout, p.Color)
	if err != nil {
		return err
	}

	pal := newPalette(r)

	return p.each(ctx, func(_ Line, res *lang.Result) error {
		if _, err := fmt.Fprintln(stdout, pal.highlight(res.String())); err != nil {
			return ErrWrite.Wrap(err)
		}

		return nil
	})
}
