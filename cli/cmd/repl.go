package cmd

import (
	"context"

	"github.com/ardnew/impral/cli/cmd/repl"
	"github.com/ardnew/impral/lang"
	"github.com/ardnew/impral/log"
)

// Repl starts an interactive session that parses each submitted line.
type Repl struct {
	History     string `default:"${history}"     env:"IMPRAL_HISTORY"   help:"History file."                     type:"path"`
	HistorySize int    `default:"${historySize}"                         help:"Maximum number of history entries."`
	Mode        string `default:"debug"          enum:"${formats}"      help:"Initial output format: ${enum}."   short:"m"`
	MaxDepth    int    `default:"${maxDepth}"    env:"IMPRAL_MAX_DEPTH" help:"Maximum expression nesting depth."`
	NoCache     bool   `env:"IMPRAL_NO_CACHE"                           help:"Disable the parse cache."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	f, err := lang.ParseFormat(r.Mode)
	if err != nil {
		return err
	}

	in := Input{MaxDepth: r.MaxDepth, NoCache: r.NoCache}

	return repl.Run(ctx, r.History,
		repl.WithLogger(log.Default().Component("repl")),
		repl.WithFormat(f),
		repl.WithHistorySize(r.HistorySize),
		repl.WithParseOptions(in.options()...),
	)
}
