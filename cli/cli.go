package cli

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/xyproto/env/v2"

	"github.com/ardnew/impral/cli/cmd"
	"github.com/ardnew/impral/cli/cmd/repl"
	"github.com/ardnew/impral/lang"
	"github.com/ardnew/impral/pkg"
)

// envHistorySize overrides the default number of REPL history entries.
const envHistorySize = "IMPRAL_HISTORY_SIZE"

// CLI is the top-level command-line interface for impral.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source []string `help:"Input source file(s) or '-' for stdin, one command per line." name:"source" short:"s" type:"existingfile"`

	Parse   cmd.Parse   `cmd:"" default:"withargs" help:"Print the parsed form of each command"`
	Fmt     cmd.Fmt     `cmd:""                    help:"Format commands in another representation"`
	Repl    cmd.Repl    `cmd:""                    help:"Start an interactive session"`
	Version cmd.Version `cmd:""                    help:"Print the version"`
}

func (cli *CLI) vars() kong.Vars {
	return kong.Vars{
		cmd.ConfigIdentifier:      configPath(baseConfig),
		cmd.CacheIdentifier:       cachePath(),
		cmd.HistoryIdentifier:     cachePath(baseHistory),
		cmd.HistorySizeIdentifier: strconv.Itoa(env.Int(envHistorySize, repl.DefaultHistorySize)),
		cmd.MaxDepthIdentifier:    strconv.Itoa(lang.DefaultMaxDepth),
		cmd.FormatsIdentifier:     strings.Join(slices.Collect(lang.Formats()), ","),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())
}

// newParser returns the kong parser for cli.
func newParser(cli *CLI, exit func(code int), opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			append([]kong.Group{cli.Log.group()}, cli.Pprof.groups()...),
		),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfigJSON)),
		kong.Configuration(resolve, configPath(baseConfig)),
		cli.vars(),
	}, opts...)

	return kong.New(cli, opts...)
}

// Run executes the impral CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logging flags take effect before kong reports anything.
	cli.Log.scan(args)

	parser, err := newParser(&cli, exit)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)
	ktx.BindTo(ctx, (*context.Context)(nil))

	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(&cli)
}
