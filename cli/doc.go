// Package cli contains the command line interface for impral.
//
// # Usage
//
// Without a subcommand, every argument is parsed as one command and its
// debug form is printed:
//
//	impral 'f 1 -> $x' '= 1 + 2 * 3'
//
// Commands are otherwise read one per line from the --source files, or from
// stdin:
//
//	impral fmt json --source=script.impral
//	echo 'a | b | c' | impral fmt tokens
//
// The repl subcommand starts an interactive session with fuzzy completion
// and persistent history.
//
// # Configuration
//
// Flag defaults are read from config.toml in the user configuration
// directory. Nested tables join their keys with a dash, so the file
//
//	[log]
//	level = "debug"
//
// sets --log-level.
//
// # Logging Options
//
//   - --log-level: Set minimum log level
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o impral .
//
// It adds --pprof-mode and --pprof-dir, which defaults to the pprof
// directory under the user cache directory.
package cli
