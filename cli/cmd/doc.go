// Package cmd implements the impral subcommands.
//
// Every command that parses input accepts command text as arguments. Without
// arguments it reads the --source files, or stdin when no source is given,
// and parses each line as a separate command. Blank lines and lines starting
// with // are skipped.
package cmd

var (
	// CacheIdentifier is the kong variable holding the cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the configuration file.
	ConfigIdentifier = "config"

	// FormatsIdentifier is the kong variable holding the comma-separated
	// output format names.
	FormatsIdentifier = "formats"

	// HistoryIdentifier is the kong variable holding the REPL history file.
	HistoryIdentifier = "history"

	// HistorySizeIdentifier is the kong variable holding the default number
	// of REPL history entries.
	HistorySizeIdentifier = "historySize"

	// MaxDepthIdentifier is the kong variable holding the default nesting
	// bound.
	MaxDepthIdentifier = "maxDepth"
)
