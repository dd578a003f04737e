// Package log provides leveled structured logging on top of [log/slog].
//
// A [Logger] is configured once with functional options and is then
// immutable. Deriving a logger with [Logger.With], [Logger.Component] or
// [Logger.Wrap] never affects the original.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("Kitchen"))
//
//	logger.Component("parser").Debug("tokens grouped", slog.Int("tokens", 12))
//
// Below [LevelDebug] sits [LevelTrace], which the parser uses for its
// per-stage events. Messages below the configured level are dropped before
// any attribute is formatted.
//
// # Output
//
// Output is text or JSON. With [WithPretty], records are styled for a
// terminal: text loses its quoting and JSON is indented, with keys, levels
// and values colored when the output supports it.
//
// # Default Logger
//
// The package-level functions write to a default logger on standard error,
// which [Config] reconfigures. Functions without a context argument use the
// context returned by [DefaultContextProvider].
//
// The zero [Logger] discards all messages.
package log
