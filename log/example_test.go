package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/impral/log"
)

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Info("parse complete", slog.Int("values", 3), slog.Int("exprs", 2))
	// Output: {"level":"INFO","msg":"parse complete","values":3,"exprs":2}
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	logger.Error("error message")
	// Output:
	// level=WARN msg="warning message" key=value
	// level=ERROR msg="error message"
}

func ExampleLogger_Component() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	type requestKey struct{}

	ctx := context.WithValue(context.Background(), requestKey{}, "r1")

	logger.Component("parser").TraceContext(ctx, "tokens grouped", slog.Int("tokens", 5))
	// Output: level=TRACE msg="tokens grouped" component=parser tokens=5
}
