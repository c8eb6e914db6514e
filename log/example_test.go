package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/gflag/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout)
	logger.Info("flags parsed", slog.Int("count", 3))
}

func Example_configuration() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("RFC3339Nano"),
		log.WithCaller(true))

	logger.Trace("flag registered", slog.String("flag", "port"))
}

func Example_levels() {
	logger := log.Make(os.Stdout, log.WithLevel(log.LevelWarn))

	logger.Debug("flag set", slog.String("flag", "port"))
	logger.Info("flags parsed")
	logger.Warn("ignoring validator", slog.String("flag", "port"))
	logger.Error("flag registration failed", slog.String("flag", "port"))
}

func Example_textFormat() {
	logger := log.Make(os.Stdout, log.WithFormat(log.FormatText))
	logger.Info("reading flag file", slog.String("file", "defaults.flags"))
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout)
	logger = logger.With(slog.String("registry", "global"))

	logger.Info("flags restored")
	logger.Debug("flag set", slog.String("flag", "verbose"))
}

func Example_withContext() {
	type programKey struct{}

	ctx := context.WithValue(context.Background(), programKey{}, "server")

	logger := log.Make(os.Stdout)

	logger.InfoContext(ctx, "parsing command line")
	logger.DebugContext(ctx, "flag from environment",
		slog.String("env", "FLAGS_port"))
}
