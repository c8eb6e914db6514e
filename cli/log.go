package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/gflag/flags"
	"github.com/ardnew/gflag/log"
)

// logFormat configures the logger format as a side effect of parsing via
// encoding.TextUnmarshaler, so that errors reported during parsing already
// use the requested format.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevel}"  enum:"${logLevelEnum}"  help:"Set log level."`
	Format     logFormat `default:"${logFormat}" enum:"${logFormatEnum}" help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                               help:"Set timestamp format."`
	Caller     bool      `default:"false"                                 help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                  help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevel":      log.DefaultLevel.String(),
		"logLevelEnum":  strings.Join(log.Levels(), ","),
		"logFormat":     log.DefaultFormat.String(),
		"logFormatEnum": strings.Join(log.Formats(), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) func() {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)

	return func() {}
}

// scan applies the logger flags found anywhere in args before kong parses
// them, so that the logger is configured regardless of flag position.
//
// The logger flags are declared in a private flag registry and parsed with
// its argument scanner. Kong spells negation "--no-log-x" while the registry
// spells it "--nolog-x"; tokens are rewritten accordingly. Anything that is
// not a logger flag is dropped before scanning.
func (f *logConfig) scan(args []string) {
	reg := flags.NewRegistry(
		flags.WithLogger(log.Make(io.Discard)),
		flags.WithStderr(io.Discard),
		flags.WithExit(func(int) {}),
		flags.WithAllowReparse(true),
	)

	var (
		level  = reg.String("log-level", string(f.Level), "")
		format = reg.String("log-format", string(f.Format), "")
		layout = reg.String("log-time-layout", f.TimeLayout, "")
		caller = reg.Bool("log-caller", f.Caller, "")
		pretty = reg.Bool("log-pretty", f.Pretty, "")
	)

	var tokens []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if rest, ok := strings.CutPrefix(arg, "--no-log-"); ok {
			tokens = append(tokens, "--nolog-"+rest)

			continue
		}

		if !strings.HasPrefix(arg, "--log-") {
			continue
		}

		name, _, assigned := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if info, ok := reg.Info(name); ok && !assigned && info.Type != "bool" {
			// a value-less flag followed by another flag is dropped
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				continue
			}

			i++
			arg += "=" + args[i]
		}

		tokens = append(tokens, arg)
	}

	if len(tokens) == 0 {
		return
	}

	flags.NewParser(reg).ParseArgs(tokens)

	modified := func(name string) bool {
		info, ok := reg.Info(name)

		return ok && !info.IsDefault
	}

	var opts []log.Option

	if modified("log-level") {
		f.Level = logLevel(*level)
		opts = append(opts, log.WithLevel(log.ParseLevel(*level)))
	}

	if modified("log-format") {
		f.Format = logFormat(*format)
		opts = append(opts, log.WithFormat(log.ParseFormat(*format)))
	}

	if modified("log-time-layout") {
		f.TimeLayout = *layout
		opts = append(opts, log.WithTimeLayout(*layout))
	}

	if modified("log-caller") {
		f.Caller = *caller
		opts = append(opts, log.WithCaller(*caller))
	}

	if modified("log-pretty") {
		f.Pretty = *pretty
		opts = append(opts, log.WithPretty(*pretty))
	}

	if len(opts) > 0 {
		log.Trace("logger pre-scan", slog.Any("args", tokens))
		log.Config(opts...)
	}
}
