// Package log wraps [log/slog] with the configuration shared by the flag
// engine and the gflag command.
//
// A [Logger] is made once from functional options and never changes; derive
// a new one with [Logger.Wrap] or [Logger.With]:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger = logger.With(slog.String("registry", "global"))
//	logger.Debug("flag set", slog.String("flag", "port"))
//
// Attributes are typed [slog.Attr] values; there is no key/value pair form.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and carries per-flag events such as
// registration and assignment. Records show it as TRACE.
//
// # Formats
//
// [FormatJSON] is the default, [FormatText] writes key=value lines. With
// [WithPretty] both are colorized with lipgloss styles, which degrade to
// plain text when the output is not a terminal.
//
// # Timestamps
//
// [WithTimeLayout] accepts the layout names of the [time] package without
// regard to case or punctuation, the shorthands ms, us, and ns, or a literal
// layout. "none" omits timestamps.
//
// # Default Logger
//
// The package-level functions ([Info], [DebugContext], ...) write to a
// default logger on standard error. [Config] replaces it with a wrapped copy
// and [Default] returns it. Functions without a context argument use
// [DefaultContextProvider].
package log
