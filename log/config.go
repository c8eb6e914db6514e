package log

import (
	"io"
	"log/slog"
	"time"
)

const (
	// DefaultCaller is whether a logger made without [WithCaller] records
	// the source position of each call.
	DefaultCaller = false

	// DefaultPretty is whether a logger made without [WithPretty] colorizes
	// its output.
	DefaultPretty = true
)

// config is the immutable configuration of a [Logger]. Options modify a
// private copy before the handler is built.
type config struct {
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

// Option modifies the configuration of a [Logger].
type Option func(*config)

func makeConfig(w io.Writer, opts ...Option) config {
	var c config

	WithDefaults(w)(&c)

	return c.with(opts...)
}

// with returns a copy of c with opts applied.
func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

func (c config) handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if t, ok := a.Value.Any().(time.Time); ok {
					text := c.formatTime(t)
					if text == "" {
						return slog.Attr{}
					}

					a.Value = slog.StringValue(text)
				}

			case slog.LevelKey:
				if l, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(Level(l).label())
				}
			}

			return a
		},
	}
}

// handler builds the slog handler described by c.
func (c config) handler() slog.Handler {
	opts := c.handlerOptions()

	switch {
	case c.format == FormatJSON && c.pretty:
		return newPrettyJSONHandler(c.output, opts)
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	case c.format == FormatText && c.pretty:
		return newPrettyTextHandler(c.output, opts)
	case c.format == FormatText:
		return slog.NewTextHandler(c.output, opts)
	}

	return slog.DiscardHandler
}

// WithDefaults resets every setting to its default and directs output to w.
// A nil w discards output.
func WithDefaults(w io.Writer) Option {
	return func(c *config) {
		*c = config{
			formatTime: timeFormatter(DefaultTimeLayout),
			level:      DefaultLevel,
			format:     DefaultFormat,
			caller:     DefaultCaller,
			pretty:     DefaultPretty,
		}

		WithOutput(w)(c)
	}
}

// WithOutput directs output to w. A nil w discards output.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	}
}

// WithLevel sets the minimum level of records written.
func WithLevel(level Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithTimeLayout sets the timestamp layout.
//
// The layout is either a name from the [time] package, matched ignoring case
// and punctuation ("RFC3339", "rfc-3339-nano", "Kitchen"), one of the
// shorthands "ms", "us", or "ns" for the Stamp layouts, or a layout passed
// verbatim to [time.Time.Format]. A blank layout or "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	formatTime := timeFormatter(layout)

	return func(c *config) { c.formatTime = formatTime }
}

// WithCaller sets whether records include the source position of the call.
func WithCaller(enable bool) Option {
	return func(c *config) { c.caller = enable }
}

// WithPretty sets whether output is colorized. Text records drop quoting;
// JSON records are indented.
func WithPretty(enable bool) Option {
	return func(c *config) { c.pretty = enable }
}
