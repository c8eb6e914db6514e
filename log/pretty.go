package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles used by the pretty handlers. Colors are dropped automatically when
// the output is not a terminal.
var (
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stringStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	numberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	trueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	falseStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	durationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	timeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	nullStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	levelStyle = map[Level]lipgloss.Style{
		LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

func renderLevel(level slog.Level) string {
	l := Level(level)

	style, ok := levelStyle[l]
	if !ok {
		style = stringStyle
	}

	return style.Render(l.String())
}

// prettyTextHandler writes one colorized key=value line per record.
type prettyTextHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	prefix string
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		if a, ok := replaceTime(h.opts, r); ok {
			h.writeAttr(buf, "", a)
		}
	}

	writeKey(buf, slog.LevelKey, "=")
	buf.WriteString(renderLevel(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, "", slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	h.writeAttr(buf, "", slog.String(slog.MessageKey, r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)

	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		c.attrs = append(c.attrs, a)
	}

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := prefix
		if a.Key != "" {
			group += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, group, ga)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	writeKey(buf, prefix+a.Key, "=")
	writeValue(buf, a.Value.Any())
}

// prettyJSONHandler writes one indented, colorized object per record.
// Values are not quoted.
type prettyJSONHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString("{")

	first := true
	field := func(key string, value any) {
		if !first {
			buf.WriteString(",")
		}

		first = false

		buf.WriteString("\n  ")
		writeKey(buf, key, ": ")
		writeValue(buf, value)
	}

	if !r.Time.IsZero() {
		if a, ok := replaceTime(h.opts, r); ok {
			field(a.Key, a.Value.Any())
		}
	}

	if !first {
		buf.WriteString(",")
	}

	first = false

	buf.WriteString("\n  ")
	writeKey(buf, slog.LevelKey, ": ")
	buf.WriteString(renderLevel(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			field(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line))
		}
	}

	field(slog.MessageKey, r.Message)

	var walk func(prefix string, a slog.Attr)

	walk = func(prefix string, a slog.Attr) {
		a.Value = a.Value.Resolve()
		if a.Value.Kind() == slog.KindGroup {
			for _, ga := range a.Value.Group() {
				walk(prefix+a.Key+".", ga)
			}

			return
		}

		field(prefix+a.Key, a.Value.Any())
	}

	for _, a := range h.attrs {
		walk("", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		walk("", a)

		return true
	})

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)

	return &c
}

func (h *prettyJSONHandler) WithGroup(string) slog.Handler {
	c := *h

	return &c
}

// replaceTime applies the configured time formatting to the record time.
// It reports false if the time is suppressed.
func replaceTime(opts slog.HandlerOptions, r slog.Record) (slog.Attr, bool) {
	a := slog.Time(slog.TimeKey, r.Time)
	if opts.ReplaceAttr != nil {
		a = opts.ReplaceAttr(nil, a)
	}

	return a, !a.Equal(slog.Attr{})
}

func writeKey(buf *bytes.Buffer, key, sep string) {
	buf.WriteString(keyStyle.Render(key))
	buf.WriteString(sep)
}

func writeValue(buf *bytes.Buffer, v any) {
	switch val := v.(type) {
	case string:
		buf.WriteString(stringStyle.Render(val))

	case int64:
		buf.WriteString(numberStyle.Render(strconv.FormatInt(val, 10)))

	case uint64:
		buf.WriteString(numberStyle.Render(strconv.FormatUint(val, 10)))

	case float64:
		buf.WriteString(numberStyle.Render(
			strconv.FormatFloat(val, 'g', -1, 64)))

	case int, int8, int16, int32, uint, uint8, uint16, uint32, float32:
		buf.WriteString(numberStyle.Render(fmt.Sprint(val)))

	case bool:
		if val {
			buf.WriteString(trueStyle.Render("true"))
		} else {
			buf.WriteString(falseStyle.Render("false"))
		}

	case slog.Level:
		buf.WriteString(renderLevel(val))

	case fmt.Stringer:
		switch val.(type) {
		case interface{ Hours() float64 }:
			buf.WriteString(durationStyle.Render(val.String()))
		case interface{ Unix() int64 }:
			buf.WriteString(timeStyle.Render(val.String()))
		default:
			buf.WriteString(stringStyle.Render(val.String()))
		}

	case nil:
		buf.WriteString(nullStyle.Render("null"))

	default:
		buf.WriteString(stringStyle.Render(fmt.Sprint(val)))
	}
}
