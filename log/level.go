package log

//go:generate go tool stringer --linecomment --type Level,Format --output enum_string.go

import (
	"log/slog"
	"slices"
	"strings"
)

// Level is the severity of a log message. It extends [slog.Level] with
// [LevelTrace], used for per-flag registration and assignment events.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug - 4) // trace
	LevelDebug Level = Level(slog.LevelDebug)     // debug
	LevelInfo  Level = Level(slog.LevelInfo)      // info
	LevelWarn  Level = Level(slog.LevelWarn)      // warn
	LevelError Level = Level(slog.LevelError)     // error
)

// DefaultLevel is the level of a logger made without [WithLevel].
const DefaultLevel = LevelInfo

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels returns the names of all levels from least to most severe.
func Levels() []string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.String()
	}

	return names
}

// ParseLevel returns the level named s, ignoring case. Besides the names
// listed by [Levels], it accepts anything [slog.Level.UnmarshalText] does,
// such as "warn+2". Unrecognized names yield [DefaultLevel].
func ParseLevel(s string) Level {
	var l Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return l
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	name := strings.TrimSpace(string(text))

	if i := slices.IndexFunc(levels, func(v Level) bool {
		return strings.EqualFold(v.String(), name)
	}); i >= 0 {
		*l = levels[i]

		return nil
	}

	var sl slog.Level
	if err := sl.UnmarshalText([]byte(name)); err != nil {
		return err
	}

	*l = Level(sl)

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// label is the name written to log records: TRACE rather than DEBUG-4, and
// the slog rendering for levels between the named ones.
func (l Level) label() string {
	if slices.Contains(levels, l) {
		return strings.ToUpper(l.String())
	}

	return slog.Level(l).String()
}
