package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// plain returns a logger writing undecorated JSON records to buf.
func plain(buf *bytes.Buffer, opts ...Option) Logger {
	return Make(buf, append([]Option{WithPretty(false)}, opts...)...)
}

// record decodes the single JSON record in buf.
func record(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("output %q is not one JSON record: %v", buf.String(), err)
	}

	return m
}

func TestMakeDefaults(t *testing.T) {
	l := Make(nil)

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("level = %v, format = %v", l.Level(), l.Format())
	}

	if l.config.caller != DefaultCaller || l.config.pretty != DefaultPretty {
		t.Errorf("caller = %v, pretty = %v", l.config.caller, l.config.pretty)
	}
}

func TestLevelFiltering(t *testing.T) {
	emit := map[Level]func(Logger){
		LevelTrace: func(l Logger) { l.Trace("m") },
		LevelDebug: func(l Logger) { l.Debug("m") },
		LevelInfo:  func(l Logger) { l.Info("m") },
		LevelWarn:  func(l Logger) { l.Warn("m") },
		LevelError: func(l Logger) { l.Error("m") },
	}

	for _, floor := range levels {
		t.Run(floor.String(), func(t *testing.T) {
			for _, at := range levels {
				var buf bytes.Buffer

				emit[at](plain(&buf, WithLevel(floor)))

				if wrote := buf.Len() > 0; wrote != (at >= floor) {
					t.Errorf("record at %v written = %v", at, wrote)
				}
			}
		})
	}
}

func TestContextMethods(t *testing.T) {
	type key struct{}

	ctx := context.WithValue(context.Background(), key{}, "v")

	tests := []struct {
		name  string
		emit  func(Logger)
		label string
	}{
		{"trace", func(l Logger) { l.TraceContext(ctx, "m") }, "TRACE"},
		{"debug", func(l Logger) { l.DebugContext(ctx, "m") }, "DEBUG"},
		{"info", func(l Logger) { l.InfoContext(ctx, "m") }, "INFO"},
		{"warn", func(l Logger) { l.WarnContext(ctx, "m") }, "WARN"},
		{"error", func(l Logger) { l.ErrorContext(ctx, "m") }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.emit(plain(&buf, WithLevel(LevelTrace)))

			if got := record(t, &buf)[slog.LevelKey]; got != tt.label {
				t.Errorf("level = %v, want %s", got, tt.label)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer

		plain(&buf).Info("flag set", slog.String("flag", "port"))

		m := record(t, &buf)
		if m[slog.MessageKey] != "flag set" || m["flag"] != "port" {
			t.Errorf("record = %v", m)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer

		plain(&buf, WithFormat(FormatText)).Info("flag set", slog.String("flag", "port"))

		for _, want := range []string{"level=INFO", `msg="flag set"`, "flag=port"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("output %q missing %q", buf.String(), want)
			}
		}
	})

	t.Run("unknown", func(t *testing.T) {
		var buf bytes.Buffer

		plain(&buf, WithFormat(Format(9))).Info("m")

		if buf.Len() != 0 {
			t.Errorf("unknown format wrote %q", buf.String())
		}
	})
}

func TestTimeLayout(t *testing.T) {
	t.Run("omitted", func(t *testing.T) {
		var buf bytes.Buffer

		plain(&buf, WithTimeLayout("none")).Info("m")

		if _, ok := record(t, &buf)[slog.TimeKey]; ok {
			t.Errorf("record has a timestamp: %s", buf.String())
		}
	})

	t.Run("custom", func(t *testing.T) {
		var buf bytes.Buffer

		plain(&buf, WithTimeLayout("2006")).Info("m")

		ts, _ := record(t, &buf)[slog.TimeKey].(string)
		if len(ts) != 4 {
			t.Errorf("time = %q, want a year", ts)
		}
	})
}

func TestCaller(t *testing.T) {
	var buf bytes.Buffer

	plain(&buf, WithCaller(true)).Info("m")

	src, ok := record(t, &buf)[slog.SourceKey].(map[string]any)
	if !ok {
		t.Fatalf("record has no source: %s", buf.String())
	}

	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Errorf("source file = %q, want this file", file)
	}
}

func TestWithAndWrap(t *testing.T) {
	var buf bytes.Buffer

	l := plain(&buf).With(slog.String("registry", "global"))
	l.Info("m")

	if record(t, &buf)["registry"] != "global" {
		t.Errorf("attribute missing: %s", buf.String())
	}

	buf.Reset()

	w := l.Wrap(WithLevel(LevelError))
	w.Warn("hidden")

	if buf.Len() != 0 {
		t.Errorf("wrapped logger ignored its level: %s", buf.String())
	}

	if w.Format() != l.Format() || w.config.pretty {
		t.Error("wrapped logger lost the original configuration")
	}
}

func TestZeroLogger(t *testing.T) {
	var l Logger

	l.Info("discarded")
	l.With(slog.Int("n", 1)).Error("discarded")

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("level = %v, format = %v", l.Level(), l.Format())
	}

	if l.Wrap(WithLevel(LevelWarn)).Level() != LevelWarn {
		t.Error("Wrap of the zero logger ignored its options")
	}
}

func TestConcurrentLogging(t *testing.T) {
	var (
		buf lockedBuffer
		wg  sync.WaitGroup
	)

	l := Make(&buf, WithFormat(FormatText))

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 50 {
				l.With(slog.Int("worker", i)).Info("m")
			}
		}()
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 400 {
		t.Errorf("wrote %d records, want 400", n)
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func TestPrettyAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(true), WithTimeLayout("none"))
	logger = logger.With(slog.String("registry", "global"))

	logger.Info("flag set failed",
		slog.Group("error", slog.String("flag", "port"), slog.Int("code", 2)),
	)

	output := buf.String()
	for _, want := range []string{"registry=global", "error.flag=port", "error.code=2"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}

	if strings.Contains(output, "time=") {
		t.Errorf("expected no timestamp, got: %s", output)
	}
}

func BenchmarkInfo(b *testing.B) {
	l := plain(&bytes.Buffer{})

	for b.Loop() {
		l.Info("flag set", slog.String("flag", "port"))
	}
}
