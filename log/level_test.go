package log

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{" Debug ", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"warn+2", LevelWarn + 2},
		{"verbose", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelNames(t *testing.T) {
	want := []string{"trace", "debug", "info", "warn", "error"}
	if diff := cmp.Diff(want, Levels()); diff != "" {
		t.Errorf("Levels() mismatch (-want +got):\n%s", diff)
	}

	if got := (LevelWarn + 2).label(); got != "WARN+2" {
		t.Errorf("label = %q", got)
	}

	var l Level
	if err := l.UnmarshalText([]byte("loud")); err == nil {
		t.Error("UnmarshalText accepted an unknown level")
	}

	text, _ := LevelTrace.MarshalText()
	if string(text) != "trace" {
		t.Errorf("MarshalText = %q", text)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"json":   FormatJSON,
		" TEXT ": FormatText,
		"yaml":   DefaultFormat,
	} {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", in, got, want)
		}
	}

	if diff := cmp.Diff([]string{"json", "text"}, Formats()); diff != "" {
		t.Errorf("Formats() mismatch (-want +got):\n%s", diff)
	}
}

func TestTimeFormatter(t *testing.T) {
	at := time.Date(2024, time.March, 5, 14, 7, 9, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-05T14:07:09Z"},
		{"rfc-3339-nano", "2024-03-05T14:07:09.123456789Z"},
		{"Kitchen", "2:07PM"},
		{"ms", "Mar  5 14:07:09.123"},
		{"2006/01/02", "2024/03/05"},
		{"none", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := timeFormatter(tt.layout)(at); got != tt.want {
				t.Errorf("format = %q, want %q", got, tt.want)
			}
		})
	}
}
