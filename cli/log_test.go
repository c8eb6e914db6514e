package cli

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/gflag/log"
)

func TestLogScan(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "none",
			args: []string{"parse", "--schema", "s.yaml"},
			want: logConfig{Pretty: true},
		},
		{
			name: "separate values",
			args: []string{"--log-level", "debug", "dump", "--log-format", "text"},
			want: logConfig{Level: "debug", Format: "text", Pretty: true},
		},
		{
			name: "inline values after command",
			args: []string{"check", "--log-level=warn", "a.flags", "--log-caller"},
			want: logConfig{Level: "warn", Caller: true, Pretty: true},
		},
		{
			name: "negated",
			args: []string{"--no-log-pretty", "--log-caller=false"},
			want: logConfig{},
		},
		{
			name: "missing value",
			args: []string{"--log-level", "--log-caller"},
			want: logConfig{Caller: true, Pretty: true},
		},
		{
			name: "unknown logger flag",
			args: []string{"--log-colour=red", "--log-format=text"},
			want: logConfig{Format: "text", Pretty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logConfig{Pretty: true}
			got.scan(tt.args)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("scanned config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogScanConfiguresLogger(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	var f logConfig
	f.scan([]string{"--log-level=error"})

	if got := log.Default().Level(); got != log.LevelError {
		t.Errorf("level = %v, want %v", got, log.LevelError)
	}
}
