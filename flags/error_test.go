package flags

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestErrorMatching(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   error
		not  error
		text string
	}{
		{
			name: "sentinel",
			err:  ErrUnknownFlag,
			is:   ErrUnknownFlag,
			not:  ErrParseFailed,
			text: "unknown command line flag",
		},
		{
			name: "with attrs",
			err:  ErrKindMismatch.With(slog.String("type", "*int")),
			is:   ErrKindMismatch,
			not:  ErrParseFailed,
			text: "value kind mismatch",
		},
		{
			name: "wrapped cause",
			err:  ErrReadFlagfile.Wrap(io.ErrUnexpectedEOF),
			is:   io.ErrUnexpectedEOF,
			not:  ErrParse,
			text: "failed to read flagfile: unexpected EOF",
		},
		{
			name: "report keeps text verbatim",
			err:  report(ErrEnvNotFound, "FLAGS_x not found in environment"),
			is:   ErrEnvNotFound,
			not:  ErrRecursion,
			text: "FLAGS_x not found in environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.is) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.is)
			}

			if errors.Is(tt.err, tt.not) {
				t.Errorf("errors.Is(%v, %v) = true", tt.err, tt.not)
			}

			if tt.err.Error() != tt.text {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.text)
			}
		})
	}
}

func TestErrorLogValue(t *testing.T) {
	err := report(ErrParseFailed, "illegal value",
		slog.String("flag", "count"))

	var sb strings.Builder

	logger := slog.New(slog.NewTextHandler(&sb, nil))
	logger.Info("set", slog.Any("error", err))

	for _, want := range []string{"error.cause=", "error.flag=count"} {
		if !strings.Contains(sb.String(), want) {
			t.Errorf("log output %q missing %q", sb.String(), want)
		}
	}
}
