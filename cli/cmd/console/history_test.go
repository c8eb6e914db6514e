package console

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHistoryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFile)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load of a missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{"--port=1", modeFlag},
		{"list", modeCtrl},
		{"--port=1", modeFlag}, // moves to the end
		{"--port=1", modeFlag}, // repeated last entry is dropped
		{"  ", modeFlag},       // blank lines are ignored
	} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	want := []HistoryEntry{
		{"list", modeCtrl},
		{"--port=1", modeFlag},
	}

	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(data); got != "C:list\nF:--port=1\n" {
		t.Errorf("history file = %q", got)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, reloaded.Entries()); diff != "" {
		t.Errorf("reloaded entries mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryUnprefixedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFile)

	if err := os.WriteFile(path, []byte("--debug\nC:dump\n\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{{"--debug", modeFlag}, {"dump", modeCtrl}}
	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	if _, err := h.Entry(5); err != ErrOutOfBounds {
		t.Errorf("Entry(5) error = %v", err)
	}
}
