package console

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "--port", 6, "--port", 0, 6},
		{"second token", "--port=80 --de", 14, "--de", 10, 14},
		{"value", "--debug=tr", 10, "tr", 8, 10},
		{"empty after equals", "--debug=", 8, "", 8, 8},
		{"empty after space", "--port=80 ", 10, "", 10, 10},
		{"mid word", "--verbose", 4, "--verbose", 0, 9},
		{"cursor past end", "--x", 10, "--x", 0, 3},
		{"hyphenated", "--log-level", 11, "--log-level", 0, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestAssignedFlag(t *testing.T) {
	tests := []struct {
		input     string
		wordStart int
		want      string
	}{
		{"--debug=", 8, "debug"},
		{"--port=1 -debug=", 16, "debug"},
		{"debug=", 6, ""},
		{"--debug", 2, ""},
		{"", 0, ""},
	}

	for _, tt := range tests {
		if got := assignedFlag(tt.input, tt.wordStart); got != tt.want {
			t.Errorf("assignedFlag(%q, %d) = %q, want %q",
				tt.input, tt.wordStart, got, tt.want)
		}
	}
}

func TestCandidates(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		mode      inputMode
		input     string
		word      string
		wordStart int
		want      []string
	}{
		{
			name: "bool value", mode: modeFlag,
			input: "--debug=t", word: "t", wordStart: 8,
			want: []string{"true", "false"},
		},
		{
			name: "non-bool value", mode: modeFlag,
			input: "--port=8", word: "8", wordStart: 7,
		},
		{
			name: "positional", mode: modeFlag,
			input: "po", word: "po", wordStart: 0,
		},
		{
			name: "command", mode: modeCtrl,
			input: "sa", word: "sa", wordStart: 0,
			want: commands,
		},
		{
			name: "list operand", mode: modeCtrl,
			input: "list po", word: "po", wordStart: 5,
			want: f.session.Names(),
		},
		{
			name: "other operand", mode: modeCtrl,
			input: "write fi", word: "fi", wordStart: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := candidates(f.session, tt.mode, tt.input, tt.word, tt.wordStart)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlagCandidates(t *testing.T) {
	f := newFixture(t)

	got := flagCandidates(f.session)

	for _, want := range []string{"--port", "--debug", "--nodebug", "--host", "--flagfile"} {
		found := false

		for _, c := range got {
			found = found || c == want
		}

		if !found {
			t.Errorf("flagCandidates() = %v, missing %q", got, want)
		}
	}

	for _, c := range got {
		if c == "--noport" {
			t.Error("negated spelling offered for a non-bool flag")
		}
	}
}
