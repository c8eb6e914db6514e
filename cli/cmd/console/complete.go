package console

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// isWordBoundary reports whether r separates completion words. The '=' of
// "--name=value" is a boundary so that values complete separately from names.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '=':
		return true
	}

	return false
}

// wordBounds returns the word at cursor and its byte boundaries within input.
// The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// assignedFlag returns the flag name of a "--name=" token whose value starts
// at wordStart, or "" if the word is not a value.
func assignedFlag(input string, wordStart int) string {
	if wordStart == 0 || input[wordStart-1] != '=' {
		return ""
	}

	token := input[:wordStart-1]
	if i := strings.LastIndexAny(token, " \t"); i >= 0 {
		token = token[i+1:]
	}

	if !strings.HasPrefix(token, "-") {
		return ""
	}

	return strings.TrimLeft(token, "-")
}

// flagCandidates returns the "--name" spelling of every flag, and the
// "--noname" spelling of every bool flag.
func flagCandidates(s *Session) []string {
	names := s.Names()

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, "--"+name)

		if s.IsBool(name) {
			out = append(out, "--no"+name)
		}
	}

	return out
}

// candidates returns the completion candidates for the word that starts at
// wordStart in input.
func candidates(s *Session, mode inputMode, input, word string, wordStart int) []string {
	if mode == modeCtrl {
		fields := strings.Fields(input[:wordStart])

		switch {
		case len(fields) == 0:
			return commands
		case fields[0] == "list" || fields[0] == "l":
			return s.Names()
		}

		return nil
	}

	if name := assignedFlag(input, wordStart); name != "" {
		if s.IsBool(name) {
			return []string{"true", "false"}
		}

		return nil
	}

	if !strings.HasPrefix(word, "-") {
		return nil
	}

	return flagCandidates(s)
}

// computeMatches returns the fuzzy matches, best first, for the word at the
// cursor along with the candidate list and the word boundaries.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	cands []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	cands = candidates(m.session, m.mode, input, word, wordStart)
	if len(cands) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, cands), cands, wordStart, wordEnd
}

// renderCandidateBar renders the completion bar on one line, ellipsized to
// width. The selected candidate is highlighted while tab-cycling.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters in bold.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, suggestionStyle.Bold(true)
	if selected {
		base, highlight = selectedStyle, selectedStyle.Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
