package flags

import (
	"github.com/sahilm/fuzzy"
)

// suggestLocked returns a "did you mean" hint for an unknown flag name, or
// the empty string when no registered name is close enough.
func (r *Registry) suggestLocked(name string) string {
	if name == "" {
		return ""
	}

	matches := fuzzy.Find(name, r.namesLocked())
	if len(matches) == 0 {
		return ""
	}

	return "; did you mean --" + matches[0].Str + "?"
}
