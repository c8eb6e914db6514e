package flags

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

func TestSaverRestore(t *testing.T) {
	h := newHarness(t)
	s := declare(h)

	RegisterValidator(h.reg, s.count, positive)

	before := h.reg.All()
	saved := h.reg.Save()

	if _, err := h.reg.Set("count", "7", AssignAlways); err != nil {
		t.Fatal(err)
	}

	if _, err := h.reg.Set("name", "def", AssignDefault); err != nil {
		t.Fatal(err)
	}

	*s.verbose = true

	RegisterValidator[int32](h.reg, s.count, nil)

	late := h.reg.Int32("late", 1, "")
	*late = 2

	saved.Restore()

	var after []FlagInfo

	for _, info := range h.reg.All() {
		if info.Name != "late" {
			after = append(after, info)
		}
	}

	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("restored state mismatch (-want +got):\n%s", diff)
	}

	if *late != 2 {
		t.Errorf("flag added after the snapshot was restored: late = %d", *late)
	}

	if *s.count != 0 || *s.name != "anon" || *s.verbose {
		t.Errorf("bound variables not restored: %d %q %v", *s.count, *s.name, *s.verbose)
	}
}

func TestWithSaved(t *testing.T) {
	h := newHarness(t)
	s := declare(h)

	WithSaved(h.reg, func() {
		if _, err := h.reg.Set("name", "temporary", AssignAlways); err != nil {
			t.Fatal(err)
		}

		if *s.name != "temporary" {
			t.Errorf("name = %q inside WithSaved", *s.name)
		}
	})

	if *s.name != "anon" {
		t.Errorf("name = %q after WithSaved", *s.name)
	}
}

func TestSaverEncoding(t *testing.T) {
	h := newHarness(t)
	declare(h)

	saved := h.reg.Save()

	data, err := json.Marshal(saved)
	if err != nil {
		t.Fatal(err)
	}

	var infos []FlagInfo
	if err := json.Unmarshal(data, &infos); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(saved.Flags(), infos); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}

	out, err := yaml.Marshal(saved)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"name: count", "current: anon", "type: bool"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
}
