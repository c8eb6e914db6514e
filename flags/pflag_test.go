package flags

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPFlagSet(t *testing.T) {
	h := newHarness(t)
	s := declare(h)

	fs := h.reg.PFlagSet("myprog_test")

	if err := fs.Parse([]string{"--count=4", "--verbose", "pos", "--name", "zed"}); err != nil {
		t.Fatal(err)
	}

	if *s.count != 4 || !*s.verbose || *s.name != "zed" {
		t.Errorf("count = %d, verbose = %v, name = %q", *s.count, *s.verbose, *s.name)
	}

	if diff := cmp.Diff([]string{"pos"}, fs.Args()); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}

	f := fs.Lookup("name")
	if f == nil || f.DefValue != "anon" || f.Value.Type() != "string" {
		t.Fatalf("unexpected pflag for name: %+v", f)
	}

	if info, _ := h.reg.Info("count"); info.IsDefault {
		t.Error("count not marked modified through pflag")
	}
}

func TestPFlagSetRejectsBadValue(t *testing.T) {
	h := newHarness(t)
	s := declare(h)

	RegisterValidator(h.reg, s.count, positive)

	fs := h.reg.PFlagSet("myprog_test")
	fs.SetOutput(&h.stderr)

	err := fs.Parse([]string{"--count=-3"})
	if err == nil || !strings.Contains(err.Error(), "failed validation") {
		t.Fatalf("error = %v, want a validation failure", err)
	}

	if *s.count != 0 {
		t.Errorf("count = %d after rejected value", *s.count)
	}
}
