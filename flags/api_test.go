package flags

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCommandLine(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := newHarness(t)
		s := declare(h)

		rest, err := h.reg.ParseCommandLine([]string{"/bin/tool", "in.txt", "--count", "2"})
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff([]string{"in.txt"}, rest); diff != "" {
			t.Errorf("positional mismatch (-want +got):\n%s", diff)
		}

		if *s.count != 2 || len(h.exits) != 0 {
			t.Errorf("count = %d, exits = %v", *s.count, h.exits)
		}

		if got := h.reg.Argv(); got[0] != "/bin/tool" {
			t.Errorf("Argv() = %v", got)
		}
	})

	t.Run("errors exit", func(t *testing.T) {
		h := newHarness(t)
		declare(h)

		_, err := h.reg.ParseCommandLine([]string{"/bin/tool", "--count=x", "--what"})
		if !errors.Is(err, ErrParse) {
			t.Fatalf("error = %v, want ErrParse", err)
		}

		if diff := cmp.Diff([]int{1}, h.exits); diff != "" {
			t.Errorf("exit codes mismatch (-want +got):\n%s", diff)
		}

		out := h.stderr.String()
		for _, want := range []string{
			"ERROR: illegal value 'x' specified for int32 flag 'count'\n",
			"ERROR: unknown command line flag 'what'",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("stderr %q missing %q", out, want)
			}
		}
	})

	t.Run("help handler exits", func(t *testing.T) {
		h := newHarness(t)
		declare(h)

		var seen bool

		h.reg.SetHelpHandler(func(*Registry) (int, bool) {
			seen = true

			return 3, true
		})

		if _, err := h.reg.ParseCommandLine([]string{"/bin/tool"}); err != nil {
			t.Fatal(err)
		}

		if !seen {
			t.Error("help handler not called")
		}

		if diff := cmp.Diff([]int{3}, h.exits); diff != "" {
			t.Errorf("exit codes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("non-help skips handler", func(t *testing.T) {
		h := newHarness(t)
		declare(h)

		h.reg.SetHelpHandler(func(*Registry) (int, bool) {
			t.Error("help handler called")

			return 0, true
		})

		if _, err := h.reg.ParseCommandLineNonHelp([]string{"/bin/tool"}); err != nil {
			t.Fatal(err)
		}
	})
}

func TestReparseNonHelp(t *testing.T) {
	h := newHarness(t)
	s := declare(h)

	h.reg.AllowReparsing()

	if _, err := h.reg.ParseCommandLineNonHelp(
		[]string{"/bin/tool", "--late=4", "--count=1"},
	); err != nil {
		t.Fatalf("unknown flag was fatal: %v", err)
	}

	late := h.reg.Int64("late", 0, "registered after the first parse")

	if _, err := h.reg.ReparseNonHelp(); err != nil {
		t.Fatal(err)
	}

	if *late != 4 || *s.count != 1 {
		t.Errorf("late = %d, count = %d", *late, *s.count)
	}

	if len(h.exits) != 0 {
		t.Errorf("exits = %v", h.exits)
	}
}

func TestSetCommandLineOption(t *testing.T) {
	t.Run("message", func(t *testing.T) {
		h := newHarness(t)
		s := declare(h)

		msg, err := h.reg.SetCommandLineOption("count", "5")
		if err != nil {
			t.Fatal(err)
		}

		if msg != "count set to 5\n" || *s.count != 5 {
			t.Errorf("msg = %q, count = %d", msg, *s.count)
		}

		if got, _ := h.reg.GetCommandLineOption("count"); got != "5" {
			t.Errorf("GetCommandLineOption = %q", got)
		}
	})

	t.Run("expands flag files", func(t *testing.T) {
		h := newHarness(t)
		s := declare(h)

		h.files["extra"] = "--name=zed\n"

		msg, err := h.reg.SetCommandLineOption(FlagfileName, "extra")
		if err != nil {
			t.Fatal(err)
		}

		if msg != "flagfile set to extra\nname set to zed\n" || *s.name != "zed" {
			t.Errorf("msg = %q, name = %q", msg, *s.name)
		}
	})

	t.Run("nested error", func(t *testing.T) {
		h := newHarness(t)
		declare(h)

		h.files["extra"] = "--name=zed\n"

		msg, err := h.reg.SetCommandLineOption(FlagfileName, "extra,missing")
		if !errors.Is(err, ErrReadFlagfile) {
			t.Errorf("error = %v, want ErrReadFlagfile", err)
		}

		if !strings.Contains(msg, "name set to zed") {
			t.Errorf("msg = %q", msg)
		}
	})

	t.Run("bad value", func(t *testing.T) {
		h := newHarness(t)
		declare(h)

		msg, err := h.reg.SetCommandLineOption("count", "many")
		if msg != "" || !errors.Is(err, ErrParseFailed) {
			t.Errorf("msg = %q, error = %v", msg, err)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		h := newHarness(t)

		if _, err := h.reg.SetCommandLineOption("ghost", "1"); !errors.Is(err, ErrUnknownFlag) {
			t.Errorf("error = %v, want ErrUnknownFlag", err)
		}
	})

	t.Run("default mode", func(t *testing.T) {
		h := newHarness(t)
		declare(h)

		if _, err := h.reg.SetCommandLineOptionWithMode("count", "6", AssignDefault); err != nil {
			t.Fatal(err)
		}

		info, _ := h.reg.GetCommandLineFlagInfo("count")
		if info.DefaultValue != "6" || !info.IsDefault {
			t.Errorf("info = %+v", info)
		}
	})
}

func TestReadFlagsFromString(t *testing.T) {
	t.Run("applies", func(t *testing.T) {
		h := newHarness(t)
		s := declare(h)

		if !h.reg.ReadFlagsFromString("--count=3\n--verbose\n", false) {
			t.Fatalf("read failed: %s", h.stderr.String())
		}

		if *s.count != 3 || !*s.verbose {
			t.Errorf("count = %d, verbose = %v", *s.count, *s.verbose)
		}
	})

	t.Run("restores on error", func(t *testing.T) {
		h := newHarness(t)
		s := declare(h)

		if h.reg.ReadFlagsFromString("--count=3\n--verbose=maybe\n", false) {
			t.Fatal("read succeeded")
		}

		if *s.count != 0 {
			t.Errorf("count = %d, want restored 0", *s.count)
		}

		if info, _ := h.reg.Info("count"); !info.IsDefault {
			t.Error("count still marked modified")
		}

		if !strings.Contains(h.stderr.String(), "ERROR: illegal value 'maybe'") {
			t.Errorf("stderr = %q", h.stderr.String())
		}

		if len(h.exits) != 0 {
			t.Errorf("exits = %v", h.exits)
		}
	})

	t.Run("fatal", func(t *testing.T) {
		h := newHarness(t)
		declare(h)

		h.reg.ReadFlagsFromString("--count=x\n", true)

		if diff := cmp.Diff([]int{1}, h.exits); diff != "" {
			t.Errorf("exit codes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("load flags", func(t *testing.T) {
		h := newHarness(t)
		s := declare(h)

		if err := h.reg.LoadFlags("--name=x\n--count=q\n"); !errors.Is(err, ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}

		if *s.name != "anon" {
			t.Errorf("name = %q, want restored", *s.name)
		}

		if h.stderr.Len() != 0 {
			t.Errorf("LoadFlags printed %q", h.stderr.String())
		}
	})
}

func TestFlagsIntoString(t *testing.T) {
	h := newHarness(t)
	declare(h)

	if _, err := h.reg.Set("name", "bob", AssignAlways); err != nil {
		t.Fatal(err)
	}

	out := h.reg.FlagsIntoString()

	for _, want := range []string{"--count=0\n", "--name=bob\n", "--verbose=false\n", "--flagfile=\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	file := h.reg.WriteFlagfile("myprog_test")

	if !strings.HasPrefix(file, "myprog_test\n") {
		t.Errorf("flag file does not start with the program line: %q", file)
	}

	if strings.Contains(file, "--flagfile=") {
		t.Errorf("flag file includes flagfile: %q", file)
	}
}

func TestAppendAndReadFlagsFile(t *testing.T) {
	h := newHarness(t, WithReadFile(os.ReadFile))
	s := declare(h)

	name := filepath.Join(t.TempDir(), "saved.flags")

	if _, err := h.reg.Set("count", "5", AssignAlways); err != nil {
		t.Fatal(err)
	}

	if _, err := h.reg.Set("name", "bob", AssignAlways); err != nil {
		t.Fatal(err)
	}

	if err := h.reg.AppendFlagsIntoFile(name, "myprog_test"); err != nil {
		t.Fatal(err)
	}

	if err := h.reg.AppendFlagsIntoFile(name, "otherprog"); err != nil {
		t.Fatal(err)
	}

	*s.count, *s.name = 0, "anon"

	if !h.reg.ReadFromFlagsFile(name, false) {
		t.Fatalf("read failed: %s", h.stderr.String())
	}

	if *s.count != 5 || *s.name != "bob" {
		t.Errorf("count = %d, name = %q", *s.count, *s.name)
	}

	if h.reg.ReadFromFlagsFile(filepath.Join(t.TempDir(), "absent"), false) {
		t.Error("read of a missing file succeeded")
	}
}
