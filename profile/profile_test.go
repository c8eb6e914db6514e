package profile

import "testing"

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), WithDir("/tmp/out"), WithQuiet(true))

	if p != (Profiler{Mode: "cpu", Dir: "/tmp/out", Quiet: true}) {
		t.Errorf("New() = %+v", p)
	}
}

func TestStartWithoutMode(t *testing.T) {
	stop := New(WithDir(t.TempDir())).Start()

	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op", stop)
	}

	stop.Stop()
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !Enabled {
		if len(modes) != 0 {
			t.Errorf("Modes() = %v without the %s tag", modes, Tag)
		}

		return
	}

	for _, m := range modes {
		if m == "quiet" {
			t.Error("Modes() lists quiet")
		}
	}
}
