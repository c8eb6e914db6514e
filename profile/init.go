package profile

// Profiler describes a single profiling session.
type Profiler struct {
	Mode  string
	Dir   string
	Quiet bool
}

// Setting modifies a Profiler.
type Setting func(Profiler) Profiler

// New returns a Profiler configured by the given settings.
func New(settings ...Setting) Profiler {
	var p Profiler

	for _, set := range settings {
		p = set(p)
	}

	return p
}

// WithMode sets the profiling mode. See [Modes].
func WithMode(mode string) Setting {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithDir sets the directory that receives profile output.
func WithDir(dir string) Setting {
	return func(p Profiler) Profiler {
		p.Dir = dir

		return p
	}
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) Setting {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Start begins profiling and returns a handle that stops it.
//
// Without the pprof build tag, or with an empty or unknown mode, Start returns
// a no-op handle. Stop is always safe to call.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" || !Enabled {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
