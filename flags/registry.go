package flags

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/gflag/log"
)

// Names of the flags every registry defines.
const (
	FlagfileName   = "flagfile"
	FromenvName    = "fromenv"
	TryfromenvName = "tryfromenv"
	UndefokName    = "undefok"
)

// EnvPrefix prefixes the environment variable consulted for a flag by
// --fromenv and --tryfromenv.
const EnvPrefix = "FLAGS_"

// Registry is a mutex-protected collection of flags indexed by name and by
// the address of each flag's current-value storage.
//
// Methods whose name ends in Locked expect the caller to hold the lock.
type Registry struct {
	settings

	mu        sync.Mutex
	byName    map[string]*Flag
	byStorage map[any]*Flag
	argv      []string
	help      HelpHandler
}

// settings holds the I/O hooks shared by a registry and its parsers.
type settings struct {
	logger   log.Logger
	stderr   io.Writer
	exit     func(code int)
	getenv   func(key string) (string, bool)
	readFile func(name string) ([]byte, error)
	program  string
	reparse  bool
}

// HelpHandler inspects the reporting flags of a registry after parsing.
// It returns handled=true and the exit status if a report was produced.
type HelpHandler func(reg *Registry) (code int, handled bool)

// Option configures a [Registry] or a [Parser].
type Option func(*settings)

// WithLogger sets the logger used for registry and parser diagnostics.
func WithLogger(l log.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithStderr sets the writer that receives parse error reports.
func WithStderr(w io.Writer) Option {
	return func(s *settings) {
		if w == nil {
			w = io.Discard
		}

		s.stderr = w
	}
}

// WithExit sets the function called on fatal errors.
func WithExit(exit func(code int)) Option {
	return func(s *settings) { s.exit = exit }
}

// WithEnv sets the environment lookup used by --fromenv, --tryfromenv,
// and the *FromEnv helpers.
func WithEnv(lookup func(key string) (string, bool)) Option {
	return func(s *settings) { s.getenv = lookup }
}

// WithReadFile sets the function used to read --flagfile documents.
func WithReadFile(fn func(name string) ([]byte, error)) Option {
	return func(s *settings) { s.readFile = fn }
}

// WithProgramName sets the invocation name matched against the filename
// patterns of flag files, in place of argv[0].
func WithProgramName(name string) Option {
	return func(s *settings) { s.program = name }
}

// WithAllowReparse makes unknown flags non-fatal; see
// [Registry.AllowReparsing].
func WithAllowReparse(allow bool) Option {
	return func(s *settings) { s.reparse = allow }
}

// NewRegistry returns an empty registry holding only the recursive and
// parsing flags (flagfile, fromenv, tryfromenv, undefok).
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		settings: settings{
			logger:   log.Default(),
			stderr:   os.Stderr,
			exit:     os.Exit,
			getenv:   os.LookupEnv,
			readFile: os.ReadFile,
		},
		byName:    make(map[string]*Flag),
		byStorage: make(map[any]*Flag),
		argv:      []string{"UNKNOWN"},
	}

	for _, opt := range opts {
		opt(&r.settings)
	}

	r.String(FlagfileName, "", "load flags from file")
	r.String(FromenvName, "",
		"set flags from the environment [use 'export FLAGS_flag1=value']")
	r.String(TryfromenvName, "",
		"set flags from the environment if present")
	r.String(UndefokName, "",
		"comma-separated list of flag names that it is okay to specify on "+
			"the command line even if the program does not define a flag "+
			"with that name.  IMPORTANT: flags in this list that have "+
			"arguments MUST use the flag=value format")

	return r
}

// Global returns the process-wide registry, creating it on first use.
//
//nolint:gochecknoglobals
var Global = sync.OnceValue(func() *Registry { return NewRegistry() })

// Logger returns the logger of r.
func (r *Registry) Logger() log.Logger { return r.logger }

// Exit calls the exit function of r.
func (r *Registry) Exit(code int) { r.exit(code) }

// Register adds flag to r.
//
// It returns [ErrDuplicateFlag] if a flag with the same name exists. The
// typed declaration helpers treat that as fatal.
func (r *Registry) Register(flag *Flag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.registerLocked(flag)
}

func (r *Registry) registerLocked(flag *Flag) error {
	if prev, ok := r.byName[flag.name]; ok {
		if prev.file != flag.file {
			return report(ErrDuplicateFlag,
				fmt.Sprintf("flag '%s' was defined more than once "+
					"(in files '%s' and '%s').",
					flag.name, prev.file, flag.file),
				slog.String("flag", flag.name),
			)
		}

		return report(ErrDuplicateFlag,
			fmt.Sprintf("something wrong with flag '%s' in file '%s'.  "+
				"One possibility: file '%s' is being linked both statically "+
				"and dynamically into this executable.",
				flag.name, flag.file, flag.file),
			slog.String("flag", flag.name),
		)
	}

	r.byName[flag.name] = flag
	r.byStorage[flag.current.storage()] = flag

	r.logger.Trace("flag registered",
		slog.String("flag", flag.name),
		slog.String("type", flag.def.kind.String()),
		slog.String("file", flag.file),
	)

	return nil
}

// mustRegister registers flag and treats a duplicate as a fatal
// configuration error.
func (r *Registry) mustRegister(flag *Flag) {
	err := r.Register(flag)
	if err == nil {
		return
	}

	fmt.Fprintf(r.stderr, "ERROR: %s\n", err)
	r.logger.Error("flag registration failed", slog.Any("error", err))
	r.exit(1)
}

// Lookup returns the flag named name, or nil.
func (r *Registry) Lookup(name string) *Flag {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lookupLocked(name)
}

func (r *Registry) lookupLocked(name string) *Flag {
	return r.byName[name]
}

// LookupStorage returns the flag whose current value is stored at p, or nil.
func (r *Registry) LookupStorage(p any) *Flag {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lookupStorageLocked(p)
}

func (r *Registry) lookupStorageLocked(p any) *Flag {
	return r.byStorage[p]
}

// argument is a command line token resolved against the registry.
type argument struct {
	flag     *Flag
	key      string
	value    string
	hasValue bool
}

// splitArgumentLocked resolves "name" or "name=value" (dashes already
// stripped) to a flag.
//
// "noname" resolves to the boolean flag "name" with the value "0", and a bare
// boolean "name" gets the value "1". A non-nil error always carries the key
// that failed to resolve.
func (r *Registry) splitArgumentLocked(token string) (argument, error) {
	var arg argument

	arg.key, arg.value, arg.hasValue = strings.Cut(token, "=")

	arg.flag = r.lookupLocked(arg.key)
	if arg.flag == nil {
		unknown := func() error {
			return report(ErrUnknownFlag,
				fmt.Sprintf("unknown command line flag '%s'%s",
					arg.key, r.suggestLocked(arg.key)),
				slog.String("flag", arg.key),
			)
		}

		base, ok := strings.CutPrefix(arg.key, "no")
		if !ok {
			return arg, unknown()
		}

		flag := r.lookupLocked(base)
		if flag == nil {
			return arg, unknown()
		}

		if !flag.isBool() {
			return arg, report(ErrUnknownFlag,
				fmt.Sprintf("boolean value (%s) specified for %s "+
					"command line flag", arg.key, flag.def.kind),
				slog.String("flag", arg.key),
			)
		}

		arg.flag = flag
		arg.key = base
		arg.value = "0"
		arg.hasValue = true
	}

	if !arg.hasValue && arg.flag.isBool() {
		arg.value = "1"
		arg.hasValue = true
	}

	return arg, nil
}

// Set assigns text to the named flag using mode. On success it returns a
// message of the form "name set to value".
//
// It does not expand --flagfile or --fromenv; see
// [Registry.SetCommandLineOptionWithMode] for that.
func (r *Registry) Set(name, text string, mode SetMode) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flag := r.lookupLocked(name)
	if flag == nil {
		return "", report(ErrUnknownFlag,
			fmt.Sprintf("unknown command line flag '%s'", name),
			slog.String("flag", name),
		)
	}

	return r.setLocked(flag, text, mode)
}

func (r *Registry) setLocked(
	flag *Flag,
	text string,
	mode SetMode,
) (string, error) {
	if err := flag.set(text, mode); err != nil {
		r.logger.Debug("flag set failed",
			slog.String("flag", flag.name),
			slog.Any("error", err),
		)

		return "", err
	}

	msg := flag.name + " set to " + flag.current.String()

	r.logger.Debug("flag set",
		slog.String("flag", flag.name),
		slog.String("value", flag.current.String()),
		slog.Int("mode", int(mode)),
	)

	return msg, nil
}

// Get returns the current value of the named flag as text.
func (r *Registry) Get(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flag := r.lookupLocked(name)
	if flag == nil {
		return "", false
	}

	return flag.current.String(), true
}

// Info returns a description of the named flag.
func (r *Registry) Info(name string) (FlagInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flag := r.lookupLocked(name)
	if flag == nil {
		return FlagInfo{}, false
	}

	return flag.info(), true
}

// All returns a description of every flag sorted by declaring file, then by
// name.
func (r *Registry) All() []FlagInfo {
	r.mu.Lock()

	all := make([]FlagInfo, 0, len(r.byName))
	for _, flag := range r.byName {
		all = append(all, flag.info())
	}

	r.mu.Unlock()

	slices.SortFunc(all, func(a, b FlagInfo) int {
		return cmp.Or(
			cmp.Compare(a.Filename, b.Filename),
			cmp.Compare(a.Name, b.Name),
		)
	})

	return all
}

// Names returns the names of all flags in lexical order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// VisitAll calls fn for every flag in lexical order of name while holding
// the registry lock. fn must not call methods of r.
func (r *Registry) VisitAll(fn func(FlagInfo)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.namesLocked() {
		fn(r.byName[name].info())
	}
}

// SetHelpHandler installs the handler run by [Registry.ParseCommandLine] to
// process reporting flags such as --help.
func (r *Registry) SetHelpHandler(h HelpHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.help = h
}

// SetArgv records the command line of the running program. Only the first
// call has an effect.
func (r *Registry) SetArgv(argv []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setArgvLocked(argv)
}

func (r *Registry) setArgvLocked(argv []string) {
	if len(r.argv) != 1 || r.argv[0] != "UNKNOWN" || len(argv) == 0 {
		return
	}

	r.argv = slices.Clone(argv)
}

// Argv returns the command line recorded by [Registry.SetArgv].
func (r *Registry) Argv() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.argv)
}

// InvocationName returns argv[0] as recorded by [Registry.SetArgv], or the
// name given with [WithProgramName].
func (r *Registry) InvocationName() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.invocationNameLocked()
}

func (r *Registry) invocationNameLocked() string {
	if r.program != "" {
		return r.program
	}

	return r.argv[0]
}

// InvocationShortName returns the base name of argv[0].
func (r *Registry) InvocationShortName() string {
	return filepath.Base(r.InvocationName())
}

// AllowReparsing makes unknown flags non-fatal so that flags registered
// later, for example by a plugin, can be picked up by
// [Registry.ReparseNonHelp].
func (r *Registry) AllowReparsing() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reparse = true
}
