package flags

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Result is the outcome of [Registry.Parse].
type Result struct {
	// Args holds the positional arguments: everything after a "--"
	// terminator followed by the non-flag tokens in their original order.
	Args []string `json:"args" yaml:"args"`
	// FirstNonOpt is the number of leading tokens of the permuted argument
	// list that were consumed as flags or flag values.
	FirstNonOpt int `json:"first_non_opt" yaml:"first_non_opt"`
	// Errors maps flag names to their outstanding errors.
	Errors map[string]error `json:"-" yaml:"-"`
}

// Parse applies args (without the program name) to r without exiting or
// printing. The values of flagfile, fromenv, and tryfromenv that are already
// set are expanded first, and every flag is validated last.
//
// The returned error, if any, is an [ErrParse] wrapping each outstanding
// error; the same errors are in Result.Errors.
func (r *Registry) Parse(args []string, opts ...Option) (*Result, error) {
	p := NewParser(r, opts...)
	p.ProcessPreset()

	rest := p.ParseArgs(args)

	p.ValidateAll()

	res := &Result{
		Args:        rest,
		FirstNonOpt: len(args) - len(rest),
		Errors:      p.Errors(),
	}

	return res, p.Err()
}

// ParseCommandLine parses argv, whose first element is the program name, and
// returns the positional arguments.
//
// Reporting flags such as --help are handled by the registry's
// [HelpHandler], which may exit. Any parse error is printed to the error
// stream and the exit function is called with status 1; if that returns, the
// error is returned as well.
func (r *Registry) ParseCommandLine(argv []string) ([]string, error) {
	return r.parseCommandLine(argv, true)
}

// ParseCommandLineNonHelp is [Registry.ParseCommandLine] without the
// handling of reporting flags.
func (r *Registry) ParseCommandLineNonHelp(argv []string) ([]string, error) {
	return r.parseCommandLine(argv, false)
}

func (r *Registry) parseCommandLine(argv []string, help bool) ([]string, error) {
	r.SetArgv(argv)

	p := NewParser(r)
	p.ProcessPreset()

	var rest []string
	if len(argv) > 1 {
		rest = p.ParseArgs(argv[1:])
	}

	if help {
		r.HandleHelp()
	}

	p.ValidateAll()

	if p.ReportErrors(nil) {
		err := p.Err()

		r.logger.Error("command line parse failed", slog.Any("error", err))
		r.exit(1)

		return rest, err
	}

	return rest, nil
}

// HandleHelp runs the registry's [HelpHandler], exiting with its status if it
// produced a report.
func (r *Registry) HandleHelp() {
	r.mu.Lock()
	h := r.help
	r.mu.Unlock()

	if h == nil {
		return
	}

	if code, handled := h(r); handled {
		r.exit(code)
	}
}

// ReparseNonHelp parses the command line recorded by [Registry.SetArgv] again,
// picking up flags registered since the last parse.
func (r *Registry) ReparseNonHelp() ([]string, error) {
	return r.ParseCommandLineNonHelp(r.Argv())
}

// SetCommandLineOption sets the named flag as if it appeared on the command
// line, expanding --flagfile and --fromenv. It returns a message for every
// flag that was set, one per line.
func (r *Registry) SetCommandLineOption(name, value string) (string, error) {
	return r.SetCommandLineOptionWithMode(name, value, AssignAlways)
}

// SetCommandLineOptionWithMode is [Registry.SetCommandLineOption] using mode.
//
// If the named flag itself cannot be set, the message is empty. Errors from
// expanding a flag file or the environment are returned with the message.
func (r *Registry) SetCommandLineOptionWithMode(
	name, value string,
	mode SetMode,
) (string, error) {
	p := NewParser(r)

	r.mu.Lock()

	flag := r.lookupLocked(name)
	if flag == nil {
		r.mu.Unlock()

		return "", report(ErrUnknownFlag,
			fmt.Sprintf("unknown command line flag '%s'", name),
			slog.String("flag", name),
		)
	}

	msg := p.applyLocked(flag, value, mode)

	r.mu.Unlock()

	if msg == "" {
		return "", p.errs[name]
	}

	return msg, p.Err()
}

// GetCommandLineOption returns the current value of the named flag as text.
func (r *Registry) GetCommandLineOption(name string) (string, bool) {
	return r.Get(name)
}

// GetCommandLineFlagInfo describes the named flag.
func (r *Registry) GetCommandLineFlagInfo(name string) (FlagInfo, bool) {
	return r.Info(name)
}

// LoadFlags applies a flag-file document and reports the outstanding
// errors. On error every flag is restored to its state before the call.
func (r *Registry) LoadFlags(doc string) error {
	s := r.Save()

	p := NewParser(r)
	p.ProcessString(doc, AssignAlways)

	if err := p.Err(); err != nil {
		s.Restore()

		return err
	}

	return nil
}

// ReadFlagsFromString applies a flag-file document, handling reporting flags
// afterwards. Errors are printed to the error stream; if fatal is set the
// exit function is called with status 1. On error every flag is restored to
// its state before the call and false is returned.
func (r *Registry) ReadFlagsFromString(doc string, fatal bool) bool {
	s := r.Save()

	p := NewParser(r)
	p.ProcessString(doc, AssignAlways)

	r.HandleHelp()

	if p.ReportErrors(nil) {
		if fatal {
			r.exit(1)
		}

		s.Restore()

		return false
	}

	return true
}

// ReadFromFlagsFile reads the named file and applies it with
// [Registry.ReadFlagsFromString].
func (r *Registry) ReadFromFlagsFile(name string, fatal bool) bool {
	data, err := r.readFile(name)
	if err != nil {
		fmt.Fprintf(r.stderr, "ERROR: %s: %v\n", name, err)

		if fatal {
			r.exit(1)
		}

		return false
	}

	return r.ReadFlagsFromString(string(data)+"\n", fatal)
}

// FlagsIntoString renders every flag as a "--name=value" line, sorted by
// declaring file and then by name.
func (r *Registry) FlagsIntoString() string {
	return flagsIntoString(r.All())
}

func flagsIntoString(infos []FlagInfo) string {
	var sb strings.Builder

	for _, info := range infos {
		sb.WriteString("--")
		sb.WriteString(info.Name)
		sb.WriteString("=")
		sb.WriteString(info.CurrentValue)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteFlagfile renders the current flags as a flag file. A non-empty prog
// is written first as a pattern line. The flagfile flag itself is omitted.
func (r *Registry) WriteFlagfile(prog string) string {
	infos := r.All()

	kept := infos[:0]
	for _, info := range infos {
		if info.Name != FlagfileName {
			kept = append(kept, info)
		}
	}

	if prog == "" {
		return flagsIntoString(kept)
	}

	return prog + "\n" + flagsIntoString(kept)
}

// AppendFlagsIntoFile appends [Registry.WriteFlagfile] output to the named
// file, creating it if needed.
func (r *Registry) AppendFlagsIntoFile(name, prog string) error {
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.WriteString(r.WriteFlagfile(prog)); err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}

// ParseCommandLine parses os.Args-style argv with the global registry.
func ParseCommandLine(argv []string) ([]string, error) {
	return Global().ParseCommandLine(argv)
}

// ParseCommandLineNonHelp parses argv with the global registry, ignoring
// reporting flags.
func ParseCommandLineNonHelp(argv []string) ([]string, error) {
	return Global().ParseCommandLineNonHelp(argv)
}

// AllowReparsing makes unknown flags in the global registry non-fatal.
func AllowReparsing() { Global().AllowReparsing() }

// ReparseNonHelp parses the saved command line with the global registry again.
func ReparseNonHelp() ([]string, error) { return Global().ReparseNonHelp() }

// SetCommandLineOption sets a flag of the global registry.
func SetCommandLineOption(name, value string) (string, error) {
	return Global().SetCommandLineOption(name, value)
}

// SetCommandLineOptionWithMode sets a flag of the global registry using mode.
func SetCommandLineOptionWithMode(
	name, value string,
	mode SetMode,
) (string, error) {
	return Global().SetCommandLineOptionWithMode(name, value, mode)
}

// GetCommandLineOption returns the value of a flag of the global registry.
func GetCommandLineOption(name string) (string, bool) {
	return Global().GetCommandLineOption(name)
}

// GetCommandLineFlagInfo describes a flag of the global registry.
func GetCommandLineFlagInfo(name string) (FlagInfo, bool) {
	return Global().GetCommandLineFlagInfo(name)
}

// ReadFlagsFromString applies a flag-file document to the global registry.
func ReadFlagsFromString(doc string, fatal bool) bool {
	return Global().ReadFlagsFromString(doc, fatal)
}

// ReadFromFlagsFile applies a flag file to the global registry.
func ReadFromFlagsFile(name string, fatal bool) bool {
	return Global().ReadFromFlagsFile(name, fatal)
}

// FlagsIntoString renders the flags of the global registry.
func FlagsIntoString() string { return Global().FlagsIntoString() }

// AppendFlagsIntoFile appends the flags of the global registry to a file.
func AppendFlagsIntoFile(name, prog string) error {
	return Global().AppendFlagsIntoFile(name, prog)
}
