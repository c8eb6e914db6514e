package flags

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Parser applies command line tokens, flag-file documents, and environment
// variables to the flags of a [Registry].
//
// A Parser accumulates errors keyed by flag name instead of stopping at the
// first one, so that a single run reports every problem. A Parser is used for
// a single parse and is not safe for concurrent use.
type Parser struct {
	settings

	reg       *Registry
	errs      map[string]error
	undefined map[string]struct{}
	files     []string // flag files being expanded, innermost last
	envs      []string // flags being expanded from the environment
}

// NewParser returns a parser for reg. Options override the settings of reg
// for this parser only.
func NewParser(reg *Registry, opts ...Option) *Parser {
	reg.mu.Lock()
	s := reg.settings
	reg.mu.Unlock()

	for _, opt := range opts {
		opt(&s)
	}

	return &Parser{
		settings:  s,
		reg:       reg,
		errs:      make(map[string]error),
		undefined: make(map[string]struct{}),
	}
}

// record stores err as the error for key, replacing any earlier error.
func (p *Parser) record(key string, err error) {
	p.errs[key] = err

	p.logger.Debug("flag error recorded",
		slog.String("flag", key),
		slog.Any("error", err),
	)
}

// ProcessPreset expands the values that flagfile, fromenv, and tryfromenv
// already hold, as if they were the first flags on the command line.
func (p *Parser) ProcessPreset() {
	p.reg.mu.Lock()
	defer p.reg.mu.Unlock()

	p.flagfileLocked(p.currentLocked(FlagfileName), AssignAlways)
	p.fromenvLocked(FromenvName, p.currentLocked(FromenvName), AssignAlways, true)
	p.fromenvLocked(TryfromenvName, p.currentLocked(TryfromenvName),
		AssignAlways, false)
}

func (p *Parser) currentLocked(name string) string {
	if flag := p.reg.lookupLocked(name); flag != nil {
		return flag.current.String()
	}

	return ""
}

// ParseArgs scans args (without the program name) and assigns every flag
// found. It returns the positional arguments: non-flag tokens in the order
// they appeared, preceded by everything after a "--" terminator.
//
// A token is a flag if it starts with '-' and is not exactly "-". One or two
// leading dashes are accepted. A non-boolean flag without an inline value
// takes the next token as its value; if there is none, the scan stops.
func (p *Parser) ParseArgs(args []string) []string {
	p.reg.mu.Lock()
	defer p.reg.mu.Unlock()

	var positional []string

	for i := 0; i < len(args); i++ {
		token := args[i]

		if !strings.HasPrefix(token, "-") || token == "-" {
			positional = append(positional, token)

			continue
		}

		name := strings.TrimPrefix(token[1:], "-")
		if name == "" {
			return append(slices.Clone(args[i+1:]), positional...)
		}

		arg, err := p.reg.splitArgumentLocked(name)
		if err != nil {
			p.undefined[arg.key] = struct{}{}
			p.record(arg.key, err)

			continue
		}

		if !arg.hasValue {
			if i+1 >= len(args) {
				msg := fmt.Sprintf("flag '%s' is missing its argument", token)
				if arg.flag.help != "" {
					msg += "; flag description: " + arg.flag.help
				}

				p.record(arg.key, report(ErrMissingArgument, msg,
					slog.String("flag", arg.key)))

				break
			}

			i++
			arg.value = args[i]
		}

		p.applyLocked(arg.flag, arg.value, AssignAlways)
	}

	return positional
}

// ProcessString applies a flag-file document using mode.
//
// Blank lines and lines starting with '#' are ignored. Lines starting with
// '-' are flag assignments; malformed ones are skipped silently. Any other
// line is a space-separated list of glob patterns: the flag lines that follow
// apply only if the invocation name, in full or as a base name, matches one
// of them. Consecutive pattern lines accumulate. Flag lines before the first
// pattern line always apply.
//
// It returns the messages of every successful assignment.
func (p *Parser) ProcessString(doc string, mode SetMode) string {
	p.reg.mu.Lock()
	defer p.reg.mu.Unlock()

	return p.processLocked(doc, mode)
}

func (p *Parser) processLocked(doc string, mode SetMode) string {
	var (
		msg       strings.Builder
		relevant  = true
		inPattern = false
	)

	for line := range strings.Lines(doc) {
		line = strings.TrimLeft(strings.TrimSuffix(line, "\n"), " \t\v\f\r")

		switch {
		case line == "" || line[0] == '#':

		case line[0] == '-':
			inPattern = false

			if !relevant {
				continue
			}

			name := strings.TrimPrefix(line[1:], "-")

			arg, err := p.reg.splitArgumentLocked(name)
			if err != nil || !arg.hasValue {
				p.logger.Trace("flag file line ignored",
					slog.String("line", line),
				)

				continue
			}

			msg.WriteString(p.applyLocked(arg.flag, arg.value, mode))

		default:
			if !inPattern {
				inPattern = true
				relevant = false
			}

			if !relevant {
				relevant = p.matchesLocked(line)
			}
		}
	}

	return msg.String()
}

// matchesLocked reports whether the invocation name matches any of the
// space-separated glob patterns in line. A '*' never matches a '/'.
func (p *Parser) matchesLocked(line string) bool {
	full := p.program
	if full == "" {
		full = p.reg.argv[0]
	}

	short := filepath.Base(full)

	for glob := range strings.SplitSeq(line, " ") {
		if ok, _ := path.Match(glob, full); ok {
			return true
		}

		if ok, _ := path.Match(glob, short); ok {
			return true
		}
	}

	return false
}

// applyLocked assigns value to flag and expands the recursive flags. It
// returns the messages of every successful assignment, one per line.
func (p *Parser) applyLocked(flag *Flag, value string, mode SetMode) string {
	msg, err := p.reg.setLocked(flag, value, mode)
	if err != nil {
		p.record(flag.name, err)

		return ""
	}

	msg += "\n"

	switch flag.name {
	case FlagfileName:
		msg += p.flagfileLocked(flag.current.String(), mode)
	case FromenvName:
		msg += p.fromenvLocked(flag.name, flag.current.String(), mode, true)
	case TryfromenvName:
		msg += p.fromenvLocked(flag.name, flag.current.String(), mode, false)
	}

	return msg
}

// flagfileLocked reads and applies each file in the comma-separated list.
// A file that is already being expanded further up the chain is reported as
// [ErrRecursion] and skipped.
func (p *Parser) flagfileLocked(list string, mode SetMode) string {
	names, err := ParseFlagList(list)
	if err != nil {
		p.record(FlagfileName, err)
	}

	var msg strings.Builder

	for _, name := range names {
		key := name
		if abs, err := filepath.Abs(name); err == nil {
			key = abs
		}

		if slices.Contains(p.files, key) {
			p.record(FlagfileName, report(ErrRecursion,
				fmt.Sprintf("infinite recursion on flagfile '%s'", name),
				slog.String("file", name),
			))

			continue
		}

		data, err := p.readFile(name)
		if err != nil {
			p.record(FlagfileName, report(ErrReadFlagfile,
				fmt.Sprintf("%s: %v", name, err),
				slog.String("file", name),
			))

			continue
		}

		p.logger.Debug("reading flag file", slog.String("file", name))

		p.files = append(p.files, key)
		msg.WriteString(p.processLocked(string(data)+"\n", mode))
		p.files = p.files[:len(p.files)-1]
	}

	return msg.String()
}

// fromenvLocked sets each flag in the comma-separated list from the
// environment variable FLAGS_<name>. A missing variable is an error only if
// required is set.
func (p *Parser) fromenvLocked(
	owner, list string,
	mode SetMode,
	required bool,
) string {
	names, err := ParseFlagList(list)
	if err != nil {
		p.record(owner, err)
	}

	var msg strings.Builder

	for _, name := range names {
		flag := p.reg.lookupLocked(name)
		if flag == nil {
			p.undefined[name] = struct{}{}
			p.record(name, report(ErrUnknownFlag,
				fmt.Sprintf("unknown command line flag '%s' "+
					"(via --fromenv or --tryfromenv)", name),
				slog.String("flag", name),
			))

			continue
		}

		env := EnvPrefix + name

		value, ok := p.getenv(env)
		if !ok {
			if required {
				p.record(name, report(ErrEnvNotFound,
					env+" not found in environment",
					slog.String("flag", name),
					slog.String("env", env),
				))
			}

			continue
		}

		p.logger.Trace("flag from environment",
			slog.String("flag", name),
			slog.String("env", env),
		)

		if value == FromenvName || value == TryfromenvName ||
			slices.Contains(p.envs, name) {
			p.record(name, report(ErrRecursion,
				fmt.Sprintf("infinite recursion on environment flag '%s'", value),
				slog.String("flag", name),
			))

			continue
		}

		p.envs = append(p.envs, name)
		msg.WriteString(p.applyLocked(flag, value, mode))
		p.envs = p.envs[:len(p.envs)-1]
	}

	return msg.String()
}

// ValidateAll checks the current value of every flag against its validator
// and records an error for each failing flag that has none yet.
func (p *Parser) ValidateAll() {
	p.reg.mu.Lock()
	defer p.reg.mu.Unlock()

	for _, name := range p.reg.namesLocked() {
		flag := p.reg.byName[name]
		if flag.validateCurrent() || p.errs[name] != nil {
			continue
		}

		p.record(name, report(ErrValidationFailed,
			fmt.Sprintf("--%s must be set on the commandline "+
				"(default value fails validation)", name),
			slog.String("flag", name),
		))
	}
}

// settle clears the errors of undefined flags named by --undefok, or of all
// undefined flags when reparsing is allowed.
func (p *Parser) settle() {
	p.reg.mu.Lock()
	undefok, _ := ParseFlagList(p.currentLocked(UndefokName))
	reparse := p.reparse || p.reg.reparse
	p.reg.mu.Unlock()

	for _, name := range undefok {
		if _, ok := p.undefined[name]; ok {
			p.errs[name] = nil
		}
	}

	if reparse {
		for name := range p.undefined {
			if p.errs[name] != nil {
				p.logger.Debug("unknown flag deferred to reparse",
					slog.String("flag", name),
				)
			}

			p.errs[name] = nil
		}
	}
}

// Errors returns the outstanding errors keyed by flag name, after applying
// --undefok and reparse clearing.
func (p *Parser) Errors() map[string]error {
	p.settle()

	errs := make(map[string]error, len(p.errs))
	for name, err := range p.errs {
		if err != nil {
			errs[name] = err
		}
	}

	return errs
}

// Err returns an [ErrParse] wrapping every outstanding error in flag name
// order, or nil if there are none.
func (p *Parser) Err() error {
	errs := p.Errors()
	if len(errs) == 0 {
		return nil
	}

	joined := make([]error, 0, len(errs))
	for _, name := range slices.Sorted(maps.Keys(errs)) {
		joined = append(joined, errs[name])
	}

	return ErrParse.Wrap(errors.Join(joined...))
}

// ReportErrors writes one "ERROR: " line per outstanding error to w, in flag
// name order, and reports whether there were any. A nil w writes to the
// registry's error stream.
func (p *Parser) ReportErrors(w io.Writer) bool {
	if w == nil {
		w = p.stderr
	}

	errs := p.Errors()

	for _, name := range slices.Sorted(maps.Keys(errs)) {
		fmt.Fprintf(w, "ERROR: %s\n", errs[name])
	}

	return len(errs) > 0
}

// ParseFlagList splits a comma-separated list of names. A trailing comma is
// allowed. An empty entry or an entry starting with '-' is an
// [ErrBadFlagList] error; the entries before it are still returned.
func ParseFlagList(value string) ([]string, error) {
	var names []string

	for value != "" {
		entry, rest, _ := strings.Cut(value, ",")

		if entry == "" {
			return names, report(ErrBadFlagList, "empty flaglist entry")
		}

		if entry[0] == '-' {
			return names, report(ErrBadFlagList,
				fmt.Sprintf("flag \"%s\" begins with '-'", entry),
				slog.String("entry", entry),
			)
		}

		names = append(names, entry)
		value = rest
	}

	return names, nil
}
