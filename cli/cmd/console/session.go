package console

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/gflag/flags"
	"github.com/ardnew/gflag/log"
)

// Session applies console input to a flag registry.
//
// Input lines are command line fragments such as "--port=80 --nodebug" and
// are parsed exactly as the registry parses a command line. Commands such as
// "save" and "list" are run with [Session.Execute].
type Session struct {
	reg     *flags.Registry
	program string
	logger  log.Logger
	initial *flags.Saver
	saved   []*flags.Saver
}

// NewSession returns a session over reg. Flag files written by the session
// are scoped to program when it is non-empty.
func NewSession(reg *flags.Registry, program string) (*Session, error) {
	if reg == nil {
		return nil, ErrNoRegistry
	}

	return &Session{
		reg:     reg,
		program: program,
		logger:  reg.Logger(),
		initial: reg.Save(),
	}, nil
}

// Names returns the names of every flag in the registry.
func (s *Session) Names() []string { return s.reg.Names() }

// IsBool reports whether name is a bool flag.
func (s *Session) IsBool(name string) bool {
	info, ok := s.reg.Info(name)

	return ok && info.Type == flags.KindBool.String()
}

// Apply parses line as command line flags. It returns one line for each flag
// whose value changed and one for each positional argument that was ignored.
// The error joins every problem the parser reported.
func (s *Session) Apply(line string) ([]string, error) {
	before := make(map[string]string)
	for _, info := range s.reg.All() {
		before[info.Name] = info.CurrentValue
	}

	p := flags.NewParser(s.reg)
	rest := p.ParseArgs(strings.Fields(line))

	var out []string

	for _, info := range s.reg.All() {
		if prev, ok := before[info.Name]; !ok || prev != info.CurrentValue {
			out = append(out, fmt.Sprintf("%s = %s", info.Name, info.CurrentValue))
		}
	}

	for _, arg := range rest {
		out = append(out, fmt.Sprintf("ignored argument %q", arg))
	}

	err := p.Err()

	s.logger.Debug("console apply",
		slog.String("line", line),
		slog.Int("changed", len(out)-len(rest)),
		slog.Bool("failed", err != nil),
	)

	return out, err
}

// commands are the names accepted by [Session.Execute], in help order.
var commands = []string{
	"help", "list", "save", "restore", "reset", "dump", "write", "load",
	"clear", "quit",
}

const commandHelp = `
: Commands (press Esc to toggle mode):

  help          Print this text
  list [NAME]   List flags, fuzzy-matching NAME if given
  save          Push a snapshot of every flag
  restore       Pop the last snapshot and restore it
  reset         Restore every flag to its state when the console started
  dump          Print the flags as a flag file
  write FILE    Append the flags to FILE as a flag file
  load FILE     Apply the flag file FILE
  clear         Clear screen
  quit          Exit the console

Usage:
  Type flags as on a command line, e.g. --port=8080 --nodebug
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between flag and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`

// Execute runs the console command name with args and returns its output.
// The clear and quit commands are handled by the terminal front end.
func (s *Session) Execute(name string, args ...string) (string, error) {
	s.logger.Trace("console command",
		slog.String("command", name),
		slog.Any("args", args),
	)

	switch name {
	case "h", "help":
		return commandHelp, nil

	case "l", "list":
		return s.list(args), nil

	case "save":
		s.saved = append(s.saved, s.reg.Save())

		return fmt.Sprintf("saved snapshot %d", len(s.saved)), nil

	case "restore":
		if len(s.saved) == 0 {
			return "", ErrNoSnapshot
		}

		n := len(s.saved)
		s.saved[n-1].Restore()
		s.saved = s.saved[:n-1]

		return fmt.Sprintf("restored snapshot %d", n), nil

	case "reset":
		s.initial.Restore()
		s.saved = nil

		return "restored initial flags", nil

	case "dump":
		return strings.TrimSuffix(s.reg.WriteFlagfile(s.program), "\n"), nil

	case "write":
		if len(args) == 0 {
			return "", fmt.Errorf("%w: write FILE", ErrMissingOperand)
		}

		if err := s.reg.AppendFlagsIntoFile(args[0], s.program); err != nil {
			return "", err
		}

		return "wrote " + args[0], nil

	case "load":
		if len(args) == 0 {
			return "", fmt.Errorf("%w: load FILE", ErrMissingOperand)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}

		if err := s.reg.LoadFlags(string(data) + "\n"); err != nil {
			return "", err
		}

		return "loaded " + args[0], nil
	}

	return "", fmt.Errorf("%w: %s (try 'help')", ErrUnknownCommand, name)
}

// list renders the flags matching pattern, or every flag if there is none.
// Modified flags are marked with an asterisk.
func (s *Session) list(args []string) string {
	infos := s.reg.All()

	if len(args) > 0 {
		names := make([]string, len(infos))
		for i, info := range infos {
			names[i] = info.Name
		}

		matches := fuzzy.Find(args[0], names)

		keep := make([]flags.FlagInfo, 0, len(matches))
		for _, m := range matches {
			keep = append(keep, infos[m.Index])
		}

		infos = keep
	}

	if len(infos) == 0 {
		return "no flags matched"
	}

	width := 0
	for _, info := range infos {
		width = max(width, len(info.Name)+len(info.CurrentValue))
	}

	var b strings.Builder

	for _, info := range infos {
		mark := " "
		if !info.IsDefault {
			mark = "*"
		}

		entry := "--" + info.Name + "=" + info.CurrentValue
		fmt.Fprintf(&b, "%s %-*s  %s\n", mark, width+3, entry,
			hintStyle.Render("("+info.Type+") "+info.Description))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
