package report

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ardnew/gflag/flags"
)

// Names of the reporting flags.
const (
	HelpName        = "help"
	HelpfullName    = "helpfull"
	HelpshortName   = "helpshort"
	HelponName      = "helpon"
	HelpmatchName   = "helpmatch"
	HelppackageName = "helppackage"
	HelpxmlName     = "helpxml"
	VersionName     = "version"
)

// DefaultUsage is the usage message reported until one is set.
const DefaultUsage = "Warning: SetUsageMessage() never called"

// ErrUsageSet is returned when the usage message is set more than once.
var ErrUsageSet = flags.NewError("SetUsageMessage() called more than once")

// Reporter owns the reporting flags of a registry and produces the reports
// they request.
type Reporter struct {
	reg *flags.Registry

	mu       sync.Mutex
	cfg      config
	usageSet bool

	help        *bool
	helpfull    *bool
	helpshort   *bool
	helpon      *string
	helpmatch   *string
	helppackage *bool
	helpxml     *bool
	version     *bool
}

// Install defines the reporting flags on reg and makes the returned Reporter
// its help handler.
func Install(reg *flags.Registry, opts ...Option) *Reporter {
	cfg := apply(defaultConfig(), opts...)

	r := &Reporter{
		reg:      reg,
		cfg:      cfg,
		usageSet: cfg.usage != "",

		help: reg.Bool(HelpName, false,
			"show help on all flags [tip: all flags can have two dashes]"),
		helpfull: reg.Bool(HelpfullName, false,
			"show help on all flags -- same as -help"),
		helpshort: reg.Bool(HelpshortName, false,
			"show help on only the main module for this program"),
		helpon: reg.String(HelponName, "",
			"show help on the modules named by this flag value"),
		helpmatch: reg.String(HelpmatchName, "",
			"show help on modules whose name contains the specified substr"),
		helppackage: reg.Bool(HelppackageName, false,
			"show help on all modules in the main package"),
		helpxml: reg.Bool(HelpxmlName, false,
			"produce an xml version of help"),
		version: reg.Bool(VersionName, false,
			"show version and build info and exit"),
	}

	reg.SetHelpHandler(r.Handle)

	return r
}

var global = sync.OnceValue(func() *Reporter { return Install(flags.Global()) })

// Global returns the reporter installed on the global registry, installing it
// on first use.
func Global() *Reporter { return global() }

// SetUsageMessage sets the message printed after the program name by --help.
// It may be called only once.
func (r *Reporter) SetUsageMessage(usage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.usageSet {
		return ErrUsageSet
	}

	r.cfg.usage = usage
	r.usageSet = true

	return nil
}

// UsageMessage returns the message set with [Reporter.SetUsageMessage].
func (r *Reporter) UsageMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.usageSet {
		return DefaultUsage
	}

	return r.cfg.usage
}

// mainFiles returns the substrings identifying the files of the main module
// of prog, such as "/prog." or "/prog_main.".
func mainFiles(prog string) []string {
	return []string{"/" + prog + ".", "/" + prog + "-main.", "/" + prog + "_main."}
}

// Handle produces the report requested by the reporting flags of reg, if
// any, and returns the status the program should exit with. The first set
// flag wins, in the order helpshort, help or helpfull, helpon, helpmatch,
// helppackage, helpxml, version. Help reports exit with status 1 and the
// version report with status 0.
func (r *Reporter) Handle(reg *flags.Registry) (code int, handled bool) {
	prog := reg.InvocationShortName()
	usage := r.UsageMessage()

	r.mu.Lock()
	out, version := r.cfg.stdout, r.cfg.version
	r.mu.Unlock()

	var requested string

	defer func() {
		if handled {
			reg.Logger().Debug("report written",
				slog.String("flag", requested),
				slog.Int("code", code),
			)
		}
	}()

	switch {
	case *r.helpshort:
		requested = HelpshortName
		Usage(out, prog, usage, reg.All(), mainFiles(prog)...)

	case *r.help || *r.helpfull:
		requested = HelpName
		Usage(out, prog, usage, reg.All())

	case *r.helpon != "":
		requested = HelponName
		Usage(out, prog, usage, reg.All(), "/"+*r.helpon+".")

	case *r.helpmatch != "":
		requested = HelpmatchName
		Usage(out, prog, usage, reg.All(), *r.helpmatch)

	case *r.helppackage:
		requested = HelppackageName
		r.helpPackage(reg, prog, usage)

	case *r.helpxml:
		requested = HelpxmlName
		XML(out, prog, usage, reg.All())

	case *r.version:
		requested = VersionName
		Version(out, prog, version)

		return 0, true

	default:
		return 0, false
	}

	return 1, true
}

// helpPackage shows help for every file in the directory of the file that
// declares the main module of prog.
func (r *Reporter) helpPackage(reg *flags.Registry, prog, usage string) {
	r.mu.Lock()
	out, errw := r.cfg.stdout, r.cfg.stderr
	r.mu.Unlock()

	infos := reg.All()
	main := mainFiles(prog)

	var last string

	for _, info := range infos {
		if !matchesAny(info.Filename, main) {
			continue
		}

		pkgdir := dirname(info.Filename) + "/"
		if pkgdir == last {
			continue
		}

		Usage(out, prog, usage, infos, pkgdir)

		if last != "" {
			fmt.Fprintf(errw, "WARNING: Multiple packages contain a file=%s\n", prog)
		}

		last = pkgdir
	}

	if last == "" {
		fmt.Fprintf(errw, "WARNING: Unable to find a package for file=%s\n", prog)
	}
}
