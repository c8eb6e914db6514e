// Package flags implements a registry of typed command line flags that can be
// declared anywhere in a program and set from the command line, environment
// variables, or flag files.
//
// # Declaring flags
//
// Flags are declared against a [Registry], usually the process-wide one
// returned by [Global]:
//
//	var (
//		port    = flags.Int32("port", 8080, "port to listen on")
//		verbose = flags.Bool("verbose", false, "log more")
//	)
//
// Each flag records the source file that declared it. Declaring two flags
// with the same name is fatal.
//
// Six value types are supported: bool, int32, int64, uint64, double
// (float64), and string. See [Value.Parse] for the accepted text forms.
//
// # Command line syntax
//
//	--name=value, -name=value    set a flag
//	--name value                 set a non-boolean flag
//	--name, --noname             set a boolean flag to true or false
//	--                           end of flags
//
// Every registry also defines:
//
//	--flagfile=f1,f2     read flags from files
//	--fromenv=a,b        read FLAGS_a and FLAGS_b from the environment
//	--tryfromenv=a,b     as --fromenv, ignoring missing variables
//	--undefok=a,b        do not fail on unknown flags a and b
//
// # Flag files
//
// A flag file holds one "--name=value" per line. Lines starting with '#' are
// comments. Any other line lists glob patterns; the flag lines after it apply
// only when the program's invocation name matches one of them:
//
//	# shared settings
//	--verbose
//	server server_test
//	--port=9000
//
// # Help and version flags
//
// The reporting flags (--help, --helpfull, --helpshort, --helpon,
// --helpmatch, --helppackage, --helpxml, --version) live in package report,
// which imports this one. A registry knows them only after report.Install
// has run on it, or report.Global for the [Global] registry; until then they
// are unknown flags like any other:
//
//	reg := flags.NewRegistry()
//	report.Install(reg)
//	rest, _ := reg.ParseCommandLine(os.Args)
//
// # Errors
//
// Parsing never stops at the first bad flag. A [Parser] collects one error
// per flag name and reports them together; [Registry.ParseCommandLine] then
// exits with status 1, while [Registry.Parse] returns them.
package flags
