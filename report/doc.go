// Package report implements the reporting flags of a [flags.Registry]:
// --help and its variants, --helpxml, and --version.
//
// [Install] defines the flags and registers a handler that runs after the
// command line is parsed:
//
//	rep := report.Install(flags.Global())
//	_ = rep.SetUsageMessage("server [flags] config")
//	args, _ := flags.ParseCommandLine(os.Args)
//
// Help lists flags grouped by the file that declared them:
//
//	--help, --helpfull   every flag
//	--helpshort          flags declared in the main file of the program
//	--helpon=m           flags declared in files named m.*
//	--helpmatch=s        flags declared in files whose path contains s
//	--helppackage        flags declared in the directory of the main file
//	--helpxml            every flag as an XML document
//	--version            program name and version
//
// Every help report exits with status 1; --version exits with status 0.
package report
