// Package cmd implements the subcommands of the gflag command.
//
// Every subcommand declares the flags of a schema file in a fresh registry
// (see [Declaration]) and then:
//
//   - parse: parses a command line and prints the resulting flag values
//   - dump: writes the declared flags as a flag file
//   - check: applies flag files and reports the ones with errors
//   - console: edits the flags interactively
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// HistoryIdentifier is the kong variable identifier containing the base
	// name of the console history file.
	HistoryIdentifier = "historyFile"
)
