// Package cli contains the command line interface for gflag.
//
// # Commands
//
// Every command reads a flag schema (see package schema) naming the flags of
// some program, and declares them in a fresh flag registry:
//
//   - parse: parse a command line and print the resulting flag values
//   - dump: write the declared flags as a flag file or pflag usage text
//   - check: validate flag files against the declared flags
//   - console: edit the declared flags interactively
//
// # Configuration
//
// Default flag values are read from ~/.config/gflag/config.json (kong JSON
// format) and from ~/.config/gflag/config, a flag file:
//
//	--log-level=debug
//	gflag
//	--nolog-pretty
//
// Command-line flags override configured values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// Logger flags are applied before the rest of the command line is parsed,
// wherever they appear.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag
// (go build -tags pprof). It adds these flags:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/gflag/pprof)
//
// # Examples
//
//	# Parse a command line with debug logging
//	gflag --log-level=debug parse -s server.yaml -- --port=8080 in.txt
//
//	# Write the declared flags with their defaults
//	gflag dump -s server.yaml -o server.flags
//
//	# Check flag files
//	gflag check -s server.yaml server.flags other.flags
package cli
