// Package schema declares flags from YAML, TOML, or JSON documents.
//
// A schema names the program, its usage message, and its flags:
//
//	program: server
//	usage: server [flags]
//	flags:
//	  - name: port
//	    type: int32
//	    default: 8080
//	    help: port to listen on
//	    validate: value > 0 && value < 65536
//	    env: SERVER_PORT
//
// Type is one of bool, int32, int64, uint64, double, or string. Validate is
// an expr-lang expression over value and name that must yield a bool; it is
// compiled once and run for every assignment. Env names an environment
// variable that overrides the default when set.
package schema
