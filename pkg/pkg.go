//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the gflag module embedded at build time.
// It is printed by the --version flag of every program built on the module.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier. It names the
	// configuration file, the cache directory, and the flag file program
	// pattern used when loading configuration.
	Name = "gflag"
	// Description is a short summary used in help output.
	Description = "Command line flag engine and flag file toolkit"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
