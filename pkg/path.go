package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// prefixRules rewrite the executable base name into [Prefix].
//
//nolint:gochecknoglobals
var prefixRules = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`^__debug_bin\d+$`), Name}, // dlv build output
	{regexp.MustCompile(`^\.+`), ""},
}

// Prefix returns the name of the running executable without its extension
// and leading dots. A binary built by the dlv debugger is named [Name].
// Prefix names the configuration and cache directories.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	base := filepath.Base(exe)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	for _, rule := range prefixRules {
		id = rule.pattern.ReplaceAllString(id, rule.replace)
	}

	return id
})

// userDir returns the directory named [Prefix] inside the directory given by
// lookup. If lookup fails, it falls back to home/dotted under the home
// directory, and then to the working directory.
func userDir(lookup func() (string, error), dotted string) string {
	dir, err := lookup()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, dotted)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// ConfigDir returns the directory holding configuration files.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding transient files such as the
// console history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})
