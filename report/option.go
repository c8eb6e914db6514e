package report

import (
	"io"
	"os"

	"github.com/ardnew/gflag/pkg"
)

type config struct {
	stdout  io.Writer
	stderr  io.Writer
	version string
	usage   string
}

// Option applies a configuration option to config.
type Option func(config) config

func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

func defaultConfig() config {
	return config{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		version: pkg.Version,
	}
}

// WithStdout sets the writer that receives reports.
func WithStdout(w io.Writer) Option {
	return func(c config) config {
		c.stdout = w

		return c
	}
}

// WithStderr sets the writer that receives warnings.
func WithStderr(w io.Writer) Option {
	return func(c config) config {
		c.stderr = w

		return c
	}
}

// WithVersion sets the version string printed by --version.
func WithVersion(version string) Option {
	return func(c config) config {
		c.version = version

		return c
	}
}

// WithUsage sets the usage message. It counts as a call to
// [Reporter.SetUsageMessage].
func WithUsage(usage string) Option {
	return func(c config) config {
		c.usage = usage

		return c
	}
}
