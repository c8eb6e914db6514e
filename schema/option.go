package schema

import (
	"os"

	"github.com/ardnew/gflag/log"
)

type config struct {
	logger log.Logger
	getenv func(key string) (string, bool)
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
		logger: log.Default(),
		getenv: os.LookupEnv,
	}
}

// WithLogger sets the logger used for declaration and validation
// diagnostics.
func WithLogger(l log.Logger) Option {
	return func(c config) config {
		c.logger = l

		return c
	}
}

// WithEnv sets the lookup used for environment defaults.
func WithEnv(lookup func(key string) (string, bool)) Option {
	return func(c config) config {
		c.getenv = lookup

		return c
	}
}
