package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/gflag/log"
	"github.com/ardnew/gflag/pkg"
)

// Check applies flag files to the flags declared by a schema and reports
// every file that does not apply cleanly.
type Check struct {
	Declaration `embed:""`

	Files []string `arg:"" help:"Flag files to check, or '-' for stdin." name:"flagfile"`
}

// Run executes the check command. Each file is checked against the declared
// defaults, independent of the others.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := c.open(ctx)
	if err != nil {
		return err
	}

	srcs, err := readSources(c.Files, os.Stdin)
	if err != nil {
		return err
	}

	stdout, stderr, _ := streams(ctx)
	initial := s.reg.Save()

	var failed int

	for _, src := range srcs {
		err := s.reg.LoadFlags(string(src.data) + "\n")

		initial.Restore()

		if err != nil {
			failed++

			fmt.Fprintf(stderr, "%s: %v\n", src.name, err)
			log.DebugContext(ctx, "flag file rejected",
				slog.String("file", src.name),
				slog.Any("error", err),
			)

			continue
		}

		fmt.Fprintf(stdout, "%s: ok\n", src.name)
	}

	if failed > 0 {
		return pkg.ErrCheckFailed.Wrapf("%d of %d flag files", failed, len(srcs))
	}

	return nil
}
