package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/gflag/log"
	"github.com/ardnew/gflag/pkg"
)

// Dump writes the flags declared by a schema, with their default values, as
// a flag file.
type Dump struct {
	Declaration `embed:""`

	Output     string `help:"Append to this file instead of printing."                short:"o" type:"path"`
	Scoped     bool   `default:"true" help:"Begin the flag file with the program name." negatable:""`
	PflagUsage bool   `help:"Print the pflag usage block instead of a flag file."     name:"pflag-usage"`
}

// Run executes the dump command.
func (d *Dump) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := d.open(ctx)
	if err != nil {
		return err
	}

	stdout, _, _ := streams(ctx)

	if d.PflagUsage {
		_, err := fmt.Fprint(stdout, s.reg.PFlagSet(s.program).FlagUsages())
		if err != nil {
			return pkg.ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	var prog string
	if d.Scoped {
		prog = s.program
	}

	if d.Output == "" {
		if _, err := fmt.Fprint(stdout, s.reg.WriteFlagfile(prog)); err != nil {
			return pkg.ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	if err := s.reg.AppendFlagsIntoFile(d.Output, prog); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	log.DebugContext(ctx, "flag file written",
		slog.String("path", d.Output),
		slog.String("program", prog),
	)

	return nil
}
