package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/gflag/flags"
	"github.com/ardnew/gflag/log"
	"github.com/ardnew/gflag/pkg"
)

// Parse parses a command line against the flags declared by a schema.
type Parse struct {
	Declaration `embed:""`

	Format string   `default:"flagfile" enum:"flagfile,yaml,json" help:"Output format (${enum})."                                                     short:"f"`
	Args   []string `arg:""             help:"Command line to parse. Separate it from gflag's own flags with '--'." optional:"" passthrough:""`
}

// parseResult is the structured output of [Parse].
type parseResult struct {
	Program string           `json:"program" yaml:"program"`
	Flags   []flags.FlagInfo `json:"flags"   yaml:"flags"`
	Args    []string         `json:"args"    yaml:"args"`
}

// Run executes the parse command.
//
// Reporting flags such as --help print their report and exit. Otherwise the
// declared flags are printed in the chosen format, followed by the positional
// arguments. Parse errors are printed one per line and fail the command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := p.open(ctx)
	if err != nil {
		return err
	}

	stdout, stderr, exit := streams(ctx)

	s.reg.SetArgv(append([]string{s.program}, p.Args...))

	res, perr := s.reg.Parse(p.Args)

	if code, ok := s.reporter.Handle(s.reg); ok {
		exit(code)

		return nil
	}

	if perr != nil {
		for _, name := range slices.Sorted(maps.Keys(res.Errors)) {
			fmt.Fprintf(stderr, "ERROR: %s\n", res.Errors[name])
		}

		log.DebugContext(ctx, "parse failed",
			slog.Int("errors", len(res.Errors)),
		)

		return pkg.ErrParseFailed.Wrap(perr)
	}

	return writeParse(stdout, p.Format, parseResult{
		Program: s.program,
		Flags:   s.declared(),
		Args:    res.Args,
	})
}

func writeParse(w io.Writer, format string, res parseResult) error {
	var (
		out []byte
		err error
	)

	switch format {
	case "flagfile":
		var b strings.Builder

		for _, info := range res.Flags {
			fmt.Fprintf(&b, "--%s=%s\n", info.Name, info.CurrentValue)
		}

		if len(res.Args) > 0 {
			fmt.Fprintf(&b, "# args: %s\n", strings.Join(res.Args, " "))
		}

		out = []byte(b.String())

	case "yaml":
		out, err = yaml.Marshal(res)
		if err != nil {
			return pkg.ErrYAMLMarshal.Wrap(err)
		}

	case "json":
		out, err = json.MarshalIndent(res, "", "  ")
		if err != nil {
			return pkg.ErrJSONMarshal.Wrap(err)
		}

		out = append(out, '\n')

	default:
		return pkg.ErrInvalidFormat.Wrapf("%q (valid: flagfile, yaml, json)", format)
	}

	if _, err := w.Write(out); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}
