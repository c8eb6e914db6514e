package cli

import (
	"io"

	"github.com/alecthomas/kong"

	"github.com/ardnew/gflag/flags"
	"github.com/ardnew/gflag/log"
	"github.com/ardnew/gflag/pkg"
)

// resolve returns a [kong.ConfigurationLoader] for configuration files
// written in flag-file syntax:
//
//	# applies to every program
//	--log-level=debug
//	gflag
//	--nolog-pretty
//
// Lines are matched against the kong flag names. Filename pattern lines
// restrict the flag lines that follow them to invocations named program, as
// they do in any flag file. Command-line flags override configured values.
func resolve(program string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, pkg.ErrReadInput.Wrap(err)
		}

		return config{doc: string(data), program: program}, nil
	}
}

// config implements [kong.Resolver] over a flag-file document.
type config struct {
	doc     string
	program string
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
//
// Each flag is looked up by declaring it alone in a private registry and
// applying the whole document; lines naming other flags are ignored.
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	reg := flags.NewRegistry(
		flags.WithLogger(log.Make(io.Discard)),
		flags.WithStderr(io.Discard),
		flags.WithExit(func(int) {}),
		flags.WithProgramName(c.program),
		flags.WithAllowReparse(true),
	)

	kind, def := flags.KindString, ""
	if flag.IsBool() {
		kind, def = flags.KindBool, "false"
	}

	if _, err := reg.DefineFrom(kind, flag.Name, def, flag.Help, baseConfig); err != nil {
		// reserved by the flags engine itself
		return nil, nil //nolint:nilnil
	}

	p := flags.NewParser(reg)
	p.ProcessString(c.doc, flags.AssignAlways)

	if err, ok := p.Errors()[flag.Name]; ok {
		return nil, err
	}

	info, _ := reg.Info(flag.Name)
	if info.IsDefault {
		return nil, nil //nolint:nilnil
	}

	return info.CurrentValue, nil
}
