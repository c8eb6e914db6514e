package flags

import (
	"github.com/spf13/pflag"
)

// pflagValue exposes a registry flag as a [pflag.Value]. Assignments go
// through the registry so that validators and the recursive flags apply.
type pflagValue struct {
	reg  *Registry
	name string
	kind Kind
}

func (v pflagValue) String() string {
	s, _ := v.reg.Get(v.name)

	return s
}

func (v pflagValue) Set(text string) error {
	_, err := v.reg.SetCommandLineOption(v.name, text)

	return err
}

func (v pflagValue) Type() string { return v.kind.String() }

// PFlagSet returns a [pflag.FlagSet] named name whose flags are backed by the
// flags of r. Boolean flags may be given without a value.
func (r *Registry) PFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	for _, info := range r.All() {
		kind, _ := ParseKind(info.Type)

		fs.Var(pflagValue{reg: r, name: info.Name, kind: kind},
			info.Name, info.Description)

		f := fs.Lookup(info.Name)
		f.DefValue = info.DefaultValue

		if kind == KindBool {
			f.NoOptDefVal = "true"
		}
	}

	return fs
}
