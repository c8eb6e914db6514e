package schema

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/gflag/flags"
	"github.com/ardnew/gflag/log"
)

// validator runs a compiled expression with the flag name bound to name and
// the candidate value bound to value.
type validator struct {
	source  string
	program *vm.Program
	logger  log.Logger
}

// exemplar returns a value of the type expressions see for kind.
func exemplar(kind flags.Kind) any {
	switch kind {
	case flags.KindBool:
		return false
	case flags.KindInt32, flags.KindInt64:
		return 0
	case flags.KindUint64:
		return uint64(0)
	case flags.KindDouble:
		return 0.0
	default:
		return ""
	}
}

// native converts v to the type given by exemplar.
func native(v *flags.Value) any {
	switch t := v.Interface().(type) {
	case int32:
		return int(t)
	case int64:
		return int(t)
	default:
		return t
	}
}

func compile(source string, kind flags.Kind, logger log.Logger) (*validator, *flags.Error) {
	program, err := expr.Compile(source,
		expr.Env(map[string]any{"name": "", "value": exemplar(kind)}),
		expr.AsBool(),
	)
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", source))
	}

	return &validator{source: source, program: program, logger: logger}, nil
}

// Validate implements [flags.ValueValidator].
func (v *validator) Validate(name string, value *flags.Value) bool {
	out, err := vm.Run(v.program, map[string]any{
		"name":  name,
		"value": native(value),
	})
	if err != nil {
		v.logger.Debug("validator failed",
			slog.String("flag", name),
			slog.String("source", v.source),
			slog.Any("error", err),
		)

		return false
	}

	ok, _ := out.(bool)

	return ok
}
