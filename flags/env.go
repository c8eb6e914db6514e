package flags

import (
	"fmt"
	"log/slog"
)

// FromEnv returns the value of the environment variable varname parsed as T,
// or def if it is not set. An unparsable value is fatal.
func FromEnv[T Scalar](r *Registry, varname string, def T) T {
	text, ok := r.getenv(varname)
	if !ok {
		return def
	}

	v := NewValue(KindOf[T]())
	if err := v.Parse(text); err != nil {
		fmt.Fprintf(r.stderr,
			"ERROR: error parsing env variable '%s' with value '%s'\n",
			varname, text)
		r.logger.Error("bad environment value",
			slog.String("env", varname),
			slog.String("value", text),
		)
		r.exit(1)

		return def
	}

	t, _ := v.Interface().(T)

	return t
}

// BoolFromEnv returns the environment variable varname as a bool, or def.
func BoolFromEnv(varname string, def bool) bool {
	return FromEnv(Global(), varname, def)
}

// Int32FromEnv returns the environment variable varname as an int32, or def.
func Int32FromEnv(varname string, def int32) int32 {
	return FromEnv(Global(), varname, def)
}

// Int64FromEnv returns the environment variable varname as an int64, or def.
func Int64FromEnv(varname string, def int64) int64 {
	return FromEnv(Global(), varname, def)
}

// Uint64FromEnv returns the environment variable varname as a uint64, or def.
func Uint64FromEnv(varname string, def uint64) uint64 {
	return FromEnv(Global(), varname, def)
}

// DoubleFromEnv returns the environment variable varname as a float64, or def.
func DoubleFromEnv(varname string, def float64) float64 {
	return FromEnv(Global(), varname, def)
}

// StringFromEnv returns the environment variable varname, or def.
func StringFromEnv(varname string, def string) string {
	return FromEnv(Global(), varname, def)
}
