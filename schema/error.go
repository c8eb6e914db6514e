package schema

import "github.com/ardnew/gflag/flags"

// Predefined errors (sentinel values).
var (
	ErrFormat      = flags.NewError("unsupported schema format")
	ErrRead        = flags.NewError("failed to read schema")
	ErrDecode      = flags.NewError("failed to decode schema")
	ErrUnknownType = flags.NewError("unknown flag type")
	ErrDefault     = flags.NewError("default is not a scalar")
	ErrDeclare     = flags.NewError("failed to declare flag")
	ErrCompile     = flags.NewError("failed to compile validator")
)
