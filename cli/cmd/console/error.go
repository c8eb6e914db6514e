package console

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds    = errors.New("index out of range")
	ErrNoRegistry     = errors.New("no flag registry")
	ErrNoSnapshot     = errors.New("no saved snapshot")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingOperand = errors.New("missing operand")
)
