package flags

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrParseFailed      = NewError("illegal value")
	ErrValidationFailed = NewError("failed validation")
	ErrUnknownFlag      = NewError("unknown command line flag")
	ErrMissingArgument  = NewError("missing argument")
	ErrEnvNotFound      = NewError("not found in environment")
	ErrRecursion        = NewError("infinite recursion")
	ErrDuplicateFlag    = NewError("duplicate flag definition")
	ErrKindMismatch     = NewError("value kind mismatch")
	ErrBadFlagList      = NewError("invalid flag list")
	ErrReadFlagfile     = NewError("failed to read flagfile")
	ErrParse            = NewError("command line parse failed")
)

// Error is a flag error with optional structured logging attributes.
// It implements both error and slog.LogValuer.
//
// Errors derived from a sentinel with [Error.Wrap] or [Error.With] match that
// sentinel with [errors.Is].
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a sentinel with the same message as e.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t.err != nil {
		return false
	}

	return t.msg == e.msg
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Attrs returns the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr { return e.attrs }

// message is an error whose text is reported to the user verbatim while still
// matching its sentinel with errors.Is.
type message struct {
	text string
	kind *Error
}

func (m message) Error() string { return m.text }

func (m message) Is(target error) bool { return m.kind.Is(target) }

// report builds a user-facing error: its text is exactly text, and it matches
// the sentinel kind.
func report(kind *Error, text string, attrs ...slog.Attr) *Error {
	return &Error{err: message{text: text, kind: kind}, attrs: attrs}
}
