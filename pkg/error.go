package pkg

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Error is a chain of errors, innermost first. Its message joins the
// messages of the chain with ": ".
//
// The sentinels below are single-element chains. A sentinel extended with
// [Error.Wrap] or [Error.Wrapf] still matches it under [errors.Is].
type Error []error

var (
	// ErrParseFailed reports a command line or flag file that could not be
	// applied to the declared flags.
	ErrParseFailed = MakeErrorf("failed to parse flags")

	// ErrCheckFailed reports flag files that failed validation.
	ErrCheckFailed = MakeErrorf("flag file check failed")

	// ErrReadInput reports a failed read; wrap it with the I/O error.
	ErrReadInput = MakeErrorf("failed to read input")

	// ErrWriteOutput reports a failed write; wrap it with the I/O error.
	ErrWriteOutput = MakeErrorf("failed to write output")

	ErrJSONMarshal = MakeErrorf("JSON marshal error")
	ErrYAMLMarshal = MakeErrorf("YAML marshal error")

	// ErrInvalidFormat reports an unknown output format; wrap it with the
	// format given and the formats supported.
	ErrInvalidFormat = MakeErrorf("invalid format")
)

// MakeError flattens errs into a single chain, skipping nil errors. It
// returns nil if nothing remains.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		e = append(e, UnwrapErrors(err)...)
	}

	return e
}

// MakeErrorf returns a chain holding one formatted error.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

func (e Error) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, ": ")
}

// Wrap returns e extended with errs as outer errors.
func (e Error) Wrap(errs ...error) Error {
	return append(slices.Clip(e), errs...)
}

// Wrapf returns e extended with a formatted outer error.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Unwrap returns the errors of the chain.
func (e Error) Unwrap() []error { return e }

// Is reports whether target is a non-empty Error whose chain begins the
// chain of e.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 || len(t) > len(e) {
		return false
	}

	return slices.EqualFunc(e[:len(t)], t, func(a, b error) bool {
		return errors.Is(a, b)
	})
}

// UnwrapErrors flattens the tree of errors rooted at err, innermost first.
// Each wrapper follows the errors it wraps, except an Error, which is
// replaced by its members.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	var chain Error

	switch w := err.(type) {
	case Error:
		for _, inner := range w {
			chain = append(chain, UnwrapErrors(inner)...)
		}

		return chain

	case interface{ Unwrap() []error }:
		for _, inner := range w.Unwrap() {
			chain = append(chain, UnwrapErrors(inner)...)
		}

	case interface{ Unwrap() error }:
		chain = UnwrapErrors(w.Unwrap())
	}

	return append(chain, err)
}
