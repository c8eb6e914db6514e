package flags

import (
	"fmt"
	"log/slog"
)

// SetMode selects how a new value is assigned to a flag.
type SetMode int

const (
	// AssignAlways sets the current value and marks the flag modified.
	AssignAlways SetMode = iota
	// AssignIfUnmodified sets the current value only if no one has set it
	// yet. A flag that was already modified keeps its value and the
	// assignment still succeeds.
	AssignIfUnmodified
	// AssignDefault replaces the default value, and the current value too
	// when the flag has not been modified.
	AssignDefault
)

// Flag is a named, typed setting with a default and a current value.
//
// All mutable state of a Flag is owned by the [Registry] it belongs to and
// must only be accessed with the registry lock held. Name, help, and file
// never change after construction.
type Flag struct {
	name      string
	help      string
	file      string
	def       *Value
	current   *Value
	validator *validator
	modified  bool
}

func newFlag(name, help, file string, current, def *Value) *Flag {
	return &Flag{
		name:    name,
		help:    help,
		file:    file,
		def:     def,
		current: current,
	}
}

// Name returns the flag name.
func (f *Flag) Name() string { return f.name }

// Help returns the flag description.
func (f *Flag) Help() string { return f.help }

// Filename returns the source file that declared the flag.
func (f *Flag) Filename() string { return f.file }

// Kind returns the kind of the flag's values.
func (f *Flag) Kind() Kind { return f.def.kind }

func (f *Flag) isBool() bool { return f.def.kind == KindBool }

func (f *Flag) validate(v *Value) bool {
	if f.validator == nil {
		return true
	}

	return f.validator.call(f.name, v)
}

func (f *Flag) validateCurrent() bool { return f.validate(f.current) }

// updateModified marks f modified when its current value was changed without
// going through the registry, such as a direct write to the bound variable.
func (f *Flag) updateModified() {
	if !f.modified && !f.current.Equal(f.def) {
		f.modified = true
	}
}

// tryParse parses text into a scratch value, validates it, and only then
// copies it into dst.
func (f *Flag) tryParse(dst *Value, text string) error {
	scratch := NewValue(dst.kind)

	if err := scratch.Parse(text); err != nil {
		return report(ErrParseFailed,
			fmt.Sprintf("illegal value '%s' specified for %s flag '%s'",
				text, f.def.kind, f.name),
			slog.String("flag", f.name),
			slog.String("type", f.def.kind.String()),
			slog.String("value", text),
		)
	}

	if !f.validate(scratch) {
		return report(ErrValidationFailed,
			fmt.Sprintf("failed validation of new value '%s' for flag '%s'",
				scratch, f.name),
			slog.String("flag", f.name),
			slog.String("value", scratch.String()),
		)
	}

	dst.copyFrom(scratch)

	return nil
}

// set assigns text to f according to mode.
func (f *Flag) set(text string, mode SetMode) error {
	f.updateModified()

	switch mode {
	case AssignAlways:
		if err := f.tryParse(f.current, text); err != nil {
			return err
		}

		f.modified = true

	case AssignIfUnmodified:
		if f.modified {
			return nil
		}

		if err := f.tryParse(f.current, text); err != nil {
			return err
		}

		f.modified = true

	case AssignDefault:
		if err := f.tryParse(f.def, text); err != nil {
			return err
		}

		if !f.modified {
			f.current.copyFrom(f.def)
		}

	default:
		panic(fmt.Sprintf("flags: unknown set mode %d", mode))
	}

	return nil
}

func (f *Flag) registerValidator(v *validator) bool {
	switch {
	case v.same(f.validator):
		return true
	case v != nil && f.validator != nil:
		return false
	case v != nil && v.kind != f.def.kind:
		return false
	}

	f.validator = v

	return true
}

// clone returns a detached copy of f with its own value storage.
func (f *Flag) clone() *Flag {
	c := newFlag(f.name, f.help, f.file, f.current.Clone(), f.def.Clone())
	c.modified = f.modified
	c.validator = f.validator

	return c
}

// copyFrom copies the mutable state of src into f.
func (f *Flag) copyFrom(src *Flag) {
	f.modified = src.modified
	f.current.copyFrom(src.current)
	f.def.copyFrom(src.def)
	f.validator = src.validator
}

func (f *Flag) info() FlagInfo {
	f.updateModified()

	return FlagInfo{
		Name:         f.name,
		Type:         f.def.kind.String(),
		Description:  f.help,
		CurrentValue: f.current.String(),
		DefaultValue: f.def.String(),
		Filename:     f.file,
		IsDefault:    !f.modified,
		HasValidator: f.validator != nil,
	}
}

// FlagInfo is a snapshot of the public state of a flag.
type FlagInfo struct {
	Name         string `json:"name"                yaml:"name"`
	Type         string `json:"type"                yaml:"type"`
	Description  string `json:"description"         yaml:"description"`
	CurrentValue string `json:"current"             yaml:"current"`
	DefaultValue string `json:"default"             yaml:"default"`
	Filename     string `json:"file"                yaml:"file"`
	IsDefault    bool   `json:"is_default"          yaml:"is_default"`
	HasValidator bool   `json:"has_validator"       yaml:"has_validator"`
}
