package flags

import (
	"runtime"
)

// define registers a flag whose current value is stored at p and whose
// default is def. The declaring file is taken from the caller skip frames
// above define.
func define[T Scalar](r *Registry, p *T, name string, def T, help string, skip int) {
	file := "UNKNOWN"
	if _, f, _, ok := runtime.Caller(skip); ok {
		file = f
	}

	*p = def

	current, err := Bind(p)
	if err != nil {
		panic(err)
	}

	defValue := current.Clone()

	r.mustRegister(newFlag(name, help, file, current, defValue))
}

// Var defines a flag of type T named name with default def, storing its
// current value in the variable p points to.
func Var[T Scalar](r *Registry, p *T, name string, def T, help string) {
	define(r, p, name, def, help, 2)
}

// BoolVar defines a bool flag stored at p.
func (r *Registry) BoolVar(p *bool, name string, def bool, help string) {
	define(r, p, name, def, help, 2)
}

// Bool defines a bool flag and returns the address of its value.
func (r *Registry) Bool(name string, def bool, help string) *bool {
	p := new(bool)
	define(r, p, name, def, help, 2)

	return p
}

// Int32Var defines an int32 flag stored at p.
func (r *Registry) Int32Var(p *int32, name string, def int32, help string) {
	define(r, p, name, def, help, 2)
}

// Int32 defines an int32 flag and returns the address of its value.
func (r *Registry) Int32(name string, def int32, help string) *int32 {
	p := new(int32)
	define(r, p, name, def, help, 2)

	return p
}

// Int64Var defines an int64 flag stored at p.
func (r *Registry) Int64Var(p *int64, name string, def int64, help string) {
	define(r, p, name, def, help, 2)
}

// Int64 defines an int64 flag and returns the address of its value.
func (r *Registry) Int64(name string, def int64, help string) *int64 {
	p := new(int64)
	define(r, p, name, def, help, 2)

	return p
}

// Uint64Var defines a uint64 flag stored at p.
func (r *Registry) Uint64Var(p *uint64, name string, def uint64, help string) {
	define(r, p, name, def, help, 2)
}

// Uint64 defines a uint64 flag and returns the address of its value.
func (r *Registry) Uint64(name string, def uint64, help string) *uint64 {
	p := new(uint64)
	define(r, p, name, def, help, 2)

	return p
}

// DoubleVar defines a double flag stored at p.
func (r *Registry) DoubleVar(p *float64, name string, def float64, help string) {
	define(r, p, name, def, help, 2)
}

// Double defines a double flag and returns the address of its value.
func (r *Registry) Double(name string, def float64, help string) *float64 {
	p := new(float64)
	define(r, p, name, def, help, 2)

	return p
}

// StringVar defines a string flag stored at p.
func (r *Registry) StringVar(p *string, name string, def string, help string) {
	define(r, p, name, def, help, 2)
}

// String defines a string flag and returns the address of its value.
func (r *Registry) String(name string, def string, help string) *string {
	p := new(string)
	define(r, p, name, def, help, 2)

	return p
}

// DefineFrom defines a flag of the given kind in file, parsing its default
// from text. It is used by declarative front ends that do not know the Go type
// of a flag at compile time. The returned value is the flag's live storage.
//
// Unlike the typed helpers, DefineFrom does not exit on a duplicate name: it
// returns [ErrDuplicateFlag] so that the front end can report the document
// that declared it.
func (r *Registry) DefineFrom(
	kind Kind,
	name, def, help, file string,
) (*Value, error) {
	current := NewValue(kind)
	if err := current.Parse(def); err != nil {
		return nil, err
	}

	flag := newFlag(name, help, file, current, current.Clone())

	if err := r.Register(flag); err != nil {
		return nil, err
	}

	return current, nil
}

// Bool defines a bool flag in the global registry.
func Bool(name string, def bool, help string) *bool {
	p := new(bool)
	define(Global(), p, name, def, help, 2)

	return p
}

// Int32 defines an int32 flag in the global registry.
func Int32(name string, def int32, help string) *int32 {
	p := new(int32)
	define(Global(), p, name, def, help, 2)

	return p
}

// Int64 defines an int64 flag in the global registry.
func Int64(name string, def int64, help string) *int64 {
	p := new(int64)
	define(Global(), p, name, def, help, 2)

	return p
}

// Uint64 defines a uint64 flag in the global registry.
func Uint64(name string, def uint64, help string) *uint64 {
	p := new(uint64)
	define(Global(), p, name, def, help, 2)

	return p
}

// Double defines a double flag in the global registry.
func Double(name string, def float64, help string) *float64 {
	p := new(float64)
	define(Global(), p, name, def, help, 2)

	return p
}

// String defines a string flag in the global registry.
func String(name string, def string, help string) *string {
	p := new(string)
	define(Global(), p, name, def, help, 2)

	return p
}
