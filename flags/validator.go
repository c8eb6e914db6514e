package flags

import (
	"log/slog"
	"unsafe"
)

// ValidatorFunc reports whether value is acceptable for the flag named name.
type ValidatorFunc[T Scalar] func(name string, value T) bool

// ValueValidator checks values of a kind that is only known at run time.
// Implementations are compared with == to detect re-registration, so they
// should be pointers.
type ValueValidator interface {
	Validate(name string, v *Value) bool
}

// validator is a type-erased [ValidatorFunc] or [ValueValidator] bound to the
// kind it was registered for. id identifies the registered function value so
// that re-registering the same value is recognized.
type validator struct {
	kind Kind
	id   any
	call func(name string, v *Value) bool
}

func newValidator[T Scalar](fn ValidatorFunc[T]) *validator {
	if fn == nil {
		return nil
	}

	return &validator{
		kind: KindOf[T](),
		id:   funcIdentity(fn),
		call: func(name string, v *Value) bool {
			t, ok := v.Interface().(T)

			return ok && fn(name, t)
		},
	}
}

// funcIdentity returns the address of the closure record behind fn. Closures
// that capture different values have different records even when they share
// code; a function without captures has a single static record.
func funcIdentity[T Scalar](fn ValidatorFunc[T]) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&fn))
}

func (v *validator) same(o *validator) bool {
	if v == nil || o == nil {
		return v == o
	}

	return v.id == o.id
}

// RegisterValidator installs fn as the validator of the flag whose current
// value is stored at p.
//
// It succeeds if the flag has no validator or if fn is the function already
// registered, and fails without effect if a different validator is present or
// no flag is stored at p. Passing nil removes any registered validator.
func RegisterValidator[T Scalar](
	reg *Registry,
	p *T,
	fn ValidatorFunc[T],
) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	flag := reg.lookupStorageLocked(p)
	if flag == nil {
		reg.logger.Warn("ignoring validator: no flag found at that address")

		return false
	}

	ok := flag.registerValidator(newValidator(fn))
	if !ok {
		reg.logger.Warn("ignoring validator: validate-fn already registered",
			slog.String("flag", flag.name),
		)
	}

	return ok
}

// RegisterValidatorByName installs fn as the validator of the named flag with
// the same rules as [RegisterValidator]. The flag must hold values of type T.
func RegisterValidatorByName[T Scalar](
	reg *Registry,
	name string,
	fn ValidatorFunc[T],
) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	flag := reg.lookupLocked(name)
	if flag == nil || flag.current.kind != KindOf[T]() {
		return false
	}

	return flag.registerValidator(newValidator(fn))
}

// RegisterValueValidator installs vv as the validator of the named flag,
// which must hold values of kind, with the same rules as [RegisterValidator].
// A nil vv removes any registered validator.
func RegisterValueValidator(
	reg *Registry,
	name string,
	kind Kind,
	vv ValueValidator,
) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	flag := reg.lookupLocked(name)
	if flag == nil || flag.current.kind != kind {
		return false
	}

	var v *validator
	if vv != nil {
		v = &validator{kind: kind, id: vv, call: vv.Validate}
	}

	ok := flag.registerValidator(v)
	if !ok {
		reg.logger.Warn("ignoring validator: validate-fn already registered",
			slog.String("flag", flag.name),
		)
	}

	return ok
}
