package flags

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Value is a typed flag value.
//
// A Value pairs an immutable [Kind] with a pointer to storage of the matching
// Go type. Storage is either allocated by [NewValue] or bound to an existing
// variable by [Bind]; in the latter case writes through the variable are
// visible to the Value and vice versa.
type Value struct {
	kind  Kind
	store any // *bool | *int32 | *int64 | *uint64 | *float64 | *string
}

// Scalar is the set of Go types a [Value] can hold.
type Scalar interface {
	bool | int32 | int64 | uint64 | float64 | string
}

// NewValue returns a zero Value of the given kind with its own storage.
func NewValue(kind Kind) *Value {
	switch kind {
	case KindBool:
		return &Value{kind: kind, store: new(bool)}
	case KindInt32:
		return &Value{kind: kind, store: new(int32)}
	case KindInt64:
		return &Value{kind: kind, store: new(int64)}
	case KindUint64:
		return &Value{kind: kind, store: new(uint64)}
	case KindDouble:
		return &Value{kind: kind, store: new(float64)}
	case KindString:
		return &Value{kind: kind, store: new(string)}
	}

	panic(fmt.Sprintf("flags: unknown kind %d", kind))
}

// Bind returns a Value backed by the variable p points to.
// It returns [ErrKindMismatch] if p is not a pointer to a supported type.
func Bind(p any) (*Value, error) {
	switch p.(type) {
	case *bool:
		return &Value{kind: KindBool, store: p}, nil
	case *int32:
		return &Value{kind: KindInt32, store: p}, nil
	case *int64:
		return &Value{kind: KindInt64, store: p}, nil
	case *uint64:
		return &Value{kind: KindUint64, store: p}, nil
	case *float64:
		return &Value{kind: KindDouble, store: p}, nil
	case *string:
		return &Value{kind: KindString, store: p}, nil
	}

	return nil, ErrKindMismatch.With(slog.String("type", fmt.Sprintf("%T", p)))
}

// KindOf returns the kind a Go value of type T is stored as.
func KindOf[T Scalar]() Kind {
	var zero T

	switch any(zero).(type) {
	case bool:
		return KindBool
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case uint64:
		return KindUint64
	case float64:
		return KindDouble
	default:
		return KindString
	}
}

// Kind returns the kind of v.
func (v *Value) Kind() Kind { return v.kind }

// TypeName returns the type name of v as shown in help and error messages.
func (v *Value) TypeName() string { return v.kind.String() }

// Parse interprets text according to the kind of v and stores the result.
// On failure v is left unchanged and [ErrParseFailed] is returned.
func (v *Value) Parse(text string) error {
	fail := func() error {
		return ErrParseFailed.With(
			slog.String("type", v.kind.String()),
			slog.String("value", text),
		)
	}

	switch p := v.store.(type) {
	case *bool:
		b, ok := parseBool(text)
		if !ok {
			return fail()
		}

		*p = b

	case *string:
		*p = text

	case *int32:
		n, ok := parseInt(text)
		if !ok || int64(int32(n)) != n {
			return fail()
		}

		*p = int32(n)

	case *int64:
		n, ok := parseInt(text)
		if !ok {
			return fail()
		}

		*p = n

	case *uint64:
		n, ok := parseUint(text)
		if !ok {
			return fail()
		}

		*p = n

	case *float64:
		if text == "" {
			return fail()
		}

		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fail()
		}

		*p = f
	}

	return nil
}

// String renders v so that parsing the result reproduces v.
func (v *Value) String() string {
	switch p := v.store.(type) {
	case *bool:
		return strconv.FormatBool(*p)
	case *int32:
		return strconv.FormatInt(int64(*p), 10)
	case *int64:
		return strconv.FormatInt(*p, 10)
	case *uint64:
		return strconv.FormatUint(*p, 10)
	case *float64:
		return strconv.FormatFloat(*p, 'g', 17, 64)
	case *string:
		return *p
	}

	return ""
}

// Interface returns the stored value as a Go value of the kind's type.
func (v *Value) Interface() any {
	switch p := v.store.(type) {
	case *bool:
		return *p
	case *int32:
		return *p
	case *int64:
		return *p
	case *uint64:
		return *p
	case *float64:
		return *p
	case *string:
		return *p
	}

	return nil
}

// Equal reports whether v and o have the same kind and value. Doubles are
// compared by bit pattern, so NaN equals itself and 0 differs from -0.
func (v *Value) Equal(o *Value) bool {
	if o == nil || v.kind != o.kind {
		return false
	}

	if v.kind == KindDouble {
		return math.Float64bits(*v.store.(*float64)) ==
			math.Float64bits(*o.store.(*float64))
	}

	return v.Interface() == o.Interface()
}

// Clone returns a Value of the same kind with its own copy of the storage.
func (v *Value) Clone() *Value {
	c := NewValue(v.kind)
	c.copyFrom(v)

	return c
}

// CopyFrom overwrites the value of v with the value of o.
// It returns [ErrKindMismatch] if the kinds differ.
func (v *Value) CopyFrom(o *Value) error {
	if v.kind != o.kind {
		return ErrKindMismatch.With(
			slog.String("want", v.kind.String()),
			slog.String("got", o.kind.String()),
		)
	}

	v.copyFrom(o)

	return nil
}

func (v *Value) copyFrom(o *Value) {
	switch p := v.store.(type) {
	case *bool:
		*p = *o.store.(*bool)
	case *int32:
		*p = *o.store.(*int32)
	case *int64:
		*p = *o.store.(*int64)
	case *uint64:
		*p = *o.store.(*uint64)
	case *float64:
		*p = *o.store.(*float64)
	case *string:
		*p = *o.store.(*string)
	}
}

// storage returns the pointer backing v; it identifies the flag that owns v.
func (v *Value) storage() any { return v.store }

func parseBool(text string) (value, ok bool) {
	for _, s := range []string{"1", "t", "true", "y", "yes"} {
		if strings.EqualFold(text, s) {
			return true, true
		}
	}

	for _, s := range []string{"0", "f", "false", "n", "no"} {
		if strings.EqualFold(text, s) {
			return false, true
		}
	}

	return false, false
}

// numberBase splits a "0x" or "0X" prefix from text.
// A leading zero alone never selects base 8.
func numberBase(text string) (digits string, base int) {
	if len(text) >= 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		return text[2:], 16
	}

	return text, 10
}

func parseInt(text string) (int64, bool) {
	if text == "" {
		return 0, false
	}

	digits, base := numberBase(text)
	if base == 16 && (digits == "" || digits[0] == '+' || digits[0] == '-') {
		return 0, false
	}

	n, err := strconv.ParseInt(digits, base, 64)

	return n, err == nil
}

func parseUint(text string) (uint64, bool) {
	text = strings.TrimLeft(text, " ")
	if text == "" || text[0] == '-' {
		return 0, false
	}

	text = strings.TrimPrefix(text, "+")

	digits, base := numberBase(text)
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, false
	}

	n, err := strconv.ParseUint(digits, base, 64)

	return n, err == nil
}
