package flags

import (
	"errors"
	"math"
	"testing"
)

func TestValueParse(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		text string
		want string
		ok   bool
	}{
		{"bool yes", KindBool, "yes", "true", true},
		{"bool mixed case", KindBool, "FaLsE", "false", true},
		{"bool n", KindBool, "n", "false", true},
		{"bool maybe", KindBool, "maybe", "", false},
		{"bool empty", KindBool, "", "", false},
		{"string empty", KindString, "", "", true},
		{"string verbatim", KindString, " a b ", " a b ", true},
		{"int32 decimal", KindInt32, "-42", "-42", true},
		{"int32 hex", KindInt32, "0x1F", "31", true},
		{"int32 upper hex", KindInt32, "0XfF", "255", true},
		{"int32 leading zero is decimal", KindInt32, "010", "10", true},
		{"int32 max", KindInt32, "2147483647", "2147483647", true},
		{"int32 overflow", KindInt32, "2147483648", "", false},
		{"int32 trailing junk", KindInt32, "12abc", "", false},
		{"int32 empty", KindInt32, "", "", false},
		{"int32 bare hex prefix", KindInt32, "0x", "", false},
		{"int32 signed hex", KindInt32, "0x-1", "", false},
		{"int64 min", KindInt64, "-9223372036854775808", "-9223372036854775808", true},
		{"int64 overflow", KindInt64, "9223372036854775808", "", false},
		{"uint64 max", KindUint64, "18446744073709551615", "18446744073709551615", true},
		{"uint64 leading spaces", KindUint64, "  7", "7", true},
		{"uint64 leading spaces hex", KindUint64, "  0x10", "16", true},
		{"uint64 negative", KindUint64, "-1", "", false},
		{"uint64 spaced negative", KindUint64, "  -1", "", false},
		{"uint64 plus", KindUint64, "+5", "5", true},
		{"double", KindDouble, "2.5", "2.5", true},
		{"double exponent", KindDouble, "1e3", "1000", true},
		{"double empty", KindDouble, "", "", false},
		{"double junk", KindDouble, "1.5x", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValue(tt.kind)
			before := v.String()

			err := v.Parse(tt.text)
			if (err == nil) != tt.ok {
				t.Fatalf("Parse(%q) error = %v, want ok=%v", tt.text, err, tt.ok)
			}

			if !tt.ok {
				if !errors.Is(err, ErrParseFailed) {
					t.Errorf("error = %v, want ErrParseFailed", err)
				}

				if v.String() != before {
					t.Errorf("failed parse changed value to %q", v.String())
				}

				return
			}

			if got := v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueRoundTrip(t *testing.T) {
	inputs := map[Kind][]string{
		KindBool:   {"true", "false"},
		KindInt32:  {"0", "-2147483648", "2147483647", "0x7f"},
		KindInt64:  {"-9223372036854775808", "9223372036854775807"},
		KindUint64: {"0", "18446744073709551615"},
		KindDouble: {"0.1", "-3.141592653589793", "1e-300", "123456789.123456789"},
		KindString: {"", "hello world", "--flag=value"},
	}

	for kind, texts := range inputs {
		for _, text := range texts {
			t.Run(kind.String()+"/"+text, func(t *testing.T) {
				v := NewValue(kind)
				if err := v.Parse(text); err != nil {
					t.Fatal(err)
				}

				w := NewValue(kind)
				if err := w.Parse(v.String()); err != nil {
					t.Fatalf("reparse of %q failed: %v", v.String(), err)
				}

				if !v.Equal(w) {
					t.Errorf("round trip changed %v to %v", v.Interface(), w.Interface())
				}
			})
		}
	}
}

func TestValueDoubleRendering(t *testing.T) {
	v := NewValue(KindDouble)
	if err := v.Parse("0.1"); err != nil {
		t.Fatal(err)
	}

	if got := v.String(); got != "0.10000000000000001" {
		t.Errorf("String() = %q, want 17 significant digits", got)
	}
}

func TestValueEqualDoubleBits(t *testing.T) {
	parse := func(text string) *Value {
		v := NewValue(KindDouble)
		if err := v.Parse(text); err != nil {
			t.Fatal(err)
		}

		return v
	}

	if nan := parse("NaN"); !nan.Equal(nan.Clone()) {
		t.Error("NaN not equal to its clone")
	}

	if parse("0").Equal(parse("-0")) {
		t.Error("0 equal to -0")
	}

	h := newHarness(t)
	if _, err := h.reg.DefineFrom(KindDouble, "ratio", "NaN", "", "schema.yaml"); err != nil {
		t.Fatal(err)
	}

	if info, _ := h.reg.Info("ratio"); !info.IsDefault {
		t.Error("NaN default reported as modified")
	}
}

func TestValueBindSharesStorage(t *testing.T) {
	var x float64

	v, err := Bind(&x)
	if err != nil {
		t.Fatal(err)
	}

	if err := v.Parse("1.5"); err != nil {
		t.Fatal(err)
	}

	if x != 1.5 {
		t.Errorf("bound variable = %v, want 1.5", x)
	}

	x = math.Pi
	if v.Interface() != math.Pi {
		t.Errorf("Interface() = %v, want pi", v.Interface())
	}

	if _, err := Bind(new(int)); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Bind(*int) error = %v, want ErrKindMismatch", err)
	}
}

func TestValueCopyFromKindMismatch(t *testing.T) {
	a, b := NewValue(KindInt32), NewValue(KindInt64)

	if err := a.CopyFrom(b); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("CopyFrom error = %v, want ErrKindMismatch", err)
	}

	c := a.Clone()
	if err := c.Parse("9"); err != nil {
		t.Fatal(err)
	}

	if a.Equal(c) {
		t.Error("Clone shares storage with its source")
	}
}

func TestKindNames(t *testing.T) {
	want := []string{"bool", "int32", "int64", "uint64", "double", "string"}

	for i, k := range Kinds() {
		if k.String() != want[i] {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want[i])
		}

		if got, ok := ParseKind(want[i]); !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", want[i], got, ok)
		}
	}

	if _, ok := ParseKind("float"); ok {
		t.Error("ParseKind accepted an unknown type name")
	}
}
