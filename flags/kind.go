package flags

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

// Kind identifies the primitive type stored by a [Value].
type Kind uint8

const (
	KindBool   Kind = iota // bool
	KindInt32              // int32
	KindInt64              // int64
	KindUint64             // uint64
	KindDouble             // double
	KindString             // string
)

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindBool,
		KindInt32,
		KindInt64,
		KindUint64,
		KindDouble,
		KindString,
	}
}

// ParseKind returns the kind whose type name is s.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, true
		}
	}

	return 0, false
}
