package transform

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind is the active variant of a Value.
type Kind int

const (
	_ Kind = iota // zero value is not a valid variant

	KindString
	KindInt
	KindFloat
	KindBool
)
