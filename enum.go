package trellis

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Request fields of such a type can be checked with the "enum" validation rule.
type Enumerable interface {
	String() string
	Valid() error
}

var _ Enumerable = Environment("")
