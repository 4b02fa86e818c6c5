package payload

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/xy-planning-network/trellis"
)

// Kind enumerates the shapes a Body can take.
type Kind int

const (
	// KindNone is an absent body: nothing was sent, or nothing will be.
	KindNone Kind = iota

	// KindBinary is an opaque run of bytes.
	KindBinary

	// KindText is decoded UTF-8 text.
	KindText

	// KindValue is a structured value: anything representable in JSON, including nil.
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBinary:
		return "binary"
	case KindText:
		return "text"
	case KindValue:
		return "value"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// A Body is an inbound or outbound message body.
// The zero value is an absent body.
type Body struct {
	kind  Kind
	raw   []byte
	text  string
	value any
}

// None constructs an absent Body.
func None() Body { return Body{} }

// Binary constructs a Body of raw bytes.
// A nil slice is still a binary Body, only an empty one.
func Binary(b []byte) Body { return Body{kind: KindBinary, raw: b} }

// Text constructs a Body of text.
func Text(s string) Body { return Body{kind: KindText, text: s} }

// Value constructs a structured Body.
// Value(nil) is a JSON null and is not the same as None.
func Value(v any) Body { return Body{kind: KindValue, value: v} }

// Kind reports which shape b holds.
func (b Body) Kind() Kind { return b.kind }

// IsNone reports whether b is absent.
func (b Body) IsNone() bool { return b.kind == KindNone }

// Bytes returns the bytes of a binary Body.
func (b Body) Bytes() ([]byte, bool) { return b.raw, b.kind == KindBinary }

// Str returns the text of a text Body.
func (b Body) Str() (string, bool) { return b.text, b.kind == KindText }

// Any returns the value of a structured Body.
func (b Body) Any() (any, bool) { return b.value, b.kind == KindValue }

// Decode copies b into dst.
//
// A structured Body is decoded with mapstructure, matching fields by their json tags,
// so a parsed JSON object can fill a struct.
// A text Body fills a *string and a binary Body fills a *[]byte.
// An absent Body returns ErrNotExist.
func (b Body) Decode(dst any) error {
	switch b.kind {
	case KindValue:
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:  dst,
			TagName: "json",
		})
		if err != nil {
			return fmt.Errorf("%w: cannot decode into %T: %s", trellis.ErrNotValid, dst, err)
		}

		if err := dec.Decode(b.value); err != nil {
			return fmt.Errorf("%w: %s", trellis.ErrNotValid, err)
		}

		return nil

	case KindText:
		s, ok := dst.(*string)
		if !ok {
			return fmt.Errorf("%w: text body cannot decode into %T", trellis.ErrNotValid, dst)
		}
		*s = b.text
		return nil

	case KindBinary:
		p, ok := dst.(*[]byte)
		if !ok {
			return fmt.Errorf("%w: binary body cannot decode into %T", trellis.ErrNotValid, dst)
		}
		*p = b.raw
		return nil

	default:
		return fmt.Errorf("%w: no body", trellis.ErrNotExist)
	}
}
