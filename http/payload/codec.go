package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/xy-planning-network/trellis"
)

// Media types the DefaultTable understands.
const (
	MediaJSON        = "application/json"
	MediaJSONPatch   = "application/json-patch+json"
	MediaJSONAPI     = "application/vnd.api+json"
	MediaCSPReport   = "application/csp-report"
	MediaText        = "text/plain"
	MediaTextXML     = "text/xml"
	MediaXML         = "application/xml"
	MediaForm        = "application/x-www-form-urlencoded"
	MediaOctetStream = "application/octet-stream"
)

// A Codec converts between the bytes on the wire and a Body for one family of media types.
type Codec struct {
	Decode func(data []byte) (Body, error)
	Encode func(b Body) ([]byte, error)
}

var (
	// JSONCodec parses UTF-8 JSON into a structured Body
	// and serializes any Body as JSON.
	JSONCodec = Codec{Decode: decodeJSON, Encode: encodeJSON}

	// TextCodec passes UTF-8 text through.
	TextCodec = Codec{Decode: decodeText, Encode: encodeText}

	// FormCodec parses and serializes application/x-www-form-urlencoded pairs as url.Values.
	FormCodec = Codec{Decode: decodeForm, Encode: encodeForm}

	// OctetCodec passes bytes through untouched.
	OctetCodec = Codec{Decode: decodeOctet, Encode: encodeOctet}
)

// A Table picks the Codec for a media type.
// Lookups use MediaType.Type only, so parameters such as charset never matter.
type Table map[string]Codec

// DefaultTable constructs the Table of every media type trellis recognizes.
func DefaultTable() Table {
	return Table{
		MediaJSON:        JSONCodec,
		MediaJSONPatch:   JSONCodec,
		MediaJSONAPI:     JSONCodec,
		MediaCSPReport:   JSONCodec,
		MediaText:        TextCodec,
		MediaTextXML:     TextCodec,
		MediaXML:         TextCodec,
		MediaForm:        FormCodec,
		MediaOctetStream: OctetCodec,
	}
}

// With returns a copy of t where mediaType uses c.
func (t Table) With(mediaType string, c Codec) Table {
	cp := make(Table, len(t)+1)
	for k, v := range t {
		cp[k] = v
	}
	cp[strings.ToLower(mediaType)] = c

	return cp
}

// Decode parses data according to mt.
// An unrecognized media type leaves the Body absent and is not an error.
func (t Table) Decode(mt MediaType, data []byte) (Body, error) {
	c, ok := t[mt.Type]
	if !ok || c.Decode == nil {
		return None(), nil
	}

	return c.Decode(data)
}

// Encode serializes b according to mt.
// An unrecognized media type serializes to a zero-length payload and is not an error.
func (t Table) Encode(mt MediaType, b Body) ([]byte, error) {
	c, ok := t[mt.Type]
	if !ok || c.Encode == nil {
		return []byte{}, nil
	}

	return c.Encode(b)
}

func decodeJSON(data []byte) (Body, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return None(), fmt.Errorf("%w: %s", trellis.ErrMalformedBody, err)
	}

	return Value(v), nil
}

func encodeJSON(b Body) ([]byte, error) {
	var v any
	switch b.kind {
	case KindNone:
		return []byte{}, nil
	case KindBinary:
		v = b.raw
	case KindText:
		v = b.text
	case KindValue:
		v = b.value
	}

	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %s", trellis.ErrUnserializable, err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func decodeText(data []byte) (Body, error) {
	return Text(strings.ToValidUTF8(string(data), "\uFFFD")), nil
}

func encodeText(b Body) ([]byte, error) {
	switch b.kind {
	case KindNone:
		return []byte{}, nil
	case KindBinary:
		return b.raw, nil
	case KindText:
		return []byte(b.text), nil
	}

	if s, ok := b.value.(string); ok {
		return []byte(s), nil
	}

	return nil, fmt.Errorf("%w: %T is not text", trellis.ErrUnserializable, b.value)
}

// decodeForm keeps whatever pairs did parse when the input holds a malformed escape.
func decodeForm(data []byte) (Body, error) {
	vals, _ := url.ParseQuery(strings.ToValidUTF8(string(data), "\uFFFD"))
	return Value(vals), nil
}

func encodeForm(b Body) ([]byte, error) {
	switch b.kind {
	case KindNone:
		return []byte{}, nil
	case KindText:
		return []byte(b.text), nil
	case KindBinary:
		return b.raw, nil
	}

	switch v := b.value.(type) {
	case url.Values:
		return []byte(v.Encode()), nil
	case map[string][]string:
		return []byte(url.Values(v).Encode()), nil
	case map[string]string:
		vals := make(url.Values, len(v))
		for k, s := range v {
			vals.Set(k, s)
		}
		return []byte(vals.Encode()), nil
	case map[string]any:
		vals := make(url.Values, len(v))
		for k, a := range v {
			vals.Set(k, fmt.Sprint(a))
		}
		return []byte(vals.Encode()), nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%w: %T is not form data", trellis.ErrUnserializable, b.value)
	}
}

func decodeOctet(data []byte) (Body, error) {
	return Binary(data), nil
}

func encodeOctet(b Body) ([]byte, error) {
	switch b.kind {
	case KindNone:
		return []byte{}, nil
	case KindBinary:
		return b.raw, nil
	case KindText:
		return []byte(b.text), nil
	default:
		return nil, fmt.Errorf("%w: %T is not binary", trellis.ErrUnserializable, b.value)
	}
}
