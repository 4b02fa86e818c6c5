package payload

import (
	"mime"
	"strings"
)

// A MediaType is a parsed Content-Type header value.
//
// Type is lower cased and trimmed. Params holds anything after the first ';',
// though no codec in this package consults them: charset is always ignored.
type MediaType struct {
	Type   string
	Params map[string]string
}

// ParseMediaType parses a Content-Type header value.
//
// ParseMediaType never fails: a value mime.ParseMediaType rejects
// is still split on ';' so its type can be looked up.
// An empty string produces the zero MediaType.
func ParseMediaType(s string) MediaType {
	if strings.TrimSpace(s) == "" {
		return MediaType{}
	}

	t, params, err := mime.ParseMediaType(s)
	if err == nil {
		return MediaType{Type: t, Params: params}
	}

	t, rest, _ := strings.Cut(s, ";")
	mt := MediaType{Type: strings.ToLower(strings.TrimSpace(t))}
	for _, pair := range strings.Split(rest, ";") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		if mt.Params == nil {
			mt.Params = make(map[string]string)
		}
		mt.Params[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	return mt
}

// IsZero reports whether no media type was given.
func (mt MediaType) IsZero() bool { return mt.Type == "" }

// String formats mt for a Content-Type header.
func (mt MediaType) String() string {
	if mt.IsZero() {
		return ""
	}

	return mime.FormatMediaType(mt.Type, mt.Params)
}
