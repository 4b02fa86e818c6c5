package payload_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trellis/http/payload"
)

func TestParseMediaType(t *testing.T) {
	for _, tc := range []struct {
		name     string
		input    string
		expected payload.MediaType
	}{
		{"Empty", "", payload.MediaType{}},
		{"Blank", "   ", payload.MediaType{}},
		{"Plain", "application/json", payload.MediaType{Type: "application/json", Params: map[string]string{}}},
		{
			"Charset",
			"text/html; charset=utf-8",
			payload.MediaType{Type: "text/html", Params: map[string]string{"charset": "utf-8"}},
		},
		{"Uppercase", "Application/JSON", payload.MediaType{Type: "application/json", Params: map[string]string{}}},
		{
			"Malformed-Params",
			"application/json; charset",
			payload.MediaType{Type: "application/json"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, payload.ParseMediaType(tc.input))
		})
	}
}

func TestMediaTypeString(t *testing.T) {
	require.Equal(t, "", payload.MediaType{}.String())
	require.Equal(t, "application/json", payload.ParseMediaType("application/json").String())
	require.Equal(t, "text/plain; charset=utf-8", payload.ParseMediaType("text/plain;charset=utf-8").String())
}
