package middleware_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/app"
	"github.com/xy-planning-network/trellis/http/middleware"
	"github.com/xy-planning-network/trellis/http/pipeline"
)

func TestLogRequest(t *testing.T) {
	// Arrange + Act
	actual := middleware.LogRequest(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopDecorator), fmt.Sprintf("%p", actual))

	tcs := []struct {
		name     string
		method   string
		target   string
		ip       string
		expected string
	}{
		{"Zero-Value", http.MethodGet, "/", "", "'0.0.0.0 GET /'"},
		{"With-IP", http.MethodPost, "/", "1.1.1.1", "'1.1.1.1 POST /'"},
		{
			"With-Query-Params",
			http.MethodPut,
			"/hitting/the/trails?param=true",
			"1.1.1.1",
			"'1.1.1.1 PUT /hitting/the/trails?param=true'",
		},
		{
			"With-Query-Params-Hid",
			http.MethodGet,
			"/?param=true&password=hunter2",
			"1.1.1.1",
			"'1.1.1.1 GET /?param=true&password=" + trellis.LogMaskVal + "'",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			a := app.New(app.WithLogger(newLogger(b)))
			require.Nil(t, a.Decorate(middleware.InjectIPAddress()))
			require.Nil(t, a.Decorate(middleware.LogRequest(newLogger(b))))

			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, tc.target, nil)
			if tc.ip != "" {
				r.Header.Set("X-Real-Ip", tc.ip)
			}

			// Act
			a.ServeHTTP(w, r)

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			require.Contains(t, b.String(), "[INFO]")
			require.Contains(t, b.String(), tc.expected)
			require.NotContains(t, b.String(), "hunter2")
		})
	}
}

func TestLogRequestKeepsQuery(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	r := httptest.NewRequest(http.MethodGet, "/?password=hunter2", nil)
	var actual string

	// Act
	serve(t, r, middleware.LogRequest(newLogger(b)), capture(func(c *pipeline.Context) {
		actual = c.Query.Get("password")
	}))

	// Assert
	require.Equal(t, "hunter2", actual)
	require.NotContains(t, b.String(), "hunter2")
}
