package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/middleware"
	"github.com/xy-planning-network/trellis/http/pipeline"
)

func TestRequestID(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	var actual string

	// Act
	w := serve(t, r, middleware.RequestID(), capture(func(c *pipeline.Context) {
		actual, _ = c.Value(trellis.RequestIDKey).(string)
	}))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.NotZero(t, actual)
	_, err := uuid.Parse(actual)
	require.Nil(t, err)
	require.Equal(t, actual, w.Header().Get(middleware.RequestIDHeader))
}

func TestRequestIDUnique(t *testing.T) {
	// Arrange
	seen := make(map[string]bool)

	for i := 0; i < 10; i++ {
		// Act
		w := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middleware.RequestID(), capture(nil))

		// Assert
		id := w.Header().Get(middleware.RequestIDHeader)
		require.False(t, seen[id])
		seen[id] = true
	}
}
