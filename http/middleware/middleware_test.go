package middleware_test

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trellis/http/app"
	"github.com/xy-planning-network/trellis/http/middleware"
	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/http/pipeline"
	"github.com/xy-planning-network/trellis/logger"
)

func noopHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
}

func newLogger(b *bytes.Buffer) logger.Logger {
	return logger.NewTrellisLogger(logger.WithLogger(log.New(b, "", 0)))
}

// serve runs r through an *app.App, registering each decorator with its own Decorate call
// so their work happens in the order they are listed.
func serve(t *testing.T, r *http.Request, ds ...pipeline.Decorator) *httptest.ResponseRecorder {
	t.Helper()

	a := app.New(app.WithLogger(newLogger(new(bytes.Buffer))))
	for _, d := range ds {
		require.Nil(t, a.Decorate(d))
	}

	w := httptest.NewRecorder()
	a.ServeHTTP(w, r)
	return w
}

// capture is an endpoint handing the Context to fn and answering with "ok".
func capture(fn func(c *pipeline.Context)) pipeline.Decorator {
	return pipeline.Endpoint(func(c *pipeline.Context) pipeline.Result {
		if fn != nil {
			fn(c)
		}

		return pipeline.Success(payload.Text("ok"))
	})
}

func TestChain(t *testing.T) {
	// Arrange
	var order []string
	mark := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	// Act
	h := middleware.Chain(noopHandler(), mark("a"), nil, mark("b"), middleware.NoopAdapter)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	require.Equal(t, []string{"a", "b"}, order)
}

func TestNoopDecorator(t *testing.T) {
	// Arrange
	var called bool
	next := func(c *pipeline.Context) pipeline.Result {
		called = true
		return pipeline.Success(payload.None())
	}

	// Act
	res := middleware.NoopDecorator(next)(nil)

	// Assert
	require.True(t, called)
	require.True(t, res.OK())
	require.Equal(t, fmt.Sprintf("%p", next), fmt.Sprintf("%p", middleware.NoopDecorator(next)))
}
