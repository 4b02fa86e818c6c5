package middleware

import (
	"net/http"

	"github.com/xy-planning-network/trellis/http/pipeline"
)

// An Adapter allows chaining net/http middlewares together.
//
// Adapters wrap what sits outside a trellis pipeline,
// such as the *app.App itself.
type Adapter func(http.Handler) http.Handler

// Chain glues the set of adapters to the handler.
// The first adapter listed is the outermost.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	//NOTE: Loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		if adapters[i] == nil {
			continue
		}

		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter returns the handler unchanged.
func NoopAdapter(h http.Handler) http.Handler { return h }

// NoopDecorator returns next unchanged.
//
// Constructors in this package return NoopDecorator when they are given nothing to do.
func NoopDecorator(next pipeline.Handler) pipeline.Handler { return next }
