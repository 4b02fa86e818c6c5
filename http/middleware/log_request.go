package middleware

import (
	"net/url"
	"strings"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/pipeline"
	"github.com/xy-planning-network/trellis/logger"
)

// scrubbed query parameters
var scrubbed = []string{"password"}

// LogRequest logs the request's originating IP address, method and requested URI
// at the Info level using l.
//
// LogRequest scrubs the values for the following query parameters:
// - password
//
// If l is nil, NoopDecorator returns and this middleware does nothing.
func LogRequest(l logger.Logger) pipeline.Decorator {
	if l == nil {
		return NoopDecorator
	}

	return func(next pipeline.Handler) pipeline.Handler {
		return func(c *pipeline.Context) pipeline.Result {
			res := next(c)
			if !res.OK() {
				return res
			}

			// NOTE: masking a copy keeps the real values in the Context
			q := make(url.Values, len(c.Query))
			for k, v := range c.Query {
				q[k] = v
			}

			for _, key := range scrubbed {
				trellis.Mask(q, key)
			}

			uri := c.RoutePath()
			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			var lc *logger.LogContext
			if id, ok := c.Value(trellis.RequestIDKey).(string); ok {
				lc = &logger.LogContext{Data: map[string]any{"request_id": id}}
			}

			l.Info(strings.Join([]string{ipAddress(c), c.Method(), uri}, " "), lc)
			return res
		}
	}
}
