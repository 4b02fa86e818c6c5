package middleware

import (
	"github.com/google/uuid"
	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/pipeline"
)

// RequestIDHeader is the response header RequestID echoes the generated ID in.
const RequestIDHeader = "X-Request-Id"

// RequestID stores a uuid in the request context under trellis.RequestIDKey
// and echoes it in the X-Request-Id response header.
//
// Decorators registered after RequestID can read the ID with
//
//	c.Value(trellis.RequestIDKey).(string)
func RequestID() pipeline.Decorator {
	return func(next pipeline.Handler) pipeline.Handler {
		return func(c *pipeline.Context) pipeline.Result {
			res := next(c)
			if !res.OK() {
				return res
			}

			id := uuid.NewString()
			c.SetValue(trellis.RequestIDKey, id)
			c.Header().Set(RequestIDHeader, id)

			return res
		}
	}
}
