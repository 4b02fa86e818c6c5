package middleware

import (
	"net/http"
	"net/url"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/http/pipeline"
)

// ForceHTTPS redirects HTTP requests to HTTPS with 308 Permanent Redirect
// unless the environment is development.
//
// The "X-Forwarded-Proto" header is used to check whether HTTP was requested
// since a trellis application is expected to run behind a proxy.
func ForceHTTPS(env trellis.Environment) pipeline.Decorator {
	if env.IsDevelopment() {
		return NoopDecorator
	}

	return func(next pipeline.Handler) pipeline.Handler {
		return func(c *pipeline.Context) pipeline.Result {
			res := next(c)
			if !res.OK() {
				return res
			}

			r := c.Request()
			if r.Header.Get("X-Forwarded-Proto") == "https" || r.TLS != nil {
				return res
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			c.Header().Set("Location", u.String())
			return pipeline.Fail(http.StatusPermanentRedirect, payload.None())
		}
	}
}
