package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/pipeline"
)

// ReportPanic recovers panics escaping the wrapped handler and reports them to Sentry.
// Each request also gets a *sentry.Hub in its context, which ReportUnexpected uses.
//
// Transmit recovers every panic raised inside an *app.App, so those never reach ReportPanic.
// They are only logged there, which sends them to Sentry only when the logger is a *logger.SentryLogger.
// ReportUnexpected reports the panics of the handlers it wraps.
//
// In development, NoopAdapter returns and this middleware does nothing.
func ReportPanic(env trellis.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
		Timeout:         2 * time.Second,
	})

	return func(h http.Handler) http.Handler { return sh.Handle(h) }
}

// ReportUnexpected sends the error of any unexpected Result to Sentry.
// A panic in next is recovered and reported as an unexpected Result wrapping trellis.ErrUnhandled.
// Otherwise the Result passes through untouched.
//
// The hub is the one ReportPanic placed in the request context, or else sentry.CurrentHub.
func ReportUnexpected() pipeline.Decorator {
	return func(next pipeline.Handler) pipeline.Handler {
		return func(c *pipeline.Context) pipeline.Result {
			res := recovered(next, c)
			if !res.IsUnexpected() {
				return res
			}

			hub := sentry.GetHubFromContext(c.Context())
			if hub == nil {
				hub = sentry.CurrentHub()
			}

			hub.CaptureException(res.Err())
			return res
		}
	}
}

func recovered(next pipeline.Handler, c *pipeline.Context) (res pipeline.Result) {
	defer func() {
		if v := recover(); v != nil {
			res = pipeline.Unexpected(fmt.Errorf("%w: panic: %v", trellis.ErrUnhandled, v))
		}
	}()

	return next(c)
}
