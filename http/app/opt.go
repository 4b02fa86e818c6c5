package app

import (
	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/logger"
)

// An AppOptFn configures an App when constructing one.
type AppOptFn func(*App)

// WithCodecs sets the payload.Table used to parse requests and serialize responses.
func WithCodecs(t payload.Table) AppOptFn {
	return func(a *App) {
		if t != nil {
			a.codecs = t
		}
	}
}

// WithLogger sets the logger.Logger used for requests that fail.
func WithLogger(l logger.Logger) AppOptFn {
	return func(a *App) {
		a.l = l
	}
}

// WithMaxBodyBytes caps the size of request bodies.
// Zero or less means no cap.
func WithMaxBodyBytes(n int64) AppOptFn {
	return func(a *App) {
		a.maxBody = n
	}
}
