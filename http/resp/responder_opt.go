package resp

import (
	"net/url"
	"sort"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithCtxKeys sets the keys whose request context values Json reports under "meta".
//
// Keys are deduplicated and sorted; empty keys are dropped.
func WithCtxKeys(keys ...trellis.Key) ResponderOptFn {
	return func(d *Responder) {
		seen := make(map[trellis.Key]bool)
		var filtered []trellis.Key
		for _, k := range keys {
			if k == "" || seen[k] {
				continue
			}

			seen[k] = true
			filtered = append(filtered, k)
		}

		sort.Slice(filtered, func(i, j int) bool { return filtered[i] < filtered[j] })
		d.ctxKeys = filtered
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for redirecting.
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes https://example.com
func WithRootUrl(u string) ResponderOptFn {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good, _ = url.ParseRequestURI("https://example.com")
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}
