package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/http/pipeline"
	"golang.org/x/time/rate"
)

const (
	// DefaultRate is how many requests per second a new Visitor may make.
	DefaultRate rate.Limit = 5

	// DefaultBurst is how many requests a new Visitor may make at once.
	DefaultBurst = 20

	// visitorTTL is how long a Visitor is remembered after it was last seen.
	visitorTTL = 60 * time.Minute
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	burst int
	limit rate.Limit
	val   map[string]Visitor
	sync.Mutex
}

// A VisitorsOptFn configures Visitors.
type VisitorsOptFn func(*Visitors)

// WithLimit limits each Visitor to r requests per second with bursts of up to burst.
func WithLimit(r rate.Limit, burst int) VisitorsOptFn {
	return func(vs *Visitors) {
		vs.limit = r
		vs.burst = burst
	}
}

// NewVisitors constructs an empty *Visitors.
// Without options, Visitors are limited to DefaultRate requests every second
// with bursts of up to DefaultBurst.
func NewVisitors(opts ...VisitorsOptFn) *Visitors {
	vs := &Visitors{
		burst: DefaultBurst,
		limit: DefaultRate,
		val:   make(map[string]Visitor),
	}
	for _, opt := range opts {
		opt(vs)
	}

	return vs
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len reports how many Visitors are remembered.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()

	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit limits requests per client IP address using visitors.
// A request over the limit fails with 429 Too Many Requests.
//
// The address is the one InjectIPAddress stored, if it ran,
// otherwise GetIPAddress is consulted directly.
//
// If visitors is nil, NoopDecorator returns and this middleware does nothing.
//
// RateLimit counts the request after next returns.
// Registered with App.Decorate before the router, that is before any route runs.
// In a route's decorator list it must come after the endpoint it limits.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
func RateLimit(visitors *Visitors) pipeline.Decorator {
	if visitors == nil {
		return NoopDecorator
	}

	return func(next pipeline.Handler) pipeline.Handler {
		return func(c *pipeline.Context) pipeline.Result {
			res := next(c)
			if !res.OK() {
				return res
			}

			if !visitors.Fetch(ipAddress(c)).Limiter.Allow() {
				return pipeline.Fail(http.StatusTooManyRequests, payload.Text(http.StatusText(http.StatusTooManyRequests)))
			}

			visitors.cleanup()
			return res
		}
	}
}
