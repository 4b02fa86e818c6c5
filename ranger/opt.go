package ranger

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/middleware"
	"github.com/xy-planning-network/trellis/http/pipeline"
	"github.com/xy-planning-network/trellis/http/resp"
	"github.com/xy-planning-network/trellis/http/router"
	"github.com/xy-planning-network/trellis/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require components other options or the defaults provide,
// so an OptFollowup is called once every option has run and defaults are in place.
//
// WithEnv is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRoutes is an example of the second.
// The routes are registered on the *Ranger's router only when the closure it returns is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)

// An OptFollowup finishes what a RangerOption started.
type OptFollowup func() error

// WithContext sets the context.Context whose cancellation stops Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if ctx == nil {
			return nil, fmt.Errorf("%w: nil context", trellis.ErrBadConfig)
		}

		rng.ctx = ctx
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the Environment is Development.
func WithEnv(val string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		e := trellis.Environment(strings.ToUpper(val))
		if e.Valid() != nil {
			e = trellis.EnvVarOrEnv(environmentEnvVar, trellis.Development)
		}

		rng.env = e
		return nil, nil
	}
}

// WithBaseURL sets the URL the application is reached at.
// Responder redirects to the root resolve against it.
func WithBaseURL(raw string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		u, err := parseBaseURL(raw)
		if err != nil {
			return nil, err
		}

		rng.url = u
		return nil, nil
	}
}

// WithLogger sets the logger.Logger every part of the application logs with.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		return nil, nil
	}
}

// WithServer sets the *http.Server Guide runs.
// Its Handler is replaced by Ranger.Handler.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.srv = s
		return nil, nil
	}
}

// WithRouter sets the *router.Router the application dispatches to.
func WithRouter(r *router.Router) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.Router = r
		return nil, nil
	}
}

// WithRoutes constructs a followup option that, when called,
// registers routes, each chain preceded by ds, on the *Ranger's router.
func WithRoutes(routes []router.Route, ds ...pipeline.Decorator) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			return rng.Router.HandleRoutes(routes, ds...)
		}, nil
	}
}

// WithResponder sets the *resp.Responder exposed on the *Ranger.
func WithResponder(d *resp.Responder) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.Responder = d
		return nil, nil
	}
}

// WithDecorators adds decorators to the application pipeline.
// They run after the default decorators and before the routes.
func WithDecorators(ds ...pipeline.Decorator) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		for i, d := range ds {
			if d == nil {
				return nil, fmt.Errorf("%w: decorator at index %d is nil", trellis.ErrContractViolation, i)
			}
		}

		rng.ds = append(rng.ds, ds...)
		return nil, nil
	}
}

// WithNotFound sets the handler answering requests no route matches.
func WithNotFound(h pipeline.Handler) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.notFound = h
		return nil, nil
	}
}

// WithMaxBodyBytes limits the size of request bodies. Zero or less means no limit.
func WithMaxBodyBytes(n int64) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.maxBody = n
		return nil, nil
	}
}

// WithRateLimit limits each client IP address with the provided Visitors.
// A nil vs turns rate limiting off.
func WithRateLimit(vs *middleware.Visitors) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.visitors = vs
		return nil, nil
	}
}

// WithForceHTTPS toggles redirecting plain HTTP requests to HTTPS.
func WithForceHTTPS(on bool) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.forceHTTPS = on
		return nil, nil
	}
}

// WithCORSOrigin allows cross-origin requests from origin. An empty origin disallows them.
func WithCORSOrigin(origin string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.cors = origin
		return nil, nil
	}
}

// WithAssets serves the files in dir under the URL path prefix urlPath.
// An empty dir serves no assets.
func WithAssets(dir, urlPath string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if dir != "" && !strings.HasPrefix(urlPath, "/") {
			return nil, fmt.Errorf("%w: assets URL %q must begin with /", trellis.ErrBadConfig, urlPath)
		}

		if urlPath != "" && !strings.HasSuffix(urlPath, "/") {
			urlPath += "/"
		}

		rng.assets = assets{dir: dir, url: urlPath}
		return nil, nil
	}
}

// WithMaintenanceMode toggles answering every request, besides health checks,
// with MaintModeHandler.
func WithMaintenanceMode(on bool) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.maint = on
		return nil, nil
	}
}

// parseBaseURL requires an absolute URL.
func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: base URL %q: %s", trellis.ErrBadConfig, raw, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q must be absolute", trellis.ErrBadConfig, raw)
	}

	return u, nil
}
