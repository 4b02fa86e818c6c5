package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/app"
	"github.com/xy-planning-network/trellis/http/middleware"
	"github.com/xy-planning-network/trellis/http/pipeline"
	"github.com/xy-planning-network/trellis/http/resp"
	"github.com/xy-planning-network/trellis/http/router"
	"github.com/xy-planning-network/trellis/logger"
)

// A Ranger manages and exposes all components of a trellis app to one another.
//
// Routes are registered directly on a Ranger through the embedded *router.Router
// until the first request is served.
type Ranger struct {
	*resp.Responder
	*router.Router

	app        *app.App
	assets     assets
	cors       string
	ctx        context.Context
	ds         []pipeline.Decorator
	env        trellis.Environment
	forceHTTPS bool
	handler    http.Handler
	l          logger.Logger
	maint      bool
	maxBody    int64
	notFound   pipeline.Handler
	srv        *http.Server
	url        *url.URL
	visitors   *middleware.Visitors
}

type assets struct {
	dir string
	url string
}

// New constructs a Ranger from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
//
// Any error New returns wraps trellis.ErrBadConfig.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	followups := make([]OptFollowup, 0)

	// NOTE(dlk): calling an option configures the *Ranger under construction.
	// Some options require components that only exist once every option has run
	// and the defaults are in place.
	// They return an OptFollowup to be called at that point.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(r)
		if err != nil {
			return nil, badConfig(err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if err := r.fillDefaults(); err != nil {
		return nil, badConfig(err)
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, badConfig(err)
		}
	}

	if err := r.assemble(); err != nil {
		return nil, badConfig(err)
	}

	r.l.Debug(fmt.Sprintf("ranger ready in %s at %s", r.env, r.url), nil)
	return r, nil
}

// App returns the *app.App serving the application pipeline.
func (r *Ranger) App() *app.App { return r.app }

// Env returns the trellis.Environment the Ranger runs in.
func (r *Ranger) Env() trellis.Environment { return r.env }

// Handler returns everything the web server serves:
// health checks, assets, and the application,
// wrapped in panic reporting and CORS.
func (r *Ranger) Handler() http.Handler { return r.handler }

// Logger returns the logger.Logger the Ranger logs with.
func (r *Ranger) Logger() logger.Logger { return r.l }

// URL returns a copy of the base URL of the application.
func (r *Ranger) URL() *url.URL {
	u := *r.url
	return &u
}

// Guide begins the web server.
//
// These, cancelling the context.Context provided by WithContext, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ctx, cancel := context.WithCancel(r.ctx)
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			cancel()
		case <-ctx.Done():
		}
	}()

	errs := make(chan error, 1)
	r.srv.Handler = r.handler
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("could not listen: %w", err)
			r.l.Error(err.Error(), nil)
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		return r.Shutdown()
	}
}

// Shutdown shutdowns the web server, waiting at most SHUTDOWN_TIMEOUT for open requests.
func (r *Ranger) Shutdown() error {
	timeout := trellis.EnvVarOrDuration(shutdownTimeoutEnvVar, DefaultShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}

// fillDefaults constructs whatever no option provided.
func (r *Ranger) fillDefaults() error {
	if r.ctx == nil {
		r.ctx = context.Background()
	}

	if r.l == nil {
		r.l = defaultLogger(r.env)
	}

	if r.url == nil {
		u, err := defaultURL()
		if err != nil {
			return err
		}

		r.url = u
	}

	if r.srv == nil {
		r.srv = defaultServer()
	}

	if r.Router == nil {
		r.Router = router.New()
	}

	if r.Responder == nil {
		r.Responder = defaultResponder(r.l, r.url)
	}

	if r.notFound == nil {
		r.notFound = defaultNotFound
	}

	return nil
}

// assemble builds the application pipeline and the handler around it.
//
// The application decorators run in this order:
//
//	ForceHTTPS (if on), RequestID, InjectIPAddress, RateLimit (if on), LogRequest,
//	...WithDecorators,
//	routes,
//	ReportUnexpected
func (r *Ranger) assemble() error {
	r.app = app.New(app.WithLogger(r.l), app.WithMaxBodyBytes(r.maxBody))

	var ds []pipeline.Decorator
	if r.forceHTTPS {
		ds = append(ds, middleware.ForceHTTPS(r.env))
	}

	ds = append(ds,
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.RateLimit(r.visitors),
		middleware.LogRequest(r.l),
	)
	ds = append(ds, r.ds...)
	ds = append(ds, r.Router.DecoratorOr(r.notFound), middleware.ReportUnexpected())

	for _, d := range ds {
		if err := r.app.Decorate(d); err != nil {
			return err
		}
	}

	r.handler = r.newHandler()
	return nil
}

func badConfig(err error) error {
	if errors.Is(err, trellis.ErrBadConfig) {
		return err
	}

	return fmt.Errorf("%w: %s", trellis.ErrBadConfig, err)
}
