package app

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/http/pipeline"
	"github.com/xy-planning-network/trellis/logger"
)

// An App assembles the standard request pipeline around user decorators and serves it.
//
// An App implements http.Handler.
type App struct {
	codecs  payload.Table
	l       logger.Logger
	maxBody int64

	mu    sync.Mutex
	built bool
	ds    []pipeline.Decorator
	h     pipeline.Handler
	err   error
	once  sync.Once
}

// New constructs an *App configured by opts.
// Without options an App logs with logger.New, negotiates with payload.DefaultTable
// and accepts request bodies of any size.
func New(opts ...AppOptFn) *App {
	a := &App{codecs: payload.DefaultTable()}
	for _, opt := range opts {
		opt(a)
	}

	if a.l == nil {
		a.l = logger.New()
	}

	return a
}

// Decorate registers user decorators. They run after the request body is parsed
// and before the error boundary sees the result.
//
// Decorators passed in one call keep their order.
// Each call wraps the decorators of earlier calls,
// so every call's decorators finish their own work before those of the next call begin.
//
// Decorate fails with ErrContractViolation once the App has been built
// or if any decorator is nil.
func (a *App) Decorate(ds ...pipeline.Decorator) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.built {
		return fmt.Errorf("%w: app is already built", trellis.ErrContractViolation)
	}

	for i, d := range ds {
		if d == nil {
			return fmt.Errorf("%w: decorator at index %d is nil", trellis.ErrContractViolation, i)
		}
	}

	a.ds = append(append(make([]pipeline.Decorator, 0, len(ds)+len(a.ds)), ds...), a.ds...)
	return nil
}

// Build composes the pipeline:
//
//	Transmit, Serialize, InferContentType, ErrorBoundary,
//	...decorators,
//	ParseBody, ParseQuery, ReceiveBody
//
// around pipeline.Noop. Only the first call does any work;
// later calls return what it returned.
func (a *App) Build() error {
	a.once.Do(func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		a.built = true
		stack := []pipeline.Decorator{
			pipeline.Transmit(a.l),
			pipeline.Serialize(a.codecs),
			pipeline.InferContentType(),
			pipeline.ErrorBoundary(),
		}
		stack = append(stack, a.ds...)
		stack = append(stack,
			pipeline.ParseBody(a.codecs),
			pipeline.ParseQuery(),
			pipeline.ReceiveBody(a.maxBody),
		)

		a.h, a.err = pipeline.Compose(pipeline.Noop, stack...)
	})

	return a.err
}

// ServeHTTP runs the pipeline for one request, building it first if need be.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := a.Build(); err != nil {
		a.l.Error("app could not be built", &logger.LogContext{Error: err, Request: r})
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	a.h(pipeline.NewContext(w, r))
}

// Logger returns the logger.Logger the App logs with.
func (a *App) Logger() logger.Logger { return a.l }
