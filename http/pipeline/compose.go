package pipeline

import (
	"fmt"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
)

// A Handler processes one request's Context and reports how it went.
type Handler func(c *Context) Result

// A Decorator wraps the next Handler with additional behavior.
//
// Decorators in trellis invoke next fully and then do their own work,
// so the one closest to the terminal Handler is the first to finish.
type Decorator func(next Handler) Handler

// Noop is the terminal Handler: it succeeds with an absent body.
func Noop(*Context) Result { return Success(payload.None()) }

// Compose folds ds around terminal, right to left, producing
//
//	ds[0](ds[1](...ds[n-1](terminal)))
//
// ds[0] is entered first and finishes last.
// A nil terminal is replaced by Noop.
//
// Compose checks every decorator before calling any of them:
// a nil Decorator, or one that produces a nil Handler,
// fails with ErrContractViolation.
//
// The Handler returned holds no state of its own and can serve concurrent requests.
func Compose(terminal Handler, ds ...Decorator) (Handler, error) {
	if terminal == nil {
		terminal = Noop
	}

	for i, d := range ds {
		if d == nil {
			return nil, fmt.Errorf("%w: decorator at index %d is nil", trellis.ErrContractViolation, i)
		}
	}

	//NOTE: Loop in reverse to preserve decorator order
	h := terminal
	for i := len(ds) - 1; i >= 0; i-- {
		h = ds[i](h)
		if h == nil {
			return nil, fmt.Errorf("%w: decorator at index %d produced a nil handler", trellis.ErrContractViolation, i)
		}
	}

	return h, nil
}

// MustCompose is Compose for setup code: it panics instead of returning an error.
func MustCompose(terminal Handler, ds ...Decorator) Handler {
	h, err := Compose(terminal, ds...)
	if err != nil {
		panic(err)
	}

	return h
}

// Endpoint adapts fn into a Decorator that runs fn once next has succeeded.
// Whatever next returned otherwise is passed along and fn never runs.
//
// Endpoint(nil) returns nil so that Compose rejects it.
func Endpoint(fn Handler) Decorator {
	if fn == nil {
		return nil
	}

	return func(next Handler) Handler {
		return func(c *Context) Result {
			if res := next(c); !res.OK() {
				return res
			}

			return fn(c)
		}
	}
}

// Handle is Endpoint for functions written with Go error returns.
// The error is converted with FromError, so returning a *DomainError
// produces a domain failure and any other error an unexpected one.
func Handle(fn func(c *Context) (payload.Body, error)) Decorator {
	if fn == nil {
		return nil
	}

	return Endpoint(func(c *Context) Result {
		body, err := fn(c)
		if err != nil {
			return FromError(err)
		}

		return Success(body)
	})
}
