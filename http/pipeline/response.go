package pipeline

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/logger"
)

// ErrorBoundary turns the Result of everything it wraps into the response value.
//
// A success's body becomes Context.Out.
// A domain failure's status becomes Context.Status and its body Context.Out;
// handling then continues as if it had succeeded.
// An unexpected failure passes through unchanged.
func ErrorBoundary() Decorator {
	return func(next Handler) Handler {
		return func(c *Context) Result {
			res := next(c)
			switch {
			case res.IsUnexpected():
				return res
			case res.IsDomainFailure():
				c.Status = res.Status()
			}

			c.Out = res.Body()
			if err := c.Advance(BodyProduced); err != nil {
				return Unexpected(err)
			}

			return Success(c.Out)
		}
	}
}

// InferContentType sets the response Content-Type from Context.Out unless one was already set.
// An absent body sets nothing, a binary body is application/octet-stream,
// and anything else is application/json.
// The resulting type is recorded in Context.OutType.
func InferContentType() Decorator {
	return func(next Handler) Handler {
		return func(c *Context) Result {
			res := next(c)
			if !res.OK() {
				return res
			}

			h := c.Header()
			if len(h.Values("Content-Type")) == 0 {
				switch c.Out.Kind() {
				case payload.KindNone:
				case payload.KindBinary:
					h.Set("Content-Type", payload.MediaOctetStream)
				default:
					h.Set("Content-Type", payload.MediaJSON)
				}
			}

			c.OutType = payload.ParseMediaType(h.Get("Content-Type"))
			if err := c.Advance(ContentTypeResolved); err != nil {
				return Unexpected(err)
			}

			return res
		}
	}
}

// Serialize encodes Context.Out into Context.Payload with the codec t holds for the response Content-Type.
// A nil t uses payload.DefaultTable.
//
// A Content-Type without a codec produces an empty payload.
func Serialize(t payload.Table) Decorator {
	if t == nil {
		t = payload.DefaultTable()
	}

	return func(next Handler) Handler {
		return func(c *Context) Result {
			res := next(c)
			if !res.OK() {
				return res
			}

			c.OutType = payload.ParseMediaType(c.Header().Get("Content-Type"))
			data, err := t.Encode(c.OutType, c.Out)
			if err != nil {
				return Unexpected(err)
			}

			c.Payload = data
			if err := c.Advance(Serialized); err != nil {
				return Unexpected(err)
			}

			return res
		}
	}
}

// Transmit writes the response and always releases the response channel, exactly once.
//
// On success Content-Length is set to the payload size,
// the status is Context.Status (200 if unset) and the payload follows.
//
// On any failure, including a panic anywhere below Transmit,
// the failure is logged and the status is forced to 500 if no status has been written.
// Nothing escapes Transmit: the Result it returns only reports what happened.
//
// A nil l uses logger.New.
func Transmit(l logger.Logger) Decorator {
	if l == nil {
		l = logger.New()
	}

	return func(next Handler) Handler {
		return func(c *Context) (res Result) {
			defer func() {
				c.Close()
				c.state = Transmitted
			}()

			res = guard(next, c)
			if !res.OK() {
				fail(l, c, res.Err())
				return res
			}

			status := c.Status
			if status == 0 {
				status = http.StatusOK
			}

			if status < 100 || status > 999 {
				err := fmt.Errorf("%w: status %d cannot be written", trellis.ErrContractViolation, status)
				fail(l, c, err)
				return Unexpected(err)
			}

			if bodyAllowed(status) {
				c.Header().Set("Content-Length", strconv.Itoa(len(c.Payload)))
			}

			c.ch.WriteHeader(status)
			if !bodyAllowed(status) || c.r.Method == http.MethodHead {
				return res
			}

			if _, err := c.ch.Write(c.Payload); err != nil {
				l.Error("failed writing response", &logger.LogContext{Error: err, Request: c.r})
				return Unexpected(err)
			}

			return res
		}
	}
}

// guard invokes next, converting a panic into an unexpected Result.
func guard(next Handler, c *Context) (res Result) {
	defer func() {
		if v := recover(); v != nil {
			res = Unexpected(fmt.Errorf("%w: panic: %v", trellis.ErrUnhandled, v))
		}
	}()

	return next(c)
}

func fail(l logger.Logger, c *Context, err error) {
	lc := &logger.LogContext{
		Data:    map[string]any{"state": c.state.String(), "path": c.RoutePath()},
		Error:   err,
		Request: c.r,
	}

	if errors.Is(err, trellis.ErrMalformedBody) {
		l.Warn("rejected request", lc)
	} else {
		l.Error("request failed", lc)
	}

	if !c.ch.Written() {
		c.Header().Del("Content-Length")
		c.ch.WriteHeader(http.StatusInternalServerError)
	}
}

func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}

	return true
}
