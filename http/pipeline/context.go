package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
)

// A State marks how far a Context has progressed through the request lifecycle.
// States only ever move forward.
type State int

const (
	Created State = iota
	RawBodyReceived
	QueryParsed
	BodyParsed
	Dispatched
	BodyProduced
	ContentTypeResolved
	Serialized
	Transmitted
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case RawBodyReceived:
		return "raw body received"
	case QueryParsed:
		return "query parsed"
	case BodyParsed:
		return "body parsed"
	case Dispatched:
		return "dispatched"
	case BodyProduced:
		return "body produced"
	case ContentTypeResolved:
		return "content type resolved"
	case Serialized:
		return "serialized"
	case Transmitted:
		return "transmitted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// A Context is the state of one request as it travels through a pipeline.
// Exactly one Context exists per request and only that request's pipeline touches it.
//
// The exported fields are filled in by the stages that own them:
// ReceiveBody sets Data, ParseQuery sets Path and Query,
// ParseBody sets ContentType and Body, a router sets Params and Wildcards,
// ErrorBoundary sets Out (and Status on a domain failure),
// InferContentType sets OutType and Serialize sets Payload.
type Context struct {
	// Data is the raw request body.
	Data []byte

	// Path is the path part of the request URL.
	Path string

	// Query holds the decoded query string.
	Query url.Values

	// ContentType is the request's declared content type.
	ContentType payload.MediaType

	// Body is the decoded request body.
	Body payload.Body

	// Params are the named path parameters captured by the route that matched.
	Params map[string]string

	// Wildcards are the '*' captures of the route that matched, in pattern order.
	Wildcards []string

	// Status is the response status; 0 means the default.
	Status int

	// Out is the value produced for the response.
	Out payload.Body

	// OutType is the response content type.
	OutType payload.MediaType

	// Payload is the serialized response body.
	Payload []byte

	r     *http.Request
	ch    *channel
	state State
}

// NewContext constructs a Context for the request r whose response is written to w.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		Params: make(map[string]string),
		Query:  make(url.Values),
		r:      r,
		ch:     &channel{ResponseWriter: w},
	}
}

// Request returns the request as it stands, including values added with SetValue.
func (c *Context) Request() *http.Request { return c.r }

// ResponseWriter returns the response channel.
func (c *Context) ResponseWriter() http.ResponseWriter { return c.ch }

// Header returns the response header map.
func (c *Context) Header() http.Header { return c.ch.Header() }

// Method returns the request method.
func (c *Context) Method() string { return c.r.Method }

// Context returns the request's context.Context.
func (c *Context) Context() context.Context { return c.r.Context() }

// SetValue stores val under key on the request's context.Context.
func (c *Context) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}

// Value retrieves what SetValue stored under key.
func (c *Context) Value(key any) any { return c.r.Context().Value(key) }

// Param returns the path parameter called name, or "".
func (c *Context) Param(name string) string { return c.Params[name] }

// Wildcard returns the first wildcard capture, or "".
func (c *Context) Wildcard() string {
	if len(c.Wildcards) == 0 {
		return ""
	}

	return c.Wildcards[0]
}

// State returns the lifecycle state reached.
func (c *Context) State() State { return c.state }

// Advance moves c to the state to.
// Going backwards fails with ErrContractViolation; staying put does not.
func (c *Context) Advance(to State) error {
	if to < c.state {
		return fmt.Errorf("%w: cannot move from %s back to %s", trellis.ErrContractViolation, c.state, to)
	}

	c.state = to
	return nil
}

// Close releases the response channel. It is safe to call more than once.
func (c *Context) Close() error { return c.ch.Close() }

// Closes counts how many times the response channel was actually released: 0 or 1.
func (c *Context) Closes() int { return c.ch.closes }

// Closed reports whether the response channel was released.
func (c *Context) Closed() bool { return c.ch.Closed() }

// Written reports whether the response status has been written.
func (c *Context) Written() bool { return c.ch.Written() }

// RoutePath returns the path a router matches against:
// Path if ParseQuery ran, otherwise the request URL's escaped path.
func (c *Context) RoutePath() string {
	if c.Path != "" {
		return c.Path
	}

	if c.r.URL == nil || c.r.URL.EscapedPath() == "" {
		return "/"
	}

	return c.r.URL.EscapedPath()
}
