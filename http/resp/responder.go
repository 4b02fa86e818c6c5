package resp

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/http/pipeline"
	"github.com/xy-planning-network/trellis/logger"
)

const (
	jsonMediaType = "application/json; charset=UTF-8"
	textMediaType = "text/plain; charset=utf-8"
)

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes many common methods for producing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Json
//	Text
//	Raw
//	Empty
//	Redirect
//	Err
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Root URL the responder is listening on, the default for redirects
	rootUrl *url.URL

	// Keys for pulling specific values out of the request's context.Context
	ctxKeys []trellis.Key
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := new(Responder)
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	return d
}

type jsonSchema struct {
	D any            `json:"data,omitempty"`
	M map[string]any `json:"meta,omitempty"`
}

// Json responds with data in JSON format, collating it from Data() and setting appropriate headers.
//
// The JSON schema looks like this:
//
//	{
//		"data": {},
//		"meta": {}
//	}
//
// Data() calls populate "data".
// "meta" holds the request context values of the keys set by WithCtxKeys.
// Empty members are elided.
func (doer *Responder) Json(c *pipeline.Context, opts ...Fn) pipeline.Result {
	rr, err := doer.do(c, opts...)
	if err != nil {
		return pipeline.Unexpected(err)
	}

	if rr.ctype == "" {
		rr.ctype = jsonMediaType
	}

	p := jsonSchema{D: rr.data}
	for _, k := range doer.ctxKeys {
		if val := c.Value(k); val != nil {
			if p.M == nil {
				p.M = make(map[string]any)
			}
			p.M[string(k)] = val
		}
	}

	return doer.finish(rr, payload.Value(p))
}

// Text responds with data as plain text.
// Strings, byte slices, errors and fmt.Stringers are written as they are;
// anything else is formatted with fmt.Sprint.
func (doer *Responder) Text(c *pipeline.Context, opts ...Fn) pipeline.Result {
	rr, err := doer.do(c, opts...)
	if err != nil {
		return pipeline.Unexpected(err)
	}

	if rr.ctype == "" {
		rr.ctype = textMediaType
	}

	var s string
	switch t := rr.data.(type) {
	case nil:
	case string:
		s = t
	case []byte:
		s = string(t)
	case error:
		s = t.Error()
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}

	return doer.finish(rr, payload.Text(s))
}

// Raw responds with b unchanged.
// The Content-Type is application/octet-stream unless ContentType() says otherwise.
func (doer *Responder) Raw(c *pipeline.Context, b []byte, opts ...Fn) pipeline.Result {
	rr, err := doer.do(c, opts...)
	if err != nil {
		return pipeline.Unexpected(err)
	}

	if rr.ctype == "" {
		rr.ctype = payload.MediaOctetStream
	}

	return doer.finish(rr, payload.Binary(b))
}

// Empty responds without a body.
// The default response status code is 204.
func (doer *Responder) Empty(c *pipeline.Context, opts ...Fn) pipeline.Result {
	rr, err := doer.do(c, opts...)
	if err != nil {
		return pipeline.Unexpected(err)
	}

	if rr.code == 0 {
		rr.code = http.StatusNoContent
	}

	return doer.finish(rr, payload.None())
}

// Redirect points the client at the URL Url() set.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
//
// The default response status code is 302.
//
// If Code() set the status code to something other than standard redirect 3xx statuses,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(c *pipeline.Context, opts ...Fn) pipeline.Result {
	rr, err := doer.do(c, append([]Fn{ToRoot()}, opts...)...)
	if err != nil {
		return pipeline.Unexpected(err)
	}

	if rr.url == nil {
		return pipeline.Unexpected(fmt.Errorf("%w: cannot redirect, no resp.url", ErrMissingData))
	}

	switch {
	case rr.code >= http.StatusMultipleChoices && rr.code <= http.StatusPermanentRedirect:
		// NOTE(dlk): code is already a 3xx, so do nothing
	case rr.code >= http.StatusBadRequest && rr.code < http.StatusInternalServerError:
		rr.code = http.StatusSeeOther
	case rr.code >= http.StatusInternalServerError:
		rr.code = http.StatusTemporaryRedirect
	default:
		rr.code = http.StatusFound
	}

	rr.header.Set("Location", rr.url.String())
	return doer.finish(rr, payload.None())
}

// Err logs err and reports it to the client as plain text.
//
// The default response status code is 500; Code() may set any other status of 400 or above.
func (doer *Responder) Err(c *pipeline.Context, err error, opts ...Fn) pipeline.Result {
	rr, nested := doer.do(c, append([]Fn{Err(err)}, opts...)...)
	if nested != nil && !errors.Is(nested, ErrDone) {
		err = fmt.Errorf("%w: %s", err, nested)
	}

	if rr == nil {
		return pipeline.Unexpected(err)
	}

	if rr.code < http.StatusBadRequest {
		rr.code = http.StatusInternalServerError
	}

	if rr.ctype == "" {
		rr.ctype = textMediaType
	}

	msg := http.StatusText(rr.code)
	if err != nil {
		msg = err.Error()
	}

	return doer.finish(rr, payload.Text(strings.TrimSpace(msg)))
}

// finish copies headers onto the response and chooses the Result:
// a status of 400 or above is a domain failure.
func (doer *Responder) finish(rr *Response, b payload.Body) pipeline.Result {
	h := rr.c.Header()
	for k, vs := range rr.header {
		for _, v := range vs {
			h.Add(k, v)
		}
	}

	if rr.ctype != "" {
		h.Set("Content-Type", rr.ctype)
	}

	if rr.code >= http.StatusBadRequest {
		return pipeline.Fail(rr.code, b)
	}

	rr.c.Status = rr.code
	return pipeline.Success(b)
}

// do applies all options to the *pipeline.Context.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless attempts to retry calling functional options until all do not return errors or,
// a set of options unable to not return errors is reached.
//
// Should all options apply successfully, do returns a validly formed *Response.
func (doer *Responder) do(c *pipeline.Context, opts ...Fn) (*Response, error) {
	resp := &Response{c: c, header: make(http.Header)}

	var err error
	redos := make([]Fn, 0)
	for _, opt := range opts {
		select {
		case <-c.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			if err = opt(*doer, resp); err != nil {
				redos = append(redos, opt)
			}
		}
	}

	i := -1
	for i != len(redos) {
		select {
		case <-c.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			// NOTE(dlk): because doer.redo mutates the length of redos,
			// confirm we are running up against a set of functions
			// that will not return anything other than errors by checking
			// the length of redos has not changed since calling doer.redo.
			i = len(redos)
			redos = doer.redo(resp, redos...)
		}
	}

	if len(redos) == 0 {
		return resp, nil
	}

	// NOTE(dlk): wrapup errors to send back
	err = redos[0](*doer, resp)
	for _, opt := range redos[1:] {
		err = fmt.Errorf("%w: %s", opt(*doer, resp), err)
	}

	return resp, err
}

// redo applies as many may Options as it can, returning those Options that continue to throw an error.
func (doer *Responder) redo(r *Response, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, r); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}
