package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/trellis/http/pipeline"
	"github.com/xy-planning-network/trellis/logger"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	c      *pipeline.Context
	code   int
	ctype  string
	data   any
	header http.Header
	url    *url.URL
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// ContentType sets the response Content-Type.
func ContentType(ct string) Fn {
	return func(_ Responder, r *Response) error {
		if ct == "" {
			return fmt.Errorf("%w: empty content type", ErrInvalid)
		}

		r.ctype = ct
		return nil
	}
}

// Data stores the value to write to the client.
//
// Used with Responder.Json and Responder.Text.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), &logger.LogContext{
				Data:    dataMap(r.data),
				Error:   e,
				Request: r.c.Request(),
			})
		}

		return Code(http.StatusInternalServerError)(d, r)
	}
}

// Header adds the key-value pair to the response headers.
func Header(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if key == "" {
			return fmt.Errorf("%w: empty header key", ErrInvalid)
		}

		r.header.Add(key, val)
		return nil
	}
}

// Param adds the query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		q.Add(key, val)
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// ToRoot calls URL with the Responder's default, root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		if d.rootUrl == nil {
			return nil
		}

		u := *d.rootUrl
		r.url = &u
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Response if successful.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}
		r.url = parsed
		return nil
	}
}

// Warn logs msg at the warning level.
func Warn(msg string) Fn {
	return func(d Responder, r *Response) error {
		d.logger.Warn(msg, &logger.LogContext{
			Data:    dataMap(r.data),
			Request: r.c.Request(),
		})
		return nil
	}
}

func dataMap(data any) map[string]any {
	if data == nil {
		return nil
	}

	if m, ok := data.(map[string]any); ok {
		return m
	}

	return map[string]any{"data": data}
}
