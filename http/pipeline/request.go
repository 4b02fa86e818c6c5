package pipeline

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
)

// ReceiveBody reads the entire request body into Context.Data.
// A positive limit caps how many bytes are accepted;
// reading more fails the request.
//
// Any failure to read is an ErrTransport.
func ReceiveBody(limit int64) Decorator {
	return func(next Handler) Handler {
		return func(c *Context) Result {
			res := next(c)
			if !res.OK() {
				return res
			}

			c.Data = []byte{}
			if body := c.r.Body; body != nil && body != http.NoBody {
				var r io.Reader = body
				if limit > 0 {
					r = http.MaxBytesReader(c.ch, body, limit)
				}

				data, err := io.ReadAll(r)
				if err != nil {
					return Unexpected(fmt.Errorf("%w: receiving request body: %s", trellis.ErrTransport, err))
				}

				c.Data = data
			}

			if err := c.Advance(RawBodyReceived); err != nil {
				return Unexpected(err)
			}

			return res
		}
	}
}

// ParseQuery splits the request URL into Context.Path and Context.Query.
// Path keeps its percent-encoding, so an escaped "/" stays inside its segment.
// Malformed query pairs are skipped.
func ParseQuery() Decorator {
	return func(next Handler) Handler {
		return func(c *Context) Result {
			res := next(c)
			if !res.OK() {
				return res
			}

			c.Path = "/"
			c.Query = make(url.Values)
			if u := c.r.URL; u != nil {
				if p := u.EscapedPath(); p != "" {
					c.Path = p
				}

				// NOTE: ParseQuery returns what it could parse alongside the first error
				c.Query, _ = url.ParseQuery(u.RawQuery)
			}

			if err := c.Advance(QueryParsed); err != nil {
				return Unexpected(err)
			}

			return res
		}
	}
}

// ParseBody decodes Context.Data into Context.Body according to the request's Content-Type,
// using the codecs in t. A nil t uses payload.DefaultTable.
//
// Content types without a codec leave the body absent.
// A body its codec rejects fails the request with ErrMalformedBody.
func ParseBody(t payload.Table) Decorator {
	if t == nil {
		t = payload.DefaultTable()
	}

	return func(next Handler) Handler {
		return func(c *Context) Result {
			res := next(c)
			if !res.OK() {
				return res
			}

			c.ContentType = payload.ParseMediaType(c.r.Header.Get("Content-Type"))
			body, err := t.Decode(c.ContentType, c.Data)
			if err != nil {
				return Unexpected(err)
			}

			c.Body = body
			if err := c.Advance(BodyParsed); err != nil {
				return Unexpected(err)
			}

			return res
		}
	}
}
