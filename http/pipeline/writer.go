package pipeline

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/trellis"
)

// A channel is the response side of a request.
// It records what was written to it and refuses writes once closed.
//
// A channel implements http.ResponseWriter.
type channel struct {
	http.ResponseWriter
	status  int
	size    int
	written bool
	closes  int
}

var (
	_ http.ResponseWriter = (*channel)(nil)
	_ http.Flusher        = (*channel)(nil)
)

// Status returns the status written, or 0 if the header has not been written yet.
func (ch *channel) Status() int { return ch.status }

// Size returns the number of body bytes written.
func (ch *channel) Size() int { return ch.size }

// Written reports whether the header has been written.
func (ch *channel) Written() bool { return ch.written }

// Closed reports whether Close has been called.
func (ch *channel) Closed() bool { return ch.closes > 0 }

// WriteHeader writes status once. Later calls, or calls after Close, are ignored.
func (ch *channel) WriteHeader(status int) {
	if ch.written || ch.Closed() {
		return
	}

	ch.status = status
	ch.written = true
	ch.ResponseWriter.WriteHeader(status)
}

// Write writes b, writing a 200 header first if none was written.
func (ch *channel) Write(b []byte) (int, error) {
	if ch.Closed() {
		return 0, fmt.Errorf("%w: response already closed", trellis.ErrTransport)
	}

	if !ch.written {
		ch.WriteHeader(http.StatusOK)
	}

	n, err := ch.ResponseWriter.Write(b)
	ch.size += n
	if err != nil {
		return n, fmt.Errorf("%w: %s", trellis.ErrTransport, err)
	}

	return n, nil
}

// Flush sends buffered data to the client if the underlying writer supports it.
func (ch *channel) Flush() {
	if ch.Closed() {
		return
	}

	if f, ok := ch.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Close flushes and releases the channel. Only the first call has an effect.
func (ch *channel) Close() error {
	if ch.Closed() {
		return nil
	}

	ch.Flush()
	ch.closes++
	return nil
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (ch *channel) Unwrap() http.ResponseWriter { return ch.ResponseWriter }
