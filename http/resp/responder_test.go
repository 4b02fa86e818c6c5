package resp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/http/pipeline"
	"github.com/xy-planning-network/trellis/http/resp"
	"github.com/xy-planning-network/trellis/logger"
)

func newCtx(r *http.Request) *pipeline.Context {
	if r == nil {
		r = httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	}

	return pipeline.NewContext(httptest.NewRecorder(), r)
}

func newResponder(b *bytes.Buffer, opts ...resp.ResponderOptFn) *resp.Responder {
	l := logger.NewTrellisLogger(logger.WithLogger(log.New(b, "", 0)))
	return resp.NewResponder(append([]resp.ResponderOptFn{resp.WithLogger(l)}, opts...)...)
}

// asMap serializes b as JSON and parses it back into a plain map.
func asMap(t *testing.T, b payload.Body) map[string]any {
	t.Helper()
	data, err := payload.JSONCodec.Encode(b)
	require.Nil(t, err)

	actual := make(map[string]any)
	require.Nil(t, json.Unmarshal(data, &actual))
	return actual
}

func TestResponderDo(t *testing.T) {
	t.Run("Cancelled", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		ctx, cancel := context.WithCancel(r.Context())
		c := newCtx(r.Clone(ctx))
		cancel()

		d := newResponder(new(bytes.Buffer))

		// Act
		res := d.Json(c, resp.Code(http.StatusTeapot))

		// Assert
		require.ErrorIs(t, res.Err(), resp.ErrDone)
		require.Zero(t, c.Status)
	})

	t.Run("Out-Of-Order", func(t *testing.T) {
		// Arrange
		c := newCtx(nil)
		d := newResponder(new(bytes.Buffer))

		// Act
		res := d.Redirect(c, resp.Param("a", "b"), resp.Url("/next"))

		// Assert
		require.True(t, res.OK())
		require.Equal(t, "/next?a=b", c.Header().Get("Location"))
	})

	t.Run("Never-Succeeds", func(t *testing.T) {
		// Arrange
		c := newCtx(nil)
		d := newResponder(new(bytes.Buffer))

		// Act
		res := d.Json(c, resp.Header("", "x"), resp.ContentType(""))

		// Assert
		require.ErrorIs(t, res.Err(), resp.ErrInvalid)
	})
}

func TestResponderJson(t *testing.T) {
	tcs := []struct {
		name     string
		opts     []resp.Fn
		status   int
		domain   bool
		expected map[string]any
	}{
		{"no-data", nil, 0, false, map[string]any{}},
		{"data", []resp.Fn{resp.Data(map[string]any{"a": 1})}, 0, false, map[string]any{"data": map[string]any{"a": float64(1)}}},
		{"created", []resp.Fn{resp.Code(http.StatusCreated), resp.Data("ok")}, http.StatusCreated, false, map[string]any{"data": "ok"}},
		{"bad-request", []resp.Fn{resp.Code(http.StatusBadRequest), resp.Data("no")}, http.StatusBadRequest, true, map[string]any{"data": "no"}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			c := newCtx(nil)
			d := newResponder(new(bytes.Buffer))

			// Act
			res := d.Json(c, tc.opts...)

			// Assert
			require.Equal(t, tc.domain, res.IsDomainFailure())
			if tc.domain {
				require.Equal(t, tc.status, res.Status())
			} else {
				require.True(t, res.OK())
				require.Equal(t, tc.status, c.Status)
			}

			require.Equal(t, "application/json; charset=UTF-8", c.Header().Get("Content-Type"))
			require.Equal(t, tc.expected, asMap(t, res.Body()))
		})
	}
}

func TestResponderJsonCtxKeys(t *testing.T) {
	// Arrange
	c := newCtx(nil)
	c.SetValue(trellis.RequestIDKey, "abc")
	d := newResponder(new(bytes.Buffer), resp.WithCtxKeys(trellis.RequestIDKey, trellis.IpAddrKey))

	// Act
	res := d.Json(c, resp.Data(1))

	// Assert
	expected := map[string]any{
		"data": float64(1),
		"meta": map[string]any{string(trellis.RequestIDKey): "abc"},
	}
	require.Equal(t, expected, asMap(t, res.Body()))
}

type stringer struct{}

func (stringer) String() string { return "stringer" }

func TestResponderText(t *testing.T) {
	tcs := []struct {
		name     string
		data     any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "hi", "hi"},
		{"bytes", []byte("hi"), "hi"},
		{"error", errors.New("oops"), "oops"},
		{"stringer", stringer{}, "stringer"},
		{"int", 42, "42"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			c := newCtx(nil)
			d := newResponder(new(bytes.Buffer))

			// Act
			res := d.Text(c, resp.Data(tc.data))

			// Assert
			require.True(t, res.OK())
			actual, ok := res.Body().Str()
			require.True(t, ok)
			require.Equal(t, tc.expected, actual)
			require.Equal(t, "text/plain; charset=utf-8", c.Header().Get("Content-Type"))
		})
	}
}

func TestResponderRaw(t *testing.T) {
	// Arrange
	c := newCtx(nil)
	d := newResponder(new(bytes.Buffer))

	// Act
	res := d.Raw(c, []byte{0x89, 'P', 'N', 'G'}, resp.ContentType("image/png"), resp.Header("Cache-Control", "no-store"))

	// Assert
	require.True(t, res.OK())
	actual, ok := res.Body().Bytes()
	require.True(t, ok)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, actual)
	require.Equal(t, "image/png", c.Header().Get("Content-Type"))
	require.Equal(t, "no-store", c.Header().Get("Cache-Control"))
}

func TestResponderEmpty(t *testing.T) {
	c := newCtx(nil)
	res := newResponder(new(bytes.Buffer)).Empty(c)

	require.True(t, res.OK())
	require.True(t, res.Body().IsNone())
	require.Equal(t, http.StatusNoContent, c.Status)
}

func TestResponderRedirect(t *testing.T) {
	tcs := []struct {
		name     string
		opts     []resp.Fn
		code     int
		location string
	}{
		{"to-root", nil, http.StatusFound, "https://example.com/root"},
		{"url", []resp.Fn{resp.Url("/login")}, http.StatusFound, "/login"},
		{"keeps-3xx", []resp.Fn{resp.Url("/login"), resp.Code(http.StatusMovedPermanently)}, http.StatusMovedPermanently, "/login"},
		{"4xx", []resp.Fn{resp.Url("/login"), resp.Code(http.StatusUnauthorized)}, http.StatusSeeOther, "/login"},
		{"5xx", []resp.Fn{resp.Url("/login"), resp.Code(http.StatusInternalServerError)}, http.StatusTemporaryRedirect, "/login"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			c := newCtx(nil)
			d := newResponder(new(bytes.Buffer), resp.WithRootUrl("https://example.com/root"))

			// Act
			res := d.Redirect(c, tc.opts...)

			// Assert
			require.True(t, res.OK())
			require.Equal(t, tc.code, c.Status)
			require.Equal(t, tc.location, c.Header().Get("Location"))
		})
	}

	t.Run("No-Url", func(t *testing.T) {
		res := newResponder(new(bytes.Buffer)).Redirect(newCtx(nil))
		require.ErrorIs(t, res.Err(), resp.ErrMissingData)
	})
}

func TestResponderErr(t *testing.T) {
	tcs := []struct {
		name   string
		opts   []resp.Fn
		status int
	}{
		{"default", nil, http.StatusInternalServerError},
		{"code", []resp.Fn{resp.Code(http.StatusConflict)}, http.StatusConflict},
		{"not-an-error-code", []resp.Fn{resp.Code(http.StatusOK)}, http.StatusInternalServerError},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			c := newCtx(nil)
			d := newResponder(b)

			// Act
			res := d.Err(c, errors.New("oops"), tc.opts...)

			// Assert
			require.True(t, res.IsDomainFailure())
			require.Equal(t, tc.status, res.Status())
			actual, _ := res.Body().Str()
			require.Equal(t, "oops", actual)
			require.Contains(t, b.String(), "oops")
		})
	}
}

func TestResponderWarn(t *testing.T) {
	b := new(bytes.Buffer)
	res := newResponder(b).Empty(newCtx(nil), resp.Warn("careful"))

	require.True(t, res.OK())
	require.Contains(t, b.String(), "careful")
}
