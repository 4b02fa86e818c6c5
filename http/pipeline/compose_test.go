package pipeline_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/http/pipeline"
)

func newCtx() *pipeline.Context {
	return pipeline.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func tracer(trace *[]string, name string) pipeline.Decorator {
	return func(next pipeline.Handler) pipeline.Handler {
		return func(c *pipeline.Context) pipeline.Result {
			*trace = append(*trace, name+" in")
			res := next(c)
			*trace = append(*trace, name+" out")
			return res
		}
	}
}

func TestCompose(t *testing.T) {
	// Arrange
	var trace []string
	terminal := func(c *pipeline.Context) pipeline.Result {
		trace = append(trace, "terminal")
		return pipeline.Success(payload.Text("done"))
	}

	// Act
	h, err := pipeline.Compose(terminal, tracer(&trace, "1"), tracer(&trace, "2"), tracer(&trace, "3"))
	require.Nil(t, err)
	res := h(newCtx())

	// Assert
	require.True(t, res.OK())
	actual, _ := res.Body().Str()
	require.Equal(t, "done", actual)
	expected := []string{"1 in", "2 in", "3 in", "terminal", "3 out", "2 out", "1 out"}
	require.Equal(t, expected, trace)
}

func TestComposeNoDecorators(t *testing.T) {
	// Act
	h, err := pipeline.Compose(nil)

	// Assert
	require.Nil(t, err)
	res := h(newCtx())
	require.True(t, res.OK())
	require.True(t, res.Body().IsNone())
}

func TestComposeNilDecorator(t *testing.T) {
	// Arrange
	var called int
	counting := func(next pipeline.Handler) pipeline.Handler {
		called++
		return next
	}

	// Act
	h, err := pipeline.Compose(pipeline.Noop, counting, nil, counting)

	// Assert
	require.Nil(t, h)
	require.ErrorIs(t, err, trellis.ErrContractViolation)
	require.Contains(t, err.Error(), "index 1")
	require.Zero(t, called)
}

func TestComposeNilHandler(t *testing.T) {
	// Arrange
	broken := func(pipeline.Handler) pipeline.Handler { return nil }

	// Act
	h, err := pipeline.Compose(pipeline.Noop, tracer(new([]string), "ok"), broken)

	// Assert
	require.Nil(t, h)
	require.ErrorIs(t, err, trellis.ErrContractViolation)
	require.Contains(t, err.Error(), "index 1")
}

func TestMustCompose(t *testing.T) {
	require.Panics(t, func() { pipeline.MustCompose(pipeline.Noop, nil) })
	require.NotPanics(t, func() { pipeline.MustCompose(pipeline.Noop) })
}

func TestEndpoint(t *testing.T) {
	failing := func(pipeline.Handler) pipeline.Handler {
		return func(*pipeline.Context) pipeline.Result {
			return pipeline.Fail(http.StatusTeapot, payload.None())
		}
	}

	for _, tc := range []struct {
		name   string
		inner  []pipeline.Decorator
		ran    bool
		status int
	}{
		{"runs-after-success", nil, true, 0},
		{"skipped-after-failure", []pipeline.Decorator{failing}, false, http.StatusTeapot},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var ran bool
			ep := pipeline.Endpoint(func(*pipeline.Context) pipeline.Result {
				ran = true
				return pipeline.Success(payload.Text("hi"))
			})

			// Act
			res := pipeline.MustCompose(pipeline.Noop, append([]pipeline.Decorator{ep}, tc.inner...)...)(newCtx())

			// Assert
			require.Equal(t, tc.ran, ran)
			require.Equal(t, tc.status, res.Status())
		})
	}
}

func TestEndpointNil(t *testing.T) {
	require.Nil(t, pipeline.Endpoint(nil))
	require.Nil(t, pipeline.Handle(nil))

	_, err := pipeline.Compose(pipeline.Noop, pipeline.Endpoint(nil))
	require.ErrorIs(t, err, trellis.ErrContractViolation)
}

func TestHandle(t *testing.T) {
	for _, tc := range []struct {
		name       string
		err        error
		ok         bool
		domain     bool
		unexpected bool
	}{
		{"success", nil, true, false, false},
		{"domain", fmt.Errorf("wrapped: %w", pipeline.NewDomainError(http.StatusNotFound, payload.None())), false, true, false},
		{"unexpected", errors.New("boom"), false, false, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := pipeline.Handle(func(*pipeline.Context) (payload.Body, error) {
				return payload.Value(1), tc.err
			})

			// Act
			res := pipeline.MustCompose(pipeline.Noop, d)(newCtx())

			// Assert
			require.Equal(t, tc.ok, res.OK())
			require.Equal(t, tc.domain, res.IsDomainFailure())
			require.Equal(t, tc.unexpected, res.IsUnexpected())
		})
	}
}
