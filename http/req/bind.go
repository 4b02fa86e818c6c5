package req

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/http/pipeline"
)

// Bind adapts fn into an endpoint receiving a *T filled in and validated by p.ParseContext.
// A request that cannot fill a T never reaches fn: see Failure.
func Bind[T any](p *Parser, fn func(c *pipeline.Context, in *T) pipeline.Result) pipeline.Decorator {
	if p == nil || fn == nil {
		return nil
	}

	return pipeline.Endpoint(func(c *pipeline.Context) pipeline.Result {
		in := new(T)
		if err := p.ParseContext(c, in); err != nil {
			return Failure(err)
		}

		return fn(c, in)
	})
}

// Failure converts an error returned by a Parser into a Result.
//
// ValidationErrors become a 422 domain failure carrying them,
// other ErrNotValid and ErrMalformedBody errors a 400,
// and anything else an unexpected failure.
func Failure(err error) pipeline.Result {
	var ves ValidationErrors
	switch {
	case err == nil:
		return pipeline.Success(payload.None())
	case errors.As(err, &ves):
		return pipeline.Fail(http.StatusUnprocessableEntity, payload.Value(ves))
	case errors.Is(err, trellis.ErrNotValid), errors.Is(err, trellis.ErrMalformedBody):
		return pipeline.Fail(http.StatusBadRequest, payload.Value(map[string]string{"error": err.Error()}))
	default:
		return pipeline.Unexpected(err)
	}
}
