package pipeline

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
)

// DefaultDomainStatus is the status a domain failure carries when none was given.
// Seeing it in a response points at a misconfigured failure site.
const DefaultDomainStatus = 600

type outcome int

const (
	succeeded outcome = iota
	failed
	unexpected
)

// A Result is what invoking a Handler produces: exactly one of
// a success carrying a body, a domain failure carrying a status and body,
// or an unexpected failure carrying its cause.
//
// The zero Result is a success with an absent body.
type Result struct {
	outcome outcome
	status  int
	body    payload.Body
	err     error
}

// Success constructs a successful Result.
func Success(b payload.Body) Result {
	return Result{outcome: succeeded, body: b}
}

// Fail constructs a domain failure: stop normal handling and respond with status and b instead.
// A zero status becomes DefaultDomainStatus.
func Fail(status int, b payload.Body) Result {
	if status == 0 {
		status = DefaultDomainStatus
	}

	return Result{outcome: failed, status: status, body: b}
}

// Unexpected constructs a Result for a failure nobody planned for.
// A nil err is replaced by ErrUnhandled.
func Unexpected(err error) Result {
	if err == nil {
		err = trellis.ErrUnhandled
	}

	return Result{outcome: unexpected, err: err}
}

// FromError converts a Go error into a Result.
// nil is a success with an absent body;
// an error wrapping a *DomainError is a domain failure;
// anything else is unexpected.
func FromError(err error) Result {
	if err == nil {
		return Success(payload.None())
	}

	var de *DomainError
	if errors.As(err, &de) {
		return Fail(de.Status, de.Body)
	}

	return Unexpected(err)
}

// OK reports whether r is a success.
func (r Result) OK() bool { return r.outcome == succeeded }

// IsDomainFailure reports whether r is a domain failure.
func (r Result) IsDomainFailure() bool { return r.outcome == failed }

// IsUnexpected reports whether r is an unexpected failure.
func (r Result) IsUnexpected() bool { return r.outcome == unexpected }

// Body is the body of a success or a domain failure.
func (r Result) Body() payload.Body { return r.body }

// Status is the status of a domain failure, or 0.
func (r Result) Status() int { return r.status }

// Err describes why r is not a success.
// A domain failure is reported as a *DomainError.
func (r Result) Err() error {
	switch r.outcome {
	case failed:
		return &DomainError{Status: r.status, Body: r.body}
	case unexpected:
		return r.err
	default:
		return nil
	}
}

// A DomainError lets code written with error returns signal a domain failure.
// See FromError and Handle.
type DomainError struct {
	Status int
	Body   payload.Body
}

// NewDomainError constructs a *DomainError.
func NewDomainError(status int, b payload.Body) *DomainError {
	return &DomainError{Status: status, Body: b}
}

func (e *DomainError) Error() string {
	status := e.Status
	if status == 0 {
		status = DefaultDomainStatus
	}

	return fmt.Sprintf("domain error: status %d", status)
}
