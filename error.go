package trellis

import "errors"

var (
	// ErrContractViolation marks a programming error made while composing a pipeline
	// or registering routes. It surfaces at setup, before any request is served.
	ErrContractViolation = errors.New("contract violation")

	// ErrTransport marks an I/O failure receiving or sending bytes.
	// It is always fatal to the request it occurred in and is never retried.
	ErrTransport = errors.New("transport error")

	// ErrMalformedBody marks an inbound body that could not be decoded
	// according to its declared content type.
	ErrMalformedBody = errors.New("malformed body")

	// ErrUnhandled marks any failure that is neither a domain failure
	// nor one of the other sentinels.
	ErrUnhandled = errors.New("unhandled error")

	// ErrUnserializable marks an outbound body whose shape the negotiated codec cannot encode.
	ErrUnserializable = errors.New("unserializable body")

	ErrBadConfig = errors.New("bad config")
	ErrNotExist  = errors.New("not exist")
	ErrNotValid  = errors.New("invalid")
)
