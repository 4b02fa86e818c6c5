/*
Package pipeline composes request handling out of Decorators.

A Decorator wraps the next Handler. Compose folds a list of them around a terminal Handler,
so the first Decorator listed is entered first and finishes last:

	h, err := pipeline.Compose(pipeline.Noop,
		pipeline.Transmit(l),
		pipeline.Serialize(nil),
		pipeline.InferContentType(),
		pipeline.ErrorBoundary(),
		routes,
		pipeline.ParseBody(nil),
		pipeline.ParseQuery(),
		pipeline.ReceiveBody(0),
	)

Every Decorator in trellis calls next first and does its own work afterwards.
Reading the list bottom up therefore gives the order work happens in:
the body is received, the query and body parsed, the routes dispatched,
failures translated, the content type inferred, the payload serialized
and finally transmitted.

Each request gets one Context, which records how far it has progressed as a State.
States only move forward.
*/
package pipeline
