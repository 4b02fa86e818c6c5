/*
Package payload models message bodies and the codecs that move them on and off the wire.

A [Body] is one of four shapes: absent, binary, text or a structured value.
Handlers construct one with [None], [Binary], [Text] or [Value]
and the pipeline picks how to serialize it from the negotiated media type.

A [Table] maps media types to a [Codec].
[DefaultTable] recognizes:

	application/json, application/json-patch+json,
	application/vnd.api+json, application/csp-report  -> JSON
	text/plain, text/xml, application/xml             -> text
	application/x-www-form-urlencoded                 -> url.Values
	application/octet-stream                          -> bytes

Parameters such as charset are ignored in both directions.
Decoding an unknown media type leaves the body absent;
encoding to an unknown media type produces zero bytes.
*/
package payload
