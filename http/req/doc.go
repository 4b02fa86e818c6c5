/*
Package req provides ergonomics for handling an HTTP request.

Package req provides a helper for parsing the payloads of a request into application structs.
It supports parsed request bodies, query parameters and path parameters.
In each case, package req expects to parse payloads into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct:
"json" for bodies, "schema" for query parameters and form bodies, "path" for path parameters.
Second, for validating the payload's data meets requirements, with "validate".

By leveraging req, handlers can get data out of an HTTP request into its application specific structs.
Notably, the parade of errors that may propagate from such a task
are translated to trellis sentinel errors in order to provide a consistent interface
for issues that arise across encoding types.
Bind goes one step further and turns those errors into responses.
*/
package req
