/*
Package resp builds the pipeline.Result an endpoint returns,
with application-wide configuration kept in a Responder.

A Responder produces these forms of response:

  - Json, a JSON envelope around data
  - Text, plain text
  - Raw, bytes of any content type
  - Empty, no body at all
  - Redirect, a 3xx pointing elsewhere
  - Err, a failure logged and reported to the client

Each accepts Fn options adjusting the response, such as Code, Data or Header.
Responses with a status of 400 or above are domain failures;
everything else succeeds.
*/
package resp
