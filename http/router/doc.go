/*
Package router matches a request's method and path against registered route templates
and dispatches it to the decorators registered for the first match.

A template is split on '/'. ":name" segments capture a parameter, a "*" segment captures
the rest of the path and every other segment is matched literally, ignoring case:

	r := router.New()
	r.Get("/user/:userName", pipeline.Endpoint(showUser))
	r.Get("/assets/*", pipeline.Endpoint(serveAsset))

Routes are tried in the order they were registered and the first match wins,
regardless of how specific later routes are.

Routers compose by mounting: every route of the mounted Router is copied,
in order, under a prefix.

	api := router.New()
	api.Get("/ping", pipeline.Endpoint(pong))
	r.Mount("/v1", api) // GET /v1/ping

A Router plugs into a pipeline through Decorator or DecoratorOr.
Once it has dispatched a request, it accepts no more routes.
*/
package router
