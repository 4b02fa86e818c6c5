/*
The middleware package provides a set of basic trellis decorators
and the net/http adapters that wrap an application from the outside.

The available decorators are:
- ForceHTTPS
- InjectIPAddress
- LogRequest
- RateLimit
- ReportUnexpected
- RequestID
- RequireJWT

The available adapters are:
- CORS
- ReportPanic

A decorator does its work after everything it wraps is done,
so each one should be registered with its own call to Decorate, in the order it needs to run.
Routes come last; ReportUnexpected comes after the routes it watches.

The same holds inside a route: Compose makes the first decorator listed the outermost,
so it does its work last. Guards such as RequireJWT are listed after the endpoint they guard:

	api.Post("/trails", pipeline.Endpoint(create), middleware.RequireJWT(key, nil))

Due to the amount of configuration required, middleware does not provide a default middleware chain.
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	ds := []pipeline.Decorator{
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.RateLimit(vs),
		middleware.LogRequest(log),
		router.DecoratorOr(notFound),
		middleware.ReportUnexpected(),
	}
	for _, d := range ds {
		a.Decorate(d)
	}

	h := middleware.Chain(a, middleware.ReportPanic(env), middleware.CORS(origin))
*/
package middleware
