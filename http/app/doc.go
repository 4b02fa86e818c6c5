/*
Package app serves a trellis pipeline over net/http.

	r := router.New()
	r.Get("/user/:userName", pipeline.Endpoint(showUser))

	a := app.New(app.WithMaxBodyBytes(1 << 20))
	a.Decorate(middleware.RequestID())
	a.Decorate(r.DecoratorOr(notFound))

	http.ListenAndServe(":8080", a)

The pipeline is built once, on the first request or an explicit call to Build.
*/
package app
