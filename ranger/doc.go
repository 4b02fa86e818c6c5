/*
Package ranger initializes and manages a trellis app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New].

Routes are registered on the [Ranger] itself, which embeds a [*router.Router]:

	rng, err := ranger.New()
	if err != nil {
		log.Fatal(err)
	}

	rng.Get("/trails/:name", pipeline.Endpoint(showTrail))

	if err := rng.Guide(); err != nil {
		log.Fatal(err)
	}

[*Ranger.Guide] begins a trellis app's web server.
By default, [*Ranger.Guide] listens on [DefaultHost]:[DefaultPort] (localhost:3000),
assuming either a reverse proxy proxies requests
or only a client application makes direct requests to the trellis web server.

Stop that web server with [*Ranger.Shutdown],
cancel the context.Context provided with [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a trellis app through environment variables
and by passing a [RangerOption] to [New]. Options win over environment variables.

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - ASSETS_DIR: a directory of files to serve as static assets; default: none
  - ASSETS_URL: the URL path prefix assets are served under; default: /assets/
  - BASE_URL: the base URL the application runs on; default: http://HOST+PORT
  - CORS_ORIGIN: the origin allowed to make cross-origin requests; default: none
  - ENVIRONMENT: the environment the application is running in; cf. [trellis.Environment]
  - FORCE_HTTPS: redirect plain HTTP requests to HTTPS outside of development; default: false
  - HOST: the host the application is running on; default: localhost
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MAINTENANCE_MODE: answer every request but health checks with 503; default: false
  - MAX_BODY_BYTES: the largest request body accepted; default: 10MiB
  - PORT: the port the application should listen on; default: :3000
  - RATE_LIMIT: limit requests per client IP address; default: true
  - SENTRY_DSN: report errors and panics to Sentry; default: none
  - SERVER_IDLE_TIMEOUT: the timeout, as understood by [time.ParseDuration], for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout, as understood by [time.ParseDuration], for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout, as understood by [time.ParseDuration], for writing HTTP responses; default: 5s
  - SHUTDOWN_TIMEOUT: how long, as understood by [time.ParseDuration], Shutdown waits on open requests; default: 5s
*/
package ranger
