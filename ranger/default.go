package ranger

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/middleware"
	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/http/pipeline"
	"github.com/xy-planning-network/trellis/http/resp"
	"github.com/xy-planning-network/trellis/logger"
)

// defaultOpts reads the configuration environment variables.
// Cf. the package documentation.
func defaultOpts() []RangerOption {
	opts := []RangerOption{
		WithEnv(""),
		WithMaxBodyBytes(trellis.EnvVarOrInt64(maxBodyBytesEnvVar, DefaultMaxBodyBytes)),
		WithForceHTTPS(trellis.EnvVarOrBool(forceHTTPSEnvVar, false)),
		WithCORSOrigin(os.Getenv(corsOriginEnvVar)),
		WithAssets(os.Getenv(assetsDirEnvVar), trellis.EnvVarOrString(assetsURLEnvVar, DefaultAssetsURL)),
		WithMaintenanceMode(trellis.EnvVarOrBool(maintModeEnvVar, false)),
	}

	if trellis.EnvVarOrBool(rateLimitEnvVar, true) {
		opts = append(opts, WithRateLimit(middleware.NewVisitors()))
	}

	return opts
}

// defaultLogger constructs a logger.Logger at the LOG_LEVEL level, INFO if unset.
// When SENTRY_DSN is set, errors are also reported to Sentry.
func defaultLogger(env trellis.Environment) logger.Logger {
	lvl := logger.NewLogLevel(strings.ToUpper(trellis.EnvVarOrString(logLevelEnvVar, "INFO")))
	if lvl == logger.LogLevelUnk {
		lvl = logger.LogLevelInfo
	}

	l := logger.New(logger.WithEnv(env.String()), logger.WithLevel(lvl))
	l.Debug("setting up app logger", nil)

	return l
}

// defaultURL reads BASE_URL or else builds a URL from HOST and PORT.
func defaultURL() (*url.URL, error) {
	raw := os.Getenv(BaseURLEnvVar)
	if raw == "" {
		raw = "http://" + trellis.EnvVarOrString(hostEnvVar, DefaultHost) + port()
	}

	return parseBaseURL(raw)
}

// defaultServer constructs an *http.Server listening on HOST and PORT.
func defaultServer() *http.Server {
	return &http.Server{
		Addr:         trellis.EnvVarOrString(hostEnvVar, DefaultHost) + port(),
		ReadTimeout:  trellis.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		IdleTimeout:  trellis.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		WriteTimeout: trellis.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}

// defaultResponder configures the *resp.Responder exposed on a *Ranger.
func defaultResponder(l logger.Logger, u *url.URL) *resp.Responder {
	return resp.NewResponder(
		resp.WithCtxKeys(trellis.RequestIDKey),
		resp.WithLogger(l),
		resp.WithRootUrl(u.String()),
	)
}

// defaultNotFound answers 404 Not Found with a JSON error.
func defaultNotFound(*pipeline.Context) pipeline.Result {
	return pipeline.Fail(http.StatusNotFound, payload.Value(map[string]string{"error": "not found"}))
}

// port reads PORT, accepting it with or without the leading colon.
func port() string {
	p := trellis.EnvVarOrString(portEnvVar, DefaultPort)
	if !strings.HasPrefix(p, ":") {
		p = ":" + p
	}

	return p
}
