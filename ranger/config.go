package ranger

import "time"

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
	shutdownTimeoutEnvVar     = "SHUTDOWN_TIMEOUT"
	DefaultShutdownTimeout    = 5 * time.Second

	// Pipeline defaults
	maxBodyBytesEnvVar        = "MAX_BODY_BYTES"
	DefaultMaxBodyBytes int64 = 10 << 20
	forceHTTPSEnvVar          = "FORCE_HTTPS"
	rateLimitEnvVar           = "RATE_LIMIT"

	// Outer handler defaults
	HealthPath        = "/healthz"
	corsOriginEnvVar  = "CORS_ORIGIN"
	assetsDirEnvVar   = "ASSETS_DIR"
	assetsURLEnvVar   = "ASSETS_URL"
	DefaultAssetsURL  = "/assets/"
	maintModeEnvVar   = "MAINTENANCE_MODE"
	maintRetryAfter   = "600"
	assetCacheControl = "max-age=2592000" // 30 days
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort
