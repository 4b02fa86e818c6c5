package ranger

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/trellis/http/middleware"
	"github.com/xy-planning-network/trellis/logger"
)

// newHandler lays out what the web server serves.
//
//	/healthz      healthHandler
//	ASSETS_URL    files in ASSETS_DIR, if set
//	everything    the application, or MaintModeHandler in maintenance mode
func (r *Ranger) newHandler() http.Handler {
	m := mux.NewRouter()

	// NOTE: the application matches raw paths itself
	m.SkipClean(true)
	m.UseEncodedPath()

	m.Handle(HealthPath, healthHandler()).Methods(http.MethodGet, http.MethodHead)

	if r.assets.dir != "" {
		m.PathPrefix(r.assets.url).Handler(middleware.Chain(
			http.StripPrefix(r.assets.url, http.FileServer(http.Dir(r.assets.dir))),
			cacheControl(),
		))
	}

	var catchAll http.Handler = r.app
	if r.maint {
		catchAll = MaintModeHandler(r.l, "")
	}

	m.PathPrefix("/").Handler(catchAll)

	return middleware.Chain(m, middleware.ReportPanic(r.env), middleware.CORS(r.cors))
}

// healthHandler reports the web server is up.
func healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			w.Write([]byte("ok"))
		}
	})
}

// MaintModeHandler answers every request with 503 Service Unavailable,
// asking clients to retry after ten minutes.
// If msg is not empty it is the body of the response.
func MaintModeHandler(l logger.Logger, msg string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l != nil {
			l.Debug("maintenance mode: turning away "+r.URL.Path, nil)
		}

		w.Header().Set("Retry-After", maintRetryAfter)
		if msg != "" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		}

		w.WriteHeader(http.StatusServiceUnavailable)
		if msg != "" {
			w.Write([]byte(msg))
		}
	})
}

// cacheControl helps by adding a "Cache-Control" header to the response.
func cacheControl() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", assetCacheControl)
			handler.ServeHTTP(w, r)
		})
	}
}
