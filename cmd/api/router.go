package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"

	"github.com/mvandrade/loanlens/pkg/middleware"
	"github.com/mvandrade/loanlens/pkg/observability"
)

// SetupRouter configures all routes and returns the HTTP handler
func SetupRouter(deps *Dependencies) http.Handler {
	r := mux.NewRouter()

	tracer := otel.GetTracerProvider().Tracer("loanlens/api")

	r.Use(mux.MiddlewareFunc(middleware.RequestID("X-Request-ID")))
	r.Use(mux.MiddlewareFunc(middleware.Tracing(tracer)))
	r.Use(mux.MiddlewareFunc(middleware.Recovery(deps.Logger)))
	r.Use(mux.MiddlewareFunc(middleware.Logging(deps.Logger)))
	if deps.Config.Server.RateLimitPerSecond > 0 && deps.Config.Server.RateLimitBurst > 0 {
		limiter := rate.NewLimiter(
			rate.Limit(float64(deps.Config.Server.RateLimitPerSecond)),
			deps.Config.Server.RateLimitBurst,
		)
		r.Use(mux.MiddlewareFunc(middleware.RateLimit(limiter)))
	}
	r.Use(mux.MiddlewareFunc(observability.MetricsMiddleware))

	registerAPIRoutes(r, deps)
	registerUtilityRoutes(r, deps)

	// Browser clients upload files directly, so CORS wraps everything.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept-Encoding", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           7200, // Cache preflights for 2 hours
	})

	return corsHandler.Handler(r)
}

// registerAPIRoutes registers the portfolio and workflow routes
func registerAPIRoutes(r *mux.Router, deps *Dependencies) {
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/portfolio/analyze", deps.PortfolioHandler.Analyze).Methods(http.MethodPost)
	v1.HandleFunc("/portfolio/export", deps.PortfolioHandler.ExportTable).Methods(http.MethodPost)

	v1.HandleFunc("/workflow/import", deps.WorkflowHandler.Import).Methods(http.MethodPost)
	v1.HandleFunc("/workflow/run", deps.WorkflowHandler.Run).Methods(http.MethodPost)
	v1.HandleFunc("/workflow/export", deps.WorkflowHandler.Export).Methods(http.MethodPost)

	deps.Logger.Info("API routes configured", "prefix", "/v1")
}

// registerUtilityRoutes registers health check, metrics, and other utility routes
func registerUtilityRoutes(r *mux.Router, deps *Dependencies) {
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			deps.Logger.Error("failed to write health response", "error", err)
		}
	}).Methods(http.MethodGet)
	deps.Logger.Info("registered health check", "path", "/health")

	r.HandleFunc("/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ready")); err != nil {
			deps.Logger.Error("failed to write readiness response", "error", err)
		}
	}).Methods(http.MethodGet)
	deps.Logger.Info("registered readiness check", "path", "/ready")

	if deps.Config.Observability.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
		deps.Logger.Info("registered metrics endpoint", "path", "/metrics")
	}
}
