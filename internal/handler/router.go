package handler

import (
	"net/http"

	"github.com/forgo/signup/api/internal/metrics"
	"github.com/forgo/signup/api/internal/middleware"
	"go.uber.org/zap"
)

// RouterConfig holds everything the HTTP surface is built from.
// Metrics, RateLimiter and StaticDir are optional. RateLimiter only guards
// the sign-up and unregister routes.
type RouterConfig struct {
	Activities     ActivityService
	Store          Pinger
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
	StaticDir      string
}

// NewRouter registers every route and wraps the mux in the middleware chain
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	activityHandler := NewActivityHandler(ActivityHandlerConfig{
		Service: cfg.Activities,
		Logger:  logger,
	})
	healthHandler := NewHealthHandler(cfg.Store)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)

	// Activities
	mux.HandleFunc("GET /activities", activityHandler.List)
	mux.HandleFunc("GET /activities/{activity}", activityHandler.Get)
	mux.Handle("POST /activities/{activity}/signup", rosterChange(cfg.RateLimiter, activityHandler.Signup))
	mux.Handle("DELETE /activities/{activity}/participants", rosterChange(cfg.RateLimiter, activityHandler.Unregister))

	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	if cfg.StaticDir != "" {
		mux.Handle("GET /{$}", RedirectToIndex())
		mux.Handle("GET /static/", StaticFiles(cfg.StaticDir))
	}

	chain := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.Compress,
	}
	if cfg.Metrics != nil {
		chain = append(chain, middleware.Metrics(cfg.Metrics))
	}

	return middleware.Chain(mux, chain...)
}

// rosterChange applies the per-client budget to routes that modify a roster.
// Reads and probes are never limited.
func rosterChange(limiter *middleware.RateLimiter, h http.HandlerFunc) http.Handler {
	if limiter == nil {
		return h
	}
	return middleware.RateLimit(limiter)(h)
}
