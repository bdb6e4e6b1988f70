// Package gateway wires the public HTTP surface: a chi router with the
// shared middleware stack and per-route rate limiting.
package gateway

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"juntell/careers-gateway/gateway/middleware"
	"juntell/careers-gateway/gateway/middleware/ratelimiter"
)

type Options struct {
	Logger         *zap.Logger
	AllowedOrigins []string
}

type Router struct {
	mux    *chi.Mux
	logger *zap.Logger
}

func NewRouter(opts Options) *Router {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(requestLogger(logger))
	mux.Use(chimw.Recoverer)

	if len(opts.AllowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"Retry-After"},
			MaxAge:         300,
		}))
	}

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"error":"method not allowed"}`))
	})

	return &Router{mux: mux, logger: logger}
}

func (rt *Router) HandleFunc(method, pattern string, handler http.HandlerFunc) {
	rt.mux.MethodFunc(method, pattern, handler)
}

// Limited returns a sub-router whose routes are all subject to policy.
func (rt *Router) Limited(limiter *ratelimiter.Limiter, policy ratelimiter.Policy) chi.Router {
	return rt.mux.With(middleware.RateLimit(limiter, policy, rt.logger))
}

func (rt *Router) Mount(pattern string, h http.Handler) {
	rt.mux.Mount(pattern, h)
}

func (rt *Router) Handler() http.Handler {
	return rt.mux
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimw.GetReqID(r.Context())))
		})
	}
}
