package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"juntell/careers-gateway/gateway"
	"juntell/careers-gateway/gateway/middleware/ratelimiter"
)

type RouteOptions struct {
	Policy     ratelimiter.Policy
	AdminToken string
	Gatherer   prometheus.Gatherer
}

// Register mounts every route. Public submission and file endpoints share
// one rate limit bucket per client; job listings are not limited. Admin
// routes exist only when an admin token is configured.
func (h *Handlers) Register(router *gateway.Router, opts RouteOptions) {
	router.HandleFunc(http.MethodGet, "/health", HealthHandler)

	if opts.Gatherer != nil {
		router.Mount("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.HandleFunc(http.MethodGet, "/api/careers", h.ListJobs)
	router.HandleFunc(http.MethodGet, "/api/careers/{id}", h.GetJob)

	limited := router.Limited(h.limiter, opts.Policy)
	limited.Post("/api/applications", h.SubmitApplication)
	limited.Post("/api/upload-url", h.UploadURL)
	limited.Get("/api/file-url", h.FileURL)

	if opts.AdminToken == "" {
		return
	}
	admin := chi.NewRouter()
	admin.Use(RequireAdmin(opts.AdminToken))
	admin.Get("/ratelimit", h.ListRateLimits)
	admin.Delete("/ratelimit", h.ClearRateLimits)
	admin.Delete("/ratelimit/{identifier}", h.ResetRateLimit)
	admin.Get("/applications", h.ListApplications)
	admin.Get("/applications/{id}", h.GetApplication)
	admin.Post("/jobs", h.CreateJob)
	router.Mount("/admin", admin)
}
