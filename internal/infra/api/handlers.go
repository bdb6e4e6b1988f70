package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"juntell/careers-gateway/gateway/middleware/ratelimiter"
	"juntell/careers-gateway/internal/application"
	"juntell/careers-gateway/internal/careers"
	"juntell/careers-gateway/internal/storage"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	applications *application.Service
	jobs         *careers.Service
	files        *storage.Service
	limiter      *ratelimiter.Limiter
	logger       *zap.Logger
}

// NewHandlers builds the HTTP handlers. files may be nil when object
// storage is not configured; the file endpoints then answer 503.
func NewHandlers(applications *application.Service, jobs *careers.Service, files *storage.Service, limiter *ratelimiter.Limiter, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		applications: applications,
		jobs:         jobs,
		files:        files,
		limiter:      limiter,
		logger:       logger,
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

type errorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
