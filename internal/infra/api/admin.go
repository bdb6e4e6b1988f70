package api

import (
	"crypto/subtle"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RequireAdmin checks for "Authorization: Bearer <token>".
func RequireAdmin(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type rateLimitRecord struct {
	Identifier string    `json:"identifier"`
	Count      int       `json:"count"`
	ResetTime  time.Time `json:"resetTime"`
}

// ListRateLimits handles GET /admin/ratelimit.
func (h *Handlers) ListRateLimits(w http.ResponseWriter, r *http.Request) {
	records, err := h.limiter.List(r.Context())
	if err != nil {
		h.logger.Error("list rate limits failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list rate limits")
		return
	}

	out := make([]rateLimitRecord, 0, len(records))
	for id, rec := range records {
		out = append(out, rateLimitRecord{Identifier: id, Count: rec.Count, ResetTime: rec.ResetTime})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })

	writeJSON(w, http.StatusOK, map[string]any{"records": out})
}

// ResetRateLimit handles DELETE /admin/ratelimit/{identifier}.
func (h *Handlers) ResetRateLimit(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")
	if err := h.limiter.Reset(r.Context(), identifier); err != nil {
		h.logger.Error("reset rate limit failed", zap.String("identifier", identifier), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to reset rate limit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearRateLimits handles DELETE /admin/ratelimit.
func (h *Handlers) ClearRateLimits(w http.ResponseWriter, r *http.Request) {
	if err := h.limiter.Clear(r.Context()); err != nil {
		h.logger.Error("clear rate limits failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to clear rate limits")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
