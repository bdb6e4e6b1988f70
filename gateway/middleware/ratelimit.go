package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"juntell/careers-gateway/gateway/middleware/ratelimiter"
)

const tooManyRequestsMessage = "too many requests, please retry later"

type tooManyRequestsBody struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter"`
}

// RateLimit rejects requests over policy with 429 and a Retry-After header.
func RateLimit(limiter *ratelimiter.Limiter, policy ratelimiter.Policy, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := ClientIdentifier(r)

			result := limiter.Check(r.Context(), identifier, policy)
			if !result.Allowed {
				logger.Info("rate limited",
					zap.String("identifier", identifier),
					zap.String("path", r.URL.Path),
					zap.Int("retry_after", result.RetryAfter))

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(tooManyRequestsBody{
					Error:      tooManyRequestsMessage,
					RetryAfter: result.RetryAfter,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
