package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"category-catalog-service/internal/store"
)

// HealthPath is where the HTTP health check is served.
const HealthPath = "/api/v1/healthz"

// HealthHandler reports liveness plus the state of the product source.
// A nil pinger means the source is in-memory and always healthy.
func HealthHandler(serviceName string, pinger store.Pinger, logger *zap.Logger) http.HandlerFunc {
	h := &HTTPHandler{logger: logger}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		sourceStatus := "healthy"
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				sourceStatus = "unhealthy"
				h.logger.Warn("health check product source ping failed", zap.Error(err))
			}
		}

		// Always 200; the payload carries the detailed status.
		h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":         "healthy",
			"serviceName":    serviceName,
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
			"product_source": sourceStatus,
		})
	}
}
