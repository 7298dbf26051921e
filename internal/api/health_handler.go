package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// healthPingTimeout bounds the store ping made by the health check.
const healthPingTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHealthHandler returns a handler for GET /health. It answers 200 when
// the store responds to a ping and 503 otherwise.
func NewHealthHandler(store Pinger, base *slog.Logger) http.HandlerFunc {
	if base == nil {
		base = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.FromContextOrDefault(r.Context(), base).Warn("health check failed",
				slog.String("error", redact.Error(err)))
			shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, HealthResponse{
				Status: "unavailable",
				Store:  "unreachable",
			})
			return
		}

		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", Store: "ok"})
	}
}
