package handlers

import (
	"net/http"

	"github.com/chepyr/task-tracker-api/internal/logging"
)

// Health reports whether the database answers a ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	if h.DB != nil {
		if err := h.DB.Ping(ctx); err != nil {
			logging.FromContext(r.Context()).WithError(err).Warn("health check failed")
			sendJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
