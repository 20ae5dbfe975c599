package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/booking-dashboard/backend/internal/api/middleware"
	"github.com/booking-dashboard/backend/internal/storage"
)

// HealthCheck reports service liveness and database connectivity.
func HealthCheck(db *storage.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			middleware.WriteError(w, http.StatusServiceUnavailable, middleware.ErrInternalError, "Database unreachable")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
