package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/booking-dashboard/backend/internal/api/middleware"
	"github.com/booking-dashboard/backend/internal/schedule"
	"github.com/booking-dashboard/backend/internal/stats"
)

// GetStats returns the authenticated owner's reservation aggregates grouped
// by the requested period (day, month or year; month when omitted).
func GetStats(source schedule.DataSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := stats.ParsePeriod(r.URL.Query().Get("period"))
		if errors.Is(err, stats.ErrInvalidPeriod) {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid period. Use: day, month or year")
			return
		}

		buckets, err := source.Stats(r.Context(), middleware.Owner(r), period, time.Now().UTC())
		if err != nil {
			log.WithError(err).Error("Failed to compute stats")
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to compute stats")
			return
		}

		if buckets == nil {
			buckets = []stats.Bucket{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(buckets)
	}
}

// GetStatsSummary rolls the owner's monthly buckets into dashboard totals:
// total hours, reservation count, average duration and the busiest month.
func GetStatsSummary(source schedule.DataSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buckets, err := source.Stats(r.Context(), middleware.Owner(r), stats.PeriodMonth, time.Now().UTC())
		if err != nil {
			log.WithError(err).Error("Failed to compute stats summary")
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to compute stats summary")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats.Summarize(buckets))
	}
}
