package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/booking-dashboard/backend/internal/api/middleware"
	"github.com/booking-dashboard/backend/internal/calendar"
	"github.com/booking-dashboard/backend/internal/schedule"
)

type calendarResponse struct {
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	Cells             []calendar.Cell `json:"cells"`
	TotalReservations int             `json:"total_reservations"`
	ConfirmedCount    int             `json:"confirmed_count"`
}

// MonthOverview returns the month grid used by the dashboard: each
// reservation appears only on the day it starts.
func MonthOverview(source schedule.DataSource) http.HandlerFunc {
	return monthGrid(source, calendar.MatchByStart)
}

// MonthDetail returns the detail month grid: each reservation appears on its
// start day, end day and every day it spans.
func MonthDetail(source schedule.DataSource) http.HandlerFunc {
	return monthGrid(source, calendar.MatchByRange)
}

func monthGrid(source schedule.DataSource, match calendar.DayMatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()

		year := now.Year()
		month := int(now.Month())
		var err error

		if y := r.URL.Query().Get("year"); y != "" {
			if year, err = strconv.Atoi(y); err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "year must be an integer")
				return
			}
		}
		if m := r.URL.Query().Get("month"); m != "" {
			if month, err = strconv.Atoi(m); err != nil || month < 1 || month > 12 {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "month must be between 1 and 12")
				return
			}
		}

		reservations, err := source.List(r.Context(), schedule.ListFilter{})
		if err != nil {
			log.WithError(err).Error("Failed to load reservations for calendar")
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to build calendar")
			return
		}

		grid := calendar.BuildGrid(year, time.Month(month), reservations, now, match)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(calendarResponse{
			Year:              grid.Year,
			Month:             int(grid.Month),
			Cells:             grid.Cells,
			TotalReservations: grid.TotalReservations(),
			ConfirmedCount:    calendar.CountConfirmed(reservations),
		})
	}
}
