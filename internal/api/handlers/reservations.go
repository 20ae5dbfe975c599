package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/booking-dashboard/backend/internal/api/middleware"
	"github.com/booking-dashboard/backend/internal/schedule"
	"github.com/booking-dashboard/backend/internal/storage/models"
)

type reservationRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Status      string  `json:"status"`
}

func (req *reservationRequest) parseDates() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return
	}
	end, err = time.Parse(time.RFC3339, req.EndDate)
	return
}

// ListReservations returns reservations, optionally restricted to a time
// window and an owner. The window keeps reservations whose start or end
// falls inside it, bounds included.
func ListReservations(source schedule.DataSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter schedule.ListFilter

		startStr := r.URL.Query().Get("start")
		endStr := r.URL.Query().Get("end")
		if startStr != "" && endStr != "" {
			start, err1 := time.Parse(time.RFC3339, startStr)
			end, err2 := time.Parse(time.RFC3339, endStr)
			if err1 != nil || err2 != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "start and end must be RFC 3339 timestamps")
				return
			}
			rng, err := schedule.NewTimeRange(start, end)
			if err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "end must be after start")
				return
			}
			filter.Range = &rng
		}

		if userID := r.URL.Query().Get("user_id"); userID != "" {
			owner, err := strconv.ParseInt(userID, 10, 64)
			if err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "user_id must be an integer")
				return
			}
			filter.Owner = owner
		}

		reservations, err := source.List(r.Context(), filter)
		if err != nil {
			log.WithError(err).Error("Failed to list reservations")
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to list reservations")
			return
		}

		if reservations == nil {
			reservations = []models.Reservation{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reservations)
	}
}

// CreateReservation books a new reservation for the authenticated owner.
func CreateReservation(source schedule.DataSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		if req.Title == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Title is required")
			return
		}
		if req.Status != "" && !models.ValidStatus(req.Status) {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Status must be: confirmed, pending or cancelled")
			return
		}

		start, end, err := req.parseDates()
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "start_date and end_date must be RFC 3339 timestamps")
			return
		}

		reservation := &models.Reservation{
			UserID:      middleware.Owner(r),
			Title:       req.Title,
			Description: req.Description,
			StartDate:   start,
			EndDate:     end,
			Status:      req.Status,
		}

		err = source.Create(r.Context(), reservation)
		switch {
		case errors.Is(err, schedule.ErrInvalidRange):
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "End date must be after start date")
			return
		case errors.Is(err, schedule.ErrConflict):
			middleware.WriteError(w, http.StatusConflict, middleware.ErrConflict, "Reservation conflicts with an existing one")
			return
		case err != nil:
			log.WithError(err).Error("Failed to create reservation")
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to create reservation")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(reservation)
	}
}

// UpdateReservation replaces the mutable fields of one of the authenticated
// owner's reservations.
func UpdateReservation(source schedule.DataSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Reservation id must be an integer")
			return
		}

		var req reservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		start, end, err := req.parseDates()
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "start_date and end_date must be RFC 3339 timestamps")
			return
		}

		fields := schedule.UpdateFields{
			Title:       req.Title,
			Description: req.Description,
			StartDate:   start,
			EndDate:     end,
			Status:      req.Status,
		}

		err = source.Update(r.Context(), id, middleware.Owner(r), fields)
		switch {
		case errors.Is(err, schedule.ErrNotFound):
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Reservation not found")
			return
		case err != nil:
			log.WithError(err).Error("Failed to update reservation")
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to update reservation")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Reservation updated"})
	}
}

// DeleteReservation removes one of the authenticated owner's reservations.
func DeleteReservation(source schedule.DataSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Reservation id must be an integer")
			return
		}

		err = source.Delete(r.Context(), id, middleware.Owner(r))
		switch {
		case errors.Is(err, schedule.ErrNotFound):
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Reservation not found")
			return
		case err != nil:
			log.WithError(err).Error("Failed to delete reservation")
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to delete reservation")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Reservation deleted"})
	}
}

// CheckConflicts previews the collisions a reservation over the given window
// would cause for the authenticated owner, so the client can warn before
// submitting.
func CheckConflicts(checker *schedule.ConflictChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err1 := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
		end, err2 := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
		if err1 != nil || err2 != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "start and end must be RFC 3339 timestamps")
			return
		}
		if _, err := schedule.NewTimeRange(start, end); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "End date must be after start date")
			return
		}

		conflicts, err := checker.Check(r.Context(), middleware.Owner(r), start, end)
		if err != nil {
			log.WithError(err).Error("Failed to check conflicts")
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to check conflicts")
			return
		}

		if conflicts == nil {
			conflicts = []schedule.Conflict{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(conflicts)
	}
}
