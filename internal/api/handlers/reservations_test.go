package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/booking-dashboard/backend/internal/api/middleware"
	"github.com/booking-dashboard/backend/internal/schedule"
	"github.com/booking-dashboard/backend/internal/stats"
	"github.com/booking-dashboard/backend/internal/storage/models"
)

func timeParse(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func authedRequest(method, target string, body string, owner int64) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithOwner(req.Context(), owner))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) middleware.ErrorResponse {
	t.Helper()
	var resp middleware.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	return resp
}

func TestCreateReservationHandler(t *testing.T) {
	source := schedule.NewMemorySource()
	handler := CreateReservation(source)

	t.Run("creates and returns the record", func(t *testing.T) {
		body := `{"title":"kickoff","start_date":"2026-02-06T18:09:00Z","end_date":"2026-02-07T19:09:00Z"}`
		rec := httptest.NewRecorder()
		handler(rec, authedRequest(http.MethodPost, "/api/reservations", body, 1))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
		}
		var created models.Reservation
		if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if created.ID == 0 || created.UserID != 1 || created.Status != models.StatusConfirmed {
			t.Errorf("created = %+v", created)
		}
	})

	t.Run("overlap is a conflict", func(t *testing.T) {
		body := `{"title":"clash","start_date":"2026-02-07T00:00:00Z","end_date":"2026-02-07T12:00:00Z"}`
		rec := httptest.NewRecorder()
		handler(rec, authedRequest(http.MethodPost, "/api/reservations", body, 1))

		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
		}
		if resp := decodeError(t, rec); resp.Error != middleware.ErrConflict {
			t.Errorf("error code = %q, want %q", resp.Error, middleware.ErrConflict)
		}
	})

	t.Run("same window for another owner is fine", func(t *testing.T) {
		body := `{"title":"parallel","start_date":"2026-02-07T00:00:00Z","end_date":"2026-02-07T12:00:00Z"}`
		rec := httptest.NewRecorder()
		handler(rec, authedRequest(http.MethodPost, "/api/reservations", body, 2))

		if rec.Code != http.StatusCreated {
			t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
		}
	})

	t.Run("inverted dates are a validation error", func(t *testing.T) {
		body := `{"title":"bad","start_date":"2026-02-08T12:00:00Z","end_date":"2026-02-08T10:00:00Z"}`
		rec := httptest.NewRecorder()
		handler(rec, authedRequest(http.MethodPost, "/api/reservations", body, 1))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if resp := decodeError(t, rec); resp.Error != middleware.ErrValidation {
			t.Errorf("error code = %q, want %q", resp.Error, middleware.ErrValidation)
		}
	})

	t.Run("missing title is a validation error", func(t *testing.T) {
		body := `{"start_date":"2026-03-01T10:00:00Z","end_date":"2026-03-01T11:00:00Z"}`
		rec := httptest.NewRecorder()
		handler(rec, authedRequest(http.MethodPost, "/api/reservations", body, 1))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestListReservationsHandler(t *testing.T) {
	ctx := context.Background()
	source := schedule.NewMemorySource()

	seed := []struct {
		title, start, end string
	}{
		{"second", "2026-02-05T09:00:00Z", "2026-02-05T10:00:00Z"},
		{"first", "2026-02-02T09:00:00Z", "2026-02-02T10:00:00Z"},
	}
	for _, s := range seed {
		r := &models.Reservation{UserID: 1, Title: s.title}
		r.StartDate, _ = timeParse(s.start)
		r.EndDate, _ = timeParse(s.end)
		if err := source.Create(ctx, r); err != nil {
			t.Fatalf("seeding %s: %v", s.title, err)
		}
	}

	handler := ListReservations(source)

	t.Run("returns ascending order", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, authedRequest(http.MethodGet, "/api/reservations", "", 1))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var rows []models.Reservation
		if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(rows) != 2 || rows[0].Title != "first" || rows[1].Title != "second" {
			t.Errorf("rows = %+v", rows)
		}
	})

	t.Run("rejects malformed window", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, authedRequest(http.MethodGet, "/api/reservations?start=notatime&end=2026-02-05T00:00:00Z", "", 1))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestUpdateDeleteReservationHandlers(t *testing.T) {
	ctx := context.Background()
	source := schedule.NewMemorySource()

	r := &models.Reservation{UserID: 1, Title: "mine"}
	r.StartDate, _ = timeParse("2026-02-05T09:00:00Z")
	r.EndDate, _ = timeParse("2026-02-05T10:00:00Z")
	if err := source.Create(ctx, r); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	body := `{"title":"renamed","start_date":"2026-02-05T09:00:00Z","end_date":"2026-02-05T10:00:00Z","status":"pending"}`

	t.Run("update by another owner is not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := mux.SetURLVars(authedRequest(http.MethodPut, "/api/reservations/1", body, 2), map[string]string{"id": "1"})
		UpdateReservation(source)(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("owner updates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := mux.SetURLVars(authedRequest(http.MethodPut, "/api/reservations/1", body, 1), map[string]string{"id": "1"})
		UpdateReservation(source)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
		}
	})

	t.Run("delete by another owner is not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := mux.SetURLVars(authedRequest(http.MethodDelete, "/api/reservations/1", "", 2), map[string]string{"id": "1"})
		DeleteReservation(source)(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := mux.SetURLVars(authedRequest(http.MethodDelete, "/api/reservations/1", "", 1), map[string]string{"id": "1"})
		DeleteReservation(source)(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestGetStatsHandler(t *testing.T) {
	source := schedule.NewMemorySource()

	t.Run("rejects unknown period", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetStats(source)(rec, authedRequest(http.MethodGet, "/api/stats?period=week", "", 1))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("defaults to month and returns empty buckets", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetStats(source)(rec, authedRequest(http.MethodGet, "/api/stats", "", 1))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var buckets []stats.Bucket
		if err := json.NewDecoder(rec.Body).Decode(&buckets); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if buckets == nil {
			t.Error("response body was null, want an empty array")
		}
	})
}
