package schedule

import (
	"context"
	"time"

	"github.com/booking-dashboard/backend/internal/stats"
	"github.com/booking-dashboard/backend/internal/storage/models"
)

// ListFilter narrows a reservation listing. A zero Owner means no owner
// restriction. Range, when set, keeps reservations whose start or end falls
// within it, bounds included. A reservation that fully spans the range
// without either endpoint inside it is not matched; the listing filter is
// deliberately looser than the conflict test used on create.
type ListFilter struct {
	Owner int64
	Range *TimeRange
}

// Matches reports whether a reservation passes the filter.
func (f ListFilter) Matches(r *models.Reservation) bool {
	if f.Owner != 0 && r.UserID != f.Owner {
		return false
	}
	if f.Range != nil && !f.Range.Contains(r.StartDate) && !f.Range.Contains(r.EndDate) {
		return false
	}
	return true
}

// UpdateFields carries the full replacement state for an update. Every field
// is written; updates do not re-run the conflict check.
type UpdateFields struct {
	Title       string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
}

// DataSource is the persistence contract for reservations. The live
// implementation is SQL-backed (storage.ReservationRepository); MemorySource
// provides an in-memory implementation for tests and offline use.
type DataSource interface {
	// List returns reservations matching the filter, ordered by start
	// ascending.
	List(ctx context.Context, f ListFilter) ([]models.Reservation, error)

	// Create validates the interval, rejects overlaps with the owner's
	// existing reservations, assigns an id and persists the record. A
	// missing status defaults to confirmed. Fails with ErrInvalidRange or
	// ErrConflict.
	Create(ctx context.Context, r *models.Reservation) error

	// Update replaces the mutable fields of the reservation matching both
	// id and owner. Fails with ErrNotFound when no row matches, including
	// when the id exists under a different owner.
	Update(ctx context.Context, id, owner int64, f UpdateFields) error

	// Delete removes the reservation matching both id and owner. Fails
	// with ErrNotFound under the same rules as Update.
	Delete(ctx context.Context, id, owner int64) error

	// FindOverlapping returns the owner's reservations that overlap
	// [start, end] under the closed-interval conflict test, regardless of
	// status.
	FindOverlapping(ctx context.Context, owner int64, start, end time.Time) ([]models.Reservation, error)

	// Stats aggregates the owner's reservations at the given granularity.
	Stats(ctx context.Context, owner int64, period stats.Period, now time.Time) ([]stats.Bucket, error)

	// ExpirePending cancels pending reservations that ended at or before
	// now, returning the number affected.
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}
