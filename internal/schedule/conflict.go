package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/booking-dashboard/backend/internal/storage/models"
)

// ConflictChecker reports which of an owner's reservations would collide
// with a proposed interval, and the exact overlap window for each.
type ConflictChecker struct {
	// findOverlapping queries reservations colliding with the interval.
	findOverlapping func(ctx context.Context, owner int64, start, end time.Time) ([]models.Reservation, error)
}

// NewConflictChecker creates a conflict checker backed by the given finder,
// typically DataSource.FindOverlapping.
func NewConflictChecker(find func(ctx context.Context, owner int64, start, end time.Time) ([]models.Reservation, error)) *ConflictChecker {
	return &ConflictChecker{findOverlapping: find}
}

// Conflict describes one collision with an existing reservation.
type Conflict struct {
	ReservationID int64     `json:"reservation_id"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	OverlapStart  time.Time `json:"overlap_start"`
	OverlapEnd    time.Time `json:"overlap_end"`
}

// Check returns the conflicts a reservation over [start, end] would cause
// for the owner.
func (c *ConflictChecker) Check(ctx context.Context, owner int64, start, end time.Time) ([]Conflict, error) {
	overlapping, err := c.findOverlapping(ctx, owner, start, end)
	if err != nil {
		return nil, fmt.Errorf("checking conflicts: %w", err)
	}

	var conflicts []Conflict
	for _, r := range overlapping {
		overlapStart := start
		if r.StartDate.After(overlapStart) {
			overlapStart = r.StartDate
		}

		overlapEnd := end
		if r.EndDate.Before(overlapEnd) {
			overlapEnd = r.EndDate
		}

		conflicts = append(conflicts, Conflict{
			ReservationID: r.ID,
			Title:         r.Title,
			Status:        r.Status,
			OverlapStart:  overlapStart,
			OverlapEnd:    overlapEnd,
		})
	}

	return conflicts, nil
}

// HasConflict returns true if the interval collides with any existing
// reservation of the owner.
func (c *ConflictChecker) HasConflict(ctx context.Context, owner int64, start, end time.Time) (bool, error) {
	conflicts, err := c.Check(ctx, owner, start, end)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}
