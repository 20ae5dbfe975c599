package models

import (
	"time"
)

// Reservation represents a time-bounded booking owned by a single user.
type Reservation struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Reservation status constants
const (
	StatusConfirmed = "confirmed" // Booked and acknowledged
	StatusPending   = "pending"   // Submitted, awaiting confirmation
	StatusCancelled = "cancelled" // No longer active
)

// ValidStatus reports whether s is one of the known reservation statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// DurationHours returns the reservation's length in fractional hours.
func (r *Reservation) DurationHours() float64 {
	return r.EndDate.Sub(r.StartDate).Hours()
}

// Confirmed reports whether the reservation is in the confirmed state.
func (r *Reservation) Confirmed() bool {
	return r.Status == StatusConfirmed
}
