// Package schedule holds the reservation scheduling domain: time intervals,
// the data source contract, conflict detection and background maintenance.
package schedule

import (
	"time"
)

// TimeRange is a validated time interval. Boundary comparisons are inclusive
// on both ends; see Contains and Overlaps.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange builds a TimeRange, failing with ErrInvalidRange unless
// start < end.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Contains reports whether t falls within [Start, End], bounds included.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Overlaps reports whether two ranges intersect. The test is closed-interval:
// ranges that merely touch at a boundary count as overlapping. A range
// overlaps another when its start or end falls within the other, or when it
// fully contains the other's start.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return o.Contains(r.Start) || o.Contains(r.End) || r.Contains(o.Start)
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Hours returns the length of the range in fractional hours.
func (r TimeRange) Hours() float64 {
	return r.Duration().Hours()
}
