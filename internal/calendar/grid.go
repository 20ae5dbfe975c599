// Package calendar builds month grids annotated with reservations. Grid
// construction is pure: the caller supplies the reservations and "today".
package calendar

import (
	"time"

	"github.com/booking-dashboard/backend/internal/storage/models"
)

// Cell is one slot of a month grid. Padding cells align day 1 to its weekday
// column; their Day is 0 and their Date falls in the previous month.
type Cell struct {
	Day             int                  `json:"day"`
	Date            time.Time            `json:"date"`
	Padding         bool                 `json:"is_padding"`
	Today           bool                 `json:"is_today"`
	HasReservations bool                 `json:"has_reservations"`
	Reservations    []models.Reservation `json:"reservations"`
}

// Grid is an ordered month grid: leading padding cells followed by one cell
// per day of the month. No trailing padding is generated.
type Grid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Cells []Cell     `json:"cells"`
}

// DayMatcher decides whether a reservation belongs on a given calendar day.
// Dates are compared by date-only key, not as instants.
type DayMatcher func(r *models.Reservation, day time.Time) bool

// MatchByStart places a reservation only on the calendar day it starts.
// The dashboard month overview uses this matcher.
func MatchByStart(r *models.Reservation, day time.Time) bool {
	return dateKey(r.StartDate) == dateKey(day)
}

// MatchByRange places a reservation on its start day, its end day, and every
// day it spans in between. The detail calendar view uses this matcher; it is
// intentionally wider than MatchByStart and the two must not be unified.
func MatchByRange(r *models.Reservation, day time.Time) bool {
	key := dateKey(day)
	if dateKey(r.StartDate) == key || dateKey(r.EndDate) == key {
		return true
	}
	return !r.StartDate.After(day) && !r.EndDate.Before(day)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// BuildGrid constructs the grid for a month. Weekday columns start on Sunday
// (index 0); padding cells walk backwards from day 1 into the previous month.
func BuildGrid(year int, month time.Month, reservations []models.Reservation, today time.Time, match DayMatcher) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	leading := int(first.Weekday())

	grid := Grid{
		Year:  year,
		Month: month,
		Cells: make([]Cell, 0, leading+daysInMonth),
	}

	for i := 0; i < leading; i++ {
		grid.Cells = append(grid.Cells, Cell{
			Day:          0,
			Date:         time.Date(year, month, i-leading+1, 0, 0, 0, 0, time.UTC),
			Padding:      true,
			Reservations: []models.Reservation{},
		})
	}

	todayKey := dateKey(today)
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		matched := []models.Reservation{}
		for i := range reservations {
			if match(&reservations[i], date) {
				matched = append(matched, reservations[i])
			}
		}

		grid.Cells = append(grid.Cells, Cell{
			Day:             day,
			Date:            date,
			Today:           dateKey(date) == todayKey,
			HasReservations: len(matched) > 0,
			Reservations:    matched,
		})
	}

	return grid
}

// TotalReservations sums the reservations attached across all cells.
func (g Grid) TotalReservations() int {
	total := 0
	for _, c := range g.Cells {
		total += len(c.Reservations)
	}
	return total
}

// CountConfirmed counts the confirmed reservations in a list.
func CountConfirmed(reservations []models.Reservation) int {
	n := 0
	for i := range reservations {
		if reservations[i].Confirmed() {
			n++
		}
	}
	return n
}
