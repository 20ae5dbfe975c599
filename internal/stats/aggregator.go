// Package stats computes usage aggregates over reservations grouped by
// calendar period.
package stats

import (
	"errors"
	"sort"
	"time"

	"github.com/booking-dashboard/backend/internal/storage/models"
)

// Period is the aggregation bucket size for statistics queries.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ErrInvalidPeriod is returned for unknown aggregation granularities.
var ErrInvalidPeriod = errors.New("invalid period: use day, month or year")

// MonthLimit caps the number of groups returned for month granularity.
const MonthLimit = 12

// DayWindowDays is the size of the lookback window applied to day granularity.
const DayWindowDays = 30

// ParsePeriod validates a period string. An empty string defaults to month,
// matching the stats endpoint's default granularity.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodMonth, PeriodYear:
		return Period(s), nil
	case "":
		return PeriodMonth, nil
	}
	return "", ErrInvalidPeriod
}

// key returns the grouping key for a timestamp at this granularity.
func (p Period) key(t time.Time) string {
	switch p {
	case PeriodDay:
		return t.Format("2006-01-02")
	case PeriodMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006")
	}
}

// Bucket is one aggregation group.
type Bucket struct {
	Period            string  `json:"period"`
	TotalReservations int     `json:"total_reservations"`
	TotalHours        float64 `json:"total_hours"`
}

// Aggregate groups reservations by the start timestamp's period key and sums
// per-group counts and fractional hours. Groups are ordered by period key
// descending. Day granularity only considers reservations starting on or
// after the date 30 days before now; month granularity returns at most the
// 12 most recent groups.
func Aggregate(reservations []models.Reservation, period Period, now time.Time) ([]Bucket, error) {
	switch period {
	case PeriodDay, PeriodMonth, PeriodYear:
	default:
		return nil, ErrInvalidPeriod
	}

	var cutoff string
	if period == PeriodDay {
		cutoff = now.AddDate(0, 0, -DayWindowDays).Format("2006-01-02")
	}

	groups := make(map[string]*Bucket)
	for _, r := range reservations {
		if cutoff != "" && r.StartDate.Format("2006-01-02") < cutoff {
			continue
		}
		k := period.key(r.StartDate)
		b, ok := groups[k]
		if !ok {
			b = &Bucket{Period: k}
			groups[k] = b
		}
		b.TotalReservations++
		b.TotalHours += r.DurationHours()
	}

	buckets := make([]Bucket, 0, len(groups))
	for _, b := range groups {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Period > buckets[j].Period
	})

	if period == PeriodMonth && len(buckets) > MonthLimit {
		buckets = buckets[:MonthLimit]
	}

	return buckets, nil
}

// Summary is the dashboard-level rollup of monthly buckets.
type Summary struct {
	TotalHours        float64 `json:"total_hours"`
	TotalReservations int     `json:"total_reservations"`
	AvgDurationHours  float64 `json:"avg_duration"`
	BestMonth         string  `json:"best_month"`
	BestMonthCount    int     `json:"best_month_count"`
}

// Summarize rolls monthly buckets up into dashboard totals. The average is
// zero when there are no reservations. The best month is the bucket with the
// strictly greatest count; the first bucket wins ties.
func Summarize(buckets []Bucket) Summary {
	var s Summary
	for _, b := range buckets {
		s.TotalHours += b.TotalHours
		s.TotalReservations += b.TotalReservations
	}
	if s.TotalReservations > 0 {
		s.AvgDurationHours = s.TotalHours / float64(s.TotalReservations)
	}

	if len(buckets) > 0 {
		best := buckets[0]
		for _, b := range buckets[1:] {
			if b.TotalReservations > best.TotalReservations {
				best = b
			}
		}
		s.BestMonth = best.Period
		s.BestMonthCount = best.TotalReservations
	}

	return s
}
