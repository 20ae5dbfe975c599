package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/booking-dashboard/backend/internal/stats"
	"github.com/booking-dashboard/backend/internal/storage/models"
)

// MemorySource is an in-memory DataSource guarded by a mutex. It mirrors the
// SQL implementation's semantics and backs tests and offline operation.
type MemorySource struct {
	mu           sync.Mutex
	reservations []*models.Reservation
	nextID       int64
}

// NewMemorySource creates an empty in-memory data source.
func NewMemorySource() *MemorySource {
	return &MemorySource{nextID: 1}
}

func (m *MemorySource) List(ctx context.Context, f ListFilter) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Reservation
	for _, r := range m.reservations {
		if f.Matches(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out, nil
}

func (m *MemorySource) Create(ctx context.Context, r *models.Reservation) error {
	candidate, err := NewTimeRange(r.StartDate, r.EndDate)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.reservations {
		if existing.UserID != r.UserID {
			continue
		}
		held := TimeRange{Start: existing.StartDate, End: existing.EndDate}
		if held.Overlaps(candidate) {
			return ErrConflict
		}
	}

	if r.Status == "" {
		r.Status = models.StatusConfirmed
	}
	r.ID = m.nextID
	m.nextID++
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	stored := *r
	m.reservations = append(m.reservations, &stored)
	return nil
}

func (m *MemorySource) Update(ctx context.Context, id, owner int64, f UpdateFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.reservations {
		if r.ID == id && r.UserID == owner {
			r.Title = f.Title
			r.Description = f.Description
			r.StartDate = f.StartDate
			r.EndDate = f.EndDate
			r.Status = f.Status
			r.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemorySource) Delete(ctx context.Context, id, owner int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range m.reservations {
		if r.ID == id && r.UserID == owner {
			m.reservations = append(m.reservations[:i], m.reservations[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemorySource) FindOverlapping(ctx context.Context, owner int64, start, end time.Time) ([]models.Reservation, error) {
	candidate := TimeRange{Start: start, End: end}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Reservation
	for _, r := range m.reservations {
		if r.UserID != owner {
			continue
		}
		held := TimeRange{Start: r.StartDate, End: r.EndDate}
		if held.Overlaps(candidate) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out, nil
}

func (m *MemorySource) Stats(ctx context.Context, owner int64, period stats.Period, now time.Time) ([]stats.Bucket, error) {
	owned, err := m.List(ctx, ListFilter{Owner: owner})
	if err != nil {
		return nil, err
	}
	return stats.Aggregate(owned, period, now)
}

func (m *MemorySource) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, r := range m.reservations {
		if r.Status == models.StatusPending && !r.EndDate.After(now) {
			r.Status = models.StatusCancelled
			r.UpdatedAt = now
			n++
		}
	}
	return n, nil
}
