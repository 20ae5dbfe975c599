package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/booking-dashboard/backend/internal/schedule"
	"github.com/booking-dashboard/backend/internal/stats"
	"github.com/booking-dashboard/backend/internal/storage/models"
)

const reservationColumns = "id, title, description, start_date, end_date, status, user_id, created_at, updated_at"

// ReservationRepository provides SQL-backed data access for reservations.
// It is the live schedule.DataSource implementation.
type ReservationRepository struct {
	BaseRepository
}

// NewReservationRepository creates a new reservation repository.
func NewReservationRepository(db *DB) *ReservationRepository {
	return &ReservationRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// List retrieves reservations matching the filter, ordered by start ascending.
// The range filter keeps rows whose start or end falls within the range,
// bounds included.
func (r *ReservationRepository) List(ctx context.Context, f schedule.ListFilter) ([]models.Reservation, error) {
	query := "SELECT " + reservationColumns + " FROM reservations WHERE 1=1"
	var args []any

	if f.Range != nil {
		query += " AND ((start_date BETWEEN ? AND ?) OR (end_date BETWEEN ? AND ?))"
		start, end := f.Range.Start.UTC(), f.Range.End.UTC()
		args = append(args, start, end, start, end)
	}
	if f.Owner != 0 {
		query += " AND user_id = ?"
		args = append(args, f.Owner)
	}

	query += " ORDER BY start_date ASC"

	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reservations: %w", err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Create validates the interval, checks for overlaps with the owner's
// existing reservations and inserts the record. The conflict test is
// closed-interval: an existing start or end inside the new range counts, as
// does the new start inside an existing range. The check does not filter by
// status, and the check-then-insert pair is not atomic against a concurrent
// create on another connection.
func (r *ReservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	if !res.StartDate.Before(res.EndDate) {
		return schedule.ErrInvalidRange
	}

	start, end := res.StartDate.UTC(), res.EndDate.UTC()

	var count int
	err := r.DB().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE user_id = ?
		  AND (
			(start_date BETWEEN ? AND ?)
			OR (end_date BETWEEN ? AND ?)
			OR (? BETWEEN start_date AND end_date)
		  )
	`, res.UserID, start, end, start, end, start).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking reservation conflicts: %w", err)
	}
	if count > 0 {
		return schedule.ErrConflict
	}

	if res.Status == "" {
		res.Status = models.StatusConfirmed
	}
	res.StartDate = start
	res.EndDate = end
	res.CreatedAt = r.Now()
	res.UpdatedAt = res.CreatedAt

	result, err := r.DB().ExecContext(ctx, `
		INSERT INTO reservations (title, description, start_date, end_date, status, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, res.Title, res.Description, res.StartDate, res.EndDate, res.Status, res.UserID, res.CreatedAt, res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting reservation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted reservation id: %w", err)
	}
	res.ID = id

	return nil
}

// Update replaces the mutable fields of the reservation matching both id and
// owner. A row under a different owner is reported as not found; ownership is
// enforced by the query predicate, never by a separate lookup. The conflict
// check is not re-run on update.
func (r *ReservationRepository) Update(ctx context.Context, id, owner int64, f schedule.UpdateFields) error {
	result, err := r.DB().ExecContext(ctx, `
		UPDATE reservations
		SET title = ?, description = ?, start_date = ?, end_date = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, f.Title, f.Description, f.StartDate.UTC(), f.EndDate.UTC(), f.Status, r.Now(), id, owner)
	if err != nil {
		return fmt.Errorf("updating reservation: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return schedule.ErrNotFound
	}

	return nil
}

// Delete removes the reservation matching both id and owner, under the same
// ownership rules as Update.
func (r *ReservationRepository) Delete(ctx context.Context, id, owner int64) error {
	result, err := r.DB().ExecContext(ctx, "DELETE FROM reservations WHERE id = ? AND user_id = ?", id, owner)
	if err != nil {
		return fmt.Errorf("deleting reservation: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return schedule.ErrNotFound
	}

	return nil
}

// FindOverlapping returns the owner's reservations colliding with
// [start, end] under the same closed-interval test Create uses.
func (r *ReservationRepository) FindOverlapping(ctx context.Context, owner int64, start, end time.Time) ([]models.Reservation, error) {
	start, end = start.UTC(), end.UTC()

	rows, err := r.DB().QueryContext(ctx, `
		SELECT `+reservationColumns+` FROM reservations
		WHERE user_id = ?
		  AND (
			(start_date BETWEEN ? AND ?)
			OR (end_date BETWEEN ? AND ?)
			OR (? BETWEEN start_date AND end_date)
		  )
		ORDER BY start_date ASC
	`, owner, start, end, start, end, start)
	if err != nil {
		return nil, fmt.Errorf("querying overlapping reservations: %w", err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Stats aggregates the owner's reservations at the requested granularity.
// Grouping happens in SQL, mirroring the shapes the dashboard consumes:
// day buckets cover the trailing 30 days, month buckets are capped at 12.
func (r *ReservationRepository) Stats(ctx context.Context, owner int64, period stats.Period, now time.Time) ([]stats.Bucket, error) {
	var query string

	switch period {
	case stats.PeriodDay:
		query = `
			SELECT DATE(start_date) AS period,
			       COUNT(*) AS total_reservations,
			       SUM((strftime('%s', end_date) - strftime('%s', start_date)) / 3600.0) AS total_hours
			FROM reservations
			WHERE user_id = ?
			  AND start_date >= date(?, '-30 days')
			GROUP BY DATE(start_date)
			ORDER BY period DESC
		`
	case stats.PeriodMonth:
		query = `
			SELECT strftime('%Y-%m', start_date) AS period,
			       COUNT(*) AS total_reservations,
			       SUM((strftime('%s', end_date) - strftime('%s', start_date)) / 3600.0) AS total_hours
			FROM reservations
			WHERE user_id = ?
			GROUP BY strftime('%Y-%m', start_date)
			ORDER BY period DESC
			LIMIT 12
		`
	case stats.PeriodYear:
		query = `
			SELECT strftime('%Y', start_date) AS period,
			       COUNT(*) AS total_reservations,
			       SUM((strftime('%s', end_date) - strftime('%s', start_date)) / 3600.0) AS total_hours
			FROM reservations
			WHERE user_id = ?
			GROUP BY strftime('%Y', start_date)
			ORDER BY period DESC
		`
	default:
		return nil, stats.ErrInvalidPeriod
	}

	args := []any{owner}
	if period == stats.PeriodDay {
		args = append(args, now.UTC())
	}

	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reservation stats: %w", err)
	}
	defer rows.Close()

	var buckets []stats.Bucket
	for rows.Next() {
		var b stats.Bucket
		if err := rows.Scan(&b.Period, &b.TotalReservations, &b.TotalHours); err != nil {
			return nil, fmt.Errorf("scanning stats bucket: %w", err)
		}
		buckets = append(buckets, b)
	}

	return buckets, rows.Err()
}

// ExpirePending cancels pending reservations that ended at or before now,
// returning the number of rows affected.
func (r *ReservationRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.DB().ExecContext(ctx, `
		UPDATE reservations
		SET status = ?, updated_at = ?
		WHERE status = ? AND end_date <= ?
	`, models.StatusCancelled, r.Now(), models.StatusPending, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("expiring pending reservations: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading expired reservation count: %w", err)
	}

	return affected, nil
}

func (r *ReservationRepository) scanReservations(rows *sql.Rows) ([]models.Reservation, error) {
	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(
			&res.ID, &res.Title, &res.Description, &res.StartDate, &res.EndDate,
			&res.Status, &res.UserID, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
