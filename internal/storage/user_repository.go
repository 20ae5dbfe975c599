package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/booking-dashboard/backend/internal/storage/models"
)

// UserRepository provides data access for user accounts.
type UserRepository struct {
	BaseRepository
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Create inserts a new user. The email column carries a unique constraint;
// violation surfaces as a wrapped driver error.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = r.Now()
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	result, err := r.DB().ExecContext(ctx, `
		INSERT INTO users (email, password, role, created_at)
		VALUES (?, ?, ?, ?)
	`, user.Email, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByEmail retrieves a user by email, returning nil when no user exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}

	err := r.DB().QueryRowContext(ctx, `
		SELECT id, email, password, role, created_at
		FROM users WHERE email = ?
	`, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by id, returning nil when no user exists.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}

	err := r.DB().QueryRowContext(ctx, `
		SELECT id, email, password, role, created_at
		FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return user, nil
}
