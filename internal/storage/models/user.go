package models

import (
	"time"
)

// User represents an account that owns reservations.
// PasswordHash is never serialized into API responses.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// User role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
