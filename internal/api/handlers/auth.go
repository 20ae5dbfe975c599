package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/booking-dashboard/backend/internal/api/middleware"
	"github.com/booking-dashboard/backend/internal/auth"
	"github.com/booking-dashboard/backend/internal/storage/models"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new user account.
func Register(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		user, err := svc.Register(r.Context(), req.Email, req.Password)
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			middleware.WriteError(w, http.StatusConflict, middleware.ErrConflict, "Email already registered")
			return
		case errors.Is(err, auth.ErrInvalidCredentials):
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Email and password are required")
			return
		case err != nil:
			log.WithError(err).Error("Failed to register user")
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to register user")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(user)
	}
}

// Login verifies credentials and issues a bearer token.
func Login(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		token, user, err := svc.Login(r.Context(), req.Email, req.Password)
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			middleware.WriteError(w, http.StatusUnauthorized, middleware.ErrUnauthorized, "Invalid email or password")
			return
		case err != nil:
			log.WithError(err).Error("Failed to log user in")
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to log in")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(loginResponse{Token: token, User: user})
	}
}
