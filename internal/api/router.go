// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/booking-dashboard/backend/internal/api/handlers"
	"github.com/booking-dashboard/backend/internal/api/middleware"
	"github.com/booking-dashboard/backend/internal/auth"
	"github.com/booking-dashboard/backend/internal/schedule"
	"github.com/booking-dashboard/backend/internal/storage"
)

// NewRouter creates and configures the HTTP router with all API routes.
// Everything under /api except health and auth requires a bearer token.
func NewRouter(
	db *storage.DB,
	source schedule.DataSource,
	checker *schedule.ConflictChecker,
	authService *auth.Service,
	staticDir string,
) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)
	r.Use(middleware.CORS)

	// API subrouter
	api := r.PathPrefix("/api").Subrouter()

	// Public endpoints
	api.HandleFunc("/health", handlers.HealthCheck(db)).Methods("GET")
	api.HandleFunc("/auth/register", handlers.Register(authService)).Methods("POST")
	api.HandleFunc("/auth/login", handlers.Login(authService)).Methods("POST")

	// Everything below resolves the owner identity from the bearer token
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(authService.Verify))

	// Reservation endpoints
	protected.HandleFunc("/reservations", handlers.ListReservations(source)).Methods("GET")
	protected.HandleFunc("/reservations", handlers.CreateReservation(source)).Methods("POST")
	protected.HandleFunc("/reservations/conflicts", handlers.CheckConflicts(checker)).Methods("GET")
	protected.HandleFunc("/reservations/{id}", handlers.UpdateReservation(source)).Methods("PUT")
	protected.HandleFunc("/reservations/{id}", handlers.DeleteReservation(source)).Methods("DELETE")

	// Calendar endpoints
	protected.HandleFunc("/calendar", handlers.MonthOverview(source)).Methods("GET")
	protected.HandleFunc("/calendar/detail", handlers.MonthDetail(source)).Methods("GET")

	// Statistics endpoints
	protected.HandleFunc("/stats", handlers.GetStats(source)).Methods("GET")
	protected.HandleFunc("/stats/summary", handlers.GetStatsSummary(source)).Methods("GET")

	// Serve static frontend files
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	return r
}
