package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/booking-dashboard/backend/internal/storage/models"
)

// fakeUserStore is a map-backed UserStore for tests.
type fakeUserStore struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now().UTC()
	stored := *user
	f.users[user.Email] = &stored
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func newTestService() *Service {
	return NewService(newFakeUserStore(), []byte("test-secret"), time.Hour)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	user, err := svc.Register(ctx, "U1@Example.com", "hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Error("Register did not assign an id")
	}
	if user.Email != "u1@example.com" {
		t.Errorf("email = %q, want lowercased %q", user.Email, "u1@example.com")
	}
	if user.PasswordHash == "hunter2" || user.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %q, want %q", user.Role, models.RoleUser)
	}

	if _, err := svc.Register(ctx, "u1@example.com", "other"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate Register error = %v, want %v", err, ErrEmailTaken)
	}

	if _, err := svc.Register(ctx, "", ""); err == nil {
		t.Error("Register with empty credentials succeeded")
	}
}

func TestLoginAndVerify(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	registered, err := svc.Register(ctx, "u1@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login(ctx, "u1@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("login user id = %d, want %d", user.ID, registered.ID)
	}
	if token == "" {
		t.Fatal("Login returned an empty token")
	}

	owner, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if owner != registered.ID {
		t.Errorf("Verify identified owner %d, want %d", owner, registered.ID)
	}
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.Register(ctx, "u1@example.com", "hunter2"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "u1@example.com", "wrong"},
		{"unknown email", "nobody@example.com", "hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Login(ctx, tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login error = %v, want %v", err, ErrInvalidCredentials)
			}
		})
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.Register(ctx, "u1@example.com", "hunter2"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := svc.Login(ctx, "u1@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"tampered", token + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify error = %v, want %v", err, ErrInvalidToken)
			}
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewService(newFakeUserStore(), []byte("other-secret"), time.Hour)
		if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify error = %v, want %v", err, ErrInvalidToken)
		}
	})
}
