package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/splatcrew/splattrack/internal/models"
)

type memoryUserStorage struct {
	users map[string]*models.User
}

func newMemoryUserStorage() *memoryUserStorage {
	return &memoryUserStorage{users: make(map[string]*models.User)}
}

func (m *memoryUserStorage) CreateUser(_ context.Context, user *models.User) error {
	m.users[user.Email] = user
	return nil
}

func (m *memoryUserStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.users[email], nil
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemoryUserStorage())

	t.Run("register and authenticate", func(t *testing.T) {
		user, err := a.Register(ctx, "viper@team.com", "Viper", "hunter2hunter2")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.PasswordHash == "hunter2hunter2" {
			t.Error("password stored in plain text")
		}

		got, err := a.Authenticate(ctx, "viper@team.com", "hunter2hunter2")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("authenticated wrong user: %s", got.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "viper@team.com", "not-the-password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "ghost@team.com", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("weak password rejected", func(t *testing.T) {
		if _, err := a.Register(ctx, "doc@team.com", "Doc", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		if _, err := a.Register(ctx, "viper@team.com", "Imposter", "hunter2hunter2"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret-test-secret-test-sec", time.Hour)
	user := &models.User{ID: "u1", Email: "viper@team.com"}

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "viper@team.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("test-secret-test-secret-test-sec", -time.Minute)
	token, err := m.Generate(&models.User{ID: "u1", Email: "viper@team.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	m1 := NewJWTManager("secret-one-secret-one-secret-one", time.Hour)
	m2 := NewJWTManager("secret-two-secret-two-secret-two", time.Hour)

	token, _ := m1.Generate(&models.User{ID: "u1", Email: "viper@team.com"})
	if _, err := m2.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}
