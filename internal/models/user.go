package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a login account. Accounts are separate from roster
// players: anyone may sign up, but only accounts whose email appears on the
// roster are authorized, and admin capability comes from the player row,
// not the account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique). Used for login and to
	// match the account against the roster.
	Email string

	// DisplayName is the name shown for the account.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// NewUser creates a user with a fresh ID and timestamp.
func NewUser(email, displayName, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
