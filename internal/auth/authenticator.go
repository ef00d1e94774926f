package auth

import (
	"context"

	"github.com/splatcrew/splattrack/internal/models"
)

// Authenticator verifies login credentials. The abstraction keeps the API
// layer independent of the credential scheme (passwords today; passkeys or
// OAuth would slot in behind the same interface).
//
// Note that authentication is not authorization: anyone may hold an
// account, but roster membership is checked separately on every request.
type Authenticator interface {
	// Register creates a new login account for the given email.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies credentials and returns the account.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks that the credential meets the scheme's
	// requirements before any account is created.
	ValidateCredential(credential string) error
}
