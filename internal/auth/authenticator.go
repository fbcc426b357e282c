// Package auth verifies credentials. It issues no tokens: after a successful login the
// client identifies itself with the user ID (see the middleware package).
package auth

import (
	"context"

	"github.com/NJCA88/SneakyElves/internal/models"
)

// Authenticator defines the interface for credential checks.
// This abstraction lets the service layer stay the same if sign-in moves to an
// external identity provider.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ChangeCredential replaces the stored credential after validating the new one.
	ChangeCredential(ctx context.Context, userID, credential string) error

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
