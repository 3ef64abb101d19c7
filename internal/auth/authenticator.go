// Package auth implements account registration, password verification and
// JWT session tokens for the statement API.
package auth

import (
	"context"

	"homeledger/internal/storage"
)

// Authenticator abstracts the credential scheme so the HTTP layer does not
// depend on passwords directly.
type Authenticator interface {
	// Register creates a new account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*storage.User, error)

	// Authenticate verifies the credentials and returns the account if valid.
	Authenticate(ctx context.Context, email, credential string) (*storage.User, error)

	// ValidateCredential checks that the credential meets the scheme's
	// minimum requirements.
	ValidateCredential(credential string) error
}
