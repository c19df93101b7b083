// Package auth provides organizer account authentication: bcrypt password
// verification and signed session tokens.
package auth

import (
	"context"

	"github.com/koratime/server/internal/models"
)

// Authenticator abstracts the credential scheme so the API layer stays
// agnostic of how accounts are verified.
type Authenticator interface {
	// Register creates a new account. The credential format depends on the
	// implementation; for passwords it is the plaintext password.
	Register(ctx context.Context, email, fullName, credential string) (*models.User, error)

	// Authenticate verifies a credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the implementation's
	// requirements without touching storage.
	ValidateCredential(credential string) error
}
