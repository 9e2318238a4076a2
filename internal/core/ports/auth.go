package ports

import (
	"context"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
)

// Credentials covers both login paths: staff/admin authenticate with
// email+password, clients with name+access code. Exactly one pair must be
// provided.
type Credentials struct {
	Email    string
	Password string

	Name      string
	LoginCode string
}

// CredentialVerifier checks credentials against authoritative backend
// records and returns the matching user. The backend owns password hashes;
// they never cross the facade.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, creds Credentials) (*domain.User, error)
}

// AuthService authenticates users and issues session tokens carrying the
// role claim used for dashboard dispatch.
type AuthService interface {
	Login(ctx context.Context, creds Credentials) (string, *domain.User, error)
}
