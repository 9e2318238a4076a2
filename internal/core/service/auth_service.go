package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

// AuthService resolves both login paths against the backend and issues the
// session JWT used for role dispatch.
type AuthService struct {
	verifier  ports.CredentialVerifier
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(verifier ports.CredentialVerifier, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{verifier: verifier, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login authenticates either an email+password pair (admin, staff) or a
// name+access-code pair (clients) and returns a signed token plus the
// authenticated user.
func (s *AuthService) Login(ctx context.Context, creds ports.Credentials) (string, *domain.User, error) {
	hasPassword := creds.Email != "" && creds.Password != ""
	hasCode := creds.Name != "" && creds.LoginCode != ""
	if !hasPassword && !hasCode {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.verifier.VerifyCredentials(ctx, creds)
	if err != nil {
		return "", nil, err
	}
	if user.Archived() {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"name":      user.Name,
		"role":      string(user.Role),
		"client_id": clientClaim(user),
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func clientClaim(user *domain.User) string {
	if user.Role == domain.RoleClient {
		return user.ID
	}
	return ""
}
