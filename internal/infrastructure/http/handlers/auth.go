package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/db/mongo"
)

// AuthHandler verifies credentials on behalf of the portal. It never issues
// tokens; it only answers "who is this" so the portal can.
type AuthHandler struct {
	users *mongo.UserRepository
}

func NewAuthHandler(users *mongo.UserRepository) *AuthHandler {
	return &AuthHandler{users: users}
}

type verifyRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	LoginCode string `json:"login_code"`
}

// Verify handles POST /v1/auth/verify. Staff and admins authenticate with
// email and password, clients with name and access code. Lookup misses and
// password mismatches both come back as invalid credentials so callers
// cannot probe which accounts exist.
func (h *AuthHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()

	switch {
	case req.Email != "" && req.Password != "":
		u, err := h.users.FindByEmail(ctx, req.Email)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.ErrInvalidCredentials
			}
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			return domain.ErrInvalidCredentials
		}
		return c.JSON(http.StatusOK, u)

	case req.Name != "" && req.LoginCode != "":
		u, err := h.users.FindClientByCode(ctx, req.Name, req.LoginCode)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.ErrInvalidCredentials
			}
			return err
		}
		return c.JSON(http.StatusOK, u)

	default:
		return domain.ErrInvalidCredentials
	}
}
