package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - client role requires a non-empty client_id; without it the JWT is
//     structurally valid but operationally unusable.
func ctxClaims(c echo.Context) (role domain.Role, clientID string, err error) {
	roleStr, _ := c.Get("role").(string)
	if roleStr == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	clientID, _ = c.Get("client_id").(string)
	if domain.Role(roleStr) == domain.RoleClient && clientID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing client identity")
	}

	return domain.Role(roleStr), clientID, nil
}
