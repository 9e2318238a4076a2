package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

// Sessions resolves the live per-session state holders.
type Sessions interface {
	GetOrCreate(token string, scope ports.Scope) ports.Reconciler
	Drop(token string)
}

// AuthHandler handles login and logout for all three roles.
type AuthHandler struct {
	auth     ports.AuthService
	sessions Sessions
}

func NewAuthHandler(auth ports.AuthService, sessions Sessions) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	Name      string `json:"name"`
	LoginCode string `json:"login_code"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login handles POST /auth/login.
//
// Staff and admins send email+password; clients send name+login_code. The
// role claim in the returned token decides which dashboard the caller is
// dispatched to. The session's state holder is created here and primed with
// an initial refresh so the first snapshot is populated.
//
// @Summary      Log in and create a dashboard session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, user, err := h.auth.Login(c.Request().Context(), ports.Credentials{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		LoginCode: req.LoginCode,
	})
	if err != nil {
		return err
	}

	scope := ports.Scope{Role: user.Role}
	if user.Role == domain.RoleClient {
		scope.ClientID = user.ID
	}
	rec := h.sessions.GetOrCreate(token, scope)
	rec.Refresh(c.Request().Context())

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: *user})
}

// Logout handles POST /auth/logout: the session's state holder is dropped.
//
// @Summary      Log out and discard the dashboard session
// @Tags         auth
// @Security     BearerAuth
// @Success      204  "session discarded"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if token != "" {
		h.sessions.Drop(token)
	}
	return c.NoContent(http.StatusNoContent)
}

// sessionFor resolves the caller's reconciler from its auth claims.
func sessionFor(c echo.Context, sessions Sessions) (ports.Reconciler, error) {
	role, clientID, err := ctxClaims(c)
	if err != nil {
		return nil, err
	}
	token, _ := c.Get("token").(string)
	return sessions.GetOrCreate(token, ports.Scope{Role: role, ClientID: clientID}), nil
}

// reqCtx is a shorthand used by all dashboard handlers.
func reqCtx(c echo.Context) context.Context {
	return c.Request().Context()
}
