package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/db/mongo"
)

type ClientHandler struct {
	users *mongo.UserRepository
}

func NewClientHandler(users *mongo.UserRepository) *ClientHandler {
	return &ClientHandler{users: users}
}

// List handles GET /v1/clients. Archived clients are included; filtering is
// the caller's concern.
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.users.ListByRole(c.Request().Context(), domain.RoleClient)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

type createClientRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LoginCode string `json:"login_code"`
}

// Create handles POST /v1/clients.
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fmt.Errorf("%w: name", domain.ErrMissingField)
	}
	if req.LoginCode == "" {
		return fmt.Errorf("%w: login_code", domain.ErrMissingField)
	}

	u, err := h.users.Create(c.Request().Context(), &domain.User{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		LoginCode: req.LoginCode,
		Role:      domain.RoleClient,
		Status:    domain.StatusActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

type updateClientRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	LoginCode *string `json:"login_code"`
}

// Update handles PATCH /v1/clients/:id.
func (h *ClientHandler) Update(c echo.Context) error {
	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.LoginCode != nil {
		fields["login_code"] = *req.LoginCode
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	if len(fields) > 0 {
		if err := h.users.Update(ctx, id, fields); err != nil {
			return err
		}
	}
	u, err := h.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Archive handles POST /v1/clients/:id/archive. The record stays in place;
// only its status flips.
func (h *ClientHandler) Archive(c echo.Context) error {
	if err := h.users.SetStatus(c.Request().Context(), c.Param("id"), domain.StatusArchived); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Unarchive handles POST /v1/clients/:id/unarchive.
func (h *ClientHandler) Unarchive(c echo.Context) error {
	if err := h.users.SetStatus(c.Request().Context(), c.Param("id"), domain.StatusActive); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
