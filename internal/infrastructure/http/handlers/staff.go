package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/db/mongo"
)

type StaffHandler struct {
	users *mongo.UserRepository
}

func NewStaffHandler(users *mongo.UserRepository) *StaffHandler {
	return &StaffHandler{users: users}
}

// List handles GET /v1/staff.
func (h *StaffHandler) List(c echo.Context) error {
	staff, err := h.users.ListByRole(c.Request().Context(), domain.RoleStaff)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, staff)
}

type createStaffRequest struct {
	FirstName  string `json:"first_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
}

// Create handles POST /v1/staff. The password is stored only as a bcrypt
// hash.
func (h *StaffHandler) Create(c echo.Context) error {
	var req createStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.FirstName == "" {
		return fmt.Errorf("%w: first_name", domain.ErrMissingField)
	}
	if req.Email == "" {
		return fmt.Errorf("%w: email", domain.ErrMissingField)
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password", domain.ErrMissingField)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(req.FirstName + " " + req.FamilyName)
	u, err := h.users.Create(c.Request().Context(), &domain.User{
		Name:         name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         domain.RoleStaff,
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}
