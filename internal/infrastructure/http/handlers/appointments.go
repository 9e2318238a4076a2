package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/db/mongo"
)

type AppointmentHandler struct {
	appointments *mongo.AppointmentRepository
}

func NewAppointmentHandler(appointments *mongo.AppointmentRepository) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// List handles GET /v1/appointments.
func (h *AppointmentHandler) List(c echo.Context) error {
	apps, err := h.appointments.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

type createAppointmentRequest struct {
	Date       string `json:"date"`
	ClientName string `json:"client_name"`
	Email      string `json:"email"`
	Time       string `json:"time"`
	Type       string `json:"type"`
}

// Create handles POST /v1/appointments. New bookings always start pending.
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Date == "" {
		return fmt.Errorf("%w: date", domain.ErrMissingField)
	}
	if req.ClientName == "" {
		return fmt.Errorf("%w: client_name", domain.ErrMissingField)
	}

	app := &domain.Appointment{
		Date:       req.Date,
		Time:       req.Time,
		ClientName: req.ClientName,
		Type:       req.Type,
		Status:     domain.AppointmentPending,
	}
	if err := h.appointments.Create(c.Request().Context(), app); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}

type updateAppointmentRequest struct {
	Date    *string `json:"date"`
	Time    *string `json:"time"`
	Status  *string `json:"status"`
	Type    *string `json:"type"`
	StaffID *string `json:"staff_id"`
}

// Update handles PATCH /v1/appointments/:id. Only the fields present in the
// payload change; a status change must follow the booking state machine.
func (h *AppointmentHandler) Update(c echo.Context) error {
	var req updateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()
	id := c.Param("id")

	current, err := h.appointments.FindByID(ctx, id)
	if err != nil {
		return err
	}

	fields := bson.M{}
	if req.Date != nil {
		fields["date"] = *req.Date
	}
	if req.Time != nil {
		fields["time"] = *req.Time
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.StaffID != nil {
		fields["staff_id"] = *req.StaffID
	}
	if req.Status != nil {
		next := domain.AppointmentStatus(*req.Status)
		if !current.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, current.Status, next)
		}
		fields["status"] = next
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusOK, current)
	}

	if err := h.appointments.Update(ctx, id, fields); err != nil {
		return err
	}
	updated, err := h.appointments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
