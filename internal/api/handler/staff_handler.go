package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

// StaffHandler exposes the staff dashboard: the appointment schedule and
// status updates on assigned sessions.
type StaffHandler struct {
	sessions Sessions
}

func NewStaffHandler(sessions Sessions) *StaffHandler {
	return &StaffHandler{sessions: sessions}
}

type staffStateResponse struct {
	Appointments []domain.Appointment `json:"appointments"`
	Staff        []domain.User        `json:"staff"`
}

// State handles GET /v1/staff/state.
func (h *StaffHandler) State(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	snap := rec.Snapshot()
	return c.JSON(http.StatusOK, staffStateResponse{
		Appointments: snap.Appointments,
		Staff:        snap.Staff,
	})
}

// Refresh handles POST /v1/staff/refresh.
func (h *StaffHandler) Refresh(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	rec.Refresh(reqCtx(c))
	snap := rec.Snapshot()
	return c.JSON(http.StatusOK, staffStateResponse{
		Appointments: snap.Appointments,
		Staff:        snap.Staff,
	})
}

type updateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

// UpdateAppointmentStatus handles PATCH /v1/staff/appointments/:id. Staff
// may only change the status, not reschedule or reassign.
func (h *StaffHandler) UpdateAppointmentStatus(c echo.Context) error {
	var req updateAppointmentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	if err := rec.UpdateAppointment(reqCtx(c), c.Param("id"), ports.AppointmentFields{Status: &req.Status}); err != nil {
		return err
	}
	snap := rec.Snapshot()
	return c.JSON(http.StatusOK, staffStateResponse{
		Appointments: snap.Appointments,
		Staff:        snap.Staff,
	})
}
