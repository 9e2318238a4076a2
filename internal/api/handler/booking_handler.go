package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

// BookingHandler serves the marketing site's consultation form: it books a
// pending appointment and forwards the WhatsApp notification, best effort.
type BookingHandler struct {
	facade   ports.Facade
	notifier ports.NotifyService
	log      zerolog.Logger
}

func NewBookingHandler(facade ports.Facade, notifier ports.NotifyService, log zerolog.Logger) *BookingHandler {
	return &BookingHandler{facade: facade, notifier: notifier, log: log}
}

type bookingRequest struct {
	Date  string `json:"date" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// Create handles POST /v1/bookings.
//
// @Summary      Book a consultation from the public site
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body      bookingRequest  true  "Consultation request"
// @Success      201   {object}  map[string]bool
// @Failure      400   {object}  map[string]string
// @Router       /v1/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.facade.CreateAppointment(ctx, req.Date, req.Name, req.Email); err != nil {
		return err
	}

	// Notification delivery is best effort: the booking already exists.
	if req.Phone != "" {
		if err := h.notifier.Notify(ctx, ports.BookingNotification{
			Date:  req.Date,
			Name:  req.Name,
			Phone: req.Phone,
		}); err != nil {
			h.log.Warn().Err(err).Str("name", req.Name).Msg("booking saved but notification failed")
		}
	}

	return c.JSON(http.StatusCreated, map[string]bool{"success": true})
}
