package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

// NotifyHandler is the public booking-notification webhook.
type NotifyHandler struct {
	service ports.NotifyService
}

func NewNotifyHandler(service ports.NotifyService) *NotifyHandler {
	return &NotifyHandler{service: service}
}

type notifyRequest struct {
	Date  string `json:"date"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type notifySuccessResponse struct {
	Success bool `json:"success"`
}

// Notify handles POST /notify.
//
// The contract mirrors what the marketing site expects: 400 when any of
// date/name/phone is missing, 500 when the messaging provider is
// misconfigured or delivery fails, 200 {"success":true} otherwise. Non-POST
// methods get a 405 from the route registration.
//
// @Summary      Forward a consultation request to the studio's WhatsApp
// @Tags         notify
// @Accept       json
// @Produce      json
// @Param        body  body      notifyRequest  true  "Booking request"
// @Success      200   {object}  notifySuccessResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /notify [post]
func (h *NotifyHandler) Notify(c echo.Context) error {
	var req notifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.Notify(c.Request().Context(), ports.BookingNotification{
		Date:  req.Date,
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingField) {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send WhatsApp notification")
	}

	return c.JSON(http.StatusOK, notifySuccessResponse{Success: true})
}
