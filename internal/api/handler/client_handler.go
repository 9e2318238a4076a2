package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

// ClientHandler exposes the client portal: the client's own albums and
// documents, the public gallery, and their next session.
type ClientHandler struct {
	sessions Sessions
}

func NewClientHandler(sessions Sessions) *ClientHandler {
	return &ClientHandler{sessions: sessions}
}

type clientHomeResponse struct {
	Albums          []domain.Album          `json:"albums"`
	GalleryItems    []domain.GalleryItem    `json:"gallery_items"`
	Documents       []domain.ClientDocument `json:"documents"`
	NextAppointment *domain.Appointment     `json:"next_appointment,omitempty"`
	ActiveAlbum     *domain.Album           `json:"active_album,omitempty"`
}

// Home handles GET /v1/client/home.
//
// @Summary      Client portal snapshot
// @Tags         client
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clientHomeResponse
// @Router       /v1/client/home [get]
func (h *ClientHandler) Home(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientHome(rec.Snapshot()))
}

// Refresh handles POST /v1/client/refresh.
func (h *ClientHandler) Refresh(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	rec.Refresh(reqCtx(c))
	return c.JSON(http.StatusOK, toClientHome(rec.Snapshot()))
}

// OpenAlbum handles POST /v1/client/albums/:id/open.
func (h *ClientHandler) OpenAlbum(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	if err := rec.SelectAlbum(reqCtx(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientHome(rec.Snapshot()))
}

// CloseAlbum handles POST /v1/client/albums/close.
func (h *ClientHandler) CloseAlbum(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	rec.ClearActiveAlbum(reqCtx(c))
	return c.JSON(http.StatusOK, toClientHome(rec.Snapshot()))
}

func toClientHome(snap ports.Snapshot) clientHomeResponse {
	resp := clientHomeResponse{
		Albums:       snap.Albums,
		GalleryItems: snap.GalleryItems,
		Documents:    snap.Documents,
		ActiveAlbum:  snap.ActiveAlbum,
	}
	if len(snap.Appointments) > 0 {
		next := snap.Appointments[0]
		resp.NextAppointment = &next
	}
	return resp
}
