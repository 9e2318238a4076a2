package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/db/mongo"
)

// AlbumHandler serves albums and their photos. Deleting an album cascades to
// its gallery items so no orphaned photos survive.
type AlbumHandler struct {
	albums  *mongo.AlbumRepository
	gallery *mongo.GalleryRepository
}

func NewAlbumHandler(albums *mongo.AlbumRepository, gallery *mongo.GalleryRepository) *AlbumHandler {
	return &AlbumHandler{albums: albums, gallery: gallery}
}

// List handles GET /v1/albums. With ?client_id= the listing narrows to that
// client's private albums plus the shared ones.
func (h *AlbumHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if clientID := c.QueryParam("client_id"); clientID != "" {
		albums, err := h.albums.ListForClient(ctx, clientID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, albums)
	}

	albums, err := h.albums.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, albums)
}

type createAlbumRequest struct {
	Title    string `json:"title"`
	CoverURL string `json:"cover_url"`
	ClientID string `json:"client_id"`
}

// Create handles POST /v1/albums.
func (h *AlbumHandler) Create(c echo.Context) error {
	var req createAlbumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Title == "" {
		return fmt.Errorf("%w: title", domain.ErrMissingField)
	}

	album := &domain.Album{
		Title:    req.Title,
		CoverURL: req.CoverURL,
		ClientID: req.ClientID,
	}
	if err := h.albums.Create(c.Request().Context(), album); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, album)
}

// Delete handles DELETE /v1/albums/:id and removes the album's photos with
// it.
func (h *AlbumHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.albums.Delete(ctx, id); err != nil {
		return err
	}
	if err := h.gallery.DeleteByAlbum(ctx, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPhotos handles GET /v1/albums/:id/photos.
func (h *AlbumHandler) ListPhotos(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, err := h.albums.FindByID(ctx, id); err != nil {
		return err
	}
	items, err := h.gallery.ListByAlbum(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

type addPhotoRequest struct {
	Content string `json:"content"`
	Title   string `json:"title"`
}

// AddPhoto handles POST /v1/albums/:id/photos. Content is either an
// external URL or an inline data URL produced by the portal's upload flow.
func (h *AlbumHandler) AddPhoto(c echo.Context) error {
	var req addPhotoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Content == "" {
		return fmt.Errorf("%w: content", domain.ErrMissingField)
	}

	ctx := c.Request().Context()
	id := c.Param("id")

	if _, err := h.albums.FindByID(ctx, id); err != nil {
		return err
	}
	item := &domain.GalleryItem{
		URL:     req.Content,
		Title:   req.Title,
		AlbumID: id,
	}
	if err := h.gallery.Create(ctx, item); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// ListAllPhotos handles GET /v1/photos, the unscoped gallery listing.
func (h *AlbumHandler) ListAllPhotos(c echo.Context) error {
	items, err := h.gallery.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// DeletePhoto handles DELETE /v1/photos/:id.
func (h *AlbumHandler) DeletePhoto(c echo.Context) error {
	if err := h.gallery.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
