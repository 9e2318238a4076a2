package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

// AdminHandler exposes the admin dashboard: every reconciler operation over
// clients, staff, appointments, albums, gallery and documents. It never
// touches the backend facade directly.
type AdminHandler struct {
	sessions Sessions
}

func NewAdminHandler(sessions Sessions) *AdminHandler {
	return &AdminHandler{sessions: sessions}
}

// State handles GET /v1/admin/state.
//
// @Summary      Current dashboard snapshot
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Snapshot
// @Router       /v1/admin/state [get]
func (h *AdminHandler) State(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec.Snapshot())
}

// Refresh handles POST /v1/admin/refresh: re-fetches all collections and
// re-validates the selections, then returns the fresh snapshot.
//
// @Summary      Refresh all collections
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Snapshot
// @Router       /v1/admin/refresh [post]
func (h *AdminHandler) Refresh(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	rec.Refresh(reqCtx(c))
	return c.JSON(http.StatusOK, rec.Snapshot())
}

// --- Clients ---

type createClientRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	LoginCode string `json:"login_code" validate:"required"`
}

// CreateClient handles POST /v1/admin/clients.
//
// @Summary      Register a new client
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  ports.Snapshot
// @Failure      400   {object}  map[string]string
// @Router       /v1/admin/clients [post]
func (h *AdminHandler) CreateClient(c echo.Context) error {
	var req createClientRequest
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
	if err := rec.CreateClient(reqCtx(c), ports.CreateClientInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		LoginCode: req.LoginCode,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec.Snapshot())
}

// UpdateClient handles PATCH /v1/admin/clients/:id.
func (h *AdminHandler) UpdateClient(c echo.Context) error {
	var fields ports.ClientFields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	if err := rec.UpdateClient(reqCtx(c), c.Param("id"), fields); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec.Snapshot())
}

// ArchiveClient handles POST /v1/admin/clients/:id/archive.
func (h *AdminHandler) ArchiveClient(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	if err := rec.ArchiveClient(reqCtx(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec.Snapshot())
}

// UnarchiveClient handles POST /v1/admin/clients/:id/unarchive.
func (h *AdminHandler) UnarchiveClient(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	if err := rec.UnarchiveClient(reqCtx(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec.Snapshot())
}

// SelectClient handles POST /v1/admin/clients/:id/select: opens the client
// file, loading its documents immediately.
func (h *AdminHandler) SelectClient(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	if err := rec.SelectClient(reqCtx(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec.Snapshot())
}

// DeselectClient handles DELETE /v1/admin/selection/client.
func (h *AdminHandler) DeselectClient(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	rec.ClearSelectedClient()
	return c.JSON(http.StatusOK, rec.Snapshot())
}

// --- Staff ---

type createStaffRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Phone      string `json:"phone"`
}

// CreateStaff handles POST /v1/admin/staff.
func (h *AdminHandler) CreateStaff(c echo.Context) error {
	var req createStaffRequest
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
	if err := rec.CreateStaff(reqCtx(c), ports.CreateStaffInput{
		FirstName:  req.FirstName,
		FamilyName: req.FamilyName,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec.Snapshot())
}

// --- Appointments ---

// UpdateAppointment handles PATCH /v1/admin/appointments/:id.
func (h *AdminHandler) UpdateAppointment(c echo.Context) error {
	var fields ports.AppointmentFields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	if err := rec.UpdateAppointment(reqCtx(c), c.Param("id"), fields); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec.Snapshot())
}

// --- Albums ---

type createAlbumRequest struct {
	Title    string `json:"title" validate:"required"`
	ClientID string `json:"client_id"`
}

// CreateAlbum handles POST /v1/admin/albums. An empty client_id creates a
// shared album visible to every client.
func (h *AdminHandler) CreateAlbum(c echo.Context) error {
	var req createAlbumRequest
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
	if err := rec.CreateAlbum(reqCtx(c), req.Title, req.ClientID); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec.Snapshot())
}

// DeleteAlbum handles DELETE /v1/admin/albums/:id. If the deleted album was
// the active one, the refresh that follows clears the pointer and falls
// back to the unscoped photo listing.
func (h *AdminHandler) DeleteAlbum(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	if err := rec.DeleteAlbum(reqCtx(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec.Snapshot())
}

// OpenAlbum handles POST /v1/admin/albums/:id/open.
func (h *AdminHandler) OpenAlbum(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	if err := rec.SelectAlbum(reqCtx(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec.Snapshot())
}

// CloseAlbum handles POST /v1/admin/albums/close: back to the unscoped
// listing.
func (h *AdminHandler) CloseAlbum(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	rec.ClearActiveAlbum(reqCtx(c))
	return c.JSON(http.StatusOK, rec.Snapshot())
}

// --- Gallery ---

type addPhotoRequest struct {
	URL   string `json:"url" validate:"required"`
	Title string `json:"title"`
}

// AddPhoto handles POST /v1/admin/albums/:id/photos: adds a photo by URL.
func (h *AdminHandler) AddPhoto(c echo.Context) error {
	var req addPhotoRequest
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
	if err := rec.AddGalleryItem(reqCtx(c), c.Param("id"), req.URL, req.Title); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec.Snapshot())
}

// UploadPhotos handles POST /v1/admin/albums/:id/photos/upload: a multipart
// batch. Files are processed in form order; a failed file is skipped and
// reported without aborting the rest of the batch.
func (h *AdminHandler) UploadPhotos(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files provided")
	}

	files := make([]ports.FileUpload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file: "+fh.Filename)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file: "+fh.Filename)
		}
		files = append(files, ports.FileUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	result := rec.UploadGalleryFiles(reqCtx(c), c.Param("id"), files)
	return c.JSON(http.StatusOK, result)
}

// DeletePhoto handles DELETE /v1/admin/photos/:id.
func (h *AdminHandler) DeletePhoto(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	if err := rec.DeleteGalleryItem(reqCtx(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec.Snapshot())
}

// --- Documents ---

// UploadDocument handles POST /v1/admin/clients/:id/documents: one file per
// request, classified by its content type.
func (h *AdminHandler) UploadDocument(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}

	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	if err := rec.UploadDocument(reqCtx(c), c.Param("id"), fh.Filename, data, fh.Header.Get("Content-Type")); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec.Snapshot())
}

// DeleteDocument handles DELETE /v1/admin/clients/:id/documents/:doc_id.
func (h *AdminHandler) DeleteDocument(c echo.Context) error {
	rec, err := sessionFor(c, h.sessions)
	if err != nil {
		return err
	}
	if err := rec.DeleteDocument(reqCtx(c), c.Param("id"), c.Param("doc_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec.Snapshot())
}
