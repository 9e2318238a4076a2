package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/db/mongo"
)

// DocumentHandler serves per-client documents. All routes are nested under
// the owning client so a document can never leak across client boundaries.
type DocumentHandler struct {
	users     *mongo.UserRepository
	documents *mongo.DocumentRepository
}

func NewDocumentHandler(users *mongo.UserRepository, documents *mongo.DocumentRepository) *DocumentHandler {
	return &DocumentHandler{users: users, documents: documents}
}

// List handles GET /v1/clients/:id/documents.
func (h *DocumentHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	clientID := c.Param("id")

	if _, err := h.users.FindByID(ctx, clientID); err != nil {
		return err
	}
	docs, err := h.documents.ListByClient(ctx, clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

type uploadDocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// Upload handles POST /v1/clients/:id/documents. Content is an inline data
// URL; the type tag was classified by the portal from the upload's content
// type.
func (h *DocumentHandler) Upload(c echo.Context) error {
	var req uploadDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fmt.Errorf("%w: name", domain.ErrMissingField)
	}
	if req.Content == "" {
		return fmt.Errorf("%w: content", domain.ErrMissingField)
	}

	ctx := c.Request().Context()
	clientID := c.Param("id")

	if _, err := h.users.FindByID(ctx, clientID); err != nil {
		return err
	}

	docType := domain.DocumentType(req.Type)
	if docType == "" {
		docType = domain.DocTypeOther
	}
	doc := &domain.ClientDocument{
		Name:     req.Name,
		URL:      req.Content,
		Type:     docType,
		ClientID: clientID,
	}
	if err := h.documents.Create(ctx, doc); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

// Delete handles DELETE /v1/clients/:id/documents/:doc_id.
func (h *DocumentHandler) Delete(c echo.Context) error {
	if err := h.documents.Delete(c.Request().Context(), c.Param("id"), c.Param("doc_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
