package ports

import (
	"context"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
)

// AppointmentFields carries a partial appointment update. Nil fields are
// left untouched by the backend.
type AppointmentFields struct {
	Date    *string `json:"date,omitempty"`
	Time    *string `json:"time,omitempty"`
	Status  *string `json:"status,omitempty"`
	Type    *string `json:"type,omitempty"`
	StaffID *string `json:"staff_id,omitempty"`
}

// ClientFields carries a partial client update.
type ClientFields struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	LoginCode *string `json:"login_code,omitempty"`
}

// CreateStaffInput carries the data needed to register a staff member.
type CreateStaffInput struct {
	FirstName  string
	FamilyName string
	Email      string
	Password   string
	Phone      string
}

// Facade is the single collaborator through which all entity data is read
// and mutated. Every call is a remote operation and may fail with a generic
// error; the caller decides how that failure degrades.
type Facade interface {
	GetAppointments(ctx context.Context) ([]domain.Appointment, error)
	CreateAppointment(ctx context.Context, date, name, email string) error
	UpdateAppointment(ctx context.Context, id string, fields AppointmentFields) error

	GetClients(ctx context.Context) ([]domain.User, error)
	CreateClient(ctx context.Context, name, email, phone, loginCode string) error
	UpdateClient(ctx context.Context, id string, fields ClientFields) error
	ArchiveClient(ctx context.Context, id string) error
	UnarchiveClient(ctx context.Context, id string) error

	GetStaff(ctx context.Context) ([]domain.User, error)
	CreateStaff(ctx context.Context, in CreateStaffInput) error

	GetAlbums(ctx context.Context) ([]domain.Album, error)
	GetClientAlbums(ctx context.Context, clientID string) ([]domain.Album, error)
	CreateAlbum(ctx context.Context, title, clientID string) error
	DeleteAlbum(ctx context.Context, id string) error

	GetAllPhotos(ctx context.Context) ([]domain.GalleryItem, error)
	GetGalleryByAlbum(ctx context.Context, albumID string) ([]domain.GalleryItem, error)
	AddGalleryItem(ctx context.Context, albumID, urlOrContent, title string) error
	DeleteGalleryItem(ctx context.Context, id string) error

	GetClientDocuments(ctx context.Context, clientID string) ([]domain.ClientDocument, error)
	UploadDocument(ctx context.Context, clientID, filename, content string, docType domain.DocumentType) error
	DeleteDocument(ctx context.Context, clientID, docID string) error
}
