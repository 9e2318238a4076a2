package ports

import (
	"context"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
)

// Scope restricts which collections a reconciler session fetches and which
// album listing it sees. Admin sessions see everything; client sessions see
// only their own albums, documents and the public listing; staff sessions
// see appointments and the staff roster.
type Scope struct {
	Role     domain.Role
	ClientID string // set when Role == client
}

// CreateClientInput carries a new client registration.
type CreateClientInput struct {
	Name      string
	Email     string
	Phone     string
	LoginCode string
}

// FileUpload is one file of a gallery batch upload, already read into
// memory by the transport layer.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadResult summarises a gallery batch upload. A partial failure does
// not abort the batch, so Submitted+Failed always equals the input size.
type UploadResult struct {
	Submitted int      `json:"submitted"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Snapshot is a point-in-time copy of a reconciler's collections and
// selection pointers, safe for the caller to hold across further mutations.
type Snapshot struct {
	Appointments []domain.Appointment `json:"appointments"`
	Clients      []domain.User        `json:"clients"`
	Staff        []domain.User        `json:"staff"`
	Albums       []domain.Album       `json:"albums"`
	GalleryItems []domain.GalleryItem `json:"gallery_items"`

	// Documents is the session owner's own document list; populated only
	// for client-scoped sessions.
	Documents []domain.ClientDocument `json:"documents,omitempty"`

	SelectedClient *domain.User  `json:"selected_client,omitempty"`
	ActiveAlbum    *domain.Album `json:"active_album,omitempty"`
}

// Reconciler owns the per-session view state: five collections plus the
// selected-client and active-album pointers. Mutations follow a two-phase
// contract: apply the remote change through the Facade, then invalidate and
// reload everything via Refresh.
type Reconciler interface {
	Refresh(ctx context.Context)
	Snapshot() Snapshot

	SelectClient(ctx context.Context, id string) error
	ClearSelectedClient()
	SelectAlbum(ctx context.Context, id string) error
	ClearActiveAlbum(ctx context.Context)

	CreateAppointment(ctx context.Context, date, name, email string) error
	UpdateAppointment(ctx context.Context, id string, fields AppointmentFields) error

	CreateClient(ctx context.Context, in CreateClientInput) error
	UpdateClient(ctx context.Context, id string, fields ClientFields) error
	ArchiveClient(ctx context.Context, id string) error
	UnarchiveClient(ctx context.Context, id string) error

	CreateStaff(ctx context.Context, in CreateStaffInput) error

	CreateAlbum(ctx context.Context, title, clientID string) error
	DeleteAlbum(ctx context.Context, id string) error

	AddGalleryItem(ctx context.Context, albumID, url, title string) error
	DeleteGalleryItem(ctx context.Context, id string) error
	UploadGalleryFiles(ctx context.Context, albumID string, files []FileUpload) UploadResult

	UploadDocument(ctx context.Context, clientID, filename string, content []byte, mimeHint string) error
	DeleteDocument(ctx context.Context, clientID, docID string) error
}
