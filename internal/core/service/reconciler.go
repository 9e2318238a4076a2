package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/atelier-lumiere/studio-portal/internal/api/metrics"
	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

// Reconciler holds one dashboard session's view state: the five entity
// collections and the selected-client / active-album pointers. It is
// created at login and discarded at logout.
//
// Consistency contract: after any Refresh completes, no collection is
// observably stale relative to the last completed mutation, and a selection
// pointing at an entity missing from the refreshed collections is cleared
// rather than left dangling.
type Reconciler struct {
	facade ports.Facade
	scope  ports.Scope
	log    zerolog.Logger

	mu  sync.Mutex
	gen uint64 // newest refresh generation issued

	appointments []domain.Appointment
	clients      []domain.User
	staff        []domain.User
	albums       []domain.Album
	gallery      []domain.GalleryItem
	documents    []domain.ClientDocument // client scope: the session owner's own documents

	selectedClient *domain.User
	activeAlbum    *domain.Album
}

// NewReconciler builds a session state holder scoped to the given role.
func NewReconciler(facade ports.Facade, scope ports.Scope, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		facade: facade,
		scope:  scope,
		log:    log.With().Str("component", "reconciler").Str("role", string(scope.Role)).Logger(),
	}
}

// refreshResult carries one refresh invocation's fetched state until it is
// either applied or discarded as stale.
type refreshResult struct {
	appointments []domain.Appointment
	clients      []domain.User
	staff        []domain.User
	albums       []domain.Album
	gallery      []domain.GalleryItem
	documents    []domain.ClientDocument

	selectedClient *domain.User
	activeAlbum    *domain.Album
}

// Refresh re-fetches every collection in scope and re-validates the
// selection pointers. Each collection fetch is isolated: a failure resets
// that collection to empty and is logged, never returned. Overlapping
// invocations race last-issued-wins: a refresh that finishes after a newer
// one started discards its results.
func (r *Reconciler) Refresh(ctx context.Context) {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	selClient := r.selectedClient
	actAlbum := r.activeAlbum
	r.mu.Unlock()

	metrics.RefreshesTotal.Inc()

	res := r.fetchAll(ctx)
	r.revalidate(ctx, res, selClient, actAlbum)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		metrics.RefreshesDiscardedTotal.Inc()
		r.log.Debug().Uint64("gen", gen).Uint64("latest", r.gen).Msg("stale refresh discarded")
		return
	}
	r.appointments = res.appointments
	r.clients = res.clients
	r.staff = res.staff
	r.albums = res.albums
	r.gallery = res.gallery
	r.documents = res.documents
	r.selectedClient = res.selectedClient
	r.activeAlbum = res.activeAlbum
}

// fetchAll issues the base collection fetches concurrently. Completion
// order is irrelevant: each goroutine writes a disjoint field.
func (r *Reconciler) fetchAll(ctx context.Context) *refreshResult {
	res := &refreshResult{}

	var wg sync.WaitGroup
	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	run(func() {
		apps, err := r.facade.GetAppointments(ctx)
		if err != nil {
			r.fetchFailed("appointments", err)
			apps = nil
		}
		res.appointments = apps
	})

	if r.scope.Role == domain.RoleAdmin {
		run(func() {
			users, err := r.facade.GetClients(ctx)
			if err != nil {
				r.fetchFailed("clients", err)
				users = nil
			}
			res.clients = users
		})
	}

	if r.scope.Role == domain.RoleAdmin || r.scope.Role == domain.RoleStaff {
		run(func() {
			users, err := r.facade.GetStaff(ctx)
			if err != nil {
				r.fetchFailed("staff", err)
				users = nil
			}
			res.staff = users
		})
	}

	run(func() {
		var albums []domain.Album
		var err error
		if r.scope.Role == domain.RoleClient {
			albums, err = r.facade.GetClientAlbums(ctx, r.scope.ClientID)
		} else {
			albums, err = r.facade.GetAlbums(ctx)
		}
		if err != nil {
			r.fetchFailed("albums", err)
			albums = nil
		}
		res.albums = albums
	})

	run(func() {
		photos, err := r.facade.GetAllPhotos(ctx)
		if err != nil {
			r.fetchFailed("gallery", err)
			photos = nil
		}
		res.gallery = photos
	})

	if r.scope.Role == domain.RoleClient {
		run(func() {
			docs, err := r.facade.GetClientDocuments(ctx, r.scope.ClientID)
			if err != nil {
				r.log.Warn().Err(err).Str("client_id", r.scope.ClientID).Msg("failed to load own documents")
				docs = nil
			}
			res.documents = docs
		})
	}

	wg.Wait()
	return res
}

// revalidate runs strictly after all base fetches have settled. It merges
// the selected client with its refreshed record (documents re-fetched
// independently) and re-derives the active album and the gallery listing.
func (r *Reconciler) revalidate(ctx context.Context, res *refreshResult, selClient *domain.User, actAlbum *domain.Album) {
	if selClient != nil {
		if fresh := findUser(res.clients, selClient.ID); fresh != nil {
			merged := *fresh
			docs, err := r.facade.GetClientDocuments(ctx, fresh.ID)
			if err != nil {
				r.log.Warn().Err(err).Str("client_id", fresh.ID).Msg("failed to load client documents")
				docs = []domain.ClientDocument{}
			}
			merged.Documents = docs
			res.selectedClient = &merged
		} else {
			// Deleted server-side: clear, symmetric with the album case.
			r.log.Info().Str("client_id", selClient.ID).Msg("selected client no longer exists, clearing selection")
		}
	}

	if actAlbum != nil {
		if fresh := findAlbum(res.albums, actAlbum.ID); fresh != nil {
			res.activeAlbum = fresh
			photos, err := r.facade.GetGalleryByAlbum(ctx, fresh.ID)
			if err != nil {
				r.fetchFailed("gallery", err)
				photos = nil
			}
			res.gallery = photos
		}
		// Album gone: pointer stays nil and res.gallery already holds the
		// full unscoped listing from fetchAll.
	}
}

func (r *Reconciler) fetchFailed(collection string, err error) {
	metrics.FetchFailuresTotal.WithLabelValues(collection).Inc()
	r.log.Error().Err(err).Str("collection", collection).Msg("collection fetch failed, resetting to empty")
}

// Snapshot returns a copy of the current collections and selections.
func (r *Reconciler) Snapshot() ports.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := ports.Snapshot{
		Appointments: append([]domain.Appointment(nil), r.appointments...),
		Clients:      append([]domain.User(nil), r.clients...),
		Staff:        append([]domain.User(nil), r.staff...),
		Albums:       append([]domain.Album(nil), r.albums...),
		GalleryItems: append([]domain.GalleryItem(nil), r.gallery...),
		Documents:    append([]domain.ClientDocument(nil), r.documents...),
	}
	if r.selectedClient != nil {
		c := *r.selectedClient
		c.Documents = append([]domain.ClientDocument(nil), r.selectedClient.Documents...)
		snap.SelectedClient = &c
	}
	if r.activeAlbum != nil {
		a := *r.activeAlbum
		snap.ActiveAlbum = &a
	}
	return snap
}

// --- Selection ---

// SelectClient opens a client's file: sets the pointer and immediately
// fetches that client's documents so the list is visible without waiting
// for the next refresh cycle.
func (r *Reconciler) SelectClient(ctx context.Context, id string) error {
	r.mu.Lock()
	user := findUser(r.clients, id)
	r.mu.Unlock()
	if user == nil {
		return domain.ErrUserNotFound
	}

	selected := *user
	docs, err := r.facade.GetClientDocuments(ctx, id)
	if err != nil {
		r.log.Warn().Err(err).Str("client_id", id).Msg("failed to load client documents")
		docs = []domain.ClientDocument{}
	}
	selected.Documents = docs

	r.mu.Lock()
	r.selectedClient = &selected
	r.mu.Unlock()
	return nil
}

// ClearSelectedClient closes the client detail view.
func (r *Reconciler) ClearSelectedClient() {
	r.mu.Lock()
	r.selectedClient = nil
	r.mu.Unlock()
}

// SelectAlbum makes the given album the one being browsed and refreshes so
// the gallery collection is scoped to it.
func (r *Reconciler) SelectAlbum(ctx context.Context, id string) error {
	r.mu.Lock()
	album := findAlbum(r.albums, id)
	if album != nil {
		a := *album
		r.activeAlbum = &a
	}
	r.mu.Unlock()
	if album == nil {
		return domain.ErrAlbumNotFound
	}
	r.Refresh(ctx)
	return nil
}

// ClearActiveAlbum returns to the unscoped photo listing.
func (r *Reconciler) ClearActiveAlbum(ctx context.Context) {
	r.mu.Lock()
	r.activeAlbum = nil
	r.mu.Unlock()
	r.Refresh(ctx)
}

// --- Mutations ---
//
// Every mutation performs exactly one facade call and, on success, an
// unconditional full refresh. On failure the error is returned and the
// collections keep their pre-mutation values.

func (r *Reconciler) CreateAppointment(ctx context.Context, date, name, email string) error {
	if date == "" || name == "" {
		return fmt.Errorf("%w: date and name", domain.ErrMissingField)
	}
	return r.mutate(ctx, "create_appointment", func() error {
		return r.facade.CreateAppointment(ctx, date, name, email)
	})
}

func (r *Reconciler) UpdateAppointment(ctx context.Context, id string, fields ports.AppointmentFields) error {
	return r.mutate(ctx, "update_appointment", func() error {
		return r.facade.UpdateAppointment(ctx, id, fields)
	})
}

func (r *Reconciler) CreateClient(ctx context.Context, in ports.CreateClientInput) error {
	if in.Name == "" || in.LoginCode == "" {
		return fmt.Errorf("%w: name and login code", domain.ErrMissingField)
	}
	return r.mutate(ctx, "create_client", func() error {
		return r.facade.CreateClient(ctx, in.Name, in.Email, in.Phone, in.LoginCode)
	})
}

func (r *Reconciler) UpdateClient(ctx context.Context, id string, fields ports.ClientFields) error {
	return r.mutate(ctx, "update_client", func() error {
		return r.facade.UpdateClient(ctx, id, fields)
	})
}

func (r *Reconciler) ArchiveClient(ctx context.Context, id string) error {
	return r.mutate(ctx, "archive_client", func() error {
		return r.facade.ArchiveClient(ctx, id)
	})
}

func (r *Reconciler) UnarchiveClient(ctx context.Context, id string) error {
	return r.mutate(ctx, "unarchive_client", func() error {
		return r.facade.UnarchiveClient(ctx, id)
	})
}

func (r *Reconciler) CreateStaff(ctx context.Context, in ports.CreateStaffInput) error {
	if in.FirstName == "" || in.Email == "" || in.Password == "" {
		return fmt.Errorf("%w: first name, email and password", domain.ErrMissingField)
	}
	return r.mutate(ctx, "create_staff", func() error {
		return r.facade.CreateStaff(ctx, in)
	})
}

func (r *Reconciler) CreateAlbum(ctx context.Context, title, clientID string) error {
	if title == "" {
		return fmt.Errorf("%w: title", domain.ErrMissingField)
	}
	return r.mutate(ctx, "create_album", func() error {
		return r.facade.CreateAlbum(ctx, title, clientID)
	})
}

// DeleteAlbum removes an album. Clearing a matching active-album pointer is
// left to the refresh re-validation, which also swaps the gallery back to
// the unscoped listing.
func (r *Reconciler) DeleteAlbum(ctx context.Context, id string) error {
	return r.mutate(ctx, "delete_album", func() error {
		return r.facade.DeleteAlbum(ctx, id)
	})
}

func (r *Reconciler) AddGalleryItem(ctx context.Context, albumID, url, title string) error {
	if url == "" {
		return fmt.Errorf("%w: url", domain.ErrMissingField)
	}
	if title == "" {
		title = "Untitled"
	}
	return r.mutate(ctx, "add_gallery_item", func() error {
		return r.facade.AddGalleryItem(ctx, albumID, url, title)
	})
}

func (r *Reconciler) DeleteGalleryItem(ctx context.Context, id string) error {
	return r.mutate(ctx, "delete_gallery_item", func() error {
		return r.facade.DeleteGalleryItem(ctx, id)
	})
}

func (r *Reconciler) UploadDocument(ctx context.Context, clientID, filename string, content []byte, mimeHint string) error {
	if filename == "" || len(content) == 0 {
		return fmt.Errorf("%w: filename and content", domain.ErrMissingField)
	}
	docType := domain.ClassifyDocumentType(mimeHint)
	encoded := encodeDataURL(mimeHint, content)
	return r.mutate(ctx, "upload_document", func() error {
		return r.facade.UploadDocument(ctx, clientID, filename, encoded, docType)
	})
}

func (r *Reconciler) DeleteDocument(ctx context.Context, clientID, docID string) error {
	return r.mutate(ctx, "delete_document", func() error {
		return r.facade.DeleteDocument(ctx, clientID, docID)
	})
}

// UploadGalleryFiles submits a batch of photos one by one. Processing is
// strictly sequential so per-file errors attribute cleanly and the final
// gallery ordering is deterministic. A failed file is logged and skipped;
// the rest of the batch still runs, and a single refresh follows the batch
// regardless of partial failures.
func (r *Reconciler) UploadGalleryFiles(ctx context.Context, albumID string, files []ports.FileUpload) ports.UploadResult {
	result := ports.UploadResult{}

	for _, f := range files {
		title, _, _ := strings.Cut(f.Name, ".")
		if title == "" {
			title = f.Name
		}
		encoded := encodeDataURL(f.ContentType, f.Data)
		if err := r.facade.AddGalleryItem(ctx, albumID, encoded, title); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", f.Name, err))
			metrics.GalleryUploadsTotal.WithLabelValues("error").Inc()
			r.log.Error().Err(err).Str("file", f.Name).Msg("gallery file upload failed, skipping")
			continue
		}
		result.Submitted++
		metrics.GalleryUploadsTotal.WithLabelValues("ok").Inc()
	}

	r.Refresh(ctx)
	return result
}

// mutate applies one remote change and reloads all state on success.
func (r *Reconciler) mutate(ctx context.Context, kind string, call func() error) error {
	if err := call(); err != nil {
		metrics.MutationsTotal.WithLabelValues(kind, "error").Inc()
		r.log.Error().Err(err).Str("mutation", kind).Msg("mutation failed")
		return err
	}
	metrics.MutationsTotal.WithLabelValues(kind, "ok").Inc()
	r.Refresh(ctx)
	return nil
}

// encodeDataURL converts raw file bytes into the transportable data-URL
// representation the backend stores.
func encodeDataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func findUser(users []domain.User, id string) *domain.User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}

func findAlbum(albums []domain.Album, id string) *domain.Album {
	for i := range albums {
		if albums[i].ID == id {
			return &albums[i]
		}
	}
	return nil
}
