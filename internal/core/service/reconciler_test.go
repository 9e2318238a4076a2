package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

// stubFacade is an in-memory backend. Mutations change its state so that the
// follow-up refresh observably reloads everything. Individual methods can be
// made to fail via the failures map.
type stubFacade struct {
	mu sync.Mutex

	appointments []domain.Appointment
	clients      []domain.User
	staff        []domain.User
	albums       []domain.Album
	photos       []domain.GalleryItem
	documents    map[string][]domain.ClientDocument

	failures map[string]error
	calls    map[string]int

	// failGalleryTitle makes AddGalleryItem fail for one specific title,
	// for partial batch upload tests.
	failGalleryTitle string

	nextID int
}

func newStubFacade() *stubFacade {
	return &stubFacade{
		documents: make(map[string][]domain.ClientDocument),
		failures:  make(map[string]error),
		calls:     make(map[string]int),
	}
}

func (f *stubFacade) enter(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	return f.failures[method]
}

func (f *stubFacade) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *stubFacade) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *stubFacade) GetAppointments(_ context.Context) ([]domain.Appointment, error) {
	if err := f.enter("GetAppointments"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Appointment(nil), f.appointments...), nil
}

func (f *stubFacade) CreateAppointment(_ context.Context, date, name, email string) error {
	if err := f.enter("CreateAppointment"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appointments = append(f.appointments, domain.Appointment{
		ID: f.id("app"), Date: date, ClientName: name, Status: domain.AppointmentPending,
	})
	return nil
}

func (f *stubFacade) UpdateAppointment(_ context.Context, id string, fields ports.AppointmentFields) error {
	if err := f.enter("UpdateAppointment"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			if fields.Status != nil {
				f.appointments[i].Status = domain.AppointmentStatus(*fields.Status)
			}
			if fields.StaffID != nil {
				f.appointments[i].StaffID = *fields.StaffID
			}
			return nil
		}
	}
	return domain.ErrAppointmentNotFound
}

func (f *stubFacade) GetClients(_ context.Context) ([]domain.User, error) {
	if err := f.enter("GetClients"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.User(nil), f.clients...), nil
}

func (f *stubFacade) CreateClient(_ context.Context, name, email, phone, loginCode string) error {
	if err := f.enter("CreateClient"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients = append(f.clients, domain.User{
		ID: f.id("client"), Name: name, Email: email, Phone: phone,
		LoginCode: loginCode, Role: domain.RoleClient, Status: domain.StatusActive,
	})
	return nil
}

func (f *stubFacade) UpdateClient(_ context.Context, id string, fields ports.ClientFields) error {
	if err := f.enter("UpdateClient"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.clients {
		if f.clients[i].ID == id {
			if fields.Name != nil {
				f.clients[i].Name = *fields.Name
			}
			if fields.Phone != nil {
				f.clients[i].Phone = *fields.Phone
			}
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (f *stubFacade) setClientStatus(id string, status domain.UserStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.clients {
		if f.clients[i].ID == id {
			f.clients[i].Status = status
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (f *stubFacade) ArchiveClient(_ context.Context, id string) error {
	if err := f.enter("ArchiveClient"); err != nil {
		return err
	}
	return f.setClientStatus(id, domain.StatusArchived)
}

func (f *stubFacade) UnarchiveClient(_ context.Context, id string) error {
	if err := f.enter("UnarchiveClient"); err != nil {
		return err
	}
	return f.setClientStatus(id, domain.StatusActive)
}

func (f *stubFacade) GetStaff(_ context.Context) ([]domain.User, error) {
	if err := f.enter("GetStaff"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.User(nil), f.staff...), nil
}

func (f *stubFacade) CreateStaff(_ context.Context, in ports.CreateStaffInput) error {
	if err := f.enter("CreateStaff"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staff = append(f.staff, domain.User{
		ID: f.id("staff"), Name: strings.TrimSpace(in.FirstName + " " + in.FamilyName),
		Email: in.Email, Role: domain.RoleStaff,
	})
	return nil
}

func (f *stubFacade) GetAlbums(_ context.Context) ([]domain.Album, error) {
	if err := f.enter("GetAlbums"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Album(nil), f.albums...), nil
}

func (f *stubFacade) GetClientAlbums(_ context.Context, clientID string) ([]domain.Album, error) {
	if err := f.enter("GetClientAlbums"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Album{}
	for _, a := range f.albums {
		if a.ClientID == "" || a.ClientID == clientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *stubFacade) CreateAlbum(_ context.Context, title, clientID string) error {
	if err := f.enter("CreateAlbum"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.albums = append(f.albums, domain.Album{ID: f.id("album"), Title: title, ClientID: clientID})
	return nil
}

func (f *stubFacade) DeleteAlbum(_ context.Context, id string) error {
	if err := f.enter("DeleteAlbum"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.albums {
		if f.albums[i].ID == id {
			f.albums = append(f.albums[:i], f.albums[i+1:]...)
			kept := f.photos[:0]
			for _, p := range f.photos {
				if p.AlbumID != id {
					kept = append(kept, p)
				}
			}
			f.photos = kept
			return nil
		}
	}
	return domain.ErrAlbumNotFound
}

func (f *stubFacade) GetAllPhotos(_ context.Context) ([]domain.GalleryItem, error) {
	if err := f.enter("GetAllPhotos"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.GalleryItem(nil), f.photos...), nil
}

func (f *stubFacade) GetGalleryByAlbum(_ context.Context, albumID string) ([]domain.GalleryItem, error) {
	if err := f.enter("GetGalleryByAlbum"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.GalleryItem{}
	for _, p := range f.photos {
		if p.AlbumID == albumID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *stubFacade) AddGalleryItem(_ context.Context, albumID, urlOrContent, title string) error {
	if err := f.enter("AddGalleryItem"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGalleryTitle != "" && title == f.failGalleryTitle {
		return errors.New("storage rejected file")
	}
	f.photos = append(f.photos, domain.GalleryItem{
		ID: f.id("photo"), URL: urlOrContent, Title: title, AlbumID: albumID,
	})
	return nil
}

func (f *stubFacade) DeleteGalleryItem(_ context.Context, id string) error {
	if err := f.enter("DeleteGalleryItem"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.photos {
		if f.photos[i].ID == id {
			f.photos = append(f.photos[:i], f.photos[i+1:]...)
			return nil
		}
	}
	return domain.ErrGalleryItemNotFound
}

func (f *stubFacade) GetClientDocuments(_ context.Context, clientID string) ([]domain.ClientDocument, error) {
	if err := f.enter("GetClientDocuments"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ClientDocument(nil), f.documents[clientID]...), nil
}

func (f *stubFacade) UploadDocument(_ context.Context, clientID, filename, content string, docType domain.DocumentType) error {
	if err := f.enter("UploadDocument"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents[clientID] = append(f.documents[clientID], domain.ClientDocument{
		ID: f.id("doc"), Name: filename, URL: content, Type: docType, ClientID: clientID,
	})
	return nil
}

func (f *stubFacade) DeleteDocument(_ context.Context, clientID, docID string) error {
	if err := f.enter("DeleteDocument"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := f.documents[clientID]
	for i := range docs {
		if docs[i].ID == docID {
			f.documents[clientID] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return domain.ErrDocumentNotFound
}

func newAdminReconciler(f *stubFacade) *Reconciler {
	return NewReconciler(f, ports.Scope{Role: domain.RoleAdmin}, zerolog.Nop())
}

func seedFacade(f *stubFacade) {
	f.appointments = []domain.Appointment{
		{ID: "app-1", Date: "2026-09-12", ClientName: "Amina Diallo", Status: domain.AppointmentPending},
	}
	f.clients = []domain.User{
		{ID: "client-1", Name: "Amina Diallo", LoginCode: "482913", Role: domain.RoleClient, Status: domain.StatusActive},
		{ID: "client-2", Name: "Jonas Berg", LoginCode: "917245", Role: domain.RoleClient, Status: domain.StatusActive},
	}
	f.staff = []domain.User{
		{ID: "staff-1", Name: "Lea Fontaine", Email: "lea@studio.test", Role: domain.RoleStaff},
	}
	f.albums = []domain.Album{
		{ID: "album-1", Title: "Wedding 2026"},
		{ID: "album-2", Title: "Portraits", ClientID: "client-1"},
	}
	f.photos = []domain.GalleryItem{
		{ID: "photo-1", URL: "https://cdn.test/1.jpg", Title: "one", AlbumID: "album-1"},
		{ID: "photo-2", URL: "https://cdn.test/2.jpg", Title: "two", AlbumID: "album-2"},
	}
	f.documents["client-1"] = []domain.ClientDocument{
		{ID: "doc-1", Name: "contract.pdf", Type: domain.DocTypePDF, ClientID: "client-1"},
	}
	f.documents["client-2"] = []domain.ClientDocument{
		{ID: "doc-2", Name: "invoice.pdf", Type: domain.DocTypePDF, ClientID: "client-2"},
	}
}

func TestReconciler_Refresh_AdminLoadsAllCollections(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)

	rec.Refresh(context.Background())

	snap := rec.Snapshot()
	if len(snap.Appointments) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(snap.Appointments))
	}
	if len(snap.Clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(snap.Clients))
	}
	if len(snap.Staff) != 1 {
		t.Fatalf("expected 1 staff member, got %d", len(snap.Staff))
	}
	if len(snap.Albums) != 2 {
		t.Fatalf("expected 2 albums, got %d", len(snap.Albums))
	}
	if len(snap.GalleryItems) != 2 {
		t.Fatalf("expected 2 gallery items, got %d", len(snap.GalleryItems))
	}
	if snap.SelectedClient != nil || snap.ActiveAlbum != nil {
		t.Fatalf("expected no selections on a fresh session")
	}
}

func TestReconciler_Refresh_ClientScope(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := NewReconciler(f, ports.Scope{Role: domain.RoleClient, ClientID: "client-1"}, zerolog.Nop())

	rec.Refresh(context.Background())

	if n := f.callCount("GetClients"); n != 0 {
		t.Fatalf("client session must not fetch the client roster, got %d calls", n)
	}
	if n := f.callCount("GetStaff"); n != 0 {
		t.Fatalf("client session must not fetch the staff roster, got %d calls", n)
	}
	if n := f.callCount("GetClientAlbums"); n != 1 {
		t.Fatalf("expected 1 GetClientAlbums call, got %d", n)
	}

	snap := rec.Snapshot()
	if len(snap.Albums) != 2 { // shared album-1 plus own album-2
		t.Fatalf("expected 2 visible albums, got %d", len(snap.Albums))
	}
	if len(snap.Documents) != 1 || snap.Documents[0].ID != "doc-1" {
		t.Fatalf("expected own documents loaded, got %+v", snap.Documents)
	}
}

func TestReconciler_Refresh_PartialFailureIsolation(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	f.failures["GetClients"] = errors.New("backend down")
	rec := newAdminReconciler(f)

	rec.Refresh(context.Background())

	snap := rec.Snapshot()
	if len(snap.Clients) != 0 {
		t.Fatalf("failed collection must reset to empty, got %d clients", len(snap.Clients))
	}
	if len(snap.Appointments) != 1 || len(snap.Staff) != 1 || len(snap.Albums) != 2 {
		t.Fatalf("unaffected collections must still load: %d/%d/%d",
			len(snap.Appointments), len(snap.Staff), len(snap.Albums))
	}
}

func TestReconciler_Refresh_Idempotent(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)

	rec.Refresh(context.Background())
	first := rec.Snapshot()
	rec.Refresh(context.Background())
	second := rec.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("back-to-back refreshes with unchanged backend state must agree:\n%+v\n%+v", first, second)
	}
}

func TestReconciler_SelectClient_LoadsDocuments(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())

	if err := rec.SelectClient(context.Background(), "client-1"); err != nil {
		t.Fatalf("SelectClient returned error: %v", err)
	}

	snap := rec.Snapshot()
	if snap.SelectedClient == nil || snap.SelectedClient.ID != "client-1" {
		t.Fatalf("expected client-1 selected, got %+v", snap.SelectedClient)
	}
	if len(snap.SelectedClient.Documents) != 1 || snap.SelectedClient.Documents[0].ID != "doc-1" {
		t.Fatalf("expected documents loaded with selection, got %+v", snap.SelectedClient.Documents)
	}
}

func TestReconciler_SelectClient_Unknown(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())

	if err := rec.SelectClient(context.Background(), "client-404"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestReconciler_SelectClient_DocumentIsolation(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())

	if err := rec.SelectClient(context.Background(), "client-1"); err != nil {
		t.Fatalf("SelectClient client-1: %v", err)
	}
	if err := rec.SelectClient(context.Background(), "client-2"); err != nil {
		t.Fatalf("SelectClient client-2: %v", err)
	}

	snap := rec.Snapshot()
	docs := snap.SelectedClient.Documents
	if len(docs) != 1 || docs[0].ID != "doc-2" {
		t.Fatalf("documents from a previous selection leaked: %+v", docs)
	}
}

func TestReconciler_Refresh_MergesSelectedClient(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())
	if err := rec.SelectClient(context.Background(), "client-1"); err != nil {
		t.Fatalf("SelectClient: %v", err)
	}

	// The record changes server-side; the next refresh must pick it up
	// without dropping the selection or its document list.
	newName := "Amina Diallo-Keita"
	if err := f.UpdateClient(context.Background(), "client-1", ports.ClientFields{Name: &newName}); err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	rec.Refresh(context.Background())

	snap := rec.Snapshot()
	if snap.SelectedClient == nil {
		t.Fatalf("selection lost across refresh")
	}
	if snap.SelectedClient.Name != newName {
		t.Fatalf("expected merged name %q, got %q", newName, snap.SelectedClient.Name)
	}
	if len(snap.SelectedClient.Documents) != 1 {
		t.Fatalf("expected documents re-fetched, got %+v", snap.SelectedClient.Documents)
	}
}

func TestReconciler_Refresh_ClearsDeletedSelectedClient(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())
	if err := rec.SelectClient(context.Background(), "client-2"); err != nil {
		t.Fatalf("SelectClient: %v", err)
	}

	f.mu.Lock()
	f.clients = f.clients[:1] // client-2 deleted server-side
	f.mu.Unlock()
	rec.Refresh(context.Background())

	if snap := rec.Snapshot(); snap.SelectedClient != nil {
		t.Fatalf("expected selection cleared, got %+v", snap.SelectedClient)
	}
}

func TestReconciler_SelectAlbum_ScopesGallery(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())

	if err := rec.SelectAlbum(context.Background(), "album-1"); err != nil {
		t.Fatalf("SelectAlbum returned error: %v", err)
	}

	snap := rec.Snapshot()
	if snap.ActiveAlbum == nil || snap.ActiveAlbum.ID != "album-1" {
		t.Fatalf("expected album-1 active, got %+v", snap.ActiveAlbum)
	}
	if len(snap.GalleryItems) != 1 || snap.GalleryItems[0].ID != "photo-1" {
		t.Fatalf("expected gallery scoped to album-1, got %+v", snap.GalleryItems)
	}

	if err := rec.SelectAlbum(context.Background(), "album-404"); !errors.Is(err, domain.ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
}

func TestReconciler_ClearActiveAlbum_RestoresFullListing(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())
	if err := rec.SelectAlbum(context.Background(), "album-1"); err != nil {
		t.Fatalf("SelectAlbum: %v", err)
	}

	rec.ClearActiveAlbum(context.Background())

	snap := rec.Snapshot()
	if snap.ActiveAlbum != nil {
		t.Fatalf("expected no active album, got %+v", snap.ActiveAlbum)
	}
	if len(snap.GalleryItems) != 2 {
		t.Fatalf("expected full listing restored, got %d items", len(snap.GalleryItems))
	}
}

func TestReconciler_DeleteActiveAlbum_ClearsPointerAndGallery(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())
	if err := rec.SelectAlbum(context.Background(), "album-2"); err != nil {
		t.Fatalf("SelectAlbum: %v", err)
	}

	if err := rec.DeleteAlbum(context.Background(), "album-2"); err != nil {
		t.Fatalf("DeleteAlbum returned error: %v", err)
	}

	snap := rec.Snapshot()
	if snap.ActiveAlbum != nil {
		t.Fatalf("deleted album still active: %+v", snap.ActiveAlbum)
	}
	// The cascade removed album-2's photo; the gallery falls back to the
	// unscoped listing of whatever remains.
	if len(snap.GalleryItems) != 1 || snap.GalleryItems[0].ID != "photo-1" {
		t.Fatalf("expected unscoped listing after album delete, got %+v", snap.GalleryItems)
	}
	if len(snap.Albums) != 1 {
		t.Fatalf("expected 1 album left, got %d", len(snap.Albums))
	}
}

func TestReconciler_CreateClient_RefreshesAfterMutation(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())

	err := rec.CreateClient(context.Background(), ports.CreateClientInput{
		Name: "Noor Haddad", LoginCode: "335781",
	})
	if err != nil {
		t.Fatalf("CreateClient returned error: %v", err)
	}

	snap := rec.Snapshot()
	if len(snap.Clients) != 3 {
		t.Fatalf("expected new client visible after refresh, got %d clients", len(snap.Clients))
	}
}

func TestReconciler_CreateClient_Validation(t *testing.T) {
	f := newStubFacade()
	rec := newAdminReconciler(f)

	err := rec.CreateClient(context.Background(), ports.CreateClientInput{Name: "No Code"})
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if n := f.callCount("CreateClient"); n != 0 {
		t.Fatalf("validation failure must not reach the backend, got %d calls", n)
	}
}

func TestReconciler_MutationFailureKeepsState(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())
	before := rec.Snapshot()
	refreshes := f.callCount("GetAppointments")

	f.failures["CreateAlbum"] = errors.New("backend down")
	if err := rec.CreateAlbum(context.Background(), "Doomed", ""); err == nil {
		t.Fatalf("expected error from failed mutation")
	}

	if got := f.callCount("GetAppointments"); got != refreshes {
		t.Fatalf("failed mutation must not trigger a refresh: %d -> %d", refreshes, got)
	}
	if after := rec.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed after failed mutation")
	}
}

func TestReconciler_ArchiveClient_StatusVisibleAfterRefresh(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())

	if err := rec.ArchiveClient(context.Background(), "client-1"); err != nil {
		t.Fatalf("ArchiveClient returned error: %v", err)
	}

	snap := rec.Snapshot()
	var archived *domain.User
	for i := range snap.Clients {
		if snap.Clients[i].ID == "client-1" {
			archived = &snap.Clients[i]
		}
	}
	if archived == nil {
		t.Fatalf("archived client must stay in the roster")
	}
	if !archived.Archived() {
		t.Fatalf("expected archived status, got %q", archived.Status)
	}
}

func TestReconciler_AddGalleryItem_DefaultTitle(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())

	if err := rec.AddGalleryItem(context.Background(), "album-1", "https://cdn.test/3.jpg", ""); err != nil {
		t.Fatalf("AddGalleryItem returned error: %v", err)
	}

	f.mu.Lock()
	last := f.photos[len(f.photos)-1]
	f.mu.Unlock()
	if last.Title != "Untitled" {
		t.Fatalf("expected default title, got %q", last.Title)
	}

	if err := rec.AddGalleryItem(context.Background(), "album-1", "", "x"); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for empty url, got %v", err)
	}
}

func TestReconciler_UploadGalleryFiles_PartialFailure(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	f.failGalleryTitle = "broken"
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())
	refreshes := f.callCount("GetAppointments")

	files := []ports.FileUpload{
		{Name: "first.jpg", ContentType: "image/jpeg", Data: []byte("aaa")},
		{Name: "broken.jpg", ContentType: "image/jpeg", Data: []byte("bbb")},
		{Name: "third.png", ContentType: "image/png", Data: []byte("ccc")},
	}
	result := rec.UploadGalleryFiles(context.Background(), "album-1", files)

	if result.Submitted != 2 || result.Failed != 1 {
		t.Fatalf("expected 2 submitted / 1 failed, got %d/%d", result.Submitted, result.Failed)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "broken.jpg") {
		t.Fatalf("expected error attributed to broken.jpg, got %v", result.Errors)
	}
	if got := f.callCount("GetAppointments"); got != refreshes+1 {
		t.Fatalf("expected exactly one refresh after the batch, got %d", got-refreshes)
	}

	snap := rec.Snapshot()
	titles := map[string]bool{}
	for _, p := range snap.GalleryItems {
		titles[p.Title] = true
	}
	if !titles["first"] || !titles["third"] {
		t.Fatalf("surviving files missing from gallery: %v", titles)
	}
	if titles["broken"] {
		t.Fatalf("failed file must not appear in gallery")
	}
}

func TestReconciler_UploadGalleryFiles_EncodesDataURL(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())

	rec.UploadGalleryFiles(context.Background(), "album-1", []ports.FileUpload{
		{Name: "shoot.final.jpg", ContentType: "image/jpeg", Data: []byte{1, 2, 3}},
	})

	f.mu.Lock()
	last := f.photos[len(f.photos)-1]
	f.mu.Unlock()
	if last.Title != "shoot" {
		t.Fatalf("title must be the name before the first dot, got %q", last.Title)
	}
	if !strings.HasPrefix(last.URL, "data:image/jpeg;base64,") {
		t.Fatalf("expected data URL, got %q", last.URL)
	}
}

func TestReconciler_UploadDocument_ClassifiesType(t *testing.T) {
	f := newStubFacade()
	seedFacade(f)
	rec := newAdminReconciler(f)
	rec.Refresh(context.Background())

	err := rec.UploadDocument(context.Background(), "client-1", "quote.pdf", []byte("pdfbytes"), "application/pdf")
	if err != nil {
		t.Fatalf("UploadDocument returned error: %v", err)
	}

	f.mu.Lock()
	docs := f.documents["client-1"]
	last := docs[len(docs)-1]
	f.mu.Unlock()
	if last.Type != domain.DocTypePDF {
		t.Fatalf("expected pdf type, got %q", last.Type)
	}
	if !strings.HasPrefix(last.URL, "data:application/pdf;base64,") {
		t.Fatalf("expected data URL content, got %q", last.URL)
	}

	err = rec.UploadDocument(context.Background(), "client-1", "", nil, "")
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}
