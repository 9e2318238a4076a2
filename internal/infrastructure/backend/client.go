// Package backend implements the API client facade over the studio
// backend's REST contract. Every entity read and mutation in the portal
// goes through this client.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client is an HTTP implementation of ports.Facade. It performs no retries
// or backoff; callers own their degradation policy.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a facade client against the given backend base URL. The
// service token, when set, is sent as a bearer credential on every call.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// errorEnvelope matches the backend's canonical error body.
type errorEnvelope struct {
	Error string `json:"error"`
}

// do executes one backend call. A non-nil out is decoded from a 2xx body;
// non-2xx responses are turned into errors carrying the backend's message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		if env.Error == "" {
			env.Error = http.StatusText(resp.StatusCode)
		}
		return statusError(resp.StatusCode, env.Error)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("backend: decode response: %w", err)
		}
	}
	return nil
}

// statusError maps well-known backend statuses onto domain sentinels so
// callers can branch with errors.Is.
func statusError(code int, msg string) error {
	switch code {
	case http.StatusNotFound:
		return fmt.Errorf("backend: %s: %w", msg, errNotFoundFor(msg))
	case http.StatusUnauthorized:
		return fmt.Errorf("backend: %s: %w", msg, domain.ErrInvalidCredentials)
	case http.StatusConflict:
		return fmt.Errorf("backend: %s: %w", msg, domain.ErrUserExists)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("backend: %s: %w", msg, domain.ErrInvalidTransition)
	default:
		return fmt.Errorf("backend: %s (status %d)", msg, code)
	}
}

func errNotFoundFor(msg string) error {
	switch msg {
	case "album not found":
		return domain.ErrAlbumNotFound
	case "appointment not found":
		return domain.ErrAppointmentNotFound
	case "document not found":
		return domain.ErrDocumentNotFound
	default:
		return domain.ErrUserNotFound
	}
}

// --- Appointments ---

func (c *Client) GetAppointments(ctx context.Context) ([]domain.Appointment, error) {
	var out []domain.Appointment
	if err := c.do(ctx, http.MethodGet, "/v1/appointments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAppointment(ctx context.Context, date, name, email string) error {
	body := map[string]string{"date": date, "client_name": name, "email": email}
	return c.do(ctx, http.MethodPost, "/v1/appointments", body, nil)
}

func (c *Client) UpdateAppointment(ctx context.Context, id string, fields ports.AppointmentFields) error {
	return c.do(ctx, http.MethodPatch, "/v1/appointments/"+url.PathEscape(id), fields, nil)
}

// --- Clients ---

func (c *Client) GetClients(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.do(ctx, http.MethodGet, "/v1/clients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateClient(ctx context.Context, name, email, phone, loginCode string) error {
	body := map[string]string{"name": name, "email": email, "phone": phone, "login_code": loginCode}
	return c.do(ctx, http.MethodPost, "/v1/clients", body, nil)
}

func (c *Client) UpdateClient(ctx context.Context, id string, fields ports.ClientFields) error {
	return c.do(ctx, http.MethodPatch, "/v1/clients/"+url.PathEscape(id), fields, nil)
}

func (c *Client) ArchiveClient(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/v1/clients/"+url.PathEscape(id)+"/archive", nil, nil)
}

func (c *Client) UnarchiveClient(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/v1/clients/"+url.PathEscape(id)+"/unarchive", nil, nil)
}

// --- Staff ---

func (c *Client) GetStaff(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.do(ctx, http.MethodGet, "/v1/staff", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateStaff(ctx context.Context, in ports.CreateStaffInput) error {
	body := map[string]string{
		"first_name":  in.FirstName,
		"family_name": in.FamilyName,
		"email":       in.Email,
		"password":    in.Password,
		"phone":       in.Phone,
	}
	return c.do(ctx, http.MethodPost, "/v1/staff", body, nil)
}

// --- Albums ---

func (c *Client) GetAlbums(ctx context.Context) ([]domain.Album, error) {
	var out []domain.Album
	if err := c.do(ctx, http.MethodGet, "/v1/albums", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetClientAlbums lists the albums a client may browse: their own plus the
// shared ones. The scoping itself is enforced backend-side.
func (c *Client) GetClientAlbums(ctx context.Context, clientID string) ([]domain.Album, error) {
	var out []domain.Album
	path := "/v1/albums?client_id=" + url.QueryEscape(clientID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAlbum(ctx context.Context, title, clientID string) error {
	body := map[string]string{"title": title}
	if clientID != "" {
		body["client_id"] = clientID
	}
	return c.do(ctx, http.MethodPost, "/v1/albums", body, nil)
}

func (c *Client) DeleteAlbum(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/albums/"+url.PathEscape(id), nil, nil)
}

// --- Gallery ---

func (c *Client) GetAllPhotos(ctx context.Context) ([]domain.GalleryItem, error) {
	var out []domain.GalleryItem
	if err := c.do(ctx, http.MethodGet, "/v1/photos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetGalleryByAlbum(ctx context.Context, albumID string) ([]domain.GalleryItem, error) {
	var out []domain.GalleryItem
	path := "/v1/albums/" + url.PathEscape(albumID) + "/photos"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddGalleryItem(ctx context.Context, albumID, urlOrContent, title string) error {
	body := map[string]string{"content": urlOrContent, "title": title}
	return c.do(ctx, http.MethodPost, "/v1/albums/"+url.PathEscape(albumID)+"/photos", body, nil)
}

func (c *Client) DeleteGalleryItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/photos/"+url.PathEscape(id), nil, nil)
}

// --- Documents ---

func (c *Client) GetClientDocuments(ctx context.Context, clientID string) ([]domain.ClientDocument, error) {
	var out []domain.ClientDocument
	path := "/v1/clients/" + url.PathEscape(clientID) + "/documents"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UploadDocument(ctx context.Context, clientID, filename, content string, docType domain.DocumentType) error {
	body := map[string]string{"name": filename, "content": content, "type": string(docType)}
	return c.do(ctx, http.MethodPost, "/v1/clients/"+url.PathEscape(clientID)+"/documents", body, nil)
}

func (c *Client) DeleteDocument(ctx context.Context, clientID, docID string) error {
	path := "/v1/clients/" + url.PathEscape(clientID) + "/documents/" + url.PathEscape(docID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// --- Auth ---

// VerifyCredentials implements ports.CredentialVerifier against the
// backend's verification endpoint.
func (c *Client) VerifyCredentials(ctx context.Context, creds ports.Credentials) (*domain.User, error) {
	body := map[string]string{
		"email":      creds.Email,
		"password":   creds.Password,
		"name":       creds.Name,
		"login_code": creds.LoginCode,
	}
	var out domain.User
	if err := c.do(ctx, http.MethodPost, "/v1/auth/verify", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping reports whether the backend is reachable, for readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}
