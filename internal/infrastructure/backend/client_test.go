package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]domain.Appointment{})
	}))
	defer srv.Close()

	c := New(srv.URL, "svc-token")
	if _, err := c.GetAppointments(context.Background()); err != nil {
		t.Fatalf("GetAppointments returned error: %v", err)
	}
	if gotAuth != "Bearer svc-token" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
}

func TestClient_GetAppointments_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/appointments" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]domain.Appointment{
			{ID: "app-1", Date: "2026-09-12", ClientName: "Amina Diallo", Status: domain.AppointmentPending},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	apps, err := c.GetAppointments(context.Background())
	if err != nil {
		t.Fatalf("GetAppointments returned error: %v", err)
	}
	if len(apps) != 1 || apps[0].ID != "app-1" {
		t.Fatalf("unexpected result: %+v", apps)
	}
}

func TestClient_CreateClient_Payload(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/clients" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if err := c.CreateClient(context.Background(), "Amina Diallo", "amina@x.test", "+336", "482913"); err != nil {
		t.Fatalf("CreateClient returned error: %v", err)
	}
	if got["name"] != "Amina Diallo" || got["login_code"] != "482913" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestClient_GetClientAlbums_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/albums" || r.URL.Query().Get("client_id") != "client-1" {
			t.Fatalf("unexpected request: %s", r.URL.String())
		}
		_ = json.NewEncoder(w).Encode([]domain.Album{{ID: "album-2", Title: "Portraits", ClientID: "client-1"}})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	albums, err := c.GetClientAlbums(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("GetClientAlbums returned error: %v", err)
	}
	if len(albums) != 1 || albums[0].ID != "album-2" {
		t.Fatalf("unexpected result: %+v", albums)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   error
	}{
		{http.StatusNotFound, `{"error":"album not found"}`, domain.ErrAlbumNotFound},
		{http.StatusNotFound, `{"error":"appointment not found"}`, domain.ErrAppointmentNotFound},
		{http.StatusNotFound, `{"error":"document not found"}`, domain.ErrDocumentNotFound},
		{http.StatusNotFound, `{"error":"user not found"}`, domain.ErrUserNotFound},
		{http.StatusUnauthorized, `{"error":"invalid credentials"}`, domain.ErrInvalidCredentials},
		{http.StatusConflict, `{"error":"user already exists"}`, domain.ErrUserExists},
		{http.StatusUnprocessableEntity, `{"error":"invalid status transition"}`, domain.ErrInvalidTransition},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		}))

		c := New(srv.URL, "")
		_, err := c.GetAppointments(context.Background())
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d body %s: expected %v, got %v", tc.status, tc.body, tc.want, err)
		}
		srv.Close()
	}
}

func TestClient_VerifyCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/verify" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["login_code"] != "482913" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(domain.User{ID: "client-1", Name: body["name"], Role: domain.RoleClient})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	user, err := c.VerifyCredentials(context.Background(), ports.Credentials{Name: "Amina Diallo", LoginCode: "482913"})
	if err != nil {
		t.Fatalf("VerifyCredentials returned error: %v", err)
	}
	if user.ID != "client-1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	_, err = c.VerifyCredentials(context.Background(), ports.Credentials{Name: "Amina Diallo", LoginCode: "000000"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
