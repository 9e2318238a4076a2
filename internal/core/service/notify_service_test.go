package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

type stubNotifier struct {
	sent []string
	err  error
}

func (n *stubNotifier) Send(_ context.Context, body string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, body)
	return nil
}

type stubDedup struct {
	seen     map[string]bool
	checkErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, phone, date string) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[phone+"|"+date], nil
}

func (d *stubDedup) Mark(_ context.Context, phone, date string) error {
	d.seen[phone+"|"+date] = true
	return nil
}

func validBooking() ports.BookingNotification {
	return ports.BookingNotification{
		Date:  "2026-09-12",
		Name:  "Amina Diallo",
		Phone: "+33612345678",
	}
}

func TestNotifyService_Notify_Sends(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewNotifyService(notifier, newStubDedup(), zerolog.Nop())

	if err := svc.Notify(context.Background(), validBooking()); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(notifier.sent))
	}
	msg := notifier.sent[0]
	for _, want := range []string{"Nouvelle demande de consultation", "Amina Diallo", "+33612345678", "2026-09-12"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestNotifyService_Notify_MissingFields(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewNotifyService(notifier, newStubDedup(), zerolog.Nop())

	cases := []ports.BookingNotification{
		{},
		{Date: "2026-09-12", Name: "Amina Diallo"},
		{Date: "2026-09-12", Phone: "+33612345678"},
		{Name: "Amina Diallo", Phone: "+33612345678"},
	}
	for _, n := range cases {
		if err := svc.Notify(context.Background(), n); !errors.Is(err, domain.ErrMissingField) {
			t.Fatalf("booking %+v: expected ErrMissingField, got %v", n, err)
		}
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("invalid bookings must not be delivered")
	}
}

func TestNotifyService_Notify_SuppressesDuplicates(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewNotifyService(notifier, newStubDedup(), zerolog.Nop())

	if err := svc.Notify(context.Background(), validBooking()); err != nil {
		t.Fatalf("first Notify: %v", err)
	}
	if err := svc.Notify(context.Background(), validBooking()); err != nil {
		t.Fatalf("duplicate Notify must be accepted silently: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected a single delivery, got %d", len(notifier.sent))
	}
}

func TestNotifyService_Notify_DedupFailureStillDelivers(t *testing.T) {
	notifier := &stubNotifier{}
	dedup := newStubDedup()
	dedup.checkErr = errors.New("redis down")
	svc := NewNotifyService(notifier, dedup, zerolog.Nop())

	if err := svc.Notify(context.Background(), validBooking()); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("dedup outage must not block delivery, got %d messages", len(notifier.sent))
	}
}

func TestNotifyService_Notify_NilDedup(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewNotifyService(notifier, nil, zerolog.Nop())

	if err := svc.Notify(context.Background(), validBooking()); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(notifier.sent))
	}
}

func TestNotifyService_Notify_ProviderError(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("provider rejected message")}
	dedup := newStubDedup()
	svc := NewNotifyService(notifier, dedup, zerolog.Nop())

	err := svc.Notify(context.Background(), validBooking())
	if err == nil {
		t.Fatalf("expected delivery error")
	}
	if errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("delivery failure must not look like a validation failure")
	}
	if len(dedup.seen) != 0 {
		t.Fatalf("failed delivery must not mark the dedup key")
	}
}
