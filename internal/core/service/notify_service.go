package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/atelier-lumiere/studio-portal/internal/api/metrics"
	"github.com/atelier-lumiere/studio-portal/internal/core/domain"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
)

// NotifyDedup abstracts the duplicate-suppression store (Redis).
type NotifyDedup interface {
	IsDuplicate(ctx context.Context, phone, date string) (bool, error)
	Mark(ctx context.Context, phone, date string) error
}

type notifyService struct {
	notifier ports.Notifier
	dedup    NotifyDedup
	log      zerolog.Logger
}

// NewNotifyService returns a NotifyService that formats booking requests
// into a WhatsApp message and forwards them through the notifier.
func NewNotifyService(notifier ports.Notifier, dedup NotifyDedup, log zerolog.Logger) ports.NotifyService {
	return &notifyService{notifier: notifier, dedup: dedup, log: log}
}

// Notify validates, deduplicates and forwards one booking notification.
// A repeated request for the same phone+date within the dedup TTL is
// silently accepted without a second delivery.
func (s *notifyService) Notify(ctx context.Context, n ports.BookingNotification) error {
	if n.Date == "" || n.Name == "" || n.Phone == "" {
		metrics.NotificationsTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("%w: date, name and phone", domain.ErrMissingField)
	}

	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, n.Phone, n.Date)
		if err != nil {
			s.log.Warn().Err(err).Str("phone", n.Phone).Msg("dedup check failed, sending anyway")
		} else if isDup {
			metrics.NotificationsTotal.WithLabelValues("duplicate").Inc()
			s.log.Debug().Str("phone", n.Phone).Str("date", n.Date).Msg("duplicate booking notification skipped")
			return nil
		}
	}

	if err := s.notifier.Send(ctx, formatBookingMessage(n)); err != nil {
		metrics.NotificationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("notify: %w", err)
	}

	if s.dedup != nil {
		if markErr := s.dedup.Mark(ctx, n.Phone, n.Date); markErr != nil {
			s.log.Warn().Err(markErr).Str("phone", n.Phone).Msg("failed to set dedup key")
		}
	}

	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	s.log.Info().Str("name", n.Name).Str("date", n.Date).Msg("booking notification sent")
	return nil
}

// formatBookingMessage renders the admin-facing WhatsApp text. The wording
// matches what the studio's admin expects on their phone.
func formatBookingMessage(n ports.BookingNotification) string {
	return fmt.Sprintf(
		"📅 *Nouvelle demande de consultation*\n\n👤 Nom : %s\n📞 Téléphone : %s\n🗓 Date : %s\n\nMerci de confirmer ou contacter le client.",
		n.Name, n.Phone, n.Date,
	)
}
