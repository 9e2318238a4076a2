package ports

import "context"

// Notifier delivers a message to the studio's messaging channel (WhatsApp
// via Twilio in production). Implementations report misconfiguration and
// delivery failures as errors.
type Notifier interface {
	Send(ctx context.Context, body string) error
}

// BookingNotification is the payload accepted by the notification webhook.
type BookingNotification struct {
	Date  string
	Name  string
	Phone string
}

// NotifyService validates and forwards booking notifications.
type NotifyService interface {
	Notify(ctx context.Context, n BookingNotification) error
}
