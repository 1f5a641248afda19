package channel

import (
	"context"
	"fmt"

	"notification-service/pkg/email"
	"notification-service/pkg/notification"
)

// Email adapts an email.Sender to the notification pipeline.
// Subject is the message title, body is the message text.
type Email struct {
	sender email.Sender
}

// NewEmail creates the email channel adapter.
func NewEmail(sender email.Sender) *Email {
	return &Email{sender: sender}
}

func (e *Email) Send(ctx context.Context, msg notification.Message) error {
	if msg.RecipientEmail == "" {
		return fmt.Errorf("%w: recipient_email", ErrMissingRecipient)
	}
	return e.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:  msg.RecipientEmail,
		Subject: msg.Title,
		Body:    msg.Message,
		Tag:     "notification",
	})
}
