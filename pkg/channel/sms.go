package channel

import (
	"context"
	"fmt"

	"notification-service/pkg/notification"
	"notification-service/pkg/sms"
)

// SMS adapts an sms.Sender to the notification pipeline.
// The body is the title and message joined by a line break.
type SMS struct {
	sender sms.Sender
}

// NewSMS creates the SMS channel adapter.
func NewSMS(sender sms.Sender) *SMS {
	return &SMS{sender: sender}
}

func (s *SMS) Send(ctx context.Context, msg notification.Message) error {
	if msg.RecipientPhone == "" {
		return fmt.Errorf("%w: recipient_phone", ErrMissingRecipient)
	}
	return s.sender.SendSMS(ctx, sms.SendSMSParams{
		SendTo: msg.RecipientPhone,
		Body:   msg.Title + "\n" + msg.Message,
	})
}
