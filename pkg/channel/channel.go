// Package channel maps each notification channel to its transport adapter.
// Adapters are pure: one message in, delivered or an error out. Retrying
// is the consumer's job, not theirs.
package channel

import (
	"context"

	"notification-service/pkg/notification"
)

// Sender delivers a single message over one channel.
type Sender interface {
	Send(ctx context.Context, msg notification.Message) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, msg notification.Message) error

func (f SenderFunc) Send(ctx context.Context, msg notification.Message) error {
	return f(ctx, msg)
}

// Registry is the closed channel -> sender table consumed at wiring time.
type Registry map[notification.Channel]Sender

// NewRegistry builds the fixed table covering every known channel.
func NewRegistry(email, sms, inApp Sender) Registry {
	return Registry{
		notification.ChannelEmail: email,
		notification.ChannelSMS:   sms,
		notification.ChannelInApp: inApp,
	}
}

// For resolves the sender for a channel.
func (r Registry) For(c notification.Channel) (Sender, error) {
	s, ok := r[c]
	if !ok || s == nil {
		return nil, ErrNoSender
	}
	return s, nil
}
