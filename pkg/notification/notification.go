package notification

import (
	"time"

	"github.com/google/uuid"
)

// Channel identifies the delivery medium for a notification.
// The set is closed: fan-out, routing and consumer wiring all key off it.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelInApp Channel = "in_app"
)

// Valid reports whether c is one of the known channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelInApp:
		return true
	}
	return false
}

// Channels returns all known channels in a stable order.
func Channels() []Channel {
	return []Channel{ChannelEmail, ChannelSMS, ChannelInApp}
}

// Status is the lifecycle state of a single message.
// A message transitions exactly once: queued -> delivered or queued -> failed.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

// Terminal reports whether no further processing happens for this status.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusFailed
}

// Message is the unit that crosses the broker: one per (request, channel) pair,
// created at fan-out time. Field tags define the wire format; a message must
// round-trip losslessly through JSON.
type Message struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Channel        Channel   `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	RecipientEmail string    `json:"recipient_email,omitempty"`
	RecipientPhone string    `json:"recipient_phone,omitempty"`
}

// MarkDelivered transitions the message to its delivered terminal state.
// Returns ErrAlreadyTerminal if the message has already been finalized.
func (m *Message) MarkDelivered() error {
	return m.transition(StatusDelivered)
}

// MarkFailed transitions the message to its failed terminal state.
// Returns ErrAlreadyTerminal if the message has already been finalized.
func (m *Message) MarkFailed() error {
	return m.transition(StatusFailed)
}

func (m *Message) transition(s Status) error {
	if m.Status.Terminal() {
		return ErrAlreadyTerminal
	}
	m.Status = s
	return nil
}

// Request is the caller-facing input: one notification to be fanned out over
// one or more channels. Recipient fields are optional at submission time;
// their absence surfaces as a delivery-time failure, not a validation error.
type Request struct {
	UserID         string    `json:"user_id"`
	Types          []Channel `json:"types"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	RecipientEmail string    `json:"recipient_email,omitempty"`
	RecipientPhone string    `json:"recipient_phone,omitempty"`
}

// Validate checks the structural invariants of the request.
func (r Request) Validate() error {
	if r.UserID == "" {
		return ErrEmptyUserID
	}
	if len(r.Types) == 0 {
		return ErrNoChannels
	}
	for _, c := range r.Types {
		if !c.Valid() {
			return ErrUnknownChannel
		}
	}
	if r.Title == "" || r.Message == "" {
		return ErrEmptyContent
	}
	return nil
}

// FanOut expands the request into one queued message per distinct requested
// channel, preserving the order channels were requested in. Duplicate channel
// entries collapse to the first occurrence.
func (r Request) FanOut(now time.Time) []Message {
	seen := make(map[Channel]struct{}, len(r.Types))
	msgs := make([]Message, 0, len(r.Types))
	for _, c := range r.Types {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		msgs = append(msgs, Message{
			ID:             uuid.New().String(),
			UserID:         r.UserID,
			Channel:        c,
			Title:          r.Title,
			Message:        r.Message,
			Status:         StatusQueued,
			CreatedAt:      now,
			RecipientEmail: r.RecipientEmail,
			RecipientPhone: r.RecipientPhone,
		})
	}
	return msgs
}
