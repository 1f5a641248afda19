// Package producer fans a notification request out into one broker message
// per requested channel.
package producer

import (
	"context"
	"log/slog"
	"time"

	"notification-service/pkg/logger"
	"notification-service/pkg/notification"
)

// Publisher is the slice of the broker gateway the producer depends on.
type Publisher interface {
	Publish(ctx context.Context, ch notification.Channel, msg notification.Message) error
}

// PublishResult reports the outcome of queueing one channel's message.
// Err is nil when the broker accepted the message; the message itself then
// carries status queued. A failed publish for one channel never prevents
// the other channels from being attempted.
type PublishResult struct {
	Channel notification.Channel
	Message notification.Message
	Err     error
}

// Producer expands requests and hands each message to the broker gateway.
type Producer struct {
	gateway Publisher
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Producer.
type Option func(*Producer)

// WithLogger sets the logger for the Producer.
func WithLogger(l *slog.Logger) Option {
	return func(p *Producer) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock overrides the message timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Producer) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a Producer publishing through gateway.
func New(gateway Publisher, opts ...Option) *Producer {
	p := &Producer{
		gateway: gateway,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit fans the request out into one queued message per distinct requested
// channel and publishes each. It returns one result per channel in request
// order and only after every channel has been attempted; actual delivery
// happens later, asynchronously, in the channel consumers.
func (p *Producer) Submit(ctx context.Context, req notification.Request) []PublishResult {
	msgs := req.FanOut(p.now())
	results := make([]PublishResult, 0, len(msgs))
	for _, msg := range msgs {
		result := PublishResult{Channel: msg.Channel, Message: msg}
		if err := p.gateway.Publish(ctx, msg.Channel, msg); err != nil {
			result.Err = err
			p.logger.Error("failed to queue notification",
				logger.Channel(string(msg.Channel)),
				logger.MessageID(msg.ID),
				logger.UserID(msg.UserID),
				logger.Error(err))
		} else {
			p.logger.Info("notification queued",
				logger.Channel(string(msg.Channel)),
				logger.MessageID(msg.ID),
				logger.UserID(msg.UserID))
		}
		results = append(results, result)
	}
	return results
}
