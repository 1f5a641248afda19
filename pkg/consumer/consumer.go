package consumer

import (
	"context"
	"log/slog"
	"time"

	"notification-service/pkg/broker"
	"notification-service/pkg/channel"
	"notification-service/pkg/notification"
)

// DefaultMaxRetries is the delivery attempt budget per message.
const DefaultMaxRetries = 3

// DefaultBackoffBase is the first retry delay; each following delay doubles.
const DefaultBackoffBase = time.Second

// Subscriber is the slice of the broker gateway the consumer depends on.
type Subscriber interface {
	Subscribe(ctx context.Context, ch notification.Channel, handler broker.Handler) error
}

// Consumer processes one channel's queue.
type Consumer struct {
	channel notification.Channel
	gateway Subscriber
	sender  channel.Sender

	maxRetries  int
	backoffBase time.Duration
	logger      *slog.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// Option configures a Consumer.
type Option func(*Consumer)

// WithMaxRetries sets the per-message attempt budget.
func WithMaxRetries(n int) Option {
	return func(c *Consumer) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

// WithBackoffBase sets the first retry delay.
func WithBackoffBase(d time.Duration) Option {
	return func(c *Consumer) {
		if d > 0 {
			c.backoffBase = d
		}
	}
}

// WithLogger sets the logger for the Consumer.
func WithLogger(l *slog.Logger) Option {
	return func(c *Consumer) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a consumer for ch delivering through sender.
func New(ch notification.Channel, gateway Subscriber, sender channel.Sender, opts ...Option) *Consumer {
	c := &Consumer{
		channel:     ch,
		gateway:     gateway,
		sender:      sender,
		maxRetries:  DefaultMaxRetries,
		backoffBase: DefaultBackoffBase,
		logger:      slog.Default(),
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start subscribes the consumer to its channel's queue. Message processing
// happens on the gateway's delivery loop; Start itself does not block.
func (c *Consumer) Start(ctx context.Context) error {
	return c.gateway.Subscribe(ctx, c.channel, c.handle)
}

// Run starts the consumer and returns a function suitable for errgroup.
func (c *Consumer) Run(ctx context.Context) func() error {
	return func() error {
		if err := c.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		return nil
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
