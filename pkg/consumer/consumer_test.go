package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notification-service/pkg/broker"
	"notification-service/pkg/channel"
	"notification-service/pkg/consumer"
	"notification-service/pkg/notification"
)

type stubGateway struct {
	handler broker.Handler
}

func (s *stubGateway) Subscribe(ctx context.Context, ch notification.Channel, handler broker.Handler) error {
	s.handler = handler
	return nil
}

// failingSender fails the first failures attempts, then succeeds.
type failingSender struct {
	failures int
	err      error
	calls    int
}

func (s *failingSender) Send(ctx context.Context, msg notification.Message) error {
	s.calls++
	if s.calls <= s.failures {
		return s.err
	}
	return nil
}

func startConsumer(t *testing.T, sender channel.Sender, opts ...consumer.Option) broker.Handler {
	t.Helper()

	gw := &stubGateway{}
	opts = append(opts, consumer.WithBackoffBase(time.Millisecond))
	c := consumer.New(notification.ChannelEmail, gw, sender, opts...)
	require.NoError(t, c.Start(context.Background()))
	require.NotNil(t, gw.handler)
	return gw.handler
}

func testMessage() notification.Message {
	return notification.Message{
		ID:             "msg-1",
		UserID:         "user-1",
		Channel:        notification.ChannelEmail,
		Title:          "Welcome",
		Message:        "Hello",
		Status:         notification.StatusQueued,
		CreatedAt:      time.Now(),
		RecipientEmail: "user@example.com",
	}
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Second, consumer.Backoff(time.Second, 0))
	assert.Equal(t, 2*time.Second, consumer.Backoff(time.Second, 1))
	assert.Equal(t, 4*time.Second, consumer.Backoff(time.Second, 2))
	assert.Equal(t, 20*time.Millisecond, consumer.Backoff(5*time.Millisecond, 2))
}

func TestConsumerDelivery(t *testing.T) {
	t.Parallel()

	t.Run("first attempt succeeds", func(t *testing.T) {
		t.Parallel()

		sender := &failingSender{}
		handle := startConsumer(t, sender)

		require.NoError(t, handle(context.Background(), testMessage()))
		assert.Equal(t, 1, sender.calls)
	})

	t.Run("transient failure retried until success", func(t *testing.T) {
		t.Parallel()

		sender := &failingSender{failures: 2, err: errors.New("smtp timeout")}
		handle := startConsumer(t, sender)

		require.NoError(t, handle(context.Background(), testMessage()))
		assert.Equal(t, 3, sender.calls)
	})

	t.Run("budget exhausted acknowledges as failed", func(t *testing.T) {
		t.Parallel()

		sender := &failingSender{failures: 100, err: errors.New("smtp timeout")}
		handle := startConsumer(t, sender)

		// A terminal failure still returns nil so the delivery is acked
		// rather than requeued into an endless loop.
		require.NoError(t, handle(context.Background(), testMessage()))
		assert.Equal(t, 3, sender.calls)
	})

	t.Run("custom retry budget", func(t *testing.T) {
		t.Parallel()

		sender := &failingSender{failures: 100, err: errors.New("smtp timeout")}
		handle := startConsumer(t, sender, consumer.WithMaxRetries(5))

		require.NoError(t, handle(context.Background(), testMessage()))
		assert.Equal(t, 5, sender.calls)
	})

	t.Run("missing recipient fails without retrying", func(t *testing.T) {
		t.Parallel()

		sender := &failingSender{
			failures: 100,
			err:      fmt.Errorf("%w: recipient_email", channel.ErrMissingRecipient),
		}
		handle := startConsumer(t, sender)

		require.NoError(t, handle(context.Background(), testMessage()))
		assert.Equal(t, 1, sender.calls)
	})

	t.Run("cancellation during backoff propagates for requeue", func(t *testing.T) {
		t.Parallel()

		sender := &failingSender{failures: 100, err: errors.New("smtp timeout")}
		gw := &stubGateway{}
		c := consumer.New(notification.ChannelEmail, gw, sender,
			consumer.WithBackoffBase(time.Minute))
		require.NoError(t, c.Start(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- gw.handler(ctx, testMessage()) }()

		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("handler did not return after cancellation")
		}
		assert.Equal(t, 1, sender.calls)
	})
}
