package broker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notification-service/pkg/notification"
)

type stubAcknowledger struct {
	mu       sync.Mutex
	acks     int
	nacks    int
	requeued bool
}

func (s *stubAcknowledger) Ack(tag uint64, multiple bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acks++
	return nil
}

func (s *stubAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nacks++
	s.requeued = requeue
	return nil
}

func (s *stubAcknowledger) Reject(tag uint64, requeue bool) error {
	return s.Nack(tag, false, requeue)
}

func (s *stubAcknowledger) counts() (acks, nacks int, requeued bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acks, s.nacks, s.requeued
}

func emailSubscription(handler Handler) *subscription {
	return &subscription{
		channel: notification.ChannelEmail,
		queue:   "email_notifications",
		handler: handler,
		ctx:     context.Background(),
	}
}

func wireDelivery(t *testing.T, ack amqp.Acknowledger) amqp.Delivery {
	t.Helper()

	body, err := json.Marshal(notification.Message{
		ID:      "msg-1",
		UserID:  "user-1",
		Channel: notification.ChannelEmail,
		Title:   "Welcome",
		Message: "Hello",
		Status:  notification.StatusQueued,
	})
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body}
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	t.Run("handler success acknowledges", func(t *testing.T) {
		t.Parallel()

		ack := &stubAcknowledger{}
		var got notification.Message
		sub := emailSubscription(func(ctx context.Context, msg notification.Message) error {
			got = msg
			return nil
		})

		New(Config{}).dispatch(sub, wireDelivery(t, ack))

		acks, nacks, _ := ack.counts()
		assert.Equal(t, 1, acks)
		assert.Zero(t, nacks)
		assert.Equal(t, "msg-1", got.ID)
	})

	t.Run("handler error requeues", func(t *testing.T) {
		t.Parallel()

		ack := &stubAcknowledger{}
		sub := emailSubscription(func(ctx context.Context, msg notification.Message) error {
			return errors.New("shutdown mid-flight")
		})

		New(Config{}).dispatch(sub, wireDelivery(t, ack))

		acks, nacks, requeued := ack.counts()
		assert.Zero(t, acks)
		assert.Equal(t, 1, nacks)
		assert.True(t, requeued)
	})

	t.Run("malformed payload is acked and dropped", func(t *testing.T) {
		t.Parallel()

		ack := &stubAcknowledger{}
		handled := false
		sub := emailSubscription(func(ctx context.Context, msg notification.Message) error {
			handled = true
			return nil
		})

		New(Config{}).dispatch(sub, amqp.Delivery{
			Acknowledger: ack,
			DeliveryTag:  1,
			Body:         []byte(`{not json`),
		})

		acks, nacks, _ := ack.counts()
		assert.Equal(t, 1, acks)
		assert.Zero(t, nacks)
		assert.False(t, handled)
	})
}

func TestCloseDrainsInFlightDelivery(t *testing.T) {
	t.Parallel()

	g := New(Config{})
	ack := &stubAcknowledger{}

	started := make(chan struct{})
	release := make(chan struct{})
	sub := emailSubscription(func(ctx context.Context, msg notification.Message) error {
		close(started)
		<-release
		return nil
	})

	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- wireDelivery(t, ack)
	g.consumers.Add(1)
	go g.consumeLoop(sub, deliveries)

	<-started
	closed := make(chan error, 1)
	go func() { closed <- g.Close() }()

	select {
	case <-closed:
		t.Fatal("Close returned while a delivery was still being handled")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Close did not return after the handler finished")
	}

	// The acknowledgement happened before the connection teardown.
	acks, _, _ := ack.counts()
	assert.Equal(t, 1, acks)
}

func TestConsumeLoopStopsWhenDeliveriesClose(t *testing.T) {
	t.Parallel()

	g := New(Config{})
	deliveries := make(chan amqp.Delivery)
	close(deliveries)

	g.consumers.Add(1)
	g.consumeLoop(emailSubscription(func(ctx context.Context, msg notification.Message) error {
		return nil
	}), deliveries)

	done := make(chan struct{})
	go func() {
		g.consumers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consume loop did not release its shutdown tracking")
	}
}
