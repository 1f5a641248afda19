package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"notification-service/pkg/logger"
	"notification-service/pkg/notification"
)

// Handler processes one delivered message. A nil return acknowledges the
// delivery; a non-nil return requeues it for redelivery.
type Handler func(ctx context.Context, msg notification.Message) error

type subscription struct {
	channel notification.Channel
	queue   string
	handler Handler
	ctx     context.Context
}

// Gateway is the single owner of the AMQP connection. Producers and
// consumers share one Gateway; each consumer subscription gets its own
// AMQP channel, while publishing is serialized on a dedicated channel
// running in confirm mode.
type Gateway struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	conn   *amqp.Connection
	pubCh  *amqp.Channel
	subs   []*subscription
	closed bool
	done   chan struct{}

	// consumers tracks running consume loops so Close can wait for
	// in-flight deliveries to finish acknowledging.
	consumers sync.WaitGroup
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger for the Gateway.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// New returns an unconnected Gateway.
func New(cfg Config, opts ...Option) *Gateway {
	g := &Gateway{
		cfg:    cfg,
		logger: slog.Default(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Connect dials the broker, bounded by ConnectAttempts, and declares the
// exchange, queues and bindings. Declaration is idempotent: existing
// topology and any enqueued messages are left untouched.
func (g *Gateway) Connect(ctx context.Context) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return ErrClosed
	}
	if g.conn != nil && !g.conn.IsClosed() {
		g.mu.Unlock()
		return nil
	}
	g.mu.Unlock()

	var lastErr error
	for attempt := 1; ; attempt++ {
		conn, err := amqp.Dial(g.cfg.URL)
		if err == nil {
			if err = g.setup(conn); err == nil {
				g.logger.Info("connected to broker", slog.String("exchange", Exchange))
				return nil
			}
			_ = conn.Close()
		}
		lastErr = err
		if attempt >= g.cfg.ConnectAttempts {
			break
		}
		g.logger.Warn("broker dial failed, retrying",
			slog.Int("attempt", attempt),
			logger.Error(err))
		select {
		case <-ctx.Done():
			return errors.Join(ErrConnectFailed, ctx.Err())
		case <-g.done:
			return ErrClosed
		case <-time.After(g.cfg.RetryInterval):
		}
	}
	return errors.Join(ErrConnectFailed, lastErr)
}

// Publish serializes msg and publishes it to the exchange under the
// channel's routing key, marked persistent. It waits for the broker's
// publisher confirm and never retries internally.
func (g *Gateway) Publish(ctx context.Context, ch notification.Channel, msg notification.Message) error {
	queue, err := QueueName(ch)
	if err != nil {
		return err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message %s: %w", msg.ID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.PublishTimeout)
	defer cancel()

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return ErrClosed
	}
	pubCh := g.pubCh
	if pubCh == nil {
		g.mu.Unlock()
		return ErrNotConnected
	}
	confirm, err := pubCh.PublishWithDeferredConfirmWithContext(ctx, Exchange, queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    msg.CreatedAt,
		Body:         body,
	})
	g.mu.Unlock()
	if err != nil {
		return errors.Join(ErrPublishFailed, err)
	}

	select {
	case <-ctx.Done():
		return errors.Join(ErrPublishFailed, ctx.Err())
	case <-confirm.Done():
		if !confirm.Acked() {
			return ErrPublishFailed
		}
	}
	return nil
}

// Subscribe binds the channel's queue (idempotently) and starts invoking
// handler once per delivered message on a dedicated AMQP channel. The
// subscription survives reconnects; ctx scopes the handler invocations.
func (g *Gateway) Subscribe(ctx context.Context, ch notification.Channel, handler Handler) error {
	queue, err := QueueName(ch)
	if err != nil {
		return err
	}
	if handler == nil {
		return errors.New("subscribe handler cannot be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrClosed
	}
	if g.conn == nil || g.conn.IsClosed() {
		return ErrNotConnected
	}

	sub := &subscription{channel: ch, queue: queue, handler: handler, ctx: ctx}
	if err := g.startConsumeLocked(sub); err != nil {
		return err
	}
	g.subs = append(g.subs, sub)
	g.logger.Info("consumer subscribed",
		logger.Channel(string(ch)),
		slog.String("queue", queue))
	return nil
}

// Close drains in-flight deliveries and releases the connection. Handlers
// that are mid-dispatch finish and acknowledge or requeue their delivery
// before the connection goes away. Safe to call multiple times.
func (g *Gateway) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	close(g.done)
	conn := g.conn
	g.mu.Unlock()

	g.consumers.Wait()

	if conn != nil && !conn.IsClosed() {
		return conn.Close()
	}
	return nil
}

// setup installs a fresh connection: publisher channel in confirm mode,
// topology declaration, re-established subscriptions and a close watcher.
func (g *Gateway) setup(conn *amqp.Connection) error {
	pubCh, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open publisher channel: %w", err)
	}
	if err := pubCh.Confirm(false); err != nil {
		return fmt.Errorf("enable publisher confirms: %w", err)
	}
	if err := declareTopology(pubCh); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrClosed
	}
	g.conn = conn
	g.pubCh = pubCh
	for _, sub := range g.subs {
		if err := g.startConsumeLocked(sub); err != nil {
			return fmt.Errorf("restore subscription for %s: %w", sub.channel, err)
		}
	}
	go g.watch(conn)
	return nil
}

// declareTopology declares the exchange and all queue bindings. All
// declarations are idempotent; nothing is ever deleted here.
func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(Exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", Exchange, err)
	}
	for _, c := range notification.Channels() {
		queue, err := QueueName(c)
		if err != nil {
			return err
		}
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
		if err := ch.QueueBind(queue, queue, Exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", queue, err)
		}
	}
	return nil
}

// startConsumeLocked opens a dedicated AMQP channel for the subscription
// and starts its delivery loop. Caller must hold g.mu.
func (g *Gateway) startConsumeLocked(sub *subscription) error {
	amqpCh, err := g.conn.Channel()
	if err != nil {
		return fmt.Errorf("open consumer channel: %w", err)
	}
	if err := amqpCh.Qos(g.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("set prefetch: %w", err)
	}
	if _, err := amqpCh.QueueDeclare(sub.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", sub.queue, err)
	}
	if err := amqpCh.QueueBind(sub.queue, sub.queue, Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", sub.queue, err)
	}
	deliveries, err := amqpCh.Consume(sub.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume queue %s: %w", sub.queue, err)
	}
	g.consumers.Add(1)
	go g.consumeLoop(sub, deliveries)
	return nil
}

// consumeLoop drains deliveries until the AMQP channel closes, which
// happens on connection loss (the reconnect path restarts the loop), or
// until the gateway shuts down. Each dispatch runs to completion before
// the loop checks for shutdown, so Close never interrupts an
// acknowledgement.
func (g *Gateway) consumeLoop(sub *subscription, deliveries <-chan amqp.Delivery) {
	defer g.consumers.Done()
	for {
		select {
		case <-g.done:
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			g.dispatch(sub, d)
		}
	}
}

func (g *Gateway) dispatch(sub *subscription, d amqp.Delivery) {
	var msg notification.Message
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		// Redelivery cannot repair a malformed body; ack and drop.
		g.logger.Error("dropping malformed payload",
			slog.String("queue", sub.queue),
			logger.Error(err))
		_ = d.Ack(false)
		return
	}
	if err := sub.handler(sub.ctx, msg); err != nil {
		g.logger.Warn("handler failed, requeueing delivery",
			logger.Channel(string(sub.channel)),
			logger.MessageID(msg.ID),
			logger.Error(err))
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

// watch redials after an unexpected connection loss. A graceful Close
// ends the watcher without reconnecting.
func (g *Gateway) watch(conn *amqp.Connection) {
	closeCh := conn.NotifyClose(make(chan *amqp.Error, 1))
	select {
	case <-g.done:
		return
	case amqpErr, ok := <-closeCh:
		if !ok || amqpErr == nil {
			return
		}
		g.logger.Error("broker connection lost", logger.Error(amqpErr))
		g.reconnect()
	}
}

func (g *Gateway) reconnect() {
	for {
		select {
		case <-g.done:
			return
		default:
		}
		conn, err := amqp.Dial(g.cfg.URL)
		if err == nil {
			if err = g.setup(conn); err == nil {
				g.logger.Info("broker connection restored")
				return
			}
			_ = conn.Close()
		}
		g.logger.Warn("broker reconnect failed, retrying", logger.Error(err))
		select {
		case <-g.done:
			return
		case <-time.After(g.cfg.RetryInterval):
		}
	}
}
