// Package broker owns the RabbitMQ connection and the notification topology:
// a single durable direct exchange with one durable queue per channel, each
// bound under a routing key equal to the queue name.
//
// The package is organised around one type, Gateway, which connects,
// declares the topology, publishes persistent JSON messages and runs
// at-least-once consumer subscriptions.
//
// # Delivery semantics
//
// Publish marks every message persistent and waits for the broker's publisher
// confirm, so a nil error means the broker has taken ownership of the message.
// Publish never retries internally; retrying is the caller's decision.
//
// Subscribe invokes the handler once per delivered message and acknowledges
// the underlying delivery when the handler returns nil. A non-nil handler
// error causes a negative acknowledgement with requeue, so the broker will
// redeliver the message later. Payloads that cannot be decoded are
// acknowledged and dropped with a log entry, since redelivery cannot repair
// a malformed body.
//
// # Reconnection
//
// The gateway watches the connection close notification and redials with the
// configured retry interval, redeclaring the topology and re-establishing
// every active subscription. Unacknowledged messages are redelivered by the
// broker after a reconnect.
//
// Topology is declared idempotently: connecting never deletes or recreates
// an existing exchange or queue, so in-flight messages survive restarts.
//
// # Shutdown
//
// Close waits for deliveries that are already in a handler to finish
// acknowledging or requeuing before it closes the connection, so a send
// that completed during shutdown is never redelivered for lack of an ack.
package broker
