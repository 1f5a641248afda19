// Package inapp stores in-app notifications per user. The store is
// append-only: insertion order is delivery order and entries are never
// deduplicated. MemoryStore backs single-process deployments; RedisStore
// shares the store between the API and consumer processes.
package inapp

import (
	"context"

	"notification-service/pkg/notification"
)

// Store is the append-only per-user notification store.
type Store interface {
	// Append adds the message to the end of the user's list.
	Append(ctx context.Context, msg notification.Message) error

	// List returns the user's notifications in insertion order.
	// Unknown users yield an empty list, not an error.
	List(ctx context.Context, userID string) ([]notification.Message, error)
}
