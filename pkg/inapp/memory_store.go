package inapp

import (
	"context"
	"sync"

	"notification-service/pkg/notification"
)

// MemoryStore is an in-memory implementation of the Store interface.
// Safe for concurrent use by the channel consumers and API readers.
type MemoryStore struct {
	notifications map[string][]notification.Message // userID -> messages
	mu            sync.RWMutex
}

// NewMemoryStore creates a new in-memory notification store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notifications: make(map[string][]notification.Message),
	}
}

func (s *MemoryStore) Append(ctx context.Context, msg notification.Message) error {
	if msg.UserID == "" {
		return ErrEmptyUserID
	}
	if msg.ID == "" {
		return ErrEmptyMessageID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[msg.UserID] = append(s.notifications[msg.UserID], msg)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, userID string) ([]notification.Message, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs, ok := s.notifications[userID]
	if !ok {
		return []notification.Message{}, nil
	}
	// Return a copy to prevent external mutation of stored data.
	out := make([]notification.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}
