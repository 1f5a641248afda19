package inapp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"notification-service/pkg/notification"
)

const redisKeyPrefix = "notifications:user:"

// RedisStore is a Redis-backed implementation of the Store interface.
// Each user's notifications live in a Redis list, so appends from multiple
// consumer processes preserve insertion order.
type RedisStore struct {
	db redis.UniversalClient
}

// NewRedisStore creates a Redis-backed notification store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{db: client}
}

func (s *RedisStore) Append(ctx context.Context, msg notification.Message) error {
	if msg.UserID == "" {
		return ErrEmptyUserID
	}
	if msg.ID == "" {
		return ErrEmptyMessageID
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification %s: %w", msg.ID, err)
	}
	if err := s.db.RPush(ctx, redisKeyPrefix+msg.UserID, data).Err(); err != nil {
		return fmt.Errorf("append notification %s: %w", msg.ID, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, userID string) ([]notification.Message, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	raw, err := s.db.LRange(ctx, redisKeyPrefix+userID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list notifications for %s: %w", userID, err)
	}
	msgs := make([]notification.Message, 0, len(raw))
	for _, item := range raw {
		var msg notification.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("decode stored notification: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
