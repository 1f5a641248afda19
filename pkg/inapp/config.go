package inapp

import (
	"context"
	"fmt"

	"notification-service/pkg/redis"
)

// Backend selects the store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

// Config selects and configures the in-app store backend. The memory
// backend only works when the API and the in-app consumer share a process;
// split deployments need the redis backend so reads see consumer writes.
type Config struct {
	Backend Backend `env:"INAPP_STORE" envDefault:"memory"`
}

// New builds the configured store. The redis backend connects using the
// standard REDIS_* environment settings.
func New(ctx context.Context, cfg Config, redisCfg redis.Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown in-app store backend: %q", cfg.Backend)
	}
}
