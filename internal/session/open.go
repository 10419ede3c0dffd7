package session

import (
	"context"
	"fmt"
	"time"

	"github.com/easytech/webapi/config"
	"github.com/easytech/webapi/internal/db"
)

const janitorInterval = 15 * time.Minute

// Open builds the session manager with the store selected by SESSION_STORE.
func Open(ctx context.Context, cfg config.Config) (*Manager, error) {
	ttl := time.Duration(cfg.Session.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if len(cfg.Session.Secret) < MinSecretLength {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d bytes", MinSecretLength)
	}

	var store Store
	switch cfg.Session.Store {
	case "", "memory":
		store = NewMemoryStore(ttl, janitorInterval)
	case "redis":
		client, err := db.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store = NewRedisStore(client, ttl)
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.Session.Store)
	}

	return NewManager(store, cfg.Session.Secret, ttl, cfg.Production())
}
