// Package store persists application state as JSON values under named keys.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/klabast/wb-services/controle-cafe/internal/config"
)

// ErrNotFound is returned by Get when a key has never been written or was deleted
var ErrNotFound = errors.New("key not found")

// KV is a flat key/value store holding serialized values
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open creates the backend selected in the store config
func Open(cfg *config.Config, log *zap.Logger) (KV, error) {
	switch cfg.Store.Driver {
	case config.DriverFile:
		return NewFileStore(cfg.Store.Dir, log)
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverRedis:
		return NewRedisStore(&cfg.Redis, log)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// LoadJSON decodes the value stored under key into a T.
// Missing or empty values yield def. A value that fails to decode is removed
// from the store and def is returned; the failure is only logged.
func LoadJSON[T any](ctx context.Context, kv KV, key string, def T, log *zap.Logger) T {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn("Failed to read stored value, using default", zap.String("key", key), zap.Error(err))
		}
		return def
	}
	if len(data) == 0 {
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warn("Corrupt stored value removed, using default", zap.String("key", key), zap.Error(err))
		if err := kv.Delete(ctx, key); err != nil {
			log.Warn("Failed to remove corrupt value", zap.String("key", key), zap.Error(err))
		}
		return def
	}
	return v
}

// SaveJSON encodes v and writes it under key
func SaveJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
