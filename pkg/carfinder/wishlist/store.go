package wishlist

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store kinds accepted by NewStore.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// StoreConfig selects and configures the wishlist backend.
type StoreConfig struct {
	Kind  string
	Path  string // directory for the file store
	DSN   string // sqlite data source
	Redis redis.Options
}

// NewStore opens the backend named by cfg.Kind.
func NewStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Kind {
	case StoreFile, "":
		return NewFileStore(cfg.Path)
	case StoreSQLite:
		return NewSQLiteStore(cfg.DSN)
	case StoreRedis:
		opts := cfg.Redis
		return NewRedisStore(ctx, &opts)
	}
	return nil, fmt.Errorf("unknown wishlist store %q", cfg.Kind)
}
