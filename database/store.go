package database

import (
	"context"

	"github.com/watchword/watchword/config"
	"github.com/watchword/watchword/core/watcher"
)

// Store is a watcher.Store that can also load what it saved.
type Store interface {
	watcher.Store
	LoadKeywords(ctx context.Context) ([]string, error)
	LoadGroups(ctx context.Context) ([]int64, error)
	Close() error
}

// Open returns the configured store: Redis when db.redis_addr is set,
// otherwise SQLite at db.path.
func Open(ctx context.Context) (Store, error) {
	dbc := config.C().DB
	if dbc.RedisAddr != "" {
		return OpenRedis(ctx, RedisOptions{
			Addr:     dbc.RedisAddr,
			Username: dbc.RedisUser,
			Password: dbc.RedisPassword,
			DB:       dbc.RedisDB,
			Prefix:   dbc.RedisPrefix,
		})
	}
	return OpenSQL(ctx, dbc.Path)
}
