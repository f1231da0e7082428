package database

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/watchword/watchword/core/watcher"
)

const (
	keywordsKey = "keywords" // list, in display order
	groupsKey   = "groups"   // hash chat_id -> title
)

type RedisOptions struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

// RedisStore keeps the same state as SQLStore in Redis.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func OpenRedis(ctx context.Context, opt RedisOptions) (*RedisStore, error) {
	logger := log.FromContext(ctx).WithPrefix("redis")
	opts := &redis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	}
	if opt.Username != "" {
		opts.Username = opt.Username
		logger.Debug("Redis ACL username configured", "username", opt.Username)
	}
	rdb := redis.NewClient(opts)
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Debug("Redis connected", "ping", pong)
	return &RedisStore{rdb: rdb, prefix: opt.Prefix}, nil
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) LoadKeywords(ctx context.Context) ([]string, error) {
	words, err := s.rdb.LRange(ctx, s.key(keywordsKey), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}
	return words, nil
}

func (s *RedisStore) SaveKeywords(ctx context.Context, keywords []string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(keywordsKey))
		if len(keywords) > 0 {
			values := make([]any, len(keywords))
			for i, w := range keywords {
				values[i] = w
			}
			pipe.RPush(ctx, s.key(keywordsKey), values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save keywords: %w", err)
	}
	return nil
}

func (s *RedisStore) AddGroup(ctx context.Context, chat watcher.Chat) error {
	if err := s.rdb.HSet(ctx, s.key(groupsKey), strconv.FormatInt(chat.ID, 10), chat.Title).Err(); err != nil {
		return fmt.Errorf("failed to add group %d: %w", chat.ID, err)
	}
	return nil
}

func (s *RedisStore) LoadGroups(ctx context.Context) ([]int64, error) {
	keys, err := s.rdb.HKeys(ctx, s.key(groupsKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	ids := make([]int64, 0, len(keys))
	for _, k := range keys {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			log.FromContext(ctx).WithPrefix("redis").Warn("Skipping malformed group id", "key", k)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
