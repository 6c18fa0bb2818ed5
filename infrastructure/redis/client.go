package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/config"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/logger"
)

// Cache keys ของ todo lists
const (
	todoListPrefix  = "todos:list:"
	todoListPattern = todoListPrefix + "*"
	// generation ถูก INCR ทุก mutation; list ที่เขียนด้วย generation เก่าจะไม่ถูกอ่านอีก
	todoListGenKey = "todos:listgen"
)

// Client wraps the Redis client used as an optional list cache.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewClient(cfg *config.RedisConfig, timeout time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	if cfg.DB > 0 {
		opt.DB = cfg.DB
	}
	opt.DialTimeout = timeout

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	logger.Info("Redis connected", "url", cfg.URL)
	return NewClientFromRedis(rdb, cfg.CacheTTL), nil
}

// NewClientFromRedis wraps an already configured go-redis client.
func NewClientFromRedis(rdb *redis.Client, ttl time.Duration) *Client {
	return &Client{rdb: rdb, ttl: ttl}
}

// TodoListKey is the cache key for one list/search query at a generation.
func TodoListKey(generation int64, query models.TodoQuery) string {
	return todoListPrefix + strconv.FormatInt(generation, 10) + ":" + query.Key()
}

// ListGeneration returns the current list generation (0 before any mutation).
func (c *Client) ListGeneration(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, todoListGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetTodoList returns (nil, false, nil) on a cache miss.
func (c *Client) GetTodoList(ctx context.Context, generation int64, query models.TodoQuery) ([]*models.Todo, bool, error) {
	var todos []*models.Todo
	if err := c.GetJSON(ctx, TodoListKey(generation, query), &todos); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return todos, true, nil
}

// SetTodoList stores a list under the generation it was read at. A write that
// races with a mutation lands under a stale generation and is never served.
func (c *Client) SetTodoList(ctx context.Context, generation int64, query models.TodoQuery, todos []*models.Todo) error {
	return c.SetJSON(ctx, TodoListKey(generation, query), todos, c.ttl)
}

// InvalidateTodoLists bumps the generation and drops every cached list.
// Called after each mutation; returns the new generation.
func (c *Client) InvalidateTodoLists(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Incr(ctx, todoListGenKey).Result()
	if err != nil {
		return 0, err
	}
	if _, err := c.ScanAndDelete(ctx, todoListPattern); err != nil {
		return gen, err
	}
	return gen, nil
}

func (c *Client) SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, expiration).Err()
}

// GetJSON returns redis.Nil if key does not exist
func (c *Client) GetJSON(ctx context.Context, key string, target any) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// ScanAndDelete deletes all keys matching a pattern
func (c *Client) ScanAndDelete(ctx context.Context, pattern string) (int64, error) {
	var deleted int64
	var cursor uint64

	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
