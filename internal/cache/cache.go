package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RouteKey identifies one ranked route query against one state of one
// network. Revision changes on every mutation, so stale rankings are never
// served; they simply expire.
type RouteKey struct {
	NetworkID string
	Revision  uint64
	From      string
	To        string
	Scheme    string
}

// Cache stores ranked itineraries as ordered lists of flight ids.
type Cache interface {
	Get(ctx context.Context, key RouteKey) ([][]int, bool)
	Set(ctx context.Context, key RouteKey, routes [][]int) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, key RouteKey) ([][]int, bool) {
	data, err := c.client.Get(ctx, generateKey(key)).Bytes()
	if err != nil {
		return nil, false
	}

	var routes [][]int
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, false
	}

	return routes, true
}

func (c *RedisCache) Set(ctx context.Context, key RouteKey, routes [][]int) error {
	if routes == nil {
		routes = [][]int{}
	}

	data, err := json.Marshal(routes)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, generateKey(key), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, key RouteKey) ([][]int, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, key RouteKey, routes [][]int) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func generateKey(key RouteKey) string {
	data, _ := json.Marshal(key)
	hash := sha256.Sum256(data)
	return "route:" + hex.EncodeToString(hash[:])
}
