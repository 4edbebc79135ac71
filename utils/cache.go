// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"workshopcart/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds cart sessions when SESSION_BACKEND=redis.
	SessionCacheClient *redis.Client
	// CacheClient is the generic cache client (catalog snapshots).
	CacheClient *redis.Client
)

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis db %d: %w", db, err)
	}
	return client, nil
}

// InitSessionCache initializes the Redis client used for cart sessions.
func InitSessionCache() error {
	client, err := newRedisClient(config.AppConfig.RedisSessionDB)
	if err != nil {
		return err
	}
	SessionCacheClient = client
	return nil
}

// GetSessionCacheClient returns the session client, connecting on first use.
func GetSessionCacheClient() (*redis.Client, error) {
	if SessionCacheClient == nil {
		if err := InitSessionCache(); err != nil {
			return nil, err
		}
	}
	return SessionCacheClient, nil
}

// InitCache initializes the generic Redis cache client.
func InitCache() error {
	client, err := newRedisClient(config.AppConfig.RedisCacheDB)
	if err != nil {
		return err
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the generic cache client, connecting on first use.
func GetCacheClient() (*redis.Client, error) {
	if CacheClient == nil {
		if err := InitCache(); err != nil {
			return nil, err
		}
	}
	return CacheClient, nil
}

// RedisClients returns every redis client that has been opened.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{SessionCacheClient, CacheClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}

// CloseRedis closes all opened redis clients.
func CloseRedis() {
	for _, c := range RedisClients() {
		c.Close()
	}
}
