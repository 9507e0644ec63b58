package config

// Redis backs the response cache on public listing endpoints. The client
// parameters are loaded from environment variables. If the connection
// fails during startup the constructor returns nil and callers degrade
// gracefully by disabling caching.

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from the environment:
//
//	REDIS_HOST / REDIS_PORT – hostname and port of the Redis server
//	REDIS_ADDR              – host:port shorthand (host/port win if both set)
//	REDIS_PASSWORD          – optional password
//	REDIS_DB                – database number (default 0)
//
// The returned client is nil when no connection can be established.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	dbNum := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			dbNum = n
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
