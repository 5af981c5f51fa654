package data

import (
	"github.com/go-redis/redis/v8"
)

// NewRedisClient creates and returns a new Redis client.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
