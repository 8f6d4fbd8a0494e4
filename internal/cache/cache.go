package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/primefit-labs/training-scheduler/internal/config"
)

func NewRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Redis is a cache and a fanout channel here, never the source of
		// truth. The API stays up without it.
		log.Printf("redis unavailable at %s: %v", cfg.RedisAddr, err)
	}

	return client
}
