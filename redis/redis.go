package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

const blacklistPrefix = "jwt:blacklist:"

// InitRedis connects to Redis when REDIS_ADDR is set. Without it the client
// stays nil and logout token blacklisting is disabled.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("Warning: REDIS_ADDR is not set, logout token blacklist is disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// BlacklistToken stores a revoked token until its natural expiry.
func BlacklistToken(token string, ttl time.Duration) error {
	if Client == nil || ttl <= 0 {
		return nil
	}
	return Client.Set(Ctx, blacklistPrefix+token, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether the token was revoked by a logout.
func IsTokenBlacklisted(token string) bool {
	if Client == nil {
		return false
	}
	n, err := Client.Exists(Ctx, blacklistPrefix+token).Result()
	if err != nil {
		log.Printf("Redis blacklist lookup failed: %v", err)
		return false
	}
	return n > 0
}

// Ping reports Redis connectivity for the health endpoint.
func Ping() error {
	if Client == nil {
		return nil
	}
	return Client.Ping(Ctx).Err()
}
