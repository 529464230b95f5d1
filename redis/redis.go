package redis

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

const denyPrefix = "denylist:"

// InitRedis connects the client. Redis backs the token denylist; when
// REDIS_ADDR is not set the denylist degrades to a no-op and logouts are
// best-effort only.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, token denylist disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := Client.Ping(Ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")
}

// DenyToken marks a raw access token as revoked until it would have
// expired anyway.
func DenyToken(token string, ttl time.Duration) error {
	if Client == nil || ttl <= 0 {
		return nil
	}
	return Client.Set(Ctx, denyPrefix+token, "1", ttl).Err()
}

// IsDenied reports whether a raw access token was revoked by a logout.
func IsDenied(token string) bool {
	if Client == nil {
		return false
	}
	n, err := Client.Exists(Ctx, denyPrefix+token).Result()
	if err != nil {
		// fail open: an unreachable denylist must not lock everyone out
		log.Printf("denylist check failed: %v", err)
		return false
	}
	return n > 0
}
