package database

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	RedisURI    string
	RedisCtx    = context.Background()
)

// InitRedis connects to REDIS_URI. Without it (or when the ping fails)
// RedisClient stays nil and everything that needs redis runs in dev mode.
func InitRedis() {
	LoadEnv()
	RedisURI = os.Getenv("REDIS_URI") // เช่น localhost:6379
	if RedisURI == "" {
		log.Println("⚠️ REDIS_URI not set. Redis cache, pub/sub and Asynq are disabled.")
		return
	}

	c := redis.NewClient(&redis.Options{
		Addr:     RedisURI,
		Password: os.Getenv("REDIS_PASSWORD"), // ถ้าไม่มีรหัสผ่านปล่อยว่าง
		DB:       0,
	})
	if _, err := c.Ping(RedisCtx).Result(); err != nil {
		log.Println("❌ Failed to connect Redis:", err)
		_ = c.Close()
		return
	}
	RedisClient = c
	log.Println("✅ Redis connected successfully")
}

// AsynqRedisOpt is the connection Asynq client and server share.
func AsynqRedisOpt() RedisConnOpt {
	return RedisConnOpt{Addr: RedisURI, Password: os.Getenv("REDIS_PASSWORD")}
}
