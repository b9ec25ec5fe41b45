package database

import (
	"log"

	"github.com/hibiken/asynq"
)

// RedisConnOpt is the asynq connection type, re-exported so callers don't
// import asynq just to start a worker.
type RedisConnOpt = asynq.RedisClientOpt

var AsynqClient *asynq.Client

// InitAsynq initializes Asynq client only if Redis is available
func InitAsynq() {
	// Check if Redis is available (RedisClient != nil means InitRedis was successful)
	if RedisClient == nil || RedisURI == "" {
		log.Println("⚠️ Redis not available. Asynq client will not be initialized.")
		return
	}

	AsynqClient = asynq.NewClient(AsynqRedisOpt())
	log.Println("✅ Asynq Client initialized successfully")
}

// CloseAsynq releases the client on shutdown.
func CloseAsynq() {
	if AsynqClient == nil {
		return
	}
	if err := AsynqClient.Close(); err != nil {
		log.Println("⚠️ Asynq client close:", err)
	}
}
