package database

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const DefaultDBName = "FormcraftDB"

var (
	client     *mongo.Client
	once       sync.Once // ✅ ป้องกันการรัน ConnectMongoDB() ซ้ำ
	connectErr error

	envOnce sync.Once
)

// LoadEnv โหลดค่า Environment Variables จากไฟล์ .env (ถ้ามี)
func LoadEnv() {
	envOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Warning: No .env file found")
		}
	})
}

// ConnectMongoDB เชื่อมต่อกับ MongoDB แค่ครั้งเดียว
// Returns a nil database when MONGO_URI is not set; callers fall back to the
// in-memory stores.
func ConnectMongoDB(ctx context.Context) (*mongo.Database, error) {
	LoadEnv()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Println("⚠️ MONGO_URI not set. Using in-memory stores (data is lost on restart).")
		return nil, nil
	}

	once.Do(func() { // ✅ Run only once
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, connectErr = mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURI))
		if connectErr != nil {
			log.Println("❌ Failed to connect to MongoDB:", connectErr)
			return
		}

		// ตรวจสอบการเชื่อมต่อ
		connectErr = client.Ping(connectCtx, readpref.Primary())
		if connectErr != nil {
			log.Println("❌ MongoDB ping failed:", connectErr)
			return
		}

		log.Println("✅ MongoDB connected successfully")
	})
	if connectErr != nil {
		return nil, connectErr
	}
	return client.Database(DBName()), nil
}

// DBName ชื่อ database จาก MONGO_DB
func DBName() string {
	if name := os.Getenv("MONGO_DB"); name != "" {
		return name
	}
	return DefaultDBName
}

// DisconnectMongoDB closes the shared client if one was opened.
func DisconnectMongoDB(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Println("⚠️ MongoDB disconnect:", err)
	}
}
