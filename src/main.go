package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "Backend-Formcraft/docs"
	"Backend-Formcraft/src/controllers"
	"Backend-Formcraft/src/database"
	"Backend-Formcraft/src/jobs"
	"Backend-Formcraft/src/routes"
	"Backend-Formcraft/src/seeder"
	"Backend-Formcraft/src/services/auth"
	"Backend-Formcraft/src/services/builder"
	"Backend-Formcraft/src/services/forms"
	"Backend-Formcraft/src/services/notify"
	"Backend-Formcraft/src/utils"

	"github.com/hibiken/asynq"
)

// @title           Formcraft API
// @version         1.0
// @description     Form builder backend: owners design forms, respondents answer them.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database.LoadEnv()

	// เชื่อมต่อกับ MongoDB (ไม่มี MONGO_URI = ใช้ memory store)
	db, err := database.ConnectMongoDB(ctx)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.DisconnectMongoDB(context.Background())

	var formStore forms.Store = forms.NewMemoryStore()
	var userStore auth.UserStore = auth.NewMemoryUserStore()
	if db != nil {
		ms := forms.NewMongoStore(db)
		if err := ms.EnsureIndexes(ctx); err != nil {
			log.Printf("⚠️ forms indexes: %v", err)
		}
		us := auth.NewMongoUserStore(db)
		if err := us.EnsureIndexes(ctx); err != nil {
			log.Printf("⚠️ users indexes: %v", err)
		}
		formStore, userStore = ms, us
	}

	database.InitRedis()
	database.InitAsynq()
	defer database.CloseAsynq()

	var broadcaster notify.Broadcaster = notify.NewLocalBroadcaster()
	if database.RedisClient != nil {
		broadcaster = notify.NewRedisBroadcaster(database.RedisClient)
	}
	direct := notify.NewNotifier(broadcaster)

	var notifier forms.Notifier = direct
	if database.AsynqClient != nil {
		notifier = jobs.NewQueueNotifier(database.AsynqClient, direct)
	}

	formSvc := forms.NewService(formStore,
		forms.WithCountCache(utils.NewResponseCountCache(database.RedisClient)),
		forms.WithNotifier(notifier),
	)
	authSvc := auth.NewService(userStore)

	ttl := utils.GetEnvDuration("BUILDER_SESSION_TTL", builder.DefaultSessionTTL)
	var sessions *builder.Manager
	var worker *asynq.Server
	if database.AsynqClient != nil {
		sessions = builder.NewManager(formSvc, jobs.NewQueueAutosave(database.AsynqClient, jobs.DefaultAutosaveDelay), ttl)
		worker, err = jobs.StartWorker(database.AsynqRedisOpt(), sessions, direct)
		if err != nil {
			log.Fatalf("❌ Asynq worker: %v", err)
		}
	} else {
		local := jobs.NewLocalAutosave(jobs.DefaultAutosaveDelay)
		sessions = builder.NewManager(formSvc, local, ttl)
		local.Bind(sessions.Autosave)
		defer local.Stop()
	}
	go sessions.RunJanitor(ctx, 5*time.Minute)

	if os.Getenv("SEED_DEMO") == "true" {
		if err := seeder.SeedDemo(ctx, authSvc, userStore, formSvc); err != nil {
			log.Printf("⚠️ demo seed: %v", err)
		}
	}

	app := routes.NewApp(routes.Handlers{
		Auth:    controllers.NewAuthController(authSvc),
		Forms:   controllers.NewFormController(formSvc),
		Builder: controllers.NewBuilderController(sessions),
		Stream:  controllers.NewStreamController(broadcaster),
		Public:  controllers.NewPublicController(formSvc),
	})

	go func() {
		<-ctx.Done()
		log.Println("🛑 Shutting down...")
		if worker != nil {
			worker.Shutdown()
		}
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("⚠️ shutdown: %v", err)
		}
	}()

	// get url from .env
	appURI := utils.GetEnv("APP_URI", "8888") // ใช้ 8888 เป็นค่าเริ่มต้น

	// เริ่มเซิร์ฟเวอร์
	log.Println("Server is running on port " + appURI)
	if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(appURI))); err != nil {
		log.Fatal(err)
	}
}
