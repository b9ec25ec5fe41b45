package routes

import (
	"errors"

	"Backend-Formcraft/src/models"
	"Backend-Formcraft/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// NewApp สร้าง fiber app พร้อม middleware และ routes ทั้งหมด
func NewApp(h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Formcraft API",
		BodyLimit:    1 << 20,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))

	// ✅ เปิดใช้งาน CORS Middleware
	origins := utils.GetEnv("ALLOWED_ORIGINS", "*")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	InitRoutes(app, h)
	return app
}

// errorHandler keeps fiber's own errors (404 route, body too large) in the
// ErrorResponse shape.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	return c.Status(status).JSON(models.ErrorResponse{Status: status, Message: err.Error()})
}
