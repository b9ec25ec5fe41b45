package routes

import (
	"Backend-Formcraft/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// Handlers รวม controller ทุกตัวที่ routes ต้องใช้
type Handlers struct {
	Auth    *controllers.AuthController
	Forms   *controllers.FormController
	Builder *controllers.BuilderController
	Stream  *controllers.StreamController
	Public  *controllers.PublicController
}

func InitRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api")

	authRoutes(api, h.Auth)
	FormRoutes(api, h.Forms)
	BuilderRoutes(api, h.Builder)
	StreamRoutes(api, h.Stream)
	PublicRoutes(app, h.Public)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
