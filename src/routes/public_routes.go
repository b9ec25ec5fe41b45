package routes

import (
	"Backend-Formcraft/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// PublicRoutes หน้าฟอร์มสาธารณะสำหรับผู้ตอบ (ไม่ต้อง login)
func PublicRoutes(app *fiber.App, h *controllers.PublicController) {
	app.Get("/f/:id", h.ShowForm)
	app.Post("/f/:id", h.SubmitForm)
}
