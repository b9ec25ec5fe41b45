package routes

import (
	"Backend-Formcraft/src/controllers"
	"Backend-Formcraft/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// FormRoutes กำหนดเส้นทางสำหรับฟอร์มของเจ้าของ
func FormRoutes(router fiber.Router, h *controllers.FormController) {
	router.Get("/field-types", controllers.ListFieldTypes)

	forms := router.Group("/forms", middleware.AuthJWT)
	forms.Get("/", h.ListForms)
	forms.Post("/", h.CreateForm)
	forms.Get("/:id", h.GetForm)
	forms.Patch("/:id", h.UpdateForm)
	forms.Put("/:id", h.UpdateForm)
	forms.Delete("/:id", h.DeleteForm)
	forms.Get("/:id/preview", h.PreviewForm)
	forms.Get("/:id/qrcode", h.ShareQRCode)
	forms.Get("/:id/responses", h.ListResponses)
	forms.Get("/:id/analytics", h.GetAnalytics)
}
