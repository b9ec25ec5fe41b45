package routes

import (
	"Backend-Formcraft/src/controllers"
	"Backend-Formcraft/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func BuilderRoutes(router fiber.Router, h *controllers.BuilderController) {
	sessions := router.Group("/builder/sessions", middleware.AuthJWT)
	sessions.Post("/", h.OpenSession)
	sessions.Get("/:sid", h.GetSession)
	sessions.Delete("/:sid", h.CloseSession)
	sessions.Post("/:sid/commands", h.ApplyCommand)
	sessions.Post("/:sid/save", h.SaveSession)
}

func StreamRoutes(router fiber.Router, h *controllers.StreamController) {
	router.Get("/stream/responses", middleware.AuthJWT, h.StreamResponses)
}
