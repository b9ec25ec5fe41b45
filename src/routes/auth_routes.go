package routes

import (
	"Backend-Formcraft/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// AuthRoutes กำหนด route สำหรับ auth (login/register)
func authRoutes(router fiber.Router, h *controllers.AuthController) {
	auth := router.Group("/auth")

	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login) // 🔐 login
}
