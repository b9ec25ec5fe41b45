// error_utils.go
package utils

import (
	"Backend-Formcraft/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleFieldErrors ส่ง 422 พร้อม error ราย field
func HandleFieldErrors(c *fiber.Ctx, message string, fields map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{
		Status:  fiber.StatusUnprocessableEntity,
		Message: message,
		Fields:  fields,
	})
}
