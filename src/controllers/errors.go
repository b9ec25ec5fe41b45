package controllers

import (
	"errors"
	"log"

	"Backend-Formcraft/src/services/auth"
	"Backend-Formcraft/src/services/builder"
	"Backend-Formcraft/src/services/forms"
	"Backend-Formcraft/src/utils"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	var answerErr *forms.AnswerValidationError
	var persistErr *forms.PersistenceError

	switch {
	case errors.As(err, &answerErr):
		return utils.HandleFieldErrors(c, "Some answers are invalid", answerErr.Fields)
	case errors.Is(err, forms.ErrUnauthorized):
		return utils.HandleError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, forms.ErrNotFound), errors.Is(err, builder.ErrSessionNotFound):
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, forms.ErrConflict), errors.Is(err, builder.ErrBusy), errors.Is(err, auth.ErrEmailTaken):
		return utils.HandleError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, forms.ErrInvalidInput),
		errors.Is(err, builder.ErrUnknownCommand),
		errors.Is(err, builder.ErrUnknownFieldType),
		errors.Is(err, builder.ErrInvalidDirection),
		errors.Is(err, builder.ErrNoSelection),
		errors.Is(err, builder.ErrOptionIndex),
		errors.Is(err, builder.ErrUnsupported):
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &persistErr):
		log.Printf("❌ [%s %s] %v", c.Method(), c.Path(), err)
		return utils.HandleError(c, fiber.StatusInternalServerError, "Could not reach the form store, try again")
	default:
		log.Printf("❌ [%s %s] %v", c.Method(), c.Path(), err)
		return utils.HandleError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

func badRequest(c *fiber.Ctx, err error) error {
	if fields := utils.ValidationMessages(err); len(fields) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "fields": fields})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input: " + err.Error()})
}
