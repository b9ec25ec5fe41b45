package controllers

import (
	"Backend-Formcraft/src/models"
	"Backend-Formcraft/src/services/auth"
	"Backend-Formcraft/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	svc *auth.Service
}

func NewAuthController(svc *auth.Service) *AuthController {
	return &AuthController{svc: svc}
}

// Register godoc
// @Summary      Register a form owner
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.RegisterRequest true "Account"
// @Success      201  {object}  models.AuthResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := utils.Validate(req); err != nil {
		return badRequest(c, err)
	}

	res, err := h.svc.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Login godoc
// @Summary      Log in and receive a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.LoginRequest true "Credentials"
// @Success      200  {object}  models.AuthResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := utils.Validate(req); err != nil {
		return badRequest(c, err)
	}

	res, err := h.svc.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")
	return c.JSON(res)
}
