package controllers

import (
	"Backend-Formcraft/src/middleware"
	"Backend-Formcraft/src/models"
	"Backend-Formcraft/src/services/builder"
	"Backend-Formcraft/src/utils"

	"github.com/gofiber/fiber/v2"
)

type BuilderController struct {
	sessions *builder.Manager
}

func NewBuilderController(sessions *builder.Manager) *BuilderController {
	return &BuilderController{sessions: sessions}
}

type openSessionIn struct {
	FormID string `json:"formId"`
}

type saveSessionIn struct {
	Status models.FormStatus `json:"status" validate:"omitempty,formstatus"`
}

// OpenSession godoc
// @Summary      Open a builder session
// @Description  Starts editing a new form, or an existing one when formId is given
// @Tags         builder
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body openSessionIn false "Form to edit"
// @Success      201  {object}  builder.Snapshot
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/builder/sessions [post]
func (h *BuilderController) OpenSession(c *fiber.Ctx) error {
	var in openSessionIn
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, err)
		}
	}

	snap, err := h.sessions.Open(c.UserContext(), middleware.GetPrincipal(c), in.FormID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(snap)
}

// GetSession godoc
// @Summary      Builder session state
// @Tags         builder
// @Produce      json
// @Security     BearerAuth
// @Param        sid path string true "Session ID"
// @Success      200  {object}  builder.Snapshot
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/builder/sessions/{sid} [get]
func (h *BuilderController) GetSession(c *fiber.Ctx) error {
	snap, err := h.sessions.Get(middleware.GetPrincipal(c), c.Params("sid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap)
}

// ApplyCommand godoc
// @Summary      Apply one builder command
// @Description  add-field, insert-field, move-field, reorder-field, delete-field, update-field, select-field, clear-selection, drag, set-label, set-placeholder, set-required, add-option, update-option, remove-option, set-title, set-description
// @Tags         builder
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sid  path string          true "Session ID"
// @Param        body body builder.Command true "Command"
// @Success      200  {object}  builder.Snapshot
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/builder/sessions/{sid}/commands [post]
func (h *BuilderController) ApplyCommand(c *fiber.Ctx) error {
	var cmd builder.Command
	if err := c.BodyParser(&cmd); err != nil {
		return badRequest(c, err)
	}
	if err := utils.Validate(cmd); err != nil {
		return badRequest(c, err)
	}

	snap, err := h.sessions.Apply(middleware.GetPrincipal(c), c.Params("sid"), cmd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap)
}

// SaveSession godoc
// @Summary      Save the session's form
// @Description  Saves as draft by default; status "published" publishes it
// @Tags         builder
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sid  path string        true  "Session ID"
// @Param        body body saveSessionIn false "Target status"
// @Success      200  {object}  builder.Snapshot
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/builder/sessions/{sid}/save [post]
func (h *BuilderController) SaveSession(c *fiber.Ctx) error {
	var in saveSessionIn
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, err)
		}
	}
	if err := utils.Validate(in); err != nil {
		return badRequest(c, err)
	}
	if in.Status == "" {
		in.Status = models.FormStatusDraft
	}

	snap, err := h.sessions.Save(c.UserContext(), middleware.GetPrincipal(c), c.Params("sid"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap)
}

// CloseSession godoc
// @Summary      Close a builder session without saving
// @Tags         builder
// @Security     BearerAuth
// @Param        sid path string true "Session ID"
// @Success      204
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/builder/sessions/{sid} [delete]
func (h *BuilderController) CloseSession(c *fiber.Ctx) error {
	if err := h.sessions.Close(middleware.GetPrincipal(c), c.Params("sid")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
