package controllers

import (
	"bytes"

	"Backend-Formcraft/src/middleware"
	"Backend-Formcraft/src/models"
	"Backend-Formcraft/src/qrcode"
	"Backend-Formcraft/src/services/forms"
	"Backend-Formcraft/src/services/renderer"
	"Backend-Formcraft/src/utils"

	"github.com/gofiber/fiber/v2"
)

type FormController struct {
	svc *forms.Service
}

func NewFormController(svc *forms.Service) *FormController {
	return &FormController{svc: svc}
}

// ListForms godoc
// @Summary      List my forms
// @Description  Cards of the caller's forms with response counts, most recently updated first
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int    false "Max forms (default 20, max 100)"
// @Param        search query string false "Title contains"
// @Param        status query string false "draft | published | archived"
// @Success      200  {array}   models.FormCard
// @Failure      401  {object}  models.ErrorResponse
// @Router       /api/forms [get]
func (h *FormController) ListForms(c *fiber.Ctx) error {
	params := models.DefaultFormListParams()
	if err := c.QueryParser(&params); err != nil {
		return badRequest(c, err)
	}

	cards, err := h.svc.ListFormCards(c.UserContext(), middleware.GetPrincipal(c), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cards)
}

// CreateForm godoc
// @Summary      Create a form
// @Description  Every member is optional; defaults are an "Untitled form" draft with no fields
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.CreateFormInput false "Form"
// @Success      201  {object}  models.FormRecord
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /api/forms [post]
func (h *FormController) CreateForm(c *fiber.Ctx) error {
	var in models.CreateFormInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, err)
		}
	}
	if err := utils.Validate(in); err != nil {
		return badRequest(c, err)
	}

	form, err := h.svc.CreateDraft(c.UserContext(), middleware.GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(form)
}

// GetForm godoc
// @Summary      Get one of my forms
// @Tags         forms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Form ID"
// @Success      200  {object}  models.FormRecord
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/forms/{id} [get]
func (h *FormController) GetForm(c *fiber.Ctx) error {
	form, err := h.svc.GetForm(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(form)
}

// UpdateForm godoc
// @Summary      Update a form
// @Description  Partial update. Send expectedUpdatedAt to reject the write when someone saved in between (409).
// @Tags         forms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Form ID"
// @Param        body body models.UpdateFormInput true "Changes"
// @Success      200  {object}  models.FormRecord
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /api/forms/{id} [patch]
func (h *FormController) UpdateForm(c *fiber.Ctx) error {
	var in models.UpdateFormInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	if err := utils.Validate(in); err != nil {
		return badRequest(c, err)
	}

	form, err := h.svc.UpdateForm(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(form)
}

// DeleteForm godoc
// @Summary      Delete a form and its responses
// @Tags         forms
// @Security     BearerAuth
// @Param        id path string true "Form ID"
// @Success      204
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/forms/{id} [delete]
func (h *FormController) DeleteForm(c *fiber.Ctx) error {
	if err := h.svc.DeleteForm(c.UserContext(), middleware.GetPrincipal(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PreviewForm godoc
// @Summary      Preview a form as HTML
// @Description  Read-only rendering of any of my forms, drafts included
// @Tags         forms
// @Produce      html
// @Security     BearerAuth
// @Param        id    path  string true  "Form ID"
// @Param        theme query string false "classic | ocean | sunset"
// @Success      200
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/forms/{id}/preview [get]
func (h *FormController) PreviewForm(c *fiber.Ctx) error {
	form, err := h.svc.GetForm(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	view := renderer.Render(form.Title, form.Description, form.Schema.Fields, c.Query("theme"))
	if c.Query("format") == "json" {
		return c.JSON(view)
	}
	return sendHTML(c, fiber.StatusOK, view, renderer.PageOptions{Mode: renderer.ModePreview})
}

// ShareQRCode godoc
// @Summary      QR code of the public link
// @Description  PNG that opens /f/{id}; the form must be published
// @Tags         forms
// @Produce      png
// @Security     BearerAuth
// @Param        id   path  string true  "Form ID"
// @Param        size query int    false "Pixels (128-1024, default 256)"
// @Success      200
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /api/forms/{id}/qrcode [get]
func (h *FormController) ShareQRCode(c *fiber.Ctx) error {
	form, err := h.svc.GetForm(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if form.Status != models.FormStatusPublished {
		return utils.HandleError(c, fiber.StatusConflict, "Publish the form before sharing it")
	}

	link := utils.GetEnv("PUBLIC_BASE_URL", c.BaseURL()) + "/f/" + form.ID
	png, err := qrcode.GeneratePNG(link, c.QueryInt("size", qrcode.DefaultSize))
	if err != nil {
		return respondError(c, err)
	}
	c.Set("X-Share-Link", link)
	c.Type("png")
	return c.Send(png)
}

type responsesOut struct {
	Total     int64                 `json:"total"`
	Responses []models.FormResponse `json:"responses"`
}

// ListResponses godoc
// @Summary      Responses of one of my forms
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string true  "Form ID"
// @Param        limit query int    false "Max responses (default 50, max 500)"
// @Success      200  {object}  responsesOut
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/forms/{id}/responses [get]
func (h *FormController) ListResponses(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	id := c.Params("id")
	responses, err := h.svc.ListResponses(c.UserContext(), p, id, c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	total, err := h.svc.CountResponses(c.UserContext(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(responsesOut{Total: total, Responses: responses})
}

// GetAnalytics godoc
// @Summary      Response dashboard of one of my forms
// @Description  Option distributions of select fields and the response table
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string true  "Form ID"
// @Param        limit query int    false "Responses included (default 100, max 500)"
// @Success      200  {object}  forms.Dashboard
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/forms/{id}/analytics [get]
func (h *FormController) GetAnalytics(c *fiber.Ctx) error {
	dash, err := h.svc.Dashboard(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dash)
}

type fieldTypesOut struct {
	FieldTypes []models.FieldType `json:"fieldTypes"`
	Themes     []renderer.Theme   `json:"themes"`
}

// ListFieldTypes godoc
// @Summary      Builder palette
// @Description  Every field type the builder can add, in palette order, plus the preview themes
// @Tags         builder
// @Produce      json
// @Success      200  {object}  fieldTypesOut
// @Router       /api/field-types [get]
func ListFieldTypes(c *fiber.Ctx) error {
	return c.JSON(fieldTypesOut{FieldTypes: models.FieldTypes(), Themes: renderer.Themes()})
}

func sendHTML(c *fiber.Ctx, status int, view renderer.RenderedForm, opts renderer.PageOptions) error {
	var buf bytes.Buffer
	if err := renderer.HTML(&buf, view, opts); err != nil {
		return respondError(c, err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
