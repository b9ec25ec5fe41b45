package controllers

import (
	"encoding/json"
	"errors"
	"strings"

	"Backend-Formcraft/src/models"
	"Backend-Formcraft/src/services/forms"
	"Backend-Formcraft/src/services/renderer"
	"Backend-Formcraft/src/utils"

	"github.com/gofiber/fiber/v2"
)

// PublicController serves published forms to respondents. No auth.
type PublicController struct {
	svc *forms.Service
}

func NewPublicController(svc *forms.Service) *PublicController {
	return &PublicController{svc: svc}
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) ||
		c.Query("format") == "json"
}

// ShowForm godoc
// @Summary      Public form page
// @Tags         public
// @Produce      html
// @Param        id    path  string true  "Form ID"
// @Param        theme query string false "classic | ocean | sunset"
// @Success      200
// @Failure      404
// @Router       /f/{id} [get]
func (h *PublicController) ShowForm(c *fiber.Ctx) error {
	form, err := h.svc.GetPublishedForm(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, forms.ErrNotFound) && !wantsJSON(c) {
			return c.Status(fiber.StatusNotFound).SendString("This form is not available.")
		}
		return respondError(c, err)
	}
	view := renderer.Render(form.Title, form.Description, form.Schema.Fields, c.Query("theme"))
	if wantsJSON(c) {
		return c.JSON(view)
	}
	return sendHTML(c, fiber.StatusOK, view, renderer.PageOptions{
		Mode:   renderer.ModePublic,
		Action: c.OriginalURL(),
	})
}

type submitOut struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

const thankYou = "Thanks! Your response has been recorded."

// SubmitForm godoc
// @Summary      Submit answers to a published form
// @Description  JSON body {"answers": {fieldId: string | string[]}} or an HTML form post
// @Tags         public
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id path string true "Form ID"
// @Success      201  {object}  submitOut
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Router       /f/{id} [post]
func (h *PublicController) SubmitForm(c *fiber.Ctx) error {
	ctx := c.UserContext()
	form, err := h.svc.GetPublishedForm(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	asJSON := wantsJSON(c)
	var answers models.AnswerMap
	if asJSON {
		answers, err = parseJSONAnswers(c.Body())
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
		}
	} else {
		answers = formAnswers(c, form.Schema.Fields)
	}

	resp, err := h.svc.SubmitResponse(ctx, form.ID, answers, requestMeta(c))
	if err != nil {
		var answerErr *forms.AnswerValidationError
		if !asJSON && errors.As(err, &answerErr) {
			view := renderer.Render(form.Title, form.Description, form.Schema.Fields, c.Query("theme"))
			return sendHTML(c, fiber.StatusUnprocessableEntity, view, renderer.PageOptions{
				Mode:   renderer.ModePublic,
				Action: c.OriginalURL(),
				Values: answers,
				Errors: answerErr.Fields,
			})
		}
		return respondError(c, err)
	}

	if asJSON {
		return c.Status(fiber.StatusCreated).JSON(submitOut{ID: resp.ID, Message: thankYou})
	}
	view := renderer.Render(form.Title, form.Description, form.Schema.Fields, c.Query("theme"))
	return sendHTML(c, fiber.StatusCreated, view, renderer.PageOptions{
		Mode:      renderer.ModePublic,
		Submitted: true,
		Message:   thankYou,
	})
}

// parseJSONAnswers accepts {"answers": {...}} or the bare answers object.
func parseJSONAnswers(body []byte) (models.AnswerMap, error) {
	var envelope struct {
		Answers json.RawMessage `json:"answers"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Answers) > 0 {
		return models.ParseAnswers(envelope.Answers)
	}
	return models.ParseAnswers(body)
}

// formAnswers reads an HTML form post; multi-select checkboxes send one
// value per checked option under the same name.
func formAnswers(c *fiber.Ctx, fields []models.FormField) models.AnswerMap {
	args := c.Request().PostArgs()
	out := make(models.AnswerMap, len(fields))
	for _, f := range fields {
		raw := args.PeekMulti(f.ID)
		if f.Type == models.FieldMultiSelect {
			values := make([]string, 0, len(raw))
			for _, v := range raw {
				values = append(values, string(v))
			}
			out[f.ID] = models.ListAnswer(values...)
			continue
		}
		if len(raw) > 0 {
			out[f.ID] = models.TextAnswer(string(raw[0]))
		}
	}
	return out
}

func requestMeta(c *fiber.Ctx) models.ResponseMeta {
	var meta models.ResponseMeta
	if ip := c.IP(); ip != "" {
		meta.IP = &ip
	}
	if ua := c.Get(fiber.HeaderUserAgent); ua != "" {
		meta.UserAgent = &ua
	}
	return meta
}
