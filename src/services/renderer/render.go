// Package renderer turns a form schema into an input form: a pure view model
// (Render) and its HTML page (HTML). It knows nothing about persistence or
// answer validation.
package renderer

import (
	"strings"

	"Backend-Formcraft/src/models"
)

const (
	FallbackTitle       = "Untitled form"
	FallbackDescription = "No description"

	EmptyStateTitle       = "This form has no fields"
	EmptyStateDescription = "Add fields in the editor so people can answer this form."

	RequiredMarker = " *"
)

// ControlKind the input widget a field renders as.
type ControlKind string

const (
	ControlText       ControlKind = "text"
	ControlTextarea   ControlKind = "textarea"
	ControlSelect     ControlKind = "select"
	ControlCheckboxes ControlKind = "checkboxes"
	ControlNumber     ControlKind = "number"
	ControlDate       ControlKind = "date"
)

// Option one choice of a select control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Control is the rendered form of one field.
type Control struct {
	FieldID     string      `json:"fieldId"`
	Kind        ControlKind `json:"kind"`
	Label       string      `json:"label"`
	Required    bool        `json:"required"`
	Placeholder string      `json:"placeholder,omitempty"`
	Options     []Option    `json:"options,omitempty"`
}

// RenderedForm is the view model of a whole form.
type RenderedForm struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Theme       Theme     `json:"theme"`
	Empty       bool      `json:"empty"`
	EmptyTitle  string    `json:"emptyTitle,omitempty"`
	EmptyText   string    `json:"emptyText,omitempty"`
	Controls    []Control `json:"controls"`
}

// Render builds the view model for a form.
func Render(title, description string, fields []models.FormField, themeID string) RenderedForm {
	out := RenderedForm{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Theme:       ResolveTheme(themeID),
		Controls:    make([]Control, 0, len(fields)),
	}
	if out.Title == "" {
		out.Title = FallbackTitle
	}
	if out.Description == "" {
		out.Description = FallbackDescription
	}
	if len(fields) == 0 {
		out.Empty = true
		out.EmptyTitle = EmptyStateTitle
		out.EmptyText = EmptyStateDescription
		return out
	}
	for _, f := range fields {
		c, err := models.VisitFieldType[Control](f.Type, controlFor{field: f})
		if err != nil {
			// unreachable for schemas that went through ParseFormSchema
			continue
		}
		out.Controls = append(out.Controls, c)
	}
	return out
}

// controlFor renders one field per type.
type controlFor struct {
	field models.FormField
}

func (c controlFor) base(kind ControlKind) Control {
	label := models.NormalizeLabel(c.field.Type, c.field.Label)
	if c.field.Required {
		label += RequiredMarker
	}
	return Control{
		FieldID:  c.field.ID,
		Kind:     kind,
		Label:    label,
		Required: c.field.Required,
	}
}

func (c controlFor) withPlaceholder(kind ControlKind, fallback string) Control {
	ctl := c.base(kind)
	ctl.Placeholder = c.field.Placeholder
	if ctl.Placeholder == "" {
		ctl.Placeholder = fallback
	}
	return ctl
}

func (c controlFor) withOptions(kind ControlKind) Control {
	ctl := c.base(kind)
	ctl.Options = make([]Option, 0, len(c.field.Options))
	for _, o := range c.field.Options {
		ctl.Options = append(ctl.Options, Option{Value: o, Label: o})
	}
	return ctl
}

func (c controlFor) ShortText() Control    { return c.withPlaceholder(ControlText, "Type here") }
func (c controlFor) LongText() Control     { return c.withPlaceholder(ControlTextarea, "Type here") }
func (c controlFor) SingleSelect() Control { return c.withOptions(ControlSelect) }
func (c controlFor) MultiSelect() Control  { return c.withOptions(ControlCheckboxes) }
func (c controlFor) Number() Control       { return c.withPlaceholder(ControlNumber, "e.g. 10") }
func (c controlFor) Date() Control         { return c.base(ControlDate) }
