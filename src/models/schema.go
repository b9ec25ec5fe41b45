package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CurrentSchemaVersion is written on every schema the builder produces.
const CurrentSchemaVersion = 1

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the form-specific tags
// ("fieldtype", "formstatus") registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("fieldtype", func(fl validator.FieldLevel) bool {
			return FieldTypeID(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("formstatus", func(fl validator.FieldLevel) bool {
			return FormStatus(fl.Field().String()).Valid()
		})
	})
	return validate
}

// DefaultFormSchema structurally-empty schema ใช้เป็นค่า fallback
func DefaultFormSchema() FormSchema {
	return FormSchema{Version: CurrentSchemaVersion, Fields: []FormField{}}
}

// NewFormField creates a field of the given type with a fresh id and the
// type's defaults. Select types are seeded with two options.
func NewFormField(t FieldTypeID) FormField {
	options := []string{}
	if t.SupportsOptions() {
		options = []string{"Option 1", "Option 2"}
	}
	return FormField{
		ID:          fmt.Sprintf("%s-%s", t, uuid.NewString()),
		Type:        t,
		Label:       t.DefaultLabel(),
		Placeholder: "",
		Required:    false,
		Options:     options,
	}
}

// NormalizeLabel falls back to the type default when label is blank.
func NormalizeLabel(t FieldTypeID, label string) string {
	if strings.TrimSpace(label) == "" {
		return t.DefaultLabel()
	}
	return label
}

// Validate checks the structural rules of a schema: version >= 1, every
// field has an id, a label, a known type and an options slice, and ids are
// unique.
func (s FormSchema) Validate() error {
	if err := Validator().Struct(s); err != nil {
		return fmt.Errorf("invalid form schema: %w", err)
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("invalid form schema: duplicate field id %q", f.ID)
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

// Field looks a field up by id.
func (s FormSchema) Field(id string) (FormField, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FormField{}, false
}

// ParseFormSchema decodes persisted schema data. Anything that fails to
// decode or validate yields DefaultFormSchema, never a partial schema.
func ParseFormSchema(data []byte) FormSchema {
	var s FormSchema
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultFormSchema()
	}
	return SanitizeFormSchema(s)
}

// SanitizeFormSchema returns s when it validates, the empty schema otherwise.
func SanitizeFormSchema(s FormSchema) FormSchema {
	if err := s.Validate(); err != nil {
		return DefaultFormSchema()
	}
	return s
}

// MarshalFormSchema encodes s for storage.
func MarshalFormSchema(s FormSchema) ([]byte, error) {
	if s.Fields == nil {
		s.Fields = []FormField{}
	}
	return json.Marshal(s)
}
