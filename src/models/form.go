package models

import (
	"time"
)

// --- Form ---

// FormStatus สถานะของฟอร์ม
type FormStatus string

const (
	FormStatusDraft     FormStatus = "draft"
	FormStatusPublished FormStatus = "published"
	FormStatusArchived  FormStatus = "archived"
)

func (s FormStatus) Valid() bool {
	switch s {
	case FormStatusDraft, FormStatusPublished, FormStatusArchived:
		return true
	}
	return false
}

// FormRecord is the persisted form entity.
type FormRecord struct {
	ID          string     `bson:"_id" json:"id"`
	OwnerID     string     `bson:"ownerId" json:"ownerId"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Status      FormStatus `bson:"status" json:"status"`
	Schema      FormSchema `bson:"schema" json:"schema"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// --- Schema ---

// FormSchema ลำดับของ fields มีความหมาย (ลำดับการแสดงผล)
type FormSchema struct {
	Version int         `bson:"version" json:"version" validate:"gte=1"`
	Fields  []FormField `bson:"fields" json:"fields" validate:"required,dive"`
}

// FormField one typed question inside a schema.
type FormField struct {
	ID          string      `bson:"id" json:"id" validate:"required"`
	Type        FieldTypeID `bson:"type" json:"type" validate:"fieldtype"`
	Label       string      `bson:"label" json:"label" validate:"required"`
	Placeholder string      `bson:"placeholder" json:"placeholder"`
	Required    bool        `bson:"required" json:"required"`
	Options     []string    `bson:"options" json:"options" validate:"required"`
}

// Clone returns a deep copy so callers can't alias the options slice.
func (f FormField) Clone() FormField {
	out := f
	out.Options = append(make([]string, 0, len(f.Options)), f.Options...)
	return out
}

// CloneFields deep-copies a field list.
func CloneFields(fields []FormField) []FormField {
	out := make([]FormField, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}

// --- DTOs ---

// CreateFormInput ข้อมูลสำหรับสร้างฟอร์มใหม่ (ทุก field เป็น optional)
type CreateFormInput struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Status      *FormStatus `json:"status" validate:"omitempty,formstatus"`
	Schema      *FormSchema `json:"schema"`
}

// UpdateFormInput partial update. ExpectedUpdatedAt turns the update into a
// compare-and-swap against the stored updatedAt.
type UpdateFormInput struct {
	Title             *string     `json:"title"`
	Description       *string     `json:"description"`
	Status            *FormStatus `json:"status" validate:"omitempty,formstatus"`
	Schema            *FormSchema `json:"schema"`
	ExpectedUpdatedAt *time.Time  `json:"expectedUpdatedAt"`
}

// FormUpdate is the normalized set of columns written by a store update.
type FormUpdate struct {
	Title       *string
	Description *string
	Status      *FormStatus
	Schema      *FormSchema
	UpdatedAt   time.Time
}

// FormCard summary row for the owner's dashboard grid.
type FormCard struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Status           FormStatus `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	SubmissionsCount int64      `json:"submissionsCount"`
}
