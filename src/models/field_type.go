package models

import "fmt"

// FieldTypeID ชนิดของ field ในฟอร์ม
type FieldTypeID string

const (
	FieldShortText    FieldTypeID = "short-text"
	FieldLongText     FieldTypeID = "long-text"
	FieldSingleSelect FieldTypeID = "single-select"
	FieldMultiSelect  FieldTypeID = "multi-select"
	FieldNumber       FieldTypeID = "number"
	FieldDate         FieldTypeID = "date"
)

// FieldType is one palette entry of the field type registry.
type FieldType struct {
	ID                  FieldTypeID `json:"id"`
	Label               string      `json:"label"`
	SupportsPlaceholder bool        `json:"supportsPlaceholder"`
	SupportsOptions     bool        `json:"supportsOptions"`
}

var fieldTypes = []FieldType{
	{ID: FieldShortText, Label: "Short text", SupportsPlaceholder: true},
	{ID: FieldLongText, Label: "Long text", SupportsPlaceholder: true},
	{ID: FieldSingleSelect, Label: "Single select", SupportsOptions: true},
	{ID: FieldMultiSelect, Label: "Multi select", SupportsOptions: true},
	{ID: FieldNumber, Label: "Number", SupportsPlaceholder: true},
	{ID: FieldDate, Label: "Date"},
}

// FieldTypes returns the palette in display order.
func FieldTypes() []FieldType {
	out := make([]FieldType, len(fieldTypes))
	copy(out, fieldTypes)
	return out
}

// LookupFieldType returns the registry entry for id.
func LookupFieldType(id FieldTypeID) (FieldType, bool) {
	for _, ft := range fieldTypes {
		if ft.ID == id {
			return ft, true
		}
	}
	return FieldType{}, false
}

// ParseFieldTypeID rejects ids that are not in the registry.
func ParseFieldTypeID(raw string) (FieldTypeID, error) {
	id := FieldTypeID(raw)
	if !id.Valid() {
		return "", fmt.Errorf("unknown field type %q", raw)
	}
	return id, nil
}

func (id FieldTypeID) Valid() bool {
	_, ok := LookupFieldType(id)
	return ok
}

// DefaultLabel คืนค่า label เริ่มต้นของชนิด field
func (id FieldTypeID) DefaultLabel() string {
	if ft, ok := LookupFieldType(id); ok {
		return ft.Label
	}
	return "Field"
}

func (id FieldTypeID) SupportsPlaceholder() bool {
	ft, ok := LookupFieldType(id)
	return ok && ft.SupportsPlaceholder
}

func (id FieldTypeID) SupportsOptions() bool {
	ft, ok := LookupFieldType(id)
	return ok && ft.SupportsOptions
}

// FieldTypeVisitor has one case per field type. Every component that behaves
// differently per type implements it, so adding a type means adding a method
// here and every implementation stops compiling until it handles the new case.
type FieldTypeVisitor[T any] interface {
	ShortText() T
	LongText() T
	SingleSelect() T
	MultiSelect() T
	Number() T
	Date() T
}

// VisitFieldType dispatches id to the matching visitor case.
func VisitFieldType[T any](id FieldTypeID, v FieldTypeVisitor[T]) (T, error) {
	switch id {
	case FieldShortText:
		return v.ShortText(), nil
	case FieldLongText:
		return v.LongText(), nil
	case FieldSingleSelect:
		return v.SingleSelect(), nil
	case FieldMultiSelect:
		return v.MultiSelect(), nil
	case FieldNumber:
		return v.Number(), nil
	case FieldDate:
		return v.Date(), nil
	}
	var zero T
	return zero, fmt.Errorf("unknown field type %q", id)
}
