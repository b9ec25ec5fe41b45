package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type labelVisitor struct{}

func (labelVisitor) ShortText() string    { return "st" }
func (labelVisitor) LongText() string     { return "lt" }
func (labelVisitor) SingleSelect() string { return "ss" }
func (labelVisitor) MultiSelect() string  { return "ms" }
func (labelVisitor) Number() string       { return "n" }
func (labelVisitor) Date() string         { return "d" }

func TestFieldTypesPaletteOrder(t *testing.T) {
	ids := make([]FieldTypeID, 0)
	for _, ft := range FieldTypes() {
		ids = append(ids, ft.ID)
	}
	assert.Equal(t, []FieldTypeID{
		FieldShortText, FieldLongText, FieldSingleSelect, FieldMultiSelect, FieldNumber, FieldDate,
	}, ids)
}

func TestFieldTypesReturnsCopy(t *testing.T) {
	palette := FieldTypes()
	palette[0].Label = "changed"
	assert.Equal(t, "Short text", FieldTypes()[0].Label)
}

func TestFieldTypeCapabilities(t *testing.T) {
	assert.True(t, FieldSingleSelect.SupportsOptions())
	assert.True(t, FieldMultiSelect.SupportsOptions())
	assert.False(t, FieldShortText.SupportsOptions())

	assert.True(t, FieldShortText.SupportsPlaceholder())
	assert.True(t, FieldNumber.SupportsPlaceholder())
	assert.False(t, FieldDate.SupportsPlaceholder())
	assert.False(t, FieldSingleSelect.SupportsPlaceholder())

	assert.False(t, FieldTypeID("rating").SupportsOptions())
}

func TestDefaultLabel(t *testing.T) {
	assert.Equal(t, "Long text", FieldLongText.DefaultLabel())
	assert.Equal(t, "Field", FieldTypeID("signature").DefaultLabel())
}

func TestParseFieldTypeID(t *testing.T) {
	id, err := ParseFieldTypeID("multi-select")
	require.NoError(t, err)
	assert.Equal(t, FieldMultiSelect, id)

	_, err = ParseFieldTypeID("checkbox-grid")
	assert.Error(t, err)
}

func TestVisitFieldType(t *testing.T) {
	for _, ft := range FieldTypes() {
		got, err := VisitFieldType[string](ft.ID, labelVisitor{})
		require.NoError(t, err, ft.ID)
		assert.NotEmpty(t, got)
	}

	got, err := VisitFieldType[string](FieldDate, labelVisitor{})
	require.NoError(t, err)
	assert.Equal(t, "d", got)

	_, err = VisitFieldType[string]("matrix", labelVisitor{})
	assert.Error(t, err)
}
