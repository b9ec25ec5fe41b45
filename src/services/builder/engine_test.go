package builder

import (
	"testing"

	"Backend-Formcraft/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFieldAppendsAndSelects(t *testing.T) {
	calls := 0
	e := NewEngine(nil, func([]models.FormField) { calls++ })

	first, err := e.AddField(models.FieldShortText)
	require.NoError(t, err)
	second, err := e.AddField(models.FieldSingleSelect)
	require.NoError(t, err)

	assert.Equal(t, []string{first.ID, second.ID}, ids(e.Fields()))
	assert.Equal(t, second.ID, e.SelectedID())
	assert.Equal(t, []string{"Option 1", "Option 2"}, second.Options)
	assert.Equal(t, 2, calls)

	_, err = e.AddField("hologram")
	assert.ErrorIs(t, err, ErrUnknownFieldType)
	assert.Len(t, e.Fields(), 2)
	assert.Equal(t, 2, calls)
}

func TestInsertFieldAtClampsIndex(t *testing.T) {
	e := NewEngine(fieldsWithIDs("a", "b"), nil)

	head, err := e.InsertFieldAt(models.FieldDate, -5)
	require.NoError(t, err)
	tail, err := e.InsertFieldAt(models.FieldDate, 99)
	require.NoError(t, err)
	mid, err := e.InsertFieldAt(models.FieldDate, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{head.ID, "a", mid.ID, "b", tail.ID}, ids(e.Fields()))
	assert.Equal(t, mid.ID, e.SelectedID())
}

func TestMoveField(t *testing.T) {
	e := NewEngine(fieldsWithIDs("a", "b", "c"), nil)

	require.NoError(t, e.MoveField("b", Up))
	assert.Equal(t, []string{"b", "a", "c"}, ids(e.Fields()))

	require.NoError(t, e.MoveField("b", Up))
	assert.Equal(t, []string{"b", "a", "c"}, ids(e.Fields()), "first field can't move up")

	require.NoError(t, e.MoveField("c", Down))
	assert.Equal(t, []string{"b", "a", "c"}, ids(e.Fields()), "last field can't move down")

	require.NoError(t, e.MoveField("missing", Down))
	assert.ErrorIs(t, e.MoveField("a", "sideways"), ErrInvalidDirection)
}

func TestReorderField(t *testing.T) {
	e := NewEngine(fieldsWithIDs("a", "b", "c"), nil)
	e.ReorderField("c", 0)
	assert.Equal(t, []string{"c", "a", "b"}, ids(e.Fields()))

	e.ReorderField("c", 3)
	e.ReorderField("c", -1)
	e.ReorderField("zzz", 1)
	assert.Equal(t, []string{"c", "a", "b"}, ids(e.Fields()))
}

func TestDeleteFieldClearsSelection(t *testing.T) {
	e := NewEngine(fieldsWithIDs("a", "b"), nil)
	e.SelectField("a")
	e.DeleteField("b")
	assert.Equal(t, "a", e.SelectedID())

	e.DeleteField("a")
	assert.Empty(t, e.SelectedID())
	assert.Empty(t, e.Fields())
}

func TestSelectUnknownFieldClears(t *testing.T) {
	e := NewEngine(fieldsWithIDs("a"), nil)
	e.SelectField("a")
	e.SelectField("zzz")
	assert.Empty(t, e.SelectedID())
	_, ok := e.SelectedField()
	assert.False(t, ok)
}

func TestUpdateFieldShallowMerge(t *testing.T) {
	e := NewEngine(fieldsWithIDs("a"), nil)
	label := "Email"
	req := true
	e.UpdateField("a", FieldPatch{Label: &label, Required: &req})

	f := e.Fields()[0]
	assert.Equal(t, "Email", f.Label)
	assert.True(t, f.Required)
	assert.Empty(t, f.Placeholder)
	assert.NotNil(t, f.Options)
}

func TestFieldsAreCopies(t *testing.T) {
	e := NewEngine(fieldsWithIDs("a"), nil)
	got := e.Fields()
	got[0].Label = "mutated"
	assert.NotEqual(t, "mutated", e.Fields()[0].Label)
}

func TestDispatchPaletteDropOnField(t *testing.T) {
	e := NewEngine(fieldsWithIDs("a", "b"), nil)

	_, err := e.Dispatch(DragEvent{Kind: DragStart, Source: SourcePalette, FieldTypeID: models.FieldMultiSelect})
	require.NoError(t, err)
	assert.True(t, e.DragState().Dragging)

	_, err = e.Dispatch(DragEvent{Kind: DragOver, Target: "b"})
	require.NoError(t, err)
	assert.Len(t, e.Fields(), 2, "hovering never mutates")

	eff, err := e.Dispatch(DragEvent{Kind: DragEnd, Target: "b"})
	require.NoError(t, err)
	assert.Equal(t, EffectInsert, eff.Kind)

	fields := e.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, models.FieldMultiSelect, fields[1].Type)
	assert.Equal(t, fields[1].ID, e.SelectedID())
	assert.False(t, e.DragState().Dragging)
}

func TestDispatchCanvasReorder(t *testing.T) {
	changes := 0
	e := NewEngine(fieldsWithIDs("a", "b", "c"), func([]models.FormField) { changes++ })

	_, _ = e.Dispatch(DragEvent{Kind: DragStart, Source: SourceCanvas, FieldID: "a"})
	eff, err := e.Dispatch(DragEvent{Kind: DragEnd, Target: "c"})
	require.NoError(t, err)
	assert.Equal(t, EffectReorder, eff.Kind)
	assert.Equal(t, []string{"b", "c", "a"}, ids(e.Fields()))
	assert.Equal(t, 1, changes)

	_, _ = e.Dispatch(DragEvent{Kind: DragStart, Source: SourceCanvas, FieldID: "b"})
	_, _ = e.Dispatch(DragEvent{Kind: DragCancel})
	assert.Equal(t, []string{"b", "c", "a"}, ids(e.Fields()))
	assert.Equal(t, 1, changes)
}

func TestNormalizedFields(t *testing.T) {
	fields := fieldsWithIDs("a")
	fields[0].Label = "  "
	fields[0].Options = nil
	e := NewEngine(fields, nil)

	out := e.NormalizedFields()
	assert.Equal(t, "Short text", out[0].Label)
	assert.NotNil(t, out[0].Options)
}

func TestDeleteAddedFieldRestoresFields(t *testing.T) {
	for _, ft := range models.FieldTypes() {
		e := NewEngine(fieldsWithIDs("x", "y"), nil)
		before := e.Fields()

		added, err := e.AddField(ft.ID)
		require.NoError(t, err)
		e.DeleteField(added.ID)

		assert.Equal(t, before, e.Fields(), string(ft.ID))
		assert.Empty(t, e.SelectedID())
	}
}

func TestDispatchSwapsTwoFields(t *testing.T) {
	e := NewEngine(fieldsWithIDs("A", "B"), nil)

	_, err := e.Dispatch(DragEvent{Kind: DragStart, Source: SourceCanvas, FieldID: "B"})
	require.NoError(t, err)
	_, err = e.Dispatch(DragEvent{Kind: DragEnd, Target: "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, ids(e.Fields()))

	e = NewEngine(fieldsWithIDs("A", "B"), nil)
	_, err = e.Dispatch(DragEvent{Kind: DragStart, Source: SourceCanvas, FieldID: "A"})
	require.NoError(t, err)
	eff, err := e.Dispatch(DragEvent{Kind: DragEnd, Target: "A"})
	require.NoError(t, err)
	assert.Equal(t, EffectNone, eff.Kind)
	assert.Equal(t, []string{"A", "B"}, ids(e.Fields()))
}

func TestDispatchPaletteDropOnEmptyCanvas(t *testing.T) {
	e := NewEngine(nil, nil)

	_, err := e.Dispatch(DragEvent{Kind: DragStart, Source: SourcePalette, FieldTypeID: models.FieldShortText})
	require.NoError(t, err)
	_, err = e.Dispatch(DragEvent{Kind: DragEnd, Target: CanvasTarget})
	require.NoError(t, err)

	fields := e.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, models.FieldShortText, fields[0].Type)
	assert.Equal(t, "Short text", fields[0].Label)
	assert.Equal(t, fields[0].ID, e.SelectedID())
}
