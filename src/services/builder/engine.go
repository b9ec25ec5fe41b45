// Package builder holds the in-memory form builder: the ordered field list,
// the selection, the drag/drop protocol and the properties editor.
package builder

import (
	"errors"

	"Backend-Formcraft/src/models"
)

// Direction for MoveField.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

var (
	ErrUnknownFieldType = errors.New("unknown field type")
	ErrInvalidDirection = errors.New("direction must be up or down")
)

// FieldPatch shallow update; nil members are left untouched.
type FieldPatch struct {
	Label       *string  `json:"label,omitempty"`
	Placeholder *string  `json:"placeholder,omitempty"`
	Required    *bool    `json:"required,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// FieldsChangedFunc receives a copy of the field list after every mutation.
type FieldsChangedFunc func(fields []models.FormField)

// Engine owns one editing session's field list. It is not safe for
// concurrent use; callers serialize access (see Session).
type Engine struct {
	fields     []models.FormField
	selectedID string
	drag       DragState
	onChange   FieldsChangedFunc
}

// NewEngine starts from a copy of initial.
func NewEngine(initial []models.FormField, onChange FieldsChangedFunc) *Engine {
	return &Engine{
		fields:   models.CloneFields(initial),
		onChange: onChange,
	}
}

// Fields returns a copy of the ordered field list.
func (e *Engine) Fields() []models.FormField {
	return models.CloneFields(e.fields)
}

func (e *Engine) SelectedID() string { return e.selectedID }

func (e *Engine) DragState() DragState { return e.drag }

// SelectedField returns the selected field, if any.
func (e *Engine) SelectedField() (models.FormField, bool) {
	if e.selectedID == "" {
		return models.FormField{}, false
	}
	idx := indexOf(e.fields, e.selectedID)
	if idx < 0 {
		return models.FormField{}, false
	}
	return e.fields[idx].Clone(), true
}

// AddField appends a new field of type t and selects it.
func (e *Engine) AddField(t models.FieldTypeID) (models.FormField, error) {
	return e.InsertFieldAt(t, len(e.fields))
}

// InsertFieldAt inserts a new field at index (clamped to [0, len]) and
// selects it.
func (e *Engine) InsertFieldAt(t models.FieldTypeID, index int) (models.FormField, error) {
	if !t.Valid() {
		return models.FormField{}, ErrUnknownFieldType
	}
	if index < 0 {
		index = 0
	}
	if index > len(e.fields) {
		index = len(e.fields)
	}
	field := models.NewFormField(t)
	e.fields = append(e.fields, models.FormField{})
	copy(e.fields[index+1:], e.fields[index:])
	e.fields[index] = field
	e.selectedID = field.ID
	e.changed()
	return field.Clone(), nil
}

// MoveField shifts a field one slot. Moving past either end, or an unknown
// id, is a no-op.
func (e *Engine) MoveField(id string, dir Direction) error {
	idx := indexOf(e.fields, id)
	if idx < 0 {
		return nil
	}
	var to int
	switch dir {
	case Up:
		to = idx - 1
	case Down:
		to = idx + 1
	default:
		return ErrInvalidDirection
	}
	if to < 0 || to >= len(e.fields) {
		return nil
	}
	e.fields[idx], e.fields[to] = e.fields[to], e.fields[idx]
	e.changed()
	return nil
}

// ReorderField moves a field to targetIndex. Out-of-range targets and
// unknown ids are no-ops.
func (e *Engine) ReorderField(id string, targetIndex int) {
	from := indexOf(e.fields, id)
	if from < 0 || targetIndex < 0 || targetIndex >= len(e.fields) || from == targetIndex {
		return
	}
	e.fields = arrayMove(e.fields, from, targetIndex)
	e.changed()
}

// DeleteField removes a field and clears the selection if it pointed at it.
func (e *Engine) DeleteField(id string) {
	idx := indexOf(e.fields, id)
	if idx < 0 {
		return
	}
	e.fields = append(e.fields[:idx], e.fields[idx+1:]...)
	if e.selectedID == id {
		e.selectedID = ""
	}
	e.changed()
}

// UpdateField shallow-merges patch into the field. Unknown ids are a no-op.
func (e *Engine) UpdateField(id string, patch FieldPatch) {
	idx := indexOf(e.fields, id)
	if idx < 0 {
		return
	}
	f := &e.fields[idx]
	if patch.Label != nil {
		f.Label = *patch.Label
	}
	if patch.Placeholder != nil {
		f.Placeholder = *patch.Placeholder
	}
	if patch.Required != nil {
		f.Required = *patch.Required
	}
	if patch.Options != nil {
		f.Options = append([]string{}, patch.Options...)
	}
	e.changed()
}

// SelectField selects id; unknown ids clear the selection.
func (e *Engine) SelectField(id string) {
	if indexOf(e.fields, id) < 0 {
		e.selectedID = ""
		return
	}
	e.selectedID = id
}

func (e *Engine) ClearSelection() {
	e.selectedID = ""
}

// Dispatch feeds one drag event through Reduce and applies the resulting
// effect. It reports the effect that was applied.
func (e *Engine) Dispatch(evt DragEvent) (Effect, error) {
	next, effect := Reduce(e.drag, evt, e.fields)
	e.drag = next
	switch effect.Kind {
	case EffectAdd:
		_, err := e.AddField(effect.FieldTypeID)
		return effect, err
	case EffectInsert:
		_, err := e.InsertFieldAt(effect.FieldTypeID, effect.Index)
		return effect, err
	case EffectReorder:
		e.fields = arrayMove(e.fields, effect.From, effect.To)
		e.changed()
	}
	return effect, nil
}

// NormalizedFields returns the list ready to persist: blank labels fall back
// to the type default and nil option slices become empty.
func (e *Engine) NormalizedFields() []models.FormField {
	out := e.Fields()
	for i := range out {
		out[i].Label = models.NormalizeLabel(out[i].Type, out[i].Label)
		if out[i].Options == nil {
			out[i].Options = []string{}
		}
	}
	return out
}

func (e *Engine) changed() {
	if e.onChange != nil {
		e.onChange(e.Fields())
	}
}
