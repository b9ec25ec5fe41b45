package builder

import "Backend-Formcraft/src/models"

// CanvasTarget is the drop target id of the canvas' own empty area.
const CanvasTarget = "form-canvas"

// DragSource where a drag started.
type DragSource string

const (
	SourcePalette DragSource = "palette"
	SourceCanvas  DragSource = "canvas"
)

// DragState is the transient drag state. The zero value is idle.
type DragState struct {
	Dragging    bool               `json:"dragging"`
	Source      DragSource         `json:"source,omitempty"`
	FieldTypeID models.FieldTypeID `json:"fieldTypeId,omitempty"` // palette payload
	FieldID     string             `json:"fieldId,omitempty"`     // canvas payload
	OverID      string             `json:"overId,omitempty"`
}

// DragEventKind ชนิดของ event ระหว่างการลาก
type DragEventKind string

const (
	DragStart  DragEventKind = "start"
	DragOver   DragEventKind = "over"
	DragEnd    DragEventKind = "end"
	DragCancel DragEventKind = "cancel"
)

// DragEvent one pointer event. Target is a field id, CanvasTarget, or empty
// when the pointer is over nothing droppable.
type DragEvent struct {
	Kind        DragEventKind      `json:"kind"`
	Source      DragSource         `json:"source,omitempty"`
	FieldTypeID models.FieldTypeID `json:"fieldTypeId,omitempty"`
	FieldID     string             `json:"fieldId,omitempty"`
	Target      string             `json:"target,omitempty"`
}

// EffectKind the single mutation a drop resolves to.
type EffectKind string

const (
	EffectNone    EffectKind = "none"
	EffectAdd     EffectKind = "add"
	EffectInsert  EffectKind = "insert"
	EffectReorder EffectKind = "reorder"
)

// Effect is what the engine must apply after a transition.
type Effect struct {
	Kind        EffectKind
	FieldTypeID models.FieldTypeID
	Index       int // insert position
	From, To    int // reorder positions
}

var noEffect = Effect{Kind: EffectNone}

// Reduce is the pure drag/drop transition function. "over" events only move
// the highlight; only "end" can produce a mutation and it produces at most
// one. Events that don't fit the current state are ignored.
func Reduce(state DragState, evt DragEvent, fields []models.FormField) (DragState, Effect) {
	switch evt.Kind {
	case DragStart:
		if !validPayload(evt) {
			return DragState{}, noEffect
		}
		return DragState{
			Dragging:    true,
			Source:      evt.Source,
			FieldTypeID: evt.FieldTypeID,
			FieldID:     evt.FieldID,
		}, noEffect

	case DragOver:
		if !state.Dragging {
			return state, noEffect
		}
		state.OverID = evt.Target
		return state, noEffect

	case DragEnd:
		if !state.Dragging {
			return DragState{}, noEffect
		}
		return DragState{}, resolveDrop(state, evt.Target, fields)

	case DragCancel:
		return DragState{}, noEffect
	}
	return state, noEffect
}

func validPayload(evt DragEvent) bool {
	switch evt.Source {
	case SourcePalette:
		return evt.FieldTypeID.Valid()
	case SourceCanvas:
		return evt.FieldID != ""
	}
	return false
}

func resolveDrop(state DragState, target string, fields []models.FormField) Effect {
	if target == "" {
		return noEffect
	}
	switch state.Source {
	case SourcePalette:
		if target == CanvasTarget {
			return Effect{Kind: EffectAdd, FieldTypeID: state.FieldTypeID}
		}
		idx := indexOf(fields, target)
		if idx < 0 {
			return noEffect
		}
		return Effect{Kind: EffectInsert, FieldTypeID: state.FieldTypeID, Index: idx}

	case SourceCanvas:
		if target == CanvasTarget || target == state.FieldID {
			return noEffect
		}
		from, to := indexOf(fields, state.FieldID), indexOf(fields, target)
		if from < 0 || to < 0 || from == to {
			return noEffect
		}
		return Effect{Kind: EffectReorder, From: from, To: to}
	}
	return noEffect
}

func indexOf(fields []models.FormField, id string) int {
	for i, f := range fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// arrayMove removes the element at from and re-inserts it at to.
func arrayMove(fields []models.FormField, from, to int) []models.FormField {
	out := make([]models.FormField, 0, len(fields))
	moved := fields[from]
	for i, f := range fields {
		if i != from {
			out = append(out, f)
		}
	}
	out = append(out, models.FormField{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}
