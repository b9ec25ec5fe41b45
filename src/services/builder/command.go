package builder

import (
	"fmt"

	"Backend-Formcraft/src/models"
)

// CommandType names one builder operation sent by the client.
type CommandType string

const (
	CmdAddField       CommandType = "add-field"
	CmdInsertField    CommandType = "insert-field"
	CmdMoveField      CommandType = "move-field"
	CmdReorderField   CommandType = "reorder-field"
	CmdDeleteField    CommandType = "delete-field"
	CmdUpdateField    CommandType = "update-field"
	CmdSelectField    CommandType = "select-field"
	CmdClearSelection CommandType = "clear-selection"
	CmdDrag           CommandType = "drag"
	CmdSetLabel       CommandType = "set-label"
	CmdSetPlaceholder CommandType = "set-placeholder"
	CmdSetRequired    CommandType = "set-required"
	CmdAddOption      CommandType = "add-option"
	CmdUpdateOption   CommandType = "update-option"
	CmdRemoveOption   CommandType = "remove-option"
	CmdSetTitle       CommandType = "set-title"
	CmdSetDescription CommandType = "set-description"
)

// Command is the wire shape of a builder command; which members are read
// depends on Type.
type Command struct {
	Type        CommandType        `json:"type" validate:"required"`
	FieldType   models.FieldTypeID `json:"fieldType,omitempty"`
	FieldID     string             `json:"fieldId,omitempty"`
	Index       int                `json:"index,omitempty"`
	Direction   Direction          `json:"direction,omitempty"`
	Patch       *FieldPatch        `json:"patch,omitempty"`
	Drag        *DragEvent         `json:"drag,omitempty"`
	OptionIndex int                `json:"optionIndex,omitempty"`
	Value       string             `json:"value,omitempty"`
	Required    bool               `json:"required,omitempty"`
}

func (c Command) apply(s *Session) error {
	e, p := s.engine, s.props
	switch c.Type {
	case CmdAddField:
		_, err := e.AddField(c.FieldType)
		return err
	case CmdInsertField:
		_, err := e.InsertFieldAt(c.FieldType, c.Index)
		return err
	case CmdMoveField:
		return e.MoveField(c.FieldID, c.Direction)
	case CmdReorderField:
		e.ReorderField(c.FieldID, c.Index)
		return nil
	case CmdDeleteField:
		e.DeleteField(c.FieldID)
		return nil
	case CmdUpdateField:
		if c.Patch != nil {
			e.UpdateField(c.FieldID, *c.Patch)
		}
		return nil
	case CmdSelectField:
		e.SelectField(c.FieldID)
		return nil
	case CmdClearSelection:
		e.ClearSelection()
		return nil
	case CmdDrag:
		if c.Drag == nil {
			return fmt.Errorf("%w: drag command without event", ErrUnknownCommand)
		}
		_, err := e.Dispatch(*c.Drag)
		return err
	case CmdSetLabel:
		return p.SetLabel(c.Value)
	case CmdSetPlaceholder:
		return p.SetPlaceholder(c.Value)
	case CmdSetRequired:
		return p.SetRequired(c.Required)
	case CmdAddOption:
		_, err := p.AddOption()
		return err
	case CmdUpdateOption:
		return p.UpdateOption(c.OptionIndex, c.Value)
	case CmdRemoveOption:
		return p.RemoveOption(c.OptionIndex)
	case CmdSetTitle:
		s.title = c.Value
		s.touch()
		return nil
	case CmdSetDescription:
		s.description = c.Value
		s.touch()
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Type)
}
