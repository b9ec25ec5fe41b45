package builder

import (
	"errors"
	"fmt"

	"Backend-Formcraft/src/models"
)

var (
	ErrNoSelection = errors.New("no field selected")
	ErrOptionIndex = errors.New("option index out of range")
	ErrUnsupported = errors.New("property not supported by this field type")
)

// PropertySection one editable group shown for the selected field.
type PropertySection string

const (
	SectionLabel       PropertySection = "label"
	SectionPlaceholder PropertySection = "placeholder"
	SectionRequired    PropertySection = "required"
	SectionOptions     PropertySection = "options"
)

// sectionsByType lists the editable sections per field type.
type sectionsByType struct{}

func (sectionsByType) ShortText() []PropertySection    { return textSections() }
func (sectionsByType) LongText() []PropertySection     { return textSections() }
func (sectionsByType) SingleSelect() []PropertySection { return selectSections() }
func (sectionsByType) MultiSelect() []PropertySection  { return selectSections() }
func (sectionsByType) Number() []PropertySection       { return textSections() }
func (sectionsByType) Date() []PropertySection {
	return []PropertySection{SectionLabel, SectionRequired}
}

func textSections() []PropertySection {
	return []PropertySection{SectionLabel, SectionPlaceholder, SectionRequired}
}

func selectSections() []PropertySection {
	return []PropertySection{SectionLabel, SectionRequired, SectionOptions}
}

// PropertiesEditor edits the engine's currently selected field.
type PropertiesEditor struct {
	engine *Engine
}

func NewPropertiesEditor(e *Engine) *PropertiesEditor {
	return &PropertiesEditor{engine: e}
}

// Sections returns the editable sections of the selected field, or nil when
// nothing is selected.
func (p *PropertiesEditor) Sections() []PropertySection {
	f, ok := p.engine.SelectedField()
	if !ok {
		return nil
	}
	sections, err := models.VisitFieldType[[]PropertySection](f.Type, sectionsByType{})
	if err != nil {
		return nil
	}
	return sections
}

func (p *PropertiesEditor) SetLabel(label string) error {
	f, err := p.selected()
	if err != nil {
		return err
	}
	p.engine.UpdateField(f.ID, FieldPatch{Label: &label})
	return nil
}

func (p *PropertiesEditor) SetPlaceholder(placeholder string) error {
	f, err := p.selected()
	if err != nil {
		return err
	}
	if !f.Type.SupportsPlaceholder() {
		return fmt.Errorf("%w: placeholder on %s", ErrUnsupported, f.Type)
	}
	p.engine.UpdateField(f.ID, FieldPatch{Placeholder: &placeholder})
	return nil
}

func (p *PropertiesEditor) SetRequired(required bool) error {
	f, err := p.selected()
	if err != nil {
		return err
	}
	p.engine.UpdateField(f.ID, FieldPatch{Required: &required})
	return nil
}

// AddOption appends "Option N" where N is the new option count.
func (p *PropertiesEditor) AddOption() (string, error) {
	f, err := p.selectedWithOptions()
	if err != nil {
		return "", err
	}
	option := fmt.Sprintf("Option %d", len(f.Options)+1)
	p.engine.UpdateField(f.ID, FieldPatch{Options: append(f.Options, option)})
	return option, nil
}

// UpdateOption replaces the option at index in place.
func (p *PropertiesEditor) UpdateOption(index int, value string) error {
	f, err := p.selectedWithOptions()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(f.Options) {
		return ErrOptionIndex
	}
	f.Options[index] = value
	p.engine.UpdateField(f.ID, FieldPatch{Options: f.Options})
	return nil
}

// RemoveOption drops the option at index. Historic answers that name it are
// left alone.
func (p *PropertiesEditor) RemoveOption(index int) error {
	f, err := p.selectedWithOptions()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(f.Options) {
		return ErrOptionIndex
	}
	next := append(append([]string{}, f.Options[:index]...), f.Options[index+1:]...)
	p.engine.UpdateField(f.ID, FieldPatch{Options: next})
	return nil
}

func (p *PropertiesEditor) selected() (models.FormField, error) {
	f, ok := p.engine.SelectedField()
	if !ok {
		return models.FormField{}, ErrNoSelection
	}
	return f, nil
}

func (p *PropertiesEditor) selectedWithOptions() (models.FormField, error) {
	f, err := p.selected()
	if err != nil {
		return f, err
	}
	if !f.Type.SupportsOptions() {
		return f, fmt.Errorf("%w: options on %s", ErrUnsupported, f.Type)
	}
	return f, nil
}
