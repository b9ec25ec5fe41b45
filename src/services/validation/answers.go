// Package validation checks respondent answers against a form schema.
package validation

import (
	"math"
	"strconv"
	"strings"
	"time"

	"Backend-Formcraft/src/models"
)

// Error messages, one per violated rule.
const (
	MsgRequired       = "required"
	MsgInvalidNumber  = "must be a valid number"
	MsgInvalidDate    = "invalid date"
	MsgInvalidOption  = "invalid option"
	MsgInvalidOptions = "invalid option(s)"
)

// DateLayout is the stored date answer format.
const DateLayout = "2006-01-02"

// Validate returns the first violated rule of every invalid field. Fields
// are checked independently; answers for ids not in fields are ignored.
func Validate(fields []models.FormField, answers models.AnswerMap) models.FieldErrorMap {
	errs := models.FieldErrorMap{}
	for _, f := range fields {
		v := Normalize(f, answers[f.ID])
		msg, err := models.VisitFieldType[string](f.Type, fieldRule{field: f, value: v})
		if err != nil {
			errs[f.ID] = err.Error()
			continue
		}
		if msg != "" {
			errs[f.ID] = msg
		}
	}
	return errs
}

// Normalize shapes a raw answer for its field: multi-select always becomes
// a list (possibly empty), everything else a string (possibly empty).
func Normalize(f models.FormField, v models.AnswerValue) models.AnswerValue {
	if f.Type == models.FieldMultiSelect {
		if !v.IsList {
			return models.ListAnswer()
		}
		return models.ListAnswer(v.List...)
	}
	if !v.Present || v.IsList {
		return models.TextAnswer("")
	}
	return models.TextAnswer(v.Text)
}

// Sanitize keeps only answers for fields of the schema, normalized.
func Sanitize(fields []models.FormField, answers models.AnswerMap) models.AnswerMap {
	out := make(models.AnswerMap, len(fields))
	for _, f := range fields {
		raw, ok := answers[f.ID]
		if !ok {
			continue
		}
		out[f.ID] = Normalize(f, raw)
	}
	return out
}

type fieldRule struct {
	field models.FormField
	value models.AnswerValue
}

func (r fieldRule) text() string { return strings.TrimSpace(r.value.Text) }

func (r fieldRule) requiredText() string {
	if r.field.Required && r.text() == "" {
		return MsgRequired
	}
	return ""
}

func (r fieldRule) ShortText() string { return r.requiredText() }
func (r fieldRule) LongText() string  { return r.requiredText() }

func (r fieldRule) Number() string {
	s := r.text()
	if s == "" {
		return r.requiredText()
	}
	if !IsNumber(s) {
		return MsgInvalidNumber
	}
	return ""
}

func (r fieldRule) Date() string {
	s := r.text()
	if s == "" {
		return r.requiredText()
	}
	if !IsDate(s) {
		return MsgInvalidDate
	}
	return ""
}

func (r fieldRule) SingleSelect() string {
	s := r.text()
	if s == "" {
		return r.requiredText()
	}
	if !contains(r.field.Options, s) {
		return MsgInvalidOption
	}
	return ""
}

func (r fieldRule) MultiSelect() string {
	if len(r.value.List) == 0 {
		if r.field.Required {
			return MsgRequired
		}
		return ""
	}
	for _, v := range r.value.List {
		if !contains(r.field.Options, v) {
			return MsgInvalidOptions
		}
	}
	return ""
}

// IsNumber reports whether s parses as a finite number.
func IsNumber(s string) bool {
	n, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(n) && !math.IsInf(n, 0)
}

// IsDate reports whether s is a calendar date in YYYY-MM-DD form.
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
