package models

import (
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// FormResponse หนึ่งคำตอบของผู้ตอบแบบฟอร์ม
type FormResponse struct {
	ID          string    `bson:"_id" json:"id"`
	FormID      string    `bson:"formId" json:"formId"`
	Answers     AnswerMap `bson:"answers" json:"answers"`
	SubmittedAt time.Time `bson:"submittedAt" json:"submittedAt"`
	IP          *string   `bson:"ip,omitempty" json:"ip"`
	UserAgent   *string   `bson:"userAgent,omitempty" json:"userAgent"`
}

// ResponseMeta request metadata stored alongside the answers.
type ResponseMeta struct {
	IP        *string
	UserAgent *string
}

// AnswerMap field id -> answer. A missing key means unanswered.
type AnswerMap map[string]AnswerValue

// FieldErrorMap field id -> single error message. A missing key means valid.
type FieldErrorMap map[string]string

// AnswerValue is either a single string or a list of strings (multi-select).
// Null and values of any other JSON shape decode to the zero value.
type AnswerValue struct {
	Text    string
	List    []string
	IsList  bool
	Present bool
}

func TextAnswer(s string) AnswerValue {
	return AnswerValue{Text: s, Present: true}
}

func ListAnswer(values ...string) AnswerValue {
	return AnswerValue{List: append([]string{}, values...), IsList: true, Present: true}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch {
	case !v.Present:
		return []byte("null"), nil
	case v.IsList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	default:
		return json.Marshal(v.Text)
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	*v = AnswerValue{}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.fromAny(raw)
	return nil
}

func (v *AnswerValue) fromAny(raw any) {
	switch val := raw.(type) {
	case nil:
	case string:
		*v = TextAnswer(val)
	case []any:
		list := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		*v = AnswerValue{List: list, IsList: true, Present: true}
	case []string:
		*v = ListAnswer(val...)
	default:
		// numbers, booleans, objects: present but not a usable shape
		v.Present = true
	}
}

func (v AnswerValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch {
	case !v.Present:
		return bsontype.Null, nil, nil
	case v.IsList:
		list := v.List
		if list == nil {
			list = []string{}
		}
		return bson.MarshalValue(list)
	default:
		return bson.MarshalValue(v.Text)
	}
}

func (v *AnswerValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*v = AnswerValue{}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		return nil
	case bsontype.String:
		var s string
		if err := bson.UnmarshalValue(t, data, &s); err != nil {
			return err
		}
		*v = TextAnswer(s)
	case bsontype.Array:
		var items []any
		if err := bson.UnmarshalValue(t, data, &items); err != nil {
			return err
		}
		v.fromAny(items)
	default:
		v.Present = true
	}
	return nil
}

// ErrAnswersShape is returned when a raw answers payload is not an object.
var ErrAnswersShape = errors.New("answers must be an object of string or string array values")

// ParseAnswers decodes a JSON object into an AnswerMap.
func ParseAnswers(data []byte) (AnswerMap, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, ErrAnswersShape
	}
	out := make(AnswerMap, len(raw))
	for k, msg := range raw {
		var v AnswerValue
		if err := v.UnmarshalJSON(msg); err != nil {
			return nil, ErrAnswersShape
		}
		out[k] = v
	}
	return out, nil
}
