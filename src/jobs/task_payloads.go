package jobs

import (
	"encoding/json"
	"strings"

	"github.com/hibiken/asynq"
)

const (
	TypeFormAutosave    = "form:autosave"
	TypeResponseCreated = "response:created"
)

type FormAutosavePayload struct {
	SessionID string `json:"sessionId"`
}

func NewFormAutosaveTask(sessionID string) (*asynq.Task, error) {
	payload, err := json.Marshal(FormAutosavePayload{SessionID: strings.TrimSpace(sessionID)})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeFormAutosave, payload), nil
}

type ResponseCreatedPayload struct {
	OwnerID    string `json:"ownerId"`
	FormID     string `json:"formId"`
	ResponseID string `json:"responseId"`
}

func NewResponseCreatedTask(ownerID, formID, responseID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ResponseCreatedPayload{
		OwnerID:    ownerID,
		FormID:     formID,
		ResponseID: responseID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeResponseCreated, payload), nil
}
