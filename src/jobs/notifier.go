package jobs

import (
	"context"
	"log"

	"github.com/hibiken/asynq"
)

// ResponseNotifier is what the forms service calls after a submission.
type ResponseNotifier interface {
	ResponseCreated(ctx context.Context, ownerID, formID, responseID string)
}

// QueueNotifier moves response fan-out onto the queue. When enqueueing
// fails the event is published directly instead.
type QueueNotifier struct {
	client   Enqueuer
	fallback ResponseNotifier
}

func NewQueueNotifier(client Enqueuer, fallback ResponseNotifier) *QueueNotifier {
	return &QueueNotifier{client: client, fallback: fallback}
}

func (q *QueueNotifier) ResponseCreated(ctx context.Context, ownerID, formID, responseID string) {
	task, err := NewResponseCreatedTask(ownerID, formID, responseID)
	if err == nil {
		_, err = q.client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	}
	if err == nil {
		return
	}
	log.Printf("⚠️ [QueueNotifier] enqueue failed, publishing directly form=%s: %v", formID, err)
	if q.fallback != nil {
		q.fallback.ResponseCreated(ctx, ownerID, formID, responseID)
	}
}
