package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"Backend-Formcraft/src/services/builder"
	"Backend-Formcraft/src/services/forms"

	"github.com/hibiken/asynq"
)

// Autosaver is the builder side of the autosave task.
type Autosaver interface {
	Autosave(ctx context.Context, sessionID string) error
}

func HandleFormAutosaveTask(saver Autosaver) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload FormAutosavePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			log.Println("❌ Payload decode error:", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if err := saver.Autosave(ctx, payload.SessionID); err != nil {
			log.Printf("❌ [Autosave] session=%s: %v", payload.SessionID, err)
			if errors.Is(err, forms.ErrConflict) || errors.Is(err, builder.ErrSessionNotFound) {
				// retrying can't help: another editor saved, or the session is gone
				return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
			}
			return err
		}
		return nil
	}
}

func HandleResponseCreatedTask(n ResponseNotifier) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ResponseCreatedPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			log.Println("❌ Payload decode error:", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		n.ResponseCreated(ctx, payload.OwnerID, payload.FormID, payload.ResponseID)
		return nil
	}
}

// RegisterHandlers ลงทะเบียน Handler ทั้งหมดของ worker
func RegisterHandlers(mux *asynq.ServeMux, saver Autosaver, n ResponseNotifier) {
	mux.HandleFunc(TypeFormAutosave, HandleFormAutosaveTask(saver))
	mux.HandleFunc(TypeResponseCreated, HandleResponseCreatedTask(n))
}

// StartWorker runs an in-process asynq server. Builder sessions live in this
// process's memory, so autosave tasks must be consumed here too.
func StartWorker(opt asynq.RedisConnOpt, saver Autosaver, n ResponseNotifier) (*asynq.Server, error) {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 4,
		Queues:      map[string]int{"default": 1},
	})
	mux := asynq.NewServeMux()
	RegisterHandlers(mux, saver, n)
	if err := srv.Start(mux); err != nil {
		return nil, err
	}
	log.Println("✅ Asynq worker started")
	return srv, nil
}
