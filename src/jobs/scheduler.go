package jobs

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/hibiken/asynq"
)

// DefaultAutosaveDelay debounces bursts of edits into one save.
const DefaultAutosaveDelay = 3 * time.Second

// Enqueuer is the part of *asynq.Client the schedulers use.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueAutosave schedules builder autosaves as delayed asynq tasks.
type QueueAutosave struct {
	client Enqueuer
	delay  time.Duration
}

func NewQueueAutosave(client Enqueuer, delay time.Duration) *QueueAutosave {
	// asynq rejects unique locks shorter than a second
	if delay < time.Second {
		delay = DefaultAutosaveDelay
	}
	return &QueueAutosave{client: client, delay: delay}
}

func (q *QueueAutosave) ScheduleAutosave(sessionID string) error {
	task, err := NewFormAutosaveTask(sessionID)
	if err != nil {
		return err
	}
	// The unique lock lives only as long as the delay, so it covers the
	// pending window. A task that is already running or archived never
	// blocks a new schedule; Manager.Autosave re-arms after a save that
	// left the session dirty.
	_, err = q.client.EnqueueContext(context.Background(), task,
		asynq.ProcessIn(q.delay),
		asynq.Unique(q.delay),
		asynq.MaxRetry(2),
	)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		// a pending autosave snapshots the session when it runs
		return nil
	}
	return err
}

// LocalAutosave debounces autosaves with timers when there is no queue.
// Bind must be called before the first schedule fires.
type LocalAutosave struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer
	run    func(ctx context.Context, sessionID string) error
}

func NewLocalAutosave(delay time.Duration) *LocalAutosave {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &LocalAutosave{delay: delay, timers: make(map[string]*time.Timer)}
}

// Bind sets the function that performs the save, usually Manager.Autosave.
func (l *LocalAutosave) Bind(run func(ctx context.Context, sessionID string) error) {
	l.mu.Lock()
	l.run = run
	l.mu.Unlock()
}

func (l *LocalAutosave) ScheduleAutosave(sessionID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.timers[sessionID]; ok {
		t.Reset(l.delay)
		return nil
	}
	l.timers[sessionID] = time.AfterFunc(l.delay, func() { l.fire(sessionID) })
	return nil
}

func (l *LocalAutosave) fire(sessionID string) {
	l.mu.Lock()
	delete(l.timers, sessionID)
	run := l.run
	l.mu.Unlock()
	if run == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := run(ctx, sessionID); err != nil {
		log.Printf("❌ [Autosave] session=%s: %v", sessionID, err)
	}
}

// Stop cancels every pending timer.
func (l *LocalAutosave) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, t := range l.timers {
		t.Stop()
		delete(l.timers, id)
	}
}
