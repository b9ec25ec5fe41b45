// Package notify fans "a response arrived" events out to the form owner's
// open dashboards.
package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

const EventResponseCreated = "response.created"

// Event tells a dashboard that its data changed. Subscribers refetch; the
// event itself carries only ids.
type Event struct {
	Type       string    `json:"type"`
	OwnerID    string    `json:"ownerId"`
	FormID     string    `json:"formId"`
	ResponseID string    `json:"responseId,omitempty"`
	At         time.Time `json:"at"`
}

// Broadcaster delivers events to every subscriber of an owner.
type Broadcaster interface {
	Publish(ctx context.Context, ownerID string, evt Event) error
	// Subscribe returns a channel of events for ownerID. The cancel func
	// must be called to release the subscription; the channel is closed
	// after it.
	Subscribe(ctx context.Context, ownerID string) (<-chan Event, func())
}

const subscriberBuffer = 16

// LocalBroadcaster fans out inside this process. Used when redis is not
// configured.
type LocalBroadcaster struct {
	mu   sync.RWMutex
	next int
	subs map[string]map[int]chan Event
}

func NewLocalBroadcaster() *LocalBroadcaster {
	return &LocalBroadcaster{subs: make(map[string]map[int]chan Event)}
}

func (b *LocalBroadcaster) Publish(_ context.Context, ownerID string, evt Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[ownerID] {
		select {
		case ch <- evt:
		default:
			// slow subscriber, it will catch up on the next event
		}
	}
	return nil
}

func (b *LocalBroadcaster) Subscribe(_ context.Context, ownerID string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	id := b.next
	b.next++
	if b.subs[ownerID] == nil {
		b.subs[ownerID] = make(map[int]chan Event)
	}
	b.subs[ownerID][id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[ownerID], id)
			if len(b.subs[ownerID]) == 0 {
				delete(b.subs, ownerID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Notifier publishes response events straight to a Broadcaster. Failures
// are logged and never reach the submitter.
type Notifier struct {
	b   Broadcaster
	now func() time.Time
}

func NewNotifier(b Broadcaster) *Notifier {
	return &Notifier{b: b, now: time.Now}
}

func (n *Notifier) ResponseCreated(ctx context.Context, ownerID, formID, responseID string) {
	evt := Event{
		Type:       EventResponseCreated,
		OwnerID:    ownerID,
		FormID:     formID,
		ResponseID: responseID,
		At:         n.now().UTC(),
	}
	if err := n.b.Publish(ctx, ownerID, evt); err != nil {
		log.Printf("⚠️ [Notify] publish failed owner=%s form=%s: %v", ownerID, formID, err)
	}
}
