package notify

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ChannelPrefix + ownerID is the pub/sub channel of one owner.
const ChannelPrefix = "form-responses:"

// RedisBroadcaster fans out over redis pub/sub so every API instance sees
// every submission.
type RedisBroadcaster struct {
	client *redis.Client
}

func NewRedisBroadcaster(client *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{client: client}
}

func Channel(ownerID string) string {
	return ChannelPrefix + ownerID
}

func (b *RedisBroadcaster) Publish(ctx context.Context, ownerID string, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, Channel(ownerID), payload).Err()
}

func (b *RedisBroadcaster) Subscribe(ctx context.Context, ownerID string) (<-chan Event, func()) {
	pubsub := b.client.Subscribe(ctx, Channel(ownerID))
	out := make(chan Event, subscriberBuffer)
	done := make(chan struct{})

	go func() {
		defer close(out)
		msgs := pubsub.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var evt Event
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					log.Printf("⚠️ [Notify] bad event on %s: %v", msg.Channel, err)
					continue
				}
				select {
				case out <- evt:
				default:
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			if err := pubsub.Close(); err != nil {
				log.Printf("⚠️ [Notify] closing subscription owner=%s: %v", ownerID, err)
			}
		})
	}
	return out, cancel
}
