package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/primefit-labs/training-scheduler/internal/models"
)

// Hub fans message inserts out to live conversation streams over redis
// pub/sub. One redis channel per conversation; every API instance
// subscribed to that channel mirrors the event to its local SSE clients.
type Hub struct {
	rdb *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{rdb: rdb}
}

func channelFor(conversationID uint) string {
	return fmt.Sprintf("conversation:%d", conversationID)
}

// PublishMessage announces a freshly inserted message. Publish failures
// are logged and swallowed: the message is already persisted and the next
// history fetch will pick it up.
func (h *Hub) PublishMessage(ctx context.Context, msg *models.Message) {
	if h.rdb == nil {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	if err := h.rdb.Publish(ctx, channelFor(msg.ConversationID), payload).Err(); err != nil {
		log.Printf("realtime publish failed for conversation %d: %v", msg.ConversationID, err)
	}
}

// Subscribe opens a live feed of message inserts for one conversation.
// The returned channel closes when ctx is cancelled. Delivery can overlap
// a concurrent history fetch; consumers dedup by message id.
func (h *Hub) Subscribe(ctx context.Context, conversationID uint) <-chan models.Message {
	out := make(chan models.Message, 16)

	if h.rdb == nil {
		close(out)
		return out
	}

	sub := h.rdb.Subscribe(ctx, channelFor(conversationID))

	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}

				var msg models.Message
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					continue
				}

				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
