package notifyhub

import (
	"context"
	"encoding/json"
	"estatehub/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Subscriber opens the pattern subscription on the notification channels.
type Subscriber interface {
	SubscribeNotifications(ctx context.Context) *redis.PubSub
}

// StartPubSubListener forwards every published notification to the hub
// until ctx is cancelled.
func (h *Hub) StartPubSubListener(ctx context.Context, sub Subscriber) {
	pubsub := sub.SubscribeNotifications(ctx)
	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var n models.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
					h.Log.Warn("malformed notification on pubsub", zap.String("channel", msg.Channel), zap.Error(err))
					continue
				}
				select {
				case h.DispatchCh <- n:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}
