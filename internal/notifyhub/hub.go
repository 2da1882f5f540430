package notifyhub

import (
	"context"
	"estatehub/backend/internal/metrics"
	"estatehub/backend/internal/models"
	"sync/atomic"

	"go.uber.org/zap"
)

// Hub owns the set of connected clients. Only the Run goroutine touches the map.
type Hub struct {
	clients map[string]map[Client]struct{}

	RegisterCh   chan Client
	UnregisterCh chan Client
	DispatchCh   chan models.Notification

	Log   *zap.Logger
	count atomic.Int64
	done  chan struct{}
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:      make(map[string]map[Client]struct{}),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		DispatchCh:   make(chan models.Notification, 256),
		Log:          log,
		done:         make(chan struct{}),
	}
}

// ClientCount is the number of connected clients across all users.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Run processes registrations and deliveries until ctx is cancelled,
// then closes every remaining client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for c := range set {
					h.remove(c)
				}
			}
			return

		case c := <-h.RegisterCh:
			set, ok := h.clients[c.GetUserID()]
			if !ok {
				set = make(map[Client]struct{})
				h.clients[c.GetUserID()] = set
			}
			set[c] = struct{}{}
			h.changed(1)
			h.Log.Debug("stream client registered", zap.String("user_id", c.GetUserID()))

		case c := <-h.UnregisterCh:
			h.remove(c)

		case n := <-h.DispatchCh:
			for c := range h.clients[n.UserID] {
				select {
				case c.GetSendChannel() <- n:
				default:
					// Slow consumer: drop it rather than block every other user.
					h.Log.Warn("dropping slow stream client", zap.String("user_id", n.UserID))
					h.remove(c)
				}
			}
		}
	}
}

// Register adds c and reports false when the hub has already stopped.
func (h *Hub) Register(c Client) bool {
	select {
	case h.RegisterCh <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes c; it does not block once the hub has stopped.
func (h *Hub) Unregister(c Client) {
	select {
	case h.UnregisterCh <- c:
	case <-h.done:
	}
}

// remove is a no-op for clients that are no longer registered.
func (h *Hub) remove(c Client) {
	set, ok := h.clients[c.GetUserID()]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.GetUserID())
	}
	c.Close()
	h.changed(-1)
}

func (h *Hub) changed(delta int64) {
	metrics.SetStreamClients(int(h.count.Add(delta)))
}
