package notify

import (
	"log/slog"
	"sync"

	"trafficdesk/internal/shared/events"
)

const subscriberBuffer = 16

// Hub fans ticket lifecycle events out to in-process subscribers (SSE
// handlers, tests). It is injected wherever a broadcaster is needed; slow
// subscribers lose events rather than blocking the publisher.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[int]chan events.Envelope
	nextID      int
	logger      *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subscribers: make(map[int]chan events.Envelope),
		logger:      logger,
	}
}

func (h *Hub) Broadcast(event events.Envelope) {
	h.mu.RLock()
	subs := make([]chan events.Envelope, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub <- event:
		default:
			h.logger.Warn("dropping event for slow subscriber",
				"event", "notify_broadcast_drop",
				"module", "internal/platform/notify",
				"layer", "platform",
				"event_id", event.EventID,
				"event_type", event.EventType,
			)
		}
	}
}

// Subscribe returns a receive channel and a cancel func. Cancel unregisters
// the subscriber but never closes the channel: Broadcast snapshots the
// subscriber set before sending, so a close racing a send would panic the
// publisher. Stop selecting on the channel after cancelling.
func (h *Hub) Subscribe() (<-chan events.Envelope, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan events.Envelope, subscriberBuffer)
	h.subscribers[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers, id)
	}
	return ch, cancel
}
