package broadcast

import (
	"log/slog"
	"sync"
)

const subscriberBufferSize = 64

// Hub is an in-process fan-out publisher. Each subscriber receives every
// message published after it subscribed; slow subscribers drop messages
// rather than block the publish path.
type Hub struct {
	logger *slog.Logger

	mu   sync.Mutex
	subs map[chan string]struct{}
}

// Ensure Hub implements Publisher
var _ Publisher = (*Hub)(nil)

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With(slog.String("component", "broadcast")),
		subs:   make(map[chan string]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its receive channel.
func (h *Hub) Subscribe() chan string {
	ch := make(chan string, subscriberBufferSize)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	count := len(h.subs)
	h.mu.Unlock()

	h.logger.Info("subscriber registered", slog.Int("total_subscribers", count))
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	count := len(h.subs)
	h.mu.Unlock()

	h.logger.Info("subscriber unregistered", slog.Int("total_subscribers", count))
}

// Publish sends the message to every current subscriber without blocking.
func (h *Hub) Publish(message string) {
	h.mu.Lock()
	dropped := 0
	for ch := range h.subs {
		select {
		case ch <- message:
		default:
			dropped++
		}
	}
	count := len(h.subs)
	h.mu.Unlock()

	if dropped > 0 {
		h.logger.Warn("broadcast partial delivery",
			slog.Int("dropped", dropped),
			slog.Int("subscribers", count))
	}
}

// SubscriberCount returns the number of registered subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close unsubscribes everyone.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}
