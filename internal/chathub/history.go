package chathub

import (
	"chatrelay/backend/internal/models"
	"sync"

	"github.com/samber/lo"
)

// History is the append-only message log. Insertion order is chronological order.
type History struct {
	mu       sync.RWMutex
	messages []models.Message
}

func NewHistory() *History {
	return &History{}
}

// Append stores a fully formed message.
func (h *History) Append(msg models.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg)
}

// MessagesBetween returns the thread between a and b in both directions,
// oldest first.
func (h *History) MessagesBetween(a, b string) []models.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return lo.Filter(h.messages, func(m models.Message, _ int) bool {
		return m.Between(a, b)
	})
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}
