package chathub

import "chatrelay/backend/internal/models"

// Mirror receives a copy of every stored message and every roster broadcast.
// Implementations must not block the caller; see storage.RedisMirror.
type Mirror interface {
	PublishMessage(msg models.Message)
	PublishRoster(users []models.RosterUser)
}

// NopMirror discards everything. Used when no Redis address is configured.
type NopMirror struct{}

func (NopMirror) PublishMessage(models.Message)     {}
func (NopMirror) PublishRoster([]models.RosterUser) {}
