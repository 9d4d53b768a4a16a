package handler

import (
	"chatrelay/backend/internal/chathub"

	"github.com/rs/zerolog"
)

// Handler holds the hub and router the HTTP endpoints talk to.
type Handler struct {
	Hub    *chathub.ManagerService
	Router *chathub.Router
	Log    zerolog.Logger

	SendBufferSize int
	MaxMessageSize int64
}

func NewHandler(hub *chathub.ManagerService, router *chathub.Router, log zerolog.Logger, sendBufferSize int, maxMessageSize int64) *Handler {
	return &Handler{
		Hub:            hub,
		Router:         router,
		Log:            log,
		SendBufferSize: sendBufferSize,
		MaxMessageSize: maxMessageSize,
	}
}
