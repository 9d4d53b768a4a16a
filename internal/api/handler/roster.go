package handler

import (
	"chatrelay/backend/internal/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// GetRoster returns the deduplicated roster, the same list sent in user-list events.
func (h *Handler) GetRoster(c *gin.Context) {
	users := lo.Map(h.Router.Roster.AllEntries(), func(e models.PresenceEntry, _ int) models.RosterUser {
		return e.RosterUser()
	})
	c.JSON(http.StatusOK, users)
}

// GetHistory returns the thread between query parameters a and b.
func (h *Handler) GetHistory(c *gin.Context) {
	a, b := c.Query("a"), c.Query("b")
	if a == "" || b == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameters a and b are required"})
		return
	}
	c.JSON(http.StatusOK, h.Router.History.MessagesBetween(a, b))
}

// Health reports liveness together with a few counters.
func (h *Handler) Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	select {
	case <-h.Hub.Done():
		status = "stopped"
		code = http.StatusServiceUnavailable
	default:
	}

	c.JSON(code, gin.H{
		"status":      status,
		"connections": h.Router.Roster.Len(),
		"identities":  len(h.Router.Roster.AllEntries()),
		"messages":    h.Router.History.Len(),
	})
}
