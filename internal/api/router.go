package api

import (
	"chatrelay/backend/internal/api/handler"
	"chatrelay/backend/internal/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates the gin engine with every relay route.
func NewRouter(h *handler.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(h.Log))
	r.Use(gin.Recovery())

	r.GET("/ws", h.ServeWebSocket)
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/roster", h.GetRoster)
	api.GET("/history", h.GetHistory)

	return r
}
