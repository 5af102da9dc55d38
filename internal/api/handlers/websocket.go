package handlers

import (
	"github.com/airpong/backend/internal/ws"
	"github.com/gin-gonic/gin"
)

// HandleMatchWebSocket attaches a renderer to the live snapshot feed.
func HandleMatchWebSocket(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	}
}
