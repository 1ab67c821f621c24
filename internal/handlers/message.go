package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

// RegisterMessageRoutes registers the stateless renderer.
//
// POST /messages/render
// - Body is a provider event
// - Returns its display text
func RegisterMessageRoutes(r gin.IRoutes, msgs Renderer) {
	r.POST("/messages/render", func(c *gin.Context) {
		var e models.Event
		if err := c.ShouldBindJSON(&e); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}
		if e.Action == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "action required"})
			return
		}

		c.JSON(http.StatusOK, models.RenderResponse{Message: msgs.Message(e)})
	})
}
