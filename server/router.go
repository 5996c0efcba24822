package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the HTTP routing table around a set of handlers.
func NewRouter(h *Handlers, accessLog bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if accessLog {
		r.Use(accessLogger())
	}
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.POST("/text-to-image", h.TextToImage)
		api.POST("/image-edit", h.EditImage)
		api.POST("/multi-image", h.ComposeImages)

		api.POST("/conversations", h.CreateConversation)
		api.GET("/conversations/:id", h.GetConversation)
		api.POST("/conversations/:id/messages", h.SendTurn)
		api.POST("/conversations/:id/reset", h.ResetConversation)
		api.DELETE("/conversations/:id", h.DeleteConversation)

		api.GET("/images/:id", h.GetImage)
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	})

	return r
}
