package http

import "github.com/gin-gonic/gin"

// Register attaches the conversation routes under the projects group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/create", h.state)
	rg.POST("/create", h.act)
	rg.DELETE("/create", h.abandon)
}
