package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, professionalMiddleware gin.HandlerFunc) {
	group := g.Group("/professionals/:id/availability")

	group.Use(authMiddleware)
	{
		group.GET("", h.GetWeek)
		group.PUT("/:weekday", professionalMiddleware, h.SetDay)
	}
}
