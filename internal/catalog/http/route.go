package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, professionalMiddleware gin.HandlerFunc) {
	services := g.Group("/services")
	services.Use(authMiddleware, professionalMiddleware)
	{
		services.POST("", h.Create)
		services.PATCH("/:id", h.Update)
	}

	pros := g.Group("/professionals/:id/services")
	pros.Use(authMiddleware)
	{
		pros.GET("", h.List)
	}
}
