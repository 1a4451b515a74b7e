package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	bookings := g.Group("/bookings/:id/review")
	bookings.Use(authMiddleware)
	{
		bookings.POST("", h.Submit)
	}

	pros := g.Group("/professionals/:id/reviews")
	{
		pros.GET("", h.List)
		pros.GET("/summary", h.Summary)
	}
}
