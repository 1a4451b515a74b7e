package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	bookings := g.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/confirm", h.Confirm)
		bookings.POST("/:id/start", h.Start)
		bookings.POST("/:id/complete", h.Complete)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.POST("/:id/reschedule", h.Reschedule)
		bookings.PATCH("/:id/notes", h.UpdateNotes)
		bookings.GET("/:id/reschedules", h.ListReschedules)
	}

	slots := g.Group("/professionals/:id/slots")
	slots.Use(authMiddleware)
	{
		slots.GET("", h.Slots)
	}
}
