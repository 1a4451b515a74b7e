package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	usersGroup := g.Group("/users")
	usersGroup.Use(authMiddleware)
	{
		usersGroup.GET("/me", h.Me)
	}

	prosGroup := g.Group("/professionals")
	prosGroup.Use(authMiddleware)
	{
		prosGroup.GET("", h.ListProfessionals)
	}
}
