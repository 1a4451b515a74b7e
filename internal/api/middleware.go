package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/servipro-app/servipro-backend/internal/auth"
	"github.com/servipro-app/servipro-backend/internal/user"
)

// RequireProfessional ensures the authenticated user holds the professional
// role. It MUST be used after auth.AuthRequired middleware.
func RequireProfessional(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if u.Role != auth.RoleProfessional {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: professional account required"})
			return
		}

		c.Next()
	}
}
