package auth

import "github.com/gin-gonic/gin"

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetActor returns the authenticated actor resolved from the request context.
// The zero Actor is returned when the request is unauthenticated.
func GetActor(c *gin.Context) Actor {
	a := Actor{ID: GetUserID(c)}
	if v, ok := c.Get("userRole"); ok {
		if s, ok := v.(string); ok {
			if role, ok := ParseRole(s); ok {
				a.Role = role
			}
		}
	}
	return a
}
