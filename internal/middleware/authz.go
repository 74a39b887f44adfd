package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskpilot/internal/models"
)

func RequireRole(allowed ...models.UserRole) gin.HandlerFunc {
	allowedSet := map[string]struct{}{}
	for _, r := range allowed {
		allowedSet[string(r)] = struct{}{}
	}
	return func(c *gin.Context) {
		v, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "message": "no role in context"})
			return
		}
		role, _ := v.(string)
		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"success": false, "message": "forbidden"})
			return
		}
		c.Next()
	}
}
