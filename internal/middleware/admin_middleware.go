package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voyageclub/voyageclub-golang/internal/models"
)

//
// --- Role-Based Middleware ---
//
// Designed to run *after* AuthMiddleware(): it reads the role the auth
// middleware already resolved (fresh from the database on this same
// request) and enforces it. Order status changes, catalog writes and
// user management all sit behind this gate.
//

// AdminMiddleware allows only administrators through.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get identity set by AuthMiddleware
		role_raw, exists := c.Get("userRole")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User role not found in context (AuthMiddleware must run first)"})
			c.Abort()
			return
		}

		// 2. Check permission
		if role_raw.(string) != models.RoleAdministrator {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: Administrator role required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
