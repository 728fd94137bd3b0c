package middleware

import (
	"net/http"                         // HTTP status codes
	"referral_rewards/internal/db"     // User record store
	"referral_rewards/internal/domain" // Importing domain models
	"strconv"                          // Path parameter parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

// isAdmin loads the caller and checks its role on every request, so a demoted
// admin loses access without waiting for token expiry
func isAdmin(c *gin.Context, store *db.Store) bool {
	userID, ok := CurrentUserID(c)
	if !ok {
		return false
	}
	user, err := store.UserByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return user.Role == domain.RoleAdmin
}

// AdminOnlyMiddleware checks the user's role from the database on each request
func AdminOnlyMiddleware(store *db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := CurrentUserID(c); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !isAdmin(c, store) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// SelfOrAdminMiddleware lets a request through when the :param path value is
// the caller's own ID, or when the caller is an admin
func SelfOrAdminMiddleware(store *db.Store, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := CurrentUserID(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		target, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		if uint(target) != userID && !isAdmin(c, store) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
