package api

import (
	"net/http"                          // HTTP status codes
	"referral_rewards/internal/service" // Admin service
	"strconv"                           // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// UpdateStatusRequest is the admin status body
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"` // active, inactive or suspended
}

// ListUsersHandler returns one page of users, optionally filtered by status
func ListUsersHandler(admin *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))           // Invalid values fall back to defaults
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20")) // Capped by the service
		res, err := admin.ListUsers(c.Request.Context(), c.Query("status"), page, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// UpdateUserStatusHandler sets one user's status
func UpdateUserStatusHandler(admin *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathUserID(c)
		if !ok {
			return
		}
		var req UpdateStatusRequest
		if !bindJSON(c, &req) {
			return
		}
		user, err := admin.UpdateStatus(c.Request.Context(), userID, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DashboardHandler returns the global aggregates
func DashboardHandler(admin *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := admin.Dashboard(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}
