package api

import (
	"net/http"                          // HTTP status codes
	"referral_rewards/internal/service" // Profile service

	"github.com/gin-gonic/gin" // Gin web framework
)

// UpdateProfileRequest carries optional profile fields; absent fields are untouched
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
	Avatar  *string `json:"avatar" binding:"omitempty,max=2048"`
}

// GetProfileHandler returns the account summary
func GetProfileHandler(profiles *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathUserID(c)
		if !ok {
			return
		}
		user, err := profiles.Get(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfileHandler edits the profile fields present in the body
func UpdateProfileHandler(profiles *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathUserID(c)
		if !ok {
			return
		}
		var req UpdateProfileRequest
		if !bindJSON(c, &req) {
			return
		}
		user, err := profiles.Update(c.Request.Context(), userID, service.ProfileInput{
			Name:    req.Name,
			Company: req.Company,
			Phone:   req.Phone,
			Avatar:  req.Avatar,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
