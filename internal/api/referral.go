package api

import (
	"net/http"                             // HTTP status codes
	"referral_rewards/internal/middleware" // Authenticated caller
	"referral_rewards/internal/service"    // Referral engine

	"github.com/gin-gonic/gin" // Gin web framework
)

// ApplyReferralRequest is the apply-referral body; code is accepted as an alias of referralCode
type ApplyReferralRequest struct {
	UserID       uint   `json:"userId" binding:"required"`                    // Applicant
	ReferralCode string `json:"referralCode" binding:"required_without=Code"` // Code to apply
	Code         string `json:"code"`                                         // Alias
}

// ApplyReferralResponse reports the applicant's new balance
type ApplyReferralResponse struct {
	Success bool  `json:"success"`
	Coins   int64 `json:"coins"`
	Added   int64 `json:"added"`
}

// ApplyReferralHandler applies a referral code on behalf of the caller
func ApplyReferralHandler(referrals *service.ReferralService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ApplyReferralRequest
		if !bindJSON(c, &req) {
			return
		}
		// Accounts may only apply codes for themselves
		if callerID, _ := middleware.CurrentUserID(c); callerID != req.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		code := req.ReferralCode
		if code == "" {
			code = req.Code
		}
		res, err := referrals.Apply(c.Request.Context(), req.UserID, code)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, ApplyReferralResponse{Success: true, Coins: res.Coins, Added: res.Added})
	}
}
