package api

import (
	"net/http"                          // HTTP status codes
	"referral_rewards/internal/service" // Reporting views

	"github.com/gin-gonic/gin" // Gin web framework
)

// StatsHandler lists the accounts referred by the user
func StatsHandler(reports *service.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathUserID(c)
		if !ok {
			return
		}
		stats, err := reports.Stats(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// LeaderboardHandler returns the top accounts by coins
func LeaderboardHandler(reports *service.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		board, err := reports.Leaderboard(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, board)
	}
}

// TransactionsHandler returns the user's most recent transactions
func TransactionsHandler(reports *service.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathUserID(c)
		if !ok {
			return
		}
		txs, err := reports.Transactions(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, txs)
	}
}

// AnalyticsHandler returns derived metrics for the user
func AnalyticsHandler(reports *service.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathUserID(c)
		if !ok {
			return
		}
		analytics, err := reports.Analytics(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, analytics)
	}
}
