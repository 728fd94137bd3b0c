package api

import (
	"net/http"                             // HTTP status codes
	"referral_rewards/internal/db"         // User record store
	"referral_rewards/internal/metrics"    // Prometheus collectors
	"referral_rewards/internal/middleware" // Custom middleware
	"referral_rewards/internal/service"    // Services

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps are the collaborators the router wires into handlers
type Deps struct {
	Store     *db.Store         // Used by the role checks
	Services  *service.Services // Domain services
	Metrics   *metrics.Metrics  // Optional; /metrics is skipped when nil
	JWTSecret string            // Token signing secret
}

// NewRouter builds the gin engine with every route
func NewRouter(d Deps) *gin.Engine {
	r := gin.Default() // Gin router instance with logger and recovery
	r.Use(middleware.RequestID(), middleware.Observe(d.Metrics))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := r.Group("/api")
	// Public routes
	api.POST("/register", RegisterHandler(d.Services.Auth))
	api.POST("/login", LoginHandler(d.Services.Auth))
	api.GET("/leaderboard", LeaderboardHandler(d.Services.Report))

	// Routes protected by JWT
	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(d.JWTSecret))
	authed.POST("/apply-referral", ApplyReferralHandler(d.Services.Referral))

	// Per-user routes: the caller's own ID, or any ID for admins
	self := middleware.SelfOrAdminMiddleware(d.Store, "userId")
	authed.GET("/stats/:userId", self, StatsHandler(d.Services.Report))
	authed.GET("/transactions/:userId", self, TransactionsHandler(d.Services.Report))
	authed.GET("/analytics/:userId", self, AnalyticsHandler(d.Services.Report))
	authed.GET("/profile/:userId", self, GetProfileHandler(d.Services.Profile))
	authed.PUT("/profile/:userId", self, UpdateProfileHandler(d.Services.Profile))

	// Admin routes
	admin := authed.Group("/admin")
	admin.Use(middleware.AdminOnlyMiddleware(d.Store))
	admin.GET("/users", ListUsersHandler(d.Services.Admin))
	admin.PUT("/users/:userId/status", UpdateUserStatusHandler(d.Services.Admin))
	admin.GET("/dashboard", DashboardHandler(d.Services.Admin))

	return r
}
