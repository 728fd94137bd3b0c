package main

import (
	"context"                           // context package is needed for Redis operations
	"referral_rewards/internal/api"     // Custom package for API handlers
	"referral_rewards/internal/config"  // Custom package for configuration
	"referral_rewards/internal/db"      // Database connection and store
	"referral_rewards/internal/logging" // Logger setup
	"referral_rewards/internal/metrics" // Prometheus collectors
	"referral_rewards/internal/service" // Domain services
	"referral_rewards/internal/utils"   // Cache
	"time"                              // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// cacheTTL is how long derived views stay in Redis
const cacheTTL = 60 * time.Second

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logFile := logging.Setup(cfg)
	defer logFile.Close()
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	store := db.NewStore(gdb)

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New("referrals")
	services := service.New(store, utils.NewCache(redisClient, cacheTTL), m, cfg.JWTSecret)
	r := api.NewRouter(api.Deps{
		Store:     store,
		Services:  services,
		Metrics:   m,
		JWTSecret: cfg.JWTSecret,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
