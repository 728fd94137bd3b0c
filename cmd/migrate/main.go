package main

import (
	"referral_rewards/internal/config"  // Custom import path (Config)
	"referral_rewards/internal/db"      // Custom import path (Database)
	"referral_rewards/internal/logging" // Logger setup

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	defer logging.Setup(cfg).Close()

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
}
