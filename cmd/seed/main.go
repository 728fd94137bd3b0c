package main

import (
	"context"                           // Store operations
	"referral_rewards/internal/config"  // Custom import path (Config)
	"referral_rewards/internal/db"      // Custom import path (Database)
	"referral_rewards/internal/domain"  // Setting keys and roles
	"referral_rewards/internal/logging" // Logger setup
	"referral_rewards/internal/service" // Email normalization
	"strconv"                           // Reward formatting

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for seeding the persisted configuration
func main() {
	cfg := config.LoadConfig() // Load configuration
	defer logging.Setup(cfg).Close()
	ctx := context.Background()

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	store := db.NewStore(gdb)

	// Reward credited to each side of a referral
	value := strconv.FormatInt(cfg.ReferralReward, 10)
	if err := store.SetSetting(ctx, domain.SettingReferralReward, value); err != nil {
		logrus.Fatalf("failed to set reward: %v", err)
	}
	logrus.WithField("reward", cfg.ReferralReward).Info("Referral reward set")

	// Optionally promote an existing account to admin
	if cfg.AdminEmail == "" {
		return
	}
	user, err := store.UserByEmail(ctx, service.NormalizeEmail(cfg.AdminEmail))
	if err != nil {
		logrus.Fatalf("admin account %s not found: %v", cfg.AdminEmail, err)
	}
	if err := store.UpdateUserFields(ctx, user.ID, map[string]any{"role": domain.RoleAdmin}); err != nil {
		logrus.Fatalf("failed to promote admin: %v", err)
	}
	logrus.WithField("user_id", user.ID).Info("Admin role granted")
}
