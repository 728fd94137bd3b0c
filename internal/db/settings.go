package db

import (
	"context"                          // Request scoped context
	"errors"                           // Error inspection
	"fmt"                              // Error wrapping
	"referral_rewards/internal/domain" // Importing domain models
	"strconv"                          // Reward parsing
	"strings"                          // Trimming

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Upsert clause
)

// Setting returns the raw value of key and whether it exists
func (s *Store) Setting(ctx context.Context, key string) (string, bool, error) {
	var setting domain.Setting
	err := s.db.WithContext(ctx).Where(&domain.Setting{Key: key}).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

// SetSetting inserts or overwrites key
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&domain.Setting{Key: key, Value: value}).Error
}

// ReferralReward reads the configured reward; an unset value is 0
func (s *Store) ReferralReward(ctx context.Context) (int64, error) {
	raw, ok, err := s.Setting(ctx, domain.SettingReferralReward)
	if err != nil || !ok {
		return 0, err
	}
	reward, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %s=%q is not an integer: %w", domain.SettingReferralReward, raw, err)
	}
	return reward, nil
}
