package service

import (
	"context"
	"fmt"
	"strings"

	"referral_rewards/internal/db"
	"referral_rewards/internal/domain"
	"referral_rewards/internal/utils"
)

// ProfileInput carries the editable profile fields; nil fields are left alone
type ProfileInput struct {
	Name    *string
	Company *string
	Phone   *string
	Avatar  *string
}

// ProfileService reads and edits account profiles
type ProfileService struct {
	store *db.Store
	cache *utils.Cache
}

// NewProfileService creates a ProfileService
func NewProfileService(store *db.Store, cache *utils.Cache) *ProfileService {
	return &ProfileService{store: store, cache: cache}
}

// Get returns one account
func (s *ProfileService) Get(ctx context.Context, userID uint) (*domain.User, error) {
	return findUser(ctx, s.store, userID)
}

// Update applies the present fields and returns the updated account
func (s *ProfileService) Update(ctx context.Context, userID uint, in ProfileInput) (*domain.User, error) {
	if _, err := findUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrMissingFields
		}
		fields["name"] = name
	}
	if in.Company != nil {
		fields["company"] = strings.TrimSpace(*in.Company)
	}
	if in.Phone != nil {
		fields["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.Avatar != nil {
		fields["avatar"] = strings.TrimSpace(*in.Avatar)
	}
	if err := s.store.UpdateUserFields(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	// Names, companies and avatars appear in both cached views
	_ = s.cache.Delete(ctx, utils.LeaderboardKey, utils.DashboardKey)
	return findUser(ctx, s.store, userID)
}
