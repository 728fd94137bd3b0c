package service

import (
	"context"
	"fmt"

	"referral_rewards/internal/db"
	"referral_rewards/internal/domain"
	"referral_rewards/internal/utils"

	"github.com/sirupsen/logrus"
)

const (
	dashboardListSize = 5
	defaultPageSize   = 20
	maxPageSize       = 100
)

// UserPage is one page of the admin user listing
type UserPage struct {
	Users      []domain.User `json:"users"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// Dashboard holds the global admin aggregates
type Dashboard struct {
	TotalUsers            int64         `json:"totalUsers"`
	ActiveUsers           int64         `json:"activeUsers"`
	TotalTransactions     int64         `json:"totalTransactions"`
	TotalCoinsDistributed int64         `json:"totalCoinsDistributed"`
	RecentUsers           []domain.User `json:"recentUsers"`
	TopEarners            []domain.User `json:"topEarners"`
}

// AdminService backs the admin endpoints
type AdminService struct {
	store *db.Store
	cache *utils.Cache
}

// NewAdminService creates an AdminService
func NewAdminService(store *db.Store, cache *utils.Cache) *AdminService {
	return &AdminService{store: store, cache: cache}
}

// ListUsers pages through accounts, optionally with one status.
// Out of range page values fall back to the defaults.
func (s *AdminService) ListUsers(ctx context.Context, status string, page, pageSize int) (*UserPage, error) {
	if status != "" && !domain.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	users, total, err := s.store.ListUsers(ctx, status, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &UserPage{
		Users:      users,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (int(total) + pageSize - 1) / pageSize,
	}, nil
}

// UpdateStatus sets an account's status; unknown values change nothing
func (s *AdminService) UpdateStatus(ctx context.Context, userID uint, status string) (*domain.User, error) {
	if !domain.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	user, err := findUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateUserFields(ctx, userID, map[string]any{"status": status}); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	_ = s.cache.Delete(ctx, utils.DashboardKey)
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"from":    user.Status,
		"to":      status,
	}).Info("User status updated")
	user.Status = status
	return user, nil
}

// Dashboard computes the global aggregates
func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	if found, err := s.cache.Get(ctx, utils.DashboardKey, &d); err == nil && found {
		return &d, nil
	}
	var err error
	if d.TotalUsers, err = s.store.CountUsers(ctx, ""); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if d.ActiveUsers, err = s.store.CountUsers(ctx, domain.StatusActive); err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}
	if d.TotalTransactions, err = s.store.CountTransactions(ctx); err != nil {
		return nil, fmt.Errorf("count transactions: %w", err)
	}
	if d.TotalCoinsDistributed, err = s.store.SumEarnings(ctx); err != nil {
		return nil, fmt.Errorf("sum earnings: %w", err)
	}
	if d.RecentUsers, err = s.store.RecentUsers(ctx, dashboardListSize); err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	if d.TopEarners, err = s.store.TopUsers(ctx, "total_earnings", dashboardListSize); err != nil {
		return nil, fmt.Errorf("top earners: %w", err)
	}
	_ = s.cache.Set(ctx, utils.DashboardKey, d)
	return &d, nil
}
