package db

import (
	"context"                          // Request scoped context
	"referral_rewards/internal/domain" // Importing domain models
	"time"                             // Timestamps

	"gorm.io/gorm" // GORM ORM library
)

// CreateUser inserts a new account
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

// UserByID loads one account, returning gorm.ErrRecordNotFound when missing
func (s *Store) UserByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UserByEmail loads an account by its normalized email
func (s *Store) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UserByReferralCode loads the owner of a referral code
func (s *Store) UserByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("referral_code = ?", code).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// EmailExists reports whether an account already uses email
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

// ReferralCodeExists reports whether code is already assigned
func (s *Store) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).Where("referral_code = ?", code).Count(&n).Error
	return n > 0, err
}

// TouchLastLogin records a successful login
func (s *Store) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("last_login", at).Error
}

// UpdateUserFields applies a partial update; the caller controls which columns appear
func (s *Store) UpdateUserFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields).Error
}

// ReferredUsers lists accounts that applied code, ordered by order, capped at limit when positive
func (s *Store) ReferredUsers(ctx context.Context, code, order string, limit int) ([]domain.User, error) {
	var users []domain.User
	q := s.db.WithContext(ctx).Where("referred_by = ?", code).Order(order).Order("id asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&users).Error
	return users, err
}

// TopUsers returns the first limit accounts sorted by column descending, ties by id
func (s *Store) TopUsers(ctx context.Context, column string, limit int) ([]domain.User, error) {
	var users []domain.User
	err := s.db.WithContext(ctx).
		Order(column + " desc").
		Order("id asc").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// RecentUsers returns the newest accounts
func (s *Store) RecentUsers(ctx context.Context, limit int) ([]domain.User, error) {
	var users []domain.User
	err := s.db.WithContext(ctx).Order("created_at desc").Order("id desc").Limit(limit).Find(&users).Error
	return users, err
}

// ListUsers returns one page of accounts, newest first, with the filtered total
func (s *Store) ListUsers(ctx context.Context, status string, offset, limit int) ([]domain.User, int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.User{})
	if status != "" {
		query = query.Where("status = ?", status) // Filter by status
	}
	query = query.Session(&gorm.Session{}) // Safe to reuse for both count and fetch
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	err := query.Order("created_at desc").Order("id desc").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

// CountUsers counts accounts, optionally with one status
func (s *Store) CountUsers(ctx context.Context, status string) (int64, error) {
	var n int64
	query := s.db.WithContext(ctx).Model(&domain.User{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&n).Error
	return n, err
}

// SumEarnings totals TotalEarnings across all accounts
func (s *Store) SumEarnings(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).
		Select("COALESCE(SUM(total_earnings), 0)").
		Scan(&total).Error
	return total, err
}
