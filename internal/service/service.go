// Package service implements registration, the referral engine and the
// reporting views on top of the db.Store.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"referral_rewards/internal/db"
	"referral_rewards/internal/domain"
	"referral_rewards/internal/metrics"
	"referral_rewards/internal/utils"

	"gorm.io/gorm"
)

// Validation errors. Their messages are returned to clients verbatim.
var (
	ErrMissingFields      = errors.New("Missing fields")
	ErrDuplicateEmail     = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrAccountNotActive   = errors.New("Account not active")
	ErrNotFound           = errors.New("User not found")
	ErrAlreadyApplied     = errors.New("Referral code already applied")
	ErrSelfReferral       = errors.New("Cannot use own referral code")
	ErrInvalidCode        = errors.New("Invalid referral code")
	ErrInvalidStatus      = errors.New("Invalid status")
)

// Services bundles every service sharing one store, cache and registry
type Services struct {
	Auth     *AuthService
	Referral *ReferralService
	Report   *ReportService
	Admin    *AdminService
	Profile  *ProfileService
}

// New wires all services. cache and m may be nil.
func New(store *db.Store, cache *utils.Cache, m *metrics.Metrics, jwtSecret string) *Services {
	return &Services{
		Auth:     NewAuthService(store, cache, jwtSecret),
		Referral: NewReferralService(store, cache, m),
		Report:   NewReportService(store, cache),
		Admin:    NewAdminService(store, cache),
		Profile:  NewProfileService(store, cache),
	}
}

// findUser loads an account, translating a missing row into ErrNotFound
func findUser(ctx context.Context, store *db.Store, id uint) (*domain.User, error) {
	u, err := store.UserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return u, nil
}

// nowUTC is swapped in tests
var nowUTC = func() time.Time { return time.Now().UTC() }
