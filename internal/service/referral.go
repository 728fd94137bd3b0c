package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"referral_rewards/internal/db"
	"referral_rewards/internal/metrics"
	"referral_rewards/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ApplyResult is the applicant's balance after a successful application
type ApplyResult struct {
	Coins int64 // New applicant balance
	Added int64 // Reward credited to each side
}

// ReferralService applies referral codes
type ReferralService struct {
	store   *db.Store
	cache   *utils.Cache
	metrics *metrics.Metrics
}

// NewReferralService creates a ReferralService
func NewReferralService(store *db.Store, cache *utils.Cache, m *metrics.Metrics) *ReferralService {
	return &ReferralService{store: store, cache: cache, metrics: m}
}

// Apply credits the reward to the applicant and to the owner of code.
// Checks run in order: applicant exists, has not applied before, is not
// using its own code, and the code belongs to someone.
func (s *ReferralService) Apply(ctx context.Context, applicantID uint, code string) (*ApplyResult, error) {
	code = strings.TrimSpace(code)
	if applicantID == 0 || code == "" {
		return nil, ErrMissingFields
	}
	res, err := s.apply(ctx, applicantID, code)
	s.metrics.ReferralOutcome(outcomeOf(err))
	if err != nil {
		return nil, err
	}
	s.metrics.Rewarded(2 * res.Added)
	return res, nil
}

func (s *ReferralService) apply(ctx context.Context, applicantID uint, code string) (*ApplyResult, error) {
	applicant, err := findUser(ctx, s.store, applicantID)
	if err != nil {
		return nil, err
	}
	if applicant.AppliedReferral {
		return nil, ErrAlreadyApplied
	}
	if applicant.ReferralCode == code {
		return nil, ErrSelfReferral
	}
	owner, err := s.store.UserByReferralCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, fmt.Errorf("load code owner: %w", err)
	}
	reward, err := s.store.ReferralReward(ctx)
	if err != nil {
		return nil, fmt.Errorf("read reward: %w", err)
	}

	balance, err := s.store.ApplyReferral(ctx, db.ReferralCredit{
		ApplicantID:   applicant.ID,
		ApplicantName: applicant.Name,
		OwnerID:       owner.ID,
		OwnerName:     owner.Name,
		Code:          code,
		Reward:        reward,
	})
	if errors.Is(err, db.ErrLatchTaken) {
		// Lost the race against a concurrent application by the same account
		return nil, ErrAlreadyApplied
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"applicant_id": applicant.ID,
			"owner_id":     owner.ID,
			"reward":       reward,
			"error":        err.Error(),
		}).Error("Referral application failed")
		return nil, fmt.Errorf("apply referral: %w", err)
	}

	_ = s.cache.Delete(ctx,
		utils.LeaderboardKey,
		utils.DashboardKey,
		utils.TxHistoryKey(applicant.ID),
		utils.TxHistoryKey(owner.ID),
	)

	logrus.WithFields(logrus.Fields{
		"applicant_id":  applicant.ID,
		"owner_id":      owner.ID,
		"referral_code": code,
		"reward":        reward,
	}).Info("Referral applied")

	return &ApplyResult{Coins: balance, Added: reward}, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeApplied
	case errors.Is(err, ErrAlreadyApplied):
		return metrics.OutcomeAlreadyUsed
	case errors.Is(err, ErrSelfReferral):
		return metrics.OutcomeSelfReferral
	case errors.Is(err, ErrInvalidCode):
		return metrics.OutcomeInvalidCode
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	}
	return metrics.OutcomeError
}
