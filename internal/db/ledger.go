package db

import (
	"context"                          // Request scoped context
	"errors"                           // Sentinel errors
	"fmt"                              // Descriptions
	"referral_rewards/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ErrLatchTaken is returned when the applicant's referral latch was already set
var ErrLatchTaken = errors.New("referral already applied")

// ReferralCredit describes one validated referral application
type ReferralCredit struct {
	ApplicantID   uint   // Account applying the code
	ApplicantName string // Used in the owner's ledger description
	OwnerID       uint   // Account owning the code
	OwnerName     string // Used in the applicant's ledger description
	Code          string // Applied referral code
	Reward        int64  // Coins credited to each side
}

// ApplyReferral latches the applicant, credits both sides and appends the two
// ledger rows in one database transaction. The latch is a conditional update,
// so only one concurrent caller per applicant can succeed; the others get
// ErrLatchTaken and nothing is written. It returns the applicant's balance as
// committed.
func (s *Store) ApplyReferral(ctx context.Context, rc ReferralCredit) (int64, error) {
	var balance int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Set applied_referral only if it was still false
		res := tx.Model(&domain.User{}).
			Where("id = ? AND applied_referral = ?", rc.ApplicantID, false).
			Updates(map[string]any{
				"applied_referral": true,
				"referred_by":      rc.Code,
				"coins":            gorm.Expr("coins + ?", rc.Reward),
				"total_earnings":   gorm.Expr("total_earnings + ?", rc.Reward),
			})
		if res.Error != nil {
			return res.Error // Return error to rollback
		}
		if res.RowsAffected == 0 {
			return ErrLatchTaken
		}
		// Credit the owner
		res = tx.Model(&domain.User{}).
			Where("id = ?", rc.OwnerID).
			Updates(map[string]any{
				"coins":          gorm.Expr("coins + ?", rc.Reward),
				"total_earnings": gorm.Expr("total_earnings + ?", rc.Reward),
				"referral_count": gorm.Expr("referral_count + 1"),
			})
		if res.Error != nil {
			return res.Error // Return error to rollback
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound // Owner vanished between validation and commit
		}
		applicant, owner := rc.ApplicantID, rc.OwnerID
		entries := []domain.Transaction{
			{
				UserID:        applicant,
				RelatedUserID: &owner,
				Type:          domain.TxReferralApplied,
				Amount:        rc.Reward,
				Description:   fmt.Sprintf("Applied referral code %s from %s", rc.Code, rc.OwnerName),
				Status:        domain.TxCompleted,
			},
			{
				UserID:        owner,
				RelatedUserID: &applicant,
				Type:          domain.TxReferralEarned,
				Amount:        rc.Reward,
				Description:   fmt.Sprintf("%s joined using your referral code", rc.ApplicantName),
				Status:        domain.TxCompleted,
			},
		}
		if err := tx.Create(&entries).Error; err != nil {
			return err // Return error to rollback
		}
		return tx.Model(&domain.User{}).Select("coins").Where("id = ?", applicant).Scan(&balance).Error
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// UserTransactions returns the newest transactions of one account; limit <= 0 returns all
func (s *Store) UserTransactions(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&txs).Error
	return txs, err
}

// CountTransactions counts all ledger rows
func (s *Store) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).Count(&n).Error
	return n, err
}
