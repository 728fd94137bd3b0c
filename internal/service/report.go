package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"referral_rewards/internal/db"
	"referral_rewards/internal/domain"
	"referral_rewards/internal/utils"
)

// Sizes of the derived views
const (
	LeaderboardSize     = 10
	HistorySize         = 50
	recentTxCount       = 5
	topReferralsCount   = 5
	monthlyBucketLayout = "2006-01"
)

// LeaderboardEntry is the public projection of an account
type LeaderboardEntry struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Coins        int64  `json:"coins"`
	ReferralCode string `json:"referralCode"`
	Company      string `json:"company"`
	Avatar       string `json:"avatar"`
}

// ReferredAccount is an account that applied someone's code
type ReferredAccount struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Coins    int64     `json:"coins"`
	Company  string    `json:"company"`
	Avatar   string    `json:"avatar"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Stats lists the accounts referred by one code
type Stats struct {
	ReferralCode  string            `json:"referralCode"`
	ReferralCount int               `json:"referralCount"`
	Referrals     []ReferredAccount `json:"referrals"`
}

// Analytics are derived metrics for one account
type Analytics struct {
	ReferralCount      int64                `json:"referralCount"`
	TotalEarnings      int64                `json:"totalEarnings"`
	CurrentBalance     int64                `json:"currentBalance"`
	AveragePerReferral float64              `json:"averagePerReferral"`
	RecentTransactions []domain.Transaction `json:"recentTransactions"`
	MonthlyEarnings    map[string]int64     `json:"monthlyEarnings"`
	TopReferrals       []ReferredAccount    `json:"topReferrals"`
}

// ReportService builds read-only views over accounts and the ledger
type ReportService struct {
	store *db.Store
	cache *utils.Cache
}

// NewReportService creates a ReportService
func NewReportService(store *db.Store, cache *utils.Cache) *ReportService {
	return &ReportService{store: store, cache: cache}
}

// Stats returns every account that applied the subject's code, newest first
func (s *ReportService) Stats(ctx context.Context, userID uint) (*Stats, error) {
	user, err := findUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	referred, err := s.store.ReferredUsers(ctx, user.ReferralCode, "created_at desc", 0)
	if err != nil {
		return nil, fmt.Errorf("list referred users: %w", err)
	}
	list := toReferred(referred)
	return &Stats{ReferralCode: user.ReferralCode, ReferralCount: len(list), Referrals: list}, nil
}

// Leaderboard returns the top accounts by coins
func (s *ReportService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	var cached []LeaderboardEntry
	if found, err := s.cache.Get(ctx, utils.LeaderboardKey, &cached); err == nil && found {
		return cached, nil
	}
	users, err := s.store.TopUsers(ctx, "coins", LeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	board := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		board[i] = LeaderboardEntry{
			ID:           u.ID,
			Name:         u.Name,
			Coins:        u.Coins,
			ReferralCode: u.ReferralCode,
			Company:      u.Company,
			Avatar:       u.Avatar,
		}
	}
	_ = s.cache.Set(ctx, utils.LeaderboardKey, board)
	return board, nil
}

// Transactions returns the most recent ledger rows of one account
func (s *ReportService) Transactions(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	key := utils.TxHistoryKey(userID)
	var cached []domain.Transaction
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}
	if _, err := findUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	txs, err := s.store.UserTransactions(ctx, userID, HistorySize)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	_ = s.cache.Set(ctx, key, txs)
	return txs, nil
}

// Analytics computes the dashboard metrics of one account
func (s *ReportService) Analytics(ctx context.Context, userID uint) (*Analytics, error) {
	user, err := findUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.UserTransactions(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	top, err := s.store.ReferredUsers(ctx, user.ReferralCode, "coins desc", topReferralsCount)
	if err != nil {
		return nil, fmt.Errorf("list referred users: %w", err)
	}

	monthly := make(map[string]int64)
	for _, tx := range txs {
		monthly[tx.CreatedAt.UTC().Format(monthlyBucketLayout)] += tx.Amount
	}
	recent := txs
	if len(recent) > recentTxCount {
		recent = recent[:recentTxCount]
	}
	return &Analytics{
		ReferralCount:      user.ReferralCount,
		TotalEarnings:      user.TotalEarnings,
		CurrentBalance:     user.Coins,
		AveragePerReferral: AveragePerReferral(user.TotalEarnings, user.ReferralCount),
		RecentTransactions: recent,
		MonthlyEarnings:    monthly,
		TopReferrals:       toReferred(top),
	}, nil
}

// AveragePerReferral is earnings/referrals rounded to two decimals, 0 without referrals
func AveragePerReferral(earnings, referrals int64) float64 {
	if referrals <= 0 {
		return 0
	}
	return math.Round(float64(earnings)/float64(referrals)*100) / 100
}

func toReferred(users []domain.User) []ReferredAccount {
	out := make([]ReferredAccount, len(users))
	for i, u := range users {
		out[i] = ReferredAccount{
			ID:       u.ID,
			Name:     u.Name,
			Coins:    u.Coins,
			Company:  u.Company,
			Avatar:   u.Avatar,
			JoinedAt: u.CreatedAt,
		}
	}
	return out
}
