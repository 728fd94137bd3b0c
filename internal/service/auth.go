package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"referral_rewards/internal/db"
	"referral_rewards/internal/domain"
	"referral_rewards/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// maxCodeDraws bounds the referral code collision loop
const maxCodeDraws = 10

// RegisterInput is a validated registration request
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Company  string
	Phone    string
}

// LoginResult is a logged in account and its session token
type LoginResult struct {
	User  *domain.User
	Token string
}

// AuthService registers accounts and verifies credentials
type AuthService struct {
	store     *db.Store
	cache     *utils.Cache
	jwtSecret string
	newCode   func() (string, error)
	hashCost  int
}

// NewAuthService creates an AuthService
func NewAuthService(store *db.Store, cache *utils.Cache, jwtSecret string) *AuthService {
	return &AuthService{
		store:     store,
		cache:     cache,
		jwtSecret: jwtSecret,
		newCode:   utils.NewReferralCode,
		hashCost:  bcrypt.DefaultCost,
	}
}

// NormalizeEmail is the form emails are stored and looked up in
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an active account with a fresh referral code
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}
	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		Password:     string(hash),
		ReferralCode: code,
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
		Company:      strings.TrimSpace(in.Company),
		Phone:        strings.TrimSpace(in.Phone),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// A concurrent registration may win the unique index after our check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if taken, _ := s.store.EmailExists(ctx, email); taken {
				return nil, ErrDuplicateEmail
			}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	_ = s.cache.Delete(ctx, utils.DashboardKey, utils.LeaderboardKey)
	logrus.WithFields(logrus.Fields{
		"user_id":       user.ID,
		"referral_code": user.ReferralCode,
	}).Info("User registered")
	return user, nil
}

// uniqueCode draws codes until one is unused
func (s *AuthService) uniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeDraws; i++ {
		code, err := s.newCode()
		if err != nil {
			return "", fmt.Errorf("generate referral code: %w", err)
		}
		taken, err := s.store.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check referral code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("no free referral code after %d draws", maxCodeDraws)
}

// Login verifies credentials, records the login time and issues a token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	user, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status != domain.StatusActive {
		return nil, fmt.Errorf("%w (status: %s)", ErrAccountNotActive, user.Status)
	}
	now := nowUTC()
	if err := s.store.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	user.LastLogin = &now
	token, err := utils.GenerateJWT(user.ID, s.jwtSecret, utils.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{User: user, Token: token}, nil
}
