package domain

import "time"

// Account statuses; only active accounts may log in
const (
	StatusActive    = "active"    // Default status
	StatusInactive  = "inactive"  // Disabled by an admin
	StatusSuspended = "suspended" // Suspended by an admin
)

// Account roles
const (
	RoleUser  = "user"  // Regular account
	RoleAdmin = "admin" // Admin account
)

// User Model
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`                             // Primary key
	Name            string     `gorm:"not null" json:"name"`                             // Display name
	Email           string     `gorm:"size:191;uniqueIndex;not null" json:"email"`       // Unique, lower-cased email
	Password        string     `gorm:"not null" json:"-"`                                // Hashed password, never serialized
	ReferralCode    string     `gorm:"size:16;uniqueIndex;not null" json:"referralCode"` // Unique referral code
	Coins           int64      `gorm:"not null;default:0" json:"coins"`                  // Coin balance
	TotalEarnings   int64      `gorm:"not null;default:0" json:"totalEarnings"`          // Cumulative rewards received
	ReferralCount   int64      `gorm:"not null;default:0" json:"referralCount"`          // Accounts that applied this code
	AppliedReferral bool       `gorm:"not null;default:false" json:"appliedReferral"`    // Latched once a code is applied
	ReferredBy      *string    `gorm:"size:16;index" json:"referredBy"`                  // Code applied by this account
	Role            string     `gorm:"size:16;not null;default:user" json:"role"`        // Role: user or admin
	Status          string     `gorm:"size:16;not null;default:active" json:"status"`    // Status: active, inactive, suspended
	Company         string     `json:"company"`                                          // Optional company
	Phone           string     `json:"phone"`                                            // Optional phone
	Avatar          string     `json:"avatar"`                                           // Optional avatar URL
	LastLogin       *time.Time `json:"lastLogin"`                                        // Last successful login
	CreatedAt       time.Time  `json:"createdAt"`                                        // Registration time
	UpdatedAt       time.Time  `json:"updatedAt"`                                        // Last update time
}

// IsValidStatus reports whether s is one of the known account statuses
func IsValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}
