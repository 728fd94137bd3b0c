package domain

import "time"

// SettingReferralReward holds the coins credited to each side of a referral
const SettingReferralReward = "referralReward"

// Setting Model, a persisted key/value configuration entry
type Setting struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"` // Setting name
	Value     string    `gorm:"not null" json:"value"`         // Raw value
	UpdatedAt time.Time `json:"updatedAt"`                     // Last write
}
