package utils

import gonanoid "github.com/matoous/go-nanoid/v2" // Random token generation

// Referral code shape: 8 characters drawn from uppercase letters and digits
const (
	ReferralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	ReferralCodeLength   = 8
)

// NewReferralCode draws one random referral code. Uniqueness is checked by the caller.
func NewReferralCode() (string, error) {
	return gonanoid.Generate(ReferralCodeAlphabet, ReferralCodeLength)
}
