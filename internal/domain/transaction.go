package domain

import "time"

// Transaction kinds
const (
	TxReferralEarned  = "referral_earned"  // Credit to the code owner
	TxReferralApplied = "referral_applied" // Credit to the applicant
	TxBonus           = "bonus"            // Reserved, not produced
	TxWithdrawal      = "withdrawal"       // Reserved, not produced
)

// Transaction statuses
const (
	TxPending   = "pending"
	TxCompleted = "completed"
	TxFailed    = "failed"
)

// Transaction Model, append-only ledger row
type Transaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                             // Primary key
	UserID        uint      `gorm:"index;not null" json:"userId"`                     // Primary account
	RelatedUserID *uint     `json:"relatedUserId"`                                    // Counterparty, if any
	Type          string    `gorm:"size:32;not null" json:"type"`                     // Transaction kind
	Amount        int64     `gorm:"not null" json:"amount"`                           // Credited amount
	Description   string    `gorm:"not null" json:"description"`                      // Human readable text
	Status        string    `gorm:"size:16;not null;default:completed" json:"status"` // Transaction status
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`                           // Creation time
}
