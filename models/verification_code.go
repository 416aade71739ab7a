package models

import "time"

// VerificationCode is an email verification challenge. Only the bcrypt
// hash of the code is stored; LastSentAt backs the resend cooldown.
type VerificationCode struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	CodeHash   string    `gorm:"size:255;not null" json:"-"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	LastSentAt time.Time `gorm:"not null" json:"last_sent_at"`
}

func (VerificationCode) TableName() string {
	return "verification_codes"
}
