package models

import (
	"time"
)

// Account is a rental customer. Email is the login identity.
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`

	VerificationCode int        `json:"-"`
	CodeExpiresAt    *time.Time `json:"-"`
	IsVerified       bool       `gorm:"not null;default:false" json:"isVerified"`
	ForgotPassw      bool       `gorm:"not null;default:false" json:"forgotPassw"`
}

// CodeExpired reports whether the current verification code is past its
// deadline. Codes without a deadline never expire.
func (a *Account) CodeExpired(now time.Time) bool {
	return a.CodeExpiresAt != nil && now.After(*a.CodeExpiresAt)
}
