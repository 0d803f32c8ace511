package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountKind distinguishes the two account populations sharing one table
type AccountKind string

const (
	KindDiner      AccountKind = "diner"
	KindRestaurant AccountKind = "restaurant"
)

// Label is used in client-facing messages ("User not found" vs "Client not found")
func (k AccountKind) Label() string {
	if k == KindRestaurant {
		return "Client"
	}
	return "User"
}

// JSONKey is the response key the frontend expects for this account kind
func (k AccountKind) JSONKey() string {
	if k == KindRestaurant {
		return "client"
	}
	return "user"
}

// Account is a diner or a restaurant owner. The restaurant-only fields
// stay empty for diners. Email is unique per kind, so a diner and a
// restaurant owner may register with the same address.
type Account struct {
	ID              string      `json:"id" gorm:"primaryKey"`
	Kind            AccountKind `json:"kind" gorm:"uniqueIndex:idx_kind_email;not null"`
	Username        string      `json:"username"`
	Email           string      `json:"email" gorm:"uniqueIndex:idx_kind_email;not null"`
	PasswordHash    string      `json:"-" gorm:"not null"`
	RestaurantName  string      `json:"restaurantName,omitempty"`
	RestaurantImage string      `json:"restaurantImage,omitempty"`
	IsVerified      bool        `json:"isVerified" gorm:"default:false"`
	Otp             *string     `json:"-"`
	OtpExpiry       *time.Time  `json:"-"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// HasPendingOtp reports whether an OTP challenge is on file.
// The invariant is that Otp and OtpExpiry are both set or both nil.
func (a *Account) HasPendingOtp() bool {
	return a.Otp != nil && a.OtpExpiry != nil
}

// ClearOtp consumes the challenge. Called only after a successful check.
func (a *Account) ClearOtp() {
	a.Otp = nil
	a.OtpExpiry = nil
}
