package model

import (
	"strings"
	"time"
)

// UserStatus defines the list of possible member statuses
type UserStatus string

const (
	// UserStatusActive when the member is in good standing
	UserStatusActive UserStatus = "active"
	// UserStatusSuspended when the member is temporarily suspended by an admin
	UserStatusSuspended UserStatus = "suspended"
	// UserStatusBlocked when the member is blocked by an admin
	UserStatusBlocked UserStatus = "blocked"
)

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusSuspended, UserStatusBlocked:
		return true
	default:
		return false
	}
}

// User identity as the back office sees it. Identity fields are immutable;
// only Status changes, through moderation actions.
type User struct {
	ID           uint64     `gorm:"primary_key" json:"id"`
	Email        string     `gorm:"unique" json:"email"`
	Nickname     string     `json:"nickname"`
	ReferralCode string     `gorm:"column:referral_code" json:"referral_code"`
	ReferralId   string     `gorm:"column:referral_id" json:"-"`
	UserLevel    int        `gorm:"column:user_level" json:"user_level"`
	Status       UserStatus `sql:"not null;type:user_status_t" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// MaskEmail hides the middle of an address for list/leaderboard views.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "****"
	}
	local := email[:at]
	if len(local) <= 3 {
		return local[:1] + "****" + email[at:]
	}
	return local[:3] + "****" + email[at:]
}
