package model

import (
	"time"
)

type NotificationStatus string

const (
	NotificationStatus_Read    NotificationStatus = "read"
	NotificationStatus_UnRead  NotificationStatus = "unread"
	NotificationStatus_Deleted NotificationStatus = "deleted"
)

func (n NotificationStatus) IsValid() bool {
	switch n {
	case NotificationStatus_Read, NotificationStatus_UnRead, NotificationStatus_Deleted:
		return true
	default:
		return false
	}
}

type NotificationType string

const (
	Notification_WithdrawRequested NotificationType = "withdraw_requested"
	Notification_MemberSuspended   NotificationType = "member_suspended"
	Notification_MemberBlocked     NotificationType = "member_blocked"
	Notification_RewardAnomaly     NotificationType = "reward_anomaly"
	Notification_NewReferral       NotificationType = "new_referral"
)

// Notification is one admin-relevant feed item surfaced on the dashboard.
type Notification struct {
	ID        uint64             `gorm:"column:id" json:"id"`
	UserID    uint64             `gorm:"column:user_id" json:"user_id"`
	Type      NotificationType   `gorm:"column:type" json:"type"`
	Title     string             `gorm:"column:title" json:"title"`
	Message   string             `gorm:"column:message" json:"message"`
	Status    NotificationStatus `gorm:"column:status" json:"status"`
	CreatedAt time.Time          `gorm:"column:created_at" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
