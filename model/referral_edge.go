package model

import (
	"time"
)

type ReferralEdgeStatus string

const (
	ReferralEdgeStatus_Active   ReferralEdgeStatus = "active"
	ReferralEdgeStatus_Inactive ReferralEdgeStatus = "inactive"
)

// ReferralEdge records which member referred which other member. A member
// has at most one active incoming edge, so the active subgraph is a forest.
// Inactive edges stay for audit and are excluded from every rollup.
type ReferralEdge struct {
	Id         uint64             `gorm:"column:id" json:"id"`
	ReferrerId uint64             `gorm:"column:referrer_id" json:"referrer_id"`
	ReferredId uint64             `gorm:"column:referred_id" json:"referred_id"`
	Status     ReferralEdgeStatus `gorm:"column:status" json:"status"`
	Level      int                `gorm:"column:level" json:"level"`
	CreatedAt  time.Time          `gorm:"column:created_at" json:"created_at"`
}

func (ReferralEdge) TableName() string {
	return "referral_edges"
}

// ReferralEdgeWithUser is the joined row the edge source returns for child
// fetches, so the tree view does not need a second profile lookup.
type ReferralEdgeWithUser struct {
	ReferrerId uint64     `gorm:"column:referrer_id"`
	ReferredId uint64     `gorm:"column:referred_id"`
	Email      string     `gorm:"column:email"`
	Nickname   string     `gorm:"column:nickname"`
	UserLevel  int        `gorm:"column:user_level"`
	Status     UserStatus `gorm:"column:user_status"`
	JoinedAt   time.Time  `gorm:"column:joined_at"`
}
