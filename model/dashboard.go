package model

import (
	"time"
)

// MetricStatus tags a dashboard number as trustworthy or degraded.
type MetricStatus string

const (
	MetricStatus_OK       MetricStatus = "ok"
	MetricStatus_Degraded MetricStatus = "degraded"
)

// MetricSnapshot is one named aggregate value. A degraded snapshot carries
// its neutral fallback value and is visibly tagged rather than silently wrong.
type MetricSnapshot struct {
	Name   string       `json:"name"`
	Value  JSONDecimal  `json:"value"`
	Status MetricStatus `json:"status"`
}

// TopEarner is one leaderboard row ranked by cumulative reward amount.
type TopEarner struct {
	UserId uint64      `gorm:"column:user_id" json:"user_id"`
	Email  string      `gorm:"column:email" json:"email"`
	Total  JSONDecimal `gorm:"column:total" json:"total"`
}

// TopInviter is one leaderboard row ranked by direct-descendant count.
type TopInviter struct {
	UserId  uint64    `gorm:"column:user_id" json:"user_id"`
	Email   string    `gorm:"column:email" json:"email"`
	Invited int64     `gorm:"column:invited" json:"invited"`
	Joined  time.Time `gorm:"column:created_at" json:"joined"`
}

// DashboardSnapshot is the immutable response of one dashboard assembly.
type DashboardSnapshot struct {
	Metrics       []MetricSnapshot `json:"metrics"`
	TopEarners    []TopEarner      `json:"top_earners"`
	TopInviters   []TopInviter     `json:"top_inviters"`
	Notifications []Notification   `json:"notifications"`
	Window        Window           `json:"window"`
	GeneratedAt   time.Time        `json:"generated_at"`
}
