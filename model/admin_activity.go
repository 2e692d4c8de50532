package model

import "time"

// AdminActivity is one audit record of a moderation action. Rows are
// written to the database and mirrored to the audit topic.
type AdminActivity struct {
	ID         uint64    `gorm:"primary_key" json:"id"`
	AdminID    uint64    `json:"admin_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   uint64    `json:"target_id"`
	Detail     string    `sql:"type:text" json:"detail"`
	IP         string    `json:"ip"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AdminActivity) TableName() string {
	return "admin_activities"
}

func NewAdminActivity(adminID uint64, action, targetType string, targetID uint64, detail, ip string) *AdminActivity {
	return &AdminActivity{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
		IP:         ip,
	}
}
