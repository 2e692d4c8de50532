package model

import (
	"time"

	"github.com/ericlagergren/decimal/sql/postgres"
	"gitlab.com/minerex-platform/admin_api/errs"
)

type WithdrawStatus string

const (
	WithdrawStatus_Pending  WithdrawStatus = "pending"
	WithdrawStatus_Approved WithdrawStatus = "approved"
	WithdrawStatus_Rejected WithdrawStatus = "rejected"
)

func (s WithdrawStatus) IsValid() bool {
	switch s {
	case WithdrawStatus_Pending, WithdrawStatus_Approved, WithdrawStatus_Rejected:
		return true
	default:
		return false
	}
}

// WithdrawRequest is a member's request to pay out accumulated rewards,
// reviewed by the back office.
type WithdrawRequest struct {
	Id        uint64            `gorm:"column:id" json:"id"`
	UserId    uint64            `gorm:"column:user_id" json:"user_id"`
	Amount    *postgres.Decimal `gorm:"column:amount" sql:"type:decimal(36,18)" json:"amount"`
	Address   string            `gorm:"column:address" json:"address"`
	Status    WithdrawStatus    `gorm:"column:status" json:"status"`
	CreatedAt time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (WithdrawRequest) TableName() string {
	return "withdraw_requests"
}

// ResolveTo validates a review transition. Only pending requests move.
func (w *WithdrawRequest) ResolveTo(status WithdrawStatus) error {
	if status != WithdrawStatus_Approved && status != WithdrawStatus_Rejected {
		return errs.InvalidArgument("withdrawals resolve to approved or rejected only")
	}
	if w.Status != WithdrawStatus_Pending {
		return errs.InvalidArgument("withdrawal already resolved")
	}
	w.Status = status
	return nil
}

// WithdrawFilter selects the oversight listing.
type WithdrawFilter struct {
	Status WithdrawStatus
	Window Window
	Paging Paging
}

// WithdrawList is the paged oversight response.
type WithdrawList struct {
	Requests []WithdrawRequest `json:"requests"`
	Meta     PagingMeta        `json:"meta"`
}
