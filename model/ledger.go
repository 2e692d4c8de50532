package model

import (
	"time"

	"github.com/ericlagergren/decimal/sql/postgres"
)

// RewardCategory classifies ledger entries by how the reward was earned.
type RewardCategory string

const (
	RewardCategory_Progress      RewardCategory = "progress"
	RewardCategory_Engagement    RewardCategory = "engagement"
	RewardCategory_ReferralBonus RewardCategory = "referral_bonus"
)

func (c RewardCategory) IsValid() bool {
	switch c {
	case RewardCategory_Progress, RewardCategory_Engagement, RewardCategory_ReferralBonus:
		return true
	default:
		return false
	}
}

// RewardCategories is the full earning-category set, used when a caller
// does not narrow the rollup.
var RewardCategories = []RewardCategory{
	RewardCategory_Progress,
	RewardCategory_Engagement,
	RewardCategory_ReferralBonus,
}

// LedgerEntry is one append-only reward event. Id doubles as the sequence
// number that breaks ordering ties between entries sharing a timestamp.
type LedgerEntry struct {
	Id        uint64            `gorm:"column:id" json:"id"`
	UserId    uint64            `gorm:"column:user_id" json:"user_id"`
	Category  RewardCategory    `gorm:"column:category" json:"category"`
	Amount    *postgres.Decimal `gorm:"column:amount" sql:"type:decimal(36,18)" json:"amount"`
	CreatedAt time.Time         `gorm:"column:created_at" json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// RollupMetric is a derived point-in-time aggregate; it is never stored.
type RollupMetric struct {
	UserId               uint64                         `json:"user_id"`
	CumulativeByCategory map[RewardCategory]JSONDecimal `json:"cumulative_by_category"`
	AsOf                 time.Time                      `json:"as_of"`
}

// BeforeAfter is the value pair around one ledger event.
type BeforeAfter struct {
	EntryId uint64      `json:"entry_id"`
	Before  JSONDecimal `json:"before"`
	After   JSONDecimal `json:"after"`
}

// LedgerEntryList is the paged reward-history response.
type LedgerEntryList struct {
	Entries []LedgerEntry `json:"entries"`
	Meta    PagingMeta    `json:"meta"`
}
