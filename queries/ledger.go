package queries

import (
	"context"
	"errors"
	"time"

	"github.com/ericlagergren/decimal"
	"github.com/ericlagergren/decimal/sql/postgres"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"gitlab.com/minerex-platform/admin_api/conv"
	"gitlab.com/minerex-platform/admin_api/errs"
	"gitlab.com/minerex-platform/admin_api/model"
)

func categoryStrings(categories []model.RewardCategory) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

// QueryLedgerSum sums ledger amounts for one user over a half-open window.
func (repo *Repo) QueryLedgerSum(ctx context.Context, userID uint64, categories []model.RewardCategory, window model.Window) (*decimal.Big, error) {
	data := &struct{ Balance *postgres.Decimal }{Balance: &postgres.Decimal{V: new(decimal.Big)}}

	q := repo.ConnReader.WithContext(ctx).
		Table("ledger_entries").
		Select("sum(amount) as balance").
		Where("user_id = ?", userID).
		Where("category = ANY(?)", pq.Array(categoryStrings(categories)))
	q = applyWindow(q, "created_at", window)

	db := q.Scan(data)
	if db.Error != nil {
		if errors.Is(db.Error, gorm.ErrRecordNotFound) {
			return conv.NewDecimalWithPrecision(), nil
		}
		return nil, errs.DataSource(db.Error, "ledger sum")
	}
	if data.Balance != nil && data.Balance.V != nil {
		return data.Balance.V, nil
	}
	return conv.NewDecimalWithPrecision(), nil
}

// SumLedgerThrough sums ledger amounts with created_at <= cutoff. The
// inclusive bound cannot be expressed as a half-open window without a
// synthetic end instant, so the rollup path gets its own primitive.
func (repo *Repo) SumLedgerThrough(ctx context.Context, userID uint64, categories []model.RewardCategory, cutoff time.Time) (*decimal.Big, error) {
	data := &struct{ Balance *postgres.Decimal }{Balance: &postgres.Decimal{V: new(decimal.Big)}}

	db := repo.ConnReader.WithContext(ctx).
		Table("ledger_entries").
		Select("sum(amount) as balance").
		Where("user_id = ?", userID).
		Where("category = ANY(?)", pq.Array(categoryStrings(categories))).
		Where("created_at <= ?", cutoff).
		Scan(data)
	if db.Error != nil {
		if errors.Is(db.Error, gorm.ErrRecordNotFound) {
			return conv.NewDecimalWithPrecision(), nil
		}
		return nil, errs.DataSource(db.Error, "ledger sum through")
	}
	if data.Balance != nil && data.Balance.V != nil {
		return data.Balance.V, nil
	}
	return conv.NewDecimalWithPrecision(), nil
}

// SumLedgerByUsersThrough sums amounts per user with created_at <= cutoff
// in one grouped query, keyed by the user-id set. The cutoff is inclusive
// like SumLedgerThrough, so the batched tree rollups and the single-user
// rollup agree for the same instant. Users with no matching entries are
// absent from the map.
func (repo *Repo) SumLedgerByUsersThrough(ctx context.Context, userIDs []uint64, categories []model.RewardCategory, cutoff time.Time) (map[uint64]*decimal.Big, error) {
	sums := make(map[uint64]*decimal.Big, len(userIDs))
	if len(userIDs) == 0 {
		return sums, nil
	}

	rows := make([]struct {
		UserId  uint64            `gorm:"column:user_id"`
		Balance *postgres.Decimal `gorm:"column:balance"`
	}, 0, len(userIDs))

	q := repo.ConnReader.WithContext(ctx).
		Table("ledger_entries").
		Select("user_id, sum(amount) as balance").
		Where("user_id = ANY(?)", pq.Array(userIDs)).
		Where("category = ANY(?)", pq.Array(categoryStrings(categories))).
		Where("created_at <= ?", cutoff).
		Group("user_id")

	if db := q.Find(&rows); db.Error != nil {
		return nil, errs.DataSource(db.Error, "ledger sum by users")
	}
	for _, row := range rows {
		if row.Balance != nil && row.Balance.V != nil {
			sums[row.UserId] = row.Balance.V
		}
	}
	return sums, nil
}

// GetLedgerEntry fetches one entry by sequence id.
func (repo *Repo) GetLedgerEntry(ctx context.Context, entryID uint64) (*model.LedgerEntry, error) {
	entry := model.LedgerEntry{}
	db := repo.ConnReader.WithContext(ctx).
		Where("id = ?", entryID).
		First(&entry)
	if db.Error != nil {
		if errors.Is(db.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("ledger entry")
		}
		return nil, errs.DataSource(db.Error, "ledger entry")
	}
	return &entry, nil
}

// QueryLedgerEntries lists entries ordered by timestamp then sequence id.
// A zero userID lists entries across all members.
func (repo *Repo) QueryLedgerEntries(ctx context.Context, userID uint64, categories []model.RewardCategory, window model.Window, paging model.Paging) ([]model.LedgerEntry, int64, error) {
	entries := make([]model.LedgerEntry, 0)
	var total int64

	q := repo.ConnReader.WithContext(ctx).Table("ledger_entries")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if len(categories) > 0 {
		q = q.Where("category = ANY(?)", pq.Array(categoryStrings(categories)))
	}
	q = applyWindow(q, "created_at", window)

	if db := q.Session(&gorm.Session{}).Count(&total); db.Error != nil {
		return nil, 0, errs.DataSource(db.Error, "ledger entries count")
	}

	q = q.Order("created_at DESC").Order("id DESC")
	q = applyPaging(q, paging)
	if db := q.Find(&entries); db.Error != nil {
		return nil, 0, errs.DataSource(db.Error, "ledger entries")
	}
	return entries, total, nil
}

// QueryLedgerEntriesAt returns the entries sharing one exact timestamp,
// ordered by sequence id, for tie-breaking around a single event.
func (repo *Repo) QueryLedgerEntriesAt(ctx context.Context, userID uint64, at time.Time) ([]model.LedgerEntry, error) {
	entries := make([]model.LedgerEntry, 0)
	db := repo.ConnReader.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("created_at = ?", at).
		Order("id ASC").
		Find(&entries)
	if db.Error != nil {
		return nil, errs.DataSource(db.Error, "ledger entries at timestamp")
	}
	return entries, nil
}

// SumLedgerAll sums amounts across all members for the dashboard.
func (repo *Repo) SumLedgerAll(ctx context.Context, categories []model.RewardCategory, window model.Window) (*decimal.Big, error) {
	data := &struct{ Balance *postgres.Decimal }{Balance: &postgres.Decimal{V: new(decimal.Big)}}

	q := repo.ConnReaderAdmin.WithContext(ctx).
		Table("ledger_entries").
		Select("sum(amount) as balance").
		Where("category = ANY(?)", pq.Array(categoryStrings(categories)))
	q = applyWindow(q, "created_at", window)

	db := q.Scan(data)
	if db.Error != nil {
		if errors.Is(db.Error, gorm.ErrRecordNotFound) {
			return conv.NewDecimalWithPrecision(), nil
		}
		return nil, errs.DataSource(db.Error, "ledger total")
	}
	if data.Balance != nil && data.Balance.V != nil {
		return data.Balance.V, nil
	}
	return conv.NewDecimalWithPrecision(), nil
}

// CountLedgerEntries counts entries of one category in the window.
func (repo *Repo) CountLedgerEntries(ctx context.Context, category model.RewardCategory, window model.Window) (int64, error) {
	var total int64
	q := repo.ConnReaderAdmin.WithContext(ctx).
		Table("ledger_entries").
		Where("category = ?", string(category))
	q = applyWindow(q, "created_at", window)
	if db := q.Count(&total); db.Error != nil {
		return 0, errs.DataSource(db.Error, "ledger entry count")
	}
	return total, nil
}

// CountActiveEarners counts distinct members with ledger activity inside
// the window, the dashboard's real-time participation signal.
func (repo *Repo) CountActiveEarners(ctx context.Context, window model.Window) (int64, error) {
	var total int64
	q := repo.ConnReaderAdmin.WithContext(ctx).
		Table("ledger_entries").
		Distinct("user_id")
	q = applyWindow(q, "created_at", window)
	if db := q.Count(&total); db.Error != nil {
		return 0, errs.DataSource(db.Error, "active earners count")
	}
	return total, nil
}

// TopEarners ranks members by cumulative reward amount.
func (repo *Repo) TopEarners(ctx context.Context, limit int) ([]model.TopEarner, error) {
	earners := make([]model.TopEarner, 0, limit)
	db := repo.ConnReaderAdmin.WithContext(ctx).
		Table("ledger_entries").
		Select("ledger_entries.user_id, users.email, sum(ledger_entries.amount) as total").
		Joins("inner join users on users.id = ledger_entries.user_id").
		Group("ledger_entries.user_id, users.email").
		Order("sum(ledger_entries.amount) DESC").
		Limit(limit).
		Find(&earners)
	if db.Error != nil {
		return nil, errs.DataSource(db.Error, "top earners")
	}
	return earners, nil
}
