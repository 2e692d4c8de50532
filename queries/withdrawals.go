package queries

import (
	"context"
	"errors"
	"time"

	"github.com/ericlagergren/decimal"
	"github.com/ericlagergren/decimal/sql/postgres"
	"gorm.io/gorm"

	"gitlab.com/minerex-platform/admin_api/conv"
	"gitlab.com/minerex-platform/admin_api/errs"
	"gitlab.com/minerex-platform/admin_api/model"
)

// QueryWithdrawals pages the oversight listing, newest first.
func (repo *Repo) QueryWithdrawals(ctx context.Context, filter model.WithdrawFilter) ([]model.WithdrawRequest, int64, error) {
	requests := make([]model.WithdrawRequest, 0)
	var total int64

	q := repo.ConnReader.WithContext(ctx).Table("withdraw_requests")
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	q = applyWindow(q, "created_at", filter.Window)
	q = q.Session(&gorm.Session{})

	if db := q.Count(&total); db.Error != nil {
		return nil, 0, errs.DataSource(db.Error, "withdrawal count")
	}

	q = q.Order("created_at DESC").Order("id DESC")
	q = applyPaging(q, filter.Paging)
	if db := q.Find(&requests); db.Error != nil {
		return nil, 0, errs.DataSource(db.Error, "withdrawal page")
	}
	return requests, total, nil
}

// GetWithdrawRequest fetches one request by id.
func (repo *Repo) GetWithdrawRequest(ctx context.Context, id uint64) (*model.WithdrawRequest, error) {
	request := model.WithdrawRequest{}
	db := repo.ConnReader.WithContext(ctx).
		Where("id = ?", id).
		First(&request)
	if db.Error != nil {
		if errors.Is(db.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("withdraw request")
		}
		return nil, errs.DataSource(db.Error, "withdraw request")
	}
	return &request, nil
}

// UpdateWithdrawStatus persists a review decision on the writer.
func (repo *Repo) UpdateWithdrawStatus(ctx context.Context, request *model.WithdrawRequest) error {
	err := repo.Conn.WithContext(ctx).
		Model(request).
		Updates(map[string]interface{}{"status": string(request.Status), "updated_at": time.Now()}).Error
	if err != nil {
		return errs.DataSource(err, "withdrawal status update")
	}
	return nil
}

// CountWithdrawals counts requests by status inside the window.
func (repo *Repo) CountWithdrawals(ctx context.Context, status model.WithdrawStatus, window model.Window) (int64, error) {
	var total int64
	q := repo.ConnReaderAdmin.WithContext(ctx).Table("withdraw_requests")
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	q = applyWindow(q, "created_at", window)
	if db := q.Count(&total); db.Error != nil {
		return 0, errs.DataSource(db.Error, "withdrawal status count")
	}
	return total, nil
}

// SumWithdrawals totals request amounts by status inside the window.
func (repo *Repo) SumWithdrawals(ctx context.Context, status model.WithdrawStatus, window model.Window) (*decimal.Big, error) {
	data := &struct{ Balance *postgres.Decimal }{Balance: &postgres.Decimal{V: new(decimal.Big)}}

	q := repo.ConnReaderAdmin.WithContext(ctx).
		Table("withdraw_requests").
		Select("sum(amount) as balance")
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	q = applyWindow(q, "created_at", window)

	db := q.Scan(data)
	if db.Error != nil {
		if errors.Is(db.Error, gorm.ErrRecordNotFound) {
			return conv.NewDecimalWithPrecision(), nil
		}
		return nil, errs.DataSource(db.Error, "withdrawal volume")
	}
	if data.Balance != nil && data.Balance.V != nil {
		return data.Balance.V, nil
	}
	return conv.NewDecimalWithPrecision(), nil
}
