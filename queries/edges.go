package queries

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"gitlab.com/minerex-platform/admin_api/errs"
	"gitlab.com/minerex-platform/admin_api/model"
)

// QueryTopLevel pages the members that act as referral-tree roots: those
// holding at least one active outgoing edge and matching the filter.
// Ordering and filtering live here so the assembler only asks for a page.
func (repo *Repo) QueryTopLevel(ctx context.Context, filter model.TreeFilter) ([]model.User, int64, error) {
	users := make([]model.User, 0)
	var total int64

	base := repo.ConnReader.WithContext(ctx).
		Table("users").
		Joins("inner join referral_edges on referral_edges.referrer_id = users.id").
		Where("referral_edges.status = ?", string(model.ReferralEdgeStatus_Active))

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		base = base.Where("users.email ILIKE ? OR users.nickname ILIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		base = base.Where("users.status = ?", string(filter.Status))
	}
	base = applyWindow(base, "users.created_at", filter.Window)
	base = base.Session(&gorm.Session{})

	if db := base.Distinct("users.id").Count(&total); db.Error != nil {
		return nil, 0, errs.DataSource(db.Error, "top level count")
	}

	q := base.Select("users.*").Group("users.id")
	switch filter.SortBy {
	case model.TreeSort_Level:
		q = q.Order("users.user_level DESC").Order("users.id ASC")
	default:
		q = q.Order("count(referral_edges.id) DESC").Order("users.id ASC")
	}
	q = applyPaging(q, filter.Paging)

	if db := q.Find(&users); db.Error != nil {
		return nil, 0, errs.DataSource(db.Error, "top level page")
	}
	return users, total, nil
}

// QueryDirectDescendants fetches the active direct descendants for a whole
// page of parents in one query keyed by the parent-id set, newest first.
func (repo *Repo) QueryDirectDescendants(ctx context.Context, parentIDs []uint64, window model.Window) ([]model.ReferralEdgeWithUser, error) {
	children := make([]model.ReferralEdgeWithUser, 0)
	if len(parentIDs) == 0 {
		return children, nil
	}

	q := repo.ConnReader.WithContext(ctx).
		Table("referral_edges").
		Select("referral_edges.referrer_id, referral_edges.referred_id, referral_edges.created_at as joined_at, " +
			"users.email, users.nickname, users.user_level, users.status as user_status").
		Joins("inner join users on users.id = referral_edges.referred_id").
		Where("referral_edges.referrer_id = ANY(?)", pq.Array(parentIDs)).
		Where("referral_edges.status = ?", string(model.ReferralEdgeStatus_Active))
	q = applyWindow(q, "referral_edges.created_at", window)

	db := q.Order("referral_edges.created_at DESC").Order("referral_edges.id DESC").Find(&children)
	if db.Error != nil {
		return nil, errs.DataSource(db.Error, "direct descendants")
	}
	return children, nil
}

// CountDirectDescendants counts active direct descendants per parent in
// one grouped query. Parents without descendants are absent from the map.
func (repo *Repo) CountDirectDescendants(ctx context.Context, parentIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(parentIDs))
	if len(parentIDs) == 0 {
		return counts, nil
	}

	rows := make([]struct {
		ReferrerId uint64 `gorm:"column:referrer_id"`
		Total      int64  `gorm:"column:total"`
	}, 0, len(parentIDs))

	db := repo.ConnReader.WithContext(ctx).
		Table("referral_edges").
		Select("referrer_id, count(*) as total").
		Where("referrer_id = ANY(?)", pq.Array(parentIDs)).
		Where("status = ?", string(model.ReferralEdgeStatus_Active)).
		Group("referrer_id").
		Find(&rows)
	if db.Error != nil {
		return nil, errs.DataSource(db.Error, "descendant counts")
	}
	for _, row := range rows {
		counts[row.ReferrerId] = row.Total
	}
	return counts, nil
}

// CountEdges counts active referral registrations inside the window.
func (repo *Repo) CountEdges(ctx context.Context, window model.Window) (int64, error) {
	var total int64
	q := repo.ConnReaderAdmin.WithContext(ctx).
		Table("referral_edges").
		Where("status = ?", string(model.ReferralEdgeStatus_Active))
	q = applyWindow(q, "created_at", window)
	if db := q.Count(&total); db.Error != nil {
		return 0, errs.DataSource(db.Error, "edge count")
	}
	return total, nil
}

// TopInviters ranks members by active direct-descendant count.
func (repo *Repo) TopInviters(ctx context.Context, limit int) ([]model.TopInviter, error) {
	inviters := make([]model.TopInviter, 0, limit)
	db := repo.ConnReaderAdmin.WithContext(ctx).
		Table("users").
		Select("users.id as user_id, users.email, users.created_at, count(referral_edges.id) as invited").
		Joins("inner join referral_edges on referral_edges.referrer_id = users.id").
		Where("referral_edges.status = ?", string(model.ReferralEdgeStatus_Active)).
		Group("users.id").
		Order("count(referral_edges.id) DESC").
		Limit(limit).
		Find(&inviters)
	if db.Error != nil {
		return nil, errs.DataSource(db.Error, "top inviters")
	}
	return inviters, nil
}
