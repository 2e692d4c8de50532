package queries

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"gitlab.com/minerex-platform/admin_api/errs"
	"gitlab.com/minerex-platform/admin_api/model"
)

// GetUser fetches a member by id.
func (repo *Repo) GetUser(ctx context.Context, userID uint64) (*model.User, error) {
	user := model.User{}
	db := repo.ConnReader.WithContext(ctx).
		Where("id = ?", userID).
		First(&user)
	if db.Error != nil {
		if errors.Is(db.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user")
		}
		return nil, errs.DataSource(db.Error, "user")
	}
	return &user, nil
}

// GetUsersByIDs fetches member profiles for an id set in one batch.
func (repo *Repo) GetUsersByIDs(ctx context.Context, userIDs []uint64) ([]model.User, error) {
	users := make([]model.User, 0, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}
	db := repo.ConnReader.WithContext(ctx).
		Where("id = ANY(?)", pq.Array(userIDs)).
		Find(&users)
	if db.Error != nil {
		return nil, errs.DataSource(db.Error, "users batch")
	}
	return users, nil
}

// QueryMembers pages the member-management listing.
func (repo *Repo) QueryMembers(ctx context.Context, filter model.MemberFilter) ([]model.User, int64, error) {
	users := make([]model.User, 0)
	var total int64

	q := repo.ConnReader.WithContext(ctx).Table("users")
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		q = q.Where("email ILIKE ? OR nickname ILIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	q = applyWindow(q, "created_at", filter.Window)
	q = q.Session(&gorm.Session{})

	if db := q.Count(&total); db.Error != nil {
		return nil, 0, errs.DataSource(db.Error, "member count")
	}

	q = q.Order("created_at DESC").Order("id DESC")
	q = applyPaging(q, filter.Paging)
	if db := q.Find(&users); db.Error != nil {
		return nil, 0, errs.DataSource(db.Error, "member page")
	}
	return users, total, nil
}

// UpdateMemberStatus applies a moderation transition on the writer.
func (repo *Repo) UpdateMemberStatus(ctx context.Context, user *model.User, status model.UserStatus) error {
	err := repo.Conn.WithContext(ctx).
		Model(user).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()}).Error
	if err != nil {
		return errs.DataSource(err, "member status update")
	}
	user.Status = status
	return nil
}

// CountMembers counts members by status inside a registration window. An
// empty status counts every member.
func (repo *Repo) CountMembers(ctx context.Context, status model.UserStatus, window model.Window) (int64, error) {
	var total int64
	q := repo.ConnReaderAdmin.WithContext(ctx).Table("users")
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	q = applyWindow(q, "created_at", window)
	if db := q.Count(&total); db.Error != nil {
		return 0, errs.DataSource(db.Error, "member status count")
	}
	return total, nil
}

// CountTeam counts one member's active direct descendants.
func (repo *Repo) CountTeam(ctx context.Context, userID uint64) (int64, error) {
	var total int64
	db := repo.ConnReader.WithContext(ctx).
		Table("referral_edges").
		Where("referrer_id = ?", userID).
		Where("status = ?", string(model.ReferralEdgeStatus_Active)).
		Count(&total)
	if db.Error != nil {
		return 0, errs.DataSource(db.Error, "team count")
	}
	return total, nil
}
