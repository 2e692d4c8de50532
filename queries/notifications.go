package queries

import (
	"context"

	"github.com/lib/pq"

	"gitlab.com/minerex-platform/admin_api/errs"
	"gitlab.com/minerex-platform/admin_api/model"
)

// QueryNotifications returns the latest feed items matching the status
// set inside the window, newest first.
func (repo *Repo) QueryNotifications(ctx context.Context, statuses []model.NotificationStatus, window model.Window, limit int) ([]model.Notification, error) {
	notifications := make([]model.Notification, 0, limit)

	q := repo.ConnReader.WithContext(ctx).Table("notifications")
	if len(statuses) > 0 {
		raw := make([]string, len(statuses))
		for i, s := range statuses {
			raw[i] = string(s)
		}
		q = q.Where("status = ANY(?)", pq.Array(raw))
	}
	q = applyWindow(q, "created_at", window)

	db := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&notifications)
	if db.Error != nil {
		return nil, errs.DataSource(db.Error, "notifications")
	}
	return notifications, nil
}

// CreateNotification stores one feed item.
func (repo *Repo) CreateNotification(ctx context.Context, notification *model.Notification) error {
	db := repo.Conn.WithContext(ctx).Create(notification)
	return errs.DataSource(db.Error, "notifications")
}
