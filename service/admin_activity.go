package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog/log"

	"gitlab.com/minerex-platform/admin_api/model"
)

// RecordAdminActivity persists one audit row and mirrors it to the audit
// topic. The trail must never block a moderation action, so failures are
// logged and swallowed.
func (service *Service) RecordAdminActivity(ctx context.Context, activity *model.AdminActivity) {
	if err := service.repo.CreateAdminActivity(activity); err != nil {
		log.Error().Err(err).
			Str("action", activity.Action).
			Uint64("admin_id", activity.AdminID).
			Msg("Unable to store admin activity")
	}
	payload, err := json.Marshal(activity)
	if err != nil {
		log.Error().Err(err).Msg("Unable to encode admin activity")
		return
	}
	key := []byte(strconv.FormatUint(activity.AdminID, 10))
	if err := service.audit.Publish(ctx, key, payload); err != nil {
		log.Error().Err(err).
			Str("action", activity.Action).
			Msg("Unable to publish admin activity")
	}
}

// notify writes a dashboard notification. Like the audit trail it is
// best effort.
func (service *Service) notify(ctx context.Context, userID uint64, kind model.NotificationType, title, message string) {
	notification := &model.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
		Status:  model.NotificationStatus_UnRead,
	}
	if err := service.repo.CreateNotification(ctx, notification); err != nil {
		log.Error().Err(err).Str("type", string(kind)).Msg("Unable to store notification")
	}
}
