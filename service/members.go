package service

import (
	"context"
	"fmt"

	"gitlab.com/minerex-platform/admin_api/errs"
	"gitlab.com/minerex-platform/admin_api/model"
)

// GetMembers lists members for the management screen.
func (service *Service) GetMembers(ctx context.Context, filter model.MemberFilter) (*model.MemberList, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	users, total, err := service.repo.QueryMembers(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &model.MemberList{
		Users: users,
		Meta: model.PagingMeta{
			Limit:  filter.Paging.Limit,
			Offset: filter.Paging.Offset,
			Count:  total,
			Filter: map[string]interface{}{
				"query":  filter.Query,
				"status": filter.Status,
			},
		},
	}, nil
}

// GetMemberDetail returns one member with its direct-team size and
// current rollup.
func (service *Service) GetMemberDetail(ctx context.Context, userID uint64) (*model.MemberDetail, error) {
	user, err := service.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	teamCount, err := service.repo.CountTeam(ctx, userID)
	if err != nil {
		return nil, err
	}
	metric, err := service.rollups.Rollup(ctx, userID, nil, service.now())
	if err != nil {
		return nil, err
	}
	return &model.MemberDetail{
		User:      *user,
		TeamCount: teamCount,
		Rollup:    metric,
	}, nil
}

// UpdateMemberStatus applies a moderation action. The transition is
// recorded in the audit trail and, for suspensions and blocks, surfaced
// as a dashboard notification.
func (service *Service) UpdateMemberStatus(ctx context.Context, adminID uint64, ip string, userID uint64, status model.UserStatus) (*model.User, error) {
	if !status.IsValid() {
		return nil, errs.InvalidArgument("unknown member status: " + string(status))
	}
	user, err := service.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status == status {
		return user, nil
	}
	previous := user.Status
	if err := service.repo.UpdateMemberStatus(ctx, user, status); err != nil {
		return nil, err
	}

	detail := fmt.Sprintf("status %s -> %s", previous, status)
	service.RecordAdminActivity(ctx, model.NewAdminActivity(adminID, "member.status", "user", userID, detail, ip))

	switch status {
	case model.UserStatusSuspended:
		service.notify(ctx, userID, model.Notification_MemberSuspended, "Member suspended", detail)
	case model.UserStatusBlocked:
		service.notify(ctx, userID, model.Notification_MemberBlocked, "Member blocked", detail)
	}
	return user, nil
}
